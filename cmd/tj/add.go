package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/krishnakoushik192/travel-journal/internal/journal"
	"github.com/krishnakoushik192/travel-journal/internal/ui"
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a journal entry",
	Long: `Add a journal entry to the local store.

The entry is written locally and queued for the next sync; no network
access happens here. Tags default to categories derived from the title
and description when none are given.

Example:
  tj add --title "Beach Day" --desc "Sunny beach afternoon" \
         --image f1.jpg --image f2.jpg --location "Goa, India"`,
	Run: func(cmd *cobra.Command, args []string) {
		title, _ := cmd.Flags().GetString("title")
		desc, _ := cmd.Flags().GetString("desc")
		location, _ := cmd.Flags().GetString("location")
		date, _ := cmd.Flags().GetString("date")
		imagePaths, _ := cmd.Flags().GetStringSlice("image")
		tags, _ := cmd.Flags().GetStringSlice("tag")

		entry := &journal.Entry{
			ID:           journal.NewID(),
			Title:        title,
			Description:  desc,
			LocationName: location,
			DateTime:     date,
			Tags:         tags,
		}

		if cmd.Flags().Changed("lat") != cmd.Flags().Changed("lon") {
			fmt.Fprintf(os.Stderr, "Error: --lat and --lon must be given together\n")
			os.Exit(1)
		}
		if cmd.Flags().Changed("lat") {
			lat, _ := cmd.Flags().GetFloat64("lat")
			lon, _ := cmd.Flags().GetFloat64("lon")
			entry.Latitude = &lat
			entry.Longitude = &lon
		}

		for _, p := range imagePaths {
			entry.Images = append(entry.Images, journal.Image{URL: p})
		}

		if err := entry.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		st, err := openStore()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer st.Close()

		if err := st.AddEntry(cmd.Context(), entry); err != nil {
			fmt.Fprintf(os.Stderr, "Error adding entry: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("%s Added %s\n", ui.RenderPass("✓"), entry.ID)
		fmt.Printf("   Tags: %v\n", entry.Tags)
		fmt.Printf("   Images: %d\n", len(entry.Images))
	},
}

func init() {
	addCmd.Flags().String("title", "", "entry title (required)")
	addCmd.Flags().String("desc", "", "entry description")
	addCmd.Flags().String("location", "", "place label")
	addCmd.Flags().String("date", time.Now().Format("2006-01-02"), "display date")
	addCmd.Flags().Float64("lat", 0, "latitude (requires --lon)")
	addCmd.Flags().Float64("lon", 0, "longitude (requires --lat)")
	addCmd.Flags().StringSlice("image", nil, "image path or URI (repeatable, ordered)")
	addCmd.Flags().StringSlice("tag", nil, "explicit tag (repeatable, overrides derivation)")
	_ = addCmd.MarkFlagRequired("title")
	rootCmd.AddCommand(addCmd)
}
