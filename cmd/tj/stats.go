package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/krishnakoushik192/travel-journal/internal/ui"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show journal statistics",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		st, err := openStore()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer st.Close()

		stats, err := st.GetStats(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting stats: %v\n", err)
			os.Exit(1)
		}

		minDate, maxDate, err := st.DateRange(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting date range: %v\n", err)
			os.Exit(1)
		}

		unsynced, err := st.ListUnsynced(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error counting unsynced entries: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("\n%s Journal\n\n", ui.RenderAccent("📊"))
		fmt.Printf("Entries: %d\n", stats.TotalEntries)
		fmt.Printf("Images: %d\n", stats.TotalImages)
		fmt.Printf("Locations: %d\n", stats.UniqueLocations)
		fmt.Printf("Tags: %d\n", stats.UniqueTags)
		if minDate != "" {
			fmt.Printf("Dates: %s to %s\n", minDate, maxDate)
		}
		if len(unsynced) > 0 {
			fmt.Printf("Unsynced: %s\n", ui.RenderWarn(fmt.Sprintf("%d", len(unsynced))))
		} else {
			fmt.Printf("Unsynced: 0\n")
		}
		fmt.Println()
	},
}

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List all tags in use",
	Run: func(cmd *cobra.Command, args []string) {
		st, err := openStore()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer st.Close()

		tags, err := st.AllTags(cmd.Context())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error listing tags: %v\n", err)
			os.Exit(1)
		}

		if len(tags) == 0 {
			fmt.Println("No tags")
			return
		}
		fmt.Println(strings.Join(tags, "\n"))
	},
}

var locationsCmd = &cobra.Command{
	Use:   "locations",
	Short: "List all locations in use",
	Run: func(cmd *cobra.Command, args []string) {
		st, err := openStore()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer st.Close()

		locations, err := st.AllLocations(cmd.Context())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error listing locations: %v\n", err)
			os.Exit(1)
		}

		if len(locations) == 0 {
			fmt.Println("No locations")
			return
		}
		fmt.Println(strings.Join(locations, "\n"))
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(tagsCmd)
	rootCmd.AddCommand(locationsCmd)
}
