package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/krishnakoushik192/travel-journal/internal/journal"
	"github.com/krishnakoushik192/travel-journal/internal/ui"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all journal entries, newest first",
	Run: func(cmd *cobra.Command, args []string) {
		st, err := openStore()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer st.Close()

		entries, err := st.GetAll(cmd.Context())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error listing entries: %v\n", err)
			os.Exit(1)
		}

		printEntries(entries)
	},
}

func printEntries(entries []journal.Entry) {
	if len(entries) == 0 {
		fmt.Println("No entries")
		return
	}

	for _, e := range entries {
		syncMark := ui.RenderWarn("○")
		if e.Synced {
			syncMark = ui.RenderPass("●")
		}

		fmt.Printf("%s %s  %s\n", syncMark, ui.RenderTitle(e.Title), ui.RenderFaint(e.ID))
		if e.LocationName != "" || e.DateTime != "" {
			fmt.Printf("   %s\n", ui.RenderAccent(strings.TrimSpace(e.LocationName+"  "+e.DateTime)))
		}
		if e.Description != "" {
			fmt.Printf("   %s\n", e.Description)
		}
		fmt.Printf("   tags: %s  images: %d\n", strings.Join(e.Tags, ", "), len(e.Images))
	}

	fmt.Printf("\n%d entries\n", len(entries))
}

func init() {
	rootCmd.AddCommand(listCmd)
}
