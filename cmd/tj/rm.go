package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/krishnakoushik192/travel-journal/internal/ui"
)

var rmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a journal entry and its images and tags",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		st, err := openStore()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer st.Close()

		if err := st.DeleteEntry(cmd.Context(), args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "Error deleting entry: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("%s Deleted %s\n", ui.RenderPass("✓"), args[0])
	},
}

func init() {
	rootCmd.AddCommand(rmCmd)
}
