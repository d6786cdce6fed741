package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/krishnakoushik192/travel-journal/internal/ui"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show sync queue and remote reachability",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		st, err := openStore()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer st.Close()

		unsynced, err := st.ListUnsynced(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error listing unsynced entries: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Database: %s\n", st.Path())
		if len(unsynced) == 0 {
			fmt.Printf("Queue: %s\n", ui.RenderPass("empty"))
		} else {
			fmt.Printf("Queue: %s\n", ui.RenderWarn(fmt.Sprintf("%d entries pending", len(unsynced))))
			for _, e := range unsynced {
				fmt.Printf("   %s %s\n", ui.RenderFaint(e.ID), e.Title)
			}
		}

		rem, err := openRemote(ctx)
		if err != nil {
			fmt.Printf("Remote: %s\n", ui.RenderFaint("not configured"))
			return
		}
		defer rem.Close()

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := rem.Ping(pingCtx); err != nil {
			fmt.Printf("Remote: %s (%v)\n", ui.RenderErr("unreachable"), err)
			os.Exit(1)
		}
		fmt.Printf("Remote: %s\n", ui.RenderPass("reachable"))
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
