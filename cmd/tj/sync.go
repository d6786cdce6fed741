package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/krishnakoushik192/travel-journal/internal/syncer"
	"github.com/krishnakoushik192/travel-journal/internal/ui"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Push unsynced entries to the remote store",
	Long: `Run one sync pass against the remote store.

Collects every entry not yet marked synced, upserts them (and their
images) remotely, and marks the fully-pushed ones synced. Safe to
re-run: a pass with nothing to push is a no-op.

With --reset, every entry is marked unsynced first so the next pass
re-pushes the whole journal.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		reset, _ := cmd.Flags().GetBool("reset")

		st, err := openStore()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer st.Close()

		if reset {
			if err := st.ResetSyncStatus(ctx); err != nil {
				fmt.Fprintf(os.Stderr, "Error resetting sync status: %v\n", err)
				os.Exit(1)
			}
			fmt.Printf("%s Sync status reset\n", ui.RenderAccent("🔄"))
		}

		rem, err := openRemote(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer rem.Close()

		engine := syncer.New(st, rem, nil)

		fmt.Printf("%s Syncing...\n", ui.RenderAccent("🔄"))
		start := time.Now()

		res, err := engine.Sync(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s Sync failed: %v\n", ui.RenderErr("✗"), err)
			if res.Collected > 0 {
				fmt.Fprintf(os.Stderr, "   %d entries remain queued for the next attempt\n", res.Collected-res.Pushed)
			}
			os.Exit(1)
		}

		fmt.Printf("%s Sync complete in %v\n", ui.RenderPass("✓"), time.Since(start).Round(time.Millisecond))
		fmt.Printf("   Collected: %d\n", res.Collected)
		fmt.Printf("   Pushed: %d\n", res.Pushed)
	},
}

func init() {
	syncCmd.Flags().Bool("reset", false, "mark all entries unsynced before syncing")
	rootCmd.AddCommand(syncCmd)
}
