package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/krishnakoushik192/travel-journal/internal/daemon"
	"github.com/krishnakoushik192/travel-journal/internal/dashboard"
	"github.com/krishnakoushik192/travel-journal/internal/store"
	"github.com/krishnakoushik192/travel-journal/internal/syncer"
	"github.com/krishnakoushik192/travel-journal/internal/ui"
)

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Run the background sync daemon (foreground)",
	Long: `Run the sync daemon in the foreground.

The daemon probes the remote on an interval and syncs on every
offline→online transition. It also watches the journal database for
local writes and syncs shortly after edits settle, so entries made
while online do not wait for the next transition.

With --dashboard-port, a WebSocket status server broadcasts sync
results and connectivity changes to connected clients.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		probeInterval, _ := cmd.Flags().GetDuration("probe-interval")
		debounce, _ := cmd.Flags().GetDuration("debounce")
		dashboardPort, _ := cmd.Flags().GetInt("dashboard-port")
		logFile, _ := cmd.Flags().GetString("log-file")

		var logOut io.Writer = os.Stderr
		if logFile != "" {
			logOut = &lumberjack.Logger{
				Filename:   logFile,
				MaxSize:    10, // megabytes
				MaxBackups: 3,
				MaxAge:     28, // days
				Compress:   true,
			}
		}

		st, err := openStore()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer st.Close()

		rem, err := openRemote(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer rem.Close()

		engine := syncer.New(st, rem, log.New(logOut, "[sync] ", log.LstdFlags))
		prober := syncer.NewProber(rem, probeInterval, log.New(logOut, "[probe] ", log.LstdFlags))

		config := daemon.DefaultConfig()
		config.ProbeInterval = probeInterval
		config.DebounceInterval = debounce
		config.Logger = log.New(logOut, "[daemon] ", log.LstdFlags)

		if dashboardPort > 0 {
			server := dashboard.NewServer(&dashboard.Config{
				Port:   dashboardPort,
				Logger: log.New(logOut, "[dashboard] ", log.LstdFlags),
			})
			if err := server.Start(); err != nil {
				fmt.Fprintf(os.Stderr, "Error starting dashboard: %v\n", err)
				os.Exit(1)
			}
			defer server.Stop()

			config.OnConnectivity = server.BroadcastConnectivity

			go func() {
				for res := range engine.Results() {
					data := dashboard.SyncCompleteData{
						Collected: res.Collected,
						Pushed:    res.Pushed,
						FailedIDs: res.FailedIDs,
						Duration:  res.Duration.Round(time.Millisecond).String(),
					}
					if res.Err != nil {
						data.Error = res.Err.Error()
					}
					server.BroadcastSyncComplete(data)
					broadcastStats(ctx, server, st)
				}
			}()

			fmt.Printf("Dashboard: ws://localhost:%d/ws\n", dashboardPort)
		}

		d, err := daemon.New(engine, prober, st.Path(), config)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating daemon: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("%s Sync daemon running\n", ui.RenderAccent("🚀"))
		fmt.Printf("   Database: %s\n", st.Path())
		fmt.Println("\nPress Ctrl+C to stop")

		if err := d.Start(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Daemon stopped with error: %v\n", err)
			os.Exit(1)
		}
	},
}

// broadcastStats pushes a fresh collection summary to dashboard clients
// after each sync pass.
func broadcastStats(ctx context.Context, server *dashboard.Server, st *store.Store) {
	stats, err := st.GetStats(ctx)
	if err != nil {
		return
	}
	unsynced, err := st.ListUnsynced(ctx)
	if err != nil {
		return
	}
	server.BroadcastStats(dashboard.StatsData{
		TotalEntries: stats.TotalEntries,
		TotalImages:  stats.TotalImages,
		Locations:    stats.UniqueLocations,
		Tags:         stats.UniqueTags,
		Unsynced:     len(unsynced),
	})
}

func init() {
	daemonCmd.Flags().Duration("probe-interval", 15*time.Second, "how often to probe remote reachability")
	daemonCmd.Flags().Duration("debounce", 2*time.Second, "settle time after local writes before syncing")
	daemonCmd.Flags().Int("dashboard-port", 0, "serve the WebSocket status dashboard on this port (0 = off)")
	daemonCmd.Flags().String("log-file", "", "write rotated logs to this file instead of stderr")
	rootCmd.AddCommand(daemonCmd)
}
