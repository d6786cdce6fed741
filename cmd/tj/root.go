package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/krishnakoushik192/travel-journal/internal/remote"
	"github.com/krishnakoushik192/travel-journal/internal/store"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "tj",
	Short: "Offline-first travel journal",
	Long: `tj is an offline-first travel journal.

Entries (title, description, photos, location, date, tags) are stored
in a local SQLite database and pushed to the remote backend whenever
connectivity allows. Local writes never wait on the network.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default $HOME/.tj.yaml)")
	rootCmd.PersistentFlags().String("db", "", "journal database path (default $HOME/.tj/journal.db)")
	rootCmd.PersistentFlags().String("remote", "", "remote store DSN (postgres://...)")

	_ = viper.BindPFlag("db_path", rootCmd.PersistentFlags().Lookup("db"))
	_ = viper.BindPFlag("remote_dsn", rootCmd.PersistentFlags().Lookup("remote"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
			viper.SetConfigType("yaml")
			viper.SetConfigName(".tj")
		}
	}

	viper.SetEnvPrefix("TJ")
	viper.AutomaticEnv()

	// Missing config file is fine; flags and env cover everything.
	_ = viper.ReadInConfig()
}

// dbPath resolves the journal database location.
func dbPath() string {
	if p := viper.GetString("db_path"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "journal.db"
	}
	return filepath.Join(home, ".tj", "journal.db")
}

// openStore opens the local store, creating and migrating as needed.
func openStore() (*store.Store, error) {
	st, err := store.Open(dbPath())
	if err != nil {
		return nil, fmt.Errorf("failed to open journal database: %w", err)
	}
	return st, nil
}

// openRemote connects to the configured remote store.
func openRemote(ctx context.Context) (*remote.Postgres, error) {
	dsn := viper.GetString("remote_dsn")
	if dsn == "" {
		return nil, fmt.Errorf("no remote configured (set --remote, TJ_REMOTE_DSN, or remote_dsn in config)")
	}
	return remote.NewPostgres(ctx, dsn)
}
