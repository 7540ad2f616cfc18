// Package cli implements the puffin CLI commands.
package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rcliao/puffin/internal/config"
	"github.com/rcliao/puffin/internal/dashboard"
	"github.com/rcliao/puffin/internal/store"
)

var (
	dbPath     string
	configPath string
	formatFlag string
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "puffin",
	Short: "Baby care activity tracker",
	Long:  "Log diaper changes, feedings, medications and temperatures. SQLite-backed, single binary, with a small JSON API.",
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Database path (default: $PUFFIN_DB_PATH or ~/.puffin/puffin.db)")
	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: $PUFFIN_CONFIG or ~/.config/puffin/config.yaml)")
	RootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", "json", "Output format: json or text")
}

func loadConfig() config.Config {
	cfg, err := config.Load(configPath)
	if err != nil {
		exitErr("load config", err)
	}
	if dbPath != "" {
		cfg.DBPath = dbPath
	}
	return cfg
}

func openStore(cfg config.Config) *store.SQLiteStore {
	s, err := store.NewSQLiteStore(cfg.DBPath)
	if err != nil {
		exitErr("open store", err)
	}
	return s
}

func newComposer(cfg config.Config, s dashboard.Store) *dashboard.Composer {
	loc, err := cfg.Location()
	if err != nil {
		exitErr("timezone", err)
	}
	return dashboard.New(s, loc)
}

func printJSON(v any) {
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(b))
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
