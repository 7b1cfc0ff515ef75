package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"royale-metrics/internal/storage"
)

var dbPath string

var rootCmd = &cobra.Command{
	Use:   "royale",
	Short: "Clash Royale clan telemetry tool",
	Long:  "Collect clan battle telemetry from the Clash Royale API and compute card/deck/player statistics over it.",
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	defaultDB := filepath.Join(mustUserHome(), ".royale-metrics", "royale.db")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", defaultDB, "path to SQLite database")

	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(cardsCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(dropCmd)
	rootCmd.AddCommand(cardCmd)
	rootCmd.AddCommand(decksCmd)
	rootCmd.AddCommand(lossesCmd)
	rootCmd.AddCommand(underdogCmd)
	rootCmd.AddCommand(combosCmd)
	rootCmd.AddCommand(usageCmd)
	rootCmd.AddCommand(playersCmd)
	rootCmd.AddCommand(arenaCmd)
	rootCmd.AddCommand(hoursCmd)
	rootCmd.AddCommand(summaryCmd)
}

func mustUserHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}

// openStore opens the database at --db, creating its directory first.
func openStore() (*storage.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := storage.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	return db, nil
}

// newLogger builds the console logger the sync commands use.
func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().
		Timestamp().
		Logger().
		Level(lvl)
}
