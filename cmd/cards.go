package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"royale-metrics/internal/config"
	"royale-metrics/internal/ingest"
	"royale-metrics/internal/royale"
)

var cardsCmd = &cobra.Command{
	Use:   "cards",
	Short: "Sync only the card catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if cfg.APIToken == "" {
			return fmt.Errorf("API token not set: export ROYALE_API_TOKEN or add it to .env")
		}

		db, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		logger := newLogger(cfg.LogLevel)
		client := royale.NewClient(cfg.APIToken, cfg.RequestDelay)
		syncer := ingest.NewSyncer(client, db, logger, cfg.BattleLimit)

		n, err := syncer.SyncCards(context.Background())
		if err != nil {
			return err
		}
		fmt.Printf("Cards synced: %d\n", n)
		return nil
	},
}
