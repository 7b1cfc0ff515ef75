package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"royale-metrics/internal/config"
	"royale-metrics/internal/ingest"
	"royale-metrics/internal/royale"
)

// sync command flags. Zero values defer to the environment config.
var (
	syncClanTag string
	syncLimit   int
	syncDelay   time.Duration
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync the card catalog and a clan's battle telemetry",
	Long: `Fetches the card catalog, then walks the clan roster member by
member, storing each player's profile and most recent battles. Reruns
are idempotent: already-stored battles are overwritten in place, never
duplicated.

Requires ROYALE_API_TOKEN (environment or .env file).

Examples:
  royale sync --clan '#QYGYYPYC'
  royale sync --clan '#QYGYYPYC' --limit 10 --delay 2s`,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().StringVar(&syncClanTag, "clan", "", "clan tag to walk (default: ROYALE_CLAN_TAG)")
	syncCmd.Flags().IntVar(&syncLimit, "limit", 0, "battles ingested per member (default: ROYALE_BATTLE_LIMIT)")
	syncCmd.Flags().DurationVar(&syncDelay, "delay", 0, "minimum interval between API requests (default: ROYALE_REQUEST_DELAY)")
}

func runSync(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cfg.APIToken == "" {
		return fmt.Errorf("API token not set: export ROYALE_API_TOKEN or add it to .env")
	}

	clanTag := syncClanTag
	if clanTag == "" {
		clanTag = cfg.ClanTag
	}
	if clanTag == "" {
		return fmt.Errorf("no clan tag: pass --clan or set ROYALE_CLAN_TAG")
	}
	limit := syncLimit
	if limit <= 0 {
		limit = cfg.BattleLimit
	}
	delay := syncDelay
	if delay <= 0 {
		delay = cfg.RequestDelay
	}

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	// A signal aborts the walk between members; records already
	// written stay valid.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger := newLogger(cfg.LogLevel)
	client := royale.NewClient(cfg.APIToken, delay)
	syncer := ingest.NewSyncer(client, db, logger, limit)

	cards, err := syncer.SyncCards(ctx)
	if err != nil {
		return fmt.Errorf("sync cards: %w", err)
	}
	fmt.Printf("Cards synced: %d\n", cards)

	res, err := syncer.SyncClan(ctx, clanTag)
	fmt.Printf("Members processed: %d  failed: %d\n", res.MembersProcessed, res.MembersFailed)
	fmt.Printf("Battles stored: %d  skipped: %d\n", res.BattlesStored, res.BattlesSkipped)
	if err != nil {
		return fmt.Errorf("sync clan %s: %w", clanTag, err)
	}
	return nil
}
