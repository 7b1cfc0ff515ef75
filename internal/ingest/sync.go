// Package ingest turns raw Clash Royale API payloads into canonical
// records: a pure normalizer plus the clan sync service that drives it.
package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"royale-metrics/internal/model"
	"royale-metrics/internal/royale"
	"royale-metrics/internal/storage"
)

// API is the slice of the Clash Royale client the sync service needs.
type API interface {
	ClanMembers(ctx context.Context, clanTag string) ([]royale.ClanMember, error)
	Player(ctx context.Context, playerTag string) (*royale.PlayerProfile, error)
	BattleLog(ctx context.Context, playerTag string) ([]royale.Battle, error)
	Cards(ctx context.Context) ([]royale.Card, error)
}

// Syncer ingests the card catalog and a clan's battle telemetry into
// the store. All writes go through the store's idempotent upserts, so
// a rerun over the same data is a no-op.
type Syncer struct {
	api         API
	store       *storage.DB
	log         zerolog.Logger
	battleLimit int
}

// NewSyncer builds a sync service. battleLimit caps how many of each
// member's most recent battles are ingested per run.
func NewSyncer(api API, store *storage.DB, log zerolog.Logger, battleLimit int) *Syncer {
	return &Syncer{api: api, store: store, log: log, battleLimit: battleLimit}
}

// SyncCards pulls the full card catalog and upserts it by card id.
// Returns the number of cards written.
func (s *Syncer) SyncCards(ctx context.Context) (int, error) {
	raw, err := s.api.Cards(ctx)
	if err != nil {
		return 0, fmt.Errorf("fetch cards: %w", err)
	}
	cards := make([]model.Card, len(raw))
	for i, c := range raw {
		cards[i] = model.Card{
			ID:       c.ID,
			Name:     c.Name,
			MaxLevel: c.MaxLevel,
			IconURL:  c.IconURLs.Medium,
		}
	}
	if err := s.store.UpsertCards(cards); err != nil {
		return 0, fmt.Errorf("store cards: %w", err)
	}
	s.log.Info().Int("cards", len(cards)).Msg("card catalog synced")
	return len(cards), nil
}

// Result reports what a clan walk accomplished. Partial results are
// meaningful: every stored record is valid on its own.
type Result struct {
	MembersProcessed int
	MembersFailed    int
	BattlesStored    int
	BattlesSkipped   int
}

// SyncClan walks the clan roster in the order the API returns it and
// ingests each member's profile and recent battles. A member whose
// fetch or processing fails is logged and counted, never aborts the
// walk. Cancelling the context stops the walk between members and
// returns ctx.Err alongside the partial counts.
func (s *Syncer) SyncClan(ctx context.Context, clanTag string) (Result, error) {
	var res Result

	members, err := s.api.ClanMembers(ctx, clanTag)
	if err != nil {
		return res, fmt.Errorf("fetch clan members %s: %w", clanTag, err)
	}
	s.log.Info().Str("clan", clanTag).Int("members", len(members)).Msg("roster fetched")

	for _, m := range members {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		stored, skipped, err := s.syncMember(ctx, m.Tag)
		if err != nil {
			if ctx.Err() != nil {
				return res, ctx.Err()
			}
			res.MembersFailed++
			s.log.Warn().Err(err).Str("member", m.Tag).Msg("member sync failed, continuing")
			continue
		}
		res.MembersProcessed++
		res.BattlesStored += stored
		res.BattlesSkipped += skipped
	}
	return res, nil
}

// syncMember ingests one member: profile replaced wholesale, then the
// battleLimit most recent battles normalized and upserted. Malformed
// battles are skipped individually; everything else about the member
// still lands.
func (s *Syncer) syncMember(ctx context.Context, tag string) (stored, skipped int, err error) {
	profile, err := s.api.Player(ctx, tag)
	if err != nil {
		return 0, 0, fmt.Errorf("fetch player %s: %w", tag, err)
	}
	if err := s.store.UpsertPlayer(model.Player{
		Tag:      profile.Tag,
		Name:     profile.Name,
		ExpLevel: profile.ExpLevel,
		Trophies: profile.Trophies,
		ClanTag:  profile.Clan.Tag,
		SyncedAt: time.Now().Unix(),
	}); err != nil {
		return 0, 0, fmt.Errorf("store player %s: %w", tag, err)
	}

	battles, err := s.api.BattleLog(ctx, tag)
	if err != nil {
		return 0, 0, fmt.Errorf("fetch battle log %s: %w", tag, err)
	}
	if len(battles) > s.battleLimit {
		battles = battles[:s.battleLimit]
	}

	for _, raw := range battles {
		canonical, err := Normalize(raw, tag)
		if err != nil {
			skipped++
			s.log.Warn().Err(err).Str("member", tag).Msg("skipping malformed battle")
			continue
		}
		if err := s.store.UpsertBattle(canonical); err != nil {
			return stored, skipped, fmt.Errorf("store battle %s/%s: %w", canonical.BattleTime, tag, err)
		}
		stored++
	}
	s.log.Debug().Str("member", tag).Int("battles", stored).Msg("member synced")
	return stored, skipped, nil
}
