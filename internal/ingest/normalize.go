package ingest

import (
	"fmt"
	"time"

	"royale-metrics/internal/model"
	"royale-metrics/internal/royale"
)

// MalformedBattleError marks a raw battle that cannot be turned into a
// canonical record. The caller skips the record and moves on; nothing
// is fabricated to paper over it.
type MalformedBattleError struct {
	BattleTime string
	Reason     string
}

func (e *MalformedBattleError) Error() string {
	return fmt.Sprintf("ingest: malformed battle %q: %s", e.BattleTime, e.Reason)
}

// battleTimeLayouts covers the compact form the live API emits
// (20240601T100000.000Z) and the extended ISO form, with and without
// fractional seconds. Zoneless variants are read as UTC.
var battleTimeLayouts = []string{
	"20060102T150405.000Z0700",
	"20060102T150405Z0700",
	"2006-01-02T15:04:05.000Z07:00",
	"2006-01-02T15:04:05Z07:00",
}

var battleTimeZonelessLayouts = []string{
	"20060102T150405.000",
	"20060102T150405",
	"2006-01-02T15:04:05.000",
	"2006-01-02T15:04:05",
}

func parseBattleTime(s string) (time.Time, error) {
	for _, layout := range battleTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	for _, layout := range battleTimeZonelessLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

// firstOrZero reads the leading participant of a side, falling back to
// a zero-valued participant when the array is empty. This is the only
// place a missing field is defaulted instead of rejected.
func firstOrZero(parts []royale.Participant) royale.Participant {
	if len(parts) == 0 {
		return royale.Participant{}
	}
	return parts[0]
}

// Normalize derives the canonical battle record from one raw
// battle-log entry and the tag of the player whose log produced it. It
// is a pure function: the same input always yields the same record,
// which is what makes the store's upsert idempotent.
func Normalize(raw royale.Battle, playerTag string) (model.Battle, error) {
	if raw.BattleTime == "" {
		return model.Battle{}, &MalformedBattleError{Reason: "missing battleTime"}
	}
	instant, err := parseBattleTime(raw.BattleTime)
	if err != nil {
		return model.Battle{}, &MalformedBattleError{BattleTime: raw.BattleTime, Reason: err.Error()}
	}

	team := firstOrZero(raw.Team)
	opp := firstOrZero(raw.Opponent)

	diff := team.StartingTrophies - opp.StartingTrophies
	if diff < 0 {
		diff = -diff
	}

	// Crown majority decides the winner; equal crowns leave it unset
	// rather than guessed.
	winner := ""
	switch {
	case team.Crowns > opp.Crowns:
		winner = playerTag
	case team.Crowns < opp.Crowns:
		winner = opp.Tag
	}

	return model.Battle{
		BattleTime:       raw.BattleTime,
		PlayerTag:        playerTag,
		Date:             instant.Format("2006/01/02"),
		TimestampS:       instant.Unix(),
		TrophyDifference: diff,
		TowersDestroyed:  team.Crowns,
		Winner:           winner,
		Arena:            raw.Arena.Name,
		GameMode:         raw.GameMode.Name,
		DurationS:        raw.Duration,
		Team:             convertSide(raw.Team),
		Opponent:         convertSide(raw.Opponent),
	}, nil
}

func convertSide(parts []royale.Participant) []model.Participant {
	if len(parts) == 0 {
		return nil
	}
	out := make([]model.Participant, len(parts))
	for i, p := range parts {
		deck := make([]model.DeckCard, len(p.Cards))
		for j, c := range p.Cards {
			deck[j] = model.DeckCard{ID: c.ID, Name: c.Name}
		}
		out[i] = model.Participant{
			Tag:              p.Tag,
			Name:             p.Name,
			StartingTrophies: p.StartingTrophies,
			Crowns:           p.Crowns,
			Deck:             deck,
		}
	}
	return out
}
