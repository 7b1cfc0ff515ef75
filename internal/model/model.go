package model

// Card is one entry of the game's card catalog, upserted wholesale on
// each catalog sync. Identity is the numeric id the API assigns.
type Card struct {
	ID       int
	Name     string
	MaxLevel int
	IconURL  string
}

// Player is a clan member's profile snapshot, replaced wholesale on
// each sync (last write wins, keyed by tag).
type Player struct {
	Tag      string
	Name     string
	ExpLevel int
	Trophies int
	ClanTag  string
	SyncedAt int64 // unix seconds of the sync that wrote this row
}

// DeckCard is one card slot of a participant's deck as it appeared in
// a battle. Name is the label at battle time; the catalog may rename a
// card later without touching stored battles.
type DeckCard struct {
	ID   int
	Name string
}

// Participant is one side's entry in a battle: the player behind it,
// their trophies going in, the crowns they scored, and the deck used.
type Participant struct {
	Tag              string
	Name             string
	StartingTrophies int
	Crowns           int
	Deck             []DeckCard
}

// Battle is the canonical record derived from one raw battle-log entry
// plus the tag of the player whose log it came from. The pair
// (BattleTime, PlayerTag) is the natural key: the same global battle
// shows up once per clan member that played it.
type Battle struct {
	BattleTime string // source timestamp string, part of identity
	PlayerTag  string // owning player, part of identity

	Date       string // YYYY/MM/DD, derived from BattleTime in UTC
	TimestampS int64  // epoch seconds of BattleTime in UTC

	TrophyDifference int // |team trophies - opponent trophies|
	// TowersDestroyed is the team side's crown count. The upstream
	// payload has no real tower-destruction field, so crowns stand in
	// for it; the name is kept from the original data set.
	TowersDestroyed int
	// Winner is the tag of the crown-majority side, or "" on a tie.
	Winner string

	Arena     string
	GameMode  string
	DurationS int

	Team     []Participant
	Opponent []Participant
}

// TeamDeck returns the first team participant's deck, or nil when the
// team array was empty in the source payload.
func (b *Battle) TeamDeck() []DeckCard {
	if len(b.Team) == 0 {
		return nil
	}
	return b.Team[0].Deck
}

// TeamWon reports whether the team side took all three crowns, the
// full-win condition the statistic catalog uses.
func (b *Battle) TeamWon() bool {
	return len(b.Team) > 0 && b.Team[0].Crowns == 3
}

// BattleSummary is a lightweight record for the list command.
type BattleSummary struct {
	BattleTime      string
	PlayerTag       string
	Date            string
	Arena           string
	GameMode        string
	Winner          string
	TowersDestroyed int
}

// ---- Statistic results ----

// WinLoss holds a win/loss percentage pair. When Total is zero both
// percentages are zero, never NaN.
type WinLoss struct {
	Total int
	Wins  int
}

func (w WinLoss) WinPct() float64 {
	if w.Total == 0 {
		return 0
	}
	return float64(w.Wins) / float64(w.Total) * 100
}

func (w WinLoss) LossPct() float64 {
	if w.Total == 0 {
		return 0
	}
	return 100 - w.WinPct()
}

// DeckStats is the win rate of one full 8-card deck signature.
type DeckStats struct {
	CardIDs []int // sorted ascending, the order-insensitive signature
	Names   []string
	Total   int
	Wins    int
}

func (d DeckStats) WinPct() float64 {
	if d.Total == 0 {
		return 0
	}
	return float64(d.Wins) / float64(d.Total) * 100
}

// ComboStats is the win rate of one N-card subset across all decks
// that contained it.
type ComboStats struct {
	CardIDs     []int // sorted ascending
	Names       []string
	Occurrences int
	Wins        int
}

func (c ComboStats) WinPct() float64 {
	if c.Occurrences == 0 {
		return 0
	}
	return float64(c.Wins) / float64(c.Occurrences) * 100
}

// CardUsage counts how often a card appeared in any participant's deck.
type CardUsage struct {
	CardID int
	Name   string
	Count  int
}

// PlayerRate is one player's win rate over their own canonical battles.
type PlayerRate struct {
	Tag     string
	Battles int
	Wins    int
}

func (p PlayerRate) WinRate() float64 {
	if p.Battles == 0 {
		return 0
	}
	return float64(p.Wins) / float64(p.Battles)
}

// CardArenaRate is a card's win rate within one arena.
type CardArenaRate struct {
	CardID int
	Name   string
	Uses   int
	Wins   int
}

func (c CardArenaRate) WinRate() float64 {
	if c.Uses == 0 {
		return 0
	}
	return float64(c.Wins) / float64(c.Uses)
}

// HourCount is the battle count for one UTC hour of day.
type HourCount struct {
	Hour  int
	Count int
}
