package stats

import (
	"errors"
	"math"
	"testing"

	"royale-metrics/internal/model"
)

func deck(ids ...int) []model.DeckCard {
	out := make([]model.DeckCard, len(ids))
	for i, id := range ids {
		out[i] = model.DeckCard{ID: id}
	}
	return out
}

// duel builds a 1v1 battle with the given decks and crown counts.
func duel(teamDeck, oppDeck []model.DeckCard, teamCrowns, oppCrowns int) model.Battle {
	return model.Battle{
		Team:     []model.Participant{{Tag: "#T", Crowns: teamCrowns, Deck: teamDeck}},
		Opponent: []model.Participant{{Tag: "#O", Crowns: oppCrowns, Deck: oppDeck}},
	}
}

func almost(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestResolveCards(t *testing.T) {
	catalog := []model.Card{
		{ID: 26000000, Name: "Knight"},
		{ID: 26000001, Name: "Archers"},
	}

	ids, err := ResolveCards(catalog, []string{"Archers", "Knight"})
	if err != nil {
		t.Fatalf("ResolveCards: %v", err)
	}
	if len(ids) != 2 || ids[0] != 26000001 || ids[1] != 26000000 {
		t.Errorf("resolved ids: %v", ids)
	}

	_, err = ResolveCards(catalog, []string{"Knight", "Hog Rider"})
	var rerr *ResolutionError
	if !errors.As(err, &rerr) {
		t.Fatalf("want ResolutionError, got %v", err)
	}
	if rerr.Name != "Hog Rider" {
		t.Errorf("error names %q, want Hog Rider", rerr.Name)
	}
}

func TestNameForFallback(t *testing.T) {
	names := map[int]string{26000000: "Knight"}
	if got := NameFor(names, 26000000); got != "Knight" {
		t.Errorf("known id: got %q", got)
	}
	if got := NameFor(names, 99999); got != "#99999" {
		t.Errorf("unknown id: got %q, want #99999", got)
	}
}

func TestCardWinLoss(t *testing.T) {
	const card = 26000007
	battles := []model.Battle{
		duel(deck(card, 1), deck(2), 3, 0),  // team has card and wins
		duel(deck(card, 1), deck(2), 1, 3),  // team has card and loses
		duel(deck(2), deck(card, 3), 0, 3),  // opponent has card and wins
		duel(deck(2), deck(card, 3), 3, 1),  // opponent has card and loses
		duel(deck(5), deck(6), 3, 0),        // card absent, ignored
		duel(deck(card), deck(card), 2, 3),  // both sides: team attributed, team lost
	}

	w := CardWinLoss(battles, card)
	if w.Total != 5 || w.Wins != 2 {
		t.Fatalf("want 2/5, got %d/%d", w.Wins, w.Total)
	}
	if !almost(w.WinPct(), 40) || !almost(w.LossPct(), 60) {
		t.Errorf("percentages: %.2f / %.2f", w.WinPct(), w.LossPct())
	}
	if !almost(w.WinPct()+w.LossPct(), 100) {
		t.Errorf("percentages do not sum to 100")
	}
}

func TestCardWinLossNoMatches(t *testing.T) {
	battles := []model.Battle{duel(deck(1), deck(2), 3, 0)}
	w := CardWinLoss(battles, 99)
	if w.Total != 0 {
		t.Fatalf("want zero total, got %d", w.Total)
	}
	if w.WinPct() != 0 || w.LossPct() != 0 {
		t.Errorf("zero-match percentages must be 0/0, got %.2f/%.2f", w.WinPct(), w.LossPct())
	}
}

func TestHighWinRateDecks(t *testing.T) {
	a := deck(1, 2, 3, 4, 5, 6, 7, 8)
	// Same deck listed in a different slot order: one signature.
	aShuffled := deck(8, 7, 6, 5, 4, 3, 2, 1)
	b := deck(11, 12, 13, 14, 15, 16, 17, 18)

	battles := []model.Battle{
		duel(a, deck(99), 3, 0),
		duel(aShuffled, deck(99), 3, 1),
		duel(a, deck(99), 0, 3),
		duel(b, deck(99), 1, 3),
		duel(b, deck(99), 0, 3),
		duel(deck(1, 2, 3), deck(99), 3, 0), // not 8 cards, ignored
	}

	got := HighWinRateDecks(battles, 50, nil)
	if len(got) != 1 {
		t.Fatalf("want 1 deck above 50%%, got %d", len(got))
	}
	d := got[0]
	if d.Total != 3 || d.Wins != 2 {
		t.Errorf("deck A grouping: want 2/3, got %d/%d", d.Wins, d.Total)
	}
	if !almost(d.WinPct(), 200.0/3.0) {
		t.Errorf("deck A win pct: %.4f", d.WinPct())
	}
	for i := 0; i < 8; i++ {
		if d.CardIDs[i] != i+1 {
			t.Fatalf("signature not sorted: %v", d.CardIDs)
		}
	}

	// Threshold is strict: a deck at exactly minPct is excluded.
	if got := HighWinRateDecks(battles, 200.0/3.0, nil); len(got) != 0 {
		t.Errorf("deck at exactly minPct must be dropped, got %d", len(got))
	}
}

func TestComboLossCount(t *testing.T) {
	combo := []int{1, 2}
	battles := []model.Battle{
		duel(deck(1, 2, 3), deck(9), 0, 3), // combo present, loss
		duel(deck(1, 2, 3), deck(9), 2, 2), // combo present, no 3 crowns: loss
		duel(deck(1, 2, 3), deck(9), 3, 0), // combo present, win
		duel(deck(1, 3, 4), deck(9), 0, 3), // combo incomplete
		duel(deck(9), deck(1, 2), 0, 3),    // combo only on opponent side
	}
	if got := ComboLossCount(battles, combo); got != 2 {
		t.Errorf("combo losses: want 2, got %d", got)
	}
}

func TestUnderdogWins(t *testing.T) {
	const card = 5
	p := DefaultUnderdogParams()

	base := func() model.Battle {
		return model.Battle{
			DurationS: 110,
			Team:      []model.Participant{{Tag: "#U", StartingTrophies: 4250, Crowns: 3, Deck: deck(card)}},
			Opponent:  []model.Participant{{Tag: "#F", StartingTrophies: 5000, Crowns: 2, Deck: deck(9)}},
		}
	}

	// 15% deficit ceiling of a 5000-trophy loser is 4250: the boundary
	// itself qualifies.
	boundary := base()

	over := base()
	over.Team[0].StartingTrophies = 4251

	tooLong := base()
	tooLong.DurationS = 120 // must be strictly under the cap

	oneCrownLoser := base()
	oneCrownLoser.Opponent[0].Crowns = 1

	noCard := base()
	noCard.Team[0].Deck = deck(9)

	tied := base()
	tied.Opponent[0].Crowns = 3

	battles := []model.Battle{boundary, over, tooLong, oneCrownLoser, noCard, tied}
	if got := UnderdogWins(battles, card, 15, p); got != 1 {
		t.Errorf("underdog wins: want 1 (boundary only), got %d", got)
	}
}

func TestUnderdogWinsOpponentSide(t *testing.T) {
	// The underdog may be the opponent side.
	b := model.Battle{
		DurationS: 90,
		Team:      []model.Participant{{Tag: "#F", StartingTrophies: 6000, Crowns: 2, Deck: deck(9)}},
		Opponent:  []model.Participant{{Tag: "#U", StartingTrophies: 5000, Crowns: 3, Deck: deck(5)}},
	}
	if got := UnderdogWins([]model.Battle{b}, 5, 15, DefaultUnderdogParams()); got != 1 {
		t.Errorf("opponent-side underdog: want 1, got %d", got)
	}
}

func TestBestCombos(t *testing.T) {
	a := deck(1, 2, 3, 4, 5, 6, 7, 8)
	b := deck(1, 2, 9, 10, 11, 12, 13, 14)
	battles := []model.Battle{
		duel(a, deck(99), 3, 0),
		duel(a, deck(99), 3, 1),
		duel(a, deck(99), 0, 3),
		duel(b, deck(99), 1, 3),
		duel(deck(1, 1, 2, 3, 4, 5, 6, 7), deck(99), 3, 0), // duplicate id, skipped
	}

	got := BestCombos(battles, 2, 60, nil)
	// Deck A contributes C(8,2)=28 pairs at 2/3 wins, except {1,2}
	// which deck B drags down to 2/4 = 50%. 27 pairs clear 60%.
	if len(got) != 27 {
		t.Fatalf("want 27 pairs above 60%%, got %d", len(got))
	}
	for _, c := range got {
		if c.Occurrences != 3 || c.Wins != 2 {
			t.Fatalf("pair %v: want 2/3, got %d/%d", c.CardIDs, c.Wins, c.Occurrences)
		}
	}
	// Equal rates sort by subset ids ascending: {1,3} leads once {1,2}
	// is filtered out.
	if got[0].CardIDs[0] != 1 || got[0].CardIDs[1] != 3 {
		t.Errorf("first pair: want [1 3], got %v", got[0].CardIDs)
	}

	// Lowering the threshold brings {1,2} and it alone back.
	all := BestCombos(battles, 2, 40, nil)
	if len(all) != 28 {
		t.Fatalf("want 28 pairs above 40%%, got %d", len(all))
	}
	last := all[len(all)-1]
	if last.CardIDs[0] != 1 || last.CardIDs[1] != 2 || last.Occurrences != 4 || last.Wins != 2 {
		t.Errorf("pair {1,2}: got %+v", last)
	}
}

func TestBestCombosSizeBounds(t *testing.T) {
	battles := []model.Battle{duel(deck(1, 2, 3, 4, 5, 6, 7, 8), deck(99), 3, 0)}
	if got := BestCombos(battles, 0, 0, nil); got != nil {
		t.Errorf("size 0: want nil, got %v", got)
	}
	if got := BestCombos(battles, 9, 0, nil); got != nil {
		t.Errorf("size 9: want nil, got %v", got)
	}
	if got := BestCombos(battles, 8, 0, nil); len(got) != 1 {
		t.Errorf("size 8: want the single full deck, got %d", len(got))
	}
}

func TestMostUsedCards(t *testing.T) {
	// Card 1 in three decks, cards 2 and 3 in two each, the rest once.
	battles := []model.Battle{
		duel(deck(1, 2), deck(1, 3), 3, 0),
		duel(deck(1, 3), deck(2), 0, 3),
		duel(deck(4), deck(5), 1, 1),
	}
	got := MostUsedCards(battles, map[int]string{1: "Knight"})
	if len(got) != 5 {
		t.Fatalf("distinct cards: want 5, got %d", len(got))
	}
	if got[0].CardID != 1 || got[0].Count != 3 || got[0].Name != "Knight" {
		t.Errorf("top card: %+v", got[0])
	}
	// 2 and 3 tie at two uses each: lower id first.
	if got[1].CardID != 2 || got[2].CardID != 3 {
		t.Errorf("tie break by id: got %d then %d", got[1].CardID, got[2].CardID)
	}
	if got[1].Name != "#2" {
		t.Errorf("uncatalogued card label: got %q", got[1].Name)
	}
}

func TestMostUsedCardsTopTen(t *testing.T) {
	var team []model.DeckCard
	for id := 1; id <= 12; id++ {
		team = append(team, model.DeckCard{ID: id})
	}
	battles := []model.Battle{{Team: []model.Participant{{Deck: team}}}}
	if got := MostUsedCards(battles, nil); len(got) != 10 {
		t.Errorf("want top 10, got %d", len(got))
	}
}

func TestPlayerWinRates(t *testing.T) {
	own := func(tag, winner string) model.Battle {
		return model.Battle{PlayerTag: tag, Winner: winner}
	}
	battles := []model.Battle{
		own("#A", "#A"), own("#A", "#A"), own("#A", ""),   // 2/3
		own("#B", "#B"), own("#B", "#X"),                  // 1/2
		own("#C", "#C"),                                   // below minBattles
	}

	got := PlayerWinRates(battles, 2)
	if len(got) != 2 {
		t.Fatalf("want 2 players at minBattles=2, got %d", len(got))
	}
	if got[0].Tag != "#A" || !almost(got[0].WinRate(), 2.0/3.0) {
		t.Errorf("first: %+v", got[0])
	}
	if got[1].Tag != "#B" || !almost(got[1].WinRate(), 0.5) {
		t.Errorf("second: %+v", got[1])
	}
}

func TestPlayerWinRatesTieByTag(t *testing.T) {
	battles := []model.Battle{
		{PlayerTag: "#B", Winner: "#B"},
		{PlayerTag: "#A", Winner: "#A"},
	}
	got := PlayerWinRates(battles, 1)
	if got[0].Tag != "#A" || got[1].Tag != "#B" {
		t.Errorf("equal rates must order by tag: %s, %s", got[0].Tag, got[1].Tag)
	}
}

func TestCardWinRatesByArena(t *testing.T) {
	inArena := duel(deck(1), deck(2), 3, 0)
	inArena.Arena = "Legendary Arena"
	alsoIn := duel(deck(1), deck(2), 0, 3)
	alsoIn.Arena = "Legendary Arena"
	elsewhere := duel(deck(1), deck(2), 3, 0)
	elsewhere.Arena = "Spell Valley"

	got := CardWinRatesByArena([]model.Battle{inArena, alsoIn, elsewhere}, "Legendary Arena", nil)
	if len(got) != 2 {
		t.Fatalf("want 2 cards, got %d", len(got))
	}
	// Both cards were used twice in the arena and won once: tie on
	// rate, lower id first.
	for i, want := range []int{1, 2} {
		if got[i].CardID != want || got[i].Uses != 2 || got[i].Wins != 1 {
			t.Errorf("card %d: %+v", want, got[i])
		}
		if !almost(got[i].WinRate(), 0.5) {
			t.Errorf("card %d rate: %.2f", want, got[i].WinRate())
		}
	}
}

func TestPeakHours(t *testing.T) {
	at := func(hour int) model.Battle {
		// 2024-06-01 00:00 UTC plus the hour.
		return model.Battle{TimestampS: 1717200000 + int64(hour)*3600}
	}
	battles := []model.Battle{
		at(10), at(10), at(10),
		at(21), at(21),
		at(3), at(3),
		at(7), at(15), at(18), at(23),
	}

	got := PeakHours(battles)
	if len(got) != 5 {
		t.Fatalf("want top 5 hours, got %d", len(got))
	}
	if got[0].Hour != 10 || got[0].Count != 3 {
		t.Errorf("busiest hour: %+v", got[0])
	}
	// Hours 3 and 21 tie at two: lower hour first.
	if got[1].Hour != 3 || got[2].Hour != 21 {
		t.Errorf("tie break: got hours %d, %d", got[1].Hour, got[2].Hour)
	}
	// Singleton hours tie at one: hour ascending fills the rest.
	if got[3].Hour != 7 || got[4].Hour != 15 {
		t.Errorf("singleton order: got %d, %d", got[3].Hour, got[4].Hour)
	}
}
