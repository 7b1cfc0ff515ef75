// Package stats implements the fixed statistic catalog over canonical
// battles. Every function here is pure and read-only: it takes loaded
// battles plus catalog lookups and returns a result, so any number of
// computations can run concurrently.
package stats

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"royale-metrics/internal/model"
)

// ResolutionError marks a user-supplied card name that has no catalog
// entry. The statistic request fails; no substitute id is guessed.
type ResolutionError struct {
	Name string
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("stats: unknown card name %q", e.Name)
}

// ResolveCards maps display names to card ids against the catalog.
// Combos must match by identity, not by name string, so every name has
// to resolve; the first unresolvable one fails the whole request.
func ResolveCards(catalog []model.Card, names []string) ([]int, error) {
	byName := make(map[string]int, len(catalog))
	for _, c := range catalog {
		byName[c.Name] = c.ID
	}
	ids := make([]int, 0, len(names))
	for _, name := range names {
		id, ok := byName[name]
		if !ok {
			return nil, &ResolutionError{Name: name}
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// NameFor resolves a card id to its display name, degrading to
// "#<id>" when the catalog has no entry. Statistics always produce a
// numeric result; only the label degrades.
func NameFor(names map[int]string, id int) string {
	if name, ok := names[id]; ok {
		return name
	}
	return "#" + strconv.Itoa(id)
}

func deckHas(deck []model.DeckCard, cardID int) bool {
	for _, c := range deck {
		if c.ID == cardID {
			return true
		}
	}
	return false
}

func sideHas(parts []model.Participant, cardID int) bool {
	for _, p := range parts {
		if deckHas(p.Deck, cardID) {
			return true
		}
	}
	return false
}

func sideCrowns(parts []model.Participant) int {
	if len(parts) == 0 {
		return 0
	}
	return parts[0].Crowns
}

// CardWinLoss computes the win/loss percentage of battles in which the
// card appeared on either side. The side that used it wins when it
// took all three crowns; if both sides ran the card, the team side is
// the one attributed. A zero-match input yields 0/0, not a division
// fault.
func CardWinLoss(battles []model.Battle, cardID int) model.WinLoss {
	var w model.WinLoss
	for i := range battles {
		b := &battles[i]
		var crowns int
		switch {
		case sideHas(b.Team, cardID):
			crowns = sideCrowns(b.Team)
		case sideHas(b.Opponent, cardID):
			crowns = sideCrowns(b.Opponent)
		default:
			continue
		}
		w.Total++
		if crowns == 3 {
			w.Wins++
		}
	}
	return w
}

// signature returns the order-insensitive card-id key of a deck.
func signature(deck []model.DeckCard) ([]int, string) {
	ids := make([]int, len(deck))
	for i, c := range deck {
		ids[i] = c.ID
	}
	sort.Ints(ids)
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return ids, strings.Join(parts, ",")
}

// HighWinRateDecks groups battles by the team's full 8-card deck
// signature and returns the decks whose win percentage exceeds minPct,
// descending. Decks with zero battles simply never appear.
func HighWinRateDecks(battles []model.Battle, minPct float64, names map[int]string) []model.DeckStats {
	groups := make(map[string]*model.DeckStats)
	for i := range battles {
		b := &battles[i]
		deck := b.TeamDeck()
		if len(deck) != 8 {
			continue
		}
		ids, key := signature(deck)
		g, ok := groups[key]
		if !ok {
			g = &model.DeckStats{CardIDs: ids}
			groups[key] = g
		}
		g.Total++
		if b.TeamWon() {
			g.Wins++
		}
	}

	var out []model.DeckStats
	for _, g := range groups {
		if g.WinPct() <= minPct {
			continue
		}
		g.Names = make([]string, len(g.CardIDs))
		for i, id := range g.CardIDs {
			g.Names[i] = NameFor(names, id)
		}
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].WinPct() != out[j].WinPct() {
			return out[i].WinPct() > out[j].WinPct()
		}
		return lessIDs(out[i].CardIDs, out[j].CardIDs)
	})
	return out
}

// ComboLossCount counts battles where the team's deck contained every
// card of the combo and the team did not reach three crowns. comboIDs
// come from ResolveCards.
func ComboLossCount(battles []model.Battle, comboIDs []int) int {
	losses := 0
	for i := range battles {
		b := &battles[i]
		deck := b.TeamDeck()
		supersets := true
		for _, id := range comboIDs {
			if !deckHas(deck, id) {
				supersets = false
				break
			}
		}
		if supersets && len(deck) > 0 && !b.TeamWon() {
			losses++
		}
	}
	return losses
}

// UnderdogParams are the thresholds of the underdog-win statistic. The
// defaults are the original data set's constants; they have no
// documented rationale beyond that, so they stay parameters instead of
// literals.
type UnderdogParams struct {
	MaxDurationS   int // battle must be shorter than this
	MinLoserCrowns int // losing side must still have scored this many
}

// DefaultUnderdogParams returns the thresholds the original corpus
// used: battles under two minutes where the loser took two towers.
func DefaultUnderdogParams() UnderdogParams {
	return UnderdogParams{MaxDurationS: 120, MinLoserCrowns: 2}
}

// UnderdogWins counts short, hard-fought battles won by the side that
// entered with at least deficitPct percent fewer trophies than the
// loser, with the given card in the winning deck. Battles with an
// empty side or tied crowns never match.
func UnderdogWins(battles []model.Battle, cardID int, deficitPct float64, p UnderdogParams) int {
	wins := 0
	for i := range battles {
		b := &battles[i]
		if len(b.Team) == 0 || len(b.Opponent) == 0 {
			continue
		}
		if b.DurationS >= p.MaxDurationS {
			continue
		}
		team, opp := &b.Team[0], &b.Opponent[0]
		var winner, loser *model.Participant
		switch {
		case team.Crowns > opp.Crowns:
			winner, loser = team, opp
		case opp.Crowns > team.Crowns:
			winner, loser = opp, team
		default:
			continue
		}
		if loser.Crowns < p.MinLoserCrowns {
			continue
		}
		if !deckHas(winner.Deck, cardID) {
			continue
		}
		ceiling := float64(loser.StartingTrophies) * (100 - deficitPct) / 100
		if float64(winner.StartingTrophies) <= ceiling {
			wins++
		}
	}
	return wins
}

// BestCombos ranks every card subset of size n by win rate across all
// battles whose team deck held exactly 8 distinct cards. Enumeration
// is exhaustive over all C(8, n) subsets of each deck, not a top-card
// shortcut. Groups at or below minPct are dropped; the rest are sorted
// descending, ties by subset ids ascending.
func BestCombos(battles []model.Battle, n int, minPct float64, names map[int]string) []model.ComboStats {
	if n < 1 || n > 8 {
		return nil
	}
	groups := make(map[string]*model.ComboStats)
	for i := range battles {
		b := &battles[i]
		ids, _ := signature(b.TeamDeck())
		if len(ids) != 8 || !distinct(ids) {
			continue
		}
		won := b.TeamWon()
		forEachSubset(ids, n, func(subset []int) {
			key := idsKey(subset)
			g, ok := groups[key]
			if !ok {
				g = &model.ComboStats{CardIDs: append([]int(nil), subset...)}
				groups[key] = g
			}
			g.Occurrences++
			if won {
				g.Wins++
			}
		})
	}

	var out []model.ComboStats
	for _, g := range groups {
		if g.WinPct() <= minPct {
			continue
		}
		g.Names = make([]string, len(g.CardIDs))
		for i, id := range g.CardIDs {
			g.Names[i] = NameFor(names, id)
		}
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].WinPct() != out[j].WinPct() {
			return out[i].WinPct() > out[j].WinPct()
		}
		return lessIDs(out[i].CardIDs, out[j].CardIDs)
	})
	return out
}

// forEachSubset visits every size-n combination of the sorted ids, in
// lexicographic order.
func forEachSubset(ids []int, n int, visit func([]int)) {
	subset := make([]int, n)
	var rec func(start, depth int)
	rec = func(start, depth int) {
		if depth == n {
			visit(subset)
			return
		}
		for i := start; i <= len(ids)-(n-depth); i++ {
			subset[depth] = ids[i]
			rec(i+1, depth+1)
		}
	}
	rec(0, 0)
}

func distinct(sorted []int) bool {
	for i := 1; i < len(sorted); i++ {
		if sorted[i] == sorted[i-1] {
			return false
		}
	}
	return true
}

func idsKey(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}

func lessIDs(a, b []int) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}

// MostUsedCards flattens every participant's deck on both sides and
// returns the ten most used cards, ties broken by card id ascending.
func MostUsedCards(battles []model.Battle, names map[int]string) []model.CardUsage {
	counts := make(map[int]int)
	for i := range battles {
		b := &battles[i]
		for _, side := range [][]model.Participant{b.Team, b.Opponent} {
			for _, p := range side {
				for _, c := range p.Deck {
					counts[c.ID]++
				}
			}
		}
	}

	out := make([]model.CardUsage, 0, len(counts))
	for id, n := range counts {
		out = append(out, model.CardUsage{CardID: id, Name: NameFor(names, id), Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].CardID < out[j].CardID
	})
	if len(out) > 10 {
		out = out[:10]
	}
	return out
}

// PlayerWinRates groups canonical battles by owning player and returns
// each player's win rate (wins over their own battles, not the global
// total), excluding players below minBattles. Sorted by rate
// descending, ties by tag ascending.
func PlayerWinRates(battles []model.Battle, minBattles int) []model.PlayerRate {
	byTag := make(map[string]*model.PlayerRate)
	for i := range battles {
		b := &battles[i]
		r, ok := byTag[b.PlayerTag]
		if !ok {
			r = &model.PlayerRate{Tag: b.PlayerTag}
			byTag[b.PlayerTag] = r
		}
		r.Battles++
		if b.Winner == b.PlayerTag {
			r.Wins++
		}
	}

	var out []model.PlayerRate
	for _, r := range byTag {
		if r.Battles < minBattles {
			continue
		}
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].WinRate() != out[j].WinRate() {
			return out[i].WinRate() > out[j].WinRate()
		}
		return out[i].Tag < out[j].Tag
	})
	return out
}

// CardWinRatesByArena restricts battles to an exact arena label,
// flattens both sides' decks, and rates each card by how often its own
// side took three crowns when it was played. Top ten by rate,
// descending, ties by card id.
func CardWinRatesByArena(battles []model.Battle, arena string, names map[int]string) []model.CardArenaRate {
	byCard := make(map[int]*model.CardArenaRate)
	for i := range battles {
		b := &battles[i]
		if b.Arena != arena {
			continue
		}
		for _, side := range [][]model.Participant{b.Team, b.Opponent} {
			won := sideCrowns(side) == 3
			for _, p := range side {
				for _, c := range p.Deck {
					r, ok := byCard[c.ID]
					if !ok {
						r = &model.CardArenaRate{CardID: c.ID, Name: NameFor(names, c.ID)}
						byCard[c.ID] = r
					}
					r.Uses++
					if won {
						r.Wins++
					}
				}
			}
		}
	}

	out := make([]model.CardArenaRate, 0, len(byCard))
	for _, r := range byCard {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].WinRate() != out[j].WinRate() {
			return out[i].WinRate() > out[j].WinRate()
		}
		return out[i].CardID < out[j].CardID
	})
	if len(out) > 10 {
		out = out[:10]
	}
	return out
}

// PeakHours derives the UTC hour of day from each battle's epoch
// timestamp and returns the five busiest hours by count. Hours with no
// battles are absent, not zero-filled. Ties by hour ascending.
func PeakHours(battles []model.Battle) []model.HourCount {
	counts := make(map[int]int)
	for i := range battles {
		h := time.Unix(battles[i].TimestampS, 0).UTC().Hour()
		counts[h]++
	}

	out := make([]model.HourCount, 0, len(counts))
	for h, n := range counts {
		out = append(out, model.HourCount{Hour: h, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Hour < out[j].Hour
	})
	if len(out) > 5 {
		out = out[:5]
	}
	return out
}
