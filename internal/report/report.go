// Package report renders statistic results as text tables.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"royale-metrics/internal/model"
)

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))
}

// PrintWinLoss prints a card's win/loss percentage pair.
func PrintWinLoss(w io.Writer, cardName string, wl model.WinLoss) {
	fmt.Fprintf(w, "Card: %s  |  Battles: %d\n", cardName, wl.Total)
	fmt.Fprintf(w, "  Wins:   %.2f%%\n", wl.WinPct())
	fmt.Fprintf(w, "  Losses: %.2f%%\n", wl.LossPct())
}

// PrintDecks prints high win-rate deck signatures.
func PrintDecks(w io.Writer, decks []model.DeckStats) {
	table := newTable(w)
	table.Header("DECK", "BATTLES", "WINS", "WIN%")
	for _, d := range decks {
		table.Append(
			strings.Join(d.Names, ", "),
			strconv.Itoa(d.Total),
			strconv.Itoa(d.Wins),
			fmt.Sprintf("%.2f%%", d.WinPct()),
		)
	}
	table.Render()
}

// PrintCombos prints ranked card combos of one size.
func PrintCombos(w io.Writer, combos []model.ComboStats) {
	table := newTable(w)
	table.Header("COMBO", "USES", "WINS", "WIN%")
	for _, c := range combos {
		table.Append(
			strings.Join(c.Names, ", "),
			strconv.Itoa(c.Occurrences),
			strconv.Itoa(c.Wins),
			fmt.Sprintf("%.2f%%", c.WinPct()),
		)
	}
	table.Render()
}

// PrintCardUsage prints the most-used-cards leaderboard.
func PrintCardUsage(w io.Writer, usage []model.CardUsage) {
	table := newTable(w)
	table.Header("CARD", "USES")
	for _, u := range usage {
		table.Append(u.Name, strconv.Itoa(u.Count))
	}
	table.Render()
}

// PrintPlayerRates prints per-player win rates.
func PrintPlayerRates(w io.Writer, rates []model.PlayerRate) {
	table := newTable(w)
	table.Header("PLAYER", "BATTLES", "WINS", "WIN RATE")
	for _, r := range rates {
		table.Append(
			r.Tag,
			strconv.Itoa(r.Battles),
			strconv.Itoa(r.Wins),
			fmt.Sprintf("%.2f%%", r.WinRate()*100),
		)
	}
	table.Render()
}

// PrintArenaRates prints per-card win rates within one arena.
func PrintArenaRates(w io.Writer, arena string, rates []model.CardArenaRate) {
	fmt.Fprintf(w, "Arena: %s\n", arena)
	table := newTable(w)
	table.Header("CARD", "USES", "WINS", "WIN RATE")
	for _, r := range rates {
		table.Append(
			r.Name,
			strconv.Itoa(r.Uses),
			strconv.Itoa(r.Wins),
			fmt.Sprintf("%.2f%%", r.WinRate()*100),
		)
	}
	table.Render()
}

// PrintHours prints the peak-hour histogram.
func PrintHours(w io.Writer, hours []model.HourCount) {
	table := newTable(w)
	table.Header("HOUR (UTC)", "BATTLES")
	for _, h := range hours {
		table.Append(fmt.Sprintf("%02d:00", h.Hour), strconv.Itoa(h.Count))
	}
	table.Render()
}

// PrintBattleList prints stored battle summaries.
func PrintBattleList(w io.Writer, battles []model.BattleSummary) {
	table := newTable(w)
	table.Header("DATE", "PLAYER", "ARENA", "MODE", "WINNER", "TOWERS")
	for _, b := range battles {
		winner := b.Winner
		if winner == "" {
			winner = "—"
		}
		table.Append(b.Date, b.PlayerTag, b.Arena, b.GameMode, winner, strconv.Itoa(b.TowersDestroyed))
	}
	table.Render()
}
