package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"royale-metrics/internal/report"
	"royale-metrics/internal/stats"
)

var (
	arenaName string
	arenaFrom string
	arenaTo   string
)

var arenaCmd = &cobra.Command{
	Use:   "arena",
	Short: "Card win rates within one arena",
	Long: `Filters battles by exact arena label, flattens both sides' decks,
and rates each card by how often its side took three crowns.

Example:
  royale arena --name "Arena 12"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		battles, err := db.ListBattles(arenaFrom, arenaTo)
		if err != nil {
			return err
		}
		names, err := db.CatalogNames()
		if err != nil {
			return err
		}

		rates := stats.CardWinRatesByArena(battles, arenaName, names)
		if len(rates) == 0 {
			fmt.Printf("No battles in arena %q in range.\n", arenaName)
			return nil
		}
		report.PrintArenaRates(os.Stdout, arenaName, rates)
		return nil
	},
}

func init() {
	arenaCmd.Flags().StringVar(&arenaName, "name", "", "exact arena name (required)")
	arenaCmd.Flags().StringVar(&arenaFrom, "from", "", "start date, YYYY/MM/DD inclusive")
	arenaCmd.Flags().StringVar(&arenaTo, "to", "", "end date, YYYY/MM/DD inclusive")
	_ = arenaCmd.MarkFlagRequired("name")
}
