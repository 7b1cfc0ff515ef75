package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"royale-metrics/internal/report"
	"royale-metrics/internal/stats"
)

var (
	decksMin  float64
	decksFrom string
	decksTo   string
)

var decksCmd = &cobra.Command{
	Use:   "decks",
	Short: "Full decks with a win rate above a threshold",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		battles, err := db.ListBattles(decksFrom, decksTo)
		if err != nil {
			return err
		}
		names, err := db.CatalogNames()
		if err != nil {
			return err
		}

		decks := stats.HighWinRateDecks(battles, decksMin, names)
		if len(decks) == 0 {
			fmt.Printf("No decks above %.1f%% win rate in range.\n", decksMin)
			return nil
		}
		report.PrintDecks(os.Stdout, decks)
		return nil
	},
}

func init() {
	decksCmd.Flags().Float64Var(&decksMin, "min", 60, "minimum win percentage (exclusive)")
	decksCmd.Flags().StringVar(&decksFrom, "from", "", "start date, YYYY/MM/DD inclusive")
	decksCmd.Flags().StringVar(&decksTo, "to", "", "end date, YYYY/MM/DD inclusive")
}
