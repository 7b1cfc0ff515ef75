package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"royale-metrics/internal/report"
	"royale-metrics/internal/stats"
)

var (
	cardName string
	cardFrom string
	cardTo   string
)

var cardCmd = &cobra.Command{
	Use:   "card",
	Short: "Win/loss percentage of battles featuring a card",
	Long: `Among battles where the card appeared on either side, reports how
often the side that used it took all three crowns.

Example:
  royale card --name "Hog Rider" --from 2024/01/01 --to 2024/12/31`,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		c, err := db.CardByName(cardName)
		if err != nil {
			return err
		}
		if c == nil {
			return &stats.ResolutionError{Name: cardName}
		}

		battles, err := db.ListBattles(cardFrom, cardTo)
		if err != nil {
			return err
		}
		report.PrintWinLoss(os.Stdout, c.Name, stats.CardWinLoss(battles, c.ID))
		return nil
	},
}

func init() {
	cardCmd.Flags().StringVar(&cardName, "name", "", "card name (required)")
	cardCmd.Flags().StringVar(&cardFrom, "from", "", "start date, YYYY/MM/DD inclusive")
	cardCmd.Flags().StringVar(&cardTo, "to", "", "end date, YYYY/MM/DD inclusive")
	_ = cardCmd.MarkFlagRequired("name")
}
