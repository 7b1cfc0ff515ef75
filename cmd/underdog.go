package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"royale-metrics/internal/stats"
)

var (
	underdogCard     string
	underdogDeficit  float64
	underdogDuration int
	underdogCrowns   int
	underdogFrom     string
	underdogTo       string
)

var underdogCmd = &cobra.Command{
	Use:   "underdog",
	Short: "Count underdog wins featuring a card",
	Long: `Counts short, hard-fought battles won by the side that entered
with at least the given percentage fewer trophies, with the card in the
winning deck. The duration and loser-crown thresholds default to the
values the original data set used.

Example:
  royale underdog --card "Hog Rider" --deficit 15`,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		c, err := db.CardByName(underdogCard)
		if err != nil {
			return err
		}
		if c == nil {
			return &stats.ResolutionError{Name: underdogCard}
		}

		battles, err := db.ListBattles(underdogFrom, underdogTo)
		if err != nil {
			return err
		}

		params := stats.UnderdogParams{
			MaxDurationS:   underdogDuration,
			MinLoserCrowns: underdogCrowns,
		}
		wins := stats.UnderdogWins(battles, c.ID, underdogDeficit, params)
		fmt.Printf("Underdog wins with %s at >=%.1f%% trophy deficit: %d\n",
			c.Name, underdogDeficit, wins)
		return nil
	},
}

func init() {
	defaults := stats.DefaultUnderdogParams()
	underdogCmd.Flags().StringVar(&underdogCard, "card", "", "card name (required)")
	underdogCmd.Flags().Float64Var(&underdogDeficit, "deficit", 15, "minimum trophy deficit percentage")
	underdogCmd.Flags().IntVar(&underdogDuration, "max-duration", defaults.MaxDurationS, "battle must be shorter than this many seconds")
	underdogCmd.Flags().IntVar(&underdogCrowns, "min-loser-crowns", defaults.MinLoserCrowns, "losing side must have scored at least this many crowns")
	underdogCmd.Flags().StringVar(&underdogFrom, "from", "", "start date, YYYY/MM/DD inclusive")
	underdogCmd.Flags().StringVar(&underdogTo, "to", "", "end date, YYYY/MM/DD inclusive")
	_ = underdogCmd.MarkFlagRequired("card")
}
