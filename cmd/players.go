package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"royale-metrics/internal/report"
	"royale-metrics/internal/stats"
)

var playersMinBattles int

var playersCmd = &cobra.Command{
	Use:   "players",
	Short: "Win rate per player over their stored battles",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		battles, err := db.ListBattles("", "")
		if err != nil {
			return err
		}

		rates := stats.PlayerWinRates(battles, playersMinBattles)
		if len(rates) == 0 {
			fmt.Printf("No players with at least %d battles.\n", playersMinBattles)
			return nil
		}
		report.PrintPlayerRates(os.Stdout, rates)
		return nil
	},
}

func init() {
	playersCmd.Flags().IntVar(&playersMinBattles, "min-battles", 10, "exclude players with fewer battles")
}
