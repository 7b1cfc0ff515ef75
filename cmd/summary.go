package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"royale-metrics/internal/model"
	"royale-metrics/internal/report"
	"royale-metrics/internal/stats"
)

var (
	summaryFrom       string
	summaryTo         string
	summaryMinBattles int
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Card usage, player win rates, and peak hours in one shot",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		battles, err := db.ListBattles(summaryFrom, summaryTo)
		if err != nil {
			return err
		}
		names, err := db.CatalogNames()
		if err != nil {
			return err
		}
		if len(battles) == 0 {
			fmt.Println("No battles in range.")
			return nil
		}

		// The statistics are pure and read-only, so they run in
		// parallel over the same loaded slice.
		var (
			usage []model.CardUsage
			rates []model.PlayerRate
			hours []model.HourCount
		)
		var g errgroup.Group
		g.Go(func() error {
			usage = stats.MostUsedCards(battles, names)
			return nil
		})
		g.Go(func() error {
			rates = stats.PlayerWinRates(battles, summaryMinBattles)
			return nil
		})
		g.Go(func() error {
			hours = stats.PeakHours(battles)
			return nil
		})
		if err := g.Wait(); err != nil {
			return err
		}

		fmt.Printf("Battles in range: %d\n\nMost used cards:\n", len(battles))
		report.PrintCardUsage(os.Stdout, usage)
		fmt.Printf("\nPlayer win rates (min %d battles):\n", summaryMinBattles)
		report.PrintPlayerRates(os.Stdout, rates)
		fmt.Println("\nPeak hours (UTC):")
		report.PrintHours(os.Stdout, hours)
		return nil
	},
}

func init() {
	summaryCmd.Flags().StringVar(&summaryFrom, "from", "", "start date, YYYY/MM/DD inclusive")
	summaryCmd.Flags().StringVar(&summaryTo, "to", "", "end date, YYYY/MM/DD inclusive")
	summaryCmd.Flags().IntVar(&summaryMinBattles, "min-battles", 1, "exclude players with fewer battles")
}
