package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"royale-metrics/internal/report"
	"royale-metrics/internal/stats"
)

var (
	usageFrom string
	usageTo   string
)

var usageCmd = &cobra.Command{
	Use:   "usage",
	Short: "Ten most-used cards across all decks in range",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		battles, err := db.ListBattles(usageFrom, usageTo)
		if err != nil {
			return err
		}
		names, err := db.CatalogNames()
		if err != nil {
			return err
		}

		usage := stats.MostUsedCards(battles, names)
		if len(usage) == 0 {
			fmt.Println("No battles in range.")
			return nil
		}
		report.PrintCardUsage(os.Stdout, usage)
		return nil
	},
}

func init() {
	usageCmd.Flags().StringVar(&usageFrom, "from", "", "start date, YYYY/MM/DD inclusive")
	usageCmd.Flags().StringVar(&usageTo, "to", "", "end date, YYYY/MM/DD inclusive")
}
