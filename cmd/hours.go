package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"royale-metrics/internal/report"
	"royale-metrics/internal/stats"
)

var hoursCmd = &cobra.Command{
	Use:   "hours",
	Short: "Five busiest UTC hours of day across all stored battles",
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

		hours := stats.PeakHours(battles)
		if len(hours) == 0 {
			fmt.Println("No battles stored.")
			return nil
		}
		report.PrintHours(os.Stdout, hours)
		return nil
	},
}
