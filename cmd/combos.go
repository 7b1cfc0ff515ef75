package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"royale-metrics/internal/report"
	"royale-metrics/internal/stats"
)

var (
	combosSize int
	combosMin  float64
	combosFrom string
	combosTo   string
)

var combosCmd = &cobra.Command{
	Use:   "combos",
	Short: "Best card combos of size N by win rate",
	Long: `Enumerates every N-card subset of each full 8-card deck across the
battles in range and ranks the subsets by win rate.

Example:
  royale combos --size 3 --min 60`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if combosSize < 1 || combosSize > 8 {
			return fmt.Errorf("--size must be between 1 and 8, got %d", combosSize)
		}

		db, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		battles, err := db.ListBattles(combosFrom, combosTo)
		if err != nil {
			return err
		}
		names, err := db.CatalogNames()
		if err != nil {
			return err
		}

		combos := stats.BestCombos(battles, combosSize, combosMin, names)
		if len(combos) == 0 {
			fmt.Printf("No %d-card combos above %.1f%% win rate in range.\n", combosSize, combosMin)
			return nil
		}
		report.PrintCombos(os.Stdout, combos)
		return nil
	},
}

func init() {
	combosCmd.Flags().IntVar(&combosSize, "size", 2, "combo size N (1-8)")
	combosCmd.Flags().Float64Var(&combosMin, "min", 60, "minimum win percentage (exclusive)")
	combosCmd.Flags().StringVar(&combosFrom, "from", "", "start date, YYYY/MM/DD inclusive")
	combosCmd.Flags().StringVar(&combosTo, "to", "", "end date, YYYY/MM/DD inclusive")
}
