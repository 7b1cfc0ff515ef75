package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"royale-metrics/internal/report"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored battles, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		battles, err := db.ListBattleSummaries()
		if err != nil {
			return err
		}
		if len(battles) == 0 {
			fmt.Println("No battles stored. Run 'royale sync' first.")
			return nil
		}
		report.PrintBattleList(os.Stdout, battles)
		fmt.Printf("\n%d battles\n", len(battles))
		return nil
	},
}
