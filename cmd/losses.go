package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"royale-metrics/internal/stats"
)

var (
	lossesCombo string
	lossesFrom  string
	lossesTo    string
)

var lossesCmd = &cobra.Command{
	Use:   "losses",
	Short: "Count losses with a given card combo in the deck",
	Long: `Counts battles where the team's deck contained every card of the
combo and the team fell short of three crowns. Card names must all
resolve against the synced catalog.

Example:
  royale losses --combo "Hog Rider,Fireball,Zap"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		names := splitCombo(lossesCombo)
		if len(names) == 0 {
			return fmt.Errorf("empty combo: pass --combo as comma-separated card names")
		}

		db, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		catalog, err := db.ListCards()
		if err != nil {
			return err
		}
		ids, err := stats.ResolveCards(catalog, names)
		if err != nil {
			return err
		}

		battles, err := db.ListBattles(lossesFrom, lossesTo)
		if err != nil {
			return err
		}
		losses := stats.ComboLossCount(battles, ids)
		fmt.Printf("Losses with combo [%s]: %d\n", strings.Join(names, ", "), losses)
		return nil
	},
}

// splitCombo parses a comma-separated card-name list, trimming blanks.
func splitCombo(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if name := strings.TrimSpace(part); name != "" {
			out = append(out, name)
		}
	}
	return out
}

func init() {
	lossesCmd.Flags().StringVar(&lossesCombo, "combo", "", "comma-separated card names (required)")
	lossesCmd.Flags().StringVar(&lossesFrom, "from", "", "start date, YYYY/MM/DD inclusive")
	lossesCmd.Flags().StringVar(&lossesTo, "to", "", "end date, YYYY/MM/DD inclusive")
	_ = lossesCmd.MarkFlagRequired("combo")
}
