package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var dropYes bool

var dropCmd = &cobra.Command{
	Use:   "drop",
	Short: "Delete all stored battles (cards and players are kept)",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !dropYes {
			return fmt.Errorf("refusing to delete without --yes")
		}
		db, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		n, err := db.CountBattles()
		if err != nil {
			return err
		}
		if err := db.DropBattles(); err != nil {
			return err
		}
		fmt.Printf("Dropped %d battles\n", n)
		return nil
	},
}

func init() {
	dropCmd.Flags().BoolVar(&dropYes, "yes", false, "confirm deletion")
}
