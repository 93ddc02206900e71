package main

import (
	"time"

	"github.com/siherrmann/starcalc/core/resolve"
	"github.com/spf13/cobra"
)

var distanceCmd = &cobra.Command{
	Use:     "distance <catalogue> <identifier> <catalogue> <identifier>",
	Short:   "Measure the distance between two stars at an epoch",
	Example: "  starcalc distance proper Sol hip 71683 --year 2100",
	Args:    cobra.ExactArgs(4),
	RunE:    runDistance,
}

func init() {
	distanceCmd.Flags().Int("year", time.Now().Year(), "epoch the stars are moved to")
}

func runDistance(cmd *cobra.Command, args []string) error {
	year, err := cmd.Flags().GetInt("year")
	if err != nil {
		return err
	}

	s, err := openStarCalc()
	if err != nil {
		return err
	}
	defer s.Close()

	comparison, err := s.Compare(
		cmd.Context(),
		resolve.Input{Catalogue: args[0], Identifier: args[1]},
		resolve.Input{Catalogue: args[2], Identifier: args[3]},
		year,
	)
	if err != nil {
		return err
	}

	renderComparison(cmd.OutOrStdout(), comparison)
	return nil
}
