package main

import (
	"fmt"

	"github.com/cockroachdb/apd/v3"
	"github.com/siherrmann/starcalc/core/resolve"
	"github.com/spf13/cobra"
)

var nearbyCmd = &cobra.Command{
	Use:     "nearby <catalogue> <identifier>",
	Short:   "List stars within a radius of a star",
	Example: "  starcalc nearby proper Sol --radius 3.5",
	Args:    cobra.ExactArgs(2),
	RunE:    runNearby,
}

func init() {
	nearbyCmd.Flags().String("radius", "5", "search radius in parsecs")
}

func runNearby(cmd *cobra.Command, args []string) error {
	raw, err := cmd.Flags().GetString("radius")
	if err != nil {
		return err
	}
	radius, _, err := apd.NewFromString(raw)
	if err != nil {
		return fmt.Errorf("invalid radius %q: %w", raw, err)
	}

	s, err := openStarCalc()
	if err != nil {
		return err
	}
	defer s.Close()

	origin, neighbors, err := s.Nearby(cmd.Context(), resolve.Input{Catalogue: args[0], Identifier: args[1]}, radius)
	if err != nil {
		return err
	}

	renderNeighbors(cmd.OutOrStdout(), origin, radius, neighbors)
	return nil
}
