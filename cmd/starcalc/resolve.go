package main

import (
	"github.com/siherrmann/starcalc/core/resolve"
	"github.com/spf13/cobra"
)

var resolveCmd = &cobra.Command{
	Use:     "resolve <catalogue> <identifier>",
	Short:   "Show the catalogue record of a star",
	Example: "  starcalc resolve hip 71683\n  starcalc resolve bf \"51 b Peg\"",
	Args:    cobra.ExactArgs(2),
	RunE:    runResolve,
}

func runResolve(cmd *cobra.Command, args []string) error {
	s, err := openStarCalc()
	if err != nil {
		return err
	}
	defer s.Close()

	star, err := s.Resolve(cmd.Context(), resolve.Input{Catalogue: args[0], Identifier: args[1]})
	if err != nil {
		return err
	}

	renderStar(cmd.OutOrStdout(), star)
	return nil
}
