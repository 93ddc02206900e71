package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list <catalogue>",
	Short: "Print every identifier of a catalogue",
	Args:  cobra.ExactArgs(1),
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	s, err := openStarCalc()
	if err != nil {
		return err
	}
	defer s.Close()

	identifiers, err := s.ListIdentifiers(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	for _, id := range identifiers {
		fmt.Fprintln(cmd.OutOrStdout(), id)
	}
	return nil
}
