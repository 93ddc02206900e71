package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var loadCmd = &cobra.Command{
	Use:       "load <catalogue|habitable> <file.csv>",
	Short:     "Load a CSV file into the store",
	Example:   "  starcalc load catalogue athyg_v31.csv --replace\n  starcalc load habitable habitable.csv",
	Args:      cobra.ExactArgs(2),
	ValidArgs: []string{"catalogue", "habitable"},
	RunE:      runLoad,
}

func init() {
	loadCmd.Flags().Bool("replace", false, "replace existing rows (stars with notes are kept)")
}

func runLoad(cmd *cobra.Command, args []string) error {
	replace, err := cmd.Flags().GetBool("replace")
	if err != nil {
		return err
	}

	file, err := os.Open(filepath.Clean(args[1]))
	if err != nil {
		return err
	}
	defer file.Close()

	s, err := openStarCalc()
	if err != nil {
		return err
	}
	defer s.Close()

	var count int
	switch args[0] {
	case "catalogue":
		count, err = s.LoadCatalogue(cmd.Context(), file, replace)
	case "habitable":
		count, err = s.LoadHabitable(cmd.Context(), file, replace)
	default:
		return fmt.Errorf("unknown table %q (use catalogue or habitable)", args[0])
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Loaded %d rows into %s.\n", count, args[0])
	return nil
}
