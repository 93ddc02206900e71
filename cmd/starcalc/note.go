package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/siherrmann/starcalc/model"
	"github.com/spf13/cobra"
)

var noteCmd = &cobra.Command{
	Use:   "note",
	Short: "Read and write notes on stars",
}

var noteGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Print the note of a star",
	Args:  cobra.ExactArgs(1),
	RunE:  runNoteGet,
}

var noteSetCmd = &cobra.Command{
	Use:     "set <id> <text>",
	Short:   "Replace the note of a star",
	Example: "  starcalc note set 71456 \"closest system\"",
	Args:    cobra.MinimumNArgs(2),
	RunE:    runNoteSet,
}

var noteDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete the note of a star",
	Args:  cobra.ExactArgs(1),
	RunE:  runNoteDelete,
}

func init() {
	noteCmd.AddCommand(noteGetCmd, noteSetCmd, noteDeleteCmd)
}

func parseCatalogueID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, &model.InvalidInputError{Catalogue: "id", Identifier: raw, Reason: "not an integer"}
	}
	return id, nil
}

func runNoteGet(cmd *cobra.Command, args []string) error {
	id, err := parseCatalogueID(args[0])
	if err != nil {
		return err
	}

	s, err := openStarCalc()
	if err != nil {
		return err
	}
	defer s.Close()

	note, err := s.Note(cmd.Context(), id)
	if errors.Is(err, model.ErrNotFound) {
		fmt.Fprintf(cmd.OutOrStdout(), "No note for %d.\n", id)
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), note.Notes)
	return nil
}

func runNoteSet(cmd *cobra.Command, args []string) error {
	id, err := parseCatalogueID(args[0])
	if err != nil {
		return err
	}

	s, err := openStarCalc()
	if err != nil {
		return err
	}
	defer s.Close()

	changed, err := s.SaveNote(cmd.Context(), id, strings.Join(args[1:], " "))
	if err != nil {
		return err
	}

	if changed {
		fmt.Fprintf(cmd.OutOrStdout(), "Note for %d saved.\n", id)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "Note for %d unchanged.\n", id)
	}
	return nil
}

func runNoteDelete(cmd *cobra.Command, args []string) error {
	id, err := parseCatalogueID(args[0])
	if err != nil {
		return err
	}

	s, err := openStarCalc()
	if err != nil {
		return err
	}
	defer s.Close()

	deleted, err := s.DeleteNote(cmd.Context(), id)
	if err != nil {
		return err
	}

	if deleted {
		fmt.Fprintf(cmd.OutOrStdout(), "Note for %d deleted.\n", id)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "No note for %d.\n", id)
	}
	return nil
}
