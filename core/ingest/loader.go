package ingest

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/siherrmann/starcalc/helper"
	"github.com/siherrmann/starcalc/model"
)

// BatchSize is the number of rows written per upsert
const BatchSize = 500

// Writer is the write side of a catalogue store
type Writer interface {
	// UpsertRows inserts rows into table. Rows conflicting on the conflict
	// column update all other columns, or are skipped if there are none.
	UpsertRows(ctx context.Context, table string, columns []string, conflict string, rows [][]any) error
	// PruneCatalogue deletes all catalogue rows no note refers to
	PruneCatalogue(ctx context.Context) error
	// ClearHabitable deletes all habitable rows
	ClearHabitable(ctx context.Context) error
}

// Loader reads catalogue and habitable CSV files into a store
type Loader struct {
	writer Writer
	log    *slog.Logger
}

// NewLoader creates a loader writing to writer
func NewLoader(writer Writer, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{writer: writer, log: logger}
}

// LoadCatalogue loads AT-HYG rows from r and returns the number of rows written.
// With replace set, rows that are not in the file and have no note are removed.
func (l *Loader) LoadCatalogue(ctx context.Context, r io.Reader, replace bool) (int, error) {
	if replace {
		if err := l.writer.PruneCatalogue(ctx); err != nil {
			return 0, helper.NewError("prune catalogue", err)
		}
	}

	count, err := l.load(ctx, r, "catalogue", model.CatalogueColumns, "id")
	if err != nil {
		return count, helper.NewError("load catalogue", err)
	}

	l.log.Info("Loaded catalogue", slog.Int("rows", count), slog.Bool("replace", replace))
	return count, nil
}

// LoadHabitable loads hipparcos numbers of habitable stars from r.
// With replace set, the table is cleared first.
func (l *Loader) LoadHabitable(ctx context.Context, r io.Reader, replace bool) (int, error) {
	if replace {
		if err := l.writer.ClearHabitable(ctx); err != nil {
			return 0, helper.NewError("clear habitable", err)
		}
	}

	count, err := l.load(ctx, r, "habitable", model.HabitableColumns, "hip")
	if err != nil {
		return count, helper.NewError("load habitable", err)
	}

	l.log.Info("Loaded habitable stars", slog.Int("rows", count), slog.Bool("replace", replace))
	return count, nil
}

func (l *Loader) load(ctx context.Context, r io.Reader, table string, columns []string, key string) (int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = true

	first, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	// positions[i] is the record index of columns[i], -1 if absent
	positions, header := headerPositions(first, columns)
	if !header {
		for i := range positions {
			positions[i] = i
		}
	}
	if positions[indexOf(columns, key)] < 0 {
		return 0, fmt.Errorf("header has no %s column", key)
	}

	count := 0
	batch := make([][]any, 0, BatchSize)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := l.writer.UpsertRows(ctx, table, columns, key, batch); err != nil {
			return err
		}
		count += len(batch)
		l.log.Debug("Wrote batch", slog.String("table", table), slog.Int("rows", len(batch)))
		batch = make([][]any, 0, BatchSize)
		return nil
	}

	line := 1
	record := first
	if header {
		record = nil
	}
	for {
		if record != nil {
			values, err := recordValues(record, positions, columns, key)
			if err != nil {
				return count, fmt.Errorf("line %d: %w", line, err)
			}
			batch = append(batch, values)
			if len(batch) == BatchSize {
				if err := flush(); err != nil {
					return count, err
				}
			}
		}

		record, err = reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return count, err
		}
		line++
	}

	if err := flush(); err != nil {
		return count, err
	}
	return count, nil
}

// headerPositions maps columns to the cells of record. The record counts as a
// header if any cell names a known column.
func headerPositions(record []string, columns []string) ([]int, bool) {
	positions := make([]int, len(columns))
	header := false
	for i, column := range columns {
		positions[i] = -1
		for j, cell := range record {
			name := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(cell, "\ufeff")))
			if name == column {
				positions[i] = j
				header = true
				break
			}
		}
	}
	return positions, header
}

func recordValues(record []string, positions []int, columns []string, key string) ([]any, error) {
	values := make([]any, len(columns))
	for i, position := range positions {
		if position < 0 || position >= len(record) {
			continue
		}
		cell := strings.TrimSpace(record[position])
		if cell == "" {
			continue
		}
		values[i] = cell
	}
	if values[indexOf(columns, key)] == nil {
		return nil, fmt.Errorf("%s is empty", key)
	}
	return values, nil
}

func indexOf(columns []string, name string) int {
	for i, column := range columns {
		if column == name {
			return i
		}
	}
	return -1
}
