// Package sqlite is the file backed catalogue store. It answers the same
// statements as the Postgres store and is the default for the command line.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/siherrmann/starcalc/database"
	"github.com/siherrmann/starcalc/helper"
	"github.com/siherrmann/starcalc/model"
	loadSql "github.com/siherrmann/starcalc/sql"
)

// Store keeps one write connection and a pool of readers on the same file
type Store struct {
	write *sql.DB
	read  *sql.DB
	log   *slog.Logger
}

// NewStore opens the database file at path and migrates it to the latest schema
func NewStore(path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	write, read, err := helper.OpenSQLitePair(path, 0)
	if err != nil {
		return nil, helper.NewError("open sqlite store", err)
	}

	if err := loadSql.RunMigrations(write); err != nil {
		_ = write.Close()
		_ = read.Close()
		return nil, helper.NewError("migrate sqlite store", err)
	}

	logger.Info("Opened sqlite store", slog.String("path", path))

	return &Store{write: write, read: read, log: logger}, nil
}

// LookupRow returns the first row of statement or model.ErrNotFound
func (s *Store) LookupRow(ctx context.Context, statement string, params ...any) (model.Row, error) {
	rows, err := database.QueryRows(ctx, s.read, statement, params...)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, model.ErrNotFound
	}
	return rows[0], nil
}

// LookupRows returns all rows of statement
func (s *Store) LookupRows(ctx context.Context, statement string, params ...any) ([]model.Row, error) {
	return database.QueryRows(ctx, s.read, statement, params...)
}

// UpsertRows writes rows in one transaction
func (s *Store) UpsertRows(ctx context.Context, table string, columns []string, conflict string, rows [][]any) error {
	return database.UpsertRows(ctx, s.write, table, columns, conflict, rows)
}

// PruneCatalogue deletes all stars without a note
func (s *Store) PruneCatalogue(ctx context.Context) error {
	result, err := s.write.ExecContext(ctx, `DELETE FROM catalogue WHERE id NOT IN (SELECT catalogue_id FROM notebook)`)
	if err != nil {
		return helper.NewError("prune catalogue", err)
	}

	deleted, _ := result.RowsAffected()
	s.log.Info("Pruned catalogue", slog.Int64("deleted", deleted))

	return nil
}

// ClearHabitable deletes all habitable stars
func (s *Store) ClearHabitable(ctx context.Context) error {
	_, err := s.write.ExecContext(ctx, `DELETE FROM habitable`)
	if err != nil {
		return helper.NewError("clear habitable", err)
	}
	return nil
}

// WriteNote creates or replaces the note of a star
func (s *Store) WriteNote(ctx context.Context, catalogueID int64, notes string) (*model.Note, error) {
	_, err := s.write.ExecContext(
		ctx,
		`INSERT INTO notebook (rid, catalogue_id, notes) VALUES ($1, $2, $3)
		ON CONFLICT (catalogue_id) DO UPDATE SET notes = excluded.notes, updated_at = CURRENT_TIMESTAMP`,
		uuid.New().String(),
		catalogueID,
		notes,
	)
	if err != nil {
		return nil, helper.NewError("upsert note", err)
	}

	return s.selectNote(ctx, s.write, catalogueID)
}

// ReadNote returns the note of a star or model.ErrNotFound
func (s *Store) ReadNote(ctx context.Context, catalogueID int64) (*model.Note, error) {
	return s.selectNote(ctx, s.read, catalogueID)
}

// DeleteNote deletes the note of a star and reports whether there was one
func (s *Store) DeleteNote(ctx context.Context, catalogueID int64) (bool, error) {
	result, err := s.write.ExecContext(ctx, `DELETE FROM notebook WHERE catalogue_id = $1`, catalogueID)
	if err != nil {
		return false, helper.NewError("delete note", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return false, helper.NewError("rows affected", err)
	}

	return deleted > 0, nil
}

// Close closes both pools
func (s *Store) Close() error {
	return errors.Join(s.write.Close(), s.read.Close())
}

func (s *Store) selectNote(ctx context.Context, db *sql.DB, catalogueID int64) (*model.Note, error) {
	note := &model.Note{}
	row := db.QueryRowContext(
		ctx,
		`SELECT id, rid, catalogue_id, notes, created_at, updated_at FROM notebook WHERE catalogue_id = $1`,
		catalogueID,
	)

	err := row.Scan(
		&note.ID,
		&note.RID,
		&note.CatalogueID,
		&note.Notes,
		&note.CreatedAt,
		&note.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, helper.NewError("scan", err)
	}

	return note, nil
}
