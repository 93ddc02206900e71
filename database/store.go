package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/siherrmann/starcalc/helper"
	"github.com/siherrmann/starcalc/model"
	loadSql "github.com/siherrmann/starcalc/sql"
)

// Store is the Postgres catalogue store. It answers the configured lookup
// statements, loads CSV rows and keeps the notebook.
type Store struct {
	DB        *helper.Database
	Catalogue *CatalogueDBHandler
	Habitable *HabitableDBHandler
	Notebook  *NotebookDBHandler
}

// NewStore initializes extensions and all handlers on db.
// The catalogue handler is created first because notes reference it.
func NewStore(db *helper.Database, force bool) (*Store, error) {
	if db == nil {
		return nil, helper.NewError("database connection validation", fmt.Errorf("database connection is nil"))
	}

	err := loadSql.Init(db.Instance)
	if err != nil {
		return nil, helper.NewError("initialize database extensions", err)
	}

	catalogue, err := NewCatalogueDBHandler(db, force)
	if err != nil {
		return nil, helper.NewError("create catalogue handler", err)
	}

	habitable, err := NewHabitableDBHandler(db, force)
	if err != nil {
		return nil, helper.NewError("create habitable handler", err)
	}

	notebook, err := NewNotebookDBHandler(db, force)
	if err != nil {
		return nil, helper.NewError("create notebook handler", err)
	}

	return &Store{
		DB:        db,
		Catalogue: catalogue,
		Habitable: habitable,
		Notebook:  notebook,
	}, nil
}

// LookupRow returns the first row of statement or model.ErrNotFound
func (s *Store) LookupRow(ctx context.Context, statement string, params ...any) (model.Row, error) {
	rows, err := QueryRows(ctx, s.DB.Instance, statement, params...)
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
	return QueryRows(ctx, s.DB.Instance, statement, params...)
}

// UpsertRows writes rows in one transaction
func (s *Store) UpsertRows(ctx context.Context, table string, columns []string, conflict string, rows [][]any) error {
	return UpsertRows(ctx, s.DB.Instance, table, columns, conflict, rows)
}

// PruneCatalogue deletes all stars without a note
func (s *Store) PruneCatalogue(ctx context.Context) error {
	_, err := s.Catalogue.PruneCatalogue(ctx)
	return err
}

// ClearHabitable deletes all habitable stars
func (s *Store) ClearHabitable(ctx context.Context) error {
	return s.Habitable.ClearHabitable(ctx)
}

// WriteNote creates or replaces the note of a star
func (s *Store) WriteNote(ctx context.Context, catalogueID int64, notes string) (*model.Note, error) {
	return s.Notebook.UpsertNote(ctx, catalogueID, notes)
}

// ReadNote returns the note of a star or model.ErrNotFound
func (s *Store) ReadNote(ctx context.Context, catalogueID int64) (*model.Note, error) {
	return s.Notebook.SelectNote(ctx, catalogueID)
}

// DeleteNote deletes the note of a star and reports whether there was one
func (s *Store) DeleteNote(ctx context.Context, catalogueID int64) (bool, error) {
	return s.Notebook.DeleteNote(ctx, catalogueID)
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.DB.Close()
}

// QueryRows runs statement on db and scans all rows
func QueryRows(ctx context.Context, db *sql.DB, statement string, params ...any) ([]model.Row, error) {
	rows, err := db.QueryContext(ctx, statement, params...)
	if err != nil {
		return nil, helper.NewError("query", err)
	}
	defer rows.Close()

	result, err := model.ScanRows(rows)
	if err != nil {
		return nil, helper.NewError("scan", err)
	}

	return result, nil
}

// UpsertRows writes rows with a single BuildUpsert statement in one transaction
func UpsertRows(ctx context.Context, db *sql.DB, table string, columns []string, conflict string, rows [][]any) error {
	if len(rows) == 0 {
		return nil
	}

	statement, err := BuildUpsert(table, columns, conflict, len(rows))
	if err != nil {
		return helper.NewError("build upsert", err)
	}

	values, err := Flatten(rows, len(columns))
	if err != nil {
		return helper.NewError("flatten rows", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return helper.NewError("begin transaction", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, statement, values...)
	if err != nil {
		return helper.NewError("exec", err)
	}

	if err := tx.Commit(); err != nil {
		return helper.NewError("commit", err)
	}

	return nil
}
