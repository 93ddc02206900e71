package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/siherrmann/starcalc/helper"
	"github.com/siherrmann/starcalc/model"
	loadSql "github.com/siherrmann/starcalc/sql"
)

// NotebookDBHandlerFunctions defines the interface for notebook database operations.
type NotebookDBHandlerFunctions interface {
	UpsertNote(ctx context.Context, catalogueID int64, notes string) (*model.Note, error)
	SelectNote(ctx context.Context, catalogueID int64) (*model.Note, error)
	DeleteNote(ctx context.Context, catalogueID int64) (bool, error)
}

// NotebookDBHandler handles the free text notes attached to stars
type NotebookDBHandler struct {
	db *helper.Database
}

// NewNotebookDBHandler creates a new notebook database handler.
// The catalogue table has to exist before, notes reference it.
func NewNotebookDBHandler(db *helper.Database, force bool) (*NotebookDBHandler, error) {
	if db == nil {
		return nil, helper.NewError("database connection validation", fmt.Errorf("database connection is nil"))
	}

	notebookDbHandler := &NotebookDBHandler{
		db: db,
	}

	err := loadSql.LoadNotebookSql(notebookDbHandler.db.Instance, force)
	if err != nil {
		return nil, helper.NewError("load notebook sql", err)
	}

	err = notebookDbHandler.CreateTable()
	if err != nil {
		return nil, helper.NewError("create table", err)
	}

	db.Logger.Info("Initialized NotebookDBHandler")

	return notebookDbHandler, nil
}

// CreateTable creates the 'notebook' table in the database.
func (h *NotebookDBHandler) CreateTable() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := h.db.Instance.ExecContext(ctx, `SELECT init_notebook();`)
	if err != nil {
		log.Panicf("error initializing notebook table: %#v", err)
	}

	h.db.Logger.Info("Checked/created table notebook")

	return nil
}

// UpsertNote creates or replaces the note of a star
func (h *NotebookDBHandler) UpsertNote(ctx context.Context, catalogueID int64, notes string) (*model.Note, error) {
	note := &model.Note{}
	row := h.db.Instance.QueryRowContext(
		ctx,
		`SELECT * FROM upsert_note($1, $2)`,
		catalogueID,
		notes,
	)

	err := row.Scan(
		&note.ID,
		&note.RID,
		&note.CatalogueID,
		&note.Notes,
		&note.CreatedAt,
		&note.UpdatedAt,
	)
	if err != nil {
		return nil, helper.NewError("scan", err)
	}

	return note, nil
}

// SelectNote retrieves the note of a star, model.ErrNotFound if it has none
func (h *NotebookDBHandler) SelectNote(ctx context.Context, catalogueID int64) (*model.Note, error) {
	note := &model.Note{}
	row := h.db.Instance.QueryRowContext(
		ctx,
		`SELECT * FROM select_note($1)`,
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

// DeleteNote deletes the note of a star and reports whether there was one
func (h *NotebookDBHandler) DeleteNote(ctx context.Context, catalogueID int64) (bool, error) {
	var deleted int64
	err := h.db.Instance.QueryRowContext(ctx, `SELECT delete_note($1);`, catalogueID).Scan(&deleted)
	if err != nil {
		return false, helper.NewError("scan", err)
	}

	return deleted > 0, nil
}
