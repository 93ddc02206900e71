package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/siherrmann/starcalc/helper"
	"github.com/siherrmann/starcalc/sql"
)

// HabitableDBHandlerFunctions defines the interface for habitable database operations.
type HabitableDBHandlerFunctions interface {
	CountHabitable(ctx context.Context) (int64, error)
	ClearHabitable(ctx context.Context) error
}

// HabitableDBHandler handles the table of hipparcos numbers of habitable stars
type HabitableDBHandler struct {
	db *helper.Database
}

// NewHabitableDBHandler creates a new habitable database handler.
// If force is true, it will reload the SQL functions even if they already exist.
func NewHabitableDBHandler(db *helper.Database, force bool) (*HabitableDBHandler, error) {
	if db == nil {
		return nil, helper.NewError("database connection validation", fmt.Errorf("database connection is nil"))
	}

	habitableDbHandler := &HabitableDBHandler{
		db: db,
	}

	err := sql.LoadHabitableSql(habitableDbHandler.db.Instance, force)
	if err != nil {
		return nil, helper.NewError("load habitable sql", err)
	}

	err = habitableDbHandler.CreateTable()
	if err != nil {
		return nil, helper.NewError("create table", err)
	}

	db.Logger.Info("Initialized HabitableDBHandler")

	return habitableDbHandler, nil
}

// CreateTable creates the 'habitable' table in the database.
func (h *HabitableDBHandler) CreateTable() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := h.db.Instance.ExecContext(ctx, `SELECT init_habitable();`)
	if err != nil {
		log.Panicf("error initializing habitable table: %#v", err)
	}

	h.db.Logger.Info("Checked/created table habitable")

	return nil
}

// CountHabitable returns the number of habitable stars
func (h *HabitableDBHandler) CountHabitable(ctx context.Context) (int64, error) {
	var count int64
	err := h.db.Instance.QueryRowContext(ctx, `SELECT count_habitable();`).Scan(&count)
	if err != nil {
		return 0, helper.NewError("scan", err)
	}

	return count, nil
}

// ClearHabitable deletes all habitable stars
func (h *HabitableDBHandler) ClearHabitable(ctx context.Context) error {
	_, err := h.db.Instance.ExecContext(ctx, `SELECT clear_habitable();`)
	if err != nil {
		return helper.NewError("exec", err)
	}

	return nil
}
