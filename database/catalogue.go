package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/siherrmann/starcalc/helper"
	"github.com/siherrmann/starcalc/sql"
)

// CatalogueDBHandlerFunctions defines the interface for catalogue database operations.
type CatalogueDBHandlerFunctions interface {
	CountCatalogue(ctx context.Context) (int64, error)
	PruneCatalogue(ctx context.Context) (int64, error)
	ChangePositionIndex(ctx context.Context, indexType string) error
}

// CatalogueDBHandler handles catalogue-related database operations
type CatalogueDBHandler struct {
	db *helper.Database
}

// NewCatalogueDBHandler creates a new catalogue database handler.
// It loads the catalogue SQL functions and creates the table.
// If force is true, it will reload the SQL functions even if they already exist.
func NewCatalogueDBHandler(db *helper.Database, force bool) (*CatalogueDBHandler, error) {
	if db == nil {
		return nil, helper.NewError("database connection validation", fmt.Errorf("database connection is nil"))
	}

	catalogueDbHandler := &CatalogueDBHandler{
		db: db,
	}

	err := sql.LoadCatalogueSql(catalogueDbHandler.db.Instance, force)
	if err != nil {
		return nil, helper.NewError("load catalogue sql", err)
	}

	err = catalogueDbHandler.CreateTable()
	if err != nil {
		return nil, helper.NewError("create table", err)
	}

	db.Logger.Info("Initialized CatalogueDBHandler")

	return catalogueDbHandler, nil
}

// CreateTable creates the 'catalogue' table and its identifier and position indexes.
// If the table already exists, it does not create it again.
func (h *CatalogueDBHandler) CreateTable() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := h.db.Instance.ExecContext(ctx, `SELECT init_catalogue();`)
	if err != nil {
		log.Panicf("error initializing catalogue table: %#v", err)
	}

	h.db.Logger.Info("Checked/created table catalogue")

	return nil
}

// CountCatalogue returns the number of stars in the catalogue
func (h *CatalogueDBHandler) CountCatalogue(ctx context.Context) (int64, error) {
	var count int64
	err := h.db.Instance.QueryRowContext(ctx, `SELECT count_catalogue();`).Scan(&count)
	if err != nil {
		return 0, helper.NewError("scan", err)
	}

	return count, nil
}

// PruneCatalogue deletes all stars without a note and returns how many were deleted
func (h *CatalogueDBHandler) PruneCatalogue(ctx context.Context) (int64, error) {
	var deleted int64
	err := h.db.Instance.QueryRowContext(ctx, `SELECT prune_catalogue();`).Scan(&deleted)
	if err != nil {
		return 0, helper.NewError("scan", err)
	}

	h.db.Logger.Info("Pruned catalogue", "deleted", deleted)

	return deleted, nil
}
