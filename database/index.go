package database

import (
	"context"
	"fmt"
	"time"

	"github.com/siherrmann/starcalc/helper"
)

// ChangePositionIndex rebuilds the index on (x0, y0, z0) used by the neighbor search.
// indexType: "gist" (btree_gist, the default created with the table) or "btree"
func (h *CatalogueDBHandler) ChangePositionIndex(ctx context.Context, indexType string) error {
	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	var createIndexSQL string
	switch indexType {
	case "gist":
		createIndexSQL = `CREATE INDEX idx_catalogue_position ON catalogue USING GIST (x0, y0, z0);`
	case "btree":
		createIndexSQL = `CREATE INDEX idx_catalogue_position ON catalogue USING BTREE (x0, y0, z0);`
	default:
		return helper.NewError("change index type", fmt.Errorf("unsupported index type: %s (use 'gist' or 'btree')", indexType))
	}

	_, err := h.db.Instance.ExecContext(ctx, `DROP INDEX IF EXISTS idx_catalogue_position;`)
	if err != nil {
		return helper.NewError("drop index", err)
	}

	h.db.Logger.Info("Dropped existing position index")

	_, err = h.db.Instance.ExecContext(ctx, createIndexSQL)
	if err != nil {
		return helper.NewError("create index", err)
	}

	h.db.Logger.Info(fmt.Sprintf("Created %s position index", indexType))

	return nil
}
