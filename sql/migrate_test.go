package sql

import (
	"path/filepath"
	"testing"

	"github.com/siherrmann/starcalc/helper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunMigrations(t *testing.T) {
	db, err := helper.OpenSQLite(filepath.Join(t.TempDir(), "stars.db"), "write", 1)
	require.NoError(t, err)
	defer db.Close()

	t.Run("Valid call RunMigrations creates tables", func(t *testing.T) {
		err := RunMigrations(db)
		require.NoError(t, err, "Expected RunMigrations to not return an error")

		for _, table := range []string{"catalogue", "habitable", "notebook"} {
			var name string
			err := db.QueryRow("SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table).Scan(&name)
			assert.NoError(t, err, "Expected table %s to exist", table)
		}
	})

	t.Run("Valid call RunMigrations is idempotent", func(t *testing.T) {
		err := RunMigrations(db)
		assert.NoError(t, err)
	})

	t.Run("Notebook references catalogue", func(t *testing.T) {
		_, err := db.Exec("INSERT INTO notebook (rid, catalogue_id, notes) VALUES ('x', 42, 'orphan')")
		assert.Error(t, err, "Expected foreign key violation for unknown catalogue id")
	})
}
