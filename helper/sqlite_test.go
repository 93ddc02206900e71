package helper

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stars.db")

	t.Run("Open write pool", func(t *testing.T) {
		db, err := OpenSQLite(path, "write", 0)
		require.NoError(t, err, "Expected OpenSQLite to not return an error")
		defer db.Close()

		assert.Equal(t, 1, db.Stats().MaxOpenConnections, "Expected write pool to use a single connection")

		var foreignKeys int
		err = db.QueryRow("PRAGMA foreign_keys;").Scan(&foreignKeys)
		require.NoError(t, err)
		assert.Equal(t, 1, foreignKeys, "Expected foreign keys to be enforced")
	})

	t.Run("Open read pool with default size", func(t *testing.T) {
		db, err := OpenSQLite(path, "read", 0)
		require.NoError(t, err)
		defer db.Close()

		assert.Equal(t, 4, db.Stats().MaxOpenConnections)
	})

	t.Run("Invalid mode", func(t *testing.T) {
		_, err := OpenSQLite(path, "append", 0)
		assert.Error(t, err, "Expected error for invalid mode")
		assert.Contains(t, err.Error(), "invalid mode")
	})
}

func TestOpenSQLitePair(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pair.db")

	writeDB, readDB, err := OpenSQLitePair(path, 2)
	require.NoError(t, err, "Expected OpenSQLitePair to not return an error")
	defer writeDB.Close()
	defer readDB.Close()

	_, err = writeDB.Exec(`CREATE TABLE probe (id INTEGER PRIMARY KEY, name TEXT);`)
	require.NoError(t, err)
	_, err = writeDB.Exec(`INSERT INTO probe (id, name) VALUES (1, 'Sol');`)
	require.NoError(t, err)

	var name string
	err = readDB.QueryRow(`SELECT name FROM probe WHERE id = 1;`).Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "Sol", name, "Expected read pool to see committed writes")
	assert.Equal(t, 2, readDB.Stats().MaxOpenConnections)
}
