package sql

import (
	"database/sql"
	"testing"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func functionExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var exists bool
	err := db.QueryRow("SELECT EXISTS(SELECT 1 FROM pg_proc WHERE proname = $1);", name).Scan(&exists)
	require.NoError(t, err)
	return exists
}

func TestInit(t *testing.T) {
	db := initDB(t)
	defer db.Close()

	t.Run("Initialize database extensions", func(t *testing.T) {
		err := Init(db.Instance)
		assert.NoError(t, err)

		var exists bool
		err = db.Instance.QueryRow("SELECT EXISTS(SELECT 1 FROM pg_extension WHERE extname = 'btree_gist');").Scan(&exists)
		require.NoError(t, err)
		assert.True(t, exists, "btree_gist extension should be created")
	})

	t.Run("Initialize database extensions is idempotent", func(t *testing.T) {
		err := Init(db.Instance)
		assert.NoError(t, err)

		err = Init(db.Instance)
		assert.NoError(t, err)
	})
}

func TestLoadSql(t *testing.T) {
	db := initDB(t)
	defer db.Close()

	loaders := []struct {
		name      string
		load      func(db *sql.DB, force bool) error
		functions []string
	}{
		{"catalogue", LoadCatalogueSql, CatalogueFunctions},
		{"habitable", LoadHabitableSql, HabitableFunctions},
		{"notebook", LoadNotebookSql, NotebookFunctions},
	}

	for _, loader := range loaders {
		t.Run("Load "+loader.name+" SQL functions", func(t *testing.T) {
			err := loader.load(db.Instance, false)
			assert.NoError(t, err)

			for _, funcName := range loader.functions {
				assert.True(t, functionExists(t, db.Instance, funcName), "Function %s should exist", funcName)
			}
		})

		t.Run("Load "+loader.name+" SQL is idempotent without force", func(t *testing.T) {
			err := loader.load(db.Instance, false)
			assert.NoError(t, err)
		})

		t.Run("Load "+loader.name+" SQL with force reloads", func(t *testing.T) {
			err := loader.load(db.Instance, true)
			assert.NoError(t, err)

			for _, funcName := range loader.functions {
				assert.True(t, functionExists(t, db.Instance, funcName), "Function %s should exist after force reload", funcName)
			}
		})
	}
}

func TestLoadAllSql(t *testing.T) {
	db := initDB(t)
	defer db.Close()

	t.Run("Load all SQL functions and create tables", func(t *testing.T) {
		err := LoadAllSql(db.Instance, false)
		require.NoError(t, err)

		for _, init := range []string{"init_catalogue", "init_habitable", "init_notebook"} {
			_, err = db.Instance.Exec("SELECT " + init + "();")
			require.NoError(t, err, "Expected %s to create its table", init)
		}

		var count int64
		err = db.Instance.QueryRow("SELECT count_catalogue();").Scan(&count)
		require.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("Prune keeps noted catalogue rows", func(t *testing.T) {
		_, err := db.Instance.Exec("INSERT INTO catalogue (id, proper) VALUES (0, 'Sol'), (1, 'Other')")
		require.NoError(t, err)
		_, err = db.Instance.Exec("SELECT * FROM upsert_note(0, 'home')")
		require.NoError(t, err)

		var deleted int64
		err = db.Instance.QueryRow("SELECT prune_catalogue();").Scan(&deleted)
		require.NoError(t, err)
		assert.Equal(t, int64(1), deleted, "Expected only the row without note to be pruned")

		var remaining int64
		err = db.Instance.QueryRow("SELECT count_catalogue();").Scan(&remaining)
		require.NoError(t, err)
		assert.Equal(t, int64(1), remaining)
	})
}

func TestCheckFunctions(t *testing.T) {
	db := initDB(t)
	defer db.Close()

	t.Run("Check functions returns false when functions don't exist", func(t *testing.T) {
		exists, err := checkFunctions(db.Instance, []string{"nonexistent_function"})
		assert.NoError(t, err)
		assert.False(t, exists, "Should return false for nonexistent function")
	})

	t.Run("Check functions returns true when all functions exist", func(t *testing.T) {
		err := LoadHabitableSql(db.Instance, false)
		require.NoError(t, err)

		exists, err := checkFunctions(db.Instance, HabitableFunctions)
		assert.NoError(t, err)
		assert.True(t, exists, "Should return true when all functions exist")
	})

	t.Run("Check functions returns false when some functions don't exist", func(t *testing.T) {
		exists, err := checkFunctions(db.Instance, []string{"init_habitable", "nonexistent_function"})
		assert.NoError(t, err)
		assert.False(t, exists, "Should return false when some functions don't exist")
	})

	t.Run("Check functions with empty list", func(t *testing.T) {
		exists, err := checkFunctions(db.Instance, []string{})
		assert.NoError(t, err)
		assert.False(t, exists, "Should return false for empty function list")
	})
}

func TestEmbeddedSQL(t *testing.T) {
	t.Run("Init SQL is embedded", func(t *testing.T) {
		assert.Contains(t, initSQL, "CREATE EXTENSION", "Should contain CREATE EXTENSION")
	})

	for name, script := range map[string]string{
		"catalogue": catalogueSQL,
		"habitable": habitableSQL,
		"notebook":  notebookSQL,
	} {
		t.Run(name+" SQL is embedded", func(t *testing.T) {
			assert.Contains(t, script, "CREATE OR REPLACE FUNCTION init_"+name, "Should contain the init function")
		})
	}
}
