package sql

import (
	"database/sql"
	_ "embed"
	"fmt"
	"log"
)

//go:embed init.sql
var initSQL string

//go:embed catalogue.sql
var catalogueSQL string

//go:embed habitable.sql
var habitableSQL string

//go:embed notebook.sql
var notebookSQL string

// Function lists for verification
var CatalogueFunctions = []string{
	"init_catalogue",
	"count_catalogue",
	"prune_catalogue",
}

var HabitableFunctions = []string{
	"init_habitable",
	"count_habitable",
	"clear_habitable",
}

var NotebookFunctions = []string{
	"init_notebook",
	"upsert_note",
	"select_note",
	"delete_note",
}

// Init intializes db extensions
func Init(db *sql.DB) error {
	_, err := db.Exec(initSQL)
	if err != nil {
		return fmt.Errorf("error executing schema SQL: %w", err)
	}

	log.Println("Database extensions initialized successfully")
	return nil
}

// LoadCatalogueSql loads catalogue-related SQL functions
func LoadCatalogueSql(db *sql.DB, force bool) error {
	return loadSql(db, "catalogue", catalogueSQL, CatalogueFunctions, force)
}

// LoadHabitableSql loads habitable-related SQL functions
func LoadHabitableSql(db *sql.DB, force bool) error {
	return loadSql(db, "habitable", habitableSQL, HabitableFunctions, force)
}

// LoadNotebookSql loads notebook-related SQL functions
func LoadNotebookSql(db *sql.DB, force bool) error {
	return loadSql(db, "notebook", notebookSQL, NotebookFunctions, force)
}

// LoadAllSql loads all SQL functions
func LoadAllSql(db *sql.DB, force bool) error {
	if err := LoadCatalogueSql(db, force); err != nil {
		return err
	}

	if err := LoadHabitableSql(db, force); err != nil {
		return err
	}

	if err := LoadNotebookSql(db, force); err != nil {
		return err
	}

	return nil
}

// loadSql executes script unless all functions already exist or force is set
func loadSql(db *sql.DB, name string, script string, functions []string, force bool) error {
	if !force {
		exist, err := checkFunctions(db, functions)
		if err != nil {
			return fmt.Errorf("error checking existing %s functions: %w", name, err)
		}
		if exist {
			return nil
		}
	}

	_, err := db.Exec(script)
	if err != nil {
		return fmt.Errorf("error executing %s SQL: %w", name, err)
	}

	exist, err := checkFunctions(db, functions)
	if err != nil {
		return fmt.Errorf("error checking existing functions: %w", err)
	}
	if !exist {
		return fmt.Errorf("not all required SQL functions were created")
	}

	log.Printf("SQL %s functions loaded successfully", name)
	return nil
}

// checkFunctions verifies that all required functions exist in the database
func checkFunctions(db *sql.DB, sqlFunctions []string) (bool, error) {
	var allExist bool
	for _, f := range sqlFunctions {
		err := db.QueryRow(
			`SELECT EXISTS(SELECT 1 FROM pg_proc WHERE proname = $1);`,
			f,
		).Scan(&allExist)
		if err != nil {
			return false, fmt.Errorf("error checking existence of function %s: %w", f, err)
		}
		if !allExist {
			log.Printf("Function %s does not exist", f)
			break
		}
	}
	return allExist, nil
}
