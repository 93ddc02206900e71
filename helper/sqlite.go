package helper

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// SQLite DSN parameters.
const (
	sqliteBusyTimeout = "5000"
	sqliteSynchronous = "NORMAL"
	sqliteJournalMode = "WAL"
)

// OpenSQLite opens a SQLite pool for the file at path.
//
// mode is "write" (one connection, immediate transactions) or "read"
// (maxOpen connections, 0 means 4). Both modes use WAL and enforce
// foreign keys.
func OpenSQLite(path string, mode string, maxOpen int) (*sql.DB, error) {
	if mode != "read" && mode != "write" {
		return nil, NewError("open sqlite", fmt.Errorf("invalid mode %q: must be \"read\" or \"write\"", mode))
	}

	db, err := sql.Open("sqlite3", sqliteDSN(path, mode))
	if err != nil {
		return nil, NewError(fmt.Sprintf("open sqlite (%s)", mode), err)
	}

	switch mode {
	case "write":
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	case "read":
		if maxOpen <= 0 {
			maxOpen = 4
		}
		db.SetMaxOpenConns(maxOpen)
		db.SetMaxIdleConns(maxOpen)
	}
	db.SetConnMaxLifetime(time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, NewError(fmt.Sprintf("ping sqlite (%s)", mode), err)
	}

	return db, nil
}

// OpenSQLitePair opens a write pool and a read pool on the same file
func OpenSQLitePair(path string, readMaxOpen int) (writeDB, readDB *sql.DB, err error) {
	writeDB, err = OpenSQLite(path, "write", 0)
	if err != nil {
		return nil, nil, err
	}

	readDB, err = OpenSQLite(path, "read", readMaxOpen)
	if err != nil {
		_ = writeDB.Close()
		return nil, nil, err
	}

	return writeDB, readDB, nil
}

func sqliteDSN(path string, mode string) string {
	params := url.Values{}
	params.Set("_journal_mode", sqliteJournalMode)
	params.Set("_busy_timeout", sqliteBusyTimeout)
	params.Set("_synchronous", sqliteSynchronous)
	params.Set("_foreign_keys", "on")

	if mode == "write" {
		params.Set("_txlock", "immediate")
	}

	return path + "?" + params.Encode()
}
