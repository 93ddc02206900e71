package database

import (
	"fmt"
	"strings"
)

// UpsertTables are the tables rows can be loaded into
var UpsertTables = map[string]bool{
	"catalogue": true,
	"habitable": true,
}

// BuildUpsert returns a multi row insert of rowCount rows with $n placeholders.
// Rows conflicting on conflict update every other column, with no other
// column they are skipped. The statement works on Postgres and SQLite.
func BuildUpsert(table string, columns []string, conflict string, rowCount int) (string, error) {
	if !UpsertTables[table] {
		return "", fmt.Errorf("unknown table %q", table)
	}
	if len(columns) == 0 || rowCount <= 0 {
		return "", fmt.Errorf("nothing to insert into %s", table)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "INSERT INTO %s (%s) VALUES ", table, strings.Join(columns, ", "))

	n := 1
	for r := 0; r < rowCount; r++ {
		if r > 0 {
			b.WriteString(", ")
		}
		b.WriteString("(")
		for c := range columns {
			if c > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "$%d", n)
			n++
		}
		b.WriteString(")")
	}

	updates := []string{}
	for _, column := range columns {
		if column != conflict {
			updates = append(updates, fmt.Sprintf("%s = excluded.%s", column, column))
		}
	}

	if len(updates) == 0 {
		fmt.Fprintf(&b, " ON CONFLICT (%s) DO NOTHING", conflict)
	} else {
		fmt.Fprintf(&b, " ON CONFLICT (%s) DO UPDATE SET %s", conflict, strings.Join(updates, ", "))
	}

	return b.String(), nil
}

// Flatten returns the values of rows in placeholder order, every row has to
// have one value per column.
func Flatten(rows [][]any, columns int) ([]any, error) {
	values := make([]any, 0, len(rows)*columns)
	for i, row := range rows {
		if len(row) != columns {
			return nil, fmt.Errorf("row %d has %d values, expected %d", i, len(row), columns)
		}
		values = append(values, row...)
	}
	return values, nil
}
