package ingest

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/siherrmann/starcalc/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type upsert struct {
	table    string
	columns  []string
	conflict string
	rows     [][]any
}

type fakeWriter struct {
	upserts []upsert
	actions []string
	err     error
}

func (f *fakeWriter) UpsertRows(ctx context.Context, table string, columns []string, conflict string, rows [][]any) error {
	f.actions = append(f.actions, "upsert")
	if f.err != nil {
		return f.err
	}
	f.upserts = append(f.upserts, upsert{table: table, columns: columns, conflict: conflict, rows: rows})
	return nil
}

func (f *fakeWriter) PruneCatalogue(ctx context.Context) error {
	f.actions = append(f.actions, "prune")
	return nil
}

func (f *fakeWriter) ClearHabitable(ctx context.Context) error {
	f.actions = append(f.actions, "clear")
	return nil
}

func column(t *testing.T, name string) int {
	t.Helper()
	i := indexOf(model.CatalogueColumns, name)
	require.GreaterOrEqual(t, i, 0, "Expected column %s to exist", name)
	return i
}

func TestLoadCatalogue(t *testing.T) {
	t.Run("Valid call LoadCatalogue with header", func(t *testing.T) {
		writer := &fakeWriter{}
		loader := NewLoader(writer, nil)

		data := "id,proper,x0,y0,z0,unknown\n" +
			"0,Sol,0,0,0,ignored\n" +
			"71456,Rigil Kentaurus,-0.495203,-0.414195,-1.156785,\n"
		count, err := loader.LoadCatalogue(context.Background(), strings.NewReader(data), false)
		require.NoError(t, err, "Expected LoadCatalogue to not return an error")
		assert.Equal(t, 2, count)

		require.Len(t, writer.upserts, 1)
		u := writer.upserts[0]
		assert.Equal(t, "catalogue", u.table)
		assert.Equal(t, "id", u.conflict)
		assert.Equal(t, model.CatalogueColumns, u.columns)
		require.Len(t, u.rows, 2)
		assert.Equal(t, "71456", u.rows[1][column(t, "id")])
		assert.Equal(t, "Rigil Kentaurus", u.rows[1][column(t, "proper")])
		assert.Equal(t, "-0.495203", u.rows[1][column(t, "x0")], "Expected decimals to be passed verbatim")
		assert.Nil(t, u.rows[1][column(t, "hip")], "Expected missing column to be NULL")
		assert.Equal(t, []string{"upsert"}, writer.actions, "Expected no prune without replace")
	})

	t.Run("Valid call LoadCatalogue without header uses column order", func(t *testing.T) {
		writer := &fakeWriter{}
		loader := NewLoader(writer, nil)

		record := make([]string, len(model.CatalogueColumns))
		record[column(t, "id")] = "7"
		record[column(t, "gl")] = "Gl 699"
		count, err := loader.LoadCatalogue(context.Background(), strings.NewReader(strings.Join(record, ",")+"\n"), true)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
		assert.Equal(t, []string{"prune", "upsert"}, writer.actions, "Expected prune before loading")

		row := writer.upserts[0].rows[0]
		assert.Equal(t, "7", row[column(t, "id")])
		assert.Equal(t, "Gl 699", row[column(t, "gl")])
		assert.Nil(t, row[column(t, "proper")], "Expected empty cell to be NULL")
	})

	t.Run("Valid call LoadCatalogue in batches", func(t *testing.T) {
		writer := &fakeWriter{}
		loader := NewLoader(writer, nil)

		var b strings.Builder
		b.WriteString("id\n")
		for i := 0; i < BatchSize+1; i++ {
			fmt.Fprintf(&b, "%d\n", i)
		}
		count, err := loader.LoadCatalogue(context.Background(), strings.NewReader(b.String()), false)
		require.NoError(t, err)
		assert.Equal(t, BatchSize+1, count)
		require.Len(t, writer.upserts, 2)
		assert.Len(t, writer.upserts[0].rows, BatchSize)
		assert.Len(t, writer.upserts[1].rows, 1)
	})

	t.Run("Valid call LoadCatalogue empty input", func(t *testing.T) {
		writer := &fakeWriter{}
		count, err := NewLoader(writer, nil).LoadCatalogue(context.Background(), strings.NewReader(""), false)
		require.NoError(t, err)
		assert.Zero(t, count)
		assert.Empty(t, writer.upserts)
	})

	t.Run("Invalid call LoadCatalogue row without id", func(t *testing.T) {
		writer := &fakeWriter{}
		_, err := NewLoader(writer, nil).LoadCatalogue(context.Background(), strings.NewReader("id,proper\n,Nameless\n"), false)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "line 2")
	})

	t.Run("Invalid call LoadCatalogue header without id", func(t *testing.T) {
		writer := &fakeWriter{}
		_, err := NewLoader(writer, nil).LoadCatalogue(context.Background(), strings.NewReader("proper\nSol\n"), false)
		assert.Error(t, err)
		assert.Empty(t, writer.actions)
	})

	t.Run("Invalid call LoadCatalogue with failing writer", func(t *testing.T) {
		cause := errors.New("disk full")
		writer := &fakeWriter{err: cause}
		_, err := NewLoader(writer, nil).LoadCatalogue(context.Background(), strings.NewReader("id\n1\n"), false)
		assert.ErrorIs(t, err, cause)
	})
}

func TestLoadHabitable(t *testing.T) {
	t.Run("Valid call LoadHabitable with replace", func(t *testing.T) {
		writer := &fakeWriter{}
		loader := NewLoader(writer, nil)

		count, err := loader.LoadHabitable(context.Background(), strings.NewReader("\ufeffname,HIP\nSol,0\nAlpha Cen A,71683\n"), true)
		require.NoError(t, err)
		assert.Equal(t, 2, count)
		assert.Equal(t, []string{"clear", "upsert"}, writer.actions)

		u := writer.upserts[0]
		assert.Equal(t, "habitable", u.table)
		assert.Equal(t, "hip", u.conflict)
		assert.Equal(t, [][]any{{"0"}, {"71683"}}, u.rows)
	})
}
