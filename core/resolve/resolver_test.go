package resolve

import (
	"context"
	"errors"
	"testing"

	"github.com/siherrmann/starcalc/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	statement string
	params    []any
}

type fakeStore struct {
	rows  map[string][]model.Row
	errs  map[string]error
	calls []call
}

func (f *fakeStore) LookupRow(ctx context.Context, statement string, params ...any) (model.Row, error) {
	rows, err := f.LookupRows(ctx, statement, params...)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, model.ErrNotFound
	}
	return rows[0], nil
}

func (f *fakeStore) LookupRows(ctx context.Context, statement string, params ...any) ([]model.Row, error) {
	f.calls = append(f.calls, call{statement: statement, params: params})
	if err := f.errs[statement]; err != nil {
		return nil, err
	}
	return f.rows[statement], nil
}

type fakeNotes struct {
	notes map[int64]string
	err   error
	reads []int64
}

func (f *fakeNotes) ReadNote(ctx context.Context, catalogueID int64) (*model.Note, error) {
	f.reads = append(f.reads, catalogueID)
	if f.err != nil {
		return nil, f.err
	}
	text, ok := f.notes[catalogueID]
	if !ok {
		return nil, model.ErrNotFound
	}
	return &model.Note{CatalogueID: catalogueID, Notes: text}, nil
}

func statement(t *testing.T, config *model.CatalogueConfig, key string) string {
	t.Helper()
	descriptor, ok := config.Descriptor(key)
	require.True(t, ok, "Expected catalogue %s to be configured", key)
	return descriptor.LookupStatement
}

func alphaCenRow() model.Row {
	return model.Row{
		"id":     int64(71456),
		"hip":    int64(71683),
		"hd":     int64(128620),
		"gl":     "Gl 559A",
		"bayer":  "Alp-1",
		"con":    "Cen",
		"proper": "Rigil Kentaurus",
		"ra":     []byte("14.66013772"),
		"dec":    []byte("-60.83397203"),
		"dist":   []byte("1.3248"),
		"x0":     []byte("-0.495203"),
		"y0":     []byte("-0.414195"),
		"z0":     []byte("-1.156785"),
		"vx":     []byte("-0.00002573"),
		"vy":     []byte("0.00000322"),
		"vz":     []byte("0.00002075"),
		"mag":    []byte("-0.01"),
		"spect":  "G2V",
	}
}

func TestResolve(t *testing.T) {
	config := model.DefaultCatalogueConfig()

	t.Run("Valid call Resolve by hipparcos number", func(t *testing.T) {
		store := &fakeStore{rows: map[string][]model.Row{
			statement(t, config, "hip"):  {alphaCenRow()},
			config.Statements.Habitable: {{"hip": int64(71683)}},
		}}
		notes := &fakeNotes{notes: map[int64]string{71456: "closest system"}}
		resolver := NewResolver(config, store, BestEffortNotes(notes, nil), nil)

		star, err := resolver.Resolve(context.Background(), Input{Identifier: "71683", Catalogue: "hip"})
		require.NoError(t, err, "Expected Resolve to not return an error")
		require.NotNil(t, star)

		assert.Equal(t, "hip: 71683", star.Ref, "Expected prefixed display reference")
		assert.Equal(t, int64(71456), star.IDs.ID)
		assert.Equal(t, "Rigil Kentaurus", *star.IDs.Proper)
		assert.Equal(t, "-0.495203", star.Cartesian.X0.String())
		assert.Equal(t, "G2V", *star.Photometry.Spect)
		assert.True(t, star.Habitable, "Expected star listed in habitable table to be habitable")
		require.NotNil(t, star.Notes)
		assert.Equal(t, "closest system", *star.Notes)

		require.Len(t, store.calls, 2, "Expected star lookup followed by habitability lookup")
		assert.Equal(t, statement(t, config, "hip"), store.calls[0].statement)
		assert.Equal(t, []any{int64(71683)}, store.calls[0].params, "Expected numeric token to be passed as integer")
		assert.Equal(t, config.Statements.Habitable, store.calls[1].statement)
		assert.Equal(t, []any{int64(71683)}, store.calls[1].params)
		assert.Equal(t, []int64{71456}, notes.reads, "Expected notes to be read by catalogue id")
	})

	t.Run("Valid call Resolve by proper name is not prefixed", func(t *testing.T) {
		row := alphaCenRow()
		delete(row, "hip")
		store := &fakeStore{rows: map[string][]model.Row{statement(t, config, "proper"): {row}}}
		resolver := NewResolver(config, store, nil, nil)

		star, err := resolver.Resolve(context.Background(), Input{Identifier: "Rigil Kentaurus", Catalogue: "proper"})
		require.NoError(t, err)
		assert.Equal(t, "Rigil Kentaurus", star.Ref)
		assert.False(t, star.Habitable, "Expected star without hipparcos number to be not habitable")
		assert.Nil(t, star.Notes, "Expected no notes without a note source")
		assert.Len(t, store.calls, 1, "Expected no habitability lookup without hipparcos number")
	})

	t.Run("Valid call Resolve Sol is habitable without lookup", func(t *testing.T) {
		sol := model.Row{"id": int64(0), "proper": "Sol", "hip": int64(0), "x0": int64(0), "y0": int64(0), "z0": int64(0)}
		store := &fakeStore{rows: map[string][]model.Row{statement(t, config, "proper"): {sol}}}
		resolver := NewResolver(config, store, nil, nil)

		star, err := resolver.Resolve(context.Background(), Input{Identifier: "Sol", Catalogue: "proper"})
		require.NoError(t, err)
		assert.True(t, star.Habitable, "Expected Sol to be habitable")
		assert.Len(t, store.calls, 1, "Expected no habitability lookup for Sol")
	})

	t.Run("Valid call Resolve composite identifier", func(t *testing.T) {
		row := model.Row{"id": int64(113097), "flam": int64(51), "bayer": "b", "con": "Peg"}
		store := &fakeStore{rows: map[string][]model.Row{statement(t, config, "bf"): {row}}}
		resolver := NewResolver(config, store, nil, nil)

		star, err := resolver.Resolve(context.Background(), Input{Identifier: "51 b Peg", Catalogue: "bf"})
		require.NoError(t, err)
		assert.Equal(t, "51 b Peg", star.Ref)
		require.Len(t, store.calls, 1)
		assert.Equal(t, []any{"51", "b", "Peg"}, store.calls[0].params, "Expected three positional parameters")
	})

	t.Run("Invalid call Resolve with unknown catalogue", func(t *testing.T) {
		store := &fakeStore{}
		resolver := NewResolver(config, store, nil, nil)

		star, err := resolver.Resolve(context.Background(), Input{Identifier: "1", Catalogue: "messier"})
		assert.Nil(t, star)
		var unknown *model.UnknownCatalogueError
		require.ErrorAs(t, err, &unknown)
		assert.Equal(t, "messier", unknown.Catalogue)
		assert.Empty(t, store.calls, "Expected no store call for unknown catalogue")
	})

	t.Run("Invalid call Resolve composite with wrong token count", func(t *testing.T) {
		store := &fakeStore{}
		resolver := NewResolver(config, store, nil, nil)

		for _, raw := range []string{"51 Peg", "51 b Peg x", ""} {
			_, err := resolver.Resolve(context.Background(), Input{Identifier: raw, Catalogue: "bf"})
			assert.ErrorIs(t, err, model.ErrInvalidInput, "Expected invalid input for %q", raw)
		}
		assert.Empty(t, store.calls, "Expected no store call for malformed composite identifier")
	})

	t.Run("Invalid call Resolve numeric catalogue with text", func(t *testing.T) {
		store := &fakeStore{}
		resolver := NewResolver(config, store, nil, nil)

		_, err := resolver.Resolve(context.Background(), Input{Identifier: "alpha", Catalogue: "hip"})
		var invalid *model.InvalidInputError
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, "hip", invalid.Catalogue)
		assert.Equal(t, "alpha", invalid.Identifier)
		assert.Empty(t, store.calls)
	})

	t.Run("Invalid call Resolve unknown star", func(t *testing.T) {
		store := &fakeStore{}
		resolver := NewResolver(config, store, nil, nil)

		_, err := resolver.Resolve(context.Background(), Input{Identifier: "999999999", Catalogue: "hip"})
		var notFound *model.NotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, "hip", notFound.Catalogue)
		assert.Equal(t, "999999999", notFound.Identifier)
	})

	t.Run("Invalid call Resolve with failing store", func(t *testing.T) {
		cause := errors.New("connection refused")
		store := &fakeStore{errs: map[string]error{statement(t, config, "gl"): cause}}
		resolver := NewResolver(config, store, nil, nil)

		_, err := resolver.Resolve(context.Background(), Input{Identifier: "Gl 559A", Catalogue: "gl"})
		assert.ErrorIs(t, err, model.ErrStoreFailure)
		assert.ErrorIs(t, err, cause, "Expected store failure to wrap the cause")
	})

	t.Run("Invalid call Resolve row without id", func(t *testing.T) {
		store := &fakeStore{rows: map[string][]model.Row{statement(t, config, "gl"): {{"gl": "Gl 559A"}}}}
		resolver := NewResolver(config, store, nil, nil)

		_, err := resolver.Resolve(context.Background(), Input{Identifier: "Gl 559A", Catalogue: "gl"})
		assert.ErrorIs(t, err, model.ErrStoreFailure)
	})

	t.Run("Valid call Resolve with failing habitability and notes", func(t *testing.T) {
		store := &fakeStore{
			rows: map[string][]model.Row{statement(t, config, "hip"): {alphaCenRow()}},
			errs: map[string]error{config.Statements.Habitable: errors.New("relation does not exist")},
		}
		notes := &fakeNotes{err: errors.New("timeout")}
		resolver := NewResolver(config, store, BestEffortNotes(notes, nil), nil)

		star, err := resolver.Resolve(context.Background(), Input{Identifier: "71683", Catalogue: "hip"})
		require.NoError(t, err, "Expected secondary lookups to never fail the resolution")
		assert.False(t, star.Habitable)
		assert.Nil(t, star.Notes)
	})
}

func TestSplitTokens(t *testing.T) {
	config := model.DefaultCatalogueConfig()
	bf, _ := config.Descriptor("bf")
	gl, _ := config.Descriptor("gl")

	params, err := SplitTokens(bf, "  51   b\tPeg ")
	require.NoError(t, err)
	assert.Equal(t, []any{"51", "b", "Peg"}, params, "Expected any whitespace to separate tokens")

	params, err = SplitTokens(gl, " Gl 559A ")
	require.NoError(t, err)
	assert.Equal(t, []any{"Gl 559A"}, params, "Expected single token to keep inner spaces")
}
