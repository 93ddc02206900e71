package starcalc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/cockroachdb/apd/v3"
	"github.com/siherrmann/starcalc/core/ingest"
	"github.com/siherrmann/starcalc/core/nearby"
	"github.com/siherrmann/starcalc/core/resolve"
	"github.com/siherrmann/starcalc/core/spatial"
	"github.com/siherrmann/starcalc/database"
	"github.com/siherrmann/starcalc/database/sqlite"
	"github.com/siherrmann/starcalc/helper"
	"github.com/siherrmann/starcalc/model"
	"golang.org/x/sync/errgroup"
)

// Store is a catalogue store usable by StarCalc
type Store interface {
	resolve.Store
	resolve.NoteReader
	ingest.Writer
	WriteNote(ctx context.Context, catalogueID int64, notes string) (*model.Note, error)
	DeleteNote(ctx context.Context, catalogueID int64) (bool, error)
	Close() error
}

// StarCalc provides a unified interface to resolution, distance, neighbor search,
// notes and catalogue loading on one store
type StarCalc struct {
	Config   *model.CatalogueConfig
	Store    Store
	Resolver *resolve.Resolver
	Search   *nearby.Search
	Loader   *ingest.Loader
	// Logging
	log *slog.Logger
}

// NewStarCalc creates a StarCalc on Postgres, creating tables and SQL functions if needed
func NewStarCalc(dbConfig *helper.DatabaseConfiguration, config *model.CatalogueConfig) (*StarCalc, error) {
	logger := newLogger(slog.LevelInfo)

	db := helper.NewDatabase("starcalc", dbConfig, logger)
	store, err := database.NewStore(db, false)
	if err != nil {
		_ = db.Close()
		return nil, helper.NewError("create postgres store", err)
	}

	return NewStarCalcWithStore(store, config, logger), nil
}

// NewStarCalcSQLite creates a StarCalc on the SQLite file at path
func NewStarCalcSQLite(path string, config *model.CatalogueConfig) (*StarCalc, error) {
	logger := newLogger(slog.LevelInfo)

	store, err := sqlite.NewStore(path, logger)
	if err != nil {
		return nil, helper.NewError("create sqlite store", err)
	}

	return NewStarCalcWithStore(store, config, logger), nil
}

// NewStarCalcWithStore creates a StarCalc on an already opened store.
// A nil config means the embedded default catalogues, a nil logger slog.Default().
func NewStarCalcWithStore(store Store, config *model.CatalogueConfig, logger *slog.Logger) *StarCalc {
	if config == nil {
		config = model.DefaultCatalogueConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &StarCalc{
		Config:   config,
		Store:    store,
		Resolver: resolve.NewResolver(config, store, resolve.BestEffortNotes(store, logger), logger),
		Search:   nearby.NewSearch(config, store),
		Loader:   ingest.NewLoader(store, logger),
		log:      logger,
	}
}

func newLogger(level slog.Level) *slog.Logger {
	opts := helper.PrettyHandlerOptions{
		SlogOpts: slog.HandlerOptions{
			Level: level,
		},
	}
	return slog.New(helper.NewPrettyHandler(os.Stdout, opts))
}

// Close closes the store
func (s *StarCalc) Close() error {
	if s.Store == nil {
		return nil
	}
	return s.Store.Close()
}

// Resolve resolves one star
func (s *StarCalc) Resolve(ctx context.Context, in resolve.Input) (*model.StarRecord, error) {
	return s.Resolver.Resolve(ctx, in)
}

// Compare resolves two stars concurrently, moves both to epoch and measures their distance
func (s *StarCalc) Compare(ctx context.Context, a, b resolve.Input, epoch int) (*model.Comparison, error) {
	comparison := &model.Comparison{Epoch: epoch}

	g, gctx := errgroup.WithContext(ctx)
	for i, in := range []resolve.Input{a, b} {
		g.Go(func() error {
			star, err := s.Resolver.Resolve(gctx, in)
			if err != nil {
				return err
			}
			comparison.Stars[i] = star
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i, star := range comparison.Stars {
		position, err := spatial.Extrapolate(star.Cartesian, epoch)
		if err != nil {
			return nil, helper.NewError("extrapolate", err)
		}
		comparison.Positions[i] = position
	}

	distance, err := spatial.Distance(comparison.Positions[:])
	if err != nil {
		return nil, err
	}
	comparison.Distance = distance

	s.log.Debug("Compared stars", slog.String("a", comparison.Stars[0].Ref), slog.String("b", comparison.Stars[1].Ref), slog.Int("epoch", epoch))

	return comparison, nil
}

// Nearby resolves the origin star and returns it with all stars within radius parsecs
func (s *StarCalc) Nearby(ctx context.Context, in resolve.Input, radius *apd.Decimal) (*model.StarRecord, []model.Neighbor, error) {
	origin, err := s.Resolver.Resolve(ctx, in)
	if err != nil {
		return nil, nil, err
	}

	neighbors, err := s.Search.FindNearby(ctx, origin, radius)
	if err != nil {
		return origin, nil, err
	}

	return origin, neighbors, nil
}

// SaveNote stores text as the note of the star with the internal catalogue id.
// changed is false if the star already had exactly this note.
func (s *StarCalc) SaveNote(ctx context.Context, catalogueID int64, text string) (changed bool, err error) {
	if _, err := s.resolveID(ctx, catalogueID); err != nil {
		return false, err
	}

	current, err := s.Store.ReadNote(ctx, catalogueID)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		return false, helper.NewError("read note", err)
	}
	if current != nil && current.Notes == text {
		return false, nil
	}

	note, err := s.Store.WriteNote(ctx, catalogueID, text)
	if err != nil {
		return false, helper.NewError("write note", err)
	}

	s.log.Info("Saved note", slog.Int64("catalogue_id", catalogueID), slog.String("rid", note.RID.String()))

	return true, nil
}

// Note returns the note of the star with the internal catalogue id or model.ErrNotFound
func (s *StarCalc) Note(ctx context.Context, catalogueID int64) (*model.Note, error) {
	return s.Store.ReadNote(ctx, catalogueID)
}

// DeleteNote removes the note of a star and reports whether there was one
func (s *StarCalc) DeleteNote(ctx context.Context, catalogueID int64) (bool, error) {
	return s.Store.DeleteNote(ctx, catalogueID)
}

// ListIdentifiers returns every identifier of a catalogue in store order.
// List statements select one column named after the catalogue key.
func (s *StarCalc) ListIdentifiers(ctx context.Context, catalogue string) ([]string, error) {
	descriptor, ok := s.Config.Descriptor(catalogue)
	if !ok {
		return nil, &model.UnknownCatalogueError{Catalogue: catalogue}
	}
	if descriptor.ListStatement == "" {
		return nil, &model.InvalidInputError{Catalogue: catalogue, Reason: "catalogue has no list statement"}
	}

	rows, err := s.Store.LookupRows(ctx, descriptor.ListStatement)
	if err != nil {
		return nil, &model.StoreFailure{Op: "list identifiers", Catalogue: catalogue, Err: err}
	}

	identifiers := make([]string, 0, len(rows))
	for _, row := range rows {
		if value := row.String(descriptor.Key); value != nil {
			identifiers = append(identifiers, *value)
		}
	}

	return identifiers, nil
}

// LoadCatalogue loads an AT-HYG CSV file
func (s *StarCalc) LoadCatalogue(ctx context.Context, r io.Reader, replace bool) (int, error) {
	return s.Loader.LoadCatalogue(ctx, r, replace)
}

// LoadHabitable loads a CSV file of hipparcos numbers of habitable stars
func (s *StarCalc) LoadHabitable(ctx context.Context, r io.Reader, replace bool) (int, error) {
	return s.Loader.LoadHabitable(ctx, r, replace)
}

func (s *StarCalc) resolveID(ctx context.Context, catalogueID int64) (*model.StarRecord, error) {
	if _, ok := s.Config.Descriptor("id"); !ok {
		return nil, helper.NewError("resolve star", fmt.Errorf("catalogue configuration has no id catalogue"))
	}
	return s.Resolver.Resolve(ctx, resolve.Input{Identifier: fmt.Sprint(catalogueID), Catalogue: "id"})
}
