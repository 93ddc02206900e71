package resolve

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/siherrmann/starcalc/model"
)

// SolName is the proper name of the sun, which is always habitable
const SolName = "Sol"

// Store is the read side of the catalogue store used for resolution
type Store interface {
	// LookupRow returns the first matching row or model.ErrNotFound
	LookupRow(ctx context.Context, statement string, params ...any) (model.Row, error)
	// LookupRows returns all matching rows in store order, empty if none match
	LookupRows(ctx context.Context, statement string, params ...any) ([]model.Row, error)
}

// Input is a raw identifier and the key of the catalogue it belongs to
type Input struct {
	Identifier string `json:"identifier"`
	Catalogue  string `json:"catalogue"`
}

// Resolver turns raw catalogue identifiers into star records
type Resolver struct {
	config *model.CatalogueConfig
	store  Store
	notes  NoteSource
	log    *slog.Logger
}

// NewResolver creates a resolver. notes may be nil, in which case records carry no notes.
func NewResolver(config *model.CatalogueConfig, store Store, notes NoteSource, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{
		config: config,
		store:  store,
		notes:  notes,
		log:    logger,
	}
}

// Resolve looks up one star and returns its full record.
//
// Store calls are issued in a fixed order: the star row, the habitability
// lookup, the note lookup. Only the first one can fail the resolution.
func (r *Resolver) Resolve(ctx context.Context, in Input) (*model.StarRecord, error) {
	descriptor, ok := r.config.Descriptor(in.Catalogue)
	if !ok {
		return nil, &model.UnknownCatalogueError{Catalogue: in.Catalogue}
	}

	params, err := SplitTokens(descriptor, in.Identifier)
	if err != nil {
		return nil, err
	}

	ref := in.Identifier
	if descriptor.PrefixDisplayName {
		ref = fmt.Sprintf("%s: %s", descriptor.Key, in.Identifier)
	}

	row, err := r.store.LookupRow(ctx, descriptor.LookupStatement, params...)
	if errors.Is(err, model.ErrNotFound) {
		return nil, &model.NotFoundError{Catalogue: in.Catalogue, Identifier: in.Identifier}
	}
	if err != nil {
		return nil, &model.StoreFailure{Op: "lookup star", Catalogue: in.Catalogue, Identifier: in.Identifier, Err: err}
	}

	ids, err := model.NewIdentifierSet(row)
	if err != nil {
		return nil, &model.StoreFailure{Op: "project star", Catalogue: in.Catalogue, Identifier: in.Identifier, Err: err}
	}

	star := &model.StarRecord{
		Ref:        ref,
		IDs:        ids,
		Position:   model.NewEquatorialPosition(row),
		Cartesian:  model.NewCartesianPosition(row),
		Photometry: model.NewPhotometry(row),
	}

	star.Habitable = r.habitable(ctx, ids)

	if r.notes != nil {
		star.Notes = r.notes.Note(ctx, ids.ID)
	}

	return star, nil
}

// habitable never fails, a broken lookup counts as not habitable
func (r *Resolver) habitable(ctx context.Context, ids model.IdentifierSet) bool {
	if ids.Proper != nil && *ids.Proper == SolName {
		return true
	}
	if ids.Hip == nil {
		return false
	}

	rows, err := r.store.LookupRows(ctx, r.config.Statements.Habitable, *ids.Hip)
	if err != nil {
		r.log.Warn("Habitability lookup failed", slog.Int64("hip", *ids.Hip), slog.String("error", err.Error()))
		return false
	}

	return len(rows) > 0
}

// SplitTokens turns a raw identifier into the lookup parameters of descriptor.
// Composite identifiers must have exactly three whitespace separated tokens
// and numeric catalogues only accept integers.
func SplitTokens(descriptor *model.CatalogueDescriptor, raw string) ([]any, error) {
	var tokens []string
	switch descriptor.TokenShape {
	case model.TokenShapeComposite:
		tokens = strings.Fields(raw)
		if len(tokens) != model.CompositeTokens {
			return nil, &model.InvalidInputError{
				Catalogue:  descriptor.Key,
				Identifier: raw,
				Reason:     fmt.Sprintf("expected %d tokens (flamsteed bayer constellation), got %d", model.CompositeTokens, len(tokens)),
			}
		}
	default:
		token := strings.TrimSpace(raw)
		if token == "" {
			return nil, &model.InvalidInputError{Catalogue: descriptor.Key, Identifier: raw, Reason: "identifier is empty"}
		}
		tokens = []string{token}
	}

	params := make([]any, len(tokens))
	for i, token := range tokens {
		if !descriptor.Numeric {
			params[i] = token
			continue
		}
		value, err := strconv.ParseInt(token, 10, 64)
		if err != nil {
			return nil, &model.InvalidInputError{Catalogue: descriptor.Key, Identifier: raw, Reason: fmt.Sprintf("%q is not an integer", token)}
		}
		params[i] = value
	}

	return params, nil
}
