package nearby

import (
	"context"
	"sort"

	"github.com/cockroachdb/apd/v3"
	"github.com/siherrmann/starcalc/core/identifier"
	"github.com/siherrmann/starcalc/core/spatial"
	"github.com/siherrmann/starcalc/helper"
	"github.com/siherrmann/starcalc/model"
)

// RowStore is the read side of the catalogue store used for the search
type RowStore interface {
	LookupRows(ctx context.Context, statement string, params ...any) ([]model.Row, error)
}

// Search finds stars within a radius of an origin star
type Search struct {
	config *model.CatalogueConfig
	store  RowStore
}

// NewSearch creates a neighbor search running config.Statements.Neighbors on store
func NewSearch(config *model.CatalogueConfig, store RowStore) *Search {
	return &Search{
		config: config,
		store:  store,
	}
}

// FindNearby returns every star whose J2000 position lies within radius
// parsecs of origin, nearest first. The origin itself is never included.
//
// Candidates are selected with an axis aligned cube of side 2*radius around
// the origin and then filtered by their exact distance. A star exactly on
// the radius is included.
func (s *Search) FindNearby(ctx context.Context, origin *model.StarRecord, radius *apd.Decimal) ([]model.Neighbor, error) {
	neighbors := []model.Neighbor{}
	if radius == nil || radius.Sign() <= 0 {
		return neighbors, nil
	}
	if origin == nil || !origin.Cartesian.HasCoordinates() {
		return nil, model.ErrMissingCoordinate
	}

	params, err := boundingBox(origin.Cartesian, radius)
	if err != nil {
		return nil, helper.NewError("bounding box", err)
	}

	rows, err := s.store.LookupRows(ctx, s.config.Statements.Neighbors, params...)
	if err != nil {
		return nil, &model.StoreFailure{Op: "lookup neighbors", Catalogue: "id", Identifier: origin.Ref, Err: err}
	}

	for _, row := range rows {
		ids, err := model.NewIdentifierSet(row)
		if err != nil || ids.ID == origin.IDs.ID {
			continue
		}
		position := model.NewCartesianPosition(row)
		if !position.HasCoordinates() {
			continue
		}

		distance, err := spatial.Distance([]model.CartesianPosition{origin.Cartesian, position})
		if err != nil {
			return nil, helper.NewError("neighbor distance", err)
		}
		if distance.Cmp(radius) > 0 {
			continue
		}

		neighbors = append(neighbors, model.Neighbor{
			DisplayID:   identifier.SelectDisplayID(ids),
			Distance:    distance,
			CatalogueID: ids.ID,
		})
	}

	sort.SliceStable(neighbors, func(i, j int) bool {
		return neighbors[i].Distance.Cmp(neighbors[j].Distance) < 0
	})

	return neighbors, nil
}

// boundingBox returns xmin, xmax, ymin, ymax, zmin, zmax around p
func boundingBox(p model.CartesianPosition, radius *apd.Decimal) ([]any, error) {
	ed := apd.MakeErrDecimal(spatial.Context)
	params := make([]any, 0, 6)
	for _, c := range []*apd.Decimal{p.X0, p.Y0, p.Z0} {
		lower, upper := new(apd.Decimal), new(apd.Decimal)
		ed.Sub(lower, c, radius)
		ed.Add(upper, c, radius)
		params = append(params, lower.String(), upper.String())
	}
	return params, ed.Err()
}
