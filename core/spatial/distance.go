package spatial

import (
	"github.com/cockroachdb/apd/v3"
	"github.com/siherrmann/starcalc/helper"
	"github.com/siherrmann/starcalc/model"
)

// Distance returns the euclidean distance in parsecs between exactly two positions.
// It returns a *model.ArityError for any other number of positions and
// model.ErrMissingCoordinate if a position lacks x0, y0 or z0.
func Distance(positions []model.CartesianPosition) (*apd.Decimal, error) {
	if len(positions) != 2 {
		return nil, &model.ArityError{Got: len(positions)}
	}

	a, b := positions[0], positions[1]
	if !a.HasCoordinates() || !b.HasCoordinates() {
		return nil, model.ErrMissingCoordinate
	}

	ed := apd.MakeErrDecimal(Context)
	sum := new(apd.Decimal)
	for _, axis := range [][2]*apd.Decimal{{a.X0, b.X0}, {a.Y0, b.Y0}, {a.Z0, b.Z0}} {
		diff := new(apd.Decimal)
		ed.Sub(diff, axis[0], axis[1])
		ed.Mul(diff, diff, diff)
		ed.Add(sum, sum, diff)
	}

	distance := new(apd.Decimal)
	ed.Sqrt(distance, sum)

	if err := ed.Err(); err != nil {
		return nil, helper.NewError("calculate distance", err)
	}

	return distance, nil
}
