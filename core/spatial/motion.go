package spatial

import (
	"github.com/cockroachdb/apd/v3"
	"github.com/siherrmann/starcalc/helper"
	"github.com/siherrmann/starcalc/model"
)

// J2000 is the epoch of the catalogue cartesian coordinates
const J2000 = 2000

// ParsecsPerYear converts a velocity in km/s to parsecs per julian year
var ParsecsPerYear = mustDecimal("1.02271128e-6")

// Extrapolate moves a J2000 position linearly along its space velocity to year.
// Nil velocity components count as zero, nil coordinates stay nil.
// The result shares no decimals with p.
func Extrapolate(p model.CartesianPosition, year int) (model.CartesianPosition, error) {
	moved := p.Copy()
	years := new(apd.Decimal).SetInt64(int64(year - J2000))

	axes := []struct {
		coordinate *apd.Decimal
		velocity   *apd.Decimal
	}{
		{moved.X0, p.VX},
		{moved.Y0, p.VY},
		{moved.Z0, p.VZ},
	}

	ed := apd.MakeErrDecimal(Context)
	for _, axis := range axes {
		if axis.coordinate == nil || axis.velocity == nil {
			continue
		}
		delta := new(apd.Decimal)
		ed.Mul(delta, axis.velocity, years)
		ed.Mul(delta, delta, ParsecsPerYear)
		ed.Add(axis.coordinate, axis.coordinate, delta)
	}

	if err := ed.Err(); err != nil {
		return model.CartesianPosition{}, helper.NewError("extrapolate position", err)
	}

	return moved, nil
}
