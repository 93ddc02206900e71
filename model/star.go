package model

import "github.com/cockroachdb/apd/v3"

// IdentifierSet holds the identifiers of a star in every supported catalogue.
// ID is the internal catalogue id and always set, all other fields may be nil.
type IdentifierSet struct {
	ID     int64   `json:"id"`
	Tyc    *string `json:"tyc,omitempty"`
	Gaia   *int64  `json:"gaia,omitempty"`
	Hyg    *int64  `json:"hyg,omitempty"`
	Hip    *int64  `json:"hip,omitempty"`
	HD     *int64  `json:"hd,omitempty"`
	HR     *int64  `json:"hr,omitempty"`
	Gl     *string `json:"gl,omitempty"`
	Bayer  *string `json:"bayer,omitempty"`
	Flam   *int64  `json:"flam,omitempty"`
	Con    *string `json:"con,omitempty"`
	Proper *string `json:"proper,omitempty"`
}

// EquatorialPosition is the position of a star as observed from earth
type EquatorialPosition struct {
	RA     *apd.Decimal `json:"ra,omitempty"`
	Dec    *apd.Decimal `json:"dec,omitempty"`
	PosSrc *string      `json:"pos_src,omitempty"`
	Dist   *apd.Decimal `json:"dist,omitempty"` // parsecs
	RV     *apd.Decimal `json:"rv,omitempty"`   // km/s
	RVSrc  *string      `json:"rv_src,omitempty"`
	PMRA   *apd.Decimal `json:"pm_ra,omitempty"` // mas/yr
	PMDec  *apd.Decimal `json:"pm_dec,omitempty"`
	PMSrc  *string      `json:"pm_src,omitempty"`
}

// CartesianPosition is a heliocentric position in parsecs at epoch J2000.0
// (or at another epoch after extrapolation) together with the space
// velocity in km/s along each axis.
type CartesianPosition struct {
	X0      *apd.Decimal `json:"x0,omitempty"`
	Y0      *apd.Decimal `json:"y0,omitempty"`
	Z0      *apd.Decimal `json:"z0,omitempty"`
	DistSrc *string      `json:"dist_src,omitempty"`
	VX      *apd.Decimal `json:"vx,omitempty"`
	VY      *apd.Decimal `json:"vy,omitempty"`
	VZ      *apd.Decimal `json:"vz,omitempty"`
}

// HasCoordinates reports whether x0, y0 and z0 are all set
func (p CartesianPosition) HasCoordinates() bool {
	return p.X0 != nil && p.Y0 != nil && p.Z0 != nil
}

// Copy returns a deep copy, no decimal is shared with p.
func (p CartesianPosition) Copy() CartesianPosition {
	return CartesianPosition{
		X0:      copyDecimal(p.X0),
		Y0:      copyDecimal(p.Y0),
		Z0:      copyDecimal(p.Z0),
		DistSrc: copyString(p.DistSrc),
		VX:      copyDecimal(p.VX),
		VY:      copyDecimal(p.VY),
		VZ:      copyDecimal(p.VZ),
	}
}

// Photometry holds magnitudes and spectral classification
type Photometry struct {
	Mag      *apd.Decimal `json:"mag,omitempty"`
	AbsMag   *apd.Decimal `json:"absmag,omitempty"`
	CI       *apd.Decimal `json:"ci,omitempty"`
	MagSrc   *string      `json:"mag_src,omitempty"`
	Spect    *string      `json:"spect,omitempty"`
	SpectSrc *string      `json:"spect_src,omitempty"`
}

// StarRecord is a fully resolved catalogue entry.
// It is owned by the caller that resolved it and never cached.
type StarRecord struct {
	Ref        string             `json:"ref"` // display reference built from the request
	IDs        IdentifierSet      `json:"ids"`
	Position   EquatorialPosition `json:"position"`
	Cartesian  CartesianPosition  `json:"cartesian"`
	Photometry Photometry         `json:"photometry"`
	Habitable  bool               `json:"habitable"`
	Notes      *string            `json:"notes,omitempty"`
}

// Comparison is the result of measuring two stars at a common epoch
type Comparison struct {
	Epoch     int                  `json:"epoch"`
	Stars     [2]*StarRecord       `json:"stars"`
	Positions [2]CartesianPosition `json:"positions"` // extrapolated to Epoch
	Distance  *apd.Decimal         `json:"distance"`  // parsecs
}

func copyDecimal(d *apd.Decimal) *apd.Decimal {
	if d == nil {
		return nil
	}
	return new(apd.Decimal).Set(d)
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
