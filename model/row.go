package model

import (
	"database/sql"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/cockroachdb/apd/v3"
	"github.com/siherrmann/starcalc/helper"
)

// CatalogueColumns is the column layout of the catalogue table
var CatalogueColumns = []string{
	"id", "tyc", "gaia", "hyg", "hip", "hd", "hr", "gl", "bayer", "flam", "con", "proper",
	"ra", "dec", "pos_src", "dist", "x0", "y0", "z0", "dist_src",
	"mag", "absmag", "ci", "mag_src",
	"rv", "rv_src", "pm_ra", "pm_dec", "pm_src",
	"vx", "vy", "vz",
	"spect", "spect_src",
}

// HabitableColumns is the column layout of the habitable table
var HabitableColumns = []string{"hip"}

// Row is a single result row keyed by lower-cased column name.
// Values are whatever the driver returned, nil for NULL.
type Row map[string]any

// ScanRows reads all remaining rows into Rows. It does not close rows.
func ScanRows(rows *sql.Rows) ([]Row, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, helper.NewError("columns", err)
	}

	var result []Row
	for rows.Next() {
		values := make([]any, len(columns))
		pointers := make([]any, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}

		err := rows.Scan(pointers...)
		if err != nil {
			return nil, helper.NewError("scan", err)
		}

		row := make(Row, len(columns))
		for i, column := range columns {
			row[strings.ToLower(column)] = values[i]
		}
		result = append(result, row)
	}

	err = rows.Err()
	if err != nil {
		return nil, helper.NewError("rows error", err)
	}

	return result, nil
}

// String returns the value of key as string, nil if absent or NULL
func (r Row) String(key string) *string {
	var s string
	switch v := r[key].(type) {
	case nil:
		return nil
	case string:
		s = v
	case []byte:
		s = string(v)
	case int64:
		s = strconv.FormatInt(v, 10)
	case float64:
		s = strconv.FormatFloat(v, 'f', -1, 64)
	default:
		s = fmt.Sprint(v)
	}
	return &s
}

// Int returns the value of key as int64, nil if absent, NULL or not integral
func (r Row) Int(key string) *int64 {
	var i int64
	switch v := r[key].(type) {
	case nil:
		return nil
	case int64:
		i = v
	case int:
		i = int64(v)
	case float64:
		if v != math.Trunc(v) || math.IsInf(v, 0) {
			return nil
		}
		i = int64(v)
	case string, []byte:
		parsed, err := strconv.ParseInt(strings.TrimSpace(*r.String(key)), 10, 64)
		if err != nil {
			return nil
		}
		i = parsed
	default:
		return nil
	}
	return &i
}

// Decimal returns the value of key as decimal, nil if absent, NULL or not numeric
func (r Row) Decimal(key string) *apd.Decimal {
	switch v := r[key].(type) {
	case nil:
		return nil
	case int64:
		return new(apd.Decimal).SetInt64(v)
	case int:
		return new(apd.Decimal).SetInt64(int64(v))
	case float64:
		d, err := new(apd.Decimal).SetFloat64(v)
		if err != nil {
			return nil
		}
		return d
	case string, []byte:
		d, _, err := apd.NewFromString(strings.TrimSpace(*r.String(key)))
		if err != nil {
			return nil
		}
		return d
	default:
		return nil
	}
}

// NewIdentifierSet projects the identifier columns of row.
// The row must carry an integral id.
func NewIdentifierSet(row Row) (IdentifierSet, error) {
	id := row.Int("id")
	if id == nil {
		return IdentifierSet{}, fmt.Errorf("row has no catalogue id")
	}

	return IdentifierSet{
		ID:     *id,
		Tyc:    row.String("tyc"),
		Gaia:   row.Int("gaia"),
		Hyg:    row.Int("hyg"),
		Hip:    row.Int("hip"),
		HD:     row.Int("hd"),
		HR:     row.Int("hr"),
		Gl:     row.String("gl"),
		Bayer:  row.String("bayer"),
		Flam:   row.Int("flam"),
		Con:    row.String("con"),
		Proper: row.String("proper"),
	}, nil
}

// NewEquatorialPosition projects the equatorial columns of row
func NewEquatorialPosition(row Row) EquatorialPosition {
	return EquatorialPosition{
		RA:     row.Decimal("ra"),
		Dec:    row.Decimal("dec"),
		PosSrc: row.String("pos_src"),
		Dist:   row.Decimal("dist"),
		RV:     row.Decimal("rv"),
		RVSrc:  row.String("rv_src"),
		PMRA:   row.Decimal("pm_ra"),
		PMDec:  row.Decimal("pm_dec"),
		PMSrc:  row.String("pm_src"),
	}
}

// NewCartesianPosition projects the cartesian columns of row
func NewCartesianPosition(row Row) CartesianPosition {
	return CartesianPosition{
		X0:      row.Decimal("x0"),
		Y0:      row.Decimal("y0"),
		Z0:      row.Decimal("z0"),
		DistSrc: row.String("dist_src"),
		VX:      row.Decimal("vx"),
		VY:      row.Decimal("vy"),
		VZ:      row.Decimal("vz"),
	}
}

// NewPhotometry projects the magnitude and spectral columns of row
func NewPhotometry(row Row) Photometry {
	return Photometry{
		Mag:      row.Decimal("mag"),
		AbsMag:   row.Decimal("absmag"),
		CI:       row.Decimal("ci"),
		MagSrc:   row.String("mag_src"),
		Spect:    row.String("spect"),
		SpectSrc: row.String("spect_src"),
	}
}
