// Package spatial holds the decimal geometry of star positions:
// euclidean distance between J2000 cartesian positions and linear
// extrapolation of those positions to other epochs.
package spatial

import "github.com/cockroachdb/apd/v3"

// Context is the decimal context used for all position arithmetic,
// 34 significant digits rounded half to even.
var Context = newContext()

func newContext() *apd.Context {
	c := apd.BaseContext.WithPrecision(34)
	c.Rounding = apd.RoundHalfEven
	return c
}

func mustDecimal(s string) *apd.Decimal {
	d, _, err := apd.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}
