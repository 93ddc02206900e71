// Package data embeds a small sample of the AT-HYG catalogue and a habitable list
package data

import _ "embed"

// Stars is a CSV of Sol and its nearest neighbors in catalogue column names
//
//go:embed stars.csv
var Stars string

// Habitable is a CSV of hipparcos numbers of habitable stars
//
//go:embed habitable.csv
var Habitable string
