package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/cockroachdb/apd/v3"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/siherrmann/starcalc/core/identifier"
	"github.com/siherrmann/starcalc/core/spatial"
	"github.com/siherrmann/starcalc/model"
)

// parsecs formats d with three decimals, rounding half to even
func parsecs(d *apd.Decimal) string {
	if d == nil {
		return "-"
	}
	q := new(apd.Decimal)
	if _, err := spatial.Context.Quantize(q, d, -3); err != nil {
		return d.Text('f')
	}
	return q.Text('f')
}

func distanceMessage(c *model.Comparison) string {
	return fmt.Sprintf("The distance between %s and %s in %d is %s parsecs.",
		c.Stars[0].Ref, c.Stars[1].Ref, c.Epoch, parsecs(c.Distance))
}

func newTable(out io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleLight)
	return t
}

func renderStar(out io.Writer, star *model.StarRecord) {
	t := newTable(out)
	t.SetTitle(star.Ref)
	t.AppendHeader(table.Row{"Field", "Value"})

	ids := star.IDs
	t.AppendRows([]table.Row{
		{"Display", identifier.SelectDisplayID(ids)},
		{"AT-HYG", ids.ID},
		{"Proper", text(ids.Proper)},
		{"Gliese", text(ids.Gl)},
		{"Bayer", text(ids.Bayer)},
		{"Flamsteed", integer(ids.Flam)},
		{"Constellation", text(ids.Con)},
		{"Hipparcos", integer(ids.Hip)},
		{"Henry Draper", integer(ids.HD)},
		{"Harvard Revised", integer(ids.HR)},
		{"Tycho", text(ids.Tyc)},
		{"Gaia", integer(ids.Gaia)},
		{"HYG", integer(ids.Hyg)},
	})
	t.AppendSeparator()

	p := star.Position
	t.AppendRows([]table.Row{
		{"RA", number(p.RA)},
		{"Dec", number(p.Dec)},
		{"Distance (pc)", number(p.Dist)},
		{"Radial velocity (km/s)", number(p.RV)},
		{"Proper motion RA (mas/yr)", number(p.PMRA)},
		{"Proper motion Dec (mas/yr)", number(p.PMDec)},
	})
	t.AppendSeparator()

	c := star.Cartesian
	t.AppendRows([]table.Row{
		{"x0 / y0 / z0 (pc)", fmt.Sprintf("%s / %s / %s", number(c.X0), number(c.Y0), number(c.Z0))},
		{"vx / vy / vz (km/s)", fmt.Sprintf("%s / %s / %s", number(c.VX), number(c.VY), number(c.VZ))},
	})
	t.AppendSeparator()

	ph := star.Photometry
	t.AppendRows([]table.Row{
		{"Magnitude", number(ph.Mag)},
		{"Absolute magnitude", number(ph.AbsMag)},
		{"Color index", number(ph.CI)},
		{"Spectral type", text(ph.Spect)},
		{"Habitable", star.Habitable},
		{"Notes", text(star.Notes)},
	})

	t.Render()
}

func renderComparison(out io.Writer, c *model.Comparison) {
	t := newTable(out)
	t.AppendHeader(table.Row{"Star", "x", "y", "z"})
	for i, star := range c.Stars {
		p := c.Positions[i]
		t.AppendRow(table.Row{star.Ref, number(p.X0), number(p.Y0), number(p.Z0)})
	}
	t.Render()
	fmt.Fprintln(out, distanceMessage(c))
}

func renderNeighbors(out io.Writer, origin *model.StarRecord, radius *apd.Decimal, neighbors []model.Neighbor) {
	t := newTable(out)
	t.SetTitle(fmt.Sprintf("%d stars within %s parsecs of %s", len(neighbors), radius.Text('f'), origin.Ref))
	t.AppendHeader(table.Row{"#", "Star", "Distance (pc)", "AT-HYG"})
	for i, n := range neighbors {
		t.AppendRow(table.Row{i + 1, n.DisplayID, parsecs(n.Distance), n.CatalogueID})
	}
	t.Render()
}

func renderCatalogues(out io.Writer, config *model.CatalogueConfig) {
	t := newTable(out)
	t.AppendHeader(table.Row{"Key", "Name", "Tokens", "Numeric", "Prefixed"})
	for _, key := range config.Keys() {
		d, _ := config.Descriptor(key)
		t.AppendRow(table.Row{d.Key, d.Name, d.TokenShape, d.Numeric, d.PrefixDisplayName})
	}
	t.Render()
}

func text(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}

func integer(i *int64) string {
	if i == nil {
		return "-"
	}
	return strconv.FormatInt(*i, 10)
}

func number(d *apd.Decimal) string {
	if d == nil {
		return "-"
	}
	return d.Text('f')
}
