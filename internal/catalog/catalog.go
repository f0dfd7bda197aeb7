// Public domain.

// Package catalog reads galaxy catalogs from CSV files.
//
// A catalog keeps every column of the source file as text for later
// output assembly and parses the three columns needed for matching:
// right ascension, declination and redshift.  Column names vary by
// survey, so standard names are resolved through a per-catalog
// mapping, with unmapped names passing through unchanged.
package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	sexa "github.com/soniakeys/sexagesimal"
	"github.com/soniakeys/unit"
)

// Standard column names resolved through a catalog mapping.
const (
	ColRA       = "ra"
	ColDec      = "dec"
	ColRedshift = "redshift"
	ColID       = "id"
)

// Physical ranges enforced on load, inclusive.
const (
	MinRA       = 0
	MaxRA       = 360
	MinDec      = -90
	MaxDec      = 90
	MinRedshift = 0
	MaxRedshift = 10
)

// Catalog is one loaded galaxy catalog.
type Catalog struct {
	Name    string            // label used in logs and errors
	Mapping map[string]string // standard name to file column name

	header []string
	colIdx map[string]int
	rows   [][]string
	ra     []unit.RA
	dec    []unit.Angle
	z      []float64
}

// Load reads the CSV catalog at path.
//
// The ra, dec and redshift columns must resolve and hold values within
// physical range.  An id column is only needed once matches are
// ranked, so its absence is not an error here.  Empty fields and
// common not-available tokens parse as NaN.
func Load(path, name string, mapping map[string]string, lg zerolog.Logger) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", name, err)
	}
	defer f.Close()
	r := csv.NewReader(f)
	header, err := r.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("catalog %s: empty file %s", name, path)
	}
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", name, err)
	}
	c := &Catalog{
		Name:    name,
		Mapping: mapping,
		header:  header,
		colIdx:  make(map[string]int, len(header)),
	}
	for i, h := range header {
		c.colIdx[h] = i
	}
	var cx [3]int
	for i, std := range [...]string{ColRA, ColDec, ColRedshift} {
		fc, err := c.Column(std)
		if err != nil {
			return nil, err
		}
		cx[i], _ = c.Index(fc)
	}
	var raX, decX, zX extent
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("catalog %s: %w", name, err)
		}
		c.rows = append(c.rows, rec)
		var v [3]float64
		for i, x := range cx {
			if v[i], err = parseField(rec[x]); err != nil {
				return nil, fmt.Errorf("catalog %s row %d column %s: %w",
					name, len(c.rows), header[x], err)
			}
		}
		raX.add(v[0])
		decX.add(v[1])
		zX.add(v[2])
		c.ra = append(c.ra, unit.RAFromDeg(v[0]))
		c.dec = append(c.dec, unit.AngleFromDeg(v[1]))
		c.z = append(c.z, v[2])
	}
	if err := checkRange(name, ColRA, raX, MinRA, MaxRA); err != nil {
		return nil, err
	}
	if err := checkRange(name, ColDec, decX, MinDec, MaxDec); err != nil {
		return nil, err
	}
	if err := checkRange(name, ColRedshift, zX, MinRedshift, MaxRedshift); err != nil {
		return nil, err
	}
	lg.Info().
		Str("catalog", name).
		Str("path", path).
		Int("rows", c.Len()).
		Msg("catalog loaded")
	if raX.ok() && decX.ok() && zX.ok() {
		lg.Debug().
			Str("catalog", name).
			Str("ra_deg", fmt.Sprintf("%.4f to %.4f", raX.lo, raX.hi)).
			Str("dec", decExtent(decX)).
			Str("z", fmt.Sprintf("%.4f to %.4f", zX.lo, zX.hi)).
			Msg("sky coverage")
	}
	return c, nil
}

// parseField converts one CSV field to float64.  Empty fields and the
// tokens na, n/a and null, in any case, parse as NaN.
func parseField(s string) (float64, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "", "na", "n/a", "null":
		return math.NaN(), nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("bad numeric field %q", s)
	}
	return v, nil
}

// extent tracks the finite value range of a column.
type extent struct {
	lo, hi float64
	n      int
}

func (e *extent) add(v float64) {
	if math.IsNaN(v) {
		return
	}
	if e.n == 0 || v < e.lo {
		e.lo = v
	}
	if e.n == 0 || v > e.hi {
		e.hi = v
	}
	e.n++
}

func (e *extent) ok() bool { return e.n > 0 }

func checkRange(cat, field string, e extent, lo, hi float64) error {
	if !e.ok() {
		return nil
	}
	if e.lo < lo || e.hi > hi {
		return &RangeError{Catalog: cat, Field: field,
			Lo: lo, Hi: hi, FoundLo: e.lo, FoundHi: e.hi}
	}
	return nil
}

// decExtent formats a declination range in sexagesimal for debug logs.
func decExtent(e extent) string {
	return fmt.Sprintf("%s to %s",
		sexa.NewFmtAngle(unit.AngleFromDeg(e.lo)),
		sexa.NewFmtAngle(unit.AngleFromDeg(e.hi)))
}

// Column resolves the standard column name std through the catalog
// mapping.  A SchemaError is returned when the resolved name is not a
// column of the file.
func (c *Catalog) Column(std string) (string, error) {
	name := std
	if m, ok := c.Mapping[std]; ok {
		name = m
	}
	if _, ok := c.colIdx[name]; !ok {
		return "", &SchemaError{Catalog: c.Name, Column: name, Available: c.header}
	}
	return name, nil
}

// Index returns the position of the file column name in Header.
func (c *Catalog) Index(name string) (int, bool) {
	i, ok := c.colIdx[name]
	return i, ok
}

// Len returns the number of data rows.
func (c *Catalog) Len() int { return len(c.rows) }

// Header returns the file column names in file order.
func (c *Catalog) Header() []string { return c.header }

// Row returns the raw fields of data row i.
func (c *Catalog) Row(i int) []string { return c.rows[i] }

func (c *Catalog) RA(i int) unit.RA { return c.ra[i] }

func (c *Catalog) Dec(i int) unit.Angle { return c.dec[i] }

func (c *Catalog) Z(i int) float64 { return c.z[i] }
