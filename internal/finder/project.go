// Public domain.

package finder

import (
	"math"

	"github.com/galneighbors/gnf/internal/catalog"
	"github.com/soniakeys/coord"
	"github.com/soniakeys/meeus/v3/angle"
	"github.com/soniakeys/unit"
)

// position returns the Cartesian point of a sky direction at comoving
// distance d.
func position(ra unit.RA, dec unit.Angle, d float64) coord.Cart {
	sdec, cdec := math.Sincos(dec.Rad())
	sra, cra := math.Sincos(ra.Rad())
	p := coord.Cart{
		X: cra * cdec,
		Y: sra * cdec,
		Z: sdec,
	}
	p.MulScalar(&p, d)
	return p
}

// project converts catalog sky positions and redshifts to Cartesian
// points at comoving distance.
func (f *Finder) project(c *catalog.Catalog) []coord.Cart {
	pts := make([]coord.Cart, c.Len())
	for i := range pts {
		pts[i] = position(c.RA(i), c.Dec(i), f.cos.ComovingDistance(c.Z(i)))
	}
	return pts
}

// separation returns the true angular separation of target row ti and
// reference row ri in arcminutes.
func (f *Finder) separation(ti, ri int) float64 {
	return angle.SepPauwels(
		f.target.RA(ti), f.target.Dec(ti),
		f.ref.RA(ri), f.ref.Dec(ri)).Min()
}
