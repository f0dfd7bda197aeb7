// Public domain.

// Package finder matches the galaxies of a target catalog against a
// reference catalog in comoving 3-D space and scores the admitted
// neighbor pairs.
//
// Matching works per target galaxy: the nearest reference points come
// out of a k-d tree over the projected reference catalog, spatially
// coincident entries are skipped, and the remaining candidates are
// admitted when both the true angular separation and the velocity
// difference fall within their thresholds.  Admitted pairs get a
// normalized proximity score and a dense per-target rank.
package finder

import (
	"context"
	"fmt"
	"runtime"
	"sync/atomic"

	"github.com/galneighbors/gnf/internal/catalog"
	"github.com/galneighbors/gnf/internal/cosmo"
	"github.com/galneighbors/gnf/internal/kdtree"
	"github.com/rs/zerolog"
	"github.com/soniakeys/coord"
	"golang.org/x/sync/errgroup"
)

// Default search thresholds.
const (
	DefaultMaxNeighbors = 500
	DefaultRProjMax     = 5000. // arcminutes
	DefaultVelDiffMax   = 3000. // km/s
)

// Threshold ceilings guarding against unit mix-ups.
const (
	MaxRProj   = 100000. // arcminutes
	MaxVelDiff = 100000. // km/s
)

// Params controls one FindNeighbors run.
type Params struct {
	MaxNeighbors int     // neighbor candidates fetched per target galaxy
	RProjMax     float64 // angular separation admission threshold, arcminutes
	VelDiffMax   float64 // velocity difference admission threshold, km/s

	// Workers is the number of concurrent target searches.
	// Zero means GOMAXPROCS.
	Workers int

	// Progress, when non-nil, is called once per finished target
	// search.  Calls may arrive from concurrent goroutines.
	Progress func(done, total int)
}

// DefaultParams returns Params with the standard search thresholds.
func DefaultParams() Params {
	return Params{
		MaxNeighbors: DefaultMaxNeighbors,
		RProjMax:     DefaultRProjMax,
		VelDiffMax:   DefaultVelDiffMax,
	}
}

// ParamError reports a search parameter outside its allowed range.
type ParamError struct {
	Name  string
	Value float64
	Limit float64 // exceeded ceiling, 0 when the value must be positive
}

func (e *ParamError) Error() string {
	if e.Limit != 0 {
		return fmt.Sprintf("%s too large: %g > %g", e.Name, e.Value, e.Limit)
	}
	return fmt.Sprintf("%s must be positive, got %g", e.Name, e.Value)
}

func (p *Params) validate() error {
	if p.MaxNeighbors <= 0 {
		return &ParamError{Name: "max_neighbors", Value: float64(p.MaxNeighbors)}
	}
	if p.RProjMax <= 0 {
		return &ParamError{Name: "r_proj_max", Value: p.RProjMax}
	}
	if p.RProjMax > MaxRProj {
		return &ParamError{Name: "r_proj_max", Value: p.RProjMax, Limit: MaxRProj}
	}
	if p.VelDiffMax <= 0 {
		return &ParamError{Name: "vel_diff_max", Value: p.VelDiffMax}
	}
	if p.VelDiffMax > MaxVelDiff {
		return &ParamError{Name: "vel_diff_max", Value: p.VelDiffMax, Limit: MaxVelDiff}
	}
	return nil
}

// Match is one admitted neighbor pair.
type Match struct {
	TargetIdx int     // row in the target catalog
	RefIdx    int     // row in the reference catalog
	VelDiff   float64 // km/s
	RProj     float64 // angular separation, arcminutes
	Score     float64
	Rank      int // dense 1-based rank within the target galaxy
}

// Finder holds the prepared search state for one target and reference
// catalog pair.
type Finder struct {
	target *catalog.Catalog
	ref    *catalog.Catalog
	cos    cosmo.LCDM
	lg     zerolog.Logger

	tpts []coord.Cart
	rpts []coord.Cart
	tree *kdtree.Tree
}

// New projects both catalogs to comoving Cartesian space and indexes
// the reference catalog for searching.
func New(target, ref *catalog.Catalog, cos cosmo.LCDM, lg zerolog.Logger) *Finder {
	f := &Finder{target: target, ref: ref, cos: cos, lg: lg}
	lg.Info().
		Str("target", target.Name).
		Str("reference", ref.Name).
		Float64("h0", cos.H0).
		Float64("omega_m", cos.OmegaM).
		Msg("neighbor finder initialized")
	f.tpts = f.project(target)
	f.rpts = f.project(ref)
	f.tree = kdtree.Build(f.rpts)
	lg.Info().
		Int("target_rows", target.Len()).
		Int("reference_rows", ref.Len()).
		Msg("catalogs projected and indexed")
	return f
}

// FindNeighbors searches the reference catalog around every target
// galaxy and returns the admitted matches as an output table.
//
// The target catalog must have an id column; the reference catalog
// needs none.  Matches come back sorted by target id then score, with
// dense per-target ranks.  When nothing is admitted the table is
// empty but still carries the output header.
func (f *Finder) FindNeighbors(ctx context.Context, p Params) (*Result, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	idCol, err := f.target.Column(catalog.ColID)
	if err != nil {
		return nil, err
	}
	idIdx, _ := f.target.Index(idCol)
	ids := make([]string, f.target.Len())
	for i := range ids {
		ids[i] = f.target.Row(i)[idIdx]
	}

	workers := p.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	f.lg.Info().
		Int("targets", f.target.Len()).
		Int("max_neighbors", p.MaxNeighbors).
		Float64("r_proj_max_arcmin", p.RProjMax).
		Float64("vel_diff_max_kms", p.VelDiffMax).
		Int("workers", workers).
		Msg("neighbor search started")

	perTarget := make([][]Match, f.target.Len())
	var done atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range perTarget {
		i := i // per-iteration copy; required while go.mod targets go < 1.22
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			perTarget[i] = f.searchTarget(i, &p)
			if p.Progress != nil {
				p.Progress(int(done.Add(1)), len(perTarget))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var matches []Match
	for _, m := range perTarget {
		matches = append(matches, m...)
	}
	if len(matches) == 0 {
		f.lg.Warn().Msg("no neighbors found within thresholds")
		return newResult(f.target, f.ref, nil), nil
	}
	rankMatches(matches, ids)
	f.lg.Info().
		Int("matches", len(matches)).
		Int("targets", f.target.Len()).
		Msg("neighbor search finished")
	return newResult(f.target, f.ref, matches), nil
}

// searchTarget fetches candidates around target row ti and admits the
// ones within both thresholds, inclusive.
func (f *Finder) searchTarget(ti int, p *Params) []Match {
	var out []Match
	for _, h := range f.tree.Query(f.tpts[ti], p.MaxNeighbors) {
		if h.Dist == 0 {
			// spatially coincident, the same entry seen twice
			continue
		}
		vd := f.cos.VelocityDiff(f.target.Z(ti), f.ref.Z(h.Idx))
		sep := f.separation(ti, h.Idx)
		if sep <= p.RProjMax && vd <= p.VelDiffMax {
			out = append(out, Match{
				TargetIdx: ti,
				RefIdx:    h.Idx,
				VelDiff:   vd,
				RProj:     sep,
				Score:     ProximityScore(sep, vd, p.RProjMax, p.VelDiffMax),
			})
		}
	}
	return out
}
