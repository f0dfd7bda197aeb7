// Public domain.

// Package cosmo computes comoving distances and recession-velocity
// differences under a flat ΛCDM cosmology.
package cosmo

import "math"

// CKmS is the speed of light in km/s.
const CKmS = 299792.458

// Default cosmological parameters.
const (
	DefaultH0     = 70. // km/s/Mpc
	DefaultOmegaM = 0.3 // dimensionless
)

// Integration control for the comoving distance integral.  The
// subinterval count derived from zStep is forced even for composite
// Simpson and clamped so very small and very large redshifts get a
// sane rule.
const (
	zStep    = .005
	minSteps = 16
	maxSteps = 4096
)

// LCDM is a flat ΛCDM cosmology.  The dark energy fraction is
// implicitly 1 - OmegaM.  The zero value is not useful; construct with
// New or Default.
type LCDM struct {
	H0     float64 // Hubble constant, km/s/Mpc
	OmegaM float64 // matter density fraction
}

// New returns a flat ΛCDM cosmology with the given Hubble constant in
// km/s/Mpc and matter density fraction.
func New(h0, omegaM float64) LCDM {
	return LCDM{H0: h0, OmegaM: omegaM}
}

// Default returns the cosmology used when nothing else is configured:
// H0 = 70 km/s/Mpc, Ωm = 0.3.
func Default() LCDM {
	return LCDM{H0: DefaultH0, OmegaM: DefaultOmegaM}
}

// einv is 1/E(z) with E(z) = sqrt(Ωm(1+z)³ + 1 - Ωm), the
// dimensionless Hubble parameter of a flat universe with no radiation
// term.
func (c LCDM) einv(z float64) float64 {
	z1 := 1 + z
	return 1 / math.Sqrt(c.OmegaM*z1*z1*z1+1-c.OmegaM)
}

// ComovingDistance computes the comoving radial distance to redshift z
// in Mpc.
//
// Algorithm:
//   - the FRW comoving distance integral (c/H0)·∫ dz'/E(z') over
//     [0, z] has a smooth positive integrand, so a composite Simpson
//     rule with subintervals of about zStep in redshift is already far
//     inside the 1e-4 relative accuracy needed here.
//
// The result is strictly increasing in z and exactly 0 at z = 0.
// NaN or infinite input yields NaN, never a panic.
func (c LCDM) ComovingDistance(z float64) float64 {
	if math.IsNaN(z) || math.IsInf(z, 0) {
		return math.NaN()
	}
	if z == 0 {
		return 0
	}
	n := int(math.Ceil(math.Abs(z) / zStep))
	if n < minSteps {
		n = minSteps
	} else if n > maxSteps {
		n = maxSteps
	}
	if n&1 == 1 {
		n++
	}
	h := z / float64(n)
	sum := c.einv(0) + c.einv(z)
	for i := 1; i < n; i++ {
		f := c.einv(float64(i) * h)
		if i&1 == 1 {
			sum += 4 * f
		} else {
			sum += 2 * f
		}
	}
	return CKmS / c.H0 * sum * h / 3
}

// VelocityDiff returns the recession-velocity difference c·|z1 - z2|
// in km/s.  This is the non-relativistic approximation; it degrades
// for large Δz but is the quantity the selection thresholds are
// defined on.  Equal redshifts give exactly 0.
func (c LCDM) VelocityDiff(z1, z2 float64) float64 {
	return CKmS * math.Abs(z1-z2)
}
