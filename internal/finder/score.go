// Public domain.

package finder

// Relative weights of the normalized separation and velocity terms.
const (
	rprojWeight   = .5
	velDiffWeight = .5
)

// ProximityScore is the weighted sum of the two closeness measures,
// each normalized by its admission threshold.  Admitted matches score
// in [0, 1], lower meaning closer.
func ProximityScore(rProj, velDiff, rProjMax, velDiffMax float64) float64 {
	return rprojWeight*(rProj/rProjMax) + velDiffWeight*(velDiff/velDiffMax)
}
