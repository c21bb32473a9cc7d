// Package indicators implements the performance indicators used to score a
// final candidate set.
package indicators

import (
	"gonum.org/v1/gonum/floats"
)

// Hypervolume computes the volume of objective space dominated by the given
// points and bounded above by the reference point, assuming minimization.
// Points that do not strictly improve on the reference point in every
// objective contribute nothing. Higher is better.
//
// The computation follows the WFG scheme: the total volume is the sum of
// each point's volume exclusive of the points after it.
func Hypervolume(points [][]float64, ref []float64) float64 {
	valid := make([][]float64, 0, len(points))
	for _, p := range points {
		if len(p) != len(ref) {
			continue
		}
		inside := true
		for j := range p {
			if p[j] >= ref[j] {
				inside = false
				break
			}
		}
		if inside {
			valid = append(valid, p)
		}
	}
	return hv(filterNonDominated(valid), ref)
}

func hv(points [][]float64, ref []float64) float64 {
	total := 0.0
	for i, p := range points {
		total += exclusive(p, points[i+1:], ref)
	}
	return total
}

// exclusive is the volume dominated by p alone, minus the part also covered
// by the remaining points.
func exclusive(p []float64, rest [][]float64, ref []float64) float64 {
	return inclusive(p, ref) - hv(filterNonDominated(limitSet(p, rest)), ref)
}

// inclusive is the volume of the box spanned by p and the reference point.
func inclusive(p []float64, ref []float64) float64 {
	v := 1.0
	for j := range p {
		v *= ref[j] - p[j]
	}
	return v
}

// limitSet raises every point of the set to be at least as bad as p in each
// objective, restricting the set to the region p dominates.
func limitSet(p []float64, points [][]float64) [][]float64 {
	limited := make([][]float64, len(points))
	for i, q := range points {
		l := make([]float64, len(q))
		copy(l, q)
		for j := range l {
			if p[j] > l[j] {
				l[j] = p[j]
			}
		}
		limited[i] = l
	}
	return limited
}

// filterNonDominated drops dominated points and duplicate points, either of
// which would be double counted by the sweep.
func filterNonDominated(points [][]float64) [][]float64 {
	kept := make([][]float64, 0, len(points))
	for i, p := range points {
		dominated := false
		for j, q := range points {
			if i == j {
				continue
			}
			if weaklyDominates(q, p) && (j < i || !floats.Equal(q, p)) {
				dominated = true
				break
			}
		}
		if !dominated {
			kept = append(kept, p)
		}
	}
	return kept
}

// weaklyDominates reports whether a is at least as good as b in every
// objective.
func weaklyDominates(a, b []float64) bool {
	for j := range a {
		if a[j] > b[j] {
			return false
		}
	}
	return true
}
