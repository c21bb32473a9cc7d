// Package refdirs generates the uniform reference-direction sets used by
// decomposition-based and reference-point-based algorithms.
package refdirs

import (
	"fmt"

	"gonum.org/v1/gonum/stat/combin"
)

// Count returns the number of Das-Dennis directions produced for the given
// objective count and partition count: C(partitions+m-1, m-1).
func Count(numObjectives, partitions int) int {
	return combin.Binomial(partitions+numObjectives-1, numObjectives-1)
}

// DasDennis generates the uniform simplex lattice of Das and Dennis: every
// vector of m non-negative multiples of 1/partitions that sums to one. The
// enumeration is deterministic, in lexicographic order.
//
// Each lattice point corresponds to one combination of m-1 "bar" positions
// among partitions+m-1 slots (stars and bars), which is what gonum's
// combination generator enumerates.
func DasDennis(numObjectives, partitions int) ([][]float64, error) {
	if numObjectives < 2 {
		return nil, fmt.Errorf("das-dennis needs at least 2 objectives, got %d", numObjectives)
	}
	if partitions < 1 {
		return nil, fmt.Errorf("das-dennis needs at least 1 partition, got %d", partitions)
	}

	m := numObjectives
	h := partitions

	dirs := make([][]float64, 0, Count(m, h))
	gen := combin.NewCombinationGenerator(h+m-1, m-1)
	bars := make([]int, m-1)
	for gen.Next() {
		gen.Combination(bars)

		dir := make([]float64, m)
		prev := 0
		for j, b := range bars {
			// Shift each bar left by its index to recover the partition
			// count it encloses.
			s := b - j
			dir[j] = float64(s-prev) / float64(h)
			prev = s
		}
		dir[m-1] = float64(h-prev) / float64(h)

		dirs = append(dirs, dir)
	}

	return dirs, nil
}
