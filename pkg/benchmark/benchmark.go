// Package benchmark defines the architecture-search benchmark contract, a
// synthetic nine-problem suite implementing it, and the adapter that exposes
// a benchmark to the optimizer engines.
package benchmark

import (
	"errors"
	"fmt"
)

// ErrInvalidCandidate is returned when a candidate violates a benchmark's
// dimensionality or per-variable bounds.
var ErrInvalidCandidate = errors.New("invalid candidate")

// SearchSpace describes an integer search space: inclusive lower and upper
// bounds per decision variable.
type SearchSpace struct {
	Lower []int
	Upper []int
}

// NumVariables returns the dimensionality of the space.
func (s SearchSpace) NumVariables() int {
	return len(s.Lower)
}

// Validate checks the bounds invariant lb[i] <= ub[i].
func (s SearchSpace) Validate() error {
	if len(s.Lower) == 0 || len(s.Lower) != len(s.Upper) {
		return fmt.Errorf("malformed search space: %d lower vs %d upper bounds", len(s.Lower), len(s.Upper))
	}
	for i := range s.Lower {
		if s.Lower[i] > s.Upper[i] {
			return fmt.Errorf("malformed search space: lb[%d]=%d > ub[%d]=%d", i, s.Lower[i], i, s.Upper[i])
		}
	}
	return nil
}

// Contains reports whether the candidate is inside the space.
func (s SearchSpace) Contains(candidate []int) bool {
	if len(candidate) != len(s.Lower) {
		return false
	}
	for i, v := range candidate {
		if v < s.Lower[i] || v > s.Upper[i] {
			return false
		}
	}
	return true
}

// Benchmark is the contract an architecture-search benchmark exposes to the
// harness: an immutable search space, a batch evaluation with a surrogate
// and an authoritative path, and the bookkeeping needed to score a final
// front.
type Benchmark interface {
	Name() string
	SearchSpace() SearchSpace
	NumObjectives() int

	// Evaluate scores a batch of candidates, one objective row per
	// candidate. With exact=false a cheap surrogate estimate may be
	// returned; exact=true is the authoritative evaluation used for final
	// reporting. Batches containing out-of-bounds candidates are rejected
	// with ErrInvalidCandidate before any evaluation happens.
	Evaluate(candidates [][]int, exact bool) ([][]float64, error)

	// ReferencePoint is the designated upper corner for hypervolume
	// computation.
	ReferencePoint() []float64

	// PerfIndicator computes the scalar performance indicator (hypervolume
	// against the designated reference point) of an objective matrix.
	PerfIndicator(objectives [][]float64) float64
}

// ValidateBatch rejects a whole batch if any candidate violates the space.
func ValidateBatch(space SearchSpace, candidates [][]int) error {
	for i, c := range candidates {
		if len(c) != space.NumVariables() {
			return fmt.Errorf("%w: candidate %d has %d variables, want %d",
				ErrInvalidCandidate, i, len(c), space.NumVariables())
		}
		if !space.Contains(c) {
			return fmt.Errorf("%w: candidate %d violates bounds", ErrInvalidCandidate, i)
		}
	}
	return nil
}
