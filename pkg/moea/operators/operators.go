package operators

import (
	"math"
	"math/rand/v2"

	"github.com/evobench/archmoea/pkg/moea/framework"
)

// Params holds the genetic-operator settings shared by all algorithm
// families: simulated binary crossover and polynomial mutation, both with a
// rounding repair so offspring stay on the integer lattice.
type Params struct {
	CrossoverProb float64
	CrossoverEta  float64
	MutationProb  float64
	MutationEta   float64
}

// Defaults returns the standard operator tuning.
func Defaults() Params {
	return Params{
		CrossoverProb: 1.0,
		CrossoverEta:  30.0,
		MutationProb:  0.9,
		MutationEta:   20.0,
	}
}

// DecompositionDefaults returns the operator tuning used with
// decomposition-based search, which favors a lower crossover distribution
// index.
func DecompositionDefaults() Params {
	p := Defaults()
	p.CrossoverEta = 20.0
	return p
}

// Sample draws n integer candidates uniformly from the given bounds.
func Sample(bounds []framework.Bounds, n int) [][]int {
	candidates := make([][]int, n)
	for i := 0; i < n; i++ {
		vars := make([]int, len(bounds))
		for j, b := range bounds {
			vars[j] = b.L + rand.IntN(b.H-b.L+1)
		}
		candidates[i] = vars
	}
	return candidates
}

// Crossover performs SBX (Simulated Binary Crossover) on two parents and
// repairs the children back onto the integer lattice.
func (p Params) Crossover(parent1, parent2 []int, bounds []framework.Bounds) ([]int, []int) {
	child1 := make([]int, len(parent1))
	child2 := make([]int, len(parent2))

	if rand.Float64() < p.CrossoverProb {
		for i := range parent1 {
			x1 := float64(parent1[i])
			x2 := float64(parent2[i])

			beta := 0.0
			if u := rand.Float64(); u <= 0.5 {
				beta = math.Pow(2*u, 1.0/(p.CrossoverEta+1))
			} else {
				beta = math.Pow(1.0/(2*(1.0-u)), 1.0/(p.CrossoverEta+1))
			}

			c1 := 0.5 * ((1+beta)*x1 + (1-beta)*x2)
			c2 := 0.5 * ((1-beta)*x1 + (1+beta)*x2)

			child1[i] = repair(c1, bounds[i])
			child2[i] = repair(c2, bounds[i])
		}
	} else {
		copy(child1, parent1)
		copy(child2, parent2)
	}

	return child1, child2
}

// Mutate performs polynomial mutation in place, with rounding repair.
func (p Params) Mutate(vars []int, bounds []framework.Bounds) {
	for i := range vars {
		if rand.Float64() < p.MutationProb {
			delta := 0.0
			if u := rand.Float64(); u <= 0.5 {
				delta = math.Pow(2*u, 1.0/(p.MutationEta+1)) - 1
			} else {
				delta = 1 - math.Pow(2*(1-u), 1.0/(p.MutationEta+1))
			}

			x := float64(vars[i]) + delta*float64(bounds[i].H-bounds[i].L)
			vars[i] = repair(x, bounds[i])
		}
	}
}

// repair rounds a real-valued gene to the nearest integer and clamps it to
// its variable's bounds.
func repair(x float64, b framework.Bounds) int {
	v := int(math.Round(x))
	if v < b.L {
		v = b.L
	}
	if v > b.H {
		v = b.H
	}
	return v
}
