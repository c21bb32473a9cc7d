package algorithms

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/evobench/archmoea/pkg/moea/framework"
	"github.com/evobench/archmoea/pkg/moea/operators"
)

// MOEAD is the decomposition-based engine: one subproblem per reference
// direction, scalarized with the Tchebycheff function, mating restricted to
// a neighborhood of similar directions most of the time.
type MOEAD struct {
	ReferenceDirections [][]float64
	NumGenerations      int
	Operators           operators.Params

	// NeighborhoodSize is the number of closest directions forming each
	// subproblem's mating and replacement neighborhood.
	NeighborhoodSize int
	// NeighborMatingProb is the probability of mating within the
	// neighborhood instead of the whole population.
	NeighborMatingProb float64
}

// NewMOEAD creates a MOEA/D instance with the standard neighborhood tuning.
func NewMOEAD(refDirs [][]float64, numGen int, ops operators.Params) *MOEAD {
	return &MOEAD{
		ReferenceDirections: refDirs,
		NumGenerations:      numGen,
		Operators:           ops,
		NeighborhoodSize:    20,
		NeighborMatingProb:  0.9,
	}
}

func (m *MOEAD) Name() string {
	return "MOEA/D"
}

// Run executes MOEA/D for the configured generation budget. The population
// size equals the number of reference directions.
func (m *MOEAD) Run(problem framework.Problem) ([]framework.Individual, error) {
	n := len(m.ReferenceDirections)
	neighbors := m.neighborhoods()

	population, err := initialPopulation(problem, n)
	if err != nil {
		return nil, err
	}
	ideal := idealPoint(population)
	bounds := problem.Bounds()

	for gen := 0; gen < m.NumGenerations; gen++ {
		for _, i := range rand.Perm(n) {
			pool := neighbors[i]
			if rand.Float64() >= m.NeighborMatingProb {
				pool = nil // mate across the whole population
			}

			p1, p2 := m.pickParents(pool, n)
			child1, _ := m.Operators.Crossover(population[p1].Variables, population[p2].Variables, bounds)
			m.Operators.Mutate(child1, bounds)

			offspring, err := evaluate(problem, [][]int{child1})
			if err != nil {
				return nil, fmt.Errorf("generation %d: %w", gen, err)
			}
			child := offspring[0]

			updateIdeal(ideal, child.Objectives)

			// The child replaces every neighbor it improves on, in
			// scalarized terms.
			replaceable := pool
			if replaceable == nil {
				replaceable = neighbors[i]
			}
			for _, j := range replaceable {
				w := m.ReferenceDirections[j]
				if tchebycheff(child.Objectives, w, ideal) <= tchebycheff(population[j].Objectives, w, ideal) {
					population[j] = child.Clone()
				}
			}
		}
	}

	return population, nil
}

// neighborhoods computes, for each direction, the indices of its closest
// directions by Euclidean distance (itself included).
func (m *MOEAD) neighborhoods() [][]int {
	n := len(m.ReferenceDirections)
	t := m.NeighborhoodSize
	if t > n {
		t = n
	}

	neighbors := make([][]int, n)
	for i := range m.ReferenceDirections {
		order := make([]int, n)
		for j := range order {
			order[j] = j
		}
		sort.Slice(order, func(a, b int) bool {
			da := floats.Distance(m.ReferenceDirections[i], m.ReferenceDirections[order[a]], 2)
			db := floats.Distance(m.ReferenceDirections[i], m.ReferenceDirections[order[b]], 2)
			return da < db
		})
		neighbors[i] = order[:t]
	}
	return neighbors
}

func (m *MOEAD) pickParents(pool []int, n int) (int, int) {
	if pool == nil {
		return rand.IntN(n), rand.IntN(n)
	}
	return pool[rand.IntN(len(pool))], pool[rand.IntN(len(pool))]
}

// tchebycheff is the weighted Tchebycheff scalarization relative to the
// ideal point. Zero weights are floored so no objective is ignored outright.
func tchebycheff(objectives, weights, ideal []float64) float64 {
	worst := math.Inf(-1)
	for j := range objectives {
		w := weights[j]
		if w < 1e-6 {
			w = 1e-6
		}
		if v := w * math.Abs(objectives[j]-ideal[j]); v > worst {
			worst = v
		}
	}
	return worst
}

func idealPoint(population []framework.Individual) []float64 {
	ideal := make([]float64, len(population[0].Objectives))
	copy(ideal, population[0].Objectives)
	for _, ind := range population[1:] {
		updateIdeal(ideal, ind.Objectives)
	}
	return ideal
}

func updateIdeal(ideal, objectives []float64) {
	for j := range ideal {
		if objectives[j] < ideal[j] {
			ideal[j] = objectives[j]
		}
	}
}
