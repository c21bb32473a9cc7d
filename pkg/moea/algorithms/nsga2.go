package algorithms

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sort"

	"github.com/evobench/archmoea/pkg/moea/framework"
	"github.com/evobench/archmoea/pkg/moea/operators"
)

// NSGAII represents the NSGA-II algorithm configuration
type NSGAII struct {
	PopSize        int
	NumGenerations int
	Operators      operators.Params
}

// NewNSGAII creates a new instance of NSGA-II with given parameters
func NewNSGAII(popSize, numGen int, ops operators.Params) *NSGAII {
	return &NSGAII{
		PopSize:        popSize,
		NumGenerations: numGen,
		Operators:      ops,
	}
}

func (n *NSGAII) Name() string {
	return "NSGA-II"
}

// CrowdingDistance calculates crowding distance for individuals in a front
func CrowdingDistance(front []framework.Individual) {
	if len(front) <= 2 {
		for i := range front {
			front[i].Distance = math.Inf(1)
		}
		return
	}

	numObjectives := len(front[0].Objectives)
	for i := range front {
		front[i].Distance = 0
	}

	for m := 0; m < numObjectives; m++ {
		// Sort by each objective
		sort.Slice(front, func(i, j int) bool {
			return front[i].Objectives[m] < front[j].Objectives[m]
		})

		// Set boundary points to infinity
		front[0].Distance = math.Inf(1)
		front[len(front)-1].Distance = math.Inf(1)

		objectiveRange := front[len(front)-1].Objectives[m] - front[0].Objectives[m]
		if objectiveRange == 0 {
			continue
		}

		// Calculate distance for intermediate points
		for i := 1; i < len(front)-1; i++ {
			front[i].Distance += (front[i+1].Objectives[m] - front[i-1].Objectives[m]) / objectiveRange
		}
	}
}

// TournamentSelect runs a binary tournament on rank, then crowding distance.
func TournamentSelect(population []framework.Individual) framework.Individual {
	k := 2 // tournament size
	best := population[rand.IntN(len(population))]

	for i := 1; i < k; i++ {
		contestant := population[rand.IntN(len(population))]
		if contestant.Rank < best.Rank || (contestant.Rank == best.Rank && contestant.Distance > best.Distance) {
			best = contestant
		}
	}

	return best
}

// Run executes the NSGA-II algorithm
func (n *NSGAII) Run(problem framework.Problem) ([]framework.Individual, error) {
	population, err := initialPopulation(problem, n.PopSize)
	if err != nil {
		return nil, err
	}

	for gen := 0; gen < n.NumGenerations; gen++ {
		offspring, err := n.makeOffspring(problem, population)
		if err != nil {
			return nil, fmt.Errorf("generation %d: %w", gen, err)
		}

		// Combine populations
		combined := append(population, offspring...)

		// Non-dominated sorting
		fronts := framework.NonDominatedSort(combined)

		// Clear population for next generation
		population = make([]framework.Individual, 0, n.PopSize)
		frontIndex := 0

		// Add fronts to new population
		for len(population)+len(fronts[frontIndex]) <= n.PopSize {
			CrowdingDistance(fronts[frontIndex])
			population = append(population, fronts[frontIndex]...)
			frontIndex++
			if frontIndex >= len(fronts) {
				break
			}
		}

		// If needed, add remaining individuals based on crowding distance
		if len(population) < n.PopSize && frontIndex < len(fronts) {
			CrowdingDistance(fronts[frontIndex])
			sort.Slice(fronts[frontIndex], func(i, j int) bool {
				return fronts[frontIndex][i].Distance > fronts[frontIndex][j].Distance
			})
			population = append(population, fronts[frontIndex][:n.PopSize-len(population)]...)
		}
	}

	return population, nil
}

// makeOffspring breeds a full offspring generation, eliminating duplicates of
// the current population and of earlier offspring. Mating retries until the
// generation is full or no fresh candidates turn up.
func (n *NSGAII) makeOffspring(problem framework.Problem, population []framework.Individual) ([]framework.Individual, error) {
	bounds := problem.Bounds()
	seen := signatureSet(population)

	candidates := make([][]int, 0, n.PopSize)
	// A bounded retry budget keeps small discrete spaces from looping
	// forever once every lattice point has been visited.
	for tries := 0; len(candidates) < n.PopSize && tries < 10*n.PopSize; tries++ {
		parent1 := TournamentSelect(population)
		parent2 := TournamentSelect(population)

		child1, child2 := n.Operators.Crossover(parent1.Variables, parent2.Variables, bounds)
		n.Operators.Mutate(child1, bounds)
		n.Operators.Mutate(child2, bounds)

		for _, child := range [][]int{child1, child2} {
			if len(candidates) == n.PopSize {
				break
			}
			sig := signature(child)
			if _, dup := seen[sig]; dup {
				continue
			}
			seen[sig] = struct{}{}
			candidates = append(candidates, child)
		}
	}

	return evaluate(problem, candidates)
}
