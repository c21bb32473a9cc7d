package algorithms

import (
	"strconv"
	"strings"

	"github.com/evobench/archmoea/pkg/moea/framework"
	"github.com/evobench/archmoea/pkg/moea/operators"
)

// initialPopulation samples and evaluates a fresh random population.
func initialPopulation(problem framework.Problem, size int) ([]framework.Individual, error) {
	return evaluate(problem, operators.Sample(problem.Bounds(), size))
}

// evaluate turns a candidate matrix into individuals via one batched
// problem evaluation.
func evaluate(problem framework.Problem, candidates [][]int) ([]framework.Individual, error) {
	if len(candidates) == 0 {
		return nil, nil
	}
	objectives, err := problem.Evaluate(candidates)
	if err != nil {
		return nil, err
	}

	population := make([]framework.Individual, len(candidates))
	for i := range candidates {
		population[i] = framework.Individual{
			Variables:  candidates[i],
			Objectives: objectives[i],
		}
	}
	return population, nil
}

// signature encodes a candidate for duplicate elimination.
func signature(vars []int) string {
	var sb strings.Builder
	for i, v := range vars {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(v))
	}
	return sb.String()
}

func signatureSet(population []framework.Individual) map[string]struct{} {
	seen := make(map[string]struct{}, len(population))
	for _, ind := range population {
		seen[signature(ind.Variables)] = struct{}{}
	}
	return seen
}
