// Package experiment drives the benchmark run matrix: it resolves algorithm
// settings per problem, runs repeated optimizations, and aggregates the
// per-run statistics into serializable reports.
package experiment

import (
	"errors"
	"fmt"

	"github.com/evobench/archmoea/pkg/moea/refdirs"
)

// ErrUnsupportedObjectiveCount is returned for objective counts the suite's
// settings are not tuned for. This is a deliberate scope boundary.
var ErrUnsupportedObjectiveCount = errors.New("unsupported objective count")

// GenerationBudget is the fixed number of generations per run, independent
// of objective count.
const GenerationBudget = 100

// partitionsFor keeps the reference-direction set tractable as the
// objective count grows.
var partitionsFor = map[int]int{
	2: 99,
	3: 13,
	4: 7,
}

// Settings are the resolved per-problem algorithm settings. The population
// size equals the reference-direction count for every family, which keeps
// cardinalities comparable across families; callers may still override
// PopulationSize before building a dominance-family optimizer.
type Settings struct {
	PopulationSize      int
	Generations         int
	ReferenceDirections [][]float64
}

// ResolveSettings deterministically derives the run settings from the
// problem's objective count.
func ResolveSettings(numObjectives int) (Settings, error) {
	partitions, ok := partitionsFor[numObjectives]
	if !ok {
		return Settings{}, fmt.Errorf("%w: %d objectives, supported counts are 2, 3 and 4",
			ErrUnsupportedObjectiveCount, numObjectives)
	}

	dirs, err := refdirs.DasDennis(numObjectives, partitions)
	if err != nil {
		return Settings{}, err
	}

	return Settings{
		PopulationSize:      len(dirs),
		Generations:         GenerationBudget,
		ReferenceDirections: dirs,
	}, nil
}
