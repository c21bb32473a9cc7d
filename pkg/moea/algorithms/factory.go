// Package algorithms contains the multi-objective optimizer engines and the
// factory that configures them per algorithm family.
package algorithms

import (
	"errors"
	"fmt"

	"github.com/evobench/archmoea/pkg/moea/framework"
	"github.com/evobench/archmoea/pkg/moea/operators"
)

// ErrUnsupportedAlgorithm is returned for an algorithm family this package
// does not implement.
var ErrUnsupportedAlgorithm = errors.New("unsupported algorithm family")

// Family identifies one of the supported algorithm families. The dispatch is
// a closed enum resolved once at configuration time rather than a string
// compared throughout the run loop.
type Family int

const (
	// FamilyNSGA2 is the dominance-based family with crowding-distance
	// survival and duplicate elimination.
	FamilyNSGA2 Family = iota
	// FamilyMOEAD is the decomposition-based family using Tchebycheff
	// aggregation over a reference-direction set.
	FamilyMOEAD
	// FamilyNSGA3 is the reference-point-based family with niching survival
	// and duplicate elimination.
	FamilyNSGA3
)

// ParseFamily maps a CLI-facing name to its Family.
func ParseFamily(name string) (Family, error) {
	switch name {
	case "nsga2":
		return FamilyNSGA2, nil
	case "moead":
		return FamilyMOEAD, nil
	case "nsga3":
		return FamilyNSGA3, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, name)
}

func (f Family) String() string {
	switch f {
	case FamilyNSGA2:
		return "nsga2"
	case FamilyMOEAD:
		return "moead"
	case FamilyNSGA3:
		return "nsga3"
	}
	return fmt.Sprintf("family(%d)", int(f))
}

// Config collects everything the factory needs to assemble an optimizer.
type Config struct {
	PopulationSize int
	Generations    int

	// ReferenceDirections is required by the decomposition and
	// reference-point families and ignored by the dominance family.
	ReferenceDirections [][]float64

	// Operators overrides the family's default genetic-operator parameters
	// when non-nil.
	Operators *operators.Params

	// NeighborhoodSize and NeighborMatingProb apply to the decomposition
	// family only. Zero values select the defaults (20 and 0.9).
	NeighborhoodSize   int
	NeighborMatingProb float64
}

// Optimizer is the narrow handle the experiment driver runs: a configured
// engine that executes its full generation budget against a problem and
// returns the final population.
type Optimizer interface {
	Name() string
	Run(problem framework.Problem) ([]framework.Individual, error)
}

// Build constructs a ready-to-run optimizer for the requested family. It is
// purely a constructor; no evaluation happens until Run.
func Build(family Family, cfg Config) (Optimizer, error) {
	if cfg.Generations <= 0 {
		return nil, fmt.Errorf("generation budget must be positive, got %d", cfg.Generations)
	}

	switch family {
	case FamilyNSGA2:
		if cfg.PopulationSize <= 0 {
			return nil, fmt.Errorf("%s requires a positive population size, got %d", family, cfg.PopulationSize)
		}
		return NewNSGAII(cfg.PopulationSize, cfg.Generations, params(cfg, operators.Defaults())), nil

	case FamilyMOEAD:
		if len(cfg.ReferenceDirections) == 0 {
			return nil, fmt.Errorf("%s requires reference directions", family)
		}
		m := NewMOEAD(cfg.ReferenceDirections, cfg.Generations, params(cfg, operators.DecompositionDefaults()))
		if cfg.NeighborhoodSize > 0 {
			m.NeighborhoodSize = cfg.NeighborhoodSize
		}
		if cfg.NeighborMatingProb > 0 {
			m.NeighborMatingProb = cfg.NeighborMatingProb
		}
		return m, nil

	case FamilyNSGA3:
		if cfg.PopulationSize <= 0 {
			return nil, fmt.Errorf("%s requires a positive population size, got %d", family, cfg.PopulationSize)
		}
		if len(cfg.ReferenceDirections) == 0 {
			return nil, fmt.Errorf("%s requires reference directions", family)
		}
		return NewNSGAIII(cfg.PopulationSize, cfg.Generations, cfg.ReferenceDirections, params(cfg, operators.Defaults())), nil
	}

	return nil, fmt.Errorf("%w: %v", ErrUnsupportedAlgorithm, family)
}

func params(cfg Config, defaults operators.Params) operators.Params {
	if cfg.Operators != nil {
		return *cfg.Operators
	}
	return defaults
}
