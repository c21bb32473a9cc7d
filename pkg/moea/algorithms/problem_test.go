package algorithms

import (
	"errors"
	"math"

	"github.com/evobench/archmoea/pkg/moea/framework"
)

// testProblem is a ZDT1-shaped landscape over an integer lattice, cheap
// enough for engine tests.
type testProblem struct {
	numVars int
	upper   int
	evals   int
}

func newTestProblem(numVars, upper int) *testProblem {
	return &testProblem{numVars: numVars, upper: upper}
}

func (p *testProblem) Name() string       { return "test-zdt1" }
func (p *testProblem) NumVariables() int  { return p.numVars }
func (p *testProblem) NumObjectives() int { return 2 }

func (p *testProblem) Bounds() []framework.Bounds {
	bounds := make([]framework.Bounds, p.numVars)
	for i := range bounds {
		bounds[i] = framework.Bounds{L: 0, H: p.upper}
	}
	return bounds
}

func (p *testProblem) Evaluate(candidates [][]int) ([][]float64, error) {
	objectives := make([][]float64, len(candidates))
	for i, c := range candidates {
		p.evals++
		f1 := float64(c[0]) / float64(p.upper)
		g := 1.0
		for j := 1; j < len(c); j++ {
			g += 9.0 * float64(c[j]) / float64(p.upper) / float64(len(c)-1)
		}
		objectives[i] = []float64{f1, g * (1 - math.Sqrt(f1/g))}
	}
	return objectives, nil
}

var errEvaluation = errors.New("evaluation failed")

// failingProblem rejects every batch, for error-propagation tests.
type failingProblem struct {
	*testProblem
}

func (p failingProblem) Evaluate([][]int) ([][]float64, error) {
	return nil, errEvaluation
}
