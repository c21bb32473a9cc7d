package benchmark

import (
	"github.com/evobench/archmoea/pkg/moea/framework"
)

// Adapter couples a Benchmark to the generic problem contract the optimizer
// engines consume. Engine-side evaluations take the surrogate path; the
// authoritative path is exposed separately for final reporting.
type Adapter struct {
	bench Benchmark
	space SearchSpace
	evals int
}

// NewAdapter wraps a benchmark. The benchmark's search space is validated
// once here; it is immutable afterwards.
func NewAdapter(b Benchmark) (*Adapter, error) {
	space := b.SearchSpace()
	if err := space.Validate(); err != nil {
		return nil, err
	}
	return &Adapter{bench: b, space: space}, nil
}

var _ framework.Problem = (*Adapter)(nil)

func (a *Adapter) Name() string {
	return a.bench.Name()
}

func (a *Adapter) NumVariables() int {
	return a.space.NumVariables()
}

func (a *Adapter) NumObjectives() int {
	return a.bench.NumObjectives()
}

// Bounds translates the benchmark's search space into per-variable bounds.
func (a *Adapter) Bounds() []framework.Bounds {
	bounds := make([]framework.Bounds, a.space.NumVariables())
	for i := range bounds {
		bounds[i] = framework.Bounds{L: a.space.Lower[i], H: a.space.Upper[i]}
	}
	return bounds
}

// Evaluate is the engine-facing surrogate evaluation.
func (a *Adapter) Evaluate(candidates [][]int) ([][]float64, error) {
	return a.eval(candidates, false)
}

// EvaluateExact is the authoritative evaluation used for final reporting.
func (a *Adapter) EvaluateExact(candidates [][]int) ([][]float64, error) {
	return a.eval(candidates, true)
}

func (a *Adapter) eval(candidates [][]int, exact bool) ([][]float64, error) {
	if err := ValidateBatch(a.space, candidates); err != nil {
		return nil, err
	}
	objectives, err := a.bench.Evaluate(candidates, exact)
	if err != nil {
		return nil, err
	}
	a.evals += len(candidates)
	return objectives, nil
}

// Evaluations returns how many candidate evaluations this adapter has
// forwarded so far.
func (a *Adapter) Evaluations() int {
	return a.evals
}

// ReferencePoint exposes the benchmark's designated hypervolume reference
// point.
func (a *Adapter) ReferencePoint() []float64 {
	return a.bench.ReferencePoint()
}

// PerfIndicator delegates indicator computation to the benchmark.
func (a *Adapter) PerfIndicator(objectives [][]float64) float64 {
	return a.bench.PerfIndicator(objectives)
}
