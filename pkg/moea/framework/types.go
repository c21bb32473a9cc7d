package framework

// Bounds is an inclusive integer interval for one decision variable.
type Bounds struct {
	L int
	H int
}

// Individual represents a solution in the population.
type Individual struct {
	Variables  []int
	Objectives []float64

	// Rank is assigned by non-dominated sorting.
	Rank int
	// Distance is the crowding distance used by dominance-based survival.
	Distance float64
}

// Clone returns a deep copy of the individual.
func (ind Individual) Clone() Individual {
	vars := make([]int, len(ind.Variables))
	copy(vars, ind.Variables)
	objs := make([]float64, len(ind.Objectives))
	copy(objs, ind.Objectives)
	return Individual{
		Variables:  vars,
		Objectives: objs,
		Rank:       ind.Rank,
		Distance:   ind.Distance,
	}
}

// ObjectiveSpacePoint represents an N-dimensional point in the objective space.
// As an example, for a problem with 2 objective functions f1 and f2, a point
// in the objective space could be [f1(x'), f2(x')], for the input of x'.
type ObjectiveSpacePoint []float64

// Problem describes the contract a specific multi-objective problem needs
// to implement. All objectives are minimized. Evaluation is batched: the
// optimizer hands over a whole candidate matrix at once, which lets the
// problem amortize whatever its evaluation model costs.
type Problem interface {
	Name() string

	NumVariables() int
	NumObjectives() int
	Bounds() []Bounds

	// Evaluate returns one objective row per candidate row. It fails if any
	// candidate violates the problem's bounds or dimensionality.
	Evaluate(candidates [][]int) ([][]float64, error)
}
