package algorithms

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"

	"github.com/evobench/archmoea/pkg/moea/framework"
	"github.com/evobench/archmoea/pkg/moea/operators"
)

// NSGAIII is the reference-point-based engine: NSGA-II's generational loop
// with survival of the splitting front decided by niching against a
// reference-direction set instead of crowding distance.
type NSGAIII struct {
	PopSize             int
	NumGenerations      int
	ReferenceDirections [][]float64
	Operators           operators.Params
}

// NewNSGAIII creates a new NSGA-III instance with given parameters.
func NewNSGAIII(popSize, numGen int, refDirs [][]float64, ops operators.Params) *NSGAIII {
	return &NSGAIII{
		PopSize:             popSize,
		NumGenerations:      numGen,
		ReferenceDirections: refDirs,
		Operators:           ops,
	}
}

func (n *NSGAIII) Name() string {
	return "NSGA-III"
}

// Run executes the NSGA-III algorithm.
func (n *NSGAIII) Run(problem framework.Problem) ([]framework.Individual, error) {
	population, err := initialPopulation(problem, n.PopSize)
	if err != nil {
		return nil, err
	}

	// Offspring generation is shared with NSGA-II, duplicate elimination
	// included; only survival differs.
	breeder := &NSGAII{PopSize: n.PopSize, Operators: n.Operators}

	for gen := 0; gen < n.NumGenerations; gen++ {
		// Refresh ranks and distances so tournament selection sees them.
		fronts := framework.NonDominatedSort(population)
		population = population[:0]
		for f := range fronts {
			CrowdingDistance(fronts[f])
			population = append(population, fronts[f]...)
		}

		offspring, err := breeder.makeOffspring(problem, population)
		if err != nil {
			return nil, fmt.Errorf("generation %d: %w", gen, err)
		}

		combined := append(population, offspring...)
		population = n.survive(combined)
	}

	return population, nil
}

// survive selects the next generation: whole fronts while they fit, then a
// niched selection from the splitting front.
func (n *NSGAIII) survive(combined []framework.Individual) []framework.Individual {
	fronts := framework.NonDominatedSort(combined)

	next := make([]framework.Individual, 0, n.PopSize)
	frontIndex := 0
	for frontIndex < len(fronts) && len(next)+len(fronts[frontIndex]) <= n.PopSize {
		next = append(next, fronts[frontIndex]...)
		frontIndex++
	}
	if len(next) == n.PopSize || frontIndex >= len(fronts) {
		return next
	}
	splitting := fronts[frontIndex]

	// Normalize the objectives of everything under consideration, then
	// associate each member with its nearest reference direction.
	considered := append(append([]framework.Individual{}, next...), splitting...)
	normalized := normalize(considered)

	numDirs := len(n.ReferenceDirections)
	nicheCount := make([]int, numDirs)
	for i := range next {
		dir, _ := n.associate(normalized[i])
		nicheCount[dir]++
	}

	type member struct {
		index    int // into splitting
		distance float64
	}
	pending := make(map[int][]member, numDirs)
	for i := range splitting {
		dir, dist := n.associate(normalized[len(next)+i])
		pending[dir] = append(pending[dir], member{index: i, distance: dist})
	}

	// Niching: repeatedly fill the least-crowded direction that still has
	// candidates on the splitting front.
	for len(next) < n.PopSize {
		best := -1
		for dir := range pending {
			if len(pending[dir]) == 0 {
				continue
			}
			if best == -1 || nicheCount[dir] < nicheCount[best] {
				best = dir
			}
		}
		if best == -1 {
			break // no candidates left anywhere
		}

		candidates := pending[best]
		pick := rand.IntN(len(candidates))
		if nicheCount[best] == 0 {
			// An empty niche takes its closest candidate.
			pick = 0
			for c := range candidates {
				if candidates[c].distance < candidates[pick].distance {
					pick = c
				}
			}
		}

		next = append(next, splitting[candidates[pick].index])
		nicheCount[best]++
		pending[best] = append(candidates[:pick], candidates[pick+1:]...)
		if len(pending[best]) == 0 {
			delete(pending, best)
		}
	}

	return next
}

// associate finds the reference direction with the smallest perpendicular
// distance to the given normalized objective vector.
func (n *NSGAIII) associate(point []float64) (int, float64) {
	bestDir := 0
	bestDist := math.Inf(1)
	for d, w := range n.ReferenceDirections {
		dist := perpendicularDistance(point, w)
		if dist < bestDist {
			bestDist = dist
			bestDir = d
		}
	}
	return bestDir, bestDist
}

// perpendicularDistance measures how far point lies from the ray through the
// origin along dir.
func perpendicularDistance(point, dir []float64) float64 {
	dot := 0.0
	norm2 := 0.0
	for j := range dir {
		dot += point[j] * dir[j]
		norm2 += dir[j] * dir[j]
	}
	scale := dot / norm2

	dist2 := 0.0
	for j := range dir {
		diff := point[j] - scale*dir[j]
		dist2 += diff * diff
	}
	return math.Sqrt(dist2)
}

// normalize translates objectives by the ideal point and scales them by the
// intercepts of the hyperplane through the extreme points, so every
// objective spans roughly [0,1].
func normalize(population []framework.Individual) [][]float64 {
	numObjs := len(population[0].Objectives)

	ideal := idealPoint(population)
	translated := make([][]float64, len(population))
	for i, ind := range population {
		t := make([]float64, numObjs)
		for j := range t {
			t[j] = ind.Objectives[j] - ideal[j]
		}
		translated[i] = t
	}

	intercepts := hyperplaneIntercepts(translated, numObjs)
	for i := range translated {
		for j := range translated[i] {
			translated[i][j] /= intercepts[j]
		}
	}
	return translated
}

// hyperplaneIntercepts finds, per objective axis, the intercept of the plane
// through the extreme points of the translated population. A degenerate
// plane falls back to the nadir estimate.
func hyperplaneIntercepts(translated [][]float64, numObjs int) []float64 {
	extremes := make([][]float64, numObjs)
	for j := 0; j < numObjs; j++ {
		best := 0
		bestScore := math.Inf(1)
		for i, t := range translated {
			if s := asf(t, j); s < bestScore {
				bestScore = s
				best = i
			}
		}
		extremes[j] = translated[best]
	}

	intercepts := nadirEstimate(translated, numObjs)

	e := mat.NewDense(numObjs, numObjs, nil)
	for j, ex := range extremes {
		e.SetRow(j, ex)
	}
	ones := mat.NewVecDense(numObjs, nil)
	for j := 0; j < numObjs; j++ {
		ones.SetVec(j, 1)
	}
	var plane mat.VecDense
	if err := plane.SolveVec(e, ones); err == nil {
		ok := true
		for j := 0; j < numObjs; j++ {
			if plane.AtVec(j) <= 1e-12 {
				ok = false
				break
			}
		}
		if ok {
			for j := 0; j < numObjs; j++ {
				intercepts[j] = 1 / plane.AtVec(j)
			}
		}
	}

	for j := range intercepts {
		if intercepts[j] < 1e-12 {
			intercepts[j] = 1e-12
		}
	}
	return intercepts
}

// asf is the achievement scalarizing function along axis: the largest
// objective after down-weighting every axis but the chosen one.
func asf(point []float64, axis int) float64 {
	const eps = 1e-6
	worst := math.Inf(-1)
	for j := range point {
		w := eps
		if j == axis {
			w = 1.0
		}
		if v := point[j] / w; v > worst {
			worst = v
		}
	}
	return worst
}

func nadirEstimate(translated [][]float64, numObjs int) []float64 {
	nadir := make([]float64, numObjs)
	for _, t := range translated {
		for j := range t {
			if t[j] > nadir[j] {
				nadir[j] = t[j]
			}
		}
	}
	return nadir
}
