package benchmark

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	cache "github.com/patrickmn/go-cache"

	"github.com/evobench/archmoea/pkg/moea/indicators"
)

// NumProblems is the number of problem instances in the suite.
const NumProblems = 9

// SuitePrefix names the suite in report files and logs.
const SuitePrefix = "archmop"

type landscape int

const (
	shapeZDT1 landscape = iota
	shapeZDT2
	shapeZDT3
	shapeDTLZ1
	shapeDTLZ2
	shapeDTLZ4
)

// synthetic stands in for the real architecture-search surrogate model: an
// integer-encoded problem whose authoritative evaluation is a classic
// multi-objective landscape over the scaled variables, and whose surrogate
// path returns a cached, deterministically perturbed estimate of it.
type synthetic struct {
	id       int
	space    SearchSpace
	numObjs  int
	shape    landscape
	refPoint []float64

	surrogate *cache.Cache
}

// Problem instantiates one of the suite's problem instances. Ids 1-3 have
// two objectives, 4-6 three, 7-9 four.
func Problem(id int) (Benchmark, error) {
	cfg, ok := suite[id]
	if !ok {
		return nil, fmt.Errorf("unknown problem id %d, suite has ids 1..%d", id, NumProblems)
	}

	upper := make([]int, cfg.numVars)
	for i := range upper {
		upper[i] = cfg.upper
	}
	// The first variable is the fine-grained one, mirroring search spaces
	// where one dimension (e.g. resolution) has a much larger alphabet.
	upper[0] = cfg.firstUpper

	return &synthetic{
		id:        id,
		space:     SearchSpace{Lower: make([]int, cfg.numVars), Upper: upper},
		numObjs:   cfg.numObjs,
		shape:     cfg.shape,
		refPoint:  cfg.refPoint,
		surrogate: cache.New(cache.NoExpiration, 0),
	}, nil
}

type problemConfig struct {
	numVars    int
	upper      int
	firstUpper int
	numObjs    int
	shape      landscape
	refPoint   []float64
}

var suite = map[int]problemConfig{
	1: {numVars: 25, upper: 4, firstUpper: 99, numObjs: 2, shape: shapeZDT1, refPoint: []float64{1.1, 1.1}},
	2: {numVars: 21, upper: 9, firstUpper: 99, numObjs: 2, shape: shapeZDT2, refPoint: []float64{1.1, 1.1}},
	3: {numVars: 34, upper: 4, firstUpper: 99, numObjs: 2, shape: shapeZDT3, refPoint: []float64{1.1, 1.1}},
	4: {numVars: 12, upper: 9, firstUpper: 9, numObjs: 3, shape: shapeDTLZ1, refPoint: []float64{1.0, 1.0, 1.0}},
	5: {numVars: 12, upper: 9, firstUpper: 9, numObjs: 3, shape: shapeDTLZ2, refPoint: []float64{1.1, 1.1, 1.1}},
	6: {numVars: 12, upper: 9, firstUpper: 9, numObjs: 3, shape: shapeDTLZ4, refPoint: []float64{1.1, 1.1, 1.1}},
	7: {numVars: 13, upper: 9, firstUpper: 9, numObjs: 4, shape: shapeDTLZ1, refPoint: []float64{1.0, 1.0, 1.0, 1.0}},
	8: {numVars: 13, upper: 9, firstUpper: 9, numObjs: 4, shape: shapeDTLZ2, refPoint: []float64{1.1, 1.1, 1.1, 1.1}},
	9: {numVars: 13, upper: 9, firstUpper: 9, numObjs: 4, shape: shapeDTLZ4, refPoint: []float64{1.1, 1.1, 1.1, 1.1}},
}

func (b *synthetic) Name() string {
	return fmt.Sprintf("%s%d", SuitePrefix, b.id)
}

func (b *synthetic) SearchSpace() SearchSpace {
	return SearchSpace{
		Lower: append([]int(nil), b.space.Lower...),
		Upper: append([]int(nil), b.space.Upper...),
	}
}

func (b *synthetic) NumObjectives() int {
	return b.numObjs
}

func (b *synthetic) ReferencePoint() []float64 {
	return append([]float64(nil), b.refPoint...)
}

// PerfIndicator computes the hypervolume of the objective matrix against the
// problem's designated reference point.
func (b *synthetic) PerfIndicator(objectives [][]float64) float64 {
	return indicators.Hypervolume(objectives, b.refPoint)
}

// Evaluate scores the batch. The exact path computes the landscape directly;
// the surrogate path perturbs it deterministically and caches per candidate,
// the way a real surrogate amortizes repeated queries.
func (b *synthetic) Evaluate(candidates [][]int, exact bool) ([][]float64, error) {
	if err := ValidateBatch(b.space, candidates); err != nil {
		return nil, err
	}

	objectives := make([][]float64, len(candidates))
	for i, c := range candidates {
		if exact {
			objectives[i] = b.exactEval(c)
			continue
		}
		objectives[i] = b.surrogateEval(c)
	}
	return objectives, nil
}

func (b *synthetic) surrogateEval(candidate []int) []float64 {
	key := candidateKey(candidate)
	if hit, ok := b.surrogate.Get(key); ok {
		return append([]float64(nil), hit.([]float64)...)
	}

	exact := b.exactEval(candidate)
	phase := 0.0
	for i, v := range candidate {
		phase += float64((i + 1) * v)
	}
	estimate := make([]float64, len(exact))
	for j, f := range exact {
		estimate[j] = f * (1 + 0.05*math.Sin(phase+float64(j)))
	}

	b.surrogate.Set(key, estimate, cache.NoExpiration)
	return append([]float64(nil), estimate...)
}

func (b *synthetic) exactEval(candidate []int) []float64 {
	u := b.scale(candidate)
	switch b.shape {
	case shapeZDT1:
		return zdt(u, func(f1overg float64) float64 { return 1 - math.Sqrt(f1overg) })
	case shapeZDT2:
		return zdt(u, func(f1overg float64) float64 { return 1 - f1overg*f1overg })
	case shapeZDT3:
		return zdt3(u)
	case shapeDTLZ1:
		return dtlz1(u, b.numObjs)
	case shapeDTLZ2:
		return dtlz2(u, b.numObjs, 1)
	case shapeDTLZ4:
		return dtlz2(u, b.numObjs, 10)
	}
	return nil
}

// scale maps the integer candidate onto the unit hypercube.
func (b *synthetic) scale(candidate []int) []float64 {
	u := make([]float64, len(candidate))
	for i, v := range candidate {
		span := b.space.Upper[i] - b.space.Lower[i]
		if span > 0 {
			u[i] = float64(v-b.space.Lower[i]) / float64(span)
		}
	}
	return u
}

func zdt(u []float64, h func(float64) float64) []float64 {
	f1 := u[0]
	g := 1.0
	for i := 1; i < len(u); i++ {
		g += 9.0 * u[i] / float64(len(u)-1)
	}
	return []float64{f1, g * h(f1/g)}
}

func zdt3(u []float64) []float64 {
	f1 := u[0]
	g := 1.0
	for i := 1; i < len(u); i++ {
		g += 9.0 * u[i] / float64(len(u)-1)
	}
	// The sin term disconnects the front
	h := 1.0 - math.Sqrt(f1/g) - (f1/g)*math.Sin(10*math.Pi*f1)
	return []float64{f1, g * h}
}

func dtlz1(u []float64, numObjs int) []float64 {
	g := 0.0
	for i := numObjs - 1; i < len(u); i++ {
		d := u[i] - 0.5
		g += d*d - math.Cos(20*math.Pi*d)
	}
	g = 100 * (float64(len(u)-numObjs+1) + g)

	f := make([]float64, numObjs)
	for j := 0; j < numObjs; j++ {
		v := 0.5 * (1 + g)
		for i := 0; i < numObjs-j-1; i++ {
			v *= u[i]
		}
		if j > 0 {
			v *= 1 - u[numObjs-j-1]
		}
		f[j] = v
	}
	return f
}

// dtlz2 covers both DTLZ2 (alpha=1) and the DTLZ4-style biased variant
// (alpha>1).
func dtlz2(u []float64, numObjs int, alpha float64) []float64 {
	g := 0.0
	for i := numObjs - 1; i < len(u); i++ {
		d := u[i] - 0.5
		g += d * d
	}

	f := make([]float64, numObjs)
	for j := 0; j < numObjs; j++ {
		v := 1 + g
		for i := 0; i < numObjs-j-1; i++ {
			v *= math.Cos(math.Pow(u[i], alpha) * math.Pi / 2)
		}
		if j > 0 {
			v *= math.Sin(math.Pow(u[numObjs-j-1], alpha) * math.Pi / 2)
		}
		f[j] = v
	}
	return f
}

func candidateKey(candidate []int) string {
	var sb strings.Builder
	for i, v := range candidate {
		if i > 0 {
			sb.WriteByte(':')
		}
		sb.WriteString(strconv.Itoa(v))
	}
	return sb.String()
}
