package experiment

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evobench/archmoea/pkg/benchmark"
	"github.com/evobench/archmoea/pkg/moea/algorithms"
)

// stubBenchmark is a cheap two-objective benchmark: five variables in
// [0, 9], objectives pull opposite ends of the variable sum.
type stubBenchmark struct {
	numObjs int
}

func (b *stubBenchmark) Name() string { return "stub" }

func (b *stubBenchmark) SearchSpace() benchmark.SearchSpace {
	return benchmark.SearchSpace{
		Lower: []int{0, 0, 0, 0, 0},
		Upper: []int{9, 9, 9, 9, 9},
	}
}

func (b *stubBenchmark) NumObjectives() int { return b.numObjs }

func (b *stubBenchmark) ReferencePoint() []float64 {
	ref := make([]float64, b.numObjs)
	for j := range ref {
		ref[j] = 1.1
	}
	return ref
}

func (b *stubBenchmark) Evaluate(candidates [][]int, exact bool) ([][]float64, error) {
	out := make([][]float64, len(candidates))
	for i, c := range candidates {
		sum := 0.0
		for _, v := range c {
			sum += float64(v)
		}
		u := sum / 45.0
		row := make([]float64, b.numObjs)
		for j := range row {
			if j%2 == 0 {
				row[j] = u
			} else {
				row[j] = 1 - u
			}
		}
		out[i] = row
	}
	return out, nil
}

func (b *stubBenchmark) PerfIndicator(objectives [][]float64) float64 {
	ref := b.ReferencePoint()
	best := 0.0
	for _, row := range objectives {
		v := 1.0
		inside := true
		for j := range row {
			if row[j] >= ref[j] {
				inside = false
				break
			}
			v *= ref[j] - row[j]
		}
		if inside && v > best {
			best = v
		}
	}
	return best
}

func stubProvider(objs int) BenchmarkProvider {
	return func(id int) (benchmark.Benchmark, error) {
		if id < 1 {
			return nil, fmt.Errorf("unknown problem id %d", id)
		}
		return &stubBenchmark{numObjs: objs}, nil
	}
}

func TestNewDriverValidation(t *testing.T) {
	_, err := NewDriver(DriverConfig{Family: algorithms.Family(99), Repeats: 1})
	assert.ErrorIs(t, err, algorithms.ErrUnsupportedAlgorithm)

	_, err = NewDriver(DriverConfig{Family: algorithms.FamilyNSGA2, Repeats: 0})
	assert.Error(t, err)
}

func TestDriverEndToEnd(t *testing.T) {
	driver, err := NewDriver(DriverConfig{
		Family:   algorithms.FamilyNSGA2,
		Repeats:  2,
		Provider: stubProvider(2),
	})
	require.NoError(t, err)

	report, err := driver.RunProblem(1)
	require.NoError(t, err)

	assert.Equal(t, 1, report.ProblemID)
	assert.Equal(t, "stub", report.Problem)
	assert.Equal(t, "nsga2", report.Algorithm)
	require.Len(t, report.Runs, 2)

	for i, run := range report.Runs {
		assert.Equal(t, i+1, run.Run)
		// Two objectives resolve to a population of 100
		require.Len(t, run.F, 100, "run %d objective matrix rows", i+1)
		for _, row := range run.F {
			require.Len(t, row, 2, "run %d objective matrix columns", i+1)
			for _, v := range row {
				assert.False(t, math.IsNaN(v))
			}
		}
		assert.GreaterOrEqual(t, run.HV, 0.0, "run %d indicator", i+1)
	}
}

func TestDriverPopulationSizeOverride(t *testing.T) {
	driver, err := NewDriver(DriverConfig{
		Family:         algorithms.FamilyNSGA2,
		Repeats:        1,
		Provider:       stubProvider(2),
		PopulationSize: 20,
	})
	require.NoError(t, err)

	report, err := driver.RunProblem(1)
	require.NoError(t, err)
	require.Len(t, report.Runs, 1)
	assert.Len(t, report.Runs[0].F, 20)
}

func TestDriverUnsupportedObjectiveCount(t *testing.T) {
	driver, err := NewDriver(DriverConfig{
		Family:   algorithms.FamilyNSGA2,
		Repeats:  1,
		Provider: stubProvider(5),
	})
	require.NoError(t, err)

	_, err = driver.RunProblem(1)
	assert.ErrorIs(t, err, ErrUnsupportedObjectiveCount)
}

func TestDriverRunKeepsEarlierReports(t *testing.T) {
	calls := 0
	provider := func(id int) (benchmark.Benchmark, error) {
		calls++
		if id == 2 {
			return nil, fmt.Errorf("benchmark %d unavailable", id)
		}
		return &stubBenchmark{numObjs: 2}, nil
	}

	driver, err := NewDriver(DriverConfig{
		Family:         algorithms.FamilyNSGA2,
		Repeats:        1,
		Provider:       provider,
		PopulationSize: 10,
	})
	require.NoError(t, err)

	reports, err := driver.Run([]int{1, 2, 3})
	require.Error(t, err)

	// Problem 1 completed before the failure and must survive it
	assert.Contains(t, reports, 1)
	assert.NotContains(t, reports, 2)
	assert.NotContains(t, reports, 3)
	assert.Equal(t, 2, calls, "the failing problem must abort the matrix")
}
