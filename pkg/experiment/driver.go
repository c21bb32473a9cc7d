package experiment

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/go-logr/logr"
	"gonum.org/v1/gonum/stat"

	"github.com/evobench/archmoea/pkg/benchmark"
	"github.com/evobench/archmoea/pkg/moea/algorithms"
	"github.com/evobench/archmoea/pkg/moea/framework"
	"github.com/evobench/archmoea/pkg/moea/operators"
)

// RunResult holds the statistics of one optimizer run: the run index, the
// authoritatively evaluated objective matrix of the final population, and
// its hypervolume against the benchmark's reference point.
type RunResult struct {
	Run int         `json:"run"`
	F   [][]float64 `json:"F"`
	HV  float64     `json:"HV"`
}

// Report accumulates the run results of one problem instance. The driver
// owns and mutates it while the problem's repeats are in flight; once
// returned it is final.
type Report struct {
	ProblemID int         `json:"problem"`
	Problem   string      `json:"name"`
	Algorithm string      `json:"moea"`
	Runs      []RunResult `json:"stats"`
}

// BenchmarkProvider instantiates the benchmark for a problem id. It is the
// seam through which the real surrogate-backed suite, or a test fixture, is
// plugged in.
type BenchmarkProvider func(id int) (benchmark.Benchmark, error)

// DriverConfig configures an experiment driver.
type DriverConfig struct {
	// Family is the algorithm family used for every run of this driver.
	Family algorithms.Family
	// Repeats is the number of independent runs per problem id.
	Repeats int
	// Provider defaults to the built-in suite when nil.
	Provider BenchmarkProvider
	// Operators overrides the family's genetic-operator defaults.
	Operators *operators.Params
	// PopulationSize overrides the resolved population size for the
	// dominance family. Zero keeps the resolved value.
	PopulationSize int
	// Logger receives progress output; verbosity replaces the old global
	// debug toggle. Defaults to a discarding logger.
	Logger logr.Logger
}

// Driver orchestrates the run matrix: problem instances times repeated
// runs, one fresh optimizer per run.
type Driver struct {
	family    algorithms.Family
	repeats   int
	provider  BenchmarkProvider
	operators *operators.Params
	popSize   int
	log       logr.Logger
}

// NewDriver validates the configuration and builds a driver. An unknown
// algorithm family fails here, before any problem is touched, since the
// family is global to the whole invocation.
func NewDriver(cfg DriverConfig) (*Driver, error) {
	switch cfg.Family {
	case algorithms.FamilyNSGA2, algorithms.FamilyMOEAD, algorithms.FamilyNSGA3:
	default:
		return nil, fmt.Errorf("%w: %v", algorithms.ErrUnsupportedAlgorithm, cfg.Family)
	}
	if cfg.Repeats <= 0 {
		return nil, fmt.Errorf("repeats must be positive, got %d", cfg.Repeats)
	}

	provider := cfg.Provider
	if provider == nil {
		provider = benchmark.Problem
	}
	log := cfg.Logger
	if log.GetSink() == nil {
		log = logr.Discard()
	}

	return &Driver{
		family:    cfg.Family,
		repeats:   cfg.Repeats,
		provider:  provider,
		operators: cfg.Operators,
		popSize:   cfg.PopulationSize,
		log:       log,
	}, nil
}

// Run executes the full matrix and returns one finalized report per problem
// id. Reports for problem ids completed before an error are returned along
// with it; they are independent units and are not rolled back.
func (d *Driver) Run(problemIDs []int) (map[int]*Report, error) {
	reports := make(map[int]*Report, len(problemIDs))
	for _, id := range problemIDs {
		report, err := d.RunProblem(id)
		if err != nil {
			return reports, fmt.Errorf("problem %d: %w", id, err)
		}
		reports[id] = report
	}
	return reports, nil
}

// RunProblem executes all repeats for one problem id and finalizes its
// report.
func (d *Driver) RunProblem(id int) (*Report, error) {
	bench, err := d.provider(id)
	if err != nil {
		return nil, err
	}
	adapter, err := benchmark.NewAdapter(bench)
	if err != nil {
		return nil, err
	}

	settings, err := ResolveSettings(adapter.NumObjectives())
	if err != nil {
		return nil, err
	}
	popSize := settings.PopulationSize
	if d.popSize > 0 && d.family == algorithms.FamilyNSGA2 {
		popSize = d.popSize
	}

	d.log.Info("starting problem",
		"problem", bench.Name(), "moea", d.family.String(),
		"objectives", adapter.NumObjectives(), "variables", adapter.NumVariables(),
		"popSize", popSize, "generations", settings.Generations, "repeats", d.repeats)

	report := &Report{
		ProblemID: id,
		Problem:   bench.Name(),
		Algorithm: d.family.String(),
		Runs:      make([]RunResult, 0, d.repeats),
	}

	start := time.Now()
	for run := 1; run <= d.repeats; run++ {
		result, err := d.runOnce(adapter, settings, popSize, run)
		if err != nil {
			return nil, fmt.Errorf("run %d: %w", run, err)
		}
		report.Runs = append(report.Runs, result)
		d.log.V(2).Info("run finished", "problem", bench.Name(), "run", run, "hv", result.HV)
	}

	hvs := make([]float64, len(report.Runs))
	for i, r := range report.Runs {
		hvs[i] = r.HV
	}
	stddev := 0.0
	if len(hvs) > 1 {
		stddev = stat.StdDev(hvs, nil)
	}
	d.log.Info("problem finished",
		"problem", bench.Name(),
		"meanHV", stat.Mean(hvs, nil), "stddevHV", stddev,
		"evaluations", humanize.Comma(int64(adapter.Evaluations())),
		"elapsed", time.Since(start).Round(time.Millisecond).String())

	return report, nil
}

// runOnce builds a fresh optimizer, runs it to its generation budget, and
// scores the final population with an authoritative evaluation. Optimizers
// are never reused across runs: every run starts from a newly sampled
// population.
func (d *Driver) runOnce(adapter *benchmark.Adapter, settings Settings, popSize, run int) (RunResult, error) {
	optimizer, err := algorithms.Build(d.family, algorithms.Config{
		PopulationSize:      popSize,
		Generations:         settings.Generations,
		ReferenceDirections: settings.ReferenceDirections,
		Operators:           d.operators,
	})
	if err != nil {
		return RunResult{}, err
	}

	population, err := optimizer.Run(adapter)
	if err != nil {
		return RunResult{}, err
	}

	final := framework.Variables(population)
	objectives, err := adapter.EvaluateExact(final)
	if err != nil {
		return RunResult{}, err
	}

	hv := adapter.PerfIndicator(objectives)
	d.log.V(4).Info("final population evaluated",
		"run", run, "size", len(objectives), "referencePoint", adapter.ReferencePoint(), "hv", hv)

	return RunResult{Run: run, F: objectives, HV: hv}, nil
}
