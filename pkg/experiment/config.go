package experiment

import (
	"fmt"
	"os"

	"sigs.k8s.io/yaml"

	"github.com/evobench/archmoea/pkg/moea/operators"
)

// OperatorConfig mirrors the overridable genetic-operator parameters in the
// run config file. Nil fields keep the family defaults.
type OperatorConfig struct {
	CrossoverProb *float64 `json:"crossoverProb,omitempty"`
	CrossoverEta  *float64 `json:"crossoverEta,omitempty"`
	MutationProb  *float64 `json:"mutationProb,omitempty"`
	MutationEta   *float64 `json:"mutationEta,omitempty"`
}

// Apply overlays the configured overrides onto a family's defaults.
func (o *OperatorConfig) Apply(p operators.Params) operators.Params {
	if o == nil {
		return p
	}
	if o.CrossoverProb != nil {
		p.CrossoverProb = *o.CrossoverProb
	}
	if o.CrossoverEta != nil {
		p.CrossoverEta = *o.CrossoverEta
	}
	if o.MutationProb != nil {
		p.MutationProb = *o.MutationProb
	}
	if o.MutationEta != nil {
		p.MutationEta = *o.MutationEta
	}
	return p
}

// Config is the optional yaml run configuration. CLI flags take precedence
// over values loaded from a file.
type Config struct {
	Algorithm string          `json:"moea"`
	Repeats   int             `json:"runs"`
	Problems  []int           `json:"problems,omitempty"`
	OutputDir string          `json:"outputDir"`
	Operators *OperatorConfig `json:"operators,omitempty"`
}

// DefaultConfig matches the CLI defaults: NSGA-II, a single run, the whole
// suite, reports in the working directory.
func DefaultConfig() *Config {
	problems := make([]int, 0, 9)
	for id := 1; id <= 9; id++ {
		problems = append(problems, id)
	}
	return &Config{
		Algorithm: "nsga2",
		Repeats:   1,
		Problems:  problems,
		OutputDir: ".",
	}
}

// LoadConfig reads a yaml config file over the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if cfg.Repeats <= 0 {
		return nil, fmt.Errorf("config %s: runs must be positive, got %d", path, cfg.Repeats)
	}
	return cfg, nil
}
