package experiment

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evobench/archmoea/pkg/moea/operators"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "nsga2", cfg.Algorithm)
	assert.Equal(t, 1, cfg.Repeats)
	assert.Equal(t, ".", cfg.OutputDir)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9}, cfg.Problems)
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
moea: moead
runs: 5
problems: [1, 4, 7]
outputDir: ./results
operators:
  crossoverProb: 0.8
  mutationEta: 15
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "moead", cfg.Algorithm)
	assert.Equal(t, 5, cfg.Repeats)
	assert.Equal(t, []int{1, 4, 7}, cfg.Problems)
	assert.Equal(t, "./results", cfg.OutputDir)

	applied := cfg.Operators.Apply(operators.DecompositionDefaults())
	assert.Equal(t, 0.8, applied.CrossoverProb)
	assert.Equal(t, 15.0, applied.MutationEta)
	// Untouched fields keep the family defaults
	assert.Equal(t, 20.0, applied.CrossoverEta)
	assert.Equal(t, 0.9, applied.MutationProb)
}

func TestLoadConfigPartialKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "runs: 3\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Repeats)
	assert.Equal(t, "nsga2", cfg.Algorithm)
	assert.Len(t, cfg.Problems, 9)
}

func TestLoadConfigRejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, "generations: 200\n")

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfigRejectsNonPositiveRuns(t *testing.T) {
	path := writeConfig(t, "runs: 0\n")

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestOperatorConfigNilApply(t *testing.T) {
	var o *OperatorConfig
	defaults := operators.Defaults()
	assert.Equal(t, defaults, o.Apply(defaults))
}
