package experiment

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveSettings(t *testing.T) {
	tests := []struct {
		numObjectives int
		wantPopSize   int
	}{
		{numObjectives: 2, wantPopSize: 100},
		{numObjectives: 3, wantPopSize: 105},
		{numObjectives: 4, wantPopSize: 120},
	}

	for _, tt := range tests {
		settings, err := ResolveSettings(tt.numObjectives)
		require.NoError(t, err, "%d objectives", tt.numObjectives)

		assert.Equal(t, tt.wantPopSize, settings.PopulationSize, "%d objectives", tt.numObjectives)
		assert.Equal(t, GenerationBudget, settings.Generations, "%d objectives", tt.numObjectives)
		assert.Len(t, settings.ReferenceDirections, tt.wantPopSize, "%d objectives", tt.numObjectives)
	}
}

func TestResolveSettingsDirectionsSumToOne(t *testing.T) {
	settings, err := ResolveSettings(2)
	require.NoError(t, err)

	require.Len(t, settings.ReferenceDirections, 100)
	for i, dir := range settings.ReferenceDirections {
		require.Len(t, dir, 2)
		sum := dir[0] + dir[1]
		assert.InDelta(t, 1.0, sum, 1e-9, "direction %d", i)
		assert.GreaterOrEqual(t, dir[0], 0.0, "direction %d", i)
		assert.GreaterOrEqual(t, dir[1], 0.0, "direction %d", i)
	}
}

func TestResolveSettingsIsPure(t *testing.T) {
	first, err := ResolveSettings(3)
	require.NoError(t, err)
	second, err := ResolveSettings(3)
	require.NoError(t, err)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("repeated resolution differs (-first +second):\n%s", diff)
	}
}

func TestResolveSettingsUnsupportedCounts(t *testing.T) {
	for _, n := range []int{0, 1, 5, 10, -1} {
		_, err := ResolveSettings(n)
		assert.ErrorIs(t, err, ErrUnsupportedObjectiveCount, "%d objectives", n)
	}
}
