package processing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnergyLevelProblemSolutionBands(t *testing.T) {
	// Position 1 of 10 (progress 0.1) is still in the problem band;
	// position 8 of 10 (progress 0.8) is in the results band.
	assert.Equal(t, "70% - Concerned, explaining problem", EnergyLevel("problem-solution", 1, 10))
	assert.Equal(t, "60% - Working through solution", EnergyLevel("problem-solution", 5, 10))
	assert.Equal(t, "90% - Excited about results", EnergyLevel("problem-solution", 8, 10))
}

func TestEnergyLevelDiscoveryBands(t *testing.T) {
	assert.Equal(t, "75% - Curious and exploring", EnergyLevel("discovery", 1, 4))
	assert.Equal(t, "85% - Convinced and enthusiastic", EnergyLevel("discovery", 3, 4))
}

func TestEnergyLevelBuildingInterpolates(t *testing.T) {
	assert.Equal(t, "69% - Building from calm to excited", EnergyLevel("building", 1, 4))
	assert.Equal(t, "78% - Building from calm to excited", EnergyLevel("building", 2, 4))
	assert.Equal(t, "95% - Building from calm to excited", EnergyLevel("building", 4, 4))
}

func TestEnergyLevelDefaultsToSteady(t *testing.T) {
	steady := "80% - Steady, engaging energy throughout"
	assert.Equal(t, steady, EnergyLevel("consistent", 2, 5))
	assert.Equal(t, steady, EnergyLevel("", 2, 5))
	assert.Equal(t, steady, EnergyLevel("unknown-arc", 2, 5))
}

func TestEnergyLevelIsDeterministic(t *testing.T) {
	for i := 0; i < 5; i++ {
		assert.Equal(t, EnergyLevel("building", 3, 7), EnergyLevel("building", 3, 7))
	}
}
