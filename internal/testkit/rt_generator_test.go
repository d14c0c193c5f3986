package testkit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRTGenerator_Shape(t *testing.T) {
	cfg := DefaultRTConfig()
	trials := NewRTGenerator(cfg).GenerateTrials()

	require.Len(t, trials, cfg.Participants*cfg.Conditions*cfg.TrialsPerCell)

	perCell := make(map[[2]string]int)
	for _, tr := range trials {
		perCell[[2]string{tr.Participant, tr.Condition}]++
		assert.Greater(t, tr.RT, 0.0)
	}
	assert.Len(t, perCell, cfg.Participants*cfg.Conditions)
	for key, n := range perCell {
		assert.Equal(t, cfg.TrialsPerCell, n, "cell %v", key)
	}
	assert.Equal(t, "p01", trials[0].Participant)
	assert.Equal(t, "c1", trials[0].Condition)
}

func TestRTGenerator_Deterministic(t *testing.T) {
	a := NewRTGenerator(DefaultRTConfig()).GenerateTrials()
	b := NewRTGenerator(DefaultRTConfig()).GenerateTrials()
	assert.Equal(t, a, b)

	cfg := DefaultRTConfig()
	cfg.Seed = 7
	c := NewRTGenerator(cfg).GenerateTrials()
	assert.NotEqual(t, a, c)
}

func TestRTGenerator_LapsesAndErrors(t *testing.T) {
	cfg := DefaultRTConfig()
	cfg.LapseRate = 1
	cfg.ErrorRate = 1
	trials := NewRTGenerator(cfg).GenerateTrials()

	for _, tr := range trials {
		assert.GreaterOrEqual(t, tr.RT, cfg.LapseRT)
		assert.False(t, tr.Correct)
	}
}

func TestRTGenerator_Dataset(t *testing.T) {
	cfg := DefaultRTConfig()
	cfg.Participants, cfg.Conditions, cfg.TrialsPerCell = 2, 2, 3
	ds := NewRTGenerator(cfg).Generate()

	assert.Equal(t, []string{"participant", "condition", "rt", "accuracy"}, ds.Headers)
	assert.Equal(t, 12, ds.Len())
}
