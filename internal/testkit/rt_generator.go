package testkit

import (
	"fmt"
	"math/rand"

	"rttrim/domain/trial"

	"gonum.org/v1/gonum/stat/distuv"
)

// RTGeneratorConfig configures synthetic trial-level RT data.
// RTs follow an ex-Gaussian distribution (normal + exponential tail), the usual
// shape of choice RT data, with occasional slow lapses mixed in.
type RTGeneratorConfig struct {
	Participants    int     `json:"participants"`
	Conditions      int     `json:"conditions"`
	TrialsPerCell   int     `json:"trials_per_cell"`
	Mu              float64 `json:"mu"`
	Sigma           float64 `json:"sigma"`
	Tau             float64 `json:"tau"`
	ConditionEffect float64 `json:"condition_effect"`
	ErrorRate       float64 `json:"error_rate"`
	LapseRate       float64 `json:"lapse_rate"`
	LapseRT         float64 `json:"lapse_rt"`
	Seed            int64   `json:"seed"`
}

// DefaultRTConfig returns a small millisecond-scale experiment
func DefaultRTConfig() RTGeneratorConfig {
	return RTGeneratorConfig{
		Participants:    8,
		Conditions:      3,
		TrialsPerCell:   40,
		Mu:              450,
		Sigma:           50,
		Tau:             100,
		ConditionEffect: 30,
		ErrorRate:       0.05,
		LapseRate:       0.02,
		LapseRT:         3000,
		Seed:            42,
	}
}

// RTGenerator produces deterministic trial data for a seed
type RTGenerator struct {
	config RTGeneratorConfig
	rng    *rand.Rand
}

// NewRTGenerator creates a generator
func NewRTGenerator(config RTGeneratorConfig) *RTGenerator {
	return &RTGenerator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

// ParticipantID names participant i the way generated data does
func ParticipantID(i int) string {
	return fmt.Sprintf("p%02d", i+1)
}

// ConditionID names condition i the way generated data does
func ConditionID(i int) string {
	return fmt.Sprintf("c%d", i+1)
}

// GenerateTrials returns trials interleaved the way a session records them:
// each block visits every participant and condition once.
func (g *RTGenerator) GenerateTrials() []trial.Trial {
	cfg := g.config
	trials := make([]trial.Trial, 0, cfg.Participants*cfg.Conditions*cfg.TrialsPerCell)

	for n := 0; n < cfg.TrialsPerCell; n++ {
		for p := 0; p < cfg.Participants; p++ {
			for c := 0; c < cfg.Conditions; c++ {
				trials = append(trials, trial.Trial{
					Participant: ParticipantID(p),
					Condition:   ConditionID(c),
					RT:          g.sampleRT(float64(c) * cfg.ConditionEffect),
					Correct:     g.rng.Float64() >= cfg.ErrorRate,
				})
			}
		}
	}
	return trials
}

// Generate returns the trials as a dataset with the default field names
func (g *RTGenerator) Generate() *trial.Dataset {
	return trial.NewDataset(g.GenerateTrials())
}

// sampleRT draws by inverse CDF so every value consumes exactly one uniform per component
func (g *RTGenerator) sampleRT(shift float64) float64 {
	cfg := g.config
	if cfg.LapseRate > 0 && g.rng.Float64() < cfg.LapseRate {
		return cfg.LapseRT + g.rng.Float64()*cfg.LapseRT
	}

	normal := distuv.Normal{Mu: cfg.Mu + shift, Sigma: cfg.Sigma}
	rt := normal.Quantile(g.uniform())
	if cfg.Tau > 0 {
		tail := distuv.Exponential{Rate: 1 / cfg.Tau}
		rt += tail.Quantile(g.uniform())
	}
	if rt < 1 {
		rt = 1
	}
	return rt
}

// uniform returns a draw in the open interval (0, 1), where Quantile is finite
func (g *RTGenerator) uniform() float64 {
	for {
		u := g.rng.Float64()
		if u > 0 {
			return u
		}
	}
}
