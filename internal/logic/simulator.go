package logic

import (
	"math"
	"math/rand/v2"
	"sort"

	"github.com/openmohaa/forecast-api/internal/models"
)

// RandomSource is the simulator's only source of randomness. *rand.Rand
// satisfies it; tests seed it for reproducible runs.
type RandomSource interface {
	Float64() float64
}

// NewSeededSource returns a deterministic source for seed
func NewSeededSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// PhaseWeights scale a side's round strength in one phase of a match
type PhaseWeights struct {
	Base         float64
	Adaptability float64
	Macro        float64
}

// SimulatorConfig tunes the Monte Carlo match model
type SimulatorConfig struct {
	Iterations       int
	NoiseLevel       float64
	UpsetProbability float64
	MomentumFactor   float64
	RoundsToWin      int
	MaxRounds        int
	Early            PhaseWeights
	Mid              PhaseWeights
	Late             PhaseWeights
}

// DefaultSimulatorConfig returns the standard round model: first to 13,
// capped at 24 rounds.
func DefaultSimulatorConfig() SimulatorConfig {
	return SimulatorConfig{
		Iterations:       1000,
		NoiseLevel:       0.2,
		UpsetProbability: 0.15,
		MomentumFactor:   0.5,
		RoundsToWin:      13,
		MaxRounds:        24,
		Early:            PhaseWeights{Base: 0.9, Adaptability: 0.15, Macro: 0.05},
		Mid:              PhaseWeights{Base: 0.9, Adaptability: 0.05, Macro: 0.15},
		Late:             PhaseWeights{Base: 0.9, Adaptability: 0.15, Macro: 0.05},
	}
}

func (c SimulatorConfig) withDefaults() SimulatorConfig {
	d := DefaultSimulatorConfig()
	if c.Iterations <= 0 {
		c.Iterations = d.Iterations
	}
	if c.RoundsToWin <= 0 {
		c.RoundsToWin = d.RoundsToWin
	}
	if c.MaxRounds <= 0 {
		c.MaxRounds = d.MaxRounds
	}
	if c.Early == (PhaseWeights{}) {
		c.Early = d.Early
	}
	if c.Mid == (PhaseWeights{}) {
		c.Mid = d.Mid
	}
	if c.Late == (PhaseWeights{}) {
		c.Late = d.Late
	}
	return c
}

// teamProfile is the simulator's view of a feature vector
type teamProfile struct {
	skill         float64
	aggression    float64
	macro         float64
	adaptability  float64
	metaAlignment float64
	momentum      float64
}

func profileFromFeatures(f models.FeatureVector) teamProfile {
	return teamProfile{
		skill:         f.WinRate*0.6 + f.KillEfficiency*0.4,
		aggression:    f.AggressionIndex,
		macro:         (f.StabilityIndex + f.ExperienceScore) / 2,
		adaptability:  f.ClutchFactor,
		metaAlignment: f.HeadToHeadScore,
		momentum:      f.MomentumScore,
	}
}

func (p teamProfile) strength() float64 {
	return p.skill*0.35 + p.aggression*0.15 + p.macro*0.25 +
		p.adaptability*0.15 + p.metaAlignment*0.10 + p.momentum*0.10
}

func (p teamProfile) phaseMultiplier(w PhaseWeights) float64 {
	return w.Base + p.adaptability*w.Adaptability + p.macro*w.Macro
}

func (c SimulatorConfig) phase(round int) PhaseWeights {
	switch {
	case round < 8:
		return c.Early
	case round < 16:
		return c.Mid
	}
	return c.Late
}

// matchOutcome is one simulated match
type matchOutcome struct {
	scoreA, scoreB int
	aWon           bool
	upset          bool
	rounds         int
}

// playMatch simulates a single match round by round
func playMatch(a, b teamProfile, cfg SimulatorConfig, rng RandomSource) matchOutcome {
	var scoreA, scoreB, round int

	for ; round < cfg.MaxRounds && scoreA < cfg.RoundsToWin && scoreB < cfg.RoundsToWin; round++ {
		noise := (rng.Float64() - 0.5) * cfg.NoiseLevel
		w := cfg.phase(round)
		strA := (a.strength() + noise) * a.phaseMultiplier(w)
		strB := (b.strength() + noise) * b.phaseMultiplier(w)

		// Noise-injection policy: the swap ignores the skill gap
		if rng.Float64() < cfg.UpsetProbability {
			strA, strB = strB, strA
		}

		aWins := strA > strB
		if strA == strB {
			aWins = rng.Float64() < 0.5
		}

		if aWins {
			scoreA++
			a.momentum = math.Min(1, a.momentum+cfg.MomentumFactor*0.1)
			b.momentum = math.Max(0, b.momentum-cfg.MomentumFactor*0.05)
		} else {
			scoreB++
			b.momentum = math.Min(1, b.momentum+cfg.MomentumFactor*0.1)
			a.momentum = math.Max(0, a.momentum-cfg.MomentumFactor*0.05)
		}
	}

	aWon := scoreA > scoreB
	if scoreA == scoreB {
		aWon = rng.Float64() < 0.5
	}

	finalA, finalB := a.strength(), b.strength()
	upset := (finalA > finalB && !aWon) || (finalB > finalA && aWon)

	return matchOutcome{scoreA: scoreA, scoreB: scoreB, aWon: aWon, upset: upset, rounds: round}
}

// SimulateMatch runs cfg.Iterations independent matches of a against b and
// aggregates them. It is a pure function of its arguments.
func SimulateMatch(a, b models.FeatureVector, cfg SimulatorConfig, rng RandomSource) models.SimulationResult {
	cfg = cfg.withDefaults()
	profA, profB := profileFromFeatures(a), profileFromFeatures(b)

	res := models.SimulationResult{Iterations: cfg.Iterations}
	diffs := make([]float64, cfg.Iterations)
	buckets := make(map[int]int)
	var totalA, totalB int

	for i := 0; i < cfg.Iterations; i++ {
		out := playMatch(profA, profB, cfg, rng)
		if out.aWon {
			res.WinsA++
		} else {
			res.WinsB++
		}
		if out.upset {
			res.UpsetScenarios++
		}

		switch {
		case out.rounds < 20:
			res.WinConditionBreakdown.Early++
		case out.rounds < 28:
			res.WinConditionBreakdown.Mid++
		default:
			res.WinConditionBreakdown.Late++
		}

		totalA += out.scoreA
		totalB += out.scoreB
		diff := out.scoreA - out.scoreB
		diffs[i] = float64(diff)
		buckets[diff]++
	}

	n := float64(cfg.Iterations)
	res.WinProbabilityA = round3(float64(res.WinsA) / n)
	res.AvgScoreA = round2(float64(totalA) / n)
	res.AvgScoreB = round2(float64(totalB) / n)

	res.ScoreDistribution = make([]models.ScoreBucket, 0, len(buckets))
	for diff, count := range buckets {
		res.ScoreDistribution = append(res.ScoreDistribution, models.ScoreBucket{Diff: diff, Count: count})
	}
	sort.Slice(res.ScoreDistribution, func(i, j int) bool {
		return res.ScoreDistribution[i].Diff < res.ScoreDistribution[j].Diff
	})

	res.Confidence = round3(simulationConfidence(diffs))
	return res
}

// simulationConfidence grows with the dominance metric:
// |mean score diff| / (stddev + 1)
func simulationConfidence(diffs []float64) float64 {
	m := mean(diffs)
	var variance float64
	for _, d := range diffs {
		variance += (d - m) * (d - m)
	}
	if len(diffs) > 0 {
		variance /= float64(len(diffs))
	}
	dominance := math.Abs(m) / (math.Sqrt(variance) + 1)
	return math.Min(0.95, 0.5+dominance*0.3)
}
