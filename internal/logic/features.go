package logic

import (
	"math"

	"github.com/openmohaa/forecast-api/internal/models"
)

const (
	// killBaseline is the average kills per match treated as full efficiency
	killBaseline = 22.0
	// momentumDecay weights each step back in the form sequence
	momentumDecay = 0.8
	// clutchWindow is how many recent matches the clutch factor looks at
	clutchWindow = 5
	// minFormMatches is the minimum sequence length for clutch and stability
	minFormMatches = 3

	neutralFeature = 0.5
)

// FeatureInput is everything the feature engine reads for one side
type FeatureInput struct {
	Stats models.GuardedStats
	// RecentForm is most-recent-first: 1 win, 0 loss, 0.5 draw
	RecentForm    []float64
	HeadToHead    float64
	HasHeadToHead bool
}

// ComputeFeatures derives the normalized feature vector. Every field is in
// [0,1] and rounded to 3 decimals; missing evidence yields the documented
// neutral default for that field.
func ComputeFeatures(in FeatureInput) models.FeatureVector {
	winRate := neutralFeature
	if in.Stats.GamesPlayed > 0 {
		winRate = clamp01(in.Stats.WinRate)
	}

	return models.FeatureVector{
		WinRate:         round3(winRate),
		KillEfficiency:  round3(killEfficiency(in.Stats.AvgKills)),
		AggressionIndex: round3(aggressionIndex(winRate)),
		ClutchFactor:    round3(clutchFactor(in.RecentForm)),
		MomentumScore:   round3(momentumScore(in.RecentForm)),
		HeadToHeadScore: round3(headToHeadScore(in.HeadToHead, in.HasHeadToHead)),
		StabilityIndex:  round3(stabilityIndex(in.RecentForm)),
		ExperienceScore: round3(experienceScore(totalMatches(in.Stats, in.RecentForm))),
	}
}

func killEfficiency(avgKills float64) float64 {
	if avgKills <= 0 {
		return neutralFeature
	}
	return clamp01(math.Min(1, avgKills/killBaseline))
}

func aggressionIndex(winRate float64) float64 {
	return clamp01(0.5 + math.Abs(winRate-0.5)*2*0.3)
}

// clutchFactor rescales the recent win fraction into [0.3, 0.8]
func clutchFactor(form []float64) float64 {
	if len(form) < minFormMatches {
		return neutralFeature
	}
	window := form[:min(clutchWindow, len(form))]
	var wins float64
	for _, v := range window {
		if v == formWin {
			wins++
		}
	}
	return 0.3 + (wins/float64(len(window)))*0.5
}

// momentumScore is the exponentially decayed mean of the form sequence
func momentumScore(form []float64) float64 {
	if len(form) == 0 {
		return neutralFeature
	}
	var weighted, total float64
	w := 1.0
	for _, v := range form {
		weighted += v * w
		total += w
		w *= momentumDecay
	}
	return clamp01(weighted / total)
}

func headToHeadScore(ratio float64, ok bool) float64 {
	if !ok {
		return neutralFeature
	}
	return clamp01(ratio)
}

// stabilityIndex is 1 minus the standard deviation of the form sequence
func stabilityIndex(form []float64) float64 {
	if len(form) < minFormMatches {
		return neutralFeature
	}
	m := mean(form)
	var variance float64
	for _, v := range form {
		variance += (v - m) * (v - m)
	}
	variance /= float64(len(form))
	return clamp01(1 - math.Sqrt(variance))
}

func totalMatches(stats models.GuardedStats, form []float64) int {
	if stats.GamesPlayed > 0 {
		return stats.GamesPlayed
	}
	return len(form)
}

func experienceScore(matches int) float64 {
	switch {
	case matches < 5:
		return 0.2
	case matches < 10:
		return 0.4
	case matches < 20:
		return 0.6
	case matches < 50:
		return 0.8
	}
	return 1.0
}
