package logic

import (
	"fmt"
	"math"

	"github.com/openmohaa/forecast-api/internal/models"
)

const (
	neutralPrior        = 0.5
	priorWeight         = 2.0
	minWinProbability   = 0.05
	maxWinProbability   = 0.95
	confidenceEvidence  = 50.0
	keyFactorThreshold  = 0.08
	experienceThreshold = 0.2
)

// featureWeight is one row of the fixed predictor weight table
type featureWeight struct {
	name   string
	weight float64
	value  func(models.FeatureVector) float64
	// favours is the key factor statement, formatted with the leading side
	favours string
}

// predictorWeights sums to 1.0
var predictorWeights = []featureWeight{
	{"win_rate", 0.30, func(f models.FeatureVector) float64 { return f.WinRate }, "%s has the stronger overall win rate"},
	{"kill_efficiency", 0.12, func(f models.FeatureVector) float64 { return f.KillEfficiency }, "%s converts more fights into kills"},
	{"aggression_index", 0.08, func(f models.FeatureVector) float64 { return f.AggressionIndex }, "%s plays the more decisive style"},
	{"clutch_factor", 0.10, func(f models.FeatureVector) float64 { return f.ClutchFactor }, "%s closes out more of its recent matches"},
	{"momentum_score", 0.15, func(f models.FeatureVector) float64 { return f.MomentumScore }, "%s arrives with better momentum"},
	{"head_to_head_score", 0.12, func(f models.FeatureVector) float64 { return f.HeadToHeadScore }, "%s leads the head-to-head history"},
	{"stability_index", 0.08, func(f models.FeatureVector) float64 { return f.StabilityIndex }, "%s has produced more consistent results"},
	{"experience_score", 0.05, func(f models.FeatureVector) float64 { return f.ExperienceScore }, "%s has considerably more competitive experience"},
}

// RawScore is the weighted sum of a feature vector
func RawScore(f models.FeatureVector) float64 {
	var score float64
	for _, w := range predictorWeights {
		score += w.value(f) * w.weight
	}
	return score
}

// PredictMatchup produces the closed-form forecast for side A against side
// B. The weighted estimate is shrunk toward 0.5 in proportion to how little
// match experience backs it.
func PredictMatchup(a, b models.FeatureVector) models.PredictionResult {
	rawA, rawB := RawScore(a), RawScore(b)
	baseProb := neutralPrior
	if rawA+rawB > 0 {
		baseProb = rawA / (rawA + rawB)
	}

	sampleA := a.ExperienceScore * 100
	sampleB := b.ExperienceScore * 100
	sampleSize := (sampleA + sampleB) / 2

	posterior := (neutralPrior*priorWeight + baseProb*sampleSize) / (priorWeight + sampleSize)
	posterior = clamp(posterior, minWinProbability, maxWinProbability)

	winA := round3(posterior)
	confidence := (math.Min(1, sampleA/confidenceEvidence) + math.Min(1, sampleB/confidenceEvidence)) / 2

	upset := 0.05
	if avgWinRate := (a.WinRate + b.WinRate) / 2; avgWinRate < 0.3 || avgWinRate > 0.7 {
		upset = 0.15
	}

	delta := make(map[string]float64, len(predictorWeights))
	for _, w := range predictorWeights {
		delta[w.name] = round3(w.value(a) - w.value(b))
	}

	return models.PredictionResult{
		WinProbabilityA: winA,
		WinProbabilityB: 1 - winA,
		UpsetLikelihood: upset,
		Confidence:      round3(confidence),
		KeyFactors:      keyFactors(a, b),
		FeatureDelta:    delta,
	}
}

// keyFactors lists the features whose gap crosses the threshold, in weight
// table order
func keyFactors(a, b models.FeatureVector) []string {
	var factors []string
	for _, w := range predictorWeights {
		threshold := keyFactorThreshold
		if w.name == "experience_score" {
			threshold = experienceThreshold
		}
		d := w.value(a) - w.value(b)
		if math.Abs(d) <= threshold {
			continue
		}
		side := "Team A"
		if d < 0 {
			side = "Team B"
		}
		factors = append(factors, fmt.Sprintf(w.favours, side))
	}
	if len(factors) == 0 {
		return []string{"Comparable team strengths"}
	}
	return factors
}
