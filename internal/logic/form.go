package logic

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/openmohaa/forecast-api/internal/models"
)

// Form values for one match from a team's perspective
const (
	formWin  = 1.0
	formLoss = 0.0
	formDraw = 0.5
)

// perspective returns the team's own and opponent round scores plus the
// opponent's name. ok is false when the team did not play in m.
func perspective(id string, m models.MatchRecord) (own, opp int, opponent string, ok bool) {
	switch id {
	case m.TeamAID:
		return m.ScoreA, m.ScoreB, m.TeamBName, true
	case m.TeamBID:
		return m.ScoreB, m.ScoreA, m.TeamAName, true
	}
	return 0, 0, "", false
}

func resultLabel(own, opp int) string {
	switch {
	case own > opp:
		return "win"
	case own < opp:
		return "loss"
	}
	return "draw"
}

// FormSequence converts a most-recent-first match list into 1/0/0.5 values,
// skipping matches the team did not play.
func FormSequence(id string, records []models.MatchRecord) []float64 {
	seq := make([]float64, 0, len(records))
	for _, m := range records {
		own, opp, _, ok := perspective(id, m)
		if !ok {
			continue
		}
		switch {
		case own > opp:
			seq = append(seq, formWin)
		case own < opp:
			seq = append(seq, formLoss)
		default:
			seq = append(seq, formDraw)
		}
	}
	return seq
}

// HeadToHeadRatio is A's share of past meetings, counting draws as half.
// ok is false when the teams never met.
func HeadToHeadRatio(h models.HeadToHead) (float64, bool) {
	total := h.Total()
	if total == 0 {
		return 0, false
	}
	return (float64(h.WinsA) + float64(h.Draws)*0.5) / float64(total), true
}

// ComputeFormIndicators derives trend, tempo and comeback signals from a
// most-recent-first match list.
func ComputeFormIndicators(id string, records []models.MatchRecord) models.FormIndicators {
	return models.FormIndicators{
		WinRateTrend:        round3(winRateTrend(FormSequence(id, records))),
		TempoScore:          round3(tempoScore(records)),
		ComebackProbability: round3(comebackProbability(id, records)),
	}
}

// winRateTrend is the mean of the three most recent results minus the mean
// over the whole sequence.
func winRateTrend(seq []float64) float64 {
	if len(seq) < 2 {
		return 0
	}
	recent := seq[:min(3, len(seq))]
	return clamp(mean(recent)-mean(seq), -1, 1)
}

// tempoScore rewards short matches: 1 - totalRounds/30, averaged
func tempoScore(records []models.MatchRecord) float64 {
	var scores []float64
	for _, m := range records {
		if total := m.ScoreA + m.ScoreB; total > 0 {
			scores = append(scores, 1-float64(total)/30)
		}
	}
	if len(scores) == 0 {
		return 0.5
	}
	return clamp01(mean(scores))
}

// comebackProbability is the share of dominant wins (by 4+ rounds) among
// dominant wins and close losses (by 2 or fewer).
func comebackProbability(id string, records []models.MatchRecord) float64 {
	var dominant, total int
	for _, m := range records {
		own, opp, _, ok := perspective(id, m)
		if !ok {
			continue
		}
		switch {
		case own < opp && opp-own <= 2:
			total++
		case own > opp && own-opp >= 4:
			dominant++
			total++
		}
	}
	if total == 0 {
		return 0.5
	}
	return float64(dominant) / float64(total)
}

// SimilarMatches ranks a team's past matches by bag-of-words cosine
// similarity between query and "team result opponent".
func SimilarMatches(query, teamID, teamName string, records []models.MatchRecord, topK int) []models.ComparableMatch {
	queryVec := termFrequencies(query)
	out := make([]models.ComparableMatch, 0, len(records))
	for _, m := range records {
		own, opp, opponent, ok := perspective(teamID, m)
		if !ok {
			continue
		}
		result := resultLabel(own, opp)
		text := teamName + " " + result + " " + opponent
		out = append(out, models.ComparableMatch{
			MatchID:    m.MatchID,
			Team:       teamName,
			Opponent:   opponent,
			Result:     result,
			Score:      fmt.Sprintf("%d-%d", own, opp),
			Similarity: round3(cosine(queryVec, termFrequencies(text))),
		})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Similarity > out[j].Similarity })
	if topK > 0 && len(out) > topK {
		out = out[:topK]
	}
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}

func termFrequencies(text string) map[string]float64 {
	tf := make(map[string]float64)
	for _, w := range strings.Fields(NormalizeInput(text)) {
		tf[w]++
	}
	return tf
}

func cosine(a, b map[string]float64) float64 {
	var dot, normA, normB float64
	for w, x := range a {
		dot += x * b[w]
		normA += x * x
	}
	for _, y := range b {
		normB += y * y
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}
