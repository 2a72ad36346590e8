package logic

import (
	"reflect"
	"testing"

	"github.com/openmohaa/forecast-api/internal/models"
)

func TestSimulateMatch_Deterministic(t *testing.T) {
	a, b := uniformVector(0.6), uniformVector(0.5)
	cfg := DefaultSimulatorConfig()

	first := SimulateMatch(a, b, cfg, NewSeededSource(42))
	second := SimulateMatch(a, b, cfg, NewSeededSource(42))
	if !reflect.DeepEqual(first, second) {
		t.Errorf("same seed produced different results:\n%+v\n%+v", first, second)
	}
}

func TestSimulateMatch_SymmetricForIdenticalTeams(t *testing.T) {
	fv := uniformVector(0.5)
	cfg := DefaultSimulatorConfig()

	for seed := uint64(1); seed <= 5; seed++ {
		res := SimulateMatch(fv, fv, cfg, NewSeededSource(seed))
		if res.WinsA+res.WinsB != 1000 {
			t.Fatalf("seed %d: wins sum = %d", seed, res.WinsA+res.WinsB)
		}
		diff := res.WinsA - res.WinsB
		if diff < 0 {
			diff = -diff
		}
		if diff >= 100 {
			t.Errorf("seed %d: |winsA - winsB| = %d, want < 100", seed, diff)
		}
	}
}

func TestSimulateMatch_Aggregates(t *testing.T) {
	cfg := DefaultSimulatorConfig()
	cfg.Iterations = 500
	res := SimulateMatch(uniformVector(0.7), uniformVector(0.4), cfg, NewSeededSource(7))

	if res.Iterations != 500 {
		t.Errorf("Iterations = %d", res.Iterations)
	}
	total := 0
	for i, bucket := range res.ScoreDistribution {
		total += bucket.Count
		if i > 0 && res.ScoreDistribution[i-1].Diff >= bucket.Diff {
			t.Errorf("distribution not sorted by diff: %v", res.ScoreDistribution)
		}
	}
	if total != 500 {
		t.Errorf("distribution counts sum = %d, want 500", total)
	}

	wc := res.WinConditionBreakdown
	if wc.Early+wc.Mid+wc.Late != 500 {
		t.Errorf("win condition buckets = %+v", wc)
	}
	// The 24-round cap keeps every match below the late threshold
	if wc.Late != 0 {
		t.Errorf("Late = %d, want 0", wc.Late)
	}
	if res.Confidence < 0.5 || res.Confidence > 0.95 {
		t.Errorf("Confidence = %v out of [0.5, 0.95]", res.Confidence)
	}
	if res.WinsA <= res.WinsB {
		t.Errorf("stronger side should win more often: %d vs %d", res.WinsA, res.WinsB)
	}
}

func TestPlayMatch_EndsAtThirteenOrCap(t *testing.T) {
	cfg := DefaultSimulatorConfig()
	a := profileFromFeatures(uniformVector(0.5))
	b := profileFromFeatures(uniformVector(0.5))
	rng := NewSeededSource(99)

	for i := 0; i < 2000; i++ {
		out := playMatch(a, b, cfg, rng)
		if out.scoreA+out.scoreB != out.rounds {
			t.Fatalf("score %d-%d does not add up to %d rounds", out.scoreA, out.scoreB, out.rounds)
		}
		reachedWin := out.scoreA == 13 || out.scoreB == 13
		if !reachedWin && out.rounds != 24 {
			t.Fatalf("match ended at %d-%d after %d rounds", out.scoreA, out.scoreB, out.rounds)
		}
		if out.scoreA > 13 || out.scoreB > 13 {
			t.Fatalf("score exceeded 13: %d-%d", out.scoreA, out.scoreB)
		}
		if out.scoreA != out.scoreB && out.aWon != (out.scoreA > out.scoreB) {
			t.Fatalf("winner mismatch for %d-%d", out.scoreA, out.scoreB)
		}
	}
}

func TestSimulateMatch_NoNoiseNoUpsets(t *testing.T) {
	cfg := DefaultSimulatorConfig()
	cfg.Iterations = 50
	cfg.NoiseLevel = 0
	cfg.UpsetProbability = 0

	res := SimulateMatch(uniformVector(0.9), uniformVector(0.1), cfg, NewSeededSource(1))
	if res.WinsA != 50 || res.WinsB != 0 {
		t.Errorf("wins = %d/%d, want 50/0", res.WinsA, res.WinsB)
	}
	if res.AvgScoreA != 13 || res.AvgScoreB != 0 {
		t.Errorf("avg score = %v-%v, want 13-0", res.AvgScoreA, res.AvgScoreB)
	}
	if res.UpsetScenarios != 0 {
		t.Errorf("UpsetScenarios = %d", res.UpsetScenarios)
	}
	if res.Confidence != 0.95 {
		t.Errorf("Confidence = %v, want 0.95", res.Confidence)
	}
	want := []models.ScoreBucket{{Diff: 13, Count: 50}}
	if !reflect.DeepEqual(res.ScoreDistribution, want) {
		t.Errorf("ScoreDistribution = %v", res.ScoreDistribution)
	}
	if res.WinConditionBreakdown.Early != 50 {
		t.Errorf("Early = %d, want 50", res.WinConditionBreakdown.Early)
	}
	if res.WinProbabilityA != 1 {
		t.Errorf("WinProbabilityA = %v", res.WinProbabilityA)
	}
}

func TestSimulateMatch_ZeroConfigUsesDefaults(t *testing.T) {
	res := SimulateMatch(uniformVector(0.5), uniformVector(0.5), SimulatorConfig{}, NewSeededSource(3))
	if res.Iterations != 1000 {
		t.Errorf("Iterations = %d, want 1000", res.Iterations)
	}
}

func TestSimulateTournament(t *testing.T) {
	entrants := []models.TournamentEntrant{
		{Name: "Cloud9", Seed: 1, Features: uniformVector(0.9)},
		{Name: "Fnatic", Seed: 2, Features: uniformVector(0.8)},
		{Name: "G2", Seed: 3, Features: uniformVector(0.4)},
		{Name: "NAVI", Seed: 4, Features: uniformVector(0.3)},
		{Name: "T1", Seed: 5, Features: uniformVector(0.2)},
	}
	cfg := DefaultSimulatorConfig()
	cfg.NoiseLevel = 0
	cfg.UpsetProbability = 0

	res := SimulateTournament(entrants, cfg, 1, NewSeededSource(5))

	if len(res.Rounds) != 3 {
		t.Fatalf("rounds = %d, want 3: %+v", len(res.Rounds), res.Rounds)
	}
	first := res.Rounds[0]
	if !first.Matches[0].Bye || first.Matches[0].TeamA != "Cloud9" {
		t.Errorf("top seed should receive the bye: %+v", first.Matches[0])
	}
	if first.Matches[1].TeamA != "Fnatic" || first.Matches[1].TeamB != "T1" {
		t.Errorf("expected 2v5 pairing, got %+v", first.Matches[1])
	}
	if res.Champion != "Cloud9" {
		t.Errorf("Champion = %q, want Cloud9", res.Champion)
	}
	if res.Upsets != 0 {
		t.Errorf("Upsets = %d, want 0 without noise", res.Upsets)
	}
}

func TestSimulateTournament_UpsetAndTieBreak(t *testing.T) {
	cfg := DefaultSimulatorConfig()
	cfg.NoiseLevel = 0
	cfg.UpsetProbability = 0

	// Seed 1 is much weaker than seed 2
	res := SimulateTournament([]models.TournamentEntrant{
		{Name: "Underdog", Seed: 2, Features: uniformVector(0.9)},
		{Name: "Favorite", Seed: 1, Features: uniformVector(0.1)},
	}, cfg, 3, NewSeededSource(1))
	if res.Champion != "Underdog" || res.Upsets != 1 || !res.Rounds[0].Matches[0].Upset {
		t.Errorf("expected a flagged upset, got %+v", res)
	}

	// Drawn series go to the better seed. Each 13-0 match consumes 27 draws;
	// the only coin flips are at draw 2 (game one) and draw 29 (game two).
	rng := &scriptedSource{script: map[int]float64{2: 0.1, 29: 0.9}}
	m, winner := playBracketMatch(
		models.TournamentEntrant{Name: "Lower", Seed: 3, Features: uniformVector(0.5)},
		models.TournamentEntrant{Name: "Higher", Seed: 1, Features: uniformVector(0.5)},
		SimulatorConfig{Iterations: 2, MomentumFactor: 0.5},
		rng,
	)
	if m.WinsA != 1 || m.WinsB != 1 {
		t.Fatalf("expected a drawn series, got %d-%d", m.WinsA, m.WinsB)
	}
	if winner.Name != "Higher" || m.Upset {
		t.Errorf("tie should go to the better seed without an upset: %+v", m)
	}
}

func TestSimulateTournament_Degenerate(t *testing.T) {
	if res := SimulateTournament(nil, DefaultSimulatorConfig(), 1, NewSeededSource(1)); res.Champion != "" || len(res.Rounds) != 0 {
		t.Errorf("empty field = %+v", res)
	}
	solo := []models.TournamentEntrant{{Name: "Solo", Seed: 1}}
	if res := SimulateTournament(solo, DefaultSimulatorConfig(), 1, NewSeededSource(1)); res.Champion != "Solo" {
		t.Errorf("single entrant champion = %q", res.Champion)
	}
}

// scriptedSource returns scripted values by call index, 0.5 otherwise
type scriptedSource struct {
	calls  int
	script map[int]float64
}

func (s *scriptedSource) Float64() float64 {
	v, ok := s.script[s.calls]
	s.calls++
	if !ok {
		return 0.5
	}
	return v
}
