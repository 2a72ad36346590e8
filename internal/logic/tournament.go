package logic

import (
	"sort"

	"github.com/openmohaa/forecast-api/internal/models"
)

// DefaultTournamentMatchIterations is how many simulated matches decide one
// bracket pairing
const DefaultTournamentMatchIterations = 1

// SimulateTournament plays a single-elimination bracket. Each round the
// remaining entrants are ordered by seed and folded best-against-worst; with
// an odd field the best remaining seed gets a bye. Ties in simulated wins go
// to the better (lower) seed.
func SimulateTournament(entrants []models.TournamentEntrant, cfg SimulatorConfig, matchIterations int, rng RandomSource) models.TournamentResult {
	if matchIterations <= 0 {
		matchIterations = DefaultTournamentMatchIterations
	}
	cfg.Iterations = matchIterations

	field := make([]models.TournamentEntrant, len(entrants))
	copy(field, entrants)

	var result models.TournamentResult
	for round := 1; len(field) > 1; round++ {
		sort.SliceStable(field, func(i, j int) bool { return field[i].Seed < field[j].Seed })

		br := models.BracketRound{Round: round}
		next := make([]models.TournamentEntrant, 0, (len(field)+1)/2)

		if len(field)%2 == 1 {
			bye := field[0]
			field = field[1:]
			br.Matches = append(br.Matches, models.BracketMatch{
				TeamA: bye.Name, SeedA: bye.Seed, Winner: bye.Name, Bye: true,
			})
			next = append(next, bye)
		}

		for i := 0; i < len(field)/2; i++ {
			a, b := field[i], field[len(field)-1-i]
			m, winner := playBracketMatch(a, b, cfg, rng)
			if m.Upset {
				result.Upsets++
			}
			br.Matches = append(br.Matches, m)
			next = append(next, winner)
		}

		result.Rounds = append(result.Rounds, br)
		field = next
	}

	if len(field) == 1 {
		result.Champion = field[0].Name
	}
	return result
}

func playBracketMatch(a, b models.TournamentEntrant, cfg SimulatorConfig, rng RandomSource) (models.BracketMatch, models.TournamentEntrant) {
	sim := SimulateMatch(a.Features, b.Features, cfg, rng)

	winner, loser := a, b
	switch {
	case sim.WinsB > sim.WinsA:
		winner, loser = b, a
	case sim.WinsA == sim.WinsB && b.Seed < a.Seed:
		winner, loser = b, a
	}

	return models.BracketMatch{
		TeamA:  a.Name,
		SeedA:  a.Seed,
		TeamB:  b.Name,
		SeedB:  b.Seed,
		Winner: winner.Name,
		WinsA:  sim.WinsA,
		WinsB:  sim.WinsB,
		Upset:  winner.Seed > loser.Seed,
	}, winner
}
