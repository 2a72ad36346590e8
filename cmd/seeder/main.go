package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand/v2"
	"net/http"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/openmohaa/forecast-api/internal/logic"
	"github.com/openmohaa/forecast-api/internal/models"
)

type demoTeam struct {
	ID        int64
	Name      string
	ShortName string
	Aliases   []string
	Skill     float64 // round win probability against an average team
}

var demoTeams = []demoTeam{
	{47351, "Cloud9", "C9", []string{"cloud 9"}, 0.56},
	{47380, "Team Liquid", "TL", []string{"liquid"}, 0.58},
	{47494, "Fnatic", "FNC", nil, 0.52},
	{47554, "G2 Esports", "G2", nil, 0.60},
	{47612, "Natus Vincere", "NAVI", []string{"na'vi"}, 0.62},
	{47703, "FaZe Clan", "FaZe", nil, 0.57},
	{47815, "Team Vitality", "VIT", nil, 0.61},
	{47920, "MOUZ", "MOUZ", []string{"mousesports"}, 0.53},
}

var maps = []string{"de_inferno", "de_mirage", "de_nuke", "de_ancient", "de_anubis", "de_vertigo", "de_overpass"}

func main() {
	_ = godotenv.Load()

	apiURL := flag.String("api", "http://localhost:8080/api/v1/ingest/matches", "ingest endpoint")
	matches := flag.Int("matches", 200, "number of match results to generate")
	seed := flag.Uint64("seed", 1, "random seed")
	skipTeams := flag.Bool("skip-teams", false, "do not write the team registry")
	flag.Parse()

	if !*skipTeams {
		if err := seedTeams(os.Getenv("POSTGRES_URL")); err != nil {
			log.Fatalf("Failed to seed teams: %v", err)
		}
		fmt.Printf("Seeded %d teams\n", len(demoTeams))
	}

	rng := rand.New(rand.NewPCG(*seed, *seed^0x5eed))
	records := generateMatches(rng, *matches, time.Now().UTC())

	var payload bytes.Buffer
	enc := json.NewEncoder(&payload)
	for i := range records {
		if err := enc.Encode(&records[i]); err != nil {
			log.Fatalf("Failed to marshal JSON: %v", err)
		}
	}

	req, err := http.NewRequest("POST", *apiURL, &payload)
	if err != nil {
		log.Fatalf("Failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/x-ndjson")

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		log.Fatalf("Failed to send request: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	fmt.Printf("Status: %s\n", resp.Status)
	fmt.Printf("Response: %s\n", string(body))

	if resp.StatusCode != http.StatusAccepted {
		os.Exit(1)
	}
}

func seedTeams(url string) error {
	if url == "" {
		return fmt.Errorf("POSTGRES_URL is not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	pg, err := pgxpool.New(ctx, url)
	if err != nil {
		return err
	}
	defer pg.Close()

	if err := logic.EnsureRegistrySchema(ctx, pg); err != nil {
		return err
	}
	for _, t := range demoTeams {
		_, err := pg.Exec(ctx, `
			INSERT INTO teams (id, name, short_name, aliases) VALUES ($1, $2, $3, $4)
			ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, short_name = EXCLUDED.short_name, aliases = EXCLUDED.aliases
		`, t.ID, t.Name, t.ShortName, t.Aliases)
		if err != nil {
			return fmt.Errorf("insert %s: %w", t.Name, err)
		}
	}
	return nil
}

// generateMatches plays out MR12 maps between random pairs of demo teams,
// spread over the last 90 days
func generateMatches(rng *rand.Rand, n int, now time.Time) []models.MatchRecord {
	records := make([]models.MatchRecord, 0, n)
	for i := 0; i < n; i++ {
		a := demoTeams[rng.IntN(len(demoTeams))]
		b := demoTeams[rng.IntN(len(demoTeams))]
		for b.ID == a.ID {
			b = demoTeams[rng.IntN(len(demoTeams))]
		}

		p := a.Skill / (a.Skill + b.Skill)
		scoreA, scoreB := 0, 0
		for scoreA < 13 && scoreB < 13 && scoreA+scoreB < 24 {
			if rng.Float64() < p {
				scoreA++
			} else {
				scoreB++
			}
		}
		rounds := scoreA + scoreB

		records = append(records, models.MatchRecord{
			MatchID:   fmt.Sprintf("seed-%06d", i),
			SeriesID:  fmt.Sprintf("series-%05d", i/3),
			PlayedAt:  now.Add(-time.Duration(rng.IntN(90*24)) * time.Hour),
			TeamAID:   fmt.Sprint(a.ID),
			TeamAName: a.Name,
			TeamBID:   fmt.Sprint(b.ID),
			TeamBName: b.Name,
			ScoreA:    scoreA,
			ScoreB:    scoreB,
			KillsA:    scoreA*4 + rng.IntN(rounds+1),
			KillsB:    scoreB*4 + rng.IntN(rounds+1),
			MapName:   maps[rng.IntN(len(maps))],
		})
	}
	return records
}
