package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/openmohaa/forecast-api/internal/models"
)

const validMatch = `{"match_id":"m1","played_at":"2024-05-01T18:00:00Z","team_a_id":"47351","team_a_name":"Cloud9","team_b_id":"47380","team_b_name":"Team Liquid","score_a":13,"score_b":9,"kills_a":98,"kills_b":81,"map_name":"de_nuke"}`

func TestIngestMatches(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		queueFull    bool
		wantStatus   int
		wantAccepted int
		wantRejected int
	}{
		{
			name:       "Oversized Payload",
			body:       strings.Repeat("a", MaxBodySize+1),
			wantStatus: http.StatusRequestEntityTooLarge,
		},
		{
			name:         "Single NDJSON line",
			body:         validMatch,
			wantStatus:   http.StatusAccepted,
			wantAccepted: 1,
		},
		{
			name:         "JSON array",
			body:         "[" + validMatch + "," + validMatch + "]",
			wantStatus:   http.StatusAccepted,
			wantAccepted: 2,
		},
		{
			name:       "Broken array",
			body:       "[" + validMatch,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:         "Mixed valid and invalid",
			body:         validMatch + "\n\n{not json}\n" + `{"team_a_id":"abc","team_b_id":"47380","played_at":"2024-05-01T18:00:00Z"}`,
			wantStatus:   http.StatusAccepted,
			wantAccepted: 1,
			wantRejected: 2,
		},
		{
			name:         "Same team on both sides",
			body:         `{"played_at":"2024-05-01T18:00:00Z","team_a_id":"47351","team_b_id":"47351"}`,
			wantStatus:   http.StatusAccepted,
			wantRejected: 1,
		},
		{
			name:         "Queue Full",
			body:         validMatch + "\n" + validMatch,
			queueFull:    true,
			wantStatus:   http.StatusAccepted,
			wantRejected: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			queue := &MockIngestQueue{}
			if tt.queueFull {
				queue.EnqueueFunc = func(m *models.MatchRecord) bool { return false }
			}
			h := &Handler{
				logger: zap.NewNop().Sugar(),
				pool:   queue,
			}

			req := httptest.NewRequest("POST", "/api/v1/ingest/matches", strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			h.IngestMatches(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("StatusCode = %d, want %d: %s", w.Code, tt.wantStatus, w.Body.String())
			}
			if tt.wantStatus != http.StatusAccepted {
				return
			}

			var resp models.IngestResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatal(err)
			}
			if resp.Accepted != tt.wantAccepted || resp.Rejected != tt.wantRejected {
				t.Errorf("accepted = %d, rejected = %d; want %d, %d", resp.Accepted, resp.Rejected, tt.wantAccepted, tt.wantRejected)
			}
			if len(queue.Enqueued) != tt.wantAccepted {
				t.Errorf("enqueued = %d, want %d", len(queue.Enqueued), tt.wantAccepted)
			}
		})
	}
}
