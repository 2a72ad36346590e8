package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/openmohaa/forecast-api/internal/logic"
)

// NarrativeClient posts a matchup summary to the report generator
type NarrativeClient struct {
	*Client
}

func NewNarrativeClient(cfg Config) *NarrativeClient {
	return &NarrativeClient{Client: NewClient(cfg)}
}

// Generate returns the generator's report. The service may answer with plain
// text or with a JSON object carrying "narrative" or "text".
func (n *NarrativeClient) Generate(ctx context.Context, req logic.NarrativeRequest) (string, error) {
	body, err := n.do(ctx, http.MethodPost, "/narratives", req)
	if err != nil {
		return "", err
	}
	return extractNarrative(body), nil
}

func extractNarrative(body []byte) string {
	trimmed := strings.TrimSpace(string(body))
	if !strings.HasPrefix(trimmed, "{") {
		var s string
		if json.Unmarshal(body, &s) == nil {
			return s
		}
		return trimmed
	}

	var obj struct {
		Narrative string `json:"narrative"`
		Text      string `json:"text"`
	}
	if err := json.Unmarshal(body, &obj); err != nil {
		return trimmed
	}
	if obj.Narrative != "" {
		return obj.Narrative
	}
	if obj.Text != "" {
		return obj.Text
	}
	return trimmed
}
