package logic

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestNarrate(t *testing.T) {
	logger := zap.NewNop().Sugar()
	req := NarrativeRequest{TeamA: "Cloud9", TeamB: "Team Liquid"}

	tests := []struct {
		name string
		gen  NarrativeGenerator
		want string
	}{
		{"absent", nil, ""},
		{
			"trimmed",
			&MockNarrativeGenerator{GenerateFunc: func(ctx context.Context, r NarrativeRequest) (string, error) {
				return "  " + r.TeamA + " edges it.\n", nil
			}},
			"Cloud9 edges it.",
		},
		{
			"error",
			&MockNarrativeGenerator{GenerateFunc: func(ctx context.Context, r NarrativeRequest) (string, error) {
				return "partial", errors.New("llm down")
			}},
			"",
		},
		{
			"panic",
			&MockNarrativeGenerator{GenerateFunc: func(ctx context.Context, r NarrativeRequest) (string, error) {
				panic("bad generator")
			}},
			"",
		},
		{
			"deadline",
			&MockNarrativeGenerator{GenerateFunc: func(ctx context.Context, r NarrativeRequest) (string, error) {
				<-ctx.Done()
				return "too late", nil
			}},
			"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := narrate(context.Background(), tt.gen, 20*time.Millisecond, req, logger)
			if got != tt.want {
				t.Errorf("narrate() = %q, want %q", got, tt.want)
			}
		})
	}
}
