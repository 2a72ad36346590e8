package logic

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// DefaultNarrativeTimeout bounds a single narrative generation
const DefaultNarrativeTimeout = 8 * time.Second

// narrate asks the optional generator for a report. Absence, errors, panics
// and timeouts all yield an empty narrative; the numeric result is never
// affected.
func narrate(ctx context.Context, gen NarrativeGenerator, timeout time.Duration, req NarrativeRequest, logger *zap.SugaredLogger) (text string) {
	if gen == nil {
		return ""
	}
	if timeout <= 0 {
		timeout = DefaultNarrativeTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			narrativeFailures.Inc()
			logger.Errorw("Narrative generator panicked", "panic", r)
			text = ""
		}
	}()

	out, err := gen.Generate(ctx, req)
	if err == nil && ctx.Err() != nil {
		err = fmt.Errorf("narrative deadline: %w", ctx.Err())
	}
	if err != nil {
		narrativeFailures.Inc()
		logger.Warnw("Narrative generation failed", "team_a", req.TeamA, "team_b", req.TeamB, "error", err)
		return ""
	}
	return strings.TrimSpace(out)
}
