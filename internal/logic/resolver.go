package logic

import (
	"context"
	"math"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/openmohaa/forecast-api/internal/models"
)

// minResolveConfidence is the lowest top-candidate confidence accepted
// without asking the caller to disambiguate.
const minResolveConfidence = 0.5

// fuzzyThreshold is the character-set similarity above which a candidate
// counts as a fuzzy match.
const fuzzyThreshold = 0.5

type resolverService struct {
	index   *EntityIndex
	aliases *AliasTable
	logger  *zap.SugaredLogger
}

func NewNameResolver(index *EntityIndex, aliases *AliasTable, logger *zap.Logger) NameResolver {
	if aliases == nil {
		aliases = NewAliasTable()
	}
	return &resolverService{
		index:   index,
		aliases: aliases,
		logger:  logger.Sugar(),
	}
}

type candidate struct {
	entity     models.CanonicalEntity
	confidence float64
	matchType  models.MatchType
}

// Resolve maps free text to a canonical entity. It fails with *NotFoundError
// or *AmbiguousError; guessing a wrong team is worse than asking again.
func (r *resolverService) Resolve(ctx context.Context, name string) (*models.ResolutionResult, error) {
	res, err := r.resolve(ctx, name, true)
	switch e := err.(type) {
	case nil:
		resolutionsTotal.WithLabelValues(string(res.MatchType)).Inc()
	case *NotFoundError:
		resolutionsTotal.WithLabelValues("not_found").Inc()
		r.logger.Warnw("Team not found", "input", name, "suggestions", e.Suggestions)
	case *AmbiguousError:
		resolutionsTotal.WithLabelValues("ambiguous").Inc()
		r.logger.Warnw("Ambiguous team name", "input", name, "candidates", e.Candidates)
	}
	return res, err
}

func (r *resolverService) resolve(ctx context.Context, input string, allowReload bool) (*models.ResolutionResult, error) {
	input = strings.TrimSpace(input)
	normalized := NormalizeInput(input)
	if normalized == "" {
		return nil, r.notFound(input)
	}

	if res := r.resolveAlias(ctx, input); res != nil {
		return res, nil
	}

	// Index never fully loaded: load once from the source and retry exactly once
	if allowReload && !r.index.Loaded() {
		if err := r.index.Load(ctx); err != nil {
			r.logger.Warnw("Entity index load failed", "error", err)
		}
		return r.resolve(ctx, input, false)
	}

	candidates := r.scoreCandidates(input, normalized)
	if len(candidates) == 0 {
		return nil, r.notFound(input)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].confidence > candidates[j].confidence
	})

	top := candidates[0]
	if top.confidence < minResolveConfidence {
		names := make([]string, len(candidates))
		for i, c := range candidates {
			names[i] = c.entity.Name
		}
		return nil, &AmbiguousError{
			InputName:   input,
			Suggestions: capSuggestions(names),
			Candidates:  names,
		}
	}

	return &models.ResolutionResult{
		Entity:       top.entity,
		Confidence:   round2(top.confidence),
		MatchType:    top.matchType,
		MatchedInput: input,
	}, nil
}

// resolveAlias checks the alias table forward (shorthand → canonical) then
// in reverse (input already is a canonical alias target).
func (r *resolverService) resolveAlias(ctx context.Context, input string) *models.ResolutionResult {
	if target, ok := r.aliases.Forward(input); ok {
		if res := r.aliasTarget(ctx, input, target, 1.0, 0.95); res != nil {
			return res
		}
	}
	if canonical, ok := r.aliases.Reverse(input); ok {
		if res := r.aliasTarget(ctx, input, canonical, 0.95, 0.90); res != nil {
			return res
		}
	}
	return nil
}

func (r *resolverService) aliasTarget(ctx context.Context, input, target string, cachedConf, fetchedConf float64) *models.ResolutionResult {
	if e, ok := r.index.FindByName(target); ok {
		return aliasResult(e, cachedConf, input)
	}
	e, err := r.index.Fetch(ctx, target)
	if err != nil {
		r.logger.Warnw("Alias target fetch failed", "input", input, "target", target, "error", err)
		return nil
	}
	if e == nil {
		return nil
	}
	return aliasResult(*e, fetchedConf, input)
}

func aliasResult(e models.CanonicalEntity, confidence float64, input string) *models.ResolutionResult {
	return &models.ResolutionResult{
		Entity:       e,
		Confidence:   round2(confidence),
		MatchType:    models.MatchAlias,
		MatchedInput: input,
	}
}

func (r *resolverService) scoreCandidates(input, normalized string) []candidate {
	var out []candidate
	for _, e := range r.index.Snapshot() {
		if conf, mt, ok := scoreCandidate(input, normalized, e); ok {
			out = append(out, candidate{entity: e, confidence: conf, matchType: mt})
		}
	}
	return out
}

// scoreCandidate applies the match tiers in strict priority order; the first
// tier that matches decides the confidence.
func scoreCandidate(input, normalized string, e models.CanonicalEntity) (float64, models.MatchType, bool) {
	nameNorm := NormalizeInput(e.Name)
	shortNorm := NormalizeInput(e.ShortName)

	switch {
	case input == e.Name:
		return 1.0, models.MatchExact, true
	case e.ShortName != "" && input == e.ShortName:
		return 0.95, models.MatchShortened, true
	case normalized == nameNorm:
		return 0.95, models.MatchExact, true
	case shortNorm != "" && normalized == shortNorm:
		return 0.90, models.MatchShortened, true
	case containsEither(nameNorm, normalized):
		return 0.75, models.MatchPartial, true
	case containsEither(shortNorm, normalized):
		return 0.70, models.MatchPartial, true
	}

	sim := Jaccard(normalized, nameNorm)
	switch {
	case sim > fuzzyThreshold:
		return sim * 0.6, models.MatchPartial, true
	case sim > 0:
		return 0.3, models.MatchPartial, true
	}
	return 0, "", false
}

func containsEither(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}

func (r *resolverService) notFound(input string) error {
	return &NotFoundError{
		InputName:   input,
		Suggestions: r.aliases.Suggestions(input, maxSuggestions),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
