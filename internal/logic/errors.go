package logic

import (
	"errors"
	"fmt"
	"strings"
)

// maxSuggestions caps the names carried by resolution errors
const maxSuggestions = 5

// InvalidIDError is a guard violation: the identifier is not a canonical
// numeric-string ID. Always fatal for the operation that raised it.
type InvalidIDError struct {
	ID     string
	Reason string
}

func (e *InvalidIDError) Error() string {
	return fmt.Sprintf("invalid entity id %q: %s", e.ID, e.Reason)
}

// NotFoundError means no entity matched the input at all
type NotFoundError struct {
	InputName   string
	Suggestions []string
}

func (e *NotFoundError) Error() string {
	if len(e.Suggestions) == 0 {
		return fmt.Sprintf("no team found for %q", e.InputName)
	}
	return fmt.Sprintf("no team found for %q (did you mean: %s)", e.InputName, strings.Join(e.Suggestions, ", "))
}

// AmbiguousError means candidates exist but none is confident enough
type AmbiguousError struct {
	InputName   string
	Suggestions []string
	Candidates  []string
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("ambiguous team name %q (candidates: %s)", e.InputName, strings.Join(e.Suggestions, ", "))
}

// IsResolutionError reports whether err is a NotFound or Ambiguous resolution failure
func IsResolutionError(err error) bool {
	var nf *NotFoundError
	var amb *AmbiguousError
	return errors.As(err, &nf) || errors.As(err, &amb)
}

func capSuggestions(names []string) []string {
	if len(names) > maxSuggestions {
		names = names[:maxSuggestions]
	}
	out := make([]string, len(names))
	copy(out, names)
	return out
}
