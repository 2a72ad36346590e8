package logic

import "regexp"

// MaxIDLength is the longest identifier the statistics provider issues
const MaxIDLength = 10

var canonicalIDPattern = regexp.MustCompile(`^\d+$`)

// AssertValidID must run immediately before every stats or match-history
// call. It keeps display names from ever reaching a statistics endpoint.
func AssertValidID(id string) error {
	switch {
	case id == "":
		return &InvalidIDError{ID: id, Reason: "empty"}
	case len(id) > MaxIDLength:
		return &InvalidIDError{ID: id, Reason: "longer than 10 characters"}
	case !canonicalIDPattern.MatchString(id):
		return &InvalidIDError{ID: id, Reason: "not numeric"}
	}
	return nil
}
