package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FlexFloat accepts both native JSON numbers and string-encoded numbers.
// Statistics providers are not consistent about quoting numeric values, and
// some send null or "" for fields they could not compute; those decode as
// Valid == false so the sanitize tier can tell a real zero from a missing one.
type FlexFloat struct {
	Value float64
	Valid bool
}

// Flex wraps a known value
func Flex(v float64) FlexFloat {
	return FlexFloat{Value: v, Valid: true}
}

func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	*f = FlexFloat{}

	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	// Fast path: native number
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*f = Flex(n)
		return nil
	}

	// Slow path: quoted number, coerce
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("flex float: %w", err)
		}
		s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
		if s == "" {
			return nil
		}
		if v, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(v) && !math.IsInf(v, 0) {
			*f = Flex(v)
		}
		return nil
	}

	// Booleans, objects and arrays are not numbers; treat as missing
	return nil
}

func (f FlexFloat) MarshalJSON() ([]byte, error) {
	if !f.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}

// Or returns the value, or fallback when missing
func (f FlexFloat) Or(fallback float64) float64 {
	if f.Valid {
		return f.Value
	}
	return fallback
}
