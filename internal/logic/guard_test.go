package logic

import (
	"errors"
	"testing"
)

func TestAssertValidID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{"numeric", "47351", false},
		{"single digit", "7", false},
		{"max length", "1234567890", false},
		{"empty", "", true},
		{"display name", "Cloud9", true},
		{"too long", "12345678901", true},
		{"negative", "-12", true},
		{"decimal", "12.5", true},
		{"whitespace", " 12", true},
		{"trailing newline", "12\n", true},
		{"unicode digits", "١٢٣", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := AssertValidID(tt.id)
			if (err != nil) != tt.wantErr {
				t.Fatalf("AssertValidID(%q) error = %v, wantErr %v", tt.id, err, tt.wantErr)
			}
			if err != nil {
				var invalid *InvalidIDError
				if !errors.As(err, &invalid) {
					t.Errorf("expected *InvalidIDError, got %T", err)
				}
			}
		})
	}
}
