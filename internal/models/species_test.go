// ABOUTME: Tests for species parsing and validation
// ABOUTME: Verifies defaults, case folding, and rejection of unsupported species
package models

import (
	"strings"
	"testing"
)

func TestParseSpecies(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    Species
		wantErr bool
	}{
		{"empty defaults to human", "", SpeciesHuman, false},
		{"human", "human", SpeciesHuman, false},
		{"mouse", "mouse", SpeciesMouse, false},
		{"upper case mouse", "MOUSE", SpeciesMouse, false},
		{"padded human", "  human ", SpeciesHuman, false},
		{"dog", "dog", Species("dog"), true},
		{"rat", "rat", Species("rat"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSpecies(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseSpecies(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseSpecies(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestParseSpecies_ErrorListsSupported(t *testing.T) {
	_, err := ParseSpecies("dog")
	if err == nil {
		t.Fatal("expected error for dog")
	}
	for _, want := range []string{"dog", "'human'", "'mouse'"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q should contain %q", err.Error(), want)
		}
	}
}

func TestSpeciesValid(t *testing.T) {
	if !SpeciesHuman.Valid() || !SpeciesMouse.Valid() {
		t.Error("human and mouse should be valid")
	}
	if Species("").Valid() {
		t.Error("empty species should not be valid")
	}
}
