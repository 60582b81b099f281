// ABOUTME: Input record consumed from object storage
// ABOUTME: Carries the light and heavy chain sequences plus an optional species
package models

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/samber/mo"
)

// InputRecord is the parsed input document for one pipeline run
type InputRecord struct {
	LightSequence string  `json:"light_sequence"`
	HeavySequence string  `json:"heavy_sequence"`
	Species       Species `json:"species"`
}

// MissingFieldError reports a required input field that was absent or blank
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("input must contain %q", e.Field)
}

type rawInput struct {
	LightSequence mo.Option[string] `json:"light_sequence"`
	HeavySequence mo.Option[string] `json:"heavy_sequence"`
	Species       mo.Option[string] `json:"species"`
}

// ParseInputRecord decodes and validates an input document.
// Species is left unvalidated so callers can report it in their own terms.
func ParseInputRecord(data []byte) (*InputRecord, error) {
	var raw rawInput
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decoding input record: %w", err)
	}

	light := strings.TrimSpace(raw.LightSequence.OrEmpty())
	if light == "" {
		return nil, &MissingFieldError{Field: "light_sequence"}
	}
	heavy := strings.TrimSpace(raw.HeavySequence.OrEmpty())
	if heavy == "" {
		return nil, &MissingFieldError{Field: "heavy_sequence"}
	}

	return &InputRecord{
		LightSequence: light,
		HeavySequence: heavy,
		Species:       Species(raw.Species.OrElse(string(DefaultSpecies))),
	}, nil
}

// Chains returns the record's sequences as ChainSequence values
func (r *InputRecord) Chains() (heavy, light ChainSequence) {
	heavy = ChainSequence{Role: HeavyChain, Residues: r.HeavySequence, Species: r.Species}
	light = ChainSequence{Role: LightChain, Residues: r.LightSequence, Species: r.Species}
	return heavy, light
}
