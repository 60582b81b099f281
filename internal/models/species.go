// ABOUTME: Species tag selecting the template structure for a run
// ABOUTME: Only human and mouse templates are supported
package models

import (
	"fmt"
	"strings"
)

// Species identifies the organism an antibody sequence was raised in
type Species string

const (
	SpeciesHuman Species = "human"
	SpeciesMouse Species = "mouse"
)

// DefaultSpecies is used when an input record does not name one
const DefaultSpecies = SpeciesHuman

// SupportedSpecies lists every species with a template structure
var SupportedSpecies = []Species{SpeciesHuman, SpeciesMouse}

// ParseSpecies converts a raw tag into a Species.
// An empty tag yields DefaultSpecies.
func ParseSpecies(raw string) (Species, error) {
	s := Species(strings.ToLower(strings.TrimSpace(raw)))
	if s == "" {
		return DefaultSpecies, nil
	}
	if !s.Valid() {
		return s, fmt.Errorf("invalid species %q, supported: %s", raw, supportedList())
	}
	return s, nil
}

// Valid reports whether s is one of SupportedSpecies
func (s Species) Valid() bool {
	for _, sup := range SupportedSpecies {
		if s == sup {
			return true
		}
	}
	return false
}

func (s Species) String() string {
	return string(s)
}

func supportedList() string {
	names := make([]string, len(SupportedSpecies))
	for i, s := range SupportedSpecies {
		names[i] = "'" + string(s) + "'"
	}
	return strings.Join(names, ", ")
}
