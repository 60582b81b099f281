// ABOUTME: Template annotation mapper
// ABOUTME: Builds the annotated alignment pairing the target construct with a template structure
package core

import (
	"fmt"

	"github.com/harper/abmodel/internal/models"
)

// Template extents are the same for every species; only the file differs.
const (
	TemplateBeginRes   = "1"
	TemplateBeginChain = "B"
	TemplateEndRes     = "218"
	TemplateEndChain   = "C"
)

// TemplateMapper resolves species to template structure files
type TemplateMapper struct {
	templates map[models.Species]string
}

// NewTemplateMapper creates a mapper over a species to template path table
func NewTemplateMapper(templates map[models.Species]string) *TemplateMapper {
	return &TemplateMapper{templates: templates}
}

// Map builds the two-entry alignment for a construct pair
func (m *TemplateMapper) Map(pair models.ConstructPair, species models.Species) (*models.Alignment, error) {
	if !species.Valid() {
		return nil, &ValidationError{
			Field: "species",
			Value: string(species),
			Err:   fmt.Errorf("supported: %v", models.SupportedSpecies),
		}
	}

	pdb, ok := m.templates[species]
	if !ok || pdb == "" {
		return nil, &ValidationError{
			Field: "species",
			Value: string(species),
			Err:   fmt.Errorf("no template structure configured"),
		}
	}

	return &models.Alignment{
		Entries: []models.AlignmentEntry{
			{
				Name:     models.TargetEntryName,
				Kind:     models.KindSequence,
				Sequence: pair.Target.String(),
			},
			{
				Name:     models.TemplateEntryName,
				Kind:     models.KindStructure,
				Sequence: pair.Model.String(),
				Template: &models.TemplateAnnotation{
					PDBPath:    pdb,
					BeginRes:   TemplateBeginRes,
					BeginChain: TemplateBeginChain,
					EndRes:     TemplateEndRes,
					EndChain:   TemplateEndChain,
				},
			},
		},
	}, nil
}
