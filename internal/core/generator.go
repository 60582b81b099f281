// ABOUTME: Structure model generator adapter
// ABOUTME: Drives the generation collaborator and checks the first candidate exists
package core

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/harper/abmodel/internal/models"
)

// Output naming used by the generation collaborator
const (
	OutputPrefixName  = "model"
	StructureFileExt  = ".pdb"
	FirstCandidateTag = "_1"
)

// Modeller is the structure-generation collaborator contract. It writes
// numbered candidates named outputPrefix_N.pdb.
type Modeller interface {
	Generate(ctx context.Context, aln *models.Alignment, target string, templates []string, outputPrefix string) error
}

// ModelGenerator adapts a Modeller to the pipeline
type ModelGenerator struct {
	modeller Modeller
}

// NewModelGenerator creates a generator backed by the given collaborator
func NewModelGenerator(modeller Modeller) *ModelGenerator {
	return &ModelGenerator{modeller: modeller}
}

// FirstCandidatePath returns the canonical first candidate for an output prefix
func FirstCandidatePath(outputPrefix string) string {
	return outputPrefix + FirstCandidateTag + StructureFileExt
}

// Generate builds models into workDir and returns the first candidate
func (g *ModelGenerator) Generate(ctx context.Context, aln *models.Alignment, workDir string) (models.ModelArtifact, error) {
	prefix := filepath.Join(workDir, OutputPrefixName)
	expected := FirstCandidatePath(prefix)

	err := g.modeller.Generate(ctx, aln, models.TargetEntryName, []string{models.TemplateEntryName}, prefix)
	if err != nil {
		return models.ModelArtifact{}, &ModelGenerationError{Path: expected, Err: err}
	}

	info, err := os.Stat(expected)
	if err != nil {
		if os.IsNotExist(err) {
			return models.ModelArtifact{}, &ModelGenerationError{Path: expected}
		}
		return models.ModelArtifact{}, &ModelGenerationError{Path: expected, Err: err}
	}
	if info.IsDir() {
		return models.ModelArtifact{}, &ModelGenerationError{Path: expected, Err: fmt.Errorf("%s is a directory", expected)}
	}

	return models.ModelArtifact{Path: expected}, nil
}
