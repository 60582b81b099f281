// ABOUTME: Chain sequence aligner wrapping the alignment collaborator
// ABOUTME: Normalizes grouped records into a typed AlignmentResult
package core

import (
	"context"
	"errors"

	"github.com/harper/abmodel/internal/models"
)

// MSA is the alignment collaborator contract
type MSA interface {
	Align(ctx context.Context, light, heavy string, species models.Species) (models.AlignmentRecords, error)
}

// ChainAligner aligns a light/heavy pair against the template germlines
type ChainAligner struct {
	msa MSA
}

// NewChainAligner creates a ChainAligner backed by the given collaborator
func NewChainAligner(msa MSA) *ChainAligner {
	return &ChainAligner{msa: msa}
}

// Align calls the collaborator once and returns the four aligned sequences
func (a *ChainAligner) Align(ctx context.Context, light, heavy string, species models.Species) (*models.AlignmentResult, error) {
	records, err := a.msa.Align(ctx, light, heavy, species)
	if err != nil {
		return nil, &AlignmentError{Err: err}
	}

	result, err := models.NewAlignmentResult(records.Normalize())
	if err != nil {
		var mk *models.MissingKeyError
		if errors.As(err, &mk) {
			return nil, &AlignmentError{Key: mk.Key, Err: err}
		}
		return nil, &AlignmentError{Err: err}
	}
	return result, nil
}
