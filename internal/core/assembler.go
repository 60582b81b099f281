// ABOUTME: Tetravalent sequence assembler
// ABOUTME: Pure transformation from aligned chains to target and template constructs
package core

import "github.com/harper/abmodel/internal/models"

// Assemble duplicates each chain into the symmetric heavy, heavy, light, light construct
func Assemble(res models.AlignmentResult) models.ConstructPair {
	return models.ConstructPair{
		Target: models.NewTetravalentConstruct(res.HeavyTarget, res.LightTarget),
		Model:  models.NewTetravalentConstruct(res.HeavyModel, res.LightModel),
	}
}
