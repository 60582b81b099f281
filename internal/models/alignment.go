// ABOUTME: Annotated alignment object handed to the structure-generation collaborator
// ABOUTME: Pairs the target construct with a template structure and its extents
package models

import "fmt"

// Entry names used in every alignment built by the pipeline
const (
	TargetEntryName   = "TetraValent"
	TemplateEntryName = "Model-Antibody"
)

// EntryKind says whether an alignment entry carries structural metadata
type EntryKind string

const (
	KindSequence  EntryKind = "sequence"
	KindStructure EntryKind = "structure"
)

// TemplateAnnotation locates the region of a template structure covered by the construct
type TemplateAnnotation struct {
	PDBPath    string `json:"pdb_path"`
	BeginRes   string `json:"begin_res"`
	BeginChain string `json:"begin_chain"`
	EndRes     string `json:"end_res"`
	EndChain   string `json:"end_chain"`
}

// AlignmentEntry is one named sequence in an Alignment
type AlignmentEntry struct {
	Name     string              `json:"name"`
	Kind     EntryKind           `json:"kind"`
	Sequence string              `json:"sequence"`
	Template *TemplateAnnotation `json:"template,omitempty"`
}

// Alignment is an ordered set of annotated entries
type Alignment struct {
	Entries []AlignmentEntry `json:"entries"`
}

// Entry looks up an entry by name
func (a *Alignment) Entry(name string) (*AlignmentEntry, error) {
	for i := range a.Entries {
		if a.Entries[i].Name == name {
			return &a.Entries[i], nil
		}
	}
	return nil, fmt.Errorf("alignment has no entry %q", name)
}

// ModelArtifact points at the primary generated structure file
type ModelArtifact struct {
	Path string `json:"path"`
}
