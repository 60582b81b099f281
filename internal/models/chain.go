// ABOUTME: Chain and record roles used to group alignment collaborator output
// ABOUTME: Composite keys look like heavyChain_TargetSeq
package models

import "strings"

// ChainRole names one polypeptide of the antibody
type ChainRole string

const (
	HeavyChain ChainRole = "heavyChain"
	LightChain ChainRole = "lightChain"
)

// RecordRole distinguishes the query sequence from its template counterpart
type RecordRole string

const (
	TargetSeq RecordRole = "TargetSeq"
	ModelSeq  RecordRole = "ModelSeq"
)

// ChainSequence is an amino-acid string for one chain
type ChainSequence struct {
	Role     ChainRole `json:"role"`
	Residues string    `json:"residues"`
	Species  Species   `json:"species"`
}

// SequenceRecord is a single named record returned by the alignment collaborator
type SequenceRecord struct {
	Name string `json:"name"`
	Seq  string `json:"seq"`
}

// AlignmentRecords groups collaborator records by chain role
type AlignmentRecords map[ChainRole][]SequenceRecord

// RecordKey builds the composite key for a chain/record pair
func RecordKey(chain ChainRole, record RecordRole) string {
	return string(chain) + "_" + string(record)
}

// Normalize flattens grouped records into composite-key form with uppercased residues
func (r AlignmentRecords) Normalize() map[string]string {
	seqs := make(map[string]string)
	for chain, records := range r {
		for _, rec := range records {
			seqs[string(chain)+"_"+rec.Name] = strings.ToUpper(rec.Seq)
		}
	}
	return seqs
}
