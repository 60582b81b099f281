// ABOUTME: Typed result of the per-chain alignment step
// ABOUTME: All four sequences must be present; absence is reported by key
package models

import "fmt"

// MissingKeyError reports a composite key absent from normalized alignment records
type MissingKeyError struct {
	Key string
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("missing key in sequence data: %s", e.Key)
}

// AlignmentResult holds the aligned target and template sequences for both chains
type AlignmentResult struct {
	HeavyTarget string `json:"heavyChain_TargetSeq"`
	HeavyModel  string `json:"heavyChain_ModelSeq"`
	LightTarget string `json:"lightChain_TargetSeq"`
	LightModel  string `json:"lightChain_ModelSeq"`
}

// NewAlignmentResult builds an AlignmentResult from normalized records.
// Keys are checked in heavy-target, heavy-model, light-target, light-model order.
func NewAlignmentResult(seqs map[string]string) (*AlignmentResult, error) {
	res := &AlignmentResult{}
	fields := []struct {
		chain  ChainRole
		record RecordRole
		dst    *string
	}{
		{HeavyChain, TargetSeq, &res.HeavyTarget},
		{HeavyChain, ModelSeq, &res.HeavyModel},
		{LightChain, TargetSeq, &res.LightTarget},
		{LightChain, ModelSeq, &res.LightModel},
	}

	for _, f := range fields {
		key := RecordKey(f.chain, f.record)
		seq, ok := seqs[key]
		if !ok {
			return nil, &MissingKeyError{Key: key}
		}
		*f.dst = seq
	}
	return res, nil
}
