// ABOUTME: Test doubles for the pipeline collaborators
// ABOUTME: Stub aligner, stub modeller, in-memory object store, and recording ledger
package core

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/harper/abmodel/internal/models"
)

type stubMSA struct {
	records models.AlignmentRecords
	err     error
	calls   int
	species models.Species
}

func (s *stubMSA) Align(_ context.Context, _, _ string, species models.Species) (models.AlignmentRecords, error) {
	s.calls++
	s.species = species
	return s.records, s.err
}

func fullRecords() models.AlignmentRecords {
	return models.AlignmentRecords{
		models.HeavyChain: {
			{Name: "TargetSeq", Seq: "evqlvesgg"},
			{Name: "ModelSeq", Seq: "EVKLVESGG"},
		},
		models.LightChain: {
			{Name: "TargetSeq", Seq: "DIQMTQSP"},
			{Name: "ModelSeq", Seq: "DIVMTQSP"},
		},
	}
}

type stubModeller struct {
	// content is written to the first candidate; nil writes nothing
	content []byte
	err     error
	calls   int
	aln     *models.Alignment
	target  string
	prefix  string
}

func (s *stubModeller) Generate(_ context.Context, aln *models.Alignment, target string, _ []string, outputPrefix string) error {
	s.calls++
	s.aln = aln
	s.target = target
	s.prefix = outputPrefix
	if s.err != nil {
		return s.err
	}
	if s.content == nil {
		return nil
	}
	return os.WriteFile(FirstCandidatePath(outputPrefix), s.content, 0644)
}

type memStore struct {
	objects  map[string][]byte
	fetchErr error
	putErr   error
}

func newMemStore() *memStore {
	return &memStore{objects: make(map[string][]byte)}
}

func (m *memStore) Fetch(_ context.Context, bucket, key, localPath string) error {
	if m.fetchErr != nil {
		return m.fetchErr
	}
	data, ok := m.objects[bucket+"/"+key]
	if !ok {
		return fmt.Errorf("no such key: %s", key)
	}
	return os.WriteFile(localPath, data, 0644)
}

func (m *memStore) Put(_ context.Context, localPath, bucket, key string) error {
	if m.putErr != nil {
		return m.putErr
	}
	data, err := os.ReadFile(localPath)
	if err != nil {
		return err
	}
	m.objects[bucket+"/"+key] = data
	return nil
}

type recordingLedger struct {
	mu     sync.Mutex
	states []models.RunState
	last   models.RunRecord
	err    error
}

func (l *recordingLedger) SaveRun(run *models.RunRecord) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.states = append(l.states, run.State)
	l.last = *run
	return l.err
}

var errCollaborator = errors.New("collaborator exploded")
