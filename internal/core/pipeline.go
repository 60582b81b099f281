// ABOUTME: Pipeline orchestrator sequencing fetch, align, assemble, map, generate, and publish
// ABOUTME: Owns the run-scoped working directory and classifies every stage failure
package core

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/harper/abmodel/internal/models"
	"github.com/harper/abmodel/internal/objectstore"
)

// InputFileName is the local name of the fetched input record
const InputFileName = "sequence.json"

// ObjectStore moves files between object storage and the local filesystem
type ObjectStore interface {
	Fetch(ctx context.Context, bucket, key, localPath string) error
	Put(ctx context.Context, localPath, bucket, key string) error
}

// RunLedger records run progress. Ledger failures never fail a run.
type RunLedger interface {
	SaveRun(run *models.RunRecord) error
}

// RunRequest names the input object, the output object, and their bucket
type RunRequest struct {
	InputKey  string
	OutputKey string
	Bucket    string
}

// RunResult describes a finished run
type RunResult struct {
	Run       *models.RunRecord
	OutputURI string
}

// Pipeline runs one input record through every stage
type Pipeline struct {
	aligner   *ChainAligner
	mapper    *TemplateMapper
	generator *ModelGenerator
	store     ObjectStore
	ledger    RunLedger
	workRoot  string
	logger    *log.Logger
}

// NewPipeline wires the stages together. templates maps species to template
// structure files; workRoot is where run-scoped working directories are created.
func NewPipeline(msa MSA, modeller Modeller, store ObjectStore, templates map[models.Species]string, workRoot string) *Pipeline {
	return &Pipeline{
		aligner:   NewChainAligner(msa),
		mapper:    NewTemplateMapper(templates),
		generator: NewModelGenerator(modeller),
		store:     store,
		workRoot:  workRoot,
		logger:    log.Default(),
	}
}

// SetLedger sets the run ledger (nil disables recording)
func (p *Pipeline) SetLedger(ledger RunLedger) {
	p.ledger = ledger
}

// SetLogger sets the logger used for stage progress
func (p *Pipeline) SetLogger(logger *log.Logger) {
	p.logger = logger
}

// Run fetches the input record from object storage, models it, and stores the
// first candidate at the output key
func (p *Pipeline) Run(ctx context.Context, req RunRequest) (*RunResult, error) {
	return p.execute(ctx, req, p.store, true)
}

// RunLocal runs the same stages on a local input file and copies the model to outputPath
func (p *Pipeline) RunLocal(ctx context.Context, inputPath, outputPath string) (*RunResult, error) {
	req := RunRequest{InputKey: inputPath, OutputKey: outputPath}
	return p.execute(ctx, req, objectstore.Files{}, false)
}

// Prepare parses an input document and builds the annotated alignment without
// generating a model
func (p *Pipeline) Prepare(ctx context.Context, data []byte) (*models.Alignment, error) {
	record, err := parseInput(data)
	if err != nil {
		return nil, err
	}
	heavy, light := record.Chains()
	aligned, err := p.aligner.Align(ctx, light.Residues, heavy.Residues, record.Species)
	if err != nil {
		return nil, err
	}
	return p.mapper.Map(Assemble(*aligned), record.Species)
}

func (p *Pipeline) execute(ctx context.Context, req RunRequest, store ObjectStore, requireBucket bool) (*RunResult, error) {
	run := models.NewRunRecord(req.InputKey, req.OutputKey, req.Bucket)
	logger := p.logger.With("run_id", run.RunID)
	p.record(run, logger)

	err := p.stages(ctx, req, store, requireBucket, run, logger)
	if err != nil {
		category := CategoryOf(err)
		run.Fail(string(category), err.Error())
		p.record(run, logger)
		logger.Error("Pipeline failed", "category", category, "state", run.State, "err", err)
		return &RunResult{Run: run}, err
	}

	uri := ObjectURI(req.Bucket, req.OutputKey)
	logger.Info("Pipeline complete", "output", uri, "duration", run.Duration())
	return &RunResult{Run: run, OutputURI: uri}, nil
}

// stages runs every state transition. The working directory is removed before it returns.
func (p *Pipeline) stages(ctx context.Context, req RunRequest, store ObjectStore, requireBucket bool, run *models.RunRecord, logger *log.Logger) error {
	if err := validateRequest(req, requireBucket); err != nil {
		return err
	}

	workDir, release, err := p.acquireWorkDir(logger)
	if err != nil {
		return err
	}
	defer release()

	// Idle -> Fetched
	inputPath := filepath.Join(workDir, InputFileName)
	logger.Info("Downloading input", "from", ObjectURI(req.Bucket, req.InputKey), "to", inputPath)
	if err := store.Fetch(ctx, req.Bucket, req.InputKey, inputPath); err != nil {
		return &TransferError{Op: "fetch", Bucket: req.Bucket, Key: req.InputKey, Err: err}
	}
	if err := p.advance(run, models.StateFetched, logger); err != nil {
		return err
	}

	data, err := os.ReadFile(inputPath)
	if err != nil {
		return &TransferError{Op: "fetch", Bucket: req.Bucket, Key: req.InputKey, Err: err}
	}
	record, err := parseInput(data)
	if err != nil {
		return err
	}
	run.Species = record.Species
	p.record(run, logger)

	// Fetched -> Aligned
	heavy, light := record.Chains()
	aligned, err := p.aligner.Align(ctx, light.Residues, heavy.Residues, record.Species)
	if err != nil {
		return err
	}
	if err := p.advance(run, models.StateAligned, logger); err != nil {
		return err
	}

	// Aligned -> Modeled
	pair := Assemble(*aligned)
	aln, err := p.mapper.Map(pair, record.Species)
	if err != nil {
		return err
	}
	artifact, err := p.generator.Generate(ctx, aln, workDir)
	if err != nil {
		return err
	}
	logger.Info("Model generated", "path", artifact.Path)
	if err := p.advance(run, models.StateModeled, logger); err != nil {
		return err
	}

	// Modeled -> Published
	logger.Info("Uploading model", "from", artifact.Path, "to", ObjectURI(req.Bucket, req.OutputKey))
	if err := store.Put(ctx, artifact.Path, req.Bucket, req.OutputKey); err != nil {
		return &TransferError{Op: "store", Bucket: req.Bucket, Key: req.OutputKey, Err: err}
	}
	if err := p.advance(run, models.StatePublished, logger); err != nil {
		return err
	}

	return p.advance(run, models.StateDone, logger)
}

// acquireWorkDir creates the run-scoped working directory as an absolute
// path. The returned release func removes it and must be deferred by the caller.
func (p *Pipeline) acquireWorkDir(logger *log.Logger) (string, func(), error) {
	root := p.workRoot
	if root == "" {
		root = os.TempDir()
	}
	root, err := filepath.Abs(root)
	if err != nil {
		return "", nil, fmt.Errorf("resolving working directory root: %w", err)
	}

	dir, err := os.MkdirTemp(root, "abmodel-run-")
	if err != nil {
		return "", nil, fmt.Errorf("creating working directory: %w", err)
	}
	logger.Debug("Working directory created", "path", dir)

	release := func() {
		if err := os.RemoveAll(dir); err != nil {
			logger.Warn("Failed to remove working directory", "path", dir, "err", err)
			return
		}
		logger.Debug("Working directory removed", "path", dir)
	}
	return dir, release, nil
}

func (p *Pipeline) advance(run *models.RunRecord, to models.RunState, logger *log.Logger) error {
	if err := run.Advance(to); err != nil {
		return err
	}
	logger.Info("Stage complete", "state", to)
	p.record(run, logger)
	return nil
}

func (p *Pipeline) record(run *models.RunRecord, logger *log.Logger) {
	if p.ledger == nil {
		return
	}
	if err := p.ledger.SaveRun(run); err != nil {
		logger.Warn("Failed to record run", "state", run.State, "err", err)
	}
}

func validateRequest(req RunRequest, requireBucket bool) error {
	fields := []struct {
		name, value string
		required    bool
	}{
		{"input_key", req.InputKey, true},
		{"output_key", req.OutputKey, true},
		{"bucket", req.Bucket, requireBucket},
	}
	for _, f := range fields {
		if f.required && f.value == "" {
			return &ValidationError{Field: f.name, Err: errors.New("must be provided")}
		}
	}
	return nil
}

// parseInput decodes the input record and rejects unsupported species before any
// collaborator is called
func parseInput(data []byte) (*models.InputRecord, error) {
	record, err := models.ParseInputRecord(data)
	if err != nil {
		var mf *models.MissingFieldError
		if errors.As(err, &mf) {
			return nil, &ValidationError{Field: mf.Field, Err: err}
		}
		return nil, &ValidationError{Field: "input", Err: err}
	}

	species, err := models.ParseSpecies(string(record.Species))
	if err != nil {
		return nil, &ValidationError{Field: "species", Value: string(record.Species), Err: err}
	}
	record.Species = species
	return record, nil
}
