// ABOUTME: Tests for ledger selection and run history export
// ABOUTME: Uses the SQLite backend on a temp file
package storage

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/harper/abmodel/internal/config"
	"github.com/harper/abmodel/internal/models"
)

func TestOpen_SQLite(t *testing.T) {
	cfg := &config.Config{Ledger: BackendSQLite, LedgerPath: filepath.Join(t.TempDir(), "runs.db")}

	ledger, err := Open(cfg)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer func() { _ = ledger.Close() }()

	run := models.NewRunRecord("in.json", "out.pdb", "b")
	if err := ledger.SaveRun(run); err != nil {
		t.Fatalf("SaveRun() error = %v", err)
	}
	got, err := ledger.GetRun(run.RunID)
	if err != nil || !got.IsPresent() {
		t.Errorf("GetRun() = %v, %v; want the saved run", got, err)
	}
}

func TestOpen_None(t *testing.T) {
	ledger, err := Open(&config.Config{Ledger: BackendNone})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if _, ok := ledger.(Nop); !ok {
		t.Errorf("Open(none) = %T, want Nop", ledger)
	}
	runs, _ := ledger.ListRuns(5)
	if len(runs) != 0 {
		t.Errorf("Nop.ListRuns() returned %d runs", len(runs))
	}
}

func TestOpen_Unknown(t *testing.T) {
	if _, err := Open(&config.Config{Ledger: "postgres"}); err == nil {
		t.Error("Open() should reject an unknown backend")
	}
}

func TestExport(t *testing.T) {
	ledger, err := Open(&config.Config{Ledger: BackendSQLite, LedgerPath: filepath.Join(t.TempDir(), "runs.db")})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer func() { _ = ledger.Close() }()

	ok := models.NewRunRecord("in/a.json", "out/a.pdb", "antibodies")
	ok.Species = models.SpeciesHuman
	for _, s := range []models.RunState{models.StateFetched, models.StateAligned, models.StateModeled, models.StatePublished, models.StateDone} {
		_ = ok.Advance(s)
	}
	_ = ledger.SaveRun(ok)

	bad := models.NewRunRecord("/tmp/b.json", "/tmp/b.pdb", "")
	bad.Fail("validation", "validation failed for species=\"dog\"")
	_ = ledger.SaveRun(bad)

	data, err := Export(ledger, 10)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if data.Tool != "abmodel" {
		t.Errorf("Tool = %v, want abmodel", data.Tool)
	}
	if len(data.Runs) != 2 {
		t.Fatalf("Runs = %d, want 2", len(data.Runs))
	}

	byID := map[string]ExportRun{}
	for _, r := range data.Runs {
		byID[r.RunID] = r
	}
	if got := byID[ok.RunID].Input; got != "s3://antibodies/in/a.json" {
		t.Errorf("Input = %v", got)
	}
	if got := byID[bad.RunID].Output; got != "/tmp/b.pdb" {
		t.Errorf("local Output = %v", got)
	}
	if byID[bad.RunID].ErrorCategory != "validation" {
		t.Errorf("ErrorCategory = %v, want validation", byID[bad.RunID].ErrorCategory)
	}

	var buf bytes.Buffer
	if err := data.WriteYAML(&buf); err != nil {
		t.Fatalf("WriteYAML() error = %v", err)
	}
	var decoded ExportData
	if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("exported YAML does not parse: %v", err)
	}
	if len(decoded.Runs) != 2 {
		t.Errorf("decoded runs = %d, want 2", len(decoded.Runs))
	}

	buf.Reset()
	if err := data.WriteMarkdown(&buf); err != nil {
		t.Fatalf("WriteMarkdown() error = %v", err)
	}
	if !strings.Contains(buf.String(), "| "+ok.RunID+" | done |") {
		t.Errorf("markdown missing done row:\n%s", buf.String())
	}
}

func TestWriteMarkdown_Empty(t *testing.T) {
	data, err := Export(Nop{}, 10)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	var buf bytes.Buffer
	_ = data.WriteMarkdown(&buf)
	if !strings.Contains(buf.String(), "No runs recorded.") {
		t.Errorf("empty export = %q", buf.String())
	}
}
