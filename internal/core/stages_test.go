// ABOUTME: Tests for the aligner, assembler, mapper, and generator stages
// ABOUTME: Each stage is exercised in isolation against stub collaborators
package core

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/harper/abmodel/internal/models"
)

func TestChainAligner_Align(t *testing.T) {
	msa := &stubMSA{records: fullRecords()}
	res, err := NewChainAligner(msa).Align(context.Background(), "DIQ", "EVQ", models.SpeciesMouse)
	if err != nil {
		t.Fatalf("Align() error = %v", err)
	}

	if res.HeavyTarget != "EVQLVESGG" {
		t.Errorf("HeavyTarget = %q, want uppercased EVQLVESGG", res.HeavyTarget)
	}
	if res.LightModel != "DIVMTQSP" {
		t.Errorf("LightModel = %q, want DIVMTQSP", res.LightModel)
	}
	if msa.calls != 1 {
		t.Errorf("collaborator calls = %d, want 1", msa.calls)
	}
	if msa.species != models.SpeciesMouse {
		t.Errorf("species = %q, want mouse", msa.species)
	}
}

func TestChainAligner_MissingKey(t *testing.T) {
	records := fullRecords()
	records[models.LightChain] = records[models.LightChain][:1] // drop ModelSeq

	_, err := NewChainAligner(&stubMSA{records: records}).Align(context.Background(), "L", "H", models.SpeciesHuman)

	var ae *AlignmentError
	if !errors.As(err, &ae) {
		t.Fatalf("Align() error = %v, want AlignmentError", err)
	}
	if ae.Key != "lightChain_ModelSeq" {
		t.Errorf("Key = %q, want lightChain_ModelSeq", ae.Key)
	}
	if !strings.Contains(err.Error(), "lightChain_ModelSeq") {
		t.Errorf("message %q should name the missing key", err.Error())
	}
}

func TestChainAligner_CollaboratorError(t *testing.T) {
	_, err := NewChainAligner(&stubMSA{err: errCollaborator}).Align(context.Background(), "L", "H", models.SpeciesHuman)
	if CategoryOf(err) != CategoryAlignment {
		t.Errorf("category = %q, want alignment", CategoryOf(err))
	}
	if !errors.Is(err, errCollaborator) {
		t.Error("collaborator error should be wrapped")
	}
}

func TestAssemble(t *testing.T) {
	res := models.AlignmentResult{
		HeavyTarget: "HT", HeavyModel: "HM",
		LightTarget: "LT", LightModel: "LM",
	}
	pair := Assemble(res)

	if got := pair.Target.String(); got != "HT/HT/LT/LT" {
		t.Errorf("Target = %q, want HT/HT/LT/LT", got)
	}
	if got := pair.Model.String(); got != "HM/HM/LM/LM" {
		t.Errorf("Model = %q, want HM/HM/LM/LM", got)
	}

	for _, c := range []models.TetravalentConstruct{pair.Target, pair.Model} {
		if n := strings.Count(c.String(), models.ConstructSeparator); n != 3 {
			t.Errorf("%q has %d separators, want 3", c, n)
		}
		segs := c.Segments()
		if segs[0] != segs[1] || segs[2] != segs[3] {
			t.Errorf("segments %v are not heavy, heavy, light, light", segs)
		}
	}
}

func TestTemplateMapper_Map(t *testing.T) {
	mapper := NewTemplateMapper(map[models.Species]string{
		models.SpeciesHuman: "/t/human.pdb",
		models.SpeciesMouse: "/t/mouse.pdb",
	})
	pair := models.ConstructPair{
		Target: models.NewTetravalentConstruct("H", "L"),
		Model:  models.NewTetravalentConstruct("h", "l"),
	}

	aln, err := mapper.Map(pair, models.SpeciesMouse)
	if err != nil {
		t.Fatalf("Map() error = %v", err)
	}
	if len(aln.Entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(aln.Entries))
	}

	target, err := aln.Entry(models.TargetEntryName)
	if err != nil {
		t.Fatal(err)
	}
	if target.Kind != models.KindSequence || target.Template != nil {
		t.Errorf("target entry should be sequence-only, got %+v", target)
	}
	if target.Sequence != "H/H/L/L" {
		t.Errorf("target sequence = %q", target.Sequence)
	}

	tmpl, err := aln.Entry(models.TemplateEntryName)
	if err != nil {
		t.Fatal(err)
	}
	want := models.TemplateAnnotation{PDBPath: "/t/mouse.pdb", BeginRes: "1", BeginChain: "B", EndRes: "218", EndChain: "C"}
	if tmpl.Template == nil || *tmpl.Template != want {
		t.Errorf("template annotation = %+v, want %+v", tmpl.Template, want)
	}
	if tmpl.Sequence != "h/h/l/l" {
		t.Errorf("template sequence = %q", tmpl.Sequence)
	}
}

func TestTemplateMapper_Rejects(t *testing.T) {
	mapper := NewTemplateMapper(map[models.Species]string{models.SpeciesHuman: "/t/human.pdb"})
	pair := models.ConstructPair{}

	tests := []struct {
		name    string
		species models.Species
	}{
		{"unsupported species", "dog"},
		{"no template configured", models.SpeciesMouse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := mapper.Map(pair, tt.species)
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("Map() error = %v, want ValidationError", err)
			}
			if ve.Field != "species" {
				t.Errorf("Field = %q, want species", ve.Field)
			}
		})
	}
}

func TestModelGenerator_Generate(t *testing.T) {
	workDir := t.TempDir()
	modeller := &stubModeller{content: []byte("ATOM\n")}

	artifact, err := NewModelGenerator(modeller).Generate(context.Background(), &models.Alignment{}, workDir)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	want := filepath.Join(workDir, "model_1.pdb")
	if artifact.Path != want {
		t.Errorf("Path = %q, want %q", artifact.Path, want)
	}
	if modeller.target != models.TargetEntryName {
		t.Errorf("target = %q, want %q", modeller.target, models.TargetEntryName)
	}
	if modeller.prefix != filepath.Join(workDir, "model") {
		t.Errorf("prefix = %q", modeller.prefix)
	}
}

func TestModelGenerator_OnlyFirstCandidateCounts(t *testing.T) {
	workDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(workDir, "model_2.pdb"), []byte("ATOM\n"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := NewModelGenerator(&stubModeller{}).Generate(context.Background(), &models.Alignment{}, workDir)

	var me *ModelGenerationError
	if !errors.As(err, &me) {
		t.Fatalf("Generate() error = %v, want ModelGenerationError", err)
	}
	if !strings.HasSuffix(me.Path, "model_1.pdb") {
		t.Errorf("Path = %q, want the first candidate", me.Path)
	}
	if !strings.Contains(err.Error(), "model file not generated at") {
		t.Errorf("message = %q", err.Error())
	}
}

func TestModelGenerator_CollaboratorError(t *testing.T) {
	_, err := NewModelGenerator(&stubModeller{err: errCollaborator}).Generate(context.Background(), &models.Alignment{}, t.TempDir())
	if CategoryOf(err) != CategoryModelGeneration {
		t.Errorf("category = %q, want model_generation", CategoryOf(err))
	}
}

func TestCategoryOf(t *testing.T) {
	tests := []struct {
		err  error
		want Category
	}{
		{nil, CategoryNone},
		{&ValidationError{Field: "species"}, CategoryValidation},
		{&AlignmentError{Key: "k"}, CategoryAlignment},
		{&ModelGenerationError{Path: "p"}, CategoryModelGeneration},
		{&TransferError{Op: "fetch"}, CategoryTransfer},
		{errors.New("boom"), CategoryInternal},
	}

	for _, tt := range tests {
		if got := CategoryOf(tt.err); got != tt.want {
			t.Errorf("CategoryOf(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestObjectURI(t *testing.T) {
	if got := ObjectURI("b", "in/seq.json"); got != "s3://b/in/seq.json" {
		t.Errorf("ObjectURI = %q", got)
	}
	if got := ObjectURI("", "/tmp/seq.json"); got != "/tmp/seq.json" {
		t.Errorf("ObjectURI without bucket = %q", got)
	}
}
