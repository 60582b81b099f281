// ABOUTME: PIR alignment codec for the structure-generation collaborator
// ABOUTME: Writes and reads the >P1; block format with sequence and structureX headers
package pir

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/harper/abmodel/internal/models"
)

const (
	lineWidth  = 75
	terminator = "*"
)

// Encode writes aln in PIR format
func Encode(w io.Writer, aln *models.Alignment) error {
	bw := bufio.NewWriter(w)
	for i, entry := range aln.Entries {
		header, err := headerLine(entry)
		if err != nil {
			return err
		}
		if i > 0 {
			fmt.Fprintln(bw)
		}
		fmt.Fprintf(bw, ">P1;%s\n%s\n", entry.Name, header)

		seq := entry.Sequence + terminator
		for len(seq) > lineWidth {
			fmt.Fprintln(bw, seq[:lineWidth])
			seq = seq[lineWidth:]
		}
		fmt.Fprintln(bw, seq)
	}
	return bw.Flush()
}

func headerLine(entry models.AlignmentEntry) (string, error) {
	if strings.Contains(entry.Name, ":") {
		return "", fmt.Errorf("entry name %q contains ':'", entry.Name)
	}
	switch entry.Kind {
	case models.KindSequence:
		return fmt.Sprintf("sequence:%s:::::::0.00: 0.00", entry.Name), nil
	case models.KindStructure:
		t := entry.Template
		if t == nil {
			return "", fmt.Errorf("structure entry %q has no template annotation", entry.Name)
		}
		if strings.Contains(t.PDBPath, ":") {
			return "", fmt.Errorf("template path %q contains ':'", t.PDBPath)
		}
		return fmt.Sprintf("structureX:%s:%s:%s:%s:%s:::-1.00:-1.00",
			t.PDBPath, t.BeginRes, t.BeginChain, t.EndRes, t.EndChain), nil
	default:
		return "", fmt.Errorf("entry %q has unknown kind %q", entry.Name, entry.Kind)
	}
}

// Decode reads a PIR document back into an Alignment
func Decode(r io.Reader) (*models.Alignment, error) {
	aln := &models.Alignment{}
	scanner := bufio.NewScanner(r)

	var (
		current *models.AlignmentEntry
		header  bool
		seq     strings.Builder
		lineNo  int
	)
	finish := func() error {
		if current == nil {
			return nil
		}
		s := seq.String()
		if !strings.HasSuffix(s, terminator) {
			return fmt.Errorf("entry %q is not terminated with '*'", current.Name)
		}
		current.Sequence = strings.TrimSuffix(s, terminator)
		aln.Entries = append(aln.Entries, *current)
		current = nil
		seq.Reset()
		return nil
	}

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
			continue
		case strings.HasPrefix(line, ">"):
			if err := finish(); err != nil {
				return nil, err
			}
			_, name, ok := strings.Cut(line[1:], ";")
			if !ok || name == "" {
				return nil, fmt.Errorf("line %d: malformed entry line %q", lineNo, line)
			}
			current = &models.AlignmentEntry{Name: name}
			header = true
		case current == nil:
			return nil, fmt.Errorf("line %d: sequence data before first entry", lineNo)
		case header:
			if err := parseHeader(current, line); err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			header = false
		default:
			seq.WriteString(line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading alignment: %w", err)
	}
	if err := finish(); err != nil {
		return nil, err
	}
	return aln, nil
}

func parseHeader(entry *models.AlignmentEntry, line string) error {
	fields := strings.Split(line, ":")
	if len(fields) < 6 {
		return fmt.Errorf("header %q has %d fields, want at least 6", line, len(fields))
	}

	switch fields[0] {
	case "sequence":
		entry.Kind = models.KindSequence
	case "structure", "structureX", "structureN", "structureM":
		entry.Kind = models.KindStructure
		entry.Template = &models.TemplateAnnotation{
			PDBPath:    fields[1],
			BeginRes:   fields[2],
			BeginChain: fields[3],
			EndRes:     fields[4],
			EndChain:   fields[5],
		}
	default:
		return fmt.Errorf("unknown entry type %q", fields[0])
	}
	return nil
}
