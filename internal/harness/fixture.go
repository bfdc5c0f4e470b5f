package harness

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/roach88/termfixture/internal/ir"
	"github.com/roach88/termfixture/internal/scenario"
)

// TimeFormat is the layout of generated_at.
const TimeFormat = time.RFC3339

// Document is one assembled fixture document.
type Document struct {
	SourceVersion string
	GeneratedAt   time.Time
	Defaults      scenario.RenderOptions
	Cases         []Case
}

// Case is one scenario and its normalized captures.
type Case struct {
	Scenario scenario.Descriptor
	Expected Capture
}

// IR returns the case in document field order.
func (c Case) IR() ir.IRRecord {
	desc := c.Scenario.IR()
	out := make(ir.IRRecord, 0, len(desc)+1)
	for _, f := range desc {
		if f.Key == "notes" {
			out = append(out, ir.F("expected", c.Expected.IR()))
		}
		out = append(out, f)
	}
	return out
}

// IR returns the capture as an expected-output record.
func (c Capture) IR() ir.IRRecord {
	return ir.IRRecord{
		ir.F("plain", ir.IRString(c.Plain)),
		ir.F("ansi", ir.IRString(c.ANSI)),
	}
}

// IR returns the document in field order.
func (d *Document) IR() ir.IRRecord {
	cases := make(ir.IRArray, len(d.Cases))
	for i, c := range d.Cases {
		cases[i] = c.IR()
	}
	return ir.IRRecord{
		ir.F("source_version", ir.IRString(d.SourceVersion)),
		ir.F("generated_at", ir.IRString(d.GeneratedAt.UTC().Format(TimeFormat))),
		ir.F("defaults", d.Defaults.IR()),
		ir.F("cases", cases),
	}
}

// Marshal returns the canonical document bytes with a trailing newline.
func (d *Document) Marshal() ([]byte, error) {
	data, err := ir.MarshalCanonical(d.IR())
	if err != nil {
		return nil, &Error{Code: ErrCodeSerialization, Message: "encode document", Err: err}
	}
	return append(data, '\n'), nil
}

// WriteDocument writes doc to path atomically: the bytes go to a temporary
// file in the same directory which is then renamed over path.
func WriteDocument(path string, doc *Document) error {
	data, err := doc.Marshal()
	if err != nil {
		return err
	}
	if err := ValidateDocument(data); err != nil {
		return err
	}
	if err := writeAtomic(path, data); err != nil {
		return &Error{Code: ErrCodeOutputWrite, Message: path, Err: err}
	}
	return nil
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// ReadDocument loads a document written by WriteDocument.
func ReadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	return ParseDocument(data)
}

// ParseDocument decodes and validates document bytes.
func ParseDocument(data []byte) (*Document, error) {
	if err := ValidateDocument(data); err != nil {
		return nil, err
	}
	v, err := ir.Decode(data)
	if err != nil {
		return nil, &Error{Code: ErrCodeSerialization, Message: "decode document", Err: err}
	}
	root := v.(ir.IRObject)

	doc := &Document{SourceVersion: string(root["source_version"].(ir.IRString))}
	doc.GeneratedAt, err = time.Parse(TimeFormat, string(root["generated_at"].(ir.IRString)))
	if err != nil {
		return nil, &Error{Code: ErrCodeSerialization, Message: "generated_at", Err: err}
	}

	defaults := root["defaults"].(ir.IRObject)
	doc.Defaults = scenario.RenderOptions{
		Width:       int(defaults["width"].(ir.IRInt)),
		ColorSystem: scenario.ColorSystem(defaults["color_system"].(ir.IRString)),
	}
	if b, ok := defaults["force_terminal"].(ir.IRBool); ok {
		bv := bool(b)
		doc.Defaults.ForceTerminal = scenario.TristateOf(&bv)
	}

	for _, raw := range root["cases"].(ir.IRArray) {
		doc.Cases = append(doc.Cases, parseCase(raw.(ir.IRObject)))
	}
	return doc, nil
}

// parseCase reads a schema-validated case object.
func parseCase(obj ir.IRObject) Case {
	expected := obj["expected"].(ir.IRObject)
	c := Case{
		Scenario: scenario.Descriptor{
			ID:            string(obj["id"].(ir.IRString)),
			Kind:          scenario.Kind(obj["kind"].(ir.IRString)),
			CompareANSI:   bool(obj["compare_ansi"].(ir.IRBool)),
			RenderOptions: objectOrNil(obj["render_options"]),
			Env:           objectOrNil(obj["env"]),
			Theme:         objectOrNil(obj["theme"]),
			Input:         objectOrNil(obj["input"]),
		},
		Expected: Capture{
			Plain: string(expected["plain"].(ir.IRString)),
			ANSI:  string(expected["ansi"].(ir.IRString)),
		},
	}
	if s, ok := obj["notes"].(ir.IRString); ok {
		notes := string(s)
		c.Scenario.Notes = &notes
	}
	return c
}

func objectOrNil(v ir.IRValue) ir.IRObject {
	if o, ok := v.(ir.IRObject); ok {
		return o
	}
	return nil
}

// Mismatch is one difference between two documents.
type Mismatch struct {
	// CaseID is empty for document-level fields.
	CaseID string `json:"case_id,omitempty"`
	Field  string `json:"field"`
	Want   string `json:"want"`
	Got    string `json:"got"`
}

func (m Mismatch) String() string {
	if m.CaseID == "" {
		return fmt.Sprintf("%s: want %s, got %s", m.Field, m.Want, m.Got)
	}
	return fmt.Sprintf("%s: %s: want %s, got %s", m.CaseID, m.Field, m.Want, m.Got)
}

// Compare lists the differences between want and got. generated_at is
// informational and never compared. Cases are matched by position; an id
// difference at a position is reported once and the rest of that case is
// skipped.
func Compare(want, got *Document) []Mismatch {
	var out []Mismatch
	if want.SourceVersion != got.SourceVersion {
		out = append(out, Mismatch{Field: "source_version", Want: quote(want.SourceVersion), Got: quote(got.SourceVersion)})
	}
	if !ir.Equal(want.Defaults.IR(), got.Defaults.IR()) {
		out = append(out, Mismatch{Field: "defaults", Want: compact(want.Defaults.IR()), Got: compact(got.Defaults.IR())})
	}
	if len(want.Cases) != len(got.Cases) {
		out = append(out, Mismatch{Field: "cases", Want: fmt.Sprintf("%d cases", len(want.Cases)), Got: fmt.Sprintf("%d cases", len(got.Cases))})
	}

	for i := range min(len(want.Cases), len(got.Cases)) {
		w, g := want.Cases[i].IR(), got.Cases[i].IR()
		id := want.Cases[i].Scenario.ID
		if id != got.Cases[i].Scenario.ID {
			out = append(out, Mismatch{Field: fmt.Sprintf("cases[%d].id", i), Want: quote(id), Got: quote(got.Cases[i].Scenario.ID)})
			continue
		}
		for j, f := range w {
			if f.Key == "expected" {
				out = append(out, compareExpected(id, want.Cases[i].Expected, got.Cases[i].Expected)...)
				continue
			}
			if !ir.Equal(f.Value, g[j].Value) {
				out = append(out, Mismatch{CaseID: id, Field: f.Key, Want: compact(f.Value), Got: compact(g[j].Value)})
			}
		}
	}
	return out
}

func compareExpected(id string, want, got Capture) []Mismatch {
	var out []Mismatch
	if want.Plain != got.Plain {
		out = append(out, Mismatch{CaseID: id, Field: "expected.plain", Want: quote(want.Plain), Got: quote(got.Plain)})
	}
	if want.ANSI != got.ANSI {
		out = append(out, Mismatch{CaseID: id, Field: "expected.ansi", Want: quote(want.ANSI), Got: quote(got.ANSI)})
	}
	return out
}

func quote(s string) string {
	return fmt.Sprintf("%q", s)
}

func compact(v ir.IRValue) string {
	data, err := ir.MarshalCompact(v)
	if err != nil {
		return fmt.Sprintf("<%v>", err)
	}
	return string(data)
}
