package scenario

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"

	"github.com/roach88/termfixture/internal/ir"
)

//go:embed catalog.yaml
var builtinCatalog []byte

//go:embed catalog.cue
var catalogSchema string

// Catalog is an ordered list of scenarios and their shared defaults.
type Catalog struct {
	Defaults  RenderOptions
	Scenarios []Descriptor
}

type catalogFile struct {
	Defaults defaultsFile `yaml:"defaults"`
	Cases    []caseFile   `yaml:"cases"`
}

type defaultsFile struct {
	Width         int    `yaml:"width"`
	ColorSystem   string `yaml:"color_system"`
	ForceTerminal *bool  `yaml:"force_terminal"`
}

type caseFile struct {
	ID            string         `yaml:"id"`
	Kind          string         `yaml:"kind"`
	CompareANSI   *bool          `yaml:"compare_ansi"`
	RenderOptions map[string]any `yaml:"render_options"`
	Env           map[string]any `yaml:"env"`
	Theme         map[string]any `yaml:"theme"`
	Input         map[string]any `yaml:"input"`
	Notes         *string        `yaml:"notes"`
}

// Default returns the built-in catalog.
func Default() (*Catalog, error) {
	return Load(builtinCatalog)
}

// LoadFile reads and loads a catalog file.
func LoadFile(p string) (*Catalog, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeInvalidCatalog, Message: fmt.Sprintf("reading %s", p), Err: err}
	}
	return Load(data)
}

// Load decodes, validates and converts a YAML catalog.
func Load(data []byte) (*Catalog, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &LoadError{Code: ErrCodeInvalidCatalog, Message: "parsing YAML", Err: err}
	}
	if err := validateSchema(raw); err != nil {
		return nil, err
	}

	var file catalogFile
	dec := yaml.NewDecoder(strings.NewReader(string(data)))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, &LoadError{Code: ErrCodeInvalidCatalog, Message: "decoding catalog", Err: err}
	}

	cat := &Catalog{
		Defaults: RenderOptions{
			Width:         file.Defaults.Width,
			ColorSystem:   ColorSystem(file.Defaults.ColorSystem),
			ForceTerminal: TristateOf(file.Defaults.ForceTerminal),
		},
		Scenarios: make([]Descriptor, 0, len(file.Cases)),
	}

	seen := make(map[string]bool, len(file.Cases))
	for _, c := range file.Cases {
		d, err := convertCase(c)
		if err != nil {
			return nil, err
		}
		if seen[d.ID] {
			return nil, &LoadError{Code: ErrCodeDuplicateID, ScenarioID: d.ID, Message: "scenario id appears more than once"}
		}
		seen[d.ID] = true
		cat.Scenarios = append(cat.Scenarios, d)
	}
	return cat, nil
}

// validateSchema checks the generic decoded catalog against #Catalog.
func validateSchema(raw any) error {
	ctx := cuecontext.New()
	schema := ctx.CompileString(catalogSchema, cue.Filename("catalog.cue"))
	if err := schema.Err(); err != nil {
		return &LoadError{Code: ErrCodeInvalidCatalog, Message: "compiling catalog schema", Err: err}
	}
	def := schema.LookupPath(cue.ParsePath("#Catalog"))

	value := ctx.Encode(raw)
	if err := value.Err(); err != nil {
		return &LoadError{Code: ErrCodeInvalidCatalog, Message: "encoding catalog", Err: err}
	}
	if err := def.Unify(value).Validate(cue.Concrete(true)); err != nil {
		return &LoadError{Code: ErrCodeInvalidCatalog, Message: err.Error(), Err: err}
	}
	return nil
}

func convertCase(c caseFile) (Descriptor, error) {
	if !norm.NFC.IsNormalString(c.ID) {
		return Descriptor{}, &LoadError{Code: ErrCodeInvalidID, ScenarioID: c.ID, Message: "id is not NFC-normalized"}
	}
	kind := Kind(c.Kind)
	if !kind.Valid() {
		return Descriptor{}, &LoadError{Code: ErrCodeUnknownKind, ScenarioID: c.ID, Message: fmt.Sprintf("unknown kind %q", c.Kind)}
	}

	d := Descriptor{
		ID:          c.ID,
		Kind:        kind,
		CompareANSI: true,
		Notes:       c.Notes,
	}
	if c.CompareANSI != nil {
		d.CompareANSI = *c.CompareANSI
	}

	var err error
	if d.Input, err = toObject(c.Input); err != nil {
		return Descriptor{}, caseError(c.ID, "input", err)
	}
	if d.Input == nil {
		d.Input = ir.IRObject{}
	}
	if d.RenderOptions, err = toObject(c.RenderOptions); err != nil {
		return Descriptor{}, caseError(c.ID, "render_options", err)
	}
	if d.Env, err = toObject(c.Env); err != nil {
		return Descriptor{}, caseError(c.ID, "env", err)
	}
	if d.Theme, err = toObject(c.Theme); err != nil {
		return Descriptor{}, caseError(c.ID, "theme", err)
	}

	// Surface typed decoding problems at load time rather than mid-run.
	if _, err := d.Overrides(); err != nil {
		return Descriptor{}, caseError(c.ID, "render_options", err)
	}
	if _, err := d.EnvOverlay(); err != nil {
		return Descriptor{}, caseError(c.ID, "env", err)
	}
	if _, err := d.ThemeSpec(); err != nil {
		return Descriptor{}, caseError(c.ID, "theme", err)
	}
	return d, nil
}

func toObject(m map[string]any) (ir.IRObject, error) {
	if m == nil {
		return nil, nil
	}
	v, err := ir.FromAny(m)
	if err != nil {
		return nil, err
	}
	obj, ok := v.(ir.IRObject)
	if !ok {
		return nil, errors.New("expected object")
	}
	return obj, nil
}

func caseError(id, field string, err error) error {
	return &LoadError{Code: ErrCodeInvalidCatalog, ScenarioID: id, Message: field + ": " + err.Error(), Err: err}
}

// Lookup returns the scenario with the given id.
func (c *Catalog) Lookup(id string) (Descriptor, bool) {
	for _, d := range c.Scenarios {
		if d.ID == id {
			return d, true
		}
	}
	return Descriptor{}, false
}

// Filter returns a catalog holding only the scenarios whose id matches the
// glob pattern (path.Match syntax, so "text/*" selects one family).
// Order and defaults are preserved.
func (c *Catalog) Filter(pattern string) (*Catalog, error) {
	if _, err := path.Match(pattern, ""); err != nil {
		return nil, fmt.Errorf("invalid filter %q: %w", pattern, err)
	}
	out := &Catalog{Defaults: c.Defaults}
	for _, d := range c.Scenarios {
		if ok, _ := path.Match(pattern, d.ID); ok {
			out.Scenarios = append(out.Scenarios, d)
		}
	}
	return out, nil
}
