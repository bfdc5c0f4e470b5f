package build

import (
	"fmt"

	"github.com/roach88/termfixture/internal/ir"
	"github.com/roach88/termfixture/internal/scenario"
)

// fields reads typed values out of one input object. A null value is
// treated as absent.
type fields struct {
	kind   scenario.Kind
	prefix string
	in     ir.IRObject
}

func newFields(kind scenario.Kind, in ir.IRObject) fields {
	return fields{kind: kind, in: in}
}

// sub returns a reader over a nested object, reporting fields under path.
func (f fields) sub(path string, in ir.IRObject) fields {
	return fields{kind: f.kind, prefix: f.path(path), in: in}
}

func (f fields) path(name string) string {
	if f.prefix == "" {
		return name
	}
	return f.prefix + "." + name
}

func (f fields) lookup(name string) (ir.IRValue, bool) {
	v, ok := f.in[name]
	if !ok {
		return nil, false
	}
	if _, null := v.(ir.IRNull); null {
		return nil, false
	}
	return v, true
}

// has reports whether name is present, including an explicit null.
func (f fields) has(name string) bool {
	_, ok := f.in[name]
	return ok
}

func (f fields) missing(name string) error {
	return &FieldError{Kind: f.kind, Field: f.path(name), Message: "required field is missing", Err: ErrMissingField}
}

func (f fields) invalid(name, want string, v ir.IRValue) error {
	return &FieldError{
		Kind:    f.kind,
		Field:   f.path(name),
		Message: fmt.Sprintf("want %s, got %s", want, typeName(v)),
		Err:     ErrInvalidField,
	}
}

func (f fields) outOfRange(name, want string, got int) error {
	return &FieldError{
		Kind:    f.kind,
		Field:   f.path(name),
		Message: fmt.Sprintf("want %s, got %d", want, got),
		Err:     ErrInvalidField,
	}
}

func (f fields) requiredString(name string) (string, error) {
	v, ok := f.lookup(name)
	if !ok {
		return "", f.missing(name)
	}
	s, ok := v.(ir.IRString)
	if !ok {
		return "", f.invalid(name, "string", v)
	}
	return string(s), nil
}

func (f fields) str(name, def string) (string, error) {
	v, ok := f.lookup(name)
	if !ok {
		return def, nil
	}
	s, ok := v.(ir.IRString)
	if !ok {
		return "", f.invalid(name, "string", v)
	}
	return string(s), nil
}

func (f fields) requiredInt(name string) (int, error) {
	v, ok := f.lookup(name)
	if !ok {
		return 0, f.missing(name)
	}
	n, ok := v.(ir.IRInt)
	if !ok {
		return 0, f.invalid(name, "integer", v)
	}
	return int(n), nil
}

func (f fields) integer(name string, def int) (int, error) {
	v, ok := f.lookup(name)
	if !ok {
		return def, nil
	}
	n, ok := v.(ir.IRInt)
	if !ok {
		return 0, f.invalid(name, "integer", v)
	}
	return int(n), nil
}

func (f fields) boolean(name string, def bool) (bool, error) {
	v, ok := f.lookup(name)
	if !ok {
		return def, nil
	}
	b, ok := v.(ir.IRBool)
	if !ok {
		return false, f.invalid(name, "bool", v)
	}
	return bool(b), nil
}

func (f fields) array(name string) (ir.IRArray, bool, error) {
	v, ok := f.lookup(name)
	if !ok {
		return nil, false, nil
	}
	a, ok := v.(ir.IRArray)
	if !ok {
		return nil, false, f.invalid(name, "array", v)
	}
	return a, true, nil
}

func (f fields) strings(name string) ([]string, bool, error) {
	a, ok, err := f.array(name)
	if err != nil || !ok {
		return nil, ok, err
	}
	out := make([]string, len(a))
	for i, v := range a {
		s, ok := v.(ir.IRString)
		if !ok {
			return nil, false, f.invalid(fmt.Sprintf("%s[%d]", name, i), "string", v)
		}
		out[i] = string(s)
	}
	return out, true, nil
}

func (f fields) ints(name string) ([]int, bool, error) {
	a, ok, err := f.array(name)
	if err != nil || !ok {
		return nil, ok, err
	}
	out := make([]int, len(a))
	for i, v := range a {
		n, ok := v.(ir.IRInt)
		if !ok {
			return nil, false, f.invalid(fmt.Sprintf("%s[%d]", name, i), "integer", v)
		}
		out[i] = int(n)
	}
	return out, true, nil
}

func (f fields) object(name string) (ir.IRObject, bool, error) {
	v, ok := f.lookup(name)
	if !ok {
		return nil, false, nil
	}
	o, ok := v.(ir.IRObject)
	if !ok {
		return nil, false, f.invalid(name, "object", v)
	}
	return o, true, nil
}

func typeName(v ir.IRValue) string {
	switch v.(type) {
	case ir.IRNull:
		return "null"
	case ir.IRString:
		return "string"
	case ir.IRInt:
		return "integer"
	case ir.IRBool:
		return "bool"
	case ir.IRArray:
		return "array"
	case ir.IRObject, ir.IRRecord:
		return "object"
	}
	return fmt.Sprintf("%T", v)
}
