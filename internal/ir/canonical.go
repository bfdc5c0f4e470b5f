package ir

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// indentUnit is the per-level indentation of canonical documents.
const indentUnit = "  "

// MarshalCanonical produces the canonical, human-diffable JSON form of v.
// CRITICAL: this is the ONLY serialization used for fixture documents and
// for the capture digests recorded in the run ledger.
//
// Differences from json.MarshalIndent:
//  1. IRObject keys sorted by UTF-16 code units (RFC 8785), IRRecord keys kept in order
//  2. No HTML escaping (< > & are NOT escaped)
//  3. U+2028 and U+2029 are written literally
//  4. No floats (returns error)
//  5. Strings are NOT Unicode-normalized: captures are compared byte-for-byte
//
// The output has no trailing newline; writers append one.
func MarshalCanonical(v IRValue) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeCanonical(&buf, v, 0); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalCompact produces the same encoding as MarshalCanonical without
// whitespace. Used for digests and single-line log output.
func MarshalCompact(v IRValue) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeCanonical(&buf, v, -1); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// writeCanonical writes v at the given depth. A negative depth disables
// indentation entirely.
func writeCanonical(buf *bytes.Buffer, v IRValue, depth int) error {
	switch val := v.(type) {
	case nil, IRNull:
		buf.WriteString("null")
	case IRString:
		s, err := marshalCanonicalString(string(val))
		if err != nil {
			return err
		}
		buf.Write(s)
	case IRInt:
		fmt.Fprintf(buf, "%d", int64(val))
	case IRBool:
		if val {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case IRArray:
		if len(val) == 0 {
			buf.WriteString("[]")
			return nil
		}
		buf.WriteByte('[')
		for i, elem := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			newline(buf, depth+1)
			if err := writeCanonical(buf, elem, next(depth)); err != nil {
				return fmt.Errorf("array[%d]: %w", i, err)
			}
		}
		newline(buf, depth)
		buf.WriteByte(']')
	case IRObject:
		keys := val.SortedKeys()
		fields := make(IRRecord, len(keys))
		for i, k := range keys {
			fields[i] = IRField{Key: k, Value: val[k]}
		}
		return writeFields(buf, fields, depth)
	case IRRecord:
		return writeFields(buf, val, depth)
	default:
		return fmt.Errorf("unsupported type for canonical JSON: %T", v)
	}
	return nil
}

func writeFields(buf *bytes.Buffer, fields IRRecord, depth int) error {
	if len(fields) == 0 {
		buf.WriteString("{}")
		return nil
	}
	buf.WriteByte('{')
	for i, f := range fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		newline(buf, depth+1)
		keyBytes, err := marshalCanonicalString(f.Key)
		if err != nil {
			return fmt.Errorf("key %q: %w", f.Key, err)
		}
		buf.Write(keyBytes)
		buf.WriteByte(':')
		if depth >= 0 {
			buf.WriteByte(' ')
		}
		if err := writeCanonical(buf, f.Value, next(depth)); err != nil {
			return fmt.Errorf("value for key %q: %w", f.Key, err)
		}
	}
	newline(buf, depth)
	buf.WriteByte('}')
	return nil
}

func newline(buf *bytes.Buffer, depth int) {
	if depth < 0 {
		return
	}
	buf.WriteByte('\n')
	buf.WriteString(strings.Repeat(indentUnit, depth))
}

func next(depth int) int {
	if depth < 0 {
		return depth
	}
	return depth + 1
}

// marshalCanonicalString produces a JSON string literal.
// RFC 8785 string rules:
// - No HTML escaping (<, >, & are NOT escaped)
// - U+2028 (LINE SEPARATOR) and U+2029 (PARAGRAPH SEPARATOR) are NOT escaped
// - Only control characters (U+0000-U+001F), backslash, and quote are escaped
func marshalCanonicalString(s string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false) // CRITICAL: <, >, & must NOT be escaped
	if err := enc.Encode(s); err != nil {
		return nil, err
	}

	// json.Encoder adds trailing newline, remove it
	result := bytes.TrimSuffix(buf.Bytes(), []byte{'\n'})

	return unescapeU2028U2029(result), nil
}

// unescapeU2028U2029 converts \u2028 and \u2029 escape sequences to literal
// characters, but preserves \\u2028/\\u2029 (escaped backslash followed by
// the text u2028/u2029).
func unescapeU2028U2029(data []byte) []byte {
	if !bytes.Contains(data, []byte(`\u202`)) {
		return data
	}

	result := make([]byte, 0, len(data))
	for i := 0; i < len(data); i++ {
		if data[i] != '\\' {
			result = append(result, data[i])
			continue
		}
		// An escape: look at what it escapes.
		if i+5 < len(data) && string(data[i+1:i+5]) == "u202" && (data[i+5] == '8' || data[i+5] == '9') {
			if data[i+5] == '8' {
				result = append(result, "\u2028"...)
			} else {
				result = append(result, "\u2029"...)
			}
			i += 5
			continue
		}
		// Any other escape is copied as a pair so that "\\u2028" stays intact.
		result = append(result, data[i])
		if i+1 < len(data) {
			result = append(result, data[i+1])
			i++
		}
	}
	return result
}
