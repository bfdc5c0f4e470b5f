package harness

import (
	"bytes"
	_ "embed"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed fixture.schema.json
var documentSchema []byte

const documentSchemaURL = "termfixture://schema/fixture.json"

var compileSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(documentSchema))
	if err != nil {
		return nil, fmt.Errorf("unmarshal schema: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(documentSchemaURL, doc); err != nil {
		return nil, fmt.Errorf("add schema resource: %w", err)
	}
	return c.Compile(documentSchemaURL)
})

// ValidateDocument checks serialized document bytes against the fixture
// document schema.
func ValidateDocument(data []byte) error {
	schema, err := compileSchema()
	if err != nil {
		return &Error{Code: ErrCodeSerialization, Message: "compile document schema", Err: err}
	}
	v, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return &Error{Code: ErrCodeSerialization, Message: "document is not JSON", Err: err}
	}
	if err := schema.Validate(v); err != nil {
		return &Error{Code: ErrCodeSerialization, Message: "document schema", Err: err}
	}
	return nil
}
