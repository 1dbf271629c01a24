package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// compiled caches compiled schemas by Schema.Name.
var compiled sync.Map // map[string]*jsonschema.Schema

// ValidateJSON checks raw against schema. It is used directly for JSON
// pulled out of free-text replies, and by every backend for structured
// output. A nil schema accepts anything.
func ValidateJSON(schema *Schema, raw json.RawMessage) error {
	return validateResponse(schema, raw)
}

func validateResponse(schema *Schema, raw json.RawMessage) error {
	if schema == nil {
		return nil
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return &ErrInvalidResponse{Content: raw, Err: fmt.Errorf("invalid JSON: %w", err)}
	}

	sch, err := compileSchema(schema)
	if err != nil {
		return &ErrInvalidResponse{Content: raw, Err: fmt.Errorf("compile schema %q: %w", schema.Name, err)}
	}

	if err := sch.Validate(doc); err != nil {
		return &ErrInvalidResponse{Content: raw, Err: fmt.Errorf("schema validation failed: %w", err)}
	}
	return nil
}

func compileSchema(schema *Schema) (*jsonschema.Schema, error) {
	if cached, ok := compiled.Load(schema.Name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	// Round-trip through JSON so Go literals such as []string become the
	// generic values the compiler walks.
	defBytes, err := json.Marshal(schema.Definition)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	def, err := jsonschema.UnmarshalJSON(bytes.NewReader(defBytes))
	if err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	url := "schema://" + schema.Name + ".json"
	c := jsonschema.NewCompiler()
	if err := c.AddResource(url, def); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	sch, err := c.Compile(url)
	if err != nil {
		return nil, err
	}

	actual, _ := compiled.LoadOrStore(schema.Name, sch)
	return actual.(*jsonschema.Schema), nil
}
