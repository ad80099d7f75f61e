package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// compiled holds compiled schemas keyed by Schema.Name. Names are unique
// per response shape (quiz-set, deck-summary, ...).
var compiled sync.Map // map[string]*jsonschema.Schema

// Validate checks raw against the schema and returns *ErrInvalidResponse
// when it is not a JSON value conforming to the definition.
func (s *Schema) Validate(raw json.RawMessage) error {
	sch, err := s.compile()
	if err != nil {
		return &ErrInvalidResponse{Schema: s.Name, Content: raw, Err: err}
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return &ErrInvalidResponse{Schema: s.Name, Content: raw, Err: fmt.Errorf("invalid JSON: %w", err)}
	}
	if err := sch.Validate(doc); err != nil {
		return &ErrInvalidResponse{Schema: s.Name, Content: raw, Err: err}
	}
	return nil
}

// validateResponse is Schema.Validate tolerating a nil schema.
func validateResponse(schema *Schema, raw json.RawMessage) error {
	if schema == nil {
		return nil
	}
	return schema.Validate(raw)
}

func (s *Schema) compile() (*jsonschema.Schema, error) {
	if sch, ok := compiled.Load(s.Name); ok {
		return sch.(*jsonschema.Schema), nil
	}

	// Round-trip through JSON so the compiler sees json.Number values
	// rather than Go ints.
	def, err := json.Marshal(s.Definition)
	if err != nil {
		return nil, fmt.Errorf("marshal schema %q: %w", s.Name, err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(def))
	if err != nil {
		return nil, fmt.Errorf("parse schema %q: %w", s.Name, err)
	}

	url := "schema://" + s.Name + ".json"
	c := jsonschema.NewCompiler()
	if err := c.AddResource(url, doc); err != nil {
		return nil, fmt.Errorf("add schema %q: %w", s.Name, err)
	}
	sch, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile schema %q: %w", s.Name, err)
	}

	actual, _ := compiled.LoadOrStore(s.Name, sch)
	return actual.(*jsonschema.Schema), nil
}
