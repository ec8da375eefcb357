package vision

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// BuildFieldsSchema returns a JSON-Schema (draft 2020-12 subset) as a generic
// map, requiring the requested field names as keys. Extra keys stay allowed:
// recovered records keep whatever the model emitted.
func BuildFieldsSchema(fields []string) map[string]any {
	props := map[string]any{}
	for _, f := range fields {
		props[f] = map[string]any{}
	}
	return map[string]any{
		"type":       "object",
		"properties": props,
		"required":   append([]string(nil), fields...),
	}
}

// ValidateRecord validates a recovered record against schemaMap. Advisory
// only: callers log the verdict and never mutate or drop the record.
func ValidateRecord(schemaMap map[string]any, record map[string]any) error {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	if err := schema.Validate(map[string]any(record)); err != nil {
		return fmt.Errorf("record does not match schema: %w", err)
	}
	return nil
}
