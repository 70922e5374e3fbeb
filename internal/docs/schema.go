package docs

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// JSONSchema returns the JSON Schema of the descriptor file, generated from
// the Descriptor type so editors can validate components.yaml.
func JSONSchema() ([]byte, error) {
	reflector := jsonschema.Reflector{
		ExpandedStruct: true,
	}
	schema := reflector.Reflect(&descriptorFile{})
	schema.Title = "Component descriptors"

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling descriptor schema: %w", err)
	}
	return data, nil
}
