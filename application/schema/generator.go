// Package schema provides JSON schema generation for permflow documents.
package schema

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
	"github.com/reglet-dev/permflow/domain/entities"
)

// GenerateSchema creates a JSON schema from a Go struct.
// It uses the `invopop/jsonschema` library to reflect on the struct
// and generate a standard JSON Schema (Draft 2020-12). Unknown properties
// are rejected, so typos in documents surface as validation errors.
func GenerateSchema(v interface{}) ([]byte, error) {
	reflector := jsonschema.Reflector{
		ExpandedStruct: true, // Expand struct definitions inline
		Anonymous:      true, // No $id; documents are validated by resource name
	}
	schema := reflector.Reflect(v)

	jsonBytes, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}

	return jsonBytes, nil
}

// FlowConfigSchema returns the schema of a flow configuration document.
func FlowConfigSchema() ([]byte, error) {
	return GenerateSchema(&entities.FlowConfig{})
}

// DeviceProfileSchema returns the schema of a simulated device document.
func DeviceProfileSchema() ([]byte, error) {
	return GenerateSchema(&entities.DeviceProfile{})
}
