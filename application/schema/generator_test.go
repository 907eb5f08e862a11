package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSchema_SimpleStruct(t *testing.T) {
	type SimpleConfig struct {
		Host string `json:"host"`
		Port int    `json:"port,omitempty"`
	}

	schema, err := GenerateSchema(SimpleConfig{})
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(schema, &decoded))

	assert.Equal(t, "object", decoded["type"])
	assert.Equal(t, false, decoded["additionalProperties"])
	assert.NotContains(t, decoded, "$id")
	assert.Equal(t, []interface{}{"host"}, decoded["required"])
}

func TestFlowConfigSchema(t *testing.T) {
	schema, err := FlowConfigSchema()
	require.NoError(t, err)

	var decoded struct {
		Properties map[string]map[string]interface{} `json:"properties"`
		Required   []string                          `json:"required"`
	}
	require.NoError(t, json.Unmarshal(schema, &decoded))

	for _, field := range []string{
		"capabilities", "rationale_message", "rationale_confirm_text",
		"denied_message", "denied_close_text", "open_settings_text", "subject_id",
	} {
		assert.Contains(t, decoded.Properties, field)
		assert.Contains(t, decoded.Required, field)
	}
	assert.Equal(t, "array", decoded.Properties["capabilities"]["type"])
	assert.Equal(t, true, decoded.Properties["capabilities"]["uniqueItems"])
	assert.EqualValues(t, 1, decoded.Properties["subject_id"]["minLength"])
}

func TestDeviceProfileSchema(t *testing.T) {
	schema, err := DeviceProfileSchema()
	require.NoError(t, err)

	assert.Contains(t, string(schema), "restricted")
	assert.Contains(t, string(schema), "generic_settings")
}
