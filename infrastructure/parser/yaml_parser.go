package parser

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/reglet-dev/permflow/domain/entities"
	"github.com/reglet-dev/permflow/domain/ports"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

var (
	_ ports.FlowConfigParser    = (*YamlParser)(nil)
	_ ports.DeviceProfileParser = (*YamlParser)(nil)
	_ ports.FlowConfigParser    = (*JSONCParser)(nil)
	_ ports.DeviceProfileParser = (*JSONCParser)(nil)
)

// YamlParser decodes YAML documents.
type YamlParser struct{}

// NewYamlParser creates a new YamlParser.
func NewYamlParser() *YamlParser {
	return &YamlParser{}
}

// Parse unmarshals YAML bytes into a FlowConfig.
func (p *YamlParser) Parse(data []byte) (*entities.FlowConfig, error) {
	var cfg entities.FlowConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse flow config: %w", err)
	}
	return &cfg, nil
}

// ParseDevice unmarshals YAML bytes into a DeviceProfile.
func (p *YamlParser) ParseDevice(data []byte) (*entities.DeviceProfile, error) {
	var dev entities.DeviceProfile
	if err := yaml.Unmarshal(data, &dev); err != nil {
		return nil, fmt.Errorf("failed to parse device profile: %w", err)
	}
	return &dev, nil
}

// Document decodes YAML into a generic value for schema validation.
func (p *YamlParser) Document(data []byte) (any, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	return doc, nil
}

// JSONCParser decodes JSON documents that may contain comments and
// trailing commas.
type JSONCParser struct{}

// NewJSONCParser creates a new JSONCParser.
func NewJSONCParser() *JSONCParser {
	return &JSONCParser{}
}

// Parse unmarshals JSON(C) bytes into a FlowConfig. Unknown fields are rejected.
func (p *JSONCParser) Parse(data []byte) (*entities.FlowConfig, error) {
	var cfg entities.FlowConfig
	if err := decodeStrict(jsonc.ToJSON(data), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse flow config: %w", err)
	}
	return &cfg, nil
}

// ParseDevice unmarshals JSON(C) bytes into a DeviceProfile.
func (p *JSONCParser) ParseDevice(data []byte) (*entities.DeviceProfile, error) {
	var dev entities.DeviceProfile
	if err := decodeStrict(jsonc.ToJSON(data), &dev); err != nil {
		return nil, fmt.Errorf("failed to parse device profile: %w", err)
	}
	return &dev, nil
}

// Document decodes JSON(C) into a generic value for schema validation.
func (p *JSONCParser) Document(data []byte) (any, error) {
	var doc any
	if err := json.Unmarshal(jsonc.ToJSON(data), &doc); err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	return doc, nil
}

func decodeStrict(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// Parser is implemented by both document formats.
type Parser interface {
	ports.FlowConfigParser
	ports.DeviceProfileParser
	Document(data []byte) (any, error)
}

// ForPath picks the parser matching the file extension; YAML is the default.
func ForPath(path string) Parser {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		return NewJSONCParser()
	default:
		return NewYamlParser()
	}
}
