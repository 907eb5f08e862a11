package permflow

import (
	"fmt"
	"os"

	"github.com/reglet-dev/permflow/application/validation"
	"github.com/reglet-dev/permflow/domain/flow"
	"github.com/reglet-dev/permflow/infrastructure/parser"
)

// configValidator is a package-level singleton for better performance.
// Creating a new validator on each call is expensive; reusing is recommended.
var configValidator = flow.NewConfigValidator()

// ValidateConfig checks cfg and returns a *errors.ConfigurationError naming
// the first invalid field.
func ValidateConfig(cfg FlowConfig) error {
	return configValidator.Validate(cfg)
}

// LoadConfig reads a YAML, JSON or JSONC flow configuration from path.
// The document is checked against the FlowConfig schema before it is
// decoded, then the decoded struct is validated.
func LoadConfig(path string) (*FlowConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read flow config: %w", err)
	}
	return ParseConfig(path, data)
}

// ParseConfig is LoadConfig for data already in memory; name selects the format.
func ParseConfig(name string, data []byte) (*FlowConfig, error) {
	p := parser.ForPath(name)

	doc, err := p.Document(data)
	if err != nil {
		return nil, err
	}
	docValidator, err := validation.FlowConfigDocumentValidator()
	if err != nil {
		return nil, err
	}
	res, err := docValidator.ValidateDocument(doc)
	if err != nil {
		return nil, err
	}
	if err := validation.ToConfigurationError(res); err != nil {
		return nil, err
	}

	cfg, err := p.Parse(data)
	if err != nil {
		return nil, err
	}
	if err := ValidateConfig(*cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
