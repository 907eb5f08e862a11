package ports

import "github.com/reglet-dev/permflow/domain/entities"

// ConfigValidator checks a FlowConfig before a flow starts.
type ConfigValidator interface {
	// Validate returns a *errors.ConfigurationError describing the first
	// invalid field, or nil.
	Validate(cfg entities.FlowConfig) error
}

// DocumentValidator checks a raw configuration document against its schema.
type DocumentValidator interface {
	ValidateDocument(doc any) (*entities.ValidationResult, error)
}
