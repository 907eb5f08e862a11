// Package validation checks flow configuration documents against their schema.
package validation

import (
	"encoding/json"
	stdErrors "errors"
	"fmt"
	"strings"
	"sync"

	"github.com/reglet-dev/permflow/application/schema"
	"github.com/reglet-dev/permflow/domain/entities"
	"github.com/reglet-dev/permflow/domain/errors"
	"github.com/reglet-dev/permflow/domain/ports"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

var _ ports.DocumentValidator = (*DocumentValidator)(nil)

// DocumentValidator validates decoded documents against a JSON schema.
type DocumentValidator struct {
	schema *jsonschema.Schema
}

// NewDocumentValidator compiles schemaJSON under resource name.
func NewDocumentValidator(name string, schemaJSON []byte) (*DocumentValidator, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(name, strings.NewReader(string(schemaJSON))); err != nil {
		return nil, fmt.Errorf("failed to add schema resource %s: %w", name, err)
	}
	sch, err := compiler.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("invalid schema %s: %w", name, err)
	}
	return &DocumentValidator{schema: sch}, nil
}

var (
	flowConfigOnce      sync.Once
	flowConfigValidator *DocumentValidator
	flowConfigErr       error
)

// FlowConfigDocumentValidator returns the shared validator for flow
// configuration documents.
func FlowConfigDocumentValidator() (*DocumentValidator, error) {
	flowConfigOnce.Do(func() {
		var raw []byte
		raw, flowConfigErr = schema.FlowConfigSchema()
		if flowConfigErr != nil {
			return
		}
		flowConfigValidator, flowConfigErr = NewDocumentValidator("flow-config.json", raw)
	})
	return flowConfigValidator, flowConfigErr
}

// ValidateDocument checks doc (as decoded from YAML or JSON) against the schema.
// Schema violations are reported in the result; the error is reserved for
// documents that cannot be prepared for validation.
func (v *DocumentValidator) ValidateDocument(doc any) (*entities.ValidationResult, error) {
	result := &entities.ValidationResult{Valid: true}

	// Round-trip through JSON so YAML-decoded values use JSON types.
	b, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare validation object: %w", err)
	}
	var obj interface{}
	if err := json.Unmarshal(b, &obj); err != nil {
		return nil, fmt.Errorf("failed to prepare validation object: %w", err)
	}

	if err := v.schema.Validate(obj); err != nil {
		result.Valid = false
		var ve *jsonschema.ValidationError
		if !stdErrors.As(err, &ve) {
			result.Errors = append(result.Errors, entities.ValidationError{Message: err.Error()})
			return result, nil
		}
		for _, be := range ve.BasicOutput().Errors {
			if be.Error == "" || strings.HasPrefix(be.Error, "doesn't validate with") {
				continue
			}
			result.Errors = append(result.Errors, entities.ValidationError{
				Field:   strings.TrimPrefix(be.InstanceLocation, "/"),
				Message: be.Error,
			})
		}
		if len(result.Errors) == 0 {
			result.Errors = append(result.Errors, entities.ValidationError{Message: ve.Error()})
		}
	}

	return result, nil
}

// ToConfigurationError folds a failed ValidationResult into one error.
func ToConfigurationError(res *entities.ValidationResult) error {
	if res == nil || res.Valid {
		return nil
	}
	msgs := make([]string, 0, len(res.Errors))
	for _, e := range res.Errors {
		if e.Field != "" {
			msgs = append(msgs, e.Field+": "+e.Message)
			continue
		}
		msgs = append(msgs, e.Message)
	}
	field := ""
	if len(res.Errors) > 0 {
		field = res.Errors[0].Field
	}
	return &errors.ConfigurationError{Field: field, Err: stdErrors.New(strings.Join(msgs, "; "))}
}
