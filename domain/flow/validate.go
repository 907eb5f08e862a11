package flow

import (
	stdErrors "errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/reglet-dev/permflow/domain/entities"
	"github.com/reglet-dev/permflow/domain/errors"
	"github.com/reglet-dev/permflow/domain/ports"
)

var _ ports.ConfigValidator = (*ConfigValidator)(nil)

// defaultValidator is shared by every controller built without
// WithConfigValidator; validator.Validate caches struct metadata.
var defaultValidator = NewConfigValidator()

// ConfigValidator validates FlowConfig structs with go-playground/validator.
type ConfigValidator struct {
	validate *validator.Validate
}

// NewConfigValidator creates a ConfigValidator that reports fields by their
// document (json) names.
func NewConfigValidator() *ConfigValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &ConfigValidator{validate: v}
}

// Validate returns a *errors.ConfigurationError for the first failing field.
func (v *ConfigValidator) Validate(cfg entities.FlowConfig) error {
	err := v.validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !stdErrors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &errors.ConfigurationError{Err: err}
	}
	fe := fieldErrs[0]
	field := fe.Namespace()
	if i := strings.IndexByte(field, '.'); i >= 0 {
		field = field[i+1:]
	}
	return &errors.ConfigurationError{
		Field: field,
		Err:   fmt.Errorf("failed '%s' check", fe.Tag()),
	}
}
