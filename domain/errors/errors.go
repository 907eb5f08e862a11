// Package errors provides domain-specific error types for permission flows.
// All error types support error unwrapping via errors.As() and errors.Is().
package errors

import (
	stdErrors "errors"
	"fmt"

	"github.com/reglet-dev/permflow/domain/entities"
)

// ErrorDetail is an alias to entities.ErrorDetail for convenience.
type ErrorDetail = entities.ErrorDetail

var (
	// ErrNavigationUnresolved is returned by a settings navigator when the
	// requested screen does not exist on the device.
	ErrNavigationUnresolved = stdErrors.New("settings screen not resolvable")

	// ErrFlowAbandoned is reported when the hosting context goes away before
	// the flow reaches a terminal state.
	ErrFlowAbandoned = stdErrors.New("permission flow abandoned")
)

// DetailedError is an interface for error types that can convert themselves
// to a structured ErrorDetail.
type DetailedError interface {
	error
	ToErrorDetail() *entities.ErrorDetail
}

// ToErrorDetail converts a Go error to our structured ErrorDetail.
func ToErrorDetail(err error) *entities.ErrorDetail {
	if err == nil {
		return nil
	}

	var e *entities.ErrorDetail
	if stdErrors.As(err, &e) {
		return e
	}

	var de DetailedError
	if stdErrors.As(err, &de) {
		return de.ToErrorDetail()
	}

	if stdErrors.Is(err, ErrFlowAbandoned) {
		return entities.NewErrorDetail("abandoned", err.Error())
	}

	return entities.NewErrorDetail("internal", err.Error())
}

// ConfigurationError reports a missing or malformed FlowConfig field.
// A flow is never started with an invalid configuration.
type ConfigurationError struct {
	Err   error
	Field string
}

func (e *ConfigurationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid flow configuration for field '%s': %v", e.Field, e.Err)
	}
	return fmt.Sprintf("invalid flow configuration: %v", e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// ToErrorDetail implements DetailedError.
func (e *ConfigurationError) ToErrorDetail() *entities.ErrorDetail {
	return entities.NewErrorDetail("config", e.Error()).WithCode(e.Field)
}

// PlatformContractViolation reports a native request result that is not
// positionally aligned with the requested capabilities.
type PlatformContractViolation struct {
	Requested []entities.Capability
	Received  int
}

func (e *PlatformContractViolation) Error() string {
	return fmt.Sprintf("platform contract violation: requested %d capabilities, received %d results",
		len(e.Requested), e.Received)
}

// ToErrorDetail implements DetailedError.
func (e *PlatformContractViolation) ToErrorDetail() *entities.ErrorDetail {
	return entities.NewErrorDetail("contract", e.Error()).
		WithCode("result_length").
		WithDetails(map[string]any{"requested": len(e.Requested), "received": e.Received})
}

// NavigationError reports a settings screen that could not be opened.
type NavigationError struct {
	Err    error
	Target string // "app" or "generic"
	// SubjectID is set for per-app settings.
	SubjectID string
}

func (e *NavigationError) Error() string {
	if e.SubjectID != "" {
		return fmt.Sprintf("open %s settings for %s: %v", e.Target, e.SubjectID, e.Err)
	}
	return fmt.Sprintf("open %s settings: %v", e.Target, e.Err)
}

func (e *NavigationError) Unwrap() error {
	return e.Err
}

// ToErrorDetail implements DetailedError.
func (e *NavigationError) ToErrorDetail() *entities.ErrorDetail {
	return entities.NewErrorDetail("navigation", e.Error()).WithCode(e.Target)
}

// IsNavigationUnresolved reports whether err means the screen does not exist.
func IsNavigationUnresolved(err error) bool {
	return stdErrors.Is(err, ErrNavigationUnresolved)
}
