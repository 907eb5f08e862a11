package permflow

import (
	"github.com/reglet-dev/permflow/domain/entities"
	"github.com/reglet-dev/permflow/domain/errors"
)

// Re-exported domain types so callers only need this package.
type (
	Capability  = entities.Capability
	FlowConfig  = entities.FlowConfig
	Outcome     = entities.Outcome
	Result      = entities.Result
	GrantStatus = entities.GrantStatus
	Dialog      = entities.Dialog
	ErrorDetail = entities.ErrorDetail
)

// Granted returns the all-granted outcome.
func Granted() Outcome {
	return entities.Granted()
}

// Denied returns an outcome listing the refused capabilities.
func Denied(caps ...Capability) Outcome {
	return entities.Denied(caps...)
}

// ToErrorDetail converts a flow error to its structured form.
func ToErrorDetail(err error) *ErrorDetail {
	return errors.ToErrorDetail(err)
}
