// Package permflow runs a runtime permission request against a mobile
// platform: it checks grants, explains the request, shows the native prompt
// and offers the settings round-trip when something was refused.
//
// Basic usage:
//
//	outcome, err := permflow.Request(ctx, platform, presenter, cfg)
//	if err != nil {
//		// configuration error, platform contract violation or abandonment
//	}
//	if !outcome.IsGranted() {
//		// outcome.Denied lists what the user refused
//	}
package permflow

import (
	"context"

	"github.com/reglet-dev/permflow/domain/flow"
	"github.com/reglet-dev/permflow/domain/ports"
)

// NewController returns a flow controller that validates configurations with
// the package's shared struct validator. Later options override earlier ones.
func NewController(platform ports.Platform, presenter ports.DialogPresenter, opts ...flow.ControllerOption) *flow.Controller {
	opts = append([]flow.ControllerOption{flow.WithConfigValidator(configValidator)}, opts...)
	return flow.NewController(platform, presenter, opts...)
}

// Request runs one permission flow to completion.
func Request(ctx context.Context, platform ports.Platform, presenter ports.DialogPresenter, cfg FlowConfig, opts ...flow.ControllerOption) (Outcome, error) {
	return NewController(platform, presenter, opts...).Run(ctx, cfg)
}
