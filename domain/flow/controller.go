// Package flow implements the permission flow controller: a state machine that
// checks grants, explains the request, issues the native prompt and offers the
// settings round-trip when something was refused.
package flow

import (
	"context"
	stdErrors "errors"
	"fmt"

	"github.com/reglet-dev/permflow/domain/entities"
	"github.com/reglet-dev/permflow/domain/errors"
	"github.com/reglet-dev/permflow/domain/ports"
)

// Controller starts permission flows against one platform and presenter.
// A Controller is safe for concurrent use; each flow owns its own state.
type Controller struct {
	config    controllerConfig
	platform  ports.Platform
	presenter ports.DialogPresenter
}

// NewController creates a Controller.
func NewController(platform ports.Platform, presenter ports.DialogPresenter, opts ...ControllerOption) *Controller {
	cfg := defaultControllerConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Controller{
		config:    cfg,
		platform:  platform,
		presenter: presenter,
	}
}

// Start begins a flow for cfg and returns immediately.
//
// An empty capability list is vacuously granted: the returned flow is already
// done and nothing is shown. Otherwise cfg is validated and an invalid config
// yields a *errors.ConfigurationError with no flow started.
//
// Cancelling ctx abandons the flow; pending platform callbacks become no-ops.
func (c *Controller) Start(ctx context.Context, cfg entities.FlowConfig) (*Flow, error) {
	f := newFlow(c, cfg.Clone())

	if len(f.cfg.Capabilities) == 0 {
		f.log.Debug("no capabilities requested")
		f.terminate(entities.Result{Outcome: entities.Granted()})
		close(f.done)
		return f, nil
	}

	if err := c.config.validator.Validate(f.cfg); err != nil {
		var cfgErr *errors.ConfigurationError
		if !stdErrors.As(err, &cfgErr) {
			err = &errors.ConfigurationError{Err: err}
		}
		return nil, err
	}

	go f.run(ctx)
	return f, nil
}

// Run starts a flow and waits for its result.
func (c *Controller) Run(ctx context.Context, cfg entities.FlowConfig) (entities.Outcome, error) {
	f, err := c.Start(ctx, cfg)
	if err != nil {
		return entities.Outcome{}, fmt.Errorf("failed to start permission flow: %w", err)
	}
	return f.Wait(ctx)
}
