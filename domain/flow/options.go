package flow

import (
	"log/slog"

	"github.com/google/uuid"
	"github.com/reglet-dev/permflow/domain/ports"
)

// controllerConfig holds configuration for the Controller.
type controllerConfig struct {
	logger         *slog.Logger         // Receives transition and outcome logs
	outcomeHandler ports.OutcomeHandler // Invoked once per finished flow
	validator      ports.ConfigValidator
	newID          func() string
}

func defaultControllerConfig() controllerConfig {
	return controllerConfig{
		logger:         slog.New(slog.DiscardHandler),
		outcomeHandler: &NopOutcomeHandler{},
		validator:      defaultValidator,
		newID:          uuid.NewString,
	}
}

// ControllerOption configures the Controller.
type ControllerOption func(*controllerConfig)

// WithLogger sets the logger. Default discards.
func WithLogger(l *slog.Logger) ControllerOption {
	return func(c *controllerConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithOutcomeHandler sets the handler notified when a flow ends.
func WithOutcomeHandler(h ports.OutcomeHandler) ControllerOption {
	return func(c *controllerConfig) {
		if h != nil {
			c.outcomeHandler = h
		}
	}
}

// WithConfigValidator replaces the struct-tag validator.
func WithConfigValidator(v ports.ConfigValidator) ControllerOption {
	return func(c *controllerConfig) {
		if v != nil {
			c.validator = v
		}
	}
}

// WithIDGenerator sets the function producing flow IDs. Default is a random UUID.
func WithIDGenerator(fn func() string) ControllerOption {
	return func(c *controllerConfig) {
		if fn != nil {
			c.newID = fn
		}
	}
}
