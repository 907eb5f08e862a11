package flow

import (
	"log/slog"

	"github.com/reglet-dev/permflow/domain/entities"
	"github.com/reglet-dev/permflow/domain/ports"
)

// Ensure implementations satisfy the interface.
var _ ports.OutcomeHandler = (*SlogOutcomeHandler)(nil)
var _ ports.OutcomeHandler = (*NopOutcomeHandler)(nil)
var _ ports.OutcomeHandler = OutcomeHandlerFunc(nil)

// SlogOutcomeHandler logs flow results.
type SlogOutcomeHandler struct {
	Logger *slog.Logger
}

func (h *SlogOutcomeHandler) OnOutcome(result entities.Result) {
	logger := h.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if result.Err != nil {
		logger.Error("permission flow failed", "flow_id", result.FlowID, "error", result.Err)
		return
	}
	if result.Outcome.IsGranted() {
		logger.Info("permissions granted", "flow_id", result.FlowID)
		return
	}
	logger.Info("permissions denied", "flow_id", result.FlowID, "denied", result.Outcome.Denied)
}

// NopOutcomeHandler does nothing.
type NopOutcomeHandler struct{}

func (h *NopOutcomeHandler) OnOutcome(result entities.Result) {}

// OutcomeHandlerFunc adapts a function to ports.OutcomeHandler.
type OutcomeHandlerFunc func(result entities.Result)

func (f OutcomeHandlerFunc) OnOutcome(result entities.Result) {
	f(result)
}
