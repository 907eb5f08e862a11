package ports

import "github.com/reglet-dev/permflow/domain/entities"

// OutcomeHandler is called once when a flow ends.
// Implementations can log, collect metrics, or take other actions.
type OutcomeHandler interface {
	// OnOutcome receives the flow's result; exactly one of result.Err and
	// result.Outcome is meaningful.
	OnOutcome(result entities.Result)
}
