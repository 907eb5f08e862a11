package ports

import (
	"context"

	"github.com/reglet-dev/permflow/domain/entities"
)

// DialogPresenter renders flow dialogs.
type DialogPresenter interface {
	// Present shows d and calls choose with the action the user picked.
	// choose may be called synchronously or later from any goroutine.
	// Non-cancelable dialogs only resolve through one of their actions.
	Present(ctx context.Context, d entities.Dialog, choose func(entities.DialogAction))
}
