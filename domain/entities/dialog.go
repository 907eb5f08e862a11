package entities

// DialogKind identifies which prompt of the flow is shown.
type DialogKind string

const (
	DialogRationale DialogKind = "rationale"
	DialogDenied    DialogKind = "denied"
)

// ActionID identifies a dialog button.
type ActionID string

const (
	ActionConfirm      ActionID = "confirm"
	ActionClose        ActionID = "close"
	ActionOpenSettings ActionID = "open_settings"
)

// DialogAction is one labelled button of a dialog.
type DialogAction struct {
	ID    ActionID
	Label string
}

// Dialog describes a prompt for a DialogPresenter to render.
// Cancelable is false for both flow dialogs: only the buttons dismiss them.
type Dialog struct {
	Kind       DialogKind
	Message    string
	Actions    []DialogAction
	Cancelable bool
}

// RationaleDialog builds the pre-request explanation prompt.
func RationaleDialog(cfg FlowConfig) Dialog {
	return Dialog{
		Kind:    DialogRationale,
		Message: cfg.RationaleMessage,
		Actions: []DialogAction{{ID: ActionConfirm, Label: cfg.RationaleConfirmText}},
	}
}

// DeniedDialog builds the prompt offering the settings round-trip.
func DeniedDialog(cfg FlowConfig) Dialog {
	return Dialog{
		Kind:    DialogDenied,
		Message: cfg.DeniedMessage,
		Actions: []DialogAction{
			{ID: ActionOpenSettings, Label: cfg.OpenSettingsText},
			{ID: ActionClose, Label: cfg.DeniedCloseText},
		},
	}
}
