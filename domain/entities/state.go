package entities

// FlowState is the state of a permission flow's state machine.
type FlowState int

const (
	StateInit FlowState = iota
	StateAwaitingRationaleAck
	StateAwaitingNativeRequest
	StateAwaitingDeniedChoice
	StateAwaitingSettingsReturn
	StateTerminal
)

var flowStateNames = [...]string{
	StateInit:                   "init",
	StateAwaitingRationaleAck:   "awaiting_rationale_ack",
	StateAwaitingNativeRequest:  "awaiting_native_request",
	StateAwaitingDeniedChoice:   "awaiting_denied_choice",
	StateAwaitingSettingsReturn: "awaiting_settings_return",
	StateTerminal:               "terminal",
}

func (s FlowState) String() string {
	if s < 0 || int(s) >= len(flowStateNames) {
		return "invalid"
	}
	return flowStateNames[s]
}

// IsTerminal reports whether no further events are accepted.
func (s FlowState) IsTerminal() bool {
	return s == StateTerminal
}
