package entities

import "strings"

// OutcomeKind discriminates Outcome.
type OutcomeKind int

const (
	// OutcomeGranted means every requested capability is granted.
	OutcomeGranted OutcomeKind = iota
	// OutcomeDenied means at least one requested capability was refused.
	OutcomeDenied
)

func (k OutcomeKind) String() string {
	if k == OutcomeDenied {
		return "denied"
	}
	return "granted"
}

// Outcome is the terminal result of a permission flow.
// Denied is non-empty exactly when Kind is OutcomeDenied.
type Outcome struct {
	Kind   OutcomeKind  `json:"kind"`
	Denied []Capability `json:"denied,omitempty"`
}

// Granted returns the all-granted outcome.
func Granted() Outcome {
	return Outcome{Kind: OutcomeGranted}
}

// Denied returns an outcome listing the refused capabilities in order.
func Denied(caps ...Capability) Outcome {
	return Outcome{Kind: OutcomeDenied, Denied: append([]Capability(nil), caps...)}
}

// IsGranted reports whether every capability was granted.
func (o Outcome) IsGranted() bool {
	return o.Kind == OutcomeGranted
}

func (o Outcome) String() string {
	if o.Kind == OutcomeGranted {
		return "granted"
	}
	names := make([]string, len(o.Denied))
	for i, c := range o.Denied {
		names[i] = string(c)
	}
	return "denied(" + strings.Join(names, ", ") + ")"
}

// Result is what a flow delivers to its caller: either an Outcome or a fatal error.
type Result struct {
	FlowID  string
	Outcome Outcome
	Err     error
}
