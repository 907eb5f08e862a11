package entities

import "fmt"

// GrantStatus is the platform's authorization state for one capability.
type GrantStatus int

const (
	// GrantUnknown means the platform has not decided (or could not be asked).
	GrantUnknown GrantStatus = iota
	// GrantGranted means the capability may be used.
	GrantGranted
	// GrantDenied means the capability was refused.
	GrantDenied
)

func (s GrantStatus) String() string {
	switch s {
	case GrantGranted:
		return "granted"
	case GrantDenied:
		return "denied"
	default:
		return "unknown"
	}
}

// IsGranted reports whether s is GrantGranted.
func (s GrantStatus) IsGranted() bool {
	return s == GrantGranted
}

// ParseGrantStatus parses the textual form produced by String.
func ParseGrantStatus(text string) (GrantStatus, error) {
	switch text {
	case "granted":
		return GrantGranted, nil
	case "denied":
		return GrantDenied, nil
	case "unknown", "":
		return GrantUnknown, nil
	default:
		return GrantUnknown, fmt.Errorf("invalid grant status %q", text)
	}
}

// MarshalText implements encoding.TextMarshaler so YAML and JSON use the textual form.
func (s GrantStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *GrantStatus) UnmarshalText(text []byte) error {
	v, err := ParseGrantStatus(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// GrantEntry is the persisted state of one capability on a device.
type GrantEntry struct {
	Status GrantStatus `json:"status" yaml:"status"`
	// NeverAsk is set once the user denied a native prompt with "don't ask again".
	// The platform then refuses further native prompts for the capability.
	NeverAsk bool `json:"never_ask,omitempty" yaml:"never_ask,omitempty"`
}

// GrantTable maps capabilities to their stored grant state.
type GrantTable struct {
	Grants map[Capability]GrantEntry `json:"grants,omitempty" yaml:"grants,omitempty"`
}

// NewGrantTable returns an empty table.
func NewGrantTable() *GrantTable {
	return &GrantTable{Grants: make(map[Capability]GrantEntry)}
}

// Status returns the grant status of c, GrantUnknown when absent.
func (t *GrantTable) Status(c Capability) GrantStatus {
	if t == nil {
		return GrantUnknown
	}
	return t.Grants[c].Status
}

// Entry returns the stored entry for c.
func (t *GrantTable) Entry(c Capability) (GrantEntry, bool) {
	if t == nil {
		return GrantEntry{}, false
	}
	e, ok := t.Grants[c]
	return e, ok
}

// Set stores the entry for c.
func (t *GrantTable) Set(c Capability, e GrantEntry) {
	if t.Grants == nil {
		t.Grants = make(map[Capability]GrantEntry)
	}
	t.Grants[c] = e
}

// Clone returns a deep copy of the table.
func (t *GrantTable) Clone() *GrantTable {
	if t == nil {
		return nil
	}
	clone := &GrantTable{Grants: make(map[Capability]GrantEntry, len(t.Grants))}
	for c, e := range t.Grants {
		clone.Grants[c] = e
	}
	return clone
}

// NativeDecision is the user's answer to a native permission prompt.
type NativeDecision int

const (
	DecisionAllow NativeDecision = iota
	DecisionDeny
	// DecisionDenyNeverAsk denies and suppresses future native prompts.
	DecisionDenyNeverAsk
)

func (d NativeDecision) String() string {
	switch d {
	case DecisionAllow:
		return "allow"
	case DecisionDenyNeverAsk:
		return "deny_never_ask"
	default:
		return "deny"
	}
}
