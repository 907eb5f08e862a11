package entities

import "strings"

// Capability identifies one requestable platform permission
// (e.g., "android.permission.CAMERA"). The value is opaque to the flow.
type Capability string

// String returns the capability identifier.
func (c Capability) String() string {
	return string(c)
}

// ShortName returns the last dot-separated segment of the identifier,
// which is what users usually recognise ("CAMERA" for "android.permission.CAMERA").
func (c Capability) ShortName() string {
	s := string(c)
	if i := strings.LastIndexByte(s, '.'); i >= 0 && i < len(s)-1 {
		return s[i+1:]
	}
	return s
}

// Capabilities converts plain strings into capabilities, preserving order.
func Capabilities(names ...string) []Capability {
	caps := make([]Capability, len(names))
	for i, n := range names {
		caps[i] = Capability(n)
	}
	return caps
}
