package entities

// DeviceProfile describes the simulated platform a flow runs against.
type DeviceProfile struct {
	// Installed lists the subject IDs that have a per-app settings screen.
	Installed []string `json:"installed,omitempty" yaml:"installed,omitempty"`

	// Restricted holds glob patterns; matching capabilities are refused by
	// device policy without prompting the user.
	Restricted []string `json:"restricted,omitempty" yaml:"restricted,omitempty"`

	// GenericSettings reports whether the generic application-management
	// settings screen exists.
	GenericSettings bool `json:"generic_settings" yaml:"generic_settings"`
}
