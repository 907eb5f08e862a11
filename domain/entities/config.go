package entities

// FlowConfig is everything one permission flow needs: the capabilities to
// request and the texts of the dialogs it may show.
type FlowConfig struct {
	// Capabilities is the set of capabilities to request, in request order.
	Capabilities []Capability `json:"capabilities" yaml:"capabilities" validate:"unique,dive,required" jsonschema:"uniqueItems=true"`

	// RationaleMessage explains why the capabilities are needed.
	RationaleMessage string `json:"rationale_message" yaml:"rationale_message" validate:"required" jsonschema:"minLength=1"`

	// RationaleConfirmText labels the button that proceeds to the native request.
	RationaleConfirmText string `json:"rationale_confirm_text" yaml:"rationale_confirm_text" validate:"required" jsonschema:"minLength=1"`

	// DeniedMessage is shown when at least one capability was refused.
	DeniedMessage string `json:"denied_message" yaml:"denied_message" validate:"required" jsonschema:"minLength=1"`

	// DeniedCloseText labels the button that accepts the denial.
	DeniedCloseText string `json:"denied_close_text" yaml:"denied_close_text" validate:"required" jsonschema:"minLength=1"`

	// OpenSettingsText labels the button that opens the system settings.
	OpenSettingsText string `json:"open_settings_text" yaml:"open_settings_text" validate:"required" jsonschema:"minLength=1"`

	// SubjectID identifies the application whose settings screen is opened.
	SubjectID string `json:"subject_id" yaml:"subject_id" validate:"required" jsonschema:"minLength=1"`
}

// Clone returns a copy of the config that shares no memory with c.
func (c FlowConfig) Clone() FlowConfig {
	c.Capabilities = append([]Capability(nil), c.Capabilities...)
	return c
}
