package ports

import "github.com/reglet-dev/permflow/domain/entities"

// DeviceInteraction is the user side of a simulated device: it answers the
// native permission prompt and operates the settings screen.
type DeviceInteraction interface {
	// AskNative shows the platform's own prompt for one capability.
	AskNative(c entities.Capability) (entities.NativeDecision, error)

	// AskSettings lets the user change one capability on the settings screen.
	// It returns the new status (current when left unchanged).
	AskSettings(c entities.Capability, current entities.GrantStatus) (entities.GrantStatus, error)
}
