package ports

import "github.com/reglet-dev/permflow/domain/entities"

// FlowConfigParser decodes a flow configuration document.
type FlowConfigParser interface {
	// Parse decodes data into a FlowConfig. It does not validate the result.
	Parse(data []byte) (*entities.FlowConfig, error)
}

// DeviceProfileParser decodes a simulated device description.
type DeviceProfileParser interface {
	ParseDevice(data []byte) (*entities.DeviceProfile, error)
}
