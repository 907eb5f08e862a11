// Package entities provides the core domain types of a permission request flow.
// They carry no behaviour beyond small helpers and are shared by the flow
// controller, its ports and the infrastructure adapters.
package entities
