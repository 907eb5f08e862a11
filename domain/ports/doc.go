// Package ports defines the collaborators of a permission flow.
// These ports enable dependency inversion - the flow controller depends on
// abstractions, and platform or UI adapters implement these interfaces.
package ports
