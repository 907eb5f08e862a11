package ports

import (
	"context"

	"github.com/reglet-dev/permflow/domain/entities"
)

// GrantChecker answers the platform's current authorization state.
type GrantChecker interface {
	// CheckGrant returns the grant status of one capability.
	// It is synchronous and must reflect the platform's state at call time.
	CheckGrant(c entities.Capability) entities.GrantStatus
}

// PermissionRequester dispatches the native permission prompt.
type PermissionRequester interface {
	// RequestPermissions asks the platform for caps. done receives one status
	// per capability, positionally aligned with caps. done may be called
	// synchronously or later from any goroutine.
	RequestPermissions(ctx context.Context, caps []entities.Capability, done func([]entities.GrantStatus))
}

// SettingsNavigator opens the system settings screens.
type SettingsNavigator interface {
	// OpenAppSettings opens the per-app settings screen of subjectID.
	// It returns an error wrapping errors.ErrNavigationUnresolved when the
	// screen does not exist; returned is then never called.
	OpenAppSettings(ctx context.Context, subjectID string, returned func()) error

	// OpenGenericSettings opens the application-management settings screen.
	OpenGenericSettings(ctx context.Context, returned func()) error
}

// Platform is everything the flow needs from the mobile platform.
type Platform interface {
	GrantChecker
	PermissionRequester
	SettingsNavigator
}
