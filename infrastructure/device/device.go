// Package device simulates a mobile platform's permission subsystem: grant
// lookups, the native prompt with "don't ask again", and the settings screens.
package device

import (
	"context"
	stdErrors "errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/reglet-dev/permflow/domain/entities"
	"github.com/reglet-dev/permflow/domain/errors"
	"github.com/reglet-dev/permflow/domain/ports"
)

var _ ports.Platform = (*Device)(nil)

// deviceConfig holds configuration for the Device.
type deviceConfig struct {
	logger *slog.Logger
}

// DeviceOption configures the Device.
type DeviceOption func(*deviceConfig)

// WithLogger sets the logger. Default discards.
func WithLogger(l *slog.Logger) DeviceOption {
	return func(c *deviceConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// Device is a simulated platform backed by a GrantStore.
// Every capability it is asked about is remembered as declared by the app
// and listed on its settings screen.
type Device struct {
	config  deviceConfig
	profile entities.DeviceProfile
	store   ports.GrantStore
	user    ports.DeviceInteraction

	mu       sync.Mutex
	declared []entities.Capability
}

// New creates a Device. Restricted patterns must be valid globs.
func New(profile entities.DeviceProfile, store ports.GrantStore, user ports.DeviceInteraction, opts ...DeviceOption) (*Device, error) {
	cfg := deviceConfig{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(&cfg)
	}
	for _, p := range profile.Restricted {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid restricted pattern %q", p)
		}
	}
	return &Device{config: cfg, profile: profile, store: store, user: user}, nil
}

// CheckGrant reads the stored status. Restricted capabilities are always denied.
func (d *Device) CheckGrant(c entities.Capability) entities.GrantStatus {
	d.declare(c)
	if d.restricted(c) {
		return entities.GrantDenied
	}
	table, err := d.store.Load()
	if err != nil {
		d.config.logger.Error("failed to load grants", "error", err)
		return entities.GrantUnknown
	}
	return table.Status(c)
}

// RequestPermissions shows the native prompt for each capability that may
// still be asked and reports one status per capability.
func (d *Device) RequestPermissions(_ context.Context, caps []entities.Capability, done func([]entities.GrantStatus)) {
	results := make([]entities.GrantStatus, len(caps))
	table, err := d.store.Load()
	if err != nil {
		d.config.logger.Error("failed to load grants", "error", err)
		table = entities.NewGrantTable()
	}

	for i, c := range caps {
		d.declare(c)
		entry, _ := table.Entry(c)
		switch {
		case d.restricted(c):
			results[i] = entities.GrantDenied
			continue
		case entry.Status.IsGranted():
			results[i] = entities.GrantGranted
			continue
		case entry.NeverAsk:
			d.config.logger.Debug("native prompt suppressed", "capability", c)
			results[i] = entities.GrantDenied
			continue
		}

		decision, err := d.user.AskNative(c)
		if err != nil && !stdErrors.Is(err, io.EOF) {
			d.config.logger.Warn("native prompt failed", "capability", c, "error", err)
		}
		switch decision {
		case entities.DecisionAllow:
			entry = entities.GrantEntry{Status: entities.GrantGranted}
		case entities.DecisionDenyNeverAsk:
			entry = entities.GrantEntry{Status: entities.GrantDenied, NeverAsk: true}
		default:
			entry = entities.GrantEntry{Status: entities.GrantDenied}
		}
		table.Set(c, entry)
		results[i] = entry.Status
	}

	if err := d.store.Save(table); err != nil {
		d.config.logger.Error("failed to save grants", "error", err)
	}
	done(results)
}

// OpenAppSettings opens the settings screen of an installed application.
func (d *Device) OpenAppSettings(_ context.Context, subjectID string, returned func()) error {
	if !slices.Contains(d.profile.Installed, subjectID) {
		return &errors.NavigationError{Target: "app", SubjectID: subjectID, Err: errors.ErrNavigationUnresolved}
	}
	d.settingsScreen()
	returned()
	return nil
}

// OpenGenericSettings opens the application-management screen, if the device has one.
func (d *Device) OpenGenericSettings(_ context.Context, returned func()) error {
	if !d.profile.GenericSettings {
		return &errors.NavigationError{Target: "generic", Err: errors.ErrNavigationUnresolved}
	}
	d.settingsScreen()
	returned()
	return nil
}

// settingsScreen lets the user toggle every declared, unrestricted capability.
// Granting a capability clears its "don't ask again" flag.
func (d *Device) settingsScreen() {
	table, err := d.store.Load()
	if err != nil {
		d.config.logger.Error("failed to load grants", "error", err)
		return
	}

	for _, c := range d.Declared() {
		if d.restricted(c) {
			continue
		}
		entry, _ := table.Entry(c)
		status, err := d.user.AskSettings(c, entry.Status)
		if err != nil {
			break
		}
		if status == entry.Status {
			continue
		}
		entry.Status = status
		if status.IsGranted() {
			entry.NeverAsk = false
		}
		table.Set(c, entry)
	}

	if err := d.store.Save(table); err != nil {
		d.config.logger.Error("failed to save grants", "error", err)
	}
}

// Declared returns the capabilities seen so far, in first-seen order.
func (d *Device) Declared() []entities.Capability {
	d.mu.Lock()
	defer d.mu.Unlock()
	return slices.Clone(d.declared)
}

func (d *Device) declare(c entities.Capability) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !slices.Contains(d.declared, c) {
		d.declared = append(d.declared, c)
	}
}

func (d *Device) restricted(c entities.Capability) bool {
	for _, p := range d.profile.Restricted {
		if ok, _ := doublestar.Match(p, string(c)); ok {
			return true
		}
	}
	return false
}
