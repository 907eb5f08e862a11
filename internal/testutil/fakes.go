package testutil

import (
	"context"
	"sync"

	"github.com/reglet-dev/permflow/domain/entities"
	"github.com/reglet-dev/permflow/domain/ports"
)

var _ ports.Platform = (*Platform)(nil)
var _ ports.DialogPresenter = (*Presenter)(nil)

// Platform is a scripted in-memory platform.
// Grants answered by the native prompt are written back to its grant map.
type Platform struct {
	mu     sync.Mutex
	grants map[entities.Capability]entities.GrantStatus

	// NativeResponse returns the per-capability results of a native request.
	// Default grants everything.
	NativeResponse func(caps []entities.Capability) []entities.GrantStatus

	// AppSettingsErr and GenericSettingsErr make the screens unresolvable.
	AppSettingsErr     error
	GenericSettingsErr error

	// InSettings runs while the user is on a settings screen.
	InSettings func(p *Platform)

	// Async delivers completions from a separate goroutine.
	Async bool

	requests        [][]entities.Capability
	appOpened       []string
	genericOpened   int
	checkpointCount int
}

// NewPlatform returns a platform where caps are already granted.
func NewPlatform(granted ...entities.Capability) *Platform {
	p := &Platform{grants: make(map[entities.Capability]entities.GrantStatus)}
	for _, c := range granted {
		p.grants[c] = entities.GrantGranted
	}
	return p
}

// SetGrant changes the status of c.
func (p *Platform) SetGrant(c entities.Capability, s entities.GrantStatus) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.grants[c] = s
}

func (p *Platform) CheckGrant(c entities.Capability) entities.GrantStatus {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.checkpointCount++
	return p.grants[c]
}

func (p *Platform) RequestPermissions(_ context.Context, caps []entities.Capability, done func([]entities.GrantStatus)) {
	p.mu.Lock()
	p.requests = append(p.requests, append([]entities.Capability(nil), caps...))
	respond := p.NativeResponse
	p.mu.Unlock()

	var results []entities.GrantStatus
	if respond != nil {
		results = respond(caps)
	} else {
		results = make([]entities.GrantStatus, len(caps))
		for i := range results {
			results[i] = entities.GrantGranted
		}
	}

	p.mu.Lock()
	for i, s := range results {
		if i < len(caps) {
			p.grants[caps[i]] = s
		}
	}
	p.mu.Unlock()

	p.deliver(func() { done(results) })
}

func (p *Platform) OpenAppSettings(_ context.Context, subjectID string, returned func()) error {
	p.mu.Lock()
	p.appOpened = append(p.appOpened, subjectID)
	err := p.AppSettingsErr
	p.mu.Unlock()
	if err != nil {
		return err
	}
	p.visitSettings(returned)
	return nil
}

func (p *Platform) OpenGenericSettings(_ context.Context, returned func()) error {
	p.mu.Lock()
	p.genericOpened++
	err := p.GenericSettingsErr
	p.mu.Unlock()
	if err != nil {
		return err
	}
	p.visitSettings(returned)
	return nil
}

func (p *Platform) visitSettings(returned func()) {
	p.deliver(func() {
		if p.InSettings != nil {
			p.InSettings(p)
		}
		returned()
	})
}

func (p *Platform) deliver(fn func()) {
	if p.Async {
		go fn()
		return
	}
	fn()
}

// Requests returns every native request issued so far.
func (p *Platform) Requests() [][]entities.Capability {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([][]entities.Capability(nil), p.requests...)
}

// AppSettingsOpened returns the subject IDs whose settings were opened.
func (p *Platform) AppSettingsOpened() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.appOpened...)
}

// GenericSettingsOpened returns how often the generic settings were opened.
func (p *Platform) GenericSettingsOpened() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.genericOpened
}

// GrantChecks returns the number of CheckGrant calls.
func (p *Platform) GrantChecks() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.checkpointCount
}

// Presenter answers dialogs from a script and records what it showed.
type Presenter struct {
	mu sync.Mutex

	// Choices maps a dialog kind to the action picked. Defaults: rationale
	// confirms, denied closes.
	Choices map[entities.DialogKind]entities.ActionID

	// Hold leaves every dialog unanswered.
	Hold bool

	// Async answers from a separate goroutine.
	Async bool

	shown []entities.Dialog
}

// NewPresenter returns a presenter that picks action for denied dialogs.
func NewPresenter(denied entities.ActionID) *Presenter {
	return &Presenter{Choices: map[entities.DialogKind]entities.ActionID{
		entities.DialogRationale: entities.ActionConfirm,
		entities.DialogDenied:    denied,
	}}
}

func (p *Presenter) Present(_ context.Context, d entities.Dialog, choose func(entities.DialogAction)) {
	p.mu.Lock()
	p.shown = append(p.shown, d)
	hold := p.Hold
	id, ok := p.Choices[d.Kind]
	p.mu.Unlock()

	if hold {
		return
	}
	if !ok {
		id = entities.ActionConfirm
		if d.Kind == entities.DialogDenied {
			id = entities.ActionClose
		}
	}
	action := entities.DialogAction{ID: id}
	for _, a := range d.Actions {
		if a.ID == id {
			action = a
		}
	}
	if p.Async {
		go choose(action)
		return
	}
	choose(action)
}

// Shown returns the dialogs presented so far.
func (p *Presenter) Shown() []entities.Dialog {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]entities.Dialog(nil), p.shown...)
}

// ShownKinds returns the kinds of the dialogs presented so far, in order.
func (p *Presenter) ShownKinds() []entities.DialogKind {
	p.mu.Lock()
	defer p.mu.Unlock()
	kinds := make([]entities.DialogKind, len(p.shown))
	for i, d := range p.shown {
		kinds[i] = d.Kind
	}
	return kinds
}

// Config returns a complete FlowConfig for caps.
func Config(caps ...entities.Capability) entities.FlowConfig {
	return entities.FlowConfig{
		Capabilities:         caps,
		RationaleMessage:     "This app needs access to continue.",
		RationaleConfirmText: "Continue",
		DeniedMessage:        "Some permissions were denied.",
		DeniedCloseText:      "Close",
		OpenSettingsText:     "Open settings",
		SubjectID:            "com.example.app",
	}
}
