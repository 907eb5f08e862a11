package flow

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/reglet-dev/permflow/domain/entities"
	"github.com/reglet-dev/permflow/domain/errors"
)

type eventKind int

const (
	evRationaleAck eventKind = iota
	evNativeResult
	evDeniedChoice
	evSettingsReturned
)

func (k eventKind) String() string {
	switch k {
	case evRationaleAck:
		return "rationale_ack"
	case evNativeResult:
		return "native_result"
	case evDeniedChoice:
		return "denied_choice"
	default:
		return "settings_returned"
	}
}

// maxContinuations bounds the continuations one flow issues (rationale,
// native request, denied dialog, app settings, generic settings). Each fires
// at most once, so a buffer of this size never blocks a sender.
const maxContinuations = 5

// event is a completion delivered by a platform or dialog continuation.
type event struct {
	seq     uint64
	kind    eventKind
	action  entities.ActionID
	results []entities.GrantStatus
}

// Flow is one run of the permission state machine.
// seq, needed and denied are owned by the loop goroutine.
type Flow struct {
	id   string
	cfg  entities.FlowConfig
	ctrl *Controller
	log  *slog.Logger

	state  atomic.Int32
	events chan event
	done   chan struct{}
	result entities.Result

	seq    uint64
	needed []entities.Capability
	denied []entities.Capability
}

func newFlow(c *Controller, cfg entities.FlowConfig) *Flow {
	id := c.config.newID()
	f := &Flow{
		id:     id,
		cfg:    cfg,
		ctrl:   c,
		log:    c.config.logger.With("flow_id", id),
		events: make(chan event, maxContinuations),
		done:   make(chan struct{}),
	}
	f.state.Store(int32(entities.StateInit))
	return f
}

// ID returns the flow's identifier.
func (f *Flow) ID() string {
	return f.id
}

// State returns the current state.
func (f *Flow) State() entities.FlowState {
	return entities.FlowState(f.state.Load())
}

// Done is closed once the flow has a result.
func (f *Flow) Done() <-chan struct{} {
	return f.done
}

// Wait blocks until the flow ends or ctx is done.
// A PlatformContractViolation or abandonment is returned as an error, never
// folded into a Denied outcome.
func (f *Flow) Wait(ctx context.Context) (entities.Outcome, error) {
	select {
	case <-f.done:
		return f.result.Outcome, f.result.Err
	case <-ctx.Done():
		return entities.Outcome{}, ctx.Err()
	}
}

// Result returns the flow's result. It must only be called after Done is closed.
func (f *Flow) Result() entities.Result {
	return f.result
}

func (f *Flow) run(ctx context.Context) {
	defer close(f.done)

	f.checkpoint(ctx, false)
	for !f.State().IsTerminal() {
		select {
		case <-ctx.Done():
			f.terminate(entities.Result{Err: fmt.Errorf("%w in state %s: %w", errors.ErrFlowAbandoned, f.State(), context.Cause(ctx))})
			return
		case ev := <-f.events:
			if ev.seq != f.seq {
				f.log.Debug("ignoring stale event", "event", ev.kind.String(), "state", f.State().String())
				continue
			}
			f.handle(ctx, ev)
		}
	}
}

func (f *Flow) handle(ctx context.Context, ev event) {
	switch ev.kind {
	case evRationaleAck:
		f.requestNative(ctx)
	case evNativeResult:
		f.onNativeResult(ctx, ev.results)
	case evDeniedChoice:
		if ev.action == entities.ActionOpenSettings {
			f.openSettings(ctx)
			return
		}
		f.complete(entities.Denied(f.denied...))
	case evSettingsReturned:
		f.checkpoint(ctx, true)
	}
}

// checkpoint queries every capability afresh. The first checkpoint leads to
// the rationale; a resumption after settings ends the flow with whatever is
// still ungranted.
func (f *Flow) checkpoint(ctx context.Context, resumed bool) {
	var needed []entities.Capability
	for _, c := range f.cfg.Capabilities {
		if !f.ctrl.platform.CheckGrant(c).IsGranted() {
			needed = append(needed, c)
		}
	}
	f.log.Debug("checkpoint", "resumed", resumed, "needed", needed)

	if len(needed) == 0 {
		f.complete(entities.Granted())
		return
	}
	if resumed {
		f.complete(entities.Denied(needed...))
		return
	}

	f.needed = needed
	f.transition(entities.StateAwaitingRationaleAck)
	ack := f.continuation(evRationaleAck)
	f.ctrl.presenter.Present(ctx, entities.RationaleDialog(f.cfg), func(a entities.DialogAction) {
		ack(event{action: a.ID})
	})
}

func (f *Flow) requestNative(ctx context.Context) {
	f.transition(entities.StateAwaitingNativeRequest)
	done := f.continuation(evNativeResult)
	req := append([]entities.Capability(nil), f.needed...)
	f.ctrl.platform.RequestPermissions(ctx, req, func(results []entities.GrantStatus) {
		done(event{results: append([]entities.GrantStatus(nil), results...)})
	})
}

func (f *Flow) onNativeResult(ctx context.Context, results []entities.GrantStatus) {
	if len(results) != len(f.needed) {
		f.fail(&errors.PlatformContractViolation{Requested: f.needed, Received: len(results)})
		return
	}

	var denied []entities.Capability
	for i, status := range results {
		if !status.IsGranted() {
			denied = append(denied, f.needed[i])
		}
	}
	if len(denied) == 0 {
		f.complete(entities.Granted())
		return
	}

	f.denied = denied
	f.transition(entities.StateAwaitingDeniedChoice)
	choose := f.continuation(evDeniedChoice)
	f.ctrl.presenter.Present(ctx, entities.DeniedDialog(f.cfg), func(a entities.DialogAction) {
		choose(event{action: a.ID})
	})
}

// openSettings tries the per-app screen first and falls back to the generic
// application list. If neither resolves the denial stands.
func (f *Flow) openSettings(ctx context.Context) {
	nav := f.ctrl.platform
	f.transition(entities.StateAwaitingSettingsReturn)

	returned := f.continuation(evSettingsReturned)
	err := nav.OpenAppSettings(ctx, f.cfg.SubjectID, func() { returned(event{}) })
	if err == nil {
		return
	}
	if errors.IsNavigationUnresolved(err) {
		f.log.Info("no app settings screen, falling back to application list", "subject_id", f.cfg.SubjectID)
	} else {
		f.log.Warn("app settings unavailable, falling back to application list",
			"subject_id", f.cfg.SubjectID, "error", err)
	}

	returned = f.continuation(evSettingsReturned)
	if err := nav.OpenGenericSettings(ctx, func() { returned(event{}) }); err != nil {
		f.log.Warn("generic settings unavailable", "error", err)
		f.complete(entities.Denied(f.denied...))
	}
}

// continuation returns a one-shot callback that delivers an event of kind to
// the loop. Issuing a continuation invalidates every earlier one.
func (f *Flow) continuation(kind eventKind) func(event) {
	f.seq++
	seq := f.seq
	var once sync.Once
	return func(ev event) {
		once.Do(func() {
			ev.seq = seq
			ev.kind = kind
			select {
			case f.events <- ev:
			case <-f.done:
			}
		})
	}
}

func (f *Flow) transition(to entities.FlowState) {
	from := f.State()
	f.state.Store(int32(to))
	f.log.Debug("flow transition", "from", from.String(), "to", to.String())
}

func (f *Flow) complete(o entities.Outcome) {
	f.terminate(entities.Result{Outcome: o})
}

func (f *Flow) fail(err error) {
	f.terminate(entities.Result{Err: err})
}

// terminate records the single result of the flow. The caller closes done.
func (f *Flow) terminate(r entities.Result) {
	r.FlowID = f.id
	f.result = r
	f.transition(entities.StateTerminal)
	if r.Err != nil {
		f.log.Debug("permission flow failed", "error", r.Err)
	} else {
		f.log.Debug("permission flow finished", "outcome", r.Outcome.String())
	}
	f.ctrl.config.outcomeHandler.OnOutcome(r)
}
