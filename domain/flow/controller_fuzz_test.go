package flow_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/reglet-dev/permflow/domain/entities"
	"github.com/reglet-dev/permflow/domain/flow"
	"github.com/reglet-dev/permflow/internal/testutil"
	"github.com/stretchr/testify/assert"
)

// FuzzControllerInvariants drives random grant states, native answers and
// settings choices through the controller and checks the outcome contract.
// Each byte of initial/answers encodes one capability: bit 0 granted up
// front, bit 1 granted by the native prompt, bit 2 granted in settings.
func FuzzControllerInvariants(f *testing.F) {
	f.Add([]byte{0, 0}, true)
	f.Add([]byte{1, 2}, false)
	f.Add([]byte{0, 4, 6, 1}, true)
	f.Add([]byte{}, false)

	f.Fuzz(func(t *testing.T, bits []byte, openSettings bool) {
		if len(bits) > 16 {
			bits = bits[:16]
		}
		caps := make([]entities.Capability, len(bits))
		for i := range bits {
			caps[i] = entities.Capability(fmt.Sprintf("cap.%d", i))
		}

		platform := testutil.NewPlatform()
		var ungranted []entities.Capability
		for i, b := range bits {
			if b&1 != 0 {
				platform.SetGrant(caps[i], entities.GrantGranted)
			} else {
				ungranted = append(ungranted, caps[i])
			}
		}
		platform.NativeResponse = func(req []entities.Capability) []entities.GrantStatus {
			out := make([]entities.GrantStatus, len(req))
			for i, c := range req {
				out[i] = entities.GrantDenied
				for j, x := range caps {
					if x == c && bits[j]&2 != 0 {
						out[i] = entities.GrantGranted
					}
				}
			}
			return out
		}
		platform.InSettings = func(p *testutil.Platform) {
			for i, b := range bits {
				if b&4 != 0 {
					p.SetGrant(caps[i], entities.GrantGranted)
				}
			}
		}

		choice := entities.ActionClose
		if openSettings {
			choice = entities.ActionOpenSettings
		}
		presenter := testutil.NewPresenter(choice)
		ctrl := flow.NewController(platform, presenter)

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		outcome, err := ctrl.Run(ctx, testutil.Config(caps...))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		requests := platform.Requests()
		if len(requests) > 1 {
			t.Fatalf("issued %d native requests", len(requests))
		}
		if len(requests) == 1 && fmt.Sprint(requests[0]) != fmt.Sprint(ungranted) {
			t.Fatalf("requested %v, want %v", requests[0], ungranted)
		}
		if len(ungranted) == 0 && len(presenter.Shown()) != 0 {
			t.Fatalf("dialogs shown although everything was granted")
		}

		if outcome.Kind == entities.OutcomeDenied {
			if len(outcome.Denied) == 0 {
				t.Fatalf("denied outcome without capabilities")
			}
			assert.Subset(t, caps, outcome.Denied)
		} else if len(outcome.Denied) != 0 {
			t.Fatalf("granted outcome lists denied capabilities %v", outcome.Denied)
		}
	})
}
