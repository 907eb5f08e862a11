package flow_test

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"github.com/reglet-dev/permflow/domain/entities"
	"github.com/reglet-dev/permflow/domain/flow"
	"github.com/reglet-dev/permflow/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlogOutcomeHandler(t *testing.T) {
	tests := []struct {
		name   string
		result entities.Result
		want   []string
	}{
		{
			name:   "granted",
			result: entities.Result{FlowID: "f1", Outcome: entities.Granted()},
			want:   []string{"level=INFO", `msg="permissions granted"`, "flow_id=f1"},
		},
		{
			name:   "denied",
			result: entities.Result{FlowID: "f2", Outcome: entities.Denied("MIC")},
			want:   []string{"level=INFO", `msg="permissions denied"`, "denied=[MIC]"},
		},
		{
			name:   "failed",
			result: entities.Result{FlowID: "f3", Err: fmt.Errorf("boom")},
			want:   []string{"level=ERROR", "error=boom"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			h := &flow.SlogOutcomeHandler{Logger: slog.New(slog.NewTextHandler(&buf, nil))}
			h.OnOutcome(tt.result)
			for _, w := range tt.want {
				assert.Contains(t, buf.String(), w)
			}
		})
	}
}

func TestOutcomeHandlerFunc(t *testing.T) {
	var got entities.Result
	h := flow.OutcomeHandlerFunc(func(r entities.Result) { got = r })
	h.OnOutcome(entities.Result{FlowID: "x"})
	assert.Equal(t, "x", got.FlowID)

	assert.NotPanics(t, func() { (&flow.NopOutcomeHandler{}).OnOutcome(entities.Result{}) })
}

func TestController_OutcomeLoggedOnceAtInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
	ctrl := flow.NewController(testutil.NewPlatform(cam, mic), testutil.NewPresenter(entities.ActionClose),
		flow.WithLogger(logger),
		flow.WithOutcomeHandler(&flow.SlogOutcomeHandler{Logger: logger}),
	)

	outcome, err := ctrl.Run(waitCtx(t), testutil.Config(cam, mic))
	require.NoError(t, err)
	assert.True(t, outcome.IsGranted())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1, buf.String())
	assert.Contains(t, lines[0], `msg="permissions granted"`)
}
