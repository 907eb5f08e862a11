package prompter_test

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/reglet-dev/permflow/domain/entities"
	"github.com/reglet-dev/permflow/infrastructure/prompter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var deniedDialog = entities.DeniedDialog(entities.FlowConfig{
	DeniedMessage:    "Microphone access was denied.",
	DeniedCloseText:  "Close",
	OpenSettingsText: "Open settings",
})

func present(t *testing.T, input string, d entities.Dialog) (entities.DialogAction, string) {
	t.Helper()
	out := &bytes.Buffer{}
	p := prompter.NewCliPrompter(bytes.NewBufferString(input), out)

	var got entities.DialogAction
	called := 0
	p.Present(context.Background(), d, func(a entities.DialogAction) {
		got = a
		called++
	})
	require.Equal(t, 1, called)
	return got, out.String()
}

func TestCliPrompter_Present(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  entities.ActionID
	}{
		{"By Number", "1\n", entities.ActionOpenSettings},
		{"By ID", "close\n", entities.ActionClose},
		{"By Label", "open SETTINGS\n", entities.ActionOpenSettings},
		{"Retry After Invalid", "9\nmaybe\n2\n", entities.ActionClose},
		{"No Trailing Newline", "1", entities.ActionOpenSettings},
		{"EOF Picks Last", "", entities.ActionClose},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, out := present(t, tt.input, deniedDialog)
			assert.Equal(t, tt.want, got.ID)
			assert.Contains(t, out, "Microphone access was denied.")
			assert.Contains(t, out, "[1] Open settings")
			assert.Contains(t, out, "[2] Close")
		})
	}
}

func TestCliPrompter_AskNative(t *testing.T) {
	out := &bytes.Buffer{}
	p := prompter.NewCliPrompter(bytes.NewBufferString("y\nhuh\nn\nnever\n"), out)
	c := entities.Capability("android.permission.CAMERA")

	d, err := p.AskNative(c)
	require.NoError(t, err)
	assert.Equal(t, entities.DecisionAllow, d)

	d, err = p.AskNative(c)
	require.NoError(t, err)
	assert.Equal(t, entities.DecisionDeny, d)

	d, err = p.AskNative(c)
	require.NoError(t, err)
	assert.Equal(t, entities.DecisionDenyNeverAsk, d)

	d, err = p.AskNative(c)
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, entities.DecisionDeny, d)
	assert.Contains(t, out.String(), "Allow access to CAMERA (android.permission.CAMERA)?")
}

func TestCliPrompter_AskSettings(t *testing.T) {
	p := prompter.NewCliPrompter(bytes.NewBufferString("\ny\nno\n"), &bytes.Buffer{})
	c := entities.Capability("MIC")

	s, err := p.AskSettings(c, entities.GrantDenied)
	require.NoError(t, err)
	assert.Equal(t, entities.GrantDenied, s)

	s, err = p.AskSettings(c, entities.GrantDenied)
	require.NoError(t, err)
	assert.Equal(t, entities.GrantGranted, s)

	s, err = p.AskSettings(c, entities.GrantGranted)
	require.NoError(t, err)
	assert.Equal(t, entities.GrantDenied, s)
}

func TestCliPrompter_IsInteractive(t *testing.T) {
	assert.False(t, prompter.NewCliPrompter(bytes.NewBufferString(""), nil).IsInteractive())
}

func TestCliPrompter_FormatNonInteractiveError(t *testing.T) {
	p := prompter.NewCliPrompter(nil, nil)
	err := p.FormatNonInteractiveError(entities.FlowConfig{SubjectID: "com.example", Capabilities: entities.Capabilities("a", "b")})
	assert.ErrorContains(t, err, "needs an interactive terminal to request 2 capabilities")
}
