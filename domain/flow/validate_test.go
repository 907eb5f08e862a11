package flow_test

import (
	"errors"
	"testing"

	"github.com/reglet-dev/permflow/domain/entities"
	domainerrors "github.com/reglet-dev/permflow/domain/errors"
	"github.com/reglet-dev/permflow/domain/flow"
	"github.com/reglet-dev/permflow/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigValidator_Validate(t *testing.T) {
	v := flow.NewConfigValidator()

	tests := []struct {
		name      string
		mutate    func(c *entities.FlowConfig)
		wantField string
	}{
		{"valid", func(c *entities.FlowConfig) {}, ""},
		{"no capabilities", func(c *entities.FlowConfig) { c.Capabilities = nil }, ""},
		{"missing denied message", func(c *entities.FlowConfig) { c.DeniedMessage = "" }, "denied_message"},
		{"missing settings text", func(c *entities.FlowConfig) { c.OpenSettingsText = "" }, "open_settings_text"},
		{"duplicate capability", func(c *entities.FlowConfig) {
			c.Capabilities = entities.Capabilities("CAM", "CAM")
		}, "capabilities"},
		{"blank capability", func(c *entities.FlowConfig) {
			c.Capabilities = entities.Capabilities("CAM", "")
		}, "capabilities[1]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testutil.Config("CAM", "MIC")
			tt.mutate(&cfg)

			err := v.Validate(cfg)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var cfgErr *domainerrors.ConfigurationError
			require.True(t, errors.As(err, &cfgErr), "got %v", err)
			assert.Equal(t, tt.wantField, cfgErr.Field)
		})
	}
}

// The default controller rejects the same field as an explicitly
// configured struct validator.
func TestController_DefaultValidatorMatchesConfigValidator(t *testing.T) {
	cfg := testutil.Config("CAM", "MIC", "CAM")

	_, defaultErr := flow.NewController(testutil.NewPlatform(), testutil.NewPresenter(entities.ActionClose)).
		Start(waitCtx(t), cfg)
	_, explicitErr := flow.NewController(testutil.NewPlatform(), testutil.NewPresenter(entities.ActionClose),
		flow.WithConfigValidator(flow.NewConfigValidator())).Start(waitCtx(t), cfg)

	var a, b *domainerrors.ConfigurationError
	require.True(t, errors.As(defaultErr, &a))
	require.True(t, errors.As(explicitErr, &b))
	assert.Equal(t, "capabilities", a.Field)
	assert.Equal(t, a.Field, b.Field)
	assert.Equal(t, a.Error(), b.Error())
}
