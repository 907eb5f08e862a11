package entities_test

import (
	"testing"

	"github.com/reglet-dev/permflow/domain/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseGrantStatus(t *testing.T) {
	tests := []struct {
		in      string
		want    entities.GrantStatus
		wantErr bool
	}{
		{"granted", entities.GrantGranted, false},
		{"denied", entities.GrantDenied, false},
		{"unknown", entities.GrantUnknown, false},
		{"", entities.GrantUnknown, false},
		{"maybe", entities.GrantUnknown, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := entities.ParseGrantStatus(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGrantTable_YAML(t *testing.T) {
	table := entities.NewGrantTable()
	table.Set("android.permission.CAMERA", entities.GrantEntry{Status: entities.GrantGranted})
	table.Set("android.permission.RECORD_AUDIO", entities.GrantEntry{Status: entities.GrantDenied, NeverAsk: true})

	data, err := yaml.Marshal(table)
	require.NoError(t, err)
	assert.Contains(t, string(data), "status: granted")
	assert.Contains(t, string(data), "never_ask: true")

	var decoded entities.GrantTable
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	assert.Equal(t, entities.GrantGranted, decoded.Status("android.permission.CAMERA"))
	entry, ok := decoded.Entry("android.permission.RECORD_AUDIO")
	require.True(t, ok)
	assert.True(t, entry.NeverAsk)
}

func TestGrantTable_NilAndClone(t *testing.T) {
	var nilTable *entities.GrantTable
	assert.Equal(t, entities.GrantUnknown, nilTable.Status("x"))
	assert.Nil(t, nilTable.Clone())

	table := &entities.GrantTable{}
	table.Set("a", entities.GrantEntry{Status: entities.GrantGranted})
	clone := table.Clone()
	clone.Set("a", entities.GrantEntry{Status: entities.GrantDenied})

	assert.Equal(t, entities.GrantGranted, table.Status("a"))
	assert.Equal(t, entities.GrantDenied, clone.Status("a"))
}
