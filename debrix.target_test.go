package debrix

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestTarget_String(t *testing.T) {
	assert.Equal(t, "client", TargetClient.String())
	assert.Equal(t, "hydration", TargetHydration.String())
	assert.Equal(t, "server", TargetServer.String())
	assert.Equal(t, "unknown", Target(9).String())
	assert.Equal(t, "unknown", Target(-1).String())
}

func TestTarget_Supported(t *testing.T) {
	assert.True(t, TargetClient.Supported())
	assert.False(t, TargetHydration.Supported())
	assert.False(t, TargetServer.Supported())
}

func TestParseTarget(t *testing.T) {
	tests := []struct {
		input   string
		want    Target
		wantErr bool
	}{
		{input: "client", want: TargetClient},
		{input: "Hydration", want: TargetHydration},
		{input: " SERVER ", want: TargetServer},
		{input: "ssr", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseTarget(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), ErrMsgUnknownTarget)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTarget_TextAndYAML(t *testing.T) {
	type doc struct {
		Target Target `json:"target" yaml:"target"`
	}

	data, err := json.Marshal(doc{Target: TargetServer})
	require.NoError(t, err)
	assert.JSONEq(t, `{"target":"server"}`, string(data))

	var fromJSON doc
	require.NoError(t, json.Unmarshal([]byte(`{"target":"hydration"}`), &fromJSON))
	assert.Equal(t, TargetHydration, fromJSON.Target)

	out, err := yaml.Marshal(doc{Target: TargetClient})
	require.NoError(t, err)
	assert.Equal(t, "target: client\n", string(out))

	var fromYAML doc
	require.NoError(t, yaml.Unmarshal([]byte("target: server\n"), &fromYAML))
	assert.Equal(t, TargetServer, fromYAML.Target)

	assert.Error(t, yaml.Unmarshal([]byte("target: edge\n"), &fromYAML))
	assert.Error(t, yaml.Unmarshal([]byte("target: [client]\n"), &fromYAML))
}
