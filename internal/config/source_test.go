package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/doccbuilder/internal/foundation/errors"
)

func TestLayered_FirstHitWins(t *testing.T) {
	l := Layered{nil, MapLookup{"a": "env"}, MapLookup{"a": "file", "b": "file"}}

	v, ok := l.Lookup("a")
	assert.True(t, ok)
	assert.Equal(t, "env", v)

	v, ok = l.Lookup("b")
	assert.True(t, ok)
	assert.Equal(t, "file", v)

	_, ok = l.Lookup("c")
	assert.False(t, ok)
}

func TestEnvLookup(t *testing.T) {
	t.Setenv("INPUT_HOSTING-BASE-PATH", "/docs")
	v, ok := EnvLookup.Lookup("hosting-base-path")
	assert.True(t, ok)
	assert.Equal(t, "/docs", v)
}

func TestInputs_Input(t *testing.T) {
	in := NewInputs(MapLookup{"name": "  value  ", "blank": "   "})

	v, err := in.Input("name", InputOptions{})
	require.NoError(t, err)
	assert.Equal(t, "value", v)

	v, err = in.Input("name", InputOptions{KeepWhitespace: true})
	require.NoError(t, err)
	assert.Equal(t, "  value  ", v)

	v, err = in.Input("missing", InputOptions{})
	require.NoError(t, err)
	assert.Empty(t, v)

	v, err = in.Input("blank", InputOptions{Default: "fallback"})
	require.NoError(t, err)
	assert.Equal(t, "fallback", v)

	_, err = in.Input("blank", InputOptions{Required: true})
	require.EqualError(t, err, "Input required and not supplied: blank")
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))
}

func TestInputs_BooleanInput(t *testing.T) {
	tests := []struct {
		raw     string
		want    bool
		wantErr bool
	}{
		{"true", true, false},
		{"True", true, false},
		{"TRUE", true, false},
		{"false", false, false},
		{"False", false, false},
		{"FALSE", false, false},
		{"", false, false},
		{"yes", false, true},
		{"1", false, true},
		{"tRUE", false, true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			in := NewInputs(MapLookup{"flag": tt.raw})
			got, err := in.BooleanInput("flag", InputOptions{})
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "flag")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInputs_BooleanInputDefaultAndRequired(t *testing.T) {
	in := NewInputs(MapLookup{})

	got, err := in.BooleanInput("flag", InputOptions{Default: "true"})
	require.NoError(t, err)
	assert.True(t, got)

	_, err = in.BooleanInput("flag", InputOptions{Required: true})
	require.EqualError(t, err, "Input required and not supplied: flag")
}

func TestInputs_MultilineInput(t *testing.T) {
	in := NewInputs(MapLookup{"targets": "  Core\n\nUI  \n   \nNetworking\n"})

	got, err := in.MultilineInput("targets", InputOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Core", "UI", "Networking"}, got)

	got, err = in.MultilineInput("targets", InputOptions{KeepWhitespace: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"  Core", "UI  ", "Networking"}, got)

	got, err = in.MultilineInput("missing", InputOptions{})
	require.NoError(t, err)
	assert.Empty(t, got)
}
