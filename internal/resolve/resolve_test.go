package resolve

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pxc/internal/model"
)

func entries(names ...string) []model.Entry {
	out := make([]model.Entry, 0, len(names))
	for _, n := range names {
		out = append(out, model.Entry{Name: n, Category: model.DefaultCategory})
	}
	return out
}

func resolve(t *testing.T, input string, store []model.Entry, token string) (string, string, error) {
	t.Helper()
	var out bytes.Buffer
	r := Resolver{In: strings.NewReader(input), Out: &out}
	name, err := r.Resolve(store, token)
	return name, out.String(), err
}

func TestResolveExactNameSkipsPrompt(t *testing.T) {
	name, out, err := resolve(t, "", entries("deploy", "deploy-prod"), "deploy")
	require.NoError(t, err)
	assert.Equal(t, "deploy", name)
	assert.Empty(t, out)
}

func TestResolveNotFound(t *testing.T) {
	_, _, err := resolve(t, "", entries("build"), "deploy")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolveSingleMatch(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "enter confirms", input: "\n"},
		{name: "index confirms", input: "1\n"},
		{name: "answer without newline", input: "1"},
		{name: "other text is rejected", input: "n\n", wantErr: true},
		{name: "eof is rejected", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, out, err := resolve(t, tt.input, entries("build", "deploy-prod"), "prod")
			assert.Contains(t, out, "1. ->deploy-prod\n")
			assert.Contains(t, out, "Press Enter to run deploy-prod\n")
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidSelection)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "deploy-prod", name)
		})
	}
}

func TestResolveAmbiguous(t *testing.T) {
	store := entries("deploy-dev", "build", "deploy-prod")

	name, out, err := resolve(t, "2\n", store, "deploy")
	require.NoError(t, err)
	assert.Equal(t, "deploy-prod", name)
	assert.Equal(t, "Did you mean one of:\n1. ->deploy-dev\n2. ->deploy-prod\nselect: \n", out)
}

func TestResolveAmbiguousInvalid(t *testing.T) {
	store := entries("deploy-dev", "deploy-prod")

	for _, input := range []string{"abc\n", "0\n", "3\n", "\n", "-1\n"} {
		_, _, err := resolve(t, input, store, "deploy")
		assert.ErrorIs(t, err, ErrInvalidSelection, "input %q", input)
	}
}
