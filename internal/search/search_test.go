package search

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pxc/internal/model"
)

func entries(names ...string) []model.Entry {
	out := make([]model.Entry, 0, len(names))
	for _, n := range names {
		out = append(out, model.Entry{Name: n, Category: model.DefaultCategory})
	}
	return out
}

func TestFilter(t *testing.T) {
	store := entries("deploy-dev", "build", "deploy-prod", "Build")

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{name: "empty query matches all", query: "", want: []string{"deploy-dev", "build", "deploy-prod", "Build"}},
		{name: "substring keeps store order", query: "deploy", want: []string{"deploy-dev", "deploy-prod"}},
		{name: "infix match", query: "ploy-p", want: []string{"deploy-prod"}},
		{name: "case sensitive", query: "Bui", want: []string{"Build"}},
		{name: "no match", query: "zzz", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Filter(store, tt.query))
		})
	}
}

func TestFilterIsCaseSensitive(t *testing.T) {
	assert.Empty(t, Filter(entries("Build"), "build"))
}

func TestByLengthIsStable(t *testing.T) {
	in := []string{"buildall", "build", "b", "ab", "ba"}
	got := ByLength(in)

	assert.Equal(t, []string{"b", "ab", "ba", "build", "buildall"}, got)
	assert.Equal(t, []string{"buildall", "build", "b", "ab", "ba"}, in, "input must not be reordered")
}

func TestRanked(t *testing.T) {
	store := entries("build", "buildall", "b")
	assert.Equal(t, []string{"b", "build", "buildall"}, Ranked(store, "b"))
}
