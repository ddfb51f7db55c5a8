package store

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pxc/internal/config"
	"pxc/internal/ident"
	"pxc/internal/model"
)

type fakeLaunchers struct {
	removed []string
	err     error
}

func (f *fakeLaunchers) Remove(name string) error {
	f.removed = append(f.removed, name)
	return f.err
}

func testPaths(t *testing.T) config.Paths {
	t.Helper()
	dir := t.TempDir()
	p := config.Paths{Root: filepath.Join(dir, ".pxc"), BinDir: filepath.Join(dir, "bin")}
	_, err := config.EnsureLayout(p)
	require.NoError(t, err)
	return p
}

// repeated returns n bytes of b; each byte's low nibble selects one identifier symbol.
func repeated(b byte, n int) []byte {
	return bytes.Repeat([]byte{b}, n)
}

func TestAddThenFind(t *testing.T) {
	s := New(testPaths(t))

	tests := []struct {
		name     string
		category string
		want     string
	}{
		{name: "deploy", category: "ops", want: "ops"},
		{name: "build", category: "", want: model.DefaultCategory},
	}
	for _, tt := range tests {
		entry, err := s.Add(tt.name, tt.category)
		require.NoError(t, err)
		assert.Len(t, entry.Identifier, ident.Length)

		found, ok := s.Find(tt.name)
		require.True(t, ok)
		assert.Equal(t, tt.want, found.Category)
		assert.Equal(t, entry, found)
	}
}

func TestAddCreatesExecutableScript(t *testing.T) {
	s := New(testPaths(t))

	entry, err := s.Add("deploy", "ops")
	require.NoError(t, err)

	st, err := os.Stat(s.ScriptPath(entry))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0777), st.Mode().Perm())
	assert.Zero(t, st.Size())
}

func TestAddDuplicateName(t *testing.T) {
	s := New(testPaths(t))
	_, err := s.Add("deploy", "ops")
	require.NoError(t, err)

	_, err = s.Add("deploy", "other")
	assert.ErrorIs(t, err, ErrDuplicateName)
	assert.Equal(t, 1, s.Len())
}

func TestAddRejectsUnstorableNames(t *testing.T) {
	tests := []struct {
		desc     string
		name     string
		category string
	}{
		{desc: "empty name", name: "", category: "ops"},
		{desc: "separator in name", name: "a;b", category: "ops"},
		{desc: "newline in name", name: "a\nb", category: "ops"},
		{desc: "carriage return in name", name: "a\rb", category: "ops"},
		{desc: "path in name", name: "../escape", category: "ops"},
		{desc: "separator in category", name: "ok", category: "dev;x"},
		{desc: "newline in category", name: "ok", category: "dev\nx"},
	}
	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			paths := testPaths(t)
			s := New(paths)

			_, err := s.Add(tt.name, tt.category)
			require.ErrorIs(t, err, ErrInvalidName)
			assert.Equal(t, 0, s.Len())

			scripts, err := os.ReadDir(paths.CmdDir())
			require.NoError(t, err)
			assert.Empty(t, scripts)

			// The map file must still load after the rejected add.
			reopened, err := Open(paths)
			require.NoError(t, err)
			assert.Equal(t, 0, reopened.Len())
		})
	}
}

func TestSetCategoryRejectsSeparators(t *testing.T) {
	paths := testPaths(t)
	s := New(paths)
	_, err := s.Add("deploy", "ops")
	require.NoError(t, err)

	assert.ErrorIs(t, s.SetCategory("deploy", "a;b"), ErrInvalidName)
	assert.ErrorIs(t, s.SetCategory("deploy", "a\nb"), ErrInvalidName)

	reopened, err := Open(paths)
	require.NoError(t, err)
	e, ok := reopened.Find("deploy")
	require.True(t, ok)
	assert.Equal(t, "ops", e.Category)
}

func TestAddPersists(t *testing.T) {
	paths := testPaths(t)
	s := New(paths)
	entry, err := s.Add("deploy", "ops")
	require.NoError(t, err)

	data, err := os.ReadFile(paths.MapFile())
	require.NoError(t, err)
	assert.Equal(t, "deploy;ops;"+entry.Identifier+"\n", string(data))
}

func TestAddRetriesOnCollision(t *testing.T) {
	var src []byte
	src = append(src, repeated(0x00, ident.Length)...) // AAAAAAAA
	src = append(src, repeated(0x00, ident.Length)...) // AAAAAAAA again
	src = append(src, repeated(0x01, ident.Length)...) // BBBBBBBB

	s := New(testPaths(t), WithGenerator(&ident.Generator{Rand: bytes.NewReader(src)}))

	first, err := s.Add("one", "")
	require.NoError(t, err)
	second, err := s.Add("two", "")
	require.NoError(t, err)

	assert.Equal(t, "AAAAAAAA", first.Identifier)
	assert.Equal(t, "BBBBBBBB", second.Identifier)
}

func TestAddSkipsOrphanedScripts(t *testing.T) {
	paths := testPaths(t)
	require.NoError(t, os.WriteFile(paths.ScriptPath("AAAAAAAA"), []byte("echo stale\n"), 0700))

	src := append(repeated(0x00, ident.Length), repeated(0x02, ident.Length)...)
	s := New(paths, WithGenerator(&ident.Generator{Rand: bytes.NewReader(src)}))

	entry, err := s.Add("fresh", "")
	require.NoError(t, err)
	assert.Equal(t, "CCCCCCCC", entry.Identifier)
}

func TestAddIdentifierSpaceExhausted(t *testing.T) {
	src := bytes.Repeat([]byte{0x00}, ident.Length*4)
	s := New(testPaths(t), WithGenerator(&ident.Generator{Rand: bytes.NewReader(src), MaxAttempts: 3}))

	_, err := s.Add("one", "")
	require.NoError(t, err)

	_, err = s.Add("two", "")
	assert.ErrorIs(t, err, ident.ErrIdentifierSpaceExhausted)
	assert.Equal(t, 1, s.Len())
}

func TestIdentifiersAreDistinct(t *testing.T) {
	s := New(testPaths(t))
	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		entry, err := s.Add(fmt.Sprintf("cmd-%d", i), "")
		require.NoError(t, err)
		require.False(t, seen[entry.Identifier], "duplicate identifier %s", entry.Identifier)
		seen[entry.Identifier] = true
	}
}

func TestRemove(t *testing.T) {
	launchers := &fakeLaunchers{}
	s := New(testPaths(t), WithLauncherRemover(launchers))
	entry, err := s.Add("deploy", "ops")
	require.NoError(t, err)
	_, err = s.Add("build", "dev")
	require.NoError(t, err)

	require.NoError(t, s.Remove("deploy"))

	_, ok := s.Find("deploy")
	assert.False(t, ok)
	assert.NoFileExists(t, s.ScriptPath(entry))
	assert.Equal(t, []string{"deploy"}, launchers.removed)
	assert.Equal(t, 1, s.Len())
}

func TestRemoveMissingScriptIsFine(t *testing.T) {
	s := New(testPaths(t))
	entry, err := s.Add("deploy", "ops")
	require.NoError(t, err)
	require.NoError(t, os.Remove(s.ScriptPath(entry)))

	assert.NoError(t, s.Remove("deploy"))
	assert.Zero(t, s.Len())
}

func TestRemoveNotFound(t *testing.T) {
	s := New(testPaths(t))
	assert.ErrorIs(t, s.Remove("missing"), ErrNotFound)
}

func TestRemoveReportsLauncherFailure(t *testing.T) {
	s := New(testPaths(t), WithLauncherRemover(&fakeLaunchers{err: errors.New("permission denied")}))
	_, err := s.Add("deploy", "ops")
	require.NoError(t, err)

	err = s.Remove("deploy")
	assert.ErrorIs(t, err, ErrIO)
	_, ok := s.Find("deploy")
	assert.False(t, ok, "entry is removed even when launcher cleanup fails")
}

func TestSetCategory(t *testing.T) {
	paths := testPaths(t)
	s := New(paths)
	_, err := s.Add("deploy", "ops")
	require.NoError(t, err)

	require.NoError(t, s.SetCategory("deploy", "prod"))
	e, _ := s.Find("deploy")
	assert.Equal(t, "prod", e.Category)

	require.NoError(t, s.SetCategory("deploy", ""))
	e, _ = s.Find("deploy")
	assert.Equal(t, model.DefaultCategory, e.Category)

	assert.ErrorIs(t, s.SetCategory("missing", "x"), ErrNotFound)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	paths := testPaths(t)
	s := New(paths)
	for _, n := range []struct{ name, cat string }{{"deploy", "ops"}, {"build", "dev"}, {"test", "dev"}} {
		_, err := s.Add(n.name, n.cat)
		require.NoError(t, err)
	}

	reopened, err := Open(paths)
	require.NoError(t, err)
	assert.Equal(t, s.Entries(), reopened.Entries())
}

func TestLoadMissingFileIsEmpty(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(config.Paths{Root: filepath.Join(dir, "nothing")})
	require.NoError(t, err)
	assert.Zero(t, s.Len())
}

func TestLoadRejectsMalformed(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "too few fields", content: "deploy;ops\n"},
		{name: "too many fields", content: "deploy;ops;ABCDEF01;extra\n"},
		{name: "empty name", content: ";ops;ABCDEF01\n"},
		{name: "duplicate name", content: "a;x;ABCDEF01\na;y;ABCDEF02\n"},
		{name: "duplicate identifier", content: "a;x;ABCDEF01\nb;y;ABCDEF01\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			paths := testPaths(t)
			require.NoError(t, os.WriteFile(paths.MapFile(), []byte(tt.content), 0640))

			s, err := Open(paths)
			assert.ErrorIs(t, err, ErrMalformed)
			assert.Zero(t, s.Len(), "a failed load must not leave partial data")
		})
	}
}

func TestLoadAcceptsLegacyFile(t *testing.T) {
	paths := testPaths(t)
	// The original bootstrap wrote a single seed line without a trailing newline.
	require.NoError(t, os.WriteFile(paths.MapFile(), []byte("test;test;00000000"), 0640))

	s, err := Open(paths)
	require.NoError(t, err)
	e, ok := s.Find("test")
	require.True(t, ok)
	assert.Equal(t, "00000000", e.Identifier)
}

func TestCategoriesAndInCategory(t *testing.T) {
	s := New(testPaths(t))
	for _, n := range []struct{ name, cat string }{{"a", "dev"}, {"b", "ops"}, {"c", "dev"}} {
		_, err := s.Add(n.name, n.cat)
		require.NoError(t, err)
	}

	assert.Equal(t, []string{"dev", "ops"}, s.Categories())

	var names []string
	for _, e := range s.InCategory("dev") {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"a", "c"}, names)
}

func TestFindBySubstring(t *testing.T) {
	s := New(testPaths(t))
	for _, n := range []string{"deploy-dev", "build", "deploy-prod"} {
		_, err := s.Add(n, "")
		require.NoError(t, err)
	}

	assert.Equal(t, []string{"deploy-dev", "deploy-prod"}, s.FindBySubstring("deploy"))
	assert.Len(t, s.FindBySubstring(""), 3)
}
