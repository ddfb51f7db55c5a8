package launcher

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pxc/internal/config"
)

func newTestLauncher(t *testing.T) (*Launcher, config.Paths) {
	t.Helper()
	dir := t.TempDir()
	paths := config.Paths{Root: filepath.Join(dir, ".pxc"), BinDir: filepath.Join(dir, "bin")}
	require.NoError(t, os.MkdirAll(paths.BinDir, 0755))
	return New(paths), paths
}

func TestExportWritesExecutableWrapper(t *testing.T) {
	l, paths := newTestLauncher(t)

	path, err := l.Export("deploy", "/home/me/.pxc/cmd/ABCDEF01")
	require.NoError(t, err)
	assert.Equal(t, paths.LauncherPath("deploy"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "exec '/home/me/.pxc/cmd/ABCDEF01' \"$@\"\n", string(data))

	st, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0777), st.Mode().Perm())
}

func TestExportOverwrites(t *testing.T) {
	l, _ := newTestLauncher(t)

	_, err := l.Export("deploy", "/old")
	require.NoError(t, err)
	path, err := l.Export("deploy", "/new")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "'/new'")
}

func TestRemoveIsBestEffort(t *testing.T) {
	l, paths := newTestLauncher(t)

	assert.NoError(t, l.Remove("never-exported"))

	_, err := l.Export("deploy", "/x")
	require.NoError(t, err)
	require.NoError(t, l.Remove("deploy"))
	assert.NoFileExists(t, paths.LauncherPath("deploy"))
}

func TestExportMissingBinDir(t *testing.T) {
	l := New(config.Paths{Root: t.TempDir(), BinDir: filepath.Join(t.TempDir(), "missing")})
	_, err := l.Export("deploy", "/x")
	assert.Error(t, err)
}
