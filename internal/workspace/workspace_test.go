package workspace

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/remotebuild/internal/remote"
)

const testBuildID = "app-proj-0123456789abcdef0123456789abcdef"

func TestManager_EphemeralMode(t *testing.T) {
	tempBase := t.TempDir()
	mgr := NewManager(tempBase, testBuildID)

	require.NoError(t, mgr.Create())

	wsPath := mgr.GetPath()
	require.NotEmpty(t, wsPath)
	assert.True(t, strings.HasPrefix(filepath.Base(wsPath), testBuildID+"-"), "expected build-id prefix, got %s", wsPath)
	assert.DirExists(t, wsPath)

	// Read-only content must not block cleanup.
	out, err := mgr.CreateSubdir("out")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(out, "artifact"), []byte("bin"), 0o444))
	require.NoError(t, os.Chmod(out, 0o555))

	require.NoError(t, mgr.Cleanup())
	assert.NoDirExists(t, wsPath)
	assert.Empty(t, mgr.GetPath())
}

func TestManager_EphemeralDirectoriesAreUnique(t *testing.T) {
	tempBase := t.TempDir()
	a := NewManager(tempBase, testBuildID)
	b := NewManager(tempBase, testBuildID)

	require.NoError(t, a.Create())
	require.NoError(t, b.Create())

	assert.NotEqual(t, a.GetPath(), b.GetPath())
}

func TestManager_PersistentMode(t *testing.T) {
	tempBase := t.TempDir()
	mgr := NewPersistentManager(tempBase, testBuildID)

	require.NoError(t, mgr.Create())

	wsPath := mgr.GetPath()
	assert.Equal(t, filepath.Join(tempBase, testBuildID), wsPath)
	assert.DirExists(t, wsPath)

	markerFile := filepath.Join(wsPath, "marker.txt")
	require.NoError(t, os.WriteFile(markerFile, []byte("persistent"), 0o600))

	// Cleanup should NOT remove directory in persistent mode
	require.NoError(t, mgr.Cleanup())
	assert.FileExists(t, markerFile)

	// A second manager for the same build id lands in the same place.
	mgr2 := NewPersistentManager(tempBase, testBuildID)
	require.NoError(t, mgr2.Create())
	assert.Equal(t, wsPath, mgr2.GetPath())
	assert.FileExists(t, markerFile)
}

func TestManager_Purge(t *testing.T) {
	tempBase := t.TempDir()
	mgr := NewPersistentManager(tempBase, testBuildID, WithEraser(remote.NewEraser()))
	require.NoError(t, mgr.Create())
	require.NoError(t, os.WriteFile(filepath.Join(mgr.GetPath(), "ro"), nil, 0o444))

	stats, err := mgr.Purge()
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Entries())
	assert.NoDirExists(t, mgr.GetPath())

	// Already gone is fine.
	_, err = mgr.Purge()
	assert.NoError(t, err)
}

func TestManager_RequiresBuildID(t *testing.T) {
	assert.Error(t, NewManager(t.TempDir(), "").Create())
}

func TestManager_CreateSubdirBeforeCreate(t *testing.T) {
	_, err := NewManager(t.TempDir(), testBuildID).CreateSubdir("x")
	assert.Error(t, err)
}

func TestManager_DefaultBaseDir(t *testing.T) {
	mgr := NewPersistentManager("", testBuildID)
	assert.Equal(t, filepath.Join(os.TempDir(), "remotebuild", testBuildID), mgr.GetPath())
}
