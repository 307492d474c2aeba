package cachesync

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/moddeck/pkg/paths"
)

func writeCache(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		full := filepath.Join(root, paths.CacheDirName, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0644))
	}
}

func TestPreserve(t *testing.T) {
	outputRoot := t.TempDir()
	overlayRoot := t.TempDir()
	writeCache(t, outputRoot, map[string]string{
		"PC/shader1.bin":  "fresh one",
		"PC/shader2.bin":  "fresh two",
		"index/table.dat": "idx",
	})
	// a stale overlay copy must be fully replaced, not merged into
	writeCache(t, overlayRoot, map[string]string{"stale.bin": "old"})

	result, err := Preserve(context.Background(), outputRoot, overlayRoot)
	require.NoError(t, err)
	assert.True(t, result.Synced)
	assert.Equal(t, 3, result.Files)

	got, err := os.ReadFile(filepath.Join(overlayRoot, paths.CacheDirName, "PC", "shader1.bin"))
	require.NoError(t, err)
	assert.Equal(t, "fresh one", string(got))

	_, err = os.Stat(filepath.Join(overlayRoot, paths.CacheDirName, "stale.bin"))
	assert.True(t, os.IsNotExist(err), "stale cache file must be gone")
}

func TestPreserveNoSourceCache(t *testing.T) {
	outputRoot := t.TempDir()
	overlayRoot := t.TempDir()
	writeCache(t, overlayRoot, map[string]string{"keep.bin": "kept"})

	result, err := Preserve(context.Background(), outputRoot, overlayRoot)
	require.NoError(t, err)
	assert.False(t, result.Synced)

	got, err := os.ReadFile(filepath.Join(overlayRoot, paths.CacheDirName, "keep.bin"))
	require.NoError(t, err)
	assert.Equal(t, "kept", string(got), "destination cache must be left untouched")
}

func TestRestore(t *testing.T) {
	overlayRoot := t.TempDir()
	outputRoot := t.TempDir()
	writeCache(t, overlayRoot, map[string]string{"PC/shader.bin": "payload"})

	result, err := Restore(context.Background(), overlayRoot, outputRoot)
	require.NoError(t, err)
	assert.True(t, result.Synced)
	assert.Equal(t, 1, result.Files)

	src := filepath.Join(overlayRoot, paths.CacheDirName, "PC", "shader.bin")
	dst := filepath.Join(outputRoot, paths.CacheDirName, "PC", "shader.bin")
	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(got))

	// real copy, not a hardlink: the game mutates the restored tree
	srcInfo, err := os.Stat(src)
	require.NoError(t, err)
	dstInfo, err := os.Stat(dst)
	require.NoError(t, err)
	assert.False(t, os.SameFile(srcInfo, dstInfo))
}

func TestRestoreReplacesSymlinkDest(t *testing.T) {
	overlayRoot := t.TempDir()
	outputRoot := t.TempDir()
	elsewhere := t.TempDir()
	writeCache(t, overlayRoot, map[string]string{"shader.bin": "real"})
	require.NoError(t, os.Symlink(elsewhere, filepath.Join(outputRoot, paths.CacheDirName)))

	_, err := Restore(context.Background(), overlayRoot, outputRoot)
	require.NoError(t, err)

	info, err := os.Lstat(filepath.Join(outputRoot, paths.CacheDirName))
	require.NoError(t, err)
	assert.True(t, info.IsDir(), "symlink must be replaced by a real directory")

	// the link target was never written into
	entries, err := os.ReadDir(elsewhere)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRestoreReplacesDanglingSymlink(t *testing.T) {
	overlayRoot := t.TempDir()
	outputRoot := t.TempDir()
	writeCache(t, overlayRoot, map[string]string{"shader.bin": "real"})
	require.NoError(t, os.Symlink(
		filepath.Join(outputRoot, "nowhere"),
		filepath.Join(outputRoot, paths.CacheDirName)))

	_, err := Restore(context.Background(), overlayRoot, outputRoot)
	require.NoError(t, err)

	got, err := os.ReadFile(filepath.Join(outputRoot, paths.CacheDirName, "shader.bin"))
	require.NoError(t, err)
	assert.Equal(t, "real", string(got))
}
