package filex

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadMediaSniffsType(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pic.bin")
	png := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a, 0, 0, 0, 0}
	require.NoError(t, os.WriteFile(path, png, 0o644))

	data, contentType, err := ReadMedia(path)
	require.NoError(t, err)
	require.Equal(t, png, data)
	require.Equal(t, "image/png", contentType)
}

func TestReadMediaUnknownContent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "blob")
	require.NoError(t, os.WriteFile(path, []byte{0x00, 0x01, 0x02, 0x03}, 0o644))

	_, contentType, err := ReadMedia(path)
	require.NoError(t, err)
	require.Equal(t, "application/octet-stream", contentType)
}

func TestReadMediaMissingFile(t *testing.T) {
	_, _, err := ReadMedia(filepath.Join(t.TempDir(), "nope.png"))
	require.Error(t, err)
}

func TestEnsureSubDir(t *testing.T) {
	base := t.TempDir()
	t.Chdir(base)

	dir, err := EnsureSubDir("data")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(base, "data"), dir)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	require.True(t, info.IsDir())

	// already existing is fine
	again, err := EnsureSubDir("data")
	require.NoError(t, err)
	require.Equal(t, dir, again)
}
