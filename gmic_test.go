package gmic

import (
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLibraryName(t *testing.T) {
	name := LibraryName()
	switch runtime.GOOS {
	case "windows":
		require.Equal(t, "GmicSharpNative.dll", name)
	case "darwin":
		require.Equal(t, "libGmicSharpNative.dylib", name)
	default:
		require.Equal(t, "libGmicSharpNative.so", name)
	}
}

func TestRuntimeDir(t *testing.T) {
	dir := runtimeDir()
	require.Contains(t, dir, "-")
	require.False(t, strings.Contains(dir, "windows"), "windows is shipped as win-*")
	require.False(t, strings.Contains(dir, "darwin"), "darwin is shipped as osx-*")
}

func TestFindLibraryMissing(t *testing.T) {
	_, err := FindLibrary(t.TempDir())
	require.Error(t, err)
	require.Contains(t, err.Error(), LibraryName())
}

func TestLoadMissingLibrary(t *testing.T) {
	lib, err := Load(filepath.Join(t.TempDir(), LibraryName()))
	require.Error(t, err)
	require.Nil(t, lib)
	require.NotEmpty(t, err.Error())
}

// The full lifecycle needs a real native wrapper library; the test skips
// when none is staged under testdata.
func TestLibraryLifecycle(t *testing.T) {
	path, err := FindLibrary("testdata")
	if err != nil {
		t.Skipf("native wrapper library not staged: %v", err)
	}

	lib, err := Load(path)
	require.NoError(t, err)

	major, minor, patch := lib.Version()
	require.False(t, major == 0 && minor == 0 && patch == 0, "version should be set")

	list, err := lib.NewImageList()
	require.NoError(t, err)
	require.Zero(t, list.Count())
	list.Release()
	list.Release() // second release must be a no-op

	require.NoError(t, lib.Close())
	require.ErrorIs(t, lib.Close(), ErrClosed)

	_, err = lib.NewImageList()
	require.ErrorIs(t, err, ErrClosed)
}
