//go:build windows

package load

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

var procGetThreadErrorMode = kernel32.NewProc("GetThreadErrorMode")

func getThreadErrorMode() uint32 {
	r, _, _ := procGetThreadErrorMode.Call()
	return uint32(r)
}

// The process error mode must be bit-for-bit identical after a load,
// whatever the load's outcome.
func TestProcessErrorModeRestoredAfterFailedLoad(t *testing.T) {
	l := newLoader(t)

	before := setErrorMode(0)
	setErrorMode(before)

	_, err := l.Load(filepath.Join(t.TempDir(), "missing.dll"))
	require.Error(t, err)

	after := setErrorMode(0)
	setErrorMode(after)
	require.Equal(t, before, after)
}

func TestThreadErrorModeRestoredAfterFailedLoad(t *testing.T) {
	if !hasThreadErrorMode() {
		t.Skip("SetThreadErrorMode not available on this system")
	}
	// Pin the goroutine so both samples read the same OS thread's mode.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	l := newLoader(t)

	before := getThreadErrorMode()
	_, err := l.Load(filepath.Join(t.TempDir(), "missing.dll"))
	require.Error(t, err)
	require.Equal(t, before, getThreadErrorMode())
}

func TestSuppressorRestoresWithoutLoad(t *testing.T) {
	before := setErrorMode(0)
	setErrorMode(before)

	restore := suppressLoadErrorDialog()
	restore()

	after := setErrorMode(0)
	setErrorMode(after)
	require.Equal(t, before, after)
}
