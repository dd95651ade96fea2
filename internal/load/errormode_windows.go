//go:build windows

package load

import (
	"runtime"
	"sync"
	"unsafe"

	"golang.org/x/sys/windows"
)

// semFailCriticalErrors stops the system from showing the critical-error
// dialog when a load cannot find a dependent DLL.
const semFailCriticalErrors = 0x0001

var (
	kernel32               = windows.NewLazySystemDLL("kernel32.dll")
	procSetErrorMode       = kernel32.NewProc("SetErrorMode")
	procSetThreadErrorMode = kernel32.NewProc("SetThreadErrorMode")

	// hasThreadErrorMode reports once whether SetThreadErrorMode exists
	// on this system (Windows 7 and later).
	hasThreadErrorMode = sync.OnceValue(func() bool {
		return procSetThreadErrorMode.Find() == nil
	})

	// processErrorModeMu serializes this process's own uses of the
	// process-global fallback. Native code on other threads calling
	// SetErrorMode directly can still interleave with the window; that
	// race is a known limitation of the fallback, not solved here.
	processErrorModeMu sync.Mutex
)

// suppressLoadErrorDialog disables the critical-error dialog for one load
// attempt and returns the function restoring the previous mode. The caller
// must invoke restore on every exit path.
//
// The thread-local mode is preferred: it leaves other threads untouched.
// It only covers the load while the goroutine stays on one OS thread, so
// the thread is locked for the window. On systems without it, the
// process-global mode is changed instead, ORing the suppression bit into
// the saved value so unrelated mode bits survive the window.
func suppressLoadErrorDialog() (restore func()) {
	if hasThreadErrorMode() {
		runtime.LockOSThread()
		var prev uint32
		setThreadErrorMode(semFailCriticalErrors, &prev)
		if prev != 0 {
			setThreadErrorMode(prev|semFailCriticalErrors, nil)
		}
		return func() {
			setThreadErrorMode(prev, nil)
			runtime.UnlockOSThread()
		}
	}
	processErrorModeMu.Lock()
	prev := setErrorMode(0)
	setErrorMode(prev | semFailCriticalErrors)
	return func() {
		setErrorMode(prev)
		processErrorModeMu.Unlock()
	}
}

func setErrorMode(mode uint32) uint32 {
	r, _, _ := procSetErrorMode.Call(uintptr(mode))
	return uint32(r)
}

func setThreadErrorMode(mode uint32, prev *uint32) {
	procSetThreadErrorMode.Call(uintptr(mode), uintptr(unsafe.Pointer(prev)))
}
