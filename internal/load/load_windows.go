//go:build windows

package load

import (
	"errors"
	"syscall"

	"golang.org/x/sys/windows"
)

type windowsStrategy struct{}

func newStrategy(Config) (strategy, error) {
	return windowsStrategy{}, nil
}

func (windowsStrategy) load(path string) (Handle, error) {
	if rl := runtimeLoader(); rl.supported {
		return rl.load(path)
	}
	// A load with a missing dependent DLL pops a modal dialog by default,
	// which hangs headless runs. Suppress it for this one call; the mode
	// is restored on every exit path, including failure.
	restore := suppressLoadErrorDialog()
	h, err := windows.LoadLibrary(path)
	restore()
	if err != nil || h == 0 {
		return 0, newWindowsLoadError(path, err)
	}
	return Handle(h), nil
}

func (windowsStrategy) resolve(h Handle, name string) SymbolAddress {
	if rl := runtimeLoader(); rl.supported {
		return rl.resolve(h, name)
	}
	addr, err := windows.GetProcAddress(windows.Handle(h), name)
	if err != nil || addr == 0 {
		return SymbolNotFound
	}
	return SymbolAddress(addr)
}

func (windowsStrategy) unload(h Handle) error {
	return windows.FreeLibrary(windows.Handle(h))
}

func (windowsStrategy) extension() string {
	return ".dll"
}

func newWindowsLoadError(path string, err error) *LoadError {
	le := &LoadError{Path: path, Message: "the loader returned a null module handle"}
	if err != nil {
		le.Message = err.Error()
		var errno syscall.Errno
		if errors.As(err, &errno) {
			le.Code = uintptr(errno)
		}
	}
	return le
}
