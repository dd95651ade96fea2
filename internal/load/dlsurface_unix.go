//go:build darwin || freebsd || linux

package load

import (
	"fmt"
	"runtime"

	"github.com/ebitengine/purego"
)

// libcImage is the C library hosting the dlopen family on platforms where
// it does not live in a separate libdl.
func libcImage() string {
	switch runtime.GOOS {
	case "darwin":
		return "/usr/lib/libSystem.B.dylib"
	case "freebsd":
		return "libc.so.7"
	default:
		return "libc.so.6"
	}
}

// libcSurface reaches the dynamic linker through entry points bound out of
// the platform C library by name.
type libcSurface struct {
	dlopen  func(path string, flags int) uintptr
	dlsym   func(handle uintptr, name string) uintptr
	dlclose func(handle uintptr) int
	dlerror func() string
}

func openLibcSurface() (*libcSurface, error) {
	image := libcImage()
	img, err := purego.Dlopen(image, purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		return nil, fmt.Errorf("load: opening %s: %w", image, err)
	}
	s := &libcSurface{}
	if err := bindAll(func() {
		purego.RegisterLibFunc(&s.dlopen, img, "dlopen")
		purego.RegisterLibFunc(&s.dlsym, img, "dlsym")
		purego.RegisterLibFunc(&s.dlclose, img, "dlclose")
		purego.RegisterLibFunc(&s.dlerror, img, "dlerror")
	}); err != nil {
		return nil, fmt.Errorf("load: binding dynamic linker from %s: %w", image, err)
	}
	return s, nil
}

// bindAll runs fn and converts a symbol-binding panic into an error.
func bindAll(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	fn()
	return nil
}

func (s *libcSurface) open(path string) (Handle, error) {
	h := s.dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if h == 0 {
		return 0, &LoadError{Path: path, Message: s.lastError()}
	}
	return Handle(h), nil
}

func (s *libcSurface) lookup(h Handle, name string) SymbolAddress {
	return SymbolAddress(s.dlsym(uintptr(h), name))
}

func (s *libcSurface) close(h Handle) error {
	if s.dlclose(uintptr(h)) != 0 {
		return fmt.Errorf("load: closing library: %s", s.lastError())
	}
	return nil
}

func (s *libcSurface) lastError() string {
	if msg := s.dlerror(); msg != "" {
		return msg
	}
	return "unknown dynamic linker error"
}
