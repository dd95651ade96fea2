//go:build darwin || freebsd || linux

package load

import (
	"fmt"
	"runtime"

	"github.com/ebitengine/purego"
)

// unixStrategy loads through the runtime-loader capability when the process
// image carries one, and through the configured dlopen surface otherwise.
type unixStrategy struct {
	dl dlSurface
}

func newStrategy(cfg Config) (strategy, error) {
	switch cfg.DynamicLinker {
	case DynamicLinkerDefault:
		return &unixStrategy{dl: directSurface{}}, nil
	case DynamicLinkerLibc:
		dl, err := openLibcSurface()
		if err != nil {
			return nil, err
		}
		return &unixStrategy{dl: dl}, nil
	default:
		return nil, fmt.Errorf("load: unknown dynamic linker selection %d", cfg.DynamicLinker)
	}
}

func (s *unixStrategy) load(path string) (Handle, error) {
	if rl := runtimeLoader(); rl.supported {
		return rl.load(path)
	}
	return s.dl.open(path)
}

func (s *unixStrategy) resolve(h Handle, name string) SymbolAddress {
	if rl := runtimeLoader(); rl.supported {
		return rl.resolve(h, name)
	}
	return s.dl.lookup(h, name)
}

// unload always goes through the configured surface: either way the handle
// came from the same dynamic linker, so dlclose is the right release call.
func (s *unixStrategy) unload(h Handle) error {
	return s.dl.close(h)
}

func (s *unixStrategy) extension() string {
	if runtime.GOOS == "darwin" {
		return ".dylib"
	}
	return ".so"
}

// dlSurface is one of the two native ways to reach the dlopen family.
type dlSurface interface {
	open(path string) (Handle, error)
	lookup(h Handle, name string) SymbolAddress
	close(h Handle) error
}

// directSurface calls the dynamic-linker interface directly.
type directSurface struct{}

func (directSurface) open(path string) (Handle, error) {
	h, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		// The dynamic linker has no error codes, only dlerror text.
		return 0, &LoadError{Path: path, Message: err.Error()}
	}
	if h == 0 {
		return 0, &LoadError{Path: path, Message: "the dynamic linker returned a null handle"}
	}
	return Handle(h), nil
}

func (directSurface) lookup(h Handle, name string) SymbolAddress {
	addr, err := purego.Dlsym(uintptr(h), name)
	if err != nil || addr == 0 {
		return SymbolNotFound
	}
	return SymbolAddress(addr)
}

func (directSurface) close(h Handle) error {
	return purego.Dlclose(uintptr(h))
}
