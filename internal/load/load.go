// Package load maps native shared libraries into the process and resolves
// exported symbols from them, presenting one contract across the Windows
// loader and the Unix dynamic linkers.
//
// A Loader hands out opaque handles; the caller owns each handle and must
// pass it to Unload exactly once. The package never unloads on its own
// schedule and never interprets the ABI of the addresses it resolves.
package load

import "fmt"

// Handle is an opaque reference to a loaded shared library. The zero value
// is invalid: a Handle is only meaningful between the Load that produced it
// and the Unload that releases it.
type Handle uintptr

// SymbolAddress is the machine address of a resolved exported symbol. It
// carries no type information; the calling convention and signature are the
// caller's to know.
type SymbolAddress uintptr

// SymbolNotFound is reported by ResolveSymbol when the library does not
// export the requested name. Absence of a symbol is a normal outcome the
// caller branches on, not an error.
const SymbolNotFound SymbolAddress = 0

// DynamicLinker selects which native surface the Unix strategy uses to
// reach the dynamic linker. The choice is fixed when the Loader is
// constructed and has no effect on Windows.
type DynamicLinker int

const (
	// DynamicLinkerDefault calls the process's dynamic-linker interface
	// directly.
	DynamicLinkerDefault DynamicLinker = iota

	// DynamicLinkerLibc binds the dlopen family out of the platform C
	// library instead. Some platforms and libc builds host these entry
	// points in libc rather than a separate libdl.
	DynamicLinkerLibc
)

// Config carries the construction-time options of a Loader.
type Config struct {
	DynamicLinker DynamicLinker
}

// LoadError describes a failed library load. Code is the platform error
// number when the platform provides one; the Unix dynamic linker reports
// text only, so Code stays zero there.
type LoadError struct {
	Path    string
	Message string
	Code    uintptr
}

func (e *LoadError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("loading %s: %s (error %d)", e.Path, e.Message, e.Code)
	}
	return fmt.Sprintf("loading %s: %s", e.Path, e.Message)
}

// strategy is the per-OS-family loader implementation. Exactly one concrete
// strategy exists per supported family, chosen by build tag.
type strategy interface {
	load(path string) (Handle, error)
	resolve(h Handle, name string) SymbolAddress
	unload(h Handle) error
	extension() string
}

// Loader loads native shared libraries using the strategy for the OS family
// it was constructed on. Loaders are independent of each other; the only
// process-wide state they share is the runtime-loader capability cache.
type Loader struct {
	strategy strategy
}

// New constructs a Loader for the running OS family. Construction fails on
// platforms without a supported native loader.
func New() (*Loader, error) {
	return NewWithConfig(Config{})
}

// NewWithConfig is New with explicit construction options.
func NewWithConfig(cfg Config) (*Loader, error) {
	s, err := newStrategy(cfg)
	if err != nil {
		return nil, err
	}
	return &Loader{strategy: s}, nil
}

// Load maps the shared library at path into the process. On failure the
// returned error wraps a *LoadError carrying whatever diagnostic the OS
// loader provided; a failed load leaves no state behind and may be retried.
func (l *Loader) Load(path string) (Handle, error) {
	if path == "" {
		return 0, fmt.Errorf("load: empty library path")
	}
	return l.strategy.load(path)
}

// ResolveSymbol looks up an exported name in a loaded library. It reports
// SymbolNotFound when the library does not export the name (or name is
// empty); resolution never fails with an error. Passing a handle that was
// already unloaded is the caller's bug and has platform-defined behavior.
func (l *Loader) ResolveSymbol(h Handle, name string) SymbolAddress {
	if name == "" {
		return SymbolNotFound
	}
	return l.strategy.resolve(h, name)
}

// Unload releases a handle previously returned by Load. It must be called
// exactly once per handle; the handle and every address resolved through it
// are invalid afterwards.
func (l *Loader) Unload(h Handle) error {
	return l.strategy.unload(h)
}

// Extension reports the shared-library file extension of the selected OS
// family, including the leading dot.
func (l *Loader) Extension() string {
	return l.strategy.extension()
}
