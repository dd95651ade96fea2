package load

import (
	"fmt"
	"sync"
)

// runtimeCapability records whether the process image already carries the
// dynamic-linker entry points, and the bound operations when it does. The
// determination is made once per process and never revisited.
type runtimeCapability struct {
	supported bool

	loadFn    func(path string) uintptr
	resolveFn func(handle uintptr, name string) uintptr
	errorFn   func() string
}

// runtimeLoader returns the process-wide capability record. Concurrent
// first callers race only on who runs the probe; all of them observe the
// same committed record.
var runtimeLoader = sync.OnceValue(probeRuntimeLoader)

// load maps the library at path through the bound loader entry point.
// Calling it without checking supported is a programming error. A fault
// inside the bound operation is converted to a *LoadError, never allowed
// to escape.
func (c *runtimeCapability) load(path string) (h Handle, err error) {
	if !c.supported {
		panic("load: runtime loader called without a capability check")
	}
	defer func() {
		if r := recover(); r != nil {
			h, err = 0, &LoadError{Path: path, Message: fmt.Sprint(r)}
		}
	}()
	raw := c.loadFn(path)
	if raw == 0 {
		return 0, &LoadError{Path: path, Message: c.lastError()}
	}
	return Handle(raw), nil
}

// resolve looks up name through the bound resolver. There is no error
// channel here: a miss, or a fault in the bound operation, is reported as
// SymbolNotFound.
func (c *runtimeCapability) resolve(h Handle, name string) (addr SymbolAddress) {
	if !c.supported {
		panic("load: runtime loader called without a capability check")
	}
	defer func() {
		if recover() != nil {
			addr = SymbolNotFound
		}
	}()
	return SymbolAddress(c.resolveFn(uintptr(h), name))
}

func (c *runtimeCapability) lastError() string {
	if c.errorFn != nil {
		if msg := c.errorFn(); msg != "" {
			return msg
		}
	}
	return "the loader returned a null handle"
}
