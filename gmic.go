// Package gmic provides Go bindings for the native G'MIC wrapper library.
//
// The package maps the wrapper library into the process at runtime, resolves
// the exported entry points it needs into typed Go functions, and owns the
// loaded handle until Close releases it.
package gmic

import (
	"errors"
	"fmt"

	"github.com/ebitengine/purego"

	"github.com/dominota/gmic-go/internal/load"
)

// ErrClosed is returned when a Library is used after Close.
var ErrClosed = errors.New("gmic: library already closed")

// Library owns one loaded copy of the native wrapper library and the entry
// points resolved from it.
//
// It is the caller's responsibility to call Close on the Library when it is
// no longer needed; every entry point resolved from it becomes invalid at
// that moment.
type Library struct {
	loader *load.Loader
	handle load.Handle
	closed bool

	getVersion       func(major, minor, patch *int32)
	imageListCreate  func() uintptr
	imageListDestroy func(list uintptr)
	imageListCount   func(list uintptr) uint32
}

// Load maps the native wrapper library at path and resolves the entry
// points the bindings require. A library whose exports do not match is
// unloaded again and reported by the first missing name.
func Load(path string) (*Library, error) {
	loader, err := load.New()
	if err != nil {
		return nil, fmt.Errorf("gmic: %w", err)
	}
	handle, err := loader.Load(path)
	if err != nil {
		return nil, fmt.Errorf("gmic: %w", err)
	}

	l := &Library{loader: loader, handle: handle}
	for _, entry := range []struct {
		fptr any
		name string
	}{
		{&l.getVersion, "GetLibraryVersion"},
		{&l.imageListCreate, "GmicImageList_Create"},
		{&l.imageListDestroy, "GmicImageList_Destroy"},
		{&l.imageListCount, "GmicImageList_GetCount"},
	} {
		addr := loader.ResolveSymbol(handle, entry.name)
		if addr == load.SymbolNotFound {
			loader.Unload(handle)
			return nil, fmt.Errorf("gmic: %s does not export %s", path, entry.name)
		}
		purego.RegisterFunc(entry.fptr, uintptr(addr))
	}
	return l, nil
}

// Version reports the native wrapper library version.
func (l *Library) Version() (major, minor, patch int) {
	var ma, mi, pa int32
	l.getVersion(&ma, &mi, &pa)
	return int(ma), int(mi), int(pa)
}

// NewImageList allocates an empty native image list. The caller must
// Release it before the Library is closed.
func (l *Library) NewImageList() (*ImageList, error) {
	if l.closed {
		return nil, ErrClosed
	}
	h := l.imageListCreate()
	if h == 0 {
		return nil, errors.New("gmic: native image list allocation failed")
	}
	return &ImageList{lib: l, handle: h}, nil
}

// Close unloads the native library. It must be called exactly once; any
// further use of the Library returns ErrClosed.
func (l *Library) Close() error {
	if l.closed {
		return ErrClosed
	}
	l.closed = true
	return l.loader.Unload(l.handle)
}

// ImageList is a handle to a native image collection.
type ImageList struct {
	lib      *Library
	handle   uintptr
	released bool
}

// Count reports the number of images in the list.
func (il *ImageList) Count() int {
	return int(il.lib.imageListCount(il.handle))
}

// Release frees the native list. It is safe to call more than once; only
// the first call reaches the native side.
func (il *ImageList) Release() {
	if il.released || il.lib.closed {
		return
	}
	il.released = true
	il.lib.imageListDestroy(il.handle)
}
