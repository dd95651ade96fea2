//go:build darwin || freebsd || linux

package load

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLibcSurfaceLoadResolve(t *testing.T) {
	path := testLibrary(t)

	l, err := NewWithConfig(Config{DynamicLinker: DynamicLinkerLibc})
	if err != nil {
		// Static images without a C library cannot host the surface.
		t.Skipf("libc dynamic-linker surface unavailable: %v", err)
	}

	h, err := l.Load(path)
	require.NoError(t, err)
	require.NotZero(t, h)

	require.NotEqual(t, SymbolNotFound, l.ResolveSymbol(h, "add"))
	require.Equal(t, SymbolNotFound, l.ResolveSymbol(h, "does_not_exist"))
	require.NoError(t, l.Unload(h))
}

func TestLibcSurfaceMissingLibrary(t *testing.T) {
	l, err := NewWithConfig(Config{DynamicLinker: DynamicLinkerLibc})
	if err != nil {
		t.Skipf("libc dynamic-linker surface unavailable: %v", err)
	}

	// Bypass the runtime-loader preference to exercise the surface's own
	// dlerror reporting.
	s := l.strategy.(*unixStrategy)
	h, err := s.dl.open("/nonexistent/libmissing.so")
	require.Error(t, err)
	require.Zero(t, h)

	var le *LoadError
	require.ErrorAs(t, err, &le)
	require.NotEmpty(t, le.Message)
	require.Zero(t, le.Code)
}

func TestUnknownDynamicLinkerSelection(t *testing.T) {
	_, err := NewWithConfig(Config{DynamicLinker: DynamicLinker(99)})
	require.Error(t, err)
}
