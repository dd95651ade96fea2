//go:build darwin || freebsd || linux

package load

import "github.com/ebitengine/purego"

// probeRuntimeLoader looks for the dynamic-linker entry points already
// mapped into the process image, using a default-namespace lookup. A
// statically linked image may carry no loader at all; then the capability
// stays unsupported for the process lifetime and the strategies fall back
// to their own surface. dlerror is bound too when present, for failure
// text; it is not required for the capability itself.
func probeRuntimeLoader() (c *runtimeCapability) {
	c = &runtimeCapability{}
	defer func() {
		if recover() != nil {
			c.supported = false
		}
	}()

	openAddr, err := purego.Dlsym(purego.RTLD_DEFAULT, "dlopen")
	if err != nil || openAddr == 0 {
		return c
	}
	symAddr, err := purego.Dlsym(purego.RTLD_DEFAULT, "dlsym")
	if err != nil || symAddr == 0 {
		return c
	}

	var dlopenFn func(path string, flags int) uintptr
	purego.RegisterFunc(&dlopenFn, openAddr)
	purego.RegisterFunc(&c.resolveFn, symAddr)
	c.loadFn = func(path string) uintptr {
		return dlopenFn(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
	}
	if errAddr, err := purego.Dlsym(purego.RTLD_DEFAULT, "dlerror"); err == nil && errAddr != 0 {
		purego.RegisterFunc(&c.errorFn, errAddr)
	}
	c.supported = true
	return c
}
