//go:build !(darwin || freebsd || linux)

package load

// The probe is meaningful only where a Unix dynamic linker may already be
// mapped into the process image; everywhere else the capability is
// permanently absent and the strategy goes straight to its native surface.
func probeRuntimeLoader() *runtimeCapability {
	return &runtimeCapability{}
}
