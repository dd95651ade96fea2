package gmic

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

const libraryBaseName = "GmicSharpNative"

// LibraryName returns the file name of the native wrapper library for the
// running platform.
func LibraryName() string {
	switch runtime.GOOS {
	case "windows":
		return libraryBaseName + ".dll"
	case "darwin":
		return "lib" + libraryBaseName + ".dylib"
	default:
		return "lib" + libraryBaseName + ".so"
	}
}

// runtimeDir mirrors the layout the native packages ship: one directory per
// OS/architecture pair, e.g. linux-x86_64 or win-x64.
func runtimeDir() string {
	osName := runtime.GOOS
	switch osName {
	case "windows":
		osName = "win"
	case "darwin":
		osName = "osx"
	}

	arch := runtime.GOARCH
	switch arch {
	case "amd64":
		arch = "x64"
	case "386":
		arch = "x86"
	}

	return osName + "-" + arch
}

// FindLibrary probes the given directories, then the executable's own
// directory, for the platform's native wrapper library. Each candidate is
// checked flat and under its per-platform runtime subdirectory. Deciding
// which file to load stays with the caller; this only checks the usual
// places the native packages install to.
func FindLibrary(dirs ...string) (string, error) {
	candidates := append([]string{}, dirs...)
	if exe, err := os.Executable(); err == nil {
		candidates = append(candidates, filepath.Dir(exe))
	}

	name := LibraryName()
	for _, dir := range candidates {
		for _, path := range []string{
			filepath.Join(dir, name),
			filepath.Join(dir, runtimeDir(), name),
		} {
			if _, err := os.Stat(path); err == nil {
				return path, nil
			}
		}
	}
	return "", fmt.Errorf("gmic: %s not found in %d candidate directories", name, len(candidates))
}
