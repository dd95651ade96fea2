//go:build !(darwin || freebsd || linux || windows)

package load

import (
	"fmt"
	"runtime"
)

func newStrategy(Config) (strategy, error) {
	return nil, fmt.Errorf("load: no native library loader for %s", runtime.GOOS)
}
