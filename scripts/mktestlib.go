// Builds the trivial native library the loader tests exercise. Run from
// anywhere inside the module:
//
//	go run ./scripts
package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

func main() {
	var ext string
	switch runtime.GOOS {
	case "linux", "freebsd":
		ext = "so"
	case "darwin":
		ext = "dylib"
	case "windows":
		ext = "dll"
	default:
		fmt.Printf("Unsupported operating system: %s\n", runtime.GOOS)
		os.Exit(1)
	}

	root, err := moduleRoot()
	if err != nil {
		fmt.Printf("Error locating module root: %v\n", err)
		os.Exit(1)
	}

	dstDir := filepath.Join(root, "internal", "load", "testdata")
	if err := os.MkdirAll(dstDir, 0755); err != nil {
		fmt.Printf("Error creating %s: %v\n", dstDir, err)
		os.Exit(1)
	}
	dst := filepath.Join(dstDir, fmt.Sprintf("libtestadd.%s", ext))
	src := filepath.Join(root, "scripts", "testlib", "add.c")

	cc := os.Getenv("CC")
	if cc == "" {
		cc = "cc"
	}

	fmt.Printf("+ Building %s from %s\n", dst, src)
	cmd := exec.Command(cc, "-shared", "-fPIC", "-o", dst, src)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		fmt.Printf("Error building test library: %v\n", err)
		os.Exit(1)
	}
}

func moduleRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no go.mod above %s", dir)
		}
		dir = parent
	}
}
