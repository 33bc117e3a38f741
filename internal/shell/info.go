// Package shell exposes the two read-only facts the desktop shell used to
// answer over IPC: the application version and its install path.
package shell

import (
	"os"
	"path/filepath"
	"runtime/debug"
)

// Version is overridable at build time:
//
//	go build -ldflags "-X github.com/patisserie-app/admin/internal/shell.Version=1.4.2"
var Version = "dev"

// AppVersion returns the build-time version, falling back to the module
// version recorded in the binary's build info.
func AppVersion() string {
	if Version != "dev" {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return Version
}

// AppPath returns the directory the running binary was installed to.
func AppPath() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}
