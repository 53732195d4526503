package config

import (
	"os"
	"path/filepath"
	"strings"
)

// runtimeRoot anchors relative log and upload directories. It is the working
// directory, or the directory of the resolved executable when that is unavailable.
func runtimeRoot() string {
	if wd, err := os.Getwd(); err == nil && wd != "" {
		return wd
	}
	exe, err := os.Executable()
	if err != nil || exe == "" {
		return "."
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe)
}

// ResolveRuntimePath makes raw absolute, using fallback when raw is blank.
func ResolveRuntimePath(raw, fallback string) string {
	target := strings.TrimSpace(raw)
	if target == "" {
		target = strings.TrimSpace(fallback)
	}
	switch {
	case target == "":
		return runtimeRoot()
	case filepath.IsAbs(target):
		return filepath.Clean(target)
	}
	return filepath.Join(runtimeRoot(), target)
}
