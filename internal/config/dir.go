// Package config resolves the directories planks works with: the project
// root, the hidden per-project state directory, and the documents directory.
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// StateDirName is the hidden per-project directory holding registry files.
const StateDirName = ".planks"

// DocsDirName is the default documents directory relative to the project root.
const DocsDirName = "docs"

// ProjectRoot returns the project root directory.
//
// Resolution:
//   - $PLANKS_DIR if set (explicit override)
//   - the current working directory otherwise
func ProjectRoot() (string, error) {
	if dir := os.Getenv("PLANKS_DIR"); dir != "" {
		return dir, nil
	}
	return os.Getwd()
}

// StateDir returns the per-project state directory under the given root.
// The directory is not created; callers create it on first write.
func StateDir(root string) string {
	return filepath.Join(root, StateDirName)
}

// DocsDir returns the documents directory under the given root.
// $PLANKS_DOCS_DIR overrides the default relative location.
func DocsDir(root string) string {
	if dir := os.Getenv("PLANKS_DOCS_DIR"); dir != "" {
		if filepath.IsAbs(dir) {
			return dir
		}
		return filepath.Join(root, dir)
	}
	return filepath.Join(root, DocsDirName)
}

// GlobalDir returns the global planks configuration directory.
//
// Resolution:
//   - $PLANKS_CONFIG_HOME if set (explicit override)
//   - $XDG_CONFIG_HOME/planks if set (respects XDG on any platform)
//   - %AppData%/planks on Windows
//   - ~/.config/planks on macOS and Linux
func GlobalDir() string {
	if dir := os.Getenv("PLANKS_CONFIG_HOME"); dir != "" {
		return dir
	}

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "planks")
	}

	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "planks")
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "planks")
}
