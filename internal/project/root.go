// Package project provides project discovery and loading functionality.
package project

import (
	"errors"
	"os"
	"path/filepath"
)

// ConfigDirName is the name of the testreg configuration directory.
const ConfigDirName = ".testreg"

// ManifestFileName is the name of the manifest file.
const ManifestFileName = "manifest.yaml"

// ErrNoProjectRoot is returned when .testreg/manifest.yaml is not found.
var ErrNoProjectRoot = errors.New(".testreg/manifest.yaml not found: not a testreg project (or any parent up to the root)")

// FindRoot walks up from the current working directory until it finds .testreg/manifest.yaml.
func FindRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return FindRootFrom(cwd)
}

// FindRootFrom walks up from the given directory until it finds .testreg/manifest.yaml.
func FindRootFrom(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		manifestPath := filepath.Join(dir, ConfigDirName, ManifestFileName)
		if _, err := os.Stat(manifestPath); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			return "", ErrNoProjectRoot
		}
		dir = parent
	}
}

// ManifestPath returns the manifest path for a project root.
func ManifestPath(rootDir string) string {
	return filepath.Join(rootDir, ConfigDirName, ManifestFileName)
}
