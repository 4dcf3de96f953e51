package config

import (
	"os"
	"path/filepath"
	"strings"

	"gitlab.com/tozd/go/errors"
)

var (
	configFilenames = []string{
		".tagmark.yaml",
		".tagmark.yml",
		".tagmark.toml",
		".tagmark.json",
		".tagmark.hcl",
	}
	xdgFilenames = []string{
		"config.yaml",
		"config.yml",
		"config.toml",
		"config.json",
		"config.hcl",
	}
)

// Find locates the config file. The second result names where it was
// found: "explicit", "cwd-up", "xdg" or "home". No file is not an error.
func Find(startDir, explicitPath, xdgHome, home string) (string, string, error) {
	if explicit := strings.TrimSpace(explicitPath); explicit != "" {
		candidate := explicit
		if !filepath.IsAbs(candidate) {
			cwd, err := os.Getwd()
			if err != nil {
				return "", "", errors.WithStack(err)
			}
			candidate = filepath.Join(cwd, candidate)
		}
		info, err := os.Stat(candidate)
		if err != nil {
			return "", "", errors.WithStack(err)
		}
		if info.IsDir() {
			return "", "", errors.Errorf("config path %q points to a directory", candidate)
		}
		return candidate, "explicit", nil
	}

	start := strings.TrimSpace(startDir)
	if start == "" {
		start = "."
	}
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", "", errors.WithStack(err)
	}
	for {
		if candidate := firstExisting(dir, configFilenames); candidate != "" {
			return candidate, "cwd-up", nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	homeDir := strings.TrimSpace(home)
	if homeDir == "" {
		if h, err := os.UserHomeDir(); err == nil {
			homeDir = h
		}
	}
	xdgRoot := strings.TrimSpace(xdgHome)
	if xdgRoot == "" && homeDir != "" {
		xdgRoot = filepath.Join(homeDir, ".config")
	}
	if xdgRoot != "" {
		if candidate := firstExisting(filepath.Join(xdgRoot, "tagmark"), xdgFilenames); candidate != "" {
			return candidate, "xdg", nil
		}
	}
	if homeDir != "" {
		if candidate := firstExisting(homeDir, configFilenames); candidate != "" {
			return candidate, "home", nil
		}
	}
	return "", "", nil
}

func firstExisting(dir string, names []string) string {
	for _, name := range names {
		candidate := filepath.Join(dir, name)
		if fileExists(candidate) {
			return candidate
		}
	}
	return ""
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
