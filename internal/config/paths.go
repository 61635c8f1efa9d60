package config

import (
	"os"
	"path/filepath"
)

// configFileNames are the accepted config file names, in priority order.
var configFileNames = []string{"config.yml", "config.yaml", "config.json"}

// UserConfigPath returns the path to the user-level config file.
// This follows the XDG Base Directory Specification:
// - Linux: ~/.config/tgit/config.yml
// - macOS: ~/Library/Application Support/tgit/config.yml
// - Windows: %APPDATA%\tgit\config.yml
//
// If XDG_CONFIG_HOME is set, it will be respected on Linux.
func UserConfigPath() (string, error) {
	dir, err := UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileNames[0]), nil
}

// UserConfigDir returns the path to the user-level config directory.
func UserConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "tgit"), nil
}

// ProjectConfigPath returns the path to the project-level config file of the
// repository at projectDir.
func ProjectConfigPath(projectDir string) string {
	return filepath.Join(ProjectConfigDir(projectDir), configFileNames[0])
}

// ProjectConfigDir returns the project-level config directory, .tgit under projectDir.
// An empty projectDir means the current directory.
func ProjectConfigDir(projectDir string) string {
	return filepath.Join(projectDir, ".tgit")
}
