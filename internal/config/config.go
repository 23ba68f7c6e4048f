package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mimepick/mimepick/internal/branding"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Config keys.
const (
	KeyLog             = "log"
	KeyRegistryCommand = "registry.command"
	KeySystemDir       = "dirs.system"
	KeyUserDir         = "dirs.user"
	KeyExtraDirs       = "dirs.extra"
	KeyExtension       = "desktop.extension"
	KeySection         = "desktop.section"
	KeyMimeKey         = "desktop.mime_key"
)

// Defaults applied when neither the config file nor the environment sets a key.
const (
	DefaultLog             = "info"
	DefaultRegistryCommand = "xdg-mime"
	DefaultSystemDir       = "/usr/share/applications/"
	DefaultUserDir         = ".local/share/applications/"
	DefaultExtension       = ".desktop"
	DefaultSection         = "Desktop Entry"
	DefaultMimeKey         = "MimeType"
)

// Settings is the resolved configuration for one run.
type Settings struct {
	LogLevel        string
	RegistryCommand string
	SystemDir       string
	// UserDir is relative to the home directory. Empty disables the per-user root.
	UserDir   string
	ExtraDirs []string
	Extension string
	Section   string
	MimeKey   string
}

// Dir returns the path to the config directory (~/.mimepick/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.mimepick/config.yaml).
// MIMEPICK_CONFIG overrides it.
func FilePath() string {
	if v := os.Getenv(branding.EnvVar("CONFIG")); v != "" {
		return v
	}
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := filepath.Dir(FilePath())
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Init points Viper at the config file and environment and registers
// defaults. It does not read the file.
func Init() {
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault(KeyLog, DefaultLog)
	viper.SetDefault(KeyRegistryCommand, DefaultRegistryCommand)
	viper.SetDefault(KeySystemDir, DefaultSystemDir)
	viper.SetDefault(KeyUserDir, DefaultUserDir)
	viper.SetDefault(KeyExtraDirs, []string{})
	viper.SetDefault(KeyExtension, DefaultExtension)
	viper.SetDefault(KeySection, DefaultSection)
	viper.SetDefault(KeyMimeKey, DefaultMimeKey)
}

// Load initializes Viper, validates the config file if one exists, reads it,
// and returns the resolved settings. A missing config file is not an error.
func Load() (*Settings, error) {
	Init()

	path := FilePath()
	if _, err := os.Stat(path); err == nil {
		result, err := ValidateFile(path)
		if err != nil {
			return nil, err
		}
		if !result.Valid {
			return nil, &InvalidError{Path: path, Issues: result.Issues}
		}
		if err := viper.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}

	return current(), nil
}

func current() *Settings {
	return &Settings{
		LogLevel:        viper.GetString(KeyLog),
		RegistryCommand: viper.GetString(KeyRegistryCommand),
		SystemDir:       viper.GetString(KeySystemDir),
		UserDir:         viper.GetString(KeyUserDir),
		ExtraDirs:       viper.GetStringSlice(KeyExtraDirs),
		Extension:       viper.GetString(KeyExtension),
		Section:         viper.GetString(KeySection),
		MimeKey:         viper.GetString(KeyMimeKey),
	}
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// Set writes a config key-value pair and saves the config file. dirs.extra
// takes a list separated by the OS path-list separator.
func Set(key, value string) error {
	if err := EnsureDir(); err != nil {
		return err
	}

	if key == KeyExtraDirs {
		viper.Set(key, filepath.SplitList(value))
	} else {
		viper.Set(key, value)
	}

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// InvalidError reports a config file that failed schema validation.
type InvalidError struct {
	Path   string
	Issues []ValidationIssue
}

func (e *InvalidError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		if issue.Path != "" {
			parts = append(parts, issue.Path+": "+issue.Message)
		} else {
			parts = append(parts, issue.Message)
		}
	}
	return fmt.Sprintf("invalid config file %s: %s", e.Path, strings.Join(parts, "; "))
}
