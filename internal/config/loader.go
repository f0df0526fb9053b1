package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/rileyhilliard/juju-units/internal/errors"
)

const (
	// ConfigFileName is the per-directory config file name.
	ConfigFileName = ".juju-units.yaml"
	// GlobalConfigDir is the directory for the user-wide config.
	GlobalConfigDir = ".config/juju-units"
	// GlobalConfigFile is the user-wide config file name.
	GlobalConfigFile = "config.yaml"
	// EnvPrefix prefixes environment overrides (JUJU_UNITS_ENVIRONMENT, ...).
	EnvPrefix = "JUJU_UNITS"
)

// Find locates the config file using the search order:
// 1. Explicit path (from --config flag)
// 2. .juju-units.yaml in current directory
// 3. ~/.config/juju-units/config.yaml
//
// Returns the path to the config file, or empty string if not found.
func Find(explicit string) (string, error) {
	if explicit != "" {
		explicit = ExpandTilde(explicit)
		if _, err := os.Stat(explicit); err != nil {
			if os.IsNotExist(err) {
				return "", errors.WrapWithCode(err, errors.ErrConfig,
					"Specified config file not found: "+explicit,
					"Check the path is correct")
			}
			return "", errors.WrapWithCode(err, errors.ErrConfig,
				"Cannot access config file: "+explicit,
				"Check file permissions")
		}
		return explicit, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot determine current directory",
			"Check directory permissions")
	}

	localConfig := filepath.Join(cwd, ConfigFileName)
	if _, err := os.Stat(localConfig); err == nil {
		return localConfig, nil
	}

	if home, _ := os.UserHomeDir(); home != "" {
		globalConfig := filepath.Join(home, GlobalConfigDir, GlobalConfigFile)
		if _, err := os.Stat(globalConfig); err == nil {
			return globalConfig, nil
		}
	}

	return "", nil
}

// Load reads config from path, overlays JUJU_UNITS_* environment variables
// and fills in defaults. An empty path skips the file.
func Load(path string) (*Config, error) {
	v := newViper()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			if os.IsNotExist(err) {
				return nil, errors.WrapWithCode(err, errors.ErrConfig,
					"Config file not found",
					"Create "+ConfigFileName+" or point --config at an existing file")
			}
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to read config file",
				"Check the file exists and is valid YAML")
		}
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		where := "the environment"
		if path != "" {
			where = path
		}
		suggestion := "Check the values in " + where
		if strings.Contains(err.Error(), "missing unit in duration") {
			suggestion = "Give timeout a unit, like 30s or 2m, or 0 to wait forever (in " + where + ")"
		}
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid config format", suggestion)
	}

	return cfg, nil
}

// LoadOrDefault finds and loads the config, falling back to defaults plus
// environment overrides when no file exists.
func LoadOrDefault(explicit string) (*Config, string, error) {
	path, err := Find(explicit)
	if err != nil {
		return nil, "", err
	}

	cfg, err := Load(path)
	if err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}

// newViper returns a viper instance with every key defaulted, so that
// AutomaticEnv overrides reach Unmarshal.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	def := DefaultConfig()
	v.SetDefault("environment", def.Environment)
	v.SetDefault("juju", def.Juju)
	v.SetDefault("host", def.Host)
	v.SetDefault("timeout", def.Timeout)
	v.SetDefault("align", def.Align)
	v.SetDefault("quiet", def.Quiet)
	v.SetDefault("subordinates", def.Subordinates)
	v.SetDefault("output", def.Output)
	v.SetDefault("no_color", def.NoColor)
	v.SetDefault("strict_host_key_checking", def.StrictHostKeyChecking)

	return v
}
