package config

import "time"

// Output formats accepted by --output and the output key.
const (
	OutputText  = "text"
	OutputTable = "table"
	OutputJSON  = "json"
	OutputYAML  = "yaml"
)

// OutputFormats lists the valid output formats in display order.
var OutputFormats = []string{OutputText, OutputTable, OutputJSON, OutputYAML}

// DefaultTimeout bounds each juju invocation unless configured otherwise.
const DefaultTimeout = 60 * time.Second

// Config is the juju-units configuration file, overlaid by JUJU_UNITS_*
// environment variables. Command-line flags take precedence over both.
type Config struct {
	// Environment is the juju environment passed as -e. Empty means juju's default.
	Environment string `yaml:"environment" mapstructure:"environment"`

	// Juju is the juju client binary, a name on PATH or an absolute path.
	Juju string `yaml:"juju" mapstructure:"juju"`

	// Host, when set, runs juju on that machine over SSH.
	// Accepts hostname, user@hostname[:port], or an SSH config alias.
	Host string `yaml:"host" mapstructure:"host"`

	// Timeout bounds each juju invocation. Zero disables it.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	Align        bool   `yaml:"align" mapstructure:"align"`
	Quiet        bool   `yaml:"quiet" mapstructure:"quiet"`
	Subordinates bool   `yaml:"subordinates" mapstructure:"subordinates"`
	Output       string `yaml:"output" mapstructure:"output"`
	NoColor      bool   `yaml:"no_color" mapstructure:"no_color"`

	// StrictHostKeyChecking verifies remote hosts against known_hosts.
	StrictHostKeyChecking bool `yaml:"strict_host_key_checking" mapstructure:"strict_host_key_checking"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Juju:                  "juju",
		Timeout:               DefaultTimeout,
		Output:                OutputText,
		StrictHostKeyChecking: true,
	}
}
