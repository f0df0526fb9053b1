package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/rileyhilliard/juju-units/internal/errors"
	"github.com/rileyhilliard/juju-units/internal/util"
)

// Validate checks the config for errors and returns structured error messages.
func Validate(cfg *Config) error {
	if cfg == nil {
		return nil
	}

	if err := ValidateOutput(cfg.Output); err != nil {
		return err
	}

	if cfg.Timeout < 0 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("timeout can't be negative (got %s)", cfg.Timeout),
			"Use a positive duration like 30s, or 0 to wait forever.")
	}
	if cfg.Timeout > 0 && cfg.Timeout < time.Millisecond {
		// A bare YAML integer decodes as nanoseconds
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("timeout %s is too short to be meant", cfg.Timeout),
			"Give timeout a unit, like 30s or 2m, or 0 to wait forever.")
	}

	if strings.TrimSpace(cfg.Juju) == "" {
		return errors.New(errors.ErrConfig,
			"juju binary is empty",
			"Set juju to a name on PATH or an absolute path, e.g. /snap/bin/juju.")
	}

	if strings.ContainsAny(cfg.Environment, " \t\n") {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Environment name '%s' contains whitespace", cfg.Environment),
			"Use the name exactly as 'juju switch -l' lists it.")
	}

	if cfg.Host != "" && strings.ContainsAny(cfg.Host, " \t\n/") {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Host '%s' doesn't look like an SSH destination", cfg.Host),
			"Use hostname, user@hostname, or an alias from ~/.ssh/config.")
	}

	return nil
}

// ValidateOutput checks an output format name, suggesting close matches.
func ValidateOutput(format string) error {
	for _, f := range OutputFormats {
		if format == f {
			return nil
		}
	}

	suggestion := "Use one of: " + strings.Join(OutputFormats, ", ")
	if similar := util.SuggestSimilar(format, OutputFormats, 1); len(similar) > 0 {
		suggestion = fmt.Sprintf("Did you mean '%s'? %s", similar[0], suggestion)
	}
	return errors.New(errors.ErrConfig,
		fmt.Sprintf("Output format '%s' isn't supported", format),
		suggestion)
}
