package exec

import (
	"fmt"
	"regexp"

	"github.com/rileyhilliard/juju-units/internal/errors"
)

// commandNotFoundPatterns detect "command not found" output from various
// shells. They only apply together with exit code 127.
var commandNotFoundPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)bash: (\S+): command not found`),
	regexp.MustCompile(`(?i)zsh: command not found: (\S+)`),
	regexp.MustCompile(`(?i)sh: \d+: (\S+): not found`),
	regexp.MustCompile(`(?i)-bash: (\S+): No such file or directory`),
	regexp.MustCompile(`(?i)(\S+): not found`),
	regexp.MustCompile(`(?i)(\S+): command not found`),
}

// IsCommandNotFound checks if the error output indicates a missing command.
// Returns the command name (if extractable) and whether it's a command-not-found error.
func IsCommandNotFound(stderr string, exitCode int) (string, bool) {
	if exitCode != 127 {
		return "", false
	}

	for _, pattern := range commandNotFoundPatterns {
		if matches := pattern.FindStringSubmatch(stderr); len(matches) > 1 {
			return matches[1], true
		}
	}

	return "", true
}

// HandleNotFound returns a structured error when a remote run failed because
// the program isn't on the remote PATH, and nil otherwise.
func HandleNotFound(name, host, stderr string, exitCode int) *errors.Error {
	cmdName, notFound := IsCommandNotFound(stderr, exitCode)
	if !notFound {
		return nil
	}
	if cmdName == "" {
		cmdName = name
	}

	suggestion := fmt.Sprintf(`'%s' wasn't found in the SSH session's PATH on %s.

Fixes:

1. Install the juju client on that machine

2. If it's installed, check the non-interactive PATH:
   ssh %s "which %s"

3. Point at it explicitly:
   juju-units --host %s --juju /snap/bin/juju`, cmdName, host, host, cmdName, host)

	return errors.New(errors.ErrExternal,
		fmt.Sprintf("'%s' not found in PATH on %s", cmdName, host),
		suggestion)
}
