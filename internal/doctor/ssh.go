package doctor

import (
	"context"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"

	"github.com/rileyhilliard/juju-units/internal/exec"
	"github.com/rileyhilliard/juju-units/internal/util"
)

// defaultKeyNames are checked in order of preference.
var defaultKeyNames = []string{"id_ed25519", "id_rsa", "id_ecdsa"}

// SSHKeyCheck verifies an SSH key exists.
type SSHKeyCheck struct {
	Home string // Empty means the user's home directory
}

func (c *SSHKeyCheck) Name() string     { return "ssh_key" }
func (c *SSHKeyCheck) Category() string { return CategorySSH }

func (c *SSHKeyCheck) Run(_ context.Context) CheckResult {
	home, err := homeDir(c.Home)
	if err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    "Cannot determine home directory",
			Suggestion: "Check HOME environment variable",
		}
	}

	for _, name := range defaultKeyNames {
		pubKeyPath := filepath.Join(home, ".ssh", name+".pub")
		if _, err := os.Stat(pubKeyPath); err == nil {
			return CheckResult{
				Name:    c.Name(),
				Status:  StatusPass,
				Message: fmt.Sprintf("SSH key found: ~/.ssh/%s", filepath.Base(pubKeyPath)),
			}
		}
	}

	// The agent may still hold a key, so this isn't fatal
	return CheckResult{
		Name:       c.Name(),
		Status:     StatusWarn,
		Message:    "No SSH key found in ~/.ssh",
		Suggestion: "Generate a key with: ssh-keygen -t ed25519",
	}
}

// SSHAgentCheck verifies the SSH agent is running and holds keys.
type SSHAgentCheck struct {
	// Runner runs ssh-add locally; nil means a LocalRunner.
	Runner exec.Runner
}

func (c *SSHAgentCheck) Name() string     { return "ssh_agent" }
func (c *SSHAgentCheck) Category() string { return CategorySSH }

func (c *SSHAgentCheck) Run(ctx context.Context) CheckResult {
	socket := os.Getenv("SSH_AUTH_SOCK")
	if socket == "" {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    "SSH agent not running",
			Suggestion: "Fix: eval $(ssh-agent) && ssh-add",
		}
	}

	conn, err := net.Dial("unix", socket)
	if err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    "SSH agent socket not accessible",
			Suggestion: "Fix: eval $(ssh-agent) && ssh-add",
		}
	}
	conn.Close() //nolint:errcheck // Best-effort close, error not actionable

	runner := c.Runner
	if runner == nil {
		runner = exec.NewLocalRunner()
	}

	stdout, _, exitCode, err := runner.Run(ctx, "ssh-add", "-l")
	switch {
	case err != nil:
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    "Cannot query SSH agent",
			Suggestion: "Check SSH agent: ssh-add -l",
		}
	case exitCode == 1:
		// ssh-add exits 1 when the agent has no identities
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    "SSH agent running but no keys loaded",
			Suggestion: "Add a key with: ssh-add",
		}
	case exitCode != 0:
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    fmt.Sprintf("ssh-add -l exited %d", exitCode),
			Suggestion: "Check SSH agent: ssh-add -l",
		}
	}

	keyCount := 0
	for _, line := range strings.Split(strings.TrimSpace(string(stdout)), "\n") {
		if strings.TrimSpace(line) != "" {
			keyCount++
		}
	}

	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: fmt.Sprintf("SSH agent running with %d %s loaded", keyCount, util.Pluralize(keyCount, "key", "keys")),
	}
}

// SSHKeyPermissionsCheck verifies private keys aren't readable by others.
type SSHKeyPermissionsCheck struct {
	Home string
}

func (c *SSHKeyPermissionsCheck) Name() string     { return "ssh_key_permissions" }
func (c *SSHKeyPermissionsCheck) Category() string { return CategorySSH }

func (c *SSHKeyPermissionsCheck) Run(_ context.Context) CheckResult {
	home, err := homeDir(c.Home)
	if err != nil {
		return CheckResult{
			Name:    c.Name(),
			Status:  StatusPass,
			Message: "Skipped: no home directory",
		}
	}

	var badPerms []string
	var foundKey bool

	for _, name := range defaultKeyNames {
		info, err := os.Stat(filepath.Join(home, ".ssh", name))
		if err != nil {
			continue
		}
		foundKey = true

		// 0600 or 0400
		if info.Mode().Perm()&0077 != 0 {
			badPerms = append(badPerms, name)
		}
	}

	if !foundKey {
		return CheckResult{
			Name:    c.Name(),
			Status:  StatusPass,
			Message: "No private keys to check",
		}
	}

	if len(badPerms) > 0 {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    fmt.Sprintf("Insecure permissions on: %s", strings.Join(badPerms, ", ")),
			Suggestion: "Fix: chmod 600 ~/.ssh/<keyfile>",
		}
	}

	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: "SSH key permissions OK",
	}
}

// SSHConnectCheck reports whether the configured host accepts a connection.
// Connect does the dialing so callers can keep the client it opens.
type SSHConnectCheck struct {
	Host    string
	Connect func(ctx context.Context) error
}

func (c *SSHConnectCheck) Name() string     { return "ssh_connect" }
func (c *SSHConnectCheck) Category() string { return CategorySSH }

func (c *SSHConnectCheck) Run(ctx context.Context) CheckResult {
	if err := c.Connect(ctx); err != nil {
		suggestion := suggestionFor(err)
		if suggestion == "" {
			suggestion = fmt.Sprintf("Try connecting directly: ssh %s", c.Host)
		}
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    firstLine(err),
			Suggestion: suggestion,
		}
	}

	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: fmt.Sprintf("Connected to %s", c.Host),
	}
}

// NewSSHChecks creates the local SSH setup checks.
func NewSSHChecks() []Check {
	return []Check{
		&SSHKeyCheck{},
		&SSHAgentCheck{},
		&SSHKeyPermissionsCheck{},
	}
}

func homeDir(override string) (string, error) {
	if override != "" {
		return override, nil
	}
	return os.UserHomeDir()
}
