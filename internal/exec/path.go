package exec

import (
	"fmt"
	"strings"

	"github.com/rileyhilliard/juju-units/internal/util"
)

// SSHExecer is an interface for executing SSH commands.
// This allows for easier testing and decoupling from the sshutil package.
type SSHExecer interface {
	Exec(cmd string) (stdout, stderr []byte, exitCode int, err error)
}

// NotFoundExplainer is implemented by runners that can look for a missing
// program and explain how to reach it.
type NotFoundExplainer interface {
	ExplainNotFound(name string) string
}

// PathProbeResult holds results from probing for a command on the remote.
type PathProbeResult struct {
	Command      string   // Command we searched for
	FoundInLogin bool     // Found via login shell
	LoginPath    string   // Full path if found in login shell
	CommonPaths  []string // Paths where command was found in common locations
}

// commonBinPaths are where the juju client usually lands. $HOME expands on
// the remote.
var commonBinPaths = []string{
	"/snap/bin",
	"/usr/local/bin",
	"/usr/bin",
	"$HOME/.local/bin",
	"$HOME/bin",
}

// ProbeCommandPath searches for a command on the remote in a login shell
// and, failing that, in common install locations.
func ProbeCommandPath(client SSHExecer, cmd string) (*PathProbeResult, error) {
	if client == nil {
		return nil, fmt.Errorf("no SSH client provided")
	}

	result := &PathProbeResult{Command: cmd}
	quoted := util.ShellQuote(cmd)

	loginCheck := fmt.Sprintf(`$SHELL -l -c "command -v %s 2>/dev/null"`, quoted)
	stdout, _, exitCode, err := client.Exec(loginCheck)
	if err != nil {
		return nil, fmt.Errorf("probe login shell: %w", err)
	}
	if exitCode == 0 && len(strings.TrimSpace(string(stdout))) > 0 {
		result.FoundInLogin = true
		result.LoginPath = strings.TrimSpace(string(stdout))
		return result, nil
	}

	for _, binPath := range commonBinPaths {
		candidate := binPath + "/" + cmd
		checkCmd := fmt.Sprintf(`test -x "%s" && echo "%s"`, candidate, candidate)
		stdout, _, exitCode, err := client.Exec(checkCmd)
		if err != nil {
			continue
		}
		if exitCode == 0 && len(stdout) > 0 {
			result.CommonPaths = append(result.CommonPaths, strings.TrimSpace(string(stdout)))
		}
	}

	return result, nil
}

// BinaryPath is the best absolute path the probe found, or "".
func (r *PathProbeResult) BinaryPath() string {
	if r == nil {
		return ""
	}
	if r.FoundInLogin {
		return r.LoginPath
	}
	if len(r.CommonPaths) > 0 {
		return r.CommonPaths[0]
	}
	return ""
}

// GenerateSetupSuggestion explains how to point juju-units at a command
// the probe located, or what to try when it found nothing.
func GenerateSetupSuggestion(result *PathProbeResult, hostName string) string {
	if result == nil {
		return ""
	}

	var sb strings.Builder

	if path := result.BinaryPath(); path != "" {
		if result.FoundInLogin {
			sb.WriteString(fmt.Sprintf("'%s' is at %s on %s, but only a login shell has it on PATH.\n\n", result.Command, path, hostName))
		} else {
			sb.WriteString(fmt.Sprintf("Found '%s' at %s on %s, but it's not on PATH.\n\n", result.Command, path, hostName))
		}
		sb.WriteString("Point juju-units at it:\n\n")
		sb.WriteString(fmt.Sprintf("  juju-units --host %s --juju %s\n\n", hostName, path))
		sb.WriteString("or in .juju-units.yaml:\n\n")
		sb.WriteString(fmt.Sprintf("  juju: %s\n", path))
		return sb.String()
	}

	sb.WriteString(fmt.Sprintf("'%s' wasn't found on %s.\n\n", result.Command, hostName))
	sb.WriteString("Fixes:\n\n")
	sb.WriteString(fmt.Sprintf("  1. Install the juju client there: ssh %s \"sudo snap install juju --classic\"\n\n", hostName))
	sb.WriteString("  2. If it's installed somewhere unusual, find it and pass --juju:\n")
	sb.WriteString(fmt.Sprintf("     ssh %s \"find / -name %s -type f 2>/dev/null\"\n", hostName, result.Command))

	return sb.String()
}
