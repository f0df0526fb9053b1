package sshutil

import (
	"bytes"
	"net"
	"os"
	"path/filepath"
	"strings"

	"github.com/kevinburke/ssh_config"
)

// Settings holds the resolved connection parameters for one host.
type Settings struct {
	Alias        string // What the user typed, minus user@ and :port
	Hostname     string
	Port         string
	User         string
	IdentityFile string

	// MatchLine is the 1-indexed line of the first Match block in the SSH
	// config, 0 if there is none. Entries after it are invisible to us.
	MatchLine int
}

// Address returns the host:port string for dialing.
func (s *Settings) Address() string {
	return net.JoinHostPort(s.Hostname, s.Port)
}

// ParseHost splits user@host:port. Missing parts come back empty.
func ParseHost(host string) (user, hostname, port string) {
	if atIdx := strings.Index(host, "@"); atIdx != -1 {
		user = host[:atIdx]
		host = host[atIdx+1:]
	}

	if colonIdx := strings.LastIndex(host, ":"); colonIdx != -1 {
		potentialPort := host[colonIdx+1:]
		if potentialPort != "" && isDigits(potentialPort) {
			port = potentialPort
			host = host[:colonIdx]
		}
	}

	return user, host, port
}

// ResolveSettings combines the host string with entries from the SSH config
// at configPath. Values given explicitly in the host string win over the config.
// A missing or unparsable config just yields the defaults.
func ResolveSettings(host, configPath string) *Settings {
	user, hostname, port := ParseHost(host)

	settings := &Settings{
		Alias:    hostname,
		Hostname: hostname,
		Port:     "22",
		User:     currentUser(),
	}

	content, matchLine, err := preprocessSSHConfig(configPath)
	if err == nil {
		settings.MatchLine = matchLine
		if cfg, decodeErr := ssh_config.Decode(bytes.NewReader(content)); decodeErr == nil {
			applyConfig(settings, cfg)
		}
	}

	if user != "" {
		settings.User = user
	}
	if port != "" {
		settings.Port = port
	}

	return settings
}

// DefaultConfigPath returns ~/.ssh/config.
func DefaultConfigPath() string {
	return filepath.Join(homeDir(), ".ssh", "config")
}

func applyConfig(settings *Settings, cfg *ssh_config.Config) {
	alias := settings.Alias

	if hostname, _ := cfg.Get(alias, "HostName"); hostname != "" {
		settings.Hostname = hostname
	}
	if port, _ := cfg.Get(alias, "Port"); port != "" {
		settings.Port = port
	}
	if user, _ := cfg.Get(alias, "User"); user != "" {
		settings.User = user
	}
	if identity, _ := cfg.Get(alias, "IdentityFile"); identity != "" {
		settings.IdentityFile = expandPath(identity)
	}
}

// preprocessSSHConfig reads the SSH config and returns content up to the
// first Match directive, which ssh_config can't parse. Also returns the line
// number where Match was found (0 if not found).
func preprocessSSHConfig(configPath string) ([]byte, int, error) {
	content, err := os.ReadFile(configPath)
	if err != nil {
		return nil, 0, err
	}

	lines := strings.Split(string(content), "\n")
	var result []string
	matchLine := 0

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(strings.ToLower(trimmed), "match ") {
			matchLine = i + 1
			break
		}
		result = append(result, line)
	}

	return []byte(strings.Join(result, "\n")), matchLine, nil
}

func isDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return os.Getenv("HOME")
	}
	return home
}

func currentUser() string {
	if user := os.Getenv("USER"); user != "" {
		return user
	}
	return "root"
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(homeDir(), path[2:])
	}
	return path
}
