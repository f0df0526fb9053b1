package doctor

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// isolate points HOME and the working directory at empty temp dirs so no
// real config is found.
func isolate(t *testing.T) string {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	for _, key := range []string{"JUJU_UNITS_OUTPUT", "JUJU_UNITS_JUJU", "JUJU_UNITS_HOST", "JUJU_UNITS_TIMEOUT", "JUJU_UNITS_ENVIRONMENT"} {
		t.Setenv(key, "")
	}
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func TestConfigFileCheck(t *testing.T) {
	t.Run("no config", func(t *testing.T) {
		isolate(t)

		r := (&ConfigFileCheck{}).Run(context.Background())
		if r.Status != StatusPass {
			t.Errorf("expected pass, got %v: %s", r.Status, r.Message)
		}
		if r.Message != "No config file, using defaults" {
			t.Errorf("unexpected message %q", r.Message)
		}
	})

	t.Run("local config", func(t *testing.T) {
		dir := isolate(t)
		if err := os.WriteFile(filepath.Join(dir, ".juju-units.yaml"), []byte("align: true\n"), 0644); err != nil {
			t.Fatal(err)
		}

		r := (&ConfigFileCheck{}).Run(context.Background())
		if r.Status != StatusPass {
			t.Errorf("expected pass, got %v", r.Status)
		}
		if r.Message != "Config file: .juju-units.yaml" {
			t.Errorf("unexpected message %q", r.Message)
		}
	})

	t.Run("explicit path missing", func(t *testing.T) {
		dir := isolate(t)

		r := (&ConfigFileCheck{ConfigPath: filepath.Join(dir, "nope.yaml")}).Run(context.Background())
		if r.Status != StatusFail {
			t.Errorf("expected fail, got %v", r.Status)
		}
		if !strings.Contains(r.Message, "Specified config file not found") {
			t.Errorf("unexpected message %q", r.Message)
		}
		if r.Suggestion == "" {
			t.Error("expected a suggestion")
		}
	})
}

func TestConfigValidCheck(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		wantStatus CheckStatus
		wantMsg    string
	}{
		{"valid", "output: table\ntimeout: 30s\n", StatusPass, "Config valid"},
		{"bad output", "output: tabel\n", StatusFail, "Invalid config"},
		{"bad yaml", "output: [unterminated\n", StatusFail, "Failed to load config"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dir := isolate(t)
			path := filepath.Join(dir, "cfg.yaml")
			if err := os.WriteFile(path, []byte(tc.content), 0644); err != nil {
				t.Fatal(err)
			}

			r := (&ConfigValidCheck{ConfigPath: path}).Run(context.Background())
			if r.Status != tc.wantStatus {
				t.Errorf("status = %v, want %v (%s)", r.Status, tc.wantStatus, r.Message)
			}
			if !strings.Contains(r.Message, tc.wantMsg) {
				t.Errorf("message %q doesn't contain %q", r.Message, tc.wantMsg)
			}
			if strings.Contains(r.Message, "\n") {
				t.Errorf("message should be one line: %q", r.Message)
			}
		})
	}

	t.Run("no config is valid", func(t *testing.T) {
		isolate(t)

		r := (&ConfigValidCheck{}).Run(context.Background())
		if r.Status != StatusPass {
			t.Errorf("expected pass, got %v: %s", r.Status, r.Message)
		}
	})
}

func TestNewConfigChecks(t *testing.T) {
	checks := NewConfigChecks("x.yaml")
	if len(checks) != 2 {
		t.Fatalf("expected 2 checks, got %d", len(checks))
	}
	for _, c := range checks {
		if c.Category() != CategoryConfig {
			t.Errorf("%s has category %s", c.Name(), c.Category())
		}
	}
}
