package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShellQuote(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain argument", "status", "'status'"},
		{"empty", "", "''"},
		{"environment with space", "my env", "'my env'"},
		{"snap path", "/snap/bin/juju", "'/snap/bin/juju'"},
		{"single quote", "it's", `'it'\''s'`},
		{"variable stays literal", "$JUJU_ENV", "'$JUJU_ENV'"},
		{"substitution stays literal", "$(juju status)", "'$(juju status)'"},
		{"backticks stay literal", "`id`", "'`id`'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ShellQuote(tt.input))
		})
	}
}
