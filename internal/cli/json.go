package cli

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"strings"

	"github.com/rileyhilliard/juju-units/internal/errors"
	"github.com/rileyhilliard/juju-units/pkg/sshutil"
)

// JSONEnvelope wraps command output in a consistent structure for machine parsing.
// All -o json output uses this envelope.
type JSONEnvelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *JSONError  `json:"error,omitempty"`
}

// JSONError provides structured error information for machine parsing.
type JSONError struct {
	Code       string      `json:"code"`
	Message    string      `json:"message"`
	Suggestion string      `json:"suggestion,omitempty"`
	Details    interface{} `json:"details,omitempty"`
}

// Error codes for machine-readable output.
const (
	ErrCodeConfigNotFound    = "CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid     = "CONFIG_INVALID"
	ErrCodeExternalTool      = "EXTERNAL_TOOL_FAILED"
	ErrCodeSSHAuthFailed     = "SSH_AUTH_FAILED"
	ErrCodeSSHHostKey        = "SSH_HOST_KEY"
	ErrCodeSSHConnectionFail = "SSH_CONNECTION_FAILED"
	ErrCodeCommandFailed     = "COMMAND_FAILED"
	ErrCodeUnknown           = "UNKNOWN"
)

// WriteJSONSuccess writes a successful response with data to the writer.
func WriteJSONSuccess(w io.Writer, data interface{}) error {
	return writeJSONEnvelope(w, JSONEnvelope{
		Success: true,
		Data:    data,
	})
}

// WriteJSONFromError converts a Go error to a JSON error response.
func WriteJSONFromError(w io.Writer, err error) error {
	return writeJSONEnvelope(w, JSONEnvelope{
		Success: false,
		Error:   ErrorToJSON(err),
	})
}

// writeJSONEnvelope writes the envelope with consistent formatting.
func writeJSONEnvelope(w io.Writer, env JSONEnvelope) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(env)
}

// ErrorToJSON converts a Go error to a JSONError with appropriate code mapping.
func ErrorToJSON(err error) *JSONError {
	if err == nil {
		return nil
	}

	var juErr *errors.Error
	if stderrors.As(err, &juErr) {
		out := &JSONError{
			Code:       mapErrorCode(juErr),
			Message:    juErr.Message,
			Suggestion: juErr.Suggestion,
		}
		if juErr.Cause != nil {
			out.Details = map[string]interface{}{"cause": juErr.Cause.Error()}
		}
		return out
	}

	return &JSONError{
		Code:    ErrCodeUnknown,
		Message: err.Error(),
	}
}

// mapErrorCode maps internal error codes to machine-readable codes.
func mapErrorCode(e *errors.Error) string {
	switch e.Code {
	case errors.ErrConfig:
		msgLower := strings.ToLower(e.Message)
		if strings.Contains(msgLower, "not found") {
			return ErrCodeConfigNotFound
		}
		return ErrCodeConfigInvalid
	case errors.ErrExternal:
		return ErrCodeExternalTool
	case errors.ErrExec:
		return ErrCodeCommandFailed
	case errors.ErrSSH:
		var hostKey *sshutil.HostKeyMismatchError
		if stderrors.As(e.Cause, &hostKey) || strings.Contains(strings.ToLower(e.Message), "host key") {
			return ErrCodeSSHHostKey
		}
		var encrypted *sshutil.EncryptedKeyError
		if stderrors.As(e.Cause, &encrypted) || strings.Contains(strings.ToLower(e.Message), "auth") ||
			strings.Contains(strings.ToLower(e.Message), "key") {
			return ErrCodeSSHAuthFailed
		}
		return ErrCodeSSHConnectionFail
	}

	return ErrCodeUnknown
}
