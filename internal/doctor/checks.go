// Package doctor runs diagnostic checks that explain why juju-units can't
// list units: a bad config, broken SSH setup or a juju client that won't run.
package doctor

import (
	"context"
	"fmt"

	"github.com/rileyhilliard/juju-units/internal/util"
)

// CheckStatus represents the result status of a check.
type CheckStatus int

const (
	StatusPass CheckStatus = iota
	StatusWarn
	StatusFail
)

// Categories, in the order reports list them.
const (
	CategoryConfig = "CONFIG"
	CategorySSH    = "SSH"
	CategoryJuju   = "JUJU"
)

// CategoryOrder is the order categories are reported in.
var CategoryOrder = []string{CategoryConfig, CategorySSH, CategoryJuju}

// String returns a human-readable status string.
func (s CheckStatus) String() string {
	switch s {
	case StatusPass:
		return "pass"
	case StatusWarn:
		return "warn"
	case StatusFail:
		return "fail"
	default:
		return "unknown"
	}
}

// MarshalText renders the status by name in JSON and YAML output.
func (s CheckStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses a status name written by MarshalText.
func (s *CheckStatus) UnmarshalText(text []byte) error {
	switch string(text) {
	case "pass":
		*s = StatusPass
	case "warn":
		*s = StatusWarn
	case "fail":
		*s = StatusFail
	default:
		return fmt.Errorf("unknown check status %q", text)
	}
	return nil
}

// CheckResult contains the outcome of running a check.
type CheckResult struct {
	Name       string      `json:"name" yaml:"name"`
	Category   string      `json:"category" yaml:"category"`
	Status     CheckStatus `json:"status" yaml:"status"`
	Message    string      `json:"message" yaml:"message"`
	Suggestion string      `json:"suggestion,omitempty" yaml:"suggestion,omitempty"`
	Skipped    bool        `json:"skipped,omitempty" yaml:"skipped,omitempty"`
}

// Check defines the interface for diagnostic checks.
type Check interface {
	// Name returns the check's identifier.
	Name() string

	// Category returns the check's category (CONFIG, SSH or JUJU).
	Category() string

	// Run executes the check and returns the result.
	Run(ctx context.Context) CheckResult
}

// RunAll executes checks in order. Category is filled in from the check when
// the result leaves it empty.
func RunAll(ctx context.Context, checks []Check) []CheckResult {
	results := make([]CheckResult, len(checks))
	for i, check := range checks {
		r := check.Run(ctx)
		if r.Name == "" {
			r.Name = check.Name()
		}
		if r.Category == "" {
			r.Category = check.Category()
		}
		results[i] = r
	}
	return results
}

// GroupByCategory organizes results by category, keeping their order.
func GroupByCategory(results []CheckResult) map[string][]CheckResult {
	grouped := make(map[string][]CheckResult)
	for _, r := range results {
		grouped[r.Category] = append(grouped[r.Category], r)
	}
	return grouped
}

// CountByStatus counts results by status.
func CountByStatus(results []CheckResult) map[CheckStatus]int {
	counts := make(map[CheckStatus]int)
	for _, r := range results {
		counts[r.Status]++
	}
	return counts
}

// HasFailures returns true if any result has a fail status.
func HasFailures(results []CheckResult) bool {
	for _, r := range results {
		if r.Status == StatusFail {
			return true
		}
	}
	return false
}

// HasIssues returns true if any result has a fail or warn status.
func HasIssues(results []CheckResult) bool {
	for _, r := range results {
		if r.Status == StatusFail || r.Status == StatusWarn {
			return true
		}
	}
	return false
}

// Summary returns a summary string of the check results.
func Summary(results []CheckResult) string {
	counts := CountByStatus(results)
	warn := counts[StatusWarn]
	fail := counts[StatusFail]

	if fail == 0 && warn == 0 {
		return "Everything looks good"
	}

	total := warn + fail
	return fmt.Sprintf("%d %s found", total, util.Pluralize(total, "issue", "issues"))
}

// Skipped is the result for a check that couldn't run because an earlier
// one failed.
func Skipped(check Check, reason string) CheckResult {
	return CheckResult{
		Name:     check.Name(),
		Category: check.Category(),
		Status:   StatusWarn,
		Message:  "Skipped: " + reason,
		Skipped:  true,
	}
}
