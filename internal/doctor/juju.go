package doctor

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/rileyhilliard/juju-units/internal/errors"
	"github.com/rileyhilliard/juju-units/internal/exec"
	"github.com/rileyhilliard/juju-units/internal/juju"
	"github.com/rileyhilliard/juju-units/internal/util"
)

// JujuBinaryCheck runs `juju version` through the runner juju-units uses,
// locally or on the SSH host.
type JujuBinaryCheck struct {
	Runner exec.Runner
	Binary string
	Host   string // Empty for local
}

func (c *JujuBinaryCheck) Name() string     { return "juju_binary" }
func (c *JujuBinaryCheck) Category() string { return CategoryJuju }

func (c *JujuBinaryCheck) Run(ctx context.Context) CheckResult {
	binary := c.Binary
	if binary == "" {
		binary = juju.DefaultBinary
	}

	stdout, stderr, exitCode, err := c.Runner.Run(ctx, binary, "version")
	if err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    firstLine(err),
			Suggestion: suggestionFor(err),
		}
	}

	if exitCode != 0 {
		if c.Host != "" {
			if nfErr := exec.HandleNotFound(binary, c.Host, string(stderr), exitCode); nfErr != nil {
				suggestion := nfErr.Suggestion
				if explainer, ok := c.Runner.(exec.NotFoundExplainer); ok {
					if s := explainer.ExplainNotFound(binary); s != "" {
						suggestion = s
					}
				}
				return CheckResult{
					Name:       c.Name(),
					Status:     StatusFail,
					Message:    nfErr.Message,
					Suggestion: strings.TrimSpace(suggestion),
				}
			}
		}
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    fmt.Sprintf("'%s version' exited %d: %s", binary, exitCode, strings.TrimSpace(string(stderr))),
			Suggestion: "Run it by hand to see what's wrong: " + binary + " version",
		}
	}

	where := "locally"
	if c.Host != "" {
		where = "on " + c.Host
	}
	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: fmt.Sprintf("juju %s %s", strings.TrimSpace(string(stdout)), where),
	}
}

// JujuStatusCheck fetches and decodes `juju status` the way a listing does.
type JujuStatusCheck struct {
	Client      *juju.Client
	Environment string
}

func (c *JujuStatusCheck) Name() string     { return "juju_status" }
func (c *JujuStatusCheck) Category() string { return CategoryJuju }

func (c *JujuStatusCheck) Run(ctx context.Context) CheckResult {
	tree, err := c.Client.Status(ctx, c.Environment)
	if err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    firstLine(err),
			Suggestion: suggestionFor(err),
		}
	}

	env := c.Environment
	if env == "" {
		env = "default environment"
	}

	services := len(tree.Services)
	unitCount := tree.UnitCount()
	if services == 0 {
		return CheckResult{
			Name:    c.Name(),
			Status:  StatusWarn,
			Message: fmt.Sprintf("%s has no services deployed", env),
		}
	}

	return CheckResult{
		Name:   c.Name(),
		Status: StatusPass,
		Message: fmt.Sprintf("%s: %d %s, %d %s", env,
			services, util.Pluralize(services, "service", "services"),
			unitCount, util.Pluralize(unitCount, "unit", "units")),
	}
}

// firstLine is the headline of err: the message of a structured error, or
// the first line of anything else.
func firstLine(err error) string {
	var structured *errors.Error
	if stderrors.As(err, &structured) {
		return structured.Message
	}
	msg := err.Error()
	if i := strings.IndexByte(msg, '\n'); i >= 0 {
		msg = msg[:i]
	}
	return msg
}

func suggestionFor(err error) string {
	var structured *errors.Error
	if stderrors.As(err, &structured) {
		return strings.TrimSpace(structured.Suggestion)
	}
	return ""
}

// Failed turns err into a failing result for a step that isn't a Check.
func Failed(name, category string, err error) CheckResult {
	return CheckResult{
		Name:       name,
		Category:   category,
		Status:     StatusFail,
		Message:    firstLine(err),
		Suggestion: suggestionFor(err),
	}
}
