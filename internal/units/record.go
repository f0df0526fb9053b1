// Package units turns a decoded juju status tree into flat unit records and
// renders them as one line per unit.
package units

import (
	"fmt"

	"github.com/rileyhilliard/juju-units/internal/juju"
)

// Status keys as juju prints them.
const (
	KeyPublicAddress = "public-address"
	KeyOpenPorts     = "open-ports"
	KeyAgentState    = "agent-state"
	KeySubordinates  = "subordinates"

	// juju 2.x reports the agent state under juju-status.current.
	keyJujuStatus = "juju-status"
	keyCurrent    = "current"
)

// Record is one unit ready for display.
type Record struct {
	Name          string   `json:"name" yaml:"name"`
	PublicAddress string   `json:"public_address" yaml:"public_address"`
	OpenPorts     []string `json:"open_ports" yaml:"open_ports"`
	AgentState    string   `json:"agent_state" yaml:"agent_state"`
	Subordinate   bool     `json:"subordinate" yaml:"subordinate"`

	// Subordinates is nil when juju reported none for this unit.
	Subordinates []juju.UnitEntry `json:"-" yaml:"-"`
}

// NewRecord builds a record from a unit's raw status, filling in empty
// defaults for anything juju left out. Values are not validated beyond
// being present.
func NewRecord(name string, raw juju.RawUnit, subordinate bool) Record {
	r := Record{
		Name:         name,
		OpenPorts:    []string{},
		Subordinate:  subordinate,
		Subordinates: raw.Subordinates,
	}

	if v, ok := raw.Fields[KeyPublicAddress]; ok && v != nil {
		r.PublicAddress = fmt.Sprint(v)
	}
	if v, ok := raw.Fields[KeyOpenPorts]; ok && v != nil {
		r.OpenPorts = toStrings(v)
	}

	if v, ok := raw.Fields[KeyAgentState]; ok && v != nil {
		r.AgentState = fmt.Sprint(v)
	} else if js, ok := raw.Fields[keyJujuStatus].(map[string]interface{}); ok {
		if cur, ok := js[keyCurrent]; ok && cur != nil {
			r.AgentState = fmt.Sprint(cur)
		}
	}

	return r
}

// HasSubordinates reports whether juju listed a subordinates mapping for the
// unit, even an empty one.
func (r Record) HasSubordinates() bool {
	return r.Subordinates != nil
}

func toStrings(v interface{}) []string {
	switch vv := v.(type) {
	case []string:
		return append([]string{}, vv...)
	case []interface{}:
		out := make([]string, 0, len(vv))
		for _, item := range vv {
			out = append(out, fmt.Sprint(item))
		}
		return out
	default:
		return []string{fmt.Sprint(vv)}
	}
}
