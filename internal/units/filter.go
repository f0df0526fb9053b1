package units

import (
	"sort"
	"strings"
)

// Filter narrows records by service and agent state. Empty lists match
// everything. Comparisons are case-insensitive.
type Filter struct {
	Services []string
	States   []string
}

// IsZero reports whether the filter keeps every record.
func (f Filter) IsZero() bool {
	return len(f.Services) == 0 && len(f.States) == 0
}

// Apply keeps matching records in order. A subordinate follows its parent:
// it is kept when its parent is kept and it matches the state filter.
func (f Filter) Apply(records []Record) []Record {
	if f.IsZero() {
		return records
	}

	out := []Record{}
	parentKept := false
	for _, r := range records {
		if !r.Subordinate {
			parentKept = f.matchService(r) && f.matchState(r)
			if parentKept {
				out = append(out, r)
			}
			continue
		}
		if parentKept && f.matchState(r) {
			out = append(out, r)
		}
	}
	return out
}

func (f Filter) matchService(r Record) bool {
	if len(f.Services) == 0 {
		return true
	}
	svc := ServiceOf(r.Name)
	for _, s := range f.Services {
		if strings.EqualFold(s, svc) {
			return true
		}
	}
	return false
}

func (f Filter) matchState(r Record) bool {
	if len(f.States) == 0 {
		return true
	}
	for _, s := range f.States {
		if strings.EqualFold(s, r.AgentState) {
			return true
		}
	}
	return false
}

// ServiceOf returns the service part of a unit name ("mysql/0" -> "mysql").
func ServiceOf(unitName string) string {
	if i := strings.LastIndex(unitName, "/"); i >= 0 {
		return unitName[:i]
	}
	return unitName
}

// States lists the distinct agent states in first-seen order.
func States(records []Record) []string {
	seen := map[string]bool{}
	var states []string
	for _, r := range records {
		if r.AgentState == "" || seen[r.AgentState] {
			continue
		}
		seen[r.AgentState] = true
		states = append(states, r.AgentState)
	}
	return states
}

// CountByState tallies records per agent state. Units with no state count
// under "unknown".
func CountByState(records []Record) map[string]int {
	counts := map[string]int{}
	for _, r := range records {
		state := r.AgentState
		if state == "" {
			state = "unknown"
		}
		counts[state]++
	}
	return counts
}

// SortedStates returns the keys of counts in name order.
func SortedStates(counts map[string]int) []string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
