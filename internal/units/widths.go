package units

// Widths are the column widths used when rendering.
type Widths struct {
	Name    int `json:"name"`
	Address int `json:"address"`
	State   int `json:"state"`
}

// ComputeWidths returns the longest name, address and state across records
// when align is set, and zero widths otherwise.
func ComputeWidths(records []Record, align bool) Widths {
	var w Widths
	if !align {
		return w
	}

	for _, r := range records {
		w.Name = max(w.Name, len(r.Name))
		w.Address = max(w.Address, len(r.PublicAddress))
		w.State = max(w.State, len(r.AgentState))
	}
	return w
}
