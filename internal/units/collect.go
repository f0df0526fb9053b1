package units

import "github.com/rileyhilliard/juju-units/internal/juju"

// Collect flattens the tree into records: services and units in tree order,
// and, when includeSubordinates is set, each unit's subordinates right after
// it. A nil tree gives an empty, non-nil slice.
func Collect(tree *juju.StatusTree, includeSubordinates bool) []Record {
	records := []Record{}
	if tree == nil {
		return records
	}

	for _, svc := range tree.Services {
		for _, unit := range svc.Units {
			rec := NewRecord(unit.Name, unit.Raw, false)
			records = append(records, rec)

			if !includeSubordinates || !rec.HasSubordinates() {
				continue
			}
			for _, sub := range rec.Subordinates {
				records = append(records, NewRecord(sub.Name, sub.Raw, true))
			}
		}
	}

	return records
}
