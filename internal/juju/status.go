package juju

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// StatusTree is the part of `juju status` output juju-units cares about:
// services and their units, in the order the YAML document lists them.
type StatusTree struct {
	Services []Service
}

// Service is one deployed service (an "application" in juju 2.x).
type Service struct {
	Name  string
	Units []UnitEntry
}

// UnitEntry pairs a unit name with its raw status fields.
type UnitEntry struct {
	Name string
	Raw  RawUnit
}

// RawUnit holds a unit's status fields exactly as juju printed them, keyed by
// the hyphenated YAML keys (public-address, open-ports, agent-state, ...).
type RawUnit struct {
	Fields map[string]interface{}

	// Subordinates is nil when the unit has no subordinates key, and a
	// non-nil (possibly empty) slice when it does.
	Subordinates []UnitEntry
}

// servicesKeys are tried in order to find the services mapping.
var servicesKeys = []string{"services", "applications"}

// DecodeStatus parses `juju status --format yaml` output.
func DecodeStatus(data []byte) (*StatusTree, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse status output: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, fmt.Errorf("parse status output: empty document")
	}

	root := resolve(doc.Content[0])
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("parse status output: expected a mapping at the top level, got %s", kindName(root))
	}

	var servicesNode *yaml.Node
	for _, key := range servicesKeys {
		if n := lookup(root, key); n != nil {
			servicesNode = n
			break
		}
	}
	if servicesNode == nil {
		return nil, fmt.Errorf("parse status output: no services or applications section")
	}

	tree := &StatusTree{}
	if isNull(servicesNode) {
		return tree, nil
	}
	if servicesNode.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("parse status output: services must be a mapping, got %s", kindName(servicesNode))
	}

	err := eachPair(servicesNode, func(name string, value *yaml.Node) error {
		svc, err := decodeService(name, value)
		if err != nil {
			return err
		}
		tree.Services = append(tree.Services, svc)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return tree, nil
}

func decodeService(name string, node *yaml.Node) (Service, error) {
	svc := Service{Name: name}
	if isNull(node) {
		return svc, nil
	}
	if node.Kind != yaml.MappingNode {
		return svc, fmt.Errorf("parse status output: service %q must be a mapping, got %s", name, kindName(node))
	}

	unitsNode := lookup(node, "units")
	if unitsNode == nil || isNull(unitsNode) {
		return svc, nil
	}

	units, err := decodeUnits(unitsNode, "service "+name)
	if err != nil {
		return svc, err
	}
	svc.Units = units
	return svc, nil
}

func decodeUnits(node *yaml.Node, owner string) ([]UnitEntry, error) {
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("parse status output: units of %s must be a mapping, got %s", owner, kindName(node))
	}

	units := []UnitEntry{}
	err := eachPair(node, func(name string, value *yaml.Node) error {
		raw, err := decodeRawUnit(name, value)
		if err != nil {
			return err
		}
		units = append(units, UnitEntry{Name: name, Raw: raw})
		return nil
	})
	return units, err
}

func decodeRawUnit(name string, node *yaml.Node) (RawUnit, error) {
	raw := RawUnit{Fields: map[string]interface{}{}}
	if isNull(node) {
		return raw, nil
	}
	if node.Kind != yaml.MappingNode {
		return raw, fmt.Errorf("parse status output: unit %q must be a mapping, got %s", name, kindName(node))
	}

	err := eachPair(node, func(key string, value *yaml.Node) error {
		if key == "subordinates" {
			if isNull(value) {
				return nil
			}
			subs, err := decodeUnits(value, "unit "+name)
			if err != nil {
				return err
			}
			raw.Subordinates = subs
			return nil
		}

		var v interface{}
		if err := value.Decode(&v); err != nil {
			return fmt.Errorf("parse status output: unit %q field %q: %w", name, key, err)
		}
		raw.Fields[key] = v
		return nil
	})
	return raw, err
}

// ServiceNames lists the services in tree order.
func (t *StatusTree) ServiceNames() []string {
	if t == nil {
		return nil
	}
	names := make([]string, len(t.Services))
	for i, s := range t.Services {
		names[i] = s.Name
	}
	return names
}

// UnitCount counts principal units across all services.
func (t *StatusTree) UnitCount() int {
	if t == nil {
		return 0
	}
	n := 0
	for _, s := range t.Services {
		n += len(s.Units)
	}
	return n
}

// Sorted returns a copy with services, units and subordinates ordered by
// name. The receiver is left untouched.
func (t *StatusTree) Sorted() *StatusTree {
	if t == nil {
		return nil
	}
	out := &StatusTree{Services: make([]Service, len(t.Services))}
	for i, s := range t.Services {
		out.Services[i] = Service{Name: s.Name, Units: sortedUnits(s.Units)}
	}
	sort.SliceStable(out.Services, func(i, j int) bool {
		return out.Services[i].Name < out.Services[j].Name
	})
	return out
}

func sortedUnits(units []UnitEntry) []UnitEntry {
	if units == nil {
		return nil
	}
	out := make([]UnitEntry, len(units))
	for i, u := range units {
		out[i] = UnitEntry{
			Name: u.Name,
			Raw: RawUnit{
				Fields:       u.Raw.Fields,
				Subordinates: sortedUnits(u.Raw.Subordinates),
			},
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out
}

// eachPair walks a mapping node's key/value pairs in document order.
func eachPair(node *yaml.Node, fn func(key string, value *yaml.Node) error) error {
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode := resolve(node.Content[i])
		if keyNode.Kind != yaml.ScalarNode {
			return fmt.Errorf("parse status output: line %d: non-scalar key", keyNode.Line)
		}
		if err := fn(keyNode.Value, resolve(node.Content[i+1])); err != nil {
			return err
		}
	}
	return nil
}

func lookup(node *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(node.Content); i += 2 {
		if k := resolve(node.Content[i]); k.Kind == yaml.ScalarNode && k.Value == key {
			return resolve(node.Content[i+1])
		}
	}
	return nil
}

func resolve(node *yaml.Node) *yaml.Node {
	for node != nil && node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	return node
}

func isNull(node *yaml.Node) bool {
	return node.Kind == yaml.ScalarNode && node.Tag == "!!null"
}

func kindName(node *yaml.Node) string {
	switch node.Kind {
	case yaml.MappingNode:
		return "a mapping"
	case yaml.SequenceNode:
		return "a list"
	case yaml.ScalarNode:
		return fmt.Sprintf("%q", node.Value)
	default:
		return "something else"
	}
}
