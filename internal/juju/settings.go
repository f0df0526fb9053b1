package juju

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ServiceConfig is the decoded output of `juju get <service>`.
type ServiceConfig struct {
	Service  string
	Charm    string
	Settings []Setting
}

// Setting is one charm option, in the order juju listed it.
type Setting struct {
	Name        string      `yaml:"-" json:"name"`
	Type        string      `yaml:"type" json:"type"`
	Value       interface{} `yaml:"value" json:"value"`
	Default     bool        `yaml:"default" json:"default"`
	Description string      `yaml:"description" json:"description"`
}

// ValueString formats the value for display. Unset values print as "".
func (s Setting) ValueString() string {
	if s.Value == nil {
		return ""
	}
	return fmt.Sprint(s.Value)
}

// DecodeServiceConfig parses `juju get --format yaml` output. juju 2.x
// prints "application" where 1.x printed "service"; both are accepted.
func DecodeServiceConfig(data []byte) (*ServiceConfig, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse settings output: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, fmt.Errorf("parse settings output: empty document")
	}

	root := resolve(doc.Content[0])
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("parse settings output: expected a mapping at the top level, got %s", kindName(root))
	}

	cfg := &ServiceConfig{}
	for _, key := range []string{"service", "application"} {
		if n := lookup(root, key); n != nil && n.Kind == yaml.ScalarNode && !isNull(n) {
			cfg.Service = n.Value
			break
		}
	}
	if n := lookup(root, "charm"); n != nil && n.Kind == yaml.ScalarNode && !isNull(n) {
		cfg.Charm = n.Value
	}

	settingsNode := lookup(root, "settings")
	if settingsNode == nil || isNull(settingsNode) {
		return cfg, nil
	}
	if settingsNode.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("parse settings output: settings must be a mapping, got %s", kindName(settingsNode))
	}

	err := eachPair(settingsNode, func(name string, value *yaml.Node) error {
		s := Setting{Name: name}
		if !isNull(value) {
			if err := value.Decode(&s); err != nil {
				return fmt.Errorf("parse settings output: setting %q: %w", name, err)
			}
			s.Name = name
		}
		cfg.Settings = append(cfg.Settings, s)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return cfg, nil
}
