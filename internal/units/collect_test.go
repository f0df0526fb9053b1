package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/juju-units/internal/juju"
)

func unit(name string, fields map[string]interface{}, subs ...juju.UnitEntry) juju.UnitEntry {
	u := juju.UnitEntry{Name: name, Raw: juju.RawUnit{Fields: fields}}
	if subs != nil {
		u.Raw.Subordinates = subs
	}
	return u
}

func sampleTree() *juju.StatusTree {
	return &juju.StatusTree{Services: []juju.Service{
		{Name: "wordpress", Units: []juju.UnitEntry{
			unit("wordpress/1", map[string]interface{}{"agent-state": "started"},
				unit("nrpe/0", map[string]interface{}{"agent-state": "started"}),
				unit("logstash/0", map[string]interface{}{"agent-state": "pending"}),
			),
			unit("wordpress/0", map[string]interface{}{"agent-state": "error"}),
		}},
		{Name: "mysql", Units: []juju.UnitEntry{
			unit("mysql/0", map[string]interface{}{"agent-state": "started"},
				unit("nrpe/1", nil),
			),
		}},
		{Name: "nrpe"},
	}}
}

func names(records []Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Name
	}
	return out
}

func TestCollect_SingleUnit(t *testing.T) {
	tree := &juju.StatusTree{Services: []juju.Service{
		{Name: "web", Units: []juju.UnitEntry{
			unit("web/0", map[string]interface{}{
				"public-address": "10.0.0.1",
				"agent-state":    "started",
				"open-ports":     []interface{}{"80/tcp"},
			}),
		}},
	}}

	records := Collect(tree, false)
	require.Len(t, records, 1)
	assert.Equal(t, "web/0", records[0].Name)
	assert.Equal(t, "10.0.0.1", records[0].PublicAddress)
	assert.Equal(t, "started", records[0].AgentState)
	assert.Equal(t, []string{"80/tcp"}, records[0].OpenPorts)
	assert.False(t, records[0].Subordinate)
}

func TestCollect_WithoutSubordinates(t *testing.T) {
	records := Collect(sampleTree(), false)

	assert.Equal(t, []string{"wordpress/1", "wordpress/0", "mysql/0"}, names(records))
	for _, r := range records {
		assert.False(t, r.Subordinate)
	}
}

func TestCollect_WithSubordinates(t *testing.T) {
	records := Collect(sampleTree(), true)

	assert.Equal(t, []string{
		"wordpress/1", "nrpe/0", "logstash/0",
		"wordpress/0",
		"mysql/0", "nrpe/1",
	}, names(records))

	wantSub := []bool{false, true, true, false, false, true}
	for i, r := range records {
		assert.Equal(t, wantSub[i], r.Subordinate, r.Name)
	}
}

func TestCollect_SubordinateFollowsParent(t *testing.T) {
	records := Collect(sampleTree(), true)

	var parent string
	for _, r := range records {
		if !r.Subordinate {
			parent = r.Name
			continue
		}
		require.NotEmpty(t, parent, "subordinate %s has no parent before it", r.Name)
	}
}

func TestCollect_EmptySubordinatesMapping(t *testing.T) {
	tree := &juju.StatusTree{Services: []juju.Service{
		{Name: "web", Units: []juju.UnitEntry{
			{Name: "web/0", Raw: juju.RawUnit{Subordinates: []juju.UnitEntry{}}},
		}},
	}}
	assert.Equal(t, []string{"web/0"}, names(Collect(tree, true)))
}

func TestCollect_Empty(t *testing.T) {
	assert.NotNil(t, Collect(nil, true))
	assert.Empty(t, Collect(nil, true))
	assert.Empty(t, Collect(&juju.StatusTree{}, false))
}
