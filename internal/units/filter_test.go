package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilter_Apply(t *testing.T) {
	records := Collect(sampleTree(), true)

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{
			name: "zero filter keeps everything",
			want: []string{"wordpress/1", "nrpe/0", "logstash/0", "wordpress/0", "mysql/0", "nrpe/1"},
		},
		{
			name:   "by service",
			filter: Filter{Services: []string{"mysql"}},
			want:   []string{"mysql/0", "nrpe/1"},
		},
		{
			name:   "service match is case-insensitive",
			filter: Filter{Services: []string{"WordPress"}},
			want:   []string{"wordpress/1", "nrpe/0", "logstash/0", "wordpress/0"},
		},
		{
			name:   "by state",
			filter: Filter{States: []string{"started"}},
			want:   []string{"wordpress/1", "nrpe/0", "mysql/0"},
		},
		{
			name:   "service and state",
			filter: Filter{Services: []string{"wordpress"}, States: []string{"error", "pending"}},
			want:   []string{"wordpress/0"},
		},
		{
			name:   "no match",
			filter: Filter{Services: []string{"ghost"}},
			want:   []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, names(tt.filter.Apply(records)))
		})
	}
}

func TestServiceOf(t *testing.T) {
	assert.Equal(t, "mysql", ServiceOf("mysql/0"))
	assert.Equal(t, "my/sql", ServiceOf("my/sql/3"))
	assert.Equal(t, "bare", ServiceOf("bare"))
}

func TestStatesAndCounts(t *testing.T) {
	records := []Record{
		{AgentState: "started"},
		{AgentState: "error"},
		{AgentState: "started"},
		{},
	}

	assert.Equal(t, []string{"started", "error"}, States(records))

	counts := CountByState(records)
	assert.Equal(t, map[string]int{"started": 2, "error": 1, "unknown": 1}, counts)
	assert.Equal(t, []string{"error", "started", "unknown"}, SortedStates(counts))
}
