package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasCredentialRefs(t *testing.T) {
	tests := []struct {
		name  string
		nodes string
		want  bool
	}{
		{name: "no nodes", nodes: "", want: false},
		{name: "nodes without credentials", nodes: `[{"name": "Start", "type": "trigger"}]`, want: false},
		{name: "node with credentials", nodes: `[{"name": "Fetch", "type": "http", "credentials": {"apiAuth": "c1"}}]`, want: true},
		{name: "empty credentials object", nodes: `[{"name": "Fetch", "type": "http", "credentials": {}}]`, want: false},
		{name: "null credentials", nodes: `[{"name": "Fetch", "type": "http", "credentials": null}]`, want: false},
		{name: "unparsable nodes fall back to substring check", nodes: `{"credentials": "broken`, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wf := Workflow{}
			if tt.nodes != "" {
				wf.Nodes = json.RawMessage(tt.nodes)
			}
			assert.Equal(t, tt.want, wf.HasCredentialRefs())
		})
	}
}
