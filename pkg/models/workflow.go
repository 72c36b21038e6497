package models

import (
	"bytes"
	"encoding/json"
	"time"
)

// Workflow is a single workflow record as returned by a source or target
// instance. The nodes/connections body is opaque to most of the pipeline;
// only validator plugins look inside it.
type Workflow struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Active      bool            `json:"active"`
	Tags        []string        `json:"tags,omitempty"`
	Nodes       json.RawMessage `json:"nodes,omitempty"`
	Connections json.RawMessage `json:"connections,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// HasCredentialRefs reports whether any node in the workflow body carries a
// credential reference. Used by the skip-credentials transfer option.
func (w *Workflow) HasCredentialRefs() bool {
	if len(w.Nodes) == 0 {
		return false
	}

	var nodes []map[string]json.RawMessage
	if err := json.Unmarshal(w.Nodes, &nodes); err != nil {
		// Unparsable bodies are handled by the integrity validator, not here.
		return bytes.Contains(w.Nodes, []byte(`"credentials"`))
	}

	for _, node := range nodes {
		if creds, ok := node["credentials"]; ok && len(creds) > 0 && string(creds) != "null" && string(creds) != "{}" {
			return true
		}
	}
	return false
}
