package plugins

import (
	"encoding/json"
	"fmt"

	"github.com/Ramsey-B/fern/pkg/models"
)

// IntegrityValidator performs structural checks on a workflow before it is
// written to the target: the name is present, the node and connection
// payloads parse, every node is named and typed, and every connection
// references a known node.
type IntegrityValidator struct{}

// NewIntegrityValidator creates the integrity validator. It takes no
// options.
func NewIntegrityValidator(_ map[string]any) (Validator, error) {
	return &IntegrityValidator{}, nil
}

func (v *IntegrityValidator) Name() string {
	return "integrity"
}

type workflowNode struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

func (v *IntegrityValidator) Validate(wf models.Workflow) []models.ValidationIssue {
	issues := make([]models.ValidationIssue, 0)

	if wf.Name == "" {
		issues = append(issues, models.ValidationIssue{
			Severity: models.SeverityError,
			Field:    "name",
			Message:  "workflow name is required",
		})
	}

	var nodes []workflowNode
	if len(wf.Nodes) > 0 {
		if err := json.Unmarshal(wf.Nodes, &nodes); err != nil {
			issues = append(issues, models.ValidationIssue{
				Severity: models.SeverityError,
				Field:    "nodes",
				Message:  fmt.Sprintf("nodes payload is not valid: %v", err),
			})
			return issues
		}
	}

	if len(nodes) == 0 {
		issues = append(issues, models.ValidationIssue{
			Severity: models.SeverityWarning,
			Field:    "nodes",
			Message:  "workflow has no nodes",
		})
	}

	known := make(map[string]struct{}, len(nodes))
	for i, node := range nodes {
		if node.Name == "" {
			issues = append(issues, models.ValidationIssue{
				Severity: models.SeverityError,
				Field:    fmt.Sprintf("nodes[%d].name", i),
				Message:  "node name is required",
			})
		}
		if node.Type == "" {
			issues = append(issues, models.ValidationIssue{
				Severity: models.SeverityError,
				Field:    fmt.Sprintf("nodes[%d].type", i),
				Message:  "node type is required",
			})
		}
		known[node.Name] = struct{}{}
	}

	if len(wf.Connections) > 0 {
		var connections map[string]json.RawMessage
		if err := json.Unmarshal(wf.Connections, &connections); err != nil {
			issues = append(issues, models.ValidationIssue{
				Severity: models.SeverityError,
				Field:    "connections",
				Message:  fmt.Sprintf("connections payload is not valid: %v", err),
			})
			return issues
		}

		for source := range connections {
			if _, ok := known[source]; !ok {
				issues = append(issues, models.ValidationIssue{
					Severity: models.SeverityError,
					Field:    "connections",
					Message:  fmt.Sprintf("connection references unknown node %q", source),
				})
			}
		}
	}

	return issues
}

func integrityDescriptor() models.PluginDescriptor {
	return models.PluginDescriptor{
		Name:        "integrity",
		Version:     "1.0.0",
		Description: "Structural checks on nodes and connections",
		Enabled:     true,
	}
}
