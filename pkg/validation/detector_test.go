package validation

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/fern/pkg/extractor"
	"github.com/Ramsey-B/fern/pkg/models"
)

func newTestDetector(t *testing.T) *Detector {
	t.Helper()
	ex, err := extractor.New("")
	require.NoError(t, err)
	return NewDetector(ex)
}

func named(id, internalID string) models.Workflow {
	return models.Workflow{ID: id, Name: fmt.Sprintf("[%s] workflow %s", internalID, id)}
}

func TestDetect_NoDuplicates(t *testing.T) {
	d := newTestDetector(t)

	result := d.Detect([]models.Workflow{
		named("wf-1", "FIN-INV-001"),
		named("wf-2", "FIN-INV-002"),
		{ID: "wf-3", Name: "no internal id here"},
	}, 0)

	assert.Empty(t, result.Groups)
	assert.Equal(t, 2, result.TotalExtracted)
	assert.False(t, result.Truncated)
	assert.Contains(t, result.InUse, "FIN-INV-001")
	assert.Contains(t, result.InUse, "FIN-INV-002")
	assert.NotContains(t, result.InUse, "")
}

func TestDetect_GroupsAndOrdering(t *testing.T) {
	d := newTestDetector(t)

	// FIN-INV-001 twice, HR-PAY-001 three times, FIN-INV-002 twice.
	result := d.Detect([]models.Workflow{
		named("wf-1", "FIN-INV-001"),
		named("wf-2", "HR-PAY-001"),
		named("wf-3", "FIN-INV-001"),
		named("wf-4", "FIN-INV-002"),
		named("wf-5", "HR-PAY-001"),
		named("wf-6", "FIN-INV-002"),
		named("wf-7", "HR-PAY-001"),
	}, 0)

	require.Len(t, result.Groups, 3)

	// Largest group first, ties keep first-seen order.
	assert.Equal(t, "HR-PAY-001", result.Groups[0].InternalID)
	assert.Equal(t, 3, result.Groups[0].Count)
	assert.Equal(t, []string{"wf-2", "wf-5", "wf-7"}, result.Groups[0].WorkflowIDs)

	assert.Equal(t, "FIN-INV-001", result.Groups[1].InternalID)
	assert.Equal(t, "FIN-INV-002", result.Groups[2].InternalID)
}

func TestDetect_GroupCountsSumToMembers(t *testing.T) {
	d := newTestDetector(t)

	workflows := make([]models.Workflow, 0, 20)
	for i := 0; i < 20; i++ {
		// Five distinct IDs, four workflows each.
		internalID := fmt.Sprintf("FIN-INV-%03d", i%5+1)
		workflows = append(workflows, named(fmt.Sprintf("wf-%d", i), internalID))
	}

	result := d.Detect(workflows, 0)

	total := 0
	for _, group := range result.Groups {
		assert.Equal(t, len(group.WorkflowIDs), group.Count)
		total += group.Count
	}
	assert.Equal(t, 20, total)
}

func TestDetect_CircuitBreaker(t *testing.T) {
	d := newTestDetector(t)

	workflows := make([]models.Workflow, 0, 50)
	for i := 0; i < 50; i++ {
		workflows = append(workflows, named(fmt.Sprintf("wf-%d", i), "FIN-INV-001"))
	}

	result := d.Detect(workflows, 10)
	assert.True(t, result.Truncated)
	require.Len(t, result.Groups, 1)
	assert.Less(t, result.Groups[0].Count, 50)

	// Zero disables the breaker.
	result = d.Detect(workflows, 0)
	assert.False(t, result.Truncated)
	assert.Equal(t, 50, result.Groups[0].Count)
}

func TestDetect_WorkflowsWithoutIDExcluded(t *testing.T) {
	d := newTestDetector(t)

	result := d.Detect([]models.Workflow{
		{ID: "wf-1", Name: "plain name"},
		{ID: "wf-2", Name: "another plain name"},
	}, 0)

	assert.Empty(t, result.Groups)
	assert.Equal(t, 0, result.TotalExtracted)
}
