// Package validation implements internal-ID duplicate detection, replacement
// suggestion, and the validation service that ties them together.
package validation

import (
	"sort"

	"github.com/Ramsey-B/fern/pkg/extractor"
	"github.com/Ramsey-B/fern/pkg/models"
)

// DetectResult is the output of one duplicate-detection pass.
type DetectResult struct {
	// Groups holds every internal ID shared by two or more workflows,
	// sorted descending by count. Ties keep first-seen order.
	Groups []models.DuplicateGroup

	// InUse is the set of every internal ID extracted during the pass,
	// duplicated or not. The suggestion engine needs the full set.
	InUse map[string]struct{}

	// TotalExtracted counts workflows that yielded an internal ID.
	TotalExtracted int

	// Truncated reports that the circuit breaker stopped the scan early.
	Truncated bool
}

// Detector groups workflows by internal ID in a single linear pass.
type Detector struct {
	extractor *extractor.Extractor
}

// NewDetector creates a Detector using the given extractor.
func NewDetector(ex *extractor.Extractor) *Detector {
	return &Detector{extractor: ex}
}

// Detect builds the internal ID index and returns groups with two or more
// members. maxDuplicates is the circuit breaker: once more than that many
// duplicate records have been seen the scan aborts early (zero disables).
// Workflows without an internal ID are excluded entirely.
func (d *Detector) Detect(workflows []models.Workflow, maxDuplicates int) DetectResult {
	index := make(map[string][]string)
	order := make([]string, 0)
	result := DetectResult{InUse: make(map[string]struct{})}

	duplicateCount := 0
	for _, wf := range workflows {
		id, ok := d.extractor.ExtractID(wf)
		if !ok {
			continue
		}
		result.TotalExtracted++
		result.InUse[id] = struct{}{}

		if _, seen := index[id]; !seen {
			order = append(order, id)
		} else {
			duplicateCount++
		}
		index[id] = append(index[id], wf.ID)

		if maxDuplicates > 0 && duplicateCount > maxDuplicates {
			result.Truncated = true
			break
		}
	}

	for _, id := range order {
		ids := index[id]
		if len(ids) < 2 {
			continue
		}
		result.Groups = append(result.Groups, models.DuplicateGroup{
			InternalID:  id,
			WorkflowIDs: ids,
			Count:       len(ids),
		})
	}

	// Stable sort keeps first-seen order for equal counts.
	sort.SliceStable(result.Groups, func(i, j int) bool {
		return result.Groups[i].Count > result.Groups[j].Count
	})

	return result
}
