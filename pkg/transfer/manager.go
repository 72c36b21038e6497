// Package transfer implements the transfer orchestrator: it moves workflow
// records from a source endpoint to a target endpoint through a pipeline of
// deduplication, validation and reporting plugins, with bounded concurrency
// and per-call retry.
package transfer

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectolinq"
	"github.com/Gobusters/ectologger"
	"github.com/google/uuid"

	fncontext "github.com/Ramsey-B/fern/pkg/context"
	"github.com/Ramsey-B/fern/pkg/endpoint"
	"github.com/Ramsey-B/fern/pkg/events"
	"github.com/Ramsey-B/fern/pkg/metrics"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/plugins"
	"github.com/Ramsey-B/fern/pkg/tracing"
	"github.com/Ramsey-B/fern/pkg/utils"
)

const (
	outcomeTransferred = "transferred"
	outcomeSkipped     = "skipped"
	outcomeFailed      = "failed"
)

// Manager runs transfers between one source and one target endpoint. Only
// one run may be active at a time.
type Manager struct {
	source    *endpoint.Client
	target    *endpoint.Client
	registry  *plugins.Registry
	emitter   *events.Emitter
	logger    ectologger.Logger
	reportDir string

	mu       sync.Mutex
	running  bool
	progress models.TransferProgress
}

// NewManager creates a transfer manager.
func NewManager(source, target *endpoint.Client, registry *plugins.Registry, emitter *events.Emitter, logger ectologger.Logger, reportDir string) *Manager {
	return &Manager{
		source:    source,
		target:    target,
		registry:  registry,
		emitter:   emitter,
		logger:    logger,
		reportDir: reportDir,
		progress:  models.TransferProgress{Status: models.TransferStatusIdle},
	}
}

// Progress returns a snapshot of the current run's progress.
func (m *Manager) Progress() models.TransferProgress {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.progress
}

// resolvedPlugins holds the constructed plugin instances for one run.
type resolvedPlugins struct {
	deduplicator plugins.Deduplicator
	validators   []plugins.Validator
	reporters    []plugins.Reporter
}

// Run executes one transfer. Fails fast on invalid options, unknown plugins
// or unreachable endpoints; afterwards per-record problems are recorded in
// the result and only an upstream auth failure aborts the run.
func (m *Manager) Run(ctx context.Context, opts models.TransferOptions) (*models.TransferResult, error) {
	ctx, span := tracing.StartSpan(ctx, "transfer.Manager.Run")
	defer span.End()

	opts = opts.WithDefaults()
	if _, err := utils.Validate(opts); err != nil {
		return nil, httperror.WrapError(http.StatusBadRequest, err)
	}

	if err := m.acquire(); err != nil {
		return nil, err
	}

	result := &models.TransferResult{
		RunID:     uuid.NewString(),
		Status:    models.TransferStatusRunning,
		DryRun:    opts.DryRun,
		StartedAt: time.Now().UTC(),
	}
	// Downstream endpoint calls log under this run ID.
	ctx = fncontext.SetRunID(ctx, result.RunID)

	log := m.logger.WithContext(ctx).WithFields(map[string]any{
		"run_id":      result.RunID,
		"dry_run":     opts.DryRun,
		"parallelism": opts.Parallelism,
	})

	defer func() {
		result.Duration = time.Since(result.StartedAt)
		m.release(result.Status)
		metrics.RecordTransferRun(string(result.Status), result.DryRun, result.Duration.Seconds())
		m.emitter.EmitTransferFinished(ctx, result)
	}()

	resolved, err := m.resolvePlugins(opts)
	if err != nil {
		result.Status = models.TransferStatusFailed
		return nil, err
	}

	if err := m.checkConnectivity(ctx); err != nil {
		result.Status = models.TransferStatusFailed
		log.WithError(err).Error("Endpoint connectivity check failed")
		return nil, err
	}

	sourceWorkflows, targetWorkflows, err := m.fetchWorkflows(ctx)
	if err != nil {
		result.Status = models.TransferStatusFailed
		log.WithError(err).Error("Failed to fetch workflows")
		return nil, err
	}

	items := ectolinq.Filter(sourceWorkflows, func(wf models.Workflow) bool {
		return matchesFilters(wf, opts.Filters)
	})

	m.setTotal(len(items))
	log.WithFields(map[string]any{
		"source_total": len(sourceWorkflows),
		"selected":     len(items),
		"target_total": len(targetWorkflows),
	}).Info("Starting transfer run")

	outcomes := m.processAll(ctx, items, targetWorkflows, opts, resolved, result)

	for _, outcome := range outcomes {
		switch outcome.outcome {
		case outcomeTransferred:
			result.Transferred++
		case outcomeSkipped:
			result.Skipped++
		case outcomeFailed:
			result.Failed++
		}
		result.Issues = append(result.Issues, outcome.issues...)
		metrics.RecordRecordOutcome(outcome.outcome)
	}

	switch {
	case result.Status == models.TransferStatusFailed:
		log.Error("Transfer run aborted")
	case ctx.Err() != nil:
		result.Status = models.TransferStatusCancelled
		log.Warn("Transfer run cancelled")
	default:
		result.Status = models.TransferStatusCompleted
	}

	m.writeReports(ctx, resolved.reporters, result)

	log.WithFields(map[string]any{
		"status":      result.Status,
		"transferred": result.Transferred,
		"skipped":     result.Skipped,
		"failed":      result.Failed,
	}).Info("Transfer run finished")

	return result, nil
}

func (m *Manager) acquire() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.running {
		return httperror.NewHTTPError(http.StatusConflict, "a transfer run is already in progress")
	}
	m.running = true
	m.progress = models.TransferProgress{Status: models.TransferStatusRunning}
	return nil
}

func (m *Manager) release(status models.TransferStatus) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.running = false
	m.progress.Status = status
}

func (m *Manager) setTotal(total int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.progress.Total = total
}

func (m *Manager) incrementProcessed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.progress.Processed++
}

func (m *Manager) resolvePlugins(opts models.TransferOptions) (*resolvedPlugins, error) {
	resolved := &resolvedPlugins{}

	deduplicator, err := m.registry.GetDeduplicator(opts.Deduplicator, opts.PluginOptions[opts.Deduplicator])
	if err != nil {
		return nil, err
	}
	resolved.deduplicator = deduplicator

	for _, name := range opts.Validators {
		v, err := m.registry.GetValidator(name, opts.PluginOptions[name])
		if err != nil {
			return nil, err
		}
		resolved.validators = append(resolved.validators, v)
	}

	for _, name := range opts.Reporters {
		options := make(map[string]any, len(opts.PluginOptions[name])+1)
		for k, v := range opts.PluginOptions[name] {
			options[k] = v
		}
		if _, ok := options["output_dir"]; !ok {
			options["output_dir"] = m.reportDir
		}

		r, err := m.registry.GetReporter(name, options)
		if err != nil {
			return nil, err
		}
		resolved.reporters = append(resolved.reporters, r)
	}

	return resolved, nil
}

func (m *Manager) checkConnectivity(ctx context.Context) error {
	if err := withRetry(ctx, func() error { return m.source.TestConnectivity(ctx) }); err != nil {
		return err
	}
	return withRetry(ctx, func() error { return m.target.TestConnectivity(ctx) })
}

func (m *Manager) fetchWorkflows(ctx context.Context) (source, target []models.Workflow, err error) {
	if err = withRetry(ctx, func() error {
		source, err = m.source.ListWorkflows(ctx)
		return err
	}); err != nil {
		return nil, nil, err
	}

	if err = withRetry(ctx, func() error {
		target, err = m.target.ListWorkflows(ctx)
		return err
	}); err != nil {
		return nil, nil, err
	}

	return source, target, nil
}

// matchesFilters applies the run filters: explicit ID and name allowlists,
// then tag include/exclude with any-overlap semantics.
func matchesFilters(wf models.Workflow, f models.TransferFilters) bool {
	if len(f.IDs) > 0 && !ectolinq.Contains(f.IDs, wf.ID) {
		return false
	}
	if len(f.Names) > 0 && !ectolinq.Contains(f.Names, wf.Name) {
		return false
	}
	if len(f.IncludeTags) > 0 {
		included := false
		for _, tag := range wf.Tags {
			if ectolinq.Contains(f.IncludeTags, tag) {
				included = true
				break
			}
		}
		if !included {
			return false
		}
	}
	for _, tag := range wf.Tags {
		if ectolinq.Contains(f.ExcludeTags, tag) {
			return false
		}
	}
	return true
}

// runState is the mutable state shared by workers. The mutex covers both
// the deduplicator (its match reason is stateful) and the known-workflow
// set, so a duplicate decision and its reservation are atomic.
type runState struct {
	mu           sync.Mutex
	deduplicator plugins.Deduplicator
	existing     []models.Workflow
}

// reserve checks wf against every known workflow and, when unique, adds it
// to the known set so concurrent workers cannot transfer a lookalike. The
// whole set is scored, without short-circuiting on the first hit, so a
// similarity deduplicator reports its best match as the reason.
func (s *runState) reserve(wf models.Workflow) (reason string, duplicate bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.existing {
		if s.deduplicator.IsDuplicate(wf, existing) {
			duplicate = true
		}
	}
	if duplicate {
		return s.deduplicator.Reason(), true
	}
	s.existing = append(s.existing, wf)
	return "", false
}

// unreserve removes a reservation after a failed write.
func (s *runState) unreserve(wf models.Workflow) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.existing {
		if existing.ID == wf.ID && existing.Name == wf.Name {
			s.existing = append(s.existing[:i], s.existing[i+1:]...)
			return
		}
	}
}

type indexedWorkflow struct {
	index    int
	workflow models.Workflow
}

type recordResult struct {
	index   int
	outcome string
	issues  []models.TransferIssue
	fatal   bool
	err     error
}

// processAll fans the selected workflows out over a bounded worker pool. A
// fatal record outcome (an upstream auth failure) cancels the remaining
// work; already-completed outcomes are kept.
func (m *Manager) processAll(ctx context.Context, items []models.Workflow, targetWorkflows []models.Workflow, opts models.TransferOptions, resolved *resolvedPlugins, result *models.TransferResult) []recordResult {
	if len(items) == 0 {
		return nil
	}

	state := &runState{
		deduplicator: resolved.deduplicator,
		existing:     targetWorkflows,
	}

	concurrency := opts.Parallelism
	if concurrency > len(items) {
		concurrency = len(items)
	}

	itemChan := make(chan indexedWorkflow, len(items))
	resultChan := make(chan recordResult, len(items))

	workerCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for item := range itemChan {
				select {
				case <-workerCtx.Done():
					return
				default:
				}
				resultChan <- m.processOne(workerCtx, item, opts, resolved, state)
			}
		}()
	}

	go func() {
		for i, wf := range items {
			select {
			case <-workerCtx.Done():
				break
			case itemChan <- indexedWorkflow{index: i, workflow: wf}:
				continue
			}
			break
		}
		close(itemChan)
	}()

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	outcomes := make([]recordResult, 0, len(items))
	for res := range resultChan {
		outcomes = append(outcomes, res)
		m.incrementProcessed()

		if res.fatal {
			result.Status = models.TransferStatusFailed
			cancel()
		}
	}

	// Index order keeps issue output deterministic.
	ordered := make([]recordResult, 0, len(outcomes))
	byIndex := make(map[int]recordResult, len(outcomes))
	for _, res := range outcomes {
		byIndex[res.index] = res
	}
	for i := range items {
		if res, ok := byIndex[i]; ok {
			ordered = append(ordered, res)
		}
	}

	return ordered
}

// processOne runs the per-record pipeline: credential skip, duplicate
// reservation, validators, then the target write. Duplicates are decided
// before validation so a record that is both a duplicate and malformed
// counts as skipped, not failed.
func (m *Manager) processOne(ctx context.Context, item indexedWorkflow, opts models.TransferOptions, resolved *resolvedPlugins, state *runState) recordResult {
	wf := item.workflow
	res := recordResult{index: item.index}

	if opts.SkipCredentials && wf.HasCredentialRefs() {
		res.outcome = outcomeSkipped
		res.issues = append(res.issues, models.TransferIssue{
			WorkflowID: wf.ID,
			Name:       wf.Name,
			Reason:     "workflow references credentials",
		})
		return res
	}

	if reason, duplicate := state.reserve(wf); duplicate {
		res.outcome = outcomeSkipped
		res.issues = append(res.issues, models.TransferIssue{
			WorkflowID: wf.ID,
			Name:       wf.Name,
			Reason:     reason,
		})
		return res
	}

	failed := false
	for _, v := range resolved.validators {
		for _, issue := range v.Validate(wf) {
			res.issues = append(res.issues, models.TransferIssue{
				WorkflowID: wf.ID,
				Name:       wf.Name,
				Reason:     v.Name() + ": " + issue.Message,
			})
			if issue.Severity == models.SeverityError {
				failed = true
			}
		}
	}
	if failed {
		state.unreserve(wf)
		res.outcome = outcomeFailed
		return res
	}

	if opts.DryRun {
		res.outcome = outcomeTransferred
		return res
	}

	err := withRetry(ctx, func() error {
		_, createErr := m.target.CreateWorkflow(ctx, wf)
		return createErr
	})
	if err != nil {
		state.unreserve(wf)
		res.outcome = outcomeFailed
		res.err = err
		res.fatal = IsAuthError(err)
		res.issues = append(res.issues, models.TransferIssue{
			WorkflowID: wf.ID,
			Name:       wf.Name,
			Reason:     err.Error(),
		})
		m.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"workflow_id": wf.ID,
			"workflow":    wf.Name,
		}).Error("Failed to transfer workflow")
		return res
	}

	res.outcome = outcomeTransferred
	return res
}

// writeReports runs every resolved reporter. Reporter failures are logged
// and do not change the run outcome.
func (m *Manager) writeReports(ctx context.Context, reporters []plugins.Reporter, result *models.TransferResult) {
	for _, r := range reporters {
		path, err := r.Write(result)
		if err != nil {
			m.logger.WithContext(ctx).WithError(err).WithField("reporter", r.Name()).Error("Failed to write report")
			continue
		}
		result.Reports = append(result.Reports, path)
	}
}
