// Package endpoint implements the HTTP client for source and target
// workflow instances: connectivity probes, paginated listing and workflow
// writes, all authenticated with an API key header.
package endpoint

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectolinq"
	"github.com/Gobusters/ectologger"

	fncontext "github.com/Ramsey-B/fern/pkg/context"
	"github.com/Ramsey-B/fern/pkg/metrics"
	"github.com/Ramsey-B/fern/pkg/models"
)

// Client talks to one workflow instance. Safe for concurrent use.
type Client struct {
	name   string
	config Config
	client *http.Client
	logger ectologger.Logger
}

// NewClient creates a client for one endpoint. name labels logs and metrics
// ("source" or "target").
func NewClient(name string, cfg Config, logger ectologger.Logger) *Client {
	cfg = cfg.withDefaults()

	return &Client{
		name:   name,
		config: cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}

// Name returns the endpoint label.
func (c *Client) Name() string {
	return c.name
}

// TestConnectivity verifies the endpoint is reachable and the API key is
// accepted by requesting a single workflow.
func (c *Client) TestConnectivity(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodGet, "/api/v1/workflows?limit=1", nil)
	if err != nil {
		return err
	}

	c.logger.WithContext(ctx).WithField("endpoint", c.name).Debug("Endpoint connectivity verified")
	return nil
}

// ListWorkflows fetches every workflow, following cursor pagination until
// the endpoint reports no further page.
func (c *Client) ListWorkflows(ctx context.Context) ([]models.Workflow, error) {
	workflows := make([]models.Workflow, 0)
	cursor := ""

	for {
		path := fmt.Sprintf("/api/v1/workflows?limit=%d", DefaultPageSize)
		if cursor != "" {
			path += "&cursor=" + url.QueryEscape(cursor)
		}

		body, err := c.do(ctx, http.MethodGet, path, nil)
		if err != nil {
			return nil, err
		}

		var page listResponse
		if err := json.Unmarshal(body, &page); err != nil {
			return nil, httperror.NewHTTPErrorf(http.StatusBadGateway, "%s endpoint returned an unreadable workflow list: %v", c.name, err)
		}

		workflows = append(workflows, ectolinq.Map(page.Data, func(p workflowPayload) models.Workflow {
			return p.toModel()
		})...)

		if page.NextCursor == "" {
			break
		}
		cursor = page.NextCursor
	}

	c.logger.WithContext(ctx).WithFields(map[string]any{
		"endpoint": c.name,
		"count":    len(workflows),
	}).Info("Listed workflows")

	return workflows, nil
}

// CreateWorkflow writes a workflow to the endpoint. The endpoint assigns
// the stored record its own ID; the returned workflow carries it.
func (c *Client) CreateWorkflow(ctx context.Context, wf models.Workflow) (models.Workflow, error) {
	payload, err := json.Marshal(fromModel(wf))
	if err != nil {
		return models.Workflow{}, err
	}

	body, err := c.do(ctx, http.MethodPost, "/api/v1/workflows", payload)
	if err != nil {
		return models.Workflow{}, err
	}

	var created workflowPayload
	if err := json.Unmarshal(body, &created); err != nil {
		return models.Workflow{}, httperror.NewHTTPErrorf(http.StatusBadGateway, "%s endpoint returned an unreadable workflow: %v", c.name, err)
	}

	return created.toModel(), nil
}

// do executes one request and returns the response body. Non-2xx statuses
// become HTTPErrors carrying the upstream status code, so callers can
// classify them for retry. The API key never appears in errors or logs.
func (c *Client) do(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.config.BaseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.config.APIKey != "" {
		req.Header.Set(c.config.APIKeyHeader, c.config.APIKey)
	}

	log := c.logger.WithContext(ctx)
	if runID := fncontext.GetRunID(ctx); runID != "" {
		log = log.WithField("run_id", runID)
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		metrics.RecordEndpointRequest(c.name, method, "error", time.Since(start).Seconds())
		log.WithError(err).Errorf("Endpoint request failed: %s %s %s", c.name, method, path)
		return nil, fmt.Errorf("%s endpoint request failed: %w", c.name, err)
	}
	defer resp.Body.Close()

	duration := time.Since(start)
	metrics.RecordEndpointRequest(c.name, method, strconv.Itoa(resp.StatusCode), duration.Seconds())

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if len(data) > MaxResponseSize {
		return nil, fmt.Errorf("response body too large: max %d bytes", MaxResponseSize)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, httperror.NewHTTPErrorf(resp.StatusCode, "%s endpoint returned %d for %s %s", c.name, resp.StatusCode, method, path)
	}

	log.Debugf("Endpoint %s %s %s -> %d (%s)", c.name, method, path, resp.StatusCode, duration)

	return data, nil
}

// workflowPayload is the wire shape of a workflow. Tags arrive as objects;
// the rest of the pipeline only cares about their names.
type workflowPayload struct {
	ID          string          `json:"id,omitempty"`
	Name        string          `json:"name"`
	Active      bool            `json:"active"`
	Tags        []tagPayload    `json:"tags,omitempty"`
	Nodes       json.RawMessage `json:"nodes,omitempty"`
	Connections json.RawMessage `json:"connections,omitempty"`
	CreatedAt   time.Time       `json:"createdAt,omitempty"`
	UpdatedAt   time.Time       `json:"updatedAt,omitempty"`
}

type tagPayload struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
}

func (p workflowPayload) toModel() models.Workflow {
	return models.Workflow{
		ID:     p.ID,
		Name:   p.Name,
		Active: p.Active,
		Tags: ectolinq.Map(p.Tags, func(t tagPayload) string {
			return t.Name
		}),
		Nodes:       p.Nodes,
		Connections: p.Connections,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func fromModel(wf models.Workflow) workflowPayload {
	return workflowPayload{
		Name:   wf.Name,
		Active: wf.Active,
		Tags: ectolinq.Map(wf.Tags, func(name string) tagPayload {
			return tagPayload{Name: name}
		}),
		Nodes:       wf.Nodes,
		Connections: wf.Connections,
	}
}
