package endpoint

import "time"

const (
	// DefaultTimeout is the default request timeout
	DefaultTimeout = 30 * time.Second

	// DefaultAPIKeyHeader is the header the API key is sent in
	DefaultAPIKeyHeader = "X-API-Key"

	// MaxResponseSize is the maximum response body size (10MB)
	MaxResponseSize = 10 * 1024 * 1024

	// DefaultPageSize is the page size used when listing workflows
	DefaultPageSize = 100
)

// Config holds the connection settings for one workflow endpoint.
type Config struct {
	BaseURL      string
	APIKey       string
	APIKeyHeader string
	Timeout      time.Duration
}

func (c Config) withDefaults() Config {
	if c.APIKeyHeader == "" {
		c.APIKeyHeader = DefaultAPIKeyHeader
	}
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
	return c
}

// Endpoints bundles the source and target clients for injection.
type Endpoints struct {
	Source *Client
	Target *Client
}

// listResponse is the paginated envelope the workflow API returns.
type listResponse struct {
	Data       []workflowPayload `json:"data"`
	NextCursor string            `json:"nextCursor,omitempty"`
}
