package savedsearch

import (
	"context"
	"fmt"
	"strings"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/tendant/simple-notify/pkg/httpclient"
)

// Source returns the saved-search results not yet sent, keyed by customer
// email.
type Source interface {
	PendingResults(ctx context.Context) (map[string][]ResultGroup, error)
}

// HTTPSource reads pending results from the saved-search service.
type HTTPSource struct {
	baseURL string
	http    *retryablehttp.Client
}

// NewHTTPSource creates a Source for the service at baseURL. A nil client
// selects the default retrying client.
func NewHTTPSource(baseURL string, client *retryablehttp.Client) (*HTTPSource, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("saved search base URL cannot be empty")
	}
	if client == nil {
		client = httpclient.New()
	}
	return &HTTPSource{baseURL: strings.TrimRight(baseURL, "/"), http: client}, nil
}

type pendingResultsResponse struct {
	Results map[string][]ResultGroup `json:"results"`
}

// PendingResults fetches GET {baseURL}/saved-searches/pending-results.
func (s *HTTPSource) PendingResults(ctx context.Context) (map[string][]ResultGroup, error) {
	var resp pendingResultsResponse
	if err := httpclient.GetJSON(ctx, s.http, s.baseURL+"/saved-searches/pending-results", &resp); err != nil {
		return nil, fmt.Errorf("fetch pending saved search results: %w", err)
	}
	if resp.Results == nil {
		resp.Results = map[string][]ResultGroup{}
	}
	return resp.Results, nil
}
