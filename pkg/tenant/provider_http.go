package tenant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

func normalize(subdomain string) string {
	return strings.ToUpper(subdomain)
}

// HTTPProvider resolves tenants through the backend tenant-lookup
// endpoint: GET {base}/api/auth/tenant-lookup/by-name/{subdomain}.
type HTTPProvider struct {
	baseURL string
	client  *http.Client
}

// NewHTTPProvider creates a provider backed by the lookup endpoint.
// A nil client falls back to http.DefaultClient.
func NewHTTPProvider(baseURL string, client *http.Client) *HTTPProvider {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPProvider{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  client,
	}
}

type lookupResponse struct {
	Success  bool   `json:"success"`
	TenantID string `json:"tenantId"`
	Name     string `json:"name"`
}

// Resolve looks up the tenant by subdomain. Every failure mode, from
// transport errors to an unsuccessful lookup, collapses into
// ErrTenantNotFound so callers have a single degradation path.
func (p *HTTPProvider) Resolve(ctx context.Context, subdomain string) (*Info, error) {
	endpoint := p.baseURL + "/api/auth/tenant-lookup/by-name/" + url.PathEscape(subdomain)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.Join(ErrTenantNotFound, err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, errors.Join(ErrTenantNotFound, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: lookup returned %d", ErrTenantNotFound, resp.StatusCode)
	}

	var body lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, errors.Join(ErrTenantNotFound, err)
	}
	if !body.Success {
		return nil, ErrTenantNotFound
	}

	return &Info{
		ID:             body.TenantID,
		Name:           body.Name,
		NormalizedName: normalize(subdomain),
	}, nil
}
