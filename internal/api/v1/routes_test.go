package v1

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stacklok/mcp-domain-registry/internal/service"
)

// stubService is a test double for the lookup service.
type stubService struct {
	response   *service.LookupResponse
	lookupErr  error
	readyErr   error
	gotDomain  string
	gotOptions service.LookupOptions
	clearCalls int
}

var _ service.LookupService = (*stubService)(nil)

func (s *stubService) CheckReadiness(_ context.Context) error {
	return s.readyErr
}

func (s *stubService) LookupServers(
	_ context.Context, domain string, opts ...service.Option,
) (*service.LookupResponse, error) {
	s.gotDomain = domain
	options := service.DefaultLookupOptions()
	for _, opt := range opts {
		if err := opt(options); err != nil {
			return nil, err
		}
	}
	s.gotOptions = *options
	if s.lookupErr != nil {
		return nil, s.lookupErr
	}
	return s.response, nil
}

func (s *stubService) ClearCache() {
	s.clearCalls++
}

func lookupResponse(domain string) *service.LookupResponse {
	return &service.LookupResponse{
		Domain: domain,
		Metadata: service.MatchMetadata{
			MatchCount: 1,
		},
		Matches: []service.ServerMatch{
			{
				ServerID:        "github-mcp",
				Name:            "GitHub MCP",
				MatchType:       service.MatchTypeExact,
				MatchConfidence: 100,
			},
		},
	}
}

func TestLookupServersEndpoint(t *testing.T) {
	t.Parallel()

	svc := &stubService{response: lookupResponse("github.com")}
	server := httptest.NewServer(Router(svc))
	defer server.Close()

	resp, err := http.Get(server.URL + "/servers/lookup?domain=GitHub.com")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var body service.LookupResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "github.com", body.Domain)
	require.Len(t, body.Matches, 1)
	assert.Equal(t, "github-mcp", body.Matches[0].ServerID)

	// the handler normalizes the domain before hitting the service
	assert.Equal(t, "github.com", svc.gotDomain)
}

func TestLookupServersQueryOptions(t *testing.T) {
	t.Parallel()

	svc := &stubService{response: lookupResponse("github.com")}
	server := httptest.NewServer(Router(svc))
	defer server.Close()

	url := server.URL + "/servers/lookup?domain=github.com" +
		"&trust_levels=verified&deployment_types=local,remote" +
		"&max_results=3&include_categories=true"
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []service.TrustLevel{service.TrustLevelVerified}, svc.gotOptions.TrustLevels)
	assert.Equal(t,
		[]service.DeploymentType{service.DeploymentTypeLocal, service.DeploymentTypeRemote},
		svc.gotOptions.DeploymentTypes)
	assert.Equal(t, 3, svc.gotOptions.MaxResults)
	assert.True(t, svc.gotOptions.IncludeCategories)
}

func TestLookupServersBadRequests(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		query string
	}{
		{name: "missing domain", query: ""},
		{name: "invalid domain", query: "domain=-bad-.com"},
		{name: "unknown trust level", query: "domain=github.com&trust_levels=bogus"},
		{name: "unknown deployment type", query: "domain=github.com&deployment_types=cloud"},
		{name: "non-numeric max results", query: "domain=github.com&max_results=ten"},
		{name: "non-boolean include categories", query: "domain=github.com&include_categories=maybe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := &stubService{response: lookupResponse("github.com")}
			server := httptest.NewServer(Router(svc))
			defer server.Close()

			resp, err := http.Get(server.URL + "/servers/lookup?" + tt.query)
			require.NoError(t, err)
			defer resp.Body.Close()

			require.Equal(t, http.StatusBadRequest, resp.StatusCode)

			var body ErrorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.NotEmpty(t, body.Error)
		})
	}
}

func TestLookupServersServiceFailure(t *testing.T) {
	t.Parallel()

	svc := &stubService{lookupErr: assert.AnError}
	server := httptest.NewServer(Router(svc))
	defer server.Close()

	resp, err := http.Get(server.URL + "/servers/lookup?domain=github.com")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	var body ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Failed to look up servers", body.Error)
}

func TestClearCacheEndpoint(t *testing.T) {
	t.Parallel()

	svc := &stubService{}
	server := httptest.NewServer(Router(svc))
	defer server.Close()

	resp, err := http.Post(server.URL+"/cache/clear", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, 1, svc.clearCalls)
}

func TestHealthEndpoints(t *testing.T) {
	t.Parallel()

	t.Run("health", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(HealthRouter(&stubService{}))
		defer server.Close()

		resp, err := http.Get(server.URL + "/health")
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "healthy", body["status"])
	})

	t.Run("readiness ready", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(HealthRouter(&stubService{}))
		defer server.Close()

		resp, err := http.Get(server.URL + "/readiness")
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("readiness not ready", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(HealthRouter(&stubService{readyErr: assert.AnError}))
		defer server.Close()

		resp, err := http.Get(server.URL + "/readiness")
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

		var body ErrorResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Contains(t, body.Error, "Service not ready")
	})

	t.Run("version", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(HealthRouter(&stubService{}))
		defer server.Close()

		resp, err := http.Get(server.URL + "/version")
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.NotEmpty(t, body["version"])
		assert.NotEmpty(t, body["go_version"])
	})
}
