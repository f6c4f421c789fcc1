package database

import (
	"context"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stacklok/mcp-domain-registry/internal/cache"
	"github.com/stacklok/mcp-domain-registry/internal/db/sqlc"
	"github.com/stacklok/mcp-domain-registry/internal/service"
)

// stubQuerier is an in-memory sqlc.Querier for exercising the lookup
// pipeline without a database. It honors the same filtering and limit
// semantics as the real queries.
type stubQuerier struct {
	exactRows    []sqlc.ListExactDomainMatchesRow
	wildcardRows []sqlc.ListWildcardDomainCandidatesRow

	configs   map[string][]sqlc.ListServerConfigurationsRow
	auth      map[string][]sqlc.ListAuthConfigurationsRow
	tools     map[string][]sqlc.ListServerToolsRow
	prereqs   map[string][]sqlc.ListInstallationPrerequisitesRow
	resources map[string]int64

	exactCalls int
	toolsErr   error
}

var _ sqlc.Querier = (*stubQuerier)(nil)

func (q *stubQuerier) ListExactDomainMatches(
	_ context.Context, arg sqlc.ListExactDomainMatchesParams,
) ([]sqlc.ListExactDomainMatchesRow, error) {
	q.exactCalls++
	var rows []sqlc.ListExactDomainMatchesRow
	for _, row := range q.exactRows {
		if row.DomainPattern != arg.DomainPattern {
			continue
		}
		if !slices.Contains(arg.TrustLevels, row.TrustLevel) {
			continue
		}
		if !slices.Contains(arg.DeploymentTypes, row.DeploymentType) {
			continue
		}
		rows = append(rows, row)
		if int64(len(rows)) == arg.Size {
			break
		}
	}
	return rows, nil
}

func (q *stubQuerier) ListWildcardDomainCandidates(
	_ context.Context, arg sqlc.ListWildcardDomainCandidatesParams,
) ([]sqlc.ListWildcardDomainCandidatesRow, error) {
	var rows []sqlc.ListWildcardDomainCandidatesRow
	for _, row := range q.wildcardRows {
		if !slices.Contains(arg.TrustLevels, row.TrustLevel) {
			continue
		}
		if !slices.Contains(arg.DeploymentTypes, row.DeploymentType) {
			continue
		}
		rows = append(rows, row)
		if int64(len(rows)) == arg.Size {
			break
		}
	}
	return rows, nil
}

func (q *stubQuerier) ListServerConfigurations(
	_ context.Context, serverID string,
) ([]sqlc.ListServerConfigurationsRow, error) {
	return q.configs[serverID], nil
}

func (q *stubQuerier) ListAuthConfigurations(
	_ context.Context, serverID string,
) ([]sqlc.ListAuthConfigurationsRow, error) {
	return q.auth[serverID], nil
}

func (q *stubQuerier) ListServerTools(
	_ context.Context, serverID string,
) ([]sqlc.ListServerToolsRow, error) {
	if q.toolsErr != nil {
		return nil, q.toolsErr
	}
	return q.tools[serverID], nil
}

func (q *stubQuerier) ListInstallationPrerequisites(
	_ context.Context, serverID string,
) ([]sqlc.ListInstallationPrerequisitesRow, error) {
	return q.prereqs[serverID], nil
}

func (q *stubQuerier) CountServerResources(_ context.Context, serverID string) (int64, error) {
	return q.resources[serverID], nil
}

func (*stubQuerier) InsertServer(context.Context, sqlc.InsertServerParams) error { return nil }
func (*stubQuerier) InsertDomainMapping(context.Context, sqlc.InsertDomainMappingParams) error {
	return nil
}
func (*stubQuerier) InsertServerConfiguration(context.Context, sqlc.InsertServerConfigurationParams) error {
	return nil
}
func (*stubQuerier) InsertAuthConfiguration(context.Context, sqlc.InsertAuthConfigurationParams) error {
	return nil
}
func (*stubQuerier) InsertServerTool(context.Context, sqlc.InsertServerToolParams) error { return nil }
func (*stubQuerier) InsertInstallationPrerequisite(context.Context, sqlc.InsertInstallationPrerequisiteParams) error {
	return nil
}
func (*stubQuerier) InsertServerResource(context.Context, sqlc.InsertServerResourceParams) error {
	return nil
}

func strptr(s string) *string { return &s }

// newSeededQuerier returns a stub with two servers: github-mcp behind an
// exact mapping for github.com, and jira-mcp behind a wildcard mapping for
// *.atlassian.net.
func newSeededQuerier() *stubQuerier {
	updated := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	return &stubQuerier{
		exactRows: []sqlc.ListExactDomainMatchesRow{
			{
				MappingID:       "m-github",
				ServerID:        "github-mcp",
				DomainPattern:   "github.com",
				Priority:        1,
				AutoSuggest:     true,
				Name:            "GitHub MCP",
				Description:     "GitHub repositories and issues",
				Version:         "1.4.0",
				DeploymentType:  "local",
				TrustLevel:      "verified",
				PopularityScore: 95,
				InstallCount:    12000,
				LastUpdated:     updated,
			},
		},
		wildcardRows: []sqlc.ListWildcardDomainCandidatesRow{
			{
				MappingID:       "m-jira",
				ServerID:        "jira-mcp",
				DomainPattern:   "*.atlassian.net",
				Priority:        2,
				AutoSuggest:     false,
				Name:            "Jira MCP",
				Description:     "Jira issue tracking",
				Version:         "0.9.1",
				DeploymentType:  "remote",
				TrustLevel:      "community",
				PopularityScore: 60,
				InstallCount:    3400,
				LastUpdated:     updated,
			},
		},
		configs: map[string][]sqlc.ListServerConfigurationsRow{
			"github-mcp": {
				{
					ID:               "cfg-github-npm",
					Runtime:          strptr("node"),
					Transport:        "stdio",
					InstallationType: "npm",
					ConfigData:       []byte(`{"installation_type":"npm","npm":{"package":"@modelcontextprotocol/server-github"}}`),
					Priority:         1,
					IsDefault:        true,
				},
			},
			"jira-mcp": {
				{
					ID:               "cfg-jira-remote",
					Transport:        "sse",
					InstallationType: "remote",
					ConfigData:       []byte(`{"installation_type":"remote","remote":{"endpoint":"https://mcp.atlassian.example/sse"}}`),
					Priority:         1,
					IsDefault:        true,
				},
			},
		},
		auth: map[string][]sqlc.ListAuthConfigurationsRow{
			"github-mcp": {
				{ID: "auth-1", AuthType: "api_key", Priority: 1, Required: true},
				{ID: "auth-2", AuthType: "oauth2", Priority: 2, Required: false},
			},
		},
		tools: map[string][]sqlc.ListServerToolsRow{
			"github-mcp": {
				{ToolName: "create_issue", DisplayName: strptr("Create Issue")},
				{ToolName: "list_repos"},
			},
		},
		prereqs: map[string][]sqlc.ListInstallationPrerequisitesRow{
			"github-mcp": {
				{PrereqType: "runtime", Name: "node", Version: strptr(">=18")},
				{PrereqType: "credential", Name: "GITHUB_TOKEN"},
			},
		},
		resources: map[string]int64{"github-mcp": 3},
	}
}

func newTestService(t *testing.T, querier sqlc.Querier, opts ...Option) service.LookupService {
	t.Helper()

	responseCache := cache.New[*service.LookupResponse](cache.WithSweepInterval(0))
	t.Cleanup(responseCache.Close)

	all := append([]Option{WithQuerier(querier), WithResponseCache(responseCache)}, opts...)
	svc, err := New(all...)
	require.NoError(t, err)
	return svc
}

func TestLookupServersExactMatch(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, newSeededQuerier())

	resp, err := svc.LookupServers(context.Background(), "github.com")
	require.NoError(t, err)

	assert.Equal(t, "github.com", resp.Domain)
	assert.Equal(t, 1, resp.Metadata.MatchCount)
	assert.False(t, resp.Metadata.CacheHit)
	require.Len(t, resp.Matches, 1)

	match := resp.Matches[0]
	assert.Equal(t, "github-mcp", match.ServerID)
	assert.Equal(t, service.MatchTypeExact, match.MatchType)
	assert.Equal(t, 100, match.MatchConfidence)
	assert.Equal(t, 1, match.MappingPriority)
	assert.True(t, match.AutoSuggest)
	assert.Equal(t, service.TrustLevelVerified, match.TrustLevel)
	assert.Equal(t, service.DeploymentTypeLocal, match.DeploymentType)

	require.Len(t, match.Configurations, 1)
	assert.Equal(t, "cfg-github-npm", match.Configurations[0].ConfigID)
	assert.Equal(t, "node", match.Configurations[0].Runtime)
	assert.Equal(t, "stdio", match.Configurations[0].Transport)
	assert.True(t, match.Configurations[0].QuickInstall)

	assert.True(t, match.Authentication.Required)
	assert.Equal(t, service.AuthTypeAPIKey, match.Authentication.AuthType)
	assert.True(t, match.Authentication.OAuthReady)
	assert.Equal(t, []service.AuthType{service.AuthTypeAPIKey, service.AuthTypeOAuth2}, match.Authentication.Methods)

	assert.Equal(t, 2, match.Tools.Count)
	assert.Equal(t, []string{"Create Issue", "list_repos"}, match.Tools.TopTools)

	assert.Equal(t, service.ComplexityModerate, match.Prerequisites.Complexity)
	assert.Equal(t, 10, match.Prerequisites.EstimatedMinutes)
	assert.True(t, match.Prerequisites.RequiresRestart)
	assert.Equal(t, "node >=18, GITHUB_TOKEN", match.Prerequisites.Summary)

	assert.True(t, match.ResourcesAvailable)
}

func TestLookupServersWildcardMatch(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, newSeededQuerier())

	resp, err := svc.LookupServers(context.Background(), "acme.atlassian.net")
	require.NoError(t, err)

	require.Len(t, resp.Matches, 1)
	match := resp.Matches[0]
	assert.Equal(t, "jira-mcp", match.ServerID)
	assert.Equal(t, service.MatchTypeWildcard, match.MatchType)
	assert.GreaterOrEqual(t, match.MatchConfidence, 70)
	assert.LessOrEqual(t, match.MatchConfidence, 100)

	// Servers with no auth, tools, prerequisites or resources get the
	// documented empty summaries.
	assert.False(t, match.Authentication.Required)
	assert.False(t, match.Authentication.OAuthReady)
	assert.Empty(t, match.Authentication.Methods)
	assert.Zero(t, match.Tools.Count)
	assert.Equal(t, service.ComplexitySimple, match.Prerequisites.Complexity)
	assert.Equal(t, 5, match.Prerequisites.EstimatedMinutes)
	assert.False(t, match.Prerequisites.RequiresRestart)
	assert.Empty(t, match.Prerequisites.Summary)
	assert.False(t, match.ResourcesAvailable)

	// Remote installs are not quick installs.
	require.Len(t, match.Configurations, 1)
	assert.False(t, match.Configurations[0].QuickInstall)
}

func TestLookupServersWildcardSuffixMismatch(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, newSeededQuerier())

	resp, err := svc.LookupServers(context.Background(), "acme.atlassian.com")
	require.NoError(t, err)
	assert.Empty(t, resp.Matches)
	assert.Equal(t, 0, resp.Metadata.MatchCount)
}

func TestLookupServersNoMatch(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, newSeededQuerier())

	resp, err := svc.LookupServers(context.Background(), "totally-unknown-xyz.example")
	require.NoError(t, err)

	assert.NotNil(t, resp.Matches)
	assert.Empty(t, resp.Matches)
	assert.Equal(t, 0, resp.Metadata.MatchCount)
	assert.False(t, resp.Metadata.CacheHit)
}

func TestLookupServersTrustLevelFilter(t *testing.T) {
	t.Parallel()

	querier := newSeededQuerier()
	querier.exactRows[0].TrustLevel = "unverified"
	svc := newTestService(t, querier)

	resp, err := svc.LookupServers(context.Background(), "github.com",
		service.WithTrustLevels(service.TrustLevelVerified))
	require.NoError(t, err)
	assert.Empty(t, resp.Matches)

	resp, err = svc.LookupServers(context.Background(), "github.com",
		service.WithTrustLevels(service.TrustLevelVerified, service.TrustLevelUnverified))
	require.NoError(t, err)
	assert.Len(t, resp.Matches, 1)
}

func TestLookupServersBudgetBound(t *testing.T) {
	t.Parallel()

	querier := newSeededQuerier()
	// Second server behind the same exact pattern.
	second := querier.exactRows[0]
	second.MappingID = "m-github-alt"
	second.ServerID = "github-alt-mcp"
	second.Priority = 5
	querier.exactRows = append(querier.exactRows, second)
	// Wildcard pattern that would also match github.com.
	querier.wildcardRows = append(querier.wildcardRows, sqlc.ListWildcardDomainCandidatesRow{
		MappingID:      "m-any-com",
		ServerID:       "jira-mcp",
		DomainPattern:  "*.com",
		Priority:       9,
		Name:           "Jira MCP",
		DeploymentType: "remote",
		TrustLevel:     "community",
		LastUpdated:    querier.exactRows[0].LastUpdated,
	})
	svc := newTestService(t, querier)

	resp, err := svc.LookupServers(context.Background(), "github.com",
		service.WithMaxResults(1))
	require.NoError(t, err)

	// The exact stage fills the budget; the wildcard stage never runs.
	require.Len(t, resp.Matches, 1)
	assert.Equal(t, "github-mcp", resp.Matches[0].ServerID)
	assert.Equal(t, service.MatchTypeExact, resp.Matches[0].MatchType)
}

func TestLookupServersStageOrdering(t *testing.T) {
	t.Parallel()

	querier := newSeededQuerier()
	// A wildcard mapping that also matches github.com, with a better
	// priority than the exact mapping. Exact matches still come first.
	querier.wildcardRows = append(querier.wildcardRows, sqlc.ListWildcardDomainCandidatesRow{
		MappingID:      "m-any-com",
		ServerID:       "jira-mcp",
		DomainPattern:  "*.com",
		Priority:       0,
		Name:           "Jira MCP",
		DeploymentType: "remote",
		TrustLevel:     "community",
		LastUpdated:    querier.exactRows[0].LastUpdated,
	})
	svc := newTestService(t, querier)

	resp, err := svc.LookupServers(context.Background(), "github.com")
	require.NoError(t, err)

	require.Len(t, resp.Matches, 2)
	assert.Equal(t, service.MatchTypeExact, resp.Matches[0].MatchType)
	assert.Equal(t, service.MatchTypeWildcard, resp.Matches[1].MatchType)
}

func TestLookupServersCategoryStageIsNoOp(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, newSeededQuerier())

	resp, err := svc.LookupServers(context.Background(), "totally-unknown-xyz.example",
		service.WithIncludeCategories(true))
	require.NoError(t, err)
	assert.Empty(t, resp.Matches)
}

func TestLookupServersCacheHit(t *testing.T) {
	t.Parallel()

	querier := newSeededQuerier()
	svc := newTestService(t, querier)

	first, err := svc.LookupServers(context.Background(), "github.com")
	require.NoError(t, err)
	require.False(t, first.Metadata.CacheHit)

	second, err := svc.LookupServers(context.Background(), "github.com")
	require.NoError(t, err)
	assert.True(t, second.Metadata.CacheHit)
	assert.Equal(t, first.Matches, second.Matches)
	assert.Equal(t, first.Metadata.MatchCount, second.Metadata.MatchCount)

	// The store was only queried for the first call.
	assert.Equal(t, 1, querier.exactCalls)
}

func TestLookupServersCacheKeyedByOptions(t *testing.T) {
	t.Parallel()

	querier := newSeededQuerier()
	svc := newTestService(t, querier)

	_, err := svc.LookupServers(context.Background(), "github.com")
	require.NoError(t, err)

	// A query with different options must not be served from the cache.
	resp, err := svc.LookupServers(context.Background(), "github.com",
		service.WithMaxResults(5))
	require.NoError(t, err)
	assert.False(t, resp.Metadata.CacheHit)
	assert.Equal(t, 2, querier.exactCalls)
}

func TestLookupServersClearCache(t *testing.T) {
	t.Parallel()

	querier := newSeededQuerier()
	svc := newTestService(t, querier)

	_, err := svc.LookupServers(context.Background(), "github.com")
	require.NoError(t, err)

	svc.ClearCache()

	resp, err := svc.LookupServers(context.Background(), "github.com")
	require.NoError(t, err)
	assert.False(t, resp.Metadata.CacheHit)
	assert.Equal(t, 2, querier.exactCalls)
}

func TestLookupServersEnrichmentFailureAborts(t *testing.T) {
	t.Parallel()

	querier := newSeededQuerier()
	querier.toolsErr = assert.AnError
	svc := newTestService(t, querier)

	resp, err := svc.LookupServers(context.Background(), "github.com")
	require.Error(t, err)
	assert.Nil(t, resp)
	assert.ErrorContains(t, err, "failed to enrich server github-mcp")
}

func TestLookupServersInvalidOption(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, newSeededQuerier())

	_, err := svc.LookupServers(context.Background(), "github.com",
		service.WithTrustLevels())
	require.Error(t, err)
}

func TestNewRequiresQuerier(t *testing.T) {
	t.Parallel()

	_, err := New()
	require.Error(t, err)
	assert.ErrorContains(t, err, "connection pool or querier is required")
}
