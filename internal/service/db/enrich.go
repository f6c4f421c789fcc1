package database

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/stacklok/mcp-domain-registry/internal/db/sqlc"
	"github.com/stacklok/mcp-domain-registry/internal/service"
)

const (
	// enrichConcurrency bounds how many servers are enriched in parallel
	enrichConcurrency = 8

	// minEstimatedMinutes and maxEstimatedMinutes bound the installation
	// time estimate derived from prerequisites
	minEstimatedMinutes = 5
	maxEstimatedMinutes = 30

	// moderatePrereqThreshold and complexPrereqThreshold classify the
	// installation complexity by prerequisite count
	moderatePrereqThreshold = 2
	complexPrereqThreshold  = 3
)

// enrichMatches builds the full ServerMatch records for the given
// candidates. Servers are enriched in parallel; a failure for any single
// server aborts the whole lookup so a partially populated match is never
// returned.
func (s *dbService) enrichMatches(
	ctx context.Context,
	candidates []matchCandidate,
) ([]service.ServerMatch, error) {
	matches := make([]service.ServerMatch, len(candidates))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(enrichConcurrency)
	for i, candidate := range candidates {
		g.Go(func() error {
			match, err := s.enrichServer(ctx, candidate)
			if err != nil {
				return fmt.Errorf("failed to enrich server %s: %w", candidate.serverID, err)
			}
			matches[i] = match
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return matches, nil
}

// enrichServer gathers the per-server summaries for one candidate
func (s *dbService) enrichServer(
	ctx context.Context,
	candidate matchCandidate,
) (service.ServerMatch, error) {
	configRows, err := s.querier.ListServerConfigurations(ctx, candidate.serverID)
	if err != nil {
		return service.ServerMatch{}, fmt.Errorf("failed to list configurations: %w", err)
	}
	configurations, err := configurationSummaries(configRows)
	if err != nil {
		return service.ServerMatch{}, err
	}

	authRows, err := s.querier.ListAuthConfigurations(ctx, candidate.serverID)
	if err != nil {
		return service.ServerMatch{}, fmt.Errorf("failed to list auth configurations: %w", err)
	}

	toolRows, err := s.querier.ListServerTools(ctx, candidate.serverID)
	if err != nil {
		return service.ServerMatch{}, fmt.Errorf("failed to list tools: %w", err)
	}

	prereqRows, err := s.querier.ListInstallationPrerequisites(ctx, candidate.serverID)
	if err != nil {
		return service.ServerMatch{}, fmt.Errorf("failed to list prerequisites: %w", err)
	}

	resourceCount, err := s.querier.CountServerResources(ctx, candidate.serverID)
	if err != nil {
		return service.ServerMatch{}, fmt.Errorf("failed to count resources: %w", err)
	}

	return service.ServerMatch{
		ServerID:    candidate.serverID,
		Name:        candidate.name,
		Description: candidate.description,
		Version:     candidate.version,

		MatchType:       candidate.matchType,
		MatchConfidence: candidate.confidence,
		MappingPriority: int(candidate.priority),
		AutoSuggest:     candidate.autoSuggest,

		Configurations:     configurations,
		Authentication:     authSummary(authRows),
		Tools:              toolsSummary(toolRows),
		Prerequisites:      prerequisitesSummary(prereqRows),
		ResourcesAvailable: resourceCount > 0,

		TrustLevel:      service.TrustLevel(candidate.trustLevel),
		DeploymentType:  service.DeploymentType(candidate.deploymentType),
		PopularityScore: int(candidate.popularityScore),
		InstallCount:    int(candidate.installCount),
		LastUpdated:     candidate.lastUpdated,
	}, nil
}

// configurationSummaries summarizes configuration rows, ordered by priority.
// The install settings blob is decoded through its typed form so malformed
// store data surfaces as an error instead of a silently wrong summary.
func configurationSummaries(rows []sqlc.ListServerConfigurationsRow) ([]service.ConfigurationSummary, error) {
	summaries := make([]service.ConfigurationSummary, 0, len(rows))
	for _, row := range rows {
		installType := service.InstallationType(row.InstallationType)
		if len(row.ConfigData) > 0 {
			var spec service.InstallSpec
			if err := json.Unmarshal(row.ConfigData, &spec); err != nil {
				return nil, fmt.Errorf("failed to decode configuration %s: %w", row.ID, err)
			}
			installType = spec.Type
		}

		summary := service.ConfigurationSummary{
			ConfigID:     row.ID,
			Transport:    row.Transport,
			QuickInstall: installType.QuickInstall(),
		}
		if row.Runtime != nil {
			summary.Runtime = *row.Runtime
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// authSummary aggregates auth configuration rows, ordered by priority.
// The primary auth type and the required flag come from the first row;
// methods preserve every row in order, duplicates included.
func authSummary(rows []sqlc.ListAuthConfigurationsRow) service.AuthSummary {
	summary := service.AuthSummary{
		Methods: make([]service.AuthType, 0, len(rows)),
	}
	if len(rows) == 0 {
		return summary
	}

	summary.Required = rows[0].Required
	summary.AuthType = service.AuthType(rows[0].AuthType)
	for _, row := range rows {
		method := service.AuthType(row.AuthType)
		summary.Methods = append(summary.Methods, method)
		if method == service.AuthTypeOAuth2 {
			summary.OAuthReady = true
		}
	}
	return summary
}

// toolsSummary previews the first tools of a server. The underlying query
// caps the rows at five, so the count never exceeds five even when the
// server exposes more tools.
func toolsSummary(rows []sqlc.ListServerToolsRow) service.ToolsSummary {
	summary := service.ToolsSummary{
		Count:    len(rows),
		TopTools: make([]string, 0, len(rows)),
	}
	for _, row := range rows {
		name := row.ToolName
		if row.DisplayName != nil && *row.DisplayName != "" {
			name = *row.DisplayName
		}
		summary.TopTools = append(summary.TopTools, name)
	}
	return summary
}

// prerequisitesSummary derives the installation effort from prerequisite
// rows: complexity buckets by count, a time estimate of five minutes per
// prerequisite capped at thirty, and a restart flag for runtime
// prerequisites.
func prerequisitesSummary(rows []sqlc.ListInstallationPrerequisitesRow) service.PrerequisitesSummary {
	if len(rows) == 0 {
		return service.PrerequisitesSummary{
			Complexity:       service.ComplexitySimple,
			EstimatedMinutes: minEstimatedMinutes,
		}
	}

	summary := service.PrerequisitesSummary{
		Complexity:       service.ComplexitySimple,
		EstimatedMinutes: min(len(rows)*5, maxEstimatedMinutes),
	}
	switch {
	case len(rows) > complexPrereqThreshold:
		summary.Complexity = service.ComplexityComplex
	case len(rows) >= moderatePrereqThreshold:
		summary.Complexity = service.ComplexityModerate
	}

	parts := make([]string, 0, len(rows))
	for _, row := range rows {
		if service.PrereqType(row.PrereqType) == service.PrereqTypeRuntime {
			summary.RequiresRestart = true
		}
		part := row.Name
		if row.Version != nil && *row.Version != "" {
			part = part + " " + *row.Version
		}
		if part != "" {
			parts = append(parts, part)
		}
	}
	summary.Summary = strings.Join(parts, ", ")

	return summary
}
