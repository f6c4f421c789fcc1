package database

import (
	"context"
	"fmt"
	"time"

	"github.com/stacklok/mcp-domain-registry/internal/db/sqlc"
	"github.com/stacklok/mcp-domain-registry/internal/matching"
	"github.com/stacklok/mcp-domain-registry/internal/service"
)

// matchCandidate is a matched domain mapping row joined with its server,
// annotated with the stage that produced it. Enrichment turns candidates
// into full ServerMatch records.
type matchCandidate struct {
	serverID        string
	name            string
	description     string
	version         string
	deploymentType  string
	trustLevel      string
	popularityScore int32
	installCount    int32
	lastUpdated     time.Time

	matchType   service.MatchType
	confidence  int
	priority    int32
	autoSuggest bool
}

// stageFunc is one search stage. The budget is the number of results the
// stage may still contribute; implementations must not return more.
type stageFunc func(ctx context.Context, domain string, o *service.LookupOptions, budget int) ([]matchCandidate, error)

// runStages executes the search stages in order against a shared result
// budget. A stage is skipped once the budget is exhausted, and the combined
// result is truncated to the requested maximum.
func (s *dbService) runStages(
	ctx context.Context,
	domain string,
	o *service.LookupOptions,
) ([]matchCandidate, error) {
	stages := []struct {
		name string
		run  stageFunc
	}{
		{name: "exact", run: s.exactStage},
		{name: "wildcard", run: s.wildcardStage},
	}
	if o.IncludeCategories {
		stages = append(stages, struct {
			name string
			run  stageFunc
		}{name: "category", run: s.categoryStage})
	}

	var collected []matchCandidate
	for _, stage := range stages {
		remaining := o.MaxResults - len(collected)
		if remaining <= 0 {
			break
		}

		found, err := stage.run(ctx, domain, o, remaining)
		if err != nil {
			return nil, fmt.Errorf("%s stage failed: %w", stage.name, err)
		}
		s.metrics.RecordStageMatches(ctx, stage.name, int64(len(found)))
		collected = append(collected, found...)
	}

	if len(collected) > o.MaxResults {
		collected = collected[:o.MaxResults]
	}
	return collected, nil
}

// exactStage returns servers whose mapping pattern equals the requested
// domain. Every exact match carries a fixed confidence of 100.
func (s *dbService) exactStage(
	ctx context.Context,
	domain string,
	o *service.LookupOptions,
	budget int,
) ([]matchCandidate, error) {
	rows, err := s.querier.ListExactDomainMatches(ctx, sqlc.ListExactDomainMatchesParams{
		DomainPattern:   domain,
		TrustLevels:     trustLevelStrings(o.TrustLevels),
		DeploymentTypes: deploymentTypeStrings(o.DeploymentTypes),
		Size:            int64(budget),
	})
	if err != nil {
		return nil, err
	}

	candidates := make([]matchCandidate, 0, len(rows))
	for _, row := range rows {
		candidates = append(candidates, matchCandidate{
			serverID:        row.ServerID,
			name:            row.Name,
			description:     row.Description,
			version:         row.Version,
			deploymentType:  row.DeploymentType,
			trustLevel:      row.TrustLevel,
			popularityScore: row.PopularityScore,
			installCount:    row.InstallCount,
			lastUpdated:     row.LastUpdated,
			matchType:       service.MatchTypeExact,
			confidence:      matching.ExactMatchConfidence,
			priority:        row.Priority,
			autoSuggest:     row.AutoSuggest,
		})
	}
	return candidates, nil
}

// wildcardStage fetches wildcard mapping candidates and tests each pattern
// against the domain in memory. The row-level limit is applied before the
// glob test, so the stage may under-fill its budget when many candidate
// patterns fail the test; this is a known precision/recall tradeoff.
func (s *dbService) wildcardStage(
	ctx context.Context,
	domain string,
	o *service.LookupOptions,
	budget int,
) ([]matchCandidate, error) {
	rows, err := s.querier.ListWildcardDomainCandidates(ctx, sqlc.ListWildcardDomainCandidatesParams{
		TrustLevels:     trustLevelStrings(o.TrustLevels),
		DeploymentTypes: deploymentTypeStrings(o.DeploymentTypes),
		Size:            int64(budget),
	})
	if err != nil {
		return nil, err
	}

	var candidates []matchCandidate
	for _, row := range rows {
		if !matching.MatchesWildcard(domain, row.DomainPattern) {
			continue
		}
		candidates = append(candidates, matchCandidate{
			serverID:        row.ServerID,
			name:            row.Name,
			description:     row.Description,
			version:         row.Version,
			deploymentType:  row.DeploymentType,
			trustLevel:      row.TrustLevel,
			popularityScore: row.PopularityScore,
			installCount:    row.InstallCount,
			lastUpdated:     row.LastUpdated,
			matchType:       service.MatchTypeWildcard,
			confidence:      matching.WildcardConfidence(domain, row.DomainPattern),
			priority:        row.Priority,
			autoSuggest:     row.AutoSuggest,
		})
	}
	return candidates, nil
}

// categoryStage is a deliberate no-op: category associations are not part
// of the data model yet, so the stage always yields an empty result rather
// than an error.
func (*dbService) categoryStage(
	_ context.Context,
	_ string,
	_ *service.LookupOptions,
	_ int,
) ([]matchCandidate, error) {
	return nil, nil
}

func trustLevelStrings(levels []service.TrustLevel) []string {
	out := make([]string, len(levels))
	for i, l := range levels {
		out[i] = string(l)
	}
	return out
}

func deploymentTypeStrings(types []service.DeploymentType) []string {
	out := make([]string, len(types))
	for i, d := range types {
		out[i] = string(d)
	}
	return out
}
