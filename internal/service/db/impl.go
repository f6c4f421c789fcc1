package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/trace"

	"github.com/stacklok/mcp-domain-registry/internal/cache"
	"github.com/stacklok/mcp-domain-registry/internal/db/sqlc"
	"github.com/stacklok/mcp-domain-registry/internal/otel"
	"github.com/stacklok/mcp-domain-registry/internal/service"
	"github.com/stacklok/mcp-domain-registry/internal/telemetry"
)

// options holds configuration options for the database service
type options struct {
	pool    *pgxpool.Pool
	querier sqlc.Querier
	cache   *cache.Cache[*service.LookupResponse]
	tracer  trace.Tracer
	metrics *telemetry.LookupMetrics
}

// Option is a functional option for configuring the database service
type Option func(*options) error

// WithConnectionPool creates a new database-backed lookup service with the
// given pgx pool. The caller is responsible for closing the pool when it is
// done.
func WithConnectionPool(pool *pgxpool.Pool) Option {
	return func(o *options) error {
		if pool == nil {
			return fmt.Errorf("pgx pool is required")
		}
		o.pool = pool
		o.querier = sqlc.New(pool)
		return nil
	}
}

// WithQuerier overrides the querier used for lookups. Intended for tests
// that substitute an in-memory store.
func WithQuerier(querier sqlc.Querier) Option {
	return func(o *options) error {
		if querier == nil {
			return fmt.Errorf("querier is required")
		}
		o.querier = querier
		return nil
	}
}

// WithResponseCache sets the response cache used to serve repeated lookups.
// If not set, every lookup hits the store. The caller owns the cache
// lifecycle and must close it on shutdown.
func WithResponseCache(c *cache.Cache[*service.LookupResponse]) Option {
	return func(o *options) error {
		o.cache = c
		return nil
	}
}

// WithTracer sets the OpenTelemetry tracer for the database service.
// If not set, tracing will be disabled (no-op).
func WithTracer(tracer trace.Tracer) Option {
	return func(o *options) error {
		o.tracer = tracer
		return nil
	}
}

// WithLookupMetrics sets the lookup metrics instruments.
// If not set, metrics recording is a no-op.
func WithLookupMetrics(metrics *telemetry.LookupMetrics) Option {
	return func(o *options) error {
		o.metrics = metrics
		return nil
	}
}

// dbService implements the LookupService interface using a database backend
type dbService struct {
	pool    *pgxpool.Pool
	querier sqlc.Querier
	cache   *cache.Cache[*service.LookupResponse]
	tracer  trace.Tracer
	metrics *telemetry.LookupMetrics
}

var _ service.LookupService = (*dbService)(nil)

// New creates a new database-backed lookup service with the given options
func New(opts ...Option) (service.LookupService, error) {
	o := &options{}

	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}

	if o.querier == nil {
		return nil, fmt.Errorf("a connection pool or querier is required")
	}

	return &dbService{
		pool:    o.pool,
		querier: o.querier,
		cache:   o.cache,
		tracer:  o.tracer,
		metrics: o.metrics,
	}, nil
}

// CheckReadiness checks if the service is ready to serve requests
func (s *dbService) CheckReadiness(ctx context.Context) error {
	if s.pool == nil {
		return nil
	}
	err := s.pool.Ping(ctx)
	if err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	return nil
}

// ClearCache wipes all cached lookup responses
func (s *dbService) ClearCache() {
	if s.cache != nil {
		s.cache.Clear()
	}
}

// LookupServers resolves a domain to matching servers. Matching runs the
// exact, wildcard and category stages in order against a shared result
// budget; every match is then enriched with per-server summaries. Responses
// are served from the cache when a live entry exists for the same query.
func (s *dbService) LookupServers(
	ctx context.Context,
	domain string,
	opts ...service.Option,
) (*service.LookupResponse, error) {
	ctx, span := s.startSpan(ctx, "dbService.LookupServers")
	defer span.End()

	options := service.DefaultLookupOptions()
	for _, opt := range opts {
		if err := opt(options); err != nil {
			otel.RecordError(span, err)
			return nil, err
		}
	}

	span.SetAttributes(
		otel.AttrDomain.String(domain),
		otel.AttrMaxResults.Int(options.MaxResults),
	)

	start := time.Now()
	key := service.CacheKey(domain, options)

	if s.cache != nil {
		if cached, ok := s.cache.Get(key); ok {
			s.metrics.RecordCacheLookup(ctx, true)

			// Return the cached content verbatim, overriding only the
			// metadata that describes this particular serve.
			response := *cached
			response.Metadata.CacheHit = true
			response.Metadata.SearchTimeMS = time.Since(start).Milliseconds()

			span.SetAttributes(
				otel.AttrCacheHit.Bool(true),
				otel.AttrResultCount.Int(len(response.Matches)),
			)
			slog.DebugContext(ctx, "Lookup served from cache",
				"domain", domain,
				"match_count", len(response.Matches),
				"request_id", middleware.GetReqID(ctx))
			return &response, nil
		}
		s.metrics.RecordCacheLookup(ctx, false)
	}

	candidates, err := s.runStages(ctx, domain, options)
	if err != nil {
		otel.RecordError(span, err)
		s.metrics.RecordLookup(ctx, time.Since(start), 0, false)
		return nil, err
	}

	matches, err := s.enrichMatches(ctx, candidates)
	if err != nil {
		otel.RecordError(span, err)
		s.metrics.RecordLookup(ctx, time.Since(start), 0, false)
		return nil, err
	}

	response := &service.LookupResponse{
		Domain: domain,
		Metadata: service.MatchMetadata{
			MatchCount:   len(matches),
			SearchTimeMS: time.Since(start).Milliseconds(),
			CacheHit:     false,
		},
		Matches: matches,
	}

	// Best effort: a cache write must never fail a computed response.
	if s.cache != nil {
		s.cache.Set(key, response)
	}

	span.SetAttributes(
		otel.AttrCacheHit.Bool(false),
		otel.AttrResultCount.Int(len(matches)),
	)
	s.metrics.RecordLookup(ctx, time.Since(start), len(matches), true)
	slog.DebugContext(ctx, "Lookup completed",
		"domain", domain,
		"match_count", len(matches),
		"search_time_ms", response.Metadata.SearchTimeMS,
		"request_id", middleware.GetReqID(ctx))

	return response, nil
}
