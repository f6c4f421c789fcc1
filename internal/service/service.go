// Package service provides the business logic for the domain lookup API
package service

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

const (
	// DefaultMaxResults is the number of matches returned when the caller
	// does not specify a limit.
	DefaultMaxResults = 10

	// MinMaxResults and MaxMaxResults bound the caller-provided limit.
	// Values outside the range fall back to DefaultMaxResults.
	MinMaxResults = 1
	MaxMaxResults = 50
)

// LookupService defines the interface for domain lookup operations
type LookupService interface {
	// CheckReadiness checks if the service is ready to serve requests
	CheckReadiness(ctx context.Context) error

	// LookupServers resolves a domain against registered domain patterns and
	// returns enriched matches. A domain with no matches yields a response
	// with an empty matches slice, not an error.
	LookupServers(ctx context.Context, domain string, opts ...Option) (*LookupResponse, error)

	// ClearCache wipes all cached lookup responses. Used by test harnesses
	// and operational tooling.
	ClearCache()
}

// Option is a function that sets an option for the LookupServers operation
type Option func(*LookupOptions) error

// LookupOptions is the options for the LookupServers operation
type LookupOptions struct {
	TrustLevels       []TrustLevel
	DeploymentTypes   []DeploymentType
	MaxResults        int
	IncludeCategories bool
}

// DefaultLookupOptions returns the option defaults: verified and community
// trust levels, all deployment types, and DefaultMaxResults.
func DefaultLookupOptions() *LookupOptions {
	return &LookupOptions{
		TrustLevels:     []TrustLevel{TrustLevelVerified, TrustLevelCommunity},
		DeploymentTypes: []DeploymentType{DeploymentTypeLocal, DeploymentTypeRemote, DeploymentTypeHybrid},
		MaxResults:      DefaultMaxResults,
	}
}

// WithTrustLevels sets the trust levels to filter matched servers by
func WithTrustLevels(levels ...TrustLevel) Option {
	return func(o *LookupOptions) error {
		if len(levels) == 0 {
			return fmt.Errorf("at least one trust level is required")
		}
		for _, l := range levels {
			if !l.Valid() {
				return fmt.Errorf("invalid trust level: %s", l)
			}
		}
		o.TrustLevels = levels
		return nil
	}
}

// WithDeploymentTypes sets the deployment types to filter matched servers by
func WithDeploymentTypes(types ...DeploymentType) Option {
	return func(o *LookupOptions) error {
		if len(types) == 0 {
			return fmt.Errorf("at least one deployment type is required")
		}
		for _, d := range types {
			if !d.Valid() {
				return fmt.Errorf("invalid deployment type: %s", d)
			}
		}
		o.DeploymentTypes = types
		return nil
	}
}

// WithMaxResults sets the maximum number of matches to return. Values
// outside [MinMaxResults, MaxMaxResults] fall back to DefaultMaxResults
// rather than failing the lookup.
func WithMaxResults(maxResults int) Option {
	return func(o *LookupOptions) error {
		if maxResults < MinMaxResults || maxResults > MaxMaxResults {
			o.MaxResults = DefaultMaxResults
			return nil
		}
		o.MaxResults = maxResults
		return nil
	}
}

// WithIncludeCategories enables the category search stage. Category
// associations are not modelled yet, so the stage currently yields no
// matches; the flag is still part of the cache key.
func WithIncludeCategories(include bool) Option {
	return func(o *LookupOptions) error {
		o.IncludeCategories = include
		return nil
	}
}

// CacheKey derives the cache key for a lookup. The key concatenates every
// field that influences the response, with the set-valued fields sorted, so
// that distinct queries can never collide.
func CacheKey(domain string, o *LookupOptions) string {
	trust := make([]string, len(o.TrustLevels))
	for i, l := range o.TrustLevels {
		trust[i] = string(l)
	}
	slices.Sort(trust)

	deployments := make([]string, len(o.DeploymentTypes))
	for i, d := range o.DeploymentTypes {
		deployments[i] = string(d)
	}
	slices.Sort(deployments)

	return strings.Join([]string{
		domain,
		strings.Join(trust, ","),
		strings.Join(deployments, ","),
		strconv.Itoa(o.MaxResults),
		strconv.FormatBool(o.IncludeCategories),
	}, "|")
}
