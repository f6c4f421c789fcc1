// Package v1 contains the v1 routes for the domain lookup API.
package v1

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/stacklok/mcp-domain-registry/internal/logger"
	"github.com/stacklok/mcp-domain-registry/internal/service"
	"github.com/stacklok/mcp-domain-registry/internal/validators"
	"github.com/stacklok/mcp-domain-registry/internal/versions"
)

// Routes defines the routes for the domain lookup API.
type Routes struct {
	svc service.LookupService
}

// NewRoutes creates a new Routes instance with the given service
func NewRoutes(svc service.LookupService) *Routes {
	return &Routes{svc: svc}
}

// Router creates a new router for the domain lookup API.
func Router(svc service.LookupService) http.Handler {
	routes := NewRoutes(svc)

	r := chi.NewRouter()
	r.Get("/servers/lookup", routes.lookupServers)
	r.Post("/cache/clear", routes.clearCache)
	return r
}

// HealthRouter creates a router for health and status endpoints
func HealthRouter(svc service.LookupService) http.Handler {
	routes := NewRoutes(svc)

	r := chi.NewRouter()
	r.Get("/health", routes.getHealth)
	r.Get("/readiness", routes.getReadiness)
	r.Get("/version", routes.getVersion)
	return r
}

// lookupServers returns the MCP servers mapped to the requested domain,
// ranked by match stage and priority.
//
//	@Summary		Look up servers for a domain
//	@Description	Returns MCP server matches for a domain with installation summaries
//	@Tags			lookup
//	@Produce		json
//	@Param			domain				query		string	true	"Domain to look up"
//	@Param			trust_levels		query		string	false	"Comma-separated trust levels (verified, community, unverified)"
//	@Param			deployment_types	query		string	false	"Comma-separated deployment types (local, remote, hybrid)"
//	@Param			max_results			query		int		false	"Maximum number of matches (1-50)"
//	@Param			include_categories	query		bool	false	"Enable category-based matching"
//	@Success		200	{object}	service.LookupResponse
//	@Failure		400	{object}	ErrorResponse
//	@Failure		503	{object}	ErrorResponse
//	@Router			/api/v1/servers/lookup [get]
func (routes *Routes) lookupServers(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	domain, err := validators.ValidateDomain(query.Get("domain"))
	if err != nil {
		routes.writeErrorResponse(w, "Invalid domain: "+err.Error(), http.StatusBadRequest)
		return
	}

	opts, err := lookupOptionsFromQuery(query)
	if err != nil {
		routes.writeErrorResponse(w, "Invalid query: "+err.Error(), http.StatusBadRequest)
		return
	}

	response, err := routes.svc.LookupServers(r.Context(), domain, opts...)
	if err != nil {
		logger.Errorf("Failed to look up servers for %s: %v", domain, err)
		routes.writeErrorResponse(w, "Failed to look up servers", http.StatusServiceUnavailable)
		return
	}

	routes.writeJSONResponse(w, http.StatusOK, response)
}

// clearCache drops all cached lookup responses.
//
//	@Summary		Clear the lookup cache
//	@Tags			lookup
//	@Success		204
//	@Router			/api/v1/cache/clear [post]
func (routes *Routes) clearCache(w http.ResponseWriter, _ *http.Request) {
	routes.svc.ClearCache()
	w.WriteHeader(http.StatusNoContent)
}

// getHealth returns the health status of the API
func (routes *Routes) getHealth(w http.ResponseWriter, _ *http.Request) {
	routes.writeJSONResponse(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// getReadiness returns the readiness status of the API
func (routes *Routes) getReadiness(w http.ResponseWriter, r *http.Request) {
	if err := routes.svc.CheckReadiness(r.Context()); err != nil {
		routes.writeErrorResponse(w, "Service not ready: "+err.Error(), http.StatusServiceUnavailable)
		return
	}
	routes.writeJSONResponse(w, http.StatusOK, map[string]string{"status": "ready"})
}

// getVersion returns the version of the API server
func (routes *Routes) getVersion(w http.ResponseWriter, _ *http.Request) {
	info := versions.GetVersionInfo()
	routes.writeJSONResponse(w, http.StatusOK, map[string]string{
		"version":    info.Version,
		"commit":     info.Commit,
		"build_date": info.BuildDate,
		"go_version": info.GoVersion,
	})
}

// lookupOptionsFromQuery translates query parameters into service options.
// Absent parameters keep the service defaults.
func lookupOptionsFromQuery(query map[string][]string) ([]service.Option, error) {
	var opts []service.Option

	if raw := firstValue(query, "trust_levels"); raw != "" {
		levels := make([]service.TrustLevel, 0)
		for _, v := range strings.Split(raw, ",") {
			if v = strings.TrimSpace(v); v != "" {
				level := service.TrustLevel(v)
				if !level.Valid() {
					return nil, fmt.Errorf("unknown trust level %q", v)
				}
				levels = append(levels, level)
			}
		}
		opts = append(opts, service.WithTrustLevels(levels...))
	}

	if raw := firstValue(query, "deployment_types"); raw != "" {
		types := make([]service.DeploymentType, 0)
		for _, v := range strings.Split(raw, ",") {
			if v = strings.TrimSpace(v); v != "" {
				deployment := service.DeploymentType(v)
				if !deployment.Valid() {
					return nil, fmt.Errorf("unknown deployment type %q", v)
				}
				types = append(types, deployment)
			}
		}
		opts = append(opts, service.WithDeploymentTypes(types...))
	}

	if raw := firstValue(query, "max_results"); raw != "" {
		maxResults, err := strconv.Atoi(raw)
		if err != nil {
			return nil, err
		}
		opts = append(opts, service.WithMaxResults(maxResults))
	}

	if raw := firstValue(query, "include_categories"); raw != "" {
		include, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, err
		}
		opts = append(opts, service.WithIncludeCategories(include))
	}

	return opts, nil
}

func firstValue(query map[string][]string, key string) string {
	if values := query[key]; len(values) > 0 {
		return values[0]
	}
	return ""
}

// writeJSONResponse writes a JSON response with proper headers
func (*Routes) writeJSONResponse(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Errorf("Failed to encode response: %v", err)
	}
}

// writeErrorResponse writes a JSON error response
func (routes *Routes) writeErrorResponse(w http.ResponseWriter, message string, statusCode int) {
	routes.writeJSONResponse(w, statusCode, ErrorResponse{Error: message})
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}
