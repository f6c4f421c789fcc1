package service

import (
	"encoding/json"
	"fmt"
	"time"
)

// TrustLevel classifies how much vetting a server has received
type TrustLevel string

// Trust levels, from most to least vetted.
const (
	TrustLevelVerified   TrustLevel = "verified"
	TrustLevelCommunity  TrustLevel = "community"
	TrustLevelUnverified TrustLevel = "unverified"
)

// Valid reports whether the trust level is one of the known values.
func (t TrustLevel) Valid() bool {
	switch t {
	case TrustLevelVerified, TrustLevelCommunity, TrustLevelUnverified:
		return true
	}
	return false
}

// DeploymentType describes where a server runs
type DeploymentType string

// Deployment types.
const (
	DeploymentTypeLocal  DeploymentType = "local"
	DeploymentTypeRemote DeploymentType = "remote"
	DeploymentTypeHybrid DeploymentType = "hybrid"
)

// Valid reports whether the deployment type is one of the known values.
func (d DeploymentType) Valid() bool {
	switch d {
	case DeploymentTypeLocal, DeploymentTypeRemote, DeploymentTypeHybrid:
		return true
	}
	return false
}

// MatchType identifies which search stage produced a match
type MatchType string

// Match types in stage order.
const (
	MatchTypeExact    MatchType = "exact"
	MatchTypeWildcard MatchType = "wildcard"
	MatchTypeCategory MatchType = "category"
)

// AuthType identifies an authentication mechanism a server supports
type AuthType string

// Authentication types.
const (
	AuthTypeNone     AuthType = "none"
	AuthTypeAPIKey   AuthType = "api_key"
	AuthTypeOAuth2   AuthType = "oauth2"
	AuthTypeCustom   AuthType = "custom"
	AuthTypeMultiple AuthType = "multiple"
)

// InstallationType identifies how a server configuration is installed
type InstallationType string

// Installation types.
const (
	InstallationTypeNpm    InstallationType = "npm"
	InstallationTypePip    InstallationType = "pip"
	InstallationTypeDocker InstallationType = "docker"
	InstallationTypeBinary InstallationType = "binary"
	InstallationTypeRemote InstallationType = "remote"
	InstallationTypeManual InstallationType = "manual"
)

// QuickInstall reports whether the installation type is a package-manager
// install that can complete without manual steps.
func (i InstallationType) QuickInstall() bool {
	return i == InstallationTypeNpm || i == InstallationTypePip
}

// PrereqType classifies an installation prerequisite
type PrereqType string

// Prerequisite types.
const (
	PrereqTypeRuntime    PrereqType = "runtime"
	PrereqTypeCredential PrereqType = "credential"
	PrereqTypeSystem     PrereqType = "system"
	PrereqTypeNetwork    PrereqType = "network"
)

// InstallComplexity buckets the installation effort for a server
type InstallComplexity string

// Install complexity buckets.
const (
	ComplexitySimple   InstallComplexity = "simple"
	ComplexityModerate InstallComplexity = "moderate"
	ComplexityComplex  InstallComplexity = "complex"
)

// LookupResponse is the full result of a domain lookup
type LookupResponse struct {
	Domain   string        `json:"domain"`
	Metadata MatchMetadata `json:"match_metadata"`
	Matches  []ServerMatch `json:"matches"`
}

// MatchMetadata describes how the response was produced
type MatchMetadata struct {
	MatchCount   int   `json:"match_count"`
	SearchTimeMS int64 `json:"search_time_ms"`
	CacheHit     bool  `json:"cache_hit"`
}

// ServerMatch is one matched server with its enrichment summaries
type ServerMatch struct {
	ServerID    string `json:"server_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Version     string `json:"version"`

	MatchType       MatchType `json:"match_type"`
	MatchConfidence int       `json:"match_confidence"`
	MappingPriority int       `json:"mapping_priority"`
	AutoSuggest     bool      `json:"auto_suggest"`

	Configurations     []ConfigurationSummary `json:"configurations"`
	Authentication     AuthSummary            `json:"authentication"`
	Tools              ToolsSummary           `json:"tools"`
	Prerequisites      PrerequisitesSummary   `json:"prerequisites"`
	ResourcesAvailable bool                   `json:"resources_available"`

	TrustLevel      TrustLevel     `json:"trust_level"`
	DeploymentType  DeploymentType `json:"deployment_type"`
	PopularityScore int            `json:"popularity_score"`
	InstallCount    int            `json:"install_count"`
	LastUpdated     time.Time      `json:"last_updated"`
}

// ConfigurationSummary is a compact view of one server configuration
type ConfigurationSummary struct {
	ConfigID     string `json:"config_id"`
	Runtime      string `json:"runtime,omitempty"`
	Transport    string `json:"transport"`
	QuickInstall bool   `json:"quick_install"`
}

// AuthSummary aggregates a server's authentication configurations
type AuthSummary struct {
	Required   bool       `json:"required"`
	AuthType   AuthType   `json:"auth_type,omitempty"`
	OAuthReady bool       `json:"oauth_ready"`
	Methods    []AuthType `json:"methods"`
}

// ToolsSummary previews a server's tool catalog
type ToolsSummary struct {
	Count    int      `json:"count"`
	TopTools []string `json:"top_tools"`
}

// PrerequisitesSummary estimates the installation effort for a server
type PrerequisitesSummary struct {
	Complexity       InstallComplexity `json:"complexity"`
	EstimatedMinutes int               `json:"estimated_minutes"`
	RequiresRestart  bool              `json:"requires_restart"`
	Summary          string            `json:"summary,omitempty"`
}

// InstallSpec is the typed form of a configuration's install settings,
// keyed by installation type. Exactly one variant is populated.
type InstallSpec struct {
	Type   InstallationType `json:"installation_type"`
	Npm    *PackageInstall  `json:"npm,omitempty"`
	Pip    *PackageInstall  `json:"pip,omitempty"`
	Docker *DockerInstall   `json:"docker,omitempty"`
	Binary *BinaryInstall   `json:"binary,omitempty"`
	Remote *RemoteInstall   `json:"remote,omitempty"`
	Manual *ManualInstall   `json:"manual,omitempty"`
}

// PackageInstall describes an npm or pip style install
type PackageInstall struct {
	Package string            `json:"package"`
	Version string            `json:"version,omitempty"`
	Args    []string          `json:"args,omitempty"`
	Env     map[string]string `json:"env,omitempty"`
}

// DockerInstall describes a container image install
type DockerInstall struct {
	Image   string            `json:"image"`
	Tag     string            `json:"tag,omitempty"`
	Ports   []string          `json:"ports,omitempty"`
	Env     map[string]string `json:"env,omitempty"`
	Volumes []string          `json:"volumes,omitempty"`
}

// BinaryInstall describes a downloadable binary install
type BinaryInstall struct {
	DownloadURL string `json:"download_url"`
	Checksum    string `json:"checksum,omitempty"`
}

// RemoteInstall describes a hosted endpoint that needs no local install
type RemoteInstall struct {
	Endpoint string `json:"endpoint"`
}

// ManualInstall carries free-form setup instructions
type ManualInstall struct {
	Instructions string `json:"instructions"`
	DocsURL      string `json:"docs_url,omitempty"`
}

// UnmarshalJSON decodes the variant named by installation_type and rejects
// payloads whose type is unknown.
func (s *InstallSpec) UnmarshalJSON(data []byte) error {
	var head struct {
		Type InstallationType `json:"installation_type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return fmt.Errorf("failed to decode install spec: %w", err)
	}

	type alias InstallSpec
	var decoded alias
	if err := json.Unmarshal(data, &decoded); err != nil {
		return fmt.Errorf("failed to decode install spec: %w", err)
	}

	switch head.Type {
	case InstallationTypeNpm, InstallationTypePip, InstallationTypeDocker,
		InstallationTypeBinary, InstallationTypeRemote, InstallationTypeManual:
		*s = InstallSpec(decoded)
		return nil
	default:
		return fmt.Errorf("unknown installation type: %q", head.Type)
	}
}

// AuthSettings is the typed form of an authentication configuration's
// settings, keyed by auth type. Exactly one variant is populated.
type AuthSettings struct {
	Type   AuthType        `json:"auth_type"`
	APIKey *APIKeyAuth     `json:"api_key,omitempty"`
	OAuth2 *OAuth2Auth     `json:"oauth2,omitempty"`
	Custom *CustomAuth     `json:"custom,omitempty"`
	Multi  []*AuthSettings `json:"methods,omitempty"`
}

// APIKeyAuth describes API key authentication
type APIKeyAuth struct {
	HeaderName string `json:"header_name,omitempty"`
	EnvVar     string `json:"env_var,omitempty"`
	DocsURL    string `json:"docs_url,omitempty"`
}

// OAuth2Auth describes OAuth 2.0 authentication
type OAuth2Auth struct {
	AuthorizationURL string   `json:"authorization_url"`
	TokenURL         string   `json:"token_url"`
	Scopes           []string `json:"scopes,omitempty"`
	PKCE             bool     `json:"pkce,omitempty"`
}

// CustomAuth carries free-form authentication instructions
type CustomAuth struct {
	Instructions string `json:"instructions"`
	DocsURL      string `json:"docs_url,omitempty"`
}

// UnmarshalJSON decodes the variant named by auth_type and rejects payloads
// whose type is unknown.
func (a *AuthSettings) UnmarshalJSON(data []byte) error {
	var head struct {
		Type AuthType `json:"auth_type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return fmt.Errorf("failed to decode auth settings: %w", err)
	}

	type alias AuthSettings
	var decoded alias
	if err := json.Unmarshal(data, &decoded); err != nil {
		return fmt.Errorf("failed to decode auth settings: %w", err)
	}

	switch head.Type {
	case AuthTypeNone, AuthTypeAPIKey, AuthTypeOAuth2, AuthTypeCustom, AuthTypeMultiple:
		*a = AuthSettings(decoded)
		return nil
	default:
		return fmt.Errorf("unknown auth type: %q", head.Type)
	}
}
