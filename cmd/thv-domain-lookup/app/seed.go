package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/stacklok/mcp-domain-registry/internal/config"
	"github.com/stacklok/mcp-domain-registry/internal/db"
	"github.com/stacklok/mcp-domain-registry/internal/db/sqlc"
	"github.com/stacklok/mcp-domain-registry/internal/logger"
	"github.com/stacklok/mcp-domain-registry/internal/service"
	"github.com/stacklok/mcp-domain-registry/internal/validators"
)

var seedCmd = &cobra.Command{
	Use:   "seed [seed-file]",
	Short: "Load servers and domain mappings into the registry store",
	Long: `Load MCP servers, domain mappings, configurations, authentication
settings, tools, prerequisites and resources from a YAML seed file into the
registry store. Servers are upserted by ID so the command can be re-run.

See examples/seed.yaml for the file format.`,
	Args: cobra.ExactArgs(1),
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().String("config", "", "Path to configuration file (YAML format, required)")

	if err := seedCmd.MarkFlagRequired("config"); err != nil {
		panic(err)
	}
}

// seedFile is the root of the YAML seed document.
type seedFile struct {
	Servers []seedServer `yaml:"servers"`
}

type seedServer struct {
	ID              string   `yaml:"id"`
	Name            string   `yaml:"name"`
	Description     string   `yaml:"description"`
	Version         string   `yaml:"version"`
	DeploymentType  string   `yaml:"deploymentType"`
	TrustLevel      string   `yaml:"trustLevel"`
	PopularityScore int32    `yaml:"popularityScore"`
	InstallCount    int32    `yaml:"installCount"`
	Categories      []string `yaml:"categories"`
	Tags            []string `yaml:"tags"`

	Domains        []seedDomain        `yaml:"domains"`
	Configurations []seedConfiguration `yaml:"configurations"`
	Auth           []seedAuth          `yaml:"auth"`
	Tools          []seedTool          `yaml:"tools"`
	Prerequisites  []seedPrerequisite  `yaml:"prerequisites"`
	Resources      []seedResource      `yaml:"resources"`
}

type seedDomain struct {
	Pattern     string `yaml:"pattern"`
	Priority    int32  `yaml:"priority"`
	AutoSuggest bool   `yaml:"autoSuggest"`
	AutoInstall bool   `yaml:"autoInstall"`
}

type seedConfiguration struct {
	Runtime   string `yaml:"runtime"`
	Transport string `yaml:"transport"`
	// Install is the installation spec, keyed by installation_type.
	// It is validated against the known installation types before storage.
	Install   map[string]any `yaml:"install"`
	Priority  int32          `yaml:"priority"`
	IsDefault bool           `yaml:"default"`
}

type seedAuth struct {
	// Settings is the auth settings document, keyed by auth_type.
	// It is validated against the known auth types before storage.
	Settings map[string]any `yaml:"settings"`
	Priority int32          `yaml:"priority"`
	Required bool           `yaml:"required"`
}

type seedTool struct {
	Name         string `yaml:"name"`
	DisplayName  string `yaml:"displayName"`
	AuthRequired bool   `yaml:"authRequired"`
}

type seedPrerequisite struct {
	Type    string `yaml:"type"`
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
}

type seedResource struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

func runSeed(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}

	cfg, err := config.LoadConfig(config.WithConfigPath(configPath))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	seed, err := loadSeedFile(args[0])
	if err != nil {
		return err
	}

	pool, err := db.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			logger.Errorf("Failed to rollback transaction: %v", err)
		}
	}()

	queries := sqlc.New(tx)
	for i := range seed.Servers {
		if err := seedOneServer(ctx, queries, &seed.Servers[i]); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	logger.Infof("Seeded %d servers into the registry store", len(seed.Servers))
	return nil
}

func loadSeedFile(path string) (*seedFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var seed seedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	if len(seed.Servers) == 0 {
		return nil, fmt.Errorf("seed file contains no servers")
	}

	for i := range seed.Servers {
		if err := validateSeedServer(&seed.Servers[i]); err != nil {
			return nil, err
		}
	}

	return &seed, nil
}

func validateSeedServer(srv *seedServer) error {
	if srv.ID == "" {
		return fmt.Errorf("server id is required")
	}
	if srv.Name == "" {
		return fmt.Errorf("server %s: name is required", srv.ID)
	}
	if !service.DeploymentType(srv.DeploymentType).Valid() {
		return fmt.Errorf("server %s: unknown deployment type %q", srv.ID, srv.DeploymentType)
	}
	if !service.TrustLevel(srv.TrustLevel).Valid() {
		return fmt.Errorf("server %s: unknown trust level %q", srv.ID, srv.TrustLevel)
	}
	for _, d := range srv.Domains {
		// Wildcard patterns are validated on their literal suffix
		pattern := strings.TrimPrefix(d.Pattern, "*.")
		if _, err := validators.ValidateDomain(pattern); err != nil {
			return fmt.Errorf("server %s: invalid domain pattern %q: %w", srv.ID, d.Pattern, err)
		}
	}
	return nil
}

func seedOneServer(ctx context.Context, queries *sqlc.Queries, srv *seedServer) error {
	err := queries.InsertServer(ctx, sqlc.InsertServerParams{
		ID:              srv.ID,
		Name:            srv.Name,
		Description:     srv.Description,
		Version:         srv.Version,
		DeploymentType:  srv.DeploymentType,
		TrustLevel:      srv.TrustLevel,
		PopularityScore: srv.PopularityScore,
		InstallCount:    srv.InstallCount,
		Categories:      srv.Categories,
		Tags:            srv.Tags,
	})
	if err != nil {
		return fmt.Errorf("failed to insert server %s: %w", srv.ID, err)
	}

	for _, d := range srv.Domains {
		matchType := string(service.MatchTypeExact)
		if strings.Contains(d.Pattern, "*") {
			matchType = string(service.MatchTypeWildcard)
		}
		err := queries.InsertDomainMapping(ctx, sqlc.InsertDomainMappingParams{
			ID:            uuid.New().String(),
			ServerID:      srv.ID,
			DomainPattern: strings.ToLower(d.Pattern),
			MatchType:     matchType,
			Priority:      d.Priority,
			AutoSuggest:   d.AutoSuggest,
			AutoInstall:   d.AutoInstall,
		})
		if err != nil {
			return fmt.Errorf("failed to insert domain mapping %s for server %s: %w", d.Pattern, srv.ID, err)
		}
	}

	for i, c := range srv.Configurations {
		installType, configData, err := encodeInstallSpec(c.Install)
		if err != nil {
			return fmt.Errorf("server %s configuration %d: %w", srv.ID, i, err)
		}
		var runtime *string
		if c.Runtime != "" {
			runtime = &c.Runtime
		}
		err = queries.InsertServerConfiguration(ctx, sqlc.InsertServerConfigurationParams{
			ID:               uuid.New().String(),
			ServerID:         srv.ID,
			Runtime:          runtime,
			Transport:        c.Transport,
			InstallationType: installType,
			ConfigData:       configData,
			Priority:         c.Priority,
			IsDefault:        c.IsDefault,
		})
		if err != nil {
			return fmt.Errorf("failed to insert configuration for server %s: %w", srv.ID, err)
		}
	}

	for i, a := range srv.Auth {
		authType, authData, err := encodeAuthSettings(a.Settings)
		if err != nil {
			return fmt.Errorf("server %s auth %d: %w", srv.ID, i, err)
		}
		err = queries.InsertAuthConfiguration(ctx, sqlc.InsertAuthConfigurationParams{
			ID:       uuid.New().String(),
			ServerID: srv.ID,
			AuthType: authType,
			AuthData: authData,
			Priority: a.Priority,
			Required: a.Required,
		})
		if err != nil {
			return fmt.Errorf("failed to insert auth configuration for server %s: %w", srv.ID, err)
		}
	}

	for _, tool := range srv.Tools {
		var displayName *string
		if tool.DisplayName != "" {
			name := tool.DisplayName
			displayName = &name
		}
		err := queries.InsertServerTool(ctx, sqlc.InsertServerToolParams{
			ID:           uuid.New().String(),
			ServerID:     srv.ID,
			ToolName:     tool.Name,
			DisplayName:  displayName,
			AuthRequired: tool.AuthRequired,
		})
		if err != nil {
			return fmt.Errorf("failed to insert tool %s for server %s: %w", tool.Name, srv.ID, err)
		}
	}

	for _, p := range srv.Prerequisites {
		var version *string
		if p.Version != "" {
			v := p.Version
			version = &v
		}
		err := queries.InsertInstallationPrerequisite(ctx, sqlc.InsertInstallationPrerequisiteParams{
			ID:         uuid.New().String(),
			ServerID:   srv.ID,
			PrereqType: p.Type,
			Name:       p.Name,
			Version:    version,
		})
		if err != nil {
			return fmt.Errorf("failed to insert prerequisite %s for server %s: %w", p.Name, srv.ID, err)
		}
	}

	for _, r := range srv.Resources {
		err := queries.InsertServerResource(ctx, sqlc.InsertServerResourceParams{
			ID:           uuid.New().String(),
			ServerID:     srv.ID,
			ResourceName: r.Name,
			ResourceType: r.Type,
		})
		if err != nil {
			return fmt.Errorf("failed to insert resource %s for server %s: %w", r.Name, srv.ID, err)
		}
	}

	logger.Debugf("Seeded server %s (%d domains)", srv.ID, len(srv.Domains))
	return nil
}

// encodeInstallSpec round-trips the raw install document through the typed
// installation spec so unknown installation types are rejected at seed time.
func encodeInstallSpec(raw map[string]any) (string, []byte, error) {
	if len(raw) == 0 {
		return "", nil, fmt.Errorf("install spec is required")
	}

	data, err := json.Marshal(raw)
	if err != nil {
		return "", nil, fmt.Errorf("failed to encode install spec: %w", err)
	}

	var spec service.InstallSpec
	if err := json.Unmarshal(data, &spec); err != nil {
		return "", nil, fmt.Errorf("invalid install spec: %w", err)
	}

	return string(spec.Type), data, nil
}

// encodeAuthSettings round-trips the raw auth document through the typed
// auth settings so unknown auth types are rejected at seed time.
func encodeAuthSettings(raw map[string]any) (string, []byte, error) {
	if len(raw) == 0 {
		return "", nil, fmt.Errorf("auth settings are required")
	}

	data, err := json.Marshal(raw)
	if err != nil {
		return "", nil, fmt.Errorf("failed to encode auth settings: %w", err)
	}

	var settings service.AuthSettings
	if err := json.Unmarshal(data, &settings); err != nil {
		return "", nil, fmt.Errorf("invalid auth settings: %w", err)
	}

	return string(settings.Type), data, nil
}
