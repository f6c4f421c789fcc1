package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validSeed = `
servers:
  - id: github-mcp
    name: GitHub MCP
    description: GitHub issues, pull requests and repositories
    version: 1.2.0
    deploymentType: local
    trustLevel: verified
    popularityScore: 95
    installCount: 10000
    categories: [development]
    tags: [git, github]
    domains:
      - pattern: github.com
        priority: 1
        autoSuggest: true
      - pattern: "*.github.io"
        priority: 5
    configurations:
      - runtime: node
        transport: stdio
        priority: 1
        default: true
        install:
          installation_type: npm
          npm:
            package: "@example/github-mcp"
            version: "1.2.0"
    auth:
      - priority: 1
        required: true
        settings:
          auth_type: oauth2
          oauth2:
            authorization_url: https://github.com/login/oauth/authorize
            token_url: https://github.com/login/oauth/access_token
            scopes: [repo]
            pkce: true
    tools:
      - name: create_issue
        displayName: Create Issue
        authRequired: true
    prerequisites:
      - type: runtime
        name: node
        version: ">=18"
    resources:
      - name: repository
        type: repository
`

func writeSeedFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadSeedFile(t *testing.T) {
	t.Parallel()

	seed, err := loadSeedFile(writeSeedFile(t, validSeed))
	require.NoError(t, err)
	require.Len(t, seed.Servers, 1)

	srv := seed.Servers[0]
	assert.Equal(t, "github-mcp", srv.ID)
	assert.Len(t, srv.Domains, 2)
	assert.Len(t, srv.Configurations, 1)
	assert.Len(t, srv.Auth, 1)
	assert.Equal(t, "npm", srv.Configurations[0].Install["installation_type"])
}

func TestLoadSeedFileErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "empty file",
			content: "servers: []",
			wantErr: "no servers",
		},
		{
			name: "missing id",
			content: `
servers:
  - name: broken
    deploymentType: local
    trustLevel: verified
`,
			wantErr: "server id is required",
		},
		{
			name: "unknown trust level",
			content: `
servers:
  - id: x
    name: x
    deploymentType: local
    trustLevel: platinum
`,
			wantErr: "unknown trust level",
		},
		{
			name: "unknown deployment type",
			content: `
servers:
  - id: x
    name: x
    deploymentType: cloud
    trustLevel: verified
`,
			wantErr: "unknown deployment type",
		},
		{
			name: "invalid domain pattern",
			content: `
servers:
  - id: x
    name: x
    deploymentType: local
    trustLevel: verified
    domains:
      - pattern: "-bad-.com"
`,
			wantErr: "invalid domain pattern",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := loadSeedFile(writeSeedFile(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

// TestExampleSeedFile keeps the shipped seed example in step with the seed
// schema and the typed install/auth specs.
func TestExampleSeedFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join("..", "..", "..", "examples", "seed.yaml")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Skipf("Example seed file not found at %s", path)
		return
	}

	seed, err := loadSeedFile(path)
	require.NoError(t, err)
	require.NotEmpty(t, seed.Servers)

	for _, srv := range seed.Servers {
		for i, c := range srv.Configurations {
			_, _, err := encodeInstallSpec(c.Install)
			require.NoError(t, err, "server %s configuration %d", srv.ID, i)
		}
		for i, a := range srv.Auth {
			_, _, err := encodeAuthSettings(a.Settings)
			require.NoError(t, err, "server %s auth %d", srv.ID, i)
		}
	}
}

func TestEncodeInstallSpec(t *testing.T) {
	t.Parallel()

	t.Run("npm spec", func(t *testing.T) {
		t.Parallel()

		installType, data, err := encodeInstallSpec(map[string]any{
			"installation_type": "npm",
			"npm": map[string]any{
				"package": "@example/github-mcp",
			},
		})
		require.NoError(t, err)
		assert.Equal(t, "npm", installType)
		assert.Contains(t, string(data), `"installation_type":"npm"`)
	})

	t.Run("unknown installation type", func(t *testing.T) {
		t.Parallel()

		_, _, err := encodeInstallSpec(map[string]any{
			"installation_type": "homebrew",
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid install spec")
	})

	t.Run("empty spec", func(t *testing.T) {
		t.Parallel()

		_, _, err := encodeInstallSpec(nil)
		require.Error(t, err)
	})
}

func TestEncodeAuthSettings(t *testing.T) {
	t.Parallel()

	t.Run("oauth2 settings", func(t *testing.T) {
		t.Parallel()

		authType, data, err := encodeAuthSettings(map[string]any{
			"auth_type": "oauth2",
			"oauth2": map[string]any{
				"authorization_url": "https://example.com/authorize",
				"token_url":         "https://example.com/token",
			},
		})
		require.NoError(t, err)
		assert.Equal(t, "oauth2", authType)
		assert.Contains(t, string(data), `"auth_type":"oauth2"`)
	})

	t.Run("unknown auth type", func(t *testing.T) {
		t.Parallel()

		_, _, err := encodeAuthSettings(map[string]any{
			"auth_type": "kerberos",
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid auth settings")
	})
}
