package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestExampleConfigurations validates that all example configuration files
// can be loaded and pass validation, so the examples we ship stay in step
// with the config schema.
func TestExampleConfigurations(t *testing.T) {
	t.Parallel()

	examplesDir := filepath.Join("..", "..", "examples")
	if _, err := os.Stat(examplesDir); os.IsNotExist(err) {
		t.Skipf("Examples directory not found at %s, skipping example validation tests", examplesDir)
		return
	}

	entries, err := os.ReadDir(examplesDir)
	require.NoError(t, err, "Failed to read examples directory")

	var exampleFiles []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasPrefix(entry.Name(), "config-") && strings.HasSuffix(entry.Name(), ".yaml") {
			exampleFiles = append(exampleFiles, entry.Name())
		}
	}

	require.NotEmpty(t, exampleFiles, "No example configuration files found in %s", examplesDir)

	for _, filename := range exampleFiles {
		t.Run(filename, func(t *testing.T) {
			t.Parallel()

			cfg, err := LoadConfig(WithConfigPath(filepath.Join(examplesDir, filename)))
			require.NoError(t, err)
			require.NotNil(t, cfg.Database)
			assert.NotEmpty(t, cfg.Database.Host)
		})
	}
}
