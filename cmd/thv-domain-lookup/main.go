// Package main is the entry point for the MCP domain lookup server.
package main

import (
	"os"

	"github.com/stacklok/mcp-domain-registry/cmd/thv-domain-lookup/app"
	"github.com/stacklok/mcp-domain-registry/internal/logger"
)

func main() {
	logger.Initialize()

	if err := app.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
