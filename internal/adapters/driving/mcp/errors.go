// Package mcp provides an MCP (Model Context Protocol) server adapter for
// SharePoint lookups. It lets AI assistants search SharePoint for entities
// and check the configured connection options.
package mcp

import "errors"

var (
	// ErrMissingLookupService is returned when the lookup service is not provided.
	ErrMissingLookupService = errors.New("mcp: lookup service is required")

	// ErrMissingOptionsStore is returned when the options store is not provided.
	ErrMissingOptionsStore = errors.New("mcp: options store is required")
)
