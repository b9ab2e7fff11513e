package mcp

import (
	"io"

	"github.com/custodia-labs/sharepoint-lookup/internal/core/ports/driven"
	"github.com/custodia-labs/sharepoint-lookup/internal/core/ports/driving"
)

// Ports aggregates the ports required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Lookup runs entity searches.
	Lookup driving.LookupService

	// Options supplies the connection options for every call.
	Options driven.OptionsStore

	// LogSink, if set, receives the lookup service's log output.
	LogSink io.Writer

	// Version is reported to clients. Defaults to "dev".
	Version string
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Lookup == nil {
		return ErrMissingLookupService
	}
	if p.Options == nil {
		return ErrMissingOptionsStore
	}
	return nil
}
