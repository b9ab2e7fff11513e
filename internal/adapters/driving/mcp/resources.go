package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// optionsURI identifies the read-only view of the connection options.
const optionsURI = "splookup://options"

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         optionsURI,
		Name:        "options",
		Description: "Configured SharePoint connection options with secrets redacted",
		MIMEType:    "application/json",
	}, s.handleOptionsResource)
}

// handleOptionsResource returns the current options, redacted.
func (s *Server) handleOptionsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(s.ports.Options.Options().Redacted(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling options: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
