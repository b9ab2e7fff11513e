package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/sharepoint-lookup/internal/core/domain"
)

// defaultEntityType is used when the caller does not classify the values.
const defaultEntityType = "string"

// LookupInput is the input schema for the lookup tool.
type LookupInput struct {
	Values     []string `json:"values" jsonschema:"the values to search SharePoint for"`
	Type       string   `json:"type,omitempty" jsonschema:"entity type of the values (default string)"`
	ExactMatch *bool    `json:"exact_match,omitempty" jsonschema:"search for the exact phrase instead of any of its words"`
}

// LookupOutput is the output schema for the lookup tool.
type LookupOutput struct {
	Results []EntityResultOutput `json:"results"`
	Count   int                  `json:"count"`
}

// EntityResultOutput is the outcome for one value. Found is false when
// SharePoint returned nothing.
type EntityResultOutput struct {
	Type      string             `json:"type"`
	Value     string             `json:"value"`
	Found     bool               `json:"found"`
	Summary   []string           `json:"summary,omitempty"`
	Documents []ResultItemOutput `json:"documents,omitempty"`
	Pages     []ResultItemOutput `json:"pages,omitempty"`
}

// ResultItemOutput is a single page or document.
type ResultItemOutput struct {
	Title            string `json:"title"`
	FileExtension    string `json:"file_extension,omitempty"`
	Path             string `json:"path,omitempty"`
	Author           string `json:"author,omitempty"`
	LastModified     string `json:"last_modified,omitempty"`
	Size             string `json:"size,omitempty"`
	ContainingFolder string `json:"containing_folder,omitempty"`
	Highlights       string `json:"highlights,omitempty"`
}

// ValidateInput is the input schema for the validate_options tool.
type ValidateInput struct{}

// ValidateOutput is the output schema for the validate_options tool.
type ValidateOutput struct {
	Valid  bool                     `json:"valid"`
	Errors []domain.ValidationError `json:"errors"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "lookup",
		Description: "Search SharePoint for each value and return matching pages and documents",
	}, s.handleLookup)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "validate_options",
		Description: "Check that the configured SharePoint connection options are complete",
	}, s.handleValidateOptions)
}

// handleLookup handles the lookup tool invocation.
func (s *Server) handleLookup(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input LookupInput,
) (*mcp.CallToolResult, LookupOutput, error) {
	entityType := input.Type
	if entityType == "" {
		entityType = defaultEntityType
	}

	entities := make([]domain.Entity, 0, len(input.Values))
	for _, v := range input.Values {
		if v = strings.TrimSpace(v); v != "" {
			entities = append(entities, domain.Entity{Type: entityType, Value: v})
		}
	}
	if len(entities) == 0 {
		return nil, LookupOutput{}, fmt.Errorf("%w: at least one value is required", domain.ErrInvalidInput)
	}

	opts := s.ports.Options.Options()
	if input.ExactMatch != nil {
		opts.ExactMatch = *input.ExactMatch
	}

	results, err := s.ports.Lookup.Lookup(ctx, entities, opts)
	if err != nil {
		return nil, LookupOutput{}, toolError(err)
	}

	output := LookupOutput{
		Results: make([]EntityResultOutput, len(results)),
		Count:   len(results),
	}
	for i := range results {
		output.Results[i] = toEntityOutput(results[i])
	}

	return nil, output, nil
}

func toEntityOutput(r domain.LookupResult) EntityResultOutput {
	out := EntityResultOutput{
		Type:  r.Entity.Type,
		Value: r.Entity.Value,
		Found: r.HasResults(),
	}
	if !out.Found {
		return out
	}

	out.Summary = r.Data.Summary
	out.Documents = toItemOutputs(r.Data.Details.Documents)
	out.Pages = toItemOutputs(r.Data.Details.Pages)
	return out
}

func toItemOutputs(items []domain.FormattedResult) []ResultItemOutput {
	out := make([]ResultItemOutput, len(items))
	for i := range items {
		out[i] = ResultItemOutput{
			Title:            items[i].Title,
			FileExtension:    items[i].FileExtension,
			Path:             items[i].Path,
			Author:           items[i].Author,
			LastModified:     items[i].LastModifiedTime,
			Size:             items[i].SizeHumanReadable,
			ContainingFolder: items[i].ContainingFolder,
			Highlights:       items[i].HitHighlightedSummary,
		}
	}
	return out
}

// handleValidateOptions handles the validate_options tool invocation.
func (s *Server) handleValidateOptions(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ ValidateInput,
) (*mcp.CallToolResult, ValidateOutput, error) {
	errs := s.ports.Lookup.ValidateOptions(s.ports.Options.Options())
	return nil, ValidateOutput{Valid: len(errs) == 0, Errors: errs}, nil
}

// toolError renders a lookup failure as its JSON payload so the client
// sees the same {name, message, stack, detail} shape as other hosts.
func toolError(err error) error {
	data, mErr := json.Marshal(domain.PayloadOf(err))
	if mErr != nil {
		return err
	}
	return errors.New(string(data))
}
