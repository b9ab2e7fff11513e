package connectors

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/custodia-labs/sharepoint-lookup/internal/connectors/localindex"
	"github.com/custodia-labs/sharepoint-lookup/internal/connectors/sharepoint"
	"github.com/custodia-labs/sharepoint-lookup/internal/core/domain"
	"github.com/custodia-labs/sharepoint-lookup/internal/core/ports/driven"
)

// Ensure Factory implements the interface.
var _ driven.ClientFactory = (*Factory)(nil)

// Factory builds a search client based on the site URL scheme:
// http and https select SharePoint, file selects a local index.
type Factory struct{}

// NewFactory creates a client factory.
func NewFactory() *Factory {
	return &Factory{}
}

// NewClient builds a client for settings.SiteURL.
func (f *Factory) NewClient(ctx context.Context, settings domain.ConnectionSettings) (driven.SearchClient, error) {
	u, err := url.Parse(strings.TrimSpace(settings.SiteURL))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		client, err := sharepoint.NewClient(ctx, settings)
		if err != nil {
			return nil, err
		}
		return client, nil
	case "file":
		index, err := localindex.Open(u.Path)
		if err != nil {
			return nil, err
		}
		return index, nil
	default:
		return nil, fmt.Errorf("%w: site URL scheme %q", domain.ErrUnsupportedType, u.Scheme)
	}
}
