package driven

import (
	"context"

	"github.com/custodia-labs/sharepoint-lookup/internal/core/domain"
)

// OptionsStore provides the connection options used by hosts that do not
// pass options with every call (CLI, HTTP, MCP).
type OptionsStore interface {
	// Options returns the current connection options.
	Options() domain.ConnectionOptions

	// Concurrency returns the configured fan-out limit (0 = default).
	Concurrency() int

	// Reload re-reads the underlying configuration.
	Reload() error

	// Watch reloads whenever the configuration changes until ctx is done.
	Watch(ctx context.Context, onChange func()) error
}
