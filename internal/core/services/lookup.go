package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/sharepoint-lookup/internal/core/domain"
	"github.com/custodia-labs/sharepoint-lookup/internal/core/ports/driven"
	"github.com/custodia-labs/sharepoint-lookup/internal/core/ports/driving"
	"github.com/custodia-labs/sharepoint-lookup/internal/logger"
)

// Ensure LookupService implements the interface.
var _ driving.LookupService = (*LookupService)(nil)

// DefaultConcurrency is the number of entity searches run at once.
const DefaultConcurrency = 10

// Details attached to normalised lookup errors.
const (
	detailLookupFailed    = "Failed to lookup entity"
	detailConfigureFailed = "Failed to configure search client"
)

// Connection is an immutable, versioned search client.
// Reconfiguration publishes a new Connection; searches already running
// keep the one they started with. A replaced Connection closes its client,
// if the client is an io.Closer, once the last batch using it returns.
type Connection struct {
	Version uint64
	Client  driven.SearchClient

	accessToken string
	refs        atomic.Int64
	retired     atomic.Bool
	closeOnce   sync.Once
}

// acquire marks one more batch as using the connection.
func (c *Connection) acquire() {
	c.refs.Add(1)
}

// release marks a batch as done with the connection.
func (c *Connection) release() {
	if c.refs.Add(-1) == 0 && c.retired.Load() {
		c.close()
	}
}

// retire marks the connection as replaced.
func (c *Connection) retire() {
	c.retired.Store(true)
	if c.refs.Load() == 0 {
		c.close()
	}
}

func (c *Connection) close() {
	c.closeOnce.Do(func() {
		closer, ok := c.Client.(io.Closer)
		if !ok {
			return
		}
		if err := closer.Close(); err != nil {
			logger.Warn("Closing search client v%d: %v", c.Version, err)
			return
		}
		logger.Debug("Closed search client v%d", c.Version)
	})
}

// LookupService runs batches of entity searches against SharePoint.
type LookupService struct {
	factory     driven.ClientFactory
	detector    *ChangeDetector
	concurrency atomic.Int64

	// mu serialises change detection with client construction.
	mu      sync.Mutex
	conn    atomic.Pointer[Connection]
	version atomic.Uint64
}

// NewLookupService creates a lookup service that builds clients with factory.
func NewLookupService(factory driven.ClientFactory) *LookupService {
	s := &LookupService{
		factory:  factory,
		detector: NewChangeDetector(),
	}
	s.concurrency.Store(DefaultConcurrency)
	return s
}

// SetConcurrency sets how many entity searches may run at once.
// Values below 1 restore the default. Safe to call while lookups run;
// the new limit applies to the next batch.
func (s *LookupService) SetConcurrency(n int) {
	if n < 1 {
		n = DefaultConcurrency
	}
	s.concurrency.Store(int64(n))
}

// Startup routes log output to sink.
func (s *LookupService) Startup(sink io.Writer) {
	if sink != nil {
		logger.SetOutput(sink)
	}
}

// ValidateOptions reports every required option that is missing or empty.
func (s *LookupService) ValidateOptions(opts domain.ConnectionOptions) []domain.ValidationError {
	return ValidateOptions(opts)
}

// Connection returns the current connection, or nil before the first lookup.
func (s *LookupService) Connection() *Connection {
	return s.conn.Load()
}

// Lookup searches for every entity concurrently. Results are returned in
// input order. If any search fails the whole batch fails with a single
// *domain.LookupError and no partial results.
func (s *LookupService) Lookup(
	ctx context.Context, entities []domain.Entity, opts domain.ConnectionOptions,
) ([]domain.LookupResult, error) {
	batchID := uuid.NewString()
	logger.Section("Lookup")
	logger.Debug("Batch %s: %d entities", batchID, len(entities))

	if errs := lookupErrors(opts); len(errs) > 0 {
		err := configurationError(errs)
		logger.Error("batch %s: %v", batchID, err)
		return nil, err
	}

	conn, err := s.connect(ctx, opts)
	if err != nil {
		lookupErr := domain.NewLookupError(domain.KindConfiguration, err, detailConfigureFailed)
		logger.Error("batch %s: %v", batchID, lookupErr)
		return nil, lookupErr
	}
	defer conn.release()
	logger.Debug("Batch %s: using connection v%d", batchID, conn.Version)

	results := make([]domain.LookupResult, len(entities))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(int(s.concurrency.Load()))
	for i, entity := range entities {
		g.Go(func() error {
			query := BuildQuery(entity.Value, opts.ExactMatch)
			logger.Trace("Batch %s: searching %q", batchID, query.Text)

			raw, err := conn.Client.Search(gctx, query)
			if err != nil {
				return fmt.Errorf("search %q: %w", entity.Value, err)
			}
			results[i] = buildResult(entity, raw)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		lookupErr := domain.NewLookupError(domain.KindTransport, err, detailLookupFailed)
		logger.Error("doLookup batch %s: %v", batchID, err)
		return nil, lookupErr
	}

	logger.Info("Batch %s: %d results", batchID, len(results))
	return results, nil
}

// connect returns the connection to use for a batch, rebuilding the
// client first when the options or the access token changed since the
// last batch. The caller must release the returned connection.
func (s *LookupService) connect(ctx context.Context, opts domain.ConnectionOptions) (*Connection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed := s.detector.HasChanged(opts)
	current := s.conn.Load()
	if !changed && current != nil && current.accessToken == opts.AccessToken.Value {
		current.acquire()
		return current, nil
	}

	logger.Trace("Options Changed: %+v", opts.Redacted())
	if s.factory == nil {
		s.detector.Forget()
		return nil, domain.ErrNotConfigured
	}

	client, err := s.factory.NewClient(ctx, opts.Settings())
	if err != nil {
		// Forget the fingerprint so the next batch retries the build.
		s.detector.Forget()
		return nil, fmt.Errorf("build search client: %w", err)
	}

	conn := &Connection{
		Version:     s.version.Add(1),
		Client:      client,
		accessToken: opts.AccessToken.Value,
	}
	conn.acquire()
	if previous := s.conn.Swap(conn); previous != nil {
		previous.retire()
	}
	return conn, nil
}

// buildResult assembles the result for one entity.
func buildResult(entity domain.Entity, raw []domain.RawResult) domain.LookupResult {
	if len(raw) == 0 {
		return domain.LookupResult{Entity: entity}
	}

	details := FormatResults(raw)
	logger.Debug("Formatted Search Results for %q: %d pages, %d documents",
		entity.Value, len(details.Pages), len(details.Documents))

	return domain.LookupResult{
		Entity: entity,
		Data: &domain.LookupData{
			Summary: BuildSummaryTags(raw),
			Details: details,
		},
	}
}

// configurationError builds the error returned for invalid options.
func configurationError(errs []domain.ValidationError) *domain.LookupError {
	keys := make([]string, len(errs))
	for i, e := range errs {
		keys[i] = e.Key
	}
	cause := fmt.Errorf("%w: missing %s", domain.ErrInvalidInput, strings.Join(keys, ", "))
	return domain.NewLookupError(domain.KindConfiguration, cause, errs[0].Message)
}

// IsConfigurationError reports whether err is an invalid-options failure.
func IsConfigurationError(err error) bool {
	var lookupErr *domain.LookupError
	return errors.As(err, &lookupErr) && lookupErr.Kind == domain.KindConfiguration
}
