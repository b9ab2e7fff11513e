package mcp

import (
	"context"
	"io"

	"github.com/custodia-labs/sharepoint-lookup/internal/core/domain"
)

// mockLookupService is a mock implementation of driving.LookupService.
type mockLookupService struct {
	results    []domain.LookupResult
	err        error
	validation []domain.ValidationError

	gotEntities []domain.Entity
	gotOptions  domain.ConnectionOptions
	gotSink     io.Writer
}

func (m *mockLookupService) Lookup(
	_ context.Context,
	entities []domain.Entity,
	opts domain.ConnectionOptions,
) ([]domain.LookupResult, error) {
	m.gotEntities = entities
	m.gotOptions = opts
	return m.results, m.err
}

func (m *mockLookupService) ValidateOptions(opts domain.ConnectionOptions) []domain.ValidationError {
	m.gotOptions = opts
	if m.validation == nil {
		return []domain.ValidationError{}
	}
	return m.validation
}

func (m *mockLookupService) Startup(sink io.Writer) { m.gotSink = sink }

// mockOptionsStore is a mock implementation of driven.OptionsStore.
type mockOptionsStore struct {
	options domain.ConnectionOptions
}

func (m *mockOptionsStore) Options() domain.ConnectionOptions { return m.options }

func (m *mockOptionsStore) Concurrency() int { return 0 }

func (m *mockOptionsStore) Reload() error { return nil }

func (m *mockOptionsStore) Watch(ctx context.Context, _ func()) error {
	<-ctx.Done()
	return nil
}

func testOptions() domain.ConnectionOptions {
	return domain.ConnectionOptions{
		URL:      domain.OptionValue{Value: "https://sp.example.com"},
		Username: domain.OptionValue{Value: "svc"},
		Password: domain.OptionValue{Value: "hunter2"},
		Domain:   domain.OptionValue{Value: "CORP"},
	}
}
