package mcp

import (
	"context"

	"github.com/airweave-ai/airweave-core/internal/core/domain"
	"github.com/airweave-ai/airweave-core/internal/core/ports/driving"
)

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	results []domain.SearchResult
	err     error
}

func (m *mockSearchService) Search(
	_ context.Context,
	_ string,
	_ domain.SearchOptions,
) ([]domain.SearchResult, error) {
	return m.results, m.err
}

// mockSourceService is a mock implementation of driving.SourceConnectionService.
type mockSourceService struct {
	sources []domain.SourceConnection
	source  *domain.SourceConnection
	err     error
}

func (m *mockSourceService) Add(_ context.Context, _ domain.SourceConnection) error {
	return m.err
}

func (m *mockSourceService) Get(_ context.Context, _ string) (*domain.SourceConnection, error) {
	return m.source, m.err
}

func (m *mockSourceService) List(_ context.Context) ([]domain.SourceConnection, error) {
	return m.sources, m.err
}

func (m *mockSourceService) Remove(_ context.Context, _ string) error {
	return m.err
}

func (m *mockSourceService) Update(_ context.Context, _ domain.SourceConnection) error {
	return m.err
}

func (m *mockSourceService) ValidateConfig(_ context.Context, _ string, _ map[string]string) error {
	return m.err
}

// mockEntityService is a mock implementation of driving.EntityService.
type mockEntityService struct {
	entities []domain.Entity
	entity   domain.Entity
	content  string
	details  *driving.EntityDetails
	err      error
}

func (m *mockEntityService) ListByConnection(_ context.Context, _ string) ([]domain.Entity, error) {
	return m.entities, m.err
}

func (m *mockEntityService) Get(_ context.Context, _ string) (domain.Entity, error) {
	return m.entity, m.err
}

func (m *mockEntityService) GetContent(_ context.Context, _ string) (string, error) {
	return m.content, m.err
}

func (m *mockEntityService) GetDetails(_ context.Context, _ string) (*driving.EntityDetails, error) {
	return m.details, m.err
}

func (m *mockEntityService) Exclude(_ context.Context, _, _ string) error {
	return m.err
}

func (m *mockEntityService) Refresh(_ context.Context, _ string) error {
	return m.err
}

func (m *mockEntityService) Open(_ context.Context, _ string) error {
	return m.err
}
