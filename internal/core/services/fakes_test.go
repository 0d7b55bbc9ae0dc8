package services

import (
	"context"

	"github.com/airweave-ai/airweave-core/internal/core/domain"
)

// fakeExclusionStore is a minimal in-memory driven.ExclusionStore for tests.
type fakeExclusionStore struct {
	added []*domain.Exclusion
}

func newFakeExclusionStore() *fakeExclusionStore {
	return &fakeExclusionStore{}
}

func (f *fakeExclusionStore) Add(_ context.Context, exclusion *domain.Exclusion) error {
	f.added = append(f.added, exclusion)
	return nil
}

func (f *fakeExclusionStore) Remove(_ context.Context, id string) error {
	for i, e := range f.added {
		if e.ID == id {
			f.added = append(f.added[:i], f.added[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeExclusionStore) GetByConnection(_ context.Context, sourceConnectionID string) ([]domain.Exclusion, error) {
	var out []domain.Exclusion
	for _, e := range f.added {
		if e.SourceConnectionID == sourceConnectionID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (f *fakeExclusionStore) IsExcluded(_ context.Context, sourceConnectionID, uri string) (bool, error) {
	for _, e := range f.added {
		if e.SourceConnectionID == sourceConnectionID && e.URI == uri {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeExclusionStore) List(_ context.Context) ([]domain.Exclusion, error) {
	out := make([]domain.Exclusion, 0, len(f.added))
	for _, e := range f.added {
		out = append(out, *e)
	}
	return out, nil
}
