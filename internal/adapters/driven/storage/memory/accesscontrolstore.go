package memory

import (
	"context"
	"sync"

	"github.com/airweave-ai/airweave-core/internal/core/domain"
	"github.com/airweave-ai/airweave-core/internal/core/ports/driven"
)

// Ensure AccessControlStore implements the interface.
var _ driven.AccessControlStore = (*AccessControlStore)(nil)

// AccessControlStore is an in-memory implementation of
// driven.AccessControlStore: entity id -> set of principals allowed to see it.
type AccessControlStore struct {
	mu         sync.RWMutex
	principals map[string]map[string]struct{} // entityID -> principal set
}

// NewAccessControlStore creates a new in-memory access-control store.
func NewAccessControlStore() *AccessControlStore {
	return &AccessControlStore{principals: make(map[string]map[string]struct{})}
}

// Apply applies a batch of membership mutations.
func (s *AccessControlStore) Apply(_ context.Context, actions []domain.MembershipAction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range actions {
		switch a.Type {
		case domain.MembershipUpsert:
			set, ok := s.principals[a.Group]
			if !ok {
				set = make(map[string]struct{})
				s.principals[a.Group] = set
			}
			set[a.Member] = struct{}{}
		case domain.MembershipDelete:
			if set, ok := s.principals[a.Group]; ok {
				delete(set, a.Member)
			}
		case domain.MembershipDeleteByGroup:
			delete(s.principals, a.Group)
		case domain.MembershipDeleteByMember:
			for entityID, set := range s.principals {
				delete(set, a.Member)
				if len(set) == 0 {
					delete(s.principals, entityID)
				}
			}
		}
	}
	return nil
}

// PrincipalsFor returns the principals allowed to see an entity.
func (s *AccessControlStore) PrincipalsFor(_ context.Context, entityID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	set, ok := s.principals[entityID]
	if !ok {
		return nil, nil
	}
	out := make([]string, 0, len(set))
	for p := range set {
		out = append(out, p)
	}
	return out, nil
}
