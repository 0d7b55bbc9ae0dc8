package destination

import (
	"context"
	"fmt"

	"github.com/airweave-ai/airweave-core/internal/core/domain"
	"github.com/airweave-ai/airweave-core/internal/core/ports/driven"
)

// Ensure AccessControlHandler implements the interface.
var _ driven.DestinationHandler = (*AccessControlHandler)(nil)

// AccessControlHandler projects an entity's source-reported AccessControl
// (domain.SystemMetadata's Access field, populated from BaseEntity.Access
// upstream) into membership rows a search-time principal filter can query
// (§3, §4.5's access-control handler).
type AccessControlHandler struct {
	store driven.AccessControlStore
}

// NewAccessControlHandler creates a handler over an AccessControlStore.
func NewAccessControlHandler(store driven.AccessControlStore) *AccessControlHandler {
	return &AccessControlHandler{store: store}
}

// Name identifies the handler.
func (h *AccessControlHandler) Name() string { return "access-control" }

// Handle translates each action into membership row mutations.
func (h *AccessControlHandler) Handle(ctx context.Context, batch *domain.ActionBatch) error {
	if h.store == nil {
		return nil
	}

	var memberships []domain.MembershipAction
	for _, action := range batch.Actions {
		entityID := action.Entity.ID()
		switch action.Type {
		case domain.ActionDelete:
			memberships = append(memberships, domain.MembershipAction{
				Type:  domain.MembershipDeleteByGroup,
				Group: entityID,
			})
		case domain.ActionInsert, domain.ActionUpdate:
			access := action.Entity.Meta().Access
			if access == nil {
				continue
			}
			if access.IsPublic {
				memberships = append(memberships, domain.MembershipAction{
					Type: domain.MembershipUpsert, Member: "public", MemberType: "public", Group: entityID,
				})
				continue
			}
			for _, viewer := range access.Viewers {
				memberships = append(memberships, domain.MembershipAction{
					Type: domain.MembershipUpsert, Member: viewer, MemberType: "principal", Group: entityID,
				})
			}
		case domain.ActionSkip:
			// nothing to do
		}
	}

	if len(memberships) == 0 {
		return nil
	}
	if err := h.store.Apply(ctx, memberships); err != nil {
		return fmt.Errorf("apply membership actions: %w", err)
	}
	return nil
}
