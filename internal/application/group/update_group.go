package group

import (
	"context"
	"time"

	"github.com/amirhosseinghanipour/idolbase/internal/application/dto"
	"github.com/amirhosseinghanipour/idolbase/internal/application/ports"
	"github.com/amirhosseinghanipour/idolbase/internal/domain"
	domerrors "github.com/amirhosseinghanipour/idolbase/internal/domain/errors"
)

// UpdateGroupInput replaces every mutable field of a group.
type UpdateGroupInput struct {
	ID            domain.GroupID
	Name          string
	DebutDate     *time.Time
	HasGeneration bool
}

// UpdateGroup loads a group, applies the new fields and stores it.
type UpdateGroup struct {
	groups ports.GroupRepository
}

// NewUpdateGroup builds the use case.
func NewUpdateGroup(groups ports.GroupRepository) *UpdateGroup {
	return &UpdateGroup{groups: groups}
}

// Execute updates the group. Returns NotFound when the id does not exist.
func (uc *UpdateGroup) Execute(ctx context.Context, input UpdateGroupInput) (*dto.GroupDTO, error) {
	g, err := uc.groups.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, domerrors.NotFound(entityName, input.ID.String())
	}
	if err := g.Update(domain.GroupParams{
		Name:          input.Name,
		DebutDate:     input.DebutDate,
		HasGeneration: input.HasGeneration,
	}); err != nil {
		return nil, err
	}
	if err := uc.groups.Update(ctx, g); err != nil {
		return nil, err
	}
	out := dto.ToGroupDTO(g)
	return &out, nil
}
