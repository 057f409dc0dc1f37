package group

import (
	"context"
	"time"

	"github.com/amirhosseinghanipour/idolbase/internal/application/dto"
	"github.com/amirhosseinghanipour/idolbase/internal/application/ports"
	"github.com/amirhosseinghanipour/idolbase/internal/domain"
)

// entityName is used in NotFound errors.
const entityName = "group"

// CreateGroupInput holds the fields of a new group.
type CreateGroupInput struct {
	Name          string
	DebutDate     *time.Time
	HasGeneration bool
}

// CreateGroup validates and stores a new group.
type CreateGroup struct {
	groups ports.GroupRepository
}

// NewCreateGroup builds the use case.
func NewCreateGroup(groups ports.GroupRepository) *CreateGroup {
	return &CreateGroup{groups: groups}
}

// Execute creates the group and returns it.
func (uc *CreateGroup) Execute(ctx context.Context, input CreateGroupInput) (*dto.GroupDTO, error) {
	g, err := domain.NewGroup(domain.GroupParams(input))
	if err != nil {
		return nil, err
	}
	if err := uc.groups.Create(ctx, g); err != nil {
		return nil, err
	}
	out := dto.ToGroupDTO(g)
	return &out, nil
}
