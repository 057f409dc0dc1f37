package formation

import (
	"context"

	"github.com/amirhosseinghanipour/idolbase/internal/application/dto"
	"github.com/amirhosseinghanipour/idolbase/internal/application/ports"
	"github.com/amirhosseinghanipour/idolbase/internal/domain"
	domerrors "github.com/amirhosseinghanipour/idolbase/internal/domain/errors"
)

// CreateFormation validates and stores a new formation with its positions.
type CreateFormation struct {
	formations ports.FormationRepository
	groups     ports.GroupRepository
	members    ports.MemberRepository
}

// NewCreateFormation builds the use case.
func NewCreateFormation(formations ports.FormationRepository, groups ports.GroupRepository, members ports.MemberRepository) *CreateFormation {
	return &CreateFormation{formations: formations, groups: groups, members: members}
}

func (uc *CreateFormation) Execute(ctx context.Context, p domain.FormationParams) (*dto.FormationDTO, error) {
	f, err := domain.NewFormation(p)
	if err != nil {
		return nil, err
	}
	names, err := checkRefs(ctx, uc.groups, uc.members, p)
	if err != nil {
		return nil, err
	}
	if err := uc.formations.Create(ctx, f); err != nil {
		return nil, err
	}
	out := dto.ToFormationDTO(f, names)
	return &out, nil
}

// UpdateFormationInput replaces every mutable field of a formation.
type UpdateFormationInput struct {
	ID domain.FormationID
	domain.FormationParams
}

// UpdateFormation loads a formation, replaces its fields and positions and stores it.
type UpdateFormation struct {
	formations ports.FormationRepository
	groups     ports.GroupRepository
	members    ports.MemberRepository
}

// NewUpdateFormation builds the use case.
func NewUpdateFormation(formations ports.FormationRepository, groups ports.GroupRepository, members ports.MemberRepository) *UpdateFormation {
	return &UpdateFormation{formations: formations, groups: groups, members: members}
}

// Execute updates the formation. The previous positions are discarded.
func (uc *UpdateFormation) Execute(ctx context.Context, input UpdateFormationInput) (*dto.FormationDTO, error) {
	f, err := uc.formations.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, domerrors.NotFound(entityName, input.ID.String())
	}
	if err := f.Update(input.FormationParams); err != nil {
		return nil, err
	}
	names, err := checkRefs(ctx, uc.groups, uc.members, input.FormationParams)
	if err != nil {
		return nil, err
	}
	if err := uc.formations.Update(ctx, f); err != nil {
		return nil, err
	}
	out := dto.ToFormationDTO(f, names)
	return &out, nil
}
