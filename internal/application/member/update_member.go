package member

import (
	"context"

	"github.com/amirhosseinghanipour/idolbase/internal/application/dto"
	"github.com/amirhosseinghanipour/idolbase/internal/application/ports"
	"github.com/amirhosseinghanipour/idolbase/internal/domain"
	domerrors "github.com/amirhosseinghanipour/idolbase/internal/domain/errors"
)

// UpdateMemberInput replaces every mutable field of a member, images included.
type UpdateMemberInput struct {
	ID domain.MemberID
	domain.MemberParams
}

// UpdateMember loads a member, applies the new fields and stores it.
type UpdateMember struct {
	members ports.MemberRepository
	groups  ports.GroupRepository
}

// NewUpdateMember builds the use case.
func NewUpdateMember(members ports.MemberRepository, groups ports.GroupRepository) *UpdateMember {
	return &UpdateMember{members: members, groups: groups}
}

// Execute updates the member. Returns NotFound when the id does not exist.
func (uc *UpdateMember) Execute(ctx context.Context, input UpdateMemberInput) (*dto.MemberDTO, error) {
	m, err := uc.members.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domerrors.NotFound(entityName, input.ID.String())
	}
	if err := m.Update(input.MemberParams); err != nil {
		return nil, err
	}
	if err := checkGroup(ctx, uc.groups, m.GroupID); err != nil {
		return nil, err
	}
	if err := uc.members.Update(ctx, m); err != nil {
		return nil, err
	}
	out := dto.ToMemberDTO(m)
	return &out, nil
}
