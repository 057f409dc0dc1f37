package member

import (
	"context"

	"github.com/amirhosseinghanipour/idolbase/internal/application/dto"
	"github.com/amirhosseinghanipour/idolbase/internal/application/ports"
	"github.com/amirhosseinghanipour/idolbase/internal/application/refs"
	"github.com/amirhosseinghanipour/idolbase/internal/domain"
	domerrors "github.com/amirhosseinghanipour/idolbase/internal/domain/errors"
)

const entityName = "member"

// CreateMemberInput holds the fields of a new member.
type CreateMemberInput struct {
	domain.MemberParams
}

// CreateMember validates and stores a new member.
type CreateMember struct {
	members ports.MemberRepository
	groups  ports.GroupRepository
}

// NewCreateMember builds the use case.
func NewCreateMember(members ports.MemberRepository, groups ports.GroupRepository) *CreateMember {
	return &CreateMember{members: members, groups: groups}
}

// Execute creates the member. A GroupID that does not exist is a validation error.
func (uc *CreateMember) Execute(ctx context.Context, input CreateMemberInput) (*dto.MemberDTO, error) {
	m, err := domain.NewMember(input.MemberParams)
	if err != nil {
		return nil, err
	}
	if err := checkGroup(ctx, uc.groups, m.GroupID); err != nil {
		return nil, err
	}
	if err := uc.members.Create(ctx, m); err != nil {
		return nil, err
	}
	out := dto.ToMemberDTO(m)
	return &out, nil
}

func checkGroup(ctx context.Context, groups ports.GroupRepository, id *domain.GroupID) error {
	if id == nil {
		return nil
	}
	v := &domerrors.ValidationError{}
	if err := refs.Group(ctx, groups, *id, "groupId", v); err != nil {
		return err
	}
	return v.Err()
}
