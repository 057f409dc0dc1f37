package member

import (
	"context"

	"github.com/amirhosseinghanipour/idolbase/internal/application/dto"
	"github.com/amirhosseinghanipour/idolbase/internal/application/ports"
	"github.com/amirhosseinghanipour/idolbase/internal/domain"
	domerrors "github.com/amirhosseinghanipour/idolbase/internal/domain/errors"
)

// GetMember returns one member.
type GetMember struct {
	members ports.MemberRepository
}

// NewGetMember builds the use case.
func NewGetMember(members ports.MemberRepository) *GetMember {
	return &GetMember{members: members}
}

// Execute loads the member or returns NotFound.
func (uc *GetMember) Execute(ctx context.Context, id domain.MemberID) (*dto.MemberDTO, error) {
	m, err := uc.members.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domerrors.NotFound(entityName, id.String())
	}
	out := dto.ToMemberDTO(m)
	return &out, nil
}

// ListMembers returns a page of members.
type ListMembers struct {
	members ports.MemberRepository
}

// NewListMembers builds the use case.
func NewListMembers(members ports.MemberRepository) *ListMembers {
	return &ListMembers{members: members}
}

// Execute lists members matching q.
func (uc *ListMembers) Execute(ctx context.Context, q ports.MemberQuery) (*dto.PagedResult[dto.MemberDTO], error) {
	q.ListQuery = q.ListQuery.Normalize()
	list, total, err := uc.members.List(ctx, q)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MemberDTO, 0, len(list))
	for _, m := range list {
		items = append(items, dto.ToMemberDTO(m))
	}
	out := dto.NewPagedResult(items, total, q.Page, q.PageSize)
	return &out, nil
}
