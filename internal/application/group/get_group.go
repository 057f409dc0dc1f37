package group

import (
	"context"

	"github.com/amirhosseinghanipour/idolbase/internal/application/dto"
	"github.com/amirhosseinghanipour/idolbase/internal/application/ports"
	"github.com/amirhosseinghanipour/idolbase/internal/domain"
	domerrors "github.com/amirhosseinghanipour/idolbase/internal/domain/errors"
)

// GetGroup returns a group with its members.
type GetGroup struct {
	groups  ports.GroupRepository
	members ports.MemberRepository
}

// NewGetGroup builds the use case.
func NewGetGroup(groups ports.GroupRepository, members ports.MemberRepository) *GetGroup {
	return &GetGroup{groups: groups, members: members}
}

// Execute loads the group or returns NotFound.
func (uc *GetGroup) Execute(ctx context.Context, id domain.GroupID) (*dto.GroupDetailDTO, error) {
	g, err := uc.groups.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, domerrors.NotFound(entityName, id.String())
	}
	members, err := uc.members.ListByGroup(ctx, id)
	if err != nil {
		return nil, err
	}
	out := dto.ToGroupDetailDTO(g, members)
	return &out, nil
}

// ListGroups returns a page of groups.
type ListGroups struct {
	groups ports.GroupRepository
}

// NewListGroups builds the use case.
func NewListGroups(groups ports.GroupRepository) *ListGroups {
	return &ListGroups{groups: groups}
}

// Execute lists groups matching q.
func (uc *ListGroups) Execute(ctx context.Context, q ports.ListQuery) (*dto.PagedResult[dto.GroupDTO], error) {
	q = q.Normalize()
	list, total, err := uc.groups.List(ctx, q)
	if err != nil {
		return nil, err
	}
	items := make([]dto.GroupDTO, 0, len(list))
	for _, g := range list {
		items = append(items, dto.ToGroupDTO(g))
	}
	out := dto.NewPagedResult(items, total, q.Page, q.PageSize)
	return &out, nil
}
