package formation

import (
	"context"

	"github.com/amirhosseinghanipour/idolbase/internal/application/dto"
	"github.com/amirhosseinghanipour/idolbase/internal/application/ports"
	"github.com/amirhosseinghanipour/idolbase/internal/domain"
	domerrors "github.com/amirhosseinghanipour/idolbase/internal/domain/errors"
)

// GetFormation returns one formation with member names resolved.
type GetFormation struct {
	formations ports.FormationRepository
	members    ports.MemberRepository
}

// NewGetFormation builds the use case.
func NewGetFormation(formations ports.FormationRepository, members ports.MemberRepository) *GetFormation {
	return &GetFormation{formations: formations, members: members}
}

func (uc *GetFormation) Execute(ctx context.Context, id domain.FormationID) (*dto.FormationDTO, error) {
	f, err := uc.formations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, domerrors.NotFound(entityName, id.String())
	}
	names, err := memberNames(ctx, uc.members, f)
	if err != nil {
		return nil, err
	}
	out := dto.ToFormationDTO(f, names)
	return &out, nil
}

// ListFormations returns a page of formations.
type ListFormations struct {
	formations ports.FormationRepository
	members    ports.MemberRepository
}

// NewListFormations builds the use case.
func NewListFormations(formations ports.FormationRepository, members ports.MemberRepository) *ListFormations {
	return &ListFormations{formations: formations, members: members}
}

func (uc *ListFormations) Execute(ctx context.Context, q ports.FormationQuery) (*dto.PagedResult[dto.FormationDTO], error) {
	q.ListQuery = q.ListQuery.Normalize()
	list, total, err := uc.formations.List(ctx, q)
	if err != nil {
		return nil, err
	}
	names, err := memberNames(ctx, uc.members, list...)
	if err != nil {
		return nil, err
	}
	items := make([]dto.FormationDTO, 0, len(list))
	for _, f := range list {
		items = append(items, dto.ToFormationDTO(f, names))
	}
	out := dto.NewPagedResult(items, total, q.Page, q.PageSize)
	return &out, nil
}
