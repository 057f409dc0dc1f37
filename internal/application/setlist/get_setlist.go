package setlist

import (
	"context"

	"github.com/amirhosseinghanipour/idolbase/internal/application/dto"
	"github.com/amirhosseinghanipour/idolbase/internal/application/ports"
	"github.com/amirhosseinghanipour/idolbase/internal/domain"
	domerrors "github.com/amirhosseinghanipour/idolbase/internal/domain/errors"
)

// GetSetlist returns one setlist with song titles and member names resolved.
type GetSetlist struct {
	setlists ports.SetlistRepository
	refs     resolver
}

// NewGetSetlist builds the use case.
func NewGetSetlist(setlists ports.SetlistRepository, songs ports.SongRepository, members ports.MemberRepository) *GetSetlist {
	return &GetSetlist{setlists: setlists, refs: resolver{songs: songs, members: members}}
}

func (uc *GetSetlist) Execute(ctx context.Context, id domain.SetlistID) (*dto.SetlistDTO, error) {
	s, err := uc.setlists.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domerrors.NotFound(entityName, id.String())
	}
	titles, names, err := uc.refs.lookup(ctx, s)
	if err != nil {
		return nil, err
	}
	out := dto.ToSetlistDTO(s, titles, names)
	return &out, nil
}

// ListSetlists returns a page of setlists, latest event first.
type ListSetlists struct {
	setlists ports.SetlistRepository
	refs     resolver
}

// NewListSetlists builds the use case.
func NewListSetlists(setlists ports.SetlistRepository, songs ports.SongRepository, members ports.MemberRepository) *ListSetlists {
	return &ListSetlists{setlists: setlists, refs: resolver{songs: songs, members: members}}
}

func (uc *ListSetlists) Execute(ctx context.Context, q ports.SetlistQuery) (*dto.PagedResult[dto.SetlistDTO], error) {
	q.ListQuery = q.ListQuery.Normalize()
	list, total, err := uc.setlists.List(ctx, q)
	if err != nil {
		return nil, err
	}
	titles, names, err := uc.refs.lookup(ctx, list...)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SetlistDTO, 0, len(list))
	for _, s := range list {
		items = append(items, dto.ToSetlistDTO(s, titles, names))
	}
	out := dto.NewPagedResult(items, total, q.Page, q.PageSize)
	return &out, nil
}

// DeleteSetlist removes one setlist with its items.
type DeleteSetlist struct {
	setlists ports.SetlistRepository
}

// NewDeleteSetlist builds the use case.
func NewDeleteSetlist(setlists ports.SetlistRepository) *DeleteSetlist {
	return &DeleteSetlist{setlists: setlists}
}

func (uc *DeleteSetlist) Execute(ctx context.Context, id domain.SetlistID) error {
	deleted, err := uc.setlists.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return domerrors.NotFound(entityName, id.String())
	}
	return nil
}

// BulkDeleteSetlists removes every existing setlist in a list of ids.
type BulkDeleteSetlists struct {
	setlists ports.SetlistRepository
}

// NewBulkDeleteSetlists builds the use case.
func NewBulkDeleteSetlists(setlists ports.SetlistRepository) *BulkDeleteSetlists {
	return &BulkDeleteSetlists{setlists: setlists}
}

func (uc *BulkDeleteSetlists) Execute(ctx context.Context, ids []domain.SetlistID) (*dto.BulkDeleteResult, error) {
	ids = ports.Distinct(ids)
	if len(ids) == 0 {
		return &dto.BulkDeleteResult{}, nil
	}
	deleted, err := uc.setlists.DeleteMany(ctx, ids)
	if err != nil {
		return nil, err
	}
	return dto.NewBulkDeleteResult(deleted), nil
}
