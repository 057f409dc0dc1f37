package setlist

import (
	"context"

	"github.com/amirhosseinghanipour/idolbase/internal/application/dto"
	"github.com/amirhosseinghanipour/idolbase/internal/application/ports"
	"github.com/amirhosseinghanipour/idolbase/internal/domain"
	domerrors "github.com/amirhosseinghanipour/idolbase/internal/domain/errors"
)

// CreateSetlist validates and stores a new setlist with its items.
type CreateSetlist struct {
	setlists ports.SetlistRepository
	refs     resolver
}

// NewCreateSetlist builds the use case.
func NewCreateSetlist(setlists ports.SetlistRepository, groups ports.GroupRepository, songs ports.SongRepository, members ports.MemberRepository) *CreateSetlist {
	return &CreateSetlist{setlists: setlists, refs: resolver{groups: groups, songs: songs, members: members}}
}

func (uc *CreateSetlist) Execute(ctx context.Context, p domain.SetlistParams) (*dto.SetlistDTO, error) {
	s, err := domain.NewSetlist(p)
	if err != nil {
		return nil, err
	}
	titles, names, err := uc.refs.check(ctx, p)
	if err != nil {
		return nil, err
	}
	if err := uc.setlists.Create(ctx, s); err != nil {
		return nil, err
	}
	out := dto.ToSetlistDTO(s, titles, names)
	return &out, nil
}

// UpdateSetlistInput replaces every mutable field of a setlist.
type UpdateSetlistInput struct {
	ID domain.SetlistID
	domain.SetlistParams
}

// UpdateSetlist loads a setlist, replaces its fields and items and stores it.
type UpdateSetlist struct {
	setlists ports.SetlistRepository
	refs     resolver
}

// NewUpdateSetlist builds the use case.
func NewUpdateSetlist(setlists ports.SetlistRepository, groups ports.GroupRepository, songs ports.SongRepository, members ports.MemberRepository) *UpdateSetlist {
	return &UpdateSetlist{setlists: setlists, refs: resolver{groups: groups, songs: songs, members: members}}
}

// Execute updates the setlist. Previous items and participants are discarded.
func (uc *UpdateSetlist) Execute(ctx context.Context, input UpdateSetlistInput) (*dto.SetlistDTO, error) {
	s, err := uc.setlists.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domerrors.NotFound(entityName, input.ID.String())
	}
	if err := s.Update(input.SetlistParams); err != nil {
		return nil, err
	}
	titles, names, err := uc.refs.check(ctx, input.SetlistParams)
	if err != nil {
		return nil, err
	}
	if err := uc.setlists.Update(ctx, s); err != nil {
		return nil, err
	}
	out := dto.ToSetlistDTO(s, titles, names)
	return &out, nil
}
