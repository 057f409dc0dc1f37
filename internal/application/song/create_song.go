package song

import (
	"context"

	"github.com/amirhosseinghanipour/idolbase/internal/application/dto"
	"github.com/amirhosseinghanipour/idolbase/internal/application/ports"
	"github.com/amirhosseinghanipour/idolbase/internal/application/refs"
	"github.com/amirhosseinghanipour/idolbase/internal/domain"
	domerrors "github.com/amirhosseinghanipour/idolbase/internal/domain/errors"
)

const entityName = "song"

// CreateSong validates and stores a new song.
type CreateSong struct {
	songs  ports.SongRepository
	groups ports.GroupRepository
}

// NewCreateSong builds the use case.
func NewCreateSong(songs ports.SongRepository, groups ports.GroupRepository) *CreateSong {
	return &CreateSong{songs: songs, groups: groups}
}

// Execute creates the song under an existing group.
func (uc *CreateSong) Execute(ctx context.Context, p domain.SongParams) (*dto.SongDTO, error) {
	s, err := domain.NewSong(p)
	if err != nil {
		return nil, err
	}
	if err := checkGroup(ctx, uc.groups, s.GroupID); err != nil {
		return nil, err
	}
	if err := uc.songs.Create(ctx, s); err != nil {
		return nil, err
	}
	out := dto.ToSongDTO(s)
	return &out, nil
}

// UpdateSongInput replaces every mutable field of a song.
type UpdateSongInput struct {
	ID domain.SongID
	domain.SongParams
}

// UpdateSong loads a song, applies the new fields and stores it.
type UpdateSong struct {
	songs  ports.SongRepository
	groups ports.GroupRepository
}

// NewUpdateSong builds the use case.
func NewUpdateSong(songs ports.SongRepository, groups ports.GroupRepository) *UpdateSong {
	return &UpdateSong{songs: songs, groups: groups}
}

func (uc *UpdateSong) Execute(ctx context.Context, input UpdateSongInput) (*dto.SongDTO, error) {
	s, err := uc.songs.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domerrors.NotFound(entityName, input.ID.String())
	}
	if err := s.Update(input.SongParams); err != nil {
		return nil, err
	}
	if err := checkGroup(ctx, uc.groups, s.GroupID); err != nil {
		return nil, err
	}
	if err := uc.songs.Update(ctx, s); err != nil {
		return nil, err
	}
	out := dto.ToSongDTO(s)
	return &out, nil
}

func checkGroup(ctx context.Context, groups ports.GroupRepository, id domain.GroupID) error {
	v := &domerrors.ValidationError{}
	if err := refs.Group(ctx, groups, id, "groupId", v); err != nil {
		return err
	}
	return v.Err()
}
