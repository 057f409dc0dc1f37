package song

import (
	"context"

	"github.com/amirhosseinghanipour/idolbase/internal/application/dto"
	"github.com/amirhosseinghanipour/idolbase/internal/application/ports"
	"github.com/amirhosseinghanipour/idolbase/internal/domain"
	domerrors "github.com/amirhosseinghanipour/idolbase/internal/domain/errors"
)

// GetSong returns one song.
type GetSong struct {
	songs ports.SongRepository
}

// NewGetSong builds the use case.
func NewGetSong(songs ports.SongRepository) *GetSong {
	return &GetSong{songs: songs}
}

func (uc *GetSong) Execute(ctx context.Context, id domain.SongID) (*dto.SongDTO, error) {
	s, err := uc.songs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domerrors.NotFound(entityName, id.String())
	}
	out := dto.ToSongDTO(s)
	return &out, nil
}

// ListSongs returns a page of songs, newest release first.
type ListSongs struct {
	songs ports.SongRepository
}

// NewListSongs builds the use case.
func NewListSongs(songs ports.SongRepository) *ListSongs {
	return &ListSongs{songs: songs}
}

func (uc *ListSongs) Execute(ctx context.Context, q ports.SongQuery) (*dto.PagedResult[dto.SongDTO], error) {
	q.ListQuery = q.ListQuery.Normalize()
	list, total, err := uc.songs.List(ctx, q)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SongDTO, 0, len(list))
	for _, s := range list {
		items = append(items, dto.ToSongDTO(s))
	}
	out := dto.NewPagedResult(items, total, q.Page, q.PageSize)
	return &out, nil
}

// DeleteSong removes one song and every setlist item that plays it.
type DeleteSong struct {
	songs ports.SongRepository
}

// NewDeleteSong builds the use case.
func NewDeleteSong(songs ports.SongRepository) *DeleteSong {
	return &DeleteSong{songs: songs}
}

func (uc *DeleteSong) Execute(ctx context.Context, id domain.SongID) error {
	deleted, err := uc.songs.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return domerrors.NotFound(entityName, id.String())
	}
	return nil
}

// BulkDeleteSongs removes every existing song in a list of ids.
type BulkDeleteSongs struct {
	songs ports.SongRepository
}

// NewBulkDeleteSongs builds the use case.
func NewBulkDeleteSongs(songs ports.SongRepository) *BulkDeleteSongs {
	return &BulkDeleteSongs{songs: songs}
}

func (uc *BulkDeleteSongs) Execute(ctx context.Context, ids []domain.SongID) (*dto.BulkDeleteResult, error) {
	ids = ports.Distinct(ids)
	if len(ids) == 0 {
		return &dto.BulkDeleteResult{}, nil
	}
	deleted, err := uc.songs.DeleteMany(ctx, ids)
	if err != nil {
		return nil, err
	}
	return dto.NewBulkDeleteResult(deleted), nil
}
