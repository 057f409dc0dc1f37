package domain

import (
	"time"

	"github.com/google/uuid"

	domerrors "github.com/amirhosseinghanipour/idolbase/internal/domain/errors"
)

// Song belongs to exactly one group.
type Song struct {
	ID          SongID
	GroupID     GroupID
	Title       string
	Lyricist    *string
	Composer    *string
	Arranger    *string
	ReleaseDate *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// SongParams holds the mutable fields of a Song.
type SongParams struct {
	GroupID     GroupID
	Title       string
	Lyricist    *string
	Composer    *string
	Arranger    *string
	ReleaseDate *time.Time
}

func (p SongParams) normalize() (SongParams, error) {
	v := &domerrors.ValidationError{}
	if p.GroupID.UUID == uuid.Nil {
		v.Add("groupId", msgRequired)
	}
	p.Title = requireText(v, "title", p.Title, MaxTitleLength)
	p.Lyricist = optionalText(v, "lyricist", p.Lyricist, MaxNameLength)
	p.Composer = optionalText(v, "composer", p.Composer, MaxNameLength)
	p.Arranger = optionalText(v, "arranger", p.Arranger, MaxNameLength)
	p.ReleaseDate = dateOfPtr(p.ReleaseDate)
	return p, v.Err()
}

// NewSong creates a song with a fresh id.
func NewSong(p SongParams) (*Song, error) {
	ts := timestamp()
	return RestoreSong(NewSongID(uuid.New()), p, ts, ts)
}

// RestoreSong rebuilds a song with a known identity, validating its fields.
func RestoreSong(id SongID, p SongParams, createdAt, updatedAt time.Time) (*Song, error) {
	p, err := p.normalize()
	if err != nil {
		return nil, err
	}
	s := &Song{ID: id, CreatedAt: createdAt, UpdatedAt: updatedAt}
	s.apply(p)
	return s, nil
}

// Update replaces the song's fields and bumps UpdatedAt.
func (s *Song) Update(p SongParams) error {
	p, err := p.normalize()
	if err != nil {
		return err
	}
	s.apply(p)
	s.UpdatedAt = nextTimestamp(s.UpdatedAt)
	return nil
}

func (s *Song) apply(p SongParams) {
	s.GroupID = p.GroupID
	s.Title = p.Title
	s.Lyricist = p.Lyricist
	s.Composer = p.Composer
	s.Arranger = p.Arranger
	s.ReleaseDate = p.ReleaseDate
}
