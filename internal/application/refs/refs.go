// Package refs checks that ids referenced by an aggregate exist before it is persisted.
package refs

import (
	"context"

	"github.com/google/uuid"

	"github.com/amirhosseinghanipour/idolbase/internal/application/ports"
	"github.com/amirhosseinghanipour/idolbase/internal/domain"
	domerrors "github.com/amirhosseinghanipour/idolbase/internal/domain/errors"
)

const msgMissing = "does not exist"

// Group records a field error on v when the group does not exist.
func Group(ctx context.Context, groups ports.GroupRepository, id domain.GroupID, field string, v *domerrors.ValidationError) error {
	if id.UUID == uuid.Nil {
		return nil
	}
	g, err := groups.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if g == nil {
		v.Add(field, msgMissing)
	}
	return nil
}

// MemberRef is a referenced member id and the request field it came from.
type MemberRef struct {
	ID    domain.MemberID
	Field string
}

// Members resolves member names and records a field error on v for every missing member.
// Nil ids are left to entity validation.
func Members(ctx context.Context, members ports.MemberRepository, list []MemberRef, v *domerrors.ValidationError) (map[domain.MemberID]string, error) {
	ids := make([]domain.MemberID, 0, len(list))
	for _, r := range list {
		if r.ID.UUID != uuid.Nil {
			ids = append(ids, r.ID)
		}
	}
	ids = ports.Distinct(ids)
	if len(ids) == 0 {
		return map[domain.MemberID]string{}, nil
	}
	names, err := members.NamesByID(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, r := range list {
		if _, ok := names[r.ID]; !ok && r.ID.UUID != uuid.Nil {
			v.Add(r.Field, msgMissing)
		}
	}
	return names, nil
}

// SongRef is a referenced song id and the request field it came from.
type SongRef struct {
	ID    domain.SongID
	Field string
}

// Songs resolves song titles and records a field error on v for every missing song.
func Songs(ctx context.Context, songs ports.SongRepository, list []SongRef, v *domerrors.ValidationError) (map[domain.SongID]string, error) {
	ids := make([]domain.SongID, 0, len(list))
	for _, r := range list {
		if r.ID.UUID != uuid.Nil {
			ids = append(ids, r.ID)
		}
	}
	ids = ports.Distinct(ids)
	if len(ids) == 0 {
		return map[domain.SongID]string{}, nil
	}
	titles, err := songs.TitlesByID(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, r := range list {
		if _, ok := titles[r.ID]; !ok && r.ID.UUID != uuid.Nil {
			v.Add(r.Field, msgMissing)
		}
	}
	return titles, nil
}
