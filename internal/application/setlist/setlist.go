package setlist

import (
	"context"
	"fmt"

	"github.com/amirhosseinghanipour/idolbase/internal/application/ports"
	"github.com/amirhosseinghanipour/idolbase/internal/application/refs"
	"github.com/amirhosseinghanipour/idolbase/internal/domain"
	domerrors "github.com/amirhosseinghanipour/idolbase/internal/domain/errors"
)

const entityName = "setlist"

// resolver checks and resolves the songs and members a setlist refers to.
type resolver struct {
	groups  ports.GroupRepository
	songs   ports.SongRepository
	members ports.MemberRepository
}

// check verifies every reference in p exists and returns song titles and member names.
func (r resolver) check(ctx context.Context, p domain.SetlistParams) (map[domain.SongID]string, map[domain.MemberID]string, error) {
	v := &domerrors.ValidationError{}
	if err := refs.Group(ctx, r.groups, p.GroupID, "groupId", v); err != nil {
		return nil, nil, err
	}
	songRefs := make([]refs.SongRef, 0, len(p.Items))
	var memberRefs []refs.MemberRef
	for i, it := range p.Items {
		field := fmt.Sprintf("items[%d]", i)
		songRefs = append(songRefs, refs.SongRef{ID: it.SongID, Field: field + ".songId"})
		if it.CenterMemberID != nil {
			memberRefs = append(memberRefs, refs.MemberRef{ID: *it.CenterMemberID, Field: field + ".centerMemberId"})
		}
		for j, id := range it.ParticipantIDs {
			memberRefs = append(memberRefs, refs.MemberRef{ID: id, Field: fmt.Sprintf("%s.participantMemberIds[%d]", field, j)})
		}
	}
	titles, err := refs.Songs(ctx, r.songs, songRefs, v)
	if err != nil {
		return nil, nil, err
	}
	names, err := refs.Members(ctx, r.members, memberRefs, v)
	if err != nil {
		return nil, nil, err
	}
	return titles, names, v.Err()
}

// lookup resolves titles and names for setlists read from storage.
func (r resolver) lookup(ctx context.Context, setlists ...*domain.Setlist) (map[domain.SongID]string, map[domain.MemberID]string, error) {
	var songIDs []domain.SongID
	var memberIDs []domain.MemberID
	for _, s := range setlists {
		songIDs = append(songIDs, s.SongIDs()...)
		memberIDs = append(memberIDs, s.MemberIDs()...)
	}
	titles := map[domain.SongID]string{}
	names := map[domain.MemberID]string{}
	var err error
	if songIDs = ports.Distinct(songIDs); len(songIDs) > 0 {
		if titles, err = r.songs.TitlesByID(ctx, songIDs); err != nil {
			return nil, nil, err
		}
	}
	if memberIDs = ports.Distinct(memberIDs); len(memberIDs) > 0 {
		if names, err = r.members.NamesByID(ctx, memberIDs); err != nil {
			return nil, nil, err
		}
	}
	return titles, names, nil
}
