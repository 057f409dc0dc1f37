package memory

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"github.com/amirhosseinghanipour/idolbase/internal/application/ports"
	"github.com/amirhosseinghanipour/idolbase/internal/domain"
)

var _ ports.SnapshotStore = (*Store)(nil)

// LoadSnapshot copies the exportable tables, each sorted the way the PostgreSQL store reads them.
func (s *Store) LoadSnapshot(_ context.Context) (*domain.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := &domain.Snapshot{
		Groups:     make([]*domain.Group, 0, len(s.groups)),
		Members:    make([]*domain.Member, 0, len(s.members)),
		Songs:      make([]*domain.Song, 0, len(s.songs)),
		Formations: make([]*domain.Formation, 0, len(s.formations)),
		Setlists:   make([]*domain.Setlist, 0, len(s.setlists)),
	}
	for _, g := range s.groups {
		snap.Groups = append(snap.Groups, cloneGroup(g))
	}
	for _, m := range s.members {
		snap.Members = append(snap.Members, cloneMember(m))
	}
	for _, x := range s.songs {
		snap.Songs = append(snap.Songs, cloneSong(x))
	}
	for _, f := range s.formations {
		snap.Formations = append(snap.Formations, cloneFormation(f))
	}
	for _, x := range s.setlists {
		snap.Setlists = append(snap.Setlists, cloneSetlist(x))
	}
	slices.SortFunc(snap.Groups, func(a, b *domain.Group) int {
		return cmp.Or(strings.Compare(a.Name, b.Name), compareID(a.ID.UUID, b.ID.UUID))
	})
	slices.SortFunc(snap.Members, compareMembers)
	slices.SortFunc(snap.Songs, func(a, b *domain.Song) int {
		return cmp.Or(strings.Compare(a.Title, b.Title), compareID(a.ID.UUID, b.ID.UUID))
	})
	slices.SortFunc(snap.Formations, func(a, b *domain.Formation) int {
		return cmp.Or(strings.Compare(a.Name, b.Name), compareID(a.ID.UUID, b.ID.UUID))
	})
	slices.SortFunc(snap.Setlists, func(a, b *domain.Setlist) int {
		return cmp.Or(strings.Compare(a.Name, b.Name), compareID(a.ID.UUID, b.ID.UUID))
	})
	return snap, nil
}

// ImportSnapshot writes snap, overwriting rows by id. Replace then deletes every exportable row
// absent from snap, so conversations keep their link to members that survive the import.
func (s *Store) ImportSnapshot(_ context.Context, snap *domain.Snapshot, mode ports.ImportMode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	groups := map[domain.GroupID]bool{}
	for _, g := range snap.Groups {
		s.groups[g.ID] = cloneGroup(g)
		groups[g.ID] = true
	}
	members := map[domain.MemberID]bool{}
	for _, m := range snap.Members {
		s.members[m.ID] = cloneMember(m)
		members[m.ID] = true
	}
	songs := map[domain.SongID]bool{}
	for _, x := range snap.Songs {
		s.songs[x.ID] = cloneSong(x)
		songs[x.ID] = true
	}
	formations := map[domain.FormationID]bool{}
	for _, f := range snap.Formations {
		s.formations[f.ID] = cloneFormation(f)
		formations[f.ID] = true
	}
	setlists := map[domain.SetlistID]bool{}
	for _, x := range snap.Setlists {
		s.setlists[x.ID] = cloneSetlist(x)
		setlists[x.ID] = true
	}
	if mode != ports.ImportReplace {
		return nil
	}
	for id := range s.setlists {
		if !setlists[id] {
			delete(s.setlists, id)
		}
	}
	for id := range s.formations {
		if !formations[id] {
			delete(s.formations, id)
		}
	}
	for id := range s.songs {
		if !songs[id] {
			s.deleteSongLocked(id)
		}
	}
	for id := range s.members {
		if !members[id] {
			s.deleteMemberLocked(id)
		}
	}
	for id := range s.groups {
		if !groups[id] {
			s.deleteGroupLocked(id)
		}
	}
	return nil
}
