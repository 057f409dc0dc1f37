// Package memory keeps every aggregate in process memory. It backs the server when no
// DATABASE_URL is configured and stands in for PostgreSQL in tests. Cascades mirror db/schema.sql.
package memory

import (
	"bytes"
	"cmp"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/amirhosseinghanipour/idolbase/internal/application/ports"
	"github.com/amirhosseinghanipour/idolbase/internal/domain"
)

// Store holds all tables behind one lock.
type Store struct {
	mu            sync.RWMutex
	groups        map[domain.GroupID]*domain.Group
	members       map[domain.MemberID]*domain.Member
	songs         map[domain.SongID]*domain.Song
	formations    map[domain.FormationID]*domain.Formation
	setlists      map[domain.SetlistID]*domain.Setlist
	conversations map[domain.ConversationID]*domain.Conversation
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		groups:        map[domain.GroupID]*domain.Group{},
		members:       map[domain.MemberID]*domain.Member{},
		songs:         map[domain.SongID]*domain.Song{},
		formations:    map[domain.FormationID]*domain.Formation{},
		setlists:      map[domain.SetlistID]*domain.Setlist{},
		conversations: map[domain.ConversationID]*domain.Conversation{},
	}
}

// Groups returns the group repository view of s.
func (s *Store) Groups() *GroupRepository { return &GroupRepository{s} }

// Members returns the member repository view of s.
func (s *Store) Members() *MemberRepository { return &MemberRepository{s} }

// Songs returns the song repository view of s.
func (s *Store) Songs() *SongRepository { return &SongRepository{s} }

// Formations returns the formation repository view of s.
func (s *Store) Formations() *FormationRepository { return &FormationRepository{s} }

// Setlists returns the setlist repository view of s.
func (s *Store) Setlists() *SetlistRepository { return &SetlistRepository{s} }

// Conversations returns the conversation repository view of s.
func (s *Store) Conversations() *ConversationRepository { return &ConversationRepository{s} }

func contains(haystack, needle string) bool {
	return needle == "" || strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// page slices sorted rows by q. The caller must pass a normalized query.
func page[T any](rows []T, q ports.ListQuery) []T {
	start := q.Offset()
	if start >= len(rows) {
		return []T{}
	}
	end := min(start+q.PageSize, len(rows))
	return rows[start:end]
}

// compareDateDesc orders dates newest first with nil dates last.
func compareDateDesc(a, b *time.Time) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}
	return b.Compare(*a)
}

func compareIntNullsLast(a, b *int) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}
	return cmp.Compare(*a, *b)
}

func compareID(a, b [16]byte) int { return bytes.Compare(a[:], b[:]) }

func ptr[T any](v *T) *T {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneGroup(g *domain.Group) *domain.Group {
	c := *g
	c.DebutDate = ptr(g.DebutDate)
	return &c
}

func cloneMember(m *domain.Member) *domain.Member {
	c := *m
	c.GroupID = ptr(m.GroupID)
	c.Birthplace = ptr(m.Birthplace)
	c.PenLightColor1 = ptr(m.PenLightColor1)
	c.PenLightColor2 = ptr(m.PenLightColor2)
	c.Generation = ptr(m.Generation)
	c.Images = slices.Clone(m.Images)
	return &c
}

func cloneSong(x *domain.Song) *domain.Song {
	c := *x
	c.Lyricist = ptr(x.Lyricist)
	c.Composer = ptr(x.Composer)
	c.Arranger = ptr(x.Arranger)
	c.ReleaseDate = ptr(x.ReleaseDate)
	return &c
}

func cloneFormation(f *domain.Formation) *domain.Formation {
	c := *f
	c.Positions = slices.Clone(f.Positions)
	return &c
}

func cloneSetlist(x *domain.Setlist) *domain.Setlist {
	c := *x
	c.EventDate = ptr(x.EventDate)
	c.Items = make([]domain.SetlistItem, len(x.Items))
	for i, it := range x.Items {
		it.CenterMemberID = ptr(it.CenterMemberID)
		it.ParticipantIDs = slices.Clone(it.ParticipantIDs)
		c.Items[i] = it
	}
	return &c
}

func cloneConversation(x *domain.Conversation) *domain.Conversation {
	c := *x
	c.MemberID = ptr(x.MemberID)
	c.MemberName = ptr(x.MemberName)
	c.Messages = slices.Clone(x.Messages)
	return &c
}

// deleteGroupLocked detaches members and cascades to songs, formations and setlists.
func (s *Store) deleteGroupLocked(id domain.GroupID) bool {
	if _, ok := s.groups[id]; !ok {
		return false
	}
	delete(s.groups, id)
	for _, m := range s.members {
		if m.GroupID != nil && *m.GroupID == id {
			m.GroupID = nil
		}
	}
	for sid, x := range s.songs {
		if x.GroupID == id {
			s.deleteSongLocked(sid)
		}
	}
	for fid, f := range s.formations {
		if f.GroupID == id {
			delete(s.formations, fid)
		}
	}
	for lid, l := range s.setlists {
		if l.GroupID == id {
			delete(s.setlists, lid)
		}
	}
	return true
}

// deleteMemberLocked removes the member from positions and participants and nulls references.
func (s *Store) deleteMemberLocked(id domain.MemberID) bool {
	if _, ok := s.members[id]; !ok {
		return false
	}
	delete(s.members, id)
	for _, f := range s.formations {
		f.Positions = slices.DeleteFunc(f.Positions, func(p domain.FormationPosition) bool { return p.MemberID == id })
	}
	for _, l := range s.setlists {
		for i := range l.Items {
			it := &l.Items[i]
			if it.CenterMemberID != nil && *it.CenterMemberID == id {
				it.CenterMemberID = nil
			}
			it.ParticipantIDs = slices.DeleteFunc(it.ParticipantIDs, func(p domain.MemberID) bool { return p == id })
		}
	}
	for _, c := range s.conversations {
		if c.MemberID != nil && *c.MemberID == id {
			c.MemberID = nil
		}
	}
	return true
}

// deleteSongLocked removes the song and every setlist item that plays it.
func (s *Store) deleteSongLocked(id domain.SongID) bool {
	if _, ok := s.songs[id]; !ok {
		return false
	}
	delete(s.songs, id)
	for _, l := range s.setlists {
		l.Items = slices.DeleteFunc(l.Items, func(it domain.SetlistItem) bool { return it.SongID == id })
	}
	return true
}
