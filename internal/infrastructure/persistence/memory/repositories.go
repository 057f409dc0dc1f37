package memory

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"github.com/amirhosseinghanipour/idolbase/internal/application/ports"
	"github.com/amirhosseinghanipour/idolbase/internal/domain"
	domerrors "github.com/amirhosseinghanipour/idolbase/internal/domain/errors"
)

var (
	_ ports.GroupRepository        = (*GroupRepository)(nil)
	_ ports.MemberRepository       = (*MemberRepository)(nil)
	_ ports.SongRepository         = (*SongRepository)(nil)
	_ ports.FormationRepository    = (*FormationRepository)(nil)
	_ ports.SetlistRepository      = (*SetlistRepository)(nil)
	_ ports.ConversationRepository = (*ConversationRepository)(nil)
)

// GroupRepository implements ports.GroupRepository.
type GroupRepository struct{ s *Store }

func (r *GroupRepository) Create(_ context.Context, g *domain.Group) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.groups[g.ID]; ok {
		return domerrors.Conflict("group %s already exists", g.ID)
	}
	r.s.groups[g.ID] = cloneGroup(g)
	return nil
}

func (r *GroupRepository) Update(_ context.Context, g *domain.Group) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.groups[g.ID]; !ok {
		return domerrors.NotFound("group", g.ID.String())
	}
	r.s.groups[g.ID] = cloneGroup(g)
	return nil
}

func (r *GroupRepository) GetByID(_ context.Context, id domain.GroupID) (*domain.Group, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	g, ok := r.s.groups[id]
	if !ok {
		return nil, nil
	}
	return cloneGroup(g), nil
}

func (r *GroupRepository) List(_ context.Context, q ports.ListQuery) ([]*domain.Group, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var rows []*domain.Group
	for _, g := range r.s.groups {
		if contains(g.Name, q.Search) {
			rows = append(rows, cloneGroup(g))
		}
	}
	slices.SortFunc(rows, func(a, b *domain.Group) int {
		return cmp.Or(strings.Compare(a.Name, b.Name), compareID(a.ID.UUID, b.ID.UUID))
	})
	return page(rows, q), len(rows), nil
}

func (r *GroupRepository) Delete(_ context.Context, id domain.GroupID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.deleteGroupLocked(id), nil
}

func (r *GroupRepository) DeleteMany(_ context.Context, ids []domain.GroupID) ([]domain.GroupID, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	deleted := make([]domain.GroupID, 0, len(ids))
	for _, id := range ids {
		if r.s.deleteGroupLocked(id) {
			deleted = append(deleted, id)
		}
	}
	return deleted, nil
}

// MemberRepository implements ports.MemberRepository.
type MemberRepository struct{ s *Store }

func (r *MemberRepository) Create(_ context.Context, m *domain.Member) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.members[m.ID]; ok {
		return domerrors.Conflict("member %s already exists", m.ID)
	}
	r.s.members[m.ID] = cloneMember(m)
	return nil
}

func (r *MemberRepository) Update(_ context.Context, m *domain.Member) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.members[m.ID]; !ok {
		return domerrors.NotFound("member", m.ID.String())
	}
	r.s.members[m.ID] = cloneMember(m)
	return nil
}

func (r *MemberRepository) GetByID(_ context.Context, id domain.MemberID) (*domain.Member, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	m, ok := r.s.members[id]
	if !ok {
		return nil, nil
	}
	return cloneMember(m), nil
}

func compareMembers(a, b *domain.Member) int {
	return cmp.Or(
		compareIntNullsLast(a.Generation, b.Generation),
		strings.Compare(a.Name, b.Name),
		compareID(a.ID.UUID, b.ID.UUID),
	)
}

func (r *MemberRepository) List(_ context.Context, q ports.MemberQuery) ([]*domain.Member, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var rows []*domain.Member
	for _, m := range r.s.members {
		if !contains(m.Name, q.Search) {
			continue
		}
		if q.GroupID != nil && (m.GroupID == nil || *m.GroupID != *q.GroupID) {
			continue
		}
		if q.Generation != nil && (m.Generation == nil || *m.Generation != *q.Generation) {
			continue
		}
		if q.Graduated != nil && m.IsGraduated != *q.Graduated {
			continue
		}
		rows = append(rows, cloneMember(m))
	}
	slices.SortFunc(rows, compareMembers)
	return page(rows, q.ListQuery), len(rows), nil
}

func (r *MemberRepository) ListByGroup(_ context.Context, groupID domain.GroupID) ([]*domain.Member, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rows := []*domain.Member{}
	for _, m := range r.s.members {
		if m.GroupID != nil && *m.GroupID == groupID {
			rows = append(rows, cloneMember(m))
		}
	}
	slices.SortFunc(rows, compareMembers)
	return rows, nil
}

func (r *MemberRepository) NamesByID(_ context.Context, ids []domain.MemberID) (map[domain.MemberID]string, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make(map[domain.MemberID]string, len(ids))
	for _, id := range ids {
		if m, ok := r.s.members[id]; ok {
			out[id] = m.Name
		}
	}
	return out, nil
}

func (r *MemberRepository) Delete(_ context.Context, id domain.MemberID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.deleteMemberLocked(id), nil
}

func (r *MemberRepository) DeleteMany(_ context.Context, ids []domain.MemberID) ([]domain.MemberID, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	deleted := make([]domain.MemberID, 0, len(ids))
	for _, id := range ids {
		if r.s.deleteMemberLocked(id) {
			deleted = append(deleted, id)
		}
	}
	return deleted, nil
}

// SongRepository implements ports.SongRepository.
type SongRepository struct{ s *Store }

func (r *SongRepository) Create(_ context.Context, x *domain.Song) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.songs[x.ID]; ok {
		return domerrors.Conflict("song %s already exists", x.ID)
	}
	r.s.songs[x.ID] = cloneSong(x)
	return nil
}

func (r *SongRepository) Update(_ context.Context, x *domain.Song) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.songs[x.ID]; !ok {
		return domerrors.NotFound("song", x.ID.String())
	}
	r.s.songs[x.ID] = cloneSong(x)
	return nil
}

func (r *SongRepository) GetByID(_ context.Context, id domain.SongID) (*domain.Song, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	x, ok := r.s.songs[id]
	if !ok {
		return nil, nil
	}
	return cloneSong(x), nil
}

func (r *SongRepository) List(_ context.Context, q ports.SongQuery) ([]*domain.Song, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var rows []*domain.Song
	for _, x := range r.s.songs {
		if !contains(x.Title, q.Search) {
			continue
		}
		if q.GroupID != nil && x.GroupID != *q.GroupID {
			continue
		}
		rows = append(rows, cloneSong(x))
	}
	slices.SortFunc(rows, func(a, b *domain.Song) int {
		return cmp.Or(
			compareDateDesc(a.ReleaseDate, b.ReleaseDate),
			strings.Compare(a.Title, b.Title),
			compareID(a.ID.UUID, b.ID.UUID),
		)
	})
	return page(rows, q.ListQuery), len(rows), nil
}

func (r *SongRepository) TitlesByID(_ context.Context, ids []domain.SongID) (map[domain.SongID]string, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make(map[domain.SongID]string, len(ids))
	for _, id := range ids {
		if x, ok := r.s.songs[id]; ok {
			out[id] = x.Title
		}
	}
	return out, nil
}

func (r *SongRepository) Delete(_ context.Context, id domain.SongID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.deleteSongLocked(id), nil
}

func (r *SongRepository) DeleteMany(_ context.Context, ids []domain.SongID) ([]domain.SongID, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	deleted := make([]domain.SongID, 0, len(ids))
	for _, id := range ids {
		if r.s.deleteSongLocked(id) {
			deleted = append(deleted, id)
		}
	}
	return deleted, nil
}

// FormationRepository implements ports.FormationRepository.
type FormationRepository struct{ s *Store }

func (r *FormationRepository) Create(_ context.Context, f *domain.Formation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.formations[f.ID]; ok {
		return domerrors.Conflict("formation %s already exists", f.ID)
	}
	r.s.formations[f.ID] = cloneFormation(f)
	return nil
}

func (r *FormationRepository) Update(_ context.Context, f *domain.Formation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.formations[f.ID]; !ok {
		return domerrors.NotFound("formation", f.ID.String())
	}
	r.s.formations[f.ID] = cloneFormation(f)
	return nil
}

func (r *FormationRepository) GetByID(_ context.Context, id domain.FormationID) (*domain.Formation, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	f, ok := r.s.formations[id]
	if !ok {
		return nil, nil
	}
	return cloneFormation(f), nil
}

func (r *FormationRepository) List(_ context.Context, q ports.FormationQuery) ([]*domain.Formation, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var rows []*domain.Formation
	for _, f := range r.s.formations {
		if !contains(f.Name, q.Search) {
			continue
		}
		if q.GroupID != nil && f.GroupID != *q.GroupID {
			continue
		}
		rows = append(rows, cloneFormation(f))
	}
	slices.SortFunc(rows, func(a, b *domain.Formation) int {
		return cmp.Or(strings.Compare(a.Name, b.Name), compareID(a.ID.UUID, b.ID.UUID))
	})
	return page(rows, q.ListQuery), len(rows), nil
}

func (r *FormationRepository) Delete(_ context.Context, id domain.FormationID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.formations[id]; !ok {
		return false, nil
	}
	delete(r.s.formations, id)
	return true, nil
}

func (r *FormationRepository) DeleteMany(ctx context.Context, ids []domain.FormationID) ([]domain.FormationID, error) {
	deleted := make([]domain.FormationID, 0, len(ids))
	for _, id := range ids {
		ok, _ := r.Delete(ctx, id)
		if ok {
			deleted = append(deleted, id)
		}
	}
	return deleted, nil
}

// SetlistRepository implements ports.SetlistRepository.
type SetlistRepository struct{ s *Store }

func (r *SetlistRepository) Create(_ context.Context, x *domain.Setlist) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.setlists[x.ID]; ok {
		return domerrors.Conflict("setlist %s already exists", x.ID)
	}
	r.s.setlists[x.ID] = cloneSetlist(x)
	return nil
}

func (r *SetlistRepository) Update(_ context.Context, x *domain.Setlist) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.setlists[x.ID]; !ok {
		return domerrors.NotFound("setlist", x.ID.String())
	}
	r.s.setlists[x.ID] = cloneSetlist(x)
	return nil
}

func (r *SetlistRepository) GetByID(_ context.Context, id domain.SetlistID) (*domain.Setlist, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	x, ok := r.s.setlists[id]
	if !ok {
		return nil, nil
	}
	return cloneSetlist(x), nil
}

func (r *SetlistRepository) List(_ context.Context, q ports.SetlistQuery) ([]*domain.Setlist, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var rows []*domain.Setlist
	for _, x := range r.s.setlists {
		if !contains(x.Name, q.Search) {
			continue
		}
		if q.GroupID != nil && x.GroupID != *q.GroupID {
			continue
		}
		rows = append(rows, cloneSetlist(x))
	}
	slices.SortFunc(rows, func(a, b *domain.Setlist) int {
		return cmp.Or(
			compareDateDesc(a.EventDate, b.EventDate),
			strings.Compare(a.Name, b.Name),
			compareID(a.ID.UUID, b.ID.UUID),
		)
	})
	return page(rows, q.ListQuery), len(rows), nil
}

func (r *SetlistRepository) Delete(_ context.Context, id domain.SetlistID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.setlists[id]; !ok {
		return false, nil
	}
	delete(r.s.setlists, id)
	return true, nil
}

func (r *SetlistRepository) DeleteMany(ctx context.Context, ids []domain.SetlistID) ([]domain.SetlistID, error) {
	deleted := make([]domain.SetlistID, 0, len(ids))
	for _, id := range ids {
		ok, _ := r.Delete(ctx, id)
		if ok {
			deleted = append(deleted, id)
		}
	}
	return deleted, nil
}

// ConversationRepository implements ports.ConversationRepository.
type ConversationRepository struct{ s *Store }

func (r *ConversationRepository) Create(_ context.Context, c *domain.Conversation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.conversations[c.ID]; ok {
		return domerrors.Conflict("conversation %s already exists", c.ID)
	}
	r.s.conversations[c.ID] = cloneConversation(c)
	return nil
}

func (r *ConversationRepository) Update(_ context.Context, c *domain.Conversation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.conversations[c.ID]; !ok {
		return domerrors.NotFound("conversation", c.ID.String())
	}
	r.s.conversations[c.ID] = cloneConversation(c)
	return nil
}

func (r *ConversationRepository) GetByID(_ context.Context, id domain.ConversationID) (*domain.Conversation, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.conversations[id]
	if !ok {
		return nil, nil
	}
	return cloneConversation(c), nil
}

func (r *ConversationRepository) List(_ context.Context, q ports.ConversationQuery) ([]*domain.Conversation, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var rows []*domain.Conversation
	for _, c := range r.s.conversations {
		if !contains(c.Title, q.Search) {
			continue
		}
		if q.MemberID != nil && (c.MemberID == nil || *c.MemberID != *q.MemberID) {
			continue
		}
		rows = append(rows, cloneConversation(c))
	}
	slices.SortFunc(rows, func(a, b *domain.Conversation) int {
		return cmp.Or(
			b.ConversationDate.Compare(a.ConversationDate),
			strings.Compare(a.Title, b.Title),
			compareID(a.ID.UUID, b.ID.UUID),
		)
	})
	return page(rows, q.ListQuery), len(rows), nil
}

func (r *ConversationRepository) Delete(_ context.Context, id domain.ConversationID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.conversations[id]; !ok {
		return false, nil
	}
	delete(r.s.conversations, id)
	return true, nil
}

func (r *ConversationRepository) DeleteMany(ctx context.Context, ids []domain.ConversationID) ([]domain.ConversationID, error) {
	deleted := make([]domain.ConversationID, 0, len(ids))
	for _, id := range ids {
		ok, _ := r.Delete(ctx, id)
		if ok {
			deleted = append(deleted, id)
		}
	}
	return deleted, nil
}
