package domain

import (
	"bytes"
	"cmp"
	"slices"
	"time"

	"github.com/google/uuid"

	domerrors "github.com/amirhosseinghanipour/idolbase/internal/domain/errors"
)

// SetlistItem is one performed song. ParticipantIDs is a set, kept sorted by id.
type SetlistItem struct {
	SongID         SongID
	Order          int
	CenterMemberID *MemberID
	ParticipantIDs []MemberID
}

// Setlist is the ordered song list of one event. Items are kept sorted by Order.
type Setlist struct {
	ID        SetlistID
	GroupID   GroupID
	Name      string
	EventDate *time.Time
	Items     []SetlistItem
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SetlistParams holds the mutable fields of a Setlist. Items replace the current list.
type SetlistParams struct {
	GroupID   GroupID
	Name      string
	EventDate *time.Time
	Items     []SetlistItem
}

func (p SetlistParams) normalize() (SetlistParams, error) {
	v := &domerrors.ValidationError{}
	if p.GroupID.UUID == uuid.Nil {
		v.Add("groupId", msgRequired)
	}
	p.Name = requireText(v, "name", p.Name, MaxTitleLength)
	p.EventDate = dateOfPtr(p.EventDate)

	seen := make(map[int]bool, len(p.Items))
	items := make([]SetlistItem, 0, len(p.Items))
	for i, it := range p.Items {
		field := indexed("items", i)
		if it.SongID.UUID == uuid.Nil {
			v.Add(field+".songId", msgRequired)
		}
		if it.Order < 1 {
			v.Add(field+".order", msgMustBePositive)
		} else if seen[it.Order] {
			v.Add(field+".order", msgDuplicateOrdinal)
		}
		seen[it.Order] = true
		if it.CenterMemberID != nil && it.CenterMemberID.UUID == uuid.Nil {
			it.CenterMemberID = nil
		}
		it.ParticipantIDs = memberSet(it.ParticipantIDs)
		items = append(items, it)
	}
	slices.SortStableFunc(items, func(a, b SetlistItem) int { return cmp.Compare(a.Order, b.Order) })
	p.Items = items
	return p, v.Err()
}

// memberSet drops nil and duplicate ids and sorts the rest by their byte value,
// which matches PostgreSQL's uuid ordering.
func memberSet(ids []MemberID) []MemberID {
	out := make([]MemberID, 0, len(ids))
	seen := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		if id.UUID == uuid.Nil || seen[id.UUID] {
			continue
		}
		seen[id.UUID] = true
		out = append(out, id)
	}
	slices.SortFunc(out, func(a, b MemberID) int { return bytes.Compare(a.UUID[:], b.UUID[:]) })
	return out
}

// NewSetlist creates a setlist with a fresh id.
func NewSetlist(p SetlistParams) (*Setlist, error) {
	ts := timestamp()
	return RestoreSetlist(NewSetlistID(uuid.New()), p, ts, ts)
}

// RestoreSetlist rebuilds a setlist with a known identity, validating its fields.
func RestoreSetlist(id SetlistID, p SetlistParams, createdAt, updatedAt time.Time) (*Setlist, error) {
	p, err := p.normalize()
	if err != nil {
		return nil, err
	}
	s := &Setlist{ID: id, CreatedAt: createdAt, UpdatedAt: updatedAt}
	s.apply(p)
	return s, nil
}

// Update replaces the setlist's fields and full item list, then bumps UpdatedAt.
func (s *Setlist) Update(p SetlistParams) error {
	p, err := p.normalize()
	if err != nil {
		return err
	}
	s.apply(p)
	s.UpdatedAt = nextTimestamp(s.UpdatedAt)
	return nil
}

func (s *Setlist) apply(p SetlistParams) {
	s.GroupID = p.GroupID
	s.Name = p.Name
	s.EventDate = p.EventDate
	s.Items = p.Items
}

// SongIDs lists every song in the setlist.
func (s *Setlist) SongIDs() []SongID {
	ids := make([]SongID, 0, len(s.Items))
	for _, it := range s.Items {
		ids = append(ids, it.SongID)
	}
	return ids
}

// MemberIDs lists every member referenced as center or participant, without duplicates.
func (s *Setlist) MemberIDs() []MemberID {
	var all []MemberID
	for _, it := range s.Items {
		if it.CenterMemberID != nil {
			all = append(all, *it.CenterMemberID)
		}
		all = append(all, it.ParticipantIDs...)
	}
	return memberSet(all)
}
