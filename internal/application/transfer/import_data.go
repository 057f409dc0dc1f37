package transfer

import (
	"context"
	"fmt"

	"github.com/amirhosseinghanipour/idolbase/internal/application/dto"
	"github.com/amirhosseinghanipour/idolbase/internal/application/ports"
	"github.com/amirhosseinghanipour/idolbase/internal/domain"
	domerrors "github.com/amirhosseinghanipour/idolbase/internal/domain/errors"
)

const msgMissing = "does not exist"

// ParseImportMode maps the mode query parameter. Empty means replace.
func ParseImportMode(s string) (ports.ImportMode, error) {
	switch ports.ImportMode(s) {
	case "", ports.ImportReplace:
		return ports.ImportReplace, nil
	case ports.ImportMerge:
		return ports.ImportMerge, nil
	}
	return "", domerrors.InvalidArgument("unknown import mode %q", s)
}

// ImportData validates a snapshot document and writes it in one transaction.
type ImportData struct {
	store ports.SnapshotStore
}

// NewImportData builds the use case.
func NewImportData(store ports.SnapshotStore) *ImportData {
	return &ImportData{store: store}
}

// Execute imports in. Ids, foreign keys, ordering fields and timestamps are kept as given.
func (uc *ImportData) Execute(ctx context.Context, in *dto.ExportDataDTO, mode ports.ImportMode) (*dto.ImportResultDTO, error) {
	if in == nil {
		return nil, domerrors.InvalidArgument("import document is empty")
	}
	if in.Version != dto.ExportVersion {
		return nil, domerrors.InvalidArgument("unsupported snapshot version %q, expected %q", in.Version, dto.ExportVersion)
	}
	if mode != ports.ImportReplace && mode != ports.ImportMerge {
		return nil, domerrors.InvalidArgument("unknown import mode %q", mode)
	}

	p := &parser{}
	snap, err := p.snapshot(in)
	if err != nil {
		return nil, err
	}
	if err := checkDuplicates(snap); err != nil {
		return nil, err
	}

	known := newIndex(snap)
	if mode == ports.ImportMerge {
		stored, err := uc.store.LoadSnapshot(ctx)
		if err != nil {
			return nil, err
		}
		known.add(stored)
	}
	if err := known.check(snap); err != nil {
		return nil, err
	}

	if err := uc.store.ImportSnapshot(ctx, snap, mode); err != nil {
		return nil, err
	}
	return &dto.ImportResultDTO{
		Groups:     len(snap.Groups),
		Members:    len(snap.Members),
		Songs:      len(snap.Songs),
		Formations: len(snap.Formations),
		Setlists:   len(snap.Setlists),
	}, nil
}

// checkDuplicates rejects a document that lists the same id twice within one collection.
func checkDuplicates(s *domain.Snapshot) error {
	check := func(kind string, ids []string) error {
		seen := make(map[string]bool, len(ids))
		for _, id := range ids {
			if seen[id] {
				return domerrors.Conflict("duplicate %s id %s in import", kind, id)
			}
			seen[id] = true
		}
		return nil
	}
	groups := make([]string, 0, len(s.Groups))
	for _, g := range s.Groups {
		groups = append(groups, g.ID.String())
	}
	members := make([]string, 0, len(s.Members))
	for _, m := range s.Members {
		members = append(members, m.ID.String())
	}
	songs := make([]string, 0, len(s.Songs))
	for _, x := range s.Songs {
		songs = append(songs, x.ID.String())
	}
	formations := make([]string, 0, len(s.Formations))
	for _, f := range s.Formations {
		formations = append(formations, f.ID.String())
	}
	setlists := make([]string, 0, len(s.Setlists))
	for _, x := range s.Setlists {
		setlists = append(setlists, x.ID.String())
	}
	for _, c := range []struct {
		kind string
		ids  []string
	}{{"group", groups}, {"member", members}, {"song", songs}, {"formation", formations}, {"setlist", setlists}} {
		if err := check(c.kind, c.ids); err != nil {
			return err
		}
	}
	return nil
}

// index holds the ids a snapshot may reference.
type index struct {
	groups  map[domain.GroupID]bool
	members map[domain.MemberID]bool
	songs   map[domain.SongID]bool
}

func newIndex(s *domain.Snapshot) *index {
	ix := &index{
		groups:  map[domain.GroupID]bool{},
		members: map[domain.MemberID]bool{},
		songs:   map[domain.SongID]bool{},
	}
	ix.add(s)
	return ix
}

func (ix *index) add(s *domain.Snapshot) {
	for _, g := range s.Groups {
		ix.groups[g.ID] = true
	}
	for _, m := range s.Members {
		ix.members[m.ID] = true
	}
	for _, x := range s.Songs {
		ix.songs[x.ID] = true
	}
}

// check records a field error for every reference that does not resolve.
func (ix *index) check(s *domain.Snapshot) error {
	v := &domerrors.ValidationError{}
	for i, m := range s.Members {
		if m.GroupID != nil && !ix.groups[*m.GroupID] {
			v.Add(fmt.Sprintf("members[%d].groupId", i), msgMissing)
		}
	}
	for i, x := range s.Songs {
		if !ix.groups[x.GroupID] {
			v.Add(fmt.Sprintf("songs[%d].groupId", i), msgMissing)
		}
	}
	for i, f := range s.Formations {
		if !ix.groups[f.GroupID] {
			v.Add(fmt.Sprintf("formations[%d].groupId", i), msgMissing)
		}
		for j, pos := range f.Positions {
			if !ix.members[pos.MemberID] {
				v.Add(fmt.Sprintf("formations[%d].positions[%d].memberId", i, j), msgMissing)
			}
		}
	}
	for i, sl := range s.Setlists {
		if !ix.groups[sl.GroupID] {
			v.Add(fmt.Sprintf("setlists[%d].groupId", i), msgMissing)
		}
		for j, it := range sl.Items {
			field := fmt.Sprintf("setlists[%d].items[%d]", i, j)
			if !ix.songs[it.SongID] {
				v.Add(field+".songId", msgMissing)
			}
			if it.CenterMemberID != nil && !ix.members[*it.CenterMemberID] {
				v.Add(field+".centerMemberId", msgMissing)
			}
			for _, id := range it.ParticipantIDs {
				if !ix.members[id] {
					v.Add(field+".participantMemberIds", msgMissing)
					break
				}
			}
		}
	}
	return v.Err()
}
