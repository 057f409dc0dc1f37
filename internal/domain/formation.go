package domain

import (
	"cmp"
	"slices"
	"time"

	"github.com/google/uuid"

	domerrors "github.com/amirhosseinghanipour/idolbase/internal/domain/errors"
)

// FormationPosition places a member on the stage grid.
type FormationPosition struct {
	MemberID       MemberID
	PositionNumber int
	Row            int
	Column         int
}

// Formation is a group's stage arrangement. Positions are kept sorted by PositionNumber.
type Formation struct {
	ID        FormationID
	GroupID   GroupID
	Name      string
	Positions []FormationPosition
	CreatedAt time.Time
	UpdatedAt time.Time
}

// FormationParams holds the mutable fields of a Formation. Positions replace the current list.
type FormationParams struct {
	GroupID   GroupID
	Name      string
	Positions []FormationPosition
}

func (p FormationParams) normalize() (FormationParams, error) {
	v := &domerrors.ValidationError{}
	if p.GroupID.UUID == uuid.Nil {
		v.Add("groupId", msgRequired)
	}
	p.Name = requireText(v, "name", p.Name, MaxNameLength)
	positions, pv := normalizePositions(p.Positions)
	v.Merge("", pv)
	p.Positions = positions
	return p, v.Err()
}

func normalizePositions(in []FormationPosition) ([]FormationPosition, *domerrors.ValidationError) {
	v := &domerrors.ValidationError{}
	seen := make(map[int]bool, len(in))
	out := make([]FormationPosition, 0, len(in))
	for i, pos := range in {
		field := indexed("positions", i)
		if pos.MemberID.UUID == uuid.Nil {
			v.Add(field+".memberId", msgRequired)
		}
		if pos.PositionNumber < 1 {
			v.Add(field+".positionNumber", msgMustBePositive)
		} else if seen[pos.PositionNumber] {
			v.Add(field+".positionNumber", msgDuplicateOrdinal)
		}
		seen[pos.PositionNumber] = true
		if pos.Row < 1 {
			v.Add(field+".row", msgMustBePositive)
		}
		if pos.Column < 1 {
			v.Add(field+".column", msgMustBePositive)
		}
		out = append(out, pos)
	}
	slices.SortStableFunc(out, func(a, b FormationPosition) int {
		return cmp.Compare(a.PositionNumber, b.PositionNumber)
	})
	return out, v
}

// NewFormation creates a formation with a fresh id.
func NewFormation(p FormationParams) (*Formation, error) {
	ts := timestamp()
	return RestoreFormation(NewFormationID(uuid.New()), p, ts, ts)
}

// RestoreFormation rebuilds a formation with a known identity, validating its fields.
func RestoreFormation(id FormationID, p FormationParams, createdAt, updatedAt time.Time) (*Formation, error) {
	p, err := p.normalize()
	if err != nil {
		return nil, err
	}
	return &Formation{
		ID:        id,
		GroupID:   p.GroupID,
		Name:      p.Name,
		Positions: p.Positions,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}, nil
}

// Update replaces name, group and the full position list, then bumps UpdatedAt.
func (f *Formation) Update(p FormationParams) error {
	p, err := p.normalize()
	if err != nil {
		return err
	}
	f.GroupID = p.GroupID
	f.Name = p.Name
	f.Positions = p.Positions
	f.UpdatedAt = nextTimestamp(f.UpdatedAt)
	return nil
}

// MemberIDs lists the members placed in the formation, in position order.
func (f *Formation) MemberIDs() []MemberID {
	ids := make([]MemberID, 0, len(f.Positions))
	for _, p := range f.Positions {
		ids = append(ids, p.MemberID)
	}
	return ids
}
