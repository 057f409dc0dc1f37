package domain

import (
	"time"

	"github.com/google/uuid"

	domerrors "github.com/amirhosseinghanipour/idolbase/internal/domain/errors"
)

// Group is an idol group. Members reference it by id.
type Group struct {
	ID            GroupID
	Name          string
	DebutDate     *time.Time
	HasGeneration bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// GroupParams holds the mutable fields of a Group.
type GroupParams struct {
	Name          string
	DebutDate     *time.Time
	HasGeneration bool
}

func (p GroupParams) normalize() (GroupParams, error) {
	v := &domerrors.ValidationError{}
	p.Name = requireText(v, "name", p.Name, MaxNameLength)
	p.DebutDate = dateOfPtr(p.DebutDate)
	return p, v.Err()
}

// NewGroup creates a group with a fresh id.
func NewGroup(p GroupParams) (*Group, error) {
	ts := timestamp()
	return RestoreGroup(NewGroupID(uuid.New()), p, ts, ts)
}

// RestoreGroup rebuilds a group with a known identity (imports), validating its fields.
func RestoreGroup(id GroupID, p GroupParams, createdAt, updatedAt time.Time) (*Group, error) {
	p, err := p.normalize()
	if err != nil {
		return nil, err
	}
	return &Group{
		ID:            id,
		Name:          p.Name,
		DebutDate:     p.DebutDate,
		HasGeneration: p.HasGeneration,
		CreatedAt:     createdAt,
		UpdatedAt:     updatedAt,
	}, nil
}

// Update replaces the group's fields and bumps UpdatedAt.
func (g *Group) Update(p GroupParams) error {
	p, err := p.normalize()
	if err != nil {
		return err
	}
	g.Name = p.Name
	g.DebutDate = p.DebutDate
	g.HasGeneration = p.HasGeneration
	g.UpdatedAt = nextTimestamp(g.UpdatedAt)
	return nil
}
