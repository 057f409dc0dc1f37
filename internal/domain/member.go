package domain

import (
	"time"

	"github.com/google/uuid"

	domerrors "github.com/amirhosseinghanipour/idolbase/internal/domain/errors"
)

// MemberImage is a profile picture; list order is display order.
type MemberImage struct {
	URL       string
	IsPrimary bool
}

// Member is an idol, optionally attached to a group.
type Member struct {
	ID             MemberID
	GroupID        *GroupID
	Name           string
	BirthDate      time.Time
	Birthplace     *string
	PenLightColor1 *string
	PenLightColor2 *string
	Generation     *int
	IsGraduated    bool
	Images         []MemberImage
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// MemberParams holds the mutable fields of a Member. Images replace the current list.
type MemberParams struct {
	GroupID        *GroupID
	Name           string
	BirthDate      time.Time
	Birthplace     *string
	PenLightColor1 *string
	PenLightColor2 *string
	Generation     *int
	IsGraduated    bool
	Images         []MemberImage
}

func (p MemberParams) normalize() (MemberParams, error) {
	v := &domerrors.ValidationError{}
	p.Name = requireText(v, "name", p.Name, MaxNameLength)
	if p.BirthDate.IsZero() {
		v.Add("birthDate", msgRequired)
	} else {
		p.BirthDate = DateOf(p.BirthDate)
		if p.BirthDate.After(timestamp()) {
			v.Add("birthDate", "must not be in the future")
		}
	}
	if p.GroupID != nil && p.GroupID.UUID == uuid.Nil {
		p.GroupID = nil
	}
	p.Birthplace = optionalText(v, "birthplace", p.Birthplace, MaxNameLength)
	p.PenLightColor1 = optionalText(v, "penLightColor1", p.PenLightColor1, MaxColorLength)
	p.PenLightColor2 = optionalText(v, "penLightColor2", p.PenLightColor2, MaxColorLength)
	if p.Generation != nil && *p.Generation < 1 {
		v.Add("generation", msgMustBePositive)
	}
	images := make([]MemberImage, 0, len(p.Images))
	primaries := 0
	for i, img := range p.Images {
		img.URL = requireText(v, indexed("images", i)+".url", img.URL, MaxURLLength)
		if img.IsPrimary {
			primaries++
		}
		images = append(images, img)
	}
	if primaries > 1 {
		v.Add("images", "at most one image can be primary")
	}
	p.Images = images
	return p, v.Err()
}

// NewMember creates a member with a fresh id.
func NewMember(p MemberParams) (*Member, error) {
	ts := timestamp()
	return RestoreMember(NewMemberID(uuid.New()), p, ts, ts)
}

// RestoreMember rebuilds a member with a known identity, validating its fields.
func RestoreMember(id MemberID, p MemberParams, createdAt, updatedAt time.Time) (*Member, error) {
	p, err := p.normalize()
	if err != nil {
		return nil, err
	}
	m := &Member{ID: id, CreatedAt: createdAt, UpdatedAt: updatedAt}
	m.apply(p)
	return m, nil
}

// Update replaces the member's fields and images and bumps UpdatedAt.
func (m *Member) Update(p MemberParams) error {
	p, err := p.normalize()
	if err != nil {
		return err
	}
	m.apply(p)
	m.UpdatedAt = nextTimestamp(m.UpdatedAt)
	return nil
}

func (m *Member) apply(p MemberParams) {
	m.GroupID = p.GroupID
	m.Name = p.Name
	m.BirthDate = p.BirthDate
	m.Birthplace = p.Birthplace
	m.PenLightColor1 = p.PenLightColor1
	m.PenLightColor2 = p.PenLightColor2
	m.Generation = p.Generation
	m.IsGraduated = p.IsGraduated
	m.Images = p.Images
}

// PrimaryImage returns the image flagged primary, or nil.
func (m *Member) PrimaryImage() *MemberImage {
	for i := range m.Images {
		if m.Images[i].IsPrimary {
			return &m.Images[i]
		}
	}
	return nil
}
