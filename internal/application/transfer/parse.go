package transfer

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/amirhosseinghanipour/idolbase/internal/application/dto"
	"github.com/amirhosseinghanipour/idolbase/internal/domain"
	domerrors "github.com/amirhosseinghanipour/idolbase/internal/domain/errors"
)

// parser converts snapshot DTOs into domain entities, collecting every field error.
type parser struct {
	v domerrors.ValidationError
}

func (p *parser) fail(prefix string, err error) {
	var ve *domerrors.ValidationError
	if errors.As(err, &ve) {
		p.v.Merge(prefix, ve)
		return
	}
	p.v.Add(prefix, err.Error())
}

func (p *parser) uuid(field, s string) uuid.UUID {
	id, err := uuid.Parse(s)
	if err != nil {
		p.v.Add(field, "must be a valid UUID")
		return uuid.Nil
	}
	return id
}

func (p *parser) uuidPtr(field string, s *string) *uuid.UUID {
	if s == nil || *s == "" {
		return nil
	}
	id := p.uuid(field, *s)
	return &id
}

func (p *parser) date(field, s string) time.Time {
	t, err := dto.ParseDate(field, s)
	if err != nil {
		p.fail("", err)
	}
	return t
}

func (p *parser) datePtr(field string, s *string) *time.Time {
	t, err := dto.ParseDatePtr(field, s)
	if err != nil {
		p.fail("", err)
	}
	return t
}

func (p *parser) timestamp(field, s string) time.Time {
	t, err := dto.ParseTimestamp(field, s)
	if err != nil {
		p.fail("", err)
	}
	return t
}

// times parses createdAt and updatedAt of one record.
func (p *parser) times(prefix, createdAt, updatedAt string) (time.Time, time.Time) {
	return p.timestamp(prefix+".createdAt", createdAt), p.timestamp(prefix+".updatedAt", updatedAt)
}

func (p *parser) group(i int, in dto.ExportGroupDTO) *domain.Group {
	prefix := fmt.Sprintf("groups[%d]", i)
	id := p.uuid(prefix+".id", in.ID)
	created, updated := p.times(prefix, in.CreatedAt, in.UpdatedAt)
	params := domain.GroupParams{
		Name:          in.Name,
		DebutDate:     p.datePtr(prefix+".debutDate", in.DebutDate),
		HasGeneration: in.HasGeneration,
	}
	g, err := domain.RestoreGroup(domain.NewGroupID(id), params, created, updated)
	if err != nil {
		p.fail(prefix, err)
		return nil
	}
	return g
}

func (p *parser) member(i int, in dto.ExportMemberDTO) *domain.Member {
	prefix := fmt.Sprintf("members[%d]", i)
	id := p.uuid(prefix+".id", in.ID)
	created, updated := p.times(prefix, in.CreatedAt, in.UpdatedAt)
	params := domain.MemberParams{
		Name:           in.Name,
		BirthDate:      p.date(prefix+".birthDate", in.BirthDate),
		Birthplace:     in.Birthplace,
		PenLightColor1: in.PenLightColor1,
		PenLightColor2: in.PenLightColor2,
		Generation:     in.Generation,
		IsGraduated:    in.IsGraduated,
		Images:         make([]domain.MemberImage, 0, len(in.Images)),
	}
	if gid := p.uuidPtr(prefix+".groupId", in.GroupID); gid != nil {
		g := domain.NewGroupID(*gid)
		params.GroupID = &g
	}
	for _, img := range in.Images {
		params.Images = append(params.Images, domain.MemberImage{URL: img.URL, IsPrimary: img.IsPrimary})
	}
	m, err := domain.RestoreMember(domain.NewMemberID(id), params, created, updated)
	if err != nil {
		p.fail(prefix, err)
		return nil
	}
	return m
}

func (p *parser) song(i int, in dto.ExportSongDTO) *domain.Song {
	prefix := fmt.Sprintf("songs[%d]", i)
	id := p.uuid(prefix+".id", in.ID)
	created, updated := p.times(prefix, in.CreatedAt, in.UpdatedAt)
	params := domain.SongParams{
		GroupID:     domain.NewGroupID(p.uuid(prefix+".groupId", in.GroupID)),
		Title:       in.Title,
		Lyricist:    in.Lyricist,
		Composer:    in.Composer,
		Arranger:    in.Arranger,
		ReleaseDate: p.datePtr(prefix+".releaseDate", in.ReleaseDate),
	}
	s, err := domain.RestoreSong(domain.NewSongID(id), params, created, updated)
	if err != nil {
		p.fail(prefix, err)
		return nil
	}
	return s
}

func (p *parser) formation(i int, in dto.ExportFormationDTO) *domain.Formation {
	prefix := fmt.Sprintf("formations[%d]", i)
	id := p.uuid(prefix+".id", in.ID)
	created, updated := p.times(prefix, in.CreatedAt, in.UpdatedAt)
	params := domain.FormationParams{
		GroupID:   domain.NewGroupID(p.uuid(prefix+".groupId", in.GroupID)),
		Name:      in.Name,
		Positions: make([]domain.FormationPosition, 0, len(in.Positions)),
	}
	for j, pos := range in.Positions {
		params.Positions = append(params.Positions, domain.FormationPosition{
			MemberID:       domain.NewMemberID(p.uuid(fmt.Sprintf("%s.positions[%d].memberId", prefix, j), pos.MemberID)),
			PositionNumber: pos.PositionNumber,
			Row:            pos.Row,
			Column:         pos.Column,
		})
	}
	f, err := domain.RestoreFormation(domain.NewFormationID(id), params, created, updated)
	if err != nil {
		p.fail(prefix, err)
		return nil
	}
	return f
}

func (p *parser) setlist(i int, in dto.ExportSetlistDTO) *domain.Setlist {
	prefix := fmt.Sprintf("setlists[%d]", i)
	id := p.uuid(prefix+".id", in.ID)
	created, updated := p.times(prefix, in.CreatedAt, in.UpdatedAt)
	params := domain.SetlistParams{
		GroupID:   domain.NewGroupID(p.uuid(prefix+".groupId", in.GroupID)),
		Name:      in.Name,
		EventDate: p.datePtr(prefix+".eventDate", in.EventDate),
		Items:     make([]domain.SetlistItem, 0, len(in.Items)),
	}
	for j, it := range in.Items {
		field := fmt.Sprintf("%s.items[%d]", prefix, j)
		item := domain.SetlistItem{
			SongID:         domain.NewSongID(p.uuid(field+".songId", it.SongID)),
			Order:          it.Order,
			ParticipantIDs: make([]domain.MemberID, 0, len(it.ParticipantMemberIDs)),
		}
		if cid := p.uuidPtr(field+".centerMemberId", it.CenterMemberID); cid != nil {
			c := domain.NewMemberID(*cid)
			item.CenterMemberID = &c
		}
		for k, pid := range it.ParticipantMemberIDs {
			item.ParticipantIDs = append(item.ParticipantIDs, domain.NewMemberID(p.uuid(fmt.Sprintf("%s.participantMemberIds[%d]", field, k), pid)))
		}
		params.Items = append(params.Items, item)
	}
	s, err := domain.RestoreSetlist(domain.NewSetlistID(id), params, created, updated)
	if err != nil {
		p.fail(prefix, err)
		return nil
	}
	return s
}

// snapshot converts the whole document. It returns the accumulated ValidationError if any record failed.
func (p *parser) snapshot(in *dto.ExportDataDTO) (*domain.Snapshot, error) {
	snap := &domain.Snapshot{}
	for i, g := range in.Groups {
		if e := p.group(i, g); e != nil {
			snap.Groups = append(snap.Groups, e)
		}
	}
	for i, m := range in.Members {
		if e := p.member(i, m); e != nil {
			snap.Members = append(snap.Members, e)
		}
	}
	for i, s := range in.Songs {
		if e := p.song(i, s); e != nil {
			snap.Songs = append(snap.Songs, e)
		}
	}
	for i, f := range in.Formations {
		if e := p.formation(i, f); e != nil {
			snap.Formations = append(snap.Formations, e)
		}
	}
	for i, s := range in.Setlists {
		if e := p.setlist(i, s); e != nil {
			snap.Setlists = append(snap.Setlists, e)
		}
	}
	if err := p.v.Err(); err != nil {
		return nil, err
	}
	return snap, nil
}
