package dto

import (
	"github.com/amirhosseinghanipour/idolbase/internal/domain"
)

// ToGroupDTO maps a group.
func ToGroupDTO(g *domain.Group) GroupDTO {
	return GroupDTO{
		ID:            g.ID.String(),
		Name:          g.Name,
		DebutDate:     FormatDatePtr(g.DebutDate),
		HasGeneration: g.HasGeneration,
		CreatedAt:     FormatTimestamp(g.CreatedAt),
		UpdatedAt:     FormatTimestamp(g.UpdatedAt),
	}
}

// ToGroupDetailDTO maps a group with its members.
func ToGroupDetailDTO(g *domain.Group, members []*domain.Member) GroupDetailDTO {
	out := GroupDetailDTO{GroupDTO: ToGroupDTO(g), Members: make([]MemberSummaryDTO, 0, len(members))}
	for _, m := range members {
		out.Members = append(out.Members, ToMemberSummaryDTO(m))
	}
	return out
}

// ToMemberSummaryDTO maps a member to its compact shape.
func ToMemberSummaryDTO(m *domain.Member) MemberSummaryDTO {
	var primary *string
	if img := m.PrimaryImage(); img != nil {
		u := img.URL
		primary = &u
	}
	return MemberSummaryDTO{
		ID:              m.ID.String(),
		Name:            m.Name,
		Generation:      m.Generation,
		IsGraduated:     m.IsGraduated,
		PrimaryImageURL: primary,
	}
}

// ToMemberDTO maps a member.
func ToMemberDTO(m *domain.Member) MemberDTO {
	var groupID *string
	if m.GroupID != nil {
		s := m.GroupID.String()
		groupID = &s
	}
	return MemberDTO{
		ID:             m.ID.String(),
		GroupID:        groupID,
		Name:           m.Name,
		BirthDate:      FormatDate(m.BirthDate),
		Birthplace:     m.Birthplace,
		PenLightColor1: m.PenLightColor1,
		PenLightColor2: m.PenLightColor2,
		Generation:     m.Generation,
		IsGraduated:    m.IsGraduated,
		Images:         toImageDTOs(m.Images),
		CreatedAt:      FormatTimestamp(m.CreatedAt),
		UpdatedAt:      FormatTimestamp(m.UpdatedAt),
	}
}

func toImageDTOs(images []domain.MemberImage) []MemberImageDTO {
	out := make([]MemberImageDTO, 0, len(images))
	for _, img := range images {
		out = append(out, MemberImageDTO{URL: img.URL, IsPrimary: img.IsPrimary})
	}
	return out
}

// ToSongDTO maps a song.
func ToSongDTO(s *domain.Song) SongDTO {
	return SongDTO{
		ID:          s.ID.String(),
		GroupID:     s.GroupID.String(),
		Title:       s.Title,
		Lyricist:    s.Lyricist,
		Composer:    s.Composer,
		Arranger:    s.Arranger,
		ReleaseDate: FormatDatePtr(s.ReleaseDate),
		CreatedAt:   FormatTimestamp(s.CreatedAt),
		UpdatedAt:   FormatTimestamp(s.UpdatedAt),
	}
}

// ToFormationDTO maps a formation; memberNames may be nil.
func ToFormationDTO(f *domain.Formation, memberNames map[domain.MemberID]string) FormationDTO {
	positions := make([]FormationPositionDTO, 0, len(f.Positions))
	for _, p := range f.Positions {
		positions = append(positions, FormationPositionDTO{
			MemberID:       p.MemberID.String(),
			MemberName:     lookup(memberNames, p.MemberID),
			PositionNumber: p.PositionNumber,
			Row:            p.Row,
			Column:         p.Column,
		})
	}
	return FormationDTO{
		ID:        f.ID.String(),
		GroupID:   f.GroupID.String(),
		Name:      f.Name,
		Positions: positions,
		CreatedAt: FormatTimestamp(f.CreatedAt),
		UpdatedAt: FormatTimestamp(f.UpdatedAt),
	}
}

// ToSetlistDTO maps a setlist; songTitles and memberNames may be nil.
func ToSetlistDTO(s *domain.Setlist, songTitles map[domain.SongID]string, memberNames map[domain.MemberID]string) SetlistDTO {
	items := make([]SetlistItemDTO, 0, len(s.Items))
	for _, it := range s.Items {
		item := SetlistItemDTO{
			SongID:               it.SongID.String(),
			SongTitle:            lookup(songTitles, it.SongID),
			Order:                it.Order,
			ParticipantMemberIDs: MemberIDStrings(it.ParticipantIDs),
		}
		if it.CenterMemberID != nil {
			id := it.CenterMemberID.String()
			item.CenterMemberID = &id
			item.CenterMemberName = lookup(memberNames, *it.CenterMemberID)
		}
		items = append(items, item)
	}
	return SetlistDTO{
		ID:        s.ID.String(),
		GroupID:   s.GroupID.String(),
		Name:      s.Name,
		EventDate: FormatDatePtr(s.EventDate),
		Items:     items,
		CreatedAt: FormatTimestamp(s.CreatedAt),
		UpdatedAt: FormatTimestamp(s.UpdatedAt),
	}
}

// ToConversationDTO maps a conversation.
func ToConversationDTO(c *domain.Conversation) ConversationDTO {
	var memberID *string
	if c.MemberID != nil {
		s := c.MemberID.String()
		memberID = &s
	}
	messages := make([]MessageDTO, 0, len(c.Messages))
	for _, m := range c.Messages {
		messages = append(messages, MessageDTO{SpeakerType: string(m.SpeakerType), Content: m.Content, Order: m.Order})
	}
	return ConversationDTO{
		ID:               c.ID.String(),
		Title:            c.Title,
		MemberID:         memberID,
		MemberName:       c.MemberName,
		ConversationDate: FormatDate(c.ConversationDate),
		Messages:         messages,
		CreatedAt:        FormatTimestamp(c.CreatedAt),
		UpdatedAt:        FormatTimestamp(c.UpdatedAt),
	}
}

// MemberIDStrings renders ids; the result is never nil.
func MemberIDStrings(ids []domain.MemberID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}

func lookup[K comparable](m map[K]string, k K) *string {
	v, ok := m[k]
	if !ok {
		return nil
	}
	return &v
}
