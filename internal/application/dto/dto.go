// Package dto holds the transport shapes returned by use cases and the mappers that build them.
package dto

// GroupDTO is the API shape of a group.
type GroupDTO struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	DebutDate     *string `json:"debutDate"`
	HasGeneration bool    `json:"hasGeneration"`
	CreatedAt     string  `json:"createdAt"`
	UpdatedAt     string  `json:"updatedAt"`
}

// GroupDetailDTO is a group with its members.
type GroupDetailDTO struct {
	GroupDTO
	Members []MemberSummaryDTO `json:"members"`
}

// MemberSummaryDTO is the compact member shape used inside other resources.
type MemberSummaryDTO struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Generation      *int    `json:"generation"`
	IsGraduated     bool    `json:"isGraduated"`
	PrimaryImageURL *string `json:"primaryImageUrl"`
}

// MemberImageDTO is one member image.
type MemberImageDTO struct {
	URL       string `json:"url"`
	IsPrimary bool   `json:"isPrimary"`
}

// MemberDTO is the API shape of a member.
type MemberDTO struct {
	ID             string           `json:"id"`
	GroupID        *string          `json:"groupId"`
	Name           string           `json:"name"`
	BirthDate      string           `json:"birthDate"`
	Birthplace     *string          `json:"birthplace"`
	PenLightColor1 *string          `json:"penLightColor1"`
	PenLightColor2 *string          `json:"penLightColor2"`
	Generation     *int             `json:"generation"`
	IsGraduated    bool             `json:"isGraduated"`
	Images         []MemberImageDTO `json:"images"`
	CreatedAt      string           `json:"createdAt"`
	UpdatedAt      string           `json:"updatedAt"`
}

// SongDTO is the API shape of a song.
type SongDTO struct {
	ID          string  `json:"id"`
	GroupID     string  `json:"groupId"`
	Title       string  `json:"title"`
	Lyricist    *string `json:"lyricist"`
	Composer    *string `json:"composer"`
	Arranger    *string `json:"arranger"`
	ReleaseDate *string `json:"releaseDate"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

// FormationPositionDTO is one slot of a formation.
type FormationPositionDTO struct {
	MemberID       string  `json:"memberId"`
	MemberName     *string `json:"memberName"`
	PositionNumber int     `json:"positionNumber"`
	Row            int     `json:"row"`
	Column         int     `json:"column"`
}

// FormationDTO is the API shape of a formation.
type FormationDTO struct {
	ID        string                 `json:"id"`
	GroupID   string                 `json:"groupId"`
	Name      string                 `json:"name"`
	Positions []FormationPositionDTO `json:"positions"`
	CreatedAt string                 `json:"createdAt"`
	UpdatedAt string                 `json:"updatedAt"`
}

// SetlistItemDTO is one song of a setlist.
type SetlistItemDTO struct {
	SongID               string   `json:"songId"`
	SongTitle            *string  `json:"songTitle"`
	Order                int      `json:"order"`
	CenterMemberID       *string  `json:"centerMemberId"`
	CenterMemberName     *string  `json:"centerMemberName"`
	ParticipantMemberIDs []string `json:"participantMemberIds"`
}

// SetlistDTO is the API shape of a setlist.
type SetlistDTO struct {
	ID        string           `json:"id"`
	GroupID   string           `json:"groupId"`
	Name      string           `json:"name"`
	EventDate *string          `json:"eventDate"`
	Items     []SetlistItemDTO `json:"items"`
	CreatedAt string           `json:"createdAt"`
	UpdatedAt string           `json:"updatedAt"`
}

// MessageDTO is one line of a conversation.
type MessageDTO struct {
	SpeakerType string `json:"speakerType"`
	Content     string `json:"content"`
	Order       int    `json:"order"`
}

// ConversationDTO is the API shape of a conversation.
type ConversationDTO struct {
	ID               string       `json:"id"`
	Title            string       `json:"title"`
	MemberID         *string      `json:"memberId"`
	MemberName       *string      `json:"memberName"`
	ConversationDate string       `json:"conversationDate"`
	Messages         []MessageDTO `json:"messages"`
	CreatedAt        string       `json:"createdAt"`
	UpdatedAt        string       `json:"updatedAt"`
}
