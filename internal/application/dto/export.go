package dto

import (
	"time"

	"github.com/amirhosseinghanipour/idolbase/internal/domain"
)

// ExportVersion is the snapshot format version written by export and required by import.
const ExportVersion = "1.0"

// ExportDataDTO is the versioned interchange snapshot. Field order is part of the format.
type ExportDataDTO struct {
	Version    string               `json:"version"`
	ExportedAt string               `json:"exportedAt"`
	Groups     []ExportGroupDTO     `json:"groups"`
	Members    []ExportMemberDTO    `json:"members"`
	Formations []ExportFormationDTO `json:"formations"`
	Songs      []ExportSongDTO      `json:"songs"`
	Setlists   []ExportSetlistDTO   `json:"setlists"`
}

// ExportGroupDTO is a group in the snapshot.
type ExportGroupDTO struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	DebutDate     *string `json:"debutDate"`
	HasGeneration bool    `json:"hasGeneration"`
	CreatedAt     string  `json:"createdAt"`
	UpdatedAt     string  `json:"updatedAt"`
}

// ExportMemberDTO is a member in the snapshot.
type ExportMemberDTO struct {
	ID             string           `json:"id"`
	Name           string           `json:"name"`
	BirthDate      string           `json:"birthDate"`
	Birthplace     *string          `json:"birthplace"`
	PenLightColor1 *string          `json:"penLightColor1"`
	PenLightColor2 *string          `json:"penLightColor2"`
	Generation     *int             `json:"generation"`
	IsGraduated    bool             `json:"isGraduated"`
	GroupID        *string          `json:"groupId"`
	GroupName      *string          `json:"groupName"`
	Images         []MemberImageDTO `json:"images"`
	CreatedAt      string           `json:"createdAt"`
	UpdatedAt      string           `json:"updatedAt"`
}

// ExportFormationPositionDTO is a formation slot in the snapshot.
type ExportFormationPositionDTO struct {
	MemberID       string  `json:"memberId"`
	MemberName     *string `json:"memberName"`
	PositionNumber int     `json:"positionNumber"`
	Row            int     `json:"row"`
	Column         int     `json:"column"`
}

// ExportFormationDTO is a formation in the snapshot.
type ExportFormationDTO struct {
	ID        string                       `json:"id"`
	Name      string                       `json:"name"`
	GroupID   string                       `json:"groupId"`
	GroupName *string                      `json:"groupName"`
	Positions []ExportFormationPositionDTO `json:"positions"`
	CreatedAt string                       `json:"createdAt"`
	UpdatedAt string                       `json:"updatedAt"`
}

// ExportSongDTO is a song in the snapshot.
type ExportSongDTO struct {
	ID          string  `json:"id"`
	GroupID     string  `json:"groupId"`
	GroupName   *string `json:"groupName"`
	Title       string  `json:"title"`
	Lyricist    *string `json:"lyricist"`
	Composer    *string `json:"composer"`
	Arranger    *string `json:"arranger"`
	ReleaseDate *string `json:"releaseDate"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

// ExportSetlistItemDTO is a setlist item in the snapshot.
type ExportSetlistItemDTO struct {
	SongID               string   `json:"songId"`
	SongTitle            *string  `json:"songTitle"`
	Order                int      `json:"order"`
	CenterMemberID       *string  `json:"centerMemberId"`
	CenterMemberName     *string  `json:"centerMemberName"`
	ParticipantMemberIDs []string `json:"participantMemberIds"`
}

// ExportSetlistDTO is a setlist in the snapshot.
type ExportSetlistDTO struct {
	ID        string                 `json:"id"`
	Name      string                 `json:"name"`
	GroupID   string                 `json:"groupId"`
	GroupName *string                `json:"groupName"`
	EventDate *string                `json:"eventDate"`
	Items     []ExportSetlistItemDTO `json:"items"`
	CreatedAt string                 `json:"createdAt"`
	UpdatedAt string                 `json:"updatedAt"`
}

// ToExportData maps a snapshot, resolving denormalized names from the snapshot itself.
func ToExportData(s *domain.Snapshot, exportedAt time.Time) ExportDataDTO {
	groupNames := make(map[domain.GroupID]string, len(s.Groups))
	for _, g := range s.Groups {
		groupNames[g.ID] = g.Name
	}
	memberNames := make(map[domain.MemberID]string, len(s.Members))
	for _, m := range s.Members {
		memberNames[m.ID] = m.Name
	}
	songTitles := make(map[domain.SongID]string, len(s.Songs))
	for _, song := range s.Songs {
		songTitles[song.ID] = song.Title
	}

	out := ExportDataDTO{
		Version:    ExportVersion,
		ExportedAt: FormatTimestamp(exportedAt),
		Groups:     make([]ExportGroupDTO, 0, len(s.Groups)),
		Members:    make([]ExportMemberDTO, 0, len(s.Members)),
		Formations: make([]ExportFormationDTO, 0, len(s.Formations)),
		Songs:      make([]ExportSongDTO, 0, len(s.Songs)),
		Setlists:   make([]ExportSetlistDTO, 0, len(s.Setlists)),
	}
	for _, g := range s.Groups {
		gd := ToGroupDTO(g)
		out.Groups = append(out.Groups, ExportGroupDTO(gd))
	}
	for _, m := range s.Members {
		md := ToMemberDTO(m)
		var groupName *string
		if m.GroupID != nil {
			groupName = lookup(groupNames, *m.GroupID)
		}
		out.Members = append(out.Members, ExportMemberDTO{
			ID:             md.ID,
			Name:           md.Name,
			BirthDate:      md.BirthDate,
			Birthplace:     md.Birthplace,
			PenLightColor1: md.PenLightColor1,
			PenLightColor2: md.PenLightColor2,
			Generation:     md.Generation,
			IsGraduated:    md.IsGraduated,
			GroupID:        md.GroupID,
			GroupName:      groupName,
			Images:         md.Images,
			CreatedAt:      md.CreatedAt,
			UpdatedAt:      md.UpdatedAt,
		})
	}
	for _, f := range s.Formations {
		fd := ToFormationDTO(f, memberNames)
		positions := make([]ExportFormationPositionDTO, 0, len(fd.Positions))
		for _, p := range fd.Positions {
			positions = append(positions, ExportFormationPositionDTO(p))
		}
		out.Formations = append(out.Formations, ExportFormationDTO{
			ID:        fd.ID,
			Name:      fd.Name,
			GroupID:   fd.GroupID,
			GroupName: lookup(groupNames, f.GroupID),
			Positions: positions,
			CreatedAt: fd.CreatedAt,
			UpdatedAt: fd.UpdatedAt,
		})
	}
	for _, song := range s.Songs {
		sd := ToSongDTO(song)
		out.Songs = append(out.Songs, ExportSongDTO{
			ID:          sd.ID,
			GroupID:     sd.GroupID,
			GroupName:   lookup(groupNames, song.GroupID),
			Title:       sd.Title,
			Lyricist:    sd.Lyricist,
			Composer:    sd.Composer,
			Arranger:    sd.Arranger,
			ReleaseDate: sd.ReleaseDate,
			CreatedAt:   sd.CreatedAt,
			UpdatedAt:   sd.UpdatedAt,
		})
	}
	for _, sl := range s.Setlists {
		sd := ToSetlistDTO(sl, songTitles, memberNames)
		items := make([]ExportSetlistItemDTO, 0, len(sd.Items))
		for _, it := range sd.Items {
			items = append(items, ExportSetlistItemDTO(it))
		}
		out.Setlists = append(out.Setlists, ExportSetlistDTO{
			ID:        sd.ID,
			Name:      sd.Name,
			GroupID:   sd.GroupID,
			GroupName: lookup(groupNames, sl.GroupID),
			EventDate: sd.EventDate,
			Items:     items,
			CreatedAt: sd.CreatedAt,
			UpdatedAt: sd.UpdatedAt,
		})
	}
	return out
}

// ImportResultDTO counts the rows written by an import.
type ImportResultDTO struct {
	Groups     int `json:"groups"`
	Members    int `json:"members"`
	Songs      int `json:"songs"`
	Formations int `json:"formations"`
	Setlists   int `json:"setlists"`
}
