package transfer

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirhosseinghanipour/idolbase/internal/application/dto"
	"github.com/amirhosseinghanipour/idolbase/internal/application/ports"
	"github.com/amirhosseinghanipour/idolbase/internal/domain"
	domerrors "github.com/amirhosseinghanipour/idolbase/internal/domain/errors"
	"github.com/amirhosseinghanipour/idolbase/internal/infrastructure/persistence/memory"
)

func day(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

// seed fills store with one of everything, with child lists deliberately given out of order.
func seed(t *testing.T, store *memory.Store) {
	t.Helper()
	ctx := context.Background()
	debut := day(2015, 8, 21)
	g, err := domain.NewGroup(domain.GroupParams{Name: "Nogi", DebutDate: &debut, HasGeneration: true})
	require.NoError(t, err)
	require.NoError(t, store.Groups().Create(ctx, g))

	gen := 1
	color := "purple"
	var members []*domain.Member
	for _, name := range []string{"Asuka", "Mai"} {
		m, err := domain.NewMember(domain.MemberParams{
			GroupID:        &g.ID,
			Name:           name,
			BirthDate:      day(1998, 8, 10),
			PenLightColor1: &color,
			Generation:     &gen,
			Images:         []domain.MemberImage{{URL: "https://img/" + name + "/b"}, {URL: "https://img/" + name + "/a", IsPrimary: true}},
		})
		require.NoError(t, err)
		require.NoError(t, store.Members().Create(ctx, m))
		members = append(members, m)
	}
	solo, err := domain.NewMember(domain.MemberParams{Name: "Freelancer", BirthDate: day(1995, 1, 1)})
	require.NoError(t, err)
	require.NoError(t, store.Members().Create(ctx, solo))

	release := day(2016, 3, 23)
	song, err := domain.NewSong(domain.SongParams{GroupID: g.ID, Title: "Harujion", ReleaseDate: &release})
	require.NoError(t, err)
	require.NoError(t, store.Songs().Create(ctx, song))

	f, err := domain.NewFormation(domain.FormationParams{GroupID: g.ID, Name: "14th", Positions: []domain.FormationPosition{
		{MemberID: members[1].ID, PositionNumber: 2, Row: 1, Column: 2},
		{MemberID: members[0].ID, PositionNumber: 1, Row: 1, Column: 1},
	}})
	require.NoError(t, err)
	require.NoError(t, store.Formations().Create(ctx, f))

	sl, err := domain.NewSetlist(domain.SetlistParams{GroupID: g.ID, Name: "Birthday Live", Items: []domain.SetlistItem{
		{SongID: song.ID, Order: 2, ParticipantIDs: []domain.MemberID{members[1].ID, members[0].ID}},
		{SongID: song.ID, Order: 1, CenterMemberID: &members[0].ID},
	}})
	require.NoError(t, err)
	require.NoError(t, store.Setlists().Create(ctx, sl))
}

func roundTrip(t *testing.T, doc *dto.ExportDataDTO) *dto.ExportDataDTO {
	t.Helper()
	raw, err := json.Marshal(doc)
	require.NoError(t, err)
	var out dto.ExportDataDTO
	require.NoError(t, json.Unmarshal(raw, &out))
	return &out
}

func TestExportImportRoundTrip(t *testing.T) {
	ctx := context.Background()
	source := memory.NewStore()
	seed(t, source)

	exported, err := NewExportData(source).Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, dto.ExportVersion, exported.Version)
	require.Len(t, exported.Members, 3)
	require.Len(t, exported.Formations, 1)
	assert.Equal(t, "Nogi", *exported.Formations[0].GroupName)

	target := memory.NewStore()
	res, err := NewImportData(target).Execute(ctx, roundTrip(t, exported), ports.ImportReplace)
	require.NoError(t, err)
	assert.Equal(t, dto.ImportResultDTO{Groups: 1, Members: 3, Songs: 1, Formations: 1, Setlists: 1}, *res)

	again, err := NewExportData(target).Execute(ctx)
	require.NoError(t, err)
	again.ExportedAt = exported.ExportedAt
	assert.Equal(t, exported, again)
}

func TestImportRejectsWrongVersion(t *testing.T) {
	_, err := NewImportData(memory.NewStore()).Execute(context.Background(), &dto.ExportDataDTO{Version: "2.0"}, ports.ImportReplace)
	require.ErrorIs(t, err, domerrors.ErrInvalidArgument)
}

func TestImportReportsDanglingReferences(t *testing.T) {
	doc := &dto.ExportDataDTO{
		Version: dto.ExportVersion,
		Songs: []dto.ExportSongDTO{{
			ID:        uuid.NewString(),
			GroupID:   uuid.NewString(),
			Title:     "Lost",
			CreatedAt: "2024-01-01T00:00:00Z",
			UpdatedAt: "2024-01-01T00:00:00Z",
		}},
	}
	_, err := NewImportData(memory.NewStore()).Execute(context.Background(), doc, ports.ImportReplace)
	var ve *domerrors.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "songs[0].groupId", ve.Errors[0].Field)
}

func TestImportReportsInvalidRecords(t *testing.T) {
	doc := &dto.ExportDataDTO{
		Version: dto.ExportVersion,
		Groups: []dto.ExportGroupDTO{{
			ID:        "not-a-uuid",
			Name:      " ",
			CreatedAt: "2024-01-01T00:00:00Z",
			UpdatedAt: "yesterday",
		}},
	}
	_, err := NewImportData(memory.NewStore()).Execute(context.Background(), doc, ports.ImportReplace)
	var ve *domerrors.ValidationError
	require.ErrorAs(t, err, &ve)
	var fields []string
	for _, fe := range ve.Errors {
		fields = append(fields, fe.Field)
	}
	assert.ElementsMatch(t, []string{"groups[0].id", "groups[0].updatedAt", "groups[0].name"}, fields)
}

func TestImportRejectsDuplicateIDs(t *testing.T) {
	id := uuid.NewString()
	g := dto.ExportGroupDTO{ID: id, Name: "Twin", CreatedAt: "2024-01-01T00:00:00Z", UpdatedAt: "2024-01-01T00:00:00Z"}
	doc := &dto.ExportDataDTO{Version: dto.ExportVersion, Groups: []dto.ExportGroupDTO{g, g}}
	_, err := NewImportData(memory.NewStore()).Execute(context.Background(), doc, ports.ImportMerge)
	require.ErrorIs(t, err, domerrors.ErrConflict)
}

func TestMergeResolvesReferencesAgainstStore(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	seed(t, store)
	before, err := NewExportData(store).Execute(ctx)
	require.NoError(t, err)

	doc := &dto.ExportDataDTO{
		Version: dto.ExportVersion,
		Songs: []dto.ExportSongDTO{{
			ID:        uuid.NewString(),
			GroupID:   before.Groups[0].ID,
			Title:     "Influencer",
			CreatedAt: "2017-03-22T00:00:00Z",
			UpdatedAt: "2017-03-22T00:00:00Z",
		}},
	}
	_, err = NewImportData(store).Execute(ctx, doc, ports.ImportReplace)
	require.ErrorIs(t, err, domerrors.ErrValidation)

	res, err := NewImportData(store).Execute(ctx, doc, ports.ImportMerge)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Songs)

	after, err := NewExportData(store).Execute(ctx)
	require.NoError(t, err)
	assert.Len(t, after.Songs, 2)
	assert.Len(t, after.Members, 3)
}

func TestReplaceRemovesRowsAbsentFromDocument(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	seed(t, store)

	res, err := NewImportData(store).Execute(ctx, &dto.ExportDataDTO{Version: dto.ExportVersion}, ports.ImportReplace)
	require.NoError(t, err)
	assert.Zero(t, res.Groups)

	after, err := NewExportData(store).Execute(ctx)
	require.NoError(t, err)
	assert.Empty(t, after.Groups)
	assert.Empty(t, after.Members)
	assert.Empty(t, after.Setlists)
}

func TestParseImportMode(t *testing.T) {
	mode, err := ParseImportMode("")
	require.NoError(t, err)
	assert.Equal(t, ports.ImportReplace, mode)
	mode, err = ParseImportMode("merge")
	require.NoError(t, err)
	assert.Equal(t, ports.ImportMerge, mode)
	_, err = ParseImportMode("append")
	require.ErrorIs(t, err, domerrors.ErrInvalidArgument)
}
