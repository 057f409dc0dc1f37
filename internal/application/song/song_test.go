package song

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirhosseinghanipour/idolbase/internal/application/ports"
	"github.com/amirhosseinghanipour/idolbase/internal/domain"
	domerrors "github.com/amirhosseinghanipour/idolbase/internal/domain/errors"
	"github.com/amirhosseinghanipour/idolbase/internal/infrastructure/persistence/memory"
)

func TestSongLifecycle(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	g, err := domain.NewGroup(domain.GroupParams{Name: "Keyaki"})
	require.NoError(t, err)
	require.NoError(t, store.Groups().Create(ctx, g))

	release := time.Date(2016, 4, 6, 12, 0, 0, 0, time.UTC)
	lyricist := "Aki"
	created, err := NewCreateSong(store.Songs(), store.Groups()).Execute(ctx, domain.SongParams{
		GroupID:     g.ID,
		Title:       "Silent Majority",
		Lyricist:    &lyricist,
		ReleaseDate: &release,
	})
	require.NoError(t, err)
	assert.Equal(t, "2016-04-06", *created.ReleaseDate)
	assert.Nil(t, created.Composer)

	id := domain.NewSongID(uuid.MustParse(created.ID))
	updated, err := NewUpdateSong(store.Songs(), store.Groups()).Execute(ctx, UpdateSongInput{ID: id, SongParams: domain.SongParams{
		GroupID: g.ID,
		Title:   "Silent Majority (Live)",
	}})
	require.NoError(t, err)
	assert.Nil(t, updated.ReleaseDate)
	assert.Nil(t, updated.Lyricist)

	got, err := NewGetSong(store.Songs()).Execute(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Silent Majority (Live)", got.Title)

	res, err := NewListSongs(store.Songs()).Execute(ctx, ports.SongQuery{GroupID: &g.ID, ListQuery: ports.ListQuery{Search: "live"}})
	require.NoError(t, err)
	assert.Equal(t, 1, res.TotalCount)

	require.NoError(t, NewDeleteSong(store.Songs()).Execute(ctx, id))
	_, err = NewGetSong(store.Songs()).Execute(ctx, id)
	require.ErrorIs(t, err, domerrors.ErrNotFound)
}

func TestCreateSongRequiresExistingGroup(t *testing.T) {
	store := memory.NewStore()
	_, err := NewCreateSong(store.Songs(), store.Groups()).Execute(context.Background(), domain.SongParams{
		GroupID: domain.NewGroupID(uuid.New()),
		Title:   "Orphan",
	})
	var ve *domerrors.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "groupId", ve.Errors[0].Field)

	_, err = NewCreateSong(store.Songs(), store.Groups()).Execute(context.Background(), domain.SongParams{Title: "No group"})
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "groupId", ve.Errors[0].Field)
}

func TestBulkDeleteSongs(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	g, err := domain.NewGroup(domain.GroupParams{Name: "G"})
	require.NoError(t, err)
	require.NoError(t, store.Groups().Create(ctx, g))
	var ids []domain.SongID
	for _, title := range []string{"One", "Two", "Three"} {
		s, err := domain.NewSong(domain.SongParams{GroupID: g.ID, Title: title})
		require.NoError(t, err)
		require.NoError(t, store.Songs().Create(ctx, s))
		ids = append(ids, s.ID)
	}

	res, err := NewBulkDeleteSongs(store.Songs()).Execute(ctx, append(ids[:2:2], domain.NewSongID(uuid.New())))
	require.NoError(t, err)
	assert.Equal(t, 2, res.DeletedCount)

	left, err := NewListSongs(store.Songs()).Execute(ctx, ports.SongQuery{})
	require.NoError(t, err)
	require.Len(t, left.Items, 1)
	assert.Equal(t, "Three", left.Items[0].Title)
}
