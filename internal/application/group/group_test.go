package group

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

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestCreateAndGetGroup(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	created, err := NewCreateGroup(store.Groups()).Execute(ctx, CreateGroupInput{Name: "  Sakura  ", DebutDate: date(2018, 11, 29), HasGeneration: true})
	require.NoError(t, err)
	assert.Equal(t, "Sakura", created.Name)
	require.NotNil(t, created.DebutDate)
	assert.Equal(t, "2018-11-29", *created.DebutDate)

	id, err := uuid.Parse(created.ID)
	require.NoError(t, err)
	gid := domain.NewGroupID(id)

	gen1, gen2 := 1, 2
	for _, p := range []domain.MemberParams{
		{GroupID: &gid, Name: "Yui", BirthDate: *date(2000, 1, 1), Generation: &gen2},
		{GroupID: &gid, Name: "Aoi", BirthDate: *date(2001, 1, 1), Generation: &gen2},
		{GroupID: &gid, Name: "Rin", BirthDate: *date(1999, 1, 1), Generation: &gen1},
	} {
		m, err := domain.NewMember(p)
		require.NoError(t, err)
		require.NoError(t, store.Members().Create(ctx, m))
	}

	detail, err := NewGetGroup(store.Groups(), store.Members()).Execute(ctx, gid)
	require.NoError(t, err)
	require.Len(t, detail.Members, 3)
	assert.Equal(t, []string{"Rin", "Aoi", "Yui"}, []string{detail.Members[0].Name, detail.Members[1].Name, detail.Members[2].Name})
}

func TestCreateGroupRejectsBlankName(t *testing.T) {
	_, err := NewCreateGroup(memory.NewStore().Groups()).Execute(context.Background(), CreateGroupInput{Name: "   "})
	require.ErrorIs(t, err, domerrors.ErrValidation)
}

func TestGetGroupNotFound(t *testing.T) {
	store := memory.NewStore()
	_, err := NewGetGroup(store.Groups(), store.Members()).Execute(context.Background(), domain.NewGroupID(uuid.New()))
	require.ErrorIs(t, err, domerrors.ErrNotFound)
}

func TestUpdateGroupBumpsUpdatedAt(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	created, err := NewCreateGroup(store.Groups()).Execute(ctx, CreateGroupInput{Name: "Before"})
	require.NoError(t, err)

	id := domain.NewGroupID(uuid.MustParse(created.ID))
	updated, err := NewUpdateGroup(store.Groups()).Execute(ctx, UpdateGroupInput{ID: id, Name: "After"})
	require.NoError(t, err)
	assert.Equal(t, "After", updated.Name)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)

	before, err := time.Parse(time.RFC3339Nano, created.UpdatedAt)
	require.NoError(t, err)
	after, err := time.Parse(time.RFC3339Nano, updated.UpdatedAt)
	require.NoError(t, err)
	assert.True(t, after.After(before))

	_, err = NewUpdateGroup(store.Groups()).Execute(ctx, UpdateGroupInput{ID: domain.NewGroupID(uuid.New()), Name: "x"})
	require.ErrorIs(t, err, domerrors.ErrNotFound)
}

func TestListGroupsPaging(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	create := NewCreateGroup(store.Groups())
	for _, name := range []string{"Alpha", "Beta", "Gamma", "Delta", "Epsilon"} {
		_, err := create.Execute(ctx, CreateGroupInput{Name: name})
		require.NoError(t, err)
	}

	list := NewListGroups(store.Groups())
	res, err := list.Execute(ctx, ports.ListQuery{Page: 2, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, 5, res.TotalCount)
	assert.Equal(t, 3, res.TotalPages)
	assert.True(t, res.HasNextPage)
	assert.True(t, res.HasPreviousPage)
	require.Len(t, res.Items, 2)
	assert.Equal(t, "Delta", res.Items[0].Name)

	res, err = list.Execute(ctx, ports.ListQuery{Search: "ALP"})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "Alpha", res.Items[0].Name)
	assert.Equal(t, ports.DefaultPageSize, res.PageSize)
	assert.False(t, res.HasNextPage)
}

func TestBulkDeleteGroupsCountsExistingIDs(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	a, err := NewCreateGroup(store.Groups()).Execute(ctx, CreateGroupInput{Name: "A"})
	require.NoError(t, err)
	b, err := NewCreateGroup(store.Groups()).Execute(ctx, CreateGroupInput{Name: "B"})
	require.NoError(t, err)

	ida := domain.NewGroupID(uuid.MustParse(a.ID))
	idb := domain.NewGroupID(uuid.MustParse(b.ID))
	res, err := NewBulkDeleteGroups(store.Groups()).Execute(ctx, []domain.GroupID{ida, idb, ida, domain.NewGroupID(uuid.New())})
	require.NoError(t, err)
	assert.Equal(t, 2, res.DeletedCount)
	assert.Equal(t, []string{a.ID, b.ID}, res.DeletedIDs)

	res, err = NewBulkDeleteGroups(store.Groups()).Execute(ctx, nil)
	require.NoError(t, err)
	assert.Zero(t, res.DeletedCount)
}

func TestDeleteGroupDetachesMembersAndDropsSongs(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	g, err := domain.NewGroup(domain.GroupParams{Name: "G"})
	require.NoError(t, err)
	require.NoError(t, store.Groups().Create(ctx, g))
	m, err := domain.NewMember(domain.MemberParams{GroupID: &g.ID, Name: "M", BirthDate: *date(2000, 5, 5)})
	require.NoError(t, err)
	require.NoError(t, store.Members().Create(ctx, m))
	s, err := domain.NewSong(domain.SongParams{GroupID: g.ID, Title: "S"})
	require.NoError(t, err)
	require.NoError(t, store.Songs().Create(ctx, s))

	require.NoError(t, NewDeleteGroup(store.Groups()).Execute(ctx, g.ID))
	require.ErrorIs(t, NewDeleteGroup(store.Groups()).Execute(ctx, g.ID), domerrors.ErrNotFound)

	got, err := store.Members().GetByID(ctx, m.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Nil(t, got.GroupID)

	song, err := store.Songs().GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Nil(t, song)
}
