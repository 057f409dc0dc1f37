package member

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

var birth = time.Date(2002, 3, 4, 0, 0, 0, 0, time.UTC)

func seedGroup(t *testing.T, store *memory.Store) domain.GroupID {
	t.Helper()
	g, err := domain.NewGroup(domain.GroupParams{Name: "Hinata", HasGeneration: true})
	require.NoError(t, err)
	require.NoError(t, store.Groups().Create(context.Background(), g))
	return g.ID
}

func TestCreateMemberWithImages(t *testing.T) {
	store := memory.NewStore()
	gid := seedGroup(t, store)
	gen := 2

	out, err := NewCreateMember(store.Members(), store.Groups()).Execute(context.Background(), CreateMemberInput{domain.MemberParams{
		GroupID:    &gid,
		Name:       "Kyoko",
		BirthDate:  birth,
		Generation: &gen,
		Images: []domain.MemberImage{
			{URL: "https://img.example/1.jpg"},
			{URL: "https://img.example/2.jpg", IsPrimary: true},
		},
	}})
	require.NoError(t, err)
	require.NotNil(t, out.GroupID)
	assert.Equal(t, gid.String(), *out.GroupID)
	assert.Equal(t, "2002-03-04", out.BirthDate)
	require.Len(t, out.Images, 2)
	assert.True(t, out.Images[1].IsPrimary)
}

func TestCreateMemberUnknownGroup(t *testing.T) {
	store := memory.NewStore()
	missing := domain.NewGroupID(uuid.New())
	_, err := NewCreateMember(store.Members(), store.Groups()).Execute(context.Background(), CreateMemberInput{domain.MemberParams{
		GroupID:   &missing,
		Name:      "Nobody",
		BirthDate: birth,
	}})
	var ve *domerrors.ValidationError
	require.ErrorAs(t, err, &ve)
	require.Len(t, ve.Errors, 1)
	assert.Equal(t, "groupId", ve.Errors[0].Field)

	res, err := NewListMembers(store.Members()).Execute(context.Background(), ports.MemberQuery{})
	require.NoError(t, err)
	assert.Zero(t, res.TotalCount)
}

func TestUpdateMemberReplacesImages(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	created, err := NewCreateMember(store.Members(), store.Groups()).Execute(ctx, CreateMemberInput{domain.MemberParams{
		Name:      "Mei",
		BirthDate: birth,
		Images:    []domain.MemberImage{{URL: "https://a"}, {URL: "https://b"}},
	}})
	require.NoError(t, err)

	id := domain.NewMemberID(uuid.MustParse(created.ID))
	updated, err := NewUpdateMember(store.Members(), store.Groups()).Execute(ctx, UpdateMemberInput{ID: id, MemberParams: domain.MemberParams{
		Name:        "Mei",
		BirthDate:   birth,
		IsGraduated: true,
		Images:      []domain.MemberImage{{URL: "https://c", IsPrimary: true}},
	}})
	require.NoError(t, err)
	assert.True(t, updated.IsGraduated)
	require.Len(t, updated.Images, 1)
	assert.Equal(t, "https://c", updated.Images[0].URL)
	before, err := time.Parse(time.RFC3339Nano, created.UpdatedAt)
	require.NoError(t, err)
	after, err := time.Parse(time.RFC3339Nano, updated.UpdatedAt)
	require.NoError(t, err)
	assert.True(t, after.After(before))

	got, err := NewGetMember(store.Members()).Execute(ctx, id)
	require.NoError(t, err)
	assert.Len(t, got.Images, 1)
}

func TestListMembersFilters(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	gid := seedGroup(t, store)
	create := NewCreateMember(store.Members(), store.Groups())
	one, two := 1, 2
	for _, p := range []domain.MemberParams{
		{GroupID: &gid, Name: "Nao", BirthDate: birth, Generation: &one},
		{GroupID: &gid, Name: "Nana", BirthDate: birth, Generation: &two, IsGraduated: true},
		{Name: "Solo", BirthDate: birth},
	} {
		_, err := create.Execute(ctx, CreateMemberInput{p})
		require.NoError(t, err)
	}

	list := NewListMembers(store.Members())
	res, err := list.Execute(ctx, ports.MemberQuery{GroupID: &gid})
	require.NoError(t, err)
	assert.Equal(t, 2, res.TotalCount)

	graduated := true
	res, err = list.Execute(ctx, ports.MemberQuery{Graduated: &graduated})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "Nana", res.Items[0].Name)

	res, err = list.Execute(ctx, ports.MemberQuery{Generation: &one, ListQuery: ports.ListQuery{Search: "na"}})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "Nao", res.Items[0].Name)
}

func TestDeleteMember(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	created, err := NewCreateMember(store.Members(), store.Groups()).Execute(ctx, CreateMemberInput{domain.MemberParams{Name: "Gone", BirthDate: birth}})
	require.NoError(t, err)
	id := domain.NewMemberID(uuid.MustParse(created.ID))

	res, err := NewBulkDeleteMembers(store.Members()).Execute(ctx, []domain.MemberID{id, domain.NewMemberID(uuid.New())})
	require.NoError(t, err)
	assert.Equal(t, 1, res.DeletedCount)

	require.ErrorIs(t, NewDeleteMember(store.Members()).Execute(ctx, id), domerrors.ErrNotFound)
	_, err = NewGetMember(store.Members()).Execute(ctx, id)
	require.ErrorIs(t, err, domerrors.ErrNotFound)
}
