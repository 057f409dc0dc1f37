package formation

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

type fixture struct {
	store   *memory.Store
	group   domain.GroupID
	members []domain.MemberID
}

func newFixture(t *testing.T, names ...string) fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	g, err := domain.NewGroup(domain.GroupParams{Name: "Stage"})
	require.NoError(t, err)
	require.NoError(t, store.Groups().Create(ctx, g))
	f := fixture{store: store, group: g.ID}
	for _, name := range names {
		m, err := domain.NewMember(domain.MemberParams{GroupID: &g.ID, Name: name, BirthDate: time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)})
		require.NoError(t, err)
		require.NoError(t, store.Members().Create(ctx, m))
		f.members = append(f.members, m.ID)
	}
	return f
}

func (f fixture) create() *CreateFormation {
	return NewCreateFormation(f.store.Formations(), f.store.Groups(), f.store.Members())
}

func (f fixture) update() *UpdateFormation {
	return NewUpdateFormation(f.store.Formations(), f.store.Groups(), f.store.Members())
}

func TestCreateFormationResolvesNames(t *testing.T) {
	f := newFixture(t, "Center", "Left")
	out, err := f.create().Execute(context.Background(), domain.FormationParams{
		GroupID: f.group,
		Name:    "Debut single",
		Positions: []domain.FormationPosition{
			{MemberID: f.members[1], PositionNumber: 2, Row: 1, Column: 1},
			{MemberID: f.members[0], PositionNumber: 1, Row: 1, Column: 2},
		},
	})
	require.NoError(t, err)
	require.Len(t, out.Positions, 2)
	assert.Equal(t, 1, out.Positions[0].PositionNumber)
	require.NotNil(t, out.Positions[0].MemberName)
	assert.Equal(t, "Center", *out.Positions[0].MemberName)
}

func TestCreateFormationUnknownReferences(t *testing.T) {
	f := newFixture(t, "Only")
	_, err := f.create().Execute(context.Background(), domain.FormationParams{
		GroupID: domain.NewGroupID(uuid.New()),
		Name:    "Ghost",
		Positions: []domain.FormationPosition{
			{MemberID: f.members[0], PositionNumber: 1, Row: 1, Column: 1},
			{MemberID: domain.NewMemberID(uuid.New()), PositionNumber: 2, Row: 1, Column: 2},
		},
	})
	var ve *domerrors.ValidationError
	require.ErrorAs(t, err, &ve)
	var fields []string
	for _, fe := range ve.Errors {
		fields = append(fields, fe.Field)
	}
	assert.ElementsMatch(t, []string{"groupId", "positions[1].memberId"}, fields)
}

func TestUpdateFormationReplacesPositions(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, "A", "B", "C")
	created, err := f.create().Execute(ctx, domain.FormationParams{
		GroupID: f.group,
		Name:    "First",
		Positions: []domain.FormationPosition{
			{MemberID: f.members[0], PositionNumber: 1, Row: 1, Column: 1},
			{MemberID: f.members[1], PositionNumber: 2, Row: 1, Column: 2},
		},
	})
	require.NoError(t, err)
	id := domain.NewFormationID(uuid.MustParse(created.ID))

	_, err = f.update().Execute(ctx, UpdateFormationInput{ID: id, FormationParams: domain.FormationParams{
		GroupID:   f.group,
		Name:      "Second",
		Positions: []domain.FormationPosition{{MemberID: f.members[2], PositionNumber: 1, Row: 2, Column: 1}},
	}})
	require.NoError(t, err)

	got, err := NewGetFormation(f.store.Formations(), f.store.Members()).Execute(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Second", got.Name)
	require.Len(t, got.Positions, 1)
	assert.Equal(t, f.members[2].String(), got.Positions[0].MemberID)
	assert.Equal(t, 2, got.Positions[0].Row)
}

func TestUpdateFormationNotFound(t *testing.T) {
	f := newFixture(t)
	_, err := f.update().Execute(context.Background(), UpdateFormationInput{
		ID:              domain.NewFormationID(uuid.New()),
		FormationParams: domain.FormationParams{GroupID: f.group, Name: "x"},
	})
	require.ErrorIs(t, err, domerrors.ErrNotFound)
}

func TestDeletedMemberLeavesFormation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, "Stay", "Leave")
	_, err := f.create().Execute(ctx, domain.FormationParams{
		GroupID: f.group,
		Name:    "Pair",
		Positions: []domain.FormationPosition{
			{MemberID: f.members[0], PositionNumber: 1, Row: 1, Column: 1},
			{MemberID: f.members[1], PositionNumber: 2, Row: 1, Column: 2},
		},
	})
	require.NoError(t, err)
	_, err = f.store.Members().Delete(ctx, f.members[1])
	require.NoError(t, err)

	res, err := NewListFormations(f.store.Formations(), f.store.Members()).Execute(ctx, ports.FormationQuery{GroupID: &f.group})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	require.Len(t, res.Items[0].Positions, 1)
	assert.Equal(t, "Stay", *res.Items[0].Positions[0].MemberName)

	del, err := NewBulkDeleteFormations(f.store.Formations()).Execute(ctx, []domain.FormationID{domain.NewFormationID(uuid.MustParse(res.Items[0].ID))})
	require.NoError(t, err)
	assert.Equal(t, 1, del.DeletedCount)
	require.ErrorIs(t, NewDeleteFormation(f.store.Formations()).Execute(ctx, domain.NewFormationID(uuid.MustParse(res.Items[0].ID))), domerrors.ErrNotFound)
}
