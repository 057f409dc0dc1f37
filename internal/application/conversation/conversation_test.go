package conversation

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

var talkDate = time.Date(2024, 2, 11, 0, 0, 0, 0, time.UTC)

func seedMember(t *testing.T, store *memory.Store, name string) domain.MemberID {
	t.Helper()
	m, err := domain.NewMember(domain.MemberParams{Name: name, BirthDate: time.Date(2003, 7, 7, 0, 0, 0, 0, time.UTC)})
	require.NoError(t, err)
	require.NoError(t, store.Members().Create(context.Background(), m))
	return m.ID
}

func TestCreateConversationFillsMemberName(t *testing.T) {
	store := memory.NewStore()
	mid := seedMember(t, store, "Hina")

	out, err := NewCreateConversation(store.Conversations(), store.Members()).Execute(context.Background(), domain.ConversationParams{
		Title:            "Handshake",
		MemberID:         &mid,
		ConversationDate: talkDate,
		Messages: []domain.Message{
			{SpeakerType: domain.SpeakerMember, Content: "Thanks for coming!", Order: 2},
			{SpeakerType: domain.SpeakerSelf, Content: "Hello", Order: 1},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, out.MemberName)
	assert.Equal(t, "Hina", *out.MemberName)
	require.Len(t, out.Messages, 2)
	assert.Equal(t, "Hello", out.Messages[0].Content)
	assert.Equal(t, "2024-02-11", out.ConversationDate)
}

func TestCreateConversationKeepsGivenName(t *testing.T) {
	store := memory.NewStore()
	mid := seedMember(t, store, "Hina")
	nickname := "Hinatan"
	out, err := NewCreateConversation(store.Conversations(), store.Members()).Execute(context.Background(), domain.ConversationParams{
		Title:            "Online talk",
		MemberID:         &mid,
		MemberName:       &nickname,
		ConversationDate: talkDate,
	})
	require.NoError(t, err)
	assert.Equal(t, "Hinatan", *out.MemberName)
}

func TestCreateConversationUnknownMember(t *testing.T) {
	store := memory.NewStore()
	ghost := domain.NewMemberID(uuid.New())
	_, err := NewCreateConversation(store.Conversations(), store.Members()).Execute(context.Background(), domain.ConversationParams{
		Title:            "Nobody",
		MemberID:         &ghost,
		ConversationDate: talkDate,
	})
	var ve *domerrors.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "memberId", ve.Errors[0].Field)
}

func TestUpdateAndListConversations(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	mid := seedMember(t, store, "Kaho")
	created, err := NewCreateConversation(store.Conversations(), store.Members()).Execute(ctx, domain.ConversationParams{
		Title:            "Draft",
		ConversationDate: talkDate,
		Messages:         []domain.Message{{SpeakerType: domain.SpeakerSelf, Content: "Hi", Order: 1}},
	})
	require.NoError(t, err)
	assert.Nil(t, created.MemberID)

	id := domain.NewConversationID(uuid.MustParse(created.ID))
	updated, err := NewUpdateConversation(store.Conversations(), store.Members()).Execute(ctx, UpdateConversationInput{ID: id, ConversationParams: domain.ConversationParams{
		Title:            "Final",
		MemberID:         &mid,
		ConversationDate: talkDate,
		Messages:         []domain.Message{{SpeakerType: domain.SpeakerMember, Content: "Bye", Order: 1}},
	}})
	require.NoError(t, err)
	assert.Equal(t, "Kaho", *updated.MemberName)
	require.Len(t, updated.Messages, 1)
	assert.Equal(t, "member", updated.Messages[0].SpeakerType)

	res, err := NewListConversations(store.Conversations()).Execute(ctx, ports.ConversationQuery{MemberID: &mid})
	require.NoError(t, err)
	assert.Equal(t, 1, res.TotalCount)

	_, err = store.Members().Delete(ctx, mid)
	require.NoError(t, err)
	got, err := NewGetConversation(store.Conversations()).Execute(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, got.MemberID)
	assert.Equal(t, "Kaho", *got.MemberName)

	bulk, err := NewBulkDeleteConversations(store.Conversations()).Execute(ctx, []domain.ConversationID{id})
	require.NoError(t, err)
	assert.Equal(t, 1, bulk.DeletedCount)
	require.ErrorIs(t, NewDeleteConversation(store.Conversations()).Execute(ctx, id), domerrors.ErrNotFound)
}
