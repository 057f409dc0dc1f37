package conversation

import (
	"context"

	"github.com/amirhosseinghanipour/idolbase/internal/application/dto"
	"github.com/amirhosseinghanipour/idolbase/internal/application/ports"
	"github.com/amirhosseinghanipour/idolbase/internal/application/refs"
	"github.com/amirhosseinghanipour/idolbase/internal/domain"
	domerrors "github.com/amirhosseinghanipour/idolbase/internal/domain/errors"
)

const entityName = "conversation"

// attachMember checks the linked member exists and fills MemberName from it when the caller left it blank.
func attachMember(ctx context.Context, members ports.MemberRepository, c *domain.Conversation) error {
	if c.MemberID == nil {
		return nil
	}
	v := &domerrors.ValidationError{}
	names, err := refs.Members(ctx, members, []refs.MemberRef{{ID: *c.MemberID, Field: "memberId"}}, v)
	if err != nil {
		return err
	}
	if err := v.Err(); err != nil {
		return err
	}
	if c.MemberName == nil {
		name := names[*c.MemberID]
		c.MemberName = &name
	}
	return nil
}

// CreateConversation validates and stores a new conversation with its messages.
type CreateConversation struct {
	conversations ports.ConversationRepository
	members       ports.MemberRepository
}

// NewCreateConversation builds the use case.
func NewCreateConversation(conversations ports.ConversationRepository, members ports.MemberRepository) *CreateConversation {
	return &CreateConversation{conversations: conversations, members: members}
}

func (uc *CreateConversation) Execute(ctx context.Context, p domain.ConversationParams) (*dto.ConversationDTO, error) {
	c, err := domain.NewConversation(p)
	if err != nil {
		return nil, err
	}
	if err := attachMember(ctx, uc.members, c); err != nil {
		return nil, err
	}
	if err := uc.conversations.Create(ctx, c); err != nil {
		return nil, err
	}
	out := dto.ToConversationDTO(c)
	return &out, nil
}

// UpdateConversationInput replaces every mutable field of a conversation.
type UpdateConversationInput struct {
	ID domain.ConversationID
	domain.ConversationParams
}

// UpdateConversation loads a conversation, replaces its fields and messages and stores it.
type UpdateConversation struct {
	conversations ports.ConversationRepository
	members       ports.MemberRepository
}

// NewUpdateConversation builds the use case.
func NewUpdateConversation(conversations ports.ConversationRepository, members ports.MemberRepository) *UpdateConversation {
	return &UpdateConversation{conversations: conversations, members: members}
}

func (uc *UpdateConversation) Execute(ctx context.Context, input UpdateConversationInput) (*dto.ConversationDTO, error) {
	c, err := uc.conversations.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domerrors.NotFound(entityName, input.ID.String())
	}
	if err := c.Update(input.ConversationParams); err != nil {
		return nil, err
	}
	if err := attachMember(ctx, uc.members, c); err != nil {
		return nil, err
	}
	if err := uc.conversations.Update(ctx, c); err != nil {
		return nil, err
	}
	out := dto.ToConversationDTO(c)
	return &out, nil
}
