package conversation

import (
	"context"

	"github.com/amirhosseinghanipour/idolbase/internal/application/dto"
	"github.com/amirhosseinghanipour/idolbase/internal/application/ports"
	"github.com/amirhosseinghanipour/idolbase/internal/domain"
	domerrors "github.com/amirhosseinghanipour/idolbase/internal/domain/errors"
)

// GetConversation returns one conversation.
type GetConversation struct {
	conversations ports.ConversationRepository
}

// NewGetConversation builds the use case.
func NewGetConversation(conversations ports.ConversationRepository) *GetConversation {
	return &GetConversation{conversations: conversations}
}

func (uc *GetConversation) Execute(ctx context.Context, id domain.ConversationID) (*dto.ConversationDTO, error) {
	c, err := uc.conversations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domerrors.NotFound(entityName, id.String())
	}
	out := dto.ToConversationDTO(c)
	return &out, nil
}

// ListConversations returns a page of conversations, most recent first.
type ListConversations struct {
	conversations ports.ConversationRepository
}

// NewListConversations builds the use case.
func NewListConversations(conversations ports.ConversationRepository) *ListConversations {
	return &ListConversations{conversations: conversations}
}

func (uc *ListConversations) Execute(ctx context.Context, q ports.ConversationQuery) (*dto.PagedResult[dto.ConversationDTO], error) {
	q.ListQuery = q.ListQuery.Normalize()
	list, total, err := uc.conversations.List(ctx, q)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ConversationDTO, 0, len(list))
	for _, c := range list {
		items = append(items, dto.ToConversationDTO(c))
	}
	out := dto.NewPagedResult(items, total, q.Page, q.PageSize)
	return &out, nil
}

// DeleteConversation removes one conversation with its messages.
type DeleteConversation struct {
	conversations ports.ConversationRepository
}

// NewDeleteConversation builds the use case.
func NewDeleteConversation(conversations ports.ConversationRepository) *DeleteConversation {
	return &DeleteConversation{conversations: conversations}
}

func (uc *DeleteConversation) Execute(ctx context.Context, id domain.ConversationID) error {
	deleted, err := uc.conversations.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return domerrors.NotFound(entityName, id.String())
	}
	return nil
}

// BulkDeleteConversations removes every existing conversation in a list of ids.
type BulkDeleteConversations struct {
	conversations ports.ConversationRepository
}

// NewBulkDeleteConversations builds the use case.
func NewBulkDeleteConversations(conversations ports.ConversationRepository) *BulkDeleteConversations {
	return &BulkDeleteConversations{conversations: conversations}
}

func (uc *BulkDeleteConversations) Execute(ctx context.Context, ids []domain.ConversationID) (*dto.BulkDeleteResult, error) {
	ids = ports.Distinct(ids)
	if len(ids) == 0 {
		return &dto.BulkDeleteResult{}, nil
	}
	deleted, err := uc.conversations.DeleteMany(ctx, ids)
	if err != nil {
		return nil, err
	}
	return dto.NewBulkDeleteResult(deleted), nil
}
