package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/amirhosseinghanipour/idolbase/internal/application/conversation"
	"github.com/amirhosseinghanipour/idolbase/internal/application/ports"
	"github.com/amirhosseinghanipour/idolbase/internal/domain"
)

const resourceConversations = "conversations"

// ConversationsHandler handles /api/conversations.
type ConversationsHandler struct {
	create     *conversation.CreateConversation
	update     *conversation.UpdateConversation
	delete     *conversation.DeleteConversation
	bulkDelete *conversation.BulkDeleteConversations
	get        *conversation.GetConversation
	list       *conversation.ListConversations
	audit      *Auditor
	validate   *validator.Validate
	log        zerolog.Logger
}

// NewConversationsHandler creates a handler for conversation endpoints.
func NewConversationsHandler(conversations ports.ConversationRepository, members ports.MemberRepository, audit *Auditor, log zerolog.Logger) *ConversationsHandler {
	return &ConversationsHandler{
		create:     conversation.NewCreateConversation(conversations, members),
		update:     conversation.NewUpdateConversation(conversations, members),
		delete:     conversation.NewDeleteConversation(conversations),
		bulkDelete: conversation.NewBulkDeleteConversations(conversations),
		get:        conversation.NewGetConversation(conversations),
		list:       conversation.NewListConversations(conversations),
		audit:      audit,
		validate:   newValidator(),
		log:        log,
	}
}

type messageRequest struct {
	SpeakerType string `json:"speakerType" validate:"required,oneof=member self"`
	Content     string `json:"content" validate:"required,max=1000"`
	Order       int    `json:"order" validate:"min=1"`
}

type conversationRequest struct {
	Title            string           `json:"title" validate:"required,max=200"`
	MemberID         *string          `json:"memberId" validate:"omitempty,uuid"`
	MemberName       *string          `json:"memberName" validate:"omitempty,max=100"`
	ConversationDate string           `json:"conversationDate" validate:"required,datetime=2006-01-02"`
	Messages         []messageRequest `json:"messages" validate:"dive"`
}

func (h *ConversationsHandler) decode(w http.ResponseWriter, r *http.Request) (domain.ConversationParams, error) {
	var body conversationRequest
	if err := decodeJSON(w, r, h.validate, &body); err != nil {
		return domain.ConversationParams{}, err
	}
	var d dates
	p := domain.ConversationParams{
		Title:            body.Title,
		MemberName:       body.MemberName,
		ConversationDate: d.required("conversationDate", body.ConversationDate),
		Messages:         make([]domain.Message, 0, len(body.Messages)),
	}
	if body.MemberID != nil && *body.MemberID != "" {
		mid := domain.NewMemberID(parseUUID(*body.MemberID))
		p.MemberID = &mid
	}
	for _, m := range body.Messages {
		p.Messages = append(p.Messages, domain.Message{
			SpeakerType: domain.SpeakerType(m.SpeakerType),
			Content:     m.Content,
			Order:       m.Order,
		})
	}
	return p, d.err()
}

// List returns a page of conversations, most recent first.
func (h *ConversationsHandler) List(w http.ResponseWriter, r *http.Request) {
	lq, err := listQuery(r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	q := ports.ConversationQuery{ListQuery: lq}
	memberID, err := queryUUID(r, "memberId")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if memberID != nil {
		mid := domain.NewMemberID(*memberID)
		q.MemberID = &mid
	}
	out, err := h.list.Execute(r.Context(), q)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// Get returns one conversation with its messages.
func (h *ConversationsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	out, err := h.get.Execute(r.Context(), domain.NewConversationID(id))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// Create adds a conversation.
func (h *ConversationsHandler) Create(w http.ResponseWriter, r *http.Request) {
	p, err := h.decode(w, r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	out, err := h.create.Execute(r.Context(), p)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	h.audit.Record(r, resourceConversations, "created", out.ID)
	writeJSON(w, http.StatusCreated, out)
}

// Update replaces a conversation's fields and messages.
func (h *ConversationsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	p, err := h.decode(w, r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	out, err := h.update.Execute(r.Context(), conversation.UpdateConversationInput{ID: domain.NewConversationID(id), ConversationParams: p})
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	h.audit.Record(r, resourceConversations, "updated", out.ID)
	writeJSON(w, http.StatusOK, out)
}

// Delete removes a conversation.
func (h *ConversationsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if err := h.delete.Execute(r.Context(), domain.NewConversationID(id)); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	h.audit.Record(r, resourceConversations, "deleted", id.String())
	w.WriteHeader(http.StatusNoContent)
}

// BulkDelete removes every listed conversation that exists.
func (h *ConversationsHandler) BulkDelete(w http.ResponseWriter, r *http.Request) {
	var body bulkDeleteRequest
	if err := decodeJSON(w, r, h.validate, &body); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	out, err := h.bulkDelete.Execute(r.Context(), convertIDs(body.uuids(), domain.NewConversationID))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if out.DeletedCount > 0 {
		h.audit.Record(r, resourceConversations, "bulk_deleted", out.DeletedIDs...)
	}
	writeJSON(w, http.StatusOK, out)
}
