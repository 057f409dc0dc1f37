package domain

import (
	"cmp"
	"slices"
	"time"

	"github.com/google/uuid"

	domerrors "github.com/amirhosseinghanipour/idolbase/internal/domain/errors"
)

// SpeakerType identifies who said a line in a meet-and-greet transcript.
type SpeakerType string

const (
	SpeakerMember SpeakerType = "member"
	SpeakerSelf   SpeakerType = "self"
)

// Valid reports whether s is a known speaker.
func (s SpeakerType) Valid() bool {
	return s == SpeakerMember || s == SpeakerSelf
}

// Message is one line of a conversation.
type Message struct {
	SpeakerType SpeakerType
	Content     string
	Order       int
}

// Conversation is a meet-and-greet transcript. Messages are kept sorted by Order.
type Conversation struct {
	ID               ConversationID
	Title            string
	MemberID         *MemberID
	MemberName       *string
	ConversationDate time.Time
	Messages         []Message
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// ConversationParams holds the mutable fields of a Conversation. Messages replace the current list.
type ConversationParams struct {
	Title            string
	MemberID         *MemberID
	MemberName       *string
	ConversationDate time.Time
	Messages         []Message
}

func (p ConversationParams) normalize() (ConversationParams, error) {
	v := &domerrors.ValidationError{}
	p.Title = requireText(v, "title", p.Title, MaxTitleLength)
	if p.MemberID != nil && p.MemberID.UUID == uuid.Nil {
		p.MemberID = nil
	}
	p.MemberName = optionalText(v, "memberName", p.MemberName, MaxNameLength)
	if p.ConversationDate.IsZero() {
		v.Add("conversationDate", msgRequired)
	} else {
		p.ConversationDate = DateOf(p.ConversationDate)
	}
	seen := make(map[int]bool, len(p.Messages))
	messages := make([]Message, 0, len(p.Messages))
	for i, m := range p.Messages {
		field := indexed("messages", i)
		if !m.SpeakerType.Valid() {
			v.Add(field+".speakerType", "must be one of: member, self")
		}
		m.Content = requireText(v, field+".content", m.Content, MaxMessageLength)
		if m.Order < 1 {
			v.Add(field+".order", msgMustBePositive)
		} else if seen[m.Order] {
			v.Add(field+".order", msgDuplicateOrdinal)
		}
		seen[m.Order] = true
		messages = append(messages, m)
	}
	slices.SortStableFunc(messages, func(a, b Message) int { return cmp.Compare(a.Order, b.Order) })
	p.Messages = messages
	return p, v.Err()
}

// NewConversation creates a conversation with a fresh id.
func NewConversation(p ConversationParams) (*Conversation, error) {
	ts := timestamp()
	return RestoreConversation(NewConversationID(uuid.New()), p, ts, ts)
}

// RestoreConversation rebuilds a conversation with a known identity, validating its fields.
func RestoreConversation(id ConversationID, p ConversationParams, createdAt, updatedAt time.Time) (*Conversation, error) {
	p, err := p.normalize()
	if err != nil {
		return nil, err
	}
	c := &Conversation{ID: id, CreatedAt: createdAt, UpdatedAt: updatedAt}
	c.apply(p)
	return c, nil
}

// Update replaces the conversation's fields and full message list, then bumps UpdatedAt.
func (c *Conversation) Update(p ConversationParams) error {
	p, err := p.normalize()
	if err != nil {
		return err
	}
	c.apply(p)
	c.UpdatedAt = nextTimestamp(c.UpdatedAt)
	return nil
}

func (c *Conversation) apply(p ConversationParams) {
	c.Title = p.Title
	c.MemberID = p.MemberID
	c.MemberName = p.MemberName
	c.ConversationDate = p.ConversationDate
	c.Messages = p.Messages
}
