package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/amirhosseinghanipour/idolbase/internal/application/ports"
	"github.com/amirhosseinghanipour/idolbase/internal/domain"
	"github.com/amirhosseinghanipour/idolbase/internal/infrastructure/persistence/db"
)

// ConversationRepository implements ports.ConversationRepository. Messages are rewritten on every save.
type ConversationRepository struct {
	pool db.Pool
}

func NewConversationRepository(pool db.Pool) *ConversationRepository {
	return &ConversationRepository{pool: pool}
}

const (
	conversationColumns   = `id, title, member_id, member_name, conversation_date, created_at, updated_at`
	insertConversationSQL = `INSERT INTO conversations (` + conversationColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7)`
	updateConversationSQL = `UPDATE conversations SET title = $2, member_id = $3, member_name = $4, conversation_date = $5, updated_at = $6 WHERE id = $1`
	getConversationSQL    = `SELECT ` + conversationColumns + ` FROM conversations WHERE id = $1`
	conversationFilter    = ` WHERE ($1 = '' OR strpos(lower(title), lower($1)) > 0) AND ($2::uuid IS NULL OR member_id = $2)`
	countConversations    = `SELECT COUNT(*) FROM conversations` + conversationFilter
	listConversationsSQL  = `SELECT ` + conversationColumns + ` FROM conversations` + conversationFilter + ` ORDER BY conversation_date DESC, title, id LIMIT $3 OFFSET $4`
	deleteConversationSQL = `DELETE FROM conversations WHERE id = $1`
	deleteConversations   = `DELETE FROM conversations WHERE id = ANY($1) RETURNING id`

	insertMessageSQL = `INSERT INTO conversation_messages (conversation_id, message_order, speaker_type, content) VALUES ($1, $2, $3, $4)`
	clearMessagesSQL = `DELETE FROM conversation_messages WHERE conversation_id = $1`
	messagesForSQL   = `SELECT conversation_id, message_order, speaker_type, content FROM conversation_messages WHERE conversation_id = ANY($1) ORDER BY conversation_id, message_order`
)

func scanConversation(row pgx.Row) (*domain.Conversation, error) {
	var (
		c        domain.Conversation
		id       uuid.UUID
		memberID *uuid.UUID
		date     time.Time
	)
	if err := row.Scan(&id, &c.Title, &memberID, &c.MemberName, &date, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	c.ID = domain.NewConversationID(id)
	c.MemberID = memberIDPtr(memberID)
	c.ConversationDate = domain.DateOf(date)
	c.CreatedAt = c.CreatedAt.UTC()
	c.UpdatedAt = c.UpdatedAt.UTC()
	c.Messages = []domain.Message{}
	return &c, nil
}

func writeMessages(ctx context.Context, tx db.DBTX, c *domain.Conversation) error {
	if _, err := tx.Exec(ctx, clearMessagesSQL, c.ID.UUID); err != nil {
		return err
	}
	for _, m := range c.Messages {
		if _, err := tx.Exec(ctx, insertMessageSQL, c.ID.UUID, m.Order, string(m.SpeakerType), m.Content); err != nil {
			return err
		}
	}
	return nil
}

func loadMessages(ctx context.Context, q db.DBTX, conversations []*domain.Conversation) error {
	if len(conversations) == 0 {
		return nil
	}
	byID := make(map[uuid.UUID]*domain.Conversation, len(conversations))
	ids := make([]uuid.UUID, 0, len(conversations))
	for _, c := range conversations {
		byID[c.ID.UUID] = c
		ids = append(ids, c.ID.UUID)
	}
	rows, err := q.Query(ctx, messagesForSQL, ids)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var (
			conversationID uuid.UUID
			speaker        string
			m              domain.Message
		)
		if err := rows.Scan(&conversationID, &m.Order, &speaker, &m.Content); err != nil {
			return err
		}
		m.SpeakerType = domain.SpeakerType(speaker)
		if c := byID[conversationID]; c != nil {
			c.Messages = append(c.Messages, m)
		}
	}
	return rows.Err()
}

func (r *ConversationRepository) Create(ctx context.Context, c *domain.Conversation) error {
	return db.Translate(db.InTx(ctx, r.pool, func(tx db.DBTX) error {
		_, err := tx.Exec(ctx, insertConversationSQL, c.ID.UUID, c.Title, memberUUIDPtr(c.MemberID), c.MemberName,
			c.ConversationDate, c.CreatedAt, c.UpdatedAt)
		if err != nil {
			return err
		}
		return writeMessages(ctx, tx, c)
	}))
}

func (r *ConversationRepository) Update(ctx context.Context, c *domain.Conversation) error {
	return db.Translate(db.InTx(ctx, r.pool, func(tx db.DBTX) error {
		_, err := tx.Exec(ctx, updateConversationSQL, c.ID.UUID, c.Title, memberUUIDPtr(c.MemberID), c.MemberName,
			c.ConversationDate, c.UpdatedAt)
		if err != nil {
			return err
		}
		return writeMessages(ctx, tx, c)
	}))
}

func (r *ConversationRepository) GetByID(ctx context.Context, id domain.ConversationID) (*domain.Conversation, error) {
	c, err := scanConversation(r.pool.QueryRow(ctx, getConversationSQL, id.UUID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := loadMessages(ctx, r.pool, []*domain.Conversation{c}); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *ConversationRepository) List(ctx context.Context, q ports.ConversationQuery) ([]*domain.Conversation, int, error) {
	memberID := memberUUIDPtr(q.MemberID)
	var total int
	if err := r.pool.QueryRow(ctx, countConversations, q.Search, memberID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, listConversationsSQL, q.Search, memberID, q.PageSize, q.Offset())
	if err != nil {
		return nil, 0, err
	}
	list, err := collect(rows, scanConversation)
	if err != nil {
		return nil, 0, err
	}
	return list, total, loadMessages(ctx, r.pool, list)
}

func (r *ConversationRepository) Delete(ctx context.Context, id domain.ConversationID) (bool, error) {
	tag, err := r.pool.Exec(ctx, deleteConversationSQL, id.UUID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *ConversationRepository) DeleteMany(ctx context.Context, ids []domain.ConversationID) ([]domain.ConversationID, error) {
	return deleteReturning(ctx, r.pool, deleteConversations, uuids(ids), domain.NewConversationID)
}

var _ ports.ConversationRepository = (*ConversationRepository)(nil)
