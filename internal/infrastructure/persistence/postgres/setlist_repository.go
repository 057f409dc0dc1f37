package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/amirhosseinghanipour/idolbase/internal/application/ports"
	"github.com/amirhosseinghanipour/idolbase/internal/domain"
	"github.com/amirhosseinghanipour/idolbase/internal/infrastructure/persistence/db"
)

// SetlistRepository implements ports.SetlistRepository. Items and their participants are rewritten on every save.
type SetlistRepository struct {
	pool db.Pool
}

func NewSetlistRepository(pool db.Pool) *SetlistRepository {
	return &SetlistRepository{pool: pool}
}

const (
	setlistColumns   = `id, group_id, name, event_date, created_at, updated_at`
	insertSetlistSQL = `INSERT INTO setlists (` + setlistColumns + `) VALUES ($1, $2, $3, $4, $5, $6)`
	updateSetlistSQL = `UPDATE setlists SET group_id = $2, name = $3, event_date = $4, updated_at = $5 WHERE id = $1`
	upsertSetlistSQL = insertSetlistSQL + ` ON CONFLICT (id) DO UPDATE SET group_id = EXCLUDED.group_id, name = EXCLUDED.name, event_date = EXCLUDED.event_date, created_at = EXCLUDED.created_at, updated_at = EXCLUDED.updated_at`
	getSetlistSQL    = `SELECT ` + setlistColumns + ` FROM setlists WHERE id = $1`
	setlistFilter    = ` WHERE ($1 = '' OR strpos(lower(name), lower($1)) > 0) AND ($2::uuid IS NULL OR group_id = $2)`
	countSetlists    = `SELECT COUNT(*) FROM setlists` + setlistFilter
	listSetlistsSQL  = `SELECT ` + setlistColumns + ` FROM setlists` + setlistFilter + ` ORDER BY event_date DESC NULLS LAST, name, id LIMIT $3 OFFSET $4`
	allSetlistsSQL   = `SELECT ` + setlistColumns + ` FROM setlists ORDER BY name, id`
	deleteSetlistSQL = `DELETE FROM setlists WHERE id = $1`
	deleteSetlists   = `DELETE FROM setlists WHERE id = ANY($1) RETURNING id`
	pruneSetlists    = `DELETE FROM setlists WHERE NOT (id = ANY($1))`

	insertItemSQL        = `INSERT INTO setlist_items (setlist_id, item_order, song_id, center_member_id) VALUES ($1, $2, $3, $4)`
	insertParticipantSQL = `INSERT INTO setlist_item_participants (setlist_id, item_order, member_id) VALUES ($1, $2, $3)`
	clearItemsSQL        = `DELETE FROM setlist_items WHERE setlist_id = $1`
	itemsForSQL          = `SELECT setlist_id, item_order, song_id, center_member_id FROM setlist_items WHERE setlist_id = ANY($1) ORDER BY setlist_id, item_order`
	participantsForSQL   = `SELECT setlist_id, item_order, member_id FROM setlist_item_participants WHERE setlist_id = ANY($1) ORDER BY setlist_id, item_order, member_id`
)

func scanSetlist(row pgx.Row) (*domain.Setlist, error) {
	var (
		s       domain.Setlist
		id      uuid.UUID
		groupID uuid.UUID
	)
	if err := row.Scan(&id, &groupID, &s.Name, &s.EventDate, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	s.ID = domain.NewSetlistID(id)
	s.GroupID = domain.NewGroupID(groupID)
	s.EventDate = utcDate(s.EventDate)
	s.CreatedAt = s.CreatedAt.UTC()
	s.UpdatedAt = s.UpdatedAt.UTC()
	s.Items = []domain.SetlistItem{}
	return &s, nil
}

// writeItems clears and reinserts the items of s. Participants go with their items through the FK cascade.
func writeItems(ctx context.Context, tx db.DBTX, s *domain.Setlist) error {
	if _, err := tx.Exec(ctx, clearItemsSQL, s.ID.UUID); err != nil {
		return err
	}
	for _, it := range s.Items {
		if _, err := tx.Exec(ctx, insertItemSQL, s.ID.UUID, it.Order, it.SongID.UUID, memberUUIDPtr(it.CenterMemberID)); err != nil {
			return err
		}
		for _, m := range it.ParticipantIDs {
			if _, err := tx.Exec(ctx, insertParticipantSQL, s.ID.UUID, it.Order, m.UUID); err != nil {
				return err
			}
		}
	}
	return nil
}

type itemKey struct {
	setlist uuid.UUID
	order   int
}

// loadItems attaches items and participants to setlists with two queries.
func loadItems(ctx context.Context, q db.DBTX, setlists []*domain.Setlist) error {
	if len(setlists) == 0 {
		return nil
	}
	byID := make(map[uuid.UUID]*domain.Setlist, len(setlists))
	ids := make([]uuid.UUID, 0, len(setlists))
	for _, s := range setlists {
		byID[s.ID.UUID] = s
		ids = append(ids, s.ID.UUID)
	}

	rows, err := q.Query(ctx, itemsForSQL, ids)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var (
			setlistID, songID uuid.UUID
			center            *uuid.UUID
			it                domain.SetlistItem
		)
		if err := rows.Scan(&setlistID, &it.Order, &songID, &center); err != nil {
			return err
		}
		it.SongID = domain.NewSongID(songID)
		it.CenterMemberID = memberIDPtr(center)
		it.ParticipantIDs = []domain.MemberID{}
		if s := byID[setlistID]; s != nil {
			s.Items = append(s.Items, it)
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}
	rows.Close()

	index := make(map[itemKey]*domain.SetlistItem)
	for _, s := range setlists {
		for i := range s.Items {
			index[itemKey{s.ID.UUID, s.Items[i].Order}] = &s.Items[i]
		}
	}
	prows, err := q.Query(ctx, participantsForSQL, ids)
	if err != nil {
		return err
	}
	defer prows.Close()
	for prows.Next() {
		var (
			key      itemKey
			memberID uuid.UUID
		)
		if err := prows.Scan(&key.setlist, &key.order, &memberID); err != nil {
			return err
		}
		if it := index[key]; it != nil {
			it.ParticipantIDs = append(it.ParticipantIDs, domain.NewMemberID(memberID))
		}
	}
	return prows.Err()
}

func querySetlists(ctx context.Context, q db.DBTX, sql string, args ...any) ([]*domain.Setlist, error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	list, err := collect(rows, scanSetlist)
	if err != nil {
		return nil, err
	}
	return list, loadItems(ctx, q, list)
}

func (r *SetlistRepository) Create(ctx context.Context, s *domain.Setlist) error {
	return db.Translate(db.InTx(ctx, r.pool, func(tx db.DBTX) error {
		if _, err := tx.Exec(ctx, insertSetlistSQL, s.ID.UUID, s.GroupID.UUID, s.Name, s.EventDate, s.CreatedAt, s.UpdatedAt); err != nil {
			return err
		}
		return writeItems(ctx, tx, s)
	}))
}

func (r *SetlistRepository) Update(ctx context.Context, s *domain.Setlist) error {
	return db.Translate(db.InTx(ctx, r.pool, func(tx db.DBTX) error {
		if _, err := tx.Exec(ctx, updateSetlistSQL, s.ID.UUID, s.GroupID.UUID, s.Name, s.EventDate, s.UpdatedAt); err != nil {
			return err
		}
		return writeItems(ctx, tx, s)
	}))
}

func (r *SetlistRepository) GetByID(ctx context.Context, id domain.SetlistID) (*domain.Setlist, error) {
	s, err := scanSetlist(r.pool.QueryRow(ctx, getSetlistSQL, id.UUID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := loadItems(ctx, r.pool, []*domain.Setlist{s}); err != nil {
		return nil, err
	}
	return s, nil
}

func (r *SetlistRepository) List(ctx context.Context, q ports.SetlistQuery) ([]*domain.Setlist, int, error) {
	groupID := groupUUIDPtr(q.GroupID)
	var total int
	if err := r.pool.QueryRow(ctx, countSetlists, q.Search, groupID).Scan(&total); err != nil {
		return nil, 0, err
	}
	list, err := querySetlists(ctx, r.pool, listSetlistsSQL, q.Search, groupID, q.PageSize, q.Offset())
	return list, total, err
}

func (r *SetlistRepository) Delete(ctx context.Context, id domain.SetlistID) (bool, error) {
	tag, err := r.pool.Exec(ctx, deleteSetlistSQL, id.UUID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *SetlistRepository) DeleteMany(ctx context.Context, ids []domain.SetlistID) ([]domain.SetlistID, error) {
	return deleteReturning(ctx, r.pool, deleteSetlists, uuids(ids), domain.NewSetlistID)
}

var _ ports.SetlistRepository = (*SetlistRepository)(nil)
