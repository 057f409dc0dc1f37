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

// MemberRepository implements ports.MemberRepository. Images live in member_images keyed by sort_order.
type MemberRepository struct {
	pool db.Pool
}

func NewMemberRepository(pool db.Pool) *MemberRepository {
	return &MemberRepository{pool: pool}
}

const (
	memberColumns   = `id, group_id, name, birth_date, birthplace, pen_light_color1, pen_light_color2, generation, is_graduated, created_at, updated_at`
	memberOrder     = `ORDER BY generation NULLS LAST, name, id`
	insertMemberSQL = `INSERT INTO members (` + memberColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	updateMemberSQL = `UPDATE members SET group_id = $2, name = $3, birth_date = $4, birthplace = $5, pen_light_color1 = $6,
		pen_light_color2 = $7, generation = $8, is_graduated = $9, updated_at = $10 WHERE id = $1`

	upsertMemberSQL = insertMemberSQL + ` ON CONFLICT (id) DO UPDATE SET group_id = EXCLUDED.group_id, name = EXCLUDED.name,
		birth_date = EXCLUDED.birth_date, birthplace = EXCLUDED.birthplace, pen_light_color1 = EXCLUDED.pen_light_color1,
		pen_light_color2 = EXCLUDED.pen_light_color2, generation = EXCLUDED.generation, is_graduated = EXCLUDED.is_graduated,
		created_at = EXCLUDED.created_at, updated_at = EXCLUDED.updated_at`

	getMemberSQL = `SELECT ` + memberColumns + ` FROM members WHERE id = $1`

	memberFilter = ` WHERE ($1 = '' OR strpos(lower(name), lower($1)) > 0) AND ($2::uuid IS NULL OR group_id = $2)
		AND ($3::int IS NULL OR generation = $3) AND ($4::boolean IS NULL OR is_graduated = $4)`

	countMembersSQL  = `SELECT COUNT(*) FROM members` + memberFilter
	listMembersSQL   = `SELECT ` + memberColumns + ` FROM members` + memberFilter + ` ` + memberOrder + ` LIMIT $5 OFFSET $6`
	membersByGroup   = `SELECT ` + memberColumns + ` FROM members WHERE group_id = $1 ` + memberOrder
	allMembersSQL    = `SELECT ` + memberColumns + ` FROM members ` + memberOrder
	memberNamesSQL   = `SELECT id, name FROM members WHERE id = ANY($1)`
	deleteMemberSQL  = `DELETE FROM members WHERE id = $1`
	deleteMembersSQL = `DELETE FROM members WHERE id = ANY($1) RETURNING id`
	pruneMembersSQL  = `DELETE FROM members WHERE NOT (id = ANY($1))`

	insertImageSQL = `INSERT INTO member_images (member_id, sort_order, url, is_primary) VALUES ($1, $2, $3, $4)`
	clearImagesSQL = `DELETE FROM member_images WHERE member_id = $1`
	imagesForSQL   = `SELECT member_id, url, is_primary FROM member_images WHERE member_id = ANY($1) ORDER BY member_id, sort_order`
)

func scanMember(row pgx.Row) (*domain.Member, error) {
	var (
		m       domain.Member
		id      uuid.UUID
		groupID *uuid.UUID
		birth   time.Time
	)
	err := row.Scan(&id, &groupID, &m.Name, &birth, &m.Birthplace, &m.PenLightColor1, &m.PenLightColor2,
		&m.Generation, &m.IsGraduated, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	m.ID = domain.NewMemberID(id)
	if groupID != nil {
		g := domain.NewGroupID(*groupID)
		m.GroupID = &g
	}
	m.BirthDate = domain.DateOf(birth)
	m.CreatedAt = m.CreatedAt.UTC()
	m.UpdatedAt = m.UpdatedAt.UTC()
	m.Images = []domain.MemberImage{}
	return &m, nil
}

func groupUUIDPtr(id *domain.GroupID) *uuid.UUID {
	if id == nil {
		return nil
	}
	u := id.UUID
	return &u
}

func memberArgs(m *domain.Member) []any {
	return []any{m.ID.UUID, groupUUIDPtr(m.GroupID), m.Name, m.BirthDate, m.Birthplace, m.PenLightColor1,
		m.PenLightColor2, m.Generation, m.IsGraduated, m.CreatedAt, m.UpdatedAt}
}

// writeImages replaces the stored image list of m.
func writeImages(ctx context.Context, tx db.DBTX, m *domain.Member) error {
	if _, err := tx.Exec(ctx, clearImagesSQL, m.ID.UUID); err != nil {
		return err
	}
	for i, img := range m.Images {
		if _, err := tx.Exec(ctx, insertImageSQL, m.ID.UUID, i, img.URL, img.IsPrimary); err != nil {
			return err
		}
	}
	return nil
}

// loadImages attaches images to members in one query.
func loadImages(ctx context.Context, q db.DBTX, members []*domain.Member) error {
	if len(members) == 0 {
		return nil
	}
	byID := make(map[uuid.UUID]*domain.Member, len(members))
	ids := make([]uuid.UUID, 0, len(members))
	for _, m := range members {
		byID[m.ID.UUID] = m
		ids = append(ids, m.ID.UUID)
	}
	rows, err := q.Query(ctx, imagesForSQL, ids)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var (
			memberID uuid.UUID
			img      domain.MemberImage
		)
		if err := rows.Scan(&memberID, &img.URL, &img.IsPrimary); err != nil {
			return err
		}
		if m := byID[memberID]; m != nil {
			m.Images = append(m.Images, img)
		}
	}
	return rows.Err()
}

func queryMembers(ctx context.Context, q db.DBTX, sql string, args ...any) ([]*domain.Member, error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	list, err := collect(rows, scanMember)
	if err != nil {
		return nil, err
	}
	return list, loadImages(ctx, q, list)
}

func (r *MemberRepository) Create(ctx context.Context, m *domain.Member) error {
	return db.Translate(db.InTx(ctx, r.pool, func(tx db.DBTX) error {
		if _, err := tx.Exec(ctx, insertMemberSQL, memberArgs(m)...); err != nil {
			return err
		}
		return writeImages(ctx, tx, m)
	}))
}

func (r *MemberRepository) Update(ctx context.Context, m *domain.Member) error {
	return db.Translate(db.InTx(ctx, r.pool, func(tx db.DBTX) error {
		_, err := tx.Exec(ctx, updateMemberSQL, m.ID.UUID, groupUUIDPtr(m.GroupID), m.Name, m.BirthDate, m.Birthplace,
			m.PenLightColor1, m.PenLightColor2, m.Generation, m.IsGraduated, m.UpdatedAt)
		if err != nil {
			return err
		}
		return writeImages(ctx, tx, m)
	}))
}

func (r *MemberRepository) GetByID(ctx context.Context, id domain.MemberID) (*domain.Member, error) {
	m, err := scanMember(r.pool.QueryRow(ctx, getMemberSQL, id.UUID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := loadImages(ctx, r.pool, []*domain.Member{m}); err != nil {
		return nil, err
	}
	return m, nil
}

func (r *MemberRepository) List(ctx context.Context, q ports.MemberQuery) ([]*domain.Member, int, error) {
	groupID := groupUUIDPtr(q.GroupID)
	var total int
	if err := r.pool.QueryRow(ctx, countMembersSQL, q.Search, groupID, q.Generation, q.Graduated).Scan(&total); err != nil {
		return nil, 0, err
	}
	list, err := queryMembers(ctx, r.pool, listMembersSQL, q.Search, groupID, q.Generation, q.Graduated, q.PageSize, q.Offset())
	return list, total, err
}

func (r *MemberRepository) ListByGroup(ctx context.Context, groupID domain.GroupID) ([]*domain.Member, error) {
	list, err := queryMembers(ctx, r.pool, membersByGroup, groupID.UUID)
	if list == nil && err == nil {
		list = []*domain.Member{}
	}
	return list, err
}

func (r *MemberRepository) NamesByID(ctx context.Context, ids []domain.MemberID) (map[domain.MemberID]string, error) {
	rows, err := r.pool.Query(ctx, memberNamesSQL, uuids(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make(map[domain.MemberID]string, len(ids))
	for rows.Next() {
		var (
			id   uuid.UUID
			name string
		)
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		out[domain.NewMemberID(id)] = name
	}
	return out, rows.Err()
}

func (r *MemberRepository) Delete(ctx context.Context, id domain.MemberID) (bool, error) {
	tag, err := r.pool.Exec(ctx, deleteMemberSQL, id.UUID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *MemberRepository) DeleteMany(ctx context.Context, ids []domain.MemberID) ([]domain.MemberID, error) {
	return deleteReturning(ctx, r.pool, deleteMembersSQL, uuids(ids), domain.NewMemberID)
}

var _ ports.MemberRepository = (*MemberRepository)(nil)
