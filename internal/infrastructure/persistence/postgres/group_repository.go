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

// GroupRepository implements ports.GroupRepository.
type GroupRepository struct {
	pool db.Pool
}

func NewGroupRepository(pool db.Pool) *GroupRepository {
	return &GroupRepository{pool: pool}
}

const (
	groupColumns   = `id, name, debut_date, has_generation, created_at, updated_at`
	insertGroupSQL = `INSERT INTO groups (id, name, debut_date, has_generation, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6)`
	updateGroupSQL = `UPDATE groups SET name = $2, debut_date = $3, has_generation = $4, updated_at = $5 WHERE id = $1`

	upsertGroupSQL = insertGroupSQL + ` ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, debut_date = EXCLUDED.debut_date,
		has_generation = EXCLUDED.has_generation, created_at = EXCLUDED.created_at, updated_at = EXCLUDED.updated_at`

	getGroupSQL     = `SELECT ` + groupColumns + ` FROM groups WHERE id = $1`
	countGroupsSQL  = `SELECT COUNT(*) FROM groups WHERE ($1 = '' OR strpos(lower(name), lower($1)) > 0)`
	listGroupsSQL   = `SELECT ` + groupColumns + ` FROM groups WHERE ($1 = '' OR strpos(lower(name), lower($1)) > 0) ORDER BY name, id LIMIT $2 OFFSET $3`
	allGroupsSQL    = `SELECT ` + groupColumns + ` FROM groups ORDER BY name, id`
	deleteGroupSQL  = `DELETE FROM groups WHERE id = $1`
	deleteGroupsSQL = `DELETE FROM groups WHERE id = ANY($1) RETURNING id`
	pruneGroupsSQL  = `DELETE FROM groups WHERE NOT (id = ANY($1))`
)

func scanGroup(row pgx.Row) (*domain.Group, error) {
	var (
		g     domain.Group
		id    uuid.UUID
		debut *time.Time
	)
	if err := row.Scan(&id, &g.Name, &debut, &g.HasGeneration, &g.CreatedAt, &g.UpdatedAt); err != nil {
		return nil, err
	}
	g.ID = domain.NewGroupID(id)
	g.DebutDate = utcDate(debut)
	g.CreatedAt = g.CreatedAt.UTC()
	g.UpdatedAt = g.UpdatedAt.UTC()
	return &g, nil
}

func groupArgs(g *domain.Group) []any {
	return []any{g.ID.UUID, g.Name, g.DebutDate, g.HasGeneration, g.CreatedAt, g.UpdatedAt}
}

func (r *GroupRepository) Create(ctx context.Context, g *domain.Group) error {
	_, err := r.pool.Exec(ctx, insertGroupSQL, groupArgs(g)...)
	return db.Translate(err)
}

func (r *GroupRepository) Update(ctx context.Context, g *domain.Group) error {
	_, err := r.pool.Exec(ctx, updateGroupSQL, g.ID.UUID, g.Name, g.DebutDate, g.HasGeneration, g.UpdatedAt)
	return db.Translate(err)
}

func (r *GroupRepository) GetByID(ctx context.Context, id domain.GroupID) (*domain.Group, error) {
	g, err := scanGroup(r.pool.QueryRow(ctx, getGroupSQL, id.UUID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return g, err
}

func (r *GroupRepository) List(ctx context.Context, q ports.ListQuery) ([]*domain.Group, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, countGroupsSQL, q.Search).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, listGroupsSQL, q.Search, q.PageSize, q.Offset())
	if err != nil {
		return nil, 0, err
	}
	list, err := collect(rows, scanGroup)
	return list, total, err
}

func (r *GroupRepository) Delete(ctx context.Context, id domain.GroupID) (bool, error) {
	tag, err := r.pool.Exec(ctx, deleteGroupSQL, id.UUID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *GroupRepository) DeleteMany(ctx context.Context, ids []domain.GroupID) ([]domain.GroupID, error) {
	return deleteReturning(ctx, r.pool, deleteGroupsSQL, uuids(ids), domain.NewGroupID)
}

var _ ports.GroupRepository = (*GroupRepository)(nil)
