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

// FormationRepository implements ports.FormationRepository. Positions are rewritten on every save.
type FormationRepository struct {
	pool db.Pool
}

func NewFormationRepository(pool db.Pool) *FormationRepository {
	return &FormationRepository{pool: pool}
}

const (
	formationColumns   = `id, group_id, name, created_at, updated_at`
	insertFormationSQL = `INSERT INTO formations (` + formationColumns + `) VALUES ($1, $2, $3, $4, $5)`
	updateFormationSQL = `UPDATE formations SET group_id = $2, name = $3, updated_at = $4 WHERE id = $1`
	upsertFormationSQL = insertFormationSQL + ` ON CONFLICT (id) DO UPDATE SET group_id = EXCLUDED.group_id, name = EXCLUDED.name, created_at = EXCLUDED.created_at, updated_at = EXCLUDED.updated_at`
	getFormationSQL    = `SELECT ` + formationColumns + ` FROM formations WHERE id = $1`
	formationFilter    = ` WHERE ($1 = '' OR strpos(lower(name), lower($1)) > 0) AND ($2::uuid IS NULL OR group_id = $2)`
	countFormations    = `SELECT COUNT(*) FROM formations` + formationFilter
	listFormationsSQL  = `SELECT ` + formationColumns + ` FROM formations` + formationFilter + ` ORDER BY name, id LIMIT $3 OFFSET $4`
	allFormationsSQL   = `SELECT ` + formationColumns + ` FROM formations ORDER BY name, id`
	deleteFormationSQL = `DELETE FROM formations WHERE id = $1`
	deleteFormations   = `DELETE FROM formations WHERE id = ANY($1) RETURNING id`
	pruneFormations    = `DELETE FROM formations WHERE NOT (id = ANY($1))`

	insertPositionSQL = `INSERT INTO formation_positions (formation_id, member_id, position_number, row_number, column_number) VALUES ($1, $2, $3, $4, $5)`
	clearPositionsSQL = `DELETE FROM formation_positions WHERE formation_id = $1`
	positionsForSQL   = `SELECT formation_id, member_id, position_number, row_number, column_number FROM formation_positions WHERE formation_id = ANY($1) ORDER BY formation_id, position_number`
)

func scanFormation(row pgx.Row) (*domain.Formation, error) {
	var (
		f       domain.Formation
		id      uuid.UUID
		groupID uuid.UUID
	)
	if err := row.Scan(&id, &groupID, &f.Name, &f.CreatedAt, &f.UpdatedAt); err != nil {
		return nil, err
	}
	f.ID = domain.NewFormationID(id)
	f.GroupID = domain.NewGroupID(groupID)
	f.CreatedAt = f.CreatedAt.UTC()
	f.UpdatedAt = f.UpdatedAt.UTC()
	f.Positions = []domain.FormationPosition{}
	return &f, nil
}

// writePositions clears and reinserts the positions of f.
func writePositions(ctx context.Context, tx db.DBTX, f *domain.Formation) error {
	if _, err := tx.Exec(ctx, clearPositionsSQL, f.ID.UUID); err != nil {
		return err
	}
	for _, p := range f.Positions {
		if _, err := tx.Exec(ctx, insertPositionSQL, f.ID.UUID, p.MemberID.UUID, p.PositionNumber, p.Row, p.Column); err != nil {
			return err
		}
	}
	return nil
}

func loadPositions(ctx context.Context, q db.DBTX, formations []*domain.Formation) error {
	if len(formations) == 0 {
		return nil
	}
	byID := make(map[uuid.UUID]*domain.Formation, len(formations))
	ids := make([]uuid.UUID, 0, len(formations))
	for _, f := range formations {
		byID[f.ID.UUID] = f
		ids = append(ids, f.ID.UUID)
	}
	rows, err := q.Query(ctx, positionsForSQL, ids)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var (
			formationID, memberID uuid.UUID
			p                     domain.FormationPosition
		)
		if err := rows.Scan(&formationID, &memberID, &p.PositionNumber, &p.Row, &p.Column); err != nil {
			return err
		}
		p.MemberID = domain.NewMemberID(memberID)
		if f := byID[formationID]; f != nil {
			f.Positions = append(f.Positions, p)
		}
	}
	return rows.Err()
}

func queryFormations(ctx context.Context, q db.DBTX, sql string, args ...any) ([]*domain.Formation, error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	list, err := collect(rows, scanFormation)
	if err != nil {
		return nil, err
	}
	return list, loadPositions(ctx, q, list)
}

func (r *FormationRepository) Create(ctx context.Context, f *domain.Formation) error {
	return db.Translate(db.InTx(ctx, r.pool, func(tx db.DBTX) error {
		if _, err := tx.Exec(ctx, insertFormationSQL, f.ID.UUID, f.GroupID.UUID, f.Name, f.CreatedAt, f.UpdatedAt); err != nil {
			return err
		}
		return writePositions(ctx, tx, f)
	}))
}

func (r *FormationRepository) Update(ctx context.Context, f *domain.Formation) error {
	return db.Translate(db.InTx(ctx, r.pool, func(tx db.DBTX) error {
		if _, err := tx.Exec(ctx, updateFormationSQL, f.ID.UUID, f.GroupID.UUID, f.Name, f.UpdatedAt); err != nil {
			return err
		}
		return writePositions(ctx, tx, f)
	}))
}

func (r *FormationRepository) GetByID(ctx context.Context, id domain.FormationID) (*domain.Formation, error) {
	f, err := scanFormation(r.pool.QueryRow(ctx, getFormationSQL, id.UUID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := loadPositions(ctx, r.pool, []*domain.Formation{f}); err != nil {
		return nil, err
	}
	return f, nil
}

func (r *FormationRepository) List(ctx context.Context, q ports.FormationQuery) ([]*domain.Formation, int, error) {
	groupID := groupUUIDPtr(q.GroupID)
	var total int
	if err := r.pool.QueryRow(ctx, countFormations, q.Search, groupID).Scan(&total); err != nil {
		return nil, 0, err
	}
	list, err := queryFormations(ctx, r.pool, listFormationsSQL, q.Search, groupID, q.PageSize, q.Offset())
	return list, total, err
}

func (r *FormationRepository) Delete(ctx context.Context, id domain.FormationID) (bool, error) {
	tag, err := r.pool.Exec(ctx, deleteFormationSQL, id.UUID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *FormationRepository) DeleteMany(ctx context.Context, ids []domain.FormationID) ([]domain.FormationID, error) {
	return deleteReturning(ctx, r.pool, deleteFormations, uuids(ids), domain.NewFormationID)
}

var _ ports.FormationRepository = (*FormationRepository)(nil)
