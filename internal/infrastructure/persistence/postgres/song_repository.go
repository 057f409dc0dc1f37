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

// SongRepository implements ports.SongRepository.
type SongRepository struct {
	pool db.Pool
}

func NewSongRepository(pool db.Pool) *SongRepository {
	return &SongRepository{pool: pool}
}

const (
	songColumns   = `id, group_id, title, lyricist, composer, arranger, release_date, created_at, updated_at`
	insertSongSQL = `INSERT INTO songs (` + songColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	updateSongSQL = `UPDATE songs SET group_id = $2, title = $3, lyricist = $4, composer = $5, arranger = $6, release_date = $7, updated_at = $8 WHERE id = $1`
	upsertSongSQL = insertSongSQL + ` ON CONFLICT (id) DO UPDATE SET group_id = EXCLUDED.group_id, title = EXCLUDED.title, lyricist = EXCLUDED.lyricist, composer = EXCLUDED.composer, arranger = EXCLUDED.arranger, release_date = EXCLUDED.release_date, created_at = EXCLUDED.created_at, updated_at = EXCLUDED.updated_at`
	getSongSQL    = `SELECT ` + songColumns + ` FROM songs WHERE id = $1`
	songFilter    = ` WHERE ($1 = '' OR strpos(lower(title), lower($1)) > 0) AND ($2::uuid IS NULL OR group_id = $2)`
	countSongsSQL = `SELECT COUNT(*) FROM songs` + songFilter
	listSongsSQL  = `SELECT ` + songColumns + ` FROM songs` + songFilter + ` ORDER BY release_date DESC NULLS LAST, title, id LIMIT $3 OFFSET $4`
	allSongsSQL   = `SELECT ` + songColumns + ` FROM songs ORDER BY title, id`
	songTitlesSQL = `SELECT id, title FROM songs WHERE id = ANY($1)`
	deleteSongSQL = `DELETE FROM songs WHERE id = $1`
	deleteSongs   = `DELETE FROM songs WHERE id = ANY($1) RETURNING id`
	pruneSongsSQL = `DELETE FROM songs WHERE NOT (id = ANY($1))`
)

func scanSong(row pgx.Row) (*domain.Song, error) {
	var (
		s       domain.Song
		id      uuid.UUID
		groupID uuid.UUID
	)
	err := row.Scan(&id, &groupID, &s.Title, &s.Lyricist, &s.Composer, &s.Arranger, &s.ReleaseDate, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	s.ID = domain.NewSongID(id)
	s.GroupID = domain.NewGroupID(groupID)
	s.ReleaseDate = utcDate(s.ReleaseDate)
	s.CreatedAt = s.CreatedAt.UTC()
	s.UpdatedAt = s.UpdatedAt.UTC()
	return &s, nil
}

func songArgs(s *domain.Song) []any {
	return []any{s.ID.UUID, s.GroupID.UUID, s.Title, s.Lyricist, s.Composer, s.Arranger, s.ReleaseDate, s.CreatedAt, s.UpdatedAt}
}

func (r *SongRepository) Create(ctx context.Context, s *domain.Song) error {
	_, err := r.pool.Exec(ctx, insertSongSQL, songArgs(s)...)
	return db.Translate(err)
}

func (r *SongRepository) Update(ctx context.Context, s *domain.Song) error {
	_, err := r.pool.Exec(ctx, updateSongSQL, s.ID.UUID, s.GroupID.UUID, s.Title, s.Lyricist, s.Composer, s.Arranger, s.ReleaseDate, s.UpdatedAt)
	return db.Translate(err)
}

func (r *SongRepository) GetByID(ctx context.Context, id domain.SongID) (*domain.Song, error) {
	s, err := scanSong(r.pool.QueryRow(ctx, getSongSQL, id.UUID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return s, err
}

func (r *SongRepository) List(ctx context.Context, q ports.SongQuery) ([]*domain.Song, int, error) {
	groupID := groupUUIDPtr(q.GroupID)
	var total int
	if err := r.pool.QueryRow(ctx, countSongsSQL, q.Search, groupID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, listSongsSQL, q.Search, groupID, q.PageSize, q.Offset())
	if err != nil {
		return nil, 0, err
	}
	list, err := collect(rows, scanSong)
	return list, total, err
}

func (r *SongRepository) TitlesByID(ctx context.Context, ids []domain.SongID) (map[domain.SongID]string, error) {
	rows, err := r.pool.Query(ctx, songTitlesSQL, uuids(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make(map[domain.SongID]string, len(ids))
	for rows.Next() {
		var (
			id    uuid.UUID
			title string
		)
		if err := rows.Scan(&id, &title); err != nil {
			return nil, err
		}
		out[domain.NewSongID(id)] = title
	}
	return out, rows.Err()
}

func (r *SongRepository) Delete(ctx context.Context, id domain.SongID) (bool, error) {
	tag, err := r.pool.Exec(ctx, deleteSongSQL, id.UUID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *SongRepository) DeleteMany(ctx context.Context, ids []domain.SongID) ([]domain.SongID, error) {
	return deleteReturning(ctx, r.pool, deleteSongs, uuids(ids), domain.NewSongID)
}

var _ ports.SongRepository = (*SongRepository)(nil)
