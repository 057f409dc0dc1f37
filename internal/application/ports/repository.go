package ports

import (
	"context"

	"github.com/amirhosseinghanipour/idolbase/internal/domain"
)

// Repositories return (nil, nil) from GetByID when the row does not exist.
// Delete reports whether a row was removed; DeleteMany returns the ids that existed and were removed.

// GroupRepository defines persistence for groups.
type GroupRepository interface {
	Create(ctx context.Context, group *domain.Group) error
	Update(ctx context.Context, group *domain.Group) error
	GetByID(ctx context.Context, id domain.GroupID) (*domain.Group, error)
	List(ctx context.Context, q ListQuery) ([]*domain.Group, int, error)
	Delete(ctx context.Context, id domain.GroupID) (bool, error)
	DeleteMany(ctx context.Context, ids []domain.GroupID) ([]domain.GroupID, error)
}

// MemberQuery filters member lists.
type MemberQuery struct {
	ListQuery
	GroupID    *domain.GroupID
	Generation *int
	Graduated  *bool
}

// MemberRepository defines persistence for members and their images.
type MemberRepository interface {
	Create(ctx context.Context, member *domain.Member) error
	Update(ctx context.Context, member *domain.Member) error
	GetByID(ctx context.Context, id domain.MemberID) (*domain.Member, error)
	List(ctx context.Context, q MemberQuery) ([]*domain.Member, int, error)
	ListByGroup(ctx context.Context, groupID domain.GroupID) ([]*domain.Member, error)
	// NamesByID returns the names of the ids that exist; missing ids are absent from the map.
	NamesByID(ctx context.Context, ids []domain.MemberID) (map[domain.MemberID]string, error)
	Delete(ctx context.Context, id domain.MemberID) (bool, error)
	DeleteMany(ctx context.Context, ids []domain.MemberID) ([]domain.MemberID, error)
}

// SongQuery filters song lists.
type SongQuery struct {
	ListQuery
	GroupID *domain.GroupID
}

// SongRepository defines persistence for songs.
type SongRepository interface {
	Create(ctx context.Context, song *domain.Song) error
	Update(ctx context.Context, song *domain.Song) error
	GetByID(ctx context.Context, id domain.SongID) (*domain.Song, error)
	List(ctx context.Context, q SongQuery) ([]*domain.Song, int, error)
	// TitlesByID returns the titles of the ids that exist.
	TitlesByID(ctx context.Context, ids []domain.SongID) (map[domain.SongID]string, error)
	Delete(ctx context.Context, id domain.SongID) (bool, error)
	DeleteMany(ctx context.Context, ids []domain.SongID) ([]domain.SongID, error)
}

// FormationQuery filters formation lists.
type FormationQuery struct {
	ListQuery
	GroupID *domain.GroupID
}

// FormationRepository defines persistence for formations. Update replaces all positions.
type FormationRepository interface {
	Create(ctx context.Context, formation *domain.Formation) error
	Update(ctx context.Context, formation *domain.Formation) error
	GetByID(ctx context.Context, id domain.FormationID) (*domain.Formation, error)
	List(ctx context.Context, q FormationQuery) ([]*domain.Formation, int, error)
	Delete(ctx context.Context, id domain.FormationID) (bool, error)
	DeleteMany(ctx context.Context, ids []domain.FormationID) ([]domain.FormationID, error)
}

// SetlistQuery filters setlist lists.
type SetlistQuery struct {
	ListQuery
	GroupID *domain.GroupID
}

// SetlistRepository defines persistence for setlists. Update replaces all items and participants.
type SetlistRepository interface {
	Create(ctx context.Context, setlist *domain.Setlist) error
	Update(ctx context.Context, setlist *domain.Setlist) error
	GetByID(ctx context.Context, id domain.SetlistID) (*domain.Setlist, error)
	List(ctx context.Context, q SetlistQuery) ([]*domain.Setlist, int, error)
	Delete(ctx context.Context, id domain.SetlistID) (bool, error)
	DeleteMany(ctx context.Context, ids []domain.SetlistID) ([]domain.SetlistID, error)
}

// ConversationQuery filters conversation lists.
type ConversationQuery struct {
	ListQuery
	MemberID *domain.MemberID
}

// ConversationRepository defines persistence for conversations. Update replaces all messages.
type ConversationRepository interface {
	Create(ctx context.Context, conversation *domain.Conversation) error
	Update(ctx context.Context, conversation *domain.Conversation) error
	GetByID(ctx context.Context, id domain.ConversationID) (*domain.Conversation, error)
	List(ctx context.Context, q ConversationQuery) ([]*domain.Conversation, int, error)
	Delete(ctx context.Context, id domain.ConversationID) (bool, error)
	DeleteMany(ctx context.Context, ids []domain.ConversationID) ([]domain.ConversationID, error)
}

// ImportMode selects how a snapshot is applied.
type ImportMode string

const (
	// ImportReplace wipes groups, members, songs, formations and setlists before inserting.
	ImportReplace ImportMode = "replace"
	// ImportMerge upserts by id and keeps rows absent from the snapshot.
	ImportMerge ImportMode = "merge"
)

// SnapshotStore reads and writes the exportable content set in one transaction.
type SnapshotStore interface {
	LoadSnapshot(ctx context.Context) (*domain.Snapshot, error)
	ImportSnapshot(ctx context.Context, snapshot *domain.Snapshot, mode ImportMode) error
}
