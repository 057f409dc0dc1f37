package domain

import "github.com/google/uuid"

// GroupID is a value object for group identity.
type GroupID struct{ uuid.UUID }

// NewGroupID creates a new GroupID from uuid.
func NewGroupID(id uuid.UUID) GroupID { return GroupID{UUID: id} }

// String returns the canonical string form.
func (g GroupID) String() string { return g.UUID.String() }

// MemberID is a value object for member identity.
type MemberID struct{ uuid.UUID }

// NewMemberID creates a new MemberID from uuid.
func NewMemberID(id uuid.UUID) MemberID { return MemberID{UUID: id} }

// String returns the canonical string form.
func (m MemberID) String() string { return m.UUID.String() }

// SongID is a value object for song identity.
type SongID struct{ uuid.UUID }

// NewSongID creates a new SongID from uuid.
func NewSongID(id uuid.UUID) SongID { return SongID{UUID: id} }

// String returns the canonical string form.
func (s SongID) String() string { return s.UUID.String() }

// FormationID is a value object for formation identity.
type FormationID struct{ uuid.UUID }

// NewFormationID creates a new FormationID from uuid.
func NewFormationID(id uuid.UUID) FormationID { return FormationID{UUID: id} }

// String returns the canonical string form.
func (f FormationID) String() string { return f.UUID.String() }

// SetlistID is a value object for setlist identity.
type SetlistID struct{ uuid.UUID }

// NewSetlistID creates a new SetlistID from uuid.
func NewSetlistID(id uuid.UUID) SetlistID { return SetlistID{UUID: id} }

// String returns the canonical string form.
func (s SetlistID) String() string { return s.UUID.String() }

// ConversationID is a value object for conversation identity.
type ConversationID struct{ uuid.UUID }

// NewConversationID creates a new ConversationID from uuid.
func NewConversationID(id uuid.UUID) ConversationID { return ConversationID{UUID: id} }

// String returns the canonical string form.
func (c ConversationID) String() string { return c.UUID.String() }
