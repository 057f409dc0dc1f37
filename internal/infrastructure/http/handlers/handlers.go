// Package handlers adapts HTTP requests to the application use cases and renders their results.
package handlers

import (
	"github.com/rs/zerolog"

	"github.com/amirhosseinghanipour/idolbase/internal/application/ports"
)

// Repositories is the persistence a content API needs. Both the PostgreSQL and the in-memory store provide it.
type Repositories struct {
	Groups        ports.GroupRepository
	Members       ports.MemberRepository
	Songs         ports.SongRepository
	Formations    ports.FormationRepository
	Setlists      ports.SetlistRepository
	Conversations ports.ConversationRepository
	Snapshots     ports.SnapshotStore
}

// Content groups the resource handlers mounted under /api.
type Content struct {
	Groups        *GroupsHandler
	Members       *MembersHandler
	Songs         *SongsHandler
	Formations    *FormationsHandler
	Setlists      *SetlistsHandler
	Conversations *ConversationsHandler
	Data          *DataHandler
}

// NewContent builds every resource handler over repos. emitter may be nil.
func NewContent(repos Repositories, emitter ports.WebhookEmitter, log zerolog.Logger) *Content {
	audit := NewAuditor(log, emitter)
	return &Content{
		Groups:        NewGroupsHandler(repos.Groups, repos.Members, audit, log),
		Members:       NewMembersHandler(repos.Members, repos.Groups, audit, log),
		Songs:         NewSongsHandler(repos.Songs, repos.Groups, audit, log),
		Formations:    NewFormationsHandler(repos.Formations, repos.Groups, repos.Members, audit, log),
		Setlists:      NewSetlistsHandler(repos.Setlists, repos.Groups, repos.Songs, repos.Members, audit, log),
		Conversations: NewConversationsHandler(repos.Conversations, repos.Members, audit, log),
		Data:          NewDataHandler(repos.Snapshots, audit, log),
	}
}
