package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/amirhosseinghanipour/idolbase/internal/application/ports"
	"github.com/amirhosseinghanipour/idolbase/internal/application/setlist"
	"github.com/amirhosseinghanipour/idolbase/internal/domain"
)

const resourceSetlists = "setlists"

// SetlistsHandler handles /api/setlists.
type SetlistsHandler struct {
	create     *setlist.CreateSetlist
	update     *setlist.UpdateSetlist
	delete     *setlist.DeleteSetlist
	bulkDelete *setlist.BulkDeleteSetlists
	get        *setlist.GetSetlist
	list       *setlist.ListSetlists
	audit      *Auditor
	validate   *validator.Validate
	log        zerolog.Logger
}

// NewSetlistsHandler creates a handler for setlist endpoints.
func NewSetlistsHandler(setlists ports.SetlistRepository, groups ports.GroupRepository, songs ports.SongRepository, members ports.MemberRepository, audit *Auditor, log zerolog.Logger) *SetlistsHandler {
	return &SetlistsHandler{
		create:     setlist.NewCreateSetlist(setlists, groups, songs, members),
		update:     setlist.NewUpdateSetlist(setlists, groups, songs, members),
		delete:     setlist.NewDeleteSetlist(setlists),
		bulkDelete: setlist.NewBulkDeleteSetlists(setlists),
		get:        setlist.NewGetSetlist(setlists, songs, members),
		list:       setlist.NewListSetlists(setlists, songs, members),
		audit:      audit,
		validate:   newValidator(),
		log:        log,
	}
}

type setlistItemRequest struct {
	SongID               string   `json:"songId" validate:"required,uuid"`
	Order                int      `json:"order" validate:"min=1"`
	CenterMemberID       *string  `json:"centerMemberId" validate:"omitempty,uuid"`
	ParticipantMemberIDs []string `json:"participantMemberIds" validate:"dive,uuid"`
}

type setlistRequest struct {
	Name      string               `json:"name" validate:"required,max=200"`
	GroupID   string               `json:"groupId" validate:"required,uuid"`
	EventDate *string              `json:"eventDate" validate:"omitempty,datetime=2006-01-02"`
	Items     []setlistItemRequest `json:"items" validate:"dive"`
}

func (h *SetlistsHandler) decode(w http.ResponseWriter, r *http.Request) (domain.SetlistParams, error) {
	var body setlistRequest
	if err := decodeJSON(w, r, h.validate, &body); err != nil {
		return domain.SetlistParams{}, err
	}
	var d dates
	p := domain.SetlistParams{
		GroupID:   domain.NewGroupID(parseUUID(body.GroupID)),
		Name:      body.Name,
		EventDate: d.optional("eventDate", body.EventDate),
		Items:     make([]domain.SetlistItem, 0, len(body.Items)),
	}
	for _, it := range body.Items {
		item := domain.SetlistItem{
			SongID:         domain.NewSongID(parseUUID(it.SongID)),
			Order:          it.Order,
			ParticipantIDs: make([]domain.MemberID, 0, len(it.ParticipantMemberIDs)),
		}
		if it.CenterMemberID != nil && *it.CenterMemberID != "" {
			center := domain.NewMemberID(parseUUID(*it.CenterMemberID))
			item.CenterMemberID = &center
		}
		for _, m := range it.ParticipantMemberIDs {
			item.ParticipantIDs = append(item.ParticipantIDs, domain.NewMemberID(parseUUID(m)))
		}
		p.Items = append(p.Items, item)
	}
	return p, d.err()
}

// List returns a page of setlists, latest event first.
func (h *SetlistsHandler) List(w http.ResponseWriter, r *http.Request) {
	lq, err := listQuery(r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	q := ports.SetlistQuery{ListQuery: lq}
	if q.GroupID, err = groupFilter(r); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	out, err := h.list.Execute(r.Context(), q)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// Get returns one setlist with items, song titles and member names.
func (h *SetlistsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	out, err := h.get.Execute(r.Context(), domain.NewSetlistID(id))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// Create adds a setlist.
func (h *SetlistsHandler) Create(w http.ResponseWriter, r *http.Request) {
	p, err := h.decode(w, r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	out, err := h.create.Execute(r.Context(), p)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	h.audit.Record(r, resourceSetlists, "created", out.ID)
	writeJSON(w, http.StatusCreated, out)
}

// Update replaces a setlist's fields and all of its items.
func (h *SetlistsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	p, err := h.decode(w, r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	out, err := h.update.Execute(r.Context(), setlist.UpdateSetlistInput{ID: domain.NewSetlistID(id), SetlistParams: p})
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	h.audit.Record(r, resourceSetlists, "updated", out.ID)
	writeJSON(w, http.StatusOK, out)
}

// Delete removes a setlist.
func (h *SetlistsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if err := h.delete.Execute(r.Context(), domain.NewSetlistID(id)); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	h.audit.Record(r, resourceSetlists, "deleted", id.String())
	w.WriteHeader(http.StatusNoContent)
}

// BulkDelete removes every listed setlist that exists.
func (h *SetlistsHandler) BulkDelete(w http.ResponseWriter, r *http.Request) {
	var body bulkDeleteRequest
	if err := decodeJSON(w, r, h.validate, &body); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	out, err := h.bulkDelete.Execute(r.Context(), convertIDs(body.uuids(), domain.NewSetlistID))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if out.DeletedCount > 0 {
		h.audit.Record(r, resourceSetlists, "bulk_deleted", out.DeletedIDs...)
	}
	writeJSON(w, http.StatusOK, out)
}
