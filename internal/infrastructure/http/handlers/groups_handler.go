package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/amirhosseinghanipour/idolbase/internal/application/group"
	"github.com/amirhosseinghanipour/idolbase/internal/application/ports"
	"github.com/amirhosseinghanipour/idolbase/internal/domain"
)

const resourceGroups = "groups"

// GroupsHandler handles /api/groups.
type GroupsHandler struct {
	create     *group.CreateGroup
	update     *group.UpdateGroup
	delete     *group.DeleteGroup
	bulkDelete *group.BulkDeleteGroups
	get        *group.GetGroup
	list       *group.ListGroups
	audit      *Auditor
	validate   *validator.Validate
	log        zerolog.Logger
}

// NewGroupsHandler creates a handler for group endpoints.
func NewGroupsHandler(groups ports.GroupRepository, members ports.MemberRepository, audit *Auditor, log zerolog.Logger) *GroupsHandler {
	return &GroupsHandler{
		create:     group.NewCreateGroup(groups),
		update:     group.NewUpdateGroup(groups),
		delete:     group.NewDeleteGroup(groups),
		bulkDelete: group.NewBulkDeleteGroups(groups),
		get:        group.NewGetGroup(groups, members),
		list:       group.NewListGroups(groups),
		audit:      audit,
		validate:   newValidator(),
		log:        log,
	}
}

type groupRequest struct {
	Name          string  `json:"name" validate:"required,max=100"`
	DebutDate     *string `json:"debutDate" validate:"omitempty,datetime=2006-01-02"`
	HasGeneration bool    `json:"hasGeneration"`
}

func (h *GroupsHandler) decode(w http.ResponseWriter, r *http.Request) (group.CreateGroupInput, error) {
	var body groupRequest
	if err := decodeJSON(w, r, h.validate, &body); err != nil {
		return group.CreateGroupInput{}, err
	}
	var d dates
	in := group.CreateGroupInput{
		Name:          body.Name,
		DebutDate:     d.optional("debutDate", body.DebutDate),
		HasGeneration: body.HasGeneration,
	}
	return in, d.err()
}

// List returns a page of groups.
func (h *GroupsHandler) List(w http.ResponseWriter, r *http.Request) {
	q, err := listQuery(r)
	if err != nil {
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

// Get returns a group with its members.
func (h *GroupsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	out, err := h.get.Execute(r.Context(), domain.NewGroupID(id))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// Create adds a group.
func (h *GroupsHandler) Create(w http.ResponseWriter, r *http.Request) {
	in, err := h.decode(w, r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	out, err := h.create.Execute(r.Context(), in)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	h.audit.Record(r, resourceGroups, "created", out.ID)
	writeJSON(w, http.StatusCreated, out)
}

// Update replaces a group's fields.
func (h *GroupsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	in, err := h.decode(w, r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	out, err := h.update.Execute(r.Context(), group.UpdateGroupInput{
		ID:            domain.NewGroupID(id),
		Name:          in.Name,
		DebutDate:     in.DebutDate,
		HasGeneration: in.HasGeneration,
	})
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	h.audit.Record(r, resourceGroups, "updated", out.ID)
	writeJSON(w, http.StatusOK, out)
}

// Delete removes a group. Its members stay, detached.
func (h *GroupsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if err := h.delete.Execute(r.Context(), domain.NewGroupID(id)); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	h.audit.Record(r, resourceGroups, "deleted", id.String())
	w.WriteHeader(http.StatusNoContent)
}

// BulkDelete removes every listed group that exists.
func (h *GroupsHandler) BulkDelete(w http.ResponseWriter, r *http.Request) {
	var body bulkDeleteRequest
	if err := decodeJSON(w, r, h.validate, &body); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	out, err := h.bulkDelete.Execute(r.Context(), convertIDs(body.uuids(), domain.NewGroupID))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if out.DeletedCount > 0 {
		h.audit.Record(r, resourceGroups, "bulk_deleted", out.DeletedIDs...)
	}
	writeJSON(w, http.StatusOK, out)
}
