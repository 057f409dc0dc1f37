package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/amirhosseinghanipour/idolbase/internal/application/member"
	"github.com/amirhosseinghanipour/idolbase/internal/application/ports"
	"github.com/amirhosseinghanipour/idolbase/internal/domain"
)

const resourceMembers = "members"

// MembersHandler handles /api/members.
type MembersHandler struct {
	create     *member.CreateMember
	update     *member.UpdateMember
	delete     *member.DeleteMember
	bulkDelete *member.BulkDeleteMembers
	get        *member.GetMember
	list       *member.ListMembers
	audit      *Auditor
	validate   *validator.Validate
	log        zerolog.Logger
}

// NewMembersHandler creates a handler for member endpoints.
func NewMembersHandler(members ports.MemberRepository, groups ports.GroupRepository, audit *Auditor, log zerolog.Logger) *MembersHandler {
	return &MembersHandler{
		create:     member.NewCreateMember(members, groups),
		update:     member.NewUpdateMember(members, groups),
		delete:     member.NewDeleteMember(members),
		bulkDelete: member.NewBulkDeleteMembers(members),
		get:        member.NewGetMember(members),
		list:       member.NewListMembers(members),
		audit:      audit,
		validate:   newValidator(),
		log:        log,
	}
}

type memberImageRequest struct {
	URL       string `json:"url" validate:"required,max=2048"`
	IsPrimary bool   `json:"isPrimary"`
}

type memberRequest struct {
	Name           string               `json:"name" validate:"required,max=100"`
	BirthDate      string               `json:"birthDate" validate:"required,datetime=2006-01-02"`
	Birthplace     *string              `json:"birthplace" validate:"omitempty,max=100"`
	PenLightColor1 *string              `json:"penLightColor1" validate:"omitempty,max=50"`
	PenLightColor2 *string              `json:"penLightColor2" validate:"omitempty,max=50"`
	Generation     *int                 `json:"generation" validate:"omitempty,min=1"`
	IsGraduated    bool                 `json:"isGraduated"`
	GroupID        *string              `json:"groupId" validate:"omitempty,uuid"`
	Images         []memberImageRequest `json:"images" validate:"dive"`
}

func (h *MembersHandler) decode(w http.ResponseWriter, r *http.Request) (domain.MemberParams, error) {
	var body memberRequest
	if err := decodeJSON(w, r, h.validate, &body); err != nil {
		return domain.MemberParams{}, err
	}
	var d dates
	p := domain.MemberParams{
		Name:           body.Name,
		BirthDate:      d.required("birthDate", body.BirthDate),
		Birthplace:     body.Birthplace,
		PenLightColor1: body.PenLightColor1,
		PenLightColor2: body.PenLightColor2,
		Generation:     body.Generation,
		IsGraduated:    body.IsGraduated,
		Images:         make([]domain.MemberImage, 0, len(body.Images)),
	}
	if body.GroupID != nil && *body.GroupID != "" {
		gid := domain.NewGroupID(parseUUID(*body.GroupID))
		p.GroupID = &gid
	}
	for _, img := range body.Images {
		p.Images = append(p.Images, domain.MemberImage{URL: img.URL, IsPrimary: img.IsPrimary})
	}
	return p, d.err()
}

// List returns a page of members, optionally filtered by group, generation or graduation.
func (h *MembersHandler) List(w http.ResponseWriter, r *http.Request) {
	lq, err := listQuery(r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	q := ports.MemberQuery{ListQuery: lq}
	if q.GroupID, err = groupFilter(r); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if q.Generation, err = queryInt(r, "generation"); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if q.Graduated, err = queryBool(r, "graduated"); err != nil {
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

// Get returns one member with images.
func (h *MembersHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	out, err := h.get.Execute(r.Context(), domain.NewMemberID(id))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// Create adds a member.
func (h *MembersHandler) Create(w http.ResponseWriter, r *http.Request) {
	p, err := h.decode(w, r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	out, err := h.create.Execute(r.Context(), member.CreateMemberInput{MemberParams: p})
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	h.audit.Record(r, resourceMembers, "created", out.ID)
	writeJSON(w, http.StatusCreated, out)
}

// Update replaces a member's fields and images.
func (h *MembersHandler) Update(w http.ResponseWriter, r *http.Request) {
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
	out, err := h.update.Execute(r.Context(), member.UpdateMemberInput{ID: domain.NewMemberID(id), MemberParams: p})
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	h.audit.Record(r, resourceMembers, "updated", out.ID)
	writeJSON(w, http.StatusOK, out)
}

// Delete removes a member from every formation and setlist.
func (h *MembersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if err := h.delete.Execute(r.Context(), domain.NewMemberID(id)); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	h.audit.Record(r, resourceMembers, "deleted", id.String())
	w.WriteHeader(http.StatusNoContent)
}

// BulkDelete removes every listed member that exists.
func (h *MembersHandler) BulkDelete(w http.ResponseWriter, r *http.Request) {
	var body bulkDeleteRequest
	if err := decodeJSON(w, r, h.validate, &body); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	out, err := h.bulkDelete.Execute(r.Context(), convertIDs(body.uuids(), domain.NewMemberID))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if out.DeletedCount > 0 {
		h.audit.Record(r, resourceMembers, "bulk_deleted", out.DeletedIDs...)
	}
	writeJSON(w, http.StatusOK, out)
}
