package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/amirhosseinghanipour/idolbase/internal/application/formation"
	"github.com/amirhosseinghanipour/idolbase/internal/application/ports"
	"github.com/amirhosseinghanipour/idolbase/internal/domain"
)

const resourceFormations = "formations"

// FormationsHandler handles /api/formations.
type FormationsHandler struct {
	create     *formation.CreateFormation
	update     *formation.UpdateFormation
	delete     *formation.DeleteFormation
	bulkDelete *formation.BulkDeleteFormations
	get        *formation.GetFormation
	list       *formation.ListFormations
	audit      *Auditor
	validate   *validator.Validate
	log        zerolog.Logger
}

// NewFormationsHandler creates a handler for formation endpoints.
func NewFormationsHandler(formations ports.FormationRepository, groups ports.GroupRepository, members ports.MemberRepository, audit *Auditor, log zerolog.Logger) *FormationsHandler {
	return &FormationsHandler{
		create:     formation.NewCreateFormation(formations, groups, members),
		update:     formation.NewUpdateFormation(formations, groups, members),
		delete:     formation.NewDeleteFormation(formations),
		bulkDelete: formation.NewBulkDeleteFormations(formations),
		get:        formation.NewGetFormation(formations, members),
		list:       formation.NewListFormations(formations, members),
		audit:      audit,
		validate:   newValidator(),
		log:        log,
	}
}

type positionRequest struct {
	MemberID       string `json:"memberId" validate:"required,uuid"`
	PositionNumber int    `json:"positionNumber" validate:"min=1"`
	Row            int    `json:"row" validate:"min=1"`
	Column         int    `json:"column" validate:"min=1"`
}

type formationRequest struct {
	Name      string            `json:"name" validate:"required,max=100"`
	GroupID   string            `json:"groupId" validate:"required,uuid"`
	Positions []positionRequest `json:"positions" validate:"dive"`
}

func (h *FormationsHandler) decode(w http.ResponseWriter, r *http.Request) (domain.FormationParams, error) {
	var body formationRequest
	if err := decodeJSON(w, r, h.validate, &body); err != nil {
		return domain.FormationParams{}, err
	}
	p := domain.FormationParams{
		GroupID:   domain.NewGroupID(parseUUID(body.GroupID)),
		Name:      body.Name,
		Positions: make([]domain.FormationPosition, 0, len(body.Positions)),
	}
	for _, pos := range body.Positions {
		p.Positions = append(p.Positions, domain.FormationPosition{
			MemberID:       domain.NewMemberID(parseUUID(pos.MemberID)),
			PositionNumber: pos.PositionNumber,
			Row:            pos.Row,
			Column:         pos.Column,
		})
	}
	return p, nil
}

// List returns a page of formations with member names resolved.
func (h *FormationsHandler) List(w http.ResponseWriter, r *http.Request) {
	lq, err := listQuery(r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	q := ports.FormationQuery{ListQuery: lq}
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

// Get returns one formation with its positions.
func (h *FormationsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	out, err := h.get.Execute(r.Context(), domain.NewFormationID(id))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// Create adds a formation.
func (h *FormationsHandler) Create(w http.ResponseWriter, r *http.Request) {
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
	h.audit.Record(r, resourceFormations, "created", out.ID)
	writeJSON(w, http.StatusCreated, out)
}

// Update replaces a formation's fields and its whole position list.
func (h *FormationsHandler) Update(w http.ResponseWriter, r *http.Request) {
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
	out, err := h.update.Execute(r.Context(), formation.UpdateFormationInput{ID: domain.NewFormationID(id), FormationParams: p})
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	h.audit.Record(r, resourceFormations, "updated", out.ID)
	writeJSON(w, http.StatusOK, out)
}

// Delete removes a formation.
func (h *FormationsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if err := h.delete.Execute(r.Context(), domain.NewFormationID(id)); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	h.audit.Record(r, resourceFormations, "deleted", id.String())
	w.WriteHeader(http.StatusNoContent)
}

// BulkDelete removes every listed formation that exists.
func (h *FormationsHandler) BulkDelete(w http.ResponseWriter, r *http.Request) {
	var body bulkDeleteRequest
	if err := decodeJSON(w, r, h.validate, &body); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	out, err := h.bulkDelete.Execute(r.Context(), convertIDs(body.uuids(), domain.NewFormationID))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if out.DeletedCount > 0 {
		h.audit.Record(r, resourceFormations, "bulk_deleted", out.DeletedIDs...)
	}
	writeJSON(w, http.StatusOK, out)
}
