package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/amirhosseinghanipour/idolbase/internal/application/ports"
	"github.com/amirhosseinghanipour/idolbase/internal/application/song"
	"github.com/amirhosseinghanipour/idolbase/internal/domain"
)

const resourceSongs = "songs"

// SongsHandler handles /api/songs.
type SongsHandler struct {
	create     *song.CreateSong
	update     *song.UpdateSong
	delete     *song.DeleteSong
	bulkDelete *song.BulkDeleteSongs
	get        *song.GetSong
	list       *song.ListSongs
	audit      *Auditor
	validate   *validator.Validate
	log        zerolog.Logger
}

// NewSongsHandler creates a handler for song endpoints.
func NewSongsHandler(songs ports.SongRepository, groups ports.GroupRepository, audit *Auditor, log zerolog.Logger) *SongsHandler {
	return &SongsHandler{
		create:     song.NewCreateSong(songs, groups),
		update:     song.NewUpdateSong(songs, groups),
		delete:     song.NewDeleteSong(songs),
		bulkDelete: song.NewBulkDeleteSongs(songs),
		get:        song.NewGetSong(songs),
		list:       song.NewListSongs(songs),
		audit:      audit,
		validate:   newValidator(),
		log:        log,
	}
}

type songRequest struct {
	GroupID     string  `json:"groupId" validate:"required,uuid"`
	Title       string  `json:"title" validate:"required,max=200"`
	Lyricist    *string `json:"lyricist" validate:"omitempty,max=100"`
	Composer    *string `json:"composer" validate:"omitempty,max=100"`
	Arranger    *string `json:"arranger" validate:"omitempty,max=100"`
	ReleaseDate *string `json:"releaseDate" validate:"omitempty,datetime=2006-01-02"`
}

func (h *SongsHandler) decode(w http.ResponseWriter, r *http.Request) (domain.SongParams, error) {
	var body songRequest
	if err := decodeJSON(w, r, h.validate, &body); err != nil {
		return domain.SongParams{}, err
	}
	var d dates
	p := domain.SongParams{
		GroupID:     domain.NewGroupID(parseUUID(body.GroupID)),
		Title:       body.Title,
		Lyricist:    body.Lyricist,
		Composer:    body.Composer,
		Arranger:    body.Arranger,
		ReleaseDate: d.optional("releaseDate", body.ReleaseDate),
	}
	return p, d.err()
}

// List returns a page of songs, newest release first.
func (h *SongsHandler) List(w http.ResponseWriter, r *http.Request) {
	lq, err := listQuery(r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	q := ports.SongQuery{ListQuery: lq}
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

// Get returns one song.
func (h *SongsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	out, err := h.get.Execute(r.Context(), domain.NewSongID(id))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// Create adds a song.
func (h *SongsHandler) Create(w http.ResponseWriter, r *http.Request) {
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
	h.audit.Record(r, resourceSongs, "created", out.ID)
	writeJSON(w, http.StatusCreated, out)
}

// Update replaces a song's fields.
func (h *SongsHandler) Update(w http.ResponseWriter, r *http.Request) {
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
	out, err := h.update.Execute(r.Context(), song.UpdateSongInput{ID: domain.NewSongID(id), SongParams: p})
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	h.audit.Record(r, resourceSongs, "updated", out.ID)
	writeJSON(w, http.StatusOK, out)
}

// Delete removes a song and the setlist items that play it.
func (h *SongsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if err := h.delete.Execute(r.Context(), domain.NewSongID(id)); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	h.audit.Record(r, resourceSongs, "deleted", id.String())
	w.WriteHeader(http.StatusNoContent)
}

// BulkDelete removes every listed song that exists.
func (h *SongsHandler) BulkDelete(w http.ResponseWriter, r *http.Request) {
	var body bulkDeleteRequest
	if err := decodeJSON(w, r, h.validate, &body); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	out, err := h.bulkDelete.Execute(r.Context(), convertIDs(body.uuids(), domain.NewSongID))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if out.DeletedCount > 0 {
		h.audit.Record(r, resourceSongs, "bulk_deleted", out.DeletedIDs...)
	}
	writeJSON(w, http.StatusOK, out)
}
