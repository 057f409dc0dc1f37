package handlers

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/amirhosseinghanipour/idolbase/internal/application/dto"
	"github.com/amirhosseinghanipour/idolbase/internal/application/ports"
	"github.com/amirhosseinghanipour/idolbase/internal/application/transfer"
)

// DataHandler serves snapshot export and import under /api/data.
type DataHandler struct {
	export *transfer.ExportData
	imp    *transfer.ImportData
	audit  *Auditor
	log    zerolog.Logger
}

// NewDataHandler creates a handler for export and import.
func NewDataHandler(store ports.SnapshotStore, audit *Auditor, log zerolog.Logger) *DataHandler {
	return &DataHandler{
		export: transfer.NewExportData(store),
		imp:    transfer.NewImportData(store),
		audit:  audit,
		log:    log,
	}
}

// Export returns every group, member, song, formation and setlist as one document.
func (h *DataHandler) Export(w http.ResponseWriter, r *http.Request) {
	out, err := h.export.Execute(r.Context())
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	w.Header().Set("Content-Disposition", `attachment; filename="idolbase-export.json"`)
	writeJSON(w, http.StatusOK, out)
}

// Import applies an export document. ?mode=merge keeps rows missing from the document.
func (h *DataHandler) Import(w http.ResponseWriter, r *http.Request) {
	mode, err := transfer.ParseImportMode(r.URL.Query().Get("mode"))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	var body dto.ExportDataDTO
	if err := decodeJSON(w, r, nil, &body); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	out, err := h.imp.Execute(r.Context(), &body, mode)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	h.audit.Record(r, "data", "imported")
	writeJSON(w, http.StatusOK, out)
}
