package http

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"kharcha/internal/core"
	"kharcha/internal/export"
	"kharcha/internal/log"
)

// handleExport writes the filtered collection as csv or xlsx.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	format, err := export.ParseFormat(r.PathValue("format"))
	if err != nil {
		BadRequest(err.Error()).Write(w)
		return
	}

	expenses, err := s.service.ListExpenses(r.Context())
	if err != nil {
		s.storeFailure(r, log.OpExport, err)
		InternalError().Write(w)
		return
	}
	category := r.URL.Query().Get("category")
	filtered := core.Filter(expenses, category)

	// Buffer so an encoding failure can still become a clean 500.
	var buf bytes.Buffer
	if err := export.Write(&buf, format, filtered); err != nil {
		log.FromContext(r.Context()).WithComponent(log.ComponentExport).
			ErrorContext(r.Context(), "Export failed", log.FieldError, err, log.FieldOperation, log.OpExport)
		InternalError().Write(w)
		return
	}

	log.FromContext(r.Context()).WithComponent(log.ComponentExport).
		InfoContext(r.Context(), "Export written",
			log.FieldOperation, log.OpExport,
			log.FieldCategory, category,
			log.FieldCount, len(filtered))

	NewResponse().
		Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", format.Filename(time.Now()))).
		Body(format.ContentType(), buf.Bytes()).
		Write(w)
}
