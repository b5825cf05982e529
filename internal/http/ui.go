package http

import (
	"net/http"

	"kharcha/internal/client"
	"kharcha/internal/log"
	"kharcha/internal/view"
)

// indexData is what index.html renders.
type indexData struct {
	view.Page
	Title      string
	ChartTitle string
	EmptyText  string
	PrintLabel string
	PieSize    int
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if s.templates == nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Templates not loaded", log.FieldPath, r.URL.Path)
		InternalError().Write(w)
		return
	}

	// A failed load keeps the previous list; the page still renders.
	_ = s.ui.Load(r.Context())

	data := indexData{
		Page:       view.Build(s.ui.State()),
		Title:      view.Title,
		ChartTitle: view.ChartTitle,
		EmptyText:  view.EmptyText,
		PrintLabel: view.PrintLabel,
		PieSize:    view.PieSize,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Index template execution failed",
			log.FieldError, err,
			log.FieldOperation, log.OpRender)
	}
}

func (s *Server) handleUISubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		BadRequest("invalid form").Write(w)
		return
	}

	s.ui.SetForm(client.Form{
		Username: sanitizeInput(r.PostForm.Get("username")),
		Amount:   sanitizeInput(r.PostForm.Get("amount")),
		Category: sanitizeInput(r.PostForm.Get("category")),
		Date:     sanitizeInput(r.PostForm.Get("date")),
	})
	// Errors are logged by the store; the form keeps what was typed.
	_ = s.ui.Submit(r.Context())
	redirectHome(w, r)
}

func (s *Server) handleUIEdit(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !s.ui.Edit(id) {
		// The record may have been added since the last render.
		if err := s.ui.Load(r.Context()); err == nil {
			s.ui.Edit(id)
		}
	}
	redirectHome(w, r)
}

func (s *Server) handleUIDelete(w http.ResponseWriter, r *http.Request) {
	_ = s.ui.Delete(r.Context(), r.PathValue("id"))
	redirectHome(w, r)
}

func (s *Server) handleUIFilter(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		BadRequest("invalid form").Write(w)
		return
	}
	s.ui.SetFilter(r.PostForm.Get("category"))
	redirectHome(w, r)
}

func (s *Server) handleUICancel(w http.ResponseWriter, r *http.Request) {
	s.ui.CancelEdit()
	redirectHome(w, r)
}

func redirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
