package http

import (
	"context"
	"net/http"
	"time"

	"kharcha/internal/core"
	"kharcha/internal/log"
)

const (
	msgAdded   = "Expense Added Successfully!"
	msgUpdated = "Expense Updated Successfully!"
	msgDeleted = "Expense Deleted Successfully!"
)

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := s.service.ListExpenses(r.Context())
	if err != nil {
		s.storeFailure(r, log.OpList, err)
		InternalError().Write(w)
		return
	}
	if expenses == nil {
		expenses = []core.Expense{}
	}
	NewResponse().JSON(expenses).Write(w)
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	e, err := decodeExpense(w, r)
	if err != nil {
		s.rejected(r, log.OpCreate, err)
		BadRequest(err.Error()).Write(w)
		return
	}

	if _, err := s.service.CreateExpense(r.Context(), e); err != nil {
		s.storeFailure(r, log.OpCreate, err)
		InternalError().Write(w)
		return
	}
	NewResponse().JSON(msgAdded).Write(w)
}

func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	e, err := decodeExpense(w, r)
	if err != nil {
		s.rejected(r, log.OpUpdate, err)
		BadRequest(err.Error()).Write(w)
		return
	}

	if err := s.service.UpdateExpense(r.Context(), id, e); err != nil {
		s.storeFailure(r, log.OpUpdate, err)
		InternalError().Write(w)
		return
	}
	NewResponse().JSON(msgUpdated).Write(w)
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	if err := s.service.DeleteExpense(r.Context(), r.PathValue("id")); err != nil {
		s.storeFailure(r, log.OpDelete, err)
		InternalError().Write(w)
		return
	}
	NewResponse().JSON(msgDeleted).Write(w)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	NewResponse().JSON(map[string]string{"status": "ok"}).Write(w)
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.service.Ping(ctx); err != nil {
		log.FromContext(r.Context()).WarnContext(r.Context(), "Readiness check failed", log.FieldError, err)
		ServiceUnavailable("unavailable").Write(w)
		return
	}
	NewResponse().JSON(map[string]string{"status": "ready"}).Write(w)
}

func (s *Server) storeFailure(r *http.Request, op string, err error) {
	log.NewStructuredLogger(log.FromContext(r.Context())).
		LogError(r.Context(), "Store operation failed", err, log.ComponentStorage, op, nil)
}

func (s *Server) rejected(r *http.Request, op string, err error) {
	log.FromContext(r.Context()).WarnContext(r.Context(), "Rejected expense body",
		log.FieldOperation, op,
		log.FieldError, err)
}
