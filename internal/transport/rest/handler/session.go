package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"gamedesk/internal/service"
)

// SessionHandler handles session read endpoints
type SessionHandler struct {
	sessionSvc *service.SessionService
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessionSvc *service.SessionService) *SessionHandler {
	return &SessionHandler{sessionSvc: sessionSvc}
}

// ListByToken handles GET /v1/sessions?token={token}
func (h *SessionHandler) ListByToken(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		writeError(w, http.StatusBadRequest, "token query parameter is required")
		return
	}

	rows, err := h.sessionSvc.ListByToken(r.Context(), token)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"sessions": rows})
}

// Cost handles GET /v1/sessions/{id}/cost
func (h *SessionHandler) Cost(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	row, err := h.sessionSvc.SessionCost(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if row == nil {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}

	writeJSON(w, http.StatusOK, row)
}

// Floor handles GET /v1/floor
func (h *SessionHandler) Floor(w http.ResponseWriter, r *http.Request) {
	rows, err := h.sessionSvc.ActiveFloor(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"sessions": rows})
}
