package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"gamedesk/internal/service"
)

// BillHandler handles billing endpoints
type BillHandler struct {
	billingSvc *service.BillingService
}

// NewBillHandler creates a new bill handler
func NewBillHandler(billingSvc *service.BillingService) *BillHandler {
	return &BillHandler{billingSvc: billingSvc}
}

// GenerateRequest is the request body for generating a bill
type GenerateRequest struct {
	Token string `json:"token"`
}

// Generate handles POST /v1/bills
func (h *BillHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Token == "" {
		writeError(w, http.StatusBadRequest, "token is required")
		return
	}

	bill, err := h.billingSvc.GenerateBill(r.Context(), req.Token)
	if err != nil {
		if errors.Is(err, service.ErrNoSessionsForToken) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, bill)
}

// Get handles GET /v1/bills/{id}
func (h *BillHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	bill, err := h.billingSvc.GetBill(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if bill == nil {
		writeError(w, http.StatusNotFound, "bill not found")
		return
	}

	writeJSON(w, http.StatusOK, bill)
}

// ListUnpaid handles GET /v1/bills/unpaid
func (h *BillHandler) ListUnpaid(w http.ResponseWriter, r *http.Request) {
	bills, err := h.billingSvc.ListUnpaid(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"bills": bills})
}

// SettleRequest is the request body for settling a bill
type SettleRequest struct {
	CorrectedAmount *float64 `json:"correctedAmount,omitempty"`
}

// Settle handles POST /v1/bills/{id}/settle
func (h *BillHandler) Settle(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	// an empty body settles at the computed amount
	var req SettleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.CorrectedAmount != nil && *req.CorrectedAmount < 0 {
		writeError(w, http.StatusBadRequest, "corrected amount must be non-negative")
		return
	}

	bill, err := h.billingSvc.SettleBill(r.Context(), id, req.CorrectedAmount)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBillNotFound):
			writeError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrBillAlreadyPaid):
			writeError(w, http.StatusConflict, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, bill)
}
