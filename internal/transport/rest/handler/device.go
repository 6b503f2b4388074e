package handler

import (
	"net/http"

	"gamedesk/internal/pricing"
	"gamedesk/internal/repository"
)

// DeviceHandler handles device and rate-card endpoints
type DeviceHandler struct {
	deviceRepo repository.DeviceRepo
}

// NewDeviceHandler creates a new device handler
func NewDeviceHandler(deviceRepo repository.DeviceRepo) *DeviceHandler {
	return &DeviceHandler{deviceRepo: deviceRepo}
}

// List handles GET /v1/devices
func (h *DeviceHandler) List(w http.ResponseWriter, r *http.Request) {
	devices, err := h.deviceRepo.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"devices": devices})
}

// RateCard handles GET /v1/ratecard
func (h *DeviceHandler) RateCard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"rateCard": pricing.RateCard()})
}
