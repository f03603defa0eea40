package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/42roma/monitor/internal/port/actionlog"
	"github.com/42roma/monitor/internal/usecase"
	"go.uber.org/zap"
)

// StaffHandler exposes the admin-only tools: the staff landing page, banner
// management and the maintenance PC list. Role checks for banner and
// maintenance operations live in the use cases.
type StaffHandler struct {
	bannerUC      *usecase.BannerUseCase
	maintenanceUC *usecase.MaintenanceUseCase
	actionLog     actionlog.Logger
	nagiosURL     string
	logger        *zap.Logger
}

func NewStaffHandler(
	bannerUC *usecase.BannerUseCase,
	maintenanceUC *usecase.MaintenanceUseCase,
	actionLog actionlog.Logger,
	nagiosURL string,
	logger *zap.Logger,
) *StaffHandler {
	return &StaffHandler{
		bannerUC:      bannerUC,
		maintenanceUC: maintenanceUC,
		actionLog:     actionLog,
		nagiosURL:     nagiosURL,
		logger:        logger.Named("StaffHTTPHandler"),
	}
}

// Dashboard returns the staff landing context: who is logged in and where
// the monitoring console lives. Non-admins are sent back to the map.
func (h *StaffHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	caller := callerIdentity(r)
	if caller == nil || !caller.IsAdmin() {
		h.actionLog.Log(r.Context(), caller.DisplayLogin(),
			fmt.Sprintf("unauthorized staff area access (%s)", r.RemoteAddr))
		http.Redirect(w, r, "/map", http.StatusFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"login":      caller.Login,
		"nagios_url": h.nagiosURL,
	})
}

func (h *StaffHandler) GetBanner(w http.ResponseWriter, r *http.Request) {
	banner, err := h.bannerUC.GetForManage(r.Context(), callerIdentity(r))
	if err != nil {
		writeUseCaseError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, banner)
}

type bannerRequest struct {
	Visible bool   `json:"visible"`
	Text    string `json:"text"`
}

func (h *StaffHandler) UpdateBanner(w http.ResponseWriter, r *http.Request) {
	var req bannerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("Failed to decode request body for UpdateBanner", zap.Error(err))
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	banner, err := h.bannerUC.Update(r.Context(), callerIdentity(r), req.Visible, req.Text)
	if err != nil {
		writeUseCaseError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, banner)
}

func (h *StaffHandler) ListMaintenance(w http.ResponseWriter, r *http.Request) {
	pcs, err := h.maintenanceUC.ListForStaff(r.Context(), callerIdentity(r))
	if err != nil {
		writeUseCaseError(w, r, err)
		return
	}
	if pcs == nil {
		pcs = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"maintenance_pcs": pcs})
}

type maintenanceToggleRequest struct {
	PCID   string `json:"pc_id"`
	Action string `json:"action"`
}

func (h *StaffHandler) ToggleMaintenance(w http.ResponseWriter, r *http.Request) {
	var req maintenanceToggleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("Failed to decode request body for ToggleMaintenance", zap.Error(err))
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Action == "" {
		req.Action = usecase.MaintenanceAdd
	}

	pcs, err := h.maintenanceUC.Toggle(r.Context(), callerIdentity(r), req.PCID, req.Action)
	if err != nil {
		writeUseCaseError(w, r, err)
		return
	}
	if pcs == nil {
		pcs = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "maintenance_pcs": pcs})
}
