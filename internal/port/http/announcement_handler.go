package http

import (
	"encoding/json"
	"net/http"

	"github.com/42roma/monitor/internal/usecase"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type AnnouncementHandler struct {
	announcementUC *usecase.AnnouncementUseCase
	logger         *zap.Logger
}

func NewAnnouncementHandler(announcementUC *usecase.AnnouncementUseCase, logger *zap.Logger) *AnnouncementHandler {
	return &AnnouncementHandler{
		announcementUC: announcementUC,
		logger:         logger.Named("AnnouncementHTTPHandler"),
	}
}

type announcementRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Color       string `json:"color"`
	Link        string `json:"link"`
}

func (req *announcementRequest) toInput() usecase.AnnouncementInput {
	return usecase.AnnouncementInput{
		Title:       req.Title,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Color:       req.Color,
		Link:        req.Link,
	}
}

func (h *AnnouncementHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req announcementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("Failed to decode request body for Create", zap.Error(err))
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	announcement, err := h.announcementUC.CreateAnnouncement(r.Context(), callerIdentity(r), r.RemoteAddr, req.toInput())
	if err != nil {
		writeUseCaseError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toAnnouncementResponse(announcement))
}

func (h *AnnouncementHandler) List(w http.ResponseWriter, r *http.Request) {
	announcements, err := h.announcementUC.ListAnnouncements(r.Context(), callerIdentity(r), r.RemoteAddr)
	if err != nil {
		writeUseCaseError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toAnnouncementResponses(announcements))
}

func (h *AnnouncementHandler) GetForEdit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	announcement, err := h.announcementUC.GetAnnouncementForEdit(r.Context(), callerIdentity(r), r.RemoteAddr, id)
	if err != nil {
		writeUseCaseError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toAnnouncementResponse(announcement))
}

func (h *AnnouncementHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req announcementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("Failed to decode request body for Edit", zap.Error(err), zap.String("announcement_id", id))
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	announcement, err := h.announcementUC.EditAnnouncement(r.Context(), callerIdentity(r), r.RemoteAddr, id, req.toInput())
	if err != nil {
		writeUseCaseError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toAnnouncementResponse(announcement))
}
