package http

import (
	"net/http"
	"time"

	"github.com/42roma/monitor/internal/adapter/feeds"
	"github.com/42roma/monitor/internal/adapter/oauth"
	"github.com/42roma/monitor/internal/entity"
	"github.com/42roma/monitor/internal/usecase"
	"go.uber.org/zap"
)

// DashboardHandler serves the public monitor view: active announcements,
// the banner, the maintenance list and the remote status feeds. No login is
// required for any of it.
type DashboardHandler struct {
	announcementUC *usecase.AnnouncementUseCase
	bannerUC       *usecase.BannerUseCase
	maintenanceUC  *usecase.MaintenanceUseCase
	feedsClient    *feeds.Client
	oauthClient    *oauth.Client
	apiBaseURL     string
	logger         *zap.Logger
}

func NewDashboardHandler(
	announcementUC *usecase.AnnouncementUseCase,
	bannerUC *usecase.BannerUseCase,
	maintenanceUC *usecase.MaintenanceUseCase,
	feedsClient *feeds.Client,
	oauthClient *oauth.Client,
	apiBaseURL string,
	logger *zap.Logger,
) *DashboardHandler {
	return &DashboardHandler{
		announcementUC: announcementUC,
		bannerUC:       bannerUC,
		maintenanceUC:  maintenanceUC,
		feedsClient:    feedsClient,
		oauthClient:    oauthClient,
		apiBaseURL:     apiBaseURL,
		logger:         logger.Named("DashboardHTTPHandler"),
	}
}

type mapResponse struct {
	Announcements  []announcementResponse `json:"announcements"`
	Banner         *entity.Banner         `json:"banner"`
	MaintenancePCs []string               `json:"maintenance_pcs"`
	OfflinePCs     []string               `json:"offline_pcs"`
	OnlinePCs      []string               `json:"online_pcs"`
	Events         []entity.Event         `json:"events"`
}

func (h *DashboardHandler) Map(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	now := time.Now()

	resp := mapResponse{
		Announcements:  []announcementResponse{},
		MaintenancePCs: []string{},
		OfflinePCs:     []string{},
		OnlinePCs:      []string{},
		Events:         []entity.Event{},
	}

	active, err := h.announcementUC.ActiveAnnouncements(ctx, now)
	if err != nil {
		// The map still renders without announcements.
		h.logger.Warn("Failed to load active announcements for map", zap.Error(err))
	} else {
		resp.Announcements = toAnnouncementResponses(active)
	}

	banner, err := h.bannerUC.Current(ctx)
	if err != nil {
		h.logger.Warn("Failed to load banner for map", zap.Error(err))
	} else {
		resp.Banner = banner
	}

	if pcs, err := h.maintenanceUC.Current(ctx); err != nil {
		h.logger.Warn("Failed to load maintenance list for map", zap.Error(err))
	} else if pcs != nil {
		resp.MaintenancePCs = pcs
	}

	if h.feedsClient != nil {
		if pcs := h.feedsClient.OfflinePCs(ctx); pcs != nil {
			resp.OfflinePCs = pcs
		}
		if pcs := h.feedsClient.OnlinePCs(ctx); pcs != nil {
			resp.OnlinePCs = pcs
		}
		if events := h.feedsClient.Events(ctx); events != nil {
			resp.Events = events
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

// UpcomingEvents serves campus events from the intra API within the
// lookahead window. The feed needs a server-side API token; without one the
// list stays empty.
func (h *DashboardHandler) UpcomingEvents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	events := []entity.Event{}

	token, err := h.oauthClient.Token(ctx)
	if err != nil {
		h.logger.Warn("Failed to obtain API token for campus events", zap.Error(err))
	} else if fetched := h.feedsClient.UpcomingCampusEvents(ctx, h.apiBaseURL, token, time.Now()); fetched != nil {
		events = fetched
	}
	writeJSON(w, http.StatusOK, events)
}

// Active serves just the active announcements, for the signage screens.
func (h *DashboardHandler) Active(w http.ResponseWriter, r *http.Request) {
	active, err := h.announcementUC.ActiveAnnouncements(r.Context(), time.Now())
	if err != nil {
		writeUseCaseError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toAnnouncementResponses(active))
}
