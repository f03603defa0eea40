package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/42roma/monitor/internal/entity"
	"github.com/42roma/monitor/internal/port/repository"
	"github.com/42roma/monitor/internal/usecase"
)

// announcementResponse is the JSON shape handed to the web frontend. It
// matches the persisted record layout plus the id.
type announcementResponse struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
	Color       string  `json:"color"`
	Link        *string `json:"link"`
	CreatedBy   string  `json:"created_by"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at,omitempty"`
}

func toAnnouncementResponse(a *entity.Announcement) announcementResponse {
	resp := announcementResponse{
		ID:          a.ID,
		Title:       a.Title,
		Description: a.Description,
		StartDate:   a.StartDate,
		EndDate:     a.EndDate,
		Color:       a.Color,
		Link:        a.Link,
		CreatedBy:   a.CreatedBy,
		CreatedAt:   a.CreatedAt.Format("2006-01-02T15:04:05.999999Z07:00"),
	}
	if a.UpdatedAt != nil {
		resp.UpdatedAt = a.UpdatedAt.Format("2006-01-02T15:04:05.999999Z07:00")
	}
	return resp
}

func toAnnouncementResponses(list []*entity.Announcement) []announcementResponse {
	out := make([]announcementResponse, len(list))
	for i, a := range list {
		out[i] = toAnnouncementResponse(a)
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeUseCaseError maps service failures onto the HTTP surface: absent
// identity redirects to the login flow, forbidden and not-found keep their
// classic status codes, and validation failures echo the problem back.
func writeUseCaseError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *usecase.ValidationError
	switch {
	case errors.Is(err, usecase.ErrLoginRequired):
		http.Redirect(w, r, "/login", http.StatusFound)
	case errors.Is(err, usecase.ErrForbidden):
		http.Error(w, "Unauthorized", http.StatusForbidden)
	case errors.Is(err, repository.ErrNotFound):
		http.Error(w, "Announcement not found", http.StatusNotFound)
	case errors.As(err, &validationErr):
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":          "All required fields must be filled in.",
			"missing_fields": validationErr.MissingFields,
		})
	default:
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
