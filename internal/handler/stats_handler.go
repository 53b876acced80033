package handlers

import (
	"net/http"
	"time"
)

func (h *Handlers) GetAdminStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.StatsService.AdminStats(r.Context(), time.Now())
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, stats, http.StatusOK)
}

func (h *Handlers) GetUserStats(w http.ResponseWriter, r *http.Request) {
	email, ok := r.Context().Value("email").(string)
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	stats, err := h.StatsService.UserStats(r.Context(), email, time.Now())
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, stats, http.StatusOK)
}

// GetTopContributors - публичный рейтинг авторов по открытым урокам.
func (h *Handlers) GetTopContributors(w http.ResponseWriter, r *http.Request) {
	contributors, err := h.StatsService.TopContributors(r.Context(), queryInt(r, "limit", 5))
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, contributors, http.StatusOK)
}
