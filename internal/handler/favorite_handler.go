package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

func (h *Handlers) GetFavorites(w http.ResponseWriter, r *http.Request) {
	email, ok := r.Context().Value("email").(string)
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	favorites, err := h.EngagementService.ListFavorites(
		r.Context(),
		email,
		r.URL.Query().Get("category"),
		r.URL.Query().Get("emotionalTone"),
	)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, favorites, http.StatusOK)
}

func (h *Handlers) AddFavorite(w http.ResponseWriter, r *http.Request) {
	lessonID := mux.Vars(r)["id"]

	email, ok := r.Context().Value("email").(string)
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	if err := h.EngagementService.AddFavorite(r.Context(), lessonID, email); err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, MessageResponse{Message: "Урок добавлен в избранное"}, http.StatusCreated)
}

func (h *Handlers) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	lessonID := mux.Vars(r)["id"]

	email, ok := r.Context().Value("email").(string)
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	if err := h.EngagementService.RemoveFavorite(r.Context(), lessonID, email); err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, MessageResponse{Message: "Урок удалён из избранного"}, http.StatusOK)
}
