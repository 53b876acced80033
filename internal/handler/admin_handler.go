package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
)

// Обработчики ниже регистрируются под RoleMiddleware("admin").

func (h *Handlers) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.UserService.ListUsers(r.Context())
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, users, http.StatusOK)
}

func (h *Handlers) UpdateUserRole(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["id"]

	var req struct {
		Role string `json:"role" validate:"required,oneof=user admin"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Роль должна быть user или admin", http.StatusBadRequest)
		return
	}

	if err := h.UserService.UpdateRole(r.Context(), userID, req.Role); err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, MessageResponse{Message: "Роль обновлена"}, http.StatusOK)
}

func (h *Handlers) DeleteUser(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["id"]

	// Администратор не может удалить сам себя
	if currentID, ok := r.Context().Value("userID").(string); ok && currentID == userID {
		WriteError(w, "Нельзя удалить собственный аккаунт", http.StatusBadRequest)
		return
	}

	if err := h.UserService.DeleteUser(r.Context(), userID); err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, MessageResponse{Message: "Пользователь удалён"}, http.StatusOK)
}

// ListAllLessons - полный список уроков без фильтра приватности.
func (h *Handlers) ListAllLessons(w http.ResponseWriter, r *http.Request) {
	lessons, err := h.ModerationService.ListAllLessons(r.Context())
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, lessons, http.StatusOK)
}

func (h *Handlers) SetFeatured(w http.ResponseWriter, r *http.Request) {
	lessonID := mux.Vars(r)["id"]

	var req struct {
		IsFeatured bool `json:"isFeatured"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.ModerationService.SetFeatured(r.Context(), lessonID, req.IsFeatured); err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, MessageResponse{Message: "Флаг избранного урока обновлён"}, http.StatusOK)
}

func (h *Handlers) MarkReviewed(w http.ResponseWriter, r *http.Request) {
	lessonID := mux.Vars(r)["id"]

	if err := h.ModerationService.MarkReviewed(r.Context(), lessonID); err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, MessageResponse{Message: "Урок отмечен проверенным"}, http.StatusOK)
}

// ListReports - жалобы, сгруппированные по уроку, самые обжалуемые первыми.
func (h *Handlers) ListReports(w http.ResponseWriter, r *http.Request) {
	groups, err := h.ModerationService.ListReports(r.Context())
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, groups, http.StatusOK)
}

func (h *Handlers) DismissReports(w http.ResponseWriter, r *http.Request) {
	lessonID := mux.Vars(r)["id"]

	dismissed, err := h.ModerationService.DismissReports(r.Context(), lessonID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, MessageResponse{Message: fmt.Sprintf("Снято жалоб: %d", dismissed)}, http.StatusOK)
}
