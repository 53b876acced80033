package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"lifelessons/internal/apperr"
	"lifelessons/internal/models"
)

func (h *Handlers) GetComments(w http.ResponseWriter, r *http.Request) {
	lessonID := mux.Vars(r)["id"]

	comments, err := h.CommentRepo.ListByLesson(r.Context(), lessonID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, comments, http.StatusOK)
}

func (h *Handlers) CreateComment(w http.ResponseWriter, r *http.Request) {
	lessonID := mux.Vars(r)["id"]

	email, ok := r.Context().Value("email").(string)
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	var req struct {
		Text string `json:"text" validate:"required,max=1000"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Текст комментария обязателен", http.StatusBadRequest)
		return
	}

	// Комментарий привязывается только к существующему уроку
	if _, err := h.LessonRepo.GetByID(r.Context(), lessonID); err != nil {
		WriteServiceError(w, err)
		return
	}

	user, err := h.UserService.GetByEmail(r.Context(), email)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	comment := &models.Comment{
		LessonID:    lessonID,
		AuthorEmail: user.Email,
		AuthorName:  user.Name,
		AuthorPhoto: user.PhotoURL,
		Text:        req.Text,
	}

	if err := h.CommentRepo.Create(r.Context(), comment); err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, comment, http.StatusCreated)
}

// DeleteComment разрешён автору комментария и администратору.
func (h *Handlers) DeleteComment(w http.ResponseWriter, r *http.Request) {
	commentID := mux.Vars(r)["commentId"]

	email, _ := r.Context().Value("email").(string)
	role, _ := r.Context().Value("role").(string)

	comment, err := h.CommentRepo.GetByID(r.Context(), commentID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	if comment.AuthorEmail != email && role != "admin" {
		WriteServiceError(w, fmt.Errorf("удаление чужого комментария: %w", apperr.ErrForbidden))
		return
	}

	if err := h.CommentRepo.Delete(r.Context(), commentID); err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, MessageResponse{Message: "Комментарий удалён"}, http.StatusOK)
}
