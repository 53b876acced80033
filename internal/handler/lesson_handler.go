package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"lifelessons/internal/models"
	"lifelessons/internal/repository"
	"lifelessons/internal/service"
)

// queryInt парсит числовой параметр, некорректное значение молча
// заменяется на fallback.
func queryInt(r *http.Request, key string, fallback int) int {
	value, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil || value < 1 {
		return fallback
	}
	return value
}

func (h *Handlers) GetLessons(w http.ResponseWriter, r *http.Request) {
	q := repository.FeedQuery{
		Page:          queryInt(r, "page", repository.DefaultPage),
		Limit:         queryInt(r, "limit", repository.DefaultLimit),
		Sort:          r.URL.Query().Get("sort"),
		Category:      r.URL.Query().Get("category"),
		EmotionalTone: r.URL.Query().Get("emotionalTone"),
		Search:        r.URL.Query().Get("search"),
	}

	result, err := h.LessonRepo.ListFeed(r.Context(), q)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, result, http.StatusOK)
}

// GetMyLessons - уроки текущего автора, включая приватные.
func (h *Handlers) GetMyLessons(w http.ResponseWriter, r *http.Request) {
	email, ok := r.Context().Value("email").(string)
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	q := repository.FeedQuery{
		Page:        queryInt(r, "page", repository.DefaultPage),
		Limit:       queryInt(r, "limit", repository.DefaultLimit),
		Sort:        r.URL.Query().Get("sort"),
		AuthorEmail: email,
	}

	result, err := h.LessonRepo.ListFeed(r.Context(), q)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, result, http.StatusOK)
}

func (h *Handlers) GetFeaturedLessons(w http.ResponseWriter, r *http.Request) {
	lessons, err := h.LessonRepo.ListFeatured(r.Context(), queryInt(r, "limit", 8))
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, lessons, http.StatusOK)
}

func (h *Handlers) GetMostSavedLessons(w http.ResponseWriter, r *http.Request) {
	lessons, err := h.LessonRepo.ListMostSaved(r.Context(), queryInt(r, "limit", 5))
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, lessons, http.StatusOK)
}

// GetLesson возвращает урок и засчитывает просмотр.
func (h *Handlers) GetLesson(w http.ResponseWriter, r *http.Request) {
	lessonID := mux.Vars(r)["id"]

	lesson, err := h.EngagementService.GetLesson(r.Context(), lessonID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, lesson, http.StatusOK)
}

func (h *Handlers) CreateLesson(w http.ResponseWriter, r *http.Request) {
	email, ok := r.Context().Value("email").(string)
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	var req service.CreateLessonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	lesson, err := h.LessonService.Create(r.Context(), email, req)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, lesson, http.StatusCreated)
}

func (h *Handlers) UpdateLesson(w http.ResponseWriter, r *http.Request) {
	lessonID := mux.Vars(r)["id"]

	email, _ := r.Context().Value("email").(string)
	role, _ := r.Context().Value("role").(string)

	var patch models.LessonPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if patch.Privacy != nil && *patch.Privacy != "public" && *patch.Privacy != "private" {
		WriteError(w, "Неверное значение privacy", http.StatusBadRequest)
		return
	}

	if patch.AccessLevel != nil && *patch.AccessLevel != "free" && *patch.AccessLevel != "premium" {
		WriteError(w, "Неверное значение accessLevel", http.StatusBadRequest)
		return
	}

	lesson, err := h.LessonService.Update(r.Context(), email, role, lessonID, patch)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, lesson, http.StatusOK)
}

func (h *Handlers) DeleteLesson(w http.ResponseWriter, r *http.Request) {
	lessonID := mux.Vars(r)["id"]

	email, _ := r.Context().Value("email").(string)
	role, _ := r.Context().Value("role").(string)

	if err := h.LessonService.Delete(r.Context(), email, role, lessonID); err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, MessageResponse{Message: "Урок удалён"}, http.StatusOK)
}

// ToggleLike переключает лайк текущего пользователя. Направление не
// передаётся: ответ сообщает новое состояние.
func (h *Handlers) ToggleLike(w http.ResponseWriter, r *http.Request) {
	lessonID := mux.Vars(r)["id"]

	email, ok := r.Context().Value("email").(string)
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	state, err := h.EngagementService.ToggleLike(r.Context(), lessonID, email)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, state, http.StatusOK)
}

func (h *Handlers) ReportLesson(w http.ResponseWriter, r *http.Request) {
	lessonID := mux.Vars(r)["id"]

	email, ok := r.Context().Value("email").(string)
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	var req struct {
		Reason string `json:"reason" validate:"required"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Не указана причина жалобы", http.StatusBadRequest)
		return
	}

	report, err := h.ModerationService.CreateReport(r.Context(), lessonID, email, req.Reason)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, report, http.StatusCreated)
}

func (h *Handlers) UploadLessonImage(w http.ResponseWriter, r *http.Request) {
	lessonID := mux.Vars(r)["id"]

	email, _ := r.Context().Value("email").(string)
	role, _ := r.Context().Value("role").(string)

	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
		WriteError(w, "Файл слишком большой", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		WriteError(w, "Файл не найден в запросе", http.StatusBadRequest)
		return
	}
	defer file.Close()

	imageURL, err := h.LessonService.AttachImage(r.Context(), email, role, lessonID, header.Filename, file, header.Size)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, map[string]string{"photoURL": imageURL}, http.StatusCreated)
}
