package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
)

// SyncUser принимает id-токен внешнего провайдера в заголовке
// Authorization и возвращает собственный токен бэкенда.
func (h *Handlers) SyncUser(w http.ResponseWriter, r *http.Request) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		WriteError(w, "Требуется id-токен", http.StatusUnauthorized)
		return
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		WriteError(w, "Неверный формат токена", http.StatusUnauthorized)
		return
	}

	var req struct {
		Name     string `json:"name"`
		PhotoURL string `json:"photoURL"`
	}

	// Тело необязательно: имя и фото подставятся из удостоверения
	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&req)
	}

	result, err := h.AuthService.SyncUser(r.Context(), parts[1], req.Name, req.PhotoURL)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, result, http.StatusOK)
}

// GetCurrentUser - профиль пользователя из токена.
func (h *Handlers) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	email, ok := r.Context().Value("email").(string)
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	user, err := h.UserService.GetByEmail(r.Context(), email)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, user, http.StatusOK)
}
