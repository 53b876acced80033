package handlers

import "net/http"

func (h *Handlers) Home(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		WriteError(w, "Страница не найдена", http.StatusNotFound)
		return
	}

	WriteSuccess(w, MessageResponse{Message: "Life Lessons API работает"}, http.StatusOK)
}

// Health отвечает ok, только если БД отвечает на ping
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.DB.HealthCheck(); err != nil {
		WriteError(w, "База данных недоступна", http.StatusServiceUnavailable)
		return
	}

	WriteSuccess(w, map[string]string{"status": "ok"}, http.StatusOK)
}
