package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"lifelessons/internal/apperr"
)

// ErrorResponse - стандартный ответ с ошибкой
type ErrorResponse struct {
	Error string `json:"error"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// WriteError - универсальная функция для отправки ошибок
func WriteError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}

// WriteSuccess - функция для успешных ответов
func WriteSuccess(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// WriteServiceError сопоставляет пять видов ошибок с HTTP-статусами.
func WriteServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		WriteError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, apperr.ErrConflict):
		WriteError(w, err.Error(), http.StatusConflict)
	case errors.Is(err, apperr.ErrForbidden):
		WriteError(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, apperr.ErrUnverifiable):
		WriteError(w, err.Error(), http.StatusUnauthorized)
	case errors.Is(err, apperr.ErrUpstream):
		WriteError(w, err.Error(), http.StatusBadGateway)
	default:
		WriteError(w, err.Error(), http.StatusInternalServerError)
	}
}
