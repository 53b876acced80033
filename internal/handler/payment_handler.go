package handlers

import (
	"encoding/json"
	"io"
	"net/http"
)

func (h *Handlers) CreateCheckoutSession(w http.ResponseWriter, r *http.Request) {
	userID, ok1 := r.Context().Value("userID").(string)
	email, ok2 := r.Context().Value("email").(string)
	if !ok1 || !ok2 {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	sessionURL, err := h.PaymentService.CreateCheckoutSession(r.Context(), userID, email)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, map[string]string{"url": sessionURL}, http.StatusOK)
}

// StripeWebhook читает сырое тело: подпись считается по байтам payload,
// любое декодирование до проверки её сломает.
func (h *Handlers) StripeWebhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, 1<<16))
	if err != nil {
		WriteError(w, "Ошибка чтения тела запроса", http.StatusBadRequest)
		return
	}

	signature := r.Header.Get("Stripe-Signature")

	if err := h.PaymentService.HandleWebhook(r.Context(), payload, signature); err != nil {
		// Не-2xx заставит провайдера доставить событие повторно
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, MessageResponse{Message: "received"}, http.StatusOK)
}

// VerifyPayment - поллинговый путь после редиректа с оплаты.
func (h *Handlers) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email     string `json:"email" validate:"required,email"`
		SessionID string `json:"sessionId"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Не указан email", http.StatusBadRequest)
		return
	}

	result, err := h.PaymentService.VerifyPayment(r.Context(), req.Email, req.SessionID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, result, http.StatusOK)
}
