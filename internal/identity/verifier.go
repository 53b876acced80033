package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"lifelessons/internal/apperr"
)

// Claim - проверенное удостоверение личности от внешнего провайдера.
type Claim struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	PhotoURL string `json:"picture"`
}

// Verifier проверяет предъявленный id-токен у внешнего провайдера
// идентификации. Бэкенд сам токен не разбирает и не валидирует.
type Verifier interface {
	Verify(ctx context.Context, idToken string) (*Claim, error)
}

type HTTPVerifier struct {
	endpoint string
	client   *http.Client
}

func NewHTTPVerifier(endpoint string) *HTTPVerifier {
	return &HTTPVerifier{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

func (v *HTTPVerifier) Verify(ctx context.Context, idToken string) (*Claim, error) {
	reqURL := v.endpoint + "?id_token=" + url.QueryEscape(idToken)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("ошибка при создании запроса проверки токена: %w", err)
	}

	resp, err := v.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("провайдер идентификации недоступен: %w", apperr.ErrUpstream)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("токен отклонён провайдером (код %d): %w", resp.StatusCode, apperr.ErrUnverifiable)
	}

	var claim Claim
	if err := json.NewDecoder(resp.Body).Decode(&claim); err != nil {
		return nil, fmt.Errorf("неразборчивый ответ провайдера: %w", apperr.ErrUpstream)
	}

	if claim.Email == "" {
		return nil, fmt.Errorf("в токене нет email: %w", apperr.ErrUnverifiable)
	}

	return &claim, nil
}
