package service

import (
	"context"
	"errors"
	"log"

	"lifelessons/internal/apperr"
	"lifelessons/internal/payments"
	"lifelessons/internal/repository"
)

// PaymentService - обработчик платёжных событий. Провайдер доставляет
// вебхук минимум один раз, поэтому апгрейд обязан быть идемпотентным:
// и вебхук, и поллинг идут через один и тот же UpgradeToPremium.
type PaymentService interface {
	HandleWebhook(ctx context.Context, payload []byte, signature string) error
	VerifyPayment(ctx context.Context, email, sessionID string) (*VerifyResult, error)
	CreateCheckoutSession(ctx context.Context, userID, email string) (string, error)
}

type VerifyResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type paymentService struct {
	userRepo repository.UserRepository
	provider payments.Provider
}

func NewPaymentService(userRepo repository.UserRepository, provider payments.Provider) PaymentService {
	return &paymentService{
		userRepo: userRepo,
		provider: provider,
	}
}

// HandleWebhook обрабатывает событие провайдера. Любой тип, кроме
// завершённой оплаты, принимается и игнорируется. Ошибка записи
// возвращается наверх, чтобы провайдер доставил событие повторно.
func (s *paymentService) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	event, err := s.provider.ParseWebhookEvent(payload, signature)
	if err != nil {
		return err
	}

	if event.Type != payments.EventCheckoutCompleted {
		return nil
	}

	upgraded, err := s.userRepo.UpgradeToPremium(ctx, event.CustomerEmail)
	if err != nil {
		// Неизвестный email не станет известным от повторной доставки,
		// поэтому такое событие подтверждается как no-op. Редоставку
		// просят только сбои хранилища.
		if errors.Is(err, apperr.ErrNotFound) {
			log.Printf("Событие оплаты для неизвестного email %s, пропущено", event.CustomerEmail)
			return nil
		}
		return err
	}

	if upgraded {
		log.Printf("Премиум включён по вебхуку: %s", event.CustomerEmail)
	} else {
		// Повторная доставка того же события - ожидаемый no-op
		log.Printf("Повторное событие оплаты для %s, уже премиум", event.CustomerEmail)
	}

	return nil
}

// VerifyPayment - поллинговый путь на случай потерянного или отставшего
// вебхука. Использует тот же идемпотентный апгрейд, отдельной ветки с
// побочными эффектами здесь нет.
func (s *paymentService) VerifyPayment(ctx context.Context, email, sessionID string) (*VerifyResult, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if user.IsPremium {
		return &VerifyResult{Success: true, Message: "Upgraded to Premium!"}, nil
	}

	if sessionID != "" {
		session, err := s.provider.GetCheckoutSession(ctx, sessionID)
		if err != nil {
			return nil, err
		}

		if session.Paid {
			if _, err := s.userRepo.UpgradeToPremium(ctx, email); err != nil {
				return nil, err
			}
			return &VerifyResult{Success: true, Message: "Upgraded to Premium via direct check!"}, nil
		}
	}

	return &VerifyResult{Success: false, Message: "Still processing..."}, nil
}

func (s *paymentService) CreateCheckoutSession(ctx context.Context, userID, email string) (string, error) {
	return s.provider.CreateCheckoutSession(ctx, userID, email)
}
