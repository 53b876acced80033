package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lifelessons/internal/apperr"
	"lifelessons/internal/models"
	"lifelessons/internal/payments"
)

func TestPaymentService_HandleWebhook(t *testing.T) {
	ctx := context.Background()
	payload := []byte(`{"type":"checkout.session.completed"}`)
	signature := "t=123,v1=abc"

	t.Run("Завершённая оплата включает премиум", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		provider := new(MockPaymentProvider)
		svc := NewPaymentService(userRepo, provider)

		provider.On("ParseWebhookEvent", payload, signature).Return(&payments.Event{
			Type:          payments.EventCheckoutCompleted,
			CustomerEmail: "payer@example.com",
		}, nil)
		userRepo.On("UpgradeToPremium", ctx, "payer@example.com").Return(true, nil)

		err := svc.HandleWebhook(ctx, payload, signature)

		assert.NoError(t, err)
		userRepo.AssertExpectations(t)
	})

	t.Run("Повторная доставка того же события проходит без ошибки", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		provider := new(MockPaymentProvider)
		svc := NewPaymentService(userRepo, provider)

		provider.On("ParseWebhookEvent", payload, signature).Return(&payments.Event{
			Type:          payments.EventCheckoutCompleted,
			CustomerEmail: "payer@example.com",
		}, nil)
		// Пользователь уже премиум, апгрейд сообщает no-op
		userRepo.On("UpgradeToPremium", ctx, "payer@example.com").Return(false, nil)

		err := svc.HandleWebhook(ctx, payload, signature)

		assert.NoError(t, err)
	})

	t.Run("Чужие типы событий принимаются и игнорируются", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		provider := new(MockPaymentProvider)
		svc := NewPaymentService(userRepo, provider)

		provider.On("ParseWebhookEvent", payload, signature).Return(&payments.Event{
			Type: "invoice.paid",
		}, nil)

		err := svc.HandleWebhook(ctx, payload, signature)

		assert.NoError(t, err)
		userRepo.AssertNotCalled(t, "UpgradeToPremium")
	})

	t.Run("Неверная подпись отклоняется до любых записей", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		provider := new(MockPaymentProvider)
		svc := NewPaymentService(userRepo, provider)

		provider.On("ParseWebhookEvent", payload, "bad").
			Return(nil, apperr.ErrUnverifiable)

		err := svc.HandleWebhook(ctx, payload, "bad")

		assert.ErrorIs(t, err, apperr.ErrUnverifiable)
		userRepo.AssertNotCalled(t, "UpgradeToPremium")
	})

	t.Run("Событие для неизвестного email подтверждается как no-op", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		provider := new(MockPaymentProvider)
		svc := NewPaymentService(userRepo, provider)

		provider.On("ParseWebhookEvent", payload, signature).Return(&payments.Event{
			Type:          payments.EventCheckoutCompleted,
			CustomerEmail: "ghost@example.com",
		}, nil)
		userRepo.On("UpgradeToPremium", ctx, "ghost@example.com").
			Return(false, apperr.ErrNotFound)

		// Повторная доставка ничего не изменит, событие не переспрашивается
		err := svc.HandleWebhook(ctx, payload, signature)

		assert.NoError(t, err)
	})

	t.Run("Ошибка записи возвращается для повторной доставки", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		provider := new(MockPaymentProvider)
		svc := NewPaymentService(userRepo, provider)

		provider.On("ParseWebhookEvent", payload, signature).Return(&payments.Event{
			Type:          payments.EventCheckoutCompleted,
			CustomerEmail: "payer@example.com",
		}, nil)
		userRepo.On("UpgradeToPremium", ctx, "payer@example.com").
			Return(false, errors.New("connection failed"))

		err := svc.HandleWebhook(ctx, payload, signature)

		assert.Error(t, err)
	})
}

func TestPaymentService_VerifyPayment(t *testing.T) {
	ctx := context.Background()
	email := "payer@example.com"

	t.Run("Вебхук уже сработал - сразу успех", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		provider := new(MockPaymentProvider)
		svc := NewPaymentService(userRepo, provider)

		userRepo.On("GetByEmail", ctx, email).Return(&models.User{
			Email:     email,
			IsPremium: true,
		}, nil)

		result, err := svc.VerifyPayment(ctx, email, "cs_123")

		require.NoError(t, err)
		assert.True(t, result.Success)
		provider.AssertNotCalled(t, "GetCheckoutSession")
	})

	t.Run("Вебхук отстал - прямая проверка сессии включает премиум", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		provider := new(MockPaymentProvider)
		svc := NewPaymentService(userRepo, provider)

		userRepo.On("GetByEmail", ctx, email).Return(&models.User{
			Email:     email,
			IsPremium: false,
		}, nil)
		provider.On("GetCheckoutSession", ctx, "cs_123").Return(&payments.Session{
			ID:   "cs_123",
			Paid: true,
		}, nil)
		userRepo.On("UpgradeToPremium", ctx, email).Return(true, nil)

		result, err := svc.VerifyPayment(ctx, email, "cs_123")

		require.NoError(t, err)
		assert.True(t, result.Success)
		userRepo.AssertExpectations(t)
	})

	t.Run("Оплата ещё не прошла", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		provider := new(MockPaymentProvider)
		svc := NewPaymentService(userRepo, provider)

		userRepo.On("GetByEmail", ctx, email).Return(&models.User{
			Email:     email,
			IsPremium: false,
		}, nil)
		provider.On("GetCheckoutSession", ctx, "cs_123").Return(&payments.Session{
			ID:   "cs_123",
			Paid: false,
		}, nil)

		result, err := svc.VerifyPayment(ctx, email, "cs_123")

		require.NoError(t, err)
		assert.False(t, result.Success)
		userRepo.AssertNotCalled(t, "UpgradeToPremium")
	})

	t.Run("Без session_id сессия не запрашивается", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		provider := new(MockPaymentProvider)
		svc := NewPaymentService(userRepo, provider)

		userRepo.On("GetByEmail", ctx, email).Return(&models.User{
			Email:     email,
			IsPremium: false,
		}, nil)

		result, err := svc.VerifyPayment(ctx, email, "")

		require.NoError(t, err)
		assert.False(t, result.Success)
		provider.AssertNotCalled(t, "GetCheckoutSession")
	})

	t.Run("Неизвестный пользователь", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		provider := new(MockPaymentProvider)
		svc := NewPaymentService(userRepo, provider)

		userRepo.On("GetByEmail", ctx, email).Return(nil, apperr.ErrNotFound)

		result, err := svc.VerifyPayment(ctx, email, "cs_123")

		assert.Nil(t, result)
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})
}
