package payments

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"
	"github.com/stripe/stripe-go/v82/webhook"

	"lifelessons/internal/apperr"
	"lifelessons/internal/config"
)

// EventCheckoutCompleted - единственный тип события, который включает премиум.
const EventCheckoutCompleted = "checkout.session.completed"

// Event - провайдеро-независимое событие оплаты.
type Event struct {
	Type          string
	CustomerEmail string
	SessionID     string
}

// Session - состояние платёжной сессии у провайдера.
type Session struct {
	ID            string
	Paid          bool
	CustomerEmail string
}

// Provider - платёжный провайдер. Сервисный слой работает только с этим
// интерфейсом, конкретная реализация - Stripe.
type Provider interface {
	ParseWebhookEvent(payload []byte, signature string) (*Event, error)
	GetCheckoutSession(ctx context.Context, sessionID string) (*Session, error)
	CreateCheckoutSession(ctx context.Context, userID, email string) (string, error)
}

type StripeProvider struct {
	cfg *config.Config
}

func NewStripeProvider(cfg *config.Config) *StripeProvider {
	stripe.Key = cfg.Stripe.SecretKey
	return &StripeProvider{cfg: cfg}
}

// ParseWebhookEvent проверяет подпись вебхука и достаёт email покупателя
// из метаданных сессии.
func (p *StripeProvider) ParseWebhookEvent(payload []byte, signature string) (*Event, error) {
	event, err := webhook.ConstructEvent(payload, signature, p.cfg.Stripe.WebhookSecret)
	if err != nil {
		return nil, fmt.Errorf("подпись вебхука не прошла проверку: %w", apperr.ErrUnverifiable)
	}

	parsed := &Event{Type: string(event.Type)}

	if parsed.Type == EventCheckoutCompleted {
		var cs stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &cs); err != nil {
			return nil, fmt.Errorf("нечитаемые данные события: %w", err)
		}
		parsed.SessionID = cs.ID
		parsed.CustomerEmail = cs.Metadata["email"]
		if parsed.CustomerEmail == "" {
			parsed.CustomerEmail = cs.CustomerEmail
		}
	}

	return parsed, nil
}

func (p *StripeProvider) GetCheckoutSession(ctx context.Context, sessionID string) (*Session, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	cs, err := session.Get(sessionID, params)
	if err != nil {
		return nil, fmt.Errorf("сессия оплаты недоступна: %w", apperr.ErrUpstream)
	}

	return &Session{
		ID:            cs.ID,
		Paid:          cs.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid,
		CustomerEmail: cs.Metadata["email"],
	}, nil
}

// CreateCheckoutSession создаёт разовую оплату премиум-доступа.
// Email кладётся в метаданные: вебхук и поллинг опираются именно на него.
func (p *StripeProvider) CreateCheckoutSession(ctx context.Context, userID, email string) (string, error) {
	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		CustomerEmail:      stripe.String(email),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(p.cfg.Stripe.Currency),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:        stripe.String("Life Lessons Premium - Lifetime Access"),
						Description: stripe.String("Unlock all premium features, unlimited lessons, and priority support."),
					},
					UnitAmount: stripe.Int64(p.cfg.Stripe.PremiumPrice),
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(p.cfg.ClientURL + "/payment/success?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:  stripe.String(p.cfg.ClientURL + "/payment/cancel"),
	}
	params.Context = ctx
	params.AddMetadata("userId", userID)
	params.AddMetadata("email", email)

	cs, err := session.New(params)
	if err != nil {
		return "", fmt.Errorf("не удалось создать сессию оплаты: %w", apperr.ErrUpstream)
	}

	return cs.URL, nil
}
