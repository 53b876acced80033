package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"lifelessons/internal/apperr"
	"lifelessons/internal/config"
	"lifelessons/internal/identity"
	"lifelessons/internal/models"
	"lifelessons/internal/repository"
)

type AuthService interface {
	SyncUser(ctx context.Context, idToken, name, photoURL string) (*SyncResult, error)
	GenerateAccessToken(user *models.User) (string, error)
}

// SyncResult - ответ на синхронизацию: собственный токен бэкенда плюс
// роль и признак премиума для клиента.
type SyncResult struct {
	Token     string `json:"token"`
	Role      string `json:"role"`
	IsPremium bool   `json:"isPremium"`
}

type authService struct {
	userRepo repository.UserRepository
	verifier identity.Verifier
	cfg      *config.Config
}

func NewAuthService(userRepo repository.UserRepository, verifier identity.Verifier, cfg *config.Config) AuthService {
	return &authService{
		userRepo: userRepo,
		verifier: verifier,
		cfg:      cfg,
	}
}

// SyncUser принимает id-токен внешнего провайдера, получает проверенное
// удостоверение и создаёт пользователя при первом входе. Никакие записи
// не выполняются до успешной проверки токена.
func (s *authService) SyncUser(ctx context.Context, idToken, name, photoURL string) (*SyncResult, error) {
	claim, err := s.verifier.Verify(ctx, idToken)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByEmail(ctx, claim.Email)
	if err != nil {
		if !errors.Is(err, apperr.ErrNotFound) {
			return nil, err
		}

		// Первый вход - заводим пользователя
		displayName := name
		if displayName == "" {
			displayName = claim.Name
		}
		if displayName == "" {
			displayName = "User"
		}

		photo := photoURL
		if photo == "" {
			photo = claim.PhotoURL
		}

		user = &models.User{
			Email:     claim.Email,
			Name:      displayName,
			PhotoURL:  photo,
			Role:      "user",
			IsPremium: false,
		}

		if err := s.userRepo.Create(ctx, user); err != nil {
			return nil, err
		}
	}

	token, err := s.GenerateAccessToken(user)
	if err != nil {
		return nil, err
	}

	return &SyncResult{
		Token:     token,
		Role:      user.Role,
		IsPremium: user.IsPremium,
	}, nil
}

func (s *authService) GenerateAccessToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.UserID,
		"email":   user.Email,
		"role":    user.Role,
		"exp":     time.Now().Add(s.cfg.AccessTokenDuration).Unix(),
		"iat":     time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString([]byte(s.cfg.JWTSecretKey))
	if err != nil {
		return "", fmt.Errorf("ошибка подписи токена: %w", err)
	}

	return signed, nil
}
