package service

import (
	"lifelessons/internal/config"
	"lifelessons/internal/identity"
	"lifelessons/internal/payments"
	"lifelessons/internal/repository"
	"lifelessons/internal/storage"
)

type Service struct {
	Auth       AuthService
	Lesson     LessonService
	Engagement EngagementService
	Moderation ModerationService
	Stats      StatsService
	Payment    PaymentService
	User       UserService
}

func NewService(rep *repository.Repository, cfg *config.Config, storage storage.Storage,
	verifier identity.Verifier, provider payments.Provider) *Service {
	return &Service{
		Auth:       NewAuthService(rep.User, verifier, cfg),
		Lesson:     NewLessonService(rep.Lesson, rep.User, storage, cfg),
		Engagement: NewEngagementService(rep.Lesson, rep.Favorite),
		Moderation: NewModerationService(rep.Report, rep.Lesson),
		Stats:      NewStatsService(rep.Stats, rep.Favorite),
		Payment:    NewPaymentService(rep.User, provider),
		User:       NewUserService(rep.User),
	}
}
