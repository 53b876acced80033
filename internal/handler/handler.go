package handlers

import (
	"github.com/go-playground/validator/v10"

	"lifelessons/internal/config"
	"lifelessons/internal/database"
	"lifelessons/internal/repository"
	"lifelessons/internal/service"
)

type Handlers struct {
	AuthService       service.AuthService
	LessonService     service.LessonService
	EngagementService service.EngagementService
	ModerationService service.ModerationService
	StatsService      service.StatsService
	PaymentService    service.PaymentService
	UserService       service.UserService
	LessonRepo        repository.LessonRepository
	CommentRepo       repository.CommentRepository
	DB                database.MethodsDB
	Cfg               *config.Config
	Validate          *validator.Validate
}

func NewHandlers(db database.MethodsDB, repo *repository.Repository, service *service.Service, config *config.Config) *Handlers {
	return &Handlers{
		AuthService:       service.Auth,
		LessonService:     service.Lesson,
		EngagementService: service.Engagement,
		ModerationService: service.Moderation,
		StatsService:      service.Stats,
		PaymentService:    service.Payment,
		UserService:       service.User,
		LessonRepo:        repo.Lesson,
		CommentRepo:       repo.Comment,
		DB:                db,
		Cfg:               config,
		Validate:          validator.New(),
	}
}
