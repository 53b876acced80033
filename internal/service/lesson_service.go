package service

import (
	"context"
	"fmt"
	"io"

	"github.com/lib/pq"

	"lifelessons/internal/apperr"
	"lifelessons/internal/config"
	"lifelessons/internal/models"
	"lifelessons/internal/repository"
	"lifelessons/internal/storage"
)

const summaryLimit = 150

type LessonService interface {
	Create(ctx context.Context, actorEmail string, req CreateLessonRequest) (*models.Lesson, error)
	Update(ctx context.Context, actorEmail, actorRole, lessonID string, patch models.LessonPatch) (*models.Lesson, error)
	Delete(ctx context.Context, actorEmail, actorRole, lessonID string) error
	AttachImage(ctx context.Context, actorEmail, actorRole, lessonID, fileName string, file io.Reader, size int64) (string, error)
}

type CreateLessonRequest struct {
	Title         string   `json:"title" validate:"required,max=255"`
	Story         string   `json:"story" validate:"required"`
	Category      string   `json:"category"`
	EmotionalTone string   `json:"emotionalTone"`
	Tags          []string `json:"tags"`
	PhotoURL      string   `json:"photoURL"`
	Privacy       string   `json:"privacy" validate:"omitempty,oneof=public private"`
	AccessLevel   string   `json:"accessLevel" validate:"omitempty,oneof=free premium"`
}

type lessonService struct {
	lessonRepo repository.LessonRepository
	userRepo   repository.UserRepository
	storage    storage.Storage
	cfg        *config.Config
}

func NewLessonService(lessonRepo repository.LessonRepository, userRepo repository.UserRepository,
	storage storage.Storage, cfg *config.Config) LessonService {
	return &lessonService{
		lessonRepo: lessonRepo,
		userRepo:   userRepo,
		storage:    storage,
		cfg:        cfg,
	}
}

// deriveSummary - первые 150 символов истории плюс многоточие при обрезке.
func deriveSummary(story string) string {
	runes := []rune(story)
	if len(runes) <= summaryLimit {
		return story
	}
	return string(runes[:summaryLimit]) + "..."
}

// canPublishPremium: премиум-урок может создать только премиум-пользователь
// или админ. Проверка выполняется в момент записи и не пересматривается
// задним числом.
func canPublishPremium(user *models.User) bool {
	return user.IsPremium || user.Role == "admin"
}

func (s *lessonService) Create(ctx context.Context, actorEmail string, req CreateLessonRequest) (*models.Lesson, error) {
	author, err := s.userRepo.GetByEmail(ctx, actorEmail)
	if err != nil {
		return nil, err
	}

	privacy := req.Privacy
	if privacy == "" {
		privacy = "public"
	}

	accessLevel := req.AccessLevel
	if accessLevel == "" {
		accessLevel = "free"
	}

	if accessLevel == "premium" && !canPublishPremium(author) {
		return nil, fmt.Errorf("премиум-уроки доступны только премиум-авторам: %w", apperr.ErrForbidden)
	}

	lesson := &models.Lesson{
		Title:         req.Title,
		Story:         req.Story,
		Summary:       deriveSummary(req.Story),
		Category:      req.Category,
		EmotionalTone: req.EmotionalTone,
		Tags:          pq.StringArray(req.Tags),
		PhotoURL:      req.PhotoURL,
		Privacy:       privacy,
		AccessLevel:   accessLevel,
		// Снимок автора на момент создания, без живого join
		AuthorID:    author.UserID,
		AuthorName:  author.Name,
		AuthorEmail: author.Email,
		AuthorPhoto: author.PhotoURL,
	}

	if err := s.lessonRepo.Create(ctx, lesson); err != nil {
		return nil, err
	}

	return lesson, nil
}

func (s *lessonService) Update(ctx context.Context, actorEmail, actorRole, lessonID string, patch models.LessonPatch) (*models.Lesson, error) {
	lesson, err := s.lessonRepo.GetByID(ctx, lessonID)
	if err != nil {
		return nil, err
	}

	if lesson.AuthorEmail != actorEmail && actorRole != "admin" {
		return nil, fmt.Errorf("урок можно изменять только автору: %w", apperr.ErrForbidden)
	}

	// Поднятие уровня доступа до premium проверяется так же, как при создании
	if patch.AccessLevel != nil && *patch.AccessLevel == "premium" && lesson.AccessLevel != "premium" {
		actor, err := s.userRepo.GetByEmail(ctx, actorEmail)
		if err != nil {
			return nil, err
		}
		if !canPublishPremium(actor) {
			return nil, fmt.Errorf("премиум-уроки доступны только премиум-авторам: %w", apperr.ErrForbidden)
		}
	}

	if patch.Title != nil {
		lesson.Title = *patch.Title
	}
	if patch.Story != nil {
		lesson.Story = *patch.Story
		lesson.Summary = deriveSummary(*patch.Story)
	}
	if patch.Category != nil {
		lesson.Category = *patch.Category
	}
	if patch.EmotionalTone != nil {
		lesson.EmotionalTone = *patch.EmotionalTone
	}
	if patch.Tags != nil {
		lesson.Tags = pq.StringArray(*patch.Tags)
	}
	if patch.PhotoURL != nil {
		lesson.PhotoURL = *patch.PhotoURL
	}
	if patch.Privacy != nil {
		lesson.Privacy = *patch.Privacy
	}
	if patch.AccessLevel != nil {
		lesson.AccessLevel = *patch.AccessLevel
	}

	if err := s.lessonRepo.Update(ctx, lesson); err != nil {
		return nil, err
	}

	return lesson, nil
}

func (s *lessonService) Delete(ctx context.Context, actorEmail, actorRole, lessonID string) error {
	lesson, err := s.lessonRepo.GetByID(ctx, lessonID)
	if err != nil {
		return err
	}

	if lesson.AuthorEmail != actorEmail && actorRole != "admin" {
		return fmt.Errorf("урок может удалить только автор или админ: %w", apperr.ErrForbidden)
	}

	return s.lessonRepo.Delete(ctx, lessonID)
}

// AttachImage загружает изображение в хранилище и прописывает ссылку в урок.
func (s *lessonService) AttachImage(ctx context.Context, actorEmail, actorRole, lessonID, fileName string, file io.Reader, size int64) (string, error) {
	lesson, err := s.lessonRepo.GetByID(ctx, lessonID)
	if err != nil {
		return "", err
	}

	if lesson.AuthorEmail != actorEmail && actorRole != "admin" {
		return "", fmt.Errorf("изображение может загрузить только автор: %w", apperr.ErrForbidden)
	}

	_, imageURL, err := s.storage.UploadImage(ctx, lessonID, fileName, file, size)
	if err != nil {
		return "", err
	}

	lesson.PhotoURL = imageURL
	if err := s.lessonRepo.Update(ctx, lesson); err != nil {
		return "", err
	}

	return imageURL, nil
}
