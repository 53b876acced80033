package service

import (
	"context"
	"fmt"

	"lifelessons/internal/apperr"
	"lifelessons/internal/models"
	"lifelessons/internal/repository"
)

// EngagementService - единственное место, владеющее проблемой
// неатомарной пары "запись в избранное + счётчик на уроке".
// Обе записи идут по отдельности; порядок выбран так, чтобы обрыв
// между ними давал в худшем случае временный недосчёт.
type EngagementService interface {
	ToggleLike(ctx context.Context, lessonID, userEmail string) (*repository.LikeState, error)
	AddFavorite(ctx context.Context, lessonID, userEmail string) error
	RemoveFavorite(ctx context.Context, lessonID, userEmail string) error
	ListFavorites(ctx context.Context, userEmail, category, emotionalTone string) ([]*models.Favorite, error)
	GetLesson(ctx context.Context, lessonID string) (*models.Lesson, error)
}

type engagementService struct {
	lessonRepo   repository.LessonRepository
	favoriteRepo repository.FavoriteRepository
}

func NewEngagementService(lessonRepo repository.LessonRepository, favoriteRepo repository.FavoriteRepository) EngagementService {
	return &engagementService{
		lessonRepo:   lessonRepo,
		favoriteRepo: favoriteRepo,
	}
}

// ToggleLike переключает лайк. Направление не передаётся вызывающим:
// текущее членство в множестве определяет исход.
func (s *engagementService) ToggleLike(ctx context.Context, lessonID, userEmail string) (*repository.LikeState, error) {
	return s.lessonRepo.ToggleLike(ctx, lessonID, userEmail)
}

func (s *engagementService) AddFavorite(ctx context.Context, lessonID, userEmail string) error {
	exists, err := s.favoriteRepo.Exists(ctx, userEmail, lessonID)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("урок уже в избранном: %w", apperr.ErrConflict)
	}

	lesson, err := s.lessonRepo.GetByID(ctx, lessonID)
	if err != nil {
		return err
	}

	favorite := &models.Favorite{
		UserEmail:     userEmail,
		LessonID:      lesson.LessonID,
		Title:         lesson.Title,
		AuthorName:    lesson.AuthorName,
		Category:      lesson.Category,
		EmotionalTone: lesson.EmotionalTone,
		PhotoURL:      lesson.PhotoURL,
	}

	// Сначала запись членства, потом счётчик: обрыв между ними оставит
	// недосчитанный favorites_count, но не лишний
	if err := s.favoriteRepo.Create(ctx, favorite); err != nil {
		return err
	}

	return s.lessonRepo.IncrementFavoritesCount(ctx, lessonID)
}

func (s *engagementService) RemoveFavorite(ctx context.Context, lessonID, userEmail string) error {
	deleted, err := s.favoriteRepo.Delete(ctx, userEmail, lessonID)
	if err != nil {
		return err
	}

	// Декремент только при фактическом удалении: повтор запроса не
	// уменьшит счётчик второй раз
	if !deleted {
		return fmt.Errorf("избранное не найдено: %w", apperr.ErrNotFound)
	}

	return s.lessonRepo.DecrementFavoritesCount(ctx, lessonID)
}

func (s *engagementService) ListFavorites(ctx context.Context, userEmail, category, emotionalTone string) ([]*models.Favorite, error) {
	return s.favoriteRepo.ListByUser(ctx, userEmail, category, emotionalTone)
}

// GetLesson возвращает урок, атомарно увеличив счётчик просмотров.
func (s *engagementService) GetLesson(ctx context.Context, lessonID string) (*models.Lesson, error) {
	return s.lessonRepo.GetByIDForView(ctx, lessonID)
}
