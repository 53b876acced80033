package service

import (
	"context"

	"lifelessons/internal/models"
	"lifelessons/internal/repository"
)

// ModerationService - операции модераторов: жалобы и флаги уроков.
// Проверка роли admin выполняется на уровне middleware.
type ModerationService interface {
	CreateReport(ctx context.Context, lessonID, reporterEmail, reason string) (*models.Report, error)
	ListReports(ctx context.Context) ([]*repository.ReportGroup, error)
	DismissReports(ctx context.Context, lessonID string) (int64, error)
	SetFeatured(ctx context.Context, lessonID string, isFeatured bool) error
	MarkReviewed(ctx context.Context, lessonID string) error
	ListAllLessons(ctx context.Context) ([]*models.Lesson, error)
}

type moderationService struct {
	reportRepo repository.ReportRepository
	lessonRepo repository.LessonRepository
}

func NewModerationService(reportRepo repository.ReportRepository, lessonRepo repository.LessonRepository) ModerationService {
	return &moderationService{
		reportRepo: reportRepo,
		lessonRepo: lessonRepo,
	}
}

func (s *moderationService) CreateReport(ctx context.Context, lessonID, reporterEmail, reason string) (*models.Report, error) {
	// Жалоба привязывается только к существующему уроку
	if _, err := s.lessonRepo.GetByID(ctx, lessonID); err != nil {
		return nil, err
	}

	report := &models.Report{
		LessonID:      lessonID,
		ReporterEmail: reporterEmail,
		Reason:        reason,
	}

	if err := s.reportRepo.Create(ctx, report); err != nil {
		return nil, err
	}

	return report, nil
}

func (s *moderationService) ListReports(ctx context.Context) ([]*repository.ReportGroup, error) {
	return s.reportRepo.ListGrouped(ctx)
}

// DismissReports снимает все жалобы с урока; жалобы на другие уроки
// не затрагиваются.
func (s *moderationService) DismissReports(ctx context.Context, lessonID string) (int64, error) {
	return s.reportRepo.DeleteByLesson(ctx, lessonID)
}

func (s *moderationService) SetFeatured(ctx context.Context, lessonID string, isFeatured bool) error {
	return s.lessonRepo.SetFeatured(ctx, lessonID, isFeatured)
}

func (s *moderationService) MarkReviewed(ctx context.Context, lessonID string) error {
	return s.lessonRepo.MarkReviewed(ctx, lessonID)
}

func (s *moderationService) ListAllLessons(ctx context.Context) ([]*models.Lesson, error) {
	return s.lessonRepo.ListAll(ctx)
}
