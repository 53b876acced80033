package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"lifelessons/internal/models"
)

type LessonRepository interface {
	Create(ctx context.Context, lesson *models.Lesson) error
	GetByID(ctx context.Context, lessonID string) (*models.Lesson, error)
	GetByIDForView(ctx context.Context, lessonID string) (*models.Lesson, error)
	ListFeed(ctx context.Context, q FeedQuery) (*FeedResult, error)
	ListFeatured(ctx context.Context, limit int) ([]*models.Lesson, error)
	ListMostSaved(ctx context.Context, limit int) ([]*MostSavedLesson, error)
	ListAll(ctx context.Context) ([]*models.Lesson, error)
	Update(ctx context.Context, lesson *models.Lesson) error
	Delete(ctx context.Context, lessonID string) error
	ToggleLike(ctx context.Context, lessonID, userEmail string) (*LikeState, error)
	IncrementFavoritesCount(ctx context.Context, lessonID string) error
	DecrementFavoritesCount(ctx context.Context, lessonID string) error
	SetFeatured(ctx context.Context, lessonID string, isFeatured bool) error
	MarkReviewed(ctx context.Context, lessonID string) error
}

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, userID string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	ListWithLessonCounts(ctx context.Context) ([]*UserWithLessonCount, error)
	UpdateRole(ctx context.Context, userID, role string) error
	Delete(ctx context.Context, userID string) error
	UpgradeToPremium(ctx context.Context, email string) (bool, error)
}

type FavoriteRepository interface {
	Create(ctx context.Context, favorite *models.Favorite) error
	Exists(ctx context.Context, userEmail, lessonID string) (bool, error)
	Delete(ctx context.Context, userEmail, lessonID string) (bool, error)
	ListByUser(ctx context.Context, userEmail, category, emotionalTone string) ([]*models.Favorite, error)
	CountByUser(ctx context.Context, userEmail string) (int, error)
}

type ReportRepository interface {
	Create(ctx context.Context, report *models.Report) error
	ListGrouped(ctx context.Context) ([]*ReportGroup, error)
	DeleteByLesson(ctx context.Context, lessonID string) (int64, error)
}

type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, commentID string) (*models.Comment, error)
	ListByLesson(ctx context.Context, lessonID string) ([]*models.Comment, error)
	Delete(ctx context.Context, commentID string) error
}

type StatsRepository interface {
	CountUsers(ctx context.Context) (int, error)
	CountPublicLessons(ctx context.Context) (int, error)
	CountReports(ctx context.Context) (int, error)
	CountLessonsBetween(ctx context.Context, authorEmail string, from, to time.Time) (int, error)
	CountLessonsByAuthor(ctx context.Context, authorEmail string) (int, error)
	RecentLessonsByAuthor(ctx context.Context, authorEmail string, limit int) ([]*models.Lesson, error)
	TopContributorsByLessons(ctx context.Context, limit int) ([]*Contributor, error)
	TopPublicContributors(ctx context.Context, limit int) ([]*PublicContributor, error)
}

type Repository struct {
	Lesson   LessonRepository
	User     UserRepository
	Favorite FavoriteRepository
	Report   ReportRepository
	Comment  CommentRepository
	Stats    StatsRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		Lesson:   NewLessonRepository(db),
		User:     NewUserRepository(db),
		Favorite: NewFavoriteRepository(db),
		Report:   NewReportRepository(db),
		Comment:  NewCommentRepository(db),
		Stats:    NewStatsRepository(db),
	}
}
