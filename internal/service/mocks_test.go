package service

import (
	"context"
	"io"
	"time"

	"github.com/stretchr/testify/mock"

	"lifelessons/internal/identity"
	"lifelessons/internal/models"
	"lifelessons/internal/payments"
	"lifelessons/internal/repository"
)

type MockLessonRepository struct {
	mock.Mock
}

func (m *MockLessonRepository) Create(ctx context.Context, lesson *models.Lesson) error {
	args := m.Called(ctx, lesson)
	return args.Error(0)
}

func (m *MockLessonRepository) GetByID(ctx context.Context, lessonID string) (*models.Lesson, error) {
	args := m.Called(ctx, lessonID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Lesson), args.Error(1)
}

func (m *MockLessonRepository) GetByIDForView(ctx context.Context, lessonID string) (*models.Lesson, error) {
	args := m.Called(ctx, lessonID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Lesson), args.Error(1)
}

func (m *MockLessonRepository) ListFeed(ctx context.Context, q repository.FeedQuery) (*repository.FeedResult, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.FeedResult), args.Error(1)
}

func (m *MockLessonRepository) ListFeatured(ctx context.Context, limit int) ([]*models.Lesson, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]*models.Lesson), args.Error(1)
}

func (m *MockLessonRepository) ListMostSaved(ctx context.Context, limit int) ([]*repository.MostSavedLesson, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]*repository.MostSavedLesson), args.Error(1)
}

func (m *MockLessonRepository) ListAll(ctx context.Context) ([]*models.Lesson, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.Lesson), args.Error(1)
}

func (m *MockLessonRepository) Update(ctx context.Context, lesson *models.Lesson) error {
	args := m.Called(ctx, lesson)
	return args.Error(0)
}

func (m *MockLessonRepository) Delete(ctx context.Context, lessonID string) error {
	args := m.Called(ctx, lessonID)
	return args.Error(0)
}

func (m *MockLessonRepository) ToggleLike(ctx context.Context, lessonID, userEmail string) (*repository.LikeState, error) {
	args := m.Called(ctx, lessonID, userEmail)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.LikeState), args.Error(1)
}

func (m *MockLessonRepository) IncrementFavoritesCount(ctx context.Context, lessonID string) error {
	args := m.Called(ctx, lessonID)
	return args.Error(0)
}

func (m *MockLessonRepository) DecrementFavoritesCount(ctx context.Context, lessonID string) error {
	args := m.Called(ctx, lessonID)
	return args.Error(0)
}

func (m *MockLessonRepository) SetFeatured(ctx context.Context, lessonID string, isFeatured bool) error {
	args := m.Called(ctx, lessonID, isFeatured)
	return args.Error(0)
}

func (m *MockLessonRepository) MarkReviewed(ctx context.Context, lessonID string) error {
	args := m.Called(ctx, lessonID)
	return args.Error(0)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, userID string) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) ListWithLessonCounts(ctx context.Context) ([]*repository.UserWithLessonCount, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*repository.UserWithLessonCount), args.Error(1)
}

func (m *MockUserRepository) UpdateRole(ctx context.Context, userID, role string) error {
	args := m.Called(ctx, userID, role)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockUserRepository) UpgradeToPremium(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

type MockFavoriteRepository struct {
	mock.Mock
}

func (m *MockFavoriteRepository) Create(ctx context.Context, favorite *models.Favorite) error {
	args := m.Called(ctx, favorite)
	return args.Error(0)
}

func (m *MockFavoriteRepository) Exists(ctx context.Context, userEmail, lessonID string) (bool, error) {
	args := m.Called(ctx, userEmail, lessonID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFavoriteRepository) Delete(ctx context.Context, userEmail, lessonID string) (bool, error) {
	args := m.Called(ctx, userEmail, lessonID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFavoriteRepository) ListByUser(ctx context.Context, userEmail, category, emotionalTone string) ([]*models.Favorite, error) {
	args := m.Called(ctx, userEmail, category, emotionalTone)
	return args.Get(0).([]*models.Favorite), args.Error(1)
}

func (m *MockFavoriteRepository) CountByUser(ctx context.Context, userEmail string) (int, error) {
	args := m.Called(ctx, userEmail)
	return args.Int(0), args.Error(1)
}

type MockStatsRepository struct {
	mock.Mock
}

func (m *MockStatsRepository) CountUsers(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockStatsRepository) CountPublicLessons(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockStatsRepository) CountReports(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockStatsRepository) CountLessonsBetween(ctx context.Context, authorEmail string, from, to time.Time) (int, error) {
	args := m.Called(ctx, authorEmail, from, to)
	return args.Int(0), args.Error(1)
}

func (m *MockStatsRepository) CountLessonsByAuthor(ctx context.Context, authorEmail string) (int, error) {
	args := m.Called(ctx, authorEmail)
	return args.Int(0), args.Error(1)
}

func (m *MockStatsRepository) RecentLessonsByAuthor(ctx context.Context, authorEmail string, limit int) ([]*models.Lesson, error) {
	args := m.Called(ctx, authorEmail, limit)
	return args.Get(0).([]*models.Lesson), args.Error(1)
}

func (m *MockStatsRepository) TopContributorsByLessons(ctx context.Context, limit int) ([]*repository.Contributor, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]*repository.Contributor), args.Error(1)
}

func (m *MockStatsRepository) TopPublicContributors(ctx context.Context, limit int) ([]*repository.PublicContributor, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]*repository.PublicContributor), args.Error(1)
}

type MockPaymentProvider struct {
	mock.Mock
}

func (m *MockPaymentProvider) ParseWebhookEvent(payload []byte, signature string) (*payments.Event, error) {
	args := m.Called(payload, signature)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payments.Event), args.Error(1)
}

func (m *MockPaymentProvider) GetCheckoutSession(ctx context.Context, sessionID string) (*payments.Session, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payments.Session), args.Error(1)
}

func (m *MockPaymentProvider) CreateCheckoutSession(ctx context.Context, userID, email string) (string, error) {
	args := m.Called(ctx, userID, email)
	return args.String(0), args.Error(1)
}

type MockVerifier struct {
	mock.Mock
}

func (m *MockVerifier) Verify(ctx context.Context, idToken string) (*identity.Claim, error) {
	args := m.Called(ctx, idToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Claim), args.Error(1)
}

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) UploadImage(ctx context.Context, lessonID, fileName string, file io.Reader, size int64) (string, string, error) {
	args := m.Called(ctx, lessonID, fileName, file, size)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockStorage) DeleteImage(ctx context.Context, objectName string) error {
	args := m.Called(ctx, objectName)
	return args.Error(0)
}

func (m *MockStorage) GetImageURL(ctx context.Context, objectName string) (string, error) {
	args := m.Called(ctx, objectName)
	return args.String(0), args.Error(1)
}
