package service

import (
	"context"
	"time"

	"lifelessons/internal/models"
	"lifelessons/internal/repository"
)

const growthDays = 7

type StatsService interface {
	AdminStats(ctx context.Context, now time.Time) (*AdminStats, error)
	UserStats(ctx context.Context, email string, now time.Time) (*UserStats, error)
	TopContributors(ctx context.Context, limit int) ([]*repository.PublicContributor, error)
}

// GrowthPoint - один календарный день серии роста.
type GrowthPoint struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type AdminStats struct {
	TotalUsers         int                       `json:"totalUsers"`
	TotalPublicLessons int                       `json:"totalPublicLessons"`
	TotalReports       int                       `json:"totalReports"`
	TodayLessons       int                       `json:"todayLessons"`
	ActiveContributors []*repository.Contributor `json:"activeContributors"`
	GrowthData         []GrowthPoint             `json:"growthData"`
}

type UserStats struct {
	LessonsCount     int              `json:"lessonsCount"`
	FavoritesCount   int              `json:"favoritesCount"`
	RecentLessons    []*models.Lesson `json:"recentLessons"`
	ContributionData []GrowthPoint    `json:"contributionData"`
}

type statsService struct {
	statsRepo    repository.StatsRepository
	favoriteRepo repository.FavoriteRepository
}

func NewStatsService(statsRepo repository.StatsRepository, favoriteRepo repository.FavoriteRepository) StatsService {
	return &statsService{
		statsRepo:    statsRepo,
		favoriteRepo: favoriteRepo,
	}
}

// dayStart - локальная полночь календарного дня, в который попадает t.
func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// growthSeries считает 7 дневных корзин от старой к новой, каждая -
// [полночь_i, полночь_i+1) в локальном времени сервера, с привязкой к now.
// Пустой email - серия по всем авторам.
func (s *statsService) growthSeries(ctx context.Context, authorEmail string, now time.Time) ([]GrowthPoint, error) {
	series := make([]GrowthPoint, 0, growthDays)

	for i := growthDays - 1; i >= 0; i-- {
		from := dayStart(now.AddDate(0, 0, -i))
		to := from.AddDate(0, 0, 1)

		count, err := s.statsRepo.CountLessonsBetween(ctx, authorEmail, from, to)
		if err != nil {
			return nil, err
		}

		series = append(series, GrowthPoint{
			Date:  from.Format("Mon"),
			Count: count,
		})
	}

	return series, nil
}

func (s *statsService) AdminStats(ctx context.Context, now time.Time) (*AdminStats, error) {
	totalUsers, err := s.statsRepo.CountUsers(ctx)
	if err != nil {
		return nil, err
	}

	totalPublicLessons, err := s.statsRepo.CountPublicLessons(ctx)
	if err != nil {
		return nil, err
	}

	totalReports, err := s.statsRepo.CountReports(ctx)
	if err != nil {
		return nil, err
	}

	todayLessons, err := s.statsRepo.CountLessonsBetween(ctx, "", dayStart(now), dayStart(now).AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	contributors, err := s.statsRepo.TopContributorsByLessons(ctx, 5)
	if err != nil {
		return nil, err
	}

	growth, err := s.growthSeries(ctx, "", now)
	if err != nil {
		return nil, err
	}

	return &AdminStats{
		TotalUsers:         totalUsers,
		TotalPublicLessons: totalPublicLessons,
		TotalReports:       totalReports,
		TodayLessons:       todayLessons,
		ActiveContributors: contributors,
		GrowthData:         growth,
	}, nil
}

// UserStats считает избранное по строкам favorites, а не по полю на
// пользователе: список на пользователе рос бы без ограничений и
// расходился бы со счётчиками.
func (s *statsService) UserStats(ctx context.Context, email string, now time.Time) (*UserStats, error) {
	lessonsCount, err := s.statsRepo.CountLessonsByAuthor(ctx, email)
	if err != nil {
		return nil, err
	}

	favoritesCount, err := s.favoriteRepo.CountByUser(ctx, email)
	if err != nil {
		return nil, err
	}

	recent, err := s.statsRepo.RecentLessonsByAuthor(ctx, email, 5)
	if err != nil {
		return nil, err
	}

	contribution, err := s.growthSeries(ctx, email, now)
	if err != nil {
		return nil, err
	}

	return &UserStats{
		LessonsCount:     lessonsCount,
		FavoritesCount:   favoritesCount,
		RecentLessons:    recent,
		ContributionData: contribution,
	}, nil
}

func (s *statsService) TopContributors(ctx context.Context, limit int) ([]*repository.PublicContributor, error) {
	if limit < 1 {
		limit = 5
	}
	return s.statsRepo.TopPublicContributors(ctx, limit)
}
