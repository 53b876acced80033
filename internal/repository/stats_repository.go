package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"lifelessons/internal/models"
)

type statsRepository struct {
	db *sqlx.DB
}

func NewStatsRepository(db *sqlx.DB) StatsRepository {
	return &statsRepository{db: db}
}

// Contributor - автор в админском топе (по всем урокам).
type Contributor struct {
	AuthorEmail string `json:"email" db:"author_email"`
	Name        string `json:"name" db:"name"`
	Count       int    `json:"count" db:"count"`
}

// PublicContributor - автор в публичном топе ленты.
type PublicContributor struct {
	AuthorEmail string `json:"email" db:"author_email"`
	Name        string `json:"name" db:"name"`
	LessonCount int    `json:"lessonCount" db:"lesson_count"`
	TotalLikes  int    `json:"totalLikes" db:"total_likes"`
}

func (r *statsRepository) CountUsers(ctx context.Context) (int, error) {
	var count int

	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM users`)
	if err != nil {
		return 0, fmt.Errorf("ошибка при подсчёте пользователей: %w", err)
	}

	return count, nil
}

func (r *statsRepository) CountPublicLessons(ctx context.Context) (int, error) {
	var count int

	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM lessons WHERE privacy = 'public'`)
	if err != nil {
		return 0, fmt.Errorf("ошибка при подсчёте публичных уроков: %w", err)
	}

	return count, nil
}

func (r *statsRepository) CountReports(ctx context.Context) (int, error) {
	var count int

	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM reports`)
	if err != nil {
		return 0, fmt.Errorf("ошибка при подсчёте жалоб: %w", err)
	}

	return count, nil
}

// CountLessonsBetween считает уроки, созданные в [from, to).
// Пустой authorEmail - по всем авторам.
func (r *statsRepository) CountLessonsBetween(ctx context.Context, authorEmail string, from, to time.Time) (int, error) {
	var count int
	var err error

	if authorEmail == "" {
		query := `SELECT COUNT(*) FROM lessons WHERE created_at >= $1 AND created_at < $2`
		err = r.db.GetContext(ctx, &count, query, from, to)
	} else {
		query := `SELECT COUNT(*) FROM lessons WHERE author_email = $1 AND created_at >= $2 AND created_at < $3`
		err = r.db.GetContext(ctx, &count, query, authorEmail, from, to)
	}

	if err != nil {
		return 0, fmt.Errorf("ошибка при подсчёте уроков за период: %w", err)
	}

	return count, nil
}

func (r *statsRepository) CountLessonsByAuthor(ctx context.Context, authorEmail string) (int, error) {
	var count int

	query := `SELECT COUNT(*) FROM lessons WHERE author_email = $1`

	err := r.db.GetContext(ctx, &count, query, authorEmail)
	if err != nil {
		return 0, fmt.Errorf("ошибка при подсчёте уроков автора: %w", err)
	}

	return count, nil
}

func (r *statsRepository) RecentLessonsByAuthor(ctx context.Context, authorEmail string, limit int) ([]*models.Lesson, error) {
	query := `SELECT * FROM lessons WHERE author_email = $1 ORDER BY created_at DESC LIMIT $2`

	lessons := []*models.Lesson{}
	err := r.db.SelectContext(ctx, &lessons, query, authorEmail, limit)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении последних уроков автора: %w", err)
	}

	return lessons, nil
}

// TopContributorsByLessons группирует все уроки по email автора.
// Имя берётся из самого раннего урока автора.
func (r *statsRepository) TopContributorsByLessons(ctx context.Context, limit int) ([]*Contributor, error) {
	query := `
		SELECT author_email,
		       (array_agg(author_name ORDER BY created_at ASC))[1] AS name,
		       COUNT(*) AS count
		FROM lessons
		GROUP BY author_email
		ORDER BY count DESC
		LIMIT $1
	`

	contributors := []*Contributor{}
	err := r.db.SelectContext(ctx, &contributors, query, limit)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении активных авторов: %w", err)
	}

	return contributors, nil
}

// TopPublicContributors - публичный топ: только публичные уроки,
// сортировка по числу уроков, затем по сумме лайков.
func (r *statsRepository) TopPublicContributors(ctx context.Context, limit int) ([]*PublicContributor, error) {
	query := `
		SELECT author_email,
		       (array_agg(author_name ORDER BY created_at ASC))[1] AS name,
		       COUNT(*) AS lesson_count,
		       COALESCE(SUM(likes_count), 0) AS total_likes
		FROM lessons
		WHERE privacy = 'public'
		GROUP BY author_email
		ORDER BY lesson_count DESC, total_likes DESC
		LIMIT $1
	`

	contributors := []*PublicContributor{}
	err := r.db.SelectContext(ctx, &contributors, query, limit)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении топа авторов: %w", err)
	}

	return contributors, nil
}
