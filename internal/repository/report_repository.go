package repository

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"lifelessons/internal/models"
)

type reportRepository struct {
	db *sqlx.DB
}

func NewReportRepository(db *sqlx.DB) ReportRepository {
	return &reportRepository{db: db}
}

// ReportEntry - одна жалоба внутри группы.
type ReportEntry struct {
	Reason    string    `json:"reason"`
	Reporter  string    `json:"reporter"`
	Timestamp time.Time `json:"timestamp"`
}

// ReportGroup - жалобы на один урок вместе с метаданными урока.
type ReportGroup struct {
	LessonID    string        `json:"lessonId"`
	Title       string        `json:"title"`
	AuthorName  string        `json:"authorName"`
	Category    string        `json:"category"`
	ReportCount int           `json:"reportCount"`
	Reasons     []ReportEntry `json:"reasons"`
}

// Повторные жалобы одного пользователя на один урок допускаются:
// количество жалоб взвешивает серьёзность для модератора.
func (r *reportRepository) Create(ctx context.Context, report *models.Report) error {
	if report.ReportID == "" {
		report.ReportID = uuid.New().String()
	}
	report.CreatedAt = time.Now()

	query := `
		INSERT INTO reports (report_id, lesson_id, reporter_email, reason, created_at)
		VALUES (:report_id, :lesson_id, :reporter_email, :reason, :created_at)
	`

	_, err := r.db.NamedExecContext(ctx, query, report)
	if err != nil {
		return fmt.Errorf("ошибка при создании жалобы: %w", err)
	}

	return nil
}

// ListGrouped читает все жалобы одним запросом с метаданными уроков и
// группирует по lesson_id, сортируя группы по убыванию числа жалоб.
// JOIN отбрасывает жалобы на уже удалённые уроки.
func (r *reportRepository) ListGrouped(ctx context.Context) ([]*ReportGroup, error) {
	query := `
		SELECT r.lesson_id, r.reason, r.reporter_email, r.created_at,
		       l.title, l.author_name, l.category
		FROM reports r
		JOIN lessons l ON l.lesson_id = r.lesson_id
		ORDER BY r.lesson_id, r.created_at
	`

	rows := []struct {
		LessonID      string    `db:"lesson_id"`
		Reason        string    `db:"reason"`
		ReporterEmail string    `db:"reporter_email"`
		CreatedAt     time.Time `db:"created_at"`
		Title         string    `db:"title"`
		AuthorName    string    `db:"author_name"`
		Category      string    `db:"category"`
	}{}

	err := r.db.SelectContext(ctx, &rows, query)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении жалоб: %w", err)
	}

	byLesson := make(map[string]*ReportGroup)
	order := []string{}
	for _, row := range rows {
		group, ok := byLesson[row.LessonID]
		if !ok {
			group = &ReportGroup{
				LessonID:   row.LessonID,
				Title:      row.Title,
				AuthorName: row.AuthorName,
				Category:   row.Category,
			}
			byLesson[row.LessonID] = group
			order = append(order, row.LessonID)
		}
		group.ReportCount++
		group.Reasons = append(group.Reasons, ReportEntry{
			Reason:    row.Reason,
			Reporter:  row.ReporterEmail,
			Timestamp: row.CreatedAt,
		})
	}

	groups := make([]*ReportGroup, 0, len(order))
	for _, lessonID := range order {
		groups = append(groups, byLesson[lessonID])
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].ReportCount > groups[j].ReportCount
	})

	return groups, nil
}

// DeleteByLesson снимает все жалобы с урока одной операцией.
func (r *reportRepository) DeleteByLesson(ctx context.Context, lessonID string) (int64, error) {
	query := `DELETE FROM reports WHERE lesson_id = $1`

	result, err := r.db.ExecContext(ctx, query, lessonID)
	if err != nil {
		return 0, fmt.Errorf("ошибка при удалении жалоб: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("ошибка при проверке удаленных строк: %w", err)
	}

	return deleted, nil
}
