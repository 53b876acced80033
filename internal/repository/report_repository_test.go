package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportRepository_ListGrouped(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewReportRepository(sqlxDB)

	ctx := context.Background()

	query := `
		SELECT r.lesson_id, r.reason, r.reporter_email, r.created_at,
		       l.title, l.author_name, l.category
		FROM reports r
		JOIN lessons l ON l.lesson_id = r.lesson_id
		ORDER BY r.lesson_id, r.created_at
	`

	columns := []string{
		"lesson_id", "reason", "reporter_email", "created_at",
		"title", "author_name", "category",
	}

	t.Run("Жалобы группируются по уроку и сортируются по количеству", func(t *testing.T) {
		calmID := uuid.New().String()
		spamID := uuid.New().String()
		now := time.Now()

		// Один урок с одной жалобой и один с тремя
		rows := sqlmock.NewRows(columns).
			AddRow(calmID, "неточность", "a@example.com", now, "Спокойный урок", "Автор 1", "career").
			AddRow(spamID, "спам", "a@example.com", now, "Спорный урок", "Автор 2", "money").
			AddRow(spamID, "спам", "b@example.com", now.Add(time.Minute), "Спорный урок", "Автор 2", "money").
			AddRow(spamID, "оскорбления", "c@example.com", now.Add(2*time.Minute), "Спорный урок", "Автор 2", "money")

		mock.ExpectQuery(query).WillReturnRows(rows)

		groups, err := repo.ListGrouped(ctx)

		require.NoError(t, err)
		require.Len(t, groups, 2)

		// Самый обжалуемый урок первым
		assert.Equal(t, spamID, groups[0].LessonID)
		assert.Equal(t, 3, groups[0].ReportCount)
		assert.Len(t, groups[0].Reasons, 3)
		assert.Equal(t, "спам", groups[0].Reasons[0].Reason)
		assert.Equal(t, "a@example.com", groups[0].Reasons[0].Reporter)

		assert.Equal(t, calmID, groups[1].LessonID)
		assert.Equal(t, 1, groups[1].ReportCount)
		assert.Equal(t, "Спокойный урок", groups[1].Title)
	})

	t.Run("Повторные жалобы одного пользователя входят в счёт", func(t *testing.T) {
		lessonID := uuid.New().String()
		now := time.Now()

		rows := sqlmock.NewRows(columns).
			AddRow(lessonID, "спам", "a@example.com", now, "Урок", "Автор", "career").
			AddRow(lessonID, "спам", "a@example.com", now.Add(time.Minute), "Урок", "Автор", "career")

		mock.ExpectQuery(query).WillReturnRows(rows)

		groups, err := repo.ListGrouped(ctx)

		require.NoError(t, err)
		require.Len(t, groups, 1)
		assert.Equal(t, 2, groups[0].ReportCount)
	})

	t.Run("Пустой список жалоб", func(t *testing.T) {
		mock.ExpectQuery(query).WillReturnRows(sqlmock.NewRows(columns))

		groups, err := repo.ListGrouped(ctx)

		require.NoError(t, err)
		assert.Empty(t, groups)
	})
}

func TestReportRepository_DeleteByLesson(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewReportRepository(sqlxDB)

	ctx := context.Background()
	lessonID := uuid.New().String()

	t.Run("Снимаются все жалобы одного урока", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM reports WHERE lesson_id = $1`).
			WithArgs(lessonID).
			WillReturnResult(sqlmock.NewResult(0, 3))

		deleted, err := repo.DeleteByLesson(ctx, lessonID)

		require.NoError(t, err)
		assert.Equal(t, int64(3), deleted)
	})

	t.Run("Жалоб не было - ноль без ошибки", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM reports WHERE lesson_id = $1`).
			WithArgs(lessonID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		deleted, err := repo.DeleteByLesson(ctx, lessonID)

		require.NoError(t, err)
		assert.Equal(t, int64(0), deleted)
	})
}
