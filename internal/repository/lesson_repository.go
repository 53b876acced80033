package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"lifelessons/internal/apperr"
	"lifelessons/internal/models"
)

type lessonRepository struct {
	db *sqlx.DB
}

func NewLessonRepository(db *sqlx.DB) LessonRepository {
	return &lessonRepository{db: db}
}

// LikeState - результат переключения лайка.
type LikeState struct {
	Liked      bool `json:"liked"`
	LikesCount int  `json:"likesCount"`
}

// MostSavedLesson - проекция для блока "чаще всего сохраняют".
type MostSavedLesson struct {
	LessonID       string `json:"lessonId" db:"lesson_id"`
	Title          string `json:"title" db:"title"`
	AuthorName     string `json:"authorName" db:"author_name"`
	Category       string `json:"category" db:"category"`
	FavoritesCount int    `json:"favoritesCount" db:"favorites_count"`
}

func (r *lessonRepository) Create(ctx context.Context, lesson *models.Lesson) error {
	if lesson.LessonID == "" {
		lesson.LessonID = uuid.New().String()
	}

	now := time.Now()
	lesson.CreatedAt = now
	lesson.UpdatedAt = now

	if lesson.Tags == nil {
		lesson.Tags = pq.StringArray{}
	}
	lesson.Likes = pq.StringArray{}

	query := `
		INSERT INTO lessons
		(lesson_id, title, story, summary, category, emotional_tone, tags, photo_url,
		 privacy, access_level, author_id, author_name, author_email, author_photo,
		 likes, likes_count, favorites_count, views_count, is_featured, reviewed,
		 created_at, updated_at)
		VALUES
		(:lesson_id, :title, :story, :summary, :category, :emotional_tone, :tags, :photo_url,
		 :privacy, :access_level, :author_id, :author_name, :author_email, :author_photo,
		 :likes, :likes_count, :favorites_count, :views_count, :is_featured, :reviewed,
		 :created_at, :updated_at)
	`

	_, err := r.db.NamedExecContext(ctx, query, lesson)
	if err != nil {
		return fmt.Errorf("ошибка при создании урока: %w", err)
	}

	return nil
}

func (r *lessonRepository) GetByID(ctx context.Context, lessonID string) (*models.Lesson, error) {
	var lesson models.Lesson

	query := `SELECT * FROM lessons WHERE lesson_id = $1`

	err := r.db.GetContext(ctx, &lesson, query, lessonID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("урок %s: %w", lessonID, apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка при получении урока: %w", err)
	}

	return &lesson, nil
}

// GetByIDForView атомарно увеличивает счётчик просмотров и возвращает
// строку после инкремента одной операцией.
func (r *lessonRepository) GetByIDForView(ctx context.Context, lessonID string) (*models.Lesson, error) {
	var lesson models.Lesson

	query := `
		UPDATE lessons
		SET views_count = views_count + 1
		WHERE lesson_id = $1
		RETURNING *
	`

	err := r.db.GetContext(ctx, &lesson, query, lessonID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("урок %s: %w", lessonID, apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка при получении урока: %w", err)
	}

	return &lesson, nil
}

func (r *lessonRepository) ListFeed(ctx context.Context, q FeedQuery) (*FeedResult, error) {
	q = q.Normalize()

	where, args := q.BuildWhere()

	listQuery := fmt.Sprintf(
		`SELECT * FROM lessons WHERE %s ORDER BY %s LIMIT %d OFFSET %d`,
		where, q.OrderBy(), q.Limit, q.Offset(),
	)

	lessons := []*models.Lesson{}
	err := r.db.SelectContext(ctx, &lessons, listQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении ленты уроков: %w", err)
	}

	// Общее количество считается отдельным запросом по тому же фильтру
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM lessons WHERE %s`, where)

	var total int
	err = r.db.GetContext(ctx, &total, countQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка при подсчёте уроков: %w", err)
	}

	return &FeedResult{
		Lessons:      lessons,
		TotalLessons: total,
		TotalPages:   TotalPages(total, q.Limit),
		CurrentPage:  q.Page,
	}, nil
}

// ListFeatured возвращает до limit избранных уроков, добирая нехватку
// самыми залайканными публичными уроками. Порядок: сначала избранные,
// потом добор.
func (r *lessonRepository) ListFeatured(ctx context.Context, limit int) ([]*models.Lesson, error) {
	if limit < 1 {
		limit = 8
	}

	featuredQuery := `
		SELECT * FROM lessons
		WHERE is_featured = TRUE AND privacy = 'public'
		ORDER BY created_at DESC
		LIMIT $1
	`

	lessons := []*models.Lesson{}
	err := r.db.SelectContext(ctx, &lessons, featuredQuery, limit)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении избранных уроков: %w", err)
	}

	if len(lessons) >= limit {
		return lessons, nil
	}

	featuredIDs := make([]string, 0, len(lessons))
	for _, l := range lessons {
		featuredIDs = append(featuredIDs, l.LessonID)
	}

	backfillQuery := `
		SELECT * FROM lessons
		WHERE privacy = 'public' AND NOT (lesson_id = ANY($1::uuid[]))
		ORDER BY likes_count DESC
		LIMIT $2
	`

	more := []*models.Lesson{}
	err = r.db.SelectContext(ctx, &more, backfillQuery, pq.Array(featuredIDs), limit-len(lessons))
	if err != nil {
		return nil, fmt.Errorf("ошибка при доборе уроков: %w", err)
	}

	return append(lessons, more...), nil
}

func (r *lessonRepository) ListMostSaved(ctx context.Context, limit int) ([]*MostSavedLesson, error) {
	if limit < 1 {
		limit = 5
	}

	query := `
		SELECT lesson_id, title, author_name, category, favorites_count
		FROM lessons
		WHERE privacy = 'public'
		ORDER BY favorites_count DESC
		LIMIT $1
	`

	lessons := []*MostSavedLesson{}
	err := r.db.SelectContext(ctx, &lessons, query, limit)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении сохраняемых уроков: %w", err)
	}

	return lessons, nil
}

func (r *lessonRepository) ListAll(ctx context.Context) ([]*models.Lesson, error) {
	query := `SELECT * FROM lessons ORDER BY created_at DESC`

	lessons := []*models.Lesson{}
	err := r.db.SelectContext(ctx, &lessons, query)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении всех уроков: %w", err)
	}

	return lessons, nil
}

func (r *lessonRepository) Update(ctx context.Context, lesson *models.Lesson) error {
	lesson.UpdatedAt = time.Now()

	query := `
		UPDATE lessons SET
			title = :title,
			story = :story,
			summary = :summary,
			category = :category,
			emotional_tone = :emotional_tone,
			tags = :tags,
			photo_url = :photo_url,
			privacy = :privacy,
			access_level = :access_level,
			updated_at = :updated_at
		WHERE lesson_id = :lesson_id
	`

	result, err := r.db.NamedExecContext(ctx, query, lesson)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении урока: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке обновленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("урок %s: %w", lesson.LessonID, apperr.ErrNotFound)
	}

	return nil
}

func (r *lessonRepository) Delete(ctx context.Context, lessonID string) error {
	query := `DELETE FROM lessons WHERE lesson_id = $1`

	result, err := r.db.ExecContext(ctx, query, lessonID)
	if err != nil {
		return fmt.Errorf("ошибка при удалении урока: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке удаленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("урок %s: %w", lessonID, apperr.ErrNotFound)
	}

	return nil
}

// ToggleLike переключает лайк одним условным обновлением на каждое
// направление. Членство в множестве likes проверяется в самом условии
// UPDATE, поэтому likes_count совпадает с мощностью likes после любого
// исхода, включая конкурирующие повторные запросы одного пользователя.
func (r *lessonRepository) ToggleLike(ctx context.Context, lessonID, userEmail string) (*LikeState, error) {
	unlikeQuery := `
		UPDATE lessons
		SET likes = array_remove(likes, $2), likes_count = likes_count - 1
		WHERE lesson_id = $1 AND $2 = ANY(likes)
		RETURNING likes_count
	`

	var count int
	err := r.db.GetContext(ctx, &count, unlikeQuery, lessonID, userEmail)
	if err == nil {
		return &LikeState{Liked: false, LikesCount: count}, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("ошибка при снятии лайка: %w", err)
	}

	likeQuery := `
		UPDATE lessons
		SET likes = array_append(likes, $2), likes_count = likes_count + 1
		WHERE lesson_id = $1 AND NOT ($2 = ANY(likes))
		RETURNING likes_count
	`

	err = r.db.GetContext(ctx, &count, likeQuery, lessonID, userEmail)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Ни одно из условий не совпало - урока не существует
			return nil, fmt.Errorf("урок %s: %w", lessonID, apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка при установке лайка: %w", err)
	}

	return &LikeState{Liked: true, LikesCount: count}, nil
}

func (r *lessonRepository) IncrementFavoritesCount(ctx context.Context, lessonID string) error {
	query := `UPDATE lessons SET favorites_count = favorites_count + 1 WHERE lesson_id = $1`

	_, err := r.db.ExecContext(ctx, query, lessonID)
	if err != nil {
		return fmt.Errorf("ошибка при увеличении счётчика избранного: %w", err)
	}

	return nil
}

func (r *lessonRepository) DecrementFavoritesCount(ctx context.Context, lessonID string) error {
	query := `UPDATE lessons SET favorites_count = GREATEST(favorites_count - 1, 0) WHERE lesson_id = $1`

	_, err := r.db.ExecContext(ctx, query, lessonID)
	if err != nil {
		return fmt.Errorf("ошибка при уменьшении счётчика избранного: %w", err)
	}

	return nil
}

func (r *lessonRepository) SetFeatured(ctx context.Context, lessonID string, isFeatured bool) error {
	query := `UPDATE lessons SET is_featured = $2 WHERE lesson_id = $1`

	result, err := r.db.ExecContext(ctx, query, lessonID, isFeatured)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении признака избранного: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке обновленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("урок %s: %w", lessonID, apperr.ErrNotFound)
	}

	return nil
}

func (r *lessonRepository) MarkReviewed(ctx context.Context, lessonID string) error {
	query := `UPDATE lessons SET reviewed = TRUE WHERE lesson_id = $1`

	result, err := r.db.ExecContext(ctx, query, lessonID)
	if err != nil {
		return fmt.Errorf("ошибка при отметке урока проверенным: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке обновленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("урок %s: %w", lessonID, apperr.ErrNotFound)
	}

	return nil
}
