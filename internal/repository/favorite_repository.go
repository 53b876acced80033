package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"lifelessons/internal/apperr"
	"lifelessons/internal/models"
)

type favoriteRepository struct {
	db *sqlx.DB
}

func NewFavoriteRepository(db *sqlx.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

func (r *favoriteRepository) Create(ctx context.Context, favorite *models.Favorite) error {
	if favorite.FavoriteID == "" {
		favorite.FavoriteID = uuid.New().String()
	}
	favorite.AddedAt = time.Now()

	query := `
		INSERT INTO favorites
		(favorite_id, user_email, lesson_id, title, author_name, category, emotional_tone, photo_url, added_at)
		VALUES
		(:favorite_id, :user_email, :lesson_id, :title, :author_name, :category, :emotional_tone, :photo_url, :added_at)
	`

	_, err := r.db.NamedExecContext(ctx, query, favorite)
	if err != nil {
		// Уникальный индекс (user_email, lesson_id) подстраховывает
		// проверку "уже в избранном" при гонке двух запросов
		if strings.Contains(err.Error(), "duplicate key value") {
			return fmt.Errorf("урок уже в избранном: %w", apperr.ErrConflict)
		}
		return fmt.Errorf("ошибка при добавлении в избранное: %w", err)
	}

	return nil
}

func (r *favoriteRepository) Exists(ctx context.Context, userEmail, lessonID string) (bool, error) {
	query := `SELECT COUNT(*) FROM favorites WHERE user_email = $1 AND lesson_id = $2`

	var count int
	err := r.db.GetContext(ctx, &count, query, userEmail, lessonID)
	if err != nil {
		return false, fmt.Errorf("ошибка при проверке избранного: %w", err)
	}

	return count > 0, nil
}

// Delete сообщает, была ли запись действительно удалена: счётчик на уроке
// уменьшается только в этом случае, повтор удаления не даёт второго декремента.
func (r *favoriteRepository) Delete(ctx context.Context, userEmail, lessonID string) (bool, error) {
	query := `DELETE FROM favorites WHERE user_email = $1 AND lesson_id = $2`

	result, err := r.db.ExecContext(ctx, query, userEmail, lessonID)
	if err != nil {
		return false, fmt.Errorf("ошибка при удалении из избранного: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("ошибка при проверке удаленных строк: %w", err)
	}

	return rowsAffected > 0, nil
}

func (r *favoriteRepository) ListByUser(ctx context.Context, userEmail, category, emotionalTone string) ([]*models.Favorite, error) {
	conditions := []string{"user_email = $1"}
	args := []interface{}{userEmail}

	if category != "" {
		args = append(args, category)
		conditions = append(conditions, fmt.Sprintf("category = $%d", len(args)))
	}

	if emotionalTone != "" {
		args = append(args, emotionalTone)
		conditions = append(conditions, fmt.Sprintf("emotional_tone = $%d", len(args)))
	}

	query := fmt.Sprintf(
		`SELECT * FROM favorites WHERE %s ORDER BY added_at DESC`,
		strings.Join(conditions, " AND "),
	)

	favorites := []*models.Favorite{}
	err := r.db.SelectContext(ctx, &favorites, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении избранного: %w", err)
	}

	return favorites, nil
}

func (r *favoriteRepository) CountByUser(ctx context.Context, userEmail string) (int, error) {
	query := `SELECT COUNT(*) FROM favorites WHERE user_email = $1`

	var count int
	err := r.db.GetContext(ctx, &count, query, userEmail)
	if err != nil {
		return 0, fmt.Errorf("ошибка при подсчёте избранного: %w", err)
	}

	return count, nil
}
