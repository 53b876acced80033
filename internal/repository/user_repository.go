package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"lifelessons/internal/apperr"
	"lifelessons/internal/models"
)

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

// UserWithLessonCount - пользователь с количеством его уроков для
// админской таблицы.
type UserWithLessonCount struct {
	models.User
	LessonsCount int `json:"lessonsCount" db:"lessons_count"`
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if user.UserID == "" {
		user.UserID = uuid.New().String()
	}
	user.CreatedAt = time.Now()

	query := `
		INSERT INTO users (user_id, email, name, photo_url, role, is_premium, created_at)
		VALUES (:user_id, :email, :name, :photo_url, :role, :is_premium, :created_at)
	`

	_, err := r.db.NamedExecContext(ctx, query, user)
	if err != nil {
		return fmt.Errorf("ошибка при создании пользователя: %w", err)
	}

	return nil
}

func (r *userRepository) GetByID(ctx context.Context, userID string) (*models.User, error) {
	var user models.User

	query := `SELECT * FROM users WHERE user_id = $1`

	err := r.db.GetContext(ctx, &user, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("пользователь %s: %w", userID, apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка при получении пользователя: %w", err)
	}

	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User

	query := `SELECT * FROM users WHERE email = $1`

	err := r.db.GetContext(ctx, &user, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("пользователь с email %s: %w", email, apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка при получении пользователя по email: %w", err)
	}

	return &user, nil
}

func (r *userRepository) ListWithLessonCounts(ctx context.Context) ([]*UserWithLessonCount, error) {
	query := `
		SELECT u.user_id, u.email, u.name, u.photo_url, u.role, u.is_premium, u.created_at,
		       COUNT(l.lesson_id) AS lessons_count
		FROM users u
		LEFT JOIN lessons l ON l.author_email = u.email
		GROUP BY u.user_id, u.email, u.name, u.photo_url, u.role, u.is_premium, u.created_at
		ORDER BY u.created_at DESC
	`

	users := []*UserWithLessonCount{}
	err := r.db.SelectContext(ctx, &users, query)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении списка пользователей: %w", err)
	}

	return users, nil
}

func (r *userRepository) UpdateRole(ctx context.Context, userID, role string) error {
	query := `UPDATE users SET role = $2 WHERE user_id = $1`

	result, err := r.db.ExecContext(ctx, query, userID, role)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении роли: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке обновленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("пользователь %s: %w", userID, apperr.ErrNotFound)
	}

	return nil
}

func (r *userRepository) Delete(ctx context.Context, userID string) error {
	query := `DELETE FROM users WHERE user_id = $1`

	result, err := r.db.ExecContext(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("ошибка при удалении пользователя: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке удаленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("пользователь %s: %w", userID, apperr.ErrNotFound)
	}

	return nil
}

// UpgradeToPremium выполняет однонаправленный переход standard -> premium.
// Условие is_premium = FALSE в самом UPDATE делает операцию идемпотентной:
// повторная доставка события ничего не меняет. Возвращает true, если
// переход произошёл именно сейчас.
func (r *userRepository) UpgradeToPremium(ctx context.Context, email string) (bool, error) {
	query := `UPDATE users SET is_premium = TRUE WHERE email = $1 AND is_premium = FALSE`

	result, err := r.db.ExecContext(ctx, query, email)
	if err != nil {
		return false, fmt.Errorf("ошибка при включении премиума: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("ошибка при проверке обновленных строк: %w", err)
	}

	if rowsAffected > 0 {
		return true, nil
	}

	// Строка не изменилась: либо пользователь уже премиум (no-op),
	// либо его не существует
	if _, err := r.GetByEmail(ctx, email); err != nil {
		return false, err
	}

	return false, nil
}
