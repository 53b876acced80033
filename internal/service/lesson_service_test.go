package service

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"lifelessons/internal/apperr"
	"lifelessons/internal/config"
	"lifelessons/internal/models"
)

func TestDeriveSummary(t *testing.T) {
	t.Run("Короткая история остаётся без изменений", func(t *testing.T) {
		story := "Короткая история."
		assert.Equal(t, story, deriveSummary(story))
	})

	t.Run("Длинная история обрезается с многоточием", func(t *testing.T) {
		story := strings.Repeat("а", 200)
		summary := deriveSummary(story)

		assert.Equal(t, strings.Repeat("а", 150)+"...", summary)
	})

	t.Run("Обрезка не рвёт многобайтовые символы", func(t *testing.T) {
		story := strings.Repeat("ё", 151)
		summary := deriveSummary(story)

		assert.Equal(t, 150, len([]rune(summary))-3)
		assert.True(t, strings.HasSuffix(summary, "..."))
	})

	t.Run("История ровно в лимит не обрезается", func(t *testing.T) {
		story := strings.Repeat("b", 150)
		assert.Equal(t, story, deriveSummary(story))
	})
}

func TestLessonService_Create(t *testing.T) {
	ctx := context.Background()
	authorEmail := "author@example.com"

	author := &models.User{
		UserID:   uuid.New().String(),
		Email:    authorEmail,
		Name:     "Автор",
		PhotoURL: "https://example.com/a.jpg",
		Role:     "user",
	}

	t.Run("Урок создаётся со снимком автора и производным описанием", func(t *testing.T) {
		lessonRepo := new(MockLessonRepository)
		userRepo := new(MockUserRepository)
		svc := NewLessonService(lessonRepo, userRepo, new(MockStorage), &config.Config{})

		userRepo.On("GetByEmail", ctx, authorEmail).Return(author, nil)
		lessonRepo.On("Create", ctx, mock.AnythingOfType("*models.Lesson")).Return(nil)

		lesson, err := svc.Create(ctx, authorEmail, CreateLessonRequest{
			Title: "Урок о доверии",
			Story: "Однажды я понял, что доверие строится годами.",
		})

		require.NoError(t, err)
		assert.Equal(t, author.UserID, lesson.AuthorID)
		assert.Equal(t, author.Name, lesson.AuthorName)
		assert.Equal(t, author.Email, lesson.AuthorEmail)
		assert.Equal(t, "public", lesson.Privacy)
		assert.Equal(t, "free", lesson.AccessLevel)
		assert.Equal(t, lesson.Story, lesson.Summary)
	})

	t.Run("Обычный пользователь не может создать премиум-урок", func(t *testing.T) {
		lessonRepo := new(MockLessonRepository)
		userRepo := new(MockUserRepository)
		svc := NewLessonService(lessonRepo, userRepo, new(MockStorage), &config.Config{})

		userRepo.On("GetByEmail", ctx, authorEmail).Return(author, nil)

		lesson, err := svc.Create(ctx, authorEmail, CreateLessonRequest{
			Title:       "Закрытый урок",
			Story:       "Только для премиум.",
			AccessLevel: "premium",
		})

		assert.Nil(t, lesson)
		assert.ErrorIs(t, err, apperr.ErrForbidden)
		lessonRepo.AssertNotCalled(t, "Create")
	})

	t.Run("Премиум-автор создаёт премиум-урок", func(t *testing.T) {
		lessonRepo := new(MockLessonRepository)
		userRepo := new(MockUserRepository)
		svc := NewLessonService(lessonRepo, userRepo, new(MockStorage), &config.Config{})

		premium := &models.User{UserID: uuid.New().String(), Email: authorEmail, IsPremium: true}
		userRepo.On("GetByEmail", ctx, authorEmail).Return(premium, nil)
		lessonRepo.On("Create", ctx, mock.AnythingOfType("*models.Lesson")).Return(nil)

		lesson, err := svc.Create(ctx, authorEmail, CreateLessonRequest{
			Title:       "Закрытый урок",
			Story:       "Только для премиум.",
			AccessLevel: "premium",
		})

		require.NoError(t, err)
		assert.Equal(t, "premium", lesson.AccessLevel)
	})
}

func TestLessonService_Update(t *testing.T) {
	ctx := context.Background()
	lessonID := uuid.New().String()

	existing := func() *models.Lesson {
		return &models.Lesson{
			LessonID:    lessonID,
			Title:       "Старый заголовок",
			Story:       "Старая история.",
			Summary:     "Старая история.",
			Privacy:     "public",
			AccessLevel: "free",
			AuthorEmail: "author@example.com",
		}
	}

	t.Run("Автор меняет только переданные поля", func(t *testing.T) {
		lessonRepo := new(MockLessonRepository)
		userRepo := new(MockUserRepository)
		svc := NewLessonService(lessonRepo, userRepo, new(MockStorage), &config.Config{})

		lessonRepo.On("GetByID", ctx, lessonID).Return(existing(), nil)
		lessonRepo.On("Update", ctx, mock.AnythingOfType("*models.Lesson")).Return(nil)

		newTitle := "Новый заголовок"
		lesson, err := svc.Update(ctx, "author@example.com", "user", lessonID, models.LessonPatch{
			Title: &newTitle,
		})

		require.NoError(t, err)
		assert.Equal(t, newTitle, lesson.Title)
		assert.Equal(t, "Старая история.", lesson.Story)
	})

	t.Run("Изменение истории пересчитывает описание", func(t *testing.T) {
		lessonRepo := new(MockLessonRepository)
		userRepo := new(MockUserRepository)
		svc := NewLessonService(lessonRepo, userRepo, new(MockStorage), &config.Config{})

		lessonRepo.On("GetByID", ctx, lessonID).Return(existing(), nil)
		lessonRepo.On("Update", ctx, mock.AnythingOfType("*models.Lesson")).Return(nil)

		newStory := strings.Repeat("н", 200)
		lesson, err := svc.Update(ctx, "author@example.com", "user", lessonID, models.LessonPatch{
			Story: &newStory,
		})

		require.NoError(t, err)
		assert.Equal(t, strings.Repeat("н", 150)+"...", lesson.Summary)
	})

	t.Run("Чужой пользователь не может менять урок", func(t *testing.T) {
		lessonRepo := new(MockLessonRepository)
		userRepo := new(MockUserRepository)
		svc := NewLessonService(lessonRepo, userRepo, new(MockStorage), &config.Config{})

		lessonRepo.On("GetByID", ctx, lessonID).Return(existing(), nil)

		newTitle := "Чужая правка"
		lesson, err := svc.Update(ctx, "other@example.com", "user", lessonID, models.LessonPatch{
			Title: &newTitle,
		})

		assert.Nil(t, lesson)
		assert.ErrorIs(t, err, apperr.ErrForbidden)
		lessonRepo.AssertNotCalled(t, "Update")
	})

	t.Run("Админ может менять чужой урок", func(t *testing.T) {
		lessonRepo := new(MockLessonRepository)
		userRepo := new(MockUserRepository)
		svc := NewLessonService(lessonRepo, userRepo, new(MockStorage), &config.Config{})

		lessonRepo.On("GetByID", ctx, lessonID).Return(existing(), nil)
		lessonRepo.On("Update", ctx, mock.AnythingOfType("*models.Lesson")).Return(nil)

		newTitle := "Правка модератора"
		lesson, err := svc.Update(ctx, "moderator@example.com", "admin", lessonID, models.LessonPatch{
			Title: &newTitle,
		})

		require.NoError(t, err)
		assert.Equal(t, newTitle, lesson.Title)
	})

	t.Run("Поднятие до premium проверяет права автора", func(t *testing.T) {
		lessonRepo := new(MockLessonRepository)
		userRepo := new(MockUserRepository)
		svc := NewLessonService(lessonRepo, userRepo, new(MockStorage), &config.Config{})

		lessonRepo.On("GetByID", ctx, lessonID).Return(existing(), nil)
		userRepo.On("GetByEmail", ctx, "author@example.com").Return(&models.User{
			Email:     "author@example.com",
			IsPremium: false,
			Role:      "user",
		}, nil)

		premium := "premium"
		lesson, err := svc.Update(ctx, "author@example.com", "user", lessonID, models.LessonPatch{
			AccessLevel: &premium,
		})

		assert.Nil(t, lesson)
		assert.ErrorIs(t, err, apperr.ErrForbidden)
	})
}

func TestLessonService_Delete(t *testing.T) {
	ctx := context.Background()
	lessonID := uuid.New().String()

	t.Run("Чужой урок удалить нельзя", func(t *testing.T) {
		lessonRepo := new(MockLessonRepository)
		userRepo := new(MockUserRepository)
		svc := NewLessonService(lessonRepo, userRepo, new(MockStorage), &config.Config{})

		lessonRepo.On("GetByID", ctx, lessonID).Return(&models.Lesson{
			LessonID:    lessonID,
			AuthorEmail: "author@example.com",
		}, nil)

		err := svc.Delete(ctx, "other@example.com", "user", lessonID)

		assert.ErrorIs(t, err, apperr.ErrForbidden)
		lessonRepo.AssertNotCalled(t, "Delete")
	})

	t.Run("Автор удаляет свой урок", func(t *testing.T) {
		lessonRepo := new(MockLessonRepository)
		userRepo := new(MockUserRepository)
		svc := NewLessonService(lessonRepo, userRepo, new(MockStorage), &config.Config{})

		lessonRepo.On("GetByID", ctx, lessonID).Return(&models.Lesson{
			LessonID:    lessonID,
			AuthorEmail: "author@example.com",
		}, nil)
		lessonRepo.On("Delete", ctx, lessonID).Return(nil)

		err := svc.Delete(ctx, "author@example.com", "user", lessonID)

		assert.NoError(t, err)
	})
}
