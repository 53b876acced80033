package repository

import (
	"fmt"
	"strings"

	"lifelessons/internal/models"
)

const (
	DefaultPage  = 1
	DefaultLimit = 12
	DefaultSort  = "newest"
)

// FeedQuery - параметры чтения ленты. AuthorEmail задаётся только на
// аутентифицированном пути "мои уроки" и снимает фильтр privacy='public'.
type FeedQuery struct {
	Page          int
	Limit         int
	Sort          string
	Category      string
	EmotionalTone string
	Search        string
	AuthorEmail   string
}

type FeedResult struct {
	Lessons      []*models.Lesson `json:"lessons"`
	TotalLessons int              `json:"totalLessons"`
	TotalPages   int              `json:"totalPages"`
	CurrentPage  int              `json:"currentPage"`
}

// Normalize приводит параметры к безопасным значениям: некорректные
// page/limit молча заменяются на значения по умолчанию, неизвестная
// сортировка трактуется как newest.
func (q FeedQuery) Normalize() FeedQuery {
	if q.Page < 1 {
		q.Page = DefaultPage
	}
	if q.Limit < 1 {
		q.Limit = DefaultLimit
	}
	switch q.Sort {
	case "newest", "mostLiked", "mostSaved", "alphabetical":
	default:
		q.Sort = DefaultSort
	}
	return q
}

// BuildWhere собирает условие фильтрации и аргументы с нумерацией
// плейсхолдеров начиная с $1.
func (q FeedQuery) BuildWhere() (string, []interface{}) {
	conditions := make([]string, 0, 4)
	args := make([]interface{}, 0, 4)

	if q.AuthorEmail != "" {
		args = append(args, q.AuthorEmail)
		conditions = append(conditions, fmt.Sprintf("author_email = $%d", len(args)))
	} else {
		conditions = append(conditions, "privacy = 'public'")
	}

	if q.Category != "" {
		args = append(args, q.Category)
		conditions = append(conditions, fmt.Sprintf("category = $%d", len(args)))
	}

	if q.EmotionalTone != "" {
		args = append(args, q.EmotionalTone)
		conditions = append(conditions, fmt.Sprintf("emotional_tone = $%d", len(args)))
	}

	if q.Search != "" {
		args = append(args, "%"+q.Search+"%")
		n := len(args)
		conditions = append(conditions, fmt.Sprintf(
			"(title ILIKE $%d OR story ILIKE $%d OR EXISTS (SELECT 1 FROM unnest(tags) AS tag WHERE tag ILIKE $%d))",
			n, n, n))
	}

	return strings.Join(conditions, " AND "), args
}

// OrderBy возвращает ключ сортировки из разрешённого набора.
func (q FeedQuery) OrderBy() string {
	switch q.Sort {
	case "mostLiked":
		return "likes_count DESC"
	case "mostSaved":
		return "favorites_count DESC"
	case "alphabetical":
		return "title ASC"
	default:
		return "created_at DESC"
	}
}

func (q FeedQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

// TotalPages - ceil(total/limit) без плавающей точки.
func TotalPages(total, limit int) int {
	if limit < 1 {
		return 0
	}
	return (total + limit - 1) / limit
}
