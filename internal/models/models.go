package models

import (
	"time"

	"github.com/lib/pq"
)

type User struct {
	UserID    string    `json:"userId" db:"user_id"`
	Email     string    `json:"email" db:"email"`
	Name      string    `json:"name" db:"name"`
	PhotoURL  string    `json:"photoURL" db:"photo_url"`
	Role      string    `json:"role" db:"role"`
	IsPremium bool      `json:"isPremium" db:"is_premium"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// Lesson хранит дублированные счётчики рядом с множеством лайков:
// likes_count всегда равен мощности likes после каждого успешного обновления.
type Lesson struct {
	LessonID       string         `json:"lessonId" db:"lesson_id"`
	Title          string         `json:"title" db:"title"`
	Story          string         `json:"story" db:"story"`
	Summary        string         `json:"summary" db:"summary"`
	Category       string         `json:"category" db:"category"`
	EmotionalTone  string         `json:"emotionalTone" db:"emotional_tone"`
	Tags           pq.StringArray `json:"tags" db:"tags"`
	PhotoURL       string         `json:"photoURL" db:"photo_url"`
	Privacy        string         `json:"privacy" db:"privacy"`
	AccessLevel    string         `json:"accessLevel" db:"access_level"`
	AuthorID       string         `json:"authorId" db:"author_id"`
	AuthorName     string         `json:"authorName" db:"author_name"`
	AuthorEmail    string         `json:"authorEmail" db:"author_email"`
	AuthorPhoto    string         `json:"authorPhoto" db:"author_photo"`
	Likes          pq.StringArray `json:"likes" db:"likes"`
	LikesCount     int            `json:"likesCount" db:"likes_count"`
	FavoritesCount int            `json:"favoritesCount" db:"favorites_count"`
	ViewsCount     int            `json:"viewsCount" db:"views_count"`
	IsFeatured     bool           `json:"isFeatured" db:"is_featured"`
	Reviewed       bool           `json:"reviewed" db:"reviewed"`
	CreatedAt      time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time      `json:"updatedAt" db:"updated_at"`
}

// LessonPatch - частичное обновление урока. nil означает "поле не трогать",
// непустой указатель - "перезаписать значением".
type LessonPatch struct {
	Title         *string   `json:"title"`
	Story         *string   `json:"story"`
	Category      *string   `json:"category"`
	EmotionalTone *string   `json:"emotionalTone"`
	Tags          *[]string `json:"tags"`
	PhotoURL      *string   `json:"photoURL"`
	Privacy       *string   `json:"privacy"`
	AccessLevel   *string   `json:"accessLevel"`
}

type Favorite struct {
	FavoriteID    string    `json:"favoriteId" db:"favorite_id"`
	UserEmail     string    `json:"userEmail" db:"user_email"`
	LessonID      string    `json:"lessonId" db:"lesson_id"`
	Title         string    `json:"title" db:"title"`
	AuthorName    string    `json:"authorName" db:"author_name"`
	Category      string    `json:"category" db:"category"`
	EmotionalTone string    `json:"emotionalTone" db:"emotional_tone"`
	PhotoURL      string    `json:"photoURL" db:"photo_url"`
	AddedAt       time.Time `json:"addedAt" db:"added_at"`
}

type Report struct {
	ReportID      string    `json:"reportId" db:"report_id"`
	LessonID      string    `json:"lessonId" db:"lesson_id"`
	ReporterEmail string    `json:"reporterEmail" db:"reporter_email"`
	Reason        string    `json:"reason" db:"reason"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
}

type Comment struct {
	CommentID   string    `json:"commentId" db:"comment_id"`
	LessonID    string    `json:"lessonId" db:"lesson_id"`
	AuthorEmail string    `json:"authorEmail" db:"author_email"`
	AuthorName  string    `json:"authorName" db:"author_name"`
	AuthorPhoto string    `json:"authorPhoto" db:"author_photo"`
	Text        string    `json:"text" db:"text"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}
