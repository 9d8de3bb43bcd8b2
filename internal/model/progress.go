// internal/model/progress.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// 習熟度レベルの範囲。レベル5が「完全に習得した」状態。
const (
	MinMasteryLevel = 0
	MaxMasteryLevel = 5
)

// UserProgress はユーザーごと・単語ごとの学習進捗を表します。
// (user_id, word_id) の組で一意。初回レビュー時に作成され、以後は上書き更新されます。
type UserProgress struct {
	ProgressID   uuid.UUID  `gorm:"type:uuid;primaryKey" json:"progress_id"`
	UserID       uuid.UUID  `gorm:"type:uuid;not null;index:idx_user_word,unique" json:"user_id"`
	WordID       uuid.UUID  `gorm:"type:uuid;not null;index:idx_user_word,unique" json:"word_id"`
	MasteryLevel int        `gorm:"not null;default:0" json:"mastery_level"` // 0-5
	LastReviewed *time.Time `json:"last_reviewed,omitempty"`
	NextReview   time.Time  `gorm:"not null;index" json:"next_review"`
	ReviewCount  int        `gorm:"not null;default:0" json:"review_count"`
	CorrectCount int        `gorm:"not null;default:0" json:"correct_count"`
	IsBookmarked bool       `gorm:"not null;default:false" json:"is_bookmarked"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	// 関連 (Preload用)
	Word *Word `gorm:"foreignKey:WordID;references:WordID" json:"-"`
}

func (UserProgress) TableName() string {
	return "user_progress"
}

// 進捗更新リクエストDTO
type UpdateProgressRequest struct {
	UserID     uuid.UUID `json:"user_id" validate:"required"`
	WordID     uuid.UUID `json:"word_id" validate:"required"`
	WasCorrect *bool     `json:"was_correct" validate:"required"`
}

// ブックマーク切り替えリクエストDTO
type BookmarkRequest struct {
	UserID       uuid.UUID `json:"user_id" validate:"required"`
	WordID       uuid.UUID `json:"word_id" validate:"required"`
	IsBookmarked *bool     `json:"is_bookmarked" validate:"required"`
}

// UpdateProgressResponse は進捗更新のレスポンスDTO
type UpdateProgressResponse struct {
	Success  bool          `json:"success"`
	Progress *UserProgress `json:"progress"`
}

// BookmarkResponse はブックマーク切り替えのレスポンスDTO
type BookmarkResponse struct {
	Success      bool `json:"success"`
	IsBookmarked bool `json:"is_bookmarked"`
}

// TodayProgress は当日の学習実績
type TodayProgress struct {
	WordsLearned       int `json:"words_learned"`
	ExercisesCompleted int `json:"exercises_completed"`
}

// ProgressSummaryResponse は学習統計のレスポンスDTO
type ProgressSummaryResponse struct {
	TotalWordsLearned int           `json:"total_words_learned"`
	BookmarkedCount   int           `json:"bookmarked_count"`
	MasteryBreakdown  map[int]int   `json:"mastery_breakdown"` // レベル(0-5)ごとの単語数
	CurrentStreak     int           `json:"current_streak"`
	TodayProgress     TodayProgress `json:"today_progress"`
}
