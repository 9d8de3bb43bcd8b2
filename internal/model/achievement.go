// internal/model/achievement.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// AchievementType は実績の種別を表す閉じた列挙です。
type AchievementType string

const (
	AchievementFirstWord      AchievementType = "first_word"
	AchievementWords10        AchievementType = "words_10"
	AchievementWords50        AchievementType = "words_50"
	AchievementWords100       AchievementType = "words_100"
	AchievementWords500       AchievementType = "words_500"
	AchievementMastery10      AchievementType = "mastery_10"
	AchievementMastery50      AchievementType = "mastery_50"
	AchievementStreak3        AchievementType = "streak_3"
	AchievementStreak7        AchievementType = "streak_7"
	AchievementStreak30       AchievementType = "streak_30"
	AchievementExercises100   AchievementType = "exercises_100"
	AchievementPerfectSession AchievementType = "perfect_session"
)

// Achievement はユーザーが獲得した実績の台帳エントリです。
// (user_id, achievement_type) の組で一意。一度書き込まれたら削除も再評価もされません。
type Achievement struct {
	AchievementID   uuid.UUID       `gorm:"type:uuid;primaryKey" json:"achievement_id"`
	UserID          uuid.UUID       `gorm:"type:uuid;not null;index:idx_user_achievement,unique" json:"user_id"`
	AchievementType AchievementType `gorm:"not null;index:idx_user_achievement,unique" json:"achievement_type"`
	EarnedAt        time.Time       `gorm:"not null" json:"earned_at"`
}

func (Achievement) TableName() string {
	return "achievements"
}

// AchievementDefinition は実績の表示用メタデータ
type AchievementDefinition struct {
	Type        AchievementType `json:"type"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Icon        string          `json:"icon"`
}

// AchievementDefinitions は全実績のカタログ (表示順)
var AchievementDefinitions = []AchievementDefinition{
	{Type: AchievementFirstWord, Name: "First Steps", Description: "Learned your first word", Icon: "🎯"},
	{Type: AchievementStreak3, Name: "3 Day Streak", Description: "Learned for 3 days in a row", Icon: "🔥"},
	{Type: AchievementStreak7, Name: "Week Warrior", Description: "Learned for 7 days in a row", Icon: "⚡"},
	{Type: AchievementStreak30, Name: "Month Master", Description: "Learned for 30 days in a row", Icon: "👑"},
	{Type: AchievementWords10, Name: "Vocabulary Builder", Description: "Learned 10 words", Icon: "📚"},
	{Type: AchievementWords50, Name: "Word Collector", Description: "Learned 50 words", Icon: "🎓"},
	{Type: AchievementWords100, Name: "Century Club", Description: "Learned 100 words", Icon: "💯"},
	{Type: AchievementWords500, Name: "Vocabulary Expert", Description: "Learned 500 words", Icon: "🌟"},
	{Type: AchievementMastery10, Name: "Master of Ten", Description: "Fully mastered 10 words", Icon: "✨"},
	{Type: AchievementMastery50, Name: "Mastery Expert", Description: "Fully mastered 50 words", Icon: "🏆"},
	{Type: AchievementPerfectSession, Name: "Perfect Score", Description: "Got 100% on an exercise session", Icon: "💎"},
	{Type: AchievementExercises100, Name: "Practice Makes Perfect", Description: "Completed 100 exercises", Icon: "💪"},
}

// FindAchievementDefinition はカタログから種別でメタデータを引きます。
func FindAchievementDefinition(t AchievementType) (AchievementDefinition, bool) {
	for _, def := range AchievementDefinitions {
		if def.Type == t {
			return def, true
		}
	}
	return AchievementDefinition{}, false
}

// AchievementStats は実績判定に使う集計値
type AchievementStats struct {
	TotalWordsLearned       int
	MasteredWordCount       int // レベル5の単語数
	CurrentStreak           int
	TotalExercisesCompleted int
}

// EarnedAchievement は獲得済み実績のレスポンスDTO
type EarnedAchievement struct {
	AchievementDefinition
	EarnedAt time.Time `json:"earned_at"`
}

// AchievementsResponse は実績一覧のレスポンスDTO
type AchievementsResponse struct {
	Earned         []EarnedAchievement     `json:"earned"`
	Available      []AchievementDefinition `json:"available"`
	NewlyEarned    []AchievementDefinition `json:"newly_earned"`
	TotalEarned    int                     `json:"total_earned"`
	TotalAvailable int                     `json:"total_available"`
}
