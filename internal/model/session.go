// internal/model/session.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// LearningSession はユーザーごと・日ごとの学習実績を表します。
// (user_id, session_date) の組で一意。カウンタは加算マージで更新されます。
// ストリーク計算と当日の実績表示にのみ利用します。
type LearningSession struct {
	SessionID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"session_id"`
	UserID             uuid.UUID `gorm:"type:uuid;not null;index:idx_user_date,unique" json:"user_id"`
	SessionDate        time.Time `gorm:"not null;index:idx_user_date,unique" json:"session_date"` // 0時に正規化した日付
	WordsLearned       int       `gorm:"not null;default:0" json:"words_learned"`
	ExercisesCompleted int       `gorm:"not null;default:0" json:"exercises_completed"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func (LearningSession) TableName() string {
	return "learning_sessions"
}
