// internal/model/exercise.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// ExerciseType は出題形式を表します。
type ExerciseType string

const (
	ExerciseMultipleChoice ExerciseType = "multiple_choice"
	ExerciseFillBlank      ExerciseType = "fill_blank"
	ExerciseListening      ExerciseType = "listening"
)

// IsValid は既知の出題形式かどうかを返します。
func (t ExerciseType) IsValid() bool {
	switch t {
	case ExerciseMultipleChoice, ExerciseFillBlank, ExerciseListening:
		return true
	}
	return false
}

// ExerciseHistory は練習問題の回答履歴です。累計演習数の集計に利用します。
type ExerciseHistory struct {
	HistoryID        uuid.UUID    `gorm:"type:uuid;primaryKey" json:"history_id"`
	UserID           uuid.UUID    `gorm:"type:uuid;not null;index" json:"user_id"`
	WordID           uuid.UUID    `gorm:"type:uuid;not null" json:"word_id"`
	ExerciseType     ExerciseType `gorm:"not null" json:"exercise_type"`
	IsCorrect        bool         `gorm:"not null" json:"is_correct"`
	TimeTakenSeconds *int         `json:"time_taken_seconds,omitempty"`
	CreatedAt        time.Time    `json:"created_at"`
}

func (ExerciseHistory) TableName() string {
	return "exercise_history"
}

// Exercise は生成された練習問題のDTOです。形式ごとに使うフィールドが異なります。
type Exercise struct {
	WordID        uuid.UUID    `json:"word_id"`
	Term          string       `json:"term"`
	Type          ExerciseType `json:"type"`
	Question      string       `json:"question"`
	Sentence      string       `json:"sentence,omitempty"`      // fill_blank: 空所化した例文
	Options       []string     `json:"options,omitempty"`       // multiple_choice / listening
	CorrectAnswer string       `json:"correct_answer"`
	Hint          string       `json:"hint,omitempty"`          // fill_blank: 定義をヒントとして表示
	Pronunciation string       `json:"pronunciation,omitempty"` // listening
	AudioURL      string       `json:"audio_url,omitempty"`     // listening
	Definition    string       `json:"definition,omitempty"`    // listening: 回答後のフィードバック用
}

// ExerciseResult は1問分の回答結果
type ExerciseResult struct {
	WordID           uuid.UUID    `json:"word_id" validate:"required"`
	ExerciseType     ExerciseType `json:"exercise_type" validate:"required,oneof=multiple_choice fill_blank listening"`
	IsCorrect        *bool        `json:"is_correct" validate:"required"`
	TimeTakenSeconds *int         `json:"time_taken_seconds,omitempty" validate:"omitempty,min=0"`
}

// SubmitExercisesRequest は回答送信リクエストDTO
type SubmitExercisesRequest struct {
	UserID    uuid.UUID        `json:"user_id" validate:"required"`
	Exercises []ExerciseResult `json:"exercises" validate:"required,min=1,dive"`
}

// ExerciseSummary は回答送信のレスポンスDTO (正答率は四捨五入した整数%)
type ExerciseSummary struct {
	Total    int `json:"total"`
	Correct  int `json:"correct"`
	Accuracy int `json:"accuracy"`
}

// GenerateExercisesResponse は問題生成のレスポンスDTO
type GenerateExercisesResponse struct {
	Exercises []*Exercise  `json:"exercises"`
	Type      ExerciseType `json:"type"`
}

// SubmitExercisesResponse は回答送信のレスポンスDTO
type SubmitExercisesResponse struct {
	Success bool            `json:"success"`
	Stats   ExerciseSummary `json:"stats"`
}
