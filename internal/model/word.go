// internal/model/word.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Word は学習対象の単語を表します。コンテンツインポートでのみ作成される参照データで、
// 学習エンジン側から更新されることはありません。
type Word struct {
	WordID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"word_id"`
	Term            string         `gorm:"not null;index" json:"term"`       // 単語
	Definition      string         `gorm:"not null" json:"definition"`       // 単語の定義
	Category        string         `gorm:"not null;index" json:"category"`   // カテゴリ (general など)
	Pronunciation   string         `json:"pronunciation,omitempty"`          // 発音 (任意)
	ExampleSentence string         `json:"example_sentence,omitempty"`       // 例文 (任意)
	AudioURL        string         `json:"audio_url,omitempty"`              // 音声URL (任意)
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"` // 論理削除用
}

func (Word) TableName() string {
	return "words"
}

// WordFilter は単語一覧取得の絞り込み条件
type WordFilter struct {
	Category string
	Search   string // 単語・定義に対する部分一致 (大文字小文字を区別しない)
	Limit    int
	Offset   int
}

// WordListResponse は単語一覧のレスポンスDTO
type WordListResponse struct {
	Words  []*Word `json:"words"`
	Total  int64   `json:"total"`
	Limit  int     `json:"limit"`
	Offset int     `json:"offset"`
}

// WordWithProgress は学習進捗付きの単語レスポンスDTO (復習リスト用)
type WordWithProgress struct {
	WordID          uuid.UUID `json:"word_id"`
	Term            string    `json:"term"`
	Definition      string    `json:"definition"`
	Category        string    `json:"category"`
	Pronunciation   string    `json:"pronunciation,omitempty"`
	ExampleSentence string    `json:"example_sentence,omitempty"`
	MasteryLevel    int       `json:"mastery_level"`
	NextReview      time.Time `json:"next_review"`
}
