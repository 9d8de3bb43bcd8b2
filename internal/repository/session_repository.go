// internal/repository/session_repository.go
package repository

import (
	"context"
	"errors"
	"time"

	"lingolearn/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SessionRepository interface {
	// AddCounts は (user_id, date) のセッションを作成または加算マージします。
	// 両方のデルタが0でも行は作成されます (レビューした事実がストリークの「活動あり」になるため)。
	AddCounts(ctx context.Context, tx *gorm.DB, userID uuid.UUID, date time.Time, wordsDelta, exercisesDelta int) error
	FindByUserAndDate(ctx context.Context, db *gorm.DB, userID uuid.UUID, date time.Time) (*model.LearningSession, error)
	FindDatesByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]time.Time, error)
}

type gormSessionRepository struct{}

func NewGormSessionRepository() SessionRepository {
	return &gormSessionRepository{}
}

// NormalizeSessionDate はセッション日付のキーとなる「0時 (UTC)」に正規化します。
func NormalizeSessionDate(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (r *gormSessionRepository) AddCounts(ctx context.Context, tx *gorm.DB, userID uuid.UUID, date time.Time, wordsDelta, exercisesDelta int) error {
	day := NormalizeSessionDate(date)

	var session model.LearningSession
	result := tx.WithContext(ctx).
		Where("user_id = ? AND session_date = ?", userID, day).
		First(&session)
	if result.Error != nil {
		if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return result.Error
		}
		// 新規作成。同一ユーザー・同一日の同時作成は複合ユニーク制約が弾く
		session = model.LearningSession{
			SessionID:          uuid.New(),
			UserID:             userID,
			SessionDate:        day,
			WordsLearned:       wordsDelta,
			ExercisesCompleted: exercisesDelta,
		}
		return tx.WithContext(ctx).Create(&session).Error
	}

	// マージ規則: カウンタは加算
	session.WordsLearned += wordsDelta
	session.ExercisesCompleted += exercisesDelta
	return tx.WithContext(ctx).Save(&session).Error
}

func (r *gormSessionRepository) FindByUserAndDate(ctx context.Context, db *gorm.DB, userID uuid.UUID, date time.Time) (*model.LearningSession, error) {
	var session model.LearningSession
	result := db.WithContext(ctx).
		Where("user_id = ? AND session_date = ?", userID, NormalizeSessionDate(date)).
		First(&session)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, result.Error
	}
	return &session, nil
}

func (r *gormSessionRepository) FindDatesByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]time.Time, error) {
	var dates []time.Time
	result := db.WithContext(ctx).Model(&model.LearningSession{}).
		Where("user_id = ?", userID).
		Order("session_date DESC").
		Pluck("session_date", &dates)
	if result.Error != nil {
		return nil, result.Error
	}
	return dates, nil
}
