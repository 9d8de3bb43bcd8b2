// internal/repository/progress_repository.go
package repository

import (
	"context"
	"errors"
	"time"

	"lingolearn/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProgressRepository interface {
	Create(ctx context.Context, tx *gorm.DB, progress *model.UserProgress) error // トランザクション対応
	FindByUserAndWord(ctx context.Context, db *gorm.DB, userID, wordID uuid.UUID) (*model.UserProgress, error)
	Update(ctx context.Context, tx *gorm.DB, progress *model.UserProgress) error // トランザクション対応
	FindByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]*model.UserProgress, error)
	FindDueByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID, now time.Time, limit int) ([]*model.UserProgress, error) // WordはPreloadする
	FindLowMasteryByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID, maxLevel, limit int) ([]*model.UserProgress, error)
	FindWordIDsReviewedSince(ctx context.Context, db *gorm.DB, userID uuid.UUID, since time.Time) ([]uuid.UUID, error)
}

type gormProgressRepository struct{}

func NewGormProgressRepository() ProgressRepository {
	return &gormProgressRepository{}
}

func (r *gormProgressRepository) Create(ctx context.Context, tx *gorm.DB, progress *model.UserProgress) error {
	result := tx.WithContext(ctx).Create(progress)
	// 複合ユニーク制約違反はErrorで返る
	return result.Error
}

func (r *gormProgressRepository) FindByUserAndWord(ctx context.Context, db *gorm.DB, userID, wordID uuid.UUID) (*model.UserProgress, error) {
	var progress model.UserProgress
	result := db.WithContext(ctx).Preload("Word").
		Where("user_id = ? AND word_id = ?", userID, wordID).
		First(&progress)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, result.Error
	}
	return &progress, nil
}

func (r *gormProgressRepository) Update(ctx context.Context, tx *gorm.DB, progress *model.UserProgress) error {
	// Saveは主キーに基づいて全カラムを更新する。存在確認は呼び出し元(Service)で行う想定
	result := tx.WithContext(ctx).Save(progress)
	return result.Error
}

func (r *gormProgressRepository) FindByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]*model.UserProgress, error) {
	var progresses []*model.UserProgress
	result := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&progresses)
	if result.Error != nil {
		return nil, result.Error
	}
	return progresses, nil
}

func (r *gormProgressRepository) FindDueByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID, now time.Time, limit int) ([]*model.UserProgress, error) {
	var progresses []*model.UserProgress

	// 論理削除された単語は復習対象から外す
	result := db.WithContext(ctx).
		Preload("Word", "deleted_at IS NULL").
		Joins("JOIN words ON words.word_id = user_progress.word_id AND words.deleted_at IS NULL").
		Where("user_progress.user_id = ? AND user_progress.next_review <= ?", userID, now).
		Order("user_progress.next_review ASC").
		Limit(limit).
		Find(&progresses)
	if result.Error != nil {
		return nil, result.Error
	}
	return progresses, nil
}

func (r *gormProgressRepository) FindLowMasteryByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID, maxLevel, limit int) ([]*model.UserProgress, error) {
	var progresses []*model.UserProgress
	result := db.WithContext(ctx).
		Preload("Word", "deleted_at IS NULL").
		Joins("JOIN words ON words.word_id = user_progress.word_id AND words.deleted_at IS NULL").
		Where("user_progress.user_id = ? AND user_progress.mastery_level <= ?", userID, maxLevel).
		Order("user_progress.mastery_level ASC").
		Limit(limit).
		Find(&progresses)
	if result.Error != nil {
		return nil, result.Error
	}
	return progresses, nil
}

func (r *gormProgressRepository) FindWordIDsReviewedSince(ctx context.Context, db *gorm.DB, userID uuid.UUID, since time.Time) ([]uuid.UUID, error) {
	var wordIDs []uuid.UUID
	result := db.WithContext(ctx).Model(&model.UserProgress{}).
		Where("user_id = ? AND last_reviewed >= ?", userID, since).
		Pluck("word_id", &wordIDs)
	if result.Error != nil {
		return nil, result.Error
	}
	return wordIDs, nil
}
