// internal/repository/exercise_history_repository.go
package repository

import (
	"context"

	"lingolearn/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ExerciseHistoryRepository interface {
	CreateBatch(ctx context.Context, tx *gorm.DB, records []*model.ExerciseHistory) error // トランザクション対応
	CountByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) (int64, error)
}

type gormExerciseHistoryRepository struct{}

func NewGormExerciseHistoryRepository() ExerciseHistoryRepository {
	return &gormExerciseHistoryRepository{}
}

func (r *gormExerciseHistoryRepository) CreateBatch(ctx context.Context, tx *gorm.DB, records []*model.ExerciseHistory) error {
	if len(records) == 0 {
		return nil
	}
	result := tx.WithContext(ctx).Create(records)
	return result.Error
}

func (r *gormExerciseHistoryRepository) CountByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) (int64, error) {
	var count int64
	result := db.WithContext(ctx).Model(&model.ExerciseHistory{}).
		Where("user_id = ?", userID).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	return count, nil
}
