// internal/repository/achievement_repository.go
package repository

import (
	"context"
	"errors"
	"strings"

	"lingolearn/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type AchievementRepository interface {
	FindByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]*model.Achievement, error)
	// Create は台帳への追記です。(user_id, achievement_type) が既に存在する場合は
	// model.ErrConflict を返します (同時評価の競合はこれで検出する)。
	Create(ctx context.Context, tx *gorm.DB, achievement *model.Achievement) error
}

type gormAchievementRepository struct{}

func NewGormAchievementRepository() AchievementRepository {
	return &gormAchievementRepository{}
}

func (r *gormAchievementRepository) FindByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]*model.Achievement, error) {
	var achievements []*model.Achievement
	result := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("earned_at DESC").
		Find(&achievements)
	if result.Error != nil {
		return nil, result.Error
	}
	return achievements, nil
}

func (r *gormAchievementRepository) Create(ctx context.Context, tx *gorm.DB, achievement *model.Achievement) error {
	result := tx.WithContext(ctx).Create(achievement)
	if result.Error != nil {
		if isDuplicateKeyError(result.Error) {
			return model.ErrConflict
		}
		return result.Error
	}
	return nil
}

// isDuplicateKeyError は一意制約違反かどうかをドライバ横断で判定します。
func isDuplicateKeyError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// TranslateErrorを通らない経路向けにpostgresのエラーコードも直接見る
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	// テストで使うsqliteドライバはgormのエラー変換が効かないことがある
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
