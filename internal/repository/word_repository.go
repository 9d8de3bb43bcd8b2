// internal/repository/word_repository.go
package repository

import (
	"context"
	"errors"
	"strings"

	"lingolearn/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WordRepository interface {
	Create(ctx context.Context, tx *gorm.DB, word *model.Word) error // トランザクション対応
	FindByID(ctx context.Context, db *gorm.DB, wordID uuid.UUID) (*model.Word, error)
	FindByIDs(ctx context.Context, db *gorm.DB, wordIDs []uuid.UUID) ([]*model.Word, error)
	Search(ctx context.Context, db *gorm.DB, filter model.WordFilter) ([]*model.Word, int64, error)
	FindAll(ctx context.Context, db *gorm.DB, category string, excludeIDs []uuid.UUID) ([]*model.Word, error)
	CheckTermExists(ctx context.Context, db *gorm.DB, term string) (bool, error)
}

type gormWordRepository struct {
	// DB接続はService層から渡される想定
}

func NewGormWordRepository() WordRepository {
	return &gormWordRepository{}
}

func (r *gormWordRepository) Create(ctx context.Context, tx *gorm.DB, word *model.Word) error {
	result := tx.WithContext(ctx).Create(word)
	return result.Error
}

func (r *gormWordRepository) FindByID(ctx context.Context, db *gorm.DB, wordID uuid.UUID) (*model.Word, error) {
	var word model.Word
	result := db.WithContext(ctx).Where("word_id = ?", wordID).First(&word)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, result.Error
	}
	return &word, nil
}

func (r *gormWordRepository) FindByIDs(ctx context.Context, db *gorm.DB, wordIDs []uuid.UUID) ([]*model.Word, error) {
	if len(wordIDs) == 0 {
		return []*model.Word{}, nil
	}
	var words []*model.Word
	result := db.WithContext(ctx).Where("word_id IN ?", wordIDs).Find(&words)
	if result.Error != nil {
		return nil, result.Error
	}
	return words, nil
}

func (r *gormWordRepository) Search(ctx context.Context, db *gorm.DB, filter model.WordFilter) ([]*model.Word, int64, error) {
	query := db.WithContext(ctx).Model(&model.Word{})

	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Search != "" {
		// 単語か定義への部分一致 (大文字小文字を区別しない)
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(term) LIKE ? OR LOWER(definition) LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var words []*model.Word
	result := query.
		Order("term ASC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&words)
	if result.Error != nil {
		return nil, 0, result.Error
	}

	return words, total, nil
}

func (r *gormWordRepository) FindAll(ctx context.Context, db *gorm.DB, category string, excludeIDs []uuid.UUID) ([]*model.Word, error) {
	query := db.WithContext(ctx).Model(&model.Word{})
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if len(excludeIDs) > 0 {
		query = query.Where("word_id NOT IN ?", excludeIDs)
	}

	var words []*model.Word
	if err := query.Find(&words).Error; err != nil {
		return nil, err
	}
	return words, nil
}

func (r *gormWordRepository) CheckTermExists(ctx context.Context, db *gorm.DB, term string) (bool, error) {
	var count int64
	result := db.WithContext(ctx).Model(&model.Word{}).
		Where("LOWER(term) = ?", strings.ToLower(term)).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}
