// internal/service/word_service.go
package service

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"lingolearn/internal/middleware"
	"lingolearn/internal/model"
	"lingolearn/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WordService interface {
	GetWords(ctx context.Context, filter model.WordFilter) (*model.WordListResponse, error)
	GetWord(ctx context.Context, wordID uuid.UUID) (*model.Word, error)
	// GetRandomWords は学習用のランダムな単語を返します。userID指定時は
	// 直近24時間にレビューした単語を除外します。
	GetRandomWords(ctx context.Context, count int, category string, userID *uuid.UUID) ([]*model.Word, error)
	// ImportWords はコンテンツインポート用の一括登録です。既存の単語 (同じterm) はスキップします。
	ImportWords(ctx context.Context, words []*model.Word) (*ImportSummary, error)
}

// ImportSummary は一括登録の結果サマリ
type ImportSummary struct {
	Created int
	Skipped int
}

type wordService struct {
	db       *gorm.DB
	wordRepo repository.WordRepository
	progRepo repository.ProgressRepository

	mu  sync.Mutex
	rng *rand.Rand
}

func NewWordService(db *gorm.DB, wordRepo repository.WordRepository, progRepo repository.ProgressRepository, rng *rand.Rand) WordService {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &wordService{
		db:       db,
		wordRepo: wordRepo,
		progRepo: progRepo,
		rng:      rng,
	}
}

func (s *wordService) GetWords(ctx context.Context, filter model.WordFilter) (*model.WordListResponse, error) {
	logger := middleware.GetLogger(ctx)

	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	words, total, err := s.wordRepo.Search(ctx, s.db, filter)
	if err != nil {
		logger.Error("Failed to search words", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "単語一覧の取得に失敗しました。", "", err)
	}
	if words == nil {
		words = []*model.Word{}
	}

	return &model.WordListResponse{
		Words:  words,
		Total:  total,
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}, nil
}

func (s *wordService) GetWord(ctx context.Context, wordID uuid.UUID) (*model.Word, error) {
	word, err := s.wordRepo.FindByID(ctx, s.db, wordID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("WORD_NOT_FOUND", "単語が見つかりません。", "word_id", model.ErrNotFound)
		}
		middleware.GetLogger(ctx).Error("Failed to find word", "word_id", wordID, "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "単語の取得に失敗しました。", "", err)
	}
	return word, nil
}

func (s *wordService) GetRandomWords(ctx context.Context, count int, category string, userID *uuid.UUID) ([]*model.Word, error) {
	logger := middleware.GetLogger(ctx)

	if count <= 0 {
		count = 10
	}

	var excludeIDs []uuid.UUID
	if userID != nil {
		since := time.Now().UTC().AddDate(0, 0, -1)
		ids, err := s.progRepo.FindWordIDsReviewedSince(ctx, s.db, *userID, since)
		if err != nil {
			logger.Error("Failed to find recently reviewed words", "error", err)
			return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "単語の取得に失敗しました。", "", err)
		}
		excludeIDs = ids
	}

	words, err := s.wordRepo.FindAll(ctx, s.db, category, excludeIDs)
	if err != nil {
		logger.Error("Failed to find candidate words", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "単語の取得に失敗しました。", "", err)
	}

	s.mu.Lock()
	s.rng.Shuffle(len(words), func(i, j int) {
		words[i], words[j] = words[j], words[i]
	})
	s.mu.Unlock()

	if len(words) > count {
		words = words[:count]
	}
	return words, nil
}

func (s *wordService) ImportWords(ctx context.Context, words []*model.Word) (*ImportSummary, error) {
	logger := middleware.GetLogger(ctx)
	summary := &ImportSummary{}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, word := range words {
			if word.Term == "" || word.Definition == "" {
				return model.NewAppError("VALIDATION_ERROR", "単語と定義は必須です。", "term", model.ErrInvalidInput)
			}

			exists, err := s.wordRepo.CheckTermExists(ctx, tx, word.Term)
			if err != nil {
				logger.Error("Error checking term existence in transaction", "error", err)
				return model.NewAppError("INTERNAL_SERVER_ERROR", "単語の重複確認に失敗しました。", "", err)
			}
			if exists {
				summary.Skipped++
				continue
			}

			if word.WordID == uuid.Nil {
				word.WordID = uuid.New()
			}
			if word.Category == "" {
				word.Category = "general"
			}
			if err := s.wordRepo.Create(ctx, tx, word); err != nil {
				logger.Error("Error creating word in transaction", "term", word.Term, "error", err)
				return model.NewAppError("INTERNAL_SERVER_ERROR", "単語の登録に失敗しました。", "", err)
			}
			summary.Created++
		}
		return nil // コミット
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Words imported", "created", summary.Created, "skipped", summary.Skipped)
	return summary, nil
}
