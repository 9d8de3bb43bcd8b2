// internal/service/progress_service.go
package service

import (
	"context"
	"errors"
	"time"

	"lingolearn/internal/middleware"
	"lingolearn/internal/model"
	"lingolearn/internal/repository"
	"lingolearn/internal/srs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProgressService interface {
	// RecordReview は1回のレビュー結果を反映します。進捗がなければレベル0から開始し、
	// 習熟度・次回復習日・カウンタを更新、当日のセッションにも計上します。
	RecordReview(ctx context.Context, userID, wordID uuid.UUID, wasCorrect bool) (*model.UserProgress, error)
	ToggleBookmark(ctx context.Context, userID, wordID uuid.UUID, isBookmarked bool) (bool, error)
	GetDueWords(ctx context.Context, userID uuid.UUID, limit int) ([]*model.WordWithProgress, error)
	GetStats(ctx context.Context, userID uuid.UUID) (*model.ProgressSummaryResponse, error)
}

type progressService struct {
	db          *gorm.DB
	progRepo    repository.ProgressRepository
	sessionRepo repository.SessionRepository
	wordRepo    repository.WordRepository
}

func NewProgressService(db *gorm.DB, progRepo repository.ProgressRepository, sessionRepo repository.SessionRepository, wordRepo repository.WordRepository) ProgressService {
	return &progressService{
		db:          db,
		progRepo:    progRepo,
		sessionRepo: sessionRepo,
		wordRepo:    wordRepo,
	}
}

func (s *progressService) RecordReview(ctx context.Context, userID, wordID uuid.UUID, wasCorrect bool) (*model.UserProgress, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID, "word_id", wordID)

	var updated *model.UserProgress

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 単語の存在確認 (存在しない単語への進捗作成を防ぐ)
		if _, err := s.wordRepo.FindByID(ctx, tx, wordID); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewAppError("WORD_NOT_FOUND", "対象の単語が見つかりません。", "word_id", model.ErrNotFound)
			}
			logger.Error("Error finding word in transaction", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "単語の確認中にエラーが発生しました。", "", err)
		}

		progress, err := s.progRepo.FindByUserAndWord(ctx, tx, userID, wordID)
		if err != nil && !errors.Is(err, model.ErrNotFound) {
			logger.Error("Error finding progress in transaction", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "学習進捗の確認中にエラーが発生しました。", "", err)
		}
		isFirstReview := errors.Is(err, model.ErrNotFound)

		now := time.Now().UTC()
		currentLevel := model.MinMasteryLevel
		if !isFirstReview {
			currentLevel = progress.MasteryLevel
		}

		newLevel := srs.CalculateNewMasteryLevel(currentLevel, wasCorrect)
		nextReview := srs.NextReviewDate(now, currentLevel, wasCorrect)

		correctDelta := 0
		if wasCorrect {
			correctDelta = 1
		}

		if isFirstReview {
			logger.Info("Progress not found, creating new progress", "was_correct", wasCorrect)
			progress = &model.UserProgress{
				ProgressID:   uuid.New(),
				UserID:       userID,
				WordID:       wordID,
				MasteryLevel: newLevel,
				LastReviewed: &now,
				NextReview:   nextReview,
				ReviewCount:  1,
				CorrectCount: correctDelta,
			}
			if createErr := s.progRepo.Create(ctx, tx, progress); createErr != nil {
				logger.Error("Error creating new progress", "error", createErr)
				return model.NewAppError("INTERNAL_SERVER_ERROR", "学習進捗の作成に失敗しました。", "", createErr)
			}
		} else {
			// マージ規則: カウンタは加算、レベル・日付は上書き、ブックマークは触らない
			progress.MasteryLevel = newLevel
			progress.LastReviewed = &now
			progress.NextReview = nextReview
			progress.ReviewCount++
			progress.CorrectCount += correctDelta
			if updateErr := s.progRepo.Update(ctx, tx, progress); updateErr != nil {
				logger.Error("Error updating existing progress", "error", updateErr)
				return model.NewAppError("INTERNAL_SERVER_ERROR", "学習進捗の更新に失敗しました。", "", updateErr)
			}
		}

		// 当日のセッションに計上。words_learned はその単語の初回レビュー時のみ+1。
		// デルタ0でもセッション行は作られ、その日の「活動あり」としてストリークに効く
		wordsDelta := 0
		if isFirstReview {
			wordsDelta = 1
		}
		if sessErr := s.sessionRepo.AddCounts(ctx, tx, userID, now, wordsDelta, 0); sessErr != nil {
			logger.Error("Error upserting learning session", "error", sessErr)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "学習セッションの更新に失敗しました。", "", sessErr)
		}

		updated = progress
		return nil // コミット
	})
	if err != nil {
		return nil, err
	}

	logger.Debug("Review recorded", "mastery_level", updated.MasteryLevel, "next_review", updated.NextReview)
	return updated, nil
}

func (s *progressService) ToggleBookmark(ctx context.Context, userID, wordID uuid.UUID, isBookmarked bool) (bool, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID, "word_id", wordID)

	var result bool
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		progress, err := s.progRepo.FindByUserAndWord(ctx, tx, userID, wordID)
		if err != nil {
			if errors.Is(err, model.ErrNotFound) {
				// 未レビューの単語はブックマークできない (not-foundとして返し、作成するかは呼び出し側の判断)
				return model.NewAppError("PROGRESS_NOT_FOUND", "この単語の学習進捗がまだありません。", "word_id", model.ErrNotFound)
			}
			logger.Error("Error finding progress for bookmark", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "学習進捗の確認中にエラーが発生しました。", "", err)
		}

		progress.IsBookmarked = isBookmarked
		if err := s.progRepo.Update(ctx, tx, progress); err != nil {
			logger.Error("Error updating bookmark flag", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "ブックマークの更新に失敗しました。", "", err)
		}

		result = progress.IsBookmarked
		return nil
	})
	if err != nil {
		return false, err
	}
	return result, nil
}

func (s *progressService) GetDueWords(ctx context.Context, userID uuid.UUID, limit int) ([]*model.WordWithProgress, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID)

	progresses, err := s.progRepo.FindDueByUser(ctx, s.db, userID, time.Now().UTC(), limit)
	if err != nil {
		logger.Error("Failed to find due words from repository", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "復習単語の取得に失敗しました。", "", err)
	}

	responses := make([]*model.WordWithProgress, 0, len(progresses))
	for _, p := range progresses {
		if p.Word == nil {
			logger.Warn("Found progress with nil Word during due list generation, skipping", "progress_id", p.ProgressID)
			continue
		}
		responses = append(responses, &model.WordWithProgress{
			WordID:          p.WordID,
			Term:            p.Word.Term,
			Definition:      p.Word.Definition,
			Category:        p.Word.Category,
			Pronunciation:   p.Word.Pronunciation,
			ExampleSentence: p.Word.ExampleSentence,
			MasteryLevel:    p.MasteryLevel,
			NextReview:      p.NextReview,
		})
	}

	logger.Info("Successfully retrieved due words", "count", len(responses))
	return responses, nil
}

func (s *progressService) GetStats(ctx context.Context, userID uuid.UUID) (*model.ProgressSummaryResponse, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID)

	progresses, err := s.progRepo.FindByUser(ctx, s.db, userID)
	if err != nil {
		logger.Error("Failed to find progresses for stats", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "学習統計の取得に失敗しました。", "", err)
	}

	breakdown := make(map[int]int, model.MaxMasteryLevel+1)
	for level := model.MinMasteryLevel; level <= model.MaxMasteryLevel; level++ {
		breakdown[level] = 0
	}

	bookmarked := 0
	for _, p := range progresses {
		breakdown[p.MasteryLevel]++
		if p.IsBookmarked {
			bookmarked++
		}
	}

	dates, err := s.sessionRepo.FindDatesByUser(ctx, s.db, userID)
	if err != nil {
		logger.Error("Failed to find session dates for stats", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "学習統計の取得に失敗しました。", "", err)
	}

	now := time.Now().UTC()
	summary := &model.ProgressSummaryResponse{
		TotalWordsLearned: len(progresses),
		BookmarkedCount:   bookmarked,
		MasteryBreakdown:  breakdown,
		CurrentStreak:     srs.CalculateStreak(dates, now),
	}

	today, err := s.sessionRepo.FindByUserAndDate(ctx, s.db, userID, now)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		logger.Error("Failed to find today's session for stats", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "学習統計の取得に失敗しました。", "", err)
	}
	if today != nil {
		summary.TodayProgress = model.TodayProgress{
			WordsLearned:       today.WordsLearned,
			ExercisesCompleted: today.ExercisesCompleted,
		}
	}

	return summary, nil
}
