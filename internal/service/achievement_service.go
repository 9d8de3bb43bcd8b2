// internal/service/achievement_service.go
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

type AchievementService interface {
	// GetAchievements は実績一覧を返します。呼び出しのたびにルールを再評価し、
	// 新たに条件を満たした実績を獲得済みとして記録します (副作用あり)。
	GetAchievements(ctx context.Context, userID uuid.UUID) (*model.AchievementsResponse, error)
}

// achievementRule は1つの実績の獲得条件です。
// 各ルールは独立して評価され、順序に意味はありません。
type achievementRule struct {
	Type      model.AchievementType
	Qualifies func(stats model.AchievementStats) bool
}

// achievementRules は自動付与される実績のルール表です。
// perfect_session はカタログにのみ存在し、サーバー側では付与しません。
var achievementRules = []achievementRule{
	{model.AchievementFirstWord, func(s model.AchievementStats) bool { return s.TotalWordsLearned >= 1 }},
	{model.AchievementWords10, func(s model.AchievementStats) bool { return s.TotalWordsLearned >= 10 }},
	{model.AchievementWords50, func(s model.AchievementStats) bool { return s.TotalWordsLearned >= 50 }},
	{model.AchievementWords100, func(s model.AchievementStats) bool { return s.TotalWordsLearned >= 100 }},
	{model.AchievementWords500, func(s model.AchievementStats) bool { return s.TotalWordsLearned >= 500 }},
	{model.AchievementMastery10, func(s model.AchievementStats) bool { return s.MasteredWordCount >= 10 }},
	{model.AchievementMastery50, func(s model.AchievementStats) bool { return s.MasteredWordCount >= 50 }},
	{model.AchievementStreak3, func(s model.AchievementStats) bool { return s.CurrentStreak >= 3 }},
	{model.AchievementStreak7, func(s model.AchievementStats) bool { return s.CurrentStreak >= 7 }},
	{model.AchievementStreak30, func(s model.AchievementStats) bool { return s.CurrentStreak >= 30 }},
	{model.AchievementExercises100, func(s model.AchievementStats) bool { return s.TotalExercisesCompleted >= 100 }},
}

type achievementService struct {
	db       *gorm.DB
	achRepo  repository.AchievementRepository
	progRepo repository.ProgressRepository
	sessRepo repository.SessionRepository
	histRepo repository.ExerciseHistoryRepository
}

func NewAchievementService(
	db *gorm.DB,
	achRepo repository.AchievementRepository,
	progRepo repository.ProgressRepository,
	sessRepo repository.SessionRepository,
	histRepo repository.ExerciseHistoryRepository,
) AchievementService {
	return &achievementService{
		db:       db,
		achRepo:  achRepo,
		progRepo: progRepo,
		sessRepo: sessRepo,
		histRepo: histRepo,
	}
}

func (s *achievementService) GetAchievements(ctx context.Context, userID uuid.UUID) (*model.AchievementsResponse, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID)

	earned, err := s.achRepo.FindByUser(ctx, s.db, userID)
	if err != nil {
		logger.Error("Failed to find earned achievements", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "実績の取得に失敗しました。", "", err)
	}

	earnedAt := make(map[model.AchievementType]time.Time, len(earned))
	for _, a := range earned {
		earnedAt[a.AchievementType] = a.EarnedAt
	}

	stats, err := s.collectStats(ctx, userID)
	if err != nil {
		logger.Error("Failed to collect achievement stats", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "実績の判定に失敗しました。", "", err)
	}

	// ルール評価。条件を満たし、かつ未獲得のものだけを台帳に追記する。
	// 既に獲得済みの種別は何度評価しても変化しない (冪等)。
	var newlyEarned []model.AchievementDefinition
	for _, rule := range achievementRules {
		if _, already := earnedAt[rule.Type]; already || !rule.Qualifies(*stats) {
			continue
		}

		now := time.Now().UTC()
		createErr := s.achRepo.Create(ctx, s.db, &model.Achievement{
			AchievementID:   uuid.New(),
			UserID:          userID,
			AchievementType: rule.Type,
			EarnedAt:        now,
		})
		if createErr != nil {
			if errors.Is(createErr, model.ErrConflict) {
				// 同時評価との競合。別の評価が先に記録済みなので「獲得済み」として扱い、エラーにしない
				logger.Debug("Achievement already earned by concurrent evaluation", "type", rule.Type)
				earnedAt[rule.Type] = now
				continue
			}
			logger.Error("Failed to record achievement", "type", rule.Type, "error", createErr)
			return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "実績の記録に失敗しました。", "", createErr)
		}

		earnedAt[rule.Type] = now
		if def, ok := model.FindAchievementDefinition(rule.Type); ok {
			newlyEarned = append(newlyEarned, def)
		}
	}

	resp := &model.AchievementsResponse{
		Earned:         make([]model.EarnedAchievement, 0, len(earnedAt)),
		Available:      make([]model.AchievementDefinition, 0),
		NewlyEarned:    newlyEarned,
		TotalAvailable: len(model.AchievementDefinitions),
	}
	if resp.NewlyEarned == nil {
		resp.NewlyEarned = []model.AchievementDefinition{}
	}

	for _, def := range model.AchievementDefinitions {
		if at, ok := earnedAt[def.Type]; ok {
			resp.Earned = append(resp.Earned, model.EarnedAchievement{
				AchievementDefinition: def,
				EarnedAt:              at,
			})
		} else {
			resp.Available = append(resp.Available, def)
		}
	}
	resp.TotalEarned = len(resp.Earned)

	logger.Info("Achievements evaluated", "earned", resp.TotalEarned, "newly_earned", len(resp.NewlyEarned))
	return resp, nil
}

// collectStats はルール評価に必要な集計値を組み立てます。
func (s *achievementService) collectStats(ctx context.Context, userID uuid.UUID) (*model.AchievementStats, error) {
	progresses, err := s.progRepo.FindByUser(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}

	mastered := 0
	for _, p := range progresses {
		if p.MasteryLevel == model.MaxMasteryLevel {
			mastered++
		}
	}

	dates, err := s.sessRepo.FindDatesByUser(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}

	exerciseCount, err := s.histRepo.CountByUser(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}

	return &model.AchievementStats{
		TotalWordsLearned:       len(progresses),
		MasteredWordCount:       mastered,
		CurrentStreak:           srs.CalculateStreak(dates, time.Now().UTC()),
		TotalExercisesCompleted: int(exerciseCount),
	}, nil
}
