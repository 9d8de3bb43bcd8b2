// internal/service/exercise_service.go
package service

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"regexp"
	"strings"
	"sync"
	"time"

	"lingolearn/internal/config"
	"lingolearn/internal/middleware"
	"lingolearn/internal/model"
	"lingolearn/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BlankMarker は fill_blank 問題で単語を置き換える空所マーカーです。
const BlankMarker = "______"

// 選択問題の誤答選択肢の数
const distractorCount = 3

type ExerciseService interface {
	// GenerateExercises は練習問題を生成します。userIDが指定された場合は
	// 習熟度の低い単語を優先し、足りなければ任意の単語で補います。
	// 候補が要求数に満たない場合はある分だけ返します (エラーにしない)。
	GenerateExercises(ctx context.Context, exType model.ExerciseType, count int, userID *uuid.UUID) ([]*model.Exercise, error)
	// SubmitExercises は回答結果を記録し、集計を返します。
	SubmitExercises(ctx context.Context, userID uuid.UUID, results []model.ExerciseResult) (*model.ExerciseSummary, error)
}

type exerciseService struct {
	db          *gorm.DB
	wordRepo    repository.WordRepository
	progRepo    repository.ProgressRepository
	sessionRepo repository.SessionRepository
	histRepo    repository.ExerciseHistoryRepository
	cfg         *config.Config

	// 選択肢のシャッフル用。テストからシードを注入できるようコンストラクタで受け取る
	mu  sync.Mutex
	rng *rand.Rand
}

func NewExerciseService(
	db *gorm.DB,
	wordRepo repository.WordRepository,
	progRepo repository.ProgressRepository,
	sessionRepo repository.SessionRepository,
	histRepo repository.ExerciseHistoryRepository,
	cfg *config.Config,
	rng *rand.Rand,
) ExerciseService {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &exerciseService{
		db:          db,
		wordRepo:    wordRepo,
		progRepo:    progRepo,
		sessionRepo: sessionRepo,
		histRepo:    histRepo,
		cfg:         cfg,
		rng:         rng,
	}
}

func (s *exerciseService) GenerateExercises(ctx context.Context, exType model.ExerciseType, count int, userID *uuid.UUID) ([]*model.Exercise, error) {
	logger := middleware.GetLogger(ctx)

	if !exType.IsValid() {
		return nil, model.NewAppError("INVALID_EXERCISE_TYPE", "不明な出題形式です。", "type", model.ErrInvalidInput)
	}
	if count <= 0 {
		count = s.cfg.App.ExerciseCount
	}

	pool, err := s.selectWords(ctx, count, userID)
	if err != nil {
		logger.Error("Failed to select words for exercises", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "問題の生成に失敗しました。", "", err)
	}
	if len(pool) == 0 {
		return []*model.Exercise{}, nil
	}

	// 誤答選択肢の供給源は全単語
	allWords, err := s.wordRepo.FindAll(ctx, s.db, "", nil)
	if err != nil {
		logger.Error("Failed to load distractor words", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "問題の生成に失敗しました。", "", err)
	}

	exercises := make([]*model.Exercise, 0, len(pool))
	for _, word := range pool {
		switch exType {
		case model.ExerciseMultipleChoice:
			exercises = append(exercises, s.buildMultipleChoice(word, allWords))
		case model.ExerciseFillBlank:
			exercises = append(exercises, s.buildFillBlank(word))
		case model.ExerciseListening:
			exercises = append(exercises, s.buildListening(word, allWords))
		}
	}

	logger.Info("Exercises generated", "type", exType, "requested", count, "generated", len(exercises))
	return exercises, nil
}

// selectWords は出題候補の単語を選びます。1つのバッチ内で単語は重複しません。
func (s *exerciseService) selectWords(ctx context.Context, count int, userID *uuid.UUID) ([]*model.Word, error) {
	picked := make([]*model.Word, 0, count)
	seen := make(map[uuid.UUID]bool, count)

	if userID != nil {
		// 習熟度3以下の単語を優先。多様性のため要求数の2倍まで取ってからシャッフルする
		progresses, err := s.progRepo.FindLowMasteryByUser(ctx, s.db, *userID, 3, count*2)
		if err != nil {
			return nil, err
		}
		candidates := make([]*model.Word, 0, len(progresses))
		for _, p := range progresses {
			if p.Word != nil && !seen[p.WordID] {
				seen[p.WordID] = true
				candidates = append(candidates, p.Word)
			}
		}
		s.shuffleWords(candidates)
		picked = append(picked, candidates...)
	}

	// 足りなければ任意の単語で補う
	if len(picked) < count {
		excludeIDs := make([]uuid.UUID, 0, len(picked))
		for id := range seen {
			excludeIDs = append(excludeIDs, id)
		}
		fillers, err := s.wordRepo.FindAll(ctx, s.db, "", excludeIDs)
		if err != nil {
			return nil, err
		}
		s.shuffleWords(fillers)
		picked = append(picked, fillers...)
	}

	if len(picked) > count {
		picked = picked[:count]
	}
	return picked, nil
}

func (s *exerciseService) buildMultipleChoice(word *model.Word, allWords []*model.Word) *model.Exercise {
	distractors := s.pickDistractors(word, allWords, func(w *model.Word) string { return w.Definition })
	options := append([]string{word.Definition}, distractors...)
	s.shuffleStrings(options)

	return &model.Exercise{
		WordID:        word.WordID,
		Term:          word.Term,
		Type:          model.ExerciseMultipleChoice,
		Question:      fmt.Sprintf("What is the definition of %q?", word.Term),
		Options:       options,
		CorrectAnswer: word.Definition,
	}
}

func (s *exerciseService) buildFillBlank(word *model.Word) *model.Exercise {
	sentence := word.ExampleSentence
	if sentence == "" {
		// 例文がない単語は決定的に合成する
		sentence = SynthesizeSentence(word)
	}

	// 単語の出現箇所を大文字小文字を区別せずすべて空所化する
	pattern := regexp.MustCompile("(?i)" + regexp.QuoteMeta(word.Term))
	blanked := pattern.ReplaceAllString(sentence, BlankMarker)

	return &model.Exercise{
		WordID:        word.WordID,
		Term:          word.Term,
		Type:          model.ExerciseFillBlank,
		Question:      "Fill in the blank:",
		Sentence:      blanked,
		CorrectAnswer: word.Term,
		Hint:          word.Definition,
	}
}

func (s *exerciseService) buildListening(word *model.Word, allWords []*model.Word) *model.Exercise {
	// 選択肢のスキームはmultiple_choiceと同じだが、値は定義ではなく単語そのもの
	distractors := s.pickDistractors(word, allWords, func(w *model.Word) string { return w.Term })
	options := append([]string{word.Term}, distractors...)
	s.shuffleStrings(options)

	return &model.Exercise{
		WordID:        word.WordID,
		Term:          word.Term,
		Type:          model.ExerciseListening,
		Question:      "Listen and select the correct word:",
		Options:       options,
		CorrectAnswer: word.Term,
		Pronunciation: word.Pronunciation,
		AudioURL:      word.AudioURL,
		Definition:    word.Definition, // 回答後のフィードバック用
	}
}

// pickDistractors は他の単語から誤答選択肢を選びます。
// 正解の単語自身と、正解と同じ値になる選択肢は除外します。
func (s *exerciseService) pickDistractors(word *model.Word, allWords []*model.Word, value func(*model.Word) string) []string {
	correct := value(word)

	candidates := make([]string, 0, len(allWords))
	used := map[string]bool{correct: true}
	for _, w := range allWords {
		if w.WordID == word.WordID {
			continue
		}
		v := value(w)
		if v == "" || used[v] {
			continue
		}
		used[v] = true
		candidates = append(candidates, v)
	}

	s.shuffleStrings(candidates)
	if len(candidates) > distractorCount {
		candidates = candidates[:distractorCount]
	}
	return candidates
}

func (s *exerciseService) SubmitExercises(ctx context.Context, userID uuid.UUID, results []model.ExerciseResult) (*model.ExerciseSummary, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID)

	if len(results) == 0 {
		return nil, model.NewAppError("VALIDATION_ERROR", "回答が1件も含まれていません。", "exercises", model.ErrInvalidInput)
	}

	now := time.Now().UTC()
	records := make([]*model.ExerciseHistory, 0, len(results))
	correct := 0
	for _, r := range results {
		isCorrect := r.IsCorrect != nil && *r.IsCorrect
		if isCorrect {
			correct++
		}
		records = append(records, &model.ExerciseHistory{
			HistoryID:        uuid.New(),
			UserID:           userID,
			WordID:           r.WordID,
			ExerciseType:     r.ExerciseType,
			IsCorrect:        isCorrect,
			TimeTakenSeconds: r.TimeTakenSeconds,
		})
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.histRepo.CreateBatch(ctx, tx, records); err != nil {
			logger.Error("Error creating exercise history", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "回答履歴の保存に失敗しました。", "", err)
		}
		if err := s.sessionRepo.AddCounts(ctx, tx, userID, now, 0, len(records)); err != nil {
			logger.Error("Error upserting learning session", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "学習セッションの更新に失敗しました。", "", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	summary := &model.ExerciseSummary{
		Total:    len(results),
		Correct:  correct,
		Accuracy: int(math.Round(float64(correct) / float64(len(results)) * 100)),
	}
	logger.Info("Exercise results submitted", "total", summary.Total, "correct", summary.Correct)
	return summary, nil
}

// SynthesizeSentence は例文を持たない単語のための例文を決定的に生成します。
func SynthesizeSentence(word *model.Word) string {
	return fmt.Sprintf("The word %s means %s.", word.Term, word.Definition)
}

// CheckFillBlankAnswer は fill_blank の回答を採点します。
// 前後の空白を除き、大文字小文字を区別せずに単語と完全一致すれば正解です。
func CheckFillBlankAnswer(answer, term string) bool {
	return strings.EqualFold(strings.TrimSpace(answer), strings.TrimSpace(term))
}

func (s *exerciseService) shuffleStrings(values []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rng.Shuffle(len(values), func(i, j int) {
		values[i], values[j] = values[j], values[i]
	})
}

func (s *exerciseService) shuffleWords(words []*model.Word) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rng.Shuffle(len(words), func(i, j int) {
		words[i], words[j] = words[j], words[i]
	})
}
