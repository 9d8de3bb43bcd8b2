// internal/service/exercise_service_test.go
package service

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"testing"
	"time"

	"lingolearn/internal/config"
	"lingolearn/internal/model"
	"lingolearn/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newExerciseService(db *gorm.DB, seed int64) ExerciseService {
	cfg := &config.Config{}
	cfg.App.ExerciseCount = 10
	return NewExerciseService(
		db,
		repository.NewGormWordRepository(),
		repository.NewGormProgressRepository(),
		repository.NewGormSessionRepository(),
		repository.NewGormExerciseHistoryRepository(),
		cfg,
		rand.New(rand.NewSource(seed)),
	)
}

func seedWords(t *testing.T, db *gorm.DB, pairs [][2]string) []*model.Word {
	t.Helper()
	words := make([]*model.Word, 0, len(pairs))
	for _, p := range pairs {
		words = append(words, seedWord(t, db, p[0], p[1]))
	}
	return words
}

func Test_exerciseService_GenerateExercises_MultipleChoice(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t, "exercise_mc")
	svc := newExerciseService(db, 1)

	words := seedWords(t, db, [][2]string{
		{"ephemeral", "lasting for a very short time"},
		{"ubiquitous", "present everywhere"},
		{"gregarious", "fond of company"},
		{"laconic", "using few words"},
		{"candid", "honest and direct"},
		{"arcane", "understood by few"},
	})

	// 候補が要求数に満たない場合はある分だけ返す
	exercises, err := svc.GenerateExercises(ctx, model.ExerciseMultipleChoice, 10, nil)
	require.NoError(t, err)
	require.Len(t, exercises, len(words))

	seen := make(map[uuid.UUID]bool)
	for _, ex := range exercises {
		assert.False(t, seen[ex.WordID], "同一バッチ内で単語が重複している: %s", ex.Term)
		seen[ex.WordID] = true

		assert.Equal(t, model.ExerciseMultipleChoice, ex.Type)
		require.Len(t, ex.Options, distractorCount+1)
		assert.Contains(t, ex.Options, ex.CorrectAnswer)

		// 誤答選択肢は正解と重複しない
		correctSeen := 0
		for _, opt := range ex.Options {
			if opt == ex.CorrectAnswer {
				correctSeen++
			}
		}
		assert.Equal(t, 1, correctSeen)
	}
}

func Test_exerciseService_GenerateExercises_Deterministic(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t, "exercise_seed")

	seedWords(t, db, [][2]string{
		{"alpha", "first"},
		{"beta", "second"},
		{"gamma", "third"},
		{"delta", "fourth"},
		{"epsilon", "fifth"},
	})

	// 同じシードなら単語の選択も選択肢の並びも一致する
	first, err := newExerciseService(db, 42).GenerateExercises(ctx, model.ExerciseMultipleChoice, 5, nil)
	require.NoError(t, err)
	second, err := newExerciseService(db, 42).GenerateExercises(ctx, model.ExerciseMultipleChoice, 5, nil)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func Test_exerciseService_GenerateExercises_PrefersLowMastery(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t, "exercise_low_mastery")
	svc := newExerciseService(db, 7)

	userID := uuid.New()
	weak := seedWords(t, db, [][2]string{
		{"weak-one", "definition one"},
		{"weak-two", "definition two"},
	})
	seedWords(t, db, [][2]string{
		{"filler-one", "filler definition one"},
		{"filler-two", "filler definition two"},
		{"filler-three", "filler definition three"},
	})

	now := time.Now().UTC()
	for _, w := range weak {
		require.NoError(t, db.Create(&model.UserProgress{
			ProgressID:   uuid.New(),
			UserID:       userID,
			WordID:       w.WordID,
			MasteryLevel: 1,
			NextReview:   now,
		}).Error)
	}

	exercises, err := svc.GenerateExercises(ctx, model.ExerciseMultipleChoice, 2, &userID)
	require.NoError(t, err)
	require.Len(t, exercises, 2)

	// 習熟度の低い2語だけで要求数が満たせるので、埋め草は混ざらない
	wantIDs := map[uuid.UUID]bool{weak[0].WordID: true, weak[1].WordID: true}
	for _, ex := range exercises {
		assert.True(t, wantIDs[ex.WordID], "低習熟の単語以外が出題された: %s", ex.Term)
	}
}

func Test_exerciseService_GenerateExercises_FillBlank(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t, "exercise_fill_blank")
	svc := newExerciseService(db, 3)

	t.Run("例文中のすべての出現箇所が大文字小文字を問わず空所化される", func(t *testing.T) {
		word := seedWord(t, db, "ephemeral", "lasting for a very short time")
		word.ExampleSentence = "Ephemeral trends fade fast; truly ephemeral things leave no trace."
		require.NoError(t, db.Save(word).Error)

		exercises, err := svc.GenerateExercises(ctx, model.ExerciseFillBlank, 10, nil)
		require.NoError(t, err)
		require.Len(t, exercises, 1)

		ex := exercises[0]
		assert.Equal(t, model.ExerciseFillBlank, ex.Type)
		assert.NotContains(t, strings.ToLower(ex.Sentence), "ephemeral")
		assert.Equal(t, 2, strings.Count(ex.Sentence, BlankMarker))
		assert.Equal(t, "ephemeral", ex.CorrectAnswer)
		assert.Equal(t, word.Definition, ex.Hint)
	})

	t.Run("例文がない単語は定型文を合成して空所化する", func(t *testing.T) {
		db2 := setupTestDB(t, "exercise_fill_blank_synth")
		svc2 := newExerciseService(db2, 3)
		seedWord(t, db2, "laconic", "using few words")

		exercises, err := svc2.GenerateExercises(ctx, model.ExerciseFillBlank, 10, nil)
		require.NoError(t, err)
		require.Len(t, exercises, 1)
		assert.Equal(t, "The word "+BlankMarker+" means using few words.", exercises[0].Sentence)
	})
}

func Test_exerciseService_GenerateExercises_Listening(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t, "exercise_listening")
	svc := newExerciseService(db, 9)

	word := seedWord(t, db, "zenith", "the highest point")
	word.Pronunciation = "/ˈziːnɪθ/"
	word.AudioURL = "https://cdn.example.com/audio/zenith.mp3"
	require.NoError(t, db.Save(word).Error)
	seedWords(t, db, [][2]string{
		{"nadir", "the lowest point"},
		{"apex", "the top"},
		{"acme", "the peak"},
	})

	exercises, err := svc.GenerateExercises(ctx, model.ExerciseListening, 10, nil)
	require.NoError(t, err)
	require.Len(t, exercises, 4)

	for _, ex := range exercises {
		// listeningの選択肢は定義ではなく単語そのもの
		assert.Contains(t, ex.Options, ex.Term)
		assert.Equal(t, ex.Term, ex.CorrectAnswer)
		assert.NotEmpty(t, ex.Definition)
		if ex.Term == "zenith" {
			assert.Equal(t, "/ˈziːnɪθ/", ex.Pronunciation)
			assert.Equal(t, "https://cdn.example.com/audio/zenith.mp3", ex.AudioURL)
		}
	}
}

func Test_exerciseService_GenerateExercises_EdgeCases(t *testing.T) {
	ctx := context.Background()

	t.Run("異常系: 不明な出題形式はinvalid input", func(t *testing.T) {
		db := setupTestDB(t, "exercise_bad_type")
		svc := newExerciseService(db, 1)

		_, err := svc.GenerateExercises(ctx, model.ExerciseType("crossword"), 5, nil)
		require.Error(t, err)
		assert.True(t, errors.Is(err, model.ErrInvalidInput))
	})

	t.Run("正常系: 単語が1つもなければ空のスライスを返す", func(t *testing.T) {
		db := setupTestDB(t, "exercise_empty_pool")
		svc := newExerciseService(db, 1)

		exercises, err := svc.GenerateExercises(ctx, model.ExerciseMultipleChoice, 5, nil)
		require.NoError(t, err)
		assert.Empty(t, exercises)
	})

	t.Run("正常系: countが0以下なら設定のデフォルト問題数を使う", func(t *testing.T) {
		db := setupTestDB(t, "exercise_default_count")
		svc := newExerciseService(db, 1)
		pairs := make([][2]string, 0, 12)
		for i := 0; i < 12; i++ {
			pairs = append(pairs, [2]string{"word-" + string(rune('a'+i)), "definition " + string(rune('a'+i))})
		}
		seedWords(t, db, pairs)

		exercises, err := svc.GenerateExercises(ctx, model.ExerciseMultipleChoice, 0, nil)
		require.NoError(t, err)
		assert.Len(t, exercises, 10)
	})
}

func Test_exerciseService_SubmitExercises(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t, "exercise_submit")
	svc := newExerciseService(db, 1)

	boolPtr := func(b bool) *bool { return &b }

	t.Run("正常系: 履歴とセッションが記録され、正答率は四捨五入される", func(t *testing.T) {
		userID := uuid.New()
		results := []model.ExerciseResult{
			{WordID: uuid.New(), ExerciseType: model.ExerciseMultipleChoice, IsCorrect: boolPtr(true)},
			{WordID: uuid.New(), ExerciseType: model.ExerciseMultipleChoice, IsCorrect: boolPtr(true)},
			{WordID: uuid.New(), ExerciseType: model.ExerciseFillBlank, IsCorrect: boolPtr(false)},
		}

		summary, err := svc.SubmitExercises(ctx, userID, results)
		require.NoError(t, err)
		assert.Equal(t, 3, summary.Total)
		assert.Equal(t, 2, summary.Correct)
		assert.Equal(t, 67, summary.Accuracy) // 66.67% → 67

		var historyCount int64
		require.NoError(t, db.Model(&model.ExerciseHistory{}).Where("user_id = ?", userID).Count(&historyCount).Error)
		assert.Equal(t, int64(3), historyCount)

		var session model.LearningSession
		require.NoError(t, db.Where("user_id = ?", userID).First(&session).Error)
		assert.Equal(t, 3, session.ExercisesCompleted)
		assert.Equal(t, 0, session.WordsLearned)

		// 同日の2回目の送信はセッションに加算される
		_, err = svc.SubmitExercises(ctx, userID, results[:1])
		require.NoError(t, err)
		require.NoError(t, db.Where("user_id = ?", userID).First(&session).Error)
		assert.Equal(t, 4, session.ExercisesCompleted)
	})

	t.Run("異常系: 空の回答はエラー", func(t *testing.T) {
		_, err := svc.SubmitExercises(ctx, uuid.New(), nil)
		require.Error(t, err)
		assert.True(t, errors.Is(err, model.ErrInvalidInput))
	})
}

func Test_CheckFillBlankAnswer(t *testing.T) {
	tests := []struct {
		name   string
		answer string
		term   string
		want   bool
	}{
		{"完全一致", "ephemeral", "ephemeral", true},
		{"大文字小文字を区別しない", "EPHEMERAL", "ephemeral", true},
		{"前後の空白を無視する", "  ephemeral  ", "ephemeral", true},
		{"別の単語は不正解", "eternal", "ephemeral", false},
		{"部分一致は不正解", "ephemera", "ephemeral", false},
		{"空文字は不正解", "", "ephemeral", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CheckFillBlankAnswer(tt.answer, tt.term))
		})
	}
}
