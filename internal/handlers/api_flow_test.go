// internal/handlers/api_flow_test.go
package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"

	"lingolearn/internal/config"
	"lingolearn/internal/handlers"
	"lingolearn/internal/middleware"
	"lingolearn/internal/model"
	"lingolearn/internal/repository"
	"lingolearn/internal/service"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// setupTestServer は本番と同じ配線のルーターをインメモリDBで組み立てます。
func setupTestServer(t *testing.T, name string) (*httptest.Server, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, repository.Migrate(db))

	cfg := &config.Config{}
	cfg.App.ReviewLimit = 20
	cfg.App.ExerciseCount = 10

	wordRepo := repository.NewGormWordRepository()
	progRepo := repository.NewGormProgressRepository()
	sessRepo := repository.NewGormSessionRepository()
	achRepo := repository.NewGormAchievementRepository()
	histRepo := repository.NewGormExerciseHistoryRepository()

	rng := rand.New(rand.NewSource(1))
	wordService := service.NewWordService(db, wordRepo, progRepo, rng)
	progressService := service.NewProgressService(db, progRepo, sessRepo, wordRepo)
	achievementService := service.NewAchievementService(db, achRepo, progRepo, sessRepo, histRepo)
	exerciseService := service.NewExerciseService(db, wordRepo, progRepo, sessRepo, histRepo, cfg, rng)

	wordHandler := handlers.NewWordHandler(wordService)
	progressHandler := handlers.NewProgressHandler(progressService, cfg)
	achievementHandler := handlers.NewAchievementHandler(achievementService)
	exerciseHandler := handlers.NewExerciseHandler(exerciseService)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.NewStructuredLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Route("/api", func(r chi.Router) {
		r.Route("/words", func(r chi.Router) {
			r.Get("/", wordHandler.GetWords)
			r.Get("/random", wordHandler.GetRandomWords)
			r.Get("/review/{user_id}", progressHandler.GetDueWords)
			r.Get("/{word_id}", wordHandler.GetWord)
		})
		r.Route("/progress", func(r chi.Router) {
			r.Post("/update", progressHandler.UpdateProgress)
			r.Post("/bookmark", progressHandler.ToggleBookmark)
			r.Get("/{user_id}", progressHandler.GetStats)
		})
		r.Get("/achievements/{user_id}", achievementHandler.GetAchievements)
		r.Route("/exercises", func(r chi.Router) {
			r.Get("/generate", exerciseHandler.GenerateExercises)
			r.Post("/submit", exerciseHandler.SubmitExercises)
		})
	})

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)
	return server, db
}

func seedWordRow(t *testing.T, db *gorm.DB, term, definition string) *model.Word {
	t.Helper()
	word := &model.Word{
		WordID:     uuid.New(),
		Term:       term,
		Definition: definition,
		Category:   "general",
	}
	require.NoError(t, db.Create(word).Error)
	return word
}

func postJSON(t *testing.T, url string, payload interface{}) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func TestAPI_ReviewFlow(t *testing.T) {
	server, db := setupTestServer(t, "api_review_flow")
	userID := uuid.New()
	word := seedWordRow(t, db, "ephemeral", "lasting for a very short time")

	// 1. レビューを記録する
	resp := postJSON(t, server.URL+"/api/progress/update", map[string]interface{}{
		"user_id":     userID,
		"word_id":     word.WordID,
		"was_correct": true,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var updateResp model.UpdateProgressResponse
	decodeBody(t, resp, &updateResp)
	assert.True(t, updateResp.Success)
	require.NotNil(t, updateResp.Progress)
	assert.Equal(t, 1, updateResp.Progress.MasteryLevel)

	// 2. 直後の復習一覧には現れない (次回復習は未来のため)
	resp, err := http.Get(server.URL + "/api/words/review/" + userID.String())
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var reviewResp struct {
		Words []model.WordWithProgress `json:"words"`
	}
	decodeBody(t, resp, &reviewResp)
	assert.Empty(t, reviewResp.Words)

	// 3. 統計に反映されている
	resp, err = http.Get(server.URL + "/api/progress/" + userID.String())
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var stats model.ProgressSummaryResponse
	decodeBody(t, resp, &stats)
	assert.Equal(t, 1, stats.TotalWordsLearned)
	assert.Equal(t, 1, stats.CurrentStreak)
	assert.Equal(t, 1, stats.TodayProgress.WordsLearned)
	assert.Equal(t, 1, stats.MasteryBreakdown[1])

	// 4. 実績評価で first_word が新規獲得になる
	resp, err = http.Get(server.URL + "/api/achievements/" + userID.String())
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var achResp model.AchievementsResponse
	decodeBody(t, resp, &achResp)
	require.Len(t, achResp.NewlyEarned, 1)
	assert.Equal(t, model.AchievementFirstWord, achResp.NewlyEarned[0].Type)
}

func TestAPI_AchievementsFirstWord(t *testing.T) {
	server, db := setupTestServer(t, "api_achievements")
	userID := uuid.New()
	word := seedWordRow(t, db, "candid", "honest and direct")

	resp := postJSON(t, server.URL+"/api/progress/update", map[string]interface{}{
		"user_id":     userID,
		"word_id":     word.WordID,
		"was_correct": true,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp, err := http.Get(server.URL + "/api/achievements/" + userID.String())
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var achResp model.AchievementsResponse
	decodeBody(t, resp, &achResp)
	require.Len(t, achResp.NewlyEarned, 1)
	assert.Equal(t, model.AchievementFirstWord, achResp.NewlyEarned[0].Type)
	assert.Equal(t, 1, achResp.TotalEarned)

	// 再評価しても増えない
	resp, err = http.Get(server.URL + "/api/achievements/" + userID.String())
	require.NoError(t, err)
	decodeBody(t, resp, &achResp)
	assert.Empty(t, achResp.NewlyEarned)
	assert.Equal(t, 1, achResp.TotalEarned)
}

func TestAPI_BookmarkNotFound(t *testing.T) {
	server, db := setupTestServer(t, "api_bookmark_404")
	word := seedWordRow(t, db, "arcane", "understood by few")

	resp := postJSON(t, server.URL+"/api/progress/bookmark", map[string]interface{}{
		"user_id":       uuid.New(),
		"word_id":       word.WordID,
		"is_bookmarked": true,
	})
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	var errResp model.APIErrorResponse
	decodeBody(t, resp, &errResp)
	assert.Equal(t, "PROGRESS_NOT_FOUND", errResp.Error.Code)
}

func TestAPI_UpdateProgressValidation(t *testing.T) {
	server, _ := setupTestServer(t, "api_validation")

	tests := []struct {
		name     string
		payload  map[string]interface{}
		wantCode int
	}{
		{
			name:     "異常系: was_correct がない",
			payload:  map[string]interface{}{"user_id": uuid.New(), "word_id": uuid.New()},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "異常系: 未知のフィールドを拒否する",
			payload:  map[string]interface{}{"user_id": uuid.New(), "word_id": uuid.New(), "was_correct": true, "bogus": 1},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "異常系: 存在しない単語は404",
			payload:  map[string]interface{}{"user_id": uuid.New(), "word_id": uuid.New(), "was_correct": true},
			wantCode: http.StatusNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postJSON(t, server.URL+"/api/progress/update", tt.payload)
			defer resp.Body.Close()
			assert.Equal(t, tt.wantCode, resp.StatusCode)
		})
	}
}

func TestAPI_ExerciseFlow(t *testing.T) {
	server, db := setupTestServer(t, "api_exercise_flow")
	userID := uuid.New()

	for i := 0; i < 5; i++ {
		seedWordRow(t, db, fmt.Sprintf("word-%d", i), fmt.Sprintf("definition %d", i))
	}

	// 1. 問題を生成する
	resp, err := http.Get(server.URL + "/api/exercises/generate?type=multiple_choice&count=3&user_id=" + userID.String())
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var genResp model.GenerateExercisesResponse
	decodeBody(t, resp, &genResp)
	assert.Equal(t, model.ExerciseMultipleChoice, genResp.Type)
	require.Len(t, genResp.Exercises, 3)

	// 2. 回答を送信する
	exercises := make([]map[string]interface{}, 0, len(genResp.Exercises))
	for i, ex := range genResp.Exercises {
		exercises = append(exercises, map[string]interface{}{
			"word_id":       ex.WordID,
			"exercise_type": ex.Type,
			"is_correct":    i != 0, // 1問だけ不正解
		})
	}
	resp = postJSON(t, server.URL+"/api/exercises/submit", map[string]interface{}{
		"user_id":   userID,
		"exercises": exercises,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var submitResp model.SubmitExercisesResponse
	decodeBody(t, resp, &submitResp)
	assert.True(t, submitResp.Success)
	assert.Equal(t, 3, submitResp.Stats.Total)
	assert.Equal(t, 2, submitResp.Stats.Correct)
	assert.Equal(t, 67, submitResp.Stats.Accuracy)

	// 3. 統計の今日の演習数に反映される
	resp, err = http.Get(server.URL + "/api/progress/" + userID.String())
	require.NoError(t, err)
	var stats model.ProgressSummaryResponse
	decodeBody(t, resp, &stats)
	assert.Equal(t, 3, stats.TodayProgress.ExercisesCompleted)

	t.Run("異常系: 不明な出題形式は400", func(t *testing.T) {
		resp, err := http.Get(server.URL + "/api/exercises/generate?type=crossword")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("異常系: 空の回答は400", func(t *testing.T) {
		resp := postJSON(t, server.URL+"/api/exercises/submit", map[string]interface{}{
			"user_id":   userID,
			"exercises": []interface{}{},
		})
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestAPI_Words(t *testing.T) {
	server, db := setupTestServer(t, "api_words")
	word := seedWordRow(t, db, "zenith", "the highest point")
	seedWordRow(t, db, "nadir", "the lowest point")

	t.Run("正常系: 一覧を取得できる", func(t *testing.T) {
		resp, err := http.Get(server.URL + "/api/words")
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var listResp model.WordListResponse
		decodeBody(t, resp, &listResp)
		assert.Equal(t, int64(2), listResp.Total)
		assert.Len(t, listResp.Words, 2)
	})

	t.Run("正常系: IDで1件取得できる", func(t *testing.T) {
		resp, err := http.Get(server.URL + "/api/words/" + word.WordID.String())
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var got struct {
			Word model.Word `json:"word"`
		}
		decodeBody(t, resp, &got)
		assert.Equal(t, "zenith", got.Word.Term)
	})

	t.Run("異常系: 存在しないIDは404", func(t *testing.T) {
		resp, err := http.Get(server.URL + "/api/words/" + uuid.NewString())
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("正常系: ランダム取得は指定件数以内で返す", func(t *testing.T) {
		resp, err := http.Get(server.URL + "/api/words/random?count=1")
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var randResp struct {
			Words []model.Word `json:"words"`
		}
		decodeBody(t, resp, &randResp)
		assert.Len(t, randResp.Words, 1)
	})
}
