// internal/handlers/word_handler.go
package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"lingolearn/internal/middleware"
	"lingolearn/internal/model"
	"lingolearn/internal/service"
	"lingolearn/internal/webutil"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type WordHandler struct {
	service service.WordService
}

func NewWordHandler(s service.WordService) *WordHandler {
	return &WordHandler{service: s}
}

// GetWords は単語一覧を返すハンドラ (GET /api/words)
func (h *WordHandler) GetWords(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "GetWords"))

	filter := model.WordFilter{
		Category: r.URL.Query().Get("category"),
		Search:   r.URL.Query().Get("search"),
		Limit:    queryInt(r, "limit", 20),
		Offset:   queryInt(r, "offset", 0),
	}

	resp, err := h.service.GetWords(r.Context(), filter)
	if err != nil {
		logger.Error("Error listing words in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, resp, logger)
}

// GetRandomWords は学習用のランダムな単語を返すハンドラ (GET /api/words/random)
func (h *WordHandler) GetRandomWords(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "GetRandomWords"))

	var userID *uuid.UUID
	if v := r.URL.Query().Get("user_id"); v != "" {
		parsed, err := uuid.Parse(v)
		if err != nil {
			appErr := model.NewAppError("INVALID_USER_ID", "ユーザーIDの形式が正しくありません。", "user_id", model.ErrInvalidInput)
			webutil.HandleError(w, logger, appErr)
			return
		}
		userID = &parsed
	}

	words, err := h.service.GetRandomWords(r.Context(), queryInt(r, "count", 10), r.URL.Query().Get("category"), userID)
	if err != nil {
		logger.Error("Error getting random words in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	if words == nil {
		words = []*model.Word{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, map[string]interface{}{"words": words}, logger)
}

// GetWord は単語を1件返すハンドラ (GET /api/words/{word_id})
func (h *WordHandler) GetWord(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "GetWord"))

	wordID, err := uuid.Parse(chi.URLParam(r, "word_id"))
	if err != nil {
		appErr := model.NewAppError("INVALID_WORD_ID", "単語IDの形式が正しくありません。", "word_id", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	word, err := h.service.GetWord(r.Context(), wordID)
	if err != nil {
		logger.Warn("Error getting word in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, map[string]interface{}{"word": word}, logger)
}

// queryInt はクエリパラメータを整数として読みます。不正・未指定はデフォルト値。
func queryInt(r *http.Request, key string, def int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def
	}
	parsed, err := strconv.Atoi(v)
	if err != nil || parsed < 0 {
		return def
	}
	return parsed
}
