// internal/handlers/progress_handler.go
package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"lingolearn/internal/config"
	"lingolearn/internal/middleware"
	"lingolearn/internal/model"
	"lingolearn/internal/service"
	"lingolearn/internal/webutil"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type ProgressHandler struct {
	service service.ProgressService
	cfg     *config.Config
}

func NewProgressHandler(s service.ProgressService, cfg *config.Config) *ProgressHandler {
	return &ProgressHandler{service: s, cfg: cfg}
}

// UpdateProgress はレビュー結果を反映するハンドラ (POST /api/progress/update)
func (h *ProgressHandler) UpdateProgress(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "UpdateProgress"))

	var req model.UpdateProgressRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	if appErr := webutil.ValidateStruct(req); appErr != nil {
		logger.Warn("Validation failed", slog.String("error", appErr.Error()))
		webutil.HandleError(w, logger, appErr)
		return
	}

	progress, err := h.service.RecordReview(r.Context(), req.UserID, req.WordID, *req.WasCorrect)
	if err != nil {
		logger.Error("Error recording review in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Progress updated", slog.String("word_id", req.WordID.String()), slog.Int("mastery_level", progress.MasteryLevel))
	webutil.RespondWithJSON(w, http.StatusOK, model.UpdateProgressResponse{
		Success:  true,
		Progress: progress,
	}, logger)
}

// ToggleBookmark はブックマークを切り替えるハンドラ (POST /api/progress/bookmark)
func (h *ProgressHandler) ToggleBookmark(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "ToggleBookmark"))

	var req model.BookmarkRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	if appErr := webutil.ValidateStruct(req); appErr != nil {
		logger.Warn("Validation failed", slog.String("error", appErr.Error()))
		webutil.HandleError(w, logger, appErr)
		return
	}

	isBookmarked, err := h.service.ToggleBookmark(r.Context(), req.UserID, req.WordID, *req.IsBookmarked)
	if err != nil {
		logger.Warn("Error toggling bookmark in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, model.BookmarkResponse{
		Success:      true,
		IsBookmarked: isBookmarked,
	}, logger)
}

// GetStats は学習統計を返すハンドラ (GET /api/progress/{user_id})
func (h *ProgressHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "GetStats"))

	userID, err := uuid.Parse(chi.URLParam(r, "user_id"))
	if err != nil {
		appErr := model.NewAppError("INVALID_USER_ID", "ユーザーIDの形式が正しくありません。", "user_id", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	stats, err := h.service.GetStats(r.Context(), userID)
	if err != nil {
		logger.Error("Error getting stats in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, stats, logger)
}

// GetDueWords は復習対象の単語一覧を返すハンドラ (GET /api/words/review/{user_id})
func (h *ProgressHandler) GetDueWords(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "GetDueWords"))

	userID, err := uuid.Parse(chi.URLParam(r, "user_id"))
	if err != nil {
		appErr := model.NewAppError("INVALID_USER_ID", "ユーザーIDの形式が正しくありません。", "user_id", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	limit := h.cfg.App.ReviewLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		if parsed, parseErr := strconv.Atoi(v); parseErr == nil && parsed > 0 {
			limit = parsed
		}
	}

	words, err := h.service.GetDueWords(r.Context(), userID, limit)
	if err != nil {
		logger.Error("Error getting due words in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	if words == nil {
		words = []*model.WordWithProgress{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, map[string]interface{}{"words": words}, logger)
}
