// internal/handlers/achievement_handler.go
package handlers

import (
	"log/slog"
	"net/http"

	"lingolearn/internal/middleware"
	"lingolearn/internal/model"
	"lingolearn/internal/service"
	"lingolearn/internal/webutil"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type AchievementHandler struct {
	service service.AchievementService
}

func NewAchievementHandler(s service.AchievementService) *AchievementHandler {
	return &AchievementHandler{service: s}
}

// GetAchievements は実績一覧を返すハンドラ (GET /api/achievements/{user_id})。
// 取得と同時にルールを再評価し、新規獲得分を記録します。
func (h *AchievementHandler) GetAchievements(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "GetAchievements"))

	userID, err := uuid.Parse(chi.URLParam(r, "user_id"))
	if err != nil {
		appErr := model.NewAppError("INVALID_USER_ID", "ユーザーIDの形式が正しくありません。", "user_id", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	resp, err := h.service.GetAchievements(r.Context(), userID)
	if err != nil {
		logger.Error("Error getting achievements in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, resp, logger)
}
