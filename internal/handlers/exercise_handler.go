// internal/handlers/exercise_handler.go
package handlers

import (
	"log/slog"
	"net/http"

	"lingolearn/internal/middleware"
	"lingolearn/internal/model"
	"lingolearn/internal/service"
	"lingolearn/internal/webutil"

	"github.com/google/uuid"
)

type ExerciseHandler struct {
	service service.ExerciseService
}

func NewExerciseHandler(s service.ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{service: s}
}

// GenerateExercises は練習問題を生成するハンドラ (GET /api/exercises/generate)
func (h *ExerciseHandler) GenerateExercises(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "GenerateExercises"))

	exType := model.ExerciseType(r.URL.Query().Get("type"))
	if exType == "" {
		exType = model.ExerciseMultipleChoice
	}
	if !exType.IsValid() {
		appErr := model.NewAppError("INVALID_EXERCISE_TYPE", "不明な出題形式です。", "type", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

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

	exercises, err := h.service.GenerateExercises(r.Context(), exType, queryInt(r, "count", 0), userID)
	if err != nil {
		logger.Error("Error generating exercises in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, model.GenerateExercisesResponse{
		Exercises: exercises,
		Type:      exType,
	}, logger)
}

// SubmitExercises は回答結果を記録するハンドラ (POST /api/exercises/submit)
func (h *ExerciseHandler) SubmitExercises(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "SubmitExercises"))

	var req model.SubmitExercisesRequest
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

	summary, err := h.service.SubmitExercises(r.Context(), req.UserID, req.Exercises)
	if err != nil {
		logger.Error("Error submitting exercises in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, model.SubmitExercisesResponse{
		Success: true,
		Stats:   *summary,
	}, logger)
}
