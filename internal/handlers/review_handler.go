// internal/handlers/review_handler.go
package handlers

import (
	"errors"
	"net/http"

	"go_vocab_mastery/internal/middleware"
	"go_vocab_mastery/internal/model"
	"go_vocab_mastery/internal/service"
	"go_vocab_mastery/internal/webutil"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type ReviewHandler struct {
	service service.ReviewService
}

func NewReviewHandler(s service.ReviewService) *ReviewHandler {
	return &ReviewHandler{service: s}
}

// GetReviewWords は復習期限が到来した単語のキューを返します
func (h *ReviewHandler) GetReviewWords(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", "error", err)
		webutil.HandleError(w, logger, err)
		return
	}

	reviewWords, err := h.service.GetReviewWords(r.Context(), userID)
	if err != nil {
		logger.Error("Error getting review words in service", "error", err)
		webutil.HandleError(w, logger, err)
		return
	}

	if reviewWords == nil {
		reviewWords = []*model.ReviewWordResponse{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, reviewWords)
}

// RateCard は採点結果を受け取り、次回の復習スケジュールを更新して返します
func (h *ReviewHandler) RateCard(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", "error", err)
		webutil.HandleError(w, logger, err)
		return
	}

	wordID, err := uuid.Parse(chi.URLParam(r, "word_id"))
	if err != nil {
		appErr := model.NewAppError("INVALID_REQUEST", "単語IDの形式が正しくありません。", "word_id", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	var req model.RateCardRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", "error", err)
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	if err := webutil.Validator.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			logger.Warn("Validation failed for rate card", "errors", validationErrors.Error())
			webutil.HandleError(w, logger, webutil.NewValidationErrorResponse(validationErrors))
		} else {
			logger.Error("Unexpected error during validation", "error", err)
			webutil.HandleError(w, logger, err)
		}
		return
	}

	progress, err := h.service.RateCard(r.Context(), userID, wordID, &req)
	if err != nil {
		logger.Error("Error rating card in service", "error", err, "word_id", wordID.String())
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, progress)
}

// ResetCard は学習進捗を削除し、単語を未学習状態に戻します (冪等)
func (h *ReviewHandler) ResetCard(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", "error", err)
		webutil.HandleError(w, logger, err)
		return
	}

	wordID, err := uuid.Parse(chi.URLParam(r, "word_id"))
	if err != nil {
		appErr := model.NewAppError("INVALID_REQUEST", "単語IDの形式が正しくありません。", "word_id", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	resp, err := h.service.ResetCard(r.Context(), userID, wordID)
	if err != nil {
		logger.Error("Error resetting card in service", "error", err, "word_id", wordID.String())
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, resp)
}

// SetMastery は習得フラグを明示的に上書きします
func (h *ReviewHandler) SetMastery(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", "error", err)
		webutil.HandleError(w, logger, err)
		return
	}

	wordID, err := uuid.Parse(chi.URLParam(r, "word_id"))
	if err != nil {
		appErr := model.NewAppError("INVALID_REQUEST", "単語IDの形式が正しくありません。", "word_id", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	var req model.SetMasteryRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", "error", err)
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}
	if req.Mastered == nil {
		appErr := model.NewAppError("VALIDATION_ERROR", "習得フラグは必須項目です。", "mastered", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	resp, err := h.service.SetMastery(r.Context(), userID, wordID, *req.Mastered)
	if err != nil {
		logger.Error("Error setting mastery in service", "error", err, "word_id", wordID.String())
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, resp)
}
