// internal/handlers/word_handler.go
package handlers

import (
	"errors"
	"net/http"

	"go_vocab_mastery/internal/middleware"
	"go_vocab_mastery/internal/model"
	"go_vocab_mastery/internal/service"
	"go_vocab_mastery/internal/webutil"

	"github.com/go-playground/validator/v10"
)

type WordHandler struct {
	reviewService service.ReviewService
	importService service.ImportService
}

func NewWordHandler(reviewService service.ReviewService, importService service.ImportService) *WordHandler {
	return &WordHandler{
		reviewService: reviewService,
		importService: importService,
	}
}

// GetVocabBook はユーザーの単語帳 (学習中の全単語と進捗) を返します
func (h *WordHandler) GetVocabBook(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", "error", err)
		webutil.HandleError(w, logger, err)
		return
	}

	entries, err := h.reviewService.GetVocabBook(r.Context(), userID)
	if err != nil {
		logger.Error("Error getting vocab book in service", "error", err)
		webutil.HandleError(w, logger, err)
		return
	}

	if entries == nil {
		entries = []*model.VocabBookEntry{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, entries)
}

// GetVocabStats はダッシュボード用のステータス別集計を返します
func (h *WordHandler) GetVocabStats(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", "error", err)
		webutil.HandleError(w, logger, err)
		return
	}

	stats, err := h.reviewService.GetVocabStats(r.Context(), userID)
	if err != nil {
		logger.Error("Error getting vocab stats in service", "error", err)
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, stats)
}

// ImportWords は単語・出現レコードの一括インポートを実行します
func (h *WordHandler) ImportWords(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	if _, err := middleware.GetUserIDFromContext(r.Context()); err != nil {
		logger.Warn("Unauthorized access attempt", "error", err)
		webutil.HandleError(w, logger, err)
		return
	}

	var req model.ImportBatchRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", "error", err)
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	if err := webutil.Validator.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			logger.Warn("Validation failed for import", "errors", validationErrors.Error())
			webutil.HandleError(w, logger, webutil.NewValidationErrorResponse(validationErrors))
		} else {
			logger.Error("Unexpected error during validation", "error", err)
			webutil.HandleError(w, logger, err)
		}
		return
	}

	report, err := h.importService.ImportBatch(r.Context(), &req)
	if err != nil {
		logger.Error("Error importing batch in service", "error", err)
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, report)
}
