package handlers_test // テスト対象とは別のパッケージ名

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go_vocab_mastery/internal/handlers" // テスト対象
	"go_vocab_mastery/internal/model"

	svc_mocks "go_vocab_mastery/internal/service/mocks"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- ヘルパー: JSONボディの作成 ---
func newJsonRequestReview(t *testing.T, method string, target string, body interface{}) *http.Request {
	var reqBody io.Reader
	if body != nil {
		if bodyStr, ok := body.(string); ok {
			reqBody = strings.NewReader(bodyStr)
		} else {
			jsonData, err := json.Marshal(body)
			require.NoError(t, err)
			reqBody = bytes.NewBuffer(jsonData)
		}
	}
	req, err := http.NewRequest(method, target, reqBody)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

// --- ヘルパー: chi の RouteContext を設定 ---
func contextWithChiURLParamReview(ctx context.Context, key, value string) context.Context {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return context.WithValue(ctx, chi.RouteCtxKey, rctx)
}

// --- ヘルパー: 認証済みユーザーのコンテキスト ---
func contextWithUserID(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, model.UserIDKey, userID)
}

func intPtr(i int) *int {
	return &i
}

func boolPtr(b bool) *bool {
	return &b
}

// --- Test GetReviewWords ---
func TestReviewHandler_GetReviewWords(t *testing.T) {
	testUserID := uuid.New()
	testWordID := uuid.New()

	tests := []struct {
		name             string
		setupContext     func() context.Context
		setupMock        func(mockService *svc_mocks.ReviewService)
		expectedStatus   int
		expectedBodyPart string
	}{
		{
			name: "正常系: 復習単語を取得できる",
			setupContext: func() context.Context {
				return contextWithUserID(context.Background(), testUserID)
			},
			setupMock: func(mockService *svc_mocks.ReviewService) {
				words := []*model.ReviewWordResponse{
					{WordID: testWordID, Term: "가다", Meaning: "行く", Status: model.StatusLearning, Streak: 1},
				}
				mockService.On("GetReviewWords", mock.Anything, testUserID).Return(words, nil).Once()
			},
			expectedStatus:   http.StatusOK,
			expectedBodyPart: `"term":"가다"`,
		},
		{
			name: "正常系: 復習対象がない場合は空配列を返す",
			setupContext: func() context.Context {
				return contextWithUserID(context.Background(), testUserID)
			},
			setupMock: func(mockService *svc_mocks.ReviewService) {
				mockService.On("GetReviewWords", mock.Anything, testUserID).Return(nil, nil).Once()
			},
			expectedStatus:   http.StatusOK,
			expectedBodyPart: `[]`,
		},
		{
			name: "異常系: 認証情報がない場合は500",
			setupContext: func() context.Context {
				return context.Background()
			},
			setupMock:        func(mockService *svc_mocks.ReviewService) {},
			expectedStatus:   http.StatusInternalServerError,
			expectedBodyPart: "INTERNAL_SERVER_ERROR",
		},
		{
			name: "異常系: サービスがエラーを返す場合は500",
			setupContext: func() context.Context {
				return contextWithUserID(context.Background(), testUserID)
			},
			setupMock: func(mockService *svc_mocks.ReviewService) {
				mockService.On("GetReviewWords", mock.Anything, testUserID).Return(nil, errors.New("db error")).Once()
			},
			expectedStatus:   http.StatusInternalServerError,
			expectedBodyPart: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := svc_mocks.NewReviewService(t)
			tt.setupMock(mockService)
			handler := handlers.NewReviewHandler(mockService)

			req := newJsonRequestReview(t, http.MethodGet, "/api/v1/reviews", nil)
			req = req.WithContext(tt.setupContext())
			rr := httptest.NewRecorder()

			handler.GetReviewWords(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			if tt.expectedBodyPart != "" {
				assert.Contains(t, rr.Body.String(), tt.expectedBodyPart)
			}
		})
	}
}

// --- Test RateCard ---
func TestReviewHandler_RateCard(t *testing.T) {
	testUserID := uuid.New()
	testWordID := uuid.New()

	tests := []struct {
		name             string
		wordIDParam      string
		requestBody      interface{}
		setupMock        func(mockService *svc_mocks.ReviewService)
		expectedStatus   int
		expectedBodyPart string
	}{
		{
			name:        "正常系: レガシー方式の採点で更新後の進捗を返す",
			wordIDParam: testWordID.String(),
			requestBody: model.RateCardRequest{Model: model.ReviewModelLegacy, Quality: intPtr(5)},
			setupMock: func(mockService *svc_mocks.ReviewService) {
				rated := &model.LearningProgress{
					ProgressID: uuid.New(),
					UserID:     testUserID,
					WordID:     testWordID,
					Status:     model.StatusLearning,
					Interval:   1,
					Streak:     1,
				}
				mockService.On("RateCard", mock.Anything, testUserID, testWordID,
					mock.MatchedBy(func(req *model.RateCardRequest) bool {
						return req.Model == model.ReviewModelLegacy && req.Quality != nil && *req.Quality == 5
					})).Return(rated, nil).Once()
			},
			expectedStatus:   http.StatusOK,
			expectedBodyPart: `"status":"LEARNING"`,
		},
		{
			name:           "異常系: 単語IDがUUIDでない場合は400",
			wordIDParam:    "not-a-uuid",
			requestBody:    model.RateCardRequest{Model: model.ReviewModelLegacy, Quality: intPtr(3)},
			setupMock:      func(mockService *svc_mocks.ReviewService) {},
			expectedStatus:   http.StatusBadRequest,
			expectedBodyPart: "INVALID_REQUEST",
		},
		{
			name:           "異常系: ボディが不正なJSONの場合は400",
			wordIDParam:    testWordID.String(),
			requestBody:    `{"model": "legacy", "quality":`,
			setupMock:      func(mockService *svc_mocks.ReviewService) {},
			expectedStatus:   http.StatusBadRequest,
			expectedBodyPart: "INVALID_REQUEST_BODY",
		},
		{
			name:           "異常系: model が不正な値の場合はバリデーションエラー",
			wordIDParam:    testWordID.String(),
			requestBody:    map[string]interface{}{"model": "sm2", "quality": 3},
			setupMock:      func(mockService *svc_mocks.ReviewService) {},
			expectedStatus:   http.StatusBadRequest,
			expectedBodyPart: "VALIDATION_ERROR",
		},
		{
			name:           "異常系: quality が範囲外の場合はバリデーションエラー",
			wordIDParam:    testWordID.String(),
			requestBody:    map[string]interface{}{"model": "legacy", "quality": 6},
			setupMock:      func(mockService *svc_mocks.ReviewService) {},
			expectedStatus:   http.StatusBadRequest,
			expectedBodyPart: "VALIDATION_ERROR",
		},
		{
			name:        "異常系: 単語が存在しない場合は404",
			wordIDParam: testWordID.String(),
			requestBody: model.RateCardRequest{Model: model.ReviewModelLegacy, Quality: intPtr(3)},
			setupMock: func(mockService *svc_mocks.ReviewService) {
				mockService.On("RateCard", mock.Anything, testUserID, testWordID, mock.Anything).
					Return(nil, model.ErrNotFound).Once()
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := svc_mocks.NewReviewService(t)
			tt.setupMock(mockService)
			handler := handlers.NewReviewHandler(mockService)

			req := newJsonRequestReview(t, http.MethodPut, "/api/v1/reviews/"+tt.wordIDParam+"/result", tt.requestBody)
			ctx := contextWithUserID(context.Background(), testUserID)
			ctx = contextWithChiURLParamReview(ctx, "word_id", tt.wordIDParam)
			req = req.WithContext(ctx)
			rr := httptest.NewRecorder()

			handler.RateCard(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			if tt.expectedBodyPart != "" {
				assert.Contains(t, rr.Body.String(), tt.expectedBodyPart)
			}
		})
	}
}

// --- Test ResetCard ---
func TestReviewHandler_ResetCard(t *testing.T) {
	testUserID := uuid.New()
	testWordID := uuid.New()

	tests := []struct {
		name           string
		wordIDParam    string
		setupMock      func(mockService *svc_mocks.ReviewService)
		expectedStatus int
	}{
		{
			name:        "正常系: 進捗を削除して success を返す",
			wordIDParam: testWordID.String(),
			setupMock: func(mockService *svc_mocks.ReviewService) {
				mockService.On("ResetCard", mock.Anything, testUserID, testWordID).
					Return(&model.ResetCardResponse{Success: true}, nil).Once()
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "異常系: 単語IDがUUIDでない場合は400",
			wordIDParam:    "bad-id",
			setupMock:      func(mockService *svc_mocks.ReviewService) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := svc_mocks.NewReviewService(t)
			tt.setupMock(mockService)
			handler := handlers.NewReviewHandler(mockService)

			req := newJsonRequestReview(t, http.MethodDelete, "/api/v1/progress/"+tt.wordIDParam, nil)
			ctx := contextWithUserID(context.Background(), testUserID)
			ctx = contextWithChiURLParamReview(ctx, "word_id", tt.wordIDParam)
			req = req.WithContext(ctx)
			rr := httptest.NewRecorder()

			handler.ResetCard(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			if tt.expectedStatus == http.StatusOK {
				var resp model.ResetCardResponse
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
				assert.True(t, resp.Success)
			}
		})
	}
}

// --- Test SetMastery ---
func TestReviewHandler_SetMastery(t *testing.T) {
	testUserID := uuid.New()
	testWordID := uuid.New()

	tests := []struct {
		name             string
		requestBody      interface{}
		setupMock        func(mockService *svc_mocks.ReviewService)
		expectedStatus   int
		expectedBodyPart string
	}{
		{
			name:        "正常系: mastered=true で習得済みにできる",
			requestBody: model.SetMasteryRequest{Mastered: boolPtr(true)},
			setupMock: func(mockService *svc_mocks.ReviewService) {
				mockService.On("SetMastery", mock.Anything, testUserID, testWordID, true).
					Return(&model.SetMasteryResponse{Success: true, Action: "mastered"}, nil).Once()
			},
			expectedStatus:   http.StatusOK,
			expectedBodyPart: `"action":"mastered"`,
		},
		{
			name:        "正常系: mastered=false で学習中に戻せる",
			requestBody: model.SetMasteryRequest{Mastered: boolPtr(false)},
			setupMock: func(mockService *svc_mocks.ReviewService) {
				mockService.On("SetMastery", mock.Anything, testUserID, testWordID, false).
					Return(&model.SetMasteryResponse{Success: true, Action: "reset_to_learning"}, nil).Once()
			},
			expectedStatus:   http.StatusOK,
			expectedBodyPart: `"action":"reset_to_learning"`,
		},
		{
			name:             "異常系: mastered が未指定の場合はバリデーションエラー",
			requestBody:      map[string]interface{}{},
			setupMock:        func(mockService *svc_mocks.ReviewService) {},
			expectedStatus:   http.StatusBadRequest,
			expectedBodyPart: "VALIDATION_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := svc_mocks.NewReviewService(t)
			tt.setupMock(mockService)
			handler := handlers.NewReviewHandler(mockService)

			req := newJsonRequestReview(t, http.MethodPut, "/api/v1/progress/"+testWordID.String()+"/mastery", tt.requestBody)
			ctx := contextWithUserID(context.Background(), testUserID)
			ctx = contextWithChiURLParamReview(ctx, "word_id", testWordID.String())
			req = req.WithContext(ctx)
			rr := httptest.NewRecorder()

			handler.SetMastery(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			if tt.expectedBodyPart != "" {
				assert.Contains(t, rr.Body.String(), tt.expectedBodyPart)
			}
		})
	}
}
