// internal/service/import_service_test.go
package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go_vocab_mastery/internal/cache"
	"go_vocab_mastery/internal/model"
	"go_vocab_mastery/internal/repository"
	"go_vocab_mastery/internal/repository/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDBImport() *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic("failed to connect database for import service testing: " + err.Error())
	}
	err = db.AutoMigrate(&model.Word{}, &model.Appearance{}, &model.LearningProgress{})
	if err != nil {
		panic("failed to migrate database for import service testing: " + err.Error())
	}
	return db
}

func newTestImportService(db *gorm.DB) ImportService {
	return NewImportService(
		db,
		repository.NewGormWordRepository(),
		repository.NewGormAppearanceRepository(),
		cache.New(5*time.Minute, 16),
	)
}

func Test_importService_ImportBatch_NewWord(t *testing.T) {
	ctx := context.Background()
	db := setupTestDBImport()
	svc := newTestImportService(db)

	courseID := uuid.New()
	unitID := uuid.New()
	req := &model.ImportBatchRequest{Items: []model.ImportItem{
		{
			Term:      "가다",
			Meaning:   strPtr("行く"),
			MeaningEn: strPtr("to go"),
			Example:   strPtr("학교에 가다"),
			CourseID:  courseID,
			UnitID:    unitID,
		},
	}}

	report, err := svc.ImportBatch(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, 1, report.SuccessCount)
	assert.Equal(t, 0, report.FailedCount)
	assert.Equal(t, 1, report.NewWordCount)
	assert.Empty(t, report.Errors)

	var word model.Word
	require.NoError(t, db.Where("term = ?", "가다").First(&word).Error)
	assert.Equal(t, "行く", word.Meaning)
	require.NotNil(t, word.MeaningEn)
	assert.Equal(t, "to go", *word.MeaningEn)

	var app model.Appearance
	require.NoError(t, db.Where("word_id = ? AND course_id = ? AND unit_id = ?", word.WordID, courseID, unitID).First(&app).Error)
	require.NotNil(t, app.Example)
	assert.Equal(t, "학교에 가다", *app.Example)
}

// 同一 (term, courseId, unitId) の再インポートはレコードを重複させない。
// 2回目の明示値は上書きされ、省略した値は1回目のものが保持される。
func Test_importService_ImportBatch_Idempotent(t *testing.T) {
	ctx := context.Background()
	db := setupTestDBImport()
	svc := newTestImportService(db)

	courseID := uuid.New()
	unitID := uuid.New()
	first := &model.ImportBatchRequest{Items: []model.ImportItem{
		{
			Term:      "오다",
			Meaning:   strPtr("来る"),
			MeaningEn: strPtr("to come"),
			Example:   strPtr("친구가 오다"),
			CourseID:  courseID,
			UnitID:    unitID,
		},
	}}
	report, err := svc.ImportBatch(ctx, first)
	require.NoError(t, err)
	assert.Equal(t, 1, report.NewWordCount)

	// 2回目: meaning だけを変更、meaning_en と example は省略
	second := &model.ImportBatchRequest{Items: []model.ImportItem{
		{
			Term:     "오다",
			Meaning:  strPtr("来る・やって来る"),
			CourseID: courseID,
			UnitID:   unitID,
		},
	}}
	report, err = svc.ImportBatch(ctx, second)
	require.NoError(t, err)
	assert.Equal(t, 1, report.SuccessCount)
	assert.Equal(t, 0, report.NewWordCount) // 既存単語の更新

	var wordCount, appCount int64
	require.NoError(t, db.Model(&model.Word{}).Where("term = ?", "오다").Count(&wordCount).Error)
	require.NoError(t, db.Model(&model.Appearance{}).Where("course_id = ?", courseID).Count(&appCount).Error)
	assert.Equal(t, int64(1), wordCount)
	assert.Equal(t, int64(1), appCount)

	var word model.Word
	require.NoError(t, db.Where("term = ?", "오다").First(&word).Error)
	assert.Equal(t, "来る・やって来る", word.Meaning)
	require.NotNil(t, word.MeaningEn)
	assert.Equal(t, "to come", *word.MeaningEn) // 省略した値は消えない

	var app model.Appearance
	require.NoError(t, db.Where("word_id = ?", word.WordID).First(&app).Error)
	require.NotNil(t, app.Example)
	assert.Equal(t, "친구가 오다", *app.Example)
}

// スマートフィル: 既知の単語への部分的なインポートが既存の豊かなデータを消さず、
// 新しい文脈の出現は最新の兄弟出現から欠損フィールドを継承する。
func Test_importService_ImportBatch_SmartFill(t *testing.T) {
	ctx := context.Background()
	db := setupTestDBImport()
	svc := newTestImportService(db)

	courseA := uuid.New()
	unitA := uuid.New()
	first := &model.ImportBatchRequest{Items: []model.ImportItem{
		{
			Term:      "보다",
			Meaning:   strPtr("見る"),
			MeaningEn: strPtr("to see"),
			CourseID:  courseA,
			UnitID:    unitA,
		},
	}}
	_, err := svc.ImportBatch(ctx, first)
	require.NoError(t, err)

	// 別の文脈で meaning のみの部分インポート
	courseB := uuid.New()
	unitB := uuid.New()
	second := &model.ImportBatchRequest{Items: []model.ImportItem{
		{
			Term:     "보다",
			Meaning:  strPtr("見る"),
			CourseID: courseB,
			UnitID:   unitB,
		},
	}}
	_, err = svc.ImportBatch(ctx, second)
	require.NoError(t, err)

	// 単語の meaning_en は消えていない
	var word model.Word
	require.NoError(t, db.Where("term = ?", "보다").First(&word).Error)
	require.NotNil(t, word.MeaningEn)
	assert.Equal(t, "to see", *word.MeaningEn)

	// 新しい出現は兄弟出現から meaning_en を継承している
	var appB model.Appearance
	require.NoError(t, db.Where("word_id = ? AND course_id = ?", word.WordID, courseB).First(&appB).Error)
	require.NotNil(t, appB.MeaningEn)
	assert.Equal(t, "to see", *appB.MeaningEn)
}

// 単語の欠損した言語別フィールドは最新の既存出現から埋め戻される
func Test_importService_ImportBatch_WordBackfill(t *testing.T) {
	ctx := context.Background()
	db := setupTestDBImport()
	svc := newTestImportService(db)

	// meaning_en を持たない単語と、meaning_en を持つ既存出現を用意する
	word := &model.Word{WordID: uuid.New(), Term: "듣다", Meaning: "聞く"}
	require.NoError(t, db.Create(word).Error)
	app := &model.Appearance{
		AppearanceID: uuid.New(),
		WordID:       word.WordID,
		CourseID:     uuid.New(),
		UnitID:       uuid.New(),
		MeaningEn:    strPtr("to listen"),
	}
	require.NoError(t, db.Create(app).Error)

	req := &model.ImportBatchRequest{Items: []model.ImportItem{
		{
			Term:     "듣다",
			Meaning:  strPtr("聞く"),
			CourseID: uuid.New(),
			UnitID:   uuid.New(),
		},
	}}
	_, err := svc.ImportBatch(ctx, req)
	require.NoError(t, err)

	var updated model.Word
	require.NoError(t, db.Where("term = ?", "듣다").First(&updated).Error)
	require.NotNil(t, updated.MeaningEn)
	assert.Equal(t, "to listen", *updated.MeaningEn)
}

// 1項目の失敗はバッチ全体を止めず、エラーリストに記録される
func Test_importService_ImportBatch_BestEffort(t *testing.T) {
	ctx := context.Background()
	db := setupTestDBImport()

	mockWordRepo := new(mocks.WordRepository)
	mockAppRepo := new(mocks.AppearanceRepository)

	// 1件目: 単語検索でDBエラー
	mockWordRepo.On("FindByTerm", mock.Anything, mock.Anything, "실패").
		Return(nil, errors.New("db down")).Once()

	// 2件目: 新規単語として成功
	mockWordRepo.On("FindByTerm", mock.Anything, mock.Anything, "성공").
		Return(nil, model.ErrNotFound).Once()
	mockWordRepo.On("Create", mock.Anything, mock.Anything, mock.MatchedBy(func(w *model.Word) bool {
		return w.Term == "성공"
	})).Return(nil).Once()
	mockAppRepo.On("FindByNaturalKey", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, model.ErrNotFound).Once()
	mockAppRepo.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

	svc := NewImportService(db, mockWordRepo, mockAppRepo, cache.New(5*time.Minute, 16))

	req := &model.ImportBatchRequest{Items: []model.ImportItem{
		{Term: "실패", Meaning: strPtr("失敗"), CourseID: uuid.New(), UnitID: uuid.New()},
		{Term: "성공", Meaning: strPtr("成功"), CourseID: uuid.New(), UnitID: uuid.New()},
	}}

	report, err := svc.ImportBatch(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, 1, report.SuccessCount)
	assert.Equal(t, 1, report.FailedCount)
	assert.Equal(t, 1, report.NewWordCount)
	require.Len(t, report.Errors, 1)
	assert.Equal(t, 0, report.Errors[0].Index)
	assert.Equal(t, "실패", report.Errors[0].Term)

	mockWordRepo.AssertExpectations(t)
	mockAppRepo.AssertExpectations(t)
}
