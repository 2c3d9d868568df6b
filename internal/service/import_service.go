package service

import (
	"context"
	"errors"

	"go_vocab_mastery/internal/cache"
	"go_vocab_mastery/internal/middleware"
	"go_vocab_mastery/internal/model"
	"go_vocab_mastery/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ImportService は単語・出現レコードの一括インポートを提供します。
type ImportService interface {
	ImportBatch(ctx context.Context, req *model.ImportBatchRequest) (*model.ImportReport, error)
}

type importService struct {
	db       *gorm.DB
	wordRepo repository.WordRepository
	appRepo  repository.AppearanceRepository
	cache    *cache.QueryCache
}

func NewImportService(db *gorm.DB, wordRepo repository.WordRepository, appRepo repository.AppearanceRepository, qc *cache.QueryCache) ImportService {
	return &importService{
		db:       db,
		wordRepo: wordRepo,
		appRepo:  appRepo,
		cache:    qc,
	}
}

// ImportBatch は項目ごとのベストエフォートで処理します。バッチ全体の
// トランザクションは張らず、1項目の失敗はエラーリストに記録して続行する。
func (s *importService) ImportBatch(ctx context.Context, req *model.ImportBatchRequest) (*model.ImportReport, error) {
	logger := middleware.GetLogger(ctx)

	report := &model.ImportReport{Errors: []model.ImportItemError{}}
	for i := range req.Items {
		item := &req.Items[i]

		var isNewWord bool
		err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var txErr error
			isNewWord, txErr = s.processItem(ctx, tx, item)
			return txErr
		})
		if err != nil {
			logger.Warn("Import item failed", "index", i, "term", item.Term, "error", err)
			report.FailedCount++
			report.Errors = append(report.Errors, model.ImportItemError{
				Index: i,
				Term:  item.Term,
				Error: err.Error(),
			})
			continue
		}

		report.SuccessCount++
		if isNewWord {
			report.NewWordCount++
		}
	}

	if report.SuccessCount > 0 {
		// 単語の追加・更新は単語帳と統計の内容を変える
		s.cache.InvalidateOperation(opReviewWords)
		s.cache.InvalidateOperation(opVocabBook)
		s.cache.InvalidateOperation(opVocabStats)
	}

	logger.Info("Import batch completed",
		"success", report.SuccessCount,
		"failed", report.FailedCount,
		"new_words", report.NewWordCount,
	)
	return report, nil
}

// processItem は1項目を単語フェーズ→出現フェーズの順に適用します。
func (s *importService) processItem(ctx context.Context, tx *gorm.DB, item *model.ImportItem) (bool, error) {
	word, err := s.wordRepo.FindByTerm(ctx, tx, item.Term)
	isNewWord := errors.Is(err, model.ErrNotFound)
	if err != nil && !isNewWord {
		return false, err
	}

	// スマートフィルの継承元: その単語の最新の既存出現
	var fill smartFillSource
	if !isNewWord {
		latest, sfErr := s.appRepo.FindLatestByWord(ctx, tx, word.WordID)
		if sfErr != nil && !errors.Is(sfErr, model.ErrNotFound) {
			return false, sfErr
		}
		fill = newSmartFillSource(latest)
	}

	// --- 単語フェーズ ---
	if isNewWord {
		word = &model.Word{
			WordID:        uuid.New(),
			Term:          item.Term,
			PartOfSpeech:  item.PartOfSpeech,
			Hanja:         item.Hanja,
			Pronunciation: item.Pronunciation,
			AudioURL:      item.AudioURL,
			Tips:          item.Tips,
			MeaningEn:     item.MeaningEn,
			MeaningZh:     item.MeaningZh,
			MeaningVi:     item.MeaningVi,
			MeaningMn:     item.MeaningMn,
		}
		if item.Meaning != nil {
			word.Meaning = *item.Meaning
		}
		if createErr := s.wordRepo.Create(ctx, tx, word); createErr != nil {
			return false, createErr
		}
	} else {
		updates := make(map[string]interface{})
		if item.Meaning != nil && *item.Meaning != word.Meaning {
			updates["Meaning"] = *item.Meaning
		}
		// 単語固有のフィールドは明示値のみで更新 (出現からの継承元がない)
		patchExplicit := func(column string, explicit, current *string) {
			if v, changed := patchValue(explicit, nil, current); changed {
				updates[column] = *v
			}
		}
		patchExplicit("PartOfSpeech", item.PartOfSpeech, word.PartOfSpeech)
		patchExplicit("Pronunciation", item.Pronunciation, word.Pronunciation)
		patchExplicit("AudioURL", item.AudioURL, word.AudioURL)
		patchExplicit("Tips", item.Tips, word.Tips)
		patchExplicit("Hanja", item.Hanja, word.Hanja)

		// 単語の言語別フィールドは、欠損分を最新の兄弟出現から埋める
		patchLang := func(column string, explicit, inherited, current *string) {
			if v, changed := patchValue(explicit, inherited, current); changed {
				updates[column] = *v
			}
		}
		patchLang("MeaningEn", item.MeaningEn, fill.MeaningEn, word.MeaningEn)
		patchLang("MeaningZh", item.MeaningZh, fill.MeaningZh, word.MeaningZh)
		patchLang("MeaningVi", item.MeaningVi, fill.MeaningVi, word.MeaningVi)
		patchLang("MeaningMn", item.MeaningMn, fill.MeaningMn, word.MeaningMn)

		if len(updates) > 0 {
			if updateErr := s.wordRepo.Update(ctx, tx, word.WordID, updates); updateErr != nil {
				return false, updateErr
			}
		}
	}

	// --- 出現フェーズ ---
	app, err := s.appRepo.FindByNaturalKey(ctx, tx, word.WordID, item.CourseID, item.UnitID)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		return isNewWord, err
	}

	if errors.Is(err, model.ErrNotFound) {
		newApp := &model.Appearance{
			AppearanceID:       uuid.New(),
			WordID:             word.WordID,
			CourseID:           item.CourseID,
			UnitID:             item.UnitID,
			Meaning:            resolveField(item.Meaning, fill.Meaning),
			Example:            resolveField(item.Example, fill.Example),
			ExampleTranslation: resolveField(item.ExampleTranslation, fill.ExampleTr),
			MeaningEn:          resolveField(item.MeaningEn, fill.MeaningEn),
			MeaningZh:          resolveField(item.MeaningZh, fill.MeaningZh),
			MeaningVi:          resolveField(item.MeaningVi, fill.MeaningVi),
			MeaningMn:          resolveField(item.MeaningMn, fill.MeaningMn),
		}
		if createErr := s.appRepo.Create(ctx, tx, newApp); createErr != nil {
			return isNewWord, createErr
		}
		return isNewWord, nil
	}

	updates := make(map[string]interface{})
	patch := func(column string, explicit, inherited, current *string) {
		if v, changed := patchValue(explicit, inherited, current); changed {
			updates[column] = *v
		}
	}
	patch("Meaning", item.Meaning, fill.Meaning, app.Meaning)
	patch("Example", item.Example, fill.Example, app.Example)
	patch("ExampleTranslation", item.ExampleTranslation, fill.ExampleTr, app.ExampleTranslation)
	patch("MeaningEn", item.MeaningEn, fill.MeaningEn, app.MeaningEn)
	patch("MeaningZh", item.MeaningZh, fill.MeaningZh, app.MeaningZh)
	patch("MeaningVi", item.MeaningVi, fill.MeaningVi, app.MeaningVi)
	patch("MeaningMn", item.MeaningMn, fill.MeaningMn, app.MeaningMn)

	if len(updates) > 0 {
		if updateErr := s.appRepo.Update(ctx, tx, app.AppearanceID, updates); updateErr != nil {
			return isNewWord, updateErr
		}
	}
	return isNewWord, nil
}
