package service

import (
	"context"
	"errors"
	"time"

	"go_vocab_mastery/internal/cache"
	"go_vocab_mastery/internal/config"
	"go_vocab_mastery/internal/middleware"
	"go_vocab_mastery/internal/model"
	"go_vocab_mastery/internal/repository"
	"go_vocab_mastery/internal/srs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// 読み取り系のキャッシュキー (操作名)。書き込み系は成功時にこれらを無効化する。
const (
	opReviewWords = "review_words"
	opVocabBook   = "vocab_book"
	opVocabStats  = "vocab_stats"
)

// ReviewService インターフェース
type ReviewService interface {
	GetReviewWords(ctx context.Context, userID uuid.UUID) ([]*model.ReviewWordResponse, error)
	RateCard(ctx context.Context, userID, wordID uuid.UUID, req *model.RateCardRequest) (*model.LearningProgress, error)
	ResetCard(ctx context.Context, userID, wordID uuid.UUID) (*model.ResetCardResponse, error)
	SetMastery(ctx context.Context, userID, wordID uuid.UUID, mastered bool) (*model.SetMasteryResponse, error)
	GetVocabBook(ctx context.Context, userID uuid.UUID) ([]*model.VocabBookEntry, error)
	GetVocabStats(ctx context.Context, userID uuid.UUID) (*model.VocabStats, error)
}

type reviewService struct {
	db       *gorm.DB
	wordRepo repository.WordRepository
	progRepo repository.ProgressRepository
	cache    *cache.QueryCache
	cfg      *config.Config
	nowFn    func() time.Time // テストから時刻を注入するためのフック
}

// NewReviewService コンストラクタ
func NewReviewService(db *gorm.DB, wordRepo repository.WordRepository, progRepo repository.ProgressRepository, qc *cache.QueryCache, cfg *config.Config) ReviewService {
	return &reviewService{
		db:       db,
		wordRepo: wordRepo,
		progRepo: progRepo,
		cache:    qc,
		cfg:      cfg,
		nowFn:    time.Now,
	}
}

func (s *reviewService) GetReviewWords(ctx context.Context, userID uuid.UUID) ([]*model.ReviewWordResponse, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID)

	params := map[string]interface{}{
		"user_id": userID.String(),
		"limit":   s.cfg.App.ReviewLimit,
	}
	value, err := s.cache.Get(ctx, opReviewWords, params, func(ctx context.Context) (interface{}, error) {
		progresses, err := s.progRepo.FindDueByUser(ctx, s.db, userID, s.nowFn(), s.cfg.App.ReviewLimit)
		if err != nil {
			return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "復習単語の取得に失敗しました。", "", err)
		}

		responses := make([]*model.ReviewWordResponse, 0, len(progresses))
		for _, p := range progresses {
			if p.Word == nil {
				logger.Warn("Found progress with nil Word during review generation, skipping", "progress_id", p.ProgressID)
				continue
			}
			responses = append(responses, &model.ReviewWordResponse{
				WordID:       p.WordID,
				Term:         p.Word.Term,
				Meaning:      p.Word.Meaning,
				Status:       srs.StatusOf(p),
				Streak:       p.Streak,
				NextReviewAt: p.NextReviewAt,
			})
		}
		return responses, nil
	})
	if err != nil {
		logger.Error("Failed to get review words", "error", err)
		return nil, err
	}

	responses := value.([]*model.ReviewWordResponse)
	logger.Info("Successfully retrieved review words", "count", len(responses))
	return responses, nil
}

// RateCard は採点結果を受け取り、モデル種別に応じて次回スケジュールを反映します。
// legacy は quality(0〜5) からサーバ側で次状態を計算し、fsrs は呼び出し側が
// 計算済みの状態オブジェクトを検証して透過的に永続化する。
func (s *reviewService) RateCard(ctx context.Context, userID, wordID uuid.UUID, req *model.RateCardRequest) (*model.LearningProgress, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID, "word_id", wordID)
	now := s.nowFn()

	switch req.Model {
	case model.ReviewModelLegacy:
		if req.Quality == nil {
			return nil, model.NewAppError("VALIDATION_ERROR", "legacyモデルではqualityが必須です。", "quality", model.ErrInvalidInput)
		}
	case model.ReviewModelFSRS:
		if req.State == nil {
			return nil, model.NewAppError("VALIDATION_ERROR", "fsrsモデルではstateが必須です。", "state", model.ErrInvalidInput)
		}
	default:
		return nil, model.NewAppError("VALIDATION_ERROR", "不明なレビューモデルです。", "model", model.ErrInvalidInput)
	}

	var rated *model.LearningProgress
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 単語が存在しない(または論理削除済み)カードへの採点は404
		if _, err := s.wordRepo.FindByID(ctx, tx, wordID); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewAppError("NOT_FOUND", "対象の単語が見つかりませんでした。", "", model.ErrNotFound)
			}
			return model.NewAppError("INTERNAL_SERVER_ERROR", "単語の確認中にエラーが発生しました。", "", err)
		}

		progress, err := s.progRepo.FindByUserAndWord(ctx, tx, userID, wordID)
		if err != nil && !errors.Is(err, model.ErrNotFound) {
			logger.Error("Error finding progress in transaction", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "学習進捗の確認中にエラーが発生しました。", "", err)
		}
		isFound := !errors.Is(err, model.ErrNotFound)

		target := progress
		if !isFound {
			logger.Info("Progress not found, creating new progress.", "model", req.Model)
			target = &model.LearningProgress{
				ProgressID: uuid.New(),
				UserID:     userID,
				WordID:     wordID,
				Status:     model.StatusNew,
			}
		}

		switch req.Model {
		case model.ReviewModelLegacy:
			res, calcErr := srs.NextLegacy(progress, *req.Quality, now)
			if calcErr != nil {
				return model.NewAppError("VALIDATION_ERROR", "採点の評価値が不正です。", "quality", calcErr)
			}
			srs.ApplyLegacy(target, res)
		case model.ReviewModelFSRS:
			if applyErr := srs.ApplyModern(target, *req.State, now); applyErr != nil {
				return model.NewAppError("VALIDATION_ERROR", "FSRS状態オブジェクトが不正です。", "state", applyErr)
			}
		}

		if !isFound {
			if createErr := s.progRepo.Create(ctx, tx, target); createErr != nil {
				logger.Error("Error creating new progress", "error", createErr)
				return model.NewAppError("INTERNAL_SERVER_ERROR", "学習進捗の作成に失敗しました。", "", createErr)
			}
			logger.Debug("New progress created", "new_progress", target)
		} else {
			if updateErr := s.progRepo.Update(ctx, tx, target); updateErr != nil {
				logger.Error("Error updating existing progress", "error", updateErr)
				return model.NewAppError("INTERNAL_SERVER_ERROR", "学習進捗の更新に失敗しました。", "", updateErr)
			}
			logger.Debug("Progress updated", "updated_progress", target)
		}
		rated = target
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateUserCaches()
	logger.Info("Card rated", "model", req.Model)
	return rated, nil
}

// ResetCard は進捗レコードを削除し、単語を未学習(NEW)状態へ戻します。
// レコードが存在しない場合も成功として扱う (冪等)。
func (s *reviewService) ResetCard(ctx context.Context, userID, wordID uuid.UUID) (*model.ResetCardResponse, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID, "word_id", wordID)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if delErr := s.progRepo.Delete(ctx, tx, userID, wordID); delErr != nil {
			if errors.Is(delErr, model.ErrNotFound) {
				logger.Debug("Progress already absent, reset is a no-op")
				return nil
			}
			logger.Error("Error deleting progress", "error", delErr)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "学習進捗のリセットに失敗しました。", "", delErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateUserCaches()
	logger.Info("Card reset")
	return &model.ResetCardResponse{Success: true}, nil
}

// SetMastery は習得フラグを明示的に上書きします。
// mastered=true はレコードがなければ新規作成してでも MASTERED にする。
// mastered=false はレコードが存在する場合のみ学習初期状態に戻し、なければ何もしない。
func (s *reviewService) SetMastery(ctx context.Context, userID, wordID uuid.UUID, mastered bool) (*model.SetMasteryResponse, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID, "word_id", wordID, "mastered", mastered)
	now := s.nowFn()

	action := "noop"
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.wordRepo.FindByID(ctx, tx, wordID); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewAppError("NOT_FOUND", "対象の単語が見つかりませんでした。", "", model.ErrNotFound)
			}
			return model.NewAppError("INTERNAL_SERVER_ERROR", "単語の確認中にエラーが発生しました。", "", err)
		}

		progress, err := s.progRepo.FindByUserAndWord(ctx, tx, userID, wordID)
		if err != nil && !errors.Is(err, model.ErrNotFound) {
			logger.Error("Error finding progress in transaction", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "学習進捗の確認中にエラーが発生しました。", "", err)
		}
		isFound := !errors.Is(err, model.ErrNotFound)

		if mastered {
			target := progress
			if !isFound {
				target = &model.LearningProgress{
					ProgressID: uuid.New(),
					UserID:     userID,
					WordID:     wordID,
				}
			}
			srs.ForceMastered(target, now)
			action = "mastered"

			if !isFound {
				if createErr := s.progRepo.Create(ctx, tx, target); createErr != nil {
					return model.NewAppError("INTERNAL_SERVER_ERROR", "学習進捗の作成に失敗しました。", "", createErr)
				}
			} else {
				if updateErr := s.progRepo.Update(ctx, tx, target); updateErr != nil {
					return model.NewAppError("INTERNAL_SERVER_ERROR", "学習進捗の更新に失敗しました。", "", updateErr)
				}
			}
			return nil
		}

		// mastered=false: レコードがなければ NEW のままで何もしない
		if !isFound {
			logger.Debug("Progress not found, unmaster is a no-op")
			action = "noop"
			return nil
		}
		srs.ResetToLearning(progress, now)
		if updateErr := s.progRepo.Update(ctx, tx, progress); updateErr != nil {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "学習進捗の更新に失敗しました。", "", updateErr)
		}
		action = "reset_to_learning"
		return nil
	})
	if err != nil {
		return nil, err
	}

	if action != "noop" {
		s.invalidateUserCaches()
	}
	logger.Info("Mastery flag applied", "action", action)
	return &model.SetMasteryResponse{Success: true, Action: action}, nil
}

func (s *reviewService) GetVocabBook(ctx context.Context, userID uuid.UUID) ([]*model.VocabBookEntry, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID)

	params := map[string]interface{}{"user_id": userID.String()}
	value, err := s.cache.Get(ctx, opVocabBook, params, func(ctx context.Context) (interface{}, error) {
		progresses, err := s.progRepo.FindByUser(ctx, s.db, userID)
		if err != nil {
			return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "単語帳の取得に失敗しました。", "", err)
		}

		entries := make([]*model.VocabBookEntry, 0, len(progresses))
		for _, p := range progresses {
			if p.Word == nil {
				continue
			}
			next := p.NextReviewAt
			entries = append(entries, &model.VocabBookEntry{
				WordID:       p.WordID,
				Term:         p.Word.Term,
				Meaning:      p.Word.Meaning,
				Hanja:        p.Word.Hanja,
				Status:       srs.StatusOf(p),
				Streak:       p.Streak,
				NextReviewAt: &next,
			})
		}
		return entries, nil
	})
	if err != nil {
		logger.Error("Failed to get vocab book", "error", err)
		return nil, err
	}

	entries := value.([]*model.VocabBookEntry)
	logger.Info("Successfully retrieved vocab book", "count", len(entries))
	return entries, nil
}

func (s *reviewService) GetVocabStats(ctx context.Context, userID uuid.UUID) (*model.VocabStats, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID)

	params := map[string]interface{}{"user_id": userID.String()}
	value, err := s.cache.Get(ctx, opVocabStats, params, func(ctx context.Context) (interface{}, error) {
		total, err := s.wordRepo.CountActive(ctx, s.db)
		if err != nil {
			return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "単語数の取得に失敗しました。", "", err)
		}
		progresses, err := s.progRepo.FindByUser(ctx, s.db, userID)
		if err != nil {
			return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "学習進捗の取得に失敗しました。", "", err)
		}

		now := s.nowFn()
		stats := &model.VocabStats{Total: int(total)}
		for _, p := range progresses {
			switch srs.StatusOf(p) {
			case model.StatusLearning:
				stats.Learning++
			case model.StatusReview:
				stats.Review++
			case model.StatusMastered:
				stats.Mastered++
			default:
				stats.New++
			}
			if srs.StatusOf(p) != model.StatusMastered && !p.NextReviewAt.After(now) {
				stats.DueNow++
			}
		}
		// 進捗レコードのない単語は未学習(NEW)として数える
		stats.New += stats.Total - len(progresses)
		return stats, nil
	})
	if err != nil {
		logger.Error("Failed to get vocab stats", "error", err)
		return nil, err
	}

	stats := value.(*model.VocabStats)
	logger.Info("Successfully retrieved vocab stats", "total", stats.Total, "due_now", stats.DueNow)
	return stats, nil
}

// invalidateUserCaches は進捗を書き換えた後に読み取り系キャッシュを破棄します。
func (s *reviewService) invalidateUserCaches() {
	s.cache.InvalidateOperation(opReviewWords)
	s.cache.InvalidateOperation(opVocabBook)
	s.cache.InvalidateOperation(opVocabStats)
}
