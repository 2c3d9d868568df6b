//go:generate mockery --name ProgressRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go_vocab_mastery/internal/middleware"
	"go_vocab_mastery/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ProgressRepository は学習進捗 (learning_progress) へのアクセスを提供します。
// (UserID, WordID) が複合ユニークキーで、履歴は持たず常に現在状態1件のみ。
type ProgressRepository interface {
	Create(ctx context.Context, tx *gorm.DB, progress *model.LearningProgress) error
	FindByUserAndWord(ctx context.Context, db *gorm.DB, userID, wordID uuid.UUID) (*model.LearningProgress, error)
	Update(ctx context.Context, tx *gorm.DB, progress *model.LearningProgress) error
	Delete(ctx context.Context, tx *gorm.DB, userID, wordID uuid.UUID) error
	// FindDueByUser は復習期限が到来した進捗を期限の古い順で返します (WordをPreload)
	FindDueByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID, now time.Time, limit int) ([]*model.LearningProgress, error)
	// FindByUser は単語帳・集計用にユーザーの全進捗を返します (WordをPreload)
	FindByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]*model.LearningProgress, error)
}

type gormProgressRepository struct{}

func NewGormProgressRepository() ProgressRepository {
	return &gormProgressRepository{}
}

func (r *gormProgressRepository) Create(ctx context.Context, tx *gorm.DB, progress *model.LearningProgress) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(progress)
	if result.Error != nil {
		// (user_id, word_id) のユニーク制約違反は同一カードへの並行upsertを意味する
		var pgErr *pgconn.PgError
		if errors.As(result.Error, &pgErr) && pgErr.Code == "23505" {
			logger.Warn("Duplicate key error on create progress",
				"error", result.Error,
				"user_id", progress.UserID.String(),
				"word_id", progress.WordID.String(),
			)
			return model.ErrConflict
		}
		logger.Error("Error creating progress in DB", "error", result.Error, "word_id", progress.WordID.String())
		return fmt.Errorf("gormProgressRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormProgressRepository) FindByUserAndWord(ctx context.Context, db *gorm.DB, userID, wordID uuid.UUID) (*model.LearningProgress, error) {
	var progress model.LearningProgress
	result := db.WithContext(ctx).Where("user_id = ? AND word_id = ?", userID, wordID).First(&progress)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("gormProgressRepository.FindByUserAndWord: %w", result.Error)
	}
	return &progress, nil
}

func (r *gormProgressRepository) Update(ctx context.Context, tx *gorm.DB, progress *model.LearningProgress) error {
	// レコード全体を主キーで更新する。存在確認は呼び出し元(Service)で済ませている想定。
	result := tx.WithContext(ctx).Save(progress)
	if result.Error != nil {
		return fmt.Errorf("gormProgressRepository.Update: %w", result.Error)
	}
	return nil
}

func (r *gormProgressRepository) Delete(ctx context.Context, tx *gorm.DB, userID, wordID uuid.UUID) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).
		Where("user_id = ? AND word_id = ?", userID, wordID).
		Delete(&model.LearningProgress{})
	if result.Error != nil {
		logger.Error("Error deleting progress in DB", "error", result.Error, "word_id", wordID.String())
		return fmt.Errorf("gormProgressRepository.Delete: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormProgressRepository) FindDueByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID, now time.Time, limit int) ([]*model.LearningProgress, error) {
	var progresses []*model.LearningProgress
	// Wordが論理削除されていないものだけを対象にする
	result := db.WithContext(ctx).
		Preload("Word", "deleted_at IS NULL").
		Joins("JOIN words ON words.word_id = learning_progress.word_id AND words.deleted_at IS NULL").
		Where("learning_progress.user_id = ? AND learning_progress.next_review_at <= ?", userID, now).
		Order("learning_progress.next_review_at ASC").
		Limit(limit).
		Find(&progresses)
	if result.Error != nil {
		return nil, fmt.Errorf("gormProgressRepository.FindDueByUser: %w", result.Error)
	}
	return progresses, nil
}

func (r *gormProgressRepository) FindByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]*model.LearningProgress, error) {
	var progresses []*model.LearningProgress
	result := db.WithContext(ctx).
		Preload("Word", "deleted_at IS NULL").
		Joins("JOIN words ON words.word_id = learning_progress.word_id AND words.deleted_at IS NULL").
		Where("learning_progress.user_id = ?", userID).
		Order("learning_progress.next_review_at ASC").
		Find(&progresses)
	if result.Error != nil {
		return nil, fmt.Errorf("gormProgressRepository.FindByUser: %w", result.Error)
	}
	return progresses, nil
}
