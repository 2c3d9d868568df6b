//go:generate mockery --name WordRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"

	"go_vocab_mastery/internal/middleware"
	"go_vocab_mastery/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// WordRepository はマスター辞書 (words) へのアクセスを提供します。
// Term (表層形) が自然キー。upsert はサービス層が FindByTerm + Create/Update で行う。
type WordRepository interface {
	Create(ctx context.Context, tx *gorm.DB, word *model.Word) error
	FindByID(ctx context.Context, db *gorm.DB, wordID uuid.UUID) (*model.Word, error)
	FindByTerm(ctx context.Context, db *gorm.DB, term string) (*model.Word, error)
	Update(ctx context.Context, tx *gorm.DB, wordID uuid.UUID, updates map[string]interface{}) error
	// CountActive は論理削除されていない単語の総数を返します (統計用)
	CountActive(ctx context.Context, db *gorm.DB) (int64, error)
}

type gormWordRepository struct{}

func NewGormWordRepository() WordRepository {
	return &gormWordRepository{}
}

func (r *gormWordRepository) Create(ctx context.Context, tx *gorm.DB, word *model.Word) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(word)
	if result.Error != nil {
		// term のユニーク制約違反 (並行インポートのレースコンディション)
		var pgErr *pgconn.PgError
		if errors.As(result.Error, &pgErr) && pgErr.Code == "23505" {
			logger.Warn("Duplicate key error on create word", "error", result.Error, "term", word.Term)
			return model.ErrConflict
		}
		logger.Error("Error creating word in DB", "error", result.Error, "term", word.Term)
		return fmt.Errorf("gormWordRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormWordRepository) FindByID(ctx context.Context, db *gorm.DB, wordID uuid.UUID) (*model.Word, error) {
	logger := middleware.GetLogger(ctx)
	var word model.Word
	result := db.WithContext(ctx).Where("word_id = ?", wordID).First(&word)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding word by ID in DB", "error", result.Error, "word_id", wordID.String())
		return nil, fmt.Errorf("gormWordRepository.FindByID: %w", result.Error)
	}
	return &word, nil
}

func (r *gormWordRepository) FindByTerm(ctx context.Context, db *gorm.DB, term string) (*model.Word, error) {
	logger := middleware.GetLogger(ctx)
	var word model.Word
	result := db.WithContext(ctx).Where("term = ?", term).First(&word)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding word by term in DB", "error", result.Error, "term", term)
		return nil, fmt.Errorf("gormWordRepository.FindByTerm: %w", result.Error)
	}
	return &word, nil
}

func (r *gormWordRepository) Update(ctx context.Context, tx *gorm.DB, wordID uuid.UUID, updates map[string]interface{}) error {
	logger := middleware.GetLogger(ctx)
	if len(updates) == 0 {
		return nil
	}
	result := tx.WithContext(ctx).Model(&model.Word{}).Where("word_id = ?", wordID).Updates(updates)
	if result.Error != nil {
		logger.Error("Error updating word in DB", "error", result.Error, "word_id", wordID.String())
		return fmt.Errorf("gormWordRepository.Update: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormWordRepository) CountActive(ctx context.Context, db *gorm.DB) (int64, error) {
	var count int64
	result := db.WithContext(ctx).Model(&model.Word{}).Count(&count)
	if result.Error != nil {
		return 0, fmt.Errorf("gormWordRepository.CountActive: %w", result.Error)
	}
	return count, nil
}
