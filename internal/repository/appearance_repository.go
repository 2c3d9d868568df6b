//go:generate mockery --name AppearanceRepository --output ./mocks --outpkg mocks --case=underscore
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

// AppearanceRepository はコース・ユニット内の単語出現 (appearances) への
// アクセスを提供します。(WordID, CourseID, UnitID) が自然キー。
type AppearanceRepository interface {
	Create(ctx context.Context, tx *gorm.DB, app *model.Appearance) error
	FindByNaturalKey(ctx context.Context, db *gorm.DB, wordID, courseID, unitID uuid.UUID) (*model.Appearance, error)
	// FindLatestByWord はその単語の最新 (updated_at が最大) の出現を返します。
	// インポート時のスマートフィルの供給元。
	FindLatestByWord(ctx context.Context, db *gorm.DB, wordID uuid.UUID) (*model.Appearance, error)
	Update(ctx context.Context, tx *gorm.DB, appearanceID uuid.UUID, updates map[string]interface{}) error
}

type gormAppearanceRepository struct{}

func NewGormAppearanceRepository() AppearanceRepository {
	return &gormAppearanceRepository{}
}

func (r *gormAppearanceRepository) Create(ctx context.Context, tx *gorm.DB, app *model.Appearance) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(app)
	if result.Error != nil {
		var pgErr *pgconn.PgError
		if errors.As(result.Error, &pgErr) && pgErr.Code == "23505" {
			logger.Warn("Duplicate key error on create appearance",
				"error", result.Error,
				"word_id", app.WordID.String(),
				"course_id", app.CourseID.String(),
				"unit_id", app.UnitID.String(),
			)
			return model.ErrConflict
		}
		logger.Error("Error creating appearance in DB", "error", result.Error, "word_id", app.WordID.String())
		return fmt.Errorf("gormAppearanceRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormAppearanceRepository) FindByNaturalKey(ctx context.Context, db *gorm.DB, wordID, courseID, unitID uuid.UUID) (*model.Appearance, error) {
	logger := middleware.GetLogger(ctx)
	var app model.Appearance
	result := db.WithContext(ctx).
		Where("word_id = ? AND course_id = ? AND unit_id = ?", wordID, courseID, unitID).
		First(&app)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding appearance by natural key in DB",
			"error", result.Error,
			"word_id", wordID.String(),
		)
		return nil, fmt.Errorf("gormAppearanceRepository.FindByNaturalKey: %w", result.Error)
	}
	return &app, nil
}

func (r *gormAppearanceRepository) FindLatestByWord(ctx context.Context, db *gorm.DB, wordID uuid.UUID) (*model.Appearance, error) {
	logger := middleware.GetLogger(ctx)
	var app model.Appearance
	result := db.WithContext(ctx).
		Where("word_id = ?", wordID).
		Order("updated_at DESC").
		First(&app)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding latest appearance in DB", "error", result.Error, "word_id", wordID.String())
		return nil, fmt.Errorf("gormAppearanceRepository.FindLatestByWord: %w", result.Error)
	}
	return &app, nil
}

func (r *gormAppearanceRepository) Update(ctx context.Context, tx *gorm.DB, appearanceID uuid.UUID, updates map[string]interface{}) error {
	logger := middleware.GetLogger(ctx)
	if len(updates) == 0 {
		return nil
	}
	result := tx.WithContext(ctx).Model(&model.Appearance{}).Where("appearance_id = ?", appearanceID).Updates(updates)
	if result.Error != nil {
		logger.Error("Error updating appearance in DB", "error", result.Error, "appearance_id", appearanceID.String())
		return fmt.Errorf("gormAppearanceRepository.Update: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}
