package carousel

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/AYOGRAM01/Jollyshop/pkg/db/models"
)

// Repository exposes persistence helpers for carousel slides.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	List(ctx context.Context) ([]models.CarouselSlide, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.CarouselSlide, error)
	Create(ctx context.Context, slide *models.CarouselSlide) error
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a carousel repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repositoryImpl{db: tx}
}

func (r *repositoryImpl) List(ctx context.Context) ([]models.CarouselSlide, error) {
	var slides []models.CarouselSlide
	err := r.db.WithContext(ctx).
		Order("position ASC, created_at ASC").
		Find(&slides).Error
	return slides, err
}

func (r *repositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*models.CarouselSlide, error) {
	var slide models.CarouselSlide
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&slide).Error
	if err != nil {
		return nil, err
	}
	return &slide, nil
}

func (r *repositoryImpl) Create(ctx context.Context, slide *models.CarouselSlide) error {
	return r.db.WithContext(ctx).Create(slide).Error
}

func (r *repositoryImpl) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.CarouselSlide{})
	return result.RowsAffected, result.Error
}
