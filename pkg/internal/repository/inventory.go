package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/hjemme/inventar/pkg/internal/model"
)

// Typed wrappers over the generic repository, one per entity.

type ItemRepository struct{ *Repository[model.Item] }

func NewItemRepository(db *gorm.DB) *ItemRepository {
	return &ItemRepository{New[model.Item](db, "items")}
}

type LocationRepository struct{ *Repository[model.Location] }

func NewLocationRepository(db *gorm.DB) *LocationRepository {
	return &LocationRepository{New[model.Location](db, "locations")}
}

type CategoryRepository struct{ *Repository[model.Category] }

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{New[model.Category](db, "categories")}
}

// GifterRepository is append-only: Update and Delete are deliberately not
// promoted.
type GifterRepository struct {
	repo *Repository[model.Gifter]
}

func NewGifterRepository(db *gorm.DB) *GifterRepository {
	return &GifterRepository{repo: New[model.Gifter](db, "gifters")}
}

func (r *GifterRepository) List(ctx context.Context) ([]model.Gifter, error) {
	return r.repo.List(ctx)
}

func (r *GifterRepository) GetByID(ctx context.Context, id int32) (*model.Gifter, error) {
	return r.repo.GetByID(ctx, id)
}

func (r *GifterRepository) Create(ctx context.Context, gifter *model.Gifter) error {
	return r.repo.Create(ctx, gifter)
}

type FileInfoRepository struct{ *Repository[model.FileInfo] }

func NewFileInfoRepository(db *gorm.DB) *FileInfoRepository {
	return &FileInfoRepository{New[model.FileInfo](db, "files")}
}

type PictureInfoRepository struct{ *Repository[model.PictureInfo] }

func NewPictureInfoRepository(db *gorm.DB) *PictureInfoRepository {
	return &PictureInfoRepository{New[model.PictureInfo](db, "pictures")}
}
