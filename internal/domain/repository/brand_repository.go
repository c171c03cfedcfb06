package repository

import (
	"context"

	"chronova/internal/domain/entity"
)

type BrandRepository interface {
	Upsert(ctx context.Context, brand *entity.Brand) error
	GetByID(ctx context.Context, id string) (*entity.Brand, error)
	ListAll(ctx context.Context) ([]*entity.Brand, error)
}
