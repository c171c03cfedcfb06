package repository

import (
	"context"

	"chronova/internal/domain/entity"
)

type CategoryRepository interface {
	Upsert(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	ListAll(ctx context.Context) ([]*entity.Category, error)
}
