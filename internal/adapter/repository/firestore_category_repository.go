package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"chronova/internal/domain/entity"
	"chronova/internal/domain/repository"
	"chronova/pkg/errors"
)

const categoriesCollection = "categories"

type firestoreCategoryRepository struct {
	client *firestore.Client
}

func NewFirestoreCategoryRepository(client *firestore.Client) repository.CategoryRepository {
	return &firestoreCategoryRepository{
		client: client,
	}
}

func (r *firestoreCategoryRepository) Upsert(ctx context.Context, category *entity.Category) error {
	if category.ID == "" {
		doc := r.client.Collection(categoriesCollection).NewDoc()
		category.ID = entity.RefID(doc.ID)
	}

	now := time.Now()
	if category.CreatedAt.IsZero() {
		category.CreatedAt = now
	}
	category.UpdatedAt = now

	_, err := r.client.Collection(categoriesCollection).Doc(category.ID.String()).Set(ctx, category)
	if err != nil {
		return errors.Internal("Failed to save category", err)
	}

	return nil
}

func (r *firestoreCategoryRepository) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	doc, err := r.client.Collection(categoriesCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Category", err)
		}
		return nil, errors.Internal("Failed to get category", err)
	}

	var category entity.Category
	if err := doc.DataTo(&category); err != nil {
		return nil, errors.Internal("Failed to parse category data", err)
	}

	return &category, nil
}

func (r *firestoreCategoryRepository) ListAll(ctx context.Context) ([]*entity.Category, error) {
	iter := r.client.Collection(categoriesCollection).OrderBy("name", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	categories := make([]*entity.Category, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate categories", err)
		}

		var category entity.Category
		if err := doc.DataTo(&category); err != nil {
			return nil, errors.Internal("Failed to parse category data", err)
		}
		categories = append(categories, &category)
	}

	return categories, nil
}
