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

const brandsCollection = "brands"

type firestoreBrandRepository struct {
	client *firestore.Client
}

func NewFirestoreBrandRepository(client *firestore.Client) repository.BrandRepository {
	return &firestoreBrandRepository{
		client: client,
	}
}

func (r *firestoreBrandRepository) Upsert(ctx context.Context, brand *entity.Brand) error {
	if brand.ID == "" {
		doc := r.client.Collection(brandsCollection).NewDoc()
		brand.ID = entity.RefID(doc.ID)
	}

	now := time.Now()
	if brand.CreatedAt.IsZero() {
		brand.CreatedAt = now
	}
	brand.UpdatedAt = now

	_, err := r.client.Collection(brandsCollection).Doc(brand.ID.String()).Set(ctx, brand)
	if err != nil {
		return errors.Internal("Failed to save brand", err)
	}

	return nil
}

func (r *firestoreBrandRepository) GetByID(ctx context.Context, id string) (*entity.Brand, error) {
	doc, err := r.client.Collection(brandsCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Brand", err)
		}
		return nil, errors.Internal("Failed to get brand", err)
	}

	var brand entity.Brand
	if err := doc.DataTo(&brand); err != nil {
		return nil, errors.Internal("Failed to parse brand data", err)
	}

	return &brand, nil
}

func (r *firestoreBrandRepository) ListAll(ctx context.Context) ([]*entity.Brand, error) {
	iter := r.client.Collection(brandsCollection).OrderBy("name", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	brands := make([]*entity.Brand, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate brands", err)
		}

		var brand entity.Brand
		if err := doc.DataTo(&brand); err != nil {
			return nil, errors.Internal("Failed to parse brand data", err)
		}
		brands = append(brands, &brand)
	}

	return brands, nil
}
