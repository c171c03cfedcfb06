// Package seed reads catalog fixtures from YAML and writes them to the
// catalog repositories.
package seed

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"chronova/internal/domain/entity"
	"chronova/internal/domain/repository"
	"chronova/pkg/errors"
	"chronova/pkg/logger"
)

type CategoryRecord struct {
	ID   entity.RefID `yaml:"id" validate:"required"`
	Name string       `yaml:"name" validate:"required,max=128"`
	Slug string       `yaml:"slug" validate:"max=128"`
}

type BrandRecord struct {
	ID      entity.RefID `yaml:"id" validate:"required"`
	Name    string       `yaml:"name" validate:"required,max=128"`
	LogoURL string       `yaml:"logo_url" validate:"omitempty,url"`
}

type ProductRecord struct {
	ID          entity.RefID `yaml:"id" validate:"required"`
	CategoryID  entity.RefID `yaml:"category_id"`
	BrandID     entity.RefID `yaml:"brand_id"`
	Name        string       `yaml:"name" validate:"required,max=256"`
	Description string       `yaml:"description"`
	ImageURL    string       `yaml:"image_url" validate:"omitempty,url"`
	Price       float64      `yaml:"price" validate:"gte=0"`
	SoldCount   int          `yaml:"sold_count" validate:"gte=0"`
	CreatedAt   string       `yaml:"created_at"`
}

// File is one catalog fixture document.
type File struct {
	Categories []CategoryRecord `yaml:"categories" validate:"dive"`
	Brands     []BrandRecord    `yaml:"brands" validate:"dive"`
	Products   []ProductRecord  `yaml:"products" validate:"dive"`
}

// Load decodes and validates a fixture. Unknown keys and duplicate ids are
// rejected.
func Load(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil && err != io.EOF {
		return nil, errors.BadRequest("Invalid catalog file", err)
	}

	if err := validator.New().Struct(&f); err != nil {
		return nil, errors.BadRequest("Invalid catalog file", err)
	}

	if err := checkUnique("category", len(f.Categories), func(i int) entity.RefID { return f.Categories[i].ID }); err != nil {
		return nil, err
	}
	if err := checkUnique("brand", len(f.Brands), func(i int) entity.RefID { return f.Brands[i].ID }); err != nil {
		return nil, err
	}
	if err := checkUnique("product", len(f.Products), func(i int) entity.RefID { return f.Products[i].ID }); err != nil {
		return nil, err
	}

	return &f, nil
}

func LoadFile(path string) (*File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, errors.BadRequest("Cannot open catalog file", err)
	}
	defer fh.Close()

	return Load(fh)
}

func checkUnique(kind string, n int, id func(int) entity.RefID) error {
	seen := make(map[entity.RefID]struct{}, n)
	for i := 0; i < n; i++ {
		if _, dup := seen[id(i)]; dup {
			return errors.BadRequest(fmt.Sprintf("Duplicate %s id %q", kind, id(i)), nil)
		}
		seen[id(i)] = struct{}{}
	}
	return nil
}

func (f *File) CategoryEntities() []*entity.Category {
	out := make([]*entity.Category, len(f.Categories))
	for i, c := range f.Categories {
		out[i] = &entity.Category{ID: c.ID, Name: c.Name, Slug: c.Slug}
	}
	return out
}

func (f *File) BrandEntities() []*entity.Brand {
	out := make([]*entity.Brand, len(f.Brands))
	for i, b := range f.Brands {
		out[i] = &entity.Brand{ID: b.ID, Name: b.Name, LogoURL: b.LogoURL}
	}
	return out
}

// ProductEntities converts the product records. A created_at that cannot be
// parsed becomes the zero time, which sorts last under newest-first.
func (f *File) ProductEntities() []*entity.Product {
	out := make([]*entity.Product, len(f.Products))
	for i, p := range f.Products {
		out[i] = &entity.Product{
			ID:          p.ID,
			CategoryID:  p.CategoryID,
			BrandID:     p.BrandID,
			Name:        p.Name,
			Description: p.Description,
			ImageURL:    p.ImageURL,
			Price:       p.Price,
			SoldCount:   p.SoldCount,
			CreatedAt:   entity.ParseTimestamp(p.CreatedAt),
		}
	}
	return out
}

// Catalog serves a fixture as a read-only catalog.
type Catalog struct {
	file *File
}

func NewCatalog(f *File) *Catalog {
	return &Catalog{file: f}
}

func (c *Catalog) ListProducts(ctx context.Context) ([]*entity.Product, error) {
	return c.file.ProductEntities(), nil
}

func (c *Catalog) ListCategories(ctx context.Context) ([]*entity.Category, error) {
	return c.file.CategoryEntities(), nil
}

func (c *Catalog) ListBrands(ctx context.Context) ([]*entity.Brand, error) {
	return c.file.BrandEntities(), nil
}

// Store is the write side the seeder needs.
type Store struct {
	Products   repository.ProductRepository
	Categories repository.CategoryRepository
	Brands     repository.BrandRepository
}

type Options struct {
	// Prune soft-deletes stored products that the fixture no longer lists.
	Prune bool
	// DryRun validates references without writing anything.
	DryRun bool
}

type Summary struct {
	Categories int
	Brands     int
	Created    int
	Updated    int
	Pruned     int
	// Dangling lists product ids whose category or brand exists neither in
	// the fixture nor in the store.
	Dangling []entity.RefID
}

// Apply writes f into store: categories and brands are upserted, products are
// created or updated by id.
func Apply(ctx context.Context, f *File, store Store, opts Options) (*Summary, error) {
	start := time.Now()
	summary := &Summary{}

	categories := make(map[entity.RefID]bool, len(f.Categories))
	for _, c := range f.CategoryEntities() {
		categories[c.ID] = true
		if opts.DryRun {
			continue
		}
		if err := store.Categories.Upsert(ctx, c); err != nil {
			return summary, err
		}
		summary.Categories++
	}

	brands := make(map[entity.RefID]bool, len(f.Brands))
	for _, b := range f.BrandEntities() {
		brands[b.ID] = true
		if opts.DryRun {
			continue
		}
		if err := store.Brands.Upsert(ctx, b); err != nil {
			return summary, err
		}
		summary.Brands++
	}

	listed := make(map[entity.RefID]bool, len(f.Products))
	for _, p := range f.ProductEntities() {
		listed[p.ID] = true

		ok, err := resolves(ctx, p, categories, brands, store)
		if err != nil {
			return summary, err
		}
		if !ok {
			summary.Dangling = append(summary.Dangling, p.ID)
			logger.Warn("Product %s references an unknown category or brand", p.ID)
		}
		if opts.DryRun {
			continue
		}

		existing, err := store.Products.GetByID(ctx, p.ID.String())
		switch {
		case errors.Is(err, "NOT_FOUND"):
			if err := store.Products.Create(ctx, p); err != nil {
				return summary, err
			}
			summary.Created++
		case err != nil:
			return summary, err
		default:
			if p.CreatedAt.IsZero() {
				p.CreatedAt = existing.CreatedAt
			}
			if err := store.Products.Update(ctx, p); err != nil {
				return summary, err
			}
			summary.Updated++
		}
	}

	if opts.Prune && !opts.DryRun {
		stored, err := store.Products.ListAll(ctx)
		if err != nil {
			return summary, err
		}
		for _, p := range stored {
			if listed[p.ID] {
				continue
			}
			if err := store.Products.SoftDelete(ctx, p.ID.String()); err != nil {
				return summary, err
			}
			summary.Pruned++
		}
	}

	logger.Info("Seeded catalog in %s: %d categories, %d brands, %d created, %d updated, %d pruned",
		time.Since(start), summary.Categories, summary.Brands, summary.Created, summary.Updated, summary.Pruned)

	return summary, nil
}

// resolves reports whether p's category and brand exist in the fixture or,
// failing that, in the store. Empty references are allowed; a store without
// the repository resolves nothing.
func resolves(ctx context.Context, p *entity.Product, categories, brands map[entity.RefID]bool, store Store) (bool, error) {
	if !p.CategoryID.IsZero() && !categories[p.CategoryID] {
		if store.Categories == nil {
			return false, nil
		}
		if _, err := store.Categories.GetByID(ctx, p.CategoryID.String()); err != nil {
			if errors.Is(err, "NOT_FOUND") {
				return false, nil
			}
			return false, err
		}
		categories[p.CategoryID] = true
	}
	if !p.BrandID.IsZero() && !brands[p.BrandID] {
		if store.Brands == nil {
			return false, nil
		}
		if _, err := store.Brands.GetByID(ctx, p.BrandID.String()); err != nil {
			if errors.Is(err, "NOT_FOUND") {
				return false, nil
			}
			return false, err
		}
		brands[p.BrandID] = true
	}
	return true, nil
}
