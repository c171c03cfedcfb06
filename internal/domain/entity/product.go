package entity

import (
	"time"
)

type Product struct {
	ID          RefID      `json:"id" firestore:"id"`
	CategoryID  RefID      `json:"category_id" firestore:"categoryId"`
	BrandID     RefID      `json:"brand_id" firestore:"brandId"`
	Name        string     `json:"name" firestore:"name"`
	Description string     `json:"description,omitempty" firestore:"description,omitempty"`
	ImageURL    string     `json:"image_url,omitempty" firestore:"imageUrl,omitempty"`
	Price       float64    `json:"price" firestore:"price"`
	SoldCount   int        `json:"sold_count" firestore:"soldCount"`
	CreatedAt   time.Time  `json:"created_at" firestore:"createdAt"`
	UpdatedAt   time.Time  `json:"updated_at" firestore:"updatedAt"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty" firestore:"deletedAt"`
}
