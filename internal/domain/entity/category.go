package entity

import (
	"time"
)

type Category struct {
	ID        RefID     `json:"id" firestore:"id"`
	Name      string    `json:"name" firestore:"name"`
	Slug      string    `json:"slug,omitempty" firestore:"slug,omitempty"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}
