package entity

import (
	"time"
)

type Brand struct {
	ID        RefID     `json:"id" firestore:"id"`
	Name      string    `json:"name" firestore:"name"`
	LogoURL   string    `json:"logo_url,omitempty" firestore:"logoUrl,omitempty"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}
