package entity

import (
	"time"

	"github.com/google/uuid"
)

// Submission represents a stored form submission for data transfer between layers.
type Submission struct {
	ID                uuid.UUID  `json:"id"`
	UserID            *uuid.UUID `json:"user_id,omitempty"`
	FirstName         string     `json:"firstName"`
	Surname           string     `json:"surname"`
	Address           string     `json:"address"`
	Postcode          string     `json:"postcode"`
	Email             string     `json:"email"`
	FavoriteTimeOfDay string     `json:"favoriteTimeOfDay"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}
