package entity

import (
	"time"

	"github.com/google/uuid"
)

// User represents a portal account for data transfer between layers.
// Authentication happens outside this service; only the linkage between
// submissions and an account lives here.
type User struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}
