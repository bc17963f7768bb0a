package reviews

import (
	"time"

	"github.com/google/uuid"
)

// CreateInput carries the fields accepted when posting a review.
type CreateInput struct {
	Rating  int
	Comment *string
}

// Patch carries a partial update. Nil fields are left untouched.
type Patch struct {
	Rating  *int
	Comment *string
}

// ReviewDTO is the API shape of a review. AuthorName is denormalized from
// the users table for response convenience and is not persisted.
type ReviewDTO struct {
	ID           uuid.UUID `json:"id"`
	UserID       uuid.UUID `json:"user_id"`
	RestaurantID uuid.UUID `json:"restaurant_id"`
	Rating       int       `json:"rating"`
	Comment      *string   `json:"comment,omitempty"`
	AuthorName   string    `json:"author_name,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// AuthoredReviewDTO is a review annotated with its listing's name, used by
// the caller-facing "my reviews" and history surfaces.
type AuthoredReviewDTO struct {
	ID             uuid.UUID `json:"id"`
	RestaurantID   uuid.UUID `json:"restaurant_id"`
	RestaurantName string    `json:"restaurant_name"`
	Rating         int       `json:"rating"`
	Comment        *string   `json:"comment,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}
