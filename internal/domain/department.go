package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Department struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type DepartmentRepository interface {
	// ListByUser returns the departments a user is assigned to.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Department, error)
}
