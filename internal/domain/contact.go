package domain

import (
	"context"
	"fmt"
	"time"
)

// NormalizedContact is a contact that passed validation and may be stored.
type NormalizedContact struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Contact is the stored representation. ID and timestamps are assigned by
// the store.
type Contact struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type ContactStore interface {
	Create(ctx context.Context, c NormalizedContact) (*Contact, error)
	FindAll(ctx context.Context) ([]Contact, error)
}

// StorageError wraps any failure of the persistence layer.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string { return fmt.Sprintf("storage %s: %v", e.Op, e.Err) }
func (e *StorageError) Unwrap() error { return e.Err }
