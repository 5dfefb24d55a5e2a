package service

import (
	"context"

	"contact-form/internal/domain"
	"contact-form/internal/feature/contact"
)

type ContactService struct {
	store domain.ContactStore
}

func NewContactService(store domain.ContactStore) *ContactService {
	return &ContactService{store: store}
}

// Submit validates the raw input and stores it. It returns a
// *contact.ValidationError when the input is rejected (the store is not
// touched) or a *domain.StorageError when the insert fails.
func (s *ContactService) Submit(ctx context.Context, input map[string]any) (*domain.Contact, error) {
	n, err := contact.Validate(input)
	if err != nil {
		return nil, err
	}
	return s.store.Create(ctx, n)
}

func (s *ContactService) List(ctx context.Context) ([]domain.Contact, error) {
	return s.store.FindAll(ctx)
}
