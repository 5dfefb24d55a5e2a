package repo

import (
	"context"

	"gorm.io/gorm"

	"contact-form/internal/domain"
	"contact-form/internal/feature/contact"
)

type ContactRepo struct{ db *gorm.DB }

func NewContactRepo(db *gorm.DB) *ContactRepo { return &ContactRepo{db: db} }

var _ domain.ContactStore = (*ContactRepo)(nil)

func (r *ContactRepo) Create(ctx context.Context, n domain.NormalizedContact) (*domain.Contact, error) {
	m := contact.FromNormalized(n)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return nil, &domain.StorageError{Op: "create", Err: err}
	}
	c := m.ToDomain()
	return &c, nil
}

// FindAll 返回全部联系人，按插入顺序（不分页）
func (r *ContactRepo) FindAll(ctx context.Context) ([]domain.Contact, error) {
	var ms []contact.ContactModel
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&ms).Error; err != nil {
		return nil, &domain.StorageError{Op: "find all", Err: err}
	}
	out := make([]domain.Contact, 0, len(ms))
	for _, m := range ms {
		out = append(out, m.ToDomain())
	}
	return out, nil
}
