package contact

import (
	"time"

	"contact-form/internal/domain"
)

// ContactModel is the gorm mapping of the contacts table.
type ContactModel struct {
	ID    uint   `gorm:"primaryKey;autoIncrement"`
	Name  string `gorm:"size:255;not null"`
	Email string `gorm:"size:255;not null"`
	Phone string `gorm:"size:32;not null"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (ContactModel) TableName() string { return "contacts" }

func FromNormalized(n domain.NormalizedContact) ContactModel {
	return ContactModel{Name: n.Name, Email: n.Email, Phone: n.Phone}
}

func (m ContactModel) ToDomain() domain.Contact {
	return domain.Contact{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Phone:     m.Phone,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
