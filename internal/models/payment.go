package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Payment struct {
	ID        string     `gorm:"primaryKey;size:36" json:"id"`
	Name      string     `gorm:"size:100;not null" json:"customer_name"`
	Email     string     `gorm:"size:255;not null" json:"customer_email"`
	Amount    float64    `gorm:"type:decimal(10,2);not null" json:"amount"`
	Reference string     `gorm:"size:255;not null;uniqueIndex" json:"-"`
	Status    string     `gorm:"size:10;not null;default:'pending';index" json:"status"` // pending, success, failed
	PaidAt    *time.Time `json:"paid_at"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (Payment) TableName() string {
	return "payments"
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}
