package repository

import (
	"time"

	"payrail/internal/models"

	"gorm.io/gorm"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// Create inserts the payment. A duplicate reference fails with
// gorm.ErrDuplicatedKey; the caller regenerates the token and retries.
func (r *PaymentRepository) Create(p *models.Payment) error {
	return r.db.Create(p).Error
}

func (r *PaymentRepository) GetByID(id string) (*models.Payment, error) {
	var p models.Payment
	err := r.db.First(&p, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PaymentRepository) GetByReference(ref string) (*models.Payment, error) {
	var p models.Payment
	err := r.db.Where("reference = ?", ref).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateStatus writes status and paid_at in a single UPDATE so the two
// columns become visible together, then returns the fresh record.
func (r *PaymentRepository) UpdateStatus(id, status string, paidAt *time.Time) (*models.Payment, error) {
	res := r.db.Model(&models.Payment{}).Where("id = ?", id).
		Updates(map[string]interface{}{"status": status, "paid_at": paidAt})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(id)
}
