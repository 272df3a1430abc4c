package repository

import (
	"errors"
	"testing"
	"time"

	"payrail/internal/domain"
	"payrail/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestRepo(t *testing.T) *PaymentRepository {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.Payment{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewPaymentRepository(db)
}

func pendingPayment(ref string) *models.Payment {
	return &models.Payment{
		Name:      "John Doe",
		Email:     "john@example.com",
		Amount:    5000.00,
		Reference: ref,
		Status:    domain.PaymentStatusPending,
	}
}

func TestCreateAssignsID(t *testing.T) {
	r := newTestRepo(t)
	p := pendingPayment("ref-a")
	if err := r.Create(p); err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.ID == "" {
		t.Fatal("expected UUID assigned on create")
	}
	got, err := r.GetByID(p.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != domain.PaymentStatusPending || got.Reference != "ref-a" {
		t.Errorf("unexpected record: %+v", got)
	}
	if got.PaidAt != nil {
		t.Error("paid_at must be null on a pending record")
	}
}

func TestCreateRejectsDuplicateReference(t *testing.T) {
	r := newTestRepo(t)
	if err := r.Create(pendingPayment("ref-dup")); err != nil {
		t.Fatalf("first create: %v", err)
	}
	err := r.Create(pendingPayment("ref-dup"))
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("expected ErrDuplicatedKey, got %v", err)
	}
}

func TestGetByIDNotFound(t *testing.T) {
	r := newTestRepo(t)
	_, err := r.GetByID("missing")
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestGetByReference(t *testing.T) {
	r := newTestRepo(t)
	p := pendingPayment("ref-lookup")
	if err := r.Create(p); err != nil {
		t.Fatalf("create: %v", err)
	}
	got, err := r.GetByReference("ref-lookup")
	if err != nil {
		t.Fatalf("get by reference: %v", err)
	}
	if got.ID != p.ID {
		t.Errorf("got %s, want %s", got.ID, p.ID)
	}
}

func TestUpdateStatusWritesBothColumns(t *testing.T) {
	r := newTestRepo(t)
	p := pendingPayment("ref-upd")
	if err := r.Create(p); err != nil {
		t.Fatalf("create: %v", err)
	}
	paidAt := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	got, err := r.UpdateStatus(p.ID, domain.PaymentStatusSuccess, &paidAt)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Status != domain.PaymentStatusSuccess {
		t.Errorf("status = %s, want success", got.Status)
	}
	if got.PaidAt == nil || !got.PaidAt.Equal(paidAt) {
		t.Errorf("paid_at = %v, want %v", got.PaidAt, paidAt)
	}
}

func TestUpdateStatusFailedKeepsPaidAtNull(t *testing.T) {
	r := newTestRepo(t)
	p := pendingPayment("ref-fail")
	if err := r.Create(p); err != nil {
		t.Fatalf("create: %v", err)
	}
	got, err := r.UpdateStatus(p.ID, domain.PaymentStatusFailed, nil)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Status != domain.PaymentStatusFailed || got.PaidAt != nil {
		t.Errorf("unexpected record after failed transition: %+v", got)
	}
}

func TestUpdateStatusUnknownID(t *testing.T) {
	r := newTestRepo(t)
	_, err := r.UpdateStatus("missing", domain.PaymentStatusFailed, nil)
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}
