package repository

import (
	"context"
	"errors"
	"time"

	"github.com/rajeshboldtribe/boldserve/internal/models"

	"gorm.io/gorm"
)

type PaymentListFilter struct {
	Status *models.PaymentStatus
	Limit  int
	Offset int
}

// PaymentUpdate: поля, которые записываются вместе со сменой статуса.
type PaymentUpdate struct {
	Status      models.PaymentStatus
	TrackingID  *string
	BankRefNo   *string
	PaymentMode *string
}

type PaymentRepo struct{ db *gorm.DB }

func NewPaymentRepo(db *gorm.DB) *PaymentRepo { return &PaymentRepo{db: db} }

func (r *PaymentRepo) Create(ctx context.Context, p *models.Payment) error {
	return translate(r.db.WithContext(ctx).Create(p).Error)
}

func (r *PaymentRepo) GetByOrderID(ctx context.Context, orderID string) (*models.Payment, error) {
	var p models.Payment
	err := r.db.WithContext(ctx).Where("order_id = ?", orderID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PaymentRepo) List(ctx context.Context, f PaymentListFilter) ([]models.Payment, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Payment{})
	if f.Status != nil {
		q = q.Where("status = ?", *f.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if f.Limit <= 0 {
		f.Limit = 50
	}
	if f.Offset < 0 {
		f.Offset = 0
	}

	list := make([]models.Payment, 0)
	err := q.Order("created_at DESC").Limit(f.Limit).Offset(f.Offset).Find(&list).Error
	return list, total, err
}

// Transition делает compare-and-swap по статусу. Обновление проходит, только если текущий статус входит в from.
func (r *PaymentRepo) Transition(ctx context.Context, orderID string, from []models.PaymentStatus, upd PaymentUpdate) (bool, error) {
	fields := map[string]any{"status": upd.Status}
	if upd.TrackingID != nil {
		fields["tracking_id"] = *upd.TrackingID
	}
	if upd.BankRefNo != nil {
		fields["bank_ref_no"] = *upd.BankRefNo
	}
	if upd.PaymentMode != nil {
		fields["payment_mode"] = *upd.PaymentMode
	}

	res := r.db.WithContext(ctx).Model(&models.Payment{}).
		Where("order_id = ? AND status IN ?", orderID, from).
		Updates(fields)
	return res.RowsAffected > 0, res.Error
}

// FailStale переводит в failed платежи, застрявшие в created/pending дольше cutoff.
func (r *PaymentRepo) FailStale(ctx context.Context, cutoff time.Time) ([]models.Payment, error) {
	var failed []models.Payment
	err := r.db.WithContext(ctx).Raw(`
UPDATE payments SET status = ?
WHERE status IN ? AND created_at < ?
RETURNING *`,
		models.PaymentStatusFailed,
		[]models.PaymentStatus{models.PaymentStatusCreated, models.PaymentStatusPending},
		cutoff,
	).Scan(&failed).Error
	return failed, err
}
