package repository

import (
	"context"
	"errors"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type OrderGormRepository struct {
	db *gorm.DB
}

func NewOrderGormRepository(db *gorm.DB) *OrderGormRepository {
	return &OrderGormRepository{db: db}
}

func (r *OrderGormRepository) Create(ctx context.Context, order model.Order) (model.Order, error) {
	if err := r.db.WithContext(ctx).Create(&order).Error; err != nil {
		return model.Order{}, err
	}
	return order, nil
}

func (r *OrderGormRepository) FindByOrderID(ctx context.Context, orderID string) (model.Order, error) {
	var o model.Order
	err := r.db.WithContext(ctx).Where("order_id = ?", orderID).First(&o).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Order{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Order{}, err
	}
	return o, nil
}

func (r *OrderGormRepository) ListByEmail(ctx context.Context, email string) ([]model.Order, error) {
	var items []model.Order
	err := r.db.WithContext(ctx).
		Where("customer_email = ?", email).
		Order("id desc").
		Find(&items).Error
	if err != nil {
		return []model.Order{}, err
	}
	return items, nil
}

func (r *OrderGormRepository) ListRecent(ctx context.Context, limit int) ([]model.Order, error) {
	var items []model.Order
	err := r.db.WithContext(ctx).
		Order("created_at desc").
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return []model.Order{}, err
	}
	return items, nil
}

func (r *OrderGormRepository) Stats(ctx context.Context) (repo.OrderStats, error) {
	var s repo.OrderStats

	if err := r.db.WithContext(ctx).Model(&model.Order{}).
		Count(&s.TotalOrders).Error; err != nil {
		return repo.OrderStats{}, err
	}
	if err := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("status = ?", string(model.OrderStatusPending)).
		Count(&s.PendingOrders).Error; err != nil {
		return repo.OrderStats{}, err
	}
	if err := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("status = ?", string(model.OrderStatusDelivered)).
		Count(&s.CompletedOrders).Error; err != nil {
		return repo.OrderStats{}, err
	}

	if err := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("status = ?", string(model.OrderStatusDelivered)).
		Select("COALESCE(SUM(payment_amount), 0)").
		Scan(&s.TotalRevenue).Error; err != nil {
		return repo.OrderStats{}, err
	}

	return s, nil
}

func (r *OrderGormRepository) SetPaymentIntent(ctx context.Context, orderID string, intentID string) (model.Order, error) {
	res := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("order_id = ? AND status = ?", orderID, string(model.OrderStatusPending)).
		Updates(map[string]any{
			"payment_intent_id": intentID,
			"payment_status":    string(model.PaymentStatusPending),
			"updated_at":        time.Now(),
		})
	if res.Error != nil {
		return model.Order{}, res.Error
	}
	if res.RowsAffected == 0 {
		// either the order is gone or it settled under a concurrent
		// confirmation; a settled order must not be touched
		if _, err := r.FindByOrderID(ctx, orderID); err != nil {
			return model.Order{}, err
		}
		return model.Order{}, repo.ErrConflict
	}
	return r.FindByOrderID(ctx, orderID)
}

func (r *OrderGormRepository) MarkPaid(ctx context.Context, orderID string, intentID string) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("order_id = ? AND status = ?", orderID, string(model.OrderStatusPending)).
		Updates(map[string]any{
			"status":            string(model.OrderStatusPaid),
			"payment_status":    string(model.PaymentStatusCompleted),
			"payment_intent_id": intentID,
			"updated_at":        time.Now(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *OrderGormRepository) MarkDelivered(ctx context.Context, orderID string, links []model.DownloadLink) (bool, error) {
	// struct-based update so the links column goes through the JSON serializer
	res := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("order_id = ? AND status = ?", orderID, string(model.OrderStatusPaid)).
		Select("DownloadLinks", "Status", "UpdatedAt").
		Updates(model.Order{
			DownloadLinks: links,
			Status:        model.OrderStatusDelivered,
			UpdatedAt:     time.Now(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *OrderGormRepository) MarkFailed(ctx context.Context, orderID string) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("order_id = ? AND status = ?", orderID, string(model.OrderStatusPending)).
		Updates(map[string]any{
			"status":         string(model.OrderStatusFailed),
			"payment_status": string(model.PaymentStatusFailed),
			"updated_at":     time.Now(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
