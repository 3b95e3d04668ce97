package repository

import (
	"context"
	"errors"

	"github.com/zolovio/Classy-backend/internal/domain/model"
	repo "github.com/zolovio/Classy-backend/internal/repository"

	"gorm.io/gorm"
)

type OrderGormRepository struct {
	db *gorm.DB
}

func NewOrderGormRepository(db *gorm.DB) *OrderGormRepository {
	return &OrderGormRepository{db: db}
}

func (r *OrderGormRepository) Create(ctx context.Context, order model.Order) (int64, error) {
	if err := r.db.WithContext(ctx).Create(&order).Error; err != nil {
		return 0, err
	}
	return order.ID, nil
}

func (r *OrderGormRepository) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	var order model.Order

	err := r.db.WithContext(ctx).
		Where("id = ?", orderID).
		First(&order).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Order{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Order{}, err
	}
	return order, nil
}

func (r *OrderGormRepository) ListByUserID(ctx context.Context, userID int64, status model.OrderStatus) ([]model.Order, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var orders []model.Order
	if err := q.Order("id desc").Find(&orders).Error; err != nil {
		return []model.Order{}, err
	}
	return orders, nil
}

func (r *OrderGormRepository) ListAll(ctx context.Context, status model.OrderStatus) ([]model.Order, error) {
	q := r.db.WithContext(ctx).Model(&model.Order{})
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var orders []model.Order
	if err := q.Order("id desc").Find(&orders).Error; err != nil {
		return []model.Order{}, err
	}
	return orders, nil
}

func (r *OrderGormRepository) Update(ctx context.Context, order model.Order) error {
	res := r.db.WithContext(ctx).
		Model(&model.Order{}).
		Where("id = ?", order.ID).
		Updates(map[string]interface{}{
			"location_id":    order.LocationID,
			"total_quantity": order.TotalQuantity,
			"total_tax":      order.TotalTax,
			"shipping_fee":   order.ShippingFee,
			"total_amount":   order.TotalAmount,
			"booking_date":   order.BookingDate,
		})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *OrderGormRepository) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	res := r.db.WithContext(ctx).
		Model(&model.Order{}).
		Where("id = ?", orderID).
		Update("status", status)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *OrderGormRepository) Delete(ctx context.Context, orderID int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Order{}, orderID)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *OrderGormRepository) FindByIdempotencyKey(ctx context.Context, userID int64, key string) (model.Order, bool, error) {
	var order model.Order

	err := r.db.WithContext(ctx).
		Where("user_id = ? AND idempotency_key = ?", userID, key).
		First(&order).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Order{}, false, nil
	}
	if err != nil {
		return model.Order{}, false, err
	}
	return order, true, nil
}

type OrderSkuGormRepository struct {
	db *gorm.DB
}

func NewOrderSkuGormRepository(db *gorm.DB) *OrderSkuGormRepository {
	return &OrderSkuGormRepository{db: db}
}

func (r *OrderSkuGormRepository) Create(ctx context.Context, line model.OrderSku) (model.OrderSku, error) {
	if err := r.db.WithContext(ctx).Create(&line).Error; err != nil {
		return model.OrderSku{}, err
	}
	return line, nil
}

func (r *OrderSkuGormRepository) FindByID(ctx context.Context, lineID int64) (model.OrderSku, error) {
	var line model.OrderSku

	err := r.db.WithContext(ctx).
		Where("id = ?", lineID).
		First(&line).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.OrderSku{}, repo.ErrNotFound
	}
	if err != nil {
		return model.OrderSku{}, err
	}
	return line, nil
}

func (r *OrderSkuGormRepository) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderSku, error) {
	var lines []model.OrderSku

	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("id asc").
		Find(&lines).Error; err != nil {
		return []model.OrderSku{}, err
	}
	return lines, nil
}

func (r *OrderSkuGormRepository) Update(ctx context.Context, line model.OrderSku) error {
	res := r.db.WithContext(ctx).
		Model(&model.OrderSku{}).
		Where("id = ?", line.ID).
		Updates(map[string]interface{}{
			"quantity":    line.Quantity,
			"total_price": line.TotalPrice,
			"sales_tax":   line.SalesTax,
		})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *OrderSkuGormRepository) DeleteByID(ctx context.Context, lineID int64) error {
	res := r.db.WithContext(ctx).Delete(&model.OrderSku{}, lineID)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
