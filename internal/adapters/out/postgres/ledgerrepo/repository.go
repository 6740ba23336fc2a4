package ledgerrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormStatusEventRepository implements StatusEventRepository using GORM.
type GormStatusEventRepository struct {
	db *gorm.DB
}

// NewGormStatusEventRepository creates a new GORM status ledger repository.
func NewGormStatusEventRepository(db *gorm.DB) *GormStatusEventRepository {
	return &GormStatusEventRepository{db: db}
}

// Append inserts a new ledger entry. Recording a milestone the order
// already has trips the unique index and surfaces as a database error,
// which callers avoid by replaying through GetByOrderAndMilestone first.
func (r *GormStatusEventRepository) Append(ctx context.Context, event *order.StatusEvent) error {
	if err := event.Validate(); err != nil {
		return err
	}

	dto := fromDomain(event)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetAllByOrder retrieves the order's ledger, oldest first.
func (r *GormStatusEventRepository) GetAllByOrder(
	ctx context.Context, orderID kernel.UUID,
) ([]*order.StatusEvent, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []StatusEventDTO
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID.Bytes()).
		Order("occurred_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	entries := make([]*order.StatusEvent, 0, len(dtos))
	for _, dto := range dtos {
		entry, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// GetByOrderAndMilestone retrieves the entry recording the given milestone
// for the order. Returns errs.ErrObjectNotFound when the milestone was
// never recorded.
func (r *GormStatusEventRepository) GetByOrderAndMilestone(
	ctx context.Context, orderID kernel.UUID, milestone order.Milestone,
) (*order.StatusEvent, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}
	if err := milestone.Validate(); err != nil {
		return nil, err
	}

	var dto StatusEventDTO
	err := r.db.WithContext(ctx).
		First(&dto, "order_id = ? AND milestone = ?", orderID.Bytes(), milestone.String()).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("status event", orderID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
