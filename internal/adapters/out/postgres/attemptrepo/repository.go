package attemptrepo

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/assignment"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormAttemptRepository implements AttemptRepository using GORM.
type GormAttemptRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormAttemptRepository creates a new GORM attempt repository.
func NewGormAttemptRepository(db *gorm.DB, tracker aggregateTracker) *GormAttemptRepository {
	return &GormAttemptRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new attempt to the database.
func (r *GormAttemptRepository) Add(ctx context.Context, aggregate *assignment.Attempt) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Settle persists the attempt's settled outcome with a conditional update
// against the stored pending outcome. Whichever writer flips the row first
// wins; everyone else matches zero rows and gets
// assignment.ErrAlreadySettled.
func (r *GormAttemptRepository) Settle(ctx context.Context, aggregate *assignment.Attempt) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if aggregate.IsPending() {
		return errs.NewValueIsInvalidError("outcome must be settled")
	}

	result := r.db.WithContext(ctx).
		Model(&AttemptDTO{}).
		Where("id = ? AND outcome = ?", aggregate.ID().Bytes(), assignment.OutcomePending.String()).
		Update("outcome", aggregate.Outcome().String())
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return assignment.ErrAlreadySettled
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an attempt by ID.
func (r *GormAttemptRepository) Get(ctx context.Context, id kernel.UUID) (*assignment.Attempt, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto AttemptDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("attempt", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetPendingByOrder retrieves the order's single pending attempt.
func (r *GormAttemptRepository) GetPendingByOrder(
	ctx context.Context, orderID kernel.UUID,
) (*assignment.Attempt, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto AttemptDTO
	err := r.db.WithContext(ctx).
		First(&dto, "order_id = ? AND outcome = ?", orderID.Bytes(), assignment.OutcomePending.String()).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("pending attempt", orderID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllByOrder retrieves the order's full attempt history, oldest first.
func (r *GormAttemptRepository) GetAllByOrder(
	ctx context.Context, orderID kernel.UUID,
) ([]*assignment.Attempt, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []AttemptDTO
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID.Bytes()).
		Order("offered_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetAllPendingElapsed retrieves pending attempts whose acceptance window
// elapsed at or before now, oldest expiry first.
func (r *GormAttemptRepository) GetAllPendingElapsed(
	ctx context.Context, now time.Time,
) ([]*assignment.Attempt, error) {
	var dtos []AttemptDTO
	err := r.db.WithContext(ctx).
		Where("outcome = ? AND expires_at <= ?", assignment.OutcomePending.String(), now).
		Order("expires_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// VoidAllSettledByOrder marks the order's settled attempts as voided.
// Pending attempts are untouched; the rows stay on record for audit.
func (r *GormAttemptRepository) VoidAllSettledByOrder(ctx context.Context, orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	return r.db.WithContext(ctx).
		Model(&AttemptDTO{}).
		Where("order_id = ? AND outcome <> ?", orderID.Bytes(), assignment.OutcomePending.String()).
		Update("voided", true).Error
}

func toDomainSlice(dtos []AttemptDTO) ([]*assignment.Attempt, error) {
	attempts := make([]*assignment.Attempt, 0, len(dtos))
	for _, dto := range dtos {
		attempt, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		attempts = append(attempts, attempt)
	}

	return attempts, nil
}
