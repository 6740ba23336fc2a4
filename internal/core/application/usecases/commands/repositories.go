// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"fulfillment/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// CourierRepoFactory provides access to courier repository within a transaction.
	CourierRepoFactory interface {
		CourierRepository() ports.CourierRepository
	}

	// AttemptRepoFactory provides access to attempt repository within a transaction.
	AttemptRepoFactory interface {
		AttemptRepository() ports.AttemptRepository
	}

	// StatusEventRepoFactory provides access to the status ledger within a transaction.
	StatusEventRepoFactory interface {
		StatusEventRepository() ports.StatusEventRepository
	}

	// CourierUoW manages transactions for courier-only operations.
	// Used when commands only modify courier aggregates.
	CourierUoW interface {
		TxManager
		CourierRepoFactory
	}

	// CourierUoWFactory creates new courier unit of work instances.
	CourierUoWFactory interface {
		Create() CourierUoW
	}

	// OrderUoW manages transactions for order-only operations.
	// Used when commands only modify order aggregates.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// SettlementUoW manages transactions for offer settlement operations.
	// Settlements lock the order row, flip the attempt outcome and, on
	// acceptance, append the assignment to the status ledger.
	SettlementUoW interface {
		TxManager
		OrderRepoFactory
		AttemptRepoFactory
		StatusEventRepoFactory
	}

	// SettlementUoWFactory creates new settlement unit of work instances.
	SettlementUoWFactory interface {
		Create() SettlementUoW
	}

	// MilestoneUoW manages transactions for delivery progress reports.
	// Used when commands advance the order and append to the status ledger.
	MilestoneUoW interface {
		TxManager
		OrderRepoFactory
		StatusEventRepoFactory
	}

	// MilestoneUoWFactory creates new milestone unit of work instances.
	MilestoneUoWFactory interface {
		Create() MilestoneUoW
	}

	// UoW manages transactions across all fulfillment aggregates.
	// Used for commands that coordinate orders, couriers and attempts.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   orderRepo := uow.OrderRepository()
	//   attemptRepo := uow.AttemptRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		OrderRepoFactory
		CourierRepoFactory
		AttemptRepoFactory
		StatusEventRepoFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate operations.
	UoWFactory interface {
		Create() UoW
	}
)
