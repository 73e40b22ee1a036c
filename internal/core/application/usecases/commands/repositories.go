// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"freight/internal/core/ports"
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

	// ParcelRepoFactory provides access to the parcel repository within a transaction.
	ParcelRepoFactory interface {
		ParcelRepository() ports.ParcelRepository
	}

	// ConsolidationRepoFactory provides access to the consolidation repository within a transaction.
	ConsolidationRepoFactory interface {
		ConsolidationRepository() ports.ConsolidationRepository
	}

	// TariffRepoFactory provides access to the tariff repository within a transaction.
	TariffRepoFactory interface {
		TariffRepository() ports.TariffRepository
	}

	// InvoiceRepoFactory provides access to the invoice repository within a transaction.
	InvoiceRepoFactory interface {
		InvoiceRepository() ports.InvoiceRepository
	}

	// NotificationRepoFactory provides access to the notification repository within a transaction.
	NotificationRepoFactory interface {
		NotificationRepository() ports.NotificationRepository
	}

	// ConsolidationUoW manages transactions spanning consolidations and their
	// member parcels. Used by creation and status-cascade commands.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   consRepo := uow.ConsolidationRepository()
	//   parcelRepo := uow.ParcelRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	ConsolidationUoW interface {
		TxManager
		ConsolidationRepoFactory
		ParcelRepoFactory
	}

	// ConsolidationUoWFactory creates new consolidation unit of work instances.
	ConsolidationUoWFactory interface {
		Create() ConsolidationUoW
	}

	// BillingUoW manages transactions for bulk billing runs, which read
	// consolidations, parcels and tariffs and write invoices and
	// notification requests.
	BillingUoW interface {
		TxManager
		ConsolidationRepoFactory
		ParcelRepoFactory
		TariffRepoFactory
		InvoiceRepoFactory
		NotificationRepoFactory
	}

	// BillingUoWFactory creates new billing unit of work instances.
	BillingUoWFactory interface {
		Create() BillingUoW
	}

	// NotificationUoW manages transactions for notification dispatch runs.
	NotificationUoW interface {
		TxManager
		NotificationRepoFactory
	}

	// NotificationUoWFactory creates new notification unit of work instances.
	NotificationUoWFactory interface {
		Create() NotificationUoW
	}
)
