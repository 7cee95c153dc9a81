package storage

import (
	"context"
	"errors"

	"github.com/Raswanth-RM/Transaction-Monitoring/pkg/model"
)

// ErrAlertNotFound is returned when no alert exists for a customer.
var ErrAlertNotFound = errors.New("alert not found")

// Storage defines the persistence layer for transactions and alerts.
type Storage interface {
	// InsertTransactions persists a batch of transactions in a single
	// database transaction and assigns their IDs.
	InsertTransactions(ctx context.Context, txs []*model.Transaction) error

	// ListTransactions returns all transactions in ingest order.
	ListTransactions(ctx context.Context) ([]model.Transaction, error)

	// ListTransactionsByCustomer returns one customer's transactions in
	// ingest order.
	ListTransactionsByCustomer(ctx context.Context, customerName string) ([]model.Transaction, error)

	// ListAlerts returns all alerts ordered by customer name.
	ListAlerts(ctx context.Context) ([]model.Alert, error)

	// GetAlert retrieves the alert for a customer, or ErrAlertNotFound.
	GetAlert(ctx context.Context, customerName string) (*model.Alert, error)

	// SaveAlerts upserts a batch of alerts keyed by customer name in a
	// single database transaction. This is the reconciler's unit of
	// work: either the whole pass commits or none of it does.
	SaveAlerts(ctx context.Context, alerts []*model.Alert) error

	// UpdateAlertStatus sets the status of a customer's alert
	// unconditionally, or returns ErrAlertNotFound.
	UpdateAlertStatus(ctx context.Context, customerName, status string) error

	// Close releases resources.
	Close() error
}
