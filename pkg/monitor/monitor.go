// Package monitor runs the transaction monitoring pipeline: load
// transactions, evaluate threshold rules, and reconcile the results
// against stored alerts.
package monitor

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Raswanth-RM/Transaction-Monitoring/pkg/alerts"
	"github.com/Raswanth-RM/Transaction-Monitoring/pkg/model"
	"github.com/Raswanth-RM/Transaction-Monitoring/pkg/rules"
	"github.com/Raswanth-RM/Transaction-Monitoring/pkg/storage"
)

// Monitor ties the rule engine, storage, and notifiers together.
type Monitor struct {
	store     storage.Storage
	engine    *rules.Engine
	notifiers []alerts.Notifier
	logger    *slog.Logger
}

// New creates a Monitor. Notifiers may be empty.
func New(store storage.Storage, engine *rules.Engine, notifiers []alerts.Notifier, logger *slog.Logger) *Monitor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Monitor{
		store:     store,
		engine:    engine,
		notifiers: notifiers,
		logger:    logger,
	}
}

// IngestTransactions persists a batch of parsed transactions.
func (m *Monitor) IngestTransactions(ctx context.Context, txs []*model.Transaction) error {
	if err := m.store.InsertTransactions(ctx, txs); err != nil {
		return fmt.Errorf("ingest transactions: %w", err)
	}
	m.logger.Info("transactions ingested", "count", len(txs))
	return nil
}

// ListTransactions returns all stored transactions in ingest order.
func (m *Monitor) ListTransactions(ctx context.Context) ([]model.Transaction, error) {
	return m.store.ListTransactions(ctx)
}

// ListTransactionsByCustomer returns one customer's stored transactions.
func (m *Monitor) ListTransactionsByCustomer(ctx context.Context, customerName string) ([]model.Transaction, error) {
	return m.store.ListTransactionsByCustomer(ctx, customerName)
}

// EvaluateAndReconcile runs the full monitoring pass: evaluate every
// stored transaction against the threshold rules, reconcile the
// breaches against stored alerts, and persist the resulting inserts
// and updates in one batch. It returns the complete alert list as it
// stands after the pass, including stale alerts from earlier data.
func (m *Monitor) EvaluateAndReconcile(ctx context.Context) ([]model.Alert, error) {
	txs, err := m.store.ListTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("load transactions: %w", err)
	}

	existing, err := m.store.ListAlerts(ctx)
	if err != nil {
		return nil, fmt.Errorf("load alerts: %w", err)
	}

	breaches := m.engine.Evaluate(txs)
	changes := Reconcile(breaches, existing)

	if len(changes) > 0 {
		toSave := make([]*model.Alert, len(changes))
		for i, ch := range changes {
			toSave[i] = ch.Alert
		}
		if err := m.store.SaveAlerts(ctx, toSave); err != nil {
			return nil, fmt.Errorf("save alerts: %w", err)
		}

		m.logger.Info("alerts reconciled",
			"customers_in_breach", len(breaches),
			"changes", len(changes),
		)
		m.notify(ctx, changes)
	}

	return m.store.ListAlerts(ctx)
}

// EvaluateAndReconcileFor runs a full monitoring pass, then returns the
// alert for one customer. Returns storage.ErrAlertNotFound when the
// customer has never been flagged.
func (m *Monitor) EvaluateAndReconcileFor(ctx context.Context, customerName string) (*model.Alert, error) {
	if _, err := m.EvaluateAndReconcile(ctx); err != nil {
		return nil, err
	}
	return m.store.GetAlert(ctx, customerName)
}

// UpdateStatus sets the status of a customer's alert. The status takes
// effect until the customer's rule evaluation next changes.
func (m *Monitor) UpdateStatus(ctx context.Context, customerName, status string) error {
	if err := m.store.UpdateAlertStatus(ctx, customerName, status); err != nil {
		return err
	}
	m.logger.Info("alert status updated", "customer", customerName, "status", status)
	return nil
}

// notify fans changes out to the configured notifiers. Delivery
// failures are logged and never fail the monitoring pass.
func (m *Monitor) notify(ctx context.Context, changes []Change) {
	if len(m.notifiers) == 0 {
		return
	}

	for _, ch := range changes {
		kind := alerts.EventUpdated
		if ch.Insert {
			kind = alerts.EventFlagged
		}

		notification := alerts.Notification{
			Kind:         kind,
			CustomerName: ch.Alert.CustomerName,
			TotalAmount:  ch.Alert.TotalAmount,
			RulesBroken:  ruleStrings(ch.Alert.RulesBroken),
			Status:       ch.Alert.Status,
			Message: fmt.Sprintf("customer %s %s with total amount %.2f",
				ch.Alert.CustomerName, kind, ch.Alert.TotalAmount),
		}

		for _, n := range m.notifiers {
			if err := n.Send(ctx, notification); err != nil {
				m.logger.Error("notification failed",
					"notifier", n.Name(),
					"customer", ch.Alert.CustomerName,
					"error", err,
				)
			}
		}
	}
}

func ruleStrings(rules []model.RuleID) []string {
	out := make([]string, len(rules))
	for i, r := range rules {
		out[i] = string(r)
	}
	return out
}
