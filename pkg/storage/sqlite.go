package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/Raswanth-RM/Transaction-Monitoring/pkg/model"

	_ "modernc.org/sqlite"
)

// SQLite implements the Storage interface using an SQLite database.
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens or creates an SQLite database at the given path.
func NewSQLite(dbPath string) (*SQLite, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Enable WAL mode for concurrent reads
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLite{db: db}, nil
}

func (s *SQLite) InsertTransactions(ctx context.Context, txs []*model.Transaction) error {
	if len(txs) == 0 {
		return nil
	}

	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin insert: %w", err)
	}

	stmt, err := dbTx.PrepareContext(ctx,
		`INSERT INTO transactions (registration_no, customer_name, transaction_type, product, amount, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		_ = dbTx.Rollback()
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, tx := range txs {
		if tx.CreatedAt.IsZero() {
			tx.CreatedAt = time.Now().UTC()
		}
		res, err := stmt.ExecContext(ctx,
			tx.RegistrationNo, tx.CustomerName, tx.TransactionType, tx.Product, tx.Amount, tx.CreatedAt)
		if err != nil {
			_ = dbTx.Rollback()
			return fmt.Errorf("insert transaction: %w", err)
		}
		if id, err := res.LastInsertId(); err == nil {
			tx.ID = id
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("commit insert: %w", err)
	}
	return nil
}

func (s *SQLite) ListTransactions(ctx context.Context) ([]model.Transaction, error) {
	return s.queryTransactions(ctx,
		`SELECT id, registration_no, customer_name, transaction_type, product, amount, created_at
		 FROM transactions ORDER BY id`)
}

func (s *SQLite) ListTransactionsByCustomer(ctx context.Context, customerName string) ([]model.Transaction, error) {
	return s.queryTransactions(ctx,
		`SELECT id, registration_no, customer_name, transaction_type, product, amount, created_at
		 FROM transactions WHERE customer_name = ? ORDER BY id`, customerName)
}

func (s *SQLite) queryTransactions(ctx context.Context, query string, args ...any) ([]model.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var txs []model.Transaction
	for rows.Next() {
		var tx model.Transaction
		if err := rows.Scan(&tx.ID, &tx.RegistrationNo, &tx.CustomerName,
			&tx.TransactionType, &tx.Product, &tx.Amount, &tx.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan transaction row: %w", err)
		}
		txs = append(txs, tx)
	}
	return txs, rows.Err()
}

func (s *SQLite) ListAlerts(ctx context.Context) ([]model.Alert, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, customer_name, total_amount, rule_broken, status, created_at, updated_at
		 FROM alerts ORDER BY customer_name`)
	if err != nil {
		return nil, fmt.Errorf("list alerts: %w", err)
	}
	defer rows.Close()

	var alerts []model.Alert
	for rows.Next() {
		alert, err := scanAlert(rows.Scan)
		if err != nil {
			return nil, err
		}
		alerts = append(alerts, *alert)
	}
	return alerts, rows.Err()
}

func (s *SQLite) GetAlert(ctx context.Context, customerName string) (*model.Alert, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, customer_name, total_amount, rule_broken, status, created_at, updated_at
		 FROM alerts WHERE customer_name = ?`, customerName)

	alert, err := scanAlert(row.Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("customer %q: %w", customerName, ErrAlertNotFound)
	}
	if err != nil {
		return nil, err
	}
	return alert, nil
}

func (s *SQLite) SaveAlerts(ctx context.Context, alerts []*model.Alert) error {
	if len(alerts) == 0 {
		return nil
	}

	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}

	now := time.Now().UTC()
	for _, alert := range alerts {
		if alert.ID == "" {
			alert.ID = uuid.New().String()
		}
		if alert.CreatedAt.IsZero() {
			alert.CreatedAt = now
		}
		alert.UpdatedAt = now

		rulesJSON, err := marshalRules(alert.RulesBroken)
		if err != nil {
			_ = dbTx.Rollback()
			return err
		}

		_, err = dbTx.ExecContext(ctx,
			`INSERT INTO alerts (id, customer_name, total_amount, rule_broken, status, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)
			 ON CONFLICT(customer_name) DO UPDATE SET
			   total_amount = excluded.total_amount,
			   rule_broken  = excluded.rule_broken,
			   status       = excluded.status,
			   updated_at   = excluded.updated_at`,
			alert.ID, alert.CustomerName, alert.TotalAmount, rulesJSON,
			alert.Status, alert.CreatedAt, alert.UpdatedAt,
		)
		if err != nil {
			_ = dbTx.Rollback()
			return fmt.Errorf("save alert for %q: %w", alert.CustomerName, err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	return nil
}

func (s *SQLite) UpdateAlertStatus(ctx context.Context, customerName, status string) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE alerts SET status = ?, updated_at = ? WHERE customer_name = ?`,
		status, time.Now().UTC(), customerName,
	)
	if err != nil {
		return fmt.Errorf("update alert status: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("customer %q: %w", customerName, ErrAlertNotFound)
	}
	return nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

// scanAlert reads one alert row, decoding the rule_broken JSON column.
// The JSON serialization lives entirely in this adapter; callers only
// ever see []model.RuleID.
func scanAlert(scan func(dest ...any) error) (*model.Alert, error) {
	var a model.Alert
	var rulesJSON string
	if err := scan(&a.ID, &a.CustomerName, &a.TotalAmount, &rulesJSON,
		&a.Status, &a.CreatedAt, &a.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scan alert row: %w", err)
	}

	rules, err := unmarshalRules(rulesJSON)
	if err != nil {
		return nil, err
	}
	a.RulesBroken = rules
	return &a, nil
}

func marshalRules(rules []model.RuleID) (string, error) {
	if rules == nil {
		rules = []model.RuleID{}
	}
	data, err := json.Marshal(rules)
	if err != nil {
		return "", fmt.Errorf("marshal rule_broken: %w", err)
	}
	return string(data), nil
}

func unmarshalRules(data string) ([]model.RuleID, error) {
	if data == "" {
		return nil, nil
	}
	var rules []model.RuleID
	if err := json.Unmarshal([]byte(data), &rules); err != nil {
		return nil, fmt.Errorf("unmarshal rule_broken: %w", err)
	}
	return rules, nil
}
