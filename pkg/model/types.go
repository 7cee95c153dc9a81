package model

import "time"

// Transaction represents a single ingested customer transaction.
// Transactions are immutable facts: created once on ingest, never
// mutated or deleted by the monitoring pipeline.
type Transaction struct {
	ID              int64     `json:"id" db:"id"`
	RegistrationNo  int64     `json:"registration_no" db:"registration_no"`
	CustomerName    string    `json:"customer_name" db:"customer_name"`
	TransactionType string    `json:"transaction_type" db:"transaction_type"`
	Product         string    `json:"product" db:"product"`
	Amount          float64   `json:"amount" db:"amount"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}

// RuleID identifies a monitoring rule. The constant values double as the
// human-readable tags persisted on alerts, so reviewers see the same
// strings the engine evaluates.
type RuleID string

const (
	// RuleFrequentTransactions fires when a customer has accumulated at
	// least the configured number of transactions (default 3).
	RuleFrequentTransactions RuleID = "Frequent Transactions (≥3 times)"

	// RuleHighTotalSpend fires when a customer's summed transaction
	// amounts strictly exceed the configured limit (default 55000).
	RuleHighTotalSpend RuleID = "Total Amount > 55000"

	// RuleSingleLargeTransaction fires when any individual transaction
	// reaches the configured limit (default 55000, inclusive).
	RuleSingleLargeTransaction RuleID = "Single Transaction ≥ 55000"
)

// StatusFlagged is the status assigned when rule evaluation flags a
// customer. Any other status value is reviewer-assigned and free-form.
const StatusFlagged = "Flagged"

// Alert is the mutable per-customer review summary. At most one alert
// exists per customer name.
type Alert struct {
	ID           string    `json:"id" db:"id"`
	CustomerName string    `json:"customer_name" db:"customer_name"`
	TotalAmount  float64   `json:"total_amount" db:"total_amount"`
	RulesBroken  []RuleID  `json:"rule_broken" db:"rule_broken"`
	Status       string    `json:"status" db:"status"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// Breach is the rule engine's per-customer result for a single
// evaluation pass: which rules broke and the aggregate amount the rule
// precedence settled on.
type Breach struct {
	CustomerName string   `json:"customer_name"`
	RulesBroken  []RuleID `json:"rule_broken"`
	TotalAmount  float64  `json:"total_amount"`
	Status       string   `json:"status"`
}

// RuleSetEqual reports whether two rule lists contain the same rules,
// ignoring order and duplicates. The reconciler compares stored and
// freshly computed rule sets with it to decide whether an alert changed.
func RuleSetEqual(a, b []RuleID) bool {
	as := make(map[RuleID]struct{}, len(a))
	for _, r := range a {
		as[r] = struct{}{}
	}
	bs := make(map[RuleID]struct{}, len(b))
	for _, r := range b {
		bs[r] = struct{}{}
	}
	if len(as) != len(bs) {
		return false
	}
	for r := range as {
		if _, ok := bs[r]; !ok {
			return false
		}
	}
	return true
}

// DedupeRules removes duplicate rule tags while preserving first-seen
// order.
func DedupeRules(rules []RuleID) []RuleID {
	seen := make(map[RuleID]struct{}, len(rules))
	out := make([]RuleID, 0, len(rules))
	for _, r := range rules {
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	return out
}
