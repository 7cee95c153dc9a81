package rules

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Thresholds holds the tunable parameters for the fixed rule set.
type Thresholds struct {
	// FrequentCount is the transaction count at which the frequency rule
	// fires (inclusive).
	FrequentCount int `yaml:"frequent_count"`

	// TotalSpendLimit is the summed-amount limit for the high-spend rule
	// (strictly greater than).
	TotalSpendLimit float64 `yaml:"total_spend_limit"`

	// SingleTxnLimit is the per-transaction limit for the single large
	// transaction rule (inclusive).
	SingleTxnLimit float64 `yaml:"single_txn_limit"`
}

// DefaultThresholds returns the standard monitoring thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{
		FrequentCount:   3,
		TotalSpendLimit: 55000,
		SingleTxnLimit:  55000,
	}
}

// LoadThresholds reads a YAML thresholds file. Missing fields fall back
// to the defaults.
func LoadThresholds(path string) (Thresholds, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Thresholds{}, fmt.Errorf("read thresholds file %s: %w", path, err)
	}
	return LoadThresholdsFromBytes(data)
}

// LoadThresholdsFromBytes parses YAML thresholds data from raw bytes.
func LoadThresholdsFromBytes(data []byte) (Thresholds, error) {
	t := DefaultThresholds()
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Thresholds{}, fmt.Errorf("parse thresholds: %w", err)
	}

	if t.FrequentCount <= 0 {
		return Thresholds{}, fmt.Errorf("thresholds: frequent_count must be positive, got %d", t.FrequentCount)
	}
	if t.TotalSpendLimit <= 0 {
		return Thresholds{}, fmt.Errorf("thresholds: total_spend_limit must be positive, got %v", t.TotalSpendLimit)
	}
	if t.SingleTxnLimit <= 0 {
		return Thresholds{}, fmt.Errorf("thresholds: single_txn_limit must be positive, got %v", t.SingleTxnLimit)
	}

	return t, nil
}
