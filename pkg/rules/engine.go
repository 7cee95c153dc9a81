package rules

import (
	"github.com/Raswanth-RM/Transaction-Monitoring/pkg/model"
)

// Engine evaluates the fixed rule set against a customer transaction
// history. Evaluation is a pure function of its input: the engine holds
// no state beyond its thresholds and performs no I/O.
type Engine struct {
	thresholds Thresholds
}

// NewEngine creates a rule engine with the given thresholds.
func NewEngine(t Thresholds) *Engine {
	return &Engine{thresholds: t}
}

// Thresholds returns the engine's active thresholds.
func (e *Engine) Thresholds() Thresholds {
	return e.thresholds
}

// Evaluate applies the rule set to the entire transaction history and
// returns a breach per customer who broke at least one rule. Customers
// matching no rule are absent from the result.
//
// Rules run in order: frequency, then high total spend, then single
// large transaction. The frequency rule never sets TotalAmount; the
// high-spend rule sets it to the customer's sum; the single-transaction
// rule sets it to the transaction amount only when the high-spend rule
// did not fire for that customer — when both fire, the sum wins. When
// several transactions qualify for the single-transaction rule, the
// last one in ingest order is recorded.
func (e *Engine) Evaluate(txs []model.Transaction) map[string]*model.Breach {
	counts := make(map[string]int)
	sums := make(map[string]float64)
	for _, tx := range txs {
		counts[tx.CustomerName]++
		sums[tx.CustomerName] += tx.Amount
	}

	breaches := make(map[string]*model.Breach)
	breach := func(name string) *model.Breach {
		b, ok := breaches[name]
		if !ok {
			b = &model.Breach{
				CustomerName: name,
				Status:       model.StatusFlagged,
			}
			breaches[name] = b
		}
		return b
	}

	// Rule 1: frequent transactions. Does not set TotalAmount.
	for name, n := range counts {
		if n >= e.thresholds.FrequentCount {
			b := breach(name)
			b.RulesBroken = append(b.RulesBroken, model.RuleFrequentTransactions)
		}
	}

	// Rule 2: high total spend, strictly above the limit.
	highSpend := make(map[string]bool)
	for name, sum := range sums {
		if sum > e.thresholds.TotalSpendLimit {
			b := breach(name)
			b.RulesBroken = append(b.RulesBroken, model.RuleHighTotalSpend)
			b.TotalAmount = sum
			highSpend[name] = true
		}
	}

	// Rule 3: single large transaction, at or above the limit. The
	// high-spend sum takes precedence over the individual amount.
	for _, tx := range txs {
		if tx.Amount < e.thresholds.SingleTxnLimit {
			continue
		}
		b := breach(tx.CustomerName)
		b.RulesBroken = append(b.RulesBroken, model.RuleSingleLargeTransaction)
		if !highSpend[tx.CustomerName] {
			b.TotalAmount = tx.Amount
		}
	}

	for _, b := range breaches {
		b.RulesBroken = model.DedupeRules(b.RulesBroken)
	}

	return breaches
}
