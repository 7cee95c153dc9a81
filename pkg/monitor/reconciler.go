package monitor

import (
	"sort"

	"github.com/Raswanth-RM/Transaction-Monitoring/pkg/model"
)

// Change is one pending write against the alerts table: either a brand
// new alert or an update to an existing row.
type Change struct {
	Alert  *model.Alert
	Insert bool
}

// Reconcile diffs the current rule evaluation against stored alerts and
// returns the writes needed to bring storage up to date.
//
// A customer with a fresh breach and no stored alert gets an insert. A
// stored alert whose rule set or total amount no longer matches the
// evaluation gets an update with its status reset to Flagged; the
// existing row's ID and CreatedAt are kept. A stored alert that matches
// the evaluation exactly is left alone, preserving any manually set
// status. Stored alerts for customers with no current breach are never
// touched.
func Reconcile(breaches map[string]*model.Breach, existing []model.Alert) []Change {
	byCustomer := make(map[string]*model.Alert, len(existing))
	for i := range existing {
		byCustomer[existing[i].CustomerName] = &existing[i]
	}

	names := make([]string, 0, len(breaches))
	for name := range breaches {
		names = append(names, name)
	}
	sort.Strings(names)

	var changes []Change
	for _, name := range names {
		breach := breaches[name]
		stored, ok := byCustomer[name]
		if !ok {
			changes = append(changes, Change{
				Alert: &model.Alert{
					CustomerName: breach.CustomerName,
					TotalAmount:  breach.TotalAmount,
					RulesBroken:  breach.RulesBroken,
					Status:       model.StatusFlagged,
				},
				Insert: true,
			})
			continue
		}

		if model.RuleSetEqual(stored.RulesBroken, breach.RulesBroken) &&
			stored.TotalAmount == breach.TotalAmount {
			continue
		}

		updated := *stored
		updated.TotalAmount = breach.TotalAmount
		updated.RulesBroken = breach.RulesBroken
		updated.Status = model.StatusFlagged
		changes = append(changes, Change{Alert: &updated})
	}

	return changes
}
