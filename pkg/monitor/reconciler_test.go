package monitor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Raswanth-RM/Transaction-Monitoring/pkg/model"
	"github.com/Raswanth-RM/Transaction-Monitoring/pkg/monitor"
)

func breach(name string, total float64, rules ...model.RuleID) *model.Breach {
	return &model.Breach{
		CustomerName: name,
		TotalAmount:  total,
		RulesBroken:  rules,
		Status:       model.StatusFlagged,
	}
}

func TestReconcile_InsertsNewBreaches(t *testing.T) {
	breaches := map[string]*model.Breach{
		"Alice": breach("Alice", 60000, model.RuleHighTotalSpend),
	}

	changes := monitor.Reconcile(breaches, nil)
	require.Len(t, changes, 1)
	assert.True(t, changes[0].Insert)
	assert.Equal(t, "Alice", changes[0].Alert.CustomerName)
	assert.Equal(t, model.StatusFlagged, changes[0].Alert.Status)
	assert.Equal(t, 60000.0, changes[0].Alert.TotalAmount)
}

func TestReconcile_UnchangedPreservesStatus(t *testing.T) {
	breaches := map[string]*model.Breach{
		"Alice": breach("Alice", 60000, model.RuleHighTotalSpend),
	}
	existing := []model.Alert{{
		ID:           "a1",
		CustomerName: "Alice",
		TotalAmount:  60000,
		RulesBroken:  []model.RuleID{model.RuleHighTotalSpend},
		Status:       "Reviewed",
	}}

	changes := monitor.Reconcile(breaches, existing)
	assert.Empty(t, changes)
}

func TestReconcile_RuleOrderDoesNotTriggerUpdate(t *testing.T) {
	breaches := map[string]*model.Breach{
		"Alice": breach("Alice", 60000, model.RuleHighTotalSpend, model.RuleFrequentTransactions),
	}
	existing := []model.Alert{{
		ID:           "a1",
		CustomerName: "Alice",
		TotalAmount:  60000,
		RulesBroken:  []model.RuleID{model.RuleFrequentTransactions, model.RuleHighTotalSpend},
		Status:       "Reviewed",
	}}

	assert.Empty(t, monitor.Reconcile(breaches, existing))
}

func TestReconcile_ChangedRulesResetStatus(t *testing.T) {
	breaches := map[string]*model.Breach{
		"Alice": breach("Alice", 60000, model.RuleHighTotalSpend, model.RuleSingleLargeTransaction),
	}
	existing := []model.Alert{{
		ID:           "a1",
		CustomerName: "Alice",
		TotalAmount:  60000,
		RulesBroken:  []model.RuleID{model.RuleHighTotalSpend},
		Status:       "Reviewed",
	}}

	changes := monitor.Reconcile(breaches, existing)
	require.Len(t, changes, 1)
	assert.False(t, changes[0].Insert)
	assert.Equal(t, "a1", changes[0].Alert.ID)
	assert.Equal(t, model.StatusFlagged, changes[0].Alert.Status)
	assert.Len(t, changes[0].Alert.RulesBroken, 2)
}

func TestReconcile_ChangedTotalResetStatus(t *testing.T) {
	breaches := map[string]*model.Breach{
		"Alice": breach("Alice", 70000, model.RuleHighTotalSpend),
	}
	existing := []model.Alert{{
		ID:           "a1",
		CustomerName: "Alice",
		TotalAmount:  60000,
		RulesBroken:  []model.RuleID{model.RuleHighTotalSpend},
		Status:       "Cleared",
	}}

	changes := monitor.Reconcile(breaches, existing)
	require.Len(t, changes, 1)
	assert.Equal(t, 70000.0, changes[0].Alert.TotalAmount)
	assert.Equal(t, model.StatusFlagged, changes[0].Alert.Status)
}

func TestReconcile_StaleAlertsUntouched(t *testing.T) {
	existing := []model.Alert{{
		ID:           "a1",
		CustomerName: "Ghost",
		TotalAmount:  99999,
		RulesBroken:  []model.RuleID{model.RuleHighTotalSpend},
		Status:       "Reviewed",
	}}

	changes := monitor.Reconcile(map[string]*model.Breach{}, existing)
	assert.Empty(t, changes)
}

func TestReconcile_DeterministicOrder(t *testing.T) {
	breaches := map[string]*model.Breach{
		"Zara":  breach("Zara", 60000, model.RuleHighTotalSpend),
		"Alice": breach("Alice", 70000, model.RuleHighTotalSpend),
		"Mike":  breach("Mike", 80000, model.RuleHighTotalSpend),
	}

	changes := monitor.Reconcile(breaches, nil)
	require.Len(t, changes, 3)
	assert.Equal(t, "Alice", changes[0].Alert.CustomerName)
	assert.Equal(t, "Mike", changes[1].Alert.CustomerName)
	assert.Equal(t, "Zara", changes[2].Alert.CustomerName)
}
