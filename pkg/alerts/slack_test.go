package alerts_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Raswanth-RM/Transaction-Monitoring/pkg/alerts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlackNotifier_Name(t *testing.T) {
	n := alerts.NewSlackNotifier("https://hooks.slack.com/services/x", "#alerts")
	assert.Equal(t, "slack", n.Name())
}

func TestSlackNotifier_Send(t *testing.T) {
	var received map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		err := json.NewDecoder(r.Body).Decode(&received)
		require.NoError(t, err)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	n := alerts.NewSlackNotifier(server.URL, "#fraud-alerts")
	err := n.Send(context.Background(), alerts.Notification{
		Kind:         alerts.EventFlagged,
		CustomerName: "Bob",
		TotalAmount:  57000,
		RulesBroken:  []string{"Total Amount > 55000", "Single Transaction ≥ 55000"},
		Status:       "Flagged",
	})
	require.NoError(t, err)

	assert.Equal(t, "#fraud-alerts", received["channel"])
	attachments, ok := received["attachments"].([]any)
	require.True(t, ok)
	require.Len(t, attachments, 1)

	attachment := attachments[0].(map[string]any)
	fields := attachment["fields"].([]any)
	customer := fields[0].(map[string]any)
	assert.Equal(t, "Bob", customer["value"])
}

func TestSlackNotifier_Send_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	n := alerts.NewSlackNotifier(server.URL, "")
	err := n.Send(context.Background(), alerts.Notification{Kind: alerts.EventFlagged})
	assert.Error(t, err)
}
