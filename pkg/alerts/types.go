package alerts

import "context"

// EventKind distinguishes why a notification fired.
type EventKind string

const (
	EventFlagged EventKind = "flagged" // New alert created for a customer
	EventUpdated EventKind = "updated" // Existing alert's rules or total changed
)

// Notification describes a rule breach being reported to external systems.
type Notification struct {
	Kind         EventKind `json:"kind"`
	CustomerName string    `json:"customer_name"`
	TotalAmount  float64   `json:"total_amount"`
	RulesBroken  []string  `json:"rule_broken"`
	Status       string    `json:"status"`
	Message      string    `json:"message"`
}

// Notifier sends notifications to external systems.
type Notifier interface {
	// Name returns the notifier identifier.
	Name() string

	// Send delivers a notification. Implementations must be safe for concurrent use.
	Send(ctx context.Context, n Notification) error
}
