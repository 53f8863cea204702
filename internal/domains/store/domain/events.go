package domain

import "time"

// OrderPlaced is published after a placement commits. Consumers turn it
// into notifications and activity entries; delivery is best effort and
// never blocks or fails the order itself.
type OrderPlaced struct {
	EventID    string    `json:"event_id"`
	OrderID    int64     `json:"order_id"`
	CustomerID int64     `json:"customer_id"`
	ProductID  int64     `json:"product_id"`
	Quantity   int       `json:"quantity"`
	Total      Cents     `json:"total_cents"`
	OccurredAt time.Time `json:"occurred_at"`
}
