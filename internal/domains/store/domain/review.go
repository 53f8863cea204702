package domain

import "time"

// Review is one customer's rating of a product. Ratings run 1 to 5.
type Review struct {
	ID         int64
	ProductID  int64
	CustomerID int64
	Rating     int
	Comment    string
	CreatedAt  time.Time
}
