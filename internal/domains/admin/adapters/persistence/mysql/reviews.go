package mysql

import (
	"context"
	"database/sql"

	storedomain "github.com/Ssshtea/DBMS-cp/internal/domains/store/domain"
)

// ReviewsForProduct lists a product's reviews, newest first.
func (r *Repository) ReviewsForProduct(ctx context.Context, productID int64) ([]storedomain.Review, error) {
	var rows []struct {
		ID         int64          `db:"review_id"`
		ProductID  int64          `db:"product_id"`
		CustomerID int64          `db:"customer_id"`
		Rating     int            `db:"rating"`
		Comment    sql.NullString `db:"comment"`
		CreatedAt  sql.NullTime   `db:"created_at"`
	}
	err := r.exec.Select(ctx, &rows, `
		SELECT review_id, product_id, customer_id, rating, comment, created_at
		FROM reviews
		WHERE product_id = ?
		ORDER BY review_id DESC`, productID)
	if err != nil {
		return nil, err
	}
	reviews := make([]storedomain.Review, 0, len(rows))
	for _, row := range rows {
		reviews = append(reviews, storedomain.Review{
			ID:         row.ID,
			ProductID:  row.ProductID,
			CustomerID: row.CustomerID,
			Rating:     row.Rating,
			Comment:    row.Comment.String,
			CreatedAt:  row.CreatedAt.Time,
		})
	}
	return reviews, nil
}
