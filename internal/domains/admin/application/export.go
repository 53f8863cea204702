package application

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"

	storedomain "github.com/Ssshtea/DBMS-cp/internal/domains/store/domain"
)

// ExportOrdersCSV renders the order list as CSV, optionally filtered by
// status. Money renders as a decimal string, dates as YYYY-MM-DD.
func (s *Service) ExportOrdersCSV(ctx context.Context, status storedomain.Status) ([]byte, error) {
	orders, err := s.ListOrders(ctx, status)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"order_id", "customer", "date", "total", "status"}); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	for _, o := range orders {
		record := []string{
			strconv.FormatInt(o.OrderID, 10),
			o.CustomerName,
			o.OrderDate.Format("2006-01-02"),
			o.Total.String(),
			string(o.Status),
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
