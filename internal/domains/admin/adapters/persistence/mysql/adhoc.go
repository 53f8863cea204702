package mysql

import (
	"context"
	"fmt"
	"regexp"

	admindomain "github.com/Ssshtea/DBMS-cp/internal/domains/admin/domain"
	sharederrors "github.com/Ssshtea/DBMS-cp/internal/shared/errors"
)

// identifier limits table names to what MySQL unquoted identifiers
// allow. Identifiers cannot be bound as parameters, so DescribeTable
// validates before splicing.
var identifier = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// Tables lists the tables of the connected database.
func (r *Repository) Tables(ctx context.Context) ([]string, error) {
	var tables []string
	if err := r.exec.Select(ctx, &tables, `SHOW TABLES`); err != nil {
		return nil, err
	}
	return tables, nil
}

// DescribeTable returns a table's column layout.
func (r *Repository) DescribeTable(ctx context.Context, table string) ([]admindomain.TableColumn, error) {
	if !identifier.MatchString(table) {
		return nil, sharederrors.Newf(sharederrors.KindValidation, "invalid table name %q", table)
	}
	rows, err := r.exec.QueryMaps(ctx, fmt.Sprintf("DESCRIBE `%s`", table))
	if err != nil {
		return nil, err
	}
	columns := make([]admindomain.TableColumn, 0, len(rows))
	for _, row := range rows {
		columns = append(columns, admindomain.TableColumn{
			Name:     stringAt(row, "Field"),
			Type:     stringAt(row, "Type"),
			Nullable: stringAt(row, "Null") == "YES",
			Key:      stringAt(row, "Key"),
		})
	}
	return columns, nil
}

// RunSelect executes an already-screened read statement and returns
// dictionary rows.
func (r *Repository) RunSelect(ctx context.Context, query string, args ...any) ([]map[string]any, error) {
	return r.exec.QueryMaps(ctx, query, args...)
}

func stringAt(row map[string]any, key string) string {
	if v, ok := row[key].(string); ok {
		return v
	}
	return ""
}
