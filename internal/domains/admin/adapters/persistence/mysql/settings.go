package mysql

import (
	"context"

	admindomain "github.com/Ssshtea/DBMS-cp/internal/domains/admin/domain"
)

// AllSettings lists store configuration rows.
func (r *Repository) AllSettings(ctx context.Context) ([]admindomain.Setting, error) {
	var rows []struct {
		Name  string `db:"setting_key"`
		Value string `db:"setting_value"`
	}
	err := r.exec.Select(ctx, &rows,
		`SELECT setting_key, setting_value FROM settings ORDER BY setting_key`)
	if err != nil {
		return nil, err
	}
	settings := make([]admindomain.Setting, 0, len(rows))
	for _, row := range rows {
		settings = append(settings, admindomain.Setting{Name: row.Name, Value: row.Value})
	}
	return settings, nil
}

// UpsertSetting writes one configuration row, inserting or replacing.
func (r *Repository) UpsertSetting(ctx context.Context, setting admindomain.Setting) error {
	_, err := r.exec.Exec(ctx, `
		INSERT INTO settings (setting_key, setting_value) VALUES (?, ?)
		ON DUPLICATE KEY UPDATE setting_value = VALUES(setting_value)`,
		setting.Name, setting.Value)
	return err
}
