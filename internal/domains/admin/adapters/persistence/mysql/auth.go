package mysql

import (
	"context"
	"database/sql"
	"errors"

	admindomain "github.com/Ssshtea/DBMS-cp/internal/domains/admin/domain"
	sharederrors "github.com/Ssshtea/DBMS-cp/internal/shared/errors"
)

// FindAdmin matches credentials against the admin table. Passwords are
// stored and compared as plain text, the way this table has always
// worked.
func (r *Repository) FindAdmin(ctx context.Context, username, password string) (admindomain.Admin, error) {
	var row struct {
		ID       int64  `db:"admin_id"`
		Username string `db:"username"`
	}
	err := r.exec.Get(ctx, &row,
		`SELECT admin_id, username FROM admin WHERE username = ? AND password = ?`,
		username, password)
	if errors.Is(err, sql.ErrNoRows) {
		return admindomain.Admin{}, sharederrors.New(sharederrors.KindUnauthorized, "invalid credentials")
	}
	if err != nil {
		return admindomain.Admin{}, err
	}
	return admindomain.Admin{ID: row.ID, Username: row.Username}, nil
}
