// Package mysql implements the back-office capability interfaces
// against the retrying executor. One file per capability.
package mysql

import (
	platformmysql "github.com/Ssshtea/DBMS-cp/internal/platform/mysql"

	"github.com/Ssshtea/DBMS-cp/internal/domains/admin/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is the full back-office persistence surface.
type Repository struct {
	exec *platformmysql.Executor
}

// NewRepository wires the repository over the executor.
func NewRepository(exec *platformmysql.Executor) *Repository {
	return &Repository{exec: exec}
}
