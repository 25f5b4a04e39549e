package storage

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"lecturebot/internal/model"
)

// AdminActionRepo appends audit records. Write-once; nothing reads them back.
type AdminActionRepo struct {
	db *sqlx.DB
}

// Record appends an audit row. targetID may be zero for global actions such
// as halting the service.
func (r *AdminActionRepo) Record(ctx context.Context, adminID int64, action string, targetID int64) error {
	const q = `INSERT INTO admin_actions (admin_id, action, target_id) VALUES ($1, $2, $3)`
	var target sql.NullInt64
	if targetID != 0 {
		target = sql.NullInt64{Int64: targetID, Valid: true}
	}
	if _, err := r.db.ExecContext(ctx, q, adminID, action, target); err != nil {
		return model.StoreError("admin_actions.record", err)
	}
	return nil
}
