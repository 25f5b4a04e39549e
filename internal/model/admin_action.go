package model

import (
	"database/sql"
	"time"
)

// Audit action tags recorded for administrative operations.
const (
	ActionApproveLecture = "approve_lecture"
	ActionRejectLecture  = "reject_lecture"
	ActionVerifyUser     = "verify_user"
	ActionDeclineUser    = "decline_user"
	ActionHaltService    = "halt_service"
	ActionResumeService  = "resume_service"
	ActionExportData     = "export_registrations"
)

// AdminAction is an append-only audit record. The workflow core writes these
// and never reads them back; they exist for the compliance trail only.
type AdminAction struct {
	ID        int64         `db:"id"`
	AdminID   int64         `db:"admin_id"`
	Action    string        `db:"action"`
	TargetID  sql.NullInt64 `db:"target_id"`
	CreatedAt time.Time     `db:"created_at"`
}
