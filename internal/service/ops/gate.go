// Package ops holds the operational gate: the one piece of truly global
// mutable state, consulted before any non-admin interaction is processed.
package ops

import (
	"context"
	"log/slog"
	"sync/atomic"

	"lecturebot/core/logger"
	"lecturebot/internal/model"
)

// AuditRecorder appends administrative audit rows.
type AuditRecorder interface {
	Record(ctx context.Context, adminID int64, action string, targetID int64) error
}

// Gate is the global service-halt switch plus the immutable admin allow-list.
// The flag is not persisted; a restart always comes up running.
type Gate struct {
	halted atomic.Bool
	admins map[int64]struct{}
	audit  AuditRecorder
}

// NewGate builds a Gate with the given allow-list. Membership never changes
// at runtime.
func NewGate(adminIDs []int64, audit AuditRecorder) *Gate {
	admins := make(map[int64]struct{}, len(adminIDs))
	for _, id := range adminIDs {
		admins[id] = struct{}{}
	}
	return &Gate{admins: admins, audit: audit}
}

// IsHalted reports whether the service is in maintenance mode.
func (g *Gate) IsHalted() bool {
	return g.halted.Load()
}

// IsAdmin reports allow-list membership.
func (g *Gate) IsAdmin(userID int64) bool {
	_, ok := g.admins[userID]
	return ok
}

// AdminCount returns the size of the allow-list, for the status surface.
func (g *Gate) AdminCount() int {
	return len(g.admins)
}

// SetHalted flips the maintenance flag. Only allow-listed admins may do so,
// and every call is recorded in the audit trail. The write path stays usable
// while halted so an admin can always resume service.
func (g *Gate) SetHalted(ctx context.Context, halted bool, adminID int64) error {
	if !g.IsAdmin(adminID) {
		return model.ErrUnauthorized
	}
	g.halted.Store(halted)

	action := model.ActionResumeService
	if halted {
		action = model.ActionHaltService
	}
	if g.audit != nil {
		if err := g.audit.Record(ctx, adminID, action, 0); err != nil {
			// The flag already flipped; a missing audit row must not undo an
			// emergency stop.
			logger.Error(ctx, "service.ops", "ops.audit.fail",
				slog.String("action", action),
				slog.Int64("admin_id", adminID),
				slog.String("err", err.Error()),
			)
		}
	}

	logger.Info(ctx, "service.ops", "ops.gate",
		slog.Bool("halted", halted),
		slog.Int64("admin_id", adminID),
	)
	return nil
}
