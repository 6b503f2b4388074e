package service

import (
	"context"
	"time"

	"gamedesk/pkg/logger"
)

// FloorTicker periodically pushes the active floor snapshot to connected
// staff dashboards so their cost columns tick without polling.
type FloorTicker struct {
	sessionSvc  *SessionService
	broadcaster Broadcaster
	interval    time.Duration
	log         logger.Logger
}

// NewFloorTicker creates a new floor ticker
func NewFloorTicker(sessionSvc *SessionService, broadcaster Broadcaster, interval time.Duration, log logger.Logger) *FloorTicker {
	return &FloorTicker{
		sessionSvc:  sessionSvc,
		broadcaster: broadcaster,
		interval:    interval,
		log:         log,
	}
}

// Run broadcasts until the context is cancelled
func (t *FloorTicker) Run(ctx context.Context) {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rows, err := t.sessionSvc.ActiveFloor(ctx)
			if err != nil {
				t.log.Warn("floor snapshot failed", "error", err)
				continue
			}
			t.broadcaster.BroadcastToStaff("floor_snapshot", rows)
		}
	}
}
