package pricing

import (
	"math"
	"time"

	"gamedesk/internal/model"
	"gamedesk/pkg/logger"
)

// Engine is the canonical price calculator. It holds no state beyond its
// clock and never errors out of its public methods; bad input degrades to a
// zero or fallback price instead of aborting a bill.
type Engine struct {
	clock Clock
	log   logger.Logger
}

// NewEngine creates a pricing engine. The clock supplies "now" for sessions
// that are still running.
func NewEngine(clock Clock, log logger.Logger) *Engine {
	return &Engine{
		clock: clock,
		log:   log,
	}
}

// RoundTimeToCharge converts actual elapsed minutes into billable minutes:
// the first 7 minutes are free, everything above rounds up to the next
// 15-minute block counted from that boundary. Negative input clamps to 0.
func RoundTimeToCharge(actualMinutes int) int {
	if actualMinutes <= freeMinutes {
		return 0
	}
	over := actualMinutes - freeMinutes
	blocks := (over + blockMinutes - 1) / blockMinutes
	return blocks * blockMinutes
}

// CalculatePrice prices one stint on a device. The frame station is flat per
// player and short-circuits everything else; mapped device types use their
// band table; unmapped types fall back to a straight linear charge from the
// device's own hourly rate. The result is always a finite, non-negative
// amount.
func CalculatePrice(deviceType model.DeviceType, playerCount, actualMinutes int, hourlyRate float64) float64 {
	if deviceType == model.DeviceFrame {
		if playerCount < 1 {
			playerCount = 1
		}
		return framePlayerRate * float64(playerCount)
	}

	billed := RoundTimeToCharge(actualMinutes)
	tiers, ok := rateCard[deviceType]
	if !ok {
		return fallbackPrice(hourlyRate, billed)
	}
	return tierFor(tiers, playerCount).price(billed)
}

// fallbackPrice is the circuit breaker for device types the rate card does
// not recognize.
func fallbackPrice(hourlyRate float64, billedMinutes int) float64 {
	if math.IsNaN(hourlyRate) || math.IsInf(hourlyRate, 0) || hourlyRate < 0 {
		hourlyRate = 0
	}
	return hourlyRate / 60 * float64(billedMinutes)
}

// SessionCost resolves the price of a single session. Resolution order:
// frame flat rate, then the frozen cost on an ended session, then a fresh
// computation from elapsed (active) or frozen (ended) minutes. Every call
// site shares this order; none of them gets its own copy.
func (e *Engine) SessionCost(s *model.Session) float64 {
	if s == nil {
		return 0
	}
	if s.DeviceType == model.DeviceFrame {
		return CalculatePrice(s.DeviceType, s.NormalizedPlayerCount(), 0, s.HourlyRate)
	}
	if s.Status == model.SessionEnded {
		if cost, ok := s.StoredCost(); ok {
			return cost
		}
	}

	minutes := s.Duration
	if s.Status == model.SessionActive {
		minutes = elapsedMinutes(s.StartedAt, e.clock.Now())
	}
	if minutes < 0 {
		minutes = 0
	}
	return CalculatePrice(s.DeviceType, s.NormalizedPlayerCount(), minutes, s.HourlyRate)
}

// TotalCost sums SessionCost over all sessions. A session missing device
// info contributes zero and is flagged; one malformed row must not blank out
// a whole bill.
func (e *Engine) TotalCost(sessions []*model.Session) float64 {
	var total float64
	for _, s := range sessions {
		if !s.HasDevice() {
			id := ""
			if s != nil {
				id = s.ID
			}
			e.log.Warn("skipping session without device info", "sessionId", id)
			continue
		}
		total += e.SessionCost(s)
	}
	return total
}

// elapsedMinutes clamps clock skew to zero rather than letting a bad start
// time turn into a negative charge.
func elapsedMinutes(start, now time.Time) int {
	d := now.Sub(start)
	if d < 0 {
		return 0
	}
	return int(d.Minutes())
}
