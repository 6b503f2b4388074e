package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"gamedesk/internal/model"
	"gamedesk/pkg/logger"
)

func newTestEngine(at time.Time) *Engine {
	return NewEngine(&TestClock{CurrentTime: at}, logger.NewNop())
}

func floatPtr(v float64) *float64 { return &v }

func TestRoundTimeToCharge(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		minutes int
		want    int
	}{
		{"zero", 0, 0},
		{"negative clamps", -5, 0},
		{"free tier upper edge", 7, 0},
		{"one past free tier", 8, 15},
		{"first block upper edge", 22, 15},
		{"second block start", 23, 30},
		{"second block upper edge", 37, 30},
		{"third block start", 38, 45},
		{"third block upper edge", 52, 45},
		{"fourth block start", 53, 60},
		{"fourth block upper edge", 67, 60},
		{"past the hour", 68, 75},
		{"two hours exact blocks", 127, 120},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, RoundTimeToCharge(tc.minutes))
		})
	}
}

func TestRoundTimeToChargeBands(t *testing.T) {
	t.Parallel()

	bands := []struct {
		lo, hi, want int
	}{
		{0, 7, 0},
		{8, 22, 15},
		{23, 37, 30},
		{38, 52, 45},
		{53, 67, 60},
	}
	for _, b := range bands {
		for m := b.lo; m <= b.hi; m++ {
			assert.Equalf(t, b.want, RoundTimeToCharge(m), "minutes=%d", m)
		}
	}
}

func TestRoundTimeToChargeMonotonic(t *testing.T) {
	t.Parallel()

	prev := RoundTimeToCharge(0)
	for m := 1; m <= 300; m++ {
		cur := RoundTimeToCharge(m)
		assert.GreaterOrEqualf(t, cur, prev, "rounding decreased at minutes=%d", m)
		prev = cur
	}
}

func TestCalculatePriceFrameFlatRate(t *testing.T) {
	t.Parallel()

	for _, players := range []int{1, 2, 3, 5, 10} {
		for _, minutes := range []int{0, 8, 61, 500} {
			got := CalculatePrice(model.DeviceFrame, players, minutes, 0)
			assert.Equalf(t, 50.0*float64(players), got, "players=%d minutes=%d", players, minutes)
		}
	}
	// a zero player count still bills one frame seat
	assert.Equal(t, 50.0, CalculatePrice(model.DeviceFrame, 0, 30, 0))
}

func TestCalculatePriceBandBoundaries(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		deviceType model.DeviceType
		players    int
		minutes    int
		want       float64
	}{
		{"ps4 solo free tier", model.DevicePS4, 1, 7, 0},
		{"ps4 solo first block", model.DevicePS4, 1, 8, 25},
		{"ps4 solo 15 actual stays in block", model.DevicePS4, 1, 15, 25},
		{"ps4 solo crosses to half hour", model.DevicePS4, 1, 23, 45},
		{"ps4 solo full hour band", model.DevicePS4, 1, 60, 75},
		{"ps4 duo tier", model.DevicePS4, 2, 8, 30},
		{"ps4 party tier", model.DevicePS4, 3, 8, 40},
		{"ps4 oversized party uses last tier", model.DevicePS4, 8, 8, 40},
		{"ps5 solo three quarter band", model.DevicePS5, 1, 45, 85},
		{"racing ignores player count", model.DeviceRacing, 4, 8, 40},
		{"vr full hour", model.DeviceVR, 1, 60, 170},
		{"vr racing first block", model.DeviceVRRacing, 1, 10, 60},
		{"billiards per table", model.DeviceBilliards, 6, 30, 45},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := CalculatePrice(tc.deviceType, tc.players, tc.minutes, 0)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCalculatePriceNoInterpolationWithinBand(t *testing.T) {
	t.Parallel()

	// every actual duration rounding into the same block costs the same
	for m := 8; m <= 22; m++ {
		assert.Equal(t, 25.0, CalculatePrice(model.DevicePS4, 1, m, 0))
	}
	// and the next block jumps straight to its entry
	assert.Equal(t, 45.0, CalculatePrice(model.DevicePS4, 1, 23, 0))
}

func TestCalculatePriceLinearPastHour(t *testing.T) {
	t.Parallel()

	// 68 actual minutes bill 75, priced hourly*(75/60)
	assert.Equal(t, 75.0*75.0/60.0, CalculatePrice(model.DevicePS4, 1, 68, 0))
	assert.Equal(t, 170.0*90.0/60.0, CalculatePrice(model.DeviceVR, 1, 85, 0))
	// two full hours
	assert.Equal(t, 130.0*120.0/60.0, CalculatePrice(model.DeviceRacing, 1, 120, 0))
}

func TestCalculatePriceFallbackUnmappedType(t *testing.T) {
	t.Parallel()

	// 30 actual minutes bill 30; linear at the stored hourly rate
	got := CalculatePrice(model.DeviceType("KARAOKE"), 2, 30, 90)
	assert.Equal(t, 90.0/60*30, got)

	// the fallback never goes negative or non-finite
	assert.Equal(t, 0.0, CalculatePrice(model.DeviceType("KARAOKE"), 1, 30, -10))
	assert.Equal(t, 0.0, CalculatePrice(model.DeviceType("KARAOKE"), 1, 5, 90))
}

func TestSessionCostPrefersFrozenCost(t *testing.T) {
	t.Parallel()

	e := newTestEngine(time.Now())
	s := &model.Session{
		DeviceType:  model.DevicePS5,
		PlayerCount: 1,
		Status:      model.SessionEnded,
		Duration:    60,
		Cost:        floatPtr(42), // deliberately disagrees with the table
	}
	assert.Equal(t, 42.0, e.SessionCost(s))
}

func TestSessionCostEndedWithoutStoredCost(t *testing.T) {
	t.Parallel()

	e := newTestEngine(time.Now())

	tests := []struct {
		name string
		cost *float64
	}{
		{"missing", nil},
		{"negative", floatPtr(-3)},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			s := &model.Session{
				DeviceType:  model.DevicePS4,
				PlayerCount: 1,
				Status:      model.SessionEnded,
				Duration:    30,
				Cost:        tc.cost,
			}
			assert.Equal(t, 45.0, e.SessionCost(s))
		})
	}
}

func TestSessionCostEndedSixtyFiveMinutes(t *testing.T) {
	t.Parallel()

	// 65 actual minutes round to 60 billed, so the price comes from the
	// 60-minute band, not the linear branch.
	e := newTestEngine(time.Now())
	s := &model.Session{
		DeviceType:  model.DeviceVR,
		PlayerCount: 1,
		Status:      model.SessionEnded,
		Duration:    65,
	}
	assert.Equal(t, 170.0, e.SessionCost(s))
}

func TestSessionCostActiveUsesClock(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC)
	s := &model.Session{
		DeviceType:  model.DevicePS4,
		PlayerCount: 1,
		Status:      model.SessionActive,
		StartedAt:   start,
	}

	// 8 elapsed minutes bill 15 and price the first block
	e := newTestEngine(start.Add(8 * time.Minute))
	assert.Equal(t, 25.0, e.SessionCost(s))

	// within the free tier the session is still free
	e = newTestEngine(start.Add(5 * time.Minute))
	assert.Equal(t, 0.0, e.SessionCost(s))
}

func TestSessionCostActiveMonotonic(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC)
	s := &model.Session{
		DeviceType:  model.DeviceVRRacing,
		PlayerCount: 1,
		Status:      model.SessionActive,
		StartedAt:   start,
	}

	prev := 0.0
	for m := 0; m <= 180; m += 3 {
		e := newTestEngine(start.Add(time.Duration(m) * time.Minute))
		cur := e.SessionCost(s)
		assert.GreaterOrEqualf(t, cur, prev, "cost decreased at elapsed=%dm", m)
		prev = cur
	}
}

func TestSessionCostClockSkewClampsToZero(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC)
	s := &model.Session{
		DeviceType:  model.DevicePS4,
		PlayerCount: 1,
		Status:      model.SessionActive,
		StartedAt:   start,
	}
	e := newTestEngine(start.Add(-10 * time.Minute))
	assert.Equal(t, 0.0, e.SessionCost(s))
}

func TestSessionCostFrameIgnoresStatusAndStoredCost(t *testing.T) {
	t.Parallel()

	e := newTestEngine(time.Now())
	s := &model.Session{
		DeviceType:  model.DeviceFrame,
		PlayerCount: 3,
		Status:      model.SessionEnded,
		Duration:    120,
		Cost:        floatPtr(9999),
	}
	assert.Equal(t, 150.0, e.SessionCost(s))
}

func TestTotalCostEmpty(t *testing.T) {
	t.Parallel()

	e := newTestEngine(time.Now())
	assert.Equal(t, 0.0, e.TotalCost(nil))
	assert.Equal(t, 0.0, e.TotalCost([]*model.Session{}))
}

func TestTotalCostSkipsMalformedSessions(t *testing.T) {
	t.Parallel()

	e := newTestEngine(time.Now())
	valid := &model.Session{
		DeviceType:  model.DevicePS4,
		PlayerCount: 1,
		Status:      model.SessionEnded,
		Duration:    30,
	}
	frame := &model.Session{
		DeviceType:  model.DeviceFrame,
		PlayerCount: 2,
		Status:      model.SessionEnded,
	}
	malformed := &model.Session{Status: model.SessionEnded, Duration: 45}

	total := e.TotalCost([]*model.Session{valid, malformed, nil, frame})
	assert.Equal(t, 45.0+100.0, total)
}

func TestRateCardCoversAllTimedDeviceTypes(t *testing.T) {
	t.Parallel()

	entries := RateCard()
	seen := map[model.DeviceType]bool{}
	for _, e := range entries {
		seen[e.DeviceType] = true
		assert.Positive(t, e.Quarter)
		assert.GreaterOrEqual(t, e.Half, e.Quarter)
		assert.GreaterOrEqual(t, e.ThreeQ, e.Half)
		assert.GreaterOrEqual(t, e.Hour, e.ThreeQ)
		// the linear branch stays continuous with the table at the hour mark
		assert.Equal(t, e.Hour, e.Hourly)
	}
	for _, dt := range []model.DeviceType{
		model.DevicePS4, model.DevicePS5, model.DeviceRacing,
		model.DeviceVR, model.DeviceVRRacing, model.DeviceBilliards,
	} {
		assert.Truef(t, seen[dt], "rate card missing %s", dt)
	}
}
