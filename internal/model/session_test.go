package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSessionStoredCost(t *testing.T) {
	t.Parallel()

	valid := 37.5
	nan := math.NaN()
	inf := math.Inf(1)
	neg := -1.0
	zero := 0.0

	tests := []struct {
		name   string
		cost   *float64
		want   float64
		wantOK bool
	}{
		{"missing", nil, 0, false},
		{"valid", &valid, 37.5, true},
		{"zero is a legitimate frozen price", &zero, 0, true},
		{"nan", &nan, 0, false},
		{"infinite", &inf, 0, false},
		{"negative", &neg, 0, false},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			s := &Session{Cost: tc.cost}
			got, ok := s.StoredCost()
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestSessionNormalizedPlayerCount(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1, (&Session{PlayerCount: 0}).NormalizedPlayerCount())
	assert.Equal(t, 1, (&Session{PlayerCount: -2}).NormalizedPlayerCount())
	assert.Equal(t, 4, (&Session{PlayerCount: 4}).NormalizedPlayerCount())
}

func TestSessionHasDevice(t *testing.T) {
	t.Parallel()

	var missing *Session
	assert.False(t, missing.HasDevice())
	assert.False(t, (&Session{}).HasDevice())
	assert.True(t, (&Session{DeviceType: DevicePS4}).HasDevice())
}

func TestBillPayable(t *testing.T) {
	t.Parallel()

	corrected := 180.0
	b := &Bill{Amount: 210}
	assert.Equal(t, 210.0, b.Payable())
	b.CorrectedAmount = &corrected
	assert.Equal(t, 180.0, b.Payable())
}
