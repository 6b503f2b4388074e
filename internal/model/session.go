package model

import (
	"math"
	"time"
)

type SessionStatus string

const (
	SessionActive SessionStatus = "ACTIVE"
	SessionEnded  SessionStatus = "ENDED"
)

// Session is one device rental. Sessions are grouped under a customer token
// for billing.
type Session struct {
	ID          string        `json:"id" bson:"_id,omitempty"`
	Token       string        `json:"token" bson:"token"`
	DeviceID    string        `json:"deviceId" bson:"deviceId"`
	DeviceType  DeviceType    `json:"deviceType" bson:"deviceType"`
	DeviceName  string        `json:"deviceName" bson:"deviceName"`
	PlayerCount int           `json:"playerCount" bson:"playerCount"`
	Status      SessionStatus `json:"status" bson:"status"`
	StartedAt   time.Time     `json:"startedAt" bson:"startedAt"`
	EndedAt     *time.Time    `json:"endedAt,omitempty" bson:"endedAt,omitempty"`
	// Duration is the frozen elapsed minutes, written exactly once when the
	// session ends and never recomputed afterward.
	Duration int `json:"duration" bson:"duration"`
	// Cost caches the price computed at end time. Once set on an ended
	// session it is authoritative.
	Cost *float64 `json:"cost,omitempty" bson:"cost,omitempty"`
	// HourlyRate is copied from the device at start so the fallback rate
	// survives device edits.
	HourlyRate float64 `json:"hourlyRate" bson:"hourlyRate"`
	Billed     bool    `json:"billed" bson:"billed"`
}

// StoredCost returns the frozen cost and whether it is usable. Missing,
// non-finite or negative values do not count; pricing recomputes instead of
// propagating them into a bill.
func (s *Session) StoredCost() (float64, bool) {
	if s.Cost == nil {
		return 0, false
	}
	c := *s.Cost
	if math.IsNaN(c) || math.IsInf(c, 0) || c < 0 {
		return 0, false
	}
	return c, true
}

// NormalizedPlayerCount clamps the player count to at least one seat.
func (s *Session) NormalizedPlayerCount() int {
	if s.PlayerCount < 1 {
		return 1
	}
	return s.PlayerCount
}

// HasDevice reports whether the session carries enough device info to be
// priced at all.
func (s *Session) HasDevice() bool {
	return s != nil && s.DeviceType != ""
}
