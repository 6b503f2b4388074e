package model

import "time"

type BillStatus string

const (
	BillOpen BillStatus = "OPEN"
	BillPaid BillStatus = "PAID"
)

// Bill aggregates the sessions billed under one token. Amount is a snapshot
// taken at generation time; it is never silently recomputed once persisted.
type Bill struct {
	ID         string     `json:"id" bson:"_id,omitempty"`
	Token      string     `json:"token" bson:"token"`
	SessionIDs []string   `json:"sessionIds" bson:"sessionIds"`
	Sessions   []*Session `json:"sessions,omitempty" bson:"sessions,omitempty"`
	Amount     float64    `json:"amount" bson:"amount"`
	// CorrectedAmount is an operator override entered at settlement. When
	// present it, not Amount, is the authoritative total.
	CorrectedAmount *float64   `json:"correctedAmount,omitempty" bson:"correctedAmount,omitempty"`
	Status          BillStatus `json:"status" bson:"status"`
	CreatedAt       time.Time  `json:"createdAt" bson:"createdAt"`
	SettledAt       *time.Time `json:"settledAt,omitempty" bson:"settledAt,omitempty"`
}

// Payable returns the amount actually owed.
func (b *Bill) Payable() float64 {
	if b.CorrectedAmount != nil {
		return *b.CorrectedAmount
	}
	return b.Amount
}
