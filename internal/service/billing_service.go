package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"gamedesk/internal/model"
	"gamedesk/internal/pricing"
	"gamedesk/internal/repository"
	"gamedesk/pkg/logger"
)

var (
	ErrNoSessionsForToken = errors.New("no unbilled sessions for token")
	ErrBillNotFound       = errors.New("bill not found")
	ErrBillAlreadyPaid    = errors.New("bill already settled")
)

// BillingService turns a token's sessions into a bill and settles it. The
// amount written at generation time is a snapshot; settlement may override
// it with an operator-entered corrected amount but never recomputes it.
type BillingService struct {
	billRepo    repository.BillRepo
	sessionRepo repository.SessionRepo
	engine      *pricing.Engine
	log         logger.Logger
	broadcaster Broadcaster
}

// NewBillingService creates a new billing service
func NewBillingService(
	billRepo repository.BillRepo,
	sessionRepo repository.SessionRepo,
	engine *pricing.Engine,
	log logger.Logger,
) *BillingService {
	return &BillingService{
		billRepo:    billRepo,
		sessionRepo: sessionRepo,
		engine:      engine,
		log:         log,
	}
}

// SetBroadcaster injects the WebSocket hub
func (s *BillingService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// GenerateBill snapshots the total of a token's unbilled sessions into a new
// open bill
func (s *BillingService) GenerateBill(ctx context.Context, token string) (*model.Bill, error) {
	sessions, err := s.sessionRepo.ListUnbilledByToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to load sessions for token %s: %w", token, err)
	}
	if len(sessions) == 0 {
		return nil, ErrNoSessionsForToken
	}

	ids := make([]string, 0, len(sessions))
	for _, session := range sessions {
		ids = append(ids, session.ID)
	}

	bill := &model.Bill{
		ID:         uuid.New().String(),
		Token:      token,
		SessionIDs: ids,
		Sessions:   sessions,
		Amount:     s.engine.TotalCost(sessions),
		Status:     model.BillOpen,
		CreatedAt:  time.Now(),
	}

	if err := s.billRepo.Create(ctx, bill); err != nil {
		return nil, fmt.Errorf("failed to create bill: %w", err)
	}
	if err := s.sessionRepo.MarkBilled(ctx, ids); err != nil {
		return nil, fmt.Errorf("failed to mark sessions billed: %w", err)
	}

	s.log.Info("bill generated", "billId", bill.ID, "token", token, "amount", bill.Amount, "sessions", len(ids))
	return bill, nil
}

// GetBill retrieves a bill by ID
func (s *BillingService) GetBill(ctx context.Context, id string) (*model.Bill, error) {
	bill, err := s.billRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get bill: %w", err)
	}
	return bill, nil
}

// ListUnpaid returns all open bills, oldest first
func (s *BillingService) ListUnpaid(ctx context.Context) ([]*model.Bill, error) {
	bills, err := s.billRepo.ListUnpaid(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list unpaid bills: %w", err)
	}
	return bills, nil
}

// SettleBill marks a bill paid, recording the operator's corrected amount
// when one was entered at the till
func (s *BillingService) SettleBill(ctx context.Context, id string, correctedAmount *float64) (*model.Bill, error) {
	bill, err := s.billRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get bill: %w", err)
	}
	if bill == nil {
		return nil, ErrBillNotFound
	}
	if bill.Status == model.BillPaid {
		return nil, ErrBillAlreadyPaid
	}

	now := time.Now()
	if err := s.billRepo.Settle(ctx, id, correctedAmount, now); err != nil {
		return nil, fmt.Errorf("failed to settle bill: %w", err)
	}

	bill.Status = model.BillPaid
	bill.SettledAt = &now
	if correctedAmount != nil {
		bill.CorrectedAmount = correctedAmount
		s.log.Info("bill settled with correction", "billId", id, "amount", bill.Amount, "corrected", *correctedAmount)
	} else {
		s.log.Info("bill settled", "billId", id, "amount", bill.Amount)
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastToStaff("bill_settled", bill)
	}
	return bill, nil
}
