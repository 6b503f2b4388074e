package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gamedesk/internal/model"
	"gamedesk/internal/pricing"
	"gamedesk/pkg/logger"
)

type fakeSessionRepo struct {
	sessions map[string]*model.Session
}

func newFakeSessionRepo(sessions ...*model.Session) *fakeSessionRepo {
	r := &fakeSessionRepo{sessions: map[string]*model.Session{}}
	for _, s := range sessions {
		r.sessions[s.ID] = s
	}
	return r
}

func (r *fakeSessionRepo) Create(_ context.Context, s *model.Session) error {
	r.sessions[s.ID] = s
	return nil
}

func (r *fakeSessionRepo) GetByID(_ context.Context, id string) (*model.Session, error) {
	return r.sessions[id], nil
}

func (r *fakeSessionRepo) ListByToken(_ context.Context, token string) ([]*model.Session, error) {
	var out []*model.Session
	for _, s := range r.sessions {
		if s.Token == token {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSessionRepo) ListUnbilledByToken(_ context.Context, token string) ([]*model.Session, error) {
	var out []*model.Session
	for _, s := range r.sessions {
		if s.Token == token && !s.Billed {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSessionRepo) ListActive(_ context.Context) ([]*model.Session, error) {
	var out []*model.Session
	for _, s := range r.sessions {
		if s.Status == model.SessionActive {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSessionRepo) MarkBilled(_ context.Context, ids []string) error {
	for _, id := range ids {
		if s, ok := r.sessions[id]; ok {
			s.Billed = true
		}
	}
	return nil
}

type fakeBillRepo struct {
	bills map[string]*model.Bill
}

func newFakeBillRepo() *fakeBillRepo {
	return &fakeBillRepo{bills: map[string]*model.Bill{}}
}

func (r *fakeBillRepo) Create(_ context.Context, b *model.Bill) error {
	r.bills[b.ID] = b
	return nil
}

func (r *fakeBillRepo) GetByID(_ context.Context, id string) (*model.Bill, error) {
	return r.bills[id], nil
}

func (r *fakeBillRepo) ListUnpaid(_ context.Context) ([]*model.Bill, error) {
	var out []*model.Bill
	for _, b := range r.bills {
		if b.Status == model.BillOpen {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBillRepo) Settle(_ context.Context, id string, correctedAmount *float64, settledAt time.Time) error {
	b := r.bills[id]
	b.Status = model.BillPaid
	b.SettledAt = &settledAt
	if correctedAmount != nil {
		b.CorrectedAmount = correctedAmount
	}
	return nil
}

func newBillingFixture(sessions ...*model.Session) (*BillingService, *fakeSessionRepo, *fakeBillRepo) {
	sessionRepo := newFakeSessionRepo(sessions...)
	billRepo := newFakeBillRepo()
	engine := pricing.NewEngine(&pricing.TestClock{CurrentTime: time.Now()}, logger.NewNop())
	svc := NewBillingService(billRepo, sessionRepo, engine, logger.NewNop())
	return svc, sessionRepo, billRepo
}

func endedSession(id, token string, deviceType model.DeviceType, duration int, cost *float64) *model.Session {
	return &model.Session{
		ID:          id,
		Token:       token,
		DeviceType:  deviceType,
		PlayerCount: 1,
		Status:      model.SessionEnded,
		Duration:    duration,
		Cost:        cost,
	}
}

func TestGenerateBillSnapshotsTotal(t *testing.T) {
	t.Parallel()

	frozen := 42.0
	svc, sessionRepo, _ := newBillingFixture(
		endedSession("s1", "T-9", model.DevicePS4, 30, nil),      // 45 from the table
		endedSession("s2", "T-9", model.DevicePS5, 60, &frozen),  // frozen cost wins
		endedSession("s3", "other", model.DeviceVR, 60, nil),     // different token
	)

	bill, err := svc.GenerateBill(context.Background(), "T-9")
	require.NoError(t, err)
	assert.Equal(t, "T-9", bill.Token)
	assert.Equal(t, 45.0+42.0, bill.Amount)
	assert.Equal(t, model.BillOpen, bill.Status)
	assert.Len(t, bill.SessionIDs, 2)

	// billed sessions do not show up on the next bill
	assert.True(t, sessionRepo.sessions["s1"].Billed)
	assert.True(t, sessionRepo.sessions["s2"].Billed)
	assert.False(t, sessionRepo.sessions["s3"].Billed)

	_, err = svc.GenerateBill(context.Background(), "T-9")
	assert.ErrorIs(t, err, ErrNoSessionsForToken)
}

func TestGenerateBillNoSessions(t *testing.T) {
	t.Parallel()

	svc, _, _ := newBillingFixture()
	_, err := svc.GenerateBill(context.Background(), "T-1")
	assert.ErrorIs(t, err, ErrNoSessionsForToken)
}

func TestGenerateBillMalformedSessionContributesZero(t *testing.T) {
	t.Parallel()

	svc, _, _ := newBillingFixture(
		endedSession("s1", "T-2", model.DevicePS4, 30, nil),
		endedSession("s2", "T-2", "", 45, nil), // no device info
	)

	bill, err := svc.GenerateBill(context.Background(), "T-2")
	require.NoError(t, err)
	assert.Equal(t, 45.0, bill.Amount)
}

func TestSettleBill(t *testing.T) {
	t.Parallel()

	svc, _, _ := newBillingFixture(
		endedSession("s1", "T-3", model.DeviceBilliards, 60, nil), // 85
	)
	bill, err := svc.GenerateBill(context.Background(), "T-3")
	require.NoError(t, err)

	settled, err := svc.SettleBill(context.Background(), bill.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, model.BillPaid, settled.Status)
	assert.Equal(t, 85.0, settled.Payable())
	assert.NotNil(t, settled.SettledAt)

	_, err = svc.SettleBill(context.Background(), bill.ID, nil)
	assert.ErrorIs(t, err, ErrBillAlreadyPaid)
}

func TestSettleBillWithCorrectedAmount(t *testing.T) {
	t.Parallel()

	svc, _, _ := newBillingFixture(
		endedSession("s1", "T-4", model.DeviceVR, 60, nil), // 170
	)
	bill, err := svc.GenerateBill(context.Background(), "T-4")
	require.NoError(t, err)

	corrected := 150.0
	settled, err := svc.SettleBill(context.Background(), bill.ID, &corrected)
	require.NoError(t, err)
	assert.Equal(t, 170.0, settled.Amount) // snapshot untouched
	assert.Equal(t, 150.0, settled.Payable())
}

func TestSettleBillNotFound(t *testing.T) {
	t.Parallel()

	svc, _, _ := newBillingFixture()
	_, err := svc.SettleBill(context.Background(), "missing", nil)
	assert.ErrorIs(t, err, ErrBillNotFound)
}
