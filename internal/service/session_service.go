package service

import (
	"context"
	"fmt"

	"gamedesk/internal/cache"
	"gamedesk/internal/model"
	"gamedesk/internal/pricing"
	"gamedesk/internal/repository"
	"gamedesk/pkg/logger"
)

// SessionWithCost is a session row plus its current price, as shown in the
// floor and token tables. For an active session the cost ticks with the
// clock; for an ended one it is the frozen value.
type SessionWithCost struct {
	*model.Session
	CurrentCost float64 `json:"currentCost"`
}

// SessionService serves session reads with live pricing attached
type SessionService struct {
	sessionRepo  repository.SessionRepo
	sessionCache cache.SessionCache
	floorCache   cache.FloorCache
	engine       *pricing.Engine
	log          logger.Logger
}

// NewSessionService creates a new session service
func NewSessionService(
	sessionRepo repository.SessionRepo,
	sessionCache cache.SessionCache,
	floorCache cache.FloorCache,
	engine *pricing.Engine,
	log logger.Logger,
) *SessionService {
	return &SessionService{
		sessionRepo:  sessionRepo,
		sessionCache: sessionCache,
		floorCache:   floorCache,
		engine:       engine,
		log:          log,
	}
}

// GetSession retrieves a session, cache first
func (s *SessionService) GetSession(ctx context.Context, id string) (*model.Session, error) {
	if cached, err := s.sessionCache.Get(ctx, id); err == nil && cached != nil {
		return cached, nil
	} else if err != nil {
		s.log.Warn("session cache read failed", "sessionId", id, "error", err)
	}

	session, err := s.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	if session == nil {
		return nil, nil
	}

	if err := s.sessionCache.Set(ctx, session); err != nil {
		s.log.Warn("session cache write failed", "sessionId", id, "error", err)
	}
	return session, nil
}

// SessionCost returns the current price of one session
func (s *SessionService) SessionCost(ctx context.Context, id string) (*SessionWithCost, error) {
	session, err := s.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, nil
	}
	return &SessionWithCost{
		Session:     session,
		CurrentCost: s.engine.SessionCost(session),
	}, nil
}

// ListByToken returns all sessions billed under a customer token, each with
// its current cost
func (s *SessionService) ListByToken(ctx context.Context, token string) ([]*SessionWithCost, error) {
	sessions, err := s.sessionRepo.ListByToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions for token %s: %w", token, err)
	}
	return s.withCosts(sessions), nil
}

// ActiveFloor returns the sessions currently running, oldest first. The
// floor ZSET is the fast path; on a cache miss or error it falls back to the
// repository.
func (s *SessionService) ActiveFloor(ctx context.Context) ([]*SessionWithCost, error) {
	ids, err := s.floorCache.ActiveIDs(ctx)
	if err != nil || len(ids) == 0 {
		if err != nil {
			s.log.Warn("floor cache read failed, falling back to store", "error", err)
		}
		sessions, err := s.sessionRepo.ListActive(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list active sessions: %w", err)
		}
		return s.withCosts(sessions), nil
	}

	rows := make([]*SessionWithCost, 0, len(ids))
	for _, id := range ids {
		session, err := s.GetSession(ctx, id)
		if err != nil || session == nil {
			s.log.Warn("active session missing from store, pruning", "sessionId", id)
			if rmErr := s.floorCache.Remove(ctx, id); rmErr != nil {
				s.log.Warn("floor cache prune failed", "sessionId", id, "error", rmErr)
			}
			continue
		}
		if session.Status != model.SessionActive {
			if rmErr := s.floorCache.Remove(ctx, id); rmErr != nil {
				s.log.Warn("floor cache prune failed", "sessionId", id, "error", rmErr)
			}
			continue
		}
		rows = append(rows, &SessionWithCost{
			Session:     session,
			CurrentCost: s.engine.SessionCost(session),
		})
	}
	return rows, nil
}

func (s *SessionService) withCosts(sessions []*model.Session) []*SessionWithCost {
	rows := make([]*SessionWithCost, 0, len(sessions))
	for _, session := range sessions {
		rows = append(rows, &SessionWithCost{
			Session:     session,
			CurrentCost: s.engine.SessionCost(session),
		})
	}
	return rows
}
