package dashboard

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/healthsync/healthsync/internal/domain"
)

// Session is one open dashboard.
type Session struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	Controller *Controller
	CreatedAt  time.Time

	lastUsed time.Time // guarded by Store.mu
}

// Store owns the open dashboard sessions. It is created at server start
// and handed to the dashboard handler.
type Store struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session

	source Source
	logger *zap.Logger
	now    func() time.Time
}

func NewStore(source Source, logger *zap.Logger) *Store {
	return &Store{
		sessions: make(map[uuid.UUID]*Session),
		source:   source,
		logger:   logger,
		now:      time.Now,
	}
}

// Create opens a session for userID and loads its initial tab.
func (s *Store) Create(ctx context.Context, userID uuid.UUID) *Session {
	sess := &Session{
		ID:         uuid.New(),
		UserID:     userID,
		Controller: NewController(userID, s.source, s.logger),
		CreatedAt:  s.now(),
	}
	sess.lastUsed = sess.CreatedAt

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	s.logger.Info("dashboard session opened",
		zap.String("session_id", sess.ID.String()),
		zap.String("user_id", userID.String()),
	)

	sess.Controller.Start(ctx)
	return sess
}

// Get returns the session and marks it as used.
func (s *Store) Get(id uuid.UUID) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrSessionNotFound, id)
	}
	sess.lastUsed = s.now()
	return sess, nil
}

func (s *Store) Delete(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return fmt.Errorf("%w: %s", domain.ErrSessionNotFound, id)
	}
	delete(s.sessions, id)
	return nil
}

// Prune closes sessions last used before cutoff and returns how many were removed.
func (s *Store) Prune(cutoff time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for id, sess := range s.sessions {
		if sess.lastUsed.Before(cutoff) {
			delete(s.sessions, id)
			n++
		}
	}
	return n
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
