package repositories

import (
	"context"
	"sync"
	"time"

	"github.com/yigit/gpacalc/internal/app/models"
	"github.com/yigit/gpacalc/internal/pkg/apperrors"
)

// MemorySessionRepository keeps sessions in process memory
type MemorySessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]*models.Session
	now      func() time.Time
}

// NewMemorySessionRepository creates an empty in-memory session store
func NewMemorySessionRepository() *MemorySessionRepository {
	return &MemorySessionRepository{
		sessions: map[string]*models.Session{},
		now:      time.Now,
	}
}

// Create stores a new session
func (r *MemorySessionRepository) Create(_ context.Context, session *models.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[session.ID]; ok {
		return apperrors.ErrSessionAlreadyExists
	}
	r.sessions[session.ID] = session.Clone()
	return nil
}

// GetByID returns a copy of a live session
func (r *MemorySessionRepository) GetByID(_ context.Context, id string) (*models.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	if !ok || s.Expired(r.now()) {
		return nil, apperrors.ErrSessionNotFound
	}
	return s.Clone(), nil
}

// Update replaces a stored session
func (r *MemorySessionRepository) Update(_ context.Context, session *models.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[session.ID]; !ok {
		return apperrors.ErrSessionNotFound
	}
	r.sessions[session.ID] = session.Clone()
	return nil
}

// Delete removes a session
func (r *MemorySessionRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return apperrors.ErrSessionNotFound
	}
	delete(r.sessions, id)
	return nil
}

// DeleteExpired purges every session expired at now
func (r *MemorySessionRepository) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, s := range r.sessions {
		if s.Expired(now) {
			delete(r.sessions, id)
			n++
		}
	}
	return n, nil
}

// Len returns the number of stored sessions, expired or not
func (r *MemorySessionRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
