package stores

import (
	"sync"
	"time"
	"warbler/helpers"
	"warbler/models"
)

// MemorySessionStore holds sessions in process memory. Sessions expire
// after the configured duration or after maxIdle without activity.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]models.Session
	duration time.Duration
	maxIdle  time.Duration
	now      func() time.Time
}

func NewMemorySessionStore(duration, maxIdle time.Duration) *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]models.Session),
		duration: duration,
		maxIdle:  maxIdle,
		now:      time.Now,
	}
}

func (s *MemorySessionStore) Create(userID int) models.Session {
	now := s.now()
	session := models.Session{
		ID:           helpers.GenerateID(16),
		UserID:       userID,
		CreatedAt:    now,
		ExpiresAt:    now.Add(s.duration),
		LastActivity: now,
	}

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	return session
}

func (s *MemorySessionStore) Get(id string) (models.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, exists := s.sessions[id]
	if !exists || s.stale(session, s.now()) {
		return models.Session{}, false
	}
	session.Flashes = append([]models.Flash(nil), session.Flashes...)
	return session, true
}

func (s *MemorySessionStore) stale(session models.Session, now time.Time) bool {
	if session.Expired(now) {
		return true
	}
	return s.maxIdle > 0 && now.Sub(session.LastActivity) > s.maxIdle
}

func (s *MemorySessionStore) update(id string, fn func(*models.Session)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, exists := s.sessions[id]
	if !exists {
		return false
	}
	fn(&session)
	s.sessions[id] = session
	return true
}

// SetUser logs a user into (or, with zero, out of) an existing session.
func (s *MemorySessionStore) SetUser(id string, userID int) bool {
	return s.update(id, func(session *models.Session) { session.UserID = userID })
}

func (s *MemorySessionStore) AddFlash(id string, flash models.Flash) bool {
	return s.update(id, func(session *models.Session) {
		session.Flashes = append(session.Flashes, flash)
	})
}

func (s *MemorySessionStore) PopFlashes(id string) []models.Flash {
	var flashes []models.Flash
	s.update(id, func(session *models.Session) {
		flashes = session.Flashes
		session.Flashes = nil
	})
	return flashes
}

func (s *MemorySessionStore) Touch(id string) {
	now := s.now()
	s.update(id, func(session *models.Session) { session.LastActivity = now })
}

func (s *MemorySessionStore) Delete(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

// Cleanup drops expired and idle sessions and returns how many were removed.
func (s *MemorySessionStore) Cleanup(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, session := range s.sessions {
		if s.stale(session, now) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// UserIDs lists the distinct users with a live session.
func (s *MemorySessionStore) UserIDs() []int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.now()
	seen := make(map[int]bool)
	var ids []int
	for _, session := range s.sessions {
		if session.UserID > 0 && !s.stale(session, now) && !seen[session.UserID] {
			seen[session.UserID] = true
			ids = append(ids, session.UserID)
		}
	}
	return ids
}
