package assistant

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/ternarybob/arbor"
)

// Session is the per-conversation state: its bounded history, the lock that
// serializes chat turns, and the cancel handle for an in-flight transport
// call. Sessions are explicit instances, never process-wide singletons.
type Session struct {
	ID      string
	History *ConversationHistory

	// mu serializes Respond for this session; history is mutated on both
	// sides of the transport call and interleaving would corrupt turn order.
	mu sync.Mutex

	stateMu  sync.Mutex
	cancel   context.CancelFunc
	lastUsed time.Time
}

// cancelInFlight aborts the session's in-flight transport call, if any.
func (s *Session) cancelInFlight() {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

func (s *Session) setCancel(cancel context.CancelFunc) {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	s.cancel = cancel
}

func (s *Session) clearCancel() {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	s.cancel = nil
}

func (s *Session) touch() {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	s.lastUsed = time.Now()
}

// LastUsed reports when the session last completed a turn.
func (s *Session) LastUsed() time.Time {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	return s.lastUsed
}

// SessionManager tracks conversation sessions and prunes idle ones on a
// cron schedule.
type SessionManager struct {
	mu         sync.RWMutex
	sessions   map[string]*Session
	maxHistory int
	logger     arbor.ILogger
	cron       *cron.Cron
}

// NewSessionManager creates a session manager whose sessions cap history at
// 2*maxHistory turns.
func NewSessionManager(logger arbor.ILogger, maxHistory int) *SessionManager {
	return &SessionManager{
		sessions:   make(map[string]*Session),
		maxHistory: maxHistory,
		logger:     logger,
	}
}

// GetOrCreate returns the session for id, creating it if needed. An empty
// id allocates a fresh session with a generated ID.
func (m *SessionManager) GetOrCreate(id string) *Session {
	if id == "" {
		id = uuid.NewString()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if session, ok := m.sessions[id]; ok {
		return session
	}

	session := &Session{
		ID:       id,
		History:  NewConversationHistory(m.maxHistory),
		lastUsed: time.Now(),
	}
	m.sessions[id] = session

	m.logger.Debug().Str("session_id", id).Msg("Conversation session created")
	return session
}

// Get returns the session for id, or nil when unknown.
func (m *SessionManager) Get(id string) *Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sessions[id]
}

// Remove drops a session, cancelling any in-flight call.
func (m *SessionManager) Remove(id string) {
	m.mu.Lock()
	session := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if session != nil {
		session.cancelInFlight()
	}
}

// Count returns the number of live sessions.
func (m *SessionManager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// PruneIdle removes sessions idle for longer than maxIdle and returns how
// many were dropped.
func (m *SessionManager) PruneIdle(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)

	m.mu.Lock()
	var stale []*Session
	for id, session := range m.sessions {
		if session.LastUsed().Before(cutoff) {
			stale = append(stale, session)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, session := range stale {
		session.cancelInFlight()
	}

	if len(stale) > 0 {
		m.logger.Info().
			Int("pruned", len(stale)).
			Dur("max_idle", maxIdle).
			Msg("Pruned idle conversation sessions")
	}

	return len(stale)
}

// StartPruning schedules PruneIdle on the given cron expression.
func (m *SessionManager) StartPruning(schedule string, maxIdle time.Duration) error {
	c := cron.New()
	if _, err := c.AddFunc(schedule, func() {
		m.PruneIdle(maxIdle)
	}); err != nil {
		return err
	}
	c.Start()
	m.cron = c

	m.logger.Info().
		Str("schedule", schedule).
		Dur("max_idle", maxIdle).
		Msg("Session pruning scheduled")
	return nil
}

// StopPruning stops the pruning schedule.
func (m *SessionManager) StopPruning() {
	if m.cron != nil {
		m.cron.Stop()
		m.cron = nil
	}
}
