package session

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/aknishi/studium/internal/content"
	"github.com/aknishi/studium/internal/inference"
	"github.com/aknishi/studium/internal/study"
)

var (
	ErrSessionNotFound     = errors.New("session not found")
	ErrGenerationInFlight  = errors.New("a generation is already in progress for this session")
	ErrNoGenerationPending = errors.New("no generation is in progress for this session")
)

// Session is the unit of state the server keeps per browser tab. All fields
// are owned by the Manager's lock; handlers read and write them only through
// Manager methods.
type Session struct {
	ID       string
	Profile  study.Profile
	Subject  string
	Units    []inference.SyllabusUnit
	Selection study.TopicSelection

	LastFormat content.Format
	LastResult content.Result

	// generation is a monotonically increasing token. A result produced by an
	// outdated generation is discarded instead of overwriting newer state.
	generation uint64
	inFlight   bool
}

// Manager holds every live session. Sessions never expire on their own;
// process restart drops them all, which matches the ownership model of the
// rest of the state.
type Manager struct {
	mutex    sync.Mutex
	sessions map[string]*Session
}

func NewManager() *Manager {
	return &Manager{
		sessions: map[string]*Session{},
	}
}

// Create registers a new session with the given profile and returns its ID.
func (m *Manager) Create(profile study.Profile) string {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	id := uuid.NewString()
	m.sessions[id] = &Session{
		ID:      id,
		Profile: profile,
	}
	return id
}

// Get returns a snapshot of the session. Mutations through the snapshot are
// not visible to other callers; use the Update methods instead.
func (m *Manager) Get(id string) (Session, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	session, ok := m.sessions[id]
	if !ok {
		return Session{}, ErrSessionNotFound
	}
	return *session, nil
}

// SetSubject records the subject and syllabus units extracted for it, and
// clears any selection made against a previous syllabus.
func (m *Manager) SetSubject(id string, subject string, units []inference.SyllabusUnit) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	session, ok := m.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}
	session.Subject = subject
	session.Units = units
	session.Selection = study.TopicSelection{}
	return nil
}

// SetSelection replaces the session's unit/topic selection.
func (m *Manager) SetSelection(id string, selection study.TopicSelection) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	session, ok := m.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}
	session.Selection = selection
	return nil
}

// BeginGeneration marks the session as having a generation in flight and
// returns the token that must accompany the eventual result. A second
// generation cannot start until the first completes or is abandoned.
func (m *Manager) BeginGeneration(id string) (uint64, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	session, ok := m.sessions[id]
	if !ok {
		return 0, ErrSessionNotFound
	}
	if session.inFlight {
		return 0, ErrGenerationInFlight
	}
	session.inFlight = true
	session.generation++
	return session.generation, nil
}

// CompleteGeneration stores the result produced under the given token.
// It reports whether the result was applied; a stale token means a newer
// generation superseded this one and the result is discarded.
func (m *Manager) CompleteGeneration(id string, token uint64, format content.Format, result content.Result) (bool, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	session, ok := m.sessions[id]
	if !ok {
		return false, ErrSessionNotFound
	}
	if token != session.generation {
		return false, nil
	}
	session.inFlight = false
	session.LastFormat = format
	session.LastResult = result
	return true, nil
}

// AbandonGeneration releases the in-flight slot after a failed generation
// without touching the last stored result.
func (m *Manager) AbandonGeneration(id string, token uint64) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	session, ok := m.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}
	if token != session.generation {
		return nil
	}
	if !session.inFlight {
		return ErrNoGenerationPending
	}
	session.inFlight = false
	return nil
}

// Delete drops a session. Unknown IDs are ignored.
func (m *Manager) Delete(id string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	delete(m.sessions, id)
}
