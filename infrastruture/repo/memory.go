package repo

import (
	"slices"
	"sync"

	dmn "github.com/beka-birhanu/vinom-mouse/domain"
	"github.com/google/uuid"
)

// MemorySessionRepo keeps sessions in process memory. It backs the CLI and
// the API when no database is configured.
type MemorySessionRepo struct {
	sessions map[uuid.UUID]dmn.Session
	sync.RWMutex
}

// NewMemorySessionRepo creates an empty MemorySessionRepo.
func NewMemorySessionRepo() *MemorySessionRepo {
	return &MemorySessionRepo{sessions: make(map[uuid.UUID]dmn.Session)}
}

// Save stores a copy of session.
func (m *MemorySessionRepo) Save(session *dmn.Session) error {
	m.Lock()
	defer m.Unlock()

	m.sessions[session.ID] = clone(*session)
	return nil
}

// ByID returns a copy of the session with the given id.
func (m *MemorySessionRepo) ByID(id uuid.UUID) (*dmn.Session, error) {
	m.RLock()
	defer m.RUnlock()

	session, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	session = clone(session)
	return &session, nil
}

// Recent returns up to limit sessions, newest first, without their journeys.
func (m *MemorySessionRepo) Recent(limit int) ([]*dmn.Session, error) {
	m.RLock()
	defer m.RUnlock()

	sessions := make([]*dmn.Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		s = clone(s)
		s.Steps = nil
		sessions = append(sessions, &s)
	}
	slices.SortFunc(sessions, func(a, b *dmn.Session) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	if limit >= 0 && len(sessions) > limit {
		sessions = sessions[:limit]
	}
	return sessions, nil
}

func clone(s dmn.Session) dmn.Session {
	s.Runs = slices.Clone(s.Runs)
	s.Route = slices.Clone(s.Route)
	s.Steps = slices.Clone(s.Steps)
	return s
}
