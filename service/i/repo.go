package i

import (
	dmn "github.com/beka-birhanu/vinom-mouse/domain"
	"github.com/google/uuid"
)

// SessionRepo defines the interface for session persistence operations.
type SessionRepo interface {
	// Save inserts or updates a session in the repository.
	// If the session already exists, it updates the record. Otherwise, it creates a new one.
	Save(session *dmn.Session) error

	// ByID retrieves a session, journey included, by its unique ID.
	// Returns an error if the session is not found or in case of an unexpected error.
	ByID(id uuid.UUID) (*dmn.Session, error)

	// Recent retrieves up to limit sessions, newest first, without their journeys.
	Recent(limit int) ([]*dmn.Session, error)
}
