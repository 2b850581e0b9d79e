package sessionRepo

import (
	"errors"

	"tripflow/models"
)

// ErrSessionNotFound is returned by Load for unknown session ids.
var ErrSessionNotFound = errors.New("session not found")

// SessionRepository defines the persistence checkpoint store consumed by the
// pipeline engine. The engine calls CreateOrUpdate at run boundaries and Load
// when resuming a confirmed session.
type SessionRepository interface {
	// CreateOrUpdate upserts the session record keyed by session id.
	CreateOrUpdate(session *models.Session) error
	// Load retrieves a session by id, or ErrSessionNotFound.
	Load(sessionID string) (*models.Session, error)
}
