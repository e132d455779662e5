package storage

import (
	"context"

	"github.com/mcoot/lifecounter/internal/model"
)

// Storage holds live match sessions for the lifetime of the process
type Storage interface {
	SaveSession(ctx context.Context, session *model.Session) error
	GetSession(ctx context.Context, id model.SessionID) (*model.Session, error)
	DeleteSession(ctx context.Context, id model.SessionID) error
	SessionExists(ctx context.Context, id model.SessionID) (bool, error)
}
