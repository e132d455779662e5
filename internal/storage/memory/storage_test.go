package memory

import (
	"context"
	"testing"
	"time"

	"github.com/mcoot/lifecounter/internal/model"
	"github.com/stretchr/testify/suite"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

func newSession(id model.SessionID) *model.Session {
	return &model.Session{
		ID:        id,
		State:     model.SessionStateActive,
		GameMode:  model.GameModeCommander,
		Roster:    model.NewRoster([]*model.Player{{ID: 0, Name: "Player 1", Colors: []model.Color{model.ColorGrey}}}),
		StartedAt: time.Now(),
	}
}

func (s *StorageSuite) TestSaveAndGetSession() {
	session := newSession("session-1")

	err := s.storage.SaveSession(s.ctx, session)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetSession(s.ctx, "session-1")
	s.Require().NoError(err)
	s.Equal(session.ID, retrieved.ID)
	s.Equal(model.GameModeCommander, retrieved.GameMode)
	s.Len(retrieved.Roster.Players, 1)
}

func (s *StorageSuite) TestGetSessionNotFound() {
	_, err := s.storage.GetSession(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *StorageSuite) TestSaveSessionOverwrites() {
	_ = s.storage.SaveSession(s.ctx, newSession("session-1"))

	updated := newSession("session-1")
	updated.GameMode = model.GameModeModern
	s.Require().NoError(s.storage.SaveSession(s.ctx, updated))

	retrieved, err := s.storage.GetSession(s.ctx, "session-1")
	s.Require().NoError(err)
	s.Equal(model.GameModeModern, retrieved.GameMode)
}

func (s *StorageSuite) TestDeleteSession() {
	_ = s.storage.SaveSession(s.ctx, newSession("session-1"))

	err := s.storage.DeleteSession(s.ctx, "session-1")
	s.Require().NoError(err)

	_, err = s.storage.GetSession(s.ctx, "session-1")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *StorageSuite) TestDeleteMissingSessionIsNoop() {
	s.NoError(s.storage.DeleteSession(s.ctx, "nonexistent"))
}

func (s *StorageSuite) TestSessionExists() {
	exists, err := s.storage.SessionExists(s.ctx, "session-1")
	s.Require().NoError(err)
	s.False(exists)

	_ = s.storage.SaveSession(s.ctx, newSession("session-1"))

	exists, err = s.storage.SessionExists(s.ctx, "session-1")
	s.Require().NoError(err)
	s.True(exists)
}
