// Package storagetest holds behaviour shared by every RecordStore backend
package storagetest

import (
	"context"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/anoveskey1/evbpmusic-backend/internal/model"
	"github.com/anoveskey1/evbpmusic-backend/internal/storage"
)

// RecordStoreSuite runs backend-independent checks against Store.
// Embedding suites must set Store (and Ctx) in their SetupTest.
type RecordStoreSuite struct {
	suite.Suite
	Store storage.RecordStore
	Ctx   context.Context
}

func (s *RecordStoreSuite) TestLoadMissingEntriesIsEmpty() {
	entries := []model.GuestbookEntry{}
	err := s.Store.Load(s.Ctx, storage.EntriesDocument, &entries)
	s.Require().NoError(err)
	s.Empty(entries)
}

func (s *RecordStoreSuite) TestLoadMissingPendingIsEmpty() {
	pending := model.PendingValidations{}
	err := s.Store.Load(s.Ctx, storage.UsersDocument, &pending)
	s.Require().NoError(err)
	s.Empty(pending)
}

func (s *RecordStoreSuite) TestEntriesRoundTrip() {
	entries := []model.GuestbookEntry{
		{Username: "Test_User2", Message: "First!"},
		{Username: "Test_User", Message: "Hello World"},
		{Username: "", Message: ""},
	}
	s.Require().NoError(s.Store.Save(s.Ctx, storage.EntriesDocument, entries))

	var loaded []model.GuestbookEntry
	s.Require().NoError(s.Store.Load(s.Ctx, storage.EntriesDocument, &loaded))
	s.Equal(entries, loaded)
}

func (s *RecordStoreSuite) TestPendingRoundTrip() {
	issued := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	pending := model.PendingValidations{
		"valid-code": {Username: "Test_User", Email: "johndoe@mocksite.com"},
		"other-code": {Username: "alice", Email: "a@x.com", IssuedAt: &issued},
	}
	s.Require().NoError(s.Store.Save(s.Ctx, storage.UsersDocument, pending))

	loaded := model.PendingValidations{}
	s.Require().NoError(s.Store.Load(s.Ctx, storage.UsersDocument, &loaded))
	s.Require().Len(loaded, 2)
	s.Equal(pending["valid-code"], loaded["valid-code"])
	s.True(issued.Equal(*loaded["other-code"].IssuedAt))
}

func (s *RecordStoreSuite) TestSaveReplacesDocument() {
	s.Require().NoError(s.Store.Save(s.Ctx, storage.EntriesDocument, []model.GuestbookEntry{
		{Username: "a", Message: "1"},
		{Username: "b", Message: "2"},
	}))
	s.Require().NoError(s.Store.Save(s.Ctx, storage.EntriesDocument, []model.GuestbookEntry{
		{Username: "c", Message: "3"},
	}))

	var loaded []model.GuestbookEntry
	s.Require().NoError(s.Store.Load(s.Ctx, storage.EntriesDocument, &loaded))
	s.Equal([]model.GuestbookEntry{{Username: "c", Message: "3"}}, loaded)
}

func (s *RecordStoreSuite) TestDocumentsAreIndependent() {
	s.Require().NoError(s.Store.Save(s.Ctx, storage.EntriesDocument, []model.GuestbookEntry{
		{Username: "a", Message: "1"},
	}))

	pending := model.PendingValidations{}
	s.Require().NoError(s.Store.Load(s.Ctx, storage.UsersDocument, &pending))
	s.Empty(pending)
}
