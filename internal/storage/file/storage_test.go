package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/anoveskey1/evbpmusic-backend/internal/model"
	"github.com/anoveskey1/evbpmusic-backend/internal/storage"
	"github.com/anoveskey1/evbpmusic-backend/internal/storage/storagetest"
)

type StorageSuite struct {
	storagetest.RecordStoreSuite
	dir     string
	storage *Storage
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.dir = filepath.Join(s.T().TempDir(), "data")

	store, err := New(s.dir)
	s.Require().NoError(err)

	s.storage = store
	s.Store = store
	s.Ctx = context.Background()
}

func (s *StorageSuite) writeRaw(name, content string) {
	s.Require().NoError(os.WriteFile(s.storage.Path(name), []byte(content), 0o644))
}

func (s *StorageSuite) TestNewCreatesDirectory() {
	info, err := os.Stat(s.dir)
	s.Require().NoError(err)
	s.True(info.IsDir())
}

func (s *StorageSuite) TestPathUsesJSONExtension() {
	s.Equal(filepath.Join(s.dir, "guestbook_entries.json"), s.storage.Path(storage.EntriesDocument))
}

func (s *StorageSuite) TestLoadWhitespaceIsEmpty() {
	s.writeRaw(storage.EntriesDocument, "\n   \n")

	entries := []model.GuestbookEntry{}
	s.Require().NoError(s.storage.Load(s.Ctx, storage.EntriesDocument, &entries))
	s.Empty(entries)
}

func (s *StorageSuite) TestLoadCorruptDocument() {
	s.writeRaw(storage.EntriesDocument, "[{\"username\": ")

	var entries []model.GuestbookEntry
	err := s.storage.Load(s.Ctx, storage.EntriesDocument, &entries)
	s.ErrorIs(err, storage.ErrCorruptData)
	s.Contains(err.Error(), storage.EntriesDocument)
}

func (s *StorageSuite) TestSaveWritesPrettyJSON() {
	pending := model.PendingValidations{
		"mockhash12345": {Username: "user1", Email: "johndoe@mocksite.com"},
	}
	s.Require().NoError(s.storage.Save(s.Ctx, storage.UsersDocument, pending))

	raw, err := os.ReadFile(s.storage.Path(storage.UsersDocument))
	s.Require().NoError(err)
	s.Equal("{\n  \"mockhash12345\": {\n    \"username\": \"user1\",\n    \"email\": \"johndoe@mocksite.com\"\n  }\n}", string(raw))
}

func (s *StorageSuite) TestSaveLeavesNoTempFiles() {
	s.Require().NoError(s.storage.Save(s.Ctx, storage.EntriesDocument, []model.GuestbookEntry{
		{Username: "a", Message: "1"},
	}))

	files, err := os.ReadDir(s.dir)
	s.Require().NoError(err)
	s.Require().Len(files, 1)
	s.Equal("guestbook_entries.json", files[0].Name())
}
