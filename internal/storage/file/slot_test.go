package file

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/sosgame/internal/model"
	"github.com/mcoot/sosgame/internal/testutil"
)

type SlotSuite struct {
	suite.Suite
	dir  string
	slot *Slot
	ctx  context.Context
}

func TestSlotSuite(t *testing.T) {
	suite.Run(t, new(SlotSuite))
}

func (s *SlotSuite) SetupTest() {
	s.dir = s.T().TempDir()
	s.slot = New(filepath.Join(s.dir, "files", "gamestate.csv"), testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *SlotSuite) read() string {
	rc, err := s.slot.Open(s.ctx)
	s.Require().NoError(err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	s.Require().NoError(err)
	return string(data)
}

func (s *SlotSuite) TestDefaultPath() {
	slot := New("", testutil.NopLogger())
	s.Equal(DefaultPath, slot.Path())
}

func (s *SlotSuite) TestOpenMissingFile() {
	_, err := s.slot.Open(s.ctx)
	s.ErrorIs(err, model.ErrSlotEmpty)
}

func (s *SlotSuite) TestReplaceCreatesDirectory() {
	err := s.slot.Replace(s.ctx, []byte("1\n2"))
	s.Require().NoError(err)

	s.Equal("1\n2", s.read())
}

func (s *SlotSuite) TestReplaceOverwritesCompletely() {
	_ = s.slot.Replace(s.ctx, []byte("a much longer first snapshot"))
	_ = s.slot.Replace(s.ctx, []byte("short"))

	s.Equal("short", s.read())
}

func (s *SlotSuite) TestReplaceLeavesNoTempFiles() {
	_ = s.slot.Replace(s.ctx, []byte("x"))
	_ = s.slot.Replace(s.ctx, []byte("y"))

	entries, err := os.ReadDir(filepath.Dir(s.slot.Path()))
	s.Require().NoError(err)
	s.Len(entries, 1)
	s.Equal("gamestate.csv", entries[0].Name())
}

func (s *SlotSuite) TestOpenReaderSeesOldContentsAfterReplace() {
	_ = s.slot.Replace(s.ctx, []byte("old"))
	rc, err := s.slot.Open(s.ctx)
	s.Require().NoError(err)
	defer rc.Close()

	// Rename swaps the directory entry; the open handle still points at the old file
	s.Require().NoError(s.slot.Replace(s.ctx, []byte("new")))

	data, _ := io.ReadAll(rc)
	s.Equal("old", string(data))
	s.Equal("new", s.read())
}

func (s *SlotSuite) TestReplaceHonoursCancelledContext() {
	ctx, cancel := context.WithCancel(s.ctx)
	cancel()

	err := s.slot.Replace(ctx, []byte("x"))
	s.ErrorIs(err, context.Canceled)

	_, err = s.slot.Open(s.ctx)
	s.ErrorIs(err, model.ErrSlotEmpty)
}

func (s *SlotSuite) TestOpenDirectoryIsNotEmptySlot() {
	slot := New(s.dir, testutil.NopLogger())

	rc, err := slot.Open(s.ctx)
	if err == nil {
		// Opening a directory succeeds on Linux; reading it fails
		defer rc.Close()
		_, err = io.ReadAll(rc)
	}
	s.Error(err)
	s.NotErrorIs(err, model.ErrSlotEmpty)
}
