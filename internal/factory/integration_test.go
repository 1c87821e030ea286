package factory

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/sosgame/internal/model"
	redisstorage "github.com/mcoot/sosgame/internal/storage/redis"
	"github.com/mcoot/sosgame/internal/testutil"
)

type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestApp(3)
	s.ctx = context.Background()
}

func (s *IntegrationSuite) TearDownTest() {
	s.NoError(s.app.Close())
}

// Opening moves of a 3x3 game: P1 1, P2 1, P2 to move
func (s *IntegrationSuite) playOpening(app *TestApp) {
	s.Require().NoError(app.PlayMoves(
		At(0, 0, model.S),
		At(1, 0, model.O),
		At(2, 0, model.S), // S-O-S along the top row
		At(0, 2, model.S),
		At(1, 1, model.O), // anti-diagonal S-O-S
	))
	s.Require().Equal(1, app.GameController.P1Score())
	s.Require().Equal(1, app.GameController.P2Score())
	s.Require().False(app.GameController.IsP1Turn())
}

func (s *IntegrationSuite) playEnding(app *TestApp) {
	s.Require().NoError(app.PlayMoves(
		At(0, 1, model.O), // left column
		At(2, 1, model.O),
		At(2, 2, model.S), // right column and main diagonal
		At(1, 2, model.S),
	))
}

// Test: Complete game flow from reset to a full board
func (s *IntegrationSuite) TestCompleteGameFlow() {
	ctrl := s.app.GameController
	s.Equal(3, ctrl.Size())
	s.True(ctrl.IsP1Turn())
	s.Equal(model.S, ctrl.Symbol())

	s.playOpening(s.app)
	s.True(ctrl.PossibleSOS())

	s.playEnding(s.app)

	s.True(ctrl.IsOver())
	s.Equal(model.WinnerP1, ctrl.CheckWinner())
	s.Equal(3, ctrl.P1Score())
	s.Equal(2, ctrl.P2Score())
	s.Len(ctrl.History(), 9)

	// Finished games cannot be played, undone or saved
	_, err := ctrl.UndoMove()
	s.ErrorIs(err, model.ErrGameOver)
	saved, err := ctrl.SaveGame(s.ctx)
	s.NoError(err)
	s.False(saved)
	_, ok := s.app.MemorySlot.Contents()
	s.False(ok)
}

// Test: A game saved mid-way resumes in a fresh app sharing the slot
func (s *IntegrationSuite) TestSaveAndResume() {
	s.playOpening(s.app)

	saved, err := s.app.GameController.SaveGame(s.ctx)
	s.Require().NoError(err)
	s.True(saved)

	// Second app starts on a different board size and shares the slot
	mockRandom := s.app.MockRandom
	mockRandom.QueueBoardSize(7)
	resumed := &TestApp{
		App:        newWithDependencies(s.app.MemorySlot, mockRandom, testutil.NopLogger()),
		MockRandom: mockRandom,
		MemorySlot: s.app.MemorySlot,
	}
	defer resumed.Close()
	s.Equal(7, resumed.GameController.Size())

	loaded, err := resumed.GameController.LoadGame(s.ctx)
	s.Require().NoError(err)
	s.True(loaded)
	s.Equal(s.app.GameController.Snapshot(), resumed.GameController.Snapshot())

	s.playEnding(resumed)
	s.Equal(model.WinnerP1, resumed.GameController.CheckWinner())

	// The first app is unaffected by the resumed game
	s.False(s.app.GameController.IsOver())
}

// Test: Undo walks back through scoring moves and restores the turn
func (s *IntegrationSuite) TestUndoThroughOpening() {
	ctrl := s.app.GameController
	s.playOpening(s.app)

	for len(ctrl.History()) > 0 {
		_, err := ctrl.UndoMove()
		s.Require().NoError(err)
	}

	s.Equal(0, ctrl.P1Score())
	s.Equal(0, ctrl.P2Score())
	s.True(ctrl.IsP1Turn())
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			s.Equal(model.Empty, ctrl.Cell(model.Position{Col: col, Row: row}))
		}
	}

	_, err := ctrl.UndoMove()
	s.ErrorIs(err, model.ErrNoMovesToUndo)
}

type FactorySuite struct {
	suite.Suite
}

func TestFactorySuite(t *testing.T) {
	suite.Run(t, new(FactorySuite))
}

func (s *FactorySuite) TestNewMemory() {
	app, err := New(Config{StorageType: StorageTypeMemory})
	s.Require().NoError(err)
	defer app.Close()

	s.NotNil(app.GameController)
	s.NotNil(app.Stream)
	size := app.GameController.Size()
	s.GreaterOrEqual(size, model.MinBoardSize)
	s.LessOrEqual(size, model.MaxBoardSize)
}

func (s *FactorySuite) TestNewFileRoundTrip() {
	ctx := context.Background()
	path := filepath.Join(s.T().TempDir(), "saves", "game.csv")

	app, err := New(Config{StorageType: StorageTypeFile, SavePath: path})
	s.Require().NoError(err)
	defer app.Close()

	_, err = app.GameController.PlayMove(model.Position{Col: 1, Row: 1})
	s.Require().NoError(err)
	saved, err := app.GameController.SaveGame(ctx)
	s.Require().NoError(err)
	s.True(saved)
	s.FileExists(path)

	other, err := New(Config{StorageType: StorageTypeFile, SavePath: path})
	s.Require().NoError(err)
	defer other.Close()

	loaded, err := other.GameController.LoadGame(ctx)
	s.Require().NoError(err)
	s.True(loaded)
	s.Equal(model.S, other.GameController.Cell(model.Position{Col: 1, Row: 1}))
	s.False(other.GameController.IsP1Turn())
}

func (s *FactorySuite) TestNewRedis() {
	ctx := context.Background()
	mr := miniredis.RunT(s.T())

	cfg := redisstorage.DefaultConfig()
	cfg.URL = "redis://" + mr.Addr()

	app, err := New(Config{StorageType: StorageTypeRedis, RedisConfig: &cfg})
	s.Require().NoError(err)

	saved, err := app.GameController.SaveGame(ctx)
	s.Require().NoError(err)
	s.True(saved)
	s.True(mr.Exists("sosgame:slot:default"))

	s.NoError(app.Close())
}

func (s *FactorySuite) TestNewRedisRequiresConfig() {
	_, err := New(Config{StorageType: StorageTypeRedis})
	s.Error(err)
}

func (s *FactorySuite) TestNewInvalidStorageType() {
	_, err := New(Config{StorageType: "postgres"})
	s.ErrorContains(err, "invalid StorageType")
}
