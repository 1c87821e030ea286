package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/sosgame/internal/api"
	"github.com/mcoot/sosgame/internal/api/response"
	"github.com/mcoot/sosgame/internal/factory"
	"github.com/mcoot/sosgame/internal/testutil"
)

// Eight zero-point moves on a 3x3 board, (2,2) left, player 1 to move with S
const nearlyFullGame = `0
0
true
2
3
2,2,2
2,2,2
2,2,0
0,0,true,0
1,0,false,0
2,0,true,0
0,1,false,0
1,1,true,0
2,1,false,0
0,2,true,0
1,2,false,0`

type CLISuite struct {
	suite.Suite
	saveFile string
}

func TestCLISuite(t *testing.T) {
	suite.Run(t, new(CLISuite))
}

func (s *CLISuite) SetupTest() {
	s.saveFile = filepath.Join(s.T().TempDir(), "gamestate.csv")
	s.T().Setenv("SOS_SERVER", "")
	s.T().Setenv("SOS_STORAGE", "")
}

func (s *CLISuite) run(args ...string) (string, error) {
	cmd := NewRootCmd()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(append([]string{"--save-file", s.saveFile}, args...))
	err := cmd.Execute()
	return buf.String(), err
}

func (s *CLISuite) runJSON(result any, args ...string) {
	out, err := s.run(append([]string{"--output", "json"}, args...)...)
	s.Require().NoError(err, out)
	s.Require().NoError(json.Unmarshal([]byte(out), result), out)
}

func (s *CLISuite) TestNewSavesGame() {
	var state response.GameState
	s.runJSON(&state, "new")

	s.GreaterOrEqual(state.BoardSize, 3)
	s.LessOrEqual(state.BoardSize, 15)
	s.Equal(response.Player1, state.Turn)
	s.Equal("S", state.Symbol)
	s.FileExists(s.saveFile)

	var shown response.GameState
	s.runJSON(&shown, "show")
	s.Equal(state, shown)
}

func (s *CLISuite) TestPlaceAcrossInvocations() {
	var first MoveResult
	s.runJSON(&first, "place", "0", "0")
	s.Equal(ActionPlaced, first.Action)
	s.True(first.Saved)
	s.Equal(response.Player1, first.Move.Player)

	var second MoveResult
	s.runJSON(&second, "place", "1", "0", "--symbol", "O")
	s.Equal(response.Player2, second.Move.Player)
	s.Equal("O", second.Game.Board[0][1])
	s.Equal("O", second.Game.Symbol)

	var third MoveResult
	s.runJSON(&third, "place", "2", "0", "--symbol", "S")
	s.Equal(1, third.Move.Points)
	s.Equal(1, third.Game.Scores.Player1)
	s.Equal(response.Player1, third.Game.Turn)
	s.Len(third.Game.History, 3)
}

func (s *CLISuite) TestUndo() {
	_, err := s.run("place", "0", "0")
	s.Require().NoError(err)

	var undone MoveResult
	s.runJSON(&undone, "undo")
	s.Equal(ActionUndone, undone.Action)
	s.Equal(response.Player1, undone.Game.Turn)
	s.Empty(undone.Game.History)

	out, err := s.run("undo")
	s.ErrorContains(err, "no moves to undo")
	s.Contains(out, "no moves to undo")
}

func (s *CLISuite) TestRejectedMoveNotSaved() {
	_, err := s.run("place", "0", "0")
	s.Require().NoError(err)
	before, err := os.ReadFile(s.saveFile)
	s.Require().NoError(err)

	_, err = s.run("place", "0", "0")
	s.ErrorContains(err, "occupied")

	_, err = s.run("place", "99", "0")
	s.ErrorContains(err, "invalid board position")

	_, err = s.run("place", "1", "1", "--symbol", "X")
	s.ErrorContains(err, "symbol must be S or O")

	after, err := os.ReadFile(s.saveFile)
	s.Require().NoError(err)
	s.Equal(before, after)
}

func (s *CLISuite) TestBadArguments() {
	_, err := s.run("place", "a", "0")
	s.ErrorContains(err, "column must be a number")

	_, err = s.run("place", "0")
	s.Error(err)

	_, err = s.run("show", "--output", "yaml")
	s.ErrorContains(err, "invalid output format")
}

func (s *CLISuite) TestFinalMove() {
	s.Require().NoError(os.WriteFile(s.saveFile, []byte(nearlyFullGame), 0o644))

	out, err := s.run("place", "2", "2")
	s.Require().NoError(err)
	s.Contains(out, "player1 placed S at (2,2) scoring 0")
	s.Contains(out, "Game over: tie")
	s.Contains(out, "Finished games are not saved")

	// The slot still holds the game before the final move
	data, err := os.ReadFile(s.saveFile)
	s.Require().NoError(err)
	s.Equal(nearlyFullGame, string(data))
}

func (s *CLISuite) TestShowText() {
	s.Require().NoError(os.WriteFile(s.saveFile, []byte(nearlyFullGame), 0o644))

	out, err := s.run("show")
	s.Require().NoError(err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	s.Equal([]string{
		"      0  1  2",
		"    +---------+",
		"  0 | S  S  S |",
		"  1 | S  S  S |",
		"  2 | S  S  . |",
		"    +---------+",
		"Scores: player1 0, player2 0",
		"Turn: player1 (symbol S)",
	}, lines)
}

func (s *CLISuite) TestHint() {
	s.Require().NoError(os.WriteFile(s.saveFile, []byte(nearlyFullGame), 0o644))

	out, err := s.run("hint")
	s.Require().NoError(err)
	s.Contains(out, "No SOS can be made")

	var hint HintResult
	_, err = s.run("place", "0", "0")
	s.Error(err)
	s.runJSON(&hint, "hint")
	s.False(hint.PossibleSOS)
}

func (s *CLISuite) TestCorruptSave() {
	s.Require().NoError(os.WriteFile(s.saveFile, []byte("not a game"), 0o644))

	_, err := s.run("show")
	s.ErrorContains(err, "run 'sos new'")

	// new does not read the slot, so it recovers
	_, err = s.run("new")
	s.Require().NoError(err)
	_, err = s.run("show")
	s.NoError(err)
}

func (s *CLISuite) TestRemoteServer() {
	app := factory.NewTestApp(3)
	defer app.Close()
	server := httptest.NewServer(api.NewRouter(api.RouterConfig{
		Logger:         testutil.NopLogger(),
		GameController: app.GameController,
	}))
	defer server.Close()

	var placed MoveResult
	s.runJSON(&placed, "--server", server.URL, "place", "1", "1", "--symbol", "O")
	s.True(placed.Saved)
	s.Equal(3, placed.Game.BoardSize)
	s.Equal("O", placed.Game.Board[1][1])

	var state response.GameState
	s.runJSON(&state, "--server", server.URL, "show")
	s.Equal(response.Player2, state.Turn)
	s.Len(state.History, 1)

	_, ok := app.MemorySlot.Contents()
	s.True(ok)

	_, err := s.run("--server", server.URL, "place", "1", "1")
	s.ErrorContains(err, "CELL_OCCUPIED")

	// Nothing was written locally
	s.NoFileExists(s.saveFile)
}

func (s *CLISuite) TestRemoteCorruptSave() {
	app := factory.NewTestApp(3)
	defer app.Close()
	server := httptest.NewServer(api.NewRouter(api.RouterConfig{
		Logger:         testutil.NopLogger(),
		GameController: app.GameController,
	}))
	defer server.Close()

	s.Require().NoError(app.MemorySlot.Replace(context.Background(), []byte("not a game")))

	_, err := s.run("--server", server.URL, "show")
	s.Require().ErrorIs(err, errCorruptSave)
	s.ErrorContains(err, "CORRUPT_SAVE")

	// Same error as a corrupt local save
	s.Require().NoError(os.WriteFile(s.saveFile, []byte("not a game"), 0o644))
	_, err = s.run("show")
	s.ErrorIs(err, errCorruptSave)

	// new does not load, so it replaces the corrupt save on the server too
	_, err = s.run("--server", server.URL, "new")
	s.Require().NoError(err)

	// Other API errors pass through unchanged
	_, err = s.run("--server", server.URL, "undo")
	var apiErr *APIError
	s.Require().ErrorAs(err, &apiErr)
	s.Equal("NO_MOVES_TO_UNDO", apiErr.Code)
	s.Equal(409, apiErr.Status)
	s.NotErrorIs(err, errCorruptSave)
}

func (s *CLISuite) TestEnvironmentDefaults() {
	s.T().Setenv("SOS_SAVE_FILE", "/tmp/elsewhere.csv")
	s.T().Setenv("SOS_STORAGE", "redis")
	s.T().Setenv("SOS_REDIS_URL", "redis://cache:6379")

	c := DefaultConfig()
	s.Equal("/tmp/elsewhere.csv", c.SaveFile)
	s.Equal(factory.StorageTypeRedis, c.Storage)

	fc := c.Factory(nil)
	s.Require().NotNil(fc.RedisConfig)
	s.Equal("redis://cache:6379", fc.RedisConfig.URL)
}
