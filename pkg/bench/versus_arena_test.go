package bench

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/muesli/termenv"
	"github.com/rs/zerolog"

	"github.com/IlikeChooros/go-uttt/pkg/search"
	"github.com/IlikeChooros/go-uttt/pkg/uttt"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.Disabled)
	os.Exit(m.Run())
}

// Counts the callbacks, to check the arena's bookkeeping
type countingListener struct {
	started, moves, finished, workers int
	summaries                         []VersusSummaryInfo
	illegal                           []string
}

func (l *countingListener) OnGameStart(VersusWorkerInfo) { l.started++ }

func (l *countingListener) OnMoveMade(info VersusWorkerInfo) {
	l.moves++
	if len(info.Moves) != info.GameMoveNum {
		l.illegal = append(l.illegal, "move count mismatch")
	}
}

func (l *countingListener) OnFinishedGame(info VersusWorkerInfo) {
	l.finished++
	if info.Board == nil || !info.Board.IsTerminated() {
		l.illegal = append(l.illegal, "unfinished game reported")
		return
	}

	// Replay the game, every move has to be legal
	board, last, mark := uttt.NewBoard(), uttt.MoveNone, uttt.MarkX
	for _, move := range info.Moves {
		if !board.IsLegal(last, move) {
			l.illegal = append(l.illegal, move.String())
			return
		}
		board.MustPlay(move, mark)
		last, mark = move, mark.Opponent()
	}
	if !board.Equal(info.Board) {
		l.illegal = append(l.illegal, "replay differs")
	}
}

func (l *countingListener) OnFinishedWork(VersusWorkerInfo) { l.workers++ }

func (l *countingListener) Summary(summary VersusSummaryInfo) {
	l.summaries = append(l.summaries, summary)
}

func TestArenaRandomPlayers(t *testing.T) {
	is := is.New(t)
	arena := NewVersusArena(NewRandomPlayer(1), NewRandomPlayer(2)).Setup(11, 3)
	listener := &countingListener{}

	summary, err := arena.Run(context.Background(), listener)
	is.NoErr(err)
	is.Equal(listener.illegal, []string(nil))

	is.Equal(summary.TotalGames, 11)
	is.Equal(summary.P1Wins+summary.P2Wins+summary.Draws, 11)
	is.Equal(summary.FirstToMoveWins+summary.SecondToMoveWins, summary.P1Wins+summary.P2Wins)
	is.Equal(summary.Workers, 3)

	is.Equal(listener.started, 11)
	is.Equal(listener.finished, 11)
	is.Equal(listener.workers, 3)
	is.Equal(len(listener.summaries), 1)
	is.Equal(listener.summaries[0], summary)
	is.True(listener.moves >= 11*17) // no game ends before 17 moves
}

func TestArenaEngineBeatsRandom(t *testing.T) {
	is := is.New(t)
	engine := NewEnginePlayer(search.DefaultLimits().SetDepth(2).SetMovetime(search.NoMovetimeLimit))
	arena := NewVersusArena(engine, NewRandomPlayer(7)).Setup(6, 2)

	summary, err := arena.Run(context.Background(), nil)
	is.NoErr(err)
	is.Equal(summary.TotalGames, 6)
	is.True(summary.P1Wins > summary.P2Wins)
	is.True(strings.HasPrefix(summary.P1Name, "alphabeta"))
	is.Equal(summary.P2Name, "random")
}

func TestArenaCancelled(t *testing.T) {
	is := is.New(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	arena := NewVersusArena(NewRandomPlayer(1), NewRandomPlayer(2)).Setup(4, 2)
	summary, err := arena.Run(ctx, nil)
	is.Equal(err, context.Canceled)
	is.Equal(summary.TotalGames, 0)
}

func TestArenaListenerRender(t *testing.T) {
	is := is.New(t)
	var buf bytes.Buffer
	listener := NewArenaListener(termenv.NewOutput(&buf, termenv.WithProfile(termenv.Ascii)))

	arena := NewVersusArena(NewRandomPlayer(3), NewRandomPlayer(4)).Setup(2, 1)
	_, err := arena.Run(context.Background(), listener)
	is.NoErr(err)
	is.Equal(strings.Count(buf.String(), "random vs random"), 2)
}

func TestToAgentResult(t *testing.T) {
	cases := []struct {
		outcome     GameOutcome
		p1WentFirst bool
		want        VersusMatchResult
	}{
		{GameOutcome{IsDraw: true}, true, VersusDraw},
		{GameOutcome{IsDraw: true}, false, VersusDraw},
		{GameOutcome{FirstPlayerWon: true}, true, VersusPl1Win},
		{GameOutcome{FirstPlayerWon: true}, false, VersusPl2Win},
		{GameOutcome{FirstPlayerWon: false}, true, VersusPl2Win},
		{GameOutcome{FirstPlayerWon: false}, false, VersusPl1Win},
	}

	for _, c := range cases {
		if got := toAgentResult(c.outcome, c.p1WentFirst); got != c.want {
			t.Errorf("toAgentResult(%+v, %v) = %v, want %v", c.outcome, c.p1WentFirst, got, c.want)
		}
	}
}

func TestComputeOutcome(t *testing.T) {
	is := is.New(t)
	won, err := uttt.FromNotation("xxx6/xxx6/xxx6/9/9/9/9/9/o8")
	is.NoErr(err)
	is.Equal(computeOutcome(won), GameOutcome{FirstPlayerWon: true})

	drawn := strings.TrimSuffix(strings.Repeat("xoxxoxoxo/", 9), "/")
	board, err := uttt.FromNotation(drawn)
	is.NoErr(err)
	is.Equal(computeOutcome(board), GameOutcome{IsDraw: true})

	defer func() {
		is.True(recover() != nil)
	}()
	computeOutcome(uttt.NewBoard())
}
