package search

import (
	"fmt"
	"math"
	"math/rand"
	"os"
	"testing"
	"time"

	"github.com/matryer/is"
	"github.com/rs/zerolog"

	"github.com/IlikeChooros/go-uttt/pkg/uttt"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	os.Exit(m.Run())
}

// x owns the top-left and top-middle boards, and can finish the top row by
// playing I3 (2, 8) in the top-right board, the last of its free cells.
// The last move, F4 (3, 5), sends x to the top-right board
const forcedWinNotation = "xxx6/xxx6/x3x4/9/2o6/9/o8/9/o8"

var forcedWinLast = uttt.NewMove(3, 5)

func mustBoard(t *testing.T, notation string) *uttt.Board {
	t.Helper()
	board, err := uttt.FromNotation(notation)
	if err != nil {
		t.Fatal(err)
	}
	return board
}

func TestSelectMoveForcedWin(t *testing.T) {
	for depth := 1; depth <= MaxDepth; depth++ {
		t.Run(fmt.Sprintf("Depth-%d", depth), func(t *testing.T) {
			is := is.New(t)
			board := mustBoard(t, forcedWinNotation)
			before := board.Clone()

			engine := NewEngine().SetLimits(DefaultLimits().SetDepth(depth).SetMovetime(2000))
			move, ok := engine.SelectMove(board, forcedWinLast, uttt.MarkX)

			is.True(ok)
			is.Equal(move, uttt.NewMove(2, 8))
			is.Equal(engine.Stats().Score, WinScore-1)
			is.True(board.Equal(before))
		})
	}
}

func TestSelectMoveForcedWinWithoutTime(t *testing.T) {
	is := is.New(t)
	board := mustBoard(t, forcedWinNotation)

	// Zero budget, every node below the root is cut off by the clock
	engine := NewEngine().SetLimits(&Limits{Depth: MaxDepth, Movetime: 0})
	move, ok := engine.SelectMove(board, forcedWinLast, uttt.MarkX)
	is.True(ok)
	is.Equal(move, uttt.NewMove(2, 8))
	is.Equal(engine.Stats().StopReason, StopMovetime)
}

func TestSelectMoveWithTimeLimit(t *testing.T) {
	is := is.New(t)
	board := uttt.NewBoard()

	start := time.Now()
	move, ok := SelectMove(board, uttt.MoveNone, uttt.MarkX, 50*time.Millisecond)
	is.True(ok)
	is.True(move.Valid())
	is.True(time.Since(start) < 2*time.Second)
	is.True(board.Equal(uttt.NewBoard()))
}

func TestSelectMoveRestoresBoard(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	engine := NewEngine().SetLimits(DefaultLimits().SetMovetime(30))

	for i := 0; i < 20; i++ {
		board := uttt.NewBoard()
		last, mark := uttt.MoveNone, uttt.MarkX
		plies := r.Intn(40)

		for ply := 0; ply < plies && !board.IsTerminated(); ply++ {
			moves := board.LegalMoves(last, mark)
			move := moves.At(r.Intn(moves.Size()))
			board.MustPlay(move, mark)
			last, mark = move, mark.Opponent()
		}
		if board.IsTerminated() {
			continue
		}

		before := board.Clone()
		move, ok := engine.SelectMove(board, last, mark)
		if !ok {
			t.Fatalf("no move returned for %s", board.Notation())
		}
		if !board.Equal(before) {
			t.Fatalf("board changed during search:\n%s\nexpected\n%s", board, before)
		}
		if !board.IsLegal(last, move) {
			t.Fatalf("move %s is not legal in %s (last %s)", move, board.Notation(), last)
		}
	}
}

func TestSelectMoveNoLegalMoves(t *testing.T) {
	is := is.New(t)
	drawn := "xoxxoxoxo"
	board := mustBoard(t, fmt.Sprintf("%[1]s/%[1]s/%[1]s/%[1]s/%[1]s/%[1]s/%[1]s/%[1]s/%[1]s", drawn))

	engine := NewEngine()
	move, ok := engine.SelectMove(board, uttt.MoveNone, uttt.MarkX)
	is.True(!ok)
	is.Equal(move, uttt.MoveNone)
	is.Equal(engine.Stats().Moves, 0)
}

func TestSelectMoveTieKeepsFirst(t *testing.T) {
	is := is.New(t)
	board := uttt.NewBoard()

	// At depth 1 every reply is scored statically, the center of a local board
	// scores the most, the top-left board's center comes first
	engine := NewEngine().SetLimits(DefaultLimits().SetDepth(1))
	move, ok := engine.SelectMove(board, uttt.MoveNone, uttt.MarkX)
	is.True(ok)
	is.Equal(move, uttt.NewMove(1, 1))
	is.Equal(engine.Stats().Score, 4)
	is.Equal(engine.Stats().StopReason, StopDepth)
}

func TestTerminalScoreSign(t *testing.T) {
	// x has just completed the top row of local boards
	board := mustBoard(t, "xxx6/xxx6/xxx6/9/9/9/9/9/o8")
	last := uttt.NewMove(0, 8)

	for depth := 1; depth < MaxDepth; depth++ {
		engine := NewEngine()
		engine.Limiter.Reset()

		score := engine.alphaBeta(board, last, depth, math.MinInt, math.MaxInt, false, uttt.MarkO, uttt.MarkX)
		if score <= 0 || score != WinScore-depth {
			t.Errorf("depth %d: score for the winner = %d, want %d", depth, score, WinScore-depth)
		}

		score = engine.alphaBeta(board, last, depth, math.MinInt, math.MaxInt, true, uttt.MarkO, uttt.MarkO)
		if score >= 0 || score != -(WinScore-depth) {
			t.Errorf("depth %d: score for the loser = %d, want %d", depth, score, -(WinScore - depth))
		}
	}
}

func TestDrawScoresZero(t *testing.T) {
	drawn := "xoxxoxoxo"
	board := mustBoard(t, fmt.Sprintf("%[1]s/%[1]s/%[1]s/%[1]s/%[1]s/%[1]s/%[1]s/%[1]s/%[1]s", drawn))

	engine := NewEngine()
	engine.Limiter.Reset()
	if score := engine.alphaBeta(board, uttt.MoveNone, 1, math.MinInt, math.MaxInt, true, uttt.MarkX, uttt.MarkX); score != 0 {
		t.Errorf("drawn board score = %d, want 0", score)
	}
}

func TestListener(t *testing.T) {
	is := is.New(t)
	board := mustBoard(t, "9/9/9/9/o8/9/9/9/9")
	last := uttt.NewMove(3, 3) // targets the top-left board

	rootMoves := 0
	var stopped []Stats
	listener := NewStatsListener()
	listener.
		OnRootMove(func(stats RootMoveStats) {
			rootMoves++
			is.True(stats.BestScore >= stats.Score)
		}).
		OnStop(func(stats Stats) {
			stopped = append(stopped, stats)
		})

	engine := NewEngine().SetLimits(DefaultLimits().SetDepth(2)).SetListener(listener)
	move, ok := engine.SelectMove(board, last, uttt.MarkX)

	is.True(ok)
	is.Equal(rootMoves, 9)
	is.Equal(len(stopped), 1)
	is.Equal(stopped[0].BestMove, move)
	is.Equal(stopped[0].Moves, 9)
	is.True(stopped[0].Nodes > 0)
	is.Equal(move.BigIndex(), 0)
}

func TestEngineClone(t *testing.T) {
	is := is.New(t)
	engine := NewEngine().SetLimits(DefaultLimits().SetDepth(2).SetMovetime(100))
	clone := engine.Clone()

	is.Equal(*clone.Limits(), *engine.Limits())
	clone.Limits().SetDepth(1)
	is.Equal(engine.Limits().Depth, 2)
}

func BenchmarkSelectMove(b *testing.B) {
	board, err := uttt.FromNotation("9/9/9/7x1/4xo3/8x/9/4o4/o8")
	if err != nil {
		b.Fatal(err)
	}
	engine := NewEngine().SetLimits(DefaultLimits().SetMovetime(NoMovetimeLimit))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		engine.SelectMove(board, uttt.NewMove(7, 4), uttt.MarkO)
	}
}
