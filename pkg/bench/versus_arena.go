package bench

import (
	"context"
	"fmt"
	"math/rand"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/IlikeChooros/go-uttt/pkg/uttt"
)

/*
Arena benchmark subpackage, plays a series of games between two players
(engine configurations), each worker plays its share of games on its own board.
*/

type VersusArena struct {
	VersusArenaStats
	Player1  Player
	Player2  Player
	NGames   int
	NWorkers int
	Seed     int64 // decides who moves first in each game

	mu sync.Mutex // serializes listener calls
}

func NewVersusArena(player1, player2 Player) *VersusArena {
	return &VersusArena{
		Player1:  player1,
		Player2:  player2,
		NGames:   100,
		NWorkers: 2,
		Seed:     1,
	}
}

func (va *VersusArena) Setup(nGames, nWorkers int) *VersusArena {
	va.NGames = max(nGames, 0)
	va.NWorkers = max(nWorkers, 1)
	return va
}

// Play all games, distributed equally between the workers. Returns when every
// game is finished, or the context is done (then with the context's error)
func (va *VersusArena) Run(ctx context.Context, listener ListenerLike) (VersusSummaryInfo, error) {
	if listener == nil {
		listener = DefaultListener{}
	}
	g, ctx := errgroup.WithContext(ctx)

	nGames := va.NGames / va.NWorkers
	rest := va.NGames % va.NWorkers
	for id := range va.NWorkers {
		games := nGames
		if rest > 0 {
			games++
			rest--
		}

		// Clone up front, players are not safe for concurrent use
		p1, p2 := va.Player1.Clone(), va.Player2.Clone()
		g.Go(func() error {
			return va.worker(ctx, id, games, listener, p1, p2)
		})
	}

	err := g.Wait()
	summary := VersusSummaryInfo{
		TotalGames:       va.Total(),
		P1Wins:           va.P1Wins(),
		P2Wins:           va.P2Wins(),
		FirstToMoveWins:  va.FirstToMoveWins(),
		SecondToMoveWins: va.SecondToMoveWins(),
		Draws:            va.Draws(),
		Workers:          va.NWorkers,
		P1Name:           va.Player1.Name(),
		P2Name:           va.Player2.Name(),
	}
	va.notify(func() { listener.Summary(summary) })
	return summary, err
}

func (va *VersusArena) worker(ctx context.Context, id, nGames int, listener ListenerLike, p1, p2 Player) error {
	r := rand.New(rand.NewSource(va.Seed + int64(id)))
	localStats := VersusArenaStats{}
	info := VersusWorkerInfo{
		WorkerID: id,
		NGames:   nGames,
		P1Name:   p1.Name(),
		P2Name:   p2.Name(),
	}

	for i := range nGames {
		if err := ctx.Err(); err != nil {
			return err
		}

		info.FinishedGames = i
		p1First := r.Intn(2) == 0
		first, second := p1, p2
		if !p1First {
			first, second = p2, p1
		}

		board, moves, err := va.playGame(ctx, first, second, listener, info)
		if err != nil {
			return err
		}

		outcome := computeOutcome(board)
		result := toAgentResult(outcome, p1First)
		va.add(result, outcome)
		localStats.add(result, outcome)

		info.FinishedGames = i + 1
		info.Moves, info.GameMoveNum = moves, len(moves)
		info.Board, info.Result = board, result
		info.P1Wins, info.P2Wins, info.Draws = localStats.P1Wins(), localStats.P2Wins(), localStats.Draws()
		va.notify(func() { listener.OnFinishedGame(info) })
	}

	info.Board = nil
	va.notify(func() { listener.OnFinishedWork(info) })
	return nil
}

// Play a single game from the empty board, 'first' plays x
func (va *VersusArena) playGame(
	ctx context.Context, first, second Player,
	listener ListenerLike, info VersusWorkerInfo,
) (*uttt.Board, []uttt.Move, error) {
	board := uttt.NewBoard()
	moves := make([]uttt.Move, 0, 81)
	last, mark := uttt.MoveNone, uttt.MarkX

	va.notify(func() { listener.OnGameStart(info) })
	for !board.IsTerminated() {
		if err := ctx.Err(); err != nil {
			return board, moves, err
		}

		player := first
		if mark == uttt.MarkO {
			player = second
		}

		move, ok := player.SelectMove(board, last, mark)
		if !ok {
			return board, moves, fmt.Errorf("%s has no move in %s", player.Name(), board.Notation())
		}
		if err := board.Play(move, mark); err != nil {
			return board, moves, fmt.Errorf("%s: %w", player.Name(), err)
		}

		moves = append(moves, move)
		last, mark = move, mark.Opponent()

		info.Moves, info.GameMoveNum = moves, len(moves)
		va.notify(func() { listener.OnMoveMade(info) })
	}
	return board, moves, nil
}

func (va *VersusArena) notify(fn func()) {
	va.mu.Lock()
	defer va.mu.Unlock()
	fn()
}
