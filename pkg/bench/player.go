package bench

import (
	"fmt"
	"math/rand"

	"github.com/IlikeChooros/go-uttt/pkg/search"
	"github.com/IlikeChooros/go-uttt/pkg/uttt"
)

// Anything that can play ultimate tic tac toe in the arena. A player is used
// by one goroutine at a time, the arena clones it for every worker
type Player interface {
	Name() string
	SelectMove(board *uttt.Board, last uttt.Move, mark uttt.Mark) (uttt.Move, bool)
	Clone() Player
}

// Alpha-beta engine with fixed limits
type EnginePlayer struct {
	name   string
	engine *search.Engine
}

func NewEnginePlayer(limits *search.Limits) *EnginePlayer {
	return &EnginePlayer{
		name:   fmt.Sprintf("alphabeta(depth=%d,movetime=%d)", limits.Depth, limits.Movetime),
		engine: search.NewEngine().SetLimits(limits),
	}
}

func (p *EnginePlayer) Name() string {
	return p.name
}

func (p *EnginePlayer) SelectMove(board *uttt.Board, last uttt.Move, mark uttt.Mark) (uttt.Move, bool) {
	return p.engine.SelectMove(board, last, mark)
}

func (p *EnginePlayer) Clone() Player {
	return &EnginePlayer{name: p.name, engine: p.engine.Clone()}
}

// Plays a uniformly random legal move
type RandomPlayer struct {
	seed int64
	rand *rand.Rand
}

func NewRandomPlayer(seed int64) *RandomPlayer {
	return &RandomPlayer{seed: seed, rand: rand.New(rand.NewSource(seed))}
}

func (p *RandomPlayer) Name() string {
	return "random"
}

func (p *RandomPlayer) SelectMove(board *uttt.Board, last uttt.Move, mark uttt.Mark) (uttt.Move, bool) {
	moves := board.LegalMoves(last, mark)
	if moves.Size() == 0 {
		return uttt.MoveNone, false
	}
	return moves.At(p.rand.Intn(moves.Size())), true
}

// Clones get a different, but deterministic, sequence of moves
func (p *RandomPlayer) Clone() Player {
	return NewRandomPlayer(p.rand.Int63() ^ p.seed)
}
