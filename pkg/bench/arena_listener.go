package bench

import (
	"fmt"

	"github.com/muesli/termenv"
	"github.com/rs/zerolog/log"
)

// Logs the progress of the arena, and renders the final position of every
// game to 'Output' when it's set
type ArenaListener struct {
	DefaultListener
	Output *termenv.Output
}

func NewArenaListener(output *termenv.Output) *ArenaListener {
	return &ArenaListener{Output: output}
}

func (al *ArenaListener) OnFinishedGame(info VersusWorkerInfo) {
	notation := ""
	if info.Board != nil {
		notation = info.Board.Notation()
	}
	log.Info().
		Int("worker", info.WorkerID).
		Int("game", info.FinishedGames).
		Int("of", info.NGames).
		Int("moves", info.GameMoveNum).
		Str("winner", info.Result.String()).
		Str("notation", notation).
		Msg("game-finished")

	if al.Output != nil && info.Board != nil {
		fmt.Fprintf(al.Output, "%s vs %s, worker %d game %d/%d\n%s\n\n",
			info.P1Name, info.P2Name, info.WorkerID, info.FinishedGames, info.NGames,
			info.Board.Render(al.Output))
	}
}

func (al *ArenaListener) OnFinishedWork(info VersusWorkerInfo) {
	log.Debug().
		Int("worker", info.WorkerID).
		Int("player1-wins", info.P1Wins).
		Int("player2-wins", info.P2Wins).
		Int("draws", info.Draws).
		Msg("worker-done")
}

func (al *ArenaListener) Summary(summary VersusSummaryInfo) {
	log.Info().
		Str("player1", summary.P1Name).
		Str("player2", summary.P2Name).
		Int("games", summary.TotalGames).
		Int("player1-wins", summary.P1Wins).
		Int("player2-wins", summary.P2Wins).
		Int("draws", summary.Draws).
		Int("first-to-move-wins", summary.FirstToMoveWins).
		Msg("arena-summary")
}
