package client

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/IlikeChooros/go-uttt/pkg/search"
	"github.com/IlikeChooros/go-uttt/pkg/uttt"
)

var ErrProtocol = errors.New("protocol error")

// Game server client, plays one game per connection with the engine.
// Not safe for concurrent use
type Client struct {
	conn   net.Conn
	reader *bufio.Reader
	engine *search.Engine
	logger zerolog.Logger

	// Optional, our board is rendered to it after every move we send
	Output *termenv.Output

	board    *uttt.Board
	mark     uttt.Mark
	last     uttt.Move // last move on the board, uttt.MoveNone before the first one
	sent     uttt.Move // our last move, as sent to the server
	previous uttt.Move // 'last' before our move was played
	rejected []uttt.Move
}

func New(conn net.Conn, engine *search.Engine) *Client {
	return &Client{
		conn:     conn,
		reader:   bufio.NewReader(conn),
		engine:   engine,
		logger:   log.With().Str("server", conn.RemoteAddr().String()).Logger(),
		board:    uttt.NewBoard(),
		mark:     uttt.MarkEmpty,
		last:     uttt.MoveNone,
		sent:     uttt.MoveNone,
		previous: uttt.MoveNone,
	}
}

// Connect to the game server, retrying with exponential backoff
func Dial(ctx context.Context, addr string, attempts int) (net.Conn, error) {
	var conn net.Conn
	dialer := net.Dialer{Timeout: 5 * time.Second}

	err := retry.Do(
		func() error {
			c, err := dialer.DialContext(ctx, "tcp", addr)
			if err != nil {
				return err
			}
			conn = c
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(uint(max(attempts, 1))),
		retry.Delay(200*time.Millisecond),
		retry.LastErrorOnly(true),
		retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
			log.Err(err).Uint("n", n).Str("addr", addr).Msg("dial-failed-try-again")
			return retry.BackOffDelay(n, err, config)
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", addr, err)
	}
	return conn, nil
}

// Board as the client sees it
func (c *Client) Board() *uttt.Board {
	return c.board
}

// Our mark in the current game, uttt.MarkEmpty before the game starts
func (c *Client) Mark() uttt.Mark {
	return c.mark
}

// Serve the server's commands until the game is over, the connection is
// closed or the context is cancelled. The connection is closed on return
func (c *Client) Run(ctx context.Context) error {
	stop := context.AfterFunc(ctx, func() {
		c.conn.Close()
	})
	defer stop()
	defer c.conn.Close()

	for {
		cmd, err := readCommand(c.reader)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if errors.Is(err, io.EOF) {
				c.logger.Info().Msg("connection-closed")
				return nil
			}
			return err
		}
		c.logger.Debug().Str("command", cmd.String()).Msg("command-received")

		done, err := c.handle(cmd)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
}

func (c *Client) handle(cmd Command) (bool, error) {
	switch cmd {
	case CommandNewGameX, CommandNewGameO:
		board, err := readBoardState(c.reader)
		if err != nil {
			return false, fmt.Errorf("read board state: %w", err)
		}
		c.newGame(board, lo.Ternary(cmd == CommandNewGameX, uttt.MarkX, uttt.MarkO))
		if cmd == CommandNewGameX {
			return false, c.respond()
		}
		return false, nil

	case CommandPlay:
		move, err := readMove(c.reader)
		if err != nil {
			return false, fmt.Errorf("read opponent move: %w", err)
		}
		if err := c.opponentMoved(move); err != nil {
			return false, err
		}
		return false, c.respond()

	case CommandInvalidMove:
		c.takeBack()
		return false, c.respond()

	case CommandGameOver:
		move, err := readMove(c.reader)
		if err != nil && !errors.Is(err, uttt.ErrNotation) {
			return true, fmt.Errorf("read last move: %w", err)
		}
		c.logger.Info().
			Str("last", move.String()).
			Str("notation", c.board.Notation()).
			Msg("game-over")
		return true, nil
	}

	c.logger.Warn().Str("command", cmd.String()).Msg("unknown-command")
	return false, nil
}

func (c *Client) newGame(board *uttt.Board, mark uttt.Mark) {
	c.board = board
	c.mark = mark
	c.last, c.sent, c.previous = uttt.MoveNone, uttt.MoveNone, uttt.MoveNone
	c.rejected = c.rejected[:0]
	c.logger.Info().
		Str("mark", mark.String()).
		Str("notation", board.Notation()).
		Msg("new-game")
}

func (c *Client) opponentMoved(move uttt.Move) error {
	c.rejected = c.rejected[:0]
	if !move.Valid() {
		return nil
	}
	if err := c.board.Play(move, c.mark.Opponent()); err != nil {
		return fmt.Errorf("%w: opponent move: %w", ErrProtocol, err)
	}
	c.last = move
	c.logger.Debug().Str("move", move.String()).Msg("opponent-moved")
	return nil
}

// Undo our rejected move, so it is not chosen again
func (c *Client) takeBack() {
	c.logger.Warn().Str("move", c.sent.String()).Msg("move-rejected")
	if !c.sent.Valid() {
		return
	}
	if c.board.Cell(int(c.sent.Row), int(c.sent.Col)) == c.mark {
		c.board.Unplay(c.sent)
	}
	c.rejected = append(c.rejected, c.sent)
	c.last, c.sent = c.previous, uttt.MoveNone
}

// Choose our move, play it on our board and send it
func (c *Client) respond() error {
	move := c.choose()
	if err := c.board.Play(move, c.mark); err != nil {
		// The fallback (0, 0) may be taken, the server decides
		c.logger.Warn().Err(err).Str("move", move.String()).Msg("sending-unplayable-move")
	} else {
		c.previous, c.last = c.last, move
	}
	c.sent = move

	if _, err := io.WriteString(c.conn, move.String()); err != nil {
		return fmt.Errorf("send move %s: %w", move, err)
	}

	stats := c.engine.Stats()
	c.logger.Info().
		Str("move", move.String()).
		Int("score", stats.Score).
		Uint64("nodes", stats.Nodes).
		Int("time-ms", stats.TimeMs).
		Msg("move-sent")
	if c.Output != nil {
		fmt.Fprintln(c.Output, c.board.Render(c.Output))
	}
	return nil
}

func (c *Client) choose() uttt.Move {
	move, ok := c.engine.SelectMove(c.board, c.last, c.mark)
	if ok && !lo.Contains(c.rejected, move) {
		return move
	}
	return FallbackMove(c.board, c.last, c.rejected)
}

// First legal move that was not rejected, else the first empty cell,
// else (0, 0)
func FallbackMove(board *uttt.Board, last uttt.Move, rejected []uttt.Move) uttt.Move {
	for _, move := range board.LegalMoves(last, uttt.MarkEmpty).Slice() {
		if !lo.Contains(rejected, move) {
			return move
		}
	}
	for row := range 9 {
		for col := range 9 {
			move := uttt.NewMove(row, col)
			if board.Cell(row, col) == uttt.MarkEmpty && !lo.Contains(rejected, move) {
				return move
			}
		}
	}
	return uttt.NewMove(0, 0)
}
