// Package peer carries move messages between the two players over a raw
// TCP stream. The host listens and plays black, the other side dials in and
// plays white.
package peer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rocketscienceinc/goban-backend/internal/entity"
	"github.com/rocketscienceinc/goban-backend/internal/protocol"
)

const DefaultPort = "8642"

// maxEmptyReads bounds consecutive zero-byte reads, as bufio does.
const maxEmptyReads = 100

var ErrPeerClosed = errors.New("peer closed the connection")

// Conn is an established session with the other player.
type Conn struct {
	conn  net.Conn
	color entity.Color
	buf   []byte
}

func newConn(conn net.Conn, color entity.Color) *Conn {
	return &Conn{
		conn:  conn,
		color: color,
		buf:   make([]byte, protocol.MaxMessageSize),
	}
}

// Color is the local player's color, fixed by the side of the connection.
func (that *Conn) Color() entity.Color {
	return that.color
}

func (that *Conn) RemoteAddr() net.Addr {
	return that.conn.RemoteAddr()
}

// Send - writes one move message.
func (that *Conn) Send(move protocol.Move) error {
	if _, err := that.conn.Write(protocol.Encode(move)); err != nil {
		return fmt.Errorf("failed to send move %s: %w", move, err)
	}

	return nil
}

// Receive - blocks until one move message arrives. The stream is not
// framed: reads are joined while the bytes so far are only the start of a
// message, and whatever is complete is decoded as one message.
func (that *Conn) Receive() (protocol.Move, error) {
	n, emptyReads := 0, 0

	for {
		read, err := that.conn.Read(that.buf[n:])
		n += read

		switch {
		case n > 0 && (err != nil || n == len(that.buf) || !protocol.Incomplete(that.buf[:n])):
			move, decodeErr := protocol.Decode(that.buf[:n])
			if decodeErr != nil {
				return protocol.Move{}, fmt.Errorf("failed to decode move: %w", decodeErr)
			}

			return move, nil
		case err != nil:
			if errors.Is(err, net.ErrClosed) || errors.Is(err, io.EOF) {
				return protocol.Move{}, ErrPeerClosed
			}

			return protocol.Move{}, fmt.Errorf("failed to read move: %w", err)
		case read == 0:
			emptyReads++
			if emptyReads >= maxEmptyReads {
				return protocol.Move{}, fmt.Errorf("failed to read move: %w", io.ErrNoProgress)
			}
		default:
			emptyReads = 0
		}
	}
}

func (that *Conn) Close() error {
	return that.conn.Close()
}

// Listener waits for the joining player.
type Listener struct {
	logger *slog.Logger
	ln     net.Listener
}

// Listen - opens the host side on addr.
func Listen(ctx context.Context, logger *slog.Logger, addr string) (*Listener, error) {
	var lc net.ListenConfig

	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	return &Listener{
		logger: logger.With("component", "peer"),
		ln:     ln,
	}, nil
}

func (that *Listener) Addr() net.Addr {
	return that.ln.Addr()
}

// Accept - waits for one peer. The host plays black.
func (that *Listener) Accept(ctx context.Context) (*Conn, error) {
	stop := context.AfterFunc(ctx, func() {
		_ = that.ln.Close()
	})
	defer stop()

	conn, err := that.ln.Accept()
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("accept canceled: %w", ctx.Err())
		}

		return nil, fmt.Errorf("failed to accept peer: %w", err)
	}

	that.logger.Info("peer connected, starting game", "remote", conn.RemoteAddr().String())

	return newConn(conn, entity.Black), nil
}

func (that *Listener) Close() error {
	return that.ln.Close()
}

// Dial - connects to the host, retrying with exponential backoff until
// maxWait elapses or ctx is done. The joining side plays white.
func Dial(ctx context.Context, logger *slog.Logger, addr string, maxWait time.Duration) (*Conn, error) {
	log := logger.With("component", "peer")

	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = maxWait

	var dialer net.Dialer
	var conn net.Conn

	operation := func() error {
		c, err := dialer.DialContext(ctx, "tcp", addr)
		if err != nil {
			return err
		}

		conn = c

		return nil
	}

	notify := func(err error, wait time.Duration) {
		log.Warn("host not reachable, retrying", "addr", addr, "error", err, "wait", wait)
	}

	if err := backoff.RetryNotify(operation, backoff.WithContext(policy, ctx), notify); err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", addr, err)
	}

	log.Info("connected to host", "addr", addr)

	return newConn(conn, entity.White), nil
}
