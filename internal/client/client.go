// Package client speaks the competition server protocol: length-prefixed
// UTF-8 JSON messages over TCP, one connection per player.
package client

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"net"

	"github.com/rs/zerolog"

	"github.com/mmazzocchetti/tablut/internal/board"
)

// Server ports, one per role.
const (
	WhitePort = 5800
	BlackPort = 5801
)

// maxMessageSize bounds an incoming frame; state messages are well under
// this even with a fully populated board.
const maxMessageSize = 1 << 20

// Client is a connection to the game server for one side.
type Client struct {
	conn net.Conn
	role board.Color
	name string
	log  zerolog.Logger
}

// Dial connects to the server on the port matching the role and declares
// the player name.
func Dial(ctx context.Context, host string, role board.Color, name string, log zerolog.Logger) (*Client, error) {
	port := WhitePort
	if role == board.Black {
		port = BlackPort
	}
	addr := fmt.Sprintf("%s:%d", host, port)

	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", addr, err)
	}

	c := &Client{conn: conn, role: role, name: name, log: log}
	if err := c.declareName(); err != nil {
		conn.Close()
		return nil, err
	}

	c.log.Info().Str("server", addr).Str("role", role.String()).Str("name", name).Msg("connected")
	return c, nil
}

// Close closes the connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

// Role returns the side this client plays.
func (c *Client) Role() board.Color {
	return c.role
}

// declareName sends the player name as the opening message.
func (c *Client) declareName() error {
	if err := c.writeJSON(c.name); err != nil {
		return fmt.Errorf("declaring name: %w", err)
	}
	return nil
}

// ReadState blocks until the server publishes the next game state.
func (c *Client) ReadState() (*State, error) {
	raw, err := c.readFrame()
	if err != nil {
		return nil, fmt.Errorf("reading state: %w", err)
	}

	state, err := ParseState(raw)
	if err != nil {
		return nil, err
	}

	c.log.Debug().Str("status", state.Status.String()).Msg("state received")
	return state, nil
}

// SendMove submits a move for this client's side.
func (c *Client) SendMove(m board.Move) error {
	msg := actionMessage{
		From: m.From().String(),
		To:   m.To().String(),
		Turn: wireColor(c.role),
	}
	if err := c.writeJSON(msg); err != nil {
		return fmt.Errorf("sending move %s: %w", m, err)
	}
	c.log.Info().Str("move", m.String()).Msg("move sent")
	return nil
}

// writeJSON frames a JSON payload with a 4-byte big-endian length prefix.
func (c *Client) writeJSON(v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}

	var length [4]byte
	binary.BigEndian.PutUint32(length[:], uint32(len(payload)))
	if _, err := c.conn.Write(length[:]); err != nil {
		return err
	}
	_, err = c.conn.Write(payload)
	return err
}

// readFrame reads one length-prefixed message.
func (c *Client) readFrame() ([]byte, error) {
	var length [4]byte
	if _, err := io.ReadFull(c.conn, length[:]); err != nil {
		return nil, err
	}
	n := binary.BigEndian.Uint32(length[:])
	if n > maxMessageSize {
		return nil, fmt.Errorf("oversized message: %d bytes", n)
	}

	payload := make([]byte, n)
	if _, err := io.ReadFull(c.conn, payload); err != nil {
		return nil, err
	}
	return payload, nil
}
