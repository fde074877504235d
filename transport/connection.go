package transport

import (
	"io"
	"net"
	"time"
)

// Connection is the transport contract the parse driver consumes: byte
// delivery only, no framing or TLS semantics assumed.
type Connection interface {
	// ReadSome delivers 1..len(buf) bytes, or an error (including
	// cancellation).
	ReadSome(buf []byte) (int, error)
	// ReadExact completes only once exactly len(buf) bytes have been read
	// into buf, or an error occurs first.
	ReadExact(buf []byte) error
	// Pushback preserves unconsumed bytes from the current read for the
	// next ReadSome call.
	Pushback([]byte)
	// Write writes to the underlying connection. The parser never calls
	// this; it exists for handlers.
	Write([]byte) (int, error)
	// Conn unwraps the underlying net.Conn.
	Conn() net.Conn
	// Remote returns the peer address.
	Remote() net.Addr
	// Finish closes the connection, forcing the peer to establish a new
	// one for any further requests.
	Finish() error
}

type connection struct {
	conn    net.Conn
	buff    []byte
	pending []byte
	timeout time.Duration
}

func NewConnection(conn net.Conn, timeout time.Duration, buff []byte) Connection {
	return &connection{
		buff:    buff,
		conn:    conn,
		timeout: timeout,
	}
}

// ReadSome reads data into buf, unless pending bytes from a prior Pushback
// are available first.
func (c *connection) ReadSome(buf []byte) (int, error) {
	if len(c.pending) > 0 {
		n := copy(buf, c.pending)
		c.pending = c.pending[n:]

		if len(c.pending) == 0 {
			c.pending = nil
		}

		return n, nil
	}

	if err := c.conn.SetReadDeadline(time.Now().Add(c.timeout)); err != nil {
		return 0, err
	}

	return c.conn.Read(buf)
}

// ReadExact blocks until buf is completely filled, draining any pending
// bytes first.
func (c *connection) ReadExact(buf []byte) error {
	filled := 0

	if len(c.pending) > 0 {
		filled = copy(buf, c.pending)
		c.pending = c.pending[filled:]

		if len(c.pending) == 0 {
			c.pending = nil
		}
	}

	if filled == len(buf) {
		return nil
	}

	if err := c.conn.SetReadDeadline(time.Now().Add(c.timeout)); err != nil {
		return err
	}

	_, err := io.ReadFull(c.conn, buf[filled:])
	return err
}

// Pending returns data (if any) preserved via Pushback.
func (c *connection) Pending() []byte {
	return c.pending
}

// Pushback preserves a chunk of data from previous read for the next read.
func (c *connection) Pushback(b []byte) {
	c.pending = b
}

// Conn unwraps the underlying net.Conn.
func (c *connection) Conn() net.Conn {
	return c.conn
}

// Write writes data into the underlying connection.
func (c *connection) Write(b []byte) (int, error) {
	return c.conn.Write(b)
}

// Remote returns the remote address of the connection.
func (c *connection) Remote() net.Addr {
	return c.conn.RemoteAddr()
}

// Finish closes the connection.
func (c *connection) Finish() error {
	return c.conn.Close()
}
