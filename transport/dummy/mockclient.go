package dummy

import (
	"io"
	"net"

	"github.com/wireparse/wireparse/transport"
)

var _ transport.Connection = new(MockConnection)

// MockConnection hands out the byte slices it was constructed with, in
// order, across successive reads (then io.EOF, unless LoopReads is set),
// and records everything written to it, making it a universal fixture for
// driver and parser tests.
type MockConnection struct {
	closed     bool
	loop       bool
	journaling bool
	pointer    int
	pending    []byte
	written    []byte
	data       [][]byte
}

func NewMockConnection(data ...[]byte) *MockConnection {
	return &MockConnection{
		data:       data,
		journaling: true,
	}
}

func (c *MockConnection) ReadSome(buf []byte) (int, error) {
	if c.closed {
		return 0, io.EOF
	}

	if len(c.pending) == 0 {
		if c.pointer >= len(c.data) {
			if !c.loop {
				c.closed = true
				return 0, io.EOF
			}

			c.pointer = 0
		}

		c.pending = c.data[c.pointer]
		c.pointer++
	}

	n := copy(buf, c.pending)
	c.pending = c.pending[n:]

	if len(c.pending) == 0 {
		c.pending = nil
	}

	return n, nil
}

func (c *MockConnection) ReadExact(buf []byte) error {
	filled := 0

	for filled < len(buf) {
		n, err := c.ReadSome(buf[filled:])
		filled += n

		if err != nil {
			return err
		}
	}

	return nil
}

func (c *MockConnection) Pushback(takeback []byte) {
	c.pending = append(takeback, c.pending...)
}

func (c *MockConnection) Write(p []byte) (int, error) {
	if c.journaling {
		c.written = append(c.written, p...)
	}

	return len(p), nil
}

func (c *MockConnection) Conn() net.Conn {
	return new(Conn).Nop()
}

func (*MockConnection) Remote() net.Addr {
	return nil
}

func (c *MockConnection) Finish() error {
	c.closed = true
	return nil
}

// LoopReads makes the connection replay its data slices forever instead of
// returning io.EOF once they're exhausted.
func (c *MockConnection) LoopReads() *MockConnection {
	c.loop = true
	return c
}

func (c *MockConnection) Journaling(flag bool) *MockConnection {
	c.journaling = flag
	return c
}

func (c *MockConnection) Written() string {
	if !c.journaling {
		panic("mock connection: cannot access written data: journaling is disabled!")
	}

	return string(c.written)
}

// NewNopConnection returns a connection that yields EOF immediately and
// discards anything written to it.
func NewNopConnection() *MockConnection {
	conn := NewMockConnection()
	conn.closed = true
	conn.journaling = false

	return conn
}
