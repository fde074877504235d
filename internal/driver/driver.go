// Package driver orchestrates a single connection's lifetime: read, feed
// the header state machine, fill the body, decode query/form params, and
// dispatch to the handler. It owns no parsing logic of its own beyond the
// sequencing the original request/response loop needs.
package driver

import (
	"context"
	"errors"
	"io"
	"log"

	"github.com/dchest/uniuri"

	"github.com/wireparse/wireparse/config"
	werrors "github.com/wireparse/wireparse/errors"
	"github.com/wireparse/wireparse/http"
	"github.com/wireparse/wireparse/http/mime"
	"github.com/wireparse/wireparse/http/query"
	"github.com/wireparse/wireparse/internal/parser/http1"
	"github.com/wireparse/wireparse/internal/strutil"
	"github.com/wireparse/wireparse/internal/urlencoded"
	"github.com/wireparse/wireparse/kv"
	"github.com/wireparse/wireparse/transport"
)

// Handler is the contract every request ultimately reaches: it owns the
// response entirely, and is called exactly once per message, successful
// or not. req.Valid distinguishes the two cases.
type Handler func(req *http.Request, conn transport.Connection)

// Serve drives conn until the peer disconnects or sends something the
// state machine can't recover from, dispatching every complete (or
// irrecoverably broken) message to handler.
func Serve(ctx context.Context, conn transport.Connection, cfg *config.Config, handler Handler) {
	id := uniuri.New()
	buf := make([]byte, cfg.NET.ReadBufferSize)

	headers := kv.New()
	queryParams := kv.New()
	req := http.NewRequest(conn, headers, queryParams)
	req.Ctx = ctx

	parser := http1.New(req)

	for {
		n, read, result, parseErr, ioErr := readAndParse(conn, parser, buf)
		if ioErr != nil {
			logReadError(id, ioErr)
			return
		}

		switch result {
		case http1.NeedMore:
			continue
		case http1.Error:
			req.Valid = false
			req.Env.Error = parseErr
			handler(req, conn)
			return
		}

		// Done: n bytes of buf belong to the header block, anything past
		// it up to read is either the start of the body or the next
		// pipelined message. Bytes past read were never filled by the
		// last conn.ReadSome and must not be treated as data.
		leftover := buf[n:read]

		if req.ContentLength > cfg.Body.Max {
			req.Valid = false
			req.Env.Error = werrors.ErrTooLarge
			handler(req, conn)
			return
		}

		if err := fillBody(conn, req, &leftover); err != nil {
			logReadError(id, err)
			return
		}

		req.Valid = true
		if err := decodeParams(req); err != nil {
			log.Printf("[%s] param decode: %s", id, err)
		}

		handler(req, conn)

		if req.Hijacked() {
			return
		}

		conn.Pushback(leftover)
		req.Reset()
		req.Ctx = ctx
		parser.Reset(req)
	}
}

// readAndParse feeds the parser from conn until it reaches a conclusive
// result. n is how many bytes of the last read belonged to the header
// block; read is how many bytes that last conn.ReadSome actually filled
// (buf beyond read holds no data and must not be treated as a tail).
// ioErr is a transport-level failure; parseErr is the state machine's own
// sentinel when result is http1.Error. The two are kept separate since a
// parse error still has to reach the handler, while an I/O error doesn't.
func readAndParse(conn transport.Connection, parser *http1.Parser, buf []byte) (n, read int, result http1.Result, parseErr, ioErr error) {
	for {
		read, ioErr = conn.ReadSome(buf)
		if ioErr != nil {
			return 0, 0, http1.NeedMore, nil, ioErr
		}

		n, result, parseErr = parser.Parse(buf[:read])
		if result != http1.NeedMore {
			return n, read, result, parseErr, nil
		}
	}
}

// fillBody reads exactly req.ContentLength bytes into req.Body, using
// leftover (bytes already read past the header block) before asking conn
// for more.
func fillBody(conn transport.Connection, req *http.Request, leftover *[]byte) error {
	want := req.ContentLength

	if want == 0 {
		req.Body = nil
		return nil
	}

	body := make([]byte, want)
	filled := copy(body, *leftover)
	*leftover = (*leftover)[filled:]

	if filled < want {
		if err := conn.ReadExact(body[filled:]); err != nil {
			return err
		}
	}

	req.Body = body

	return nil
}

// decodeParams populates req.QueryParams from the raw query string and,
// for application/x-www-form-urlencoded bodies, from req.Body too. Either
// decode is best-effort: a malformed query string or body never
// invalidates an otherwise well-formed request, so a failure here is
// reported to the caller for logging only.
func decodeParams(req *http.Request) error {
	q := query.NewQuery(req.QueryParams)
	q.Set(req.RawQuery)

	_, queryErr := q.Unwrap()

	contentType, _ := strutil.CutHeader(req.Headers.Value("Content-Type"))
	if contentType == mime.FormUrlencoded && len(req.Body) > 0 {
		if err := urlencoded.Decode(req.Body, req.QueryParams); err != nil {
			return err
		}
	}

	return queryErr
}

// logReadError writes a single diagnostic line, distinguishing connection
// cancellation from other I/O errors so operators don't mistake a normal
// client disconnect for a transport fault.
func logReadError(id string, err error) {
	switch {
	case errors.Is(err, io.EOF), errors.Is(err, context.Canceled):
		log.Printf("[%s] connection closed", id)
	case errors.Is(err, werrors.ErrShutdown):
		log.Printf("[%s] connection closed for shutdown", id)
	default:
		log.Printf("[%s] read error: %v", id, err)
	}
}
