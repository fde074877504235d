// Package http1 implements the incremental HTTP/1.x header state machine:
// one byte consumed per step, resumable across an arbitrary number of
// Parse calls, with no upper bound on how small a single fragment may be.
//
// It tolerates two historical deviations from RFC 2616: a bare CR or a
// bare LF, on its own, terminates the message the same way CRLF CRLF
// would. It also treats a folded continuation line (one starting with SP
// or HT) as the start of a brand new header rather than appending to the
// previous header's value — a deliberate deviation from RFC 2616's
// line-folding semantics that keeps a single header block one pass, no
// lookahead required.
package http1

import (
	"github.com/wireparse/wireparse/errors"
	"github.com/wireparse/wireparse/http"
	"github.com/wireparse/wireparse/http/method"
	"github.com/wireparse/wireparse/internal/charset"
)

// Result is the three-way outcome of feeding a chunk to the parser. It is
// deliberately not a bool: "not done yet" and "failed" are distinct
// outcomes a caller must handle differently (NeedMore asks for another
// read; Error marks the request invalid and stops reading).
type Result uint8

const (
	NeedMore Result = iota
	Done
	Error
)

const (
	MethodMax      = 1024
	ResourceMax    = 262_144
	QueryStringMax = 1_048_576
	HeaderNameMax  = 1024
	HeaderValueMax = 1_048_576
)

type state uint8

const (
	stateMethodStart state = iota
	stateMethod
	stateURIStem
	stateURIQuery
	stateVersionH
	stateVersionT1
	stateVersionT2
	stateVersionP
	stateVersionSlash
	stateVersionMajorStart
	stateVersionMajor
	stateVersionMinorStart
	stateVersionMinor
	stateExpectingNewline
	stateExpectingCR
	stateHeaderWhitespace
	stateHeaderStart
	stateHeaderName
	stateSpaceBeforeHeaderValue
	stateHeaderValue
	stateExpectingFinalNewline
	stateExpectingFinalCR
)

// Parser holds the in-progress scratch state for a single request. It is
// reused across keep-alive requests on the same connection via Reset.
type Parser struct {
	state state
	req   *http.Request

	method      []byte
	resource    []byte
	query       []byte
	headerName  []byte
	headerValue []byte
}

// New returns a parser that will fill req as it consumes bytes.
func New(req *http.Request) *Parser {
	return &Parser{req: req, state: stateMethodStart}
}

// Reset rearms the parser for the next message on the same connection,
// targeting a (possibly different) request and reusing its scratch
// buffers' backing arrays.
func (p *Parser) Reset(req *http.Request) {
	p.state = stateMethodStart
	p.req = req
	p.method = p.method[:0]
	p.resource = p.resource[:0]
	p.query = p.query[:0]
	p.headerName = p.headerName[:0]
	p.headerValue = p.headerValue[:0]
}

// Parse feeds data to the state machine, advancing req as it goes. It
// returns the number of bytes consumed and the outcome. On Done, data[n:]
// is the first unconsumed byte, i.e. the start of the body. On Error, err
// names the specific parse failure.
func (p *Parser) Parse(data []byte) (n int, result Result, err error) {
	for n = 0; n < len(data); n++ {
		c := data[n]

		switch p.state {
		case stateMethodStart:
			if !charset.IsToken(c) {
				return n, Error, errors.ErrBadRequest
			}

			p.method = append(p.method, c)
			p.state = stateMethod

		case stateMethod:
			switch {
			case c == ' ':
				p.req.RawMethod = string(p.method)
				p.req.Method = method.Parse(p.req.RawMethod)
				p.resource = p.resource[:0]
				p.state = stateURIStem
			case !charset.IsToken(c):
				return n, Error, errors.ErrBadRequest
			case len(p.method) >= MethodMax:
				return n, Error, errors.ErrTooLarge
			default:
				p.method = append(p.method, c)
			}

		case stateURIStem:
			switch {
			case c == ' ':
				p.req.Resource = string(p.resource)
				p.state = stateVersionH
			case c == '?':
				p.req.Resource = string(p.resource)
				p.query = p.query[:0]
				p.state = stateURIQuery
			case charset.IsControl(c):
				return n, Error, errors.ErrBadRequest
			case len(p.resource) >= ResourceMax:
				return n, Error, errors.ErrURITooLong
			default:
				p.resource = append(p.resource, c)
			}

		case stateURIQuery:
			switch {
			case c == ' ':
				p.req.RawQuery = append([]byte(nil), p.query...)
				p.state = stateVersionH
			case charset.IsControl(c):
				return n, Error, errors.ErrBadRequest
			case len(p.query) >= QueryStringMax:
				return n, Error, errors.ErrTooLarge
			default:
				p.query = append(p.query, c)
			}

		case stateVersionH:
			if c != 'H' {
				return n, Error, errors.ErrUnsupportedProtocol
			}
			p.state = stateVersionT1

		case stateVersionT1:
			if c != 'T' {
				return n, Error, errors.ErrUnsupportedProtocol
			}
			p.state = stateVersionT2

		case stateVersionT2:
			if c != 'T' {
				return n, Error, errors.ErrUnsupportedProtocol
			}
			p.state = stateVersionP

		case stateVersionP:
			if c != 'P' {
				return n, Error, errors.ErrUnsupportedProtocol
			}
			p.state = stateVersionSlash

		case stateVersionSlash:
			if c != '/' {
				return n, Error, errors.ErrUnsupportedProtocol
			}
			p.state = stateVersionMajorStart

		case stateVersionMajorStart:
			if !charset.IsDigit(c) {
				return n, Error, errors.ErrUnsupportedProtocol
			}
			p.req.Version.Major = int(c - '0')
			p.state = stateVersionMajor

		case stateVersionMajor:
			switch {
			case c == '.':
				p.state = stateVersionMinorStart
			case charset.IsDigit(c):
				p.req.Version = p.req.Version.AccumulateMajor(int(c - '0'))
			default:
				return n, Error, errors.ErrUnsupportedProtocol
			}

		case stateVersionMinorStart:
			if !charset.IsDigit(c) {
				return n, Error, errors.ErrUnsupportedProtocol
			}
			p.req.Version.Minor = int(c - '0')
			p.state = stateVersionMinor

		case stateVersionMinor:
			switch {
			case c == '\r':
				p.state = stateExpectingNewline
			case c == '\n':
				p.state = stateExpectingCR
			case charset.IsDigit(c):
				p.req.Version = p.req.Version.AccumulateMinor(int(c - '0'))
			default:
				return n, Error, errors.ErrUnsupportedProtocol
			}

		case stateExpectingNewline:
			switch {
			case c == '\n':
				p.state = stateHeaderStart
			case c == '\r':
				// a second CR in a row: bare-CR termination
				p.finishHeaders()
				return n + 1, Done, nil
			case charset.IsWS(c):
				p.state = stateHeaderWhitespace
			case !charset.IsToken(c):
				return n, Error, errors.ErrBadRequest
			default:
				p.headerName = append(p.headerName[:0], c)
				p.state = stateHeaderName
			}

		case stateExpectingCR:
			switch {
			case c == '\r':
				p.state = stateHeaderStart
			case c == '\n':
				// a second bare LF in a row: bare-LF termination
				p.finishHeaders()
				return n + 1, Done, nil
			case charset.IsWS(c):
				p.state = stateHeaderWhitespace
			case !charset.IsToken(c):
				return n, Error, errors.ErrBadRequest
			default:
				p.headerName = append(p.headerName[:0], c)
				p.state = stateHeaderName
			}

		case stateHeaderWhitespace:
			switch {
			case c == '\r':
				p.state = stateExpectingNewline
			case c == '\n':
				p.state = stateExpectingCR
			case charset.IsWS(c):
				// stay in whitespace
			case !charset.IsToken(c):
				return n, Error, errors.ErrBadRequest
			default:
				// a folded continuation line starts a NEW header, it does
				// not extend the previous one
				p.headerName = append(p.headerName[:0], c)
				p.state = stateHeaderName
			}

		case stateHeaderStart:
			switch {
			case c == '\r':
				p.state = stateExpectingFinalNewline
			case c == '\n':
				p.state = stateExpectingFinalCR
			case charset.IsWS(c):
				p.state = stateHeaderWhitespace
			case !charset.IsToken(c):
				return n, Error, errors.ErrBadRequest
			default:
				p.headerName = append(p.headerName[:0], c)
				p.state = stateHeaderName
			}

		case stateHeaderName:
			switch {
			case c == ':':
				p.headerValue = p.headerValue[:0]
				p.state = stateSpaceBeforeHeaderValue
			case !charset.IsToken(c):
				return n, Error, errors.ErrBadRequest
			case len(p.headerName) >= HeaderNameMax:
				return n, Error, errors.ErrHeaderFieldsTooLarge
			default:
				p.headerName = append(p.headerName, c)
			}

		case stateSpaceBeforeHeaderValue:
			switch {
			case c == ' ':
				p.state = stateHeaderValue
			case c == '\r':
				p.addHeader()
				p.state = stateExpectingNewline
			case c == '\n':
				p.addHeader()
				p.state = stateExpectingCR
			case charset.IsControl(c):
				return n, Error, errors.ErrBadRequest
			default:
				p.headerValue = append(p.headerValue, c)
				p.state = stateHeaderValue
			}

		case stateHeaderValue:
			switch {
			case c == '\r':
				p.addHeader()
				p.state = stateExpectingNewline
			case c == '\n':
				p.addHeader()
				p.state = stateExpectingCR
			case charset.IsControl(c):
				return n, Error, errors.ErrBadRequest
			case len(p.headerValue) >= HeaderValueMax:
				return n, Error, errors.ErrHeaderFieldsTooLarge
			default:
				p.headerValue = append(p.headerValue, c)
			}

		case stateExpectingFinalNewline:
			if c == '\n' {
				n++
			}

			p.finishHeaders()

			return n, Done, nil

		case stateExpectingFinalCR:
			if c == '\r' {
				n++
			}

			p.finishHeaders()

			return n, Done, nil
		}
	}

	return n, NeedMore, nil
}

func (p *Parser) addHeader() {
	p.req.Headers.Add(string(p.headerName), string(p.headerValue))
}

func (p *Parser) finishHeaders() {
	p.req.ContentLength = contentLength(p.req.Headers.Value("Content-Length"))
}

func contentLength(raw string) int {
	if len(raw) == 0 {
		return 0
	}

	n := 0

	for i := 0; i < len(raw); i++ {
		if !charset.IsDigit(raw[i]) {
			return 0
		}

		n = n*10 + int(raw[i]-'0')
	}

	return n
}
