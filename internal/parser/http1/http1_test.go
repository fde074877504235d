package http1

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wireparse/wireparse/errors"
	"github.com/wireparse/wireparse/http"
	"github.com/wireparse/wireparse/kv"
	"github.com/wireparse/wireparse/transport/dummy"
)

func newRequest() *http.Request {
	conn := dummy.NewNopConnection()
	return http.NewRequest(conn, kv.New(), kv.New())
}

// feed drives p with raw split into chunks of chunkSize bytes and returns
// the final outcome, plus how many leading bytes of raw were consumed by
// the time Done or Error was reported, so callers can assert the same
// outcome for every chunk size.
func feed(t *testing.T, p *Parser, raw []byte, chunkSize int) (consumed int, result Result, err error) {
	t.Helper()

	off := 0
	for off < len(raw) {
		end := off + chunkSize
		if end > len(raw) {
			end = len(raw)
		}

		n, res, e := p.Parse(raw[off:end])
		off += n

		if res != NeedMore {
			return off, res, e
		}
	}

	return off, NeedMore, nil
}

func TestParserChunkingIndependence(t *testing.T) {
	raw := []byte("GET /hello?foo=bar HTTP/1.1\r\nHost: example.com\r\nX-Custom: value\r\n\r\n")

	for _, chunkSize := range []int{1, 2, 3, 7, 16, len(raw)} {
		req := newRequest()
		p := New(req)

		consumed, result, err := feed(t, p, raw, chunkSize)
		require.NoError(t, err)
		require.Equal(t, Done, result)
		require.Equal(t, len(raw), consumed)

		require.Equal(t, "GET", req.RawMethod)
		require.Equal(t, "/hello", req.Resource)
		require.Equal(t, "foo=bar", string(req.RawQuery))
		require.Equal(t, 1, req.Version.Major)
		require.Equal(t, 1, req.Version.Minor)

		host, found := req.Headers.Get("Host")
		require.True(t, found)
		require.Equal(t, "example.com", host)

		custom, found := req.Headers.Get("x-custom")
		require.True(t, found)
		require.Equal(t, "value", custom)
	}
}

func TestParserSimpleRequestLine(t *testing.T) {
	req := newRequest()
	p := New(req)

	raw := []byte("GET / HTTP/1.1\r\n\r\n")
	n, result, err := p.Parse(raw)

	require.NoError(t, err)
	require.Equal(t, Done, result)
	require.Equal(t, len(raw), n)
	require.Equal(t, "/", req.Resource)
	require.Empty(t, req.RawQuery)
}

func TestParserQueryString(t *testing.T) {
	req := newRequest()
	p := New(req)

	raw := []byte("GET /search?q=golang&lang=en HTTP/1.1\r\n\r\n")
	_, result, err := p.Parse(raw)

	require.NoError(t, err)
	require.Equal(t, Done, result)
	require.Equal(t, "/search", req.Resource)
	require.Equal(t, "q=golang&lang=en", string(req.RawQuery))
}

func TestParserHeaderFoldingStartsNewHeader(t *testing.T) {
	req := newRequest()
	p := New(req)

	// the continuation line is NOT appended to X-Multi's value; it starts a
	// new header whose name is the continuation's own token run.
	raw := []byte("GET / HTTP/1.1\r\nX-Multi: first\r\n Second: new\r\n\r\n")
	_, result, err := p.Parse(raw)

	require.NoError(t, err)
	require.Equal(t, Done, result)

	v, found := req.Headers.Get("X-Multi")
	require.True(t, found)
	require.Equal(t, "first", v)

	v, found = req.Headers.Get("Second")
	require.True(t, found)
	require.Equal(t, "new", v)
}

func TestParserBareCRTerminatesMessage(t *testing.T) {
	req := newRequest()
	p := New(req)

	raw := []byte("GET / HTTP/1.1\rHost: x\r\r")
	n, result, err := p.Parse(raw)

	require.NoError(t, err)
	require.Equal(t, Done, result)
	require.Equal(t, len(raw), n)
}

func TestParserBareLFTerminatesMessage(t *testing.T) {
	req := newRequest()
	p := New(req)

	raw := []byte("GET / HTTP/1.1\nHost: x\n\n")
	n, result, err := p.Parse(raw)

	require.NoError(t, err)
	require.Equal(t, Done, result)
	require.Equal(t, len(raw), n)
}

func TestParserNeedsMoreWhenIncomplete(t *testing.T) {
	req := newRequest()
	p := New(req)

	n, result, err := p.Parse([]byte("GET / HTTP/1.1\r\nHost: exam"))
	require.NoError(t, err)
	require.Equal(t, NeedMore, result)
	require.Equal(t, 26, n)
}

func TestParserRejectsBadMethodToken(t *testing.T) {
	req := newRequest()
	p := New(req)

	_, result, err := p.Parse([]byte("G\x01T / HTTP/1.1\r\n\r\n"))
	require.Equal(t, Error, result)
	require.ErrorIs(t, err, errors.ErrBadRequest)
}

func TestParserRejectsOversizedMethod(t *testing.T) {
	req := newRequest()
	p := New(req)

	oversized := make([]byte, MethodMax+1)
	for i := range oversized {
		oversized[i] = 'A'
	}

	_, result, err := p.Parse(append(oversized, ' '))
	require.Equal(t, Error, result)
	require.ErrorIs(t, err, errors.ErrTooLarge)
}

func TestParserRejectsOversizedResource(t *testing.T) {
	req := newRequest()
	p := New(req)

	oversized := make([]byte, ResourceMax+2)
	oversized[0] = '/'
	for i := 1; i < len(oversized); i++ {
		oversized[i] = 'a'
	}

	raw := append([]byte("GET "), oversized...)
	_, result, err := p.Parse(raw)
	require.Equal(t, Error, result)
	require.ErrorIs(t, err, errors.ErrURITooLong)
}

func TestParserRejectsUnsupportedProtocol(t *testing.T) {
	req := newRequest()
	p := New(req)

	_, result, err := p.Parse([]byte("GET / FTP/1.1\r\n\r\n"))
	require.Equal(t, Error, result)
	require.ErrorIs(t, err, errors.ErrUnsupportedProtocol)
}

func TestParserContentLengthFromHeader(t *testing.T) {
	req := newRequest()
	p := New(req)

	raw := []byte("POST / HTTP/1.1\r\nContent-Length: 42\r\n\r\n")
	_, result, err := p.Parse(raw)

	require.NoError(t, err)
	require.Equal(t, Done, result)
	require.Equal(t, 42, req.ContentLength)
}

func TestParserMissingContentLengthDefaultsToZero(t *testing.T) {
	req := newRequest()
	p := New(req)

	raw := []byte("GET / HTTP/1.1\r\n\r\n")
	_, result, err := p.Parse(raw)

	require.NoError(t, err)
	require.Equal(t, Done, result)
	require.Equal(t, 0, req.ContentLength)
}

func TestParserVersionAccumulatesMultiDigit(t *testing.T) {
	req := newRequest()
	p := New(req)

	raw := []byte("GET / HTTP/12.34\r\n\r\n")
	_, result, err := p.Parse(raw)

	require.NoError(t, err)
	require.Equal(t, Done, result)
	require.Equal(t, 12, req.Version.Major)
	require.Equal(t, 34, req.Version.Minor)
}

func TestParserResetReusesScratchBuffers(t *testing.T) {
	req := newRequest()
	p := New(req)

	raw := []byte("GET /first HTTP/1.1\r\nHost: a\r\n\r\n")
	_, result, err := p.Parse(raw)
	require.NoError(t, err)
	require.Equal(t, Done, result)
	require.Equal(t, "/first", req.Resource)

	req2 := newRequest()
	p.Reset(req2)

	raw2 := []byte("POST /second HTTP/1.1\r\nHost: b\r\n\r\n")
	_, result, err = p.Parse(raw2)
	require.NoError(t, err)
	require.Equal(t, Done, result)
	require.Equal(t, "/second", req2.Resource)

	host, found := req2.Headers.Get("Host")
	require.True(t, found)
	require.Equal(t, "b", host)
}
