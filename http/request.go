// Package http holds the validated request object the parser builds,
// along with the small handful of supporting types (method, version,
// headers, body) it is assembled from.
package http

import (
	"context"
	"net"

	"github.com/wireparse/wireparse/http/method"
	"github.com/wireparse/wireparse/http/proto"
	"github.com/wireparse/wireparse/kv"
	"github.com/wireparse/wireparse/transport"
)

var zeroContext = context.Background()

type (
	Headers = *kv.Storage
	Header  = kv.Pair
	Params  = *kv.Storage
)

// Request is the validated object the header state machine and form
// decoder build up. Method/Resource/RawQuery/Version/Headers are filled in
// during the header phase; Body during the body phase; QueryParams only
// once both are complete.
type Request struct {
	// RawMethod is the method token exactly as it appeared on the wire,
	// bounded by the method cap. Method is the well-known-verb
	// classification of the same token, for handlers that want to switch
	// on it.
	RawMethod string
	Method    method.Method
	// Resource is the URI path segment, not including the query string.
	Resource string
	// RawQuery is the raw bytes between '?' and the request-line
	// terminator, not percent-decoded.
	RawQuery []byte
	Version  proto.Version
	// Headers holds non-normalized header pairs; lookup is case-insensitive
	// but keys are stored verbatim.
	Headers Headers
	// ContentLength is parsed from the Content-Length header; absent or
	// unparseable is treated as 0.
	ContentLength int
	// Body holds exactly ContentLength bytes, filled in once the body
	// phase completes.
	Body []byte
	// QueryParams is populated from RawQuery and, when the content type is
	// application/x-www-form-urlencoded, from Body, after the full
	// message has been parsed.
	QueryParams Params
	// Valid is true only once the full message parsed without error.
	Valid bool

	// Remote is the peer address. Not a reliable identity signal if
	// proxies sit in front of the connection.
	Remote net.Addr
	// Ctx is user-managed context living as long as the connection does.
	Ctx context.Context
	// Env carries a fixed set of per-request values filled in outside the
	// parser (e.g. by the driver or a handler).
	Env Environment

	client   transport.Connection
	hijacked bool
}

// NewRequest returns a Request ready to be fed by the header state
// machine. headers and queryParams are caller-owned storages, reused
// across requests on the same connection to avoid per-request allocation.
func NewRequest(client transport.Connection, headers, queryParams Headers) *Request {
	return &Request{
		Method:      method.Unknown,
		Version:     proto.Version{Major: 1, Minor: 1},
		Headers:     headers,
		QueryParams: queryParams,
		Remote:      client.Remote(),
		Ctx:         zeroContext,
		client:      client,
	}
}

// Hijack takes ownership of the underlying connection away from the
// driver. After a handler hijacks a connection, the driver will not read
// or write to it again.
func (r *Request) Hijack() (transport.Connection, error) {
	r.hijacked = true
	return r.client, nil
}

// Hijacked reports whether Hijack was called for this request.
func (r *Request) Hijacked() bool {
	return r.hijacked
}

// Reset clears the request for reuse on the next message of a
// keep-alive connection.
func (r *Request) Reset() {
	r.RawMethod = ""
	r.Method = method.Unknown
	r.Resource = ""
	r.RawQuery = nil
	r.Version = proto.Version{Major: 1, Minor: 1}
	r.Headers.Clear()
	r.ContentLength = 0
	r.Body = nil
	r.QueryParams.Clear()
	r.Valid = false
	r.Ctx = zeroContext
	r.Env = Environment{}
	r.hijacked = false
}

// Environment carries values that are cheaper to store inline than to pass
// through Ctx.
type Environment struct {
	// Error holds the parse error, if the message turned out invalid.
	Error error
	// Encryption holds a TLS version for handlers that record one. The
	// driver does not fill it in, so it is 0 unless a handler sets it.
	Encryption uint16
}
