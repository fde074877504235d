// Package query is a lazy wrapper around the URI query string: decoding
// into the shared query_params multimap is deferred until something
// actually asks for a parameter.
package query

import (
	"github.com/wireparse/wireparse/errors"
	"github.com/wireparse/wireparse/internal/urlencoded"
	"github.com/wireparse/wireparse/kv"
)

type Params = *kv.Storage

// Query holds the raw query-string bytes captured by the header state
// machine and decodes them into params on first access.
type Query struct {
	parsed bool
	params Params
	raw    []byte
}

func NewQuery(underlying Params) *Query {
	return &Query{params: underlying}
}

// Set replaces the raw query bytes, invalidating any previously decoded
// params.
func (q *Query) Set(raw []byte) {
	q.raw = raw

	if q.parsed {
		q.parsed = false
		q.params.Clear()
	}
}

// Get decodes the query string on first call and returns the named
// parameter.
func (q *Query) Get(key string) (value string, err error) {
	if err = q.parse(); err != nil {
		return "", err
	}

	value, found := q.params.Get(key)
	if !found {
		err = errors.ErrNoSuchKey
	}

	return value, err
}

// Unwrap decodes the query string on first call and returns the whole
// multimap.
func (q *Query) Unwrap() (Params, error) {
	return q.params, q.parse()
}

// Raw returns the query string exactly as captured, with no decoding
// applied.
func (q *Query) Raw() []byte {
	return q.raw
}

func (q *Query) parse() error {
	if q.parsed {
		return nil
	}

	q.parsed = true

	if len(q.raw) == 0 {
		return nil
	}

	return urlencoded.Decode(q.raw, q.params)
}
