// Package cookie is a deliberate stub. Cookie header syntax ("name=value;
// name2=value2") isn't covered by this parser's grammar. Rather than
// silently discard Cookie headers, Jar and Parse make the gap explicit so
// a caller learns about it instead of getting an empty, misleadingly-
// successful result.
package cookie

import (
	"github.com/wireparse/wireparse/errors"
	"github.com/wireparse/wireparse/kv"
)

// Jar is the storage shape a future cookie parser would populate.
type Jar = *kv.Storage

func NewJar() Jar {
	return kv.New()
}

// Parse always fails: Cookie-header parsing is out of scope for this
// parser. Callers that need cookies must decode the raw header value
// themselves.
func Parse(Jar, string) error {
	return errors.ErrCookiesNotSupported
}
