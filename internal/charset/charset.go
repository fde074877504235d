// Package charset implements the byte-classification predicates the header
// state machine is built on (RFC 2616 §2.2 token grammar).
package charset

import "github.com/scott-ainsworth/go-ascii"

// IsChar reports whether b belongs to the US-ASCII range the grammar is
// defined over.
func IsChar(b byte) bool {
	return b <= 127
}

// IsControl reports whether b is a CTL octet (0-31 or DEL).
func IsControl(b byte) bool {
	return b <= 31 || b == 127
}

// IsDigit reports whether b is an ASCII decimal digit.
func IsDigit(b byte) bool {
	return ascii.IsDigit(b)
}

// tspecials is the RFC 2616 §2.2 "tspecials" set, plus SP and HT which the
// grammar also excludes from token.
var tspecials = [256]bool{
	'(': true, ')': true, '<': true, '>': true, '@': true,
	',': true, ';': true, ':': true, '\\': true, '"': true,
	'/': true, '[': true, ']': true, '?': true, '=': true,
	'{': true, '}': true, ' ': true, '\t': true,
}

// IsTSpecial reports whether b is one of the token-delimiting special
// characters.
func IsTSpecial(b byte) bool {
	return tspecials[b]
}

// IsToken reports whether b may appear as a token octet: a char, not a
// control character, not a tspecial.
func IsToken(b byte) bool {
	return IsChar(b) && !IsControl(b) && !IsTSpecial(b)
}

// IsWS reports whether b is a linear-whitespace octet (SP or HT), used to
// detect header-folding continuation lines.
func IsWS(b byte) bool {
	return b == ' ' || b == '\t'
}
