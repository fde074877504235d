// Package urlencoded decodes application/x-www-form-urlencoded byte
// sequences (`name=value&name2=value2`) into a multimap. It is used both
// for the URI query string and for form bodies of that content type.
//
// No percent-decoding happens here: that's left to the caller, so
// '%'-escapes are stored as literal bytes, same as any other name/value
// byte.
package urlencoded

import (
	"github.com/wireparse/wireparse/errors"
	"github.com/wireparse/wireparse/internal/charset"
	"github.com/wireparse/wireparse/kv"
)

const (
	NameMax  = 1024
	ValueMax = 1_048_576
)

// Decode parses data into dst, appending each decoded pair. It fails on an
// empty name, a control byte in either name or value, or a field exceeding
// its cap.
func Decode(data []byte, dst *kv.Storage) error {
	const (
		parsingName = iota
		parsingValue
	)

	state := parsingName
	var name, value []byte

	flush := func() error {
		if len(name) == 0 {
			return errors.ErrBadQuery
		}

		dst.Add(string(name), string(value))
		name, value = nil, nil

		return nil
	}

	for _, b := range data {
		switch state {
		case parsingName:
			switch {
			case b == '=':
				if len(name) == 0 {
					return errors.ErrBadQuery
				}
				state = parsingValue
			case b == '&':
				if err := flush(); err != nil {
					return err
				}
			case charset.IsControl(b):
				return errors.ErrBadQuery
			case len(name) >= NameMax:
				return errors.ErrBadQuery
			default:
				name = append(name, b)
			}
		case parsingValue:
			switch {
			case b == '&':
				if err := flush(); err != nil {
					return err
				}
				state = parsingName
			case charset.IsControl(b):
				return errors.ErrBadQuery
			case len(value) >= ValueMax:
				return errors.ErrBadQuery
			default:
				value = append(value, b)
			}
		}
	}

	if len(name) > 0 {
		return flush()
	}

	return nil
}
