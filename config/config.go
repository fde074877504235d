// Package config holds settings used across the parser and transport
// layers: caps, buffer sizes, and timeouts.
package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type (
	URI struct {
		// ResourceMax bounds the path segment of the request line, not
		// including the query string.
		ResourceMax int
		// QueryStringMax bounds the raw bytes between '?' and the request
		// line terminator.
		QueryStringMax int
	}

	Headers struct {
		// NameMax bounds a single header's name.
		NameMax int
		// ValueMax bounds a single header's value.
		ValueMax int
	}

	Form struct {
		// NameMax bounds a single x-www-form-urlencoded field's name.
		NameMax int
		// ValueMax bounds a single x-www-form-urlencoded field's value.
		ValueMax int
	}

	Body struct {
		// Max bounds how many bytes of body the driver will read, taken
		// from the Content-Length header.
		Max int
	}

	Method struct {
		// Max bounds the request-line method token.
		Max int
	}

	NET struct {
		// ReadBufferSize is the size of the buffer connections read into.
		ReadBufferSize int
		// ReadTimeout closes a connection that has gone idle for this long.
		ReadTimeout time.Duration
		// AcceptLoopInterruptPeriod controls how often Accept() is
		// interrupted to check whether the listener has been asked to stop.
		AcceptLoopInterruptPeriod time.Duration
	}
)

// Config holds every cap and timing knob the driver and transport consult.
//
// You must ALWAYS start from Default() and override only what you need,
// rather than constructing a Config from scratch: every field of a zero
// Config is zero, including NET.ReadBufferSize and Body.Max, which the
// driver uses as-is.
type Config struct {
	Method  Method
	URI     URI
	Headers Headers
	Form    Form
	Body    Body
	NET     NET
}

// Default returns the config carrying the literal cap values.
func Default() *Config {
	return &Config{
		Method: Method{
			Max: 1024,
		},
		URI: URI{
			ResourceMax:    262_144,
			QueryStringMax: 1_048_576,
		},
		Headers: Headers{
			NameMax:  1024,
			ValueMax: 1_048_576,
		},
		Form: Form{
			NameMax:  1024,
			ValueMax: 1_048_576,
		},
		Body: Body{
			Max: 1_048_576,
		},
		NET: NET{
			ReadBufferSize:            4 * 1024,
			ReadTimeout:               90 * time.Second,
			AcceptLoopInterruptPeriod: 5 * time.Second,
		},
	}
}

// Load reads a YAML file at path and overlays it onto Default(), so a
// config file only needs to name the fields it actually overrides.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
