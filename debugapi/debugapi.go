// Package debugapi exposes the active config.Config as a JSON response,
// for operators to confirm which caps a running instance was started
// with. It's the one place in this module that writes a response body,
// since nothing else here owns response semantics (see driver.Handler).
package debugapi

import (
	"fmt"
	"log"

	json "github.com/json-iterator/go"

	"github.com/wireparse/wireparse/config"
	"github.com/wireparse/wireparse/http"
	"github.com/wireparse/wireparse/transport"
)

// Handler returns a driver.Handler that ignores the request and reports
// cfg as a JSON document, meant to be registered under a dedicated path
// such as /debug/config ahead of the application's own handler.
func Handler(cfg *config.Config) func(req *http.Request, conn transport.Connection) {
	return func(req *http.Request, conn transport.Connection) {
		body, err := marshal(cfg)
		if err != nil {
			log.Printf("debugapi: marshal config: %s", err)
			body = []byte(`{"error":"failed to marshal config"}`)
		}

		resp := fmt.Sprintf(
			"HTTP/1.1 200 OK\r\nContent-Type: application/json\r\nContent-Length: %d\r\nConnection: close\r\n\r\n",
			len(body),
		)

		_, _ = conn.Write([]byte(resp))
		_, _ = conn.Write(body)
	}
}

// marshal borrows a json-iterator stream rather than calling json.Marshal
// directly, avoiding an allocation per call.
func marshal(cfg *config.Config) ([]byte, error) {
	stream := json.ConfigDefault.BorrowStream(nil)
	defer json.ConfigDefault.ReturnStream(stream)

	stream.WriteVal(cfg)
	if err := stream.Flush(); err != nil {
		return nil, err
	}

	out := make([]byte, len(stream.Buffer()))
	copy(out, stream.Buffer())

	return out, nil
}
