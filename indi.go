// Package wireparse is the top-level application builder: wiring
// listeners, the shared config, and a single request handler together
// into a running server.
package wireparse

import (
	"context"
	"fmt"
	"log"
	"net"
	"sync"

	"github.com/wireparse/wireparse/config"
	"github.com/wireparse/wireparse/http/encryption"
	"github.com/wireparse/wireparse/internal/address"
	"github.com/wireparse/wireparse/internal/driver"
	"github.com/wireparse/wireparse/internal/pool"
	"github.com/wireparse/wireparse/transport"
)

// App is the application builder: add listeners with Listen/TLS/HTTPS/
// AutoHTTPS, then call Serve with the handler that receives every
// request.
type App struct {
	addr      address.Address
	hooks     hooks
	listeners []Listener
	cfg       *config.Config
	sup       transport.Supervisor
	pendErr   error
	cancel    context.CancelFunc

	buffMu sync.Mutex
	buffs  pool.ObjectPool[[]byte]
}

// Listener binds a port to a transport and the encryption token that was
// negotiated on it.
type Listener struct {
	Port       uint16
	Transport  transport.Transport
	Encryption encryption.Token
}

type hooks struct {
	OnStart, OnStop func()
}

// New returns a new App bound to addr ("host:port"). A bare port such as
// ":8080" binds every interface.
func New(addr string) *App {
	appAddr, err := address.Parse(addr)
	if err != nil {
		panic(fmt.Errorf("wireparse: New(%q): %w", addr, err))
	}

	return &App{
		addr:  appAddr,
		cfg:   config.Default(),
		sup:   transport.NewSupervisor(),
		buffs: pool.NewObjectPool[[]byte](64),
	}
}

// Tune replaces the default config.
func (a *App) Tune(cfg *config.Config) *App {
	a.cfg = cfg
	return a
}

// NotifyOnStart calls cb once every listener is bound. Accepting
// connections may lag slightly behind.
func (a *App) NotifyOnStart(cb func()) *App {
	a.hooks.OnStart = cb
	return a
}

// NotifyOnStop calls cb once the server has stopped accepting connections
// and every in-flight one has finished.
func (a *App) NotifyOnStop(cb func()) *App {
	a.hooks.OnStop = cb
	return a
}

// Listen adds a plaintext TCP listener on port.
func (a *App) Listen(port uint16) *App {
	return a.addListener(port, encryption.Plain, transport.NewTCP())
}

// TLS adds a listener on port using a pre-built TLS transport (see
// transport.NewTLS / transport.NewAutoTLS).
func (a *App) TLS(port uint16, t *transport.TLS) *App {
	return a.addListener(port, encryption.TLS, t)
}

// HTTPS adds a TLS listener loading its certificate from cert/key files on
// disk.
func (a *App) HTTPS(port uint16, cert, key string) *App {
	t, err := tlsTransport(cert, key)
	if err != nil {
		a.recordErr(fmt.Errorf("wireparse: HTTPS(%d): %w", port, err))
		return a
	}

	return a.TLS(port, t)
}

// AutoHTTPS enables TLS via autocert, falling back to a generated
// self-signed certificate when the app is bound to localhost (autocert
// cannot provision certificates for it).
func (a *App) AutoHTTPS(port uint16, domains ...string) *App {
	if address.IsLocalhost(a.addr.Host) {
		cert, key, err := generateSelfSignedCert()
		if err != nil {
			log.Printf("WARNING: AutoHTTPS(%d): can't generate self-signed certificate: %s. Disabling TLS", port, err)
			return a
		}

		return a.HTTPS(port, cert, key)
	}

	return a.TLS(port, autoTLSTransport(domains...))
}

func (a *App) addListener(port uint16, enc encryption.Token, t transport.Transport) *App {
	a.listeners = append(a.listeners, Listener{Port: port, Transport: t, Encryption: enc})
	return a
}

func (a *App) recordErr(err error) {
	if a.pendErr == nil {
		a.pendErr = err
	}
}

// Serve starts the application, dispatching every complete or irrecoverably
// broken request to handler. It blocks until every listener stops.
func (a *App) Serve(handler driver.Handler) error {
	if a.pendErr != nil {
		return a.pendErr
	}

	if handler == nil {
		return fmt.Errorf("wireparse: Serve: handler must not be nil")
	}

	if len(a.listeners) == 0 {
		a.Listen(a.addr.Port)
	}

	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel

	for _, l := range a.listeners {
		addr := net.JoinHostPort(a.addr.Host, fmt.Sprint(l.Port))

		if err := a.sup.Add(addr, l.Transport, a.newConnCallback(ctx, handler)); err != nil {
			cancel()
			return err
		}
	}

	callIfNotNil(a.hooks.OnStart)
	err := a.sup.Run(a.cfg.NET)
	callIfNotNil(a.hooks.OnStop)

	return err
}

// Stop stops accepting connections and blocks until every in-flight
// connection has been served and every listener is closed, then cancels
// the context handed to requests. In-flight connections are not closed
// early.
func (a *App) Stop() {
	a.sup.Stop()

	if a.cancel != nil {
		a.cancel()
	}
}

func (a *App) newConnCallback(ctx context.Context, handler driver.Handler) func(net.Conn) {
	return func(nc net.Conn) {
		buff := a.acquireBuff()
		defer a.releaseBuff(buff)

		conn := transport.NewConnection(nc, a.cfg.NET.ReadTimeout, buff)

		driver.Serve(ctx, conn, a.cfg, handler)
	}
}

// acquireBuff and releaseBuff pool the buffers handed to
// transport.NewConnection across accepted connections, since TCP.Listen
// spawns one goroutine per connection that exits as soon as it's served.
// driver.Serve allocates its own read buffer and does not read into these.
func (a *App) acquireBuff() []byte {
	a.buffMu.Lock()
	buff := a.buffs.Acquire()
	a.buffMu.Unlock()

	if buff == nil {
		buff = make([]byte, a.cfg.NET.ReadBufferSize)
	}

	return buff
}

func (a *App) releaseBuff(buff []byte) {
	a.buffMu.Lock()
	a.buffs.Release(buff)
	a.buffMu.Unlock()
}

func callIfNotNil(f func()) {
	if f != nil {
		f()
	}
}
