package gcdebug

import (
	"crypto/tls"
	"net/http"

	"github.com/tersgc/gogc/internal/runtime/netstack"
)

// Server pairs a plain net/http listener (always on, for local
// debugging with curl) with an opt-in HTTP/3 listener built on
// netstack.HTTP3Server, grounded on
// internal/runtime/netstack/http3.go — reused unmodified here since it
// is generic QUIC/HTTP3 transport plumbing with nothing collector-domain
// specific to adapt; this package is what exercises it for a collector.
type Server struct {
	plain *http.Server
	h3    *netstack.HTTP3Server
}

// NewServer builds a debug server for s, bound to addr for plain HTTP.
// If tlsCfg is non-nil, an HTTP/3 listener is also started on the same
// address using quic-go/http3.
func NewServer(addr string, s Snapshotter, tlsCfg *tls.Config) *Server {
	mux := http.NewServeMux()
	mux.Handle("/debug/gc/snapshot", Handler(s))

	srv := &Server{plain: &http.Server{Addr: addr, Handler: mux}}
	if tlsCfg != nil {
		srv.h3 = netstack.NewHTTP3Server(addr, tlsCfg, mux)
	}
	return srv
}

// Start begins serving. The plain HTTP listener is started in its own
// goroutine and Start does not wait for it to bind. If HTTP/3 is
// enabled, Start returns after its UDP socket is bound (or with the bind
// error); otherwise it returns immediately.
func (s *Server) Start() error {
	go func() {
		_ = s.plain.ListenAndServe()
	}()
	if s.h3 != nil {
		if _, err := s.h3.Start(); err != nil {
			return err
		}
	}
	return nil
}

func (s *Server) Stop() error {
	if s.h3 != nil {
		_ = s.h3.Stop()
	}
	return s.plain.Close()
}
