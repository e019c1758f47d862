package toll

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/danmuck/tollctl/internal/ledger"
)

// acceptPollInterval bounds each accept wait so the loop can observe
// shutdown.
const acceptPollInterval = 1 * time.Second

var ErrDrainTimeout = errors.New("toll: timed out waiting for handlers to finish")

// Server owns the ledger and runs one transaction handler goroutine per
// accepted connection.
type Server struct {
	cfg    ServiceConfig
	ledger *ledger.Ledger
	wg     sync.WaitGroup
}

func NewServer(cfg ServiceConfig, l *ledger.Ledger) *Server {
	return &Server{cfg: cfg, ledger: l}
}

func (s *Server) Ledger() *ledger.Ledger {
	return s.ledger
}

// Serve accepts booth connections until ctx is cancelled, then closes the
// listener and waits out in-flight handlers within the drain timeout.
func (s *Server) Serve(ctx context.Context, ln *net.TCPListener) error {
	log.Info().Str("addr", ln.Addr().String()).Msg("toll server listening")
	defer ln.Close()

	for {
		if ctx.Err() != nil {
			log.Info().Msg("toll server shutting down")
			return s.drain()
		}

		_ = ln.SetDeadline(time.Now().Add(acceptPollInterval))
		conn, err := ln.Accept()
		if err != nil {
			if errors.Is(err, os.ErrDeadlineExceeded) {
				continue
			}
			if ctx.Err() != nil {
				return s.drain()
			}
			return fmt.Errorf("accept: %w", err)
		}

		s.wg.Add(1)
		go s.handleConn(conn)
	}
}

// drain waits for outstanding handlers, bounded by the configured grace
// period. On timeout the waiter goroutine stays behind until the stuck
// handlers return; drain only runs on the way out of Serve, so nothing else
// outlives it.
func (s *Server) drain() error {
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-time.After(s.cfg.DrainTimeout):
		return ErrDrainTimeout
	}
}
