package toll

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/danmuck/tollctl/internal/ledger"
)

var (
	ErrInvalidListenAddr    = errors.New("toll: listen addr required")
	ErrInvalidStatsInterval = errors.New("toll: invalid stats interval")
	ErrInvalidTimeout       = errors.New("toll: timeouts must be positive")
)

// ServiceConfig configures the toll server runtime.
type ServiceConfig struct {
	ListenAddr    string
	AdminAddr     string
	StatsInterval time.Duration
	ReadTimeout   time.Duration
	WriteTimeout  time.Duration
	DrainTimeout  time.Duration
	CorsOrigins   []string
	LogFile       string
}

func DefaultServiceConfig() ServiceConfig {
	return ServiceConfig{
		ListenAddr:    ":12345",
		AdminAddr:     "",
		StatsInterval: 5 * time.Second,
		ReadTimeout:   10 * time.Second,
		WriteTimeout:  5 * time.Second,
		DrainTimeout:  5 * time.Second,
		LogFile:       "server.log",
	}
}

// Service runs the toll server lifecycle as a standalone process.
type Service struct {
	cfg    ServiceConfig
	server *Server
	ln     *net.TCPListener
}

func NewService() *Service {
	return NewServiceWithConfig(DefaultServiceConfig())
}

func NewServiceWithConfig(cfg ServiceConfig) *Service {
	return &Service{
		cfg:    cfg,
		server: NewServer(cfg, ledger.New()),
	}
}

// Run blocks until process signal shutdown.
func (s *Service) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := s.bootstrap(); err != nil {
		return err
	}
	return s.serve(ctx)
}

// Server exposes the transaction boundary owner, mainly for tests.
func (s *Service) Server() *Server {
	return s.server
}

func (s *Service) bootstrap() error {
	if err := validateServiceConfig(s.cfg); err != nil {
		return err
	}

	addr, err := net.ResolveTCPAddr("tcp", s.cfg.ListenAddr)
	if err != nil {
		return fmt.Errorf("resolve listen addr: %w", err)
	}
	ln, err := net.ListenTCP("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	s.ln = ln

	log.Info().
		Str("addr", ln.Addr().String()).
		Str("admin_addr", s.cfg.AdminAddr).
		Dur("stats_interval", s.cfg.StatsInterval).
		Msg("tolld ready")
	return nil
}

// serve runs the acceptor, the stats reporter and the optional admin surface
// until shutdown, surfacing the first hard failure from any of them.
func (s *Service) serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	serveErr := make(chan error, 1)
	adminErr := make(chan error, 1)
	statsDone := make(chan struct{})

	go func() {
		serveErr <- s.server.Serve(ctx, s.ln)
	}()
	go func() {
		s.server.ReportStats(ctx, s.cfg.StatsInterval)
		close(statsDone)
	}()
	if strings.TrimSpace(s.cfg.AdminAddr) != "" {
		go func() {
			adminErr <- s.serveAdmin(ctx, s.cfg.AdminAddr)
		}()
	}

	for {
		select {
		case err := <-serveErr:
			cancel()
			<-statsDone
			if err != nil {
				return err
			}
			log.Info().Msg("tolld shutdown complete")
			return nil
		case err := <-adminErr:
			if err != nil {
				return err
			}
		}
	}
}

func validateServiceConfig(cfg ServiceConfig) error {
	if strings.TrimSpace(cfg.ListenAddr) == "" {
		return ErrInvalidListenAddr
	}
	if cfg.StatsInterval <= 0 {
		return ErrInvalidStatsInterval
	}
	if cfg.ReadTimeout <= 0 || cfg.WriteTimeout <= 0 || cfg.DrainTimeout <= 0 {
		return ErrInvalidTimeout
	}
	return nil
}
