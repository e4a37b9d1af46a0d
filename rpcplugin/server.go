package rpcplugin

import (
	"context"
	"fmt"
	"net"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
)

// ServerConfig configures a hosted RemotePluginServer.
type ServerConfig struct {
	Port            int
	GracefulTimeout time.Duration
	TLSCertFile     string
	TLSKeyFile      string
}

func (c ServerConfig) withDefaults() ServerConfig {
	if c.GracefulTimeout <= 0 {
		c.GracefulTimeout = 30 * time.Second
	}
	return c
}

// Server hosts one RemotePluginServer over gRPC, with a standard gRPC
// health service reporting SERVING once Serve is called.
type Server struct {
	grpcServer *grpc.Server
	listener   net.Listener
	health     *health.Server
	cfg        ServerConfig
}

// NewServer listens on cfg.Port and registers srv plus the standard gRPC
// health service.
func NewServer(cfg ServerConfig, srv RemotePluginServer) (*Server, error) {
	cfg = cfg.withDefaults()

	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.Port))
	if err != nil {
		return nil, fmt.Errorf("rpcplugin: listen on port %d: %w", cfg.Port, err)
	}

	var opts []grpc.ServerOption
	if cfg.TLSCertFile != "" && cfg.TLSKeyFile != "" {
		creds, err := credentials.NewServerTLSFromFile(cfg.TLSCertFile, cfg.TLSKeyFile)
		if err != nil {
			listener.Close()
			return nil, fmt.Errorf("rpcplugin: load TLS credentials: %w", err)
		}
		opts = append(opts, grpc.Creds(creds))
	}

	grpcServer := grpc.NewServer(opts...)
	RegisterRemotePluginServer(grpcServer, srv)

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)

	return &Server{grpcServer: grpcServer, listener: listener, health: healthServer, cfg: cfg}, nil
}

// Port reports the listener's bound port — useful when cfg.Port was 0.
func (s *Server) Port() int {
	return s.listener.Addr().(*net.TCPAddr).Port
}

// Serve blocks, accepting connections until ctx is canceled, then performs
// a graceful stop bounded by cfg.GracefulTimeout.
func (s *Server) Serve(ctx context.Context) error {
	s.health.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)

	errCh := make(chan error, 1)
	go func() { errCh <- s.grpcServer.Serve(s.listener) }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	stopped := make(chan struct{})
	go func() {
		s.grpcServer.GracefulStop()
		close(stopped)
	}()

	select {
	case <-stopped:
		return nil
	case <-time.After(s.cfg.GracefulTimeout):
		s.grpcServer.Stop()
		return nil
	}
}
