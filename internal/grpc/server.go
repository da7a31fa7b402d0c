package grpc

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName 健康检查中使用的服务名
const ServiceName = "conduit"

const checkInterval = 10 * time.Second

// Pinger 依赖连通性检查
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server wraps the gRPC server
type Server struct {
	grpcServer *grpc.Server
	listener   net.Listener
	health     *health.Server
	pinger     Pinger

	stopOnce sync.Once
	done     chan struct{}
}

// NewServer creates a gRPC server exposing the standard health service.
// The status is SERVING while pinger succeeds.
func NewServer(port int, pinger Pinger) (*Server, error) {
	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return nil, fmt.Errorf("failed to listen on port %d: %w", port, err)
	}

	grpcServer := grpc.NewServer()
	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)

	s := &Server{
		grpcServer: grpcServer,
		listener:   listener,
		health:     healthServer,
		pinger:     pinger,
		done:       make(chan struct{}),
	}
	s.check(context.Background())
	return s, nil
}

// Start starts the gRPC server (blocking)
func (s *Server) Start() error {
	go s.watch()
	return s.grpcServer.Serve(s.listener)
}

// Stop gracefully stops the gRPC server
func (s *Server) Stop() {
	s.stopOnce.Do(func() {
		close(s.done)
		s.health.Shutdown()
		s.grpcServer.GracefulStop()
	})
}

// GetAddr returns the server address
func (s *Server) GetAddr() string {
	return s.listener.Addr().String()
}

func (s *Server) watch() {
	ticker := time.NewTicker(checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.check(context.Background())
		}
	}
}

func (s *Server) check(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	status := healthpb.HealthCheckResponse_SERVING
	if err := s.pinger.Ping(ctx); err != nil {
		logrus.WithError(err).Warn("health check failed")
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}
	s.health.SetServingStatus("", status)
	s.health.SetServingStatus(ServiceName, status)
}
