// Package grpc exposes the bill store over gRPC.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/billed/internal/api"
	"github.com/dmitrijs2005/billed/internal/logging"
	"github.com/dmitrijs2005/billed/internal/server/auth"
	"github.com/dmitrijs2005/billed/internal/server/models"
	"github.com/dmitrijs2005/billed/internal/server/services"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

type userService interface {
	Register(ctx context.Context, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, *models.User, error)
}

type billService interface {
	List(ctx context.Context, who auth.Identity) ([]*services.ListedBill, error)
	Upload(ctx context.Context, who auth.Identity, email, fileName, contentType string, content []byte) (*services.UploadResult, error)
	Update(ctx context.Context, who auth.Identity, in services.BillInput, selector *string) (*services.ListedBill, error)
}

type GRPCServer struct {
	api.UnimplementedBillStoreServer
	address   string
	users     userService
	bills     billService
	logger    logging.Logger
	jwtSecret []byte
	metrics   *Metrics
}

// NewGRPCServer wires the services behind the BillStore API. metrics may be
// nil.
func NewGRPCServer(a string, l logging.Logger, us userService, bs billService, secretKey string, m *Metrics) *GRPCServer {
	return &GRPCServer{
		address:   a,
		logger:    l.With("module", "grpc_server"),
		users:     us,
		bills:     bs,
		jwtSecret: []byte(secretKey),
		metrics:   m,
	}
}

func (s *GRPCServer) newServer() (*grpc.Server, *health.Server) {
	interceptors := []grpc.UnaryServerInterceptor{}
	if s.metrics != nil {
		interceptors = append(interceptors, s.metrics.UnaryInterceptor())
	}
	interceptors = append(interceptors, s.accessTokenInterceptor)

	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(interceptors...))
	api.RegisterBillStoreServer(srv, s)

	hs := health.NewServer()
	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	hs.SetServingStatus(api.ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(srv, hs)

	return srv, hs
}

// Run listens on the configured address until ctx is cancelled.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis and stops gracefully once ctx is done.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv, hs := s.newServer()

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		hs.Shutdown()
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	if err := srv.Serve(lis); err != nil {
		return err
	}

	<-stopped
	return nil
}
