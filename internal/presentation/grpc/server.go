package grpc

import (
	"fmt"
	"log/slog"
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/Programmer60/BorrowEase-sub002/pkg/auth"
	"github.com/Programmer60/BorrowEase-sub002/pkg/tlsutil"
)

const healthServiceName = "riskengine.v1.RiskEngineService"

// MethodRoles is the per-method role policy. ListRiskModels is absent and
// only requires authentication.
var MethodRoles = map[string][]string{
	MethodGetCreditScore:            {auth.RoleBorrower, auth.RoleLender, auth.RoleAdmin},
	MethodGetRiskAssessment:         {auth.RoleBorrower, auth.RoleLender, auth.RoleAdmin},
	MethodListKYCSubmissions:        {auth.RoleAdmin},
	MethodGetKYCSubmission:          {auth.RoleBorrower, auth.RoleAdmin},
	MethodSubmitKYC:                 {auth.RoleBorrower},
	MethodResubmitKYC:               {auth.RoleBorrower},
	MethodReviewKYCSubmission:       {auth.RoleAdmin},
	MethodResetKYCAttempts:          {auth.RoleAdmin},
	MethodSubmitAddressProof:        {auth.RoleBorrower},
	MethodReviewAddressVerification: {auth.RoleAdmin},
}

// ServerOptions configures transport concerns of the gRPC server.
type ServerOptions struct {
	TLSCertFile     string
	TLSKeyFile      string
	TLSClientCAFile string
	Reflection      bool
}

// Server wraps a gRPC server with the risk engine handler registered.
type Server struct {
	gs     *grpc.Server
	health *health.Server
	logger *slog.Logger
}

// NewServer creates and configures the gRPC server. TLS material that fails
// to load is a startup error rather than a silent downgrade.
func NewServer(handler RiskEngineServiceServer, validator auth.TokenValidator, opts ServerOptions, logger *slog.Logger) (*Server, error) {
	authInterceptor := auth.UnaryAuthInterceptor(validator, []string{
		"/grpc.health.v1.Health/Check",
		"/grpc.health.v1.Health/Watch",
	})

	serverOpts := []grpc.ServerOption{
		grpc.ChainUnaryInterceptor(authInterceptor, auth.RequireRoles(MethodRoles)),
	}

	if opts.TLSCertFile != "" && opts.TLSKeyFile != "" {
		creds, err := tlsutil.ServerTLSConfig(opts.TLSCertFile, opts.TLSKeyFile, opts.TLSClientCAFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load TLS credentials: %w", err)
		}
		serverOpts = append(serverOpts, grpc.Creds(creds))
		logger.Info("gRPC TLS enabled", "cert", opts.TLSCertFile, "mtls", opts.TLSClientCAFile != "")
	} else {
		logger.Info("gRPC TLS not configured, running without TLS")
	}

	gs := grpc.NewServer(serverOpts...)

	healthSrv := health.NewServer()
	healthpb.RegisterHealthServer(gs, healthSrv)
	healthSrv.SetServingStatus(healthServiceName, healthpb.HealthCheckResponse_SERVING)

	if opts.Reflection {
		reflection.Register(gs)
	}

	RegisterRiskEngineServiceServer(gs, handler)

	return &Server{gs: gs, health: healthSrv, logger: logger}, nil
}

// Serve starts the gRPC server on the specified address.
func (s *Server) Serve(addr string) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return s.ServeListener(lis)
}

// ServeListener serves on an existing listener.
func (s *Server) ServeListener(lis net.Listener) error {
	s.logger.Info("gRPC server listening", "addr", lis.Addr().String())
	return s.gs.Serve(lis)
}

// GracefulStop marks the service as not serving and drains in-flight calls.
func (s *Server) GracefulStop() {
	s.logger.Info("gRPC server shutting down")
	s.health.Shutdown()
	s.gs.GracefulStop()
}
