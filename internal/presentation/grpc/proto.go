package grpc

// proto.go defines the gRPC server interface for riskengine.v1.RiskEngineService.
// Messages travel with the JSON codec registered in json_codec.go.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const serviceName = "riskengine.v1.RiskEngineService"

// Full method names, as seen by interceptors.
const (
	MethodGetCreditScore            = "/" + serviceName + "/GetCreditScore"
	MethodGetRiskAssessment         = "/" + serviceName + "/GetRiskAssessment"
	MethodListRiskModels            = "/" + serviceName + "/ListRiskModels"
	MethodListKYCSubmissions        = "/" + serviceName + "/ListKYCSubmissions"
	MethodGetKYCSubmission          = "/" + serviceName + "/GetKYCSubmission"
	MethodSubmitKYC                 = "/" + serviceName + "/SubmitKYC"
	MethodResubmitKYC               = "/" + serviceName + "/ResubmitKYC"
	MethodReviewKYCSubmission       = "/" + serviceName + "/ReviewKYCSubmission"
	MethodResetKYCAttempts          = "/" + serviceName + "/ResetKYCAttempts"
	MethodSubmitAddressProof        = "/" + serviceName + "/SubmitAddressProof"
	MethodReviewAddressVerification = "/" + serviceName + "/ReviewAddressVerification"
)

// RiskEngineServiceServer is the server API for RiskEngineService.
type RiskEngineServiceServer interface {
	GetCreditScore(context.Context, *GetCreditScoreRequest) (*GetCreditScoreResponse, error)
	GetRiskAssessment(context.Context, *GetRiskAssessmentRequest) (*GetRiskAssessmentResponse, error)
	ListRiskModels(context.Context, *ListRiskModelsRequest) (*ListRiskModelsResponse, error)
	ListKYCSubmissions(context.Context, *ListKYCSubmissionsRequest) (*ListKYCSubmissionsResponse, error)
	GetKYCSubmission(context.Context, *GetKYCSubmissionRequest) (*KYCSubmissionResponse, error)
	SubmitKYC(context.Context, *SubmitKYCRequest) (*KYCSubmissionResponse, error)
	ResubmitKYC(context.Context, *ResubmitKYCRequest) (*KYCSubmissionResponse, error)
	ReviewKYCSubmission(context.Context, *ReviewKYCSubmissionRequest) (*KYCSubmissionResponse, error)
	ResetKYCAttempts(context.Context, *ResetKYCAttemptsRequest) (*KYCSubmissionResponse, error)
	SubmitAddressProof(context.Context, *SubmitAddressProofRequest) (*KYCSubmissionResponse, error)
	ReviewAddressVerification(context.Context, *ReviewAddressVerificationRequest) (*KYCSubmissionResponse, error)
	mustEmbedUnimplementedRiskEngineServiceServer()
}

// UnimplementedRiskEngineServiceServer provides forward-compatible default implementations.
type UnimplementedRiskEngineServiceServer struct{}

func (UnimplementedRiskEngineServiceServer) GetCreditScore(context.Context, *GetCreditScoreRequest) (*GetCreditScoreResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetCreditScore not implemented")
}
func (UnimplementedRiskEngineServiceServer) GetRiskAssessment(context.Context, *GetRiskAssessmentRequest) (*GetRiskAssessmentResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetRiskAssessment not implemented")
}
func (UnimplementedRiskEngineServiceServer) ListRiskModels(context.Context, *ListRiskModelsRequest) (*ListRiskModelsResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListRiskModels not implemented")
}
func (UnimplementedRiskEngineServiceServer) ListKYCSubmissions(context.Context, *ListKYCSubmissionsRequest) (*ListKYCSubmissionsResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListKYCSubmissions not implemented")
}
func (UnimplementedRiskEngineServiceServer) GetKYCSubmission(context.Context, *GetKYCSubmissionRequest) (*KYCSubmissionResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetKYCSubmission not implemented")
}
func (UnimplementedRiskEngineServiceServer) SubmitKYC(context.Context, *SubmitKYCRequest) (*KYCSubmissionResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method SubmitKYC not implemented")
}
func (UnimplementedRiskEngineServiceServer) ResubmitKYC(context.Context, *ResubmitKYCRequest) (*KYCSubmissionResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ResubmitKYC not implemented")
}
func (UnimplementedRiskEngineServiceServer) ReviewKYCSubmission(context.Context, *ReviewKYCSubmissionRequest) (*KYCSubmissionResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ReviewKYCSubmission not implemented")
}
func (UnimplementedRiskEngineServiceServer) ResetKYCAttempts(context.Context, *ResetKYCAttemptsRequest) (*KYCSubmissionResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ResetKYCAttempts not implemented")
}
func (UnimplementedRiskEngineServiceServer) SubmitAddressProof(context.Context, *SubmitAddressProofRequest) (*KYCSubmissionResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method SubmitAddressProof not implemented")
}
func (UnimplementedRiskEngineServiceServer) ReviewAddressVerification(context.Context, *ReviewAddressVerificationRequest) (*KYCSubmissionResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ReviewAddressVerification not implemented")
}
func (UnimplementedRiskEngineServiceServer) mustEmbedUnimplementedRiskEngineServiceServer() {}

// RegisterRiskEngineServiceServer registers the RiskEngineServiceServer with the gRPC server.
func RegisterRiskEngineServiceServer(s grpclib.ServiceRegistrar, srv RiskEngineServiceServer) {
	s.RegisterService(&_RiskEngineService_serviceDesc, srv)
}

var _RiskEngineService_serviceDesc = grpclib.ServiceDesc{ //nolint:revive
	ServiceName: serviceName,
	HandlerType: (*RiskEngineServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "GetCreditScore", Handler: unaryHandler(MethodGetCreditScore, RiskEngineServiceServer.GetCreditScore)},
		{MethodName: "GetRiskAssessment", Handler: unaryHandler(MethodGetRiskAssessment, RiskEngineServiceServer.GetRiskAssessment)},
		{MethodName: "ListRiskModels", Handler: unaryHandler(MethodListRiskModels, RiskEngineServiceServer.ListRiskModels)},
		{MethodName: "ListKYCSubmissions", Handler: unaryHandler(MethodListKYCSubmissions, RiskEngineServiceServer.ListKYCSubmissions)},
		{MethodName: "GetKYCSubmission", Handler: unaryHandler(MethodGetKYCSubmission, RiskEngineServiceServer.GetKYCSubmission)},
		{MethodName: "SubmitKYC", Handler: unaryHandler(MethodSubmitKYC, RiskEngineServiceServer.SubmitKYC)},
		{MethodName: "ResubmitKYC", Handler: unaryHandler(MethodResubmitKYC, RiskEngineServiceServer.ResubmitKYC)},
		{MethodName: "ReviewKYCSubmission", Handler: unaryHandler(MethodReviewKYCSubmission, RiskEngineServiceServer.ReviewKYCSubmission)},
		{MethodName: "ResetKYCAttempts", Handler: unaryHandler(MethodResetKYCAttempts, RiskEngineServiceServer.ResetKYCAttempts)},
		{MethodName: "SubmitAddressProof", Handler: unaryHandler(MethodSubmitAddressProof, RiskEngineServiceServer.SubmitAddressProof)},
		{MethodName: "ReviewAddressVerification", Handler: unaryHandler(MethodReviewAddressVerification, RiskEngineServiceServer.ReviewAddressVerification)},
	},
	Streams: []grpclib.StreamDesc{},
}

// unaryHandler adapts a typed service method to grpc.MethodDesc, running the
// server's interceptor chain when one is installed.
func unaryHandler[Req, Resp any](fullMethod string, call func(RiskEngineServiceServer, context.Context, *Req) (*Resp, error)) func(srv any, ctx context.Context, dec func(any) error, interceptor grpclib.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpclib.UnaryServerInterceptor) (any, error) {
		req := new(Req)
		if err := dec(req); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(RiskEngineServiceServer), ctx, req)
		}
		info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(RiskEngineServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, req, info, handler)
	}
}
