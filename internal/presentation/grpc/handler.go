package grpc

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Programmer60/BorrowEase-sub002/internal/application/dto"
	"github.com/Programmer60/BorrowEase-sub002/internal/application/usecase"
	"github.com/Programmer60/BorrowEase-sub002/internal/domain/valueobject"
	"github.com/Programmer60/BorrowEase-sub002/pkg/auth"
)

const errorDomain = "riskd.borrowease"

// UseCases groups the application services exposed over gRPC.
type UseCases struct {
	GetCreditScore            *usecase.GetCreditScore
	AssessRisk                *usecase.AssessRisk
	ListRiskModels            *usecase.ListRiskModels
	ListSubmissions           *usecase.ListSubmissions
	GetSubmission             *usecase.GetSubmission
	SubmitKYC                 *usecase.SubmitKYC
	ResubmitKYC               *usecase.ResubmitKYC
	ReviewGate                *usecase.ReviewGate
	SubmitAddressProof        *usecase.SubmitAddressProof
	ReviewAddressVerification *usecase.ReviewAddressVerification
}

// RiskEngineHandler implements RiskEngineServiceServer.
type RiskEngineHandler struct {
	UnimplementedRiskEngineServiceServer

	uc     UseCases
	logger *slog.Logger
}

func NewRiskEngineHandler(uc UseCases, logger *slog.Logger) *RiskEngineHandler {
	return &RiskEngineHandler{uc: uc, logger: logger}
}

func (h *RiskEngineHandler) GetCreditScore(ctx context.Context, req *GetCreditScoreRequest) (*GetCreditScoreResponse, error) {
	actor, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}
	borrowerID, err := subjectID(req.UserID, actor)
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.GetCreditScore.Execute(ctx, dto.GetCreditScoreRequest{
		Actor:      actor,
		BorrowerID: borrowerID,
		Refresh:    req.Refresh,
	})
	if err != nil {
		return nil, h.toStatus(ctx, "GetCreditScore", err)
	}

	return &GetCreditScoreResponse{
		LastUpdated: resp.LastUpdated,
		Breakdown:   resp.Breakdown,
		UserID:      resp.BorrowerID.String(),
		Rating:      resp.Rating,
		Score:       int32(resp.Score),
		Cached:      resp.Cached,
	}, nil
}

func (h *RiskEngineHandler) GetRiskAssessment(ctx context.Context, req *GetRiskAssessmentRequest) (*GetRiskAssessmentResponse, error) {
	actor, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}
	borrowerID, err := subjectID(req.UserID, actor)
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.AssessRisk.Execute(ctx, dto.AssessRiskRequest{
		Actor:      actor,
		BorrowerID: borrowerID,
		ModelID:    req.ModelID,
	})
	if err != nil {
		return nil, h.toStatus(ctx, "GetRiskAssessment", err)
	}

	return &GetRiskAssessmentResponse{
		AssessedAt:       resp.AssessedAt,
		FactorScores:     resp.FactorScores,
		UserID:           resp.BorrowerID.String(),
		ModelID:          resp.ModelID,
		ModelName:        resp.ModelName,
		OverallScore:     resp.OverallScore,
		Threshold:        resp.Threshold,
		Decision:         resp.Decision,
		SuggestedRate:    resp.SuggestedRate,
		CreditRating:     resp.CreditRating,
		Reasons:          resp.Reasons,
		SuggestedRateBps: int32(resp.SuggestedRateBps),
		CreditScore:      int32(resp.CreditScore),
	}, nil
}

func (h *RiskEngineHandler) ListRiskModels(ctx context.Context, _ *ListRiskModelsRequest) (*ListRiskModelsResponse, error) {
	resp, err := h.uc.ListRiskModels.Execute(ctx)
	if err != nil {
		return nil, h.toStatus(ctx, "ListRiskModels", err)
	}

	models := make([]*RiskModelMsg, 0, len(resp.Models))
	for _, m := range resp.Models {
		models = append(models, &RiskModelMsg{
			Weights:           m.Weights,
			ID:                m.ID,
			DisplayName:       m.DisplayName,
			Description:       m.Description,
			BaseAccuracy:      m.BaseAccuracy,
			ApprovalThreshold: m.ApprovalThreshold,
			LatencyMillis:     int32(m.LatencyMillis),
			IsDefault:         m.IsDefault,
		})
	}
	return &ListRiskModelsResponse{Models: models}, nil
}

func (h *RiskEngineHandler) ListKYCSubmissions(ctx context.Context, req *ListKYCSubmissionsRequest) (*ListKYCSubmissionsResponse, error) {
	actor, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.ListSubmissions.Execute(ctx, dto.ListSubmissionsRequest{
		Actor:         actor,
		Status:        req.Status,
		AddressStatus: req.AddressStatus,
		PageSize:      int(req.PageSize),
		Offset:        int(req.Offset),
	})
	if err != nil {
		return nil, h.toStatus(ctx, "ListKYCSubmissions", err)
	}

	out := make([]*KYCSubmissionMsg, 0, len(resp.Submissions))
	for _, s := range resp.Submissions {
		out = append(out, toSubmissionMsg(s))
	}
	return &ListKYCSubmissionsResponse{Submissions: out, TotalCount: int32(resp.TotalCount)}, nil
}

func (h *RiskEngineHandler) GetKYCSubmission(ctx context.Context, req *GetKYCSubmissionRequest) (*KYCSubmissionResponse, error) {
	actor, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}
	id, err := parseID("submission_id", req.SubmissionID)
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.GetSubmission.Execute(ctx, dto.GetSubmissionRequest{Actor: actor, SubmissionID: id})
	return h.submissionResult(ctx, "GetKYCSubmission", resp, err)
}

func (h *RiskEngineHandler) SubmitKYC(ctx context.Context, req *SubmitKYCRequest) (*KYCSubmissionResponse, error) {
	actor, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.SubmitKYC.Execute(ctx, dto.SubmitKYCRequest{Actor: actor, Documents: req.Documents})
	return h.submissionResult(ctx, "SubmitKYC", resp, err)
}

func (h *RiskEngineHandler) ResubmitKYC(ctx context.Context, req *ResubmitKYCRequest) (*KYCSubmissionResponse, error) {
	actor, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}
	id, err := parseID("submission_id", req.SubmissionID)
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.ResubmitKYC.Execute(ctx, dto.ResubmitKYCRequest{
		Actor:        actor,
		SubmissionID: id,
		Documents:    req.Documents,
	})
	return h.submissionResult(ctx, "ResubmitKYC", resp, err)
}

func (h *RiskEngineHandler) ReviewKYCSubmission(ctx context.Context, req *ReviewKYCSubmissionRequest) (*KYCSubmissionResponse, error) {
	actor, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}
	id, err := parseID("submission_id", req.SubmissionID)
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.ReviewGate.Review(ctx, dto.ReviewSubmissionRequest{
		Actor:        actor,
		SubmissionID: id,
		Action:       req.Action,
		Comment:      req.Comment,
	})
	return h.submissionResult(ctx, "ReviewKYCSubmission", resp, err)
}

func (h *RiskEngineHandler) ResetKYCAttempts(ctx context.Context, req *ResetKYCAttemptsRequest) (*KYCSubmissionResponse, error) {
	actor, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}
	id, err := parseID("submission_id", req.SubmissionID)
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.ReviewGate.ResetAttempts(ctx, dto.ResetAttemptsRequest{
		Actor:        actor,
		SubmissionID: id,
		Comment:      req.Comment,
	})
	return h.submissionResult(ctx, "ResetKYCAttempts", resp, err)
}

func (h *RiskEngineHandler) SubmitAddressProof(ctx context.Context, req *SubmitAddressProofRequest) (*KYCSubmissionResponse, error) {
	actor, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}
	id, err := parseID("submission_id", req.SubmissionID)
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.SubmitAddressProof.Execute(ctx, dto.SubmitAddressProofRequest{
		Actor:        actor,
		SubmissionID: id,
		Reference:    req.Reference,
	})
	return h.submissionResult(ctx, "SubmitAddressProof", resp, err)
}

func (h *RiskEngineHandler) ReviewAddressVerification(ctx context.Context, req *ReviewAddressVerificationRequest) (*KYCSubmissionResponse, error) {
	actor, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}
	id, err := parseID("submission_id", req.SubmissionID)
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.ReviewAddressVerification.Execute(ctx, dto.ReviewAddressRequest{
		Actor:           actor,
		SubmissionID:    id,
		Status:          req.Status,
		RejectionReason: req.RejectionReason,
	})
	return h.submissionResult(ctx, "ReviewAddressVerification", resp, err)
}

func (h *RiskEngineHandler) submissionResult(ctx context.Context, method string, resp dto.SubmissionResponse, err error) (*KYCSubmissionResponse, error) {
	if err != nil {
		return nil, h.toStatus(ctx, method, err)
	}
	return &KYCSubmissionResponse{Submission: toSubmissionMsg(resp)}, nil
}

// actorFromContext derives the acting identity from the authenticated claims.
// A token carrying several roles acts with the most privileged one.
func actorFromContext(ctx context.Context) (valueobject.Actor, error) {
	claims, ok := auth.ClaimsFromContext(ctx)
	if !ok {
		return valueobject.Actor{}, status.Error(codes.Unauthenticated, "authentication required")
	}

	var role valueobject.Role
	switch {
	case claims.HasRole(auth.RoleAdmin):
		role = valueobject.RoleAdmin
	case claims.HasRole(auth.RoleLender):
		role = valueobject.RoleLender
	case claims.HasRole(auth.RoleBorrower):
		role = valueobject.RoleBorrower
	default:
		return valueobject.Actor{}, status.Error(codes.PermissionDenied, "insufficient permissions")
	}

	actor, err := valueobject.NewActor(claims.UserID, role)
	if err != nil {
		return valueobject.Actor{}, status.Error(codes.Unauthenticated, "token carries no user id")
	}
	return actor, nil
}

// subjectID resolves the borrower a read refers to, defaulting to the caller.
func subjectID(raw string, actor valueobject.Actor) (uuid.UUID, error) {
	if raw == "" {
		return actor.UserID, nil
	}
	return parseID("user_id", raw)
}

func parseID(field, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, status.Errorf(codes.InvalidArgument, "invalid %s: %v", field, err)
	}
	return id, nil
}

var kindCodes = map[string]codes.Code{
	valueobject.KindValidation:             codes.InvalidArgument,
	valueobject.KindUnknownModel:           codes.InvalidArgument,
	valueobject.KindUnauthorized:           codes.PermissionDenied,
	valueobject.KindInvalidTransition:      codes.FailedPrecondition,
	valueobject.KindTerminalState:          codes.FailedPrecondition,
	valueobject.KindAttemptsExhausted:      codes.FailedPrecondition,
	valueobject.KindConcurrentModification: codes.Aborted,
	valueobject.KindSourceUnavailable:      codes.Unavailable,
	valueobject.KindNotFound:               codes.NotFound,
}

// toStatus converts an application error into a gRPC status carrying an
// ErrorInfo detail with the stable error kind.
func (h *RiskEngineHandler) toStatus(ctx context.Context, method string, err error) error {
	switch {
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, "request canceled")
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, "deadline exceeded")
	}

	kind := valueobject.ErrorKind(err)
	code, ok := kindCodes[kind]
	msg := err.Error()
	if !ok {
		code = codes.Internal
		msg = "internal error"
		h.logger.ErrorContext(ctx, "request failed", "method", method, "error", err)
	}

	st := status.New(code, msg)
	if detailed, derr := st.WithDetails(&errdetails.ErrorInfo{Reason: kind, Domain: errorDomain}); derr == nil {
		st = detailed
	}
	return st.Err()
}

func toSubmissionMsg(s dto.SubmissionResponse) *KYCSubmissionMsg {
	comments := make([]*CommentMsg, 0, len(s.Comments))
	for _, c := range s.Comments {
		comments = append(comments, &CommentMsg{
			CreatedAt:  c.CreatedAt,
			ID:         c.ID.String(),
			AuthorID:   c.AuthorID.String(),
			AuthorRole: c.AuthorRole,
			Comment:    c.Text,
		})
	}

	return &KYCSubmissionMsg{
		SubmittedAt: s.SubmittedAt,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
		ReviewedAt:  s.ReviewedAt,
		Documents:   s.Documents,
		Address: &AddressMsg{
			ReviewedAt:      s.Address.ReviewedAt,
			Status:          s.Address.Status,
			RejectionReason: s.Address.RejectionReason,
		},
		ID:                 s.ID.String(),
		UserID:             s.OwnerID.String(),
		Status:             s.Status,
		Comments:           comments,
		Attempts:           int32(s.Attempts),
		Version:            int32(s.Version),
		MaxAttemptsReached: s.MaxAttemptsReached,
	}
}
