package grpc

import "time"

type GetCreditScoreRequest struct {
	UserID  string `json:"user_id"`
	Refresh bool   `json:"refresh,omitempty"`
}

type GetCreditScoreResponse struct {
	LastUpdated time.Time      `json:"last_updated"`
	Breakdown   map[string]int `json:"breakdown"`
	UserID      string         `json:"user_id"`
	Rating      string         `json:"rating"`
	Score       int32          `json:"score"`
	Cached      bool           `json:"cached"`
}

type GetRiskAssessmentRequest struct {
	UserID  string `json:"user_id"`
	ModelID string `json:"model_id,omitempty"`
}

type GetRiskAssessmentResponse struct {
	AssessedAt       time.Time         `json:"assessed_at"`
	FactorScores     map[string]string `json:"factor_scores"`
	UserID           string            `json:"user_id"`
	ModelID          string            `json:"model_id"`
	ModelName        string            `json:"model_name"`
	OverallScore     string            `json:"overall_score"`
	Threshold        string            `json:"threshold"`
	Decision         string            `json:"decision"`
	SuggestedRate    string            `json:"suggested_rate"`
	CreditRating     string            `json:"credit_rating"`
	Reasons          []string          `json:"reasons"`
	SuggestedRateBps int32             `json:"suggested_rate_bps"`
	CreditScore      int32             `json:"credit_score"`
}

type ListRiskModelsRequest struct{}

type RiskModelMsg struct {
	Weights           map[string]string `json:"weights"`
	ID                string            `json:"id"`
	DisplayName       string            `json:"display_name"`
	Description       string            `json:"description,omitempty"`
	BaseAccuracy      string            `json:"base_accuracy"`
	ApprovalThreshold string            `json:"approval_threshold"`
	LatencyMillis     int32             `json:"latency_ms"`
	IsDefault         bool              `json:"is_default"`
}

type ListRiskModelsResponse struct {
	Models []*RiskModelMsg `json:"models"`
}

type ListKYCSubmissionsRequest struct {
	Status        string `json:"status,omitempty"`
	AddressStatus string `json:"address_status,omitempty"`
	PageSize      int32  `json:"page_size,omitempty"`
	Offset        int32  `json:"offset,omitempty"`
}

type ListKYCSubmissionsResponse struct {
	Submissions []*KYCSubmissionMsg `json:"submissions"`
	TotalCount  int32               `json:"total_count"`
}

type GetKYCSubmissionRequest struct {
	SubmissionID string `json:"submission_id"`
}

type SubmitKYCRequest struct {
	Documents map[string]string `json:"documents"`
}

type ResubmitKYCRequest struct {
	Documents    map[string]string `json:"documents"`
	SubmissionID string            `json:"submission_id"`
}

type ReviewKYCSubmissionRequest struct {
	SubmissionID string `json:"submission_id"`
	Action       string `json:"action"`
	Comment      string `json:"comment,omitempty"`
}

type ResetKYCAttemptsRequest struct {
	SubmissionID string `json:"submission_id"`
	Comment      string `json:"comment,omitempty"`
}

type SubmitAddressProofRequest struct {
	SubmissionID string `json:"submission_id"`
	Reference    string `json:"reference"`
}

type ReviewAddressVerificationRequest struct {
	SubmissionID    string `json:"submission_id"`
	Status          string `json:"status"`
	RejectionReason string `json:"rejection_reason,omitempty"`
}

type KYCSubmissionResponse struct {
	Submission *KYCSubmissionMsg `json:"submission"`
}

type KYCSubmissionMsg struct {
	SubmittedAt        time.Time         `json:"submitted_at"`
	CreatedAt          time.Time         `json:"created_at"`
	UpdatedAt          time.Time         `json:"updated_at"`
	ReviewedAt         *time.Time        `json:"reviewed_at,omitempty"`
	Documents          map[string]string `json:"documents"`
	Address            *AddressMsg       `json:"address_verification"`
	ID                 string            `json:"id"`
	UserID             string            `json:"user_id"`
	Status             string            `json:"status"`
	Comments           []*CommentMsg     `json:"admin_comments"`
	Attempts           int32             `json:"submission_attempts"`
	Version            int32             `json:"version"`
	MaxAttemptsReached bool              `json:"max_attempts_reached"`
}

type AddressMsg struct {
	ReviewedAt      *time.Time `json:"reviewed_at,omitempty"`
	Status          string     `json:"status"`
	RejectionReason string     `json:"rejection_reason,omitempty"`
}

type CommentMsg struct {
	CreatedAt  time.Time `json:"created_at"`
	ID         string    `json:"id"`
	AuthorID   string    `json:"author_id"`
	AuthorRole string    `json:"author_role"`
	Comment    string    `json:"comment"`
}
