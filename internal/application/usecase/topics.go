package usecase

// Kafka topics the engine publishes to.
const (
	TopicKYCSubmissions  = "borrowease.kyc.submissions"
	TopicRiskAssessments = "borrowease.credit.assessments"
)
