package model

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Programmer60/BorrowEase-sub002/internal/domain/event"
	"github.com/Programmer60/BorrowEase-sub002/internal/domain/valueobject"
	"github.com/Programmer60/BorrowEase-sub002/pkg/events"
)

// MaxSubmissionAttempts bounds borrower-initiated attempts before an admin reset is required.
const MaxSubmissionAttempts = 3

const (
	defaultApprovalComment = "KYC submission verified"
	resetComment           = "Submission attempts reset by admin"
)

// KYCSubmission is the root aggregate of the identity-verification context.
// There is one submission per borrower; attempts mutate it in place.
// All transitions are immutable and return a new copy.
type KYCSubmission struct {
	id           uuid.UUID
	ownerID      uuid.UUID
	status       valueobject.SubmissionStatus
	documents    valueobject.Documents
	attempts     int
	comments     []ReviewComment
	address      AddressVerification
	submittedAt  time.Time
	reviewedAt   *time.Time
	version      int
	createdAt    time.Time
	updatedAt    time.Time
	domainEvents []events.DomainEvent
}

// NewKYCSubmission records a borrower's first submission in pending status.
func NewKYCSubmission(actor valueobject.Actor, docs valueobject.Documents, now time.Time) (KYCSubmission, error) {
	if actor.UserID == uuid.Nil {
		return KYCSubmission{}, valueobject.Validationf("owner ID is required")
	}
	if err := docs.Validate(); err != nil {
		return KYCSubmission{}, err
	}

	id := uuid.New()
	s := KYCSubmission{
		id:          id,
		ownerID:     actor.UserID,
		status:      valueobject.SubmissionPending,
		documents:   docs.Clone(),
		attempts:    1,
		address:     newAddressVerification(docs),
		submittedAt: now,
		version:     1,
		createdAt:   now,
		updatedAt:   now,
	}

	s.domainEvents = append(s.domainEvents, event.NewSubmissionCreated(id, actor.UserID, documentNames(docs)))
	if s.address.status == valueobject.AddressSubmitted {
		s.domainEvents = append(s.domainEvents, event.NewAddressProofSubmitted(id, actor.UserID))
	}

	return s, nil
}

// SubmissionState carries persisted fields for Reconstruct.
type SubmissionState struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	Status      valueobject.SubmissionStatus
	Documents   valueobject.Documents
	Attempts    int
	Comments    []ReviewComment
	Address     AddressVerification
	SubmittedAt time.Time
	ReviewedAt  *time.Time
	Version     int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Reconstruct recreates a KYCSubmission from persistence (no validation, no events).
func Reconstruct(st SubmissionState) KYCSubmission {
	return KYCSubmission{
		id:          st.ID,
		ownerID:     st.OwnerID,
		status:      st.Status,
		documents:   st.Documents,
		attempts:    st.Attempts,
		comments:    st.Comments,
		address:     st.Address,
		submittedAt: st.SubmittedAt,
		reviewedAt:  st.ReviewedAt,
		version:     st.Version,
		createdAt:   st.CreatedAt,
		updatedAt:   st.UpdatedAt,
	}
}

// Review applies an admin decision. action must be verified or rejected.
func (s KYCSubmission) Review(actor valueobject.Actor, action valueobject.SubmissionStatus, comment string, now time.Time) (KYCSubmission, error) {
	switch action {
	case valueobject.SubmissionVerified:
		return s.Approve(actor, comment, now)
	case valueobject.SubmissionRejected:
		return s.Reject(actor, comment, now)
	default:
		return KYCSubmission{}, valueobject.Validationf("review action must be verified or rejected, got %q", action)
	}
}

// Approve moves a pending submission to verified. The comment is optional.
func (s KYCSubmission) Approve(actor valueobject.Actor, comment string, now time.Time) (KYCSubmission, error) {
	if err := actor.RequireAdmin("approving a KYC submission"); err != nil {
		return KYCSubmission{}, err
	}
	if err := s.status.ValidateTransition(valueobject.SubmissionVerified); err != nil {
		return KYCSubmission{}, fmt.Errorf("submission %s: %w", s.id, err)
	}

	if strings.TrimSpace(comment) == "" {
		comment = defaultApprovalComment
	}
	c, err := NewReviewComment(actor, comment, now)
	if err != nil {
		return KYCSubmission{}, err
	}

	updated := s.next(now)
	updated.status = valueobject.SubmissionVerified
	updated.reviewedAt = &now
	updated.comments = append(updated.comments, c)
	updated.domainEvents = append(updated.domainEvents,
		event.NewSubmissionReviewed(s.id, s.ownerID, actor.UserID, updated.status.String(), updated.attempts, false))

	return updated, nil
}

// Reject moves a pending submission to rejected. A non-blank comment is required.
func (s KYCSubmission) Reject(actor valueobject.Actor, comment string, now time.Time) (KYCSubmission, error) {
	if err := actor.RequireAdmin("rejecting a KYC submission"); err != nil {
		return KYCSubmission{}, err
	}
	if err := s.status.ValidateTransition(valueobject.SubmissionRejected); err != nil {
		return KYCSubmission{}, fmt.Errorf("submission %s: %w", s.id, err)
	}
	c, err := NewReviewComment(actor, comment, now)
	if err != nil {
		return KYCSubmission{}, fmt.Errorf("rejection requires a comment: %w", err)
	}

	updated := s.next(now)
	updated.status = valueobject.SubmissionRejected
	updated.reviewedAt = &now
	updated.comments = append(updated.comments, c)
	updated.domainEvents = append(updated.domainEvents,
		event.NewSubmissionReviewed(s.id, s.ownerID, actor.UserID, updated.status.String(), updated.attempts, updated.MaxAttemptsReached()))

	return updated, nil
}

// Resubmit replaces the document set of a rejected submission and returns it
// to pending with one more attempt consumed. Only the owner may resubmit.
//
// The address proof follows its own workflow: a new reference is taken only
// while that workflow accepts one (not_submitted or rejected), otherwise the
// previously attached proof is kept.
func (s KYCSubmission) Resubmit(actor valueobject.Actor, docs valueobject.Documents, now time.Time) (KYCSubmission, error) {
	if err := actor.RequireOwner(s.ownerID, "resubmitting KYC documents"); err != nil {
		return KYCSubmission{}, err
	}
	if s.MaxAttemptsReached() {
		return KYCSubmission{}, fmt.Errorf("%w: submission %s used %d of %d attempts, an admin reset is required",
			valueobject.ErrAttemptsExhausted, s.id, s.attempts, MaxSubmissionAttempts)
	}
	if err := s.status.ValidateTransition(valueobject.SubmissionPending); err != nil {
		return KYCSubmission{}, fmt.Errorf("submission %s: %w", s.id, err)
	}
	if err := docs.Validate(); err != nil {
		return KYCSubmission{}, err
	}

	updated := s.next(now)
	updated.status = valueobject.SubmissionPending
	updated.attempts = s.attempts + 1
	updated.submittedAt = now
	updated.reviewedAt = nil

	replaced := docs.Clone()
	delete(replaced, valueobject.DocAddressProof)
	if prev, ok := s.documents[valueobject.DocAddressProof]; ok {
		replaced[valueobject.DocAddressProof] = prev
	}
	updated.documents = replaced

	updated.domainEvents = append(updated.domainEvents,
		event.NewSubmissionResubmitted(s.id, s.ownerID, updated.attempts))

	if ref, ok := docs[valueobject.DocAddressProof]; ok && s.address.status.ValidateTransition(valueobject.AddressSubmitted) == nil {
		updated = updated.attachAddressProof(ref)
	}

	return updated, nil
}

// ResetAttempts unblocks a submission that exhausted its attempts. History is preserved.
func (s KYCSubmission) ResetAttempts(actor valueobject.Actor, note string, now time.Time) (KYCSubmission, error) {
	if err := actor.RequireAdmin("resetting KYC attempts"); err != nil {
		return KYCSubmission{}, err
	}
	if s.status.IsTerminal() {
		return KYCSubmission{}, fmt.Errorf("submission %s: %w", s.id, valueobject.ErrTerminalState)
	}
	if !s.MaxAttemptsReached() {
		return KYCSubmission{}, fmt.Errorf("%w: submission %s has not exhausted its attempts (status %s, attempt %d)",
			valueobject.ErrInvalidTransition, s.id, s.status, s.attempts)
	}

	text := resetComment
	if note = strings.TrimSpace(note); note != "" {
		text += ": " + note
	}
	c, err := NewReviewComment(actor, text, now)
	if err != nil {
		return KYCSubmission{}, err
	}

	updated := s.next(now)
	updated.status = valueobject.SubmissionPending
	updated.attempts = 1
	updated.comments = append(updated.comments, c)
	updated.domainEvents = append(updated.domainEvents, event.NewAttemptsReset(s.id, s.ownerID, actor.UserID))

	return updated, nil
}

// SubmitAddressProof attaches an address proof for review, regardless of the parent status.
func (s KYCSubmission) SubmitAddressProof(actor valueobject.Actor, ref string, now time.Time) (KYCSubmission, error) {
	if err := actor.RequireOwner(s.ownerID, "submitting an address proof"); err != nil {
		return KYCSubmission{}, err
	}
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return KYCSubmission{}, valueobject.Validationf("address proof reference is required")
	}
	if err := s.address.status.ValidateTransition(valueobject.AddressSubmitted); err != nil {
		return KYCSubmission{}, fmt.Errorf("submission %s: %w", s.id, err)
	}

	return s.next(now).attachAddressProof(ref), nil
}

// ReviewAddress records an admin decision on the address sub-verification.
// It never changes the parent submission's status.
func (s KYCSubmission) ReviewAddress(actor valueobject.Actor, outcome valueobject.AddressStatus, reason string, now time.Time) (KYCSubmission, error) {
	if err := actor.RequireAdmin("reviewing an address proof"); err != nil {
		return KYCSubmission{}, err
	}
	if outcome != valueobject.AddressVerified && outcome != valueobject.AddressRejected {
		return KYCSubmission{}, valueobject.Validationf("address review outcome must be verified or rejected, got %q", outcome)
	}
	if err := s.address.status.ValidateTransition(outcome); err != nil {
		return KYCSubmission{}, fmt.Errorf("submission %s: %w", s.id, err)
	}

	reason = strings.TrimSpace(reason)
	text := "Address proof verified"
	if outcome == valueobject.AddressRejected {
		if reason == "" {
			return KYCSubmission{}, valueobject.Validationf("address rejection requires a reason")
		}
		text = "Address proof rejected: " + reason
	} else {
		reason = ""
	}

	c, err := NewReviewComment(actor, text, now)
	if err != nil {
		return KYCSubmission{}, err
	}

	updated := s.next(now)
	updated.address = AddressVerification{status: outcome, rejectionReason: reason, reviewedAt: &now}
	updated.comments = append(updated.comments, c)
	updated.domainEvents = append(updated.domainEvents,
		event.NewAddressReviewed(s.id, actor.UserID, outcome.String(), reason))

	return updated, nil
}

// MaxAttemptsReached is true iff the submission is rejected on its final attempt.
func (s KYCSubmission) MaxAttemptsReached() bool {
	return s.status == valueobject.SubmissionRejected && s.attempts >= MaxSubmissionAttempts
}

// IsVerified reports whether the identity check succeeded.
func (s KYCSubmission) IsVerified() bool {
	return s.status == valueobject.SubmissionVerified
}

// next prepares a copy for mutation: bumps the version and detaches shared slices and maps.
func (s KYCSubmission) next(now time.Time) KYCSubmission {
	updated := s
	updated.version++
	updated.updatedAt = now
	updated.documents = s.documents.Clone()
	updated.comments = copyComments(s.comments)
	updated.domainEvents = copyEvents(s.domainEvents)
	return updated
}

func (s KYCSubmission) attachAddressProof(ref string) KYCSubmission {
	s.documents[valueobject.DocAddressProof] = ref
	s.address = AddressVerification{status: valueobject.AddressSubmitted}
	s.domainEvents = append(s.domainEvents, event.NewAddressProofSubmitted(s.id, s.ownerID))
	return s
}

func documentNames(docs valueobject.Documents) []string {
	names := make([]string, 0, len(docs))
	for k := range docs {
		names = append(names, k.String())
	}
	sort.Strings(names)
	return names
}

func copyComments(src []ReviewComment) []ReviewComment {
	dst := make([]ReviewComment, len(src), len(src)+1)
	copy(dst, src)
	return dst
}

// copyEvents creates a defensive copy of domain events.
func copyEvents(src []events.DomainEvent) []events.DomainEvent {
	if src == nil {
		return nil
	}
	dst := make([]events.DomainEvent, len(src))
	copy(dst, src)
	return dst
}

// Accessors

func (s KYCSubmission) ID() uuid.UUID                        { return s.id }
func (s KYCSubmission) OwnerID() uuid.UUID                   { return s.ownerID }
func (s KYCSubmission) Status() valueobject.SubmissionStatus { return s.status }
func (s KYCSubmission) Attempts() int                        { return s.attempts }
func (s KYCSubmission) Address() AddressVerification         { return s.address }
func (s KYCSubmission) SubmittedAt() time.Time               { return s.submittedAt }
func (s KYCSubmission) Version() int                         { return s.version }
func (s KYCSubmission) CreatedAt() time.Time                 { return s.createdAt }
func (s KYCSubmission) UpdatedAt() time.Time                 { return s.updatedAt }
func (s KYCSubmission) DomainEvents() []events.DomainEvent   { return s.domainEvents }
func (s KYCSubmission) Documents() valueobject.Documents     { return s.documents.Clone() }
func (s KYCSubmission) Comments() []ReviewComment            { return copyComments(s.comments) }

func (s KYCSubmission) ReviewedAt() *time.Time {
	if s.reviewedAt == nil {
		return nil
	}
	t := *s.reviewedAt
	return &t
}
