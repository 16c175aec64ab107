package model_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Programmer60/BorrowEase-sub002/internal/domain/event"
	"github.com/Programmer60/BorrowEase-sub002/internal/domain/model"
	"github.com/Programmer60/BorrowEase-sub002/internal/domain/valueobject"
)

var (
	ownerID = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	owner   = valueobject.Actor{UserID: ownerID, Role: valueobject.RoleBorrower}
	admin   = valueobject.Actor{UserID: uuid.MustParse("aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa"), Role: valueobject.RoleAdmin}
	now     = time.Date(2025, time.March, 14, 9, 30, 0, 0, time.UTC)
)

func mandatoryDocs() valueobject.Documents {
	return valueobject.Documents{
		valueobject.DocIdentityPrimary:   "kyc/passport.pdf",
		valueobject.DocIdentitySecondary: "kyc/student-id.pdf",
		valueobject.DocSelfie:            "kyc/selfie.jpg",
	}
}

func newSubmission(t *testing.T) model.KYCSubmission {
	t.Helper()
	s, err := model.NewKYCSubmission(owner, mandatoryDocs(), now)
	require.NoError(t, err)
	return s
}

func rejectAndResubmit(t *testing.T, s model.KYCSubmission) model.KYCSubmission {
	t.Helper()
	rejected, err := s.Reject(admin, "blurry selfie", now)
	require.NoError(t, err)
	resubmitted, err := rejected.Resubmit(owner, mandatoryDocs(), now)
	require.NoError(t, err)
	return resubmitted
}

func exhausted(t *testing.T) model.KYCSubmission {
	t.Helper()
	s := rejectAndResubmit(t, rejectAndResubmit(t, newSubmission(t)))
	s, err := s.Reject(admin, "document expired", now)
	require.NoError(t, err)
	return s
}

func TestNewKYCSubmission(t *testing.T) {
	t.Run("starts pending on attempt one", func(t *testing.T) {
		s := newSubmission(t)

		assert.NotEqual(t, uuid.Nil, s.ID())
		assert.Equal(t, ownerID, s.OwnerID())
		assert.Equal(t, valueobject.SubmissionPending, s.Status())
		assert.Equal(t, 1, s.Attempts())
		assert.False(t, s.MaxAttemptsReached())
		assert.Nil(t, s.ReviewedAt())
		assert.Empty(t, s.Comments())
		assert.Equal(t, valueobject.AddressNotSubmitted, s.Address().Status())
		assert.Equal(t, 1, s.Version())

		require.Len(t, s.DomainEvents(), 1)
		assert.IsType(t, event.SubmissionCreated{}, s.DomainEvents()[0])
	})

	t.Run("missing mandatory document fails validation", func(t *testing.T) {
		docs := mandatoryDocs()
		delete(docs, valueobject.DocIdentitySecondary)

		_, err := model.NewKYCSubmission(owner, docs, now)
		assert.ErrorIs(t, err, valueobject.ErrValidation)
		assert.Contains(t, err.Error(), "identity_secondary")
	})

	t.Run("address proof opens the address workflow", func(t *testing.T) {
		docs := mandatoryDocs()
		docs[valueobject.DocAddressProof] = "kyc/utility-bill.pdf"

		s, err := model.NewKYCSubmission(owner, docs, now)
		require.NoError(t, err)
		assert.Equal(t, valueobject.AddressSubmitted, s.Address().Status())
		assert.Len(t, s.DomainEvents(), 2)
	})
}

func TestKYCSubmission_Review(t *testing.T) {
	t.Run("approve without comment succeeds", func(t *testing.T) {
		s := newSubmission(t)

		verified, err := s.Review(admin, valueobject.SubmissionVerified, "", now)
		require.NoError(t, err)
		assert.Equal(t, valueobject.SubmissionVerified, verified.Status())
		require.NotNil(t, verified.ReviewedAt())
		assert.Equal(t, now, *verified.ReviewedAt())
		require.Len(t, verified.Comments(), 1)
		assert.Equal(t, valueobject.RoleAdmin, verified.Comments()[0].AuthorRole())
		assert.Equal(t, s.Version()+1, verified.Version())

		assert.Equal(t, valueobject.SubmissionPending, s.Status(), "original is unchanged")
	})

	t.Run("reject without comment fails validation", func(t *testing.T) {
		s := newSubmission(t)

		_, err := s.Review(admin, valueobject.SubmissionRejected, "   ", now)
		assert.ErrorIs(t, err, valueobject.ErrValidation)
	})

	t.Run("reject with comment records it", func(t *testing.T) {
		rejected, err := newSubmission(t).Review(admin, valueobject.SubmissionRejected, "name mismatch", now)
		require.NoError(t, err)
		assert.Equal(t, valueobject.SubmissionRejected, rejected.Status())
		assert.Equal(t, "name mismatch", rejected.Comments()[0].Text())
		assert.False(t, rejected.MaxAttemptsReached())
	})

	t.Run("non-admin is unauthorized", func(t *testing.T) {
		_, err := newSubmission(t).Review(owner, valueobject.SubmissionVerified, "", now)
		assert.ErrorIs(t, err, valueobject.ErrUnauthorized)
	})

	t.Run("reviewing a non-pending submission is an invalid transition", func(t *testing.T) {
		rejected, err := newSubmission(t).Reject(admin, "bad scan", now)
		require.NoError(t, err)

		_, err = rejected.Review(admin, valueobject.SubmissionVerified, "", now)
		assert.ErrorIs(t, err, valueobject.ErrInvalidTransition)
	})

	t.Run("pending is not a review action", func(t *testing.T) {
		_, err := newSubmission(t).Review(admin, valueobject.SubmissionPending, "", now)
		assert.ErrorIs(t, err, valueobject.ErrValidation)
	})
}

func TestKYCSubmission_AttemptCeiling(t *testing.T) {
	s := exhausted(t)

	assert.Equal(t, 3, s.Attempts())
	assert.Equal(t, valueobject.SubmissionRejected, s.Status())
	assert.True(t, s.MaxAttemptsReached())

	_, err := s.Resubmit(owner, mandatoryDocs(), now)
	assert.ErrorIs(t, err, valueobject.ErrAttemptsExhausted)
	assert.Equal(t, 3, s.Attempts(), "failed resubmission leaves the record unchanged")
}

func TestKYCSubmission_Resubmit(t *testing.T) {
	t.Run("increments attempts and replaces documents", func(t *testing.T) {
		rejected, err := newSubmission(t).Reject(admin, "blurry", now)
		require.NoError(t, err)

		docs := mandatoryDocs()
		docs[valueobject.DocSelfie] = "kyc/selfie-v2.jpg"
		later := now.Add(time.Hour)

		resubmitted, err := rejected.Resubmit(owner, docs, later)
		require.NoError(t, err)
		assert.Equal(t, 2, resubmitted.Attempts())
		assert.Equal(t, valueobject.SubmissionPending, resubmitted.Status())
		assert.Equal(t, "kyc/selfie-v2.jpg", resubmitted.Documents()[valueobject.DocSelfie])
		assert.Equal(t, later, resubmitted.SubmittedAt())
		assert.Nil(t, resubmitted.ReviewedAt())
		assert.Len(t, resubmitted.Comments(), 1, "history is preserved")
	})

	t.Run("only the owner may resubmit", func(t *testing.T) {
		rejected, err := newSubmission(t).Reject(admin, "blurry", now)
		require.NoError(t, err)

		other := valueobject.Actor{UserID: uuid.New(), Role: valueobject.RoleBorrower}
		_, err = rejected.Resubmit(other, mandatoryDocs(), now)
		assert.ErrorIs(t, err, valueobject.ErrUnauthorized)
	})

	t.Run("pending submission cannot be resubmitted", func(t *testing.T) {
		_, err := newSubmission(t).Resubmit(owner, mandatoryDocs(), now)
		assert.ErrorIs(t, err, valueobject.ErrInvalidTransition)
	})

	t.Run("incomplete document set fails validation", func(t *testing.T) {
		rejected, err := newSubmission(t).Reject(admin, "blurry", now)
		require.NoError(t, err)

		_, err = rejected.Resubmit(owner, valueobject.Documents{valueobject.DocSelfie: "x"}, now)
		assert.ErrorIs(t, err, valueobject.ErrValidation)
	})
}

func TestKYCSubmission_ResetAttempts(t *testing.T) {
	t.Run("reset restores attempt one and keeps history", func(t *testing.T) {
		s := exhausted(t)
		before := len(s.Comments())

		reset, err := s.ResetAttempts(admin, "borrower called support", now)
		require.NoError(t, err)
		assert.Equal(t, 1, reset.Attempts())
		assert.Equal(t, valueobject.SubmissionPending, reset.Status())
		assert.False(t, reset.MaxAttemptsReached())
		require.Len(t, reset.Comments(), before+1)
		assert.Contains(t, reset.Comments()[before].Text(), "reset")
	})

	t.Run("reset requires exhausted attempts", func(t *testing.T) {
		rejected, err := newSubmission(t).Reject(admin, "blurry", now)
		require.NoError(t, err)

		_, err = rejected.ResetAttempts(admin, "", now)
		assert.ErrorIs(t, err, valueobject.ErrInvalidTransition)
	})

	t.Run("reset requires admin", func(t *testing.T) {
		_, err := exhausted(t).ResetAttempts(owner, "", now)
		assert.ErrorIs(t, err, valueobject.ErrUnauthorized)
	})
}

func TestKYCSubmission_VerifiedIsAbsorbing(t *testing.T) {
	verified, err := newSubmission(t).Approve(admin, "looks good", now)
	require.NoError(t, err)

	_, err = verified.Approve(admin, "", now)
	assert.ErrorIs(t, err, valueobject.ErrTerminalState)

	_, err = verified.Reject(admin, "changed my mind", now)
	assert.ErrorIs(t, err, valueobject.ErrTerminalState)

	_, err = verified.Resubmit(owner, mandatoryDocs(), now)
	assert.ErrorIs(t, err, valueobject.ErrTerminalState)

	_, err = verified.ResetAttempts(admin, "", now)
	assert.ErrorIs(t, err, valueobject.ErrTerminalState)
	assert.ErrorIs(t, err, valueobject.ErrInvalidTransition)

	assert.Equal(t, valueobject.SubmissionVerified, verified.Status())
	assert.Len(t, verified.Comments(), 1)
}

func TestKYCSubmission_AddressWorkflow(t *testing.T) {
	t.Run("independent of parent status", func(t *testing.T) {
		verified, err := newSubmission(t).Approve(admin, "", now)
		require.NoError(t, err)

		withProof, err := verified.SubmitAddressProof(owner, "kyc/lease.pdf", now)
		require.NoError(t, err)
		assert.Equal(t, valueobject.AddressSubmitted, withProof.Address().Status())
		assert.Equal(t, valueobject.SubmissionVerified, withProof.Status())

		rejected, err := withProof.ReviewAddress(admin, valueobject.AddressRejected, "address does not match", now)
		require.NoError(t, err)
		assert.Equal(t, valueobject.AddressRejected, rejected.Address().Status())
		assert.Equal(t, "address does not match", rejected.Address().RejectionReason())
		assert.Equal(t, valueobject.SubmissionVerified, rejected.Status())

		again, err := rejected.SubmitAddressProof(owner, "kyc/lease-v2.pdf", now)
		require.NoError(t, err)
		assert.Empty(t, again.Address().RejectionReason())

		ok, err := again.ReviewAddress(admin, valueobject.AddressVerified, "", now)
		require.NoError(t, err)
		assert.Equal(t, valueobject.AddressVerified, ok.Address().Status())
		assert.NotNil(t, ok.Address().ReviewedAt())
	})

	t.Run("review requires a submitted proof", func(t *testing.T) {
		_, err := newSubmission(t).ReviewAddress(admin, valueobject.AddressVerified, "", now)
		assert.ErrorIs(t, err, valueobject.ErrInvalidTransition)
	})

	t.Run("rejection requires a reason", func(t *testing.T) {
		s, err := newSubmission(t).SubmitAddressProof(owner, "kyc/bill.pdf", now)
		require.NoError(t, err)

		_, err = s.ReviewAddress(admin, valueobject.AddressRejected, "", now)
		assert.ErrorIs(t, err, valueobject.ErrValidation)
	})

	t.Run("review is admin only and proof is owner only", func(t *testing.T) {
		s, err := newSubmission(t).SubmitAddressProof(owner, "kyc/bill.pdf", now)
		require.NoError(t, err)

		_, err = s.ReviewAddress(owner, valueobject.AddressVerified, "", now)
		assert.ErrorIs(t, err, valueobject.ErrUnauthorized)

		_, err = newSubmission(t).SubmitAddressProof(admin, "kyc/bill.pdf", now)
		assert.ErrorIs(t, err, valueobject.ErrUnauthorized)
	})

	t.Run("resubmission keeps a proof under review", func(t *testing.T) {
		docs := mandatoryDocs()
		docs[valueobject.DocAddressProof] = "kyc/original-bill.pdf"
		s, err := model.NewKYCSubmission(owner, docs, now)
		require.NoError(t, err)
		s, err = s.Reject(admin, "blurry", now)
		require.NoError(t, err)

		docs[valueobject.DocAddressProof] = "kyc/new-bill.pdf"
		resubmitted, err := s.Resubmit(owner, docs, now)
		require.NoError(t, err)
		assert.Equal(t, "kyc/original-bill.pdf", resubmitted.Documents()[valueobject.DocAddressProof])
	})
}

func TestCreditScore(t *testing.T) {
	cs := model.CreditScore{
		Score:       640,
		Breakdown:   map[valueobject.Factor]int{valueobject.FactorPaymentHistory: 250, valueobject.FactorKYCVerification: 90},
		LastUpdated: now,
	}
	assert.Equal(t, 340, cs.BreakdownTotal())
	assert.False(t, cs.IsStale(now.Add(time.Minute), time.Hour))
	assert.True(t, cs.IsStale(now.Add(2*time.Hour), time.Hour))
}
