//go:build integration

package persistence_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Programmer60/BorrowEase-sub002/internal/domain/model"
	"github.com/Programmer60/BorrowEase-sub002/internal/domain/port"
	"github.com/Programmer60/BorrowEase-sub002/internal/domain/valueobject"
	"github.com/Programmer60/BorrowEase-sub002/internal/infrastructure/persistence"
	"github.com/Programmer60/BorrowEase-sub002/pkg/testutil"
)

var (
	admin = valueobject.Actor{UserID: testutil.TestAdminID, Role: valueobject.RoleAdmin}
	now   = time.Now().UTC().Truncate(time.Microsecond)
)

func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	testutil.SkipIfShort(t)
	ctx := context.Background()

	pg := testutil.NewPostgresContainer(ctx, t)
	t.Cleanup(func() { pg.Cleanup(t) })

	pg.RunMigrations(t, persistence.Migrations, persistence.MigrationsDir)

	return pg.Pool
}

func newSubmission(t *testing.T, owner uuid.UUID) model.KYCSubmission {
	t.Helper()
	docs, err := valueobject.ParseDocuments(map[string]string{
		"identity_primary":   "kyc/pan.pdf",
		"identity_secondary": "kyc/college-id.pdf",
		"selfie":             "kyc/selfie.jpg",
	})
	require.NoError(t, err)
	s, err := model.NewKYCSubmission(valueobject.Actor{UserID: owner, Role: valueobject.RoleBorrower}, docs, now)
	require.NoError(t, err)
	return s
}

func TestSubmissionRepo(t *testing.T) {
	pool := setupTestDB(t)
	repo := persistence.NewSubmissionRepo(pool)
	ctx := context.Background()

	t.Run("create and find round trip", func(t *testing.T) {
		sub := newSubmission(t, uuid.New())
		require.NoError(t, repo.Create(ctx, sub))

		byID, err := repo.FindByID(ctx, sub.ID())
		require.NoError(t, err)
		assert.Equal(t, sub.OwnerID(), byID.OwnerID())
		assert.Equal(t, sub.Status(), byID.Status())
		assert.Equal(t, sub.Documents().Raw(), byID.Documents().Raw())
		assert.Equal(t, valueobject.AddressNotSubmitted, byID.Address().Status())
		assert.Empty(t, byID.DomainEvents())

		byOwner, err := repo.FindByOwner(ctx, sub.OwnerID())
		require.NoError(t, err)
		assert.Equal(t, sub.ID(), byOwner.ID())
	})

	t.Run("second submission for an owner is rejected", func(t *testing.T) {
		owner := uuid.New()
		require.NoError(t, repo.Create(ctx, newSubmission(t, owner)))

		err := repo.Create(ctx, newSubmission(t, owner))
		testutil.AssertErrorIs(t, err, valueobject.ErrInvalidTransition, "already has a submission")
	})

	t.Run("missing submission is not found", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, valueobject.ErrNotFound)
	})

	t.Run("conditional update and stale writer", func(t *testing.T) {
		sub := newSubmission(t, uuid.New())
		require.NoError(t, repo.Create(ctx, sub))
		stored, err := repo.FindByID(ctx, sub.ID())
		require.NoError(t, err)
		expected := port.ExpectedStateOf(stored)

		verified, err := stored.Approve(admin, "", now)
		require.NoError(t, err)
		rejected, err := stored.Reject(admin, "blurry", now)
		require.NoError(t, err)

		require.NoError(t, repo.Update(ctx, verified, expected))
		err = repo.Update(ctx, rejected, expected)
		testutil.AssertErrorIs(t, err, valueobject.ErrConcurrentModification, "no longer pending")

		final, err := repo.FindByID(ctx, sub.ID())
		require.NoError(t, err)
		assert.Equal(t, valueobject.SubmissionVerified, final.Status())
		require.Len(t, final.Comments(), 1)
		assert.Equal(t, "KYC submission verified", final.Comments()[0].Text())
	})

	t.Run("comments keep insertion order when timestamps tie", func(t *testing.T) {
		sub := newSubmission(t, uuid.New())
		require.NoError(t, repo.Create(ctx, sub))
		owner := valueobject.Actor{UserID: sub.OwnerID(), Role: valueobject.RoleBorrower}

		// every transition is stamped with the same instant
		for _, reason := range []string{"expired id", "blurred selfie"} {
			s, err := repo.FindByID(ctx, sub.ID())
			require.NoError(t, err)
			rejected, err := s.Reject(admin, reason, now)
			require.NoError(t, err)
			require.NoError(t, repo.Update(ctx, rejected, port.ExpectedStateOf(s)))

			s, err = repo.FindByID(ctx, sub.ID())
			require.NoError(t, err)
			resubmitted, err := s.Resubmit(owner, s.Documents(), now)
			require.NoError(t, err)
			require.NoError(t, repo.Update(ctx, resubmitted, port.ExpectedStateOf(s)))
		}

		s, err := repo.FindByID(ctx, sub.ID())
		require.NoError(t, err)
		verified, err := s.Approve(admin, "clear now", now)
		require.NoError(t, err)
		require.NoError(t, repo.Update(ctx, verified, port.ExpectedStateOf(s)))

		final, err := repo.FindByID(ctx, sub.ID())
		require.NoError(t, err)
		assert.Equal(t, 3, final.Attempts())
		texts := make([]string, 0, len(final.Comments()))
		for _, c := range final.Comments() {
			texts = append(texts, c.Text())
		}
		assert.Equal(t, []string{"expired id", "blurred selfie", "clear now"}, texts)
	})

	t.Run("list filters by status", func(t *testing.T) {
		_, total, err := repo.List(ctx, port.SubmissionFilter{Limit: 100})
		require.NoError(t, err)
		assert.Positive(t, total)

		verified, vTotal, err := repo.List(ctx, port.SubmissionFilter{Status: valueobject.SubmissionVerified, Limit: 100})
		require.NoError(t, err)
		assert.Equal(t, len(verified), vTotal)
		for _, s := range verified {
			assert.True(t, s.IsVerified())
		}
	})

	t.Run("legacy status spelling is refused by the schema", func(t *testing.T) {
		sub := newSubmission(t, uuid.New())
		require.NoError(t, repo.Create(ctx, sub))

		_, err := pool.Exec(ctx, `UPDATE kyc_submissions SET status = 'approved' WHERE id = $1`, sub.ID())
		assert.Error(t, err)
	})
}

func TestLoanHistoryRepo(t *testing.T) {
	pool := setupTestDB(t)
	repo := persistence.NewLoanHistoryRepo(pool)
	ctx := context.Background()

	t.Run("borrower without history yields zero factors", func(t *testing.T) {
		f, err := repo.LoadFactors(ctx, uuid.New())
		require.NoError(t, err)
		assert.True(t, f.IsColdStart())
		assert.Zero(t, f.CreditHistoryMonths)
		assert.True(t, f.TotalAmountBorrowed.IsZero())
	})

	t.Run("aggregates loan records and profile", func(t *testing.T) {
		borrower := uuid.New()
		disbursed := now.AddDate(-2, 0, -1)
		loans := []struct {
			purpose, principal, status string
		}{
			{"tuition", "50000.00", "repaid"},
			{"laptop", "30000.00", "repaid"},
			{"tuition", "20000.00", "active"},
			{"housing", "15000.00", "defaulted"},
			{"books", "5000.00", "active"},
		}
		for _, l := range loans {
			_, err := pool.Exec(ctx, `
				INSERT INTO borrower_loan_records (id, borrower_id, purpose, principal, status, disbursed_at)
				VALUES ($1, $2, $3, $4::numeric, $5, $6)
			`, uuid.New(), borrower, l.purpose, l.principal, l.status, disbursed)
			require.NoError(t, err)
		}
		_, err := pool.Exec(ctx, `
			INSERT INTO borrower_credit_profiles (borrower_id, credit_limit, social_trust_score)
			VALUES ($1, 100000, 72.5)
		`, borrower)
		require.NoError(t, err)

		f, err := repo.LoadFactors(ctx, borrower)
		require.NoError(t, err)
		assert.Equal(t, 5, f.TotalLoans)
		assert.Equal(t, 2, f.RepaidLoans)
		assert.Equal(t, "120000.00 INR", f.TotalAmountBorrowed.String())
		assert.InDelta(t, 25.0, f.CreditUtilization, 1e-9)
		// only repaid purposes count towards diversity
		assert.Equal(t, 2, f.LoanDiversityCount)
		assert.InDelta(t, 72.5, f.SocialTrustScore, 1e-9)
		assert.Equal(t, 24, f.CreditHistoryMonths)
		assert.NoError(t, f.Validate())
	})

	t.Run("closed pool is source unavailable", func(t *testing.T) {
		closed, err := pgxpool.New(ctx, pool.Config().ConnString())
		require.NoError(t, err)
		closed.Close()

		_, err = persistence.NewLoanHistoryRepo(closed).LoadFactors(ctx, uuid.New())
		assert.ErrorIs(t, err, valueobject.ErrSourceUnavailable)
	})
}
