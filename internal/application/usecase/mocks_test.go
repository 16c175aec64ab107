package usecase_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/Programmer60/BorrowEase-sub002/internal/domain/model"
	"github.com/Programmer60/BorrowEase-sub002/internal/domain/port"
	"github.com/Programmer60/BorrowEase-sub002/internal/domain/valueobject"
	"github.com/Programmer60/BorrowEase-sub002/pkg/events"
	"github.com/Programmer60/BorrowEase-sub002/pkg/testutil"
)

// --- Mock implementations ---

// memoryRepo is an in-memory SubmissionRepository with the same
// compare-and-swap contract as the Postgres adapter.
type memoryRepo struct {
	mu      sync.Mutex
	byID    map[uuid.UUID]model.KYCSubmission
	updates int

	// findErr, when set, is returned from every lookup.
	findErr error
	// afterFind runs after FindByID releases the lock.
	afterFind func()
	// afterOwnerFind runs after FindByOwner releases the lock.
	afterOwnerFind func()
}

func newMemoryRepo(subs ...model.KYCSubmission) *memoryRepo {
	r := &memoryRepo{byID: make(map[uuid.UUID]model.KYCSubmission)}
	for _, s := range subs {
		r.byID[s.ID()] = persisted(s)
	}
	return r
}

func (r *memoryRepo) Create(_ context.Context, s model.KYCSubmission) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if existing.OwnerID() == s.OwnerID() {
			return valueobject.ErrInvalidTransition
		}
	}
	r.byID[s.ID()] = persisted(s)
	return nil
}

func (r *memoryRepo) Update(_ context.Context, s model.KYCSubmission, expected port.ExpectedState) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.byID[s.ID()]
	if !ok {
		return valueobject.ErrNotFound
	}
	if current.Status() != expected.Status || current.Version() != expected.Version {
		return valueobject.ErrConcurrentModification
	}
	r.byID[s.ID()] = persisted(s)
	r.updates++
	return nil
}

func (r *memoryRepo) FindByID(_ context.Context, id uuid.UUID) (model.KYCSubmission, error) {
	s, err := r.findByID(id)
	if r.afterFind != nil {
		r.afterFind()
	}
	return s, err
}

func (r *memoryRepo) findByID(id uuid.UUID) (model.KYCSubmission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return model.KYCSubmission{}, r.findErr
	}
	s, ok := r.byID[id]
	if !ok {
		return model.KYCSubmission{}, valueobject.ErrNotFound
	}
	return s, nil
}

func (r *memoryRepo) FindByOwner(_ context.Context, ownerID uuid.UUID) (model.KYCSubmission, error) {
	s, err := r.findByOwner(ownerID)
	if r.afterOwnerFind != nil {
		r.afterOwnerFind()
	}
	return s, err
}

func (r *memoryRepo) findByOwner(ownerID uuid.UUID) (model.KYCSubmission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return model.KYCSubmission{}, r.findErr
	}
	for _, s := range r.byID {
		if s.OwnerID() == ownerID {
			return s, nil
		}
	}
	return model.KYCSubmission{}, valueobject.ErrNotFound
}

func (r *memoryRepo) List(_ context.Context, filter port.SubmissionFilter) ([]model.KYCSubmission, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.KYCSubmission
	for _, s := range r.byID {
		if !filter.Status.IsZero() && s.Status() != filter.Status {
			continue
		}
		if !filter.AddressStatus.IsZero() && s.Address().Status() != filter.AddressStatus {
			continue
		}
		out = append(out, s)
	}
	return out, len(out), nil
}

func (r *memoryRepo) get(t *testing.T, id uuid.UUID) model.KYCSubmission {
	t.Helper()
	s, err := r.findByID(id)
	require.NoError(t, err)
	return s
}

type mockPublisher struct {
	mu          sync.Mutex
	published   []events.DomainEvent
	topics      []string
	publishFunc func(ctx context.Context, topic string, evts ...events.DomainEvent) error
}

func (m *mockPublisher) Publish(ctx context.Context, topic string, evts ...events.DomainEvent) error {
	if m.publishFunc != nil {
		return m.publishFunc(ctx, topic, evts...)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.published = append(m.published, evts...)
	m.topics = append(m.topics, topic)
	return nil
}

func (m *mockPublisher) eventTypes() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	types := make([]string, 0, len(m.published))
	for _, e := range m.published {
		types = append(types, e.EventType())
	}
	return types
}

type mockFactorSource struct {
	factors  valueobject.ScoreFactors
	err      error
	calls    int
	loadFunc func(ctx context.Context, borrowerID uuid.UUID) (valueobject.ScoreFactors, error)
}

func (m *mockFactorSource) LoadFactors(ctx context.Context, borrowerID uuid.UUID) (valueobject.ScoreFactors, error) {
	m.calls++
	if m.loadFunc != nil {
		return m.loadFunc(ctx, borrowerID)
	}
	return m.factors, m.err
}

type mockScoreCache struct {
	entries     map[uuid.UUID]model.CreditScore
	invalidated []uuid.UUID
	getErr      error
}

func newMockScoreCache() *mockScoreCache {
	return &mockScoreCache{entries: make(map[uuid.UUID]model.CreditScore)}
}

func (m *mockScoreCache) Get(_ context.Context, id uuid.UUID) (model.CreditScore, bool, error) {
	if m.getErr != nil {
		return model.CreditScore{}, false, m.getErr
	}
	s, ok := m.entries[id]
	return s, ok, nil
}

func (m *mockScoreCache) Set(_ context.Context, s model.CreditScore) error {
	m.entries[s.BorrowerID] = s
	return nil
}

func (m *mockScoreCache) Invalidate(_ context.Context, id uuid.UUID) error {
	delete(m.entries, id)
	m.invalidated = append(m.invalidated, id)
	return nil
}

type mockMetrics struct {
	mu          sync.Mutex
	scores      []string
	assessments []string
	transitions []string
	conflicts   []string
}

func (m *mockMetrics) ScoreComputed(_ context.Context, rating string, cached bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if cached {
		rating += "/cached"
	}
	m.scores = append(m.scores, rating)
}

func (m *mockMetrics) RiskAssessed(_ context.Context, modelID, decision string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.assessments = append(m.assessments, modelID+"/"+decision)
}

func (m *mockMetrics) SubmissionTransitioned(_ context.Context, operation, from, to string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transitions = append(m.transitions, operation+":"+from+"->"+to)
}

func (m *mockMetrics) ConcurrentModification(_ context.Context, operation string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.conflicts = append(m.conflicts, operation)
}

// --- Fixtures ---

var (
	borrower = valueobject.Actor{UserID: testutil.TestBorrowerID, Role: valueobject.RoleBorrower}
	other    = valueobject.Actor{UserID: testutil.TestOtherUserID, Role: valueobject.RoleBorrower}
	admin    = valueobject.Actor{UserID: testutil.TestAdminID, Role: valueobject.RoleAdmin}
	lender   = valueobject.Actor{UserID: uuid.MustParse("00000000-0000-0000-0000-00000000000b"), Role: valueobject.RoleLender}
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func rawDocs() map[string]string {
	return map[string]string{
		"identity_primary":   "kyc/aadhaar.pdf",
		"identity_secondary": "kyc/college-id.pdf",
		"selfie":             "kyc/selfie.jpg",
	}
}

func pendingSubmission(t *testing.T) model.KYCSubmission {
	t.Helper()
	docs, err := valueobject.ParseDocuments(rawDocs())
	require.NoError(t, err)
	s, err := model.NewKYCSubmission(borrower, docs, testutil.TestNow)
	require.NoError(t, err)
	return persisted(s)
}

// persisted drops pending domain events the way a repository round trip does.
func persisted(s model.KYCSubmission) model.KYCSubmission {
	return model.Reconstruct(model.SubmissionState{
		ID:          s.ID(),
		OwnerID:     s.OwnerID(),
		Status:      s.Status(),
		Documents:   s.Documents(),
		Attempts:    s.Attempts(),
		Comments:    s.Comments(),
		Address:     s.Address(),
		SubmittedAt: s.SubmittedAt(),
		ReviewedAt:  s.ReviewedAt(),
		Version:     s.Version(),
		CreatedAt:   s.CreatedAt(),
		UpdatedAt:   s.UpdatedAt(),
	})
}

// exhaustedSubmission returns a submission rejected on its third attempt.
func exhaustedSubmission(t *testing.T) model.KYCSubmission {
	t.Helper()
	s := pendingSubmission(t)
	docs, err := valueobject.ParseDocuments(rawDocs())
	require.NoError(t, err)
	for i := 0; i < model.MaxSubmissionAttempts; i++ {
		s, err = s.Reject(admin, "document mismatch", testutil.TestNow)
		require.NoError(t, err)
		if i < model.MaxSubmissionAttempts-1 {
			s, err = s.Resubmit(borrower, docs, testutil.TestNow)
			require.NoError(t, err)
		}
	}
	require.True(t, s.MaxAttemptsReached())
	return persisted(s)
}
