package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Programmer60/BorrowEase-sub002/internal/domain/model"
	"github.com/Programmer60/BorrowEase-sub002/internal/domain/port"
	"github.com/Programmer60/BorrowEase-sub002/internal/domain/valueobject"
	pgpkg "github.com/Programmer60/BorrowEase-sub002/pkg/postgres"
)

// Compile-time interface check
var _ port.SubmissionRepository = (*SubmissionRepo)(nil)

const uniqueViolation = "23505"

const submissionColumns = `
	id, owner_id, status, documents, attempts,
	address_status, address_rejection_reason, address_reviewed_at,
	submitted_at, reviewed_at, version, created_at, updated_at`

// SubmissionRepo implements SubmissionRepository using PostgreSQL. Updates
// are compare-and-swap on (status, version); comments are append-only.
type SubmissionRepo struct {
	pool *pgxpool.Pool
}

func NewSubmissionRepo(pool *pgxpool.Pool) *SubmissionRepo {
	return &SubmissionRepo{pool: pool}
}

func (r *SubmissionRepo) Create(ctx context.Context, s model.KYCSubmission) error {
	docs, err := json.Marshal(s.Documents().Raw())
	if err != nil {
		return fmt.Errorf("encode documents: %w", err)
	}

	return pgpkg.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		address := s.Address()
		_, err := tx.Exec(ctx, `
			INSERT INTO kyc_submissions (`+submissionColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		`, s.ID(), s.OwnerID(), s.Status().String(), docs, s.Attempts(),
			address.Status().String(), address.RejectionReason(), address.ReviewedAt(),
			s.SubmittedAt(), s.ReviewedAt(), s.Version(), s.CreatedAt(), s.UpdatedAt())
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
				return fmt.Errorf("%w: borrower %s already has a submission", valueobject.ErrInvalidTransition, s.OwnerID())
			}
			return fmt.Errorf("insert submission: %w", err)
		}
		return insertComments(ctx, tx, s.ID(), s.Comments())
	})
}

func (r *SubmissionRepo) Update(ctx context.Context, s model.KYCSubmission, expected port.ExpectedState) error {
	docs, err := json.Marshal(s.Documents().Raw())
	if err != nil {
		return fmt.Errorf("encode documents: %w", err)
	}

	return pgpkg.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		address := s.Address()
		tag, err := tx.Exec(ctx, `
			UPDATE kyc_submissions SET
				status = $4,
				documents = $5,
				attempts = $6,
				address_status = $7,
				address_rejection_reason = $8,
				address_reviewed_at = $9,
				submitted_at = $10,
				reviewed_at = $11,
				version = $12,
				updated_at = $13
			WHERE id = $1 AND status = $2 AND version = $3
		`, s.ID(), expected.Status.String(), expected.Version,
			s.Status().String(), docs, s.Attempts(),
			address.Status().String(), address.RejectionReason(), address.ReviewedAt(),
			s.SubmittedAt(), s.ReviewedAt(), s.Version(), s.UpdatedAt())
		if err != nil {
			return fmt.Errorf("update submission: %w", err)
		}

		if tag.RowsAffected() == 0 {
			var exists bool
			if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM kyc_submissions WHERE id = $1)`, s.ID()).Scan(&exists); err != nil {
				return fmt.Errorf("check submission existence: %w", err)
			}
			if !exists {
				return fmt.Errorf("submission %s: %w", s.ID(), valueobject.ErrNotFound)
			}
			return fmt.Errorf("%w: submission %s is no longer %s at version %d",
				valueobject.ErrConcurrentModification, s.ID(), expected.Status, expected.Version)
		}

		return insertComments(ctx, tx, s.ID(), s.Comments())
	})
}

func (r *SubmissionRepo) FindByID(ctx context.Context, id uuid.UUID) (model.KYCSubmission, error) {
	return r.findOne(ctx, `SELECT `+submissionColumns+` FROM kyc_submissions WHERE id = $1`, id)
}

func (r *SubmissionRepo) FindByOwner(ctx context.Context, ownerID uuid.UUID) (model.KYCSubmission, error) {
	return r.findOne(ctx, `SELECT `+submissionColumns+` FROM kyc_submissions WHERE owner_id = $1`, ownerID)
}

func (r *SubmissionRepo) findOne(ctx context.Context, query string, arg uuid.UUID) (model.KYCSubmission, error) {
	st, err := scanSubmission(r.pool.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.KYCSubmission{}, fmt.Errorf("submission %s: %w", arg, valueobject.ErrNotFound)
		}
		return model.KYCSubmission{}, fmt.Errorf("query submission: %w", err)
	}

	comments, err := r.findComments(ctx, []uuid.UUID{st.ID})
	if err != nil {
		return model.KYCSubmission{}, err
	}
	st.Comments = comments[st.ID]

	return model.Reconstruct(st), nil
}

func (r *SubmissionRepo) List(ctx context.Context, filter port.SubmissionFilter) ([]model.KYCSubmission, int, error) {
	var (
		conds []string
		args  []any
	)
	if !filter.Status.IsZero() {
		args = append(args, filter.Status.String())
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if !filter.AddressStatus.IsZero() {
		args = append(args, filter.AddressStatus.String())
		conds = append(conds, fmt.Sprintf("address_status = $%d", len(args)))
	}
	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM kyc_submissions`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count submissions: %w", err)
	}

	pageArgs := append(args, filter.Limit, filter.Offset)
	rows, err := r.pool.Query(ctx, fmt.Sprintf(`
		SELECT %s FROM kyc_submissions%s
		ORDER BY submitted_at, id
		LIMIT $%d OFFSET $%d
	`, submissionColumns, where, len(args)+1, len(args)+2), pageArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("query submissions: %w", err)
	}
	defer rows.Close()

	var states []model.SubmissionState
	for rows.Next() {
		st, err := scanSubmission(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan submission: %w", err)
		}
		states = append(states, st)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate submissions: %w", err)
	}

	ids := make([]uuid.UUID, 0, len(states))
	for _, st := range states {
		ids = append(ids, st.ID)
	}
	comments, err := r.findComments(ctx, ids)
	if err != nil {
		return nil, 0, err
	}

	subs := make([]model.KYCSubmission, 0, len(states))
	for _, st := range states {
		st.Comments = comments[st.ID]
		subs = append(subs, model.Reconstruct(st))
	}
	return subs, total, nil
}

func (r *SubmissionRepo) findComments(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID][]model.ReviewComment, error) {
	out := make(map[uuid.UUID][]model.ReviewComment, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, submission_id, author_id, author_role, body, created_at
		FROM kyc_review_comments
		WHERE submission_id = ANY($1)
		ORDER BY seq
	`, ids)
	if err != nil {
		return nil, fmt.Errorf("query review comments: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id, submissionID, authorID uuid.UUID
			roleStr, body              string
			createdAt                  time.Time
		)
		if err := rows.Scan(&id, &submissionID, &authorID, &roleStr, &body, &createdAt); err != nil {
			return nil, fmt.Errorf("scan review comment: %w", err)
		}
		role, err := valueobject.NewRole(roleStr)
		if err != nil {
			return nil, fmt.Errorf("invalid comment author role in DB: %w", err)
		}
		out[submissionID] = append(out[submissionID], model.ReconstructReviewComment(id, authorID, role, body, createdAt))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate review comments: %w", err)
	}
	return out, nil
}

// insertComments writes any comment not yet stored. Existing rows are never
// rewritten, so the audit trail stays append-only.
func insertComments(ctx context.Context, q pgpkg.Querier, submissionID uuid.UUID, comments []model.ReviewComment) error {
	for _, c := range comments {
		_, err := q.Exec(ctx, `
			INSERT INTO kyc_review_comments (id, submission_id, author_id, author_role, body, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (id) DO NOTHING
		`, c.ID(), submissionID, c.AuthorID(), c.AuthorRole().String(), c.Text(), c.CreatedAt())
		if err != nil {
			return fmt.Errorf("insert review comment %s: %w", c.ID(), err)
		}
	}
	return nil
}

func scanSubmission(row pgx.Row) (model.SubmissionState, error) {
	var (
		st                            model.SubmissionState
		statusStr, addressStr, reason string
		docsJSON                      []byte
		addressReviewedAt             *time.Time
	)
	err := row.Scan(
		&st.ID, &st.OwnerID, &statusStr, &docsJSON, &st.Attempts,
		&addressStr, &reason, &addressReviewedAt,
		&st.SubmittedAt, &st.ReviewedAt, &st.Version, &st.CreatedAt, &st.UpdatedAt,
	)
	if err != nil {
		return model.SubmissionState{}, err
	}

	if st.Status, err = valueobject.NewSubmissionStatus(statusStr); err != nil {
		return model.SubmissionState{}, fmt.Errorf("invalid submission status in DB: %w", err)
	}
	addressStatus, err := valueobject.NewAddressStatus(addressStr)
	if err != nil {
		return model.SubmissionState{}, fmt.Errorf("invalid address status in DB: %w", err)
	}
	st.Address = model.ReconstructAddressVerification(addressStatus, reason, addressReviewedAt)

	var raw map[string]string
	if err := json.Unmarshal(docsJSON, &raw); err != nil {
		return model.SubmissionState{}, fmt.Errorf("decode documents: %w", err)
	}
	if st.Documents, err = valueobject.ParseDocuments(raw); err != nil {
		return model.SubmissionState{}, fmt.Errorf("invalid documents in DB: %w", err)
	}

	return st, nil
}
