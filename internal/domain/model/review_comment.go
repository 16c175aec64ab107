package model

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Programmer60/BorrowEase-sub002/internal/domain/valueobject"
)

// ReviewComment is one entry of a submission's append-only audit trail.
type ReviewComment struct {
	id         uuid.UUID
	authorID   uuid.UUID
	authorRole valueobject.Role
	text       string
	createdAt  time.Time
}

// NewReviewComment creates a comment authored by actor. The text must not be blank.
func NewReviewComment(actor valueobject.Actor, text string, now time.Time) (ReviewComment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return ReviewComment{}, valueobject.Validationf("comment text is required")
	}
	return ReviewComment{
		id:         uuid.New(),
		authorID:   actor.UserID,
		authorRole: actor.Role,
		text:       text,
		createdAt:  now,
	}, nil
}

// ReconstructReviewComment recreates a comment from persistence.
func ReconstructReviewComment(id, authorID uuid.UUID, authorRole valueobject.Role, text string, createdAt time.Time) ReviewComment {
	return ReviewComment{
		id:         id,
		authorID:   authorID,
		authorRole: authorRole,
		text:       text,
		createdAt:  createdAt,
	}
}

func (c ReviewComment) ID() uuid.UUID                { return c.id }
func (c ReviewComment) AuthorID() uuid.UUID          { return c.authorID }
func (c ReviewComment) AuthorRole() valueobject.Role { return c.authorRole }
func (c ReviewComment) Text() string                 { return c.text }
func (c ReviewComment) CreatedAt() time.Time         { return c.createdAt }
