package testutil

import (
	"time"

	"github.com/google/uuid"
)

// Fixed identifiers and clock values for deterministic tests.
var (
	TestBorrowerID   = uuid.MustParse("00000000-0000-0000-0000-000000000001")
	TestOtherUserID  = uuid.MustParse("00000000-0000-0000-0000-000000000002")
	TestAdminID      = uuid.MustParse("00000000-0000-0000-0000-00000000000a")
	TestSubmissionID = uuid.MustParse("00000000-0000-0000-0000-000000000020")

	TestNow = time.Date(2025, time.March, 14, 9, 30, 0, 0, time.UTC)
)
