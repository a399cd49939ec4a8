package ballot

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvgcolleges/voting-go/internal/contest"
	"github.com/mvgcolleges/voting-go/internal/errors"
	"github.com/mvgcolleges/voting-go/internal/sheetstore/sheetstoretest"
)

func newTestLedger(t *testing.T) (*Ledger, *sheetstoretest.FakeStore) {
	t.Helper()
	store := sheetstoretest.NewFakeStore()
	store.Seed("Contestants", [][]any{
		{"1", "Alice Reyes", "", "TRUE", ""},
		{"2", "Ben Santos", "", "FALSE", ""},
	})

	directory := contest.NewDirectory(store, "Contestants")
	location, err := time.LoadLocation("Asia/Manila")
	require.NoError(t, err)

	ledger := NewLedger(store, directory, "Votes", location, true)
	ledger.now = func() time.Time {
		return time.Date(2026, 8, 29, 23, 30, 0, 0, time.UTC)
	}
	return ledger, store
}

func TestSubmitAppendsNormalizedRow(t *testing.T) {
	ledger, store := newTestLedger(t)

	normalized, err := Validate(validSubmission(), true)
	require.NoError(t, err)

	vote, err := ledger.Submit(context.Background(), normalized, "203.0.113.9")
	require.NoError(t, err)
	assert.Equal(t, "jane@test.com", vote.Email)
	assert.Equal(t, "09171234567", vote.Mobile)
	// 23:30 UTC on Aug 29 is already Aug 30 in Manila.
	assert.Equal(t, "08/30/2026", vote.Date)

	rows := store.Rows("Votes")
	require.Len(t, rows, 1)
	assert.Equal(t, []any{
		"08/30/2026", "Jane Cruz", "jane@test.com", "09171234567",
		"St. Mary", "Grade 10", "1", "203.0.113.9", "Ana Cruz", "09181234567",
	}, rows[0])
}

func TestSubmitDuplicateEmailCaseInsensitive(t *testing.T) {
	ledger, store := newTestLedger(t)
	store.Seed("Votes", [][]any{
		{"08/01/2026", "Prior Voter", "jane@test.com", "09990001122", "Some School", "Grade 9", "1", "", "", ""},
	})

	sub := validSubmission()
	sub.Mobile = "09175554433" // different mobile, same email after lowering
	normalized, err := Validate(sub, true)
	require.NoError(t, err)

	_, err = ledger.Submit(context.Background(), normalized, "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrDuplicateVote))
	assert.Len(t, store.Rows("Votes"), 1)
}

func TestSubmitDuplicateMobileDespiteNewEmail(t *testing.T) {
	ledger, store := newTestLedger(t)
	store.Seed("Votes", [][]any{
		{"08/01/2026", "Prior Voter", "other@test.com", "0917-123 4567", "Some School", "Grade 9", "1", "", "", ""},
	})

	sub := validSubmission()
	sub.Email = "fresh@test.com"
	normalized, err := Validate(sub, true)
	require.NoError(t, err)

	_, err = ledger.Submit(context.Background(), normalized, "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrDuplicateVote))
}

func TestSubmitUnknownContestant(t *testing.T) {
	ledger, _ := newTestLedger(t)

	sub := validSubmission()
	sub.ContestantID = 999
	normalized, err := Validate(sub, true)
	require.NoError(t, err)

	_, err = ledger.Submit(context.Background(), normalized, "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidContestant))
}

func TestSubmitInactiveContestantRejected(t *testing.T) {
	ledger, _ := newTestLedger(t)

	sub := validSubmission()
	sub.ContestantID = 2 // Ben is deactivated
	normalized, err := Validate(sub, true)
	require.NoError(t, err)

	_, err = ledger.Submit(context.Background(), normalized, "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidContestant))
}

func TestSubmitStoreFailurePropagates(t *testing.T) {
	ledger, store := newTestLedger(t)
	store.AppendErr = assert.AnError

	normalized, err := Validate(validSubmission(), true)
	require.NoError(t, err)

	_, err = ledger.Submit(context.Background(), normalized, "")
	require.ErrorIs(t, err, assert.AnError)
}

func TestHasDuplicateNormalizesStoredValues(t *testing.T) {
	ledger, store := newTestLedger(t)
	store.Seed("Votes", [][]any{
		{"08/01/2026", "Voter", "JANE@TEST.COM", "0917 123-4567", "School", "Grade 9", "1", "", "", ""},
	})

	dup, err := ledger.HasDuplicate(context.Background(), "jane@test.com", "09990000000")
	require.NoError(t, err)
	assert.True(t, dup)

	dup, err = ledger.HasDuplicate(context.Background(), "someone@else.com", "09171234567")
	require.NoError(t, err)
	assert.True(t, dup)

	dup, err = ledger.HasDuplicate(context.Background(), "someone@else.com", "09990000000")
	require.NoError(t, err)
	assert.False(t, dup)
}

func TestListCoercesMalformedContestantID(t *testing.T) {
	ledger, store := newTestLedger(t)
	store.Seed("Votes", [][]any{
		{"08/01/2026", "Voter", "a@b.co", "09171234567", "School", "Grade 9", "oops", "1.2.3.4", "Mom", "09181234567"},
	})

	votes, err := ledger.List(context.Background())
	require.NoError(t, err)
	require.Len(t, votes, 1)
	assert.Equal(t, 0, votes[0].ContestantID)
	assert.Equal(t, "Mom", votes[0].GuardianName)
}

func TestReducedVariantColumnLayout(t *testing.T) {
	store := sheetstoretest.NewFakeStore()
	store.Seed("Contestants", [][]any{{"1", "Alice", "", "TRUE", ""}})
	directory := contest.NewDirectory(store, "Contestants")

	ledger := NewLedger(store, directory, "Votes", time.UTC, false)
	ledger.now = func() time.Time { return time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC) }

	sub := validSubmission()
	sub.GuardianName = ""
	sub.GuardianNumber = ""
	normalized, err := Validate(sub, false)
	require.NoError(t, err)

	_, err = ledger.Submit(context.Background(), normalized, "1.2.3.4")
	require.NoError(t, err)

	rows := store.Rows("Votes")
	require.Len(t, rows, 1)
	// Eight columns, no guardian cells.
	assert.Len(t, rows[0], 8)
	assert.Contains(t, store.Calls, "append Votes!A:H")
}
