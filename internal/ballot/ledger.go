package ballot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mvgcolleges/voting-go/internal/contest"
	"github.com/mvgcolleges/voting-go/internal/errors"
	"github.com/mvgcolleges/voting-go/internal/sheetstore"
)

// dateLayout is the calendar-date stamp written to the Votes table, day
// granularity in the configured timezone.
const dateLayout = "01/02/2006"

// Ledger validates against and appends to the Votes table. The duplicate
// check and the append are two separate remote calls with no atomicity
// between them; two concurrent submissions for one identity can both land.
// That race is accepted at the traffic levels this serves.
type Ledger struct {
	store           sheetstore.RowStore
	directory       *contest.Directory
	sheet           string
	location        *time.Location
	includeGuardian bool

	// now is swappable for tests
	now func() time.Time
}

// NewLedger creates a ledger over the given store and Votes table name.
// includeGuardian selects the full column layout with guardian fields.
func NewLedger(store sheetstore.RowStore, directory *contest.Directory, sheet string, location *time.Location, includeGuardian bool) *Ledger {
	return &Ledger{
		store:           store,
		directory:       directory,
		sheet:           sheet,
		location:        location,
		includeGuardian: includeGuardian,
		now:             time.Now,
	}
}

func (l *Ledger) listRange() string {
	if l.includeGuardian {
		return fmt.Sprintf("%s!A2:J", l.sheet)
	}
	return fmt.Sprintf("%s!A2:H", l.sheet)
}

func (l *Ledger) appendRange() string {
	if l.includeGuardian {
		return fmt.Sprintf("%s!A:J", l.sheet)
	}
	return fmt.Sprintf("%s!A:H", l.sheet)
}

// HasDuplicate reports whether any prior vote used the same email
// (case-insensitive) or the same mobile (ignoring whitespace and hyphens).
// The scan is linear over all votes, acceptable at the cast volumes served.
func (l *Ledger) HasDuplicate(ctx context.Context, email, mobile string) (bool, error) {
	rows, err := l.store.FetchRows(ctx, l.listRange())
	if err != nil {
		return false, err
	}

	emailLower := strings.ToLower(strings.TrimSpace(email))
	mobileClean := mobileNoise.ReplaceAllString(mobile, "")

	for _, row := range rows {
		existingEmail := strings.ToLower(voteCellString(row, voteColEmail))
		existingMobile := mobileNoise.ReplaceAllString(voteCellString(row, voteColMobile), "")
		if existingEmail == emailLower || existingMobile == mobileClean {
			return true, nil
		}
	}
	return false, nil
}

// Submit records a validated submission. The sequence is duplicate check,
// active-contestant check, date stamp, append; no step is retried and any
// store failure propagates as-is. Votes for a deactivated contestant are
// rejected even if the contestant existed when the voter loaded the form.
func (l *Ledger) Submit(ctx context.Context, sub *Submission, ipAddress string) (*Vote, error) {
	dup, err := l.HasDuplicate(ctx, sub.Email, sub.Mobile)
	if err != nil {
		return nil, err
	}
	if dup {
		return nil, errors.New(errors.ErrDuplicateVote).
			Category(errors.CategoryConflict).
			Component("ballot").
			Build()
	}

	active, err := l.directory.List(ctx, false)
	if err != nil {
		return nil, err
	}
	found := false
	for _, c := range active {
		if c.ID == int(sub.ContestantID) {
			found = true
			break
		}
	}
	if !found {
		return nil, errors.New(errors.ErrInvalidContestant).
			Category(errors.CategoryValidation).
			Component("ballot").
			Context("contestant_id", int(sub.ContestantID)).
			Build()
	}

	vote := &Vote{
		Date:           l.now().In(l.location).Format(dateLayout),
		FullName:       sub.FullName,
		Email:          sub.Email,
		Mobile:         sub.Mobile,
		CurrentSchool:  sub.CurrentSchool,
		GradeLevel:     sub.GradeLevel,
		ContestantID:   int(sub.ContestantID),
		IPAddress:      ipAddress,
		GuardianName:   sub.GuardianName,
		GuardianNumber: sub.GuardianNumber,
	}

	if err := l.store.AppendRow(ctx, l.appendRange(), sheetVoteRow(vote, l.includeGuardian)); err != nil {
		return nil, err
	}
	return vote, nil
}

// List returns all votes in store order.
func (l *Ledger) List(ctx context.Context) ([]Vote, error) {
	rows, err := l.store.FetchRows(ctx, l.listRange())
	if err != nil {
		return nil, err
	}

	votes := make([]Vote, 0, len(rows))
	for _, row := range rows {
		votes = append(votes, mapVoteRow(row, l.includeGuardian))
	}
	return votes, nil
}
