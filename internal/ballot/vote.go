package ballot

import (
	"fmt"
	"strconv"
	"strings"
)

// Vote is one accepted submission, one row of the Votes table. Rows are
// append-only; nothing in the application updates or deletes them.
type Vote struct {
	Date           string `json:"timestamp"`
	FullName       string `json:"fullName"`
	Email          string `json:"email"`
	Mobile         string `json:"mobile"`
	CurrentSchool  string `json:"currentSchool"`
	GradeLevel     string `json:"gradeLevel"`
	ContestantID   int    `json:"contestantId"`
	IPAddress      string `json:"ipAddress"`
	GuardianName   string `json:"guardianName,omitempty"`
	GuardianNumber string `json:"guardianNumber,omitempty"`
}

// Column layout of the Votes table. The guardian columns exist only in the
// full workflow variant.
const (
	voteColDate = iota
	voteColFullName
	voteColEmail
	voteColMobile
	voteColSchool
	voteColGrade
	voteColContestantID
	voteColIPAddress
	voteColGuardianName
	voteColGuardianNumber
)

// voteCellString coerces a raw vote cell to its string form.
func voteCellString(row []any, idx int) string {
	if idx >= len(row) {
		return ""
	}
	switch v := row[idx].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}

// mapVoteRow converts a raw sheet row into a Vote. A malformed contestant id
// cell coerces to 0 rather than failing the read, so one bad historic row
// cannot take down the voter listing.
func mapVoteRow(row []any, includeGuardian bool) Vote {
	id, err := strconv.Atoi(strings.TrimSpace(voteCellString(row, voteColContestantID)))
	if err != nil {
		id = 0
	}

	vote := Vote{
		Date:          voteCellString(row, voteColDate),
		FullName:      voteCellString(row, voteColFullName),
		Email:         voteCellString(row, voteColEmail),
		Mobile:        voteCellString(row, voteColMobile),
		CurrentSchool: voteCellString(row, voteColSchool),
		GradeLevel:    voteCellString(row, voteColGrade),
		ContestantID:  id,
		IPAddress:     voteCellString(row, voteColIPAddress),
	}
	if includeGuardian {
		vote.GuardianName = voteCellString(row, voteColGuardianName)
		vote.GuardianNumber = voteCellString(row, voteColGuardianNumber)
	}
	return vote
}

// sheetVoteRow renders a vote in fixed column order for append.
func sheetVoteRow(v *Vote, includeGuardian bool) []any {
	row := []any{
		v.Date,
		v.FullName,
		v.Email,
		v.Mobile,
		v.CurrentSchool,
		v.GradeLevel,
		strconv.Itoa(v.ContestantID),
		v.IPAddress,
	}
	if includeGuardian {
		row = append(row, v.GuardianName, v.GuardianNumber)
	}
	return row
}
