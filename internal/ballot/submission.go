// Package ballot implements the vote submission workflow: validation of
// inbound submissions and the append-only vote ledger.
package ballot

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

var (
	emailPattern  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	mobilePattern = regexp.MustCompile(`^09[0-9]{9}$`)
	mobileNoise   = regexp.MustCompile(`[\s-]`)
)

// FlexInt is an int that unmarshals from either a JSON number or a numeric
// string, since HTML forms post contestant ids as strings.
type FlexInt int

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexInt) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("invalid integer value %s", string(data))
	}
	*f = FlexInt(n)
	return nil
}

// Submission is an inbound vote as posted by the voting form.
type Submission struct {
	FullName       string  `json:"fullName"`
	Email          string  `json:"email"`
	Mobile         string  `json:"mobile"`
	CurrentSchool  string  `json:"currentSchool"`
	GradeLevel     string  `json:"gradeLevel"`
	GuardianName   string  `json:"guardianName"`
	GuardianNumber string  `json:"guardianNumber"`
	ContestantID   FlexInt `json:"contestantId"`
}

// Validation error codes.
const (
	CodeMissingField        = "missing_field"
	CodeInvalidEmail        = "invalid_email"
	CodeInvalidMobile       = "invalid_mobile"
	CodeInvalidSchool       = "invalid_school"
	CodeInvalidGuardianName = "invalid_guardian_name"
)

// ValidationError describes a rejected submission field. Message is safe to
// show to the end user.
type ValidationError struct {
	Code    string
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(code, field, message string) error {
	return &ValidationError{Code: code, Field: field, Message: message}
}

// Validate checks the submission shape and returns a normalized copy: fields
// trimmed, email lower-cased, mobiles stripped to digits. It performs no I/O;
// every rule runs before any store access happens. requireGuardian selects
// the full workflow variant where guardian name and number are mandatory.
func Validate(sub *Submission, requireGuardian bool) (*Submission, error) {
	type requiredField struct{ field, value string }
	required := []requiredField{
		{"fullName", sub.FullName},
		{"email", sub.Email},
		{"mobile", sub.Mobile},
		{"currentSchool", sub.CurrentSchool},
		{"gradeLevel", sub.GradeLevel},
	}
	if requireGuardian {
		required = append(required,
			requiredField{"guardianName", sub.GuardianName},
			requiredField{"guardianNumber", sub.GuardianNumber},
		)
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return nil, invalid(CodeMissingField, r.field, "All fields are required")
		}
	}
	if sub.ContestantID == 0 {
		return nil, invalid(CodeMissingField, "contestantId", "All fields are required")
	}

	email := strings.ToLower(strings.TrimSpace(sub.Email))
	if !emailPattern.MatchString(email) {
		return nil, invalid(CodeInvalidEmail, "email", "Invalid email format")
	}

	mobile := mobileNoise.ReplaceAllString(sub.Mobile, "")
	if !mobilePattern.MatchString(mobile) {
		return nil, invalid(CodeInvalidMobile, "mobile",
			"Invalid mobile number. Must be 11 digits starting with 09")
	}

	// The guardian number gets the same rule whenever it is present, even in
	// the variant where it is optional.
	guardianNumber := mobileNoise.ReplaceAllString(sub.GuardianNumber, "")
	if guardianNumber != "" && !mobilePattern.MatchString(guardianNumber) {
		return nil, invalid(CodeInvalidMobile, "guardianNumber",
			"Invalid guardian mobile number. Must be 11 digits starting with 09")
	}

	school := strings.TrimSpace(sub.CurrentSchool)
	if utf8.RuneCountInString(school) < 3 {
		return nil, invalid(CodeInvalidSchool, "currentSchool", "Please enter a valid school name")
	}

	guardianName := strings.TrimSpace(sub.GuardianName)
	if guardianName != "" && utf8.RuneCountInString(guardianName) < 2 {
		return nil, invalid(CodeInvalidGuardianName, "guardianName", "Please enter a valid guardian name")
	}

	return &Submission{
		FullName:       strings.TrimSpace(sub.FullName),
		Email:          email,
		Mobile:         mobile,
		CurrentSchool:  school,
		GradeLevel:     strings.TrimSpace(sub.GradeLevel),
		GuardianName:   guardianName,
		GuardianNumber: guardianNumber,
		ContestantID:   sub.ContestantID,
	}, nil
}
