// Package contest manages the contestant roster stored in the Contestants
// table of the record store.
package contest

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Status is the contestant lifecycle state. The sheet stores it as a loosely
// typed truthy cell ("TRUE", "true", boolean true); normalization to this
// explicit type happens in one place, ParseStatus.
type Status int

const (
	StatusInactive Status = iota
	StatusActive
)

// ParseStatus normalizes a raw active-flag cell into a Status. Anything that
// is not a recognized truthy value is inactive.
func ParseStatus(cell any) Status {
	switch v := cell.(type) {
	case bool:
		if v {
			return StatusActive
		}
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "1", "yes":
			return StatusActive
		}
	}
	return StatusInactive
}

// Active reports whether the contestant is visible in public listings.
func (s Status) Active() bool {
	return s == StatusActive
}

// SheetValue returns the cell representation written back to the store.
func (s Status) SheetValue() string {
	if s.Active() {
		return "TRUE"
	}
	return "FALSE"
}

// MarshalJSON renders the status as the plain boolean the frontend expects.
func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Active())
}

// UnmarshalJSON accepts a JSON boolean.
func (s *Status) UnmarshalJSON(data []byte) error {
	var active bool
	if err := json.Unmarshal(data, &active); err != nil {
		return err
	}
	if active {
		*s = StatusActive
	} else {
		*s = StatusInactive
	}
	return nil
}

// Contestant is one row of the Contestants table.
type Contestant struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Status      Status `json:"active"`
	ImageURL    string `json:"imageUrl"`
}

// Input carries the mutable contestant fields for create and update.
type Input struct {
	Name        string
	Description string
	Status      Status
	ImageURL    string
}

// Column layout of the Contestants table. The mapper below is the single
// place that knows about cell positions; a row that does not fit this schema
// fails the read instead of silently misaligning fields.
const (
	colID = iota
	colName
	colDescription
	colStatus
	colImageURL
	columnCount
)

// cellString coerces a raw cell to its string form, tolerating the numeric
// types the API may hand back.
func cellString(row []any, idx int) string {
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
	case bool:
		return strconv.FormatBool(v)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}

// mapRow converts a raw sheet row into a Contestant. rowNum is the 1-based
// sheet row, used only for error reporting.
func mapRow(row []any, rowNum int) (Contestant, error) {
	idText := strings.TrimSpace(cellString(row, colID))
	id, err := strconv.Atoi(idText)
	if err != nil || id <= 0 {
		return Contestant{}, fmt.Errorf("contestants row %d: malformed id %q", rowNum, idText)
	}

	return Contestant{
		ID:          id,
		Name:        cellString(row, colName),
		Description: cellString(row, colDescription),
		Status:      ParseStatus(rowCell(row, colStatus)),
		ImageURL:    cellString(row, colImageURL),
	}, nil
}

func rowCell(row []any, idx int) any {
	if idx >= len(row) {
		return nil
	}
	return row[idx]
}

// sheetRow renders a contestant in fixed column order for append/update.
func sheetRow(id int, in *Input) []any {
	return []any{
		strconv.Itoa(id),
		in.Name,
		in.Description,
		in.Status.SheetValue(),
		in.ImageURL,
	}
}
