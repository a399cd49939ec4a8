// Package sheetstoretest provides an in-memory RowStore for unit tests.
package sheetstoretest

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
)

// FakeStore is an in-memory sheetstore.RowStore. Tables are addressed by the
// sheet-name prefix of the A1 range; row and column offsets are honored for
// updates so directory row addressing can be exercised for real.
type FakeStore struct {
	mu     sync.Mutex
	tables map[string][][]any

	// Error injection, returned verbatim by the corresponding operation.
	FetchErr  error
	AppendErr error
	UpdateErr error

	// Calls records every operation in order, for assertions on call flow.
	Calls []string
}

// NewFakeStore creates an empty fake store.
func NewFakeStore() *FakeStore {
	return &FakeStore{tables: make(map[string][][]any)}
}

// Seed replaces the data rows of a table.
func (f *FakeStore) Seed(sheet string, rows [][]any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tables[sheet] = rows
}

// Rows returns the current data rows of a table.
func (f *FakeStore) Rows(sheet string) [][]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.tables[sheet]
}

// FetchRows implements sheetstore.RowStore.
func (f *FakeStore) FetchRows(_ context.Context, readRange string) ([][]any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, "fetch "+readRange)
	if f.FetchErr != nil {
		return nil, f.FetchErr
	}

	sheet, _, err := splitRange(readRange)
	if err != nil {
		return nil, err
	}
	return f.tables[sheet], nil
}

// AppendRow implements sheetstore.RowStore.
func (f *FakeStore) AppendRow(_ context.Context, appendRange string, row []any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, "append "+appendRange)
	if f.AppendErr != nil {
		return f.AppendErr
	}

	sheet, _, err := splitRange(appendRange)
	if err != nil {
		return err
	}
	f.tables[sheet] = append(f.tables[sheet], row)
	return nil
}

// UpdateCells implements sheetstore.RowStore. Only single-row updates are
// supported, which is all the application issues.
func (f *FakeStore) UpdateCells(_ context.Context, updateRange string, rows [][]any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, "update "+updateRange)
	if f.UpdateErr != nil {
		return f.UpdateErr
	}

	sheet, ref, err := splitRange(updateRange)
	if err != nil {
		return err
	}
	col, rowNum, err := parseCellRef(ref)
	if err != nil {
		return err
	}
	if len(rows) != 1 {
		return fmt.Errorf("fake store: expected a single row update, got %d", len(rows))
	}

	// Data rows start at sheet row 2.
	index := rowNum - 2
	table := f.tables[sheet]
	for index >= len(table) {
		table = append(table, []any{})
	}
	target := table[index]
	for i, cell := range rows[0] {
		for col+i >= len(target) {
			target = append(target, "")
		}
		target[col+i] = cell
	}
	table[index] = target
	f.tables[sheet] = table
	return nil
}

func splitRange(a1 string) (sheet, ref string, err error) {
	sheet, ref, found := strings.Cut(a1, "!")
	if !found {
		return "", "", fmt.Errorf("fake store: range %q has no sheet prefix", a1)
	}
	return sheet, ref, nil
}

// parseCellRef parses the leading cell of an A1 reference like "A3:E3" or
// "D5" into a zero-based column and a 1-based row number.
func parseCellRef(ref string) (col, rowNum int, err error) {
	first, _, _ := strings.Cut(ref, ":")
	i := 0
	for i < len(first) && first[i] >= 'A' && first[i] <= 'Z' {
		col = col*26 + int(first[i]-'A')
		i++
	}
	if i == 0 || i == len(first) {
		return 0, 0, fmt.Errorf("fake store: cannot parse cell reference %q", ref)
	}
	rowNum, err = strconv.Atoi(first[i:])
	if err != nil {
		return 0, 0, fmt.Errorf("fake store: cannot parse cell reference %q", ref)
	}
	return col, rowNum, nil
}
