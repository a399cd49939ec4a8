package contest

import (
	"context"
	"fmt"

	"github.com/mvgcolleges/voting-go/internal/errors"
	"github.com/mvgcolleges/voting-go/internal/sheetstore"
)

// Directory loads and mutates the contestant roster. It holds no state of its
// own; every call round-trips to the record store.
type Directory struct {
	store sheetstore.RowStore
	sheet string
}

// NewDirectory creates a directory over the given store and table name.
func NewDirectory(store sheetstore.RowStore, sheet string) *Directory {
	return &Directory{store: store, sheet: sheet}
}

func (d *Directory) listRange() string   { return fmt.Sprintf("%s!A2:E", d.sheet) }
func (d *Directory) appendRange() string { return fmt.Sprintf("%s!A:E", d.sheet) }

// rowRange addresses one full data row. index is the position within the
// listing; +2 accounts for the header row and 1-based sheet addressing.
func (d *Directory) rowRange(index int) string {
	rowNum := index + 2
	return fmt.Sprintf("%s!A%d:E%d", d.sheet, rowNum, rowNum)
}

func (d *Directory) statusCellRange(index int) string {
	return fmt.Sprintf("%s!D%d", d.sheet, index+2)
}

// List returns contestants in store order. Inactive contestants are filtered
// out unless includeInactive is set.
func (d *Directory) List(ctx context.Context, includeInactive bool) ([]Contestant, error) {
	rows, err := d.store.FetchRows(ctx, d.listRange())
	if err != nil {
		return nil, err
	}

	contestants := make([]Contestant, 0, len(rows))
	for i, row := range rows {
		contestant, err := mapRow(row, i+2)
		if err != nil {
			return nil, errors.New(err).
				Category(errors.CategorySheets).
				Component("contest").
				Build()
		}
		if !includeInactive && !contestant.Status.Active() {
			continue
		}
		contestants = append(contestants, contestant)
	}
	return contestants, nil
}

// Create appends a new contestant. The id is one past the current maximum;
// ids are never reused because rows are never physically removed.
func (d *Directory) Create(ctx context.Context, in *Input) (Contestant, error) {
	existing, err := d.List(ctx, true)
	if err != nil {
		return Contestant{}, err
	}

	nextID := 1
	for _, c := range existing {
		if c.ID >= nextID {
			nextID = c.ID + 1
		}
	}

	if err := d.store.AppendRow(ctx, d.appendRange(), sheetRow(nextID, in)); err != nil {
		return Contestant{}, err
	}

	return Contestant{
		ID:          nextID,
		Name:        in.Name,
		Description: in.Description,
		Status:      in.Status,
		ImageURL:    in.ImageURL,
	}, nil
}

// Update overwrites all mutable fields of the contestant with the given id.
func (d *Directory) Update(ctx context.Context, id int, in *Input) (Contestant, error) {
	index, err := d.findIndex(ctx, id)
	if err != nil {
		return Contestant{}, err
	}

	if err := d.store.UpdateCells(ctx, d.rowRange(index), [][]any{sheetRow(id, in)}); err != nil {
		return Contestant{}, err
	}

	return Contestant{
		ID:          id,
		Name:        in.Name,
		Description: in.Description,
		Status:      in.Status,
		ImageURL:    in.ImageURL,
	}, nil
}

// Deactivate is the only deletion path: it writes FALSE to the status cell
// and leaves every other field untouched.
func (d *Directory) Deactivate(ctx context.Context, id int) error {
	index, err := d.findIndex(ctx, id)
	if err != nil {
		return err
	}

	return d.store.UpdateCells(ctx, d.statusCellRange(index), [][]any{{StatusInactive.SheetValue()}})
}

// findIndex locates the listing position of the contestant with the given id.
func (d *Directory) findIndex(ctx context.Context, id int) (int, error) {
	contestants, err := d.List(ctx, true)
	if err != nil {
		return 0, err
	}
	for i, c := range contestants {
		if c.ID == id {
			return i, nil
		}
	}
	return 0, errors.New(errors.ErrNotFound).
		Category(errors.CategoryNotFound).
		Component("contest").
		Context("contestant_id", id).
		Build()
}
