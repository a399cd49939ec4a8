package sheetstore

import (
	"context"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"

	"github.com/mvgcolleges/voting-go/internal/conf"
	"github.com/mvgcolleges/voting-go/internal/errors"
)

// newTestClient builds a client whose HTTP layer is backed by httpmock, so no
// credentials and no network are involved.
func newTestClient(t *testing.T) (*Client, *httpmock.MockTransport) {
	t.Helper()

	transport := httpmock.NewMockTransport()
	httpClient := &http.Client{Transport: transport}

	settings := &conf.SheetsSettings{SpreadsheetID: "test-sheet-id"}
	client, err := New(context.Background(), settings, option.WithHTTPClient(httpClient))
	require.NoError(t, err)
	return client, transport
}

func TestNewRequiresSpreadsheetID(t *testing.T) {
	_, err := New(context.Background(), &conf.SheetsSettings{})
	require.Error(t, err)

	var ee *errors.EnhancedError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, errors.CategoryConfiguration, ee.Category)
}

func TestFetchRows(t *testing.T) {
	client, transport := newTestClient(t)

	transport.RegisterResponder(http.MethodGet,
		`=~/v4/spreadsheets/test-sheet-id/values/`,
		httpmock.NewStringResponder(http.StatusOK, `{
			"range": "Contestants!A2:E",
			"majorDimension": "ROWS",
			"values": [["1", "Alice", "", "TRUE", "alice.jpg"], ["2", "Bob", "desc", "FALSE", ""]]
		}`))

	rows, err := client.FetchRows(context.Background(), "Contestants!A2:E")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Alice", rows[0][1])
	assert.Equal(t, "FALSE", rows[1][3])
}

func TestFetchRowsEmptyRange(t *testing.T) {
	client, transport := newTestClient(t)

	// Sheets omits "values" entirely when the range has no data rows.
	transport.RegisterResponder(http.MethodGet,
		`=~/v4/spreadsheets/test-sheet-id/values/`,
		httpmock.NewStringResponder(http.StatusOK, `{"range": "Votes!A2:J", "majorDimension": "ROWS"}`))

	rows, err := client.FetchRows(context.Background(), "Votes!A2:J")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestFetchRowsStoreError(t *testing.T) {
	client, transport := newTestClient(t)

	transport.RegisterResponder(http.MethodGet,
		`=~/v4/spreadsheets/test-sheet-id/values/`,
		httpmock.NewStringResponder(http.StatusForbidden, `{"error": {"code": 403, "message": "denied"}}`))

	_, err := client.FetchRows(context.Background(), "Votes!A2:J")
	require.Error(t, err)

	var ee *errors.EnhancedError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, errors.CategorySheets, ee.Category)
	assert.Equal(t, "sheetstore", ee.Component)
}

func TestAppendRow(t *testing.T) {
	client, transport := newTestClient(t)

	transport.RegisterResponder(http.MethodPost,
		`=~:append`,
		httpmock.NewStringResponder(http.StatusOK, `{"spreadsheetId": "test-sheet-id"}`))

	err := client.AppendRow(context.Background(), "Votes!A:J", []any{"08/29/2026", "Jane Cruz"})
	require.NoError(t, err)
	assert.Equal(t, 1, transport.GetTotalCallCount())
}

func TestUpdateCells(t *testing.T) {
	client, transport := newTestClient(t)

	transport.RegisterResponder(http.MethodPut,
		`=~/v4/spreadsheets/test-sheet-id/values/`,
		httpmock.NewStringResponder(http.StatusOK, `{"updatedCells": 1}`))

	err := client.UpdateCells(context.Background(), "Contestants!D3", [][]any{{"FALSE"}})
	require.NoError(t, err)
}
