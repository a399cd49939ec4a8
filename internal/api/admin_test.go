// internal/api/admin_test.go
package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// adminLogin logs in through the login endpoint and returns the token.
func adminLogin(t *testing.T, e *echo.Echo) string {
	t.Helper()
	rec := postJSON(e, "/api/admin/login", `{"password": "admin123"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	token, tokenOK := body["token"].(string)
	require.True(t, tokenOK)
	require.NotEmpty(t, token)
	return token
}

func adminRequest(e *echo.Echo, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestAdminLoginWrongPassword(t *testing.T) {
	e, _ := newTestController(seededStore())

	rec := postJSON(e, "/api/admin/login", `{"password": "wrong"}`)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, false, body["success"])
}

func TestAdminRoutesRequireToken(t *testing.T) {
	e, _ := newTestController(seededStore())

	paths := []struct {
		method, path string
	}{
		{http.MethodGet, "/api/admin/overview"},
		{http.MethodGet, "/api/admin/contestants"},
		{http.MethodPost, "/api/admin/contestants"},
		{http.MethodPut, "/api/admin/contestants/1"},
		{http.MethodDelete, "/api/admin/contestants/1"},
		{http.MethodGet, "/api/admin/voters"},
	}

	for _, p := range paths {
		t.Run(p.method+" "+p.path, func(t *testing.T) {
			rec := adminRequest(e, p.method, p.path, "", "")
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestAdminOverview(t *testing.T) {
	store := seededStore()
	store.Seed("Votes", [][]any{
		{"08/01/2026", "V1", "a@x.co", "09170000001", "School", "G9", "1", "", "", ""},
	})
	e, _ := newTestController(store)
	token := adminLogin(t, e)

	rec := adminRequest(e, http.MethodGet, "/api/admin/overview", token, "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, float64(1), body["totalVotes"])
	assert.Equal(t, float64(2), body["totalContestants"])
	assert.Equal(t, float64(1), body["activeContestants"])
}

func TestAdminListIncludesInactive(t *testing.T) {
	e, _ := newTestController(seededStore())
	token := adminLogin(t, e)

	rec := adminRequest(e, http.MethodGet, "/api/admin/contestants", token, "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	contestants, typeOK := body["contestants"].([]any)
	require.True(t, typeOK)
	assert.Len(t, contestants, 2)
}

func TestAdminCreateContestant(t *testing.T) {
	store := seededStore()
	e, _ := newTestController(store)
	token := adminLogin(t, e)

	rec := adminRequest(e, http.MethodPost, "/api/admin/contestants", token,
		`{"name": "  Dina Cruz ", "description": "New", "imageUrl": "dina.jpg"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	contestant, typeOK := body["contestant"].(map[string]any)
	require.True(t, typeOK)
	assert.Equal(t, float64(3), contestant["id"])
	assert.Equal(t, "Dina Cruz", contestant["name"])
	assert.Equal(t, true, contestant["active"])

	rows := store.Rows("Contestants")
	require.Len(t, rows, 3)
	assert.Equal(t, "3", rows[2][0])
}

func TestAdminCreateRequiresName(t *testing.T) {
	e, _ := newTestController(seededStore())
	token := adminLogin(t, e)

	rec := adminRequest(e, http.MethodPost, "/api/admin/contestants", token, `{"name": "  "}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Contestant name is required", body["message"])
}

func TestAdminUpdateContestant(t *testing.T) {
	store := seededStore()
	e, _ := newTestController(store)
	token := adminLogin(t, e)

	rec := adminRequest(e, http.MethodPut, "/api/admin/contestants/1", token,
		`{"name": "Alice R.", "description": "Edited", "active": false, "imageUrl": "alice.jpg"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rows := store.Rows("Contestants")
	assert.Equal(t, []any{"1", "Alice R.", "Edited", "FALSE", "alice.jpg"}, rows[0])
}

func TestAdminUpdateUnknownContestant(t *testing.T) {
	e, _ := newTestController(seededStore())
	token := adminLogin(t, e)

	rec := adminRequest(e, http.MethodPut, "/api/admin/contestants/999", token, `{"name": "Ghost"}`)
	require.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Contestant not found", body["message"])
}

func TestAdminDeleteSoftDeletes(t *testing.T) {
	store := seededStore()
	e, _ := newTestController(store)
	token := adminLogin(t, e)

	rec := adminRequest(e, http.MethodDelete, "/api/admin/contestants/1", token, "")
	require.Equal(t, http.StatusOK, rec.Code)

	// Row survives with only the flag flipped.
	rows := store.Rows("Contestants")
	require.Len(t, rows, 2)
	assert.Equal(t, "FALSE", rows[0][3])

	// Public listing is now empty, admin listing is not.
	pub := adminRequest(e, http.MethodGet, "/api/contestants", "", "")
	pubBody := decodeBody(t, pub)
	assert.Empty(t, pubBody["contestants"])

	adm := adminRequest(e, http.MethodGet, "/api/admin/contestants", token, "")
	admBody := decodeBody(t, adm)
	assert.Len(t, admBody["contestants"], 2)
}

func TestAdminVoters(t *testing.T) {
	store := seededStore()
	store.Seed("Votes", [][]any{
		{"08/01/2026", "Jane Cruz", "jane@test.com", "09171234567", "St. Mary", "Grade 10", "2", "1.2.3.4", "Ana Cruz", "09181234567"},
	})
	e, _ := newTestController(store)
	token := adminLogin(t, e)

	rec := adminRequest(e, http.MethodGet, "/api/admin/voters", token, "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	voters, typeOK := body["voters"].([]any)
	require.True(t, typeOK)
	require.Len(t, voters, 1)

	voter, typeOK := voters[0].(map[string]any)
	require.True(t, typeOK)
	// Votes for a deactivated contestant still resolve a name.
	assert.Equal(t, "Ben Santos", voter["contestantName"])
	assert.Equal(t, "jane@test.com", voter["email"])
	assert.Equal(t, "Ana Cruz", voter["guardianName"])
}
