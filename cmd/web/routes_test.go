package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/AdamBeresnev/fantapes-tv/internal/config"
	"github.com/AdamBeresnev/fantapes-tv/internal/db"
	"github.com/alexedwards/scs/v2"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPassword = "segreto"

type testServer struct {
	handler http.Handler
	cookies []*http.Cookie
}

func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	database, err := sqlx.Connect("sqlite3", "file::memory:")
	require.NoError(t, err)
	database.SetMaxOpenConns(1)
	t.Cleanup(func() { database.Close() })
	require.NoError(t, db.RunMigrations(database.DB, "../../migrations"))

	dir := t.TempDir()
	clubs := filepath.Join(dir, "clubs.txt")
	require.NoError(t, os.WriteFile(clubs, []byte("Rossi,https://img.example/rossi.png\nBianchi,https://img.example/bianchi.png\n"), 0o644))
	competitions := filepath.Join(dir, "competitions.txt")
	require.NoError(t, os.WriteFile(competitions, []byte("LEGA A\nAmichevole\n"), 0o644))

	cfg := config.Config{
		ClubsFile:        clubs,
		CompetitionsFile: competitions,
		CategoriesFile:   "../../config/categories.yaml",
		VideoHostMarker:  "youtu",
		AdminPassword:    testPassword,
		SiteName:         "FantaPesAmici TV",
	}

	a, err := newApp(cfg, database, scs.New())
	require.NoError(t, err)

	return &testServer{handler: newRouter(a)}
}

func (s *testServer) do(t *testing.T, method, target string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()

	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for _, c := range s.cookies {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	if cookies := rec.Result().Cookies(); len(cookies) > 0 {
		s.cookies = cookies
	}
	return rec
}

func (s *testServer) submit(t *testing.T, link, competition, home, away string) {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/submit", url.Values{
		"youtube_link":     {link},
		"competition_type": {competition},
		"player1":          {home},
		"player2":          {away},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)
}

func TestHealthz(t *testing.T) {
	s := setupTestServer(t)
	assert.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/healthz", nil).Code)
}

func TestSubmitAndList(t *testing.T) {
	s := setupTestServer(t)

	rec := s.do(t, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Nessuna partita caricata.")

	s.submit(t, "https://www.youtube.com/watch?v=abc123", "LEGA A", "Rossi", "Bianchi")

	rec = s.do(t, http.MethodGet, "/submit", nil)
	assert.Contains(t, rec.Body.String(), "Submission successful!")

	rec = s.do(t, http.MethodGet, "/", nil)
	body := rec.Body.String()
	assert.Contains(t, body, "https://www.youtube.com/embed/abc123")
	assert.Contains(t, body, "https://img.example/rossi.png")
}

func TestSubmitWithoutLink(t *testing.T) {
	s := setupTestServer(t)

	s.submit(t, "  ", "LEGA A", "Rossi", "Bianchi")

	rec := s.do(t, http.MethodGet, "/submit", nil)
	assert.Contains(t, rec.Body.String(), "Inserire il link YouTube della partita.")

	rec = s.do(t, http.MethodGet, "/", nil)
	assert.Contains(t, rec.Body.String(), "Nessuna partita caricata.")
}

func TestListFilterByPlayer(t *testing.T) {
	s := setupTestServer(t)

	s.submit(t, "https://youtu.be/first", "LEGA A", "Rossi", "Bianchi")
	s.submit(t, "https://youtu.be/second", "Amichevole", "Verdi", "Neri")

	rec := s.do(t, http.MethodGet, "/?player=Bianchi", nil)
	body := rec.Body.String()
	assert.Contains(t, body, "https://www.youtube.com/embed/first")
	assert.NotContains(t, body, "https://www.youtube.com/embed/second")
}

func TestStatsPage(t *testing.T) {
	s := setupTestServer(t)

	rec := s.do(t, http.MethodGet, "/stats", nil)
	assert.Contains(t, rec.Body.String(), "No data available.")

	s.submit(t, "https://youtu.be/a", "LEGA A", "Rossi", "Bianchi")
	s.submit(t, "https://youtu.be/b", "LEGA A", "Rossi", "Bianchi")
	s.submit(t, "https://youtu.be/c", "Amichevole", "Rossi", "Bianchi")

	rec = s.do(t, http.MethodGet, "/stats", nil)
	body := rec.Body.String()
	assert.Contains(t, body, "<td>Rossi</td>")
	assert.Contains(t, body, "<th>COPPA</th>")
	assert.NotContains(t, body, "<td>Bianchi</td>")
}

func TestTaxPage(t *testing.T) {
	s := setupTestServer(t)

	rec := s.do(t, http.MethodPost, "/tax", url.Values{
		"team":        {"Rossi"},
		"average_age": {"26.5"},
		"payroll":     {"100.000"},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Monte ingaggio inserito: €100.000")
	assert.Contains(t, body, "€25.000 (25% del monte ingaggio)")

	rec = s.do(t, http.MethodPost, "/tax", url.Values{
		"average_age": {"24"},
		"payroll":     {"tanti soldi"},
	})
	body = rec.Body.String()
	assert.Contains(t, body, "Inserire un numero valido.")
	assert.Contains(t, body, "€0 (10% del monte ingaggio)")
}

func TestTaxPageRejectsOutOfRangeInput(t *testing.T) {
	s := setupTestServer(t)

	rec := s.do(t, http.MethodPost, "/tax", url.Values{
		"average_age": {"30"},
		"payroll":     {"1e300"},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Inserire un numero valido.")
	assert.Contains(t, body, "€0 (25% del monte ingaggio)")
	assert.NotContains(t, body, "-9.223")

	for _, age := range []string{"NaN", "Inf", "-Inf"} {
		rec = s.do(t, http.MethodPost, "/tax", url.Values{
			"average_age": {age},
			"payroll":     {"100.000"},
		})
		require.Equal(t, http.StatusOK, rec.Code, age)
		body = rec.Body.String()
		assert.Contains(t, body, "media valida.", age)
		assert.Contains(t, body, "€0 (0% del monte ingaggio)", age)
	}
}

func TestUnknownPage(t *testing.T) {
	s := setupTestServer(t)

	rec := s.do(t, http.MethodGet, "/classifica", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Pagina non trovata")
}

func TestAdminUnlock(t *testing.T) {
	s := setupTestServer(t)
	s.submit(t, "https://youtu.be/a", "LEGA A", "Rossi", "Bianchi")

	rec := s.do(t, http.MethodGet, "/admin", nil)
	assert.Contains(t, rec.Body.String(), `type="password"`)

	rec = s.do(t, http.MethodPost, "/admin", url.Values{"password": {"sbagliata"}})
	assert.Contains(t, rec.Body.String(), "Password errata")
	assert.NotContains(t, rec.Body.String(), "/admin/prune")

	rec = s.do(t, http.MethodPost, "/admin", url.Values{"password": {testPassword}})
	body := rec.Body.String()
	assert.Contains(t, body, "/admin/prune")
	assert.Contains(t, body, "https://youtu.be/a")
}

func TestAdminToolsRequirePassword(t *testing.T) {
	s := setupTestServer(t)

	for _, path := range []string{"/admin/delete", "/admin/prune", "/admin/download"} {
		rec := s.do(t, http.MethodPost, path, url.Values{"password": {"sbagliata"}})
		assert.Equal(t, http.StatusForbidden, rec.Code, path)
	}
}

func TestAdminDeleteAndPrune(t *testing.T) {
	s := setupTestServer(t)
	s.submit(t, "https://youtu.be/keep", "LEGA A", "Rossi", "Bianchi")
	s.submit(t, "https://youtu.be/drop", "LEGA A", "Rossi", "Bianchi")
	s.submit(t, "https://vimeo.com/123", "LEGA A", "Rossi", "Bianchi")

	rec := s.do(t, http.MethodPost, "/admin/delete", url.Values{"password": {testPassword}, "link": {"https://youtu.be/drop"}})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Eliminate 1 partite")

	rec = s.do(t, http.MethodPost, "/admin/prune", url.Values{"password": {testPassword}})
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Eliminate 1 partite con link non validi")
	assert.Contains(t, body, "https://youtu.be/keep")
	assert.NotContains(t, body, "https://vimeo.com/123")
}

func TestAdminDownload(t *testing.T) {
	s := setupTestServer(t)
	s.submit(t, "https://youtu.be/a", "LEGA A", "Rossi", "Bianchi")

	rec := s.do(t, http.MethodPost, "/admin/download", url.Values{"password": {testPassword}})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), `attachment; filename="fantapesamici-tv-`)
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("SQLite format 3")))
}
