package server

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retailscope/internal/database"
)

func testServer(t *testing.T) (*Server, *database.DB) {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	srv, err := New(db)
	require.NoError(t, err)
	return srv, db
}

func ptr(s string) *string { return &s }
func intPtr(n int) *int    { return &n }

func seedArticle(t *testing.T, db *database.DB) {
	t.Helper()
	require.NoError(t, db.UpsertArticle(&database.Article{
		URL:             "https://example.com/walmart",
		Title:           "Walmart deploys ChatGPT",
		Source:          ptr("retaildive.com"),
		Takeaway:        ptr("Walmart rolled out assistants across stores."),
		Assessment:      ptr("INCLUDE"),
		AssessmentScore: intPtr(83),
		CriteriaResults: []database.CriterionResult{
			{Name: "Neutral tone", Status: true, Notes: "Focuses on reporting rather than promotion"},
		},
	}))
}

func TestIndexEmpty(t *testing.T) {
	srv, _ := testServer(t)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No articles yet")
}

func TestIndexListsArticles(t *testing.T) {
	srv, db := testServer(t)
	seedArticle(t, db)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Walmart deploys ChatGPT")
	assert.Contains(t, body, "INCLUDE")
	assert.Contains(t, body, "retaildive.com")
}

func TestIndexUnknownPathIs404(t *testing.T) {
	srv, _ := testServer(t)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestReportPage(t *testing.T) {
	srv, db := testServer(t)
	seedArticle(t, db)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/report", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Walmart deploys ChatGPT")
	assert.Contains(t, body, "Include", "ranked report renders assessment sections")
}

func TestReportCSV(t *testing.T) {
	srv, db := testServer(t)
	seedArticle(t, db)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/report.csv", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, rec.Body.String(), "Walmart deploys ChatGPT")
}

func TestStaticFiles(t *testing.T) {
	srv, _ := testServer(t)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/static/style.css", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
