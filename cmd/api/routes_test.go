package main

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aoideee/locallibrary/internal/data/memory"
)

func newTestServer(t *testing.T, configure ...func(*serverConfig)) *httptest.Server {
	t.Helper()
	var settings serverConfig
	settings.environment = "testing"
	settings.store.Driver = "memory"
	for _, fn := range configure {
		fn(&settings)
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	app := newApplication(settings, logger, memory.NewModels())

	srv := httptest.NewServer(app.routes())
	t.Cleanup(srv.Close)
	return srv
}

// noRedirect returns a client that reports redirects instead of following them.
func noRedirect() *http.Client {
	return &http.Client{CheckRedirect: func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}}
}

type rendered struct {
	View     string         `json:"view"`
	Context  map[string]any `json:"context"`
	Redirect string         `json:"redirect"`
	Error    string         `json:"error"`
}

func decode(t *testing.T, res *http.Response) rendered {
	t.Helper()
	defer res.Body.Close()
	var out rendered
	require.NoError(t, json.NewDecoder(res.Body).Decode(&out))
	return out
}

func postForm(t *testing.T, srv *httptest.Server, path string, form url.Values) *http.Response {
	t.Helper()
	res, err := noRedirect().PostForm(srv.URL+path, form)
	require.NoError(t, err)
	return res
}

func get(t *testing.T, srv *httptest.Server, path string) *http.Response {
	t.Helper()
	res, err := noRedirect().Get(srv.URL + path)
	require.NoError(t, err)
	return res
}

func TestGenreLifecycle(t *testing.T) {
	srv := newTestServer(t)

	res := postForm(t, srv, "/catalog/genres/create", url.Values{"name": {"Fantasy"}})
	require.Equal(t, http.StatusFound, res.StatusCode)
	location := res.Header.Get("Location")
	assert.True(t, strings.HasPrefix(location, "/catalog/genre/"))
	res.Body.Close()

	// A second create with the same name lands on the same genre.
	res = postForm(t, srv, "/catalog/genres/create", url.Values{"name": {"Fantasy"}})
	assert.Equal(t, location, res.Header.Get("Location"))
	res.Body.Close()

	res = get(t, srv, location)
	require.Equal(t, http.StatusOK, res.StatusCode)
	page := decode(t, res)
	assert.Equal(t, "genre_detail", page.View)
	assert.Equal(t, "Fantasy", page.Context["genre"].(map[string]any)["name"])

	res = postForm(t, srv, "/catalog/genres/create", url.Values{"name": {"ab"}})
	require.Equal(t, http.StatusOK, res.StatusCode)
	page = decode(t, res)
	assert.Equal(t, "genre_form", page.View)
	assert.Len(t, page.Context["errors"], 1)

	res = postForm(t, srv, location+"/delete", nil)
	require.Equal(t, http.StatusFound, res.StatusCode)
	assert.Equal(t, "/catalog/genres", res.Header.Get("Location"))
	res.Body.Close()

	res = get(t, srv, location)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.Equal(t, "the requested resource could not be found", decode(t, res).Error)
}

func TestBlockedDeleteIsCounted(t *testing.T) {
	srv := newTestServer(t)

	res := postForm(t, srv, "/catalog/authors/create", url.Values{"first_name": {"Ursula"}, "family_name": {"Le Guin"}})
	require.Equal(t, http.StatusFound, res.StatusCode)
	authorURL := res.Header.Get("Location")
	res.Body.Close()

	res = postForm(t, srv, "/catalog/genres/create", url.Values{"name": {"Fantasy"}})
	genreURL := res.Header.Get("Location")
	res.Body.Close()

	res = postForm(t, srv, "/catalog/books/create", url.Values{
		"title":   {"A Wizard of Earthsea"},
		"author":  {strings.TrimPrefix(authorURL, "/catalog/author/")},
		"summary": {"A young wizard"},
		"isbn":    {"9780547773742"},
		"genre":   {strings.TrimPrefix(genreURL, "/catalog/genre/"), ""},
	})
	require.Equal(t, http.StatusFound, res.StatusCode)
	res.Body.Close()

	res = postForm(t, srv, genreURL+"/delete", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	page := decode(t, res)
	assert.Equal(t, "genre_delete", page.View)
	assert.Len(t, page.Context["genre_books"], 1)

	res = get(t, srv, "/metrics")
	body, err := io.ReadAll(res.Body)
	res.Body.Close()
	require.NoError(t, err)
	assert.Contains(t, string(body), `locallibrary_deletes_blocked_total{kind="genre"} 1`)
	assert.Contains(t, string(body), `route="/catalog/genre/:id/delete"`)
}

func TestJSONBody(t *testing.T) {
	srv := newTestServer(t)

	body := `{"first_name": "Octavia", "family_name": "Butler", "date_of_birth": "1947-06-22"}`
	res, err := noRedirect().Post(srv.URL+"/catalog/authors/create", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	require.Equal(t, http.StatusFound, res.StatusCode)
	location := res.Header.Get("Location")
	res.Body.Close()

	page := decode(t, get(t, srv, location))
	author := page.Context["author"].(map[string]any)
	assert.Equal(t, "Butler, Octavia", author["name"])
	assert.Equal(t, "1947-06-22 - ", author["lifespan"])

	res, err = noRedirect().Post(srv.URL+"/catalog/authors/create", "application/json", strings.NewReader(`{"a": 1}{"b": 2}`))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	res.Body.Close()
}

func TestMissingRecordPages(t *testing.T) {
	srv := newTestServer(t)

	res := get(t, srv, "/catalog/book/nope")
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	res.Body.Close()

	res = get(t, srv, "/catalog/book/nope/update")
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	res.Body.Close()

	res = get(t, srv, "/catalog/book/nope/delete")
	assert.Equal(t, http.StatusFound, res.StatusCode)
	assert.Equal(t, "/catalog/books", res.Header.Get("Location"))
	res.Body.Close()

	res = get(t, srv, "/catalog/shelves")
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	res.Body.Close()

	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/catalog/book/nope", nil)
	require.NoError(t, err)
	res, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusMethodNotAllowed, res.StatusCode)
	res.Body.Close()
}

func TestCatalogPages(t *testing.T) {
	srv := newTestServer(t)

	for path, view := range map[string]string{
		"/catalog":                      "index",
		"/catalog/genres":               "genre_list",
		"/catalog/authors":              "author_list",
		"/catalog/books":                "book_list",
		"/catalog/bookinstances":        "bookinstance_list",
		"/catalog/genres/create":        "genre_form",
		"/catalog/authors/create":       "author_form",
		"/catalog/books/create":         "book_form",
		"/catalog/bookinstances/create": "bookinstance_form",
	} {
		t.Run(path, func(t *testing.T) {
			res := get(t, srv, path)
			require.Equal(t, http.StatusOK, res.StatusCode)
			assert.NotEmpty(t, res.Header.Get(requestIDHeader))
			assert.Equal(t, view, decode(t, res).View)
		})
	}
}

func TestHealthcheck(t *testing.T) {
	srv := newTestServer(t)

	res := get(t, srv, "/healthcheck")
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	var body struct {
		Status     string            `json:"status"`
		SystemInfo map[string]string `json:"system_info"`
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	assert.Equal(t, "available", body.Status)
	assert.Equal(t, appVersion, body.SystemInfo["version"])
	assert.Equal(t, "memory", body.SystemInfo["store"])
}

func TestRateLimit(t *testing.T) {
	srv := newTestServer(t, func(c *serverConfig) {
		c.limiter.enabled = true
		c.limiter.rps = 0.001
		c.limiter.burst = 1
	})

	res := get(t, srv, "/healthcheck")
	assert.Equal(t, http.StatusOK, res.StatusCode)
	res.Body.Close()

	res = get(t, srv, "/healthcheck")
	assert.Equal(t, http.StatusTooManyRequests, res.StatusCode)
	res.Body.Close()
}

func TestRequestIDIsKept(t *testing.T) {
	srv := newTestServer(t)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/healthcheck", nil)
	require.NoError(t, err)
	req.Header.Set(requestIDHeader, "abc-123")
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, "abc-123", res.Header.Get(requestIDHeader))
}
