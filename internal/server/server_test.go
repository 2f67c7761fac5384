package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/cv-site/internal/api"
	"github.com/Zachkp/cv-site/internal/i18n"
	"github.com/Zachkp/cv-site/internal/prefs"
	"github.com/Zachkp/cv-site/internal/site"
)

var backend = map[string]string{
	api.PathExperiences: `[{"id":3,"position_en":"Engineer","company_en":"Acme","start_date":"2021","description_en":"· Built APIs"}]`,
	api.PathEducations:  `[{"id":3,"degree_en":"BSc","institution_en":"Uni","start_date":"2015","end_date":"2019"}]`,
	api.PathSkills:      `[{"category_en":"Languages","description_en":"English · French"}]`,
	api.PathProjects:    `[{"title_en":"CV","description_en":"This site","technologies":"Go;HTMX","url_live":"https://cv.example"}]`,
	api.PathArticles:    `[{"title_en":"Hello","url":"https://blog.example/hello"}]`,
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	srv, s := newUnreadyServer(t)
	s.Bootstrap(context.Background())
	return srv
}

// newUnreadyServer builds a server whose site has not fetched anything yet.
func newUnreadyServer(t *testing.T) (*Server, *site.Site) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := backend[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(upstream.Close)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "es.json"), []byte(`{"about":{"title":"Sobre mí"}}`), 0600))

	client := api.NewClient(upstream.URL, time.Second)
	catalogs := i18n.NewManager(i18n.NewLoader(dir, client), "en")
	s := site.New(site.Options{DefaultLanguage: "en", Languages: []string{"en", "es"}}, client, catalogs)

	store := prefs.Open(filepath.Join(t.TempDir(), "prefs.db"))
	t.Cleanup(func() { store.Close() })
	return New(Config{}, s, store), s
}

func do(srv *Server, method, target string, cookies []*http.Cookie, htmx bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	if htmx {
		req.Header.Set("HX-Request", "true")
	}
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	return w
}

func TestHealthCheck(t *testing.T) {
	srv := newTestServer(t)

	w := do(srv, http.MethodGet, "/healthz", nil, false)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, true, body["timeline_ready"])
}

func TestIndexSetsClientCookie(t *testing.T) {
	srv := newTestServer(t)

	w := do(srv, http.MethodGet, "/", nil, false)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, clientCookie, cookies[0].Name)

	body := w.Body.String()
	assert.Contains(t, body, "Engineer")
	assert.Contains(t, body, "<li>English</li><li>French</li>")
	assert.Contains(t, body, "https://cv.example")
	assert.Contains(t, body, "Hello")
}

func TestThemeTogglePersistsPerVisitor(t *testing.T) {
	srv := newTestServer(t)
	cookies := do(srv, http.MethodGet, "/", nil, false).Result().Cookies()

	w := do(srv, http.MethodPost, "/theme/toggle", cookies, true)
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "true", w.Header().Get("HX-Refresh"), "body attributes need a full reload")

	w = do(srv, http.MethodGet, "/", cookies, false)
	assert.Contains(t, w.Body.String(), `class="dark-theme"`)

	w = do(srv, http.MethodGet, "/", nil, false)
	assert.NotContains(t, w.Body.String(), `class="dark-theme"`, "other visitors keep the light theme")

	w = do(srv, http.MethodPost, "/theme/toggle", cookies, false)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestChangeLanguage(t *testing.T) {
	srv := newTestServer(t)
	cookies := do(srv, http.MethodGet, "/", nil, false).Result().Cookies()

	w := do(srv, http.MethodPost, "/language/es", cookies, true)
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "true", w.Header().Get("HX-Refresh"))

	w = do(srv, http.MethodGet, "/", cookies, false)
	assert.Contains(t, w.Body.String(), `<html lang="es">`)
	assert.Contains(t, w.Body.String(), "Sobre mí")

	w = do(srv, http.MethodPost, "/language/xx", cookies, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTimelineFragment(t *testing.T) {
	srv := newTestServer(t)

	w := do(srv, http.MethodGet, "/timeline?filter=education", nil, true)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "BSc")
	assert.NotContains(t, body, "Engineer")
	assert.Equal(t, 1, strings.Count(body, "timeline-item education left"))
	assert.Contains(t, body, `hx-swap-oob="true"`)
	assert.Contains(t, body, `class="filter-btn active" data-filter="education"`)
}

func TestDetails(t *testing.T) {
	srv := newTestServer(t)

	w := do(srv, http.MethodGet, "/timeline/work-3/details", nil, true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "timeline-popup")
	assert.Contains(t, w.Body.String(), "<ul><li>Built APIs</li></ul>")

	assert.Equal(t, http.StatusNotFound, do(srv, http.MethodGet, "/timeline/education-3/details", nil, true).Code)
	assert.Equal(t, http.StatusNotFound, do(srv, http.MethodGet, "/timeline/work-9/details", nil, true).Code)

	w = do(srv, http.MethodGet, "/?details=work-3", nil, false)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `<div id="popup-slot"><div class="timeline-popup">`)
}

func TestAnimatedPageShipsRevealObserver(t *testing.T) {
	srv := newTestServer(t)

	w := do(srv, http.MethodGet, "/", []*http.Cookie{{Name: animationsCookie, Value: "1"}}, false)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "data-animate=")
	assert.Contains(t, body, `<script id="reveal-observer">`)
	assert.Contains(t, body, "classList.add('animate-in')")

	w = do(srv, http.MethodGet, "/", nil, false)
	assert.NotContains(t, w.Body.String(), "data-animate=", "nothing is hidden without an observer")
}

func TestReadyPollingReloadsOnceTimelineArrives(t *testing.T) {
	srv, s := newUnreadyServer(t)

	w := do(srv, http.MethodGet, "/", nil, false)
	assert.Contains(t, w.Body.String(), `hx-get="/ready"`)

	w = do(srv, http.MethodGet, "/ready", nil, true)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Header().Get("HX-Refresh"))

	s.Bootstrap(context.Background())
	w = do(srv, http.MethodGet, "/ready", nil, true)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "true", w.Header().Get("HX-Refresh"))
}
