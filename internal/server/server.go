// Package server exposes the CV page and its HTMX fragments over HTTP.
package server

import (
	"bytes"
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Zachkp/cv-site/internal/prefs"
	"github.com/Zachkp/cv-site/internal/site"
)

const (
	clientCookie     = "cv_client"
	animationsCookie = "cv_io"
	prefsKey         = "prefs"
	cookieMaxAge     = 3600 * 24 * 365
)

// Config holds the HTTP settings.
type Config struct {
	StaticDir string
	ImagesDir string
}

// Server wires the site into a gin engine.
type Server struct {
	engine *gin.Engine
	site   *site.Site
	store  *prefs.Store
}

// New builds the router.
func New(cfg Config, s *site.Site, store *prefs.Store) *Server {
	srv := &Server{engine: gin.New(), site: s, store: store}
	r := srv.engine
	r.Use(gin.Logger(), gin.Recovery())

	if cfg.StaticDir != "" {
		r.Static("/static", cfg.StaticDir)
	}
	if cfg.ImagesDir != "" {
		r.Static("/images", cfg.ImagesDir)
	}

	r.GET("/healthz", srv.health)
	r.GET(site.ReadyPath, srv.ready)

	pages := r.Group("/")
	pages.Use(visitorMiddleware(store))
	pages.GET("/", srv.index)
	pages.GET("/timeline", srv.timeline)
	pages.GET("/timeline/:key/details", srv.details)
	pages.POST("/language/:lang", srv.changeLanguage)
	pages.POST("/theme/toggle", srv.toggleTheme)

	return srv
}

// Handler returns the router.
func (srv *Server) Handler() http.Handler {
	return srv.engine
}

// Run listens on addr until ctx is done.
func (srv *Server) Run(ctx context.Context, addr string) error {
	httpServer := &http.Server{Addr: addr, Handler: srv.engine}

	go func() {
		<-ctx.Done()
		if err := httpServer.Shutdown(context.Background()); err != nil {
			log.Printf("Error shutting down server: %v", err)
		}
	}()

	log.Printf("Serving CV on %s", addr)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// visitorMiddleware identifies the visitor by cookie and attaches their
// preferences to the request.
func visitorMiddleware(store *prefs.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(clientCookie)
		if err != nil || uuid.Validate(id) != nil {
			id = uuid.NewString()
			c.SetCookie(clientCookie, id, cookieMaxAge, "/", "", false, true)
		}
		c.Set(prefsKey, store.Scope(id))
		c.Next()
	}
}

func visitorPrefs(c *gin.Context) prefs.Prefs {
	return c.MustGet(prefsKey).(prefs.Prefs)
}

func (srv *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":         "ok",
		"timeline_ready": srv.site.TimelineReady(),
	})
}

func (srv *Server) index(c *gin.Context) {
	srv.renderPage(c, http.StatusOK)
}

func (srv *Server) renderPage(c *gin.Context, status int) {
	animations, _ := c.Cookie(animationsCookie)
	opts := site.PageOptions{
		Filter:     c.Query("filter"),
		Animations: animations == "1",
		MenuOpen:   c.Query("menu") == "open",
		Details:    c.Query("details"),
	}

	var buf bytes.Buffer
	if err := srv.site.RenderPage(c.Request.Context(), visitorPrefs(c), &buf, opts); err != nil {
		log.Printf("Error rendering page: %v", err)
		c.String(http.StatusInternalServerError, "Sorry, the page could not be rendered.")
		return
	}
	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
}

func (srv *Server) timeline(c *gin.Context) {
	markup, err := srv.site.TimelineFragment(c.Request.Context(), visitorPrefs(c), c.DefaultQuery("filter", "all"))
	if err != nil {
		log.Printf("Error rendering timeline: %v", err)
		c.String(http.StatusInternalServerError, "")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(markup))
}

func (srv *Server) details(c *gin.Context) {
	key := c.Param("key")
	markup, err := srv.site.Overlay(c.Request.Context(), visitorPrefs(c), key)
	if errors.Is(err, site.ErrNoEntry) {
		c.String(http.StatusNotFound, "")
		return
	}
	if err != nil {
		log.Printf("Error rendering details %s: %v", key, err)
		c.String(http.StatusInternalServerError, "")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(markup))
}

func (srv *Server) changeLanguage(c *gin.Context) {
	_, err := srv.site.ChangeLanguage(c.Request.Context(), visitorPrefs(c), c.Param("lang"))
	if errors.Is(err, site.ErrUnsupportedLanguage) {
		c.String(http.StatusBadRequest, "unsupported language")
		return
	}
	srv.afterChange(c)
}

func (srv *Server) toggleTheme(c *gin.Context) {
	srv.site.ToggleTheme(visitorPrefs(c))
	srv.afterChange(c)
}

// ready tells the polling loading overlay to reload the page once the
// timeline is available. Until then it answers 204 and nothing is swapped.
func (srv *Server) ready(c *gin.Context) {
	if !srv.site.TimelineReady() {
		c.Status(http.StatusNoContent)
		return
	}
	c.Header("HX-Refresh", "true")
	c.Status(http.StatusOK)
}

// afterChange reloads the page for HTMX requests, since the change touches
// <html> and <body> attributes a swap cannot update, and redirects plain
// form posts back to it.
func (srv *Server) afterChange(c *gin.Context) {
	if isHTMX(c) {
		c.Header("HX-Refresh", "true")
		c.Status(http.StatusNoContent)
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

func isHTMX(c *gin.Context) bool {
	return strings.EqualFold(c.GetHeader("HX-Request"), "true")
}
