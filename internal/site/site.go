// Package site owns the state of the CV page and runs the content pipeline:
// fetch records, localize, render.
package site

import (
	"context"
	_ "embed"
	"errors"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Zachkp/cv-site/internal/content"
	"github.com/Zachkp/cv-site/internal/i18n"
	"github.com/Zachkp/cv-site/internal/prefs"
	"github.com/Zachkp/cv-site/internal/render"
	"github.com/Zachkp/cv-site/internal/ui"
)

var (
	ErrUnsupportedLanguage = errors.New("unsupported language")
	ErrNoEntry             = errors.New("no such timeline entry")
)

//go:embed templates/index.html
var defaultPage []byte

// DefaultPage returns the built-in page template.
func DefaultPage() []byte {
	return defaultPage
}

// Source provides the record collections. *api.Client satisfies it.
type Source interface {
	Experiences(ctx context.Context) ([]content.Record, error)
	Educations(ctx context.Context) ([]content.Record, error)
	Skills(ctx context.Context) ([]content.Record, error)
	Projects(ctx context.Context) ([]content.Record, error)
	Articles(ctx context.Context) ([]content.Record, error)
}

// Options configures a Site.
type Options struct {
	DefaultLanguage string
	Languages       []string
	HeaderOffset    int
	// Page is the HTML template; DefaultPage is used when empty.
	Page []byte
}

// Site holds every piece of mutable state the page is built from.
type Site struct {
	opts     Options
	source   Source
	catalogs *i18n.Manager

	mu            sync.RWMutex
	timeline      []content.TimelineEntry
	skills        []content.SkillCategory
	projects      []content.Project
	articles      []content.Article
	timelineReady bool
}

// New creates a site. Nothing is fetched until Bootstrap or Refresh.
func New(opts Options, source Source, catalogs *i18n.Manager) *Site {
	if len(opts.Page) == 0 {
		opts.Page = defaultPage
	}
	if opts.HeaderOffset == 0 {
		opts.HeaderOffset = ui.DefaultHeaderOffset
	}
	return &Site{opts: opts, source: source, catalogs: catalogs}
}

// Bootstrap loads the default catalog and fetches every collection.
func (s *Site) Bootstrap(ctx context.Context) {
	log.Println("Initializing interactive CV...")
	s.catalogs.Ensure(ctx, s.opts.DefaultLanguage)
	s.Refresh(ctx)
	log.Println("Interactive CV initialized")
}

// Run refreshes the records every interval until ctx is done.
func (s *Site) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Refresh(ctx)
		}
	}
}

// Refresh runs the four fetch pipelines concurrently. A failing pipeline
// is logged and keeps its previous records; it never affects the others.
func (s *Site) Refresh(ctx context.Context) {
	var g errgroup.Group
	g.Go(func() error { s.refreshTimeline(ctx); return nil })
	g.Go(func() error { s.refreshSkills(ctx); return nil })
	g.Go(func() error { s.refreshProjects(ctx); return nil })
	g.Go(func() error { s.refreshArticles(ctx); return nil })
	_ = g.Wait()
}

func (s *Site) refreshTimeline(ctx context.Context) {
	var experiences, educations []content.Record
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		experiences, err = s.source.Experiences(gctx)
		return err
	})
	g.Go(func() (err error) {
		educations, err = s.source.Educations(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		log.Printf("Error fetching timeline data: %v", err)
		return
	}

	entries := content.NewTimeline(experiences, educations)
	content.SortTimeline(entries)

	s.mu.Lock()
	s.timeline = entries
	s.timelineReady = true
	s.mu.Unlock()
	log.Printf("Timeline loaded: %d entries", len(entries))
}

func (s *Site) refreshSkills(ctx context.Context) {
	records, err := s.source.Skills(ctx)
	if err != nil {
		log.Printf("Error fetching skills: %v", err)
		return
	}
	s.mu.Lock()
	s.skills = content.Skills(records)
	s.mu.Unlock()
}

func (s *Site) refreshProjects(ctx context.Context) {
	records, err := s.source.Projects(ctx)
	if err != nil {
		log.Printf("Error fetching projects: %v", err)
		return
	}
	s.mu.Lock()
	s.projects = content.Projects(records)
	s.mu.Unlock()
}

func (s *Site) refreshArticles(ctx context.Context) {
	records, err := s.source.Articles(ctx)
	if err != nil {
		log.Printf("Error fetching articles: %v", err)
		return
	}
	s.mu.Lock()
	s.articles = content.Articles(records)
	s.mu.Unlock()
}

type snapshot struct {
	timeline      []content.TimelineEntry
	skills        []content.SkillCategory
	projects      []content.Project
	articles      []content.Article
	timelineReady bool
}

// Collections are replaced, never mutated, so sharing the slices is safe.
func (s *Site) snapshot() snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshot{
		timeline:      s.timeline,
		skills:        s.skills,
		projects:      s.projects,
		articles:      s.articles,
		timelineReady: s.timelineReady,
	}
}

// TimelineReady reports whether timeline data has arrived at least once.
func (s *Site) TimelineReady() bool {
	return s.snapshot().timelineReady
}

// Supports reports whether lang is a configured language.
func (s *Site) Supports(lang string) bool {
	for _, l := range s.opts.Languages {
		if l == lang {
			return true
		}
	}
	return false
}

// Language restores the visitor's language, falling back to the default.
func (s *Site) Language(p prefs.Prefs) string {
	if v, ok := p.Get(prefs.KeyLanguage); ok && s.Supports(v) {
		return v
	}
	return s.opts.DefaultLanguage
}

// ChangeLanguage switches the visitor to lang and persists it.
func (s *Site) ChangeLanguage(ctx context.Context, p prefs.Prefs, lang string) (string, error) {
	if !s.Supports(lang) {
		return s.Language(p), ErrUnsupportedLanguage
	}
	current := s.Language(p)
	next, _ := s.catalogs.Change(ctx, current, lang)
	if next != current {
		p.Set(prefs.KeyLanguage, next)
	}
	return next, nil
}

// ToggleTheme flips and persists the visitor's theme.
func (s *Site) ToggleTheme(p prefs.Prefs) ui.Theme {
	return ui.ToggleTheme(p, ui.RestoreTheme(p))
}

func (s *Site) locale(ctx context.Context, lang string) render.Locale {
	return render.Locale{
		Lang:    lang,
		Default: s.opts.DefaultLanguage,
		Catalog: s.catalogs.Ensure(ctx, lang),
	}
}
