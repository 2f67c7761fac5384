package site

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log"

	"github.com/Zachkp/cv-site/internal/content"
	"github.com/Zachkp/cv-site/internal/dom"
	"github.com/Zachkp/cv-site/internal/i18n"
	"github.com/Zachkp/cv-site/internal/prefs"
	"github.com/Zachkp/cv-site/internal/render"
	"github.com/Zachkp/cv-site/internal/ui"
)

const (
	loadingOverlayID = "loading-overlay"
	filterBarID      = "timeline-filters"

	// ReadyPath is polled by the loading overlay until timeline data arrives.
	ReadyPath    = "/ready"
	readyTrigger = "every 2s"
)

// PageOptions are per-request rendering switches.
type PageOptions struct {
	Filter string
	// Animations says whether the client observes viewport intersections.
	Animations bool
	MenuOpen   bool
	// Details is the key of a timeline entry whose popup is open.
	Details string
}

// RenderPage builds the full page for a visitor and writes it to w.
func (s *Site) RenderPage(ctx context.Context, p prefs.Prefs, w io.Writer, opts PageOptions) error {
	doc, err := dom.Parse(bytes.NewReader(s.opts.Page))
	if err != nil {
		return err
	}

	lang := s.Language(p)
	loc := s.locale(ctx, lang)
	i18n.Apply(doc, loc.Catalog)
	ui.ApplyTheme(doc, ui.RestoreTheme(p))

	data := s.snapshot()
	paint(doc, loc, data)

	filter := opts.Filter
	if filter == "" {
		filter = content.FilterAll
	}
	ui.SelectFilter(doc, filter)
	ui.SelectLanguage(doc, lang)
	if opts.MenuOpen {
		ui.ToggleMenu(doc)
	}
	observed := ui.NewAnimator(opts.Animations).Observe(doc)
	links := ui.NewNavigator(s.opts.HeaderOffset).Observe(doc)
	log.Printf("Page rendered: lang=%s, %d animated elements, %d anchor links", lang, observed, links)

	if opts.Details != "" {
		if markup, err := s.overlay(loc, data.timeline, opts.Details); err == nil {
			if err := render.ShowOverlay(doc, markup); err != nil {
				log.Printf("Error opening details %s: %v", opts.Details, err)
			}
		}
	}

	if overlay := doc.First(dom.ByID(loadingOverlayID)); overlay != nil {
		if data.timelineReady {
			dom.SetAttr(overlay, "style", "display: none")
		} else {
			// The ready endpoint answers with a refresh once data is in.
			dom.SetAttr(overlay, "hx-get", ReadyPath)
			dom.SetAttr(overlay, "hx-trigger", readyTrigger)
			dom.SetAttr(overlay, "hx-swap", "none")
		}
	}

	return doc.Render(w)
}

// paint runs every renderer whose records have arrived. A section that was
// never fetched, has no container, or fails to render keeps its static
// content.
func paint(port dom.Port, loc render.Locale, data snapshot) {
	steps := []struct {
		name   string
		loaded bool
		run    func() error
	}{
		{"timeline", data.timeline != nil, func() error { return render.Timeline(port, loc, data.timeline, content.FilterAll) }},
		{"skills", data.skills != nil, func() error { return render.Skills(port, loc, data.skills) }},
		{"projects", data.projects != nil, func() error { return render.Projects(port, loc, data.projects) }},
		{"articles", data.articles != nil, func() error { return render.Articles(port, loc, data.articles) }},
	}
	for _, step := range steps {
		if !step.loaded {
			continue
		}
		if err := step.run(); err != nil && !errors.Is(err, dom.ErrNoContainer) {
			log.Printf("Error rendering %s: %v", step.name, err)
		}
	}
}

// TimelineFragment renders only the timeline items matching filter, followed
// by the filter bar marked for an out-of-band swap so the active button
// follows the selection.
func (s *Site) TimelineFragment(ctx context.Context, p prefs.Prefs, filter string) (string, error) {
	loc := s.locale(ctx, s.Language(p))
	port := dom.Recorder{}
	if err := render.Timeline(port, loc, s.snapshot().timeline, filter); err != nil {
		return "", err
	}

	bar, err := s.filterBar(loc, filter)
	if err != nil {
		return "", err
	}
	return port[render.ContainerTimeline] + bar, nil
}

// filterBar renders the page's filter buttons with filter selected.
func (s *Site) filterBar(loc render.Locale, filter string) (string, error) {
	doc, err := dom.Parse(bytes.NewReader(s.opts.Page))
	if err != nil {
		return "", err
	}
	i18n.Apply(doc, loc.Catalog)
	ui.SelectFilter(doc, filter)

	bar := doc.First(dom.ByID(filterBarID))
	if bar == nil {
		return "", nil
	}
	dom.SetAttr(bar, "hx-swap-oob", "true")
	return dom.OuterHTML(bar), nil
}

// Overlay renders the detail popup for the timeline entry with key.
func (s *Site) Overlay(ctx context.Context, p prefs.Prefs, key string) (string, error) {
	loc := s.locale(ctx, s.Language(p))
	return s.overlay(loc, s.snapshot().timeline, key)
}

func (s *Site) overlay(loc render.Locale, timeline []content.TimelineEntry, key string) (string, error) {
	for _, entry := range timeline {
		if entry.Key() != key {
			continue
		}
		if entry.Description(loc.Lang, loc.Default) == "" {
			return "", ErrNoEntry
		}
		return render.Overlay(loc, entry)
	}
	return "", ErrNoEntry
}
