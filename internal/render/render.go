// Package render regenerates the content sections of the page from records.
//
// Every renderer replaces its container wholesale through a dom.Port, in
// the order the records are given.
package render

import (
	"bytes"
	"embed"
	"html/template"

	"github.com/Zachkp/cv-site/internal/content"
	"github.com/Zachkp/cv-site/internal/dom"
	"github.com/Zachkp/cv-site/internal/format"
	"github.com/Zachkp/cv-site/internal/i18n"
)

// Container class names.
const (
	ContainerTimeline = "timeline"
	ContainerSkills   = "skills-grid"
	ContainerProjects = "projects-grid"
	ContainerArticles = "blog-articles"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// Locale selects the language for field resolution and labels.
type Locale struct {
	Lang    string
	Default string
	Catalog *i18n.Catalog
}

func (l Locale) label(key, fallback string) string {
	return l.Catalog.Text(key, fallback)
}

func execute(name string, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func paint(port dom.Port, container, name string, data interface{}) error {
	markup, err := execute(name, data)
	if err != nil {
		return err
	}
	return port.SetContainerContent(container, markup)
}

type skillView struct {
	Category string
	Items    []string
}

// Skills renders one block per category; the description is split on "·".
func Skills(port dom.Port, loc Locale, skills []content.SkillCategory) error {
	views := make([]skillView, 0, len(skills))
	for _, s := range skills {
		views = append(views, skillView{
			Category: s.Category(loc.Lang, loc.Default),
			Items:    format.Items(s.Description(loc.Lang, loc.Default)),
		})
	}
	return paint(port, ContainerSkills, "skills", views)
}

type projectLabels struct {
	Live, Frontend, Backend string
}

type projectView struct {
	Title         string
	Description   template.HTML
	LiveURL       string
	GitURL        string
	GitBackendURL string
	Tags          []string
}

// Projects renders the project cards.
func Projects(port dom.Port, loc Locale, projects []content.Project) error {
	data := struct {
		Labels projectLabels
		Cards  []projectView
	}{
		Labels: projectLabels{
			Live:     loc.label("projects.live_demo", "Live Demo"),
			Frontend: loc.label("projects.github_frontend", "GitHub - FrontEnd"),
			Backend:  loc.label("projects.github_backend", "GitHub - Backend"),
		},
	}
	for _, p := range projects {
		data.Cards = append(data.Cards, projectView{
			Title: p.Title(loc.Lang, loc.Default),
			// Emphasis escapes its input before adding markup.
			Description:   template.HTML(format.Emphasis(p.Description(loc.Lang, loc.Default))),
			LiveURL:       p.LiveURL(),
			GitURL:        p.GitURL(),
			GitBackendURL: p.GitBackendURL(),
			Tags:          p.Technologies(),
		})
	}
	return paint(port, ContainerProjects, "projects", data)
}

type articleView struct {
	Title string
	URL   string
}

// Articles renders the list of article links.
func Articles(port dom.Port, loc Locale, articles []content.Article) error {
	views := make([]articleView, 0, len(articles))
	for _, a := range articles {
		views = append(views, articleView{Title: a.Title(loc.Lang, loc.Default), URL: a.URL()})
	}
	return paint(port, ContainerArticles, "articles", views)
}
