package ui

import (
	"log"

	"github.com/Zachkp/cv-site/internal/content"
	"github.com/Zachkp/cv-site/internal/dom"
	"github.com/Zachkp/cv-site/internal/render"
)

const (
	activeClass = "active"
	hiddenClass = "hidden"
)

// SelectFilter activates the filter button for value and re-evaluates
// every rendered timeline item without rendering again.
func SelectFilter(doc *dom.Document, value string) {
	for _, btn := range doc.FindAll(dom.ByClass("filter-btn")) {
		v, _ := dom.Attr(btn, "data-filter")
		dom.SetClass(btn, activeClass, v == value)
	}

	visible := 0
	for _, item := range doc.FindAll(dom.ByClass("timeline-item")) {
		category, _ := dom.Attr(item, "data-category")
		dom.RemoveClass(item, render.SideLeft, render.SideRight)
		if content.Kind(category).Matches(value) {
			dom.RemoveClass(item, hiddenClass)
			dom.AddClass(item, render.Side(visible))
			visible++
		} else {
			dom.AddClass(item, hiddenClass)
		}
	}
	log.Printf("Timeline filtered by: %s", value)
}

// SelectLanguage marks the language button for lang as the only active one.
func SelectLanguage(doc *dom.Document, lang string) {
	for _, btn := range doc.FindAll(dom.ByClass("language-btn")) {
		v, _ := dom.Attr(btn, "data-lang")
		dom.SetClass(btn, activeClass, v == lang)
	}
}

// ToggleMenu opens or closes the burger menu.
func ToggleMenu(doc *dom.Document) {
	for _, el := range doc.FindAll(dom.AnyOf(dom.ByClass("nav-menu"), dom.ByClass("nav-controls"))) {
		dom.ToggleClass(el, "open")
	}
}
