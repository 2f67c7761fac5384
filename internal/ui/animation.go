package ui

import (
	"log"
	"strconv"

	"golang.org/x/net/html/atom"

	"github.com/Zachkp/cv-site/internal/dom"
)

const (
	animateAttr  = "data-animate"
	animateClass = "animate-in"
	revealID     = "reveal-observer"
)

// revealScript is the client half of HandleIntersection: each observed
// element gets "animate-in" the first time it intersects, then is dropped.
const revealScript = `<script id="` + revealID + `">(function () {
  var observer = new IntersectionObserver(function (entries) {
    entries.forEach(function (entry) {
      if (!entry.isIntersecting) { return; }
      entry.target.classList.add('` + animateClass + `');
      observer.unobserve(entry.target);
    });
  }, { threshold: 0.1 });
  document.querySelectorAll('[` + animateAttr + `]').forEach(function (el) { observer.observe(el); });
})();</script>`

// Intersection reports the visibility of one observed element.
type Intersection struct {
	ID           string
	Intersecting bool
}

// Reveal is the action of permanently showing an element.
type Reveal struct {
	ID string
}

// Animator reveals sections the first time they scroll into view. When the
// client cannot observe intersections every method is a no-op.
type Animator struct {
	supported bool
	observed  map[string]bool
}

// NewAnimator creates an animator. supported says whether the client can
// report viewport intersections.
func NewAnimator(supported bool) *Animator {
	return &Animator{supported: supported, observed: make(map[string]bool)}
}

var animated = dom.AnyOf(
	dom.ByTag(atom.Section),
	dom.ByClass("project-card"),
	dom.ByClass("skill-category"),
)

// Observe tags every animatable element with an id, starts observing it and
// installs the client observer that reveals it. It returns the number of
// elements observed.
func (a *Animator) Observe(doc *dom.Document) int {
	if !a.supported {
		return 0
	}

	elements := doc.FindAll(animated)
	for i, el := range elements {
		id := strconv.Itoa(i)
		dom.SetAttr(el, animateAttr, id)
		a.observed[id] = true
	}
	if len(elements) > 0 && doc.First(dom.ByID(revealID)) == nil {
		if body := doc.Body(); body != nil {
			if err := dom.AppendHTML(body, revealScript); err != nil {
				log.Printf("Error installing reveal observer: %v", err)
			}
		}
	}
	return len(elements)
}

// HandleIntersection returns a Reveal for each observed element that became
// visible and stops observing it.
func (a *Animator) HandleIntersection(entries []Intersection) []Reveal {
	if !a.supported {
		return nil
	}

	var actions []Reveal
	for _, e := range entries {
		if !e.Intersecting || !a.observed[e.ID] {
			continue
		}
		delete(a.observed, e.ID)
		actions = append(actions, Reveal{ID: e.ID})
	}
	return actions
}

// Observing reports whether id is still watched.
func (a *Animator) Observing(id string) bool {
	return a.observed[id]
}

// ApplyReveals adds the permanent "animate-in" class.
func ApplyReveals(doc *dom.Document, actions []Reveal) {
	for _, r := range actions {
		if el := doc.First(dom.ByAttrValue(animateAttr, r.ID)); el != nil {
			dom.AddClass(el, animateClass)
		}
	}
}
