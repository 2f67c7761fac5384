package ui

import (
	"fmt"
	"log"
	"strings"

	"github.com/Zachkp/cv-site/internal/dom"
)

// DefaultHeaderOffset is the height of the fixed header in pixels.
const DefaultHeaderOffset = 80

const (
	smoothScrollAttr = "data-smooth-scroll"
	scrollStyleID    = "scroll-offset"
)

// Layout gives the vertical positions needed to scroll to an anchor.
type Layout struct {
	// Top maps an element id to its top relative to the viewport.
	Top         map[string]int
	PageYOffset int
}

// ScrollAction replaces the default jump to an anchor.
type ScrollAction struct {
	Prevent bool
	Scroll  bool
	Top     int
	Smooth  bool
}

// Navigator handles clicks on same-page links.
type Navigator struct {
	HeaderOffset int
}

// NewNavigator creates a navigator for a header of the given height.
func NewNavigator(headerOffset int) *Navigator {
	return &Navigator{HeaderOffset: headerOffset}
}

// Observe marks same-page links for smooth scrolling and returns how many.
// The browser performs the scroll itself from the emitted style, which
// applies the same offset as ScrollTarget.
func (n *Navigator) Observe(doc *dom.Document) int {
	links := doc.FindAll(dom.ByAttrPrefix("href", "#"))
	for _, link := range links {
		dom.SetAttr(link, smoothScrollAttr, "")
	}
	if len(links) > 0 {
		n.installScrollStyle(doc)
	}
	return len(links)
}

func (n *Navigator) installScrollStyle(doc *dom.Document) {
	head := doc.Head()
	if head == nil || doc.First(dom.ByID(scrollStyleID)) != nil {
		return
	}
	style := fmt.Sprintf(`<style id="%s">html{scroll-behavior:smooth;scroll-padding-top:%dpx}</style>`,
		scrollStyleID, n.HeaderOffset)
	if err := dom.AppendHTML(head, style); err != nil {
		log.Printf("Error installing scroll style: %v", err)
	}
}

// HandleClick always suppresses the jump; it scrolls only when the target
// exists.
func (n *Navigator) HandleClick(href string, layout Layout) ScrollAction {
	action := ScrollAction{Prevent: true}
	id := strings.TrimPrefix(href, "#")
	top, ok := layout.Top[id]
	if id == "" || !ok {
		return action
	}
	action.Scroll = true
	action.Smooth = true
	action.Top = n.ScrollTarget(top, layout.PageYOffset)
	return action
}

// ScrollTarget is the page offset that puts an element just under the header.
func (n *Navigator) ScrollTarget(elementTop, pageYOffset int) int {
	return elementTop + pageYOffset - n.HeaderOffset
}
