package render

import (
	"html/template"

	"github.com/Zachkp/cv-site/internal/content"
	"github.com/Zachkp/cv-site/internal/dom"
	"github.com/Zachkp/cv-site/internal/format"
)

// Placement classes alternate over rendered items only.
const (
	SideLeft  = "left"
	SideRight = "right"
)

// Side returns the placement class for the n-th visible item.
func Side(visibleIndex int) string {
	if visibleIndex%2 == 0 {
		return SideLeft
	}
	return SideRight
}

type timelineView struct {
	Index      int
	Key        string
	Kind       content.Kind
	Side       string
	Date       string
	Title      string
	Subtitle   string
	Short      string
	HasDetails bool
	MoreLabel  string
	Tags       []string
}

// Timeline renders entries matching filter. Details are addressed by the
// entry key, which stays valid when a refresh reorders entries.
func Timeline(port dom.Port, loc Locale, entries []content.TimelineEntry, filter string) error {
	more := loc.label("timeline.more_details", "More details +")
	present := loc.label("timeline.present", "Present")

	views := []timelineView{}
	for i, e := range entries {
		if !e.Kind.Matches(filter) {
			continue
		}
		views = append(views, timelineView{
			Index:      i,
			Key:        e.Key(),
			Kind:       e.Kind,
			Side:       Side(len(views)),
			Date:       dateRange(e, present),
			Title:      e.Title(loc.Lang, loc.Default),
			Subtitle:   e.Subtitle(loc.Lang, loc.Default),
			Short:      e.ShortDescription(loc.Lang, loc.Default),
			HasDetails: e.Description(loc.Lang, loc.Default) != "",
			MoreLabel:  more,
			Tags:       e.KeyWords(),
		})
	}
	return paint(port, ContainerTimeline, "timeline", views)
}

// dateRange is "start - end". Work without an end date is ongoing;
// education without one shows the start only.
func dateRange(e content.TimelineEntry, present string) string {
	end := e.EndDate()
	if end == "" && e.Kind == content.KindWork {
		end = present
	}
	if end == "" {
		return e.StartDate()
	}
	return e.StartDate() + " - " + end
}

// Overlay renders the detail popup of one entry.
func Overlay(loc Locale, e content.TimelineEntry) (string, error) {
	return execute("overlay", struct {
		Title       string
		Description template.HTML
		CloseLabel  string
	}{
		Title:       e.Title(loc.Lang, loc.Default),
		Description: template.HTML(format.Description(e.Description(loc.Lang, loc.Default))),
		CloseLabel:  loc.label("timeline.close", "Close popup"),
	})
}

// PopupSlotID is the element the detail popup is rendered into.
const PopupSlotID = "popup-slot"

// ShowOverlay opens the popup, removing any popup already open. It goes into
// the popup slot when the page has one, otherwise at the end of the body.
func ShowOverlay(doc *dom.Document, markup string) error {
	CloseOverlay(doc)
	if slot := doc.First(dom.ByID(PopupSlotID)); slot != nil {
		return dom.SetInnerHTML(slot, markup)
	}
	body := doc.Body()
	if body == nil {
		return dom.ErrNoContainer
	}
	return dom.AppendHTML(body, markup)
}

// CloseOverlay removes the open popup, if any.
func CloseOverlay(doc *dom.Document) {
	for _, popup := range doc.FindAll(dom.ByClass("timeline-popup")) {
		dom.Remove(popup)
	}
}
