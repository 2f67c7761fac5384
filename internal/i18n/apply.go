package i18n

import (
	"html"
	"strings"

	"github.com/Zachkp/cv-site/internal/dom"
)

// Attributes read from the page.
const (
	AttrKey           = "data-i18n"
	AttrSkillCategory = "data-skill-category"
)

// Apply localizes the document with c. Elements tagged with a key whose
// value is missing or empty keep their existing text.
func Apply(doc *dom.Document, c *Catalog) {
	if root := doc.HTML(); root != nil && c != nil {
		dom.SetAttr(root, "lang", c.Lang)
	}
	if c.IsEmpty() {
		return
	}

	for _, el := range doc.FindAll(dom.ByAttr(AttrKey)) {
		key, _ := dom.Attr(el, AttrKey)
		if v, ok := c.Lookup(key); ok && v != "" {
			dom.SetText(el, v)
		}
	}

	for _, skills := range c.Skills() {
		list := doc.First(dom.ByAttrValue(AttrSkillCategory, skills.Key))
		if list == nil {
			continue
		}
		var b strings.Builder
		for _, item := range skills.Items {
			b.WriteString("<li>" + html.EscapeString(item) + "</li>")
		}
		_ = dom.SetInnerHTML(list, b.String())
	}
}
