// Package i18n loads per-language string catalogs and applies them to the page.
package i18n

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"

	"github.com/Zachkp/cv-site/internal/api"
)

// Catalog is the set of localized strings for one language.
type Catalog struct {
	Lang string
	raw  []byte
}

// SkillList is the ordered skill items of one category.
type SkillList struct {
	Key   string
	Items []string
}

// ParseCatalog validates a translation document. The document must be a
// JSON object; nesting is arbitrary.
func ParseCatalog(lang string, body []byte) (*Catalog, error) {
	if !gjson.ValidBytes(body) {
		return nil, errors.Wrapf(api.ErrParse, "translations for %s are not valid JSON", lang)
	}
	if !gjson.ParseBytes(body).IsObject() {
		return nil, errors.Wrapf(api.ErrParse, "translations for %s are not a JSON object", lang)
	}
	return &Catalog{Lang: lang, raw: body}, nil
}

// Empty returns a catalog with no strings.
func Empty(lang string) *Catalog {
	return &Catalog{Lang: lang}
}

// IsEmpty reports whether the catalog holds no document.
func (c *Catalog) IsEmpty() bool {
	return c == nil || len(c.raw) == 0
}

// Lookup resolves a dot-separated key through nested objects. It reports
// false when any segment is missing or the leaf is not a string.
func (c *Catalog) Lookup(key string) (string, bool) {
	if c.IsEmpty() || key == "" {
		return "", false
	}

	segments := strings.Split(key, ".")
	for i, s := range segments {
		if s == "" {
			return "", false
		}
		segments[i] = gjson.Escape(s)
	}

	res := gjson.GetBytes(c.raw, strings.Join(segments, "."))
	if res.Type != gjson.String {
		return "", false
	}
	return res.Str, true
}

// Text returns the value for key, or fallback when it is absent or empty.
func (c *Catalog) Text(key, fallback string) string {
	if v, ok := c.Lookup(key); ok && v != "" {
		return v
	}
	return fallback
}

// Skills returns the optional "skills" sub-tree in document order.
func (c *Catalog) Skills() []SkillList {
	if c.IsEmpty() {
		return nil
	}

	var out []SkillList
	gjson.GetBytes(c.raw, "skills").ForEach(func(key, value gjson.Result) bool {
		if !value.IsArray() {
			return true
		}
		list := SkillList{Key: key.String(), Items: []string{}}
		for _, item := range value.Array() {
			list.Items = append(list.Items, item.String())
		}
		out = append(out, list)
		return true
	})
	return out
}
