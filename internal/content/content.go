// Package content holds the CV records fetched from the API and the single
// rule used to pick a localized field out of them.
package content

import (
	"sort"
	"strconv"
	"strings"
)

// Record is one API object. Localized text lives under "<field>_<lang>" keys.
type Record map[string]string

// Resolve returns field in lang, falling back to defaultLang, then "".
func Resolve(r Record, field, lang, defaultLang string) string {
	if v := r[field+"_"+lang]; v != "" {
		return v
	}
	return r[field+"_"+defaultLang]
}

// Kind discriminates timeline entries.
type Kind string

const (
	KindWork      Kind = "work"
	KindEducation Kind = "education"
)

// FilterAll matches every timeline kind.
const FilterAll = "all"

// Matches reports whether a timeline filter value selects kind.
func (k Kind) Matches(filter string) bool {
	return filter == "" || filter == FilterAll || filter == string(k)
}

// TimelineEntry is a work experience or an education record.
type TimelineEntry struct {
	Kind   Kind
	Fields Record
	// Ordinal is the position of the record in its own collection.
	Ordinal int
}

// Key identifies the entry across refreshes: the record id when the API
// sends one, otherwise its position in its own collection.
func (e TimelineEntry) Key() string {
	if id := e.Fields["id"]; id != "" {
		return string(e.Kind) + "-" + id
	}
	return string(e.Kind) + "-pos" + strconv.Itoa(e.Ordinal)
}

// Title is the position (work) or degree (education).
func (e TimelineEntry) Title(lang, def string) string {
	if e.Kind == KindEducation {
		return Resolve(e.Fields, "degree", lang, def)
	}
	return Resolve(e.Fields, "position", lang, def)
}

// Subtitle is the company (work) or institution (education).
func (e TimelineEntry) Subtitle(lang, def string) string {
	if e.Kind == KindEducation {
		return Resolve(e.Fields, "institution", lang, def)
	}
	return Resolve(e.Fields, "company", lang, def)
}

func (e TimelineEntry) ShortDescription(lang, def string) string {
	return Resolve(e.Fields, "short_description", lang, def)
}

func (e TimelineEntry) Description(lang, def string) string {
	return Resolve(e.Fields, "description", lang, def)
}

func (e TimelineEntry) StartDate() string { return e.Fields["start_date"] }
func (e TimelineEntry) EndDate() string   { return e.Fields["end_date"] }

// KeyWords splits the semicolon-delimited key_words field.
func (e TimelineEntry) KeyWords() []string {
	return SplitList(e.Fields["key_words"], ";")
}

// NewTimeline tags experiences and educations with their kind and
// concatenates them, experiences first.
func NewTimeline(experiences, educations []Record) []TimelineEntry {
	entries := make([]TimelineEntry, 0, len(experiences)+len(educations))
	for i, r := range experiences {
		entries = append(entries, TimelineEntry{Kind: KindWork, Fields: r, Ordinal: i})
	}
	for i, r := range educations {
		entries = append(entries, TimelineEntry{Kind: KindEducation, Fields: r, Ordinal: i})
	}
	return entries
}

// SortTimeline orders entries by start date, most recent first. Entries
// without a start date go last.
func SortTimeline(entries []TimelineEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i].StartDate(), entries[j].StartDate()
		if a == "" || b == "" {
			return a != "" && b == ""
		}
		return a > b
	})
}

// SkillCategory is one block of the skills grid.
type SkillCategory struct {
	Fields Record
}

func (s SkillCategory) Category(lang, def string) string {
	return Resolve(s.Fields, "category", lang, def)
}

// Description is the raw "·"-delimited item list.
func (s SkillCategory) Description(lang, def string) string {
	return Resolve(s.Fields, "description", lang, def)
}

// Project is a portfolio project card.
type Project struct {
	Fields Record
}

func (p Project) Title(lang, def string) string {
	return Resolve(p.Fields, "title", lang, def)
}

func (p Project) Description(lang, def string) string {
	return Resolve(p.Fields, "description", lang, def)
}

func (p Project) Technologies() []string { return SplitList(p.Fields["technologies"], ";") }
func (p Project) LiveURL() string        { return p.Fields["url_live"] }
func (p Project) GitURL() string         { return p.Fields["url_git"] }
func (p Project) GitBackendURL() string  { return p.Fields["url_git_backend"] }

// Article is a link to a published article.
type Article struct {
	Fields Record
}

func (a Article) Title(lang, def string) string {
	return Resolve(a.Fields, "title", lang, def)
}

func (a Article) URL() string { return a.Fields["url"] }

// SplitList splits s on sep, trimming items and dropping empty ones.
func SplitList(s, sep string) []string {
	var out []string
	for _, part := range strings.Split(s, sep) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Skills wraps raw records as skill categories.
func Skills(records []Record) []SkillCategory {
	out := make([]SkillCategory, len(records))
	for i, r := range records {
		out[i] = SkillCategory{Fields: r}
	}
	return out
}

// Projects wraps raw records as projects.
func Projects(records []Record) []Project {
	out := make([]Project, len(records))
	for i, r := range records {
		out[i] = Project{Fields: r}
	}
	return out
}

// Articles wraps raw records as articles.
func Articles(records []Record) []Article {
	out := make([]Article, len(records))
	for i, r := range records {
		out[i] = Article{Fields: r}
	}
	return out
}
