package dom

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Matcher selects elements.
type Matcher func(*html.Node) bool

func ByTag(a atom.Atom) Matcher {
	return func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.DataAtom == a
	}
}

func ByClass(class string) Matcher {
	return func(n *html.Node) bool {
		return n.Type == html.ElementNode && HasClass(n, class)
	}
}

func ByID(id string) Matcher {
	return ByAttrValue("id", id)
}

// ByAttr matches elements carrying the attribute, whatever its value.
func ByAttr(name string) Matcher {
	return func(n *html.Node) bool {
		_, ok := Attr(n, name)
		return n.Type == html.ElementNode && ok
	}
}

func ByAttrValue(name, value string) Matcher {
	return func(n *html.Node) bool {
		v, ok := Attr(n, name)
		return n.Type == html.ElementNode && ok && v == value
	}
}

func ByAttrPrefix(name, prefix string) Matcher {
	return func(n *html.Node) bool {
		v, ok := Attr(n, name)
		return n.Type == html.ElementNode && ok && strings.HasPrefix(v, prefix)
	}
}

// AnyOf matches elements accepted by at least one matcher.
func AnyOf(ms ...Matcher) Matcher {
	return func(n *html.Node) bool {
		for _, m := range ms {
			if m(n) {
				return true
			}
		}
		return false
	}
}

// And matches elements accepted by every matcher.
func And(ms ...Matcher) Matcher {
	return func(n *html.Node) bool {
		for _, m := range ms {
			if !m(n) {
				return false
			}
		}
		return true
	}
}

// Attr returns the value of an attribute.
func Attr(n *html.Node, name string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttr sets or adds an attribute.
func SetAttr(n *html.Node, name, value string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == name {
			n.Attr[i].Val = value
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: name, Val: value})
}

// RemoveAttr deletes an attribute if present.
func RemoveAttr(n *html.Node, name string) {
	kept := n.Attr[:0]
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == name {
			continue
		}
		kept = append(kept, a)
	}
	n.Attr = kept
}

// Classes returns the class list of n.
func Classes(n *html.Node) []string {
	v, _ := Attr(n, "class")
	return strings.Fields(v)
}

func HasClass(n *html.Node, class string) bool {
	for _, c := range Classes(n) {
		if c == class {
			return true
		}
	}
	return false
}

func AddClass(n *html.Node, classes ...string) {
	list := Classes(n)
	for _, class := range classes {
		if !HasClass(n, class) {
			list = append(list, class)
			SetAttr(n, "class", strings.Join(list, " "))
		}
	}
}

func RemoveClass(n *html.Node, classes ...string) {
	list := Classes(n)
	kept := list[:0]
	for _, c := range list {
		drop := false
		for _, class := range classes {
			if c == class {
				drop = true
				break
			}
		}
		if !drop {
			kept = append(kept, c)
		}
	}
	if len(kept) == len(list) {
		return
	}
	SetAttr(n, "class", strings.Join(kept, " "))
}

// ToggleClass flips class on n and reports whether it is now present.
func ToggleClass(n *html.Node, class string) bool {
	if HasClass(n, class) {
		RemoveClass(n, class)
		return false
	}
	AddClass(n, class)
	return true
}

// SetClass adds or removes class depending on on.
func SetClass(n *html.Node, class string, on bool) {
	if on {
		AddClass(n, class)
		return
	}
	RemoveClass(n, class)
}
