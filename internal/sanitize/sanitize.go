// Package sanitize filters untrusted icon markup down to a small SVG
// allowlist before it is written into a page.
package sanitize

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// allowed maps each permitted element to its permitted attributes.
var allowed = map[string]map[string]bool{
	"svg": {
		"height": true,
		"width":  true,
		"xmlns":  true,
	},
	"g": {
		"fill":            true,
		"fill-rule":       true,
		"stroke":          true,
		"stroke-linecap":  true,
		"stroke-linejoin": true,
	},
	"path": {
		"d":         true,
		"fill":      true,
		"fill-rule": true,
	},
}

// dropped elements are removed together with everything inside them. Other
// disallowed elements are unwrapped: the element goes, permitted
// descendants stay.
var dropped = map[string]bool{
	"script":        true,
	"style":         true,
	"foreignobject": true,
	"iframe":        true,
	"object":        true,
	"embed":         true,
	"template":      true,
	"noscript":      true,
	"title":         true,
	"textarea":      true,
}

var bodyContext = &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}

// SVG returns fragment with every element and attribute outside the
// allowlist removed. It never fails: unparsable input yields "".
func SVG(fragment string) string {
	if strings.TrimSpace(fragment) == "" {
		return ""
	}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), bodyContext)
	if err != nil {
		return ""
	}

	var b strings.Builder
	for _, n := range nodes {
		for _, c := range clean(n) {
			if err := html.Render(&b, c); err != nil {
				return ""
			}
		}
	}
	return b.String()
}

// clean returns detached, sanitized copies of n.
func clean(n *html.Node) []*html.Node {
	switch n.Type {
	case html.TextNode:
		return []*html.Node{{Type: html.TextNode, Data: n.Data}}
	case html.ElementNode:
	default:
		return nil
	}

	name := strings.ToLower(n.Data)
	if dropped[name] {
		return nil
	}

	var children []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		children = append(children, clean(c)...)
	}

	attrs, ok := allowed[name]
	if !ok || (n.Namespace != "" && n.Namespace != "svg") {
		return children
	}

	out := &html.Node{
		Type:      html.ElementNode,
		Data:      name,
		DataAtom:  atom.Lookup([]byte(name)),
		Namespace: n.Namespace,
	}
	for _, a := range n.Attr {
		key := strings.ToLower(a.Key)
		if a.Namespace != "" || !attrs[key] {
			continue
		}
		out.Attr = append(out.Attr, html.Attribute{Key: key, Val: a.Val})
	}
	for _, c := range children {
		out.AppendChild(c)
	}
	return []*html.Node{out}
}
