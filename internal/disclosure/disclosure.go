// Package disclosure implements the show/hide behaviour of rendered badges.
//
// Each badge wrapper on a page gets its own Controller. A controller starts
// Collapsed; every activation of the closed summary flips it between
// Collapsed and Expanded and sets the open container's inline display
// accordingly. The same contract ships to browsers as frontend.js.
package disclosure

import (
	"strings"

	"golang.org/x/net/html"
)

// CSS class names used by the badge markup.
const (
	WrapperClass = "credibility-indicators__wrapper"
	ClosedClass  = "credibility-indicators__closed"
	OpenClass    = "credibility-indicators__open"
)

// State is the visibility state of one badge.
type State int

const (
	Collapsed State = iota
	Expanded
)

func (s State) String() string {
	if s == Expanded {
		return "expanded"
	}
	return "collapsed"
}

// Event is an activation (e.g. a click) on a badge's closed summary.
type Event struct {
	defaultPrevented bool
}

// PreventDefault suppresses the event's default action.
func (e *Event) PreventDefault() { e.defaultPrevented = true }

// DefaultPrevented reports whether PreventDefault was called.
func (e *Event) DefaultPrevented() bool { return e.defaultPrevented }

// Controller owns the state of a single badge instance.
type Controller struct {
	wrapper *html.Node
	closed  *html.Node
	open    *html.Node
	state   State
}

// Attach finds every badge wrapper under root and returns one controller
// per wrapper, in document order. Wrappers missing either container are
// skipped.
func Attach(root *html.Node) []*Controller {
	var out []*Controller
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && hasClass(n, WrapperClass) {
			closed := findClass(n, ClosedClass)
			open := findClass(n, OpenClass)
			if closed != nil && open != nil {
				out = append(out, &Controller{wrapper: n, closed: closed, open: open})
			}
			// Badges do not nest.
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return out
}

// State returns the current state.
func (c *Controller) State() State { return c.state }

// Activate handles an activation of the closed summary. It suppresses the
// event's default action and toggles the open container.
func (c *Controller) Activate(ev *Event) State {
	if ev != nil {
		ev.PreventDefault()
	}
	if c.state == Collapsed {
		c.state = Expanded
		setDisplay(c.open, "block")
	} else {
		c.state = Collapsed
		setDisplay(c.open, "none")
	}
	return c.state
}

// Visible reports whether the open container is currently shown according
// to its inline style. Without an inline display the stylesheet default
// (hidden) applies.
func (c *Controller) Visible() bool {
	return display(c.open) == "block"
}

func hasClass(n *html.Node, class string) bool {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == "class" {
			for _, f := range strings.Fields(a.Val) {
				if f == class {
					return true
				}
			}
		}
	}
	return false
}

func findClass(n *html.Node, class string) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && hasClass(c, class) {
			return c
		}
		if found := findClass(c, class); found != nil {
			return found
		}
	}
	return nil
}

// display returns the inline display value of n, or "".
func display(n *html.Node) string {
	for _, a := range n.Attr {
		if a.Key != "style" {
			continue
		}
		for _, decl := range strings.Split(a.Val, ";") {
			prop, val, ok := strings.Cut(decl, ":")
			if ok && strings.EqualFold(strings.TrimSpace(prop), "display") {
				return strings.TrimSpace(val)
			}
		}
	}
	return ""
}

// setDisplay sets the inline display declaration of n, keeping any other
// declarations in its style attribute.
func setDisplay(n *html.Node, value string) {
	decl := "display: " + value
	for i, a := range n.Attr {
		if a.Key != "style" {
			continue
		}
		var kept []string
		for _, d := range strings.Split(a.Val, ";") {
			prop, _, _ := strings.Cut(d, ":")
			if strings.TrimSpace(d) == "" || strings.EqualFold(strings.TrimSpace(prop), "display") {
				continue
			}
			kept = append(kept, strings.TrimSpace(d))
		}
		n.Attr[i].Val = strings.Join(append(kept, decl), "; ")
		return
	}
	n.Attr = append(n.Attr, html.Attribute{Key: "style", Val: decl})
}
