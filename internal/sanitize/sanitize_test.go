package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSVGKeepsAllowedMarkup(t *testing.T) {
	in := `<svg width="11" height="16" xmlns="http://www.w3.org/2000/svg"><g fill="none" stroke="#8B8581" stroke-linecap="round"><path d="M7.55 14.085c-.32.602-.862.937z" fill="#8B8581" fill-rule="evenodd"></path></g></svg>`
	assert.Equal(t, in, SVG(in))
}

func TestSVGStripsScriptElements(t *testing.T) {
	in := `<svg width="10"><script>alert(1)</script><path d="M0 0"></path></svg>`
	got := SVG(in)
	assert.NotContains(t, got, "script")
	assert.NotContains(t, got, "alert")
	assert.Equal(t, `<svg width="10"><path d="M0 0"></path></svg>`, got)
}

func TestSVGStripsDisallowedAttributes(t *testing.T) {
	in := `<svg width="10" onload="alert(1)" viewBox="0 0 10 10"><path d="M0 0" onclick="x()" style="fill:red"></path></svg>`
	assert.Equal(t, `<svg width="10"><path d="M0 0"></path></svg>`, SVG(in))
}

func TestSVGUnwrapsUnknownElements(t *testing.T) {
	in := `<svg><a href="javascript:alert(1)"><path d="M1 1"></path></a><circle r="4"></circle></svg>`
	got := SVG(in)
	assert.Equal(t, `<svg><path d="M1 1"></path></svg>`, got)
}

func TestSVGDropsForeignObjectAndComments(t *testing.T) {
	in := `<svg><!-- hi --><foreignObject><div onclick="x()">boom</div></foreignObject><g></g></svg>`
	assert.Equal(t, `<svg><g></g></svg>`, SVG(in))
}

func TestSVGTopLevelHTMLIsRemoved(t *testing.T) {
	in := `<img src=x onerror="alert(1)"><svg height="2"></svg>`
	assert.Equal(t, `<svg height="2"></svg>`, SVG(in))
}

func TestSVGEmptyAndTextInput(t *testing.T) {
	assert.Equal(t, "", SVG(""))
	assert.Equal(t, "", SVG("   "))
	assert.Equal(t, "a &lt;b", SVG("a &lt;b"))
}
