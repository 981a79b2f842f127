package disclosure

import (
	_ "embed"
	"net/http"
)

//go:embed assets/frontend.js
var frontendJS []byte

//go:embed assets/frontend.css
var frontendCSS []byte

// ServeScript serves the browser implementation of the controller.
func ServeScript(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/javascript; charset=utf-8")
	w.Write(frontendJS)
}

// ServeStyles serves the badge stylesheet. It hides the open container by
// default.
func ServeStyles(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Write(frontendCSS)
}
