package handlers

import (
	"net/http"

	"github.com/go-chi/render"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	render.Status(r, status)
	render.JSON(w, r, data)
}
